package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"serwis-blogowy/internal/websocket"
)

type Store struct {
	pool *pgxpool.Pool
	hub  *websocket.Hub
	*Queries
}

func NewStore(pool *pgxpool.Pool, hub *websocket.Hub) *Store {
	return &Store{
		pool:    pool,
		hub:     hub,
		Queries: New(pool),
	}
}

func (s *Store) ExecTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	q := New(tx)
	err = fn(q)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) GetPool() *pgxpool.Pool {
	return s.pool
}

// RecordEvent appends to the journal and pushes the event to connected
// websocket clients. A journal failure is logged, not propagated: the
// mutation that triggered the event has already committed.
func (s *Store) RecordEvent(ctx context.Context, actorID int64, eventType string, payload interface{}) {
	eventBytes, err := s.LogEvent(ctx, actorID, eventType, payload)
	if err != nil {
		logrus.Errorf("Nie można zapisać zdarzenia %s do dziennika: %v", eventType, err)
		return
	}
	if s.hub != nil {
		s.hub.BroadcastEvent(eventBytes)
	}
}
