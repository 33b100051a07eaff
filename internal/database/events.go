package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

type Event struct {
	ID        int64           `json:"id"`
	ActorID   *int64          `json:"actor_id,omitempty"`
	EventType string          `json:"event_type"`
	EventTime time.Time       `json:"event_time"`
	Payload   json.RawMessage `json:"payload"`
}

func marshalEvent(eventType string, payload interface{}) ([]byte, error) {
	eventMsg := map[string]interface{}{
		"event_type": eventType,
		"payload":    payload,
	}
	return json.Marshal(eventMsg)
}

// LogEvent appends one row to the activity journal and returns the
// serialized event so the caller can push it to websocket clients.
func (q *Queries) LogEvent(ctx context.Context, actorID int64, eventType string, payload interface{}) ([]byte, error) {
	eventBytes, err := marshalEvent(eventType, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	query := `INSERT INTO event_journal (actor_id, event_type, payload) VALUES ($1, $2, $3)`
	_, err = q.db.Exec(ctx, query, actorID, eventType, eventBytes)
	if err != nil {
		return nil, err
	}

	return eventBytes, nil
}

func (q *Queries) ListRecentEvents(ctx context.Context, limit int) ([]Event, error) {
	query := `
		SELECT id, actor_id, event_type, event_time, payload
		FROM event_journal
		ORDER BY id DESC
		LIMIT $1
	`
	rows, err := q.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (q *Queries) GetEventsSince(ctx context.Context, sinceID int64) ([]Event, error) {
	query := `
		SELECT id, actor_id, event_type, event_time, payload
		FROM event_journal
		WHERE id > $1
		ORDER BY id ASC
		LIMIT 100
	`
	rows, err := q.db.Query(ctx, query, sinceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var event Event
		err := rows.Scan(
			&event.ID,
			&event.ActorID,
			&event.EventType,
			&event.EventTime,
			&event.Payload,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if events == nil {
		return []Event{}, nil
	}

	return events, nil
}
