package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"serwis-blogowy/internal/auth"
	"serwis-blogowy/internal/models"
)

func TestExecTxCommitsUserWithSession(t *testing.T) {
	ctx := context.Background()

	token, err := auth.NewSessionToken()
	require.NoError(t, err)

	var user *models.User
	err = testStore.ExecTx(ctx, func(q *Queries) error {
		created, txErr := q.CreateUser(ctx, CreateUserParams{
			Username:     "tx_commit_user",
			Email:        "tx_commit_user@example.com",
			PasswordHash: "hash",
		})
		if txErr != nil {
			return txErr
		}
		user = created
		return q.CreateSession(ctx, CreateSessionParams{
			ID:        uuid.New(),
			UserID:    created.ID,
			Token:     token,
			UserAgent: "go-test",
			ClientIP:  "127.0.0.1",
			ExpiresAt: time.Now().Add(time.Hour),
		})
	})
	require.NoError(t, err)

	found, err := testStore.GetUserBySessionToken(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, user.ID, found.ID)
}

func TestExecTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	failSession := errors.New("session step failed")

	err := testStore.ExecTx(ctx, func(q *Queries) error {
		if _, txErr := q.CreateUser(ctx, CreateUserParams{
			Username:     "tx_rollback_user",
			Email:        "tx_rollback_user@example.com",
			PasswordHash: "hash",
		}); txErr != nil {
			return txErr
		}
		return failSession
	})
	require.ErrorIs(t, err, failSession)

	// the user insert rolled back with the failed step
	ghost, err := testStore.GetUserByUsername(ctx, "tx_rollback_user")
	require.NoError(t, err)
	require.Nil(t, ghost)
}

func TestExecTxKeepsConflictErrors(t *testing.T) {
	ctx := context.Background()
	createTestUser(t, "tx_conflict_user")

	err := testStore.ExecTx(ctx, func(q *Queries) error {
		_, txErr := q.CreateUser(ctx, CreateUserParams{
			Username:     "tx_conflict_user",
			Email:        "tx_conflict_other@example.com",
			PasswordHash: "hash",
		})
		return txErr
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}
