package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"serwis-blogowy/internal/auth"
	"serwis-blogowy/internal/models"
)

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()

	hashedPassword, err := auth.HashPassword("secretpassword")
	require.NoError(t, err)

	user, err := testStore.CreateUser(context.Background(), CreateUserParams{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hashedPassword,
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func TestCreateUser(t *testing.T) {
	about := "Lubię pisać"
	user, err := testStore.CreateUser(context.Background(), CreateUserParams{
		Username:     "create_user",
		Email:        "create_user@example.com",
		PasswordHash: "notarealhash",
		AboutMyself:  &about,
	})

	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotZero(t, user.ID)
	require.Equal(t, "create_user", user.Username)
	require.Equal(t, "create_user@example.com", user.Email)
	require.NotNil(t, user.AboutMyself)
	require.Equal(t, about, *user.AboutMyself)
	require.False(t, user.CreatedAt.IsZero())
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	createTestUser(t, "dup_username")

	_, err := testStore.CreateUser(context.Background(), CreateUserParams{
		Username:     "dup_username",
		Email:        "different@example.com",
		PasswordHash: "notarealhash",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	createTestUser(t, "dup_email")

	_, err := testStore.CreateUser(context.Background(), CreateUserParams{
		Username:     "dup_email_other",
		Email:        "dup_email@example.com",
		PasswordHash: "notarealhash",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestGetUserByUsername(t *testing.T) {
	created := createTestUser(t, "lookup_user")

	foundUser, err := testStore.GetUserByUsername(context.Background(), "lookup_user")
	require.NoError(t, err)
	require.NotNil(t, foundUser)
	require.Equal(t, created.ID, foundUser.ID)
	require.NotEmpty(t, foundUser.PasswordHash)

	nonExistentUser, err := testStore.GetUserByUsername(context.Background(), "nonexistent")
	require.NoError(t, err)
	require.Nil(t, nonExistentUser)
}

func TestGetUserByEmail(t *testing.T) {
	created := createTestUser(t, "email_lookup")

	foundUser, err := testStore.GetUserByEmail(context.Background(), "email_lookup@example.com")
	require.NoError(t, err)
	require.NotNil(t, foundUser)
	require.Equal(t, created.ID, foundUser.ID)

	nonExistentUser, err := testStore.GetUserByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	require.Nil(t, nonExistentUser)
}

func TestUpdateUserProfile(t *testing.T) {
	user := createTestUser(t, "profile_edit")

	about := "Nowy opis"
	updated, err := testStore.UpdateUserProfile(context.Background(), UpdateUserProfileParams{
		ID:          user.ID,
		Username:    "profile_edited",
		Email:       "profile_edited@example.com",
		AboutMyself: &about,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, "profile_edited", updated.Username)
	require.Equal(t, "profile_edited@example.com", updated.Email)
	require.NotNil(t, updated.AboutMyself)
	require.Equal(t, about, *updated.AboutMyself)
	// password hash untouched by a profile edit
	require.Equal(t, user.PasswordHash, updated.PasswordHash)
}

func TestUpdateUserProfile_Conflict(t *testing.T) {
	createTestUser(t, "conflict_a")
	victim := createTestUser(t, "conflict_b")

	_, err := testStore.UpdateUserProfile(context.Background(), UpdateUserProfileParams{
		ID:       victim.ID,
		Username: "conflict_a",
		Email:    victim.Email,
	})
	require.ErrorIs(t, err, ErrUsernameTaken)

	// the failed write must not have clobbered the row
	unchanged, err := testStore.GetUserByID(context.Background(), victim.ID)
	require.NoError(t, err)
	require.NotNil(t, unchanged)
	require.Equal(t, "conflict_b", unchanged.Username)
}

func TestUpdateUserProfile_NotFound(t *testing.T) {
	updated, err := testStore.UpdateUserProfile(context.Background(), UpdateUserProfileParams{
		ID:       999999,
		Username: "ghost",
		Email:    "ghost@example.com",
	})
	require.NoError(t, err)
	require.Nil(t, updated)
}

func TestDeleteUser(t *testing.T) {
	user := createTestUser(t, "delete_me")

	deleted, err := testStore.DeleteUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	gone, err := testStore.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	deletedAgain, err := testStore.DeleteUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.False(t, deletedAgain)
}
