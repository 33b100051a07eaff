package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"serwis-blogowy/internal/models"
)

var ErrUsernameTaken = errors.New("a user with this username already exists")
var ErrEmailTaken = errors.New("a user with this email already exists")

type CreateUserParams struct {
	Username       string
	Email          string
	PasswordHash   string
	AboutMyself    *string
	ProfilePicture *string
}

// CreateUser inserts a new user. Uniqueness of username and email is
// guaranteed by the users_username_key and users_email_key constraints;
// a violation surfaces as ErrUsernameTaken or ErrEmailTaken, so two
// concurrent registrations can never both succeed.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, about_myself, profile_picture)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, email, password_hash, about_myself, profile_picture, created_at
	`
	row := q.db.QueryRow(ctx, query,
		arg.Username,
		arg.Email,
		arg.PasswordHash,
		arg.AboutMyself,
		arg.ProfilePicture,
	)

	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.AboutMyself,
		&user.ProfilePicture,
		&user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_email_key":
				return nil, ErrEmailTaken
			default:
				return nil, ErrUsernameTaken
			}
		}
		return nil, err
	}

	return &user, nil
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, about_myself, profile_picture, created_at
		FROM users
		WHERE id = $1
	`
	var user models.User
	err := q.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.AboutMyself,
		&user.ProfilePicture,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, about_myself, profile_picture, created_at
		FROM users
		WHERE username = $1
	`
	var user models.User
	err := q.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.AboutMyself,
		&user.ProfilePicture,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, about_myself, profile_picture, created_at
		FROM users
		WHERE email = $1
	`
	var user models.User
	err := q.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.AboutMyself,
		&user.ProfilePicture,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

type UpdateUserProfileParams struct {
	ID             int64
	Username       string
	Email          string
	AboutMyself    *string
	ProfilePicture *string
}

// UpdateUserProfile replaces the editable profile fields in one statement.
// The handler merges the submitted form with the current row, so partial
// edits still commit atomically.
func (q *Queries) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (*models.User, error) {
	query := `
		UPDATE users
		SET username = $2, email = $3, about_myself = $4, profile_picture = $5
		WHERE id = $1
		RETURNING id, username, email, password_hash, about_myself, profile_picture, created_at
	`
	row := q.db.QueryRow(ctx, query,
		arg.ID,
		arg.Username,
		arg.Email,
		arg.AboutMyself,
		arg.ProfilePicture,
	)

	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.AboutMyself,
		&user.ProfilePicture,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_email_key":
				return nil, ErrEmailTaken
			default:
				return nil, ErrUsernameTaken
			}
		}
		return nil, err
	}

	return &user, nil
}

func (q *Queries) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, username, email, password_hash, about_myself, profile_picture, created_at
		FROM users
		ORDER BY created_at DESC, id DESC
	`
	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.AboutMyself,
			&user.ProfilePicture,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if users == nil {
		return []models.User{}, nil
	}

	return users, nil
}

func (q *Queries) DeleteUser(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM users WHERE id = $1`
	res, err := q.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}
