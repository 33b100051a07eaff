package database

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"serwis-blogowy/internal/models"
)

type CreatePostParams struct {
	AuthorID int64
	Title    string
	Text     string
}

func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (*models.Post, error) {
	query := `
		INSERT INTO posts (author_id, title, text)
		VALUES ($1, $2, $3)
		RETURNING id, author_id, title, text, created_at
	`
	row := q.db.QueryRow(ctx, query, arg.AuthorID, arg.Title, arg.Text)

	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Text,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (q *Queries) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT id, author_id, title, text, created_at
		FROM posts
		WHERE id = $1
	`
	var post models.Post
	err := q.db.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Text,
		&post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (q *Queries) ListPosts(ctx context.Context, limit int, offset int) ([]models.Post, error) {
	query := `
		SELECT id, author_id, title, text, created_at
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := q.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (q *Queries) ListPostsByAuthor(ctx context.Context, authorID int64, limit int, offset int) ([]models.Post, error) {
	query := `
		SELECT id, author_id, title, text, created_at
		FROM posts
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := q.db.Query(ctx, query, authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// % and _ in the user's query mean the literal characters, not wildcards.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchPosts matches the substring case-insensitively against post text,
// newest first. An empty substring matches every post.
func (q *Queries) SearchPosts(ctx context.Context, substring string, limit int, offset int) ([]models.Post, error) {
	query := `
		SELECT id, author_id, title, text, created_at
		FROM posts
		WHERE text ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := q.db.Query(ctx, query, likeEscaper.Replace(substring), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (q *Queries) UpdatePost(ctx context.Context, id int64, title string, text string) (*models.Post, error) {
	query := `
		UPDATE posts
		SET title = $2, text = $3
		WHERE id = $1
		RETURNING id, author_id, title, text, created_at
	`
	var post models.Post
	err := q.db.QueryRow(ctx, query, id, title, text).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Text,
		&post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (q *Queries) DeletePost(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM posts WHERE id = $1`
	res, err := q.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func scanPosts(rows pgx.Rows) ([]models.Post, error) {
	var posts []models.Post
	for rows.Next() {
		var post models.Post
		err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.Title,
			&post.Text,
			&post.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if posts == nil {
		return []models.Post{}, nil
	}

	return posts, nil
}
