package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelichko/scribe/internal/models"
)

type postRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepo{pool: pool}
}

func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO posts (id, title, image, content, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		post.ID, post.Title, post.Image, post.Content, post.AuthorID, post.CreatedAt, post.UpdatedAt,
	)
	return err
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	p := &models.Post{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, image, content, author_id, created_at, updated_at
		 FROM posts WHERE id = $1`, id,
	).Scan(&p.ID, &p.Title, &p.Image, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *postRepo) List(ctx context.Context) ([]models.PostWithAuthor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.title, p.image, p.content, p.author_id, p.created_at, p.updated_at,
		        u.username, u.name
		 FROM posts p
		 INNER JOIN users u ON u.id = p.author_id
		 ORDER BY p.id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.PostWithAuthor
	for rows.Next() {
		var p models.PostWithAuthor
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Image, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
			&p.AuthorUsername, &p.AuthorName,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Update writes the mergeable fields only; author_id and created_at are
// never touched.
func (r *postRepo) Update(ctx context.Context, post *models.Post) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE posts SET title = $2, image = $3, content = $4, updated_at = $5
		 WHERE id = $1`,
		post.ID, post.Title, post.Image, post.Content, post.UpdatedAt,
	)
	return err
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}
