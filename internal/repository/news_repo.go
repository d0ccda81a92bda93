package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-storefront/internal/model"
	"go-storefront/pkg/apierror"
)

const newsColumns = `id, title, content, image_url, created_by, published_at, updated_at`

type NewsRepository struct {
	pool *pgxpool.Pool
}

func NewNewsRepository(pool *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{pool: pool}
}

func scanNews(row pgx.Row) (model.News, error) {
	var n model.News
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.ImageURL, &n.CreatedBy,
		&n.PublishedAt, &n.UpdatedAt)
	return n, err
}

func (r *NewsRepository) List(ctx context.Context) ([]model.News, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+newsColumns+` FROM news ORDER BY published_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	defer rows.Close()

	articles := make([]model.News, 0)
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("scan news: %w", err)
		}
		articles = append(articles, n)
	}
	return articles, rows.Err()
}

func (r *NewsRepository) FindByID(ctx context.Context, id string) (model.News, error) {
	n, err := scanNews(r.pool.QueryRow(ctx,
		`SELECT `+newsColumns+` FROM news WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.News{}, apierror.New("NOT_FOUND", "news article not found", id, http.StatusNotFound)
	}
	if err != nil {
		return model.News{}, fmt.Errorf("find news by id: %w", err)
	}
	return n, nil
}

func (r *NewsRepository) Create(ctx context.Context, n model.News) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO news (id, title, content, image_url, created_by, published_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.Title, n.Content, n.ImageURL, n.CreatedBy, n.PublishedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create news: %w", err)
	}
	return nil
}

func (r *NewsRepository) Update(ctx context.Context, id string, patch model.UpdateNewsRequest) (model.News, error) {
	set := make([]string, 0, 4)
	args := []any{id}

	addField := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		addField("title", *patch.Title)
	}
	if patch.Content != nil {
		addField("content", *patch.Content)
	}
	if patch.ImageURL != nil {
		addField("image_url", *patch.ImageURL)
	}
	addField("updated_at", time.Now().UTC())

	query := `UPDATE news SET ` + strings.Join(set, ", ") +
		` WHERE id = $1 RETURNING ` + newsColumns

	n, err := scanNews(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.News{}, apierror.New("NOT_FOUND", "news article not found", id, http.StatusNotFound)
	}
	if err != nil {
		return model.News{}, fmt.Errorf("update news: %w", err)
	}
	return n, nil
}

func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.New("NOT_FOUND", "news article not found", id, http.StatusNotFound)
	}
	return nil
}
