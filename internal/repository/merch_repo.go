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

const merchColumns = `id, name, description, price, size, image_url, created_by, created_at, updated_at`

type MerchRepository struct {
	pool *pgxpool.Pool
}

func NewMerchRepository(pool *pgxpool.Pool) *MerchRepository {
	return &MerchRepository{pool: pool}
}

func scanMerch(row pgx.Row) (model.Merch, error) {
	var m model.Merch
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Size,
		&m.ImageURL, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *MerchRepository) List(ctx context.Context) ([]model.Merch, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+merchColumns+` FROM merch ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list merch: %w", err)
	}
	defer rows.Close()

	items := make([]model.Merch, 0)
	for rows.Next() {
		m, err := scanMerch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan merch: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *MerchRepository) FindByID(ctx context.Context, id string) (model.Merch, error) {
	m, err := scanMerch(r.pool.QueryRow(ctx,
		`SELECT `+merchColumns+` FROM merch WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Merch{}, apierror.New("NOT_FOUND", "merch item not found", id, http.StatusNotFound)
	}
	if err != nil {
		return model.Merch{}, fmt.Errorf("find merch by id: %w", err)
	}
	return m, nil
}

func (r *MerchRepository) Create(ctx context.Context, m model.Merch) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO merch (id, name, description, price, size, image_url, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.Name, m.Description, m.Price, m.Size, m.ImageURL, m.CreatedBy, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create merch: %w", err)
	}
	return nil
}

func (r *MerchRepository) Update(ctx context.Context, id string, patch model.UpdateMerchRequest) (model.Merch, error) {
	set := make([]string, 0, 6)
	args := []any{id}

	addField := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		addField("name", *patch.Name)
	}
	if patch.Description != nil {
		addField("description", *patch.Description)
	}
	if patch.Price != nil {
		addField("price", *patch.Price)
	}
	if patch.Size != nil {
		addField("size", *patch.Size)
	}
	if patch.ImageURL != nil {
		addField("image_url", *patch.ImageURL)
	}
	addField("updated_at", time.Now().UTC())

	query := `UPDATE merch SET ` + strings.Join(set, ", ") +
		` WHERE id = $1 RETURNING ` + merchColumns

	m, err := scanMerch(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Merch{}, apierror.New("NOT_FOUND", "merch item not found", id, http.StatusNotFound)
	}
	if err != nil {
		return model.Merch{}, fmt.Errorf("update merch: %w", err)
	}
	return m, nil
}

func (r *MerchRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM merch WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete merch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.New("NOT_FOUND", "merch item not found", id, http.StatusNotFound)
	}
	return nil
}
