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

const productColumns = `id, name, description, price, quantity, image_url, created_by, created_at, updated_at`

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity,
		&p.ImageURL, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, apierror.New("NOT_FOUND", "product not found", id, http.StatusNotFound)
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p model.Product) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, name, description, price, quantity, image_url, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.Description, p.Price, p.Quantity, p.ImageURL, p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update applies only the fields present in the patch. The caller guarantees
// at least one field is set.
func (r *ProductRepository) Update(ctx context.Context, id string, patch model.UpdateProductRequest) (model.Product, error) {
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
	if patch.Quantity != nil {
		addField("quantity", *patch.Quantity)
	}
	if patch.ImageURL != nil {
		addField("image_url", *patch.ImageURL)
	}
	addField("updated_at", time.Now().UTC())

	query := `UPDATE products SET ` + strings.Join(set, ", ") +
		` WHERE id = $1 RETURNING ` + productColumns

	p, err := scanProduct(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, apierror.New("NOT_FOUND", "product not found", id, http.StatusNotFound)
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.New("NOT_FOUND", "product not found", id, http.StatusNotFound)
	}
	return nil
}
