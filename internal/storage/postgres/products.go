package postgres

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type productRepository struct {
	storage *Storage
}

const productSelect = `SELECT p.id, p.name, COALESCE(p.description, ''), p.price, p.vat_rate, COALESCE(p.image, ''),
    COALESCE(c.name, ''), COALESCE(p.category_id, '')
    FROM products p LEFT JOIN categories c ON c.id = p.category_id`

func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := productSelect
	var args []any
	if filter.CategoryID != "" {
		query += ` WHERE p.category_id=$1`
		args = append(args, filter.CategoryID)
	}
	query += ` ORDER BY p.name`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.VATRate, &p.Image, &p.Category, &p.CategoryID); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, productSelect+` WHERE p.id=$1`, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.VATRate, &p.Image, &p.Category, &p.CategoryID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *productRepository) Categories(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id, name, slug, is_active FROM categories ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.IsActive); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
