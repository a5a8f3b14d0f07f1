package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderSelect = `SELECT o.id, o.user_id, COALESCE(u.email, ''), COALESCE(u.full_name, ''), o.total, o.status,
    COALESCE(o.delivery_address, ''), COALESCE(o.notes, ''), o.created_at, o.updated_at
    FROM orders o LEFT JOIN users u ON u.id = o.user_id`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	const insertOrder = `INSERT INTO orders (id, user_id, total, status, delivery_address, notes, created_at, updated_at)
                         VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8)`
	const insertItem = `INSERT INTO order_items (id, order_id, product_id, name, quantity, price, vat_rate)
                        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertOrder,
			order.ID, order.UserID, order.Total, order.Status,
			order.DeliveryAddress, order.Notes, order.CreatedAt, order.UpdatedAt,
		); err != nil {
			return err
		}
		for _, item := range order.Items {
			if _, err := tx.Exec(ctx, insertItem,
				item.ID, order.ID, item.ProductID, item.Name, item.Quantity, item.Price, item.VATRate,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, orderSelect+` WHERE o.id=$1`, id).Scan(
		&o.ID, &o.UserID, &o.UserEmail, &o.UserName, &o.Total, &o.Status,
		&o.DeliveryAddress, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	var (
		conds []string
		args  []any
	)
	where := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.UserID != "" {
		where("o.user_id = $%d", filter.UserID)
	}
	if filter.Status != "" {
		where("o.status = $%d", filter.Status)
	}
	if filter.Since != nil {
		where("o.created_at >= $%d", *filter.Since)
	}
	if filter.Until != nil {
		where("o.created_at <= $%d", *filter.Until)
	}

	query := orderSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		result []model.Order
		ids    []string
	)
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.UserEmail, &o.UserName, &o.Total, &o.Status,
			&o.DeliveryAddress, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return result, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Items = items[result[i].ID]
	}
	return result, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderIDs []string) (map[string][]model.OrderItem, error) {
	const query = `SELECT id, order_id, product_id, name, quantity, price, vat_rate
                   FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, name`
	rows, err := r.storage.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]model.OrderItem, len(orderIDs))
	for rows.Next() {
		var (
			item    model.OrderItem
			orderID string
		)
		if err := rows.Scan(&item.ID, &orderID, &item.ProductID, &item.Name, &item.Quantity, &item.Price, &item.VATRate); err != nil {
			return nil, err
		}
		items[orderID] = append(items[orderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) UpdateItemQuantities(ctx context.Context, id string, items []model.ItemQuantity) error {
	const updateItem = `UPDATE order_items SET quantity=$1 WHERE id=$2 AND order_id=$3`
	const updateTotal = `UPDATE orders SET total = COALESCE(
                             (SELECT SUM(price * quantity * (100 + vat_rate) / 100) FROM order_items WHERE order_id=$1), 0),
                             updated_at=NOW()
                         WHERE id=$1`

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, item := range items {
			tag, err := tx.Exec(ctx, updateItem, item.Quantity, item.ItemID, id)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return domainErrors.ErrNotFound
			}
		}
		tag, err := tx.Exec(ctx, updateTotal, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}
