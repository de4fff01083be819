package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/domiflash/delivery-api/internal/domain/order"
)

const (
	listOrdersSQL = `SELECT id, customer_id, menu_id, motorcycle_id, quantity, total_price, status, created_at
		FROM orders ORDER BY created_at, id`

	getOrderByIDSQL = `SELECT id, customer_id, menu_id, motorcycle_id, quantity, total_price, status, created_at
		FROM orders WHERE id = $1`

	createOrderSQL = `INSERT INTO orders (id, customer_id, menu_id, motorcycle_id, quantity, total_price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	updateOrderSQL = `UPDATE orders
		SET customer_id = $2, menu_id = $3, motorcycle_id = $4, quantity = $5, total_price = $6, status = $7
		WHERE id = $1`

	deleteOrderSQL = `DELETE FROM orders WHERE id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// List returns all orders, oldest first.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

// GetByID returns a single order by its identifier.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}
	return &o, nil
}

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, createOrderSQL,
		o.ID, o.CustomerID, o.MenuID, o.MotorcycleID,
		o.Quantity, o.TotalPrice, o.Status, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	return nil
}

// Update overwrites all mutable columns of an existing order.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	tag, err := r.pool.Exec(ctx, updateOrderSQL,
		o.ID, o.CustomerID, o.MenuID, o.MotorcycleID,
		o.Quantity, o.TotalPrice, o.Status,
	)
	if err != nil {
		return fmt.Errorf("updating order %q: %w", o.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

// Delete removes an order permanently.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteOrderSQL, id)
	if err != nil {
		return fmt.Errorf("deleting order %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var o order.Order
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.MenuID, &o.MotorcycleID,
		&o.Quantity, &o.TotalPrice, &o.Status, &o.CreatedAt,
	)
	return o, err
}
