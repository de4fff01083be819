package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/domiflash/delivery-api/internal/domain/menu"
)

const (
	listMenusSQL = `SELECT id, restaurant_id, product_id, price FROM menus ORDER BY id`

	getMenuByIDSQL = `SELECT id, restaurant_id, product_id, price FROM menus WHERE id = $1`
)

var _ menu.Repository = (*MenuRepository)(nil)

// MenuRepository implements menu.Repository backed by PostgreSQL.
type MenuRepository struct {
	pool *pgxpool.Pool
}

// NewMenuRepository returns a MenuRepository that uses the given pool.
func NewMenuRepository(pool *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{pool: pool}
}

// List returns all menu items ordered by ID.
func (r *MenuRepository) List(ctx context.Context) ([]menu.Item, error) {
	rows, err := r.pool.Query(ctx, listMenusSQL)
	if err != nil {
		return nil, fmt.Errorf("listing menus: %w", err)
	}
	return pgx.CollectRows(rows, scanMenu)
}

// GetByID returns a single menu item by its identifier.
func (r *MenuRepository) GetByID(ctx context.Context, id string) (*menu.Item, error) {
	rows, err := r.pool.Query(ctx, getMenuByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting menu %q: %w", id, err)
	}

	m, err := pgx.CollectExactlyOneRow(rows, scanMenu)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, menu.ErrNotFound
		}
		return nil, fmt.Errorf("getting menu %q: %w", id, err)
	}
	return &m, nil
}

func scanMenu(row pgx.CollectableRow) (menu.Item, error) {
	var m menu.Item
	err := row.Scan(&m.ID, &m.RestaurantID, &m.ProductID, &m.Price)
	return m, err
}
