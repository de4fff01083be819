package menu

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested menu item does not exist.
var ErrNotFound = errors.New("menu item not found")

// Item is a restaurant-specific listing of a product with its own price.
// Order totals are always derived from the menu price, never from the base
// product price.
type Item struct {
	ID           string
	RestaurantID string
	ProductID    string
	Price        decimal.Decimal
}

// Repository defines read operations for restaurant menus.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
}
