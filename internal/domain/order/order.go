package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Conventional lifecycle statuses. The status field is stored as an open
// string; these are the values the rest of the platform understands.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Order is a customer's request for a menu item. TotalPrice is derived from
// the referenced menu item's price and the quantity; it is recomputed by the
// service whenever either changes and is never settable on its own.
type Order struct {
	ID           string
	CustomerID   string
	MenuID       string
	MotorcycleID *string
	Quantity     int
	TotalPrice   decimal.Decimal
	Status       string
	CreatedAt    time.Time
}

// Repository defines persistence operations for orders.
type Repository interface {
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id string) error
}
