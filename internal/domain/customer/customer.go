package customer

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested customer does not exist.
var ErrNotFound = errors.New("customer not found")

// Customer is a platform user who places delivery orders.
type Customer struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// Repository defines read operations for customers.
type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	GetByID(ctx context.Context, id string) (*Customer, error)
}
