package order

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/domiflash/delivery-api/internal/domain/customer"
	"github.com/domiflash/delivery-api/internal/domain/menu"
	"github.com/domiflash/delivery-api/internal/domain/product"
)

// createdTitle is the fixed headline broadcast for every new order.
const createdTitle = "🎉 ¡Hay un nuevo pedido!"

// Notifier publishes a global event to all connected subscribers. Publishing
// is fire-and-forget: implementations must not block on or report delivery.
type Notifier interface {
	Notify(ctx context.Context, title, message string, extra map[string]any)
}

// CreateRequest holds the input for creating an order. Quantity and Status
// are optional; nil/empty fall back to 1 and "pending".
type CreateRequest struct {
	CustomerID   string
	MenuID       string
	MotorcycleID *string
	Quantity     *int
	Status       string
}

// UpdateRequest is a partial-update patch. Only non-nil fields are applied.
type UpdateRequest struct {
	CustomerID   *string
	MenuID       *string
	MotorcycleID *string
	Quantity     *int
	Status       *string
}

// Service owns the order lifecycle rules: price derivation on create,
// per-field recomputation on partial update, and the creation broadcast.
type Service struct {
	orders    Repository
	menus     menu.Repository
	products  product.Repository
	customers customer.Repository
	notifier  Notifier
}

// NewService creates an order Service with the required dependencies.
func NewService(
	orders Repository,
	menus menu.Repository,
	products product.Repository,
	customers customer.Repository,
	notifier Notifier,
) *Service {
	return &Service{
		orders:    orders,
		menus:     menus,
		products:  products,
		customers: customers,
		notifier:  notifier,
	}
}

// Create resolves the menu item, derives the total price, persists the order,
// and broadcasts a creation event. The menu lookup gates the operation; the
// customer and product lookups only feed the notification message and run
// after the order is committed, so their failure can never undo the create.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	m, err := s.menus.GetByID(ctx, req.MenuID)
	if err != nil {
		return nil, errors.Wrapf(err, "get menu %q", req.MenuID)
	}

	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	status := req.Status
	if status == "" {
		status = StatusPending
	}

	o := &Order{
		ID:           uuid.New().String(),
		CustomerID:   req.CustomerID,
		MenuID:       req.MenuID,
		MotorcycleID: req.MotorcycleID,
		Quantity:     qty,
		TotalPrice:   m.Price.Mul(decimal.NewFromInt(int64(qty))),
		Status:       status,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	s.announceCreated(ctx, o, m)

	return o, nil
}

// announceCreated builds and publishes the creation event. The message embeds
// the customer and product names resolved at emission time; if either lookup
// fails the broadcast is skipped and the committed order stands.
func (s *Service) announceCreated(ctx context.Context, o *Order, m *menu.Item) {
	p, err := s.products.GetByID(ctx, m.ProductID)
	if err != nil {
		zctx.From(ctx).Warn("Creation broadcast skipped",
			zap.String("order_id", o.ID), zap.Error(err))
		return
	}
	c, err := s.customers.GetByID(ctx, o.CustomerID)
	if err != nil {
		zctx.From(ctx).Warn("Creation broadcast skipped",
			zap.String("order_id", o.ID), zap.Error(err))
		return
	}

	s.notifier.Notify(ctx, createdTitle,
		fmt.Sprintf("🧾 %s ordenó el producto %s.", c.Name, p.Name), nil)
}

// Update applies a partial patch field by field and persists the result.
// Both price rules read the order state as persisted before this patch, never
// the patch itself: the menu rule recomputes against the pre-patch quantity,
// and the quantity rule re-resolves the pre-patch menu. When a patch carries
// both, the quantity rule runs last, so the stored total ends up as the
// previous menu's price times the new quantity. No event is published.
func (s *Service) Update(ctx context.Context, id string, patch UpdateRequest) (*Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get order %q", id)
	}

	prevMenuID := o.MenuID
	prevQty := o.Quantity

	if patch.CustomerID != nil {
		o.CustomerID = *patch.CustomerID
	}
	if patch.MenuID != nil {
		m, err := s.menus.GetByID(ctx, *patch.MenuID)
		if err != nil {
			return nil, errors.Wrapf(err, "get menu %q", *patch.MenuID)
		}
		o.MenuID = m.ID
		o.TotalPrice = m.Price.Mul(decimal.NewFromInt(int64(prevQty)))
	}
	if patch.MotorcycleID != nil {
		o.MotorcycleID = patch.MotorcycleID
	}
	if patch.Quantity != nil {
		m, err := s.menus.GetByID(ctx, prevMenuID)
		if err != nil {
			return nil, errors.Wrapf(err, "get menu %q", prevMenuID)
		}
		o.Quantity = *patch.Quantity
		o.TotalPrice = m.Price.Mul(decimal.NewFromInt(int64(*patch.Quantity)))
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, errors.Wrapf(err, "update order %q", id)
	}
	return o, nil
}

// Delete removes the order permanently. No event is published.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return errors.Wrapf(err, "delete order %q", id)
	}
	return nil
}

// List returns all orders.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.orders.List(ctx)
}

// GetByID returns a single order by its identifier.
func (s *Service) GetByID(ctx context.Context, id string) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}
