// Package handler exposes the delivery API over HTTP. It converts JSON
// requests to domain calls and maps domain errors to {code, message} bodies.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/domiflash/delivery-api/internal/domain/customer"
	"github.com/domiflash/delivery-api/internal/domain/menu"
	"github.com/domiflash/delivery-api/internal/domain/order"
	"github.com/domiflash/delivery-api/internal/domain/product"
)

// Handler holds the domain dependencies for all HTTP endpoints.
type Handler struct {
	orders    *order.Service
	products  product.Repository
	menus     menu.Repository
	customers customer.Repository
	notifier  order.Notifier
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	orders *order.Service,
	products product.Repository,
	menus menu.Repository,
	customers customer.Repository,
	notifier order.Notifier,
) *Handler {
	return &Handler{
		orders:    orders,
		products:  products,
		menus:     menus,
		customers: customers,
		notifier:  notifier,
	}
}

// Routes registers all API endpoints on mux using method-qualified patterns.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/orders", h.listOrders)
	mux.HandleFunc("POST /api/orders", h.createOrder)
	mux.HandleFunc("GET /api/orders/{id}", h.getOrder)
	mux.HandleFunc("PUT /api/orders/{id}", h.updateOrder)
	mux.HandleFunc("DELETE /api/orders/{id}", h.deleteOrder)
	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/menus", h.listMenus)
	mux.HandleFunc("GET /api/customers", h.listCustomers)
	mux.HandleFunc("POST /api/notifications", h.notifyGlobal)
}

// errorResponse is the body for every non-2xx answer.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zctx.From(r.Context()).Error("Encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, errorResponse{Code: status, Message: message})
}
