package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/domiflash/delivery-api/internal/domain/menu"
	"github.com/domiflash/delivery-api/internal/domain/order"
)

type createOrderRequest struct {
	CustomerID   string  `json:"customer_id"`
	MenuID       string  `json:"menu_id"`
	MotorcycleID *string `json:"motorcycle_id"`
	Quantity     *int    `json:"quantity"`
	Status       string  `json:"status"`
}

type updateOrderRequest struct {
	CustomerID   *string `json:"customer_id"`
	MenuID       *string `json:"menu_id"`
	MotorcycleID *string `json:"motorcycle_id"`
	Quantity     *int    `json:"quantity"`
	Status       *string `json:"status"`
}

type orderResponse struct {
	ID           string  `json:"id"`
	CustomerID   string  `json:"customer_id"`
	MenuID       string  `json:"menu_id"`
	MotorcycleID *string `json:"motorcycle_id"`
	Quantity     int     `json:"quantity"`
	TotalPrice   float64 `json:"total_price"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

func toOrderResponse(o *order.Order) orderResponse {
	return orderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		MenuID:       o.MenuID,
		MotorcycleID: o.MotorcycleID,
		Quantity:     o.Quantity,
		TotalPrice:   o.TotalPrice.InexactFloat64(),
		Status:       o.Status,
		CreatedAt:    o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.orders.List(r.Context())
	if err != nil {
		h.internalError(w, r, "List orders", err)
		return
	}

	resp := make([]orderResponse, len(list))
	for i := range list {
		resp[i] = toOrderResponse(&list[i])
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "order not found")
			return
		}
		h.internalError(w, r, "Get order", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toOrderResponse(o))
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.Create(r.Context(), order.CreateRequest{
		CustomerID:   req.CustomerID,
		MenuID:       req.MenuID,
		MotorcycleID: req.MotorcycleID,
		Quantity:     req.Quantity,
		Status:       req.Status,
	})
	if err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "menu not found")
			return
		}
		h.internalError(w, r, "Create order", err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toOrderResponse(o))
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.Update(r.Context(), r.PathValue("id"), order.UpdateRequest{
		CustomerID:   req.CustomerID,
		MenuID:       req.MenuID,
		MotorcycleID: req.MotorcycleID,
		Quantity:     req.Quantity,
		Status:       req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			writeError(w, r, http.StatusNotFound, "order not found")
		case errors.Is(err, menu.ErrNotFound):
			writeError(w, r, http.StatusNotFound, "menu not found")
		default:
			h.internalError(w, r, "Update order", err)
		}
		return
	}
	writeJSON(w, r, http.StatusOK, toOrderResponse(o))
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "order not found")
			return
		}
		h.internalError(w, r, "Delete order", err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	zctx.From(r.Context()).Error(op, zap.Error(err))
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}
