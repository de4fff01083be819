package handler

import (
	"net/http"

	"github.com/domiflash/delivery-api/internal/domain/menu"
	"github.com/domiflash/delivery-api/internal/domain/product"
)

type productResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type menuResponse struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurant_id"`
	ProductID    string  `json:"product_id"`
	Price        float64 `json:"price"`
}

type customerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	list, err := h.products.List(r.Context())
	if err != nil {
		h.internalError(w, r, "List products", err)
		return
	}

	resp := make([]productResponse, len(list))
	for i, p := range list {
		resp[i] = toProductResponse(p)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) listMenus(w http.ResponseWriter, r *http.Request) {
	list, err := h.menus.List(r.Context())
	if err != nil {
		h.internalError(w, r, "List menus", err)
		return
	}

	resp := make([]menuResponse, len(list))
	for i, m := range list {
		resp[i] = toMenuResponse(m)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	list, err := h.customers.List(r.Context())
	if err != nil {
		h.internalError(w, r, "List customers", err)
		return
	}

	resp := make([]customerResponse, len(list))
	for i, c := range list {
		resp[i] = customerResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func toProductResponse(p product.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    p.Category,
	}
}

func toMenuResponse(m menu.Item) menuResponse {
	return menuResponse{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		ProductID:    m.ProductID,
		Price:        m.Price.InexactFloat64(),
	}
}
