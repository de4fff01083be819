//go:build integration

package integration

import (
	"encoding/json"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type customerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type wsFrame struct {
	Event string `json:"event"`
	Data  struct {
		Title     string         `json:"title"`
		Message   string         `json:"message"`
		Timestamp string         `json:"timestamp"`
		Extra     map[string]any `json:"extra"`
	} `json:"data"`
}

func pickCustomer(t *testing.T) customerResponse {
	t.Helper()

	resp := doGet(t, "/api/customers")
	defer resp.Body.Close()
	customers := decodeJSON[[]customerResponse](t, resp)
	if len(customers) == 0 {
		t.Fatal("no seeded customers")
	}
	return customers[0]
}

func pickMenus(t *testing.T) []menuResponse {
	t.Helper()

	resp := doGet(t, "/api/menus")
	defer resp.Body.Close()
	menus := decodeJSON[[]menuResponse](t, resp)
	if len(menus) < 2 {
		t.Fatalf("need at least 2 seeded menus, got %d", len(menus))
	}
	return menus
}

func TestOrderLifecycle(t *testing.T) {
	cust := pickCustomer(t)
	menus := pickMenus(t)

	// Create.
	resp := doJSON(t, http.MethodPost, "/api/orders", map[string]any{
		"customer_id": cust.ID,
		"menu_id":     menus[0].ID,
		"quantity":    2,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	created := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()

	if created.Status != "pending" {
		t.Errorf("expected pending status, got %q", created.Status)
	}
	wantTotal := menus[0].Price * 2
	if math.Abs(created.TotalPrice-wantTotal) > 0.01 {
		t.Errorf("expected total %.2f, got %.2f", wantTotal, created.TotalPrice)
	}

	// Read back.
	resp = doGet(t, "/api/orders/"+created.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Update status only; total must not move.
	resp = doJSON(t, http.MethodPut, "/api/orders/"+created.ID, map[string]any{
		"status": "in_progress",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}
	updated := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()
	if updated.Status != "in_progress" {
		t.Errorf("expected in_progress, got %q", updated.Status)
	}
	if math.Abs(updated.TotalPrice-created.TotalPrice) > 0.001 {
		t.Errorf("status update moved total: %.2f -> %.2f", created.TotalPrice, updated.TotalPrice)
	}

	// Delete.
	resp = doDelete(t, "/api/orders/"+created.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.StatusCode)
	}
	body := decodeJSON[map[string]string](t, resp)
	resp.Body.Close()
	if body["message"] != "Order deleted successfully" {
		t.Errorf("unexpected delete message %q", body["message"])
	}

	resp = doGet(t, "/api/orders/"+created.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUpdateMenuAndQuantityPricesAgainstPreviousMenu(t *testing.T) {
	cust := pickCustomer(t)
	menus := pickMenus(t)

	resp := doJSON(t, http.MethodPost, "/api/orders", map[string]any{
		"customer_id": cust.ID,
		"menu_id":     menus[0].ID,
		"quantity":    2,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	created := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, "/api/orders/"+created.ID, map[string]any{
		"menu_id":  menus[1].ID,
		"quantity": 4,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}
	updated := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()

	// Combined patch prices against the menu as stored before the patch.
	wantTotal := menus[0].Price * 4
	if math.Abs(updated.TotalPrice-wantTotal) > 0.01 {
		t.Errorf("expected total %.2f (previous menu price x new quantity), got %.2f", wantTotal, updated.TotalPrice)
	}
	if updated.MenuID != menus[1].ID {
		t.Errorf("expected menu %q, got %q", menus[1].ID, updated.MenuID)
	}
}

func TestCreateOrder_UnknownMenu(t *testing.T) {
	cust := pickCustomer(t)

	resp := doJSON(t, http.MethodPost, "/api/orders", map[string]any{
		"customer_id": cust.ID,
		"menu_id":     "does-not-exist",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	body := decodeJSON[errorResponse](t, resp)
	if body.Code != 404 {
		t.Errorf("expected code 404 in body, got %d", body.Code)
	}
}

func TestOrderCreationBroadcast(t *testing.T) {
	cust := pickCustomer(t)
	menus := pickMenus(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	defer conn.Close()

	resp := doJSON(t, http.MethodPost, "/api/orders", map[string]any{
		"customer_id": cust.ID,
		"menu_id":     menus[0].ID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read broadcast frame: %v", err)
	}

	var frame wsFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		t.Fatalf("decode frame: %v", err)
	}

	if frame.Event != "notificacion" {
		t.Errorf("expected event notificacion, got %q", frame.Event)
	}
	if frame.Data.Title != "🎉 ¡Hay un nuevo pedido!" {
		t.Errorf("unexpected title %q", frame.Data.Title)
	}
	if frame.Data.Timestamp == "" {
		t.Error("expected RFC3339 timestamp, got empty")
	}
	if frame.Data.Extra == nil {
		t.Error("expected extra to be an object, got null")
	}
}

func TestGlobalNotificationBroadcast(t *testing.T) {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	defer conn.Close()

	resp := doJSON(t, http.MethodPost, "/api/notifications", map[string]any{
		"title":   "Aviso",
		"message": "Cierre temprano hoy.",
		"extra":   map[string]any{"scope": "global"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("notify: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read broadcast frame: %v", err)
	}

	var frame wsFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if frame.Data.Title != "Aviso" {
		t.Errorf("unexpected title %q", frame.Data.Title)
	}
	if frame.Data.Extra["scope"] != "global" {
		t.Errorf("unexpected extra %v", frame.Data.Extra)
	}
}
