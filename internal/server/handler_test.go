package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffee-shop-api/internal/config"
	"coffee-shop-api/internal/logger"
	"coffee-shop-api/internal/models"
	"coffee-shop-api/internal/service"
	"coffee-shop-api/internal/store"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	menu := store.NewMemoryMenuStore()
	_, err := menu.Insert(ctx, models.MenuItem{Name: "Espresso", Price: 2.50, Size: models.SizeSmall})
	require.NoError(t, err)
	_, err = menu.Insert(ctx, models.MenuItem{Name: "Cappuccino", Price: 3.50})
	require.NoError(t, err)

	log := logger.New("test")
	svc := service.New(menu, store.NewMemoryOrderStore(), service.NopPublisher{}, log)
	handler := NewHandler(svc, log, config.AuthConfig{Username: "admin", Password: "password"})
	return handler.SetupRoutes()
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.SetBasicAuth("admin", "password")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuth_MissingCredentials(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/menu", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic")
	body := decodeError(t, rec)
	assert.Equal(t, 401, body.Code)
	assert.Equal(t, "Unauthorized access", body.Message)
}

func TestAuth_WrongPassword(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/menu", nil)
	req.SetBasicAuth("admin", "wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealth_NoAuthRequired(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListMenu(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/v1/menu", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Espresso", items[0].Name)
}

func TestGetMenuItem_Missing(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/v1/menu/42", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Menu item with ID 42 not found", body.Message)
}

func TestCreateOrder_ReturnsBareID(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodPost, "/v1/orders",
		`{"customer_name":"Ann","items":[{"menu_item_id":1,"quantity":2},{"menu_item_id":2,"quantity":1}]}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "1", strings.TrimSpace(rec.Body.String()))

	got := doRequest(t, handler, http.MethodGet, "/v1/orders/1", "")
	assert.Equal(t, http.StatusOK, got.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &order))
	assert.Equal(t, 8.50, order.TotalPrice)
}

func TestCreateOrder_ValidationEnvelope(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodPost, "/v1/orders", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, 400, body.Code)
	assert.Equal(t, "Validation error", body.Message)
	assert.Contains(t, body.Errors, "customer_name is required")
	assert.Contains(t, body.Errors, "items is required")
}

func TestCreateOrder_UnknownMenuItem(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodPost, "/v1/orders",
		`{"customer_name":"Ann","items":[{"menu_item_id":99,"quantity":1}]}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Menu item with ID 99 not found", body.Message)

	list := doRequest(t, handler, http.MethodGet, "/v1/orders", "")
	assert.Equal(t, "[]", strings.TrimSpace(list.Body.String()))
}

func TestCreateOrder_MalformedJSON(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodPost, "/v1/orders", `{"customer_name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON format", decodeError(t, rec).Message)
}

func TestUpdateOrder_ReturnsFullRecord(t *testing.T) {
	handler := newTestHandler(t)

	doRequest(t, handler, http.MethodPost, "/v1/orders",
		`{"customer_name":"Ann","items":[{"menu_item_id":1,"quantity":1}]}`)

	rec := doRequest(t, handler, http.MethodPut, "/v1/orders/1",
		`{"customer_name":"Bob","items":[{"menu_item_id":2,"quantity":3}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, 1, order.ID)
	assert.Equal(t, "Bob", order.CustomerName)
	assert.Equal(t, 10.50, order.TotalPrice)
}

func TestUpdateOrder_NotFoundBeatsBadBody(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodPut, "/v1/orders/12345", `{}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order with ID 12345 not found", decodeError(t, rec).Message)
}

func TestDeleteOrder(t *testing.T) {
	handler := newTestHandler(t)

	doRequest(t, handler, http.MethodPost, "/v1/orders",
		`{"customer_name":"Ann","items":[{"menu_item_id":1,"quantity":1}]}`)

	rec := doRequest(t, handler, http.MethodDelete, "/v1/orders/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	again := doRequest(t, handler, http.MethodDelete, "/v1/orders/1", "")
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestOrderID_NotANumber(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodDelete, "/v1/orders/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Order ID must be a number", decodeError(t, rec).Message)
}

func TestCreateMenuItem(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodPost, "/v1/menu",
		`{"name":"Flat White","price":3.80,"size":"Medium","promotion":{"type":"bogo","description":"Buy one get one"}}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var item models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, 3, item.ID)
	assert.Equal(t, "Flat White", item.Name)
	require.NotNil(t, item.Promotion)
	assert.Equal(t, models.PromotionBogo, item.Promotion.Type)
}

func TestCreateMenuItem_ValidationEnvelope(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodPost, "/v1/menu", `{"name":"Ab","price":-1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Contains(t, body.Errors, "Name must be between 3 and 50 characters")
	assert.Contains(t, body.Errors, "Price must be a non-negative number")
}

func TestUpdateMenuItem(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodPut, "/v1/menu/1",
		`{"name":"Espresso","description":"Updated","price":2.80}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var item models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, 1, item.ID)
	assert.Equal(t, 2.80, item.Price)
	assert.Equal(t, "Updated", item.Description)
	// Replace is wholesale: fields absent from the body are cleared.
	assert.Empty(t, item.Size)
}

func TestUpdateMenuItem_Missing(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodPut, "/v1/menu/42", `{"name":"Mocha","price":4.00}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Menu item with ID 42 not found", decodeError(t, rec).Message)
}
