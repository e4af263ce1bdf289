package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"coffee-shop-api/internal/config"
	"coffee-shop-api/internal/logger"
	"coffee-shop-api/internal/models"
	"coffee-shop-api/internal/service"
)

// Handler exposes the service over HTTP with the JSON error envelopes the
// clients expect.
type Handler struct {
	service *service.Service
	logger  *logger.Logger
	auth    config.AuthConfig
}

// NewHandler creates the HTTP handler.
func NewHandler(svc *service.Service, log *logger.Logger, auth config.AuthConfig) *Handler {
	return &Handler{
		service: svc,
		logger:  log,
		auth:    auth,
	}
}

// errorResponse is the envelope for every non-2xx response.
type errorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// SetupRoutes builds the route table. All /v1 routes sit behind the shared
// credential gate; /health stays open for probes.
func (h *Handler) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/orders", h.guard(h.ListOrders))
	mux.HandleFunc("POST /v1/orders", h.guard(h.CreateOrder))
	mux.HandleFunc("GET /v1/orders/{id}", h.guard(h.GetOrder))
	mux.HandleFunc("PUT /v1/orders/{id}", h.guard(h.UpdateOrder))
	mux.HandleFunc("DELETE /v1/orders/{id}", h.guard(h.DeleteOrder))

	mux.HandleFunc("GET /v1/menu", h.guard(h.ListMenu))
	mux.HandleFunc("GET /v1/menu/{id}", h.guard(h.GetMenuItem))
	mux.HandleFunc("POST /v1/menu", h.guard(h.CreateMenuItem))
	mux.HandleFunc("PUT /v1/menu/{id}", h.guard(h.UpdateMenuItem))

	mux.HandleFunc("GET /health", h.withLogging(h.HealthCheck))

	return mux
}

func (h *Handler) guard(next http.HandlerFunc) http.HandlerFunc {
	return h.withLogging(h.requireAuth(next))
}

// ListOrders handles GET /v1/orders.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /v1/orders/{id}.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "Order")
	if !ok {
		return
	}
	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

// CreateOrder handles POST /v1/orders. The response body is the bare id of
// the new order.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var candidate models.OrderCandidate
	if !h.decodeBody(w, r, &candidate) {
		return
	}
	order, err := h.service.CreateOrder(r.Context(), &candidate)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, order.ID)
}

// UpdateOrder handles PUT /v1/orders/{id}.
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "Order")
	if !ok {
		return
	}
	var candidate models.OrderCandidate
	if !h.decodeBody(w, r, &candidate) {
		return
	}
	order, err := h.service.UpdateOrder(r.Context(), id, &candidate)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

// DeleteOrder handles DELETE /v1/orders/{id}.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "Order")
	if !ok {
		return
	}
	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMenu handles GET /v1/menu.
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListMenu(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

// GetMenuItem handles GET /v1/menu/{id}.
func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "Menu item")
	if !ok {
		return
	}
	item, err := h.service.GetMenuItem(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, item)
}

// CreateMenuItem handles POST /v1/menu.
func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var candidate models.MenuItemCandidate
	if !h.decodeBody(w, r, &candidate) {
		return
	}
	item, err := h.service.CreateMenuItem(r.Context(), &candidate)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, item)
}

// UpdateMenuItem handles PUT /v1/menu/{id}.
func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "Menu item")
	if !ok {
		return
	}
	var candidate models.MenuItemCandidate
	if !h.decodeBody(w, r, &candidate) {
		return
	}
	item, err := h.service.UpdateMenuItem(r.Context(), id, &candidate)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, item)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"service":   "coffee-shop-api",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, entity string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("%s ID must be a number", entity))
		return 0, false
	}
	return id, true
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.Error("validation_failed", requestID(r), "Failed to parse request body", err)
		h.writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return false
	}
	return true
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		h.logger.Debug("validation_failed", requestID(r),
			fmt.Sprintf("Rejected request with %d validation errors", len(validationErr.Errors)))
		h.writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Validation error",
			Errors:  validationErr.Errors,
		})
		return
	}

	var notFoundErr *service.NotFoundError
	if errors.As(err, &notFoundErr) {
		h.writeError(w, http.StatusNotFound, notFoundErr.Error())
		return
	}

	h.logger.Error("request_failed", requestID(r), "Unexpected service error", err)
	h.writeError(w, http.StatusInternalServerError, "Internal server error")
}

func (h *Handler) writeError(w http.ResponseWriter, code int, message string) {
	h.writeJSON(w, code, errorResponse{Code: code, Message: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response_encoding_failed", "", "Failed to encode response", err)
	}
}
