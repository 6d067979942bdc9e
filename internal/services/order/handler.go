package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hospital-meals/internal/logger"
	"hospital-meals/internal/models"
)

// Handler exposes the order engine over HTTP. It carries the guards the
// engine deliberately leaves to its caller: quantity sanitization,
// past-date rejection, hospital enumeration and the empty-cart check.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Routes mounts the order endpoints on a chi router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.withLogging)

	r.Get("/menu", h.GetMenu)
	r.Get("/menu/{id}", h.GetMenuItem)

	r.Get("/cart", h.GetCart)
	r.Put("/cart/items/{id}", h.UpdateQuantity)
	r.Put("/cart/items/{id}/date", h.SetItemDate)
	r.Delete("/cart", h.ClearCart)

	r.Get("/session", h.GetSession)
	r.Put("/session/date", h.SetGlobalDate)
	r.Put("/session/hospital", h.SetHospital)
	r.Put("/session/referral-code", h.SetReferralCode)

	r.Post("/orders", h.PlaceOrder)
	r.Get("/health", h.HealthCheck)

	return r
}

// GetMenu handles GET /menu
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Catalog())
}

// GetMenuItem handles GET /menu/{id}
func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	item, ok := h.service.MenuItem(itemID)
	if !ok {
		h.writeErrorResponse(w, http.StatusNotFound, "menu item not found", requestIDFrom(r))
		return
	}

	h.writeJSON(w, http.StatusOK, item)
}

// GetCart handles GET /cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.CartView())
}

// UpdateQuantity handles PUT /cart/items/{id}
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	itemID := chi.URLParam(r, "id")

	var req models.UpdateQuantityRequest
	if !h.decodeJSON(w, r, &req, requestID) {
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Error("validation_failed", "Quantity validation failed", requestID, err, map[string]interface{}{
			"item_id": itemID,
		})
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, h.service.UpdateQuantity(itemID, req.Quantity, requestID))
}

// SetItemDate handles PUT /cart/items/{id}/date
func (h *Handler) SetItemDate(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	itemID := chi.URLParam(r, "id")

	var req models.SetDateRequest
	if !h.decodeJSON(w, r, &req, requestID) {
		return
	}

	if err := req.Validate(time.Now()); err != nil {
		h.logger.Error("validation_failed", "Item date validation failed", requestID, err, map[string]interface{}{
			"item_id": itemID,
		})
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, h.service.SetItemDate(itemID, req.Date, requestID))
}

// ClearCart handles DELETE /cart
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.service.ClearCart(requestIDFrom(r))
	h.writeJSON(w, http.StatusOK, h.service.CartView())
}

// GetSession handles GET /session
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.SessionView())
}

// SetGlobalDate handles PUT /session/date
func (h *Handler) SetGlobalDate(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var req models.SetDateRequest
	if !h.decodeJSON(w, r, &req, requestID) {
		return
	}

	if err := req.Validate(time.Now()); err != nil {
		h.logger.Error("validation_failed", "Date validation failed", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, h.service.SetGlobalDate(req.Date, requestID))
}

// SetHospital handles PUT /session/hospital
func (h *Handler) SetHospital(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var req models.SetHospitalRequest
	if !h.decodeJSON(w, r, &req, requestID) {
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Error("validation_failed", "Hospital validation failed", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	h.service.SetHospital(req.Hospital, requestID)
	h.writeJSON(w, http.StatusOK, h.service.SessionView())
}

// SetReferralCode handles PUT /session/referral-code. An invalid code
// is not an error; the response just reports valid=false.
func (h *Handler) SetReferralCode(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var req models.SetReferralCodeRequest
	if !h.decodeJSON(w, r, &req, requestID) {
		return
	}

	h.writeJSON(w, http.StatusOK, h.service.SetReferralCode(req.Code, requestID))
}

// PlaceOrder handles POST /orders
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	resp, err := h.service.PlaceOrder(requestID)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			h.writeErrorResponse(w, http.StatusBadRequest, "cart is empty", requestID)
			return
		}
		h.logger.Error("order_failed", "Failed to place order", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "meal-delivery",
	})
}

// decodeJSON parses a JSON request body, writing the error response
// itself when parsing fails
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, requestID string) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json", requestID)
		return false
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	}

	json.NewEncoder(w).Encode(errorResponse)
}

type requestIDKey struct{}

func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// withLogging assigns a request id and logs request start and completion
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		ctx := contextWithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
