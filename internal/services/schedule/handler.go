package schedule

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hospital-meals/internal/logger"
)

// Handler exposes the schedule queries over HTTP
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new schedule handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Routes mounts the schedule endpoints on a chi router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/schedule", h.GetSchedule)
	r.Get("/schedule/{date}", h.GetScheduleDetail)
	r.Get("/loyalty", h.GetLoyalty)

	return r
}

// GetSchedule handles GET /schedule
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.ScheduledOrders())
}

// GetScheduleDetail handles GET /schedule/{date}
func (h *Handler) GetScheduleDetail(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	date := chi.URLParam(r, "date")

	lines, err := h.service.ScheduledOrderDetail(date, requestID)
	if err != nil {
		h.writeErrorResponse(w, http.StatusNotFound, err.Error(), requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, lines)
}

// GetLoyalty handles GET /account/loyalty when mounted under /account
func (h *Handler) GetLoyalty(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Loyalty())
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}
