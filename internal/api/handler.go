package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alexivanou/weather-history/internal/model"
	"github.com/alexivanou/weather-history/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Handler handles HTTP requests
type Handler struct {
	service service.ServiceInterface
	logger  *zap.Logger
	now     func() time.Time
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger, now: time.Now}
}

// ListRecords handles GET /api/v1/records
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records := h.service.GetAllRecords(r.Context())
	h.writeJSON(w, http.StatusOK, records)
}

// GetRecord handles GET /api/v1/records/{id}
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, ok := h.service.GetRecordByID(r.Context(), id)
	if !ok {
		http.Error(w, "weather record not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, record)
}

// CreateRecord handles POST /api/v1/records
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var in model.NewRecord
	if !h.decode(w, r, &in) {
		return
	}

	if strings.TrimSpace(in.Location) == "" {
		http.Error(w, "location is required", http.StatusBadRequest)
		return
	}
	if err := validateDateRange(in.StartDate, in.EndDate, h.now()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, sample := range in.Temperatures {
		if err := validateDate(sample.Date, errInvalidTemperatureDate); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	record, err := h.service.CreateRecord(r.Context(), in)
	if err != nil {
		h.logger.Error("Error creating weather record", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusCreated, record)
}

// UpdateRecord handles PATCH /api/v1/records/{id}
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var update model.RecordUpdate
	if !h.decode(w, r, &update) {
		return
	}

	switch {
	case update.StartDate != nil && update.EndDate != nil:
		if err := validateDateRange(*update.StartDate, *update.EndDate, h.now()); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	case update.StartDate != nil:
		if err := validateDate(*update.StartDate, errInvalidStartDate); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	case update.EndDate != nil:
		if err := validateDate(*update.EndDate, errInvalidEndDate); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	record, err := h.service.UpdateRecord(r.Context(), id, update)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, "weather record not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Error updating weather record", zap.String("id", id), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, record)
}

// DeleteRecord handles DELETE /api/v1/records/{id}
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleted, err := h.service.DeleteRecord(r.Context(), id)
	if err != nil {
		h.logger.Error("Error deleting weather record", zap.String("id", id), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "weather record not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddTemperature handles POST /api/v1/records/{id}/temperatures
func (h *Handler) AddTemperature(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var sample model.TemperatureRecord
	if !h.decode(w, r, &sample) {
		return
	}
	if err := validateDate(sample.Date, errInvalidTemperatureDate); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.service.AddTemperature(r.Context(), id, sample)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, "weather record not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Error adding temperature", zap.String("id", id), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, record)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	writeJSON(w, h.logger, status, v)
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Error encoding response", zap.Error(err))
	}
}
