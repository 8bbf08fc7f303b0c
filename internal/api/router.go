package api

import (
	"net/http"

	"github.com/alexivanou/weather-history/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router
func NewRouter(
	service service.ServiceInterface,
	statsCollector StatsCollector,
	migrator Migrator,
	metricsHandler http.Handler,
	logger *zap.Logger,
) *mux.Router {
	handler := NewHandler(service, logger)
	statsHandler := NewStatsHandler(statsCollector, migrator, logger)

	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	router.Handle("/metrics", metricsHandler).Methods("GET")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/records", handler.ListRecords).Methods("GET")
	v1.HandleFunc("/records", handler.CreateRecord).Methods("POST")
	v1.HandleFunc("/records/{id}", handler.GetRecord).Methods("GET")
	v1.HandleFunc("/records/{id}", handler.UpdateRecord).Methods("PATCH")
	v1.HandleFunc("/records/{id}", handler.DeleteRecord).Methods("DELETE")
	v1.HandleFunc("/records/{id}/temperatures", handler.AddTemperature).Methods("POST")
	v1.HandleFunc("/migrate", statsHandler.Migrate).Methods("POST")
	v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	return router
}
