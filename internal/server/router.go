package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// setupRoutes configures the HTTP routes for the server.
func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.Use(s.loggingMiddleware)
	router.Use(recoveryMiddleware(s.logger))

	// Health and version endpoints
	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/version", s.handleVersion).Methods("GET")

	// Prometheus metrics
	router.Handle("/metrics", s.collector.Handler()).Methods("GET")

	// API v1 routes
	v1 := router.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/metrics", s.handleIngestMetrics).Methods("POST")
	v1.HandleFunc("/anomalies", s.handleGetAnomalies).Methods("GET")
	v1.HandleFunc("/predictions", s.handleGetPredictions).Methods("GET")
	v1.HandleFunc("/predictions/{metric}", s.handleGetPrediction).Methods("GET")
	v1.HandleFunc("/patterns", s.handleGetPatterns).Methods("GET")
	v1.HandleFunc("/summary", s.handleGetSummary).Methods("GET")
	v1.HandleFunc("/data", s.handleClearData).Methods("DELETE")

	return router
}
