package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// Version is reported by the health endpoint
var Version = "1.0.0"

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger  *slog.Logger
	backend string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(backend string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		backend: backend,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Store     string    `json:"store"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
		Store:     h.backend,
	}, h.logger)
}
