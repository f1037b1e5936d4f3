package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"
)

type (
	// Pinger is the store connection the health check pings.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	// HealthSrvc handles business logic for health check functionality
	HealthSrvc struct {
		store   Pinger
		timeout time.Duration
	}

	// HealthResponse represents the response structure for health check endpoint
	HealthResponse struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
		Database  bool      `json:"database"`
	}
)

func NewHealthHandler(srvc *HealthSrvc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := hlog.FromRequest(r)

		response := srvc.check(ctx)

		w.Header().Set("Content-Type", "application/json")

		if response.Database {
			logger.Debug().Msg("Database healthcheck ok")
			w.WriteHeader(http.StatusOK)
		} else {
			logger.Error().Msg("Database healthcheck failed")
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error().Err(err).Msg("Failed to encode health check response")
		}
	}
}

func NewHealthSrvc(store Pinger) *HealthSrvc {
	return &HealthSrvc{store: store, timeout: 2 * time.Second}
}

func (s *HealthSrvc) check(ctx context.Context) HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	dbOk := s.store.Ping(ctx) == nil
	now := time.Now().UTC()

	if dbOk {
		return HealthResponse{
			Status:    "serving",
			Timestamp: now,
			Database:  dbOk,
		}
	}
	return HealthResponse{
		Status:    "not serving",
		Timestamp: now,
		Database:  dbOk,
	}
}
