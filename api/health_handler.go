package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        pinger
}

func newHealthHandler(db pinger, development bool) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder: NewResponder(logger).WithDevelopment(development),
		logger:    logger,
		db:        db,
	}
}

// health reports liveness and database reachability
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Failure 503 {object} HealthResponse "unhealthy"
// @Router /health [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error().Err(err).Msg("database ping failed")
			h.responder.WriteJSONStatus(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy"})
			return
		}
		h.responder.WriteJSON(w, HealthResponse{Status: "ok"})
	}
}
