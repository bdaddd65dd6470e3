package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Pinger is satisfied by every credential store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles GET /health: liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HealthDependenciesHandler handles GET /health/ready: readiness probe.
// Checks the credential store and, when configured, Redis. Failure causes are
// logged, never rendered.
type HealthDependenciesHandler struct {
	storeName string
	store     Pinger
	redis     *redis.Client
	log       zerolog.Logger
}

// NewHealthDependenciesHandler builds the readiness probe. rdb may be nil when
// login throttling is disabled.
func NewHealthDependenciesHandler(storeName string, store Pinger, rdb *redis.Client, log zerolog.Logger) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{
		storeName: storeName,
		store:     store,
		redis:     rdb,
		log:       log,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	if err := h.store.Ping(ctx); err != nil {
		h.log.Error().Err(err).Str("dependency", h.storeName).Msg("readiness check failed")
		deps[h.storeName] = dependencyStatus{Status: "unhealthy"}
		healthy = false
	} else {
		deps[h.storeName] = dependencyStatus{Status: "ok"}
	}

	if h.redis != nil {
		if _, err := h.redis.Ping(ctx).Result(); err != nil {
			h.log.Error().Err(err).Str("dependency", "redis").Msg("readiness check failed")
			deps["redis"] = dependencyStatus{Status: "unhealthy"}
			healthy = false
		} else {
			deps["redis"] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
