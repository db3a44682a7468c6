package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolcrm-backend/internal/response"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one backing service.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler reports liveness plus the state of the store and session backends.
type HealthHandler struct {
	checks    []HealthCheck
	startTime time.Time
	log       zerolog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(log zerolog.Logger, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks:    checks,
		startTime: time.Now(),
		log:       log.With().Str("component", "health_handler").Logger(),
	}
}

type healthReport struct {
	Status     string            `json:"status"`
	Uptime     string            `json:"uptime"`
	GoVersion  string            `json:"go_version"`
	Goroutines int               `json:"goroutines"`
	Checks     map[string]string `json:"checks,omitempty"`
}

// Health godoc
// GET /health
// Returns 200 when every backend answers, 503 otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	report := healthReport{
		Status:     "ok",
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
	}

	status := http.StatusOK
	if len(h.checks) > 0 {
		report.Checks = make(map[string]string, len(h.checks))
	}
	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.log.Warn().Err(err).Str("check", check.Name).Msg("Health check failed")
			report.Checks[check.Name] = "down"
			report.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		report.Checks[check.Name] = "up"
	}

	response.Success(c, status, report)
}
