package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/products-api/internal/middleware"
	"github.com/deppfellow/products-api/internal/server"
)

// HealthHandler exposes a "system" endpoint that load balancers and uptime
// monitors use to verify the service is alive and ready to validate requests.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns system health status and checks.
//
// Response includes:
// - overall status (healthy/unhealthy)
// - timestamp (UTC)
// - environment (from config)
// - checks map (validation: number of registered rulesets)
//
// It returns:
// - 200 OK if all checks pass
// - 503 Service Unavailable if no ruleset is registered
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}

	checks := response["checks"].(map[string]interface{})

	registered := h.server.Validation.Registry().Len()
	isHealthy := registered > 0

	if isHealthy {
		checks["validation"] = map[string]interface{}{
			"status":                "healthy",
			"registered_validators": registered,
		}
	} else {
		checks["validation"] = map[string]interface{}{
			"status":                "unhealthy",
			"registered_validators": registered,
			"error":                 "no validators registered",
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent(
				"HealthCheckError",
				map[string]interface{}{
					"check_type":        "validation",
					"operation":         "health_check",
					"error_type":        "no_validators",
					"total_duration_ms": time.Since(start).Milliseconds(),
				},
			)
		}

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
