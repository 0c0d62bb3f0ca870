package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/products-api/internal/errs"
	"github.com/deppfellow/products-api/internal/server"
	"github.com/deppfellow/products-api/internal/validation"
)

// GlobalMiddlewares groups "global" middleware and the global error handler.
//
// It keeps a pointer to the application container so middleware can read
// config values (CORS origins, env) and the logger.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured by the server config.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  global.server.Config.Server.CORSAllowedOrigins,
		ExposeHeaders: []string{RequestIDHeader},
	})
}

// RequestLogger returns Echo's request logger middleware writing one
// structured "API" line per request, with severity based on status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// When a handler returns an error the final status is only written
			// later by GlobalErrorHandler, so derive it from the error.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			statusCode := v.Status
			if v.Error != nil {
				statusCode = statusOf(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware.
// Panics become errors and end up in GlobalErrorHandler as 500.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// statusOf returns the status code the error handler will answer err with.
func statusOf(err error) int {
	var problem *validation.ProblemDetails
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &problem):
		return problem.Status
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error returned by a handler or middleware ends up here:
//   - *validation.ProblemDetails is written as application/problem+json.
//   - *errs.HTTPError is written as is.
//   - Echo errors are converted into the HTTPError shape (404 routes get a friendly message).
//   - Anything else is a downstream fault and becomes a generic 500; the
//     real error is only logged.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	logger := GetLogger(c)

	if c.Response().Committed {
		logger.Error().Err(err).Msg("error after response was committed")
		return
	}

	var problem *validation.ProblemDetails
	if errors.As(err, &problem) {
		logger.Warn().
			Int("status", problem.Status).
			Interface("errors", problem.Errors).
			Msg("request validation failed")

		c.Response().Header().Set(echo.HeaderContentType, validation.ContentTypeProblemJSON)
		_ = c.JSON(problem.Status, problem)

		return
	}

	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if echoErr.Code == http.StatusNotFound {
				httpErr = errs.NewNotFoundError("Route not found", false)
			} else {
				message, ok := echoErr.Message.(string)
				if !ok {
					message = http.StatusText(echoErr.Code)
				}

				httpErr = &errs.HTTPError{
					Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
					Message: message,
					Status:  echoErr.Code,
				}
			}
		} else {
			httpErr = errs.NewInternalServerError()
		}
	}

	var e *zerolog.Event
	if httpErr.Status >= http.StatusInternalServerError {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}

	e.Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	_ = c.JSON(httpErr.Status, httpErr)
}
