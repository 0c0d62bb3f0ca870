package handler

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/products-api/internal/errs"
	"github.com/deppfellow/products-api/internal/middleware"
	"github.com/deppfellow/products-api/internal/model/product"
	"github.com/deppfellow/products-api/internal/server"
	"github.com/deppfellow/products-api/internal/validation"
)

// Handler is the base handler type that holds shared application dependencies.
//
// It is embedded by concrete handlers (ProductHandler, HealthHandler, ...) so
// they can access config, logger and the validation filter via *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// --- Generic typed handler plumbing -----------------------------------------

// HandlerFunc represents a typed endpoint function that:
//
// - receives a bound and validated request (*Req)
// - returns a response (Res) or an error
type HandlerFunc[Req, Res any] func(c echo.Context, req *Req) (Res, error)

// HandlerFuncNoContent is a typed endpoint function for routes that return no response body
// (e.g., 202 Accepted).
type HandlerFuncNoContent[Req any] func(c echo.Context, req *Req) error

// ResponseHandler defines how a successful handler result is written to the
// HTTP response, and how observability attributes are attached for it.
type ResponseHandler interface {
	// Handle writes the HTTP response for the given result.
	Handle(c echo.Context, result interface{}) error

	// GetOperation returns an operation name used for structured logging.
	GetOperation() string

	// AddAttributes attaches New Relic attributes based on response type and/or result.
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	// http.status_code is already set by tracing middleware (EnhanceTracing).
}

// NoContentResponseHandler writes responses with no body.
type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string {
	return "handler_no_content"
}

func (h NoContentResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	// http.status_code is already set by tracing middleware
}

// bind populates req from path, query, body and headers.
//
// Binding failures are client errors and become 400 HTTPErrors with a
// client-safe message; the decoder's own error is only logged.
func bind(c echo.Context, logger *zerolog.Logger, req interface{}) error {
	err := c.Bind(req)
	if err == nil {
		err = (&echo.DefaultBinder{}).BindHeaders(c, req)
	}

	if err == nil {
		return nil
	}

	message := bindMessage(err)

	logger.Warn().
		Err(err).
		Str("client_message", message).
		Msg("request binding failed")

	return errs.NewBadRequestError(message, false)
}

// bindMessage names the offending field when it is known, never echoing
// decoder internals.
func bindMessage(err error) string {
	var bindingErr *echo.BindingError
	if errors.As(err, &bindingErr) && bindingErr.Field != "" {
		return "invalid value for " + bindingErr.Field
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return "invalid value for " + typeErr.Field
	}

	if errors.Is(err, product.ErrInvalidAvailability) {
		return "invalid value for availability"
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "malformed JSON body"
	}

	return "invalid request payload"
}

// handleRequest is the shared execution pipeline for all typed handlers.
//
// It centralizes:
//
// - binding a fresh *Req for every request
// - running the bound request through the validation filter
// - structured logging (with request context)
// - New Relic tracing attributes and error reporting
// - timing (validation duration, handler duration, total duration)
// - response writing (json / no-content)
//
// A validation short-circuit is returned as *validation.ProblemDetails and
// written by the global error handler.
func handleRequest[Req any](
	c echo.Context,
	h Handler,
	handler func(c echo.Context, req *Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()

	// Set by the New Relic Echo middleware (nrecho), nil when disabled.
	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", c.Path())
		responseHandler.AddAttributes(txn, nil)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", c.Path()).
		Logger()

	logger.Info().Msg("handling request")

	req := new(Req)
	if err := bind(c, &logger, req); err != nil {
		if txn != nil {
			txn.AddAttribute("validation.status", "bind_failed")
		}

		return err
	}

	// ---------------- Validation + handler execution -------------------------
	var (
		validationDuration time.Duration
		handlerDuration    time.Duration
	)

	validationStart := time.Now()
	args := []validation.Argument{{Name: "request", Value: req}}

	result, err := validation.Invoke(c.Request().Context(), h.server.Validation, args,
		func(context.Context) (interface{}, error) {
			validationDuration = time.Since(validationStart)

			logger.Debug().
				Dur("validation_duration", validationDuration).
				Msg("request validation successful")

			handlerStart := time.Now()
			defer func() { handlerDuration = time.Since(handlerStart) }()

			return handler(c, req)
		})

	if result.ShortCircuited() {
		validationDuration = time.Since(validationStart)

		logger.Warn().
			Interface("errors", result.Problem.Errors).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return result.Problem
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
	}

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
		}

		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		responseHandler.AddAttributes(txn, result.Value)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result.Value)
}

// Handle wraps a typed handler with binding, validation, error handling,
// logging and tracing, and returns an echo.HandlerFunc.
//
// Usage:
//
//	r.GET("/products", handler.Handle[product.GetProductRequestDto, product.Product](h, fn, http.StatusOK))
func Handle[Req, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, h, func(c echo.Context, req *Req) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleNoContent is Handle for endpoints that answer without a body.
func HandleNoContent[Req any](
	h Handler,
	handler HandlerFuncNoContent[Req],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, h, func(c echo.Context, req *Req) (interface{}, error) {
			return nil, handler(c, req)
		}, NoContentResponseHandler{status: status})
	}
}
