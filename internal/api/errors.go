package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/MJE43/roulette-odds-go/internal/areas"
	"github.com/MJE43/roulette-odds-go/internal/engine"
	"github.com/MJE43/roulette-odds-go/internal/lib/logger/sl"
	"github.com/MJE43/roulette-odds-go/internal/wheel"
)

// ErrorBuilder helps construct structured errors with context
type ErrorBuilder struct {
	errType   string
	message   string
	context   map[string]interface{}
	requestID string
}

// NewError creates a new error builder
func NewError(errType, message string) *ErrorBuilder {
	return &ErrorBuilder{
		errType: errType,
		message: message,
		context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (eb *ErrorBuilder) WithContext(key string, value interface{}) *ErrorBuilder {
	eb.context[key] = value
	return eb
}

// WithRequestID adds request ID to the error
func (eb *ErrorBuilder) WithRequestID(requestID string) *ErrorBuilder {
	eb.requestID = requestID
	return eb
}

// WithCause records the underlying error message
func (eb *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	if err != nil {
		eb.context["cause"] = err.Error()
	}
	return eb
}

// Build creates the final EngineError
func (eb *ErrorBuilder) Build() EngineError {
	return EngineError{
		Type:      eb.errType,
		Message:   eb.message,
		Context:   eb.context,
		RequestID: eb.requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// classify maps a domain error onto an error type.
func classify(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidStake):
		return ErrTypeInvalidStake
	case errors.Is(err, areas.ErrUnknownArea):
		return ErrTypeUnknownArea
	case errors.Is(err, wheel.ErrUnknownWheel):
		return ErrTypeUnknownWheel
	case errors.Is(err, areas.ErrEmptyWheel):
		return ErrTypeEmptyWheel
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTypeTimeout
	default:
		return ErrTypeInternal
	}
}

// statusFor returns the HTTP status of an error type
func statusFor(errType string) int {
	switch errType {
	case ErrTypeValidation, ErrTypeInvalidStake:
		return http.StatusBadRequest
	case ErrTypeUnknownArea, ErrTypeUnknownWheel:
		return http.StatusNotFound
	case ErrTypeTimeout:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleError classifies err and writes the matching error response
func (eh *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var engineErr EngineError
	if errors.As(err, &engineErr) {
		status := statusFor(engineErr.Type)
		eh.logError(r, engineErr, status)
		eh.writeErrorResponse(w, r, status, engineErr)
		return
	}

	errType := classify(err)
	status := statusFor(errType)
	engineErr = NewError(errType, err.Error()).
		WithRequestID(middleware.GetReqID(r.Context())).
		WithContext("path", r.URL.Path).
		WithContext("method", r.Method).
		Build()

	eh.logError(r, engineErr, status)
	eh.writeErrorResponse(w, r, status, engineErr)
}

// HandleValidationError handles validation-specific errors
func (eh *ErrorHandler) HandleValidationError(w http.ResponseWriter, r *http.Request, field, message string) {
	engineErr := NewError(ErrTypeValidation, fmt.Sprintf("Validation failed: %s", message)).
		WithRequestID(middleware.GetReqID(r.Context())).
		WithContext("field", field).
		WithContext("path", r.URL.Path).
		WithContext("method", r.Method).
		Build()

	eh.logError(r, engineErr, http.StatusBadRequest)
	eh.writeErrorResponse(w, r, http.StatusBadRequest, engineErr)
}

// HandleStructErrors reports validator failures as one validation error
func (eh *ErrorHandler) HandleStructErrors(w http.ResponseWriter, r *http.Request, err error) {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		eh.HandleValidationError(w, r, "body", err.Error())
		return
	}

	fields := make([]string, 0, len(errs))
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Namespace())
		switch fe.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s allows at most %s entries", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", fe.Field()))
		}
	}
	eh.HandleValidationError(w, r, strings.Join(fields, ","), strings.Join(msgs, ", "))
}

// logError logs the error with a level based on its category
func (eh *ErrorHandler) logError(r *http.Request, engineErr EngineError, status int) {
	category := GetErrorCategory(engineErr.Type)

	level := slog.LevelError
	if status < http.StatusInternalServerError {
		level = slog.LevelWarn
	}

	attrs := []any{
		sl.String("type", engineErr.Type),
		sl.String("category", string(category)),
		sl.Any("status", status),
		sl.RequestID(engineErr.RequestID),
		sl.String("method", r.Method),
		sl.String("path", r.URL.Path),
		sl.String("remote_ip", r.RemoteAddr),
	}
	for key, value := range engineErr.Context {
		if key == "path" || key == "method" {
			continue
		}
		attrs = append(attrs, sl.Any(key, value))
	}

	eh.logger.Log(r.Context(), level, engineErr.Message, attrs...)
}

// writeErrorResponse writes the error response as JSON
func (eh *ErrorHandler) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, engineErr EngineError) {
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.Header().Set("X-Error-Type", engineErr.Type)
	w.Header().Set("X-Error-Category", string(GetErrorCategory(engineErr.Type)))

	render.Status(r, status)
	render.JSON(w, r, engineErr)
}

// RecoveryHandler provides panic recovery with structured error logging
func (eh *ErrorHandler) RecoveryHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				requestID := middleware.GetReqID(r.Context())

				eh.logger.Error("panic recovered",
					sl.RequestID(requestID),
					sl.String("path", r.URL.Path),
					sl.String("method", r.Method),
					sl.Any("panic", rvr),
				)

				engineErr := NewError(ErrTypeInternal, "Internal server error").
					WithRequestID(requestID).
					WithContext("panic", fmt.Sprintf("%v", rvr)).
					WithContext("path", r.URL.Path).
					WithContext("method", r.Method).
					Build()

				eh.writeErrorResponse(w, r, http.StatusInternalServerError, engineErr)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
