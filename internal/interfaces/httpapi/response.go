package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/tournament-ledger/internal/domain/domainerr"
	"github.com/riskibarqy/tournament-ledger/internal/platform/resilience"
	"github.com/riskibarqy/tournament-ledger/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "tournament-ledger"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	ID         string           `json:"id,omitempty"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain       string `json:"domain"`
	Reason       string `json:"reason"`
	Message      string `json:"message"`
	Location     string `json:"location,omitempty"`
	LocationType string `json:"locationType,omitempty"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	// Internal hides the error text from clients.
	Internal bool
}

// writeJSON encodes into a pooled buffer first so an encoding failure can
// still produce a clean 500 instead of a truncated body.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		http.Error(w, `{"apiVersion":"2.0","error":{"code":500,"message":"internal server error","status":"INTERNAL"}}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		ID:         requestIDFromContext(ctx),
		Data:       data,
	})
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	if mapped.Internal {
		writeInternalError(ctx, w)
		return
	}

	message := err.Error()
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		ID:         requestIDFromContext(ctx),
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  errorItems(mapped, err),
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		ID:         requestIDFromContext(ctx),
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

// errorItems lists one item per failed field for request validation errors.
func errorItems(mapped mappedError, err error) []googleErrorItem {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		items := make([]googleErrorItem, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			items = append(items, googleErrorItem{
				Domain:       errorDomain,
				Reason:       "invalidField",
				Message:      "failed on the '" + fe.Tag() + "' rule",
				Location:     fe.Field(),
				LocationType: "body",
			})
		}
		return items
	}

	item := googleErrorItem{
		Domain:  errorDomain,
		Reason:  mapped.Reason,
		Message: err.Error(),
	}
	var crossErr *domainerr.CrossAggregateError
	if errors.As(err, &crossErr) {
		item.Location = string(crossErr.Side) + "_team_id"
		item.LocationType = "body"
	}
	return []googleErrorItem{item}
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, domainerr.ErrValidation):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, domainerr.ErrInvalidTransition):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "invalidTransition",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, domainerr.ErrInvalidOperation):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "invalidOperation",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, usecase.ErrConflict):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "conflict",
			Status:     "ABORTED",
		}
	case errors.Is(err, domainerr.ErrCrossAggregate):
		return mappedError{
			HTTPStatus: http.StatusUnprocessableEntity,
			Reason:     "crossAggregate",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable), errors.Is(err, resilience.ErrCircuitOpen):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	case errors.Is(err, context.DeadlineExceeded):
		return mappedError{
			HTTPStatus: http.StatusGatewayTimeout,
			Reason:     "deadlineExceeded",
			Status:     "DEADLINE_EXCEEDED",
		}
	case errors.Is(err, domainerr.ErrConsistency):
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "consistencyViolation",
			Status:     "INTERNAL",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
			Internal:   true,
		}
	}
}
