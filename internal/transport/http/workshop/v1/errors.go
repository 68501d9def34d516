package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/you-humble/workshop/internal/converter"
	"github.com/you-humble/workshop/internal/model"
	"github.com/you-humble/workshop/platform/logger"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error(r.Context(), "encode response", logger.ErrorF(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := mapError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.ErrorF(err),
		)
	}
	writeJSON(w, r, status, resp)
}

func mapError(err error) (int, converter.ErrorResponse) {
	resp := converter.ErrorResponse{
		Message:   err.Error(),
		Retryable: model.IsRetryable(err),
	}

	var stockErr *model.InsufficientStockError

	switch {
	case errors.As(err, &stockErr):
		resp.Code = "INSUFFICIENT_STOCK"
		resp.Available = &stockErr.Available
		return http.StatusUnprocessableEntity, resp // 422
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrUnknownStatus):
		resp.Code = "VALIDATION"
		return http.StatusBadRequest, resp // 400
	case errors.Is(err, model.ErrAttemptsExhausted):
		resp.Code = "ATTEMPTS_EXHAUSTED"
		return http.StatusUnauthorized, resp // 401
	case errors.Is(err, model.ErrInvalidCredential):
		resp.Code = "INVALID_CREDENTIAL"
		return http.StatusUnauthorized, resp // 401
	case errors.Is(err, model.ErrPermissionDenied):
		resp.Code = "PERMISSION_DENIED"
		return http.StatusForbidden, resp // 403
	case errors.Is(err, model.ErrOrderNotFound),
		errors.Is(err, model.ErrInvoiceNotFound),
		errors.Is(err, model.ErrLineNotFound),
		errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrServiceNotFound),
		errors.Is(err, model.ErrMechanicNotFound):
		resp.Code = "NOT_FOUND"
		return http.StatusNotFound, resp // 404
	case errors.Is(err, model.ErrStaleEntity):
		resp.Code = "STALE_ENTITY"
		return http.StatusConflict, resp // 409
	case errors.Is(err, model.ErrIllegalTransition):
		resp.Code = "ILLEGAL_TRANSITION"
		return http.StatusConflict, resp // 409
	case errors.Is(err, model.ErrBusy):
		resp.Code = "BUSY"
		return http.StatusLocked, resp // 423
	case errors.Is(err, model.ErrBadGateway):
		resp.Code = "BAD_GATEWAY"
		return http.StatusBadGateway, resp // 502
	default:
		resp.Code = "INTERNAL"
		resp.Message = "internal error"
		return http.StatusInternalServerError, resp // 500
	}
}
