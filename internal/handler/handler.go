package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"cafe-counter/internal/model"
)

// writeJSON writes a JSON response with the given status code. The status has
// already gone out by the time encoding can fail, so a failure here only
// truncates the body.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a service error to an HTTP response. Domain errors
// translate to their natural status code; anything else is a 500 with a
// generic message.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("unexpected service error")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Error:   model.ErrCodeInternalError,
			Message: "Something went wrong",
		})
		return
	}

	writeError(w, statusFor(domainErr.Code), domainErr.Code, domainErr.Message, logger)
}

func statusFor(code string) int {
	switch code {
	case model.ErrCodeCartNotFound,
		model.ErrCodeItemNotFound,
		model.ErrCodeTableNotFound,
		model.ErrCodeOrderNotFound,
		model.ErrCodeMessageNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidCoupon,
		model.ErrCodeCouponExpired,
		model.ErrCodeCouponLimitReached,
		model.ErrCodeMinOrderNotMet,
		model.ErrCodeItemUnavailable:
		return http.StatusUnprocessableEntity
	case model.ErrCodeInvalidTransition:
		return http.StatusConflict
	case model.ErrCodeUnauthorised, model.ErrCodeLoginRequired:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
