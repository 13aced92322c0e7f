package apierr

import (
	"errors"
	"log/slog"
	"net/http"

	"agro-cost/internal/service/costing"
	"agro-cost/internal/service/payroll"
	"agro-cost/internal/storage"
)

// Status maps a service error to the HTTP status the console expects.
func Status(err error) int {
	switch {
	case errors.Is(err, costing.ErrMissingValue),
		errors.Is(err, costing.ErrUnknownMode),
		errors.Is(err, costing.ErrInvalidDate),
		errors.Is(err, payroll.ErrInvalidRange),
		errors.Is(err, payroll.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrMissingReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrPayrollExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Write logs err and answers with its mapped status. Client errors carry the
// error text, server errors a generic message.
func Write(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	status := Status(err)

	if status == http.StatusInternalServerError {
		log.Error("request failed", slog.String("op", op), slog.String("error", err.Error()))
		http.Error(w, "Internal error", status)
		return
	}

	log.Warn("request rejected", slog.String("op", op), slog.Int("status", status), slog.String("error", err.Error()))
	http.Error(w, err.Error(), status)
}
