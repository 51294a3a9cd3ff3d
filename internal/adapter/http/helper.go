package http

import (
	"errors"
	"net/http"
	"time"

	"creditline-backend/internal/domain/banktx"
	"creditline-backend/internal/domain/client"
	"creditline-backend/internal/domain/debitnote"
	"creditline-backend/internal/domain/disbursement"
	"creditline-backend/internal/domain/note"
	"creditline-backend/internal/domain/settings"
	"creditline-backend/internal/usecase/billing"
	"creditline-backend/internal/usecase/lifecycle"
	"creditline-backend/internal/usecase/reconcile"
	"creditline-backend/pkg/dates"

	"github.com/labstack/echo/v4"
)

// statusFor maps domain errors to HTTP codes. Anything unmapped is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, disbursement.ErrNotFound),
		errors.Is(err, note.ErrNotFound),
		errors.Is(err, note.ErrSnapshotNotFound),
		errors.Is(err, debitnote.ErrNotFound),
		errors.Is(err, banktx.ErrNotFound),
		errors.Is(err, client.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, disbursement.ErrInvalidTransition),
		errors.Is(err, disbursement.ErrHasActiveNote),
		errors.Is(err, note.ErrNotActive),
		errors.Is(err, note.ErrInvalidTransition),
		errors.Is(err, debitnote.ErrInvalidTransition),
		errors.Is(err, banktx.ErrAlreadyMatched):
		return http.StatusConflict
	case errors.Is(err, billing.ErrEmptyPeriod),
		errors.Is(err, billing.ErrNoInterestDue),
		errors.Is(err, billing.ErrInvalidPeriod):
		return http.StatusUnprocessableEntity
	case errors.Is(err, lifecycle.ErrInvalidInput),
		errors.Is(err, reconcile.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, settings.ErrMissingConfig),
		errors.Is(err, settings.ErrBadDayBasis):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

// parseDateParam reads a YYYY-MM-DD query param, defaulting to today
// (UTC) when absent.
func parseDateParam(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return dates.Midnight(time.Now().UTC()), nil
	}
	return time.Parse(dates.DateOnly, raw)
}

// requireDateParam reads a YYYY-MM-DD query param that must be present.
func requireDateParam(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, errors.New("missing " + name + " query param")
	}
	return time.Parse(dates.DateOnly, raw)
}
