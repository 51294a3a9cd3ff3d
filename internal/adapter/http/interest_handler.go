package http

import (
	"net/http"

	"creditline-backend/internal/usecase/interest"
	"creditline-backend/pkg/dates"

	"github.com/labstack/echo/v4"
)

type InterestHandler struct{ uc *interest.Usecase }

func NewInterestHandler(uc *interest.Usecase) *InterestHandler {
	return &InterestHandler{uc: uc}
}

// Accrue runs the daily snapshot sweep. Without a date param it accrues
// for today; per-note failures come back in the payload rather than
// failing the sweep.
func (h *InterestHandler) Accrue(c echo.Context) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be YYYY-MM-DD"})
	}
	res, err := h.uc.Accrue(c.Request().Context(), date)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *InterestHandler) NoteInterest(c echo.Context) error {
	noteID := c.Param("note_id")
	if noteID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing note_id path param"})
	}
	date, err := parseDateParam(c, "date")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be YYYY-MM-DD"})
	}
	amount, err := h.uc.InterestAsOf(c.Request().Context(), noteID, date)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"note_id":              noteID,
		"date":                 date.Format(dates.DateOnly),
		"accumulated_interest": amount,
	})
}
