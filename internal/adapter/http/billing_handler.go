package http

import (
	"net/http"
	"time"

	"creditline-backend/internal/usecase/billing"
	"creditline-backend/pkg/dates"

	"github.com/labstack/echo/v4"
)

type BillingHandler struct{ uc *billing.Usecase }

func NewBillingHandler(uc *billing.Usecase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

type generateDebitNoteReq struct {
	PeriodStart string `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"period_end"   validate:"required,datetime=2006-01-02"`
	DueDate     string `json:"due_date"     validate:"required,datetime=2006-01-02"`
}

func (h *BillingHandler) Generate(c echo.Context) error {
	var req generateDebitNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	start, _ := time.Parse(dates.DateOnly, req.PeriodStart)
	end, _ := time.Parse(dates.DateOnly, req.PeriodEnd)
	due, _ := time.Parse(dates.DateOnly, req.DueDate)

	dto, err := h.uc.Generate(c.Request().Context(), billing.GenerateInput{
		PeriodStart: start,
		PeriodEnd:   end,
		DueDate:     due,
		ActorID:     c.Request().Header.Get("Ax-Actor-Id"),
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *BillingHandler) Get(c echo.Context) error {
	debitNoteID := c.Param("debit_note_id")
	if debitNoteID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing debit_note_id path param"})
	}
	dn, err := h.uc.Get(c.Request().Context(), debitNoteID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dn)
}

func (h *BillingHandler) Pay(c echo.Context) error {
	debitNoteID := c.Param("debit_note_id")
	if debitNoteID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing debit_note_id path param"})
	}
	actorID := c.Request().Header.Get("Ax-Actor-Id")
	if err := h.uc.MarkPaid(c.Request().Context(), debitNoteID, actorID); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "paid"})
}
