package http

import (
	"net/http"
	"time"

	"creditline-backend/internal/usecase/reconcile"
	"creditline-backend/pkg/dates"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ReconcileHandler struct{ uc *reconcile.Usecase }

func NewReconcileHandler(uc *reconcile.Usecase) *ReconcileHandler {
	return &ReconcileHandler{uc: uc}
}

type importTransactionReq struct {
	TransactionDate string `json:"transaction_date" validate:"required,datetime=2006-01-02"`
	Amount          string `json:"amount"           validate:"required"`
	Description     string `json:"description,omitempty"`
	Reference       string `json:"reference,omitempty"`
}

// Import accepts signed amounts: statement debits arrive negative and
// are normalized downstream, so the strict positive-amount rule does not
// apply here.
func (h *ReconcileHandler) Import(c echo.Context) error {
	var req importTransactionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "Amount", Message: "must be a decimal number"}},
		})
	}
	txDate, _ := time.Parse(dates.DateOnly, req.TransactionDate)

	dto, err := h.uc.Import(c.Request().Context(), reconcile.ImportInput{
		TransactionDate: txDate,
		Amount:          amount,
		Description:     req.Description,
		Reference:       req.Reference,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type matchTransactionReq struct {
	NoteID string `json:"note_id" validate:"required,hex32"`
	UserID string `json:"user_id" validate:"required,hex32"`
}

func (h *ReconcileHandler) Match(c echo.Context) error {
	transactionID := c.Param("transaction_id")
	if transactionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing transaction_id path param"})
	}
	var req matchTransactionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.Match(c.Request().Context(), transactionID, req.NoteID, req.UserID); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "matched"})
}

type unmatchTransactionReq struct {
	UserID string `json:"user_id" validate:"required,hex32"`
}

func (h *ReconcileHandler) Unmatch(c echo.Context) error {
	transactionID := c.Param("transaction_id")
	if transactionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing transaction_id path param"})
	}
	var req unmatchTransactionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.Unmatch(c.Request().Context(), transactionID, req.UserID); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "unmatched"})
}

func (h *ReconcileHandler) Suggestions(c echo.Context) error {
	transactionID := c.Param("transaction_id")
	if transactionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing transaction_id path param"})
	}
	out, err := h.uc.Suggest(c.Request().Context(), transactionID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"suggestions": out})
}
