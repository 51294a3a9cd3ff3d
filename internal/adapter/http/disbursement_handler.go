package http

import (
	"net/http"
	"time"

	"creditline-backend/internal/usecase/lifecycle"
	"creditline-backend/pkg/dates"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type DisbursementHandler struct{ uc *lifecycle.Usecase }

func NewDisbursementHandler(uc *lifecycle.Usecase) *DisbursementHandler {
	return &DisbursementHandler{uc: uc}
}

type createDisbursementReq struct {
	ClientID    string   `json:"client_id"    validate:"required,hex32"`
	Amount      string   `json:"amount"       validate:"required,amount"`
	RequestDate string   `json:"request_date" validate:"required,datetime=2006-01-02"`
	Assets      []string `json:"assets,omitempty"`
}

func (h *DisbursementHandler) Create(c echo.Context) error {
	var req createDisbursementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	amount, _ := decimal.NewFromString(req.Amount)
	requestDate, _ := time.Parse(dates.DateOnly, req.RequestDate)

	dto, err := h.uc.CreateDisbursement(c.Request().Context(), lifecycle.CreateDisbursementInput{
		ClientID:    req.ClientID,
		Amount:      amount,
		RequestDate: requestDate,
		Assets:      req.Assets,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type approveDisbursementReq struct {
	ApprovedBy string `json:"approved_by" validate:"required,hex32"`
	IssueDate  string `json:"issue_date"  validate:"required,datetime=2006-01-02"`
}

func (h *DisbursementHandler) Approve(c echo.Context) error {
	disbursementID := c.Param("disbursement_id")
	if disbursementID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing disbursement_id path param"})
	}
	var req approveDisbursementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	issueDate, _ := time.Parse(dates.DateOnly, req.IssueDate)

	dto, err := h.uc.ApproveDisbursement(c.Request().Context(), lifecycle.ApproveInput{
		DisbursementID: disbursementID,
		ApprovedBy:     req.ApprovedBy,
		IssueDate:      issueDate,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *DisbursementHandler) Cancel(c echo.Context) error {
	disbursementID := c.Param("disbursement_id")
	if disbursementID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing disbursement_id path param"})
	}
	actorID := c.Request().Header.Get("Ax-Actor-Id")

	if err := h.uc.CancelDisbursement(c.Request().Context(), disbursementID, actorID); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "cancelled"})
}

type settleNoteReq struct {
	Amount string `json:"amount" validate:"required,amount"`
	Date   string `json:"date"   validate:"required,datetime=2006-01-02"`
}

func (h *DisbursementHandler) SettleNote(c echo.Context) error {
	noteID := c.Param("note_id")
	if noteID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing note_id path param"})
	}
	var req settleNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	amount, _ := decimal.NewFromString(req.Amount)
	date, _ := time.Parse(dates.DateOnly, req.Date)

	err := h.uc.SettleNote(c.Request().Context(), lifecycle.SettleInput{
		NoteID:  noteID,
		Amount:  amount,
		Date:    date,
		ActorID: c.Request().Header.Get("Ax-Actor-Id"),
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "settled"})
}

func (h *DisbursementHandler) SweepOverdue(c echo.Context) error {
	today, err := parseDateParam(c, "as_of")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "as_of must be YYYY-MM-DD"})
	}
	res, err := h.uc.SweepOverdue(c.Request().Context(), today)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
