package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"creditline-backend/internal/audit"
	domainDN "creditline-backend/internal/domain/debitnote"
	domainNote "creditline-backend/internal/domain/note"
	"creditline-backend/internal/domain/uow"
	"creditline-backend/internal/testutil/debitnotemock"
	"creditline-backend/internal/testutil/notemock"
	"creditline-backend/internal/testutil/sequencemock"
	"creditline-backend/internal/testutil/settingsmock"
	"creditline-backend/internal/testutil/uowmock"
	"creditline-backend/internal/usecase/billing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newBillingHandler(r uow.Repos) *BillingHandler {
	if r.Notes == nil {
		r.Notes = &notemock.Repo{}
	}
	if r.DebitNotes == nil {
		r.DebitNotes = &debitnotemock.Repo{}
	}
	if r.Sequences == nil {
		r.Sequences = &sequencemock.Repo{}
	}
	if r.Settings == nil {
		r.Settings = settingsmock.Fixed(360, "12", 90, "1000000")
	}
	uc := billing.NewUsecase(uowmock.New(r), r.DebitNotes, audit.Nop{})
	return NewBillingHandler(uc)
}

func utcDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateDebitNote_Success(t *testing.T) {
	e := newEchoWithValidator()

	noteID := strings.Repeat("1", 32)
	notes := &notemock.Repo{
		ListBillableFn: func(ctx context.Context, issuedOnOrBefore time.Time) ([]*domainNote.PromissoryNote, error) {
			return []*domainNote.PromissoryNote{{
				NoteID:          noteID,
				PrincipalAmount: decimal.RequireFromString("100000"),
				InterestRate:    decimal.RequireFromString("12"),
				IssueDate:       utcDay(2025, time.January, 10),
				Status:          domainNote.StatusActive,
			}}, nil
		},
	}
	var created *domainDN.DebitNote
	dns := &debitnotemock.Repo{
		CreateFn: func(ctx context.Context, dn *domainDN.DebitNote) error {
			created = dn
			return nil
		},
	}
	h := newBillingHandler(uow.Repos{Notes: notes, DebitNotes: dns})

	body := map[string]any{
		"period_start": "2025-01-01",
		"period_end":   "2025-01-28",
		"due_date":     "2025-02-15",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/debit-notes", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Generate(c); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var dto billing.DebitNoteDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	// issued Jan 10 inside Jan 1-28: 18 prorated days at 12%/360
	if !dto.TotalInterest.Equal(decimal.RequireFromString("600.00")) {
		t.Fatalf("total = %s, want 600.00", dto.TotalInterest)
	}
	if len(dto.LineItems) != 1 || dto.LineItems[0].Days != 18 {
		t.Fatalf("line items = %+v", dto.LineItems)
	}
	if created == nil || created.Status != domainDN.StatusIssued {
		t.Fatalf("persisted debit note wrong: %+v", created)
	}
}

func TestGenerateDebitNote_EmptyPeriod(t *testing.T) {
	e := newEchoWithValidator()
	// ListBillable defaults to an empty slice
	h := newBillingHandler(uow.Repos{})

	body := map[string]any{
		"period_start": "2025-01-01",
		"period_end":   "2025-01-31",
		"due_date":     "2025-02-15",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/debit-notes", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Generate(c); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != billing.ErrEmptyPeriod.Error() {
		t.Fatalf("error = %q, want %q", er.Error, billing.ErrEmptyPeriod.Error())
	}
}

func TestGenerateDebitNote_NoInterestDue(t *testing.T) {
	e := newEchoWithValidator()

	notes := &notemock.Repo{
		ListBillableFn: func(ctx context.Context, issuedOnOrBefore time.Time) ([]*domainNote.PromissoryNote, error) {
			// issued exactly on period end: prorates to zero days
			return []*domainNote.PromissoryNote{{
				NoteID:          strings.Repeat("2", 32),
				PrincipalAmount: decimal.RequireFromString("50000"),
				InterestRate:    decimal.RequireFromString("12"),
				IssueDate:       utcDay(2025, time.January, 31),
				Status:          domainNote.StatusActive,
			}}, nil
		},
	}
	h := newBillingHandler(uow.Repos{Notes: notes})

	body := map[string]any{
		"period_start": "2025-01-01",
		"period_end":   "2025-01-31",
		"due_date":     "2025-02-15",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/debit-notes", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Generate(c); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != billing.ErrNoInterestDue.Error() {
		t.Fatalf("error = %q, want %q", er.Error, billing.ErrNoInterestDue.Error())
	}
}

func TestGenerateDebitNote_InvalidDates(t *testing.T) {
	e := newEchoWithValidator()
	h := newBillingHandler(uow.Repos{})

	body := map[string]any{
		"period_start": "January 1st",
		"period_end":   "2025-01-31",
		"due_date":     "2025-02-15",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/debit-notes", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Generate(c); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != "validation failed" {
		t.Fatalf("error = %q, want %q", er.Error, "validation failed")
	}
	if !hasFieldDetail(er.Details, "PeriodStart", "YYYY-MM-DD") {
		t.Fatalf("missing PeriodStart detail: %+v", er.Details)
	}
}

func TestGenerateDebitNote_InvertedPeriod(t *testing.T) {
	e := newEchoWithValidator()
	h := newBillingHandler(uow.Repos{})

	body := map[string]any{
		"period_start": "2025-02-01",
		"period_end":   "2025-01-01",
		"due_date":     "2025-02-15",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/debit-notes", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Generate(c); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != billing.ErrInvalidPeriod.Error() {
		t.Fatalf("error = %q, want %q", er.Error, billing.ErrInvalidPeriod.Error())
	}
}

func TestGetDebitNote_NotFound(t *testing.T) {
	e := newEchoWithValidator()

	dns := &debitnotemock.Repo{
		GetByIDFn: func(ctx context.Context, id string) (*domainDN.DebitNote, error) {
			return nil, domainDN.ErrNotFound
		},
	}
	h := newBillingHandler(uow.Repos{DebitNotes: dns})

	dnID := strings.Repeat("9", 32)
	req := httptest.NewRequest(stdhttp.MethodGet, "/debit-notes/"+dnID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("debit_note_id")
	c.SetParamValues(dnID)

	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestPayDebitNote_Success(t *testing.T) {
	e := newEchoWithValidator()

	var paid string
	dns := &debitnotemock.Repo{
		MarkPaidFn: func(ctx context.Context, id string) error {
			paid = id
			return nil
		},
	}
	h := newBillingHandler(uow.Repos{DebitNotes: dns})

	dnID := strings.Repeat("3", 32)
	req := httptest.NewRequest(stdhttp.MethodPost, "/debit-notes/"+dnID+"/pay", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("debit_note_id")
	c.SetParamValues(dnID)

	if err := h.Pay(c); err != nil {
		t.Fatalf("Pay error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if paid != dnID {
		t.Fatalf("MarkPaid called with %q, want %q", paid, dnID)
	}
}

func TestPayDebitNote_AlreadyPaid(t *testing.T) {
	e := newEchoWithValidator()

	dns := &debitnotemock.Repo{
		MarkPaidFn: func(ctx context.Context, id string) error {
			return domainDN.ErrInvalidTransition
		},
	}
	h := newBillingHandler(uow.Repos{DebitNotes: dns})

	dnID := strings.Repeat("3", 32)
	req := httptest.NewRequest(stdhttp.MethodPost, "/debit-notes/"+dnID+"/pay", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("debit_note_id")
	c.SetParamValues(dnID)

	if err := h.Pay(c); err != nil {
		t.Fatalf("Pay error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}
