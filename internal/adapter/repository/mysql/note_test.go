package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	disbursementDomain "creditline-backend/internal/domain/disbursement"
	domain "creditline-backend/internal/domain/note"
	"creditline-backend/pkg/id"
)

func makeNote(disbursementID string, principal string) *domain.PromissoryNote {
	return &domain.PromissoryNote{
		NoteID:          id.NewID32(),
		DisbursementID:  disbursementID,
		PnNumber:        "PN-2025-" + id.NewID32()[:3],
		PrincipalAmount: dec(principal),
		InterestRate:    dec("12"),
		IssueDate:       day(2025, 1, 10),
		DueDate:         day(2025, 4, 10),
		Status:          domain.StatusActive,
	}
}

func TestNote_Settle_Conditional(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)
	ctx := context.Background()

	n := makeNote(id.NewID32(), "100000")
	if err := repo.Create(ctx, n); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Settle(ctx, n.NoteID, dec("101000"), day(2025, 3, 1)); err != nil {
		t.Fatalf("Settle: %v", err)
	}
	got, err := repo.GetByID(ctx, n.NoteID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != domain.StatusSettled {
		t.Fatalf("status = %s, want settled", got.Status)
	}
	if !got.SettlementAmount.Valid || !got.SettlementAmount.Decimal.Equal(dec("101000")) {
		t.Fatalf("settlement amount not recorded: %+v", got.SettlementAmount)
	}
	if got.SettlementDate == nil || !got.SettlementDate.Equal(day(2025, 3, 1)) {
		t.Fatalf("settlement date not recorded: %v", got.SettlementDate)
	}

	// Second operator loses the race.
	if err := repo.Settle(ctx, n.NoteID, dec("101000"), day(2025, 3, 1)); !errors.Is(err, domain.ErrNotActive) {
		t.Fatalf("second settle: want ErrNotActive, got %v", err)
	}
}

func TestNote_Settle_UnknownNote(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)

	err := repo.Settle(context.Background(), id.NewID32(), dec("1"), day(2025, 1, 1))
	if !errors.Is(err, domain.ErrNotActive) {
		t.Fatalf("want ErrNotActive, got %v", err)
	}
}

func TestNote_MarkOverdue_StrictlyBeforeAsOf(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)
	ctx := context.Background()

	dueYesterday := makeNote(id.NewID32(), "1000")
	dueYesterday.DueDate = day(2025, 5, 31)
	dueToday := makeNote(id.NewID32(), "2000")
	dueToday.DueDate = day(2025, 6, 1)
	for _, n := range []*domain.PromissoryNote{dueYesterday, dueToday} {
		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	marked, err := repo.MarkOverdue(ctx, day(2025, 6, 1))
	if err != nil {
		t.Fatalf("MarkOverdue: %v", err)
	}
	if marked != 1 {
		t.Fatalf("marked = %d, want 1 (due today is not overdue yet)", marked)
	}

	got, _ := repo.GetByID(ctx, dueToday.NoteID)
	if got.Status != domain.StatusActive {
		t.Fatalf("note due today flipped early: %s", got.Status)
	}

	// Re-run is a no-op.
	marked, err = repo.MarkOverdue(ctx, day(2025, 6, 1))
	if err != nil {
		t.Fatalf("MarkOverdue rerun: %v", err)
	}
	if marked != 0 {
		t.Fatalf("rerun marked = %d, want 0", marked)
	}
}

func TestNote_ListBillable_FiltersStatusAndIssueDate(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)
	ctx := context.Background()

	in := makeNote(id.NewID32(), "1000")
	in.IssueDate = day(2025, 1, 15)
	late := makeNote(id.NewID32(), "2000")
	late.IssueDate = day(2025, 2, 10) // after the period end
	settled := makeNote(id.NewID32(), "3000")
	settled.Status = domain.StatusSettled
	for _, n := range []*domain.PromissoryNote{in, late, settled} {
		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListBillable(ctx, day(2025, 1, 31))
	if err != nil {
		t.Fatalf("ListBillable: %v", err)
	}
	if len(got) != 1 || got[0].NoteID != in.NoteID {
		t.Fatalf("unexpected selection: %+v", got)
	}
}

func TestNote_CancelByDisbursementID(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)
	ctx := context.Background()

	disbID := id.NewID32()
	n := makeNote(disbID, "1000")
	if err := repo.Create(ctx, n); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.CancelByDisbursementID(ctx, disbID); err != nil {
		t.Fatalf("CancelByDisbursementID: %v", err)
	}
	got, _ := repo.GetByID(ctx, n.NoteID)
	if got.Status != domain.StatusCancelled {
		t.Fatalf("status = %s, want cancelled", got.Status)
	}

	// No live note is fine; cancelling again changes nothing.
	if err := repo.CancelByDisbursementID(ctx, disbID); err != nil {
		t.Fatalf("second cancel: %v", err)
	}
}

func TestNote_ListMatchCandidates(t *testing.T) {
	db := openTestDB(t)
	notes := NewNoteRepository(db)
	disbs := NewDisbursementRepository(db)
	txns := NewBankTxnRepository(db)
	ctx := context.Background()

	// Approved disbursement with a matching-amount note: candidate.
	dApproved := makeDisbursement(disbursementDomain.StatusApproved)
	dApproved.RequestDate = day(2025, 3, 9)
	// Pending disbursement: its note is filtered out.
	dPending := makeDisbursement(disbursementDomain.StatusPending)
	// Disbursed disbursement whose note is already linked to a matched txn.
	dLinked := makeDisbursement(disbursementDomain.StatusDisbursed)
	for _, d := range []*disbursementDomain.Disbursement{dApproved, dPending, dLinked} {
		if err := disbs.Create(ctx, d); err != nil {
			t.Fatalf("Create disbursement: %v", err)
		}
	}

	amount := "100000"
	candidate := makeNote(dApproved.DisbursementID, amount)
	wrongAmount := makeNote(dApproved.DisbursementID, "99999")
	pendingNote := makeNote(dPending.DisbursementID, amount)
	linkedNote := makeNote(dLinked.DisbursementID, amount)
	for _, n := range []*domain.PromissoryNote{candidate, wrongAmount, pendingNote, linkedNote} {
		if err := notes.Create(ctx, n); err != nil {
			t.Fatalf("Create note: %v", err)
		}
	}

	// Link linkedNote to a matched transaction.
	tx := makeBankTxn(amount)
	if err := txns.Create(ctx, tx); err != nil {
		t.Fatalf("Create txn: %v", err)
	}
	if err := txns.Match(ctx, tx.TransactionID, linkedNote.NoteID, id.NewID32(), day(2025, 3, 10)); err != nil {
		t.Fatalf("Match: %v", err)
	}

	got, err := notes.ListMatchCandidates(ctx, dec(amount))
	if err != nil {
		t.Fatalf("ListMatchCandidates: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want only the approved unlinked note: %+v", len(got), got)
	}
	if got[0].Note.NoteID != candidate.NoteID {
		t.Fatalf("wrong candidate: %s", got[0].Note.NoteID)
	}
	if !got[0].RequestDate.Equal(dApproved.RequestDate) {
		t.Fatalf("request date = %v, want the disbursement's", got[0].RequestDate)
	}
}

func TestNote_SumAndCountByStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)
	ctx := context.Background()

	a := makeNote(id.NewID32(), "100000")
	b := makeNote(id.NewID32(), "50000")
	o := makeNote(id.NewID32(), "25000")
	o.Status = domain.StatusOverdue
	s := makeNote(id.NewID32(), "70000")
	s.Status = domain.StatusSettled
	for _, n := range []*domain.PromissoryNote{a, b, o, s} {
		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	sum, err := repo.SumPrincipalByStatus(ctx, domain.StatusActive, domain.StatusOverdue)
	if err != nil {
		t.Fatalf("SumPrincipalByStatus: %v", err)
	}
	if !sum.Equal(dec("175000")) {
		t.Fatalf("sum = %s, want 175000", sum)
	}

	count, err := repo.CountByStatus(ctx, domain.StatusActive)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

func TestNote_SumPrincipal_EmptyIsZero(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)

	sum, err := repo.SumPrincipalByStatus(context.Background(), domain.StatusActive)
	if err != nil {
		t.Fatalf("SumPrincipalByStatus: %v", err)
	}
	if !sum.Equal(decimal.Zero) {
		t.Fatalf("sum = %s, want 0", sum)
	}
}

func TestNote_ListOpenDuring(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)
	ctx := context.Background()

	// Open the whole window.
	open := makeNote(id.NewID32(), "1000")
	open.IssueDate = day(2024, 12, 1)
	// Settled before the window starts: excluded.
	before := makeNote(id.NewID32(), "2000")
	before.IssueDate = day(2024, 11, 1)
	// Issued after the window ends: excluded.
	after := makeNote(id.NewID32(), "3000")
	after.IssueDate = day(2025, 3, 1)
	// Settled inside the window: still counts as open during it.
	inside := makeNote(id.NewID32(), "4000")
	inside.IssueDate = day(2024, 12, 15)
	for _, n := range []*domain.PromissoryNote{open, before, after, inside} {
		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if err := repo.Settle(ctx, before.NoteID, dec("2000"), day(2024, 12, 20)); err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if err := repo.Settle(ctx, inside.NoteID, dec("4000"), day(2025, 1, 15)); err != nil {
		t.Fatalf("Settle: %v", err)
	}

	got, err := repo.ListOpenDuring(ctx, day(2025, 1, 1), day(2025, 1, 31))
	if err != nil {
		t.Fatalf("ListOpenDuring: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("open during = %d, want 2: %+v", len(got), got)
	}
}
