package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"creditline-backend/internal/audit"
	"creditline-backend/internal/domain/client"
	"creditline-backend/internal/domain/disbursement"
	"creditline-backend/internal/domain/note"
	"creditline-backend/internal/domain/uow"
	"creditline-backend/internal/testutil/clientmock"
	"creditline-backend/internal/testutil/debitnotemock"
	"creditline-backend/internal/testutil/disbursementmock"
	"creditline-backend/internal/testutil/notemock"
	"creditline-backend/internal/testutil/sequencemock"
	"creditline-backend/internal/testutil/settingsmock"
	"creditline-backend/internal/testutil/uowmock"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newUsecase wires the mock repos through an in-memory unit of work,
// filling unset fields with empty mocks and the default engine settings.
func newUsecase(r uow.Repos) *Usecase {
	if r.Sequences == nil {
		r.Sequences = &sequencemock.Repo{}
	}
	if r.Settings == nil {
		r.Settings = settingsmock.Fixed(360, "12", 90, "1000000")
	}
	if r.Disbursements == nil {
		r.Disbursements = &disbursementmock.Repo{}
	}
	if r.Notes == nil {
		r.Notes = &notemock.Repo{}
	}
	if r.DebitNotes == nil {
		r.DebitNotes = &debitnotemock.Repo{}
	}
	return NewUsecase(uowmock.New(r), r.Disbursements, r.Notes, r.DebitNotes, audit.Nop{})
}

func TestCreateDisbursement_NumbersFromYearCounter(t *testing.T) {
	var created *disbursement.Disbursement
	uc := newUsecase(uow.Repos{
		Clients: &clientmock.Repo{
			GetByIDFn: func(ctx context.Context, clientID string) (*client.Client, error) {
				return &client.Client{ClientID: clientID, Active: true}, nil
			},
		},
		Disbursements: &disbursementmock.Repo{
			CreateFn: func(ctx context.Context, d *disbursement.Disbursement) error {
				created = d
				return nil
			},
		},
	})

	dto, err := uc.CreateDisbursement(context.Background(), CreateDisbursementInput{
		ClientID:    "cccccccccccccccccccccccccccccccc",
		Amount:      dec("250000"),
		RequestDate: day(2025, 4, 10),
	})
	if err != nil {
		t.Fatalf("CreateDisbursement err: %v", err)
	}
	if dto.RequestNumber != "REQ-2025-001" {
		t.Fatalf("request number = %s, want REQ-2025-001", dto.RequestNumber)
	}
	if created.Status != disbursement.StatusPending {
		t.Fatalf("status = %s, want pending", created.Status)
	}
	if len(created.DisbursementID) != 32 {
		t.Fatalf("public id not generated: %q", created.DisbursementID)
	}
}

func TestCreateDisbursement_UnknownClientRollsBack(t *testing.T) {
	createCalled := false
	uc := newUsecase(uow.Repos{
		Clients: &clientmock.Repo{}, // GetByID defaults to ErrNotFound
		Disbursements: &disbursementmock.Repo{
			CreateFn: func(ctx context.Context, d *disbursement.Disbursement) error {
				createCalled = true
				return nil
			},
		},
	})

	_, err := uc.CreateDisbursement(context.Background(), CreateDisbursementInput{
		ClientID:    "cccccccccccccccccccccccccccccccc",
		Amount:      dec("250000"),
		RequestDate: day(2025, 4, 10),
	})
	if !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("want client.ErrNotFound, got %v", err)
	}
	if createCalled {
		t.Fatalf("create must not run when the client lookup fails")
	}
}

func TestCreateDisbursement_InvalidInput(t *testing.T) {
	uc := newUsecase(uow.Repos{Clients: &clientmock.Repo{}})
	cases := []CreateDisbursementInput{
		{ClientID: "", Amount: dec("100"), RequestDate: day(2025, 1, 1)},
		{ClientID: "c", Amount: dec("0"), RequestDate: day(2025, 1, 1)},
		{ClientID: "c", Amount: dec("-5"), RequestDate: day(2025, 1, 1)},
		{ClientID: "c", Amount: dec("100")},
	}
	for i, in := range cases {
		if _, err := uc.CreateDisbursement(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: want ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestApproveDisbursement_IssuesNote(t *testing.T) {
	var createdNote *note.PromissoryNote
	approved := false
	uc := newUsecase(uow.Repos{
		Disbursements: &disbursementmock.Repo{
			GetByIDFn: func(ctx context.Context, id string) (*disbursement.Disbursement, error) {
				return &disbursement.Disbursement{
					DisbursementID:  id,
					RequestedAmount: dec("100000"),
					Status:          disbursement.StatusPending,
				}, nil
			},
			MarkApprovedFn: func(ctx context.Context, id, by string, at time.Time) error {
				approved = true
				return nil
			},
		},
		Notes: &notemock.Repo{
			CreateFn: func(ctx context.Context, n *note.PromissoryNote) error {
				createdNote = n
				return nil
			},
		},
	})

	dto, err := uc.ApproveDisbursement(context.Background(), ApproveInput{
		DisbursementID: "dddddddddddddddddddddddddddddddd",
		ApprovedBy:     "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		IssueDate:      day(2025, 2, 1),
	})
	if err != nil {
		t.Fatalf("ApproveDisbursement err: %v", err)
	}
	if !approved {
		t.Fatalf("disbursement was never marked approved")
	}
	if dto.PnNumber != "PN-2025-001" {
		t.Fatalf("pn number = %s, want PN-2025-001", dto.PnNumber)
	}
	if !createdNote.PrincipalAmount.Equal(dec("100000")) {
		t.Fatalf("principal = %s, want copy of requested amount", createdNote.PrincipalAmount)
	}
	if !createdNote.InterestRate.Equal(dec("12")) {
		t.Fatalf("rate = %s, want engine default 12", createdNote.InterestRate)
	}
	// due date = issue + default due days (90)
	if !createdNote.DueDate.Equal(day(2025, 5, 2)) {
		t.Fatalf("due date = %s, want 2025-05-02", createdNote.DueDate.Format("2006-01-02"))
	}
}

func TestApproveDisbursement_RejectsNonPending(t *testing.T) {
	for _, status := range []disbursement.Status{
		disbursement.StatusApproved,
		disbursement.StatusDisbursed,
		disbursement.StatusSettled,
		disbursement.StatusCancelled,
	} {
		uc := newUsecase(uow.Repos{
			Disbursements: &disbursementmock.Repo{
				GetByIDFn: func(ctx context.Context, id string) (*disbursement.Disbursement, error) {
					return &disbursement.Disbursement{DisbursementID: id, Status: status}, nil
				},
			},
		})
		_, err := uc.ApproveDisbursement(context.Background(), ApproveInput{
			DisbursementID: "d",
			ApprovedBy:     "a",
			IssueDate:      day(2025, 2, 1),
		})
		if !errors.Is(err, disbursement.ErrInvalidTransition) {
			t.Fatalf("status %s: want ErrInvalidTransition, got %v", status, err)
		}
	}
}

func TestApproveDisbursement_RejectsWhenNoteAlreadyLive(t *testing.T) {
	uc := newUsecase(uow.Repos{
		Disbursements: &disbursementmock.Repo{
			GetByIDFn: func(ctx context.Context, id string) (*disbursement.Disbursement, error) {
				return &disbursement.Disbursement{DisbursementID: id, Status: disbursement.StatusPending}, nil
			},
		},
		Notes: &notemock.Repo{
			GetActiveByDisbursementIDFn: func(ctx context.Context, id string) (*note.PromissoryNote, error) {
				return &note.PromissoryNote{NoteID: "live", Status: note.StatusActive}, nil
			},
		},
	})
	_, err := uc.ApproveDisbursement(context.Background(), ApproveInput{
		DisbursementID: "d",
		ApprovedBy:     "a",
		IssueDate:      day(2025, 2, 1),
	})
	if !errors.Is(err, disbursement.ErrHasActiveNote) {
		t.Fatalf("want ErrHasActiveNote, got %v", err)
	}
}

func TestCancelDisbursement_CancelsNoteToo(t *testing.T) {
	cancelledNote := false
	uc := newUsecase(uow.Repos{
		Disbursements: &disbursementmock.Repo{
			MarkCancelledFn: func(ctx context.Context, id string) error { return nil },
		},
		Notes: &notemock.Repo{
			CancelByDisbursementIDFn: func(ctx context.Context, id string) error {
				cancelledNote = true
				return nil
			},
		},
	})
	if err := uc.CancelDisbursement(context.Background(), "d", "actor"); err != nil {
		t.Fatalf("CancelDisbursement err: %v", err)
	}
	if !cancelledNote {
		t.Fatalf("live note was not cancelled with its disbursement")
	}
}

func TestCancelDisbursement_TerminalStateFails(t *testing.T) {
	uc := newUsecase(uow.Repos{
		Disbursements: &disbursementmock.Repo{
			MarkCancelledFn: func(ctx context.Context, id string) error {
				return disbursement.ErrInvalidTransition
			},
		},
	})
	if err := uc.CancelDisbursement(context.Background(), "d", "actor"); !errors.Is(err, disbursement.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestSettleNote_CascadesToDisbursement(t *testing.T) {
	settled, cascaded := false, false
	uc := newUsecase(uow.Repos{
		Notes: &notemock.Repo{
			GetByIDFn: func(ctx context.Context, id string) (*note.PromissoryNote, error) {
				return &note.PromissoryNote{NoteID: id, DisbursementID: "disb-1", Status: note.StatusActive}, nil
			},
			SettleFn: func(ctx context.Context, id string, amount decimal.Decimal, date time.Time) error {
				settled = true
				return nil
			},
		},
		Disbursements: &disbursementmock.Repo{
			MarkSettledFn: func(ctx context.Context, id string) error {
				if id != "disb-1" {
					t.Fatalf("cascade hit wrong disbursement: %s", id)
				}
				cascaded = true
				return nil
			},
		},
	})

	err := uc.SettleNote(context.Background(), SettleInput{
		NoteID: "n1", Amount: dec("101000"), Date: day(2025, 5, 1), ActorID: "a",
	})
	if err != nil {
		t.Fatalf("SettleNote err: %v", err)
	}
	if !settled || !cascaded {
		t.Fatalf("settled=%v cascaded=%v, want both", settled, cascaded)
	}
}

func TestSettleNote_SecondSettleLosesRace(t *testing.T) {
	uc := newUsecase(uow.Repos{
		Notes: &notemock.Repo{
			GetByIDFn: func(ctx context.Context, id string) (*note.PromissoryNote, error) {
				return &note.PromissoryNote{NoteID: id, DisbursementID: "d", Status: note.StatusSettled}, nil
			},
			SettleFn: func(ctx context.Context, id string, amount decimal.Decimal, date time.Time) error {
				return note.ErrNotActive
			},
		},
	})
	err := uc.SettleNote(context.Background(), SettleInput{
		NoteID: "n1", Amount: dec("100"), Date: day(2025, 5, 1),
	})
	if !errors.Is(err, note.ErrNotActive) {
		t.Fatalf("want ErrNotActive, got %v", err)
	}
}

func TestSettleNote_InvalidInput(t *testing.T) {
	uc := newUsecase(uow.Repos{})
	if err := uc.SettleNote(context.Background(), SettleInput{NoteID: "n", Amount: dec("0"), Date: day(2025, 1, 1)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero amount: want ErrInvalidInput, got %v", err)
	}
	if err := uc.SettleNote(context.Background(), SettleInput{NoteID: "n", Amount: dec("10")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero date: want ErrInvalidInput, got %v", err)
	}
}

func TestSweepOverdue_ReportsBothCounts(t *testing.T) {
	notes := &notemock.Repo{
		MarkOverdueFn: func(ctx context.Context, asOf time.Time) (int64, error) { return 3, nil },
	}
	dns := &debitnotemock.Repo{
		MarkOverdueFn: func(ctx context.Context, asOf time.Time) (int64, error) { return 1, nil },
	}
	uc := NewUsecase(uowmock.New(uow.Repos{}), &disbursementmock.Repo{}, notes, dns, audit.Nop{})

	res, err := uc.SweepOverdue(context.Background(), day(2025, 6, 1))
	if err != nil {
		t.Fatalf("SweepOverdue err: %v", err)
	}
	if res.NotesMarked != 3 || res.DebitNotesMarked != 1 {
		t.Fatalf("unexpected counts: %+v", res)
	}
}
