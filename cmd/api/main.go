package main

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "creditline-backend/internal/adapter/http"
	"creditline-backend/internal/adapter/middleware"
	"creditline-backend/internal/adapter/repository/mysql"
	"creditline-backend/internal/audit"
	"creditline-backend/internal/config"
	"creditline-backend/internal/domain/banktx"
	"creditline-backend/internal/domain/client"
	"creditline-backend/internal/domain/debitnote"
	"creditline-backend/internal/domain/disbursement"
	"creditline-backend/internal/domain/note"
	"creditline-backend/internal/domain/sequence"
	"creditline-backend/internal/domain/settings"
	"creditline-backend/internal/infrastructure/cache"
	"creditline-backend/internal/infrastructure/db"
	"creditline-backend/internal/usecase/billing"
	"creditline-backend/internal/usecase/interest"
	"creditline-backend/internal/usecase/lifecycle"
	"creditline-backend/internal/usecase/reconcile"
	"creditline-backend/internal/usecase/report"

	"gorm.io/gorm"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("bad configuration")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.WithError(err).Fatal("mysql connect failed")
	}
	if err := migrate(gdb); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("redis connect failed")
	}

	repos := mysql.NewRepos(gdb)
	if err := seedSettings(cfg, repos.Settings); err != nil {
		log.WithError(err).Fatal("settings seed failed")
	}

	tx := mysql.NewGormUoW(gdb)
	sink := audit.NewLogrusSink(log)

	interestUC := interest.NewUsecase(repos.Notes, repos.Snapshots, repos.Settings, log)
	lifecycleUC := lifecycle.NewUsecase(tx, repos.Disbursements, repos.Notes, repos.DebitNotes, sink)
	billingUC := billing.NewUsecase(tx, repos.DebitNotes, sink)
	reconcileUC := reconcile.NewUsecase(tx, repos.BankTxns, repos.Notes, sink)
	reportUC := report.NewUsecase(repos.Notes, repos.Snapshots, repos.Clients, interestUC)

	h := httpadp.NewHandler()
	disbH := httpadp.NewDisbursementHandler(lifecycleUC)
	intH := httpadp.NewInterestHandler(interestUC)
	billH := httpadp.NewBillingHandler(billingUC)
	recH := httpadp.NewReconcileHandler(reconcileUC)
	repH := httpadp.NewReportHandler(reportUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	// Mutating endpoints sit behind the replay guard; reads stay open.
	guarded := e.Group("", middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	guarded.POST("/disbursements", disbH.Create)
	guarded.POST("/disbursements/:disbursement_id/approve", disbH.Approve)
	guarded.POST("/disbursements/:disbursement_id/cancel", disbH.Cancel)
	guarded.POST("/notes/:note_id/settle", disbH.SettleNote)
	guarded.POST("/sweeps/overdue", disbH.SweepOverdue)

	guarded.POST("/interest/accrue", intH.Accrue)
	e.GET("/notes/:note_id/interest", intH.NoteInterest)

	guarded.POST("/debit-notes", billH.Generate)
	e.GET("/debit-notes/:debit_note_id", billH.Get)
	guarded.POST("/debit-notes/:debit_note_id/pay", billH.Pay)

	guarded.POST("/transactions/import", recH.Import)
	guarded.POST("/transactions/:transaction_id/match", recH.Match)
	guarded.POST("/transactions/:transaction_id/unmatch", recH.Unmatch)
	e.GET("/transactions/:transaction_id/suggestions", recH.Suggestions)

	e.GET("/reports/dashboard", repH.Dashboard)
	e.GET("/reports/aging", repH.Aging)
	e.GET("/reports/period", repH.Period)

	addr := ":" + cfg.AppPort
	log.WithField("addr", addr).Info("listening")
	if err := e.Start(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&client.Client{},
		&disbursement.Disbursement{},
		&note.PromissoryNote{},
		&note.InterestSnapshot{},
		&debitnote.DebitNote{},
		&debitnote.DebitNoteLineItem{},
		&banktx.BankTransaction{},
		&settings.Settings{},
		&sequence.DocSequence{},
	)
}

// seedSettings writes the engine defaults from the environment on first
// boot; an existing row wins on every later start.
func seedSettings(cfg *config.Config, repo settings.Repository) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, settings.ErrMissingConfig) {
		return err
	}
	return repo.Upsert(ctx, &settings.Settings{
		DayBasis:           cfg.DayBasis,
		InterestRateAnnual: cfg.InterestRateAnnual,
		DefaultDueDays:     cfg.DefaultDueDays,
		CreditLimitTotal:   cfg.CreditLimitTotal,
	})
}
