package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peerloan-backend/internal/adapter/repository/mysql"
	"peerloan-backend/internal/config"
	"peerloan-backend/internal/infrastructure/cache"
	"peerloan-backend/internal/infrastructure/db"
	"peerloan-backend/internal/infrastructure/queue"
	"peerloan-backend/internal/oracle"
	"peerloan-backend/internal/push"
	"peerloan-backend/internal/storage"
	accountUC "peerloan-backend/internal/usecase/account"
	analysisUC "peerloan-backend/internal/usecase/analysis"
	commissionUC "peerloan-backend/internal/usecase/commission"
	contractUC "peerloan-backend/internal/usecase/contract"
	notifyUC "peerloan-backend/internal/usecase/notify"
	repaymentUC "peerloan-backend/internal/usecase/repayment"
	"peerloan-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	events := queue.NewRedisQueue(rdb, cfg.EventQueueKey)

	users := mysql.NewUserRepository(gdb)
	applications := mysql.NewApplicationRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	repayments := mysql.NewRepaymentRepository(gdb)
	commissions := mysql.NewCommissionRepository(gdb)
	notifications := mysql.NewNotificationRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	dispatcher := notifyUC.NewDispatcher(users, notifications, push.LogSender{})
	calculator := commissionUC.NewCalculator(commissions, dispatcher)
	scorer := oracle.NewClient(cfg.OracleBaseURL, time.Duration(cfg.OracleTimeoutSecs)*time.Second)
	statements := storage.NewDirStore(cfg.StatementDir)

	w := worker.New(events, worker.Handlers{
		Analysis:  analysisUC.NewUsecase(applications, statements, scorer, dispatcher),
		Contract:  contractUC.NewUsecase(applications, loans, dispatcher),
		Repayment: repaymentUC.NewUsecase(loans, repayments, calculator, tx, events),
		Account:   accountUC.NewUsecase(dispatcher),
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// events stranded in-flight by a previous crash go back on the queue
	if n, err := events.Reclaim(ctx); err != nil {
		log.Fatal(err)
	} else if n > 0 {
		logger.Info("reclaimed in-flight events", "count", n)
	}

	logger.Info("reconciler worker started", "queue", cfg.EventQueueKey)
	if err := w.Run(ctx); err != nil {
		log.Fatal(err)
	}
	logger.Info("reconciler worker stopped")
}
