package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "peerloan-backend/internal/adapter/http"
	adpmw "peerloan-backend/internal/adapter/middleware"
	"peerloan-backend/internal/adapter/repository/mysql"
	"peerloan-backend/internal/config"
	"peerloan-backend/internal/infrastructure/cache"
	"peerloan-backend/internal/infrastructure/db"
	"peerloan-backend/internal/infrastructure/queue"
	"peerloan-backend/internal/push"
	adminUC "peerloan-backend/internal/usecase/admin"
	applicationUC "peerloan-backend/internal/usecase/application"
	commissionUC "peerloan-backend/internal/usecase/commission"
	notifyUC "peerloan-backend/internal/usecase/notify"
	offerUC "peerloan-backend/internal/usecase/offer"
	repaymentUC "peerloan-backend/internal/usecase/repayment"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

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
	offers := mysql.NewOfferRepository(gdb)
	applications := mysql.NewApplicationRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	repayments := mysql.NewRepaymentRepository(gdb)
	commissions := mysql.NewCommissionRepository(gdb)
	notifications := mysql.NewNotificationRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	dispatcher := notifyUC.NewDispatcher(users, notifications, push.LogSender{})
	calculator := commissionUC.NewCalculator(commissions, dispatcher)

	cv := httpadp.NewValidator()
	handlers := httpadp.Handlers{
		Health:        httpadp.NewHandler(),
		Users:         httpadp.NewUserHandler(users, cv),
		Offers:        httpadp.NewOfferHandler(offerUC.NewUsecase(offers), cv),
		Applications:  httpadp.NewApplicationHandler(applicationUC.NewUsecase(offers, applications, uow, events), cv),
		Loans:         httpadp.NewLoanHandler(loans, repaymentUC.NewUsecase(loans, repayments, calculator, uow, events), cv),
		Notifications: httpadp.NewNotificationHandler(notifications),
		Admin:         httpadp.NewAdminHandler(adminUC.NewUsecase(users, loans, applications, commissions, dispatcher, events), cv),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(adpmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	httpadp.Register(e, handlers, cfg.JWTSecret)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
