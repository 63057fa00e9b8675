package http

import (
	"github.com/labstack/echo/v4"

	"peerloan-backend/internal/adapter/middleware"
	userDomain "peerloan-backend/internal/domain/user"
)

type Handlers struct {
	Health        *Handler
	Users         *UserHandler
	Offers        *OfferHandler
	Applications  *ApplicationHandler
	Loans         *LoanHandler
	Notifications *NotificationHandler
	Admin         *AdminHandler
}

// Register wires all routes. Mutating endpoints sit behind the caller's
// auth; admin endpoints additionally require the admin role and fail
// before any effect takes place.
func Register(e *echo.Echo, h Handlers, jwtSecret string) {
	e.GET("/health", h.Health.Health)

	authed := e.Group("", middleware.Auth(jwtSecret))

	authed.POST("/users/push-token", h.Users.UpdatePushToken)

	authed.POST("/offers", h.Offers.CreateOffer)
	authed.GET("/offers", h.Offers.ListOffers)
	authed.POST("/offers/:offer_id/deactivate", h.Offers.DeactivateOffer)

	authed.POST("/applications", h.Applications.SubmitApplication)
	authed.GET("/applications", h.Applications.ListApplications)
	authed.GET("/applications/:application_id", h.Applications.GetApplication)
	authed.POST("/applications/:application_id/approve", h.Applications.ApproveApplication)
	authed.POST("/applications/:application_id/reject", h.Applications.RejectApplication)

	authed.GET("/loans", h.Loans.ListLoans)
	authed.GET("/loans/:loan_id", h.Loans.GetLoan)
	authed.POST("/loans/:loan_id/repayments", h.Loans.RecordRepayment)

	authed.GET("/notifications", h.Notifications.ListNotifications)
	authed.POST("/notifications/:notification_id/read", h.Notifications.MarkRead)

	adm := authed.Group("/admin", middleware.RequireRole(string(userDomain.RoleAdmin)))
	adm.POST("/users/:user_id/freeze", h.Admin.FreezeUser)
	adm.POST("/users/:user_id/unfreeze", h.Admin.UnfreezeUser)
	adm.GET("/analytics", h.Admin.GetAnalytics)
	adm.POST("/broadcast", h.Admin.Broadcast)
	adm.GET("/integrity", h.Admin.ScanIntegrity)
}
