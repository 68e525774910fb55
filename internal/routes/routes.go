package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TatianaS7/booksy/internal/audit"
	"github.com/TatianaS7/booksy/internal/cache"
	"github.com/TatianaS7/booksy/internal/config"
	"github.com/TatianaS7/booksy/internal/handlers"
	infraRepo "github.com/TatianaS7/booksy/internal/infra/repository"
	"github.com/TatianaS7/booksy/internal/middleware"
	ucBooking "github.com/TatianaS7/booksy/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, searchCache *cache.Cache) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	createAppointmentUC := ucBooking.NewCreateAppointment(
		bookingRepo,
		auditDispatcher,
	)

	rescheduleAppointmentUC := ucBooking.NewRescheduleAppointment(
		bookingRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucBooking.NewCancelAppointment(
		bookingRepo,
		auditDispatcher,
	)

	confirmAppointmentUC := ucBooking.NewConfirmAppointment(
		bookingRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucBooking.NewCompleteAppointment(
		bookingRepo,
		auditDispatcher,
	)

	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher)
	userHandler := handlers.NewUserHandler(db)
	businessHandler := handlers.NewBusinessHandler(db, searchCache, availabilityUC)
	serviceHandler := handlers.NewServiceHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		rescheduleAppointmentUC,
		cancelAppointmentUC,
		confirmAppointmentUC,
		completeAppointmentUC,
	)

	// ======================================================
	// AUTH
	// ======================================================
	auth := r.Group("/auth")
	{
		auth.POST("/user/register", authHandler.RegisterUser)
		auth.POST("/user/login", authHandler.LoginUser)
		auth.POST("/business/register", authHandler.RegisterBusiness)
		auth.POST("/business/login", authHandler.LoginBusiness)
	}

	// ======================================================
	// PUBLIC (no token)
	// ======================================================
	business := r.Group("/business")
	{
		business.GET("/all", businessHandler.ListAll)
		business.GET("/search", businessHandler.Search)
		business.GET("/:id", businessHandler.GetByID)
		business.GET("/:id/services", businessHandler.ListServices)
		business.GET("/:id/availability", businessHandler.Availability)
	}

	// ======================================================
	// USER (token, actor=user)
	// ======================================================
	user := r.Group("/user/me")
	user.Use(middleware.AuthMiddleware(cfg, middleware.ActorUser))
	{
		user.GET("", userHandler.GetMe)
		user.PATCH("", userHandler.UpdateMe)

		user.GET("/appointments", userHandler.ListMyAppointments)
		user.POST("/appointments", appointmentHandler.Create)
		user.GET("/appointments/:id", appointmentHandler.Get)
		user.PATCH("/appointments/:id", appointmentHandler.Update)
		user.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		user.DELETE("/appointments/:id", appointmentHandler.Cancel)
	}

	// ======================================================
	// BUSINESS (token, actor=business)
	// ======================================================
	me := r.Group("/business/me")
	me.Use(middleware.AuthMiddleware(cfg, middleware.ActorBusiness))
	{
		me.GET("", businessHandler.GetMe)
		me.PATCH("", businessHandler.UpdateMe)

		me.GET("/services", serviceHandler.List)
		me.POST("/services", serviceHandler.Create)
		me.PATCH("/services/:id", serviceHandler.Update)

		me.GET("/appointments", appointmentHandler.ListByDate)
		me.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
		me.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		me.PATCH("/appointments/:id/cancel", appointmentHandler.CancelForBusiness)

		me.GET("/audit-logs", auditLogsHandler.List)
	}
}
