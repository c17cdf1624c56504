package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/client-followup/internal/audit"
	"github.com/BruksfildServices01/client-followup/internal/config"
	"github.com/BruksfildServices01/client-followup/internal/handlers"
	infraRepo "github.com/BruksfildServices01/client-followup/internal/infra/repository"
	"github.com/BruksfildServices01/client-followup/internal/middleware"
	"github.com/BruksfildServices01/client-followup/internal/session"
	ucAppointment "github.com/BruksfildServices01/client-followup/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/client-followup/internal/usecase/auth"
	ucClient "github.com/BruksfildServices01/client-followup/internal/usecase/client"
	ucField "github.com/BruksfildServices01/client-followup/internal/usecase/clientfield"
	ucTag "github.com/BruksfildServices01/client-followup/internal/usecase/tag"
	ucUser "github.com/BruksfildServices01/client-followup/internal/usecase/user"
	"github.com/BruksfildServices01/client-followup/internal/validators"
)

// RegisterRoutes wires repositories, use cases and handlers onto r.
// auditDispatcher and bans may be nil.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	auditDispatcher *audit.Dispatcher,
	bans *session.BanList,
) {
	validators.Register()

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)
	fieldRepo := infraRepo.NewClientFieldGormRepository(db)
	tagRepo := infraRepo.NewTagGormRepository(db)
	userRepo := infraRepo.NewUserGormRepository(db)

	// ======================================================
	// USE CASES
	// ======================================================
	userDirectory := ucUser.NewDirectory(userRepo, bans, auditDispatcher)
	tagService := ucTag.NewService(tagRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		ucAuth.NewLogin(userRepo, cfg.JWTSecret, cfg.JWTTTL),
	)
	meHandler := handlers.NewMeHandler(userDirectory)
	userHandler := handlers.NewUserHandler(userDirectory)
	tagHandler := handlers.NewTagHandler(tagService)

	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher),
		ucAppointment.NewRescheduleAppointment(appointmentRepo, auditDispatcher),
		ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher),
		ucAppointment.NewFinalizeAppointment(appointmentRepo, auditDispatcher),
		ucAppointment.NewListAppointments(appointmentRepo),
		ucAppointment.NewGetAppointment(appointmentRepo),
		cfg.Timezone,
	)

	clientHandler := handlers.NewClientHandler(
		ucClient.NewListClients(clientRepo),
		ucClient.NewGetClient(clientRepo),
		ucClient.NewCreateClient(clientRepo, auditDispatcher),
		ucClient.NewUpdateClient(clientRepo, auditDispatcher),
		ucClient.NewDeactivateClient(clientRepo, auditDispatcher),
		ucClient.NewTransferClient(clientRepo, auditDispatcher),
		ucClient.NewClientHistory(clientRepo),
	)

	clientFieldHandler := handlers.NewClientFieldHandler(
		ucField.NewListFields(fieldRepo),
		ucField.NewCreateField(fieldRepo, auditDispatcher),
		ucField.NewUpdateField(fieldRepo, auditDispatcher),
		ucField.NewDeactivateField(fieldRepo, auditDispatcher),
		ucField.NewReorderFields(fieldRepo),
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, userRepo, bans))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.POST("/appointments/:id/finalize", appointmentHandler.Finalize)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PATCH("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Deactivate)
			secured.POST("/clients/:id/transfer", clientHandler.Transfer)
			secured.GET("/clients/:id/history", clientHandler.History)

			// ------------------------------
			// CLIENT FIELDS
			// ------------------------------
			secured.GET("/client-fields", clientFieldHandler.List)
			secured.POST("/client-fields", clientFieldHandler.Create)
			secured.PUT("/client-fields/order", clientFieldHandler.Reorder)
			secured.PATCH("/client-fields/:id", clientFieldHandler.Update)
			secured.DELETE("/client-fields/:id", clientFieldHandler.Deactivate)

			// ------------------------------
			// TAGS
			// ------------------------------
			secured.GET("/tags", tagHandler.List)
			secured.POST("/tags", tagHandler.Create)
			secured.PATCH("/tags/:id", tagHandler.Update)
			secured.DELETE("/tags/:id", tagHandler.Delete)
			secured.POST("/tags/:id/clients/:clientId", tagHandler.LinkClient)
			secured.DELETE("/tags/:id/clients/:clientId", tagHandler.UnlinkClient)

			// ------------------------------
			// USERS
			// ------------------------------
			secured.GET("/users", userHandler.List)
			secured.POST("/users", userHandler.Create)
			secured.GET("/users/:id", userHandler.Get)
			secured.PATCH("/users/:id", userHandler.Update)
			secured.POST("/users/:id/password", userHandler.ResetPassword)
			secured.POST("/users/:id/deactivate", userHandler.Deactivate)
			secured.POST("/users/:id/reactivate", userHandler.Reactivate)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
