package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	"github.com/BruksfildServices01/rental-platform/internal/config"
	viewingDomain "github.com/BruksfildServices01/rental-platform/internal/domain/viewing"
	"github.com/BruksfildServices01/rental-platform/internal/handlers"
	infraRepo "github.com/BruksfildServices01/rental-platform/internal/infra/repository"
	"github.com/BruksfildServices01/rental-platform/internal/middleware"
	"github.com/BruksfildServices01/rental-platform/internal/timezone"
	ucApplication "github.com/BruksfildServices01/rental-platform/internal/usecase/application"
	ucBooking "github.com/BruksfildServices01/rental-platform/internal/usecase/booking"
	ucContract "github.com/BruksfildServices01/rental-platform/internal/usecase/contract"
	ucViewing "github.com/BruksfildServices01/rental-platform/internal/usecase/viewing"
)

// Deps are the process-wide singletons the routes are built from. Slots and
// Documents may be nil when Redis or S3 are not configured.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Logger    *slog.Logger
	Audit     *audit.Dispatcher
	Slots     ucViewing.SlotCache
	Documents ucContract.DocumentStore
}

// GridFrom builds the agent calendar grid from configuration.
func GridFrom(cfg *config.Config) viewingDomain.Grid {
	return viewingDomain.Grid{
		Location: timezone.Location(cfg.Timezone),
		DayStart: cfg.Viewing.DayStart,
		DayEnd:   cfg.Viewing.DayEnd,
		Step:     time.Duration(cfg.Viewing.StepMinutes) * time.Minute,
		Buffer:   time.Duration(cfg.Viewing.BufferMinutes) * time.Minute,
	}
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	log := d.Logger
	auditDispatcher := d.Audit

	slots := d.Slots
	if slots == nil {
		slots = ucViewing.NopSlotCache{}
	}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	viewingRepo := infraRepo.NewViewingGormRepository(d.DB)
	applicationRepo := infraRepo.NewApplicationGormRepository(d.DB)
	contractRepo := infraRepo.NewContractGormRepository(d.DB)

	grid := GridFrom(cfg)

	// ======================================================
	// USE CASES - BOOKINGS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		ucBooking.NewCreateBookingRequest(bookingRepo, auditDispatcher),
		ucBooking.NewTransitionBooking(bookingRepo, auditDispatcher),
		ucBooking.NewListBookings(bookingRepo),
		ucBooking.NewGetBooking(bookingRepo),
		ucBooking.NewCheckAvailability(bookingRepo),
		ucBooking.NewQuote(bookingRepo),
	)

	// ======================================================
	// USE CASES - VIEWINGS
	// ======================================================
	viewingHandler := handlers.NewViewingHandler(handlers.ViewingUseCases{
		Schedule:   ucViewing.NewScheduleViewing(viewingRepo, grid, slots, auditDispatcher, log),
		Reschedule: ucViewing.NewRescheduleViewing(viewingRepo, grid, slots, auditDispatcher, log),
		Complete:   ucViewing.NewCompleteViewing(viewingRepo, grid, slots, auditDispatcher, log),
		Cancel:     ucViewing.NewCancelViewing(viewingRepo, grid, slots, auditDispatcher, log),
		Slots:      ucViewing.NewListAvailableSlots(viewingRepo, grid, slots, log),
		Conflicts:  ucViewing.NewFindConflicts(viewingRepo, grid),
		List:       ucViewing.NewListViewings(viewingRepo),
		Get:        ucViewing.NewGetViewing(viewingRepo),
	}, grid.Location)

	// ======================================================
	// USE CASES - APPLICATIONS / CONTRACTS
	// ======================================================
	applicationHandler := handlers.NewApplicationHandler(
		ucApplication.NewSubmitApplication(applicationRepo, auditDispatcher),
		ucApplication.NewUpdateStatus(applicationRepo, auditDispatcher),
		ucApplication.NewGetApplication(applicationRepo),
		ucApplication.NewListApplications(applicationRepo),
	)

	contractHandler := handlers.NewContractHandler(handlers.ContractUseCases{
		Create:      ucContract.NewCreateContract(contractRepo, auditDispatcher),
		Send:        ucContract.NewSendContract(contractRepo, auditDispatcher),
		Sign:        ucContract.NewSignContract(contractRepo, auditDispatcher),
		Attach:      ucContract.NewAttachDocument(contractRepo, d.Documents, auditDispatcher),
		Get:         ucContract.NewGetContract(contractRepo),
		List:        ucContract.NewListContracts(contractRepo),
		Commission:  ucContract.NewCreateCommission(contractRepo, auditDispatcher),
		Transition:  ucContract.NewTransitionCommission(contractRepo, auditDispatcher),
		Commissions: ucContract.NewListCommissions(contractRepo),
	})

	propertyHandler := handlers.NewPropertyHandler(d.DB, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// Public
		// ------------------------------
		api.GET("/properties/:id", propertyHandler.Get)
		api.GET("/properties/:id/availability", bookingHandler.Availability)
		api.GET("/properties/:id/available/:date", bookingHandler.AvailableOn)
		api.GET("/properties/:id/availability-blocks", propertyHandler.ListAvailability)
		api.GET("/properties/:id/quote", bookingHandler.Quote)
		api.GET("/agents/:id/slots", viewingHandler.Slots)
		api.GET("/agents/:id/conflicts", viewingHandler.Conflicts)

		// ------------------------------
		// Authenticated
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// properties
			secured.POST("/properties", propertyHandler.Create)
			secured.DELETE("/properties/:id", propertyHandler.Deactivate)
			secured.PUT("/properties/:id/short-term", propertyHandler.UpsertShortTerm)
			secured.PUT("/properties/:id/long-term", propertyHandler.UpsertLongTerm)
			secured.POST("/properties/:id/availability-blocks", propertyHandler.AddAvailability)
			secured.GET("/properties/:id/bookings", bookingHandler.ListForProperty)
			secured.GET("/properties/:id/applications", applicationHandler.ListForProperty)

			// bookings
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.ListMine)
			secured.GET("/me/bookings", bookingHandler.ListMine)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.POST("/bookings/:id/confirm", bookingHandler.Confirm)
			secured.POST("/bookings/:id/cancel", bookingHandler.Cancel)
			secured.POST("/bookings/:id/complete", bookingHandler.Complete)

			// viewings
			secured.POST("/viewings", viewingHandler.Schedule)
			secured.GET("/viewings", viewingHandler.List)
			secured.GET("/viewings/:id", viewingHandler.Get)
			secured.POST("/viewings/:id/complete", viewingHandler.Complete)
			secured.POST("/viewings/:id/cancel", viewingHandler.Cancel)
			secured.POST("/viewings/:id/reschedule", viewingHandler.Reschedule)

			// applications
			secured.POST("/applications", applicationHandler.Submit)
			secured.GET("/applications", applicationHandler.ListMine)
			secured.GET("/applications/:id", applicationHandler.Get)
			secured.PATCH("/applications/:id/status", applicationHandler.UpdateStatus)

			// contracts
			secured.POST("/contracts", contractHandler.Create)
			secured.GET("/contracts", contractHandler.ListMine)
			secured.GET("/contracts/:id", contractHandler.Get)
			secured.POST("/contracts/:id/send", contractHandler.Send)
			secured.POST("/contracts/:id/sign", contractHandler.Sign)
			secured.POST("/contracts/:id/document", contractHandler.UploadDocument)
			secured.POST("/contracts/:id/commissions", contractHandler.CreateCommission)

			// commissions
			secured.GET("/commissions", contractHandler.ListMyCommissions)
			secured.PATCH("/commissions/:id", contractHandler.UpdateCommission)

			// audit
			secured.GET("/audit-logs", middleware.RequireRole(middleware.RoleAdmin), auditLogsHandler.List)
		}
	}
}
