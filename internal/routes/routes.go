package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/delivery-scheduler/internal/audit"
	"github.com/BruksfildServices01/delivery-scheduler/internal/config"
	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/handlers"
	"github.com/BruksfildServices01/delivery-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/delivery-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/delivery-scheduler/internal/middleware"
	"github.com/BruksfildServices01/delivery-scheduler/internal/observability"
	ucAppointment "github.com/BruksfildServices01/delivery-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/delivery-scheduler/internal/usecase/availability"
)

type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client // nil desliga o cache de slots
	Config *config.Config
	Logger zerolog.Logger
}

// RegisterRoutes monta a API e devolve a função que encerra os workers
// em background (audit). Chamar depois de parar o servidor HTTP.
func RegisterRoutes(r *gin.Engine, d Deps) (shutdown func()) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry)

	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB)

	auditLogger := audit.New(d.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger, d.Logger)

	// interfaces ficam nil (não *SlotCache nil) quando não há redis
	var (
		slotCache           ucAvailability.SlotCache
		invalidator         ucAppointment.SlotInvalidator
		offeringInvalidator ucAvailability.OfferingInvalidator
	)
	if d.Redis != nil {
		c := cache.NewSlotCache(d.Redis, cfg.SlotCacheTTL)
		slotCache, invalidator, offeringInvalidator = c, c, c
	}

	// ======================================================
	// USE CASES
	// ======================================================
	engine := ucAppointment.NewEngine(
		appointmentRepo,
		auditDispatcher,
		invalidator,
		metrics,
		d.Logger,
		ucAppointment.Options{StrictStatusRecovery: cfg.StrictStatusRecovery},
	)

	getSlotsUC := ucAvailability.NewGetAvailableSlots(appointmentRepo, slotCache, metrics, d.Logger)
	manageScheduleUC := ucAvailability.NewManageSchedule(scheduleRepo, offeringInvalidator, d.Logger)

	// ======================================================
	// HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler(d.DB)
	appointmentHandler := handlers.NewAppointmentHandler(engine)
	scheduleHandler := handlers.NewScheduleHandler(getSlotsUC, manageScheduleUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)

	// ======================================================
	// OPERACIONAL
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/offerings/:id/slots", scheduleHandler.Slots)
		}

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// AVAILABILITY
			// ------------------------------
			secured.GET("/offerings/:id/slots", scheduleHandler.Slots)
			secured.GET("/offerings/:id/weekly-schedule", scheduleHandler.GetWeeklySchedule)
			secured.PUT("/offerings/:id/weekly-schedule", scheduleHandler.UpdateWeeklySchedule)
			secured.GET("/offerings/:id/exception-rules", scheduleHandler.ListRules)
			secured.POST("/offerings/:id/exception-rules", scheduleHandler.CreateRule)
			secured.DELETE("/exception-rules/:id", scheduleHandler.DeleteRule)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.GET("/appointments/:id/activities", appointmentHandler.Activities)
			secured.POST("/appointments/:id/comments", appointmentHandler.Transition(domain.OpComment))

			for path, op := range lifecycleRoutes {
				secured.POST("/appointments/:id/"+path, appointmentHandler.Transition(op))
			}

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return auditDispatcher.Close
}

var lifecycleRoutes = map[string]domain.Operation{
	"approve":              domain.OpApprove,
	"reject":               domain.OpReject,
	"cancel":               domain.OpCancel,
	"request-cancellation": domain.OpRequestCancellation,
	"approve-cancellation": domain.OpApproveCancellation,
	"reject-cancellation":  domain.OpRejectCancellation,
	"no-show":              domain.OpMarkAsNoShow,
	"complete":             domain.OpMarkAsCompleted,
	"request-reschedule":   domain.OpRequestReschedule,
	"approve-reschedule":   domain.OpApproveReschedule,
	"reject-reschedule":    domain.OpRejectReschedule,
	"reschedule":           domain.OpReschedule,
}
