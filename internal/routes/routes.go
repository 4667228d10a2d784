package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/Pedrolamon/hairdayy-sub000/internal/audit"
	"github.com/Pedrolamon/hairdayy-sub000/internal/chatbot"
	"github.com/Pedrolamon/hairdayy-sub000/internal/config"
	"github.com/Pedrolamon/hairdayy-sub000/internal/handlers"
	infraRepo "github.com/Pedrolamon/hairdayy-sub000/internal/infra/repository"
	"github.com/Pedrolamon/hairdayy-sub000/internal/logging"
	"github.com/Pedrolamon/hairdayy-sub000/internal/middleware"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
	"github.com/Pedrolamon/hairdayy-sub000/internal/notification"
	"github.com/Pedrolamon/hairdayy-sub000/internal/payments"
	ucAppointment "github.com/Pedrolamon/hairdayy-sub000/internal/usecase/appointment"
	ucReferral "github.com/Pedrolamon/hairdayy-sub000/internal/usecase/referral"
)

const chatbotSessionTTL = 30 * time.Minute

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	rdb *redis.Client,
	notifier notification.Notifier,
) error {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	referralRepo := infraRepo.NewReferralGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		notifier,
		auditDispatcher,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		auditDispatcher,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	// ======================================================
	// 🧠 USE CASES — REFERRALS
	// ======================================================
	referralSummaryUC := ucReferral.NewGetSummary(referralRepo)

	processPaymentUC := ucReferral.NewProcessPayment(
		referralRepo,
		notifier,
		auditDispatcher,
	)

	cancelPaymentUC := ucReferral.NewCancelPayment(
		referralRepo,
		auditDispatcher,
	)

	// ======================================================
	// 🤖 CHATBOT + PAGAMENTOS
	// ======================================================
	sessionStore := chatbot.NewSessionStore(rdb, chatbotSessionTTL)
	chatbotEngine := chatbot.NewEngine(
		sessionStore,
		appointmentRepo,
		availabilityUC,
		createAppointmentUC,
	)

	// Sem access token o webhook de pagamentos fica desligado.
	var paymentProcessor *payments.Processor
	if cfg.MercadoPagoAccessToken != "" {
		p, err := payments.NewProcessor(
			cfg.MercadoPagoAccessToken,
			processPaymentUC,
			cancelPaymentUC,
		)
		if err != nil {
			return err
		}
		paymentProcessor = p
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		availabilityUC,
		createAppointmentUC,
		updateStatusUC,
		deleteAppointmentUC,
		listAppointmentsByDateUC,
	)

	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	blockHandler := handlers.NewAvailabilityBlockHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	productHandler := handlers.NewProductHandler(db)
	financialHandler := handlers.NewFinancialHandler(db)

	referralHandler := handlers.NewReferralHandler(
		db,
		referralSummaryUC,
		processPaymentUC,
		cancelPaymentUC,
	)

	chatbotHandler := handlers.NewChatbotHandler(chatbotEngine)

	// ======================================================
	// 📈 MÉTRICAS
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/appointments/available-slots", appointmentHandler.AvailableSlots)
		api.POST("/chatbot/webhook", chatbotHandler.Webhook)
		if paymentProcessor != nil {
			paymentWebhookHandler := handlers.NewPaymentWebhookHandler(paymentProcessor)
			api.POST("/payments/webhook", paymentWebhookHandler.Webhook)
		} else {
			logging.L().Warn("MP_ACCESS_TOKEN ausente, webhook de pagamentos desabilitado")
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PUT("/me", meHandler.UpdateMe)
			secured.PUT("/me/device-token", meHandler.RegisterDeviceToken)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/working-hours", workingHoursHandler.Get)
			secured.PUT("/working-hours", workingHoursHandler.Update)

			secured.GET("/blocks", blockHandler.List)
			secured.POST("/blocks", blockHandler.Create)
			secured.DELETE("/blocks/:id", blockHandler.Delete)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/products", productHandler.List)
			secured.POST("/products", productHandler.Create)
			secured.PUT("/products/:id", productHandler.Update)
			secured.DELETE("/products/:id", productHandler.Delete)
			secured.POST("/sales", productHandler.RegisterSale)
			secured.GET("/sales", productHandler.ListSales)

			secured.GET("/financial", financialHandler.List)
			secured.POST("/financial", financialHandler.Create)
			secured.PUT("/financial/:id", financialHandler.Update)
			secured.DELETE("/financial/:id", financialHandler.Delete)
			secured.GET("/financial/summary", financialHandler.Summary)

			// ------------------------------
			// REFERRALS
			// ------------------------------
			secured.GET("/referrals/summary", referralHandler.Summary)
			secured.GET("/referrals/payouts", referralHandler.ListPayouts)

			admin := secured.Group("/referrals")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/process-payment", referralHandler.ProcessPayment)
				admin.POST("/cancel", referralHandler.CancelPayment)
			}
		}
	}

	return nil
}
