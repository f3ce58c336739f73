package routes

import (
	"careconnect/cache"
	"careconnect/config"
	"careconnect/controllers"
	"careconnect/handlers"
	"careconnect/middlewares"
	"careconnect/realtime"
	"careconnect/repositories"
	"careconnect/services"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) (http.Handler, error) {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.careconnect.health", "https://careconnect-dev.health"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15, // 15 requests per second
		Burst:             30, // Burst of 30
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// The question table is static per process; a bad table is a startup
	// failure, not a request-time one.
	questionTable, err := services.LoadQuestionTable(config.HealthQuestions)
	if err != nil {
		return nil, fmt.Errorf("failed to load health questions: %w", err)
	}

	// Initialize repositories, services, and handlers
	userRepo := repositories.NewUserRepository(db, cache)
	doctorRepo := repositories.NewDoctorRepository(cache)
	patientRepo := repositories.NewPatientRepository()
	appointmentRepo := repositories.NewAppointmentRepository()
	paymentRepo := repositories.NewPaymentRepository(cache)
	chatRepo := repositories.NewChatRepository()
	assessmentRepo := repositories.NewAssessmentRepository()

	orderClient := services.NewRazorpayOrderClient(config.RazorpayKeyID, config.RazorpayKeySecret)
	publisher := realtime.NewPusherPublisher(config.PusherAppID, config.PusherKey, config.PusherSecret, config.PusherCluster)

	userService := services.NewUserService(userRepo)
	doctorService := services.NewDoctorService(doctorRepo)
	patientService := services.NewPatientService(patientRepo)
	paymentService := services.NewPaymentService(orderClient, doctorRepo, paymentRepo, config.RazorpayKeySecret)
	appointmentService := services.NewAppointmentService(appointmentRepo, doctorRepo, patientRepo, paymentRepo, services.NewEmailNotifier())
	chatService := services.NewChatService(chatRepo, appointmentRepo, publisher)
	healthService := services.NewHealthScoreService(questionTable, assessmentRepo)
	labService := services.NewLabReportService(config.LabParserURL, patientRepo)

	authHandler := handlers.NewAuthHandler(userService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	patientHandler := handlers.NewPatientHandler(patientService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, patientService, config.RazorpayKeyID)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, patientService, doctorService)
	chatHandler := handlers.NewChatHandler(chatService, patientService, doctorService)
	healthHandler := handlers.NewHealthScoreHandler(healthService, patientService)
	labHandler := handlers.NewLabReportHandler(labService, patientService)

	// Register routes
	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupDoctorRoutes(router, doctorHandler)
	controllers.SetupPatientRoutes(router, patientHandler, paymentHandler, healthHandler, labHandler)
	controllers.SetupAppointmentRoutes(router, appointmentHandler, chatHandler)
	controllers.SetupRootRoute(router)

	return router, nil
}
