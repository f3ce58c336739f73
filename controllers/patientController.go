package controllers

import (
	"careconnect/handlers"
	"careconnect/middlewares"
	"careconnect/models"

	"github.com/gin-gonic/gin"
)

// SetupPatientRoutes wires the patient profile, payment, booking, health
// assessment and lab report routes. Everything here requires a patient
// session except the appointment routes shared with doctors.
func SetupPatientRoutes(
	router *gin.Engine,
	patientHandler *handlers.PatientHandler,
	paymentHandler *handlers.PaymentHandler,
	healthHandler *handlers.HealthScoreHandler,
	labReportHandler *handlers.LabReportHandler,
) {
	patientGroup := router.Group("/").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RolePatient),
	)
	{
		patientGroup.POST("/patients", patientHandler.CreateProfile)
		patientGroup.GET("/profile/patient", patientHandler.GetOwnProfile)

		patientGroup.POST("/payments/order", paymentHandler.CreateOrder)
		patientGroup.POST("/payments/verify", paymentHandler.Verify)

		patientGroup.POST("/health/assessment", healthHandler.Submit)
		patientGroup.GET("/health/assessment", healthHandler.Get)
		patientGroup.POST("/health/ai-score", healthHandler.SubmitAIScore)

		patientGroup.POST("/lab-reports", labReportHandler.Upload)
	}
}
