package controllers

import (
	"careconnect/handlers"
	"careconnect/middlewares"
	"careconnect/models"

	"github.com/gin-gonic/gin"
)

// SetupAppointmentRoutes wires booking, the status workflow and chat.
// Listing and reading are shared by both participant roles; booking is
// patient-only and status changes are doctor-only.
func SetupAppointmentRoutes(router *gin.Engine, appointmentHandler *handlers.AppointmentHandler, chatHandler *handlers.ChatHandler) {
	authGroup := router.Group("/").Use(middlewares.TokenAuthMiddleware())
	{
		authGroup.GET("/appointments", appointmentHandler.List)
		authGroup.GET("/appointments/:id", appointmentHandler.GetByID)
		authGroup.POST("/appointments/:id/chat", chatHandler.Open)

		authGroup.POST("/chats/:id/messages", chatHandler.SendMessage)
		authGroup.GET("/chats/:id/messages", chatHandler.Messages)
	}

	patientGroup := router.Group("/").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RolePatient),
	)
	{
		patientGroup.POST("/appointments", appointmentHandler.Book)
	}

	doctorGroup := router.Group("/").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleDoctor),
	)
	{
		doctorGroup.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
	}
}
