package controllers

import (
	"careconnect/handlers"
	"careconnect/middlewares"
	"careconnect/models"

	"github.com/gin-gonic/gin"
)

// SetupDoctorRoutes wires the doctor directory and profile routes. The
// caller's own profile lives under /profile/doctor so it cannot collide
// with the /doctors/:id wildcard.
func SetupDoctorRoutes(router *gin.Engine, doctorHandler *handlers.DoctorHandler) {
	// Public directory of approved doctors
	router.GET("/doctors", doctorHandler.ListApproved)
	router.GET("/doctors/:id", doctorHandler.GetByID)

	doctorGroup := router.Group("/").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleDoctor),
	)
	{
		doctorGroup.POST("/doctors", doctorHandler.CreateProfile)
		doctorGroup.GET("/profile/doctor", doctorHandler.GetOwnProfile)
		doctorGroup.PUT("/profile/doctor", doctorHandler.UpdateProfile)
	}

	adminGroup := router.Group("/admin/doctors").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleAdmin),
	)
	{
		adminGroup.PATCH("/:id/approval", doctorHandler.SetApproval)
	}
}
