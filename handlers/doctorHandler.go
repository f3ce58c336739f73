package handlers

import (
	"careconnect/models"
	"careconnect/services"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	Doctors *services.DoctorService
}

func NewDoctorHandler(doctors *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{Doctors: doctors}
}

// CreateProfile registers the caller's doctor profile. New profiles start
// pending and stay out of the public directory until approved.
func (h *DoctorHandler) CreateProfile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.Doctors.CreateProfile(c.Request.Context(), userID, &doctor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(201, created)
}

// ListApproved returns the public doctor directory, optionally filtered
// by category.
func (h *DoctorHandler) ListApproved(c *gin.Context) {
	doctors, err := h.Doctors.ListApproved(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, doctors)
}

func (h *DoctorHandler) GetByID(c *gin.Context) {
	doctor, err := h.Doctors.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, doctor)
}

// GetOwnProfile returns the caller's doctor profile regardless of
// approval status.
func (h *DoctorHandler) GetOwnProfile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	doctor, err := h.Doctors.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, doctor)
}

// UpdateProfile replaces the caller's profile fields and weekly
// availability.
func (h *DoctorHandler) UpdateProfile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.Doctors.UpdateProfile(c.Request.Context(), userID, &doctor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, updated)
}

// SetApproval moves a doctor to approved or rejected. Admin only; the
// route registration enforces the role.
func (h *DoctorHandler) SetApproval(c *gin.Context) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Doctors.SetApproval(c.Request.Context(), c.Param("id"), payload.Status); err != nil {
		respondError(c, err)
		return
	}
	c.Status(200)
}
