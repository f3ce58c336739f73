package handlers

import (
	"careconnect/services"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	Patients *services.PatientService
}

func NewPatientHandler(patients *services.PatientService) *PatientHandler {
	return &PatientHandler{Patients: patients}
}

// CreateProfile registers the caller's patient profile. Repeat calls
// return the existing profile.
func (h *PatientHandler) CreateProfile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var payload struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	patient, err := h.Patients.CreateProfile(c.Request.Context(), userID, payload.Name, payload.Email, payload.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, patient)
}

func (h *PatientHandler) GetOwnProfile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	patient, err := h.Patients.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, patient)
}
