package handlers

import (
	"careconnect/models"
	"careconnect/services"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	Appointments *services.AppointmentService
	Patients     *services.PatientService
	Doctors      *services.DoctorService
}

func NewAppointmentHandler(appointments *services.AppointmentService, patients *services.PatientService, doctors *services.DoctorService) *AppointmentHandler {
	return &AppointmentHandler{Appointments: appointments, Patients: patients, Doctors: doctors}
}

func parseAppointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid appointment ID"})
		return 0, false
	}
	return uint(id), true
}

// Book creates an appointment against a verified payment. The slot is
// derived from the appointment timestamp.
func (h *AppointmentHandler) Book(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var payload struct {
		DoctorID        string `json:"doctorId"`
		AppointmentDate string `json:"appointmentDate"`
		Reason          string `json:"reason"`
		PaymentID       string `json:"paymentId"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	if payload.DoctorID == "" || payload.AppointmentDate == "" || payload.PaymentID == "" {
		respondError(c, services.ErrMissingFields)
		return
	}

	when, err := time.Parse(time.RFC3339, payload.AppointmentDate)
	if err != nil {
		c.JSON(400, gin.H{"error": "appointmentDate must be an RFC 3339 timestamp"})
		return
	}

	ctx := c.Request.Context()
	patient, err := h.Patients.GetByUserID(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	appointment, err := h.Appointments.Book(ctx, patient.ID, payload.DoctorID, when, payload.Reason, payload.PaymentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(201, appointment)
}

// List returns the caller's appointments, scoped by role.
func (h *AppointmentHandler) List(c *gin.Context) {
	callerID, role, err := h.resolveCaller(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	var appointments []models.Appointment
	if role == models.RoleDoctor {
		appointments, err = h.Appointments.ListForDoctor(ctx, callerID)
	} else {
		appointments, err = h.Appointments.ListForPatient(ctx, callerID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, appointments)
}

// GetByID returns a single appointment to one of its participants.
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	callerID, _, err := h.resolveCaller(c)
	if err != nil {
		respondError(c, err)
		return
	}

	appointment, err := h.Appointments.GetByID(c.Request.Context(), id, callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, appointment)
}

// UpdateStatus moves an appointment through the status workflow. Only
// the owning doctor may call it.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var payload struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	doctor, err := h.Doctors.GetByUserID(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	appointment, err := h.Appointments.UpdateStatus(ctx, id, doctor.ID, payload.Status, payload.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, appointment)
}

// resolveCaller maps the authenticated user onto their doctor or patient
// profile id.
func (h *AppointmentHandler) resolveCaller(c *gin.Context) (string, string, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return "", "", err
	}

	ctx := c.Request.Context()
	if doctor, err := h.Doctors.GetByUserID(ctx, userID); err == nil {
		return doctor.ID, models.RoleDoctor, nil
	}

	patient, err := h.Patients.GetByUserID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return patient.ID, models.RolePatient, nil
}
