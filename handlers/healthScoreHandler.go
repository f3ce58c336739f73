package handlers

import (
	"careconnect/services"

	"github.com/gin-gonic/gin"
)

type HealthScoreHandler struct {
	Scores   *services.HealthScoreService
	Patients *services.PatientService
}

func NewHealthScoreHandler(scores *services.HealthScoreService, patients *services.PatientService) *HealthScoreHandler {
	return &HealthScoreHandler{Scores: scores, Patients: patients}
}

func (h *HealthScoreHandler) callerPatientID(c *gin.Context) (string, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return "", err
	}
	patient, err := h.Patients.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		return "", err
	}
	return patient.ID, nil
}

// Submit scores the questionnaire and stores the caller's latest
// assessment. Retaking replaces the previous one.
func (h *HealthScoreHandler) Submit(c *gin.Context) {
	patientID, err := h.callerPatientID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var payload struct {
		Responses map[string]string `json:"responses"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	assessment, err := h.Scores.Submit(c.Request.Context(), patientID, payload.Responses)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, assessment)
}

// Get returns the caller's latest assessment.
func (h *HealthScoreHandler) Get(c *gin.Context) {
	patientID, err := h.callerPatientID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	assessment, err := h.Scores.Get(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, assessment)
}

// SubmitAIScore blends an externally computed score into the caller's
// current assessment.
func (h *HealthScoreHandler) SubmitAIScore(c *gin.Context) {
	patientID, err := h.callerPatientID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var payload struct {
		Score *int `json:"score"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Score == nil {
		c.JSON(400, gin.H{"error": "score is required"})
		return
	}

	assessment, err := h.Scores.SubmitAIScore(c.Request.Context(), patientID, *payload.Score)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, assessment)
}
