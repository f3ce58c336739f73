package handlers

import (
	"careconnect/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	Chats    *services.ChatService
	Patients *services.PatientService
	Doctors  *services.DoctorService
}

func NewChatHandler(chats *services.ChatService, patients *services.PatientService, doctors *services.DoctorService) *ChatHandler {
	return &ChatHandler{Chats: chats, Patients: patients, Doctors: doctors}
}

type chatSender struct {
	ID   string
	Name string
	Type string
}

// resolveSender maps the authenticated user onto the chat participant
// identity used in stored and published messages.
func (h *ChatHandler) resolveSender(c *gin.Context) (*chatSender, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}

	ctx := c.Request.Context()
	if doctor, err := h.Doctors.GetByUserID(ctx, userID); err == nil {
		return &chatSender{ID: doctor.ID, Name: doctor.Name, Type: "doctor"}, nil
	}

	patient, err := h.Patients.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &chatSender{ID: patient.ID, Name: patient.Name, Type: "patient"}, nil
}

func parseChatID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid chat ID"})
		return 0, false
	}
	return uint(id), true
}

// Open returns the chat for an appointment, creating it on first use.
// The response includes the realtime channel clients subscribe to.
func (h *ChatHandler) Open(c *gin.Context) {
	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid appointment ID"})
		return
	}

	sender, err := h.resolveSender(c)
	if err != nil {
		respondError(c, err)
		return
	}

	chat, err := h.Chats.OpenChat(c.Request.Context(), uint(appointmentID), sender.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"chat":    chat,
		"channel": services.ChannelName(chat.ID),
	})
}

// SendMessage persists the message and fans it out on the chat's channel.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	chatID, ok := parseChatID(c)
	if !ok {
		return
	}

	sender, err := h.resolveSender(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var payload struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	message, err := h.Chats.SendMessage(c.Request.Context(), chatID, sender.ID, sender.Name, sender.Type, payload.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(201, message)
}

// Messages returns the chat history in send order.
func (h *ChatHandler) Messages(c *gin.Context) {
	chatID, ok := parseChatID(c)
	if !ok {
		return
	}

	sender, err := h.resolveSender(c)
	if err != nil {
		respondError(c, err)
		return
	}

	messages, err := h.Chats.Messages(c.Request.Context(), chatID, sender.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, messages)
}
