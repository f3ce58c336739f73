package services

import (
	"careconnect/models"
	"careconnect/realtime"
	"careconnect/repositories"
	"context"
	"fmt"
	"log"
	"strings"
)

type ChatService struct {
	chats        repositories.ChatRepository
	appointments repositories.AppointmentRepository
	publisher    realtime.Publisher
}

func NewChatService(chats repositories.ChatRepository, appointments repositories.AppointmentRepository, publisher realtime.Publisher) *ChatService {
	return &ChatService{chats: chats, appointments: appointments, publisher: publisher}
}

// ChannelName is the transport channel for a chat's events.
func ChannelName(chatID uint) string {
	return fmt.Sprintf("chat-%d", chatID)
}

// OpenChat returns the appointment's chat, creating it on first open. Chat
// is only available once the doctor has confirmed the appointment, and only
// to the two participants.
func (s *ChatService) OpenChat(ctx context.Context, appointmentID uint, callerID string) (*models.Chat, error) {
	if callerID == "" {
		return nil, ErrNotAuthenticated
	}

	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrNotFound
	}
	if appointment.PatientID != callerID && appointment.DoctorID != callerID {
		return nil, ErrForbidden
	}
	if appointment.Status != models.AppointmentConfirmed && appointment.Status != models.AppointmentCompleted {
		return nil, ErrForbidden
	}

	chat, err := s.chats.GetByAppointmentID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if chat != nil {
		return chat, nil
	}

	chat = &models.Chat{
		AppointmentID: appointmentID,
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
	}
	if err := s.chats.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// SendMessage persists the message exactly once, then broadcasts it.
// Publish failures are logged and swallowed: replay on reload comes from
// storage, delivery to live clients from the transport.
func (s *ChatService) SendMessage(ctx context.Context, chatID uint, senderID, senderName, senderType, content string) (*models.ChatMessage, error) {
	if senderID == "" {
		return nil, ErrNotAuthenticated
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMissingFields
	}

	chat, err := s.participantChat(ctx, chatID, senderID)
	if err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		ChatID:     chat.ID,
		SenderID:   senderID,
		SenderName: senderName,
		SenderType: senderType,
		Content:    content,
	}
	if err := s.chats.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ChannelName(chat.ID), "new-message", message); err != nil {
			log.Printf("Failed to broadcast message %d on chat %d: %v", message.ID, chat.ID, err)
		}
	}

	return message, nil
}

// Messages returns the chat history in creation order.
func (s *ChatService) Messages(ctx context.Context, chatID uint, callerID string) ([]models.ChatMessage, error) {
	if callerID == "" {
		return nil, ErrNotAuthenticated
	}
	chat, err := s.participantChat(ctx, chatID, callerID)
	if err != nil {
		return nil, err
	}
	return s.chats.ListMessages(ctx, chat.ID)
}

func (s *ChatService) participantChat(ctx context.Context, chatID uint, callerID string) (*models.Chat, error) {
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrNotFound
	}
	if chat.PatientID != callerID && chat.DoctorID != callerID {
		return nil, ErrForbidden
	}
	return chat, nil
}
