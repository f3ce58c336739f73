package repositories

import (
	"careconnect/database"
	"careconnect/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ChatRepository interface {
	GetByAppointmentID(ctx context.Context, appointmentID uint) (*models.Chat, error)
	GetByID(ctx context.Context, id uint) (*models.Chat, error)
	Create(ctx context.Context, chat *models.Chat) error
	CreateMessage(ctx context.Context, message *models.ChatMessage) error
	ListMessages(ctx context.Context, chatID uint) ([]models.ChatMessage, error)
}

type chatRepository struct{}

func NewChatRepository() ChatRepository {
	return &chatRepository{}
}

func (r *chatRepository) GetByAppointmentID(ctx context.Context, appointmentID uint) (*models.Chat, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var chat models.Chat
	err := database.DB.First(&chat, "appointment_id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}
	return &chat, nil
}

func (r *chatRepository) GetByID(ctx context.Context, id uint) (*models.Chat, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var chat models.Chat
	err := database.DB.First(&chat, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}
	return &chat, nil
}

// Create inserts the chat for an appointment. The unique index on
// appointment_id makes concurrent first-opens converge on one row; the
// loser re-reads instead of failing.
func (r *chatRepository) Create(ctx context.Context, chat *models.Chat) error {
	err := database.DB.Create(chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, getErr := r.GetByAppointmentID(ctx, chat.AppointmentID)
			if getErr != nil {
				return getErr
			}
			if existing != nil {
				*chat = *existing
				return nil
			}
		}
		return fmt.Errorf("failed to create chat: %w", err)
	}
	return nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, message *models.ChatMessage) error {
	if err := database.DB.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

func (r *chatRepository) ListMessages(ctx context.Context, chatID uint) ([]models.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var messages []models.ChatMessage
	err := database.DB.
		Where("chat_id = ?", chatID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return messages, nil
}
