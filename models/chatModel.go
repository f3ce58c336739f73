package models

import (
	"time"
)

// Chat is the single conversation attached to one appointment, created
// lazily the first time either participant opens it.
type Chat struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	AppointmentID uint      `gorm:"column:appointment_id;not null;uniqueIndex" json:"appointment_id"`
	DoctorID      string    `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	PatientID     string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Chat) TableName() string {
	return "chat"
}

// ChatMessage rows are append-only and replayed in creation order. Delivery
// to live clients is the realtime transport's job, not ours.
type ChatMessage struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ChatID     uint      `gorm:"column:chat_id;not null;index" json:"chat_id"`
	SenderID   string    `gorm:"column:sender_id;not null" json:"sender_id"`
	SenderName string    `gorm:"column:sender_name;not null" json:"sender_name"`
	SenderType string    `gorm:"column:sender_type;check:sender_type IN ('doctor', 'patient');not null" json:"sender_type"`
	Content    string    `gorm:"column:content;not null" json:"content"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_message"
}
