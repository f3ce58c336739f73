package repositories

import (
	"careconnect/cache"
	"careconnect/database"
	"careconnect/models"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// OrderMetaExpiry bounds how long an unpaid provider order stays
	// reconstructable. A dismissed payment widget simply lets this lapse.
	OrderMetaExpiry = time.Hour

	// VerifiedPaymentExpiry bounds the window between signature
	// verification and the appointment write that consumes it.
	VerifiedPaymentExpiry = 15 * time.Minute
)

// PaymentOrder is the ephemeral provider-side order as we issued it. It has
// no table of its own; it lives in redis until paid or abandoned.
type PaymentOrder struct {
	OrderID   string  `json:"order_id"`
	DoctorID  string  `json:"doctor_id"`
	PatientID string  `json:"patient_id"`
	Amount    int64   `json:"amount"`
	Currency  string  `json:"currency"`
	DoctorFee float64 `json:"doctor_fee"`
}

type PaymentRepository interface {
	SaveOrder(ctx context.Context, order *PaymentOrder) error
	GetOrder(ctx context.Context, orderID string) (*PaymentOrder, error)
	MarkVerified(ctx context.Context, paymentID string) error
	ConsumeVerified(ctx context.Context, paymentID string) (bool, error)
	CreateRecord(ctx context.Context, payment *models.Payment) error
	AttachAppointment(ctx context.Context, paymentID string, appointmentID uint) error
}

type paymentRepository struct {
	cache *cache.Cache
}

func NewPaymentRepository(cache *cache.Cache) PaymentRepository {
	return &paymentRepository{cache: cache}
}

func (r *paymentRepository) SaveOrder(ctx context.Context, order *PaymentOrder) error {
	orderJSON, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal payment order: %w", err)
	}
	return r.cache.Set(ctx, r.getOrderKey(order.OrderID), orderJSON, OrderMetaExpiry)
}

func (r *paymentRepository) GetOrder(ctx context.Context, orderID string) (*PaymentOrder, error) {
	raw, err := r.cache.Get(ctx, r.getOrderKey(orderID))
	if err != nil {
		return nil, fmt.Errorf("failed to get payment order: %w", err)
	}
	if raw == "" {
		return nil, nil
	}
	var order PaymentOrder
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment order: %w", err)
	}
	return &order, nil
}

// MarkVerified records that a payment id passed signature verification, so
// the appointment writer can insist on a verification from the same flow.
func (r *paymentRepository) MarkVerified(ctx context.Context, paymentID string) error {
	return r.cache.Set(ctx, r.getVerifiedKey(paymentID), "1", VerifiedPaymentExpiry)
}

// ConsumeVerified reports whether the payment id was verified and removes
// the marker so it cannot back two appointments.
func (r *paymentRepository) ConsumeVerified(ctx context.Context, paymentID string) (bool, error) {
	key := r.getVerifiedKey(paymentID)
	val, err := r.cache.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to check verified payment: %w", err)
	}
	if val == "" {
		return false, nil
	}
	if err := r.cache.Delete(ctx, key); err != nil {
		return false, fmt.Errorf("failed to consume verified payment: %w", err)
	}
	return true, nil
}

func (r *paymentRepository) CreateRecord(ctx context.Context, payment *models.Payment) error {
	if err := database.DB.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment record: %w", err)
	}
	return nil
}

func (r *paymentRepository) AttachAppointment(ctx context.Context, paymentID string, appointmentID uint) error {
	err := database.DB.Model(&models.Payment{}).
		Where("payment_id = ?", paymentID).
		Update("appointment_id", appointmentID).Error
	if err != nil {
		return fmt.Errorf("failed to attach appointment to payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) getOrderKey(orderID string) string {
	return fmt.Sprintf("payment_order:%s", orderID)
}

func (r *paymentRepository) getVerifiedKey(paymentID string) string {
	return fmt.Sprintf("verified_payment:%s", paymentID)
}
