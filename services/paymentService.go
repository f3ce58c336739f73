package services

import (
	"careconnect/models"
	"careconnect/repositories"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/razorpay/razorpay-go"
)

// OrderClient issues provider-side payment orders. Wrapping the Razorpay SDK
// behind this keeps the service testable without the provider.
type OrderClient interface {
	CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (string, error)
}

type razorpayOrderClient struct {
	client *razorpay.Client
}

// NewRazorpayOrderClient builds an OrderClient backed by the Razorpay API.
func NewRazorpayOrderClient(keyID, keySecret string) OrderClient {
	return &razorpayOrderClient{client: razorpay.NewClient(keyID, keySecret)}
}

func (c *razorpayOrderClient) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}
	body, err := c.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create provider order: %w", err)
	}
	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("provider order response missing id")
	}
	return orderID, nil
}

// OrderDetails is what the client needs to open the payment widget. The
// amount is always derived from the doctor's stored fee, never supplied by
// the caller.
type OrderDetails struct {
	OrderID   string  `json:"orderId"`
	Amount    int64   `json:"amount"`
	Currency  string  `json:"currency"`
	DoctorFee float64 `json:"doctorFee"`
}

type PaymentService struct {
	orders    OrderClient
	doctors   repositories.DoctorRepository
	payments  repositories.PaymentRepository
	keySecret string
}

func NewPaymentService(orders OrderClient, doctors repositories.DoctorRepository, payments repositories.PaymentRepository, keySecret string) *PaymentService {
	return &PaymentService{orders: orders, doctors: doctors, payments: payments, keySecret: keySecret}
}

// CreatePaymentOrder issues a provider order for the doctor's consultation
// fee in paise. No local state beyond the ephemeral order metadata is
// written; nothing is committed until the payment verifies.
func (s *PaymentService) CreatePaymentOrder(ctx context.Context, doctorID, patientID string) (*OrderDetails, error) {
	if patientID == "" {
		return nil, ErrNotAuthenticated
	}

	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrNotFound
	}

	amount := int64(math.Round(doctor.ConsultationFee * 100))
	receipt := fmt.Sprintf("appointment_%d", time.Now().Unix())
	notes := map[string]interface{}{
		"doctorId":   doctor.ID,
		"userId":     patientID,
		"doctorName": doctor.Name,
	}

	orderID, err := s.orders.CreateOrder(amount, "INR", receipt, notes)
	if err != nil {
		return nil, err
	}

	order := &repositories.PaymentOrder{
		OrderID:   orderID,
		DoctorID:  doctor.ID,
		PatientID: patientID,
		Amount:    amount,
		Currency:  "INR",
		DoctorFee: doctor.ConsultationFee,
	}
	if err := s.payments.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	return &OrderDetails{
		OrderID:   orderID,
		Amount:    amount,
		Currency:  "INR",
		DoctorFee: doctor.ConsultationFee,
	}, nil
}

// VerifyPayment recomputes the provider signature over orderID|paymentID and
// compares it in constant time. This is a purely local check; no provider
// round-trip is needed. On success the payment id is marked verified for the
// booking flow and a payment record is written.
func (s *PaymentService) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (string, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return "", ErrMissingFields
	}

	expected := signPayment(s.keySecret, orderID, paymentID)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) != 1 {
		// Enough context to reconcile a charge that succeeded at the
		// provider but failed verification here.
		log.Printf("SECURITY: payment signature mismatch for order=%s payment=%s", orderID, paymentID)
		return "", ErrSignatureMismatch
	}

	if err := s.payments.MarkVerified(ctx, paymentID); err != nil {
		return "", err
	}

	order, err := s.payments.GetOrder(ctx, orderID)
	if err != nil {
		log.Printf("Failed to load order metadata for %s: %v", orderID, err)
	}
	if order != nil {
		record := &models.Payment{
			OrderID:   orderID,
			PaymentID: paymentID,
			DoctorID:  order.DoctorID,
			PatientID: order.PatientID,
			Amount:    order.Amount,
			Currency:  order.Currency,
		}
		if err := s.payments.CreateRecord(ctx, record); err != nil {
			log.Printf("Failed to record verified payment %s: %v", paymentID, err)
		}
	}

	return paymentID, nil
}

// signPayment computes the hex HMAC-SHA256 the provider uses for payment
// callbacks: HMAC(secret, orderID + "|" + paymentID).
func signPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
