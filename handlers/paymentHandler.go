package handlers

import (
	"careconnect/services"
	"errors"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	Payments *services.PaymentService
	Patients *services.PatientService
	KeyID    string
}

// NewPaymentHandler exposes the payment flow. keyID is the provider's
// public key id, which checkout clients need; the secret never leaves
// the server.
func NewPaymentHandler(payments *services.PaymentService, patients *services.PatientService, keyID string) *PaymentHandler {
	return &PaymentHandler{Payments: payments, Patients: patients, KeyID: keyID}
}

// CreateOrder issues a provider order for the chosen doctor's fee.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var payload struct {
		DoctorID string `json:"doctorId"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.DoctorID == "" {
		c.JSON(400, gin.H{"error": "doctorId is required"})
		return
	}

	ctx := c.Request.Context()
	patient, err := h.Patients.GetByUserID(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := h.Payments.CreatePaymentOrder(ctx, payload.DoctorID, patient.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"orderId":   order.OrderID,
		"amount":    order.Amount,
		"currency":  order.Currency,
		"doctorFee": order.DoctorFee,
		"keyId":     h.KeyID,
	})
}

// Verify checks the provider's payment signature. On a mismatch the
// response carries the payment id so the user can quote it to support.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var payload struct {
		OrderID   string `json:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	paymentID, err := h.Payments.VerifyPayment(c.Request.Context(), payload.OrderID, payload.PaymentID, payload.Signature)
	if err != nil {
		if errors.Is(err, services.ErrSignatureMismatch) {
			c.JSON(400, gin.H{
				"success":   false,
				"error":     "payment verification failed, contact support quoting the payment id",
				"paymentId": payload.PaymentID,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "paymentId": paymentID})
}
