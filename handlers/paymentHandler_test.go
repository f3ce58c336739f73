package handlers

import (
	"careconnect/models"
	"careconnect/services"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerifyRouter(t *testing.T, keySecret string) (*gin.Engine, *stubPaymentRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	doctors := &stubDoctorRepo{doctor: &models.Doctor{ID: "doc-1", Name: "Dr. Rao", ConsultationFee: 500}}
	patients := &stubPatientRepo{patient: &models.Patient{ID: "pat-1", UserID: 7, Name: "Asha"}}
	payments := newStubPaymentRepo()

	svc := services.NewPaymentService(nil, doctors, payments, keySecret)
	handler := NewPaymentHandler(svc, services.NewPatientService(patients), "rzp_test_key")

	r := gin.New()
	r.POST("/payments/verify", handler.Verify)
	return r, payments
}

func checkoutSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRespondsSuccess(t *testing.T) {
	r, payments := newVerifyRouter(t, "testsecret")

	body, err := json.Marshal(gin.H{
		"razorpay_order_id":   "order_1",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  checkoutSignature("testsecret", "order_1", "pay_1"),
	})
	require.NoError(t, err)

	w := postJSON(t, r, "/payments/verify", string(body), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success   bool   `json:"success"`
		PaymentID string `json:"paymentId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "pay_1", resp.PaymentID)
	assert.True(t, payments.verified["pay_1"])
}

func TestVerifyMismatchRespondsFailure(t *testing.T) {
	r, payments := newVerifyRouter(t, "testsecret")

	body, err := json.Marshal(gin.H{
		"razorpay_order_id":   "order_1",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  checkoutSignature("wrongsecret", "order_1", "pay_1"),
	})
	require.NoError(t, err)

	w := postJSON(t, r, "/payments/verify", string(body), "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success   bool   `json:"success"`
		PaymentID string `json:"paymentId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "pay_1", resp.PaymentID)
	assert.False(t, payments.verified["pay_1"])
}
