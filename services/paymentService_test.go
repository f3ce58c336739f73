package services

import (
	"careconnect/models"
	"careconnect/repositories"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderClient struct {
	orderID    string
	err        error
	gotAmount  int64
	gotReceipt string
	gotNotes   map[string]interface{}
}

func (f *fakeOrderClient) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	f.gotAmount = amount
	f.gotReceipt = receipt
	f.gotNotes = notes
	return f.orderID, f.err
}

type fakeDoctorRepo struct {
	doctors map[string]*models.Doctor
}

func (f *fakeDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	f.doctors[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	return f.doctors[id], nil
}

func (f *fakeDoctorRepo) GetByUserID(ctx context.Context, userID int64) (*models.Doctor, error) {
	for _, d := range f.doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepo) Update(ctx context.Context, doctor *models.Doctor) error {
	f.doctors[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) SetApproval(ctx context.Context, id, status string) error {
	if d, ok := f.doctors[id]; ok {
		d.Status = status
		return nil
	}
	return ErrNotFound
}

func (f *fakeDoctorRepo) ListApproved(ctx context.Context, category string) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range f.doctors {
		if d.Status == models.DoctorApproved && (category == "" || d.Category == category) {
			out = append(out, *d)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	orders   map[string]*repositories.PaymentOrder
	verified map[string]bool
	records  []*models.Payment
	attached map[string]uint
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		orders:   make(map[string]*repositories.PaymentOrder),
		verified: make(map[string]bool),
		attached: make(map[string]uint),
	}
}

func (f *fakePaymentRepo) SaveOrder(ctx context.Context, order *repositories.PaymentOrder) error {
	f.orders[order.OrderID] = order
	return nil
}

func (f *fakePaymentRepo) GetOrder(ctx context.Context, orderID string) (*repositories.PaymentOrder, error) {
	return f.orders[orderID], nil
}

func (f *fakePaymentRepo) MarkVerified(ctx context.Context, paymentID string) error {
	f.verified[paymentID] = true
	return nil
}

func (f *fakePaymentRepo) ConsumeVerified(ctx context.Context, paymentID string) (bool, error) {
	if f.verified[paymentID] {
		delete(f.verified, paymentID)
		return true, nil
	}
	return false, nil
}

func (f *fakePaymentRepo) CreateRecord(ctx context.Context, payment *models.Payment) error {
	f.records = append(f.records, payment)
	return nil
}

func (f *fakePaymentRepo) AttachAppointment(ctx context.Context, paymentID string, appointmentID uint) error {
	f.attached[paymentID] = appointmentID
	return nil
}

func testDoctor(id string, fee float64) *models.Doctor {
	return &models.Doctor{
		ID:              id,
		Name:            "Dr. Mehta",
		Email:           "mehta@example.com",
		Specialization:  "Cardiology",
		Category:        "cardiology",
		ConsultationFee: fee,
		Status:          models.DoctorApproved,
	}
}

func signTest(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreatePaymentOrderAmountInPaise(t *testing.T) {
	doctors := &fakeDoctorRepo{doctors: map[string]*models.Doctor{}}
	doctors.doctors["doc-1"] = testDoctor("doc-1", 499.99)
	orders := &fakeOrderClient{orderID: "order_123"}
	payments := newFakePaymentRepo()

	svc := NewPaymentService(orders, doctors, payments, "secret")
	details, err := svc.CreatePaymentOrder(context.Background(), "doc-1", "pat-1")
	require.NoError(t, err)

	assert.Equal(t, int64(49999), orders.gotAmount)
	assert.Equal(t, int64(49999), details.Amount)
	assert.Equal(t, "order_123", details.OrderID)
	assert.Equal(t, "INR", details.Currency)
	assert.Equal(t, 499.99, details.DoctorFee)

	// order metadata is retained for the verification step
	saved := payments.orders["order_123"]
	require.NotNil(t, saved)
	assert.Equal(t, "doc-1", saved.DoctorID)
	assert.Equal(t, "pat-1", saved.PatientID)
}

func TestCreatePaymentOrderUnknownDoctor(t *testing.T) {
	doctors := &fakeDoctorRepo{doctors: map[string]*models.Doctor{}}
	svc := NewPaymentService(&fakeOrderClient{}, doctors, newFakePaymentRepo(), "secret")

	_, err := svc.CreatePaymentOrder(context.Background(), "missing", "pat-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePaymentOrderRequiresPatient(t *testing.T) {
	doctors := &fakeDoctorRepo{doctors: map[string]*models.Doctor{}}
	svc := NewPaymentService(&fakeOrderClient{}, doctors, newFakePaymentRepo(), "secret")

	_, err := svc.CreatePaymentOrder(context.Background(), "doc-1", "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestVerifyPaymentAcceptsValidSignature(t *testing.T) {
	doctors := &fakeDoctorRepo{doctors: map[string]*models.Doctor{}}
	payments := newFakePaymentRepo()
	payments.orders["order_1"] = &repositories.PaymentOrder{
		OrderID: "order_1", DoctorID: "doc-1", PatientID: "pat-1", Amount: 50000, Currency: "INR",
	}
	svc := NewPaymentService(&fakeOrderClient{}, doctors, payments, "topsecret")

	sig := signTest("topsecret", "order_1", "pay_1")
	paymentID, err := svc.VerifyPayment(context.Background(), "order_1", "pay_1", sig)
	require.NoError(t, err)
	assert.Equal(t, "pay_1", paymentID)
	assert.True(t, payments.verified["pay_1"])

	// a payment record is written from the order metadata
	require.Len(t, payments.records, 1)
	assert.Equal(t, "doc-1", payments.records[0].DoctorID)
	assert.Equal(t, int64(50000), payments.records[0].Amount)
}

func TestVerifyPaymentRejectsTamperedSignature(t *testing.T) {
	payments := newFakePaymentRepo()
	svc := NewPaymentService(&fakeOrderClient{}, &fakeDoctorRepo{doctors: map[string]*models.Doctor{}}, payments, "topsecret")

	sig := signTest("topsecret", "order_1", "pay_1")
	// flip the payment id after signing
	_, err := svc.VerifyPayment(context.Background(), "order_1", "pay_2", sig)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
	assert.False(t, payments.verified["pay_2"])
}

func TestVerifyPaymentRejectsWrongSecret(t *testing.T) {
	svc := NewPaymentService(&fakeOrderClient{}, &fakeDoctorRepo{doctors: map[string]*models.Doctor{}}, newFakePaymentRepo(), "topsecret")

	sig := signTest("othersecret", "order_1", "pay_1")
	_, err := svc.VerifyPayment(context.Background(), "order_1", "pay_1", sig)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifyPaymentMissingFields(t *testing.T) {
	svc := NewPaymentService(&fakeOrderClient{}, &fakeDoctorRepo{doctors: map[string]*models.Doctor{}}, newFakePaymentRepo(), "topsecret")

	for _, tc := range []struct{ order, payment, sig string }{
		{"", "pay_1", "sig"},
		{"order_1", "", "sig"},
		{"order_1", "pay_1", ""},
	} {
		_, err := svc.VerifyPayment(context.Background(), tc.order, tc.payment, tc.sig)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}
