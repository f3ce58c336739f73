package handlers

import (
	"careconnect/middlewares"
	"careconnect/models"
	"careconnect/repositories"
	"careconnect/services"
	"careconnect/utils"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPatientRepo struct {
	patient *models.Patient
}

func (s *stubPatientRepo) Create(ctx context.Context, patient *models.Patient) error { return nil }

func (s *stubPatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	if s.patient != nil && s.patient.ID == id {
		return s.patient, nil
	}
	return nil, nil
}

func (s *stubPatientRepo) GetByUserID(ctx context.Context, userID int64) (*models.Patient, error) {
	if s.patient != nil && s.patient.UserID == userID {
		return s.patient, nil
	}
	return nil, nil
}

func (s *stubPatientRepo) SaveLabJSON(ctx context.Context, patientID, labJSON string) error {
	return nil
}

type stubDoctorRepo struct {
	doctor *models.Doctor
}

func (s *stubDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error { return nil }

func (s *stubDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	if s.doctor != nil && s.doctor.ID == id {
		return s.doctor, nil
	}
	return nil, nil
}

func (s *stubDoctorRepo) GetByUserID(ctx context.Context, userID int64) (*models.Doctor, error) {
	return nil, nil
}

func (s *stubDoctorRepo) Update(ctx context.Context, doctor *models.Doctor) error { return nil }

func (s *stubDoctorRepo) SetApproval(ctx context.Context, id, status string) error { return nil }

func (s *stubDoctorRepo) ListApproved(ctx context.Context, category string) ([]models.Doctor, error) {
	return nil, nil
}

type stubPaymentRepo struct {
	verified map[string]bool
	orders   map[string]*repositories.PaymentOrder
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{
		verified: make(map[string]bool),
		orders:   make(map[string]*repositories.PaymentOrder),
	}
}

func (s *stubPaymentRepo) SaveOrder(ctx context.Context, order *repositories.PaymentOrder) error {
	s.orders[order.OrderID] = order
	return nil
}

func (s *stubPaymentRepo) GetOrder(ctx context.Context, orderID string) (*repositories.PaymentOrder, error) {
	return s.orders[orderID], nil
}

func (s *stubPaymentRepo) MarkVerified(ctx context.Context, paymentID string) error {
	s.verified[paymentID] = true
	return nil
}

func (s *stubPaymentRepo) ConsumeVerified(ctx context.Context, paymentID string) (bool, error) {
	if !s.verified[paymentID] {
		return false, nil
	}
	delete(s.verified, paymentID)
	return true, nil
}

func (s *stubPaymentRepo) CreateRecord(ctx context.Context, payment *models.Payment) error {
	return nil
}

func (s *stubPaymentRepo) AttachAppointment(ctx context.Context, paymentID string, appointmentID uint) error {
	return nil
}

type stubAppointmentRepo struct {
	created *models.Appointment
}

func (s *stubAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	appointment.ID = 1
	s.created = appointment
	return nil
}

func (s *stubAppointmentRepo) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return s.created, nil
}

func (s *stubAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepo) UpdateStatusNotes(ctx context.Context, appointment *models.Appointment) error {
	return nil
}

// patientToken mints an access token for userID 7 and configures the
// signing key the middleware validates against.
func patientToken(t *testing.T) string {
	t.Helper()
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")
	token, err := utils.GenerateAccessToken("7", "Patient")
	require.NoError(t, err)
	return token
}

func newBookingRouter(t *testing.T) (*gin.Engine, *stubPaymentRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	doctors := &stubDoctorRepo{doctor: &models.Doctor{ID: "doc-1", Name: "Dr. Rao", ConsultationFee: 500}}
	patients := &stubPatientRepo{patient: &models.Patient{ID: "pat-1", UserID: 7, Name: "Asha"}}
	payments := newStubPaymentRepo()
	payments.verified["pay_1"] = true

	appointments := services.NewAppointmentService(&stubAppointmentRepo{}, doctors, patients, payments, nil)
	handler := NewAppointmentHandler(appointments, services.NewPatientService(patients), services.NewDoctorService(doctors))

	r := gin.New()
	r.Use(middlewares.TokenAuthMiddleware())
	r.POST("/appointments", handler.Book)
	return r, payments
}

func postJSON(t *testing.T, r *gin.Engine, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// nextMonday returns a future Monday at the given default office slot.
func nextMonday(slot string) time.Time {
	day := time.Now().AddDate(0, 0, 7)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	parsed, _ := time.Parse("15:04", slot)
	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
}

func TestBookAcceptsAppointmentDateTimestamp(t *testing.T) {
	r, _ := newBookingRouter(t)
	token := patientToken(t)

	when := nextMonday("10:00")
	body, err := json.Marshal(gin.H{
		"doctorId":        "doc-1",
		"appointmentDate": when.Format(time.RFC3339),
		"reason":          "checkup",
		"paymentId":       "pay_1",
	})
	require.NoError(t, err)

	w := postJSON(t, r, "/appointments", string(body), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.AppointmentPending, created.Status)
	assert.Equal(t, "10:00", created.Slot)
	assert.Equal(t, when.Format("2006-01-02"), created.SlotDate)
}

func TestBookRejectsNonTimestampDate(t *testing.T) {
	r, payments := newBookingRouter(t)
	token := patientToken(t)

	body := `{"doctorId":"doc-1","appointmentDate":"2026-09-07 10:00","paymentId":"pay_1"}`
	w := postJSON(t, r, "/appointments", body, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// the payment marker is untouched by a malformed request
	assert.True(t, payments.verified["pay_1"])
}

func TestBookRequiresAccessToken(t *testing.T) {
	r, _ := newBookingRouter(t)

	w := postJSON(t, r, "/appointments", `{}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
