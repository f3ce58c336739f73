package services

import (
	"careconnect/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDoctorProfile() *models.Doctor {
	return &models.Doctor{
		Name:            "Dr. Mehta",
		Email:           "mehta@example.com",
		Phone:           "9876543210",
		Specialization:  "Cardiology",
		Category:        "cardiology",
		ConsultationFee: 750,
		Experience:      12,
		Availability: []models.DoctorAvailability{
			{Day: "Monday", Slots: models.SlotList{"09:00", "10:00"}},
			{Day: "Wednesday", Slots: models.SlotList{"14:00"}},
		},
	}
}

func TestCreateProfileStartsPending(t *testing.T) {
	repo := &fakeDoctorRepo{doctors: map[string]*models.Doctor{}}
	svc := NewDoctorService(repo)

	created, err := svc.CreateProfile(context.Background(), 7, validDoctorProfile())
	require.NoError(t, err)

	assert.Equal(t, models.DoctorPending, created.Status)
	assert.Equal(t, int64(7), created.UserID)
	assert.NotEmpty(t, created.ID)
	for _, avail := range created.Availability {
		assert.Equal(t, created.ID, avail.DoctorID)
	}

	// a pending doctor is invisible to the directory
	listed, err := svc.ListApproved(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCreateProfileRejectsDuplicate(t *testing.T) {
	repo := &fakeDoctorRepo{doctors: map[string]*models.Doctor{}}
	svc := NewDoctorService(repo)

	_, err := svc.CreateProfile(context.Background(), 7, validDoctorProfile())
	require.NoError(t, err)

	_, err = svc.CreateProfile(context.Background(), 7, validDoctorProfile())
	assert.Error(t, err)
}

func TestCreateProfileValidatesAvailability(t *testing.T) {
	repo := &fakeDoctorRepo{doctors: map[string]*models.Doctor{}}
	svc := NewDoctorService(repo)

	for name, mutate := range map[string]func(*models.Doctor){
		"bad weekday":    func(d *models.Doctor) { d.Availability[0].Day = "Funday" },
		"bad slot label": func(d *models.Doctor) { d.Availability[0].Slots = models.SlotList{"9am"} },
		"duplicate day": func(d *models.Doctor) {
			d.Availability[1].Day = "Monday"
		},
		"duplicate slot": func(d *models.Doctor) {
			d.Availability[0].Slots = models.SlotList{"09:00", "09:00"}
		},
		"zero fee": func(d *models.Doctor) { d.ConsultationFee = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			doctor := validDoctorProfile()
			mutate(doctor)
			_, err := svc.CreateProfile(context.Background(), 8, doctor)
			assert.Error(t, err)
		})
	}
}

func TestSetApprovalControlsDirectory(t *testing.T) {
	repo := &fakeDoctorRepo{doctors: map[string]*models.Doctor{}}
	svc := NewDoctorService(repo)

	created, err := svc.CreateProfile(context.Background(), 7, validDoctorProfile())
	require.NoError(t, err)

	require.NoError(t, svc.SetApproval(context.Background(), created.ID, models.DoctorApproved))
	listed, err := svc.ListApproved(context.Background(), "cardiology")
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, svc.SetApproval(context.Background(), created.ID, models.DoctorRejected))
	listed, err = svc.ListApproved(context.Background(), "cardiology")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestSetApprovalRejectsUnknownStatus(t *testing.T) {
	svc := NewDoctorService(&fakeDoctorRepo{doctors: map[string]*models.Doctor{}})

	err := svc.SetApproval(context.Background(), "doc-1", "endorsed")
	assert.Error(t, err)
}

func TestUpdateProfilePreservesStatus(t *testing.T) {
	repo := &fakeDoctorRepo{doctors: map[string]*models.Doctor{}}
	svc := NewDoctorService(repo)

	created, err := svc.CreateProfile(context.Background(), 7, validDoctorProfile())
	require.NoError(t, err)
	require.NoError(t, svc.SetApproval(context.Background(), created.ID, models.DoctorApproved))

	updated := validDoctorProfile()
	updated.ConsultationFee = 900
	updated.Status = models.DoctorRejected // callers cannot set status here

	result, err := svc.UpdateProfile(context.Background(), 7, updated)
	require.NoError(t, err)
	assert.Equal(t, models.DoctorApproved, result.Status)
	assert.Equal(t, float64(900), result.ConsultationFee)
	assert.Equal(t, created.ID, result.ID)
}

func TestUpdateProfileRequiresExistingProfile(t *testing.T) {
	svc := NewDoctorService(&fakeDoctorRepo{doctors: map[string]*models.Doctor{}})

	_, err := svc.UpdateProfile(context.Background(), 42, validDoctorProfile())
	assert.ErrorIs(t, err, ErrNotFound)
}
