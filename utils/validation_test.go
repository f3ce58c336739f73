package utils

import (
	"careconnect/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"Str0ng!pass", true},
		{"short1!", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoDigits!!", false},
		{"NoSpecials11", false},
	}
	for _, tc := range cases {
		err := validatePassword(tc.password)
		if tc.ok {
			assert.NoError(t, err, tc.password)
		} else {
			assert.Error(t, err, tc.password)
		}
	}
}

func TestValidateUserData(t *testing.T) {
	user := models.User{Username: "asha", Email: "asha@example.com", Password: "Str0ng!pass"}
	assert.NoError(t, ValidateUserData(user))

	user.Email = "not-an-email"
	assert.Error(t, ValidateUserData(user))
}

func TestValidatePatientData(t *testing.T) {
	assert.NoError(t, ValidatePatientData(models.Patient{Name: "Asha", Email: "asha@example.com"}))
	assert.Error(t, ValidatePatientData(models.Patient{Name: "A", Email: "asha@example.com"}))
}
