package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() Registration {
	return Registration{
		FirstName:   "Ana",
		LastName:    "Lopez",
		Email:       "ana@example.com",
		PhoneNumber: "+1 (555) 123-4567",
		Password:    "secret1",
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(r *Registration)
		wantErr   bool
		wantField string
		errMsg    string
	}{
		{
			name:    "valid registration",
			modify:  func(r *Registration) {},
			wantErr: false,
		},
		{
			name:      "missing first name",
			modify:    func(r *Registration) { r.FirstName = "" },
			wantErr:   true,
			wantField: "firstName",
			errMsg:    MessageRequired,
		},
		{
			name:      "missing password",
			modify:    func(r *Registration) { r.Password = "" },
			wantErr:   true,
			wantField: "password",
			errMsg:    MessageRequired,
		},
		{
			name: "missing field wins over bad email",
			modify: func(r *Registration) {
				r.Email = "not-an-email"
				r.PhoneNumber = ""
			},
			wantErr:   true,
			wantField: "phoneNumber",
			errMsg:    MessageRequired,
		},
		{
			name:      "email without domain dot",
			modify:    func(r *Registration) { r.Email = "ana@example" },
			wantErr:   true,
			wantField: "email",
			errMsg:    MessageInvalidEmail,
		},
		{
			name:      "email with space",
			modify:    func(r *Registration) { r.Email = "ana lopez@example.com" },
			wantErr:   true,
			wantField: "email",
			errMsg:    MessageInvalidEmail,
		},
		{
			name: "bad email wins over bad phone",
			modify: func(r *Registration) {
				r.Email = "bad"
				r.PhoneNumber = "12"
			},
			wantErr:   true,
			wantField: "email",
			errMsg:    MessageInvalidEmail,
		},
		{
			name:      "phone too short",
			modify:    func(r *Registration) { r.PhoneNumber = "555-1234" },
			wantErr:   true,
			wantField: "phoneNumber",
			errMsg:    MessageInvalidPhone,
		},
		{
			name:      "phone with letters",
			modify:    func(r *Registration) { r.PhoneNumber = "555-CALL-NOW-1" },
			wantErr:   true,
			wantField: "phoneNumber",
			errMsg:    MessageInvalidPhone,
		},
		{
			name:    "phone digits only",
			modify:  func(r *Registration) { r.PhoneNumber = "5551234567" },
			wantErr: false,
		},
		{
			name: "bad phone wins over short password",
			modify: func(r *Registration) {
				r.PhoneNumber = "abc"
				r.Password = "123"
			},
			wantErr:   true,
			wantField: "phoneNumber",
			errMsg:    MessageInvalidPhone,
		},
		{
			name:      "password too short",
			modify:    func(r *Registration) { r.Password = "12345" },
			wantErr:   true,
			wantField: "password",
			errMsg:    MessageShortPassword,
		},
		{
			name:    "password exactly six characters",
			modify:  func(r *Registration) { r.Password = "123456" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.modify(&r)

			err := ValidateRegistration(r)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)

			var vErr *Error
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, tt.errMsg, vErr.Message)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("USER@Mail.Example.org"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("@example.com"))
	assert.Error(t, ValidateEmail("a@@b.c"))
}
