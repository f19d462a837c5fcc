package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/nyx/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)
}

func date(s string) time.Time {
	d, _ := time.Parse(domain.DateLayout, s)
	return d
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestParticipantForm(t *testing.T) {
	v := New(fixedClock)

	testCases := []struct {
		name        string
		form        ParticipantForm
		wantInvalid []string
	}{
		{
			name: "valid",
			form: ParticipantForm{FirstName: "Luca", LastName: "Bianchi", BirthDate: date("2000-01-01")},
		},
		{
			name: "hyphenated and spaced names",
			form: ParticipantForm{FirstName: "Mary-Jane", LastName: "De Luca", BirthDate: date("2000-01-01")},
		},
		{
			name:        "digits in name",
			form:        ParticipantForm{FirstName: "Luca2", LastName: "Bianchi", BirthDate: date("2000-01-01")},
			wantInvalid: []string{"nome"},
		},
		{
			name:        "symbols in surname",
			form:        ParticipantForm{FirstName: "Luca", LastName: "Bian$hi", BirthDate: date("2000-01-01")},
			wantInvalid: []string{"cognome"},
		},
		{
			name:        "apostrophe is rejected",
			form:        ParticipantForm{FirstName: "Mary-Jane", LastName: "O'Brien", BirthDate: date("2000-01-01")},
			wantInvalid: []string{"cognome"},
		},
		{
			name:        "whitespace-only names",
			form:        ParticipantForm{FirstName: "   ", LastName: "\t", BirthDate: date("2000-01-01")},
			wantInvalid: []string{"nome", "cognome"},
		},
		{
			name:        "missing fields",
			form:        ParticipantForm{},
			wantInvalid: []string{"nome", "cognome", "data_nascita"},
		},
		{
			name:        "birth date today",
			form:        ParticipantForm{FirstName: "Luca", LastName: "Bianchi", BirthDate: date("2026-10-16")},
			wantInvalid: []string{"data_nascita"},
		},
		{
			name: "birth date yesterday",
			form: ParticipantForm{FirstName: "Luca", LastName: "Bianchi", BirthDate: date("2026-10-15")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.form)
			if len(tc.wantInvalid) == 0 {
				assert.NoError(t, err)
				return
			}
			fields := fieldErrors(t, err)
			assert.Len(t, fields, len(tc.wantInvalid))
			for _, f := range tc.wantInvalid {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestRegistrationForm(t *testing.T) {
	v := New(fixedClock)
	valid := RegistrationForm{
		Email:           "a@x.com",
		Password:        "secret",
		ConfirmPassword: "secret",
		FirstName:       "Anna",
		LastName:        "Rossi",
		BirthDate:       date("1990-01-01"),
	}
	require.NoError(t, v.Struct(valid))

	t.Run("bad email", func(t *testing.T) {
		f := valid
		f.Email = "not-an-email"
		assert.Equal(t, "is not a valid email address", fieldErrors(t, v.Struct(f))["email"])
	})
	t.Run("password too short", func(t *testing.T) {
		f := valid
		f.Password, f.ConfirmPassword = "abc", "abc"
		assert.Contains(t, fieldErrors(t, v.Struct(f)), "password")
	})
	t.Run("password too long", func(t *testing.T) {
		f := valid
		f.Password, f.ConfirmPassword = "abcdefghijk", "abcdefghijk"
		assert.Contains(t, fieldErrors(t, v.Struct(f)), "password")
	})
	t.Run("confirmation mismatch", func(t *testing.T) {
		f := valid
		f.ConfirmPassword = "other"
		assert.Equal(t, "does not match", fieldErrors(t, v.Struct(f))["conferma_password"])
	})
	t.Run("blank names", func(t *testing.T) {
		f := valid
		f.FirstName, f.LastName = "  ", "\n"
		fields := fieldErrors(t, v.Struct(f))
		assert.Equal(t, "must not be blank", fields["nome"])
		assert.Equal(t, "must not be blank", fields["cognome"])
	})
	t.Run("birth date in the future", func(t *testing.T) {
		f := valid
		f.BirthDate = date("2026-10-17")
		assert.Contains(t, fieldErrors(t, v.Struct(f)), "data_nascita")
	})
}

func TestEventForm(t *testing.T) {
	v := New(fixedClock)
	require.NoError(t, v.Struct(EventForm{Title: "Gala", Description: "d", Date: date("2026-10-20"), Capacity: 50}))

	fields := fieldErrors(t, v.Struct(EventForm{}))
	assert.Contains(t, fields, "titolo")
	assert.Contains(t, fields, "descrizione")
	assert.Contains(t, fields, "data_evento")
	assert.Equal(t, "must be greater than 0", fields["capienza"])

	fields = fieldErrors(t, v.Struct(EventForm{Title: " ", Description: "\t", Date: date("2026-10-20"), Capacity: 5}))
	assert.Equal(t, "must not be blank", fields["titolo"])
	assert.Equal(t, "must not be blank", fields["descrizione"])
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"nome": "is required", "cognome": "is required"}}
	assert.Equal(t, "invalid input: cognome: is required; nome: is required", err.Error())
}
