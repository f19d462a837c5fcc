package forms

import (
	"strings"
	"time"

	"github.com/conorfennell/nyx/internal/domain"
)

// ParticipantForm is the input for registering an attendee to an event.
type ParticipantForm struct {
	FirstName string    `form:"nome" validate:"required,notblank,personname"`
	LastName  string    `form:"cognome" validate:"required,notblank,personname"`
	BirthDate time.Time `form:"data_nascita" validate:"required,pastdate"`
}

// Participant converts a validated form.
func (f ParticipantForm) Participant(eventID int64) domain.Participant {
	return domain.Participant{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		BirthDate: f.BirthDate,
		EventID:   eventID,
	}
}

// RegistrationForm is the input for creating an account.
type RegistrationForm struct {
	Email           string    `form:"email" validate:"required,email"`
	Password        string    `form:"password" validate:"required,min=5,max=10"`
	ConfirmPassword string    `form:"conferma_password" validate:"required,eqfield=Password"`
	FirstName       string    `form:"nome" validate:"required,notblank"`
	LastName        string    `form:"cognome" validate:"required,notblank"`
	BirthDate       time.Time `form:"data_nascita" validate:"required,notfuture"`
}

// EventForm is the input for creating or editing an event. ImagePath is the
// picked file, not yet copied into the posters directory.
type EventForm struct {
	Title       string    `form:"titolo" validate:"required,notblank"`
	Description string    `form:"descrizione" validate:"required,notblank"`
	Date        time.Time `form:"data_evento" validate:"required"`
	Capacity    int       `form:"capienza" validate:"gt=0"`
	ImagePath   string    `form:"immagine_path"`
}
