package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrNoSession          = errors.New("no user logged in")
	ErrNotOrganizer       = errors.New("event belongs to another organizer")
)

// User is a registered account. PasswordHash holds a bcrypt hash.
type User struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	BirthDate    time.Time
}

// FullName is the display form used for organizers.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Participant is one attendee registered to one event.
type Participant struct {
	ID        int64
	FirstName string
	LastName  string
	BirthDate time.Time
	EventID   int64
}

// EventStat is the number of participants registered under an event title.
type EventStat struct {
	Title        string
	Participants int
}

// OrganizerStat is the number of events created by one organizer.
type OrganizerStat struct {
	Email  string
	Name   string
	Events int
}

// Statistics backs the statistics view.
type Statistics struct {
	PerEvent     []EventStat
	PerOrganizer []OrganizerStat
}
