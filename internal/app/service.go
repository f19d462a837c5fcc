// Package app wires the storage, session and poster layers into the
// operations offered to the user interface.
package app

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/conorfennell/nyx/internal/domain"
	"github.com/conorfennell/nyx/internal/forms"
	"github.com/conorfennell/nyx/internal/session"
)

// DefaultHomeWindowDays is how far around today the home list looks.
const DefaultHomeWindowDays = 10

type UserRepository interface {
	CountUsersByEmail(ctx context.Context, email string) (int, error)
	InsertUser(ctx context.Context, u domain.User) error
	FindUserByEmail(ctx context.Context, email string) (domain.User, error)
	DeleteUser(ctx context.Context, email string) error
}

type EventRepository interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	ListEventsBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error)
	ListEventsByOrganizer(ctx context.Context, email string) ([]domain.Event, error)
	FindEvent(ctx context.Context, id int64) (domain.Event, error)
	CountParticipants(ctx context.Context) (map[int64]int, error)
	OrganizerNames(ctx context.Context) (map[int64]string, error)
	InsertEvent(ctx context.Context, e domain.Event) (int64, error)
	UpdateEvent(ctx context.Context, e domain.Event) error
	DeleteEvent(ctx context.Context, id int64) error
}

type ParticipantRepository interface {
	ListParticipants(ctx context.Context, eventID int64) ([]domain.Participant, error)
	InsertParticipant(ctx context.Context, p domain.Participant) (int64, error)
}

type StatsRepository interface {
	ParticipantsPerEvent(ctx context.Context) ([]domain.EventStat, error)
	EventsPerOrganizer(ctx context.Context) ([]domain.OrganizerStat, error)
}

// Repository is everything the service needs from the store.
// *storage.DB implements it.
type Repository interface {
	UserRepository
	EventRepository
	ParticipantRepository
	StatsRepository
}

type SessionStore interface {
	Load() (session.Session, error)
	Save(session.Session) error
	Clear() error
}

type PosterStore interface {
	Import(src string) (string, error)
	Resolve(path string) string
	Remove(path string) error
}

// Options tune a Service. Zero values select the defaults.
type Options struct {
	HomeWindowDays int
	BcryptCost     int
	Now            func() time.Time
	Logger         *slog.Logger
}

// Service implements the user-facing operations.
type Service struct {
	repo     Repository
	sessions SessionStore
	posters  PosterStore
	forms    *forms.Validator

	homeWindow int
	cost       int
	now        func() time.Time
	log        *slog.Logger
}

// New creates a Service.
func New(repo Repository, sessions SessionStore, posters PosterStore, opts Options) *Service {
	s := &Service{
		repo:       repo,
		sessions:   sessions,
		posters:    posters,
		homeWindow: opts.HomeWindowDays,
		cost:       opts.BcryptCost,
		now:        opts.Now,
		log:        opts.Logger,
	}
	if s.homeWindow <= 0 {
		s.homeWindow = DefaultHomeWindowDays
	}
	if s.cost == 0 {
		s.cost = bcrypt.DefaultCost
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.forms = forms.New(s.now)
	return s
}

// discardPoster removes a poster copy nothing refers to any more. Failure
// only leaves a stray file, so it is logged and not returned.
func (s *Service) discardPoster(path string) {
	if path == "" {
		return
	}
	if err := s.posters.Remove(path); err != nil {
		s.log.Warn("Failed to remove unused poster", "path", path, "error", err)
	}
}

func (s *Service) today() time.Time {
	t := s.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
