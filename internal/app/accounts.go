package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/conorfennell/nyx/internal/domain"
	"github.com/conorfennell/nyx/internal/forms"
	"github.com/conorfennell/nyx/internal/session"
)

// Register creates an account. An email already in use is rejected with
// domain.ErrEmailTaken and nothing is written.
func (s *Service) Register(ctx context.Context, form forms.RegistrationForm) (domain.User, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := s.forms.Struct(form); err != nil {
		s.log.Warn("Rejected registration", "email", form.Email, "error", err)
		return domain.User{}, err
	}

	n, err := s.repo.CountUsersByEmail(ctx, form.Email)
	if err != nil {
		s.log.Error("Failed to check email uniqueness", "email", form.Email, "error", err)
		return domain.User{}, err
	}
	if n > 0 {
		return domain.User{}, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	u := domain.User{
		Email:        form.Email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(form.FirstName),
		LastName:     strings.TrimSpace(form.LastName),
		BirthDate:    form.BirthDate,
	}
	if err := s.repo.InsertUser(ctx, u); err != nil {
		s.log.Error("Failed to register user", "email", u.Email, "error", err)
		return domain.User{}, err
	}
	s.log.Info("User registered", "email", u.Email)
	return u, nil
}

// Login checks the credentials and starts a session. Unknown emails and wrong
// passwords both yield domain.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	u, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		s.log.Error("Failed to look up user", "email", email, "error", err)
		return domain.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	if err := s.sessions.Save(session.Session{Email: u.Email, CreatedAt: s.now()}); err != nil {
		s.log.Error("Failed to persist session", "email", u.Email, "error", err)
		return domain.User{}, err
	}
	s.log.Info("User logged in", "email", u.Email)
	return u, nil
}

// Logout ends the current session, if any.
func (s *Service) Logout() error {
	if err := s.sessions.Clear(); err != nil {
		s.log.Error("Failed to clear session", "error", err)
		return err
	}
	return nil
}

// CurrentUser returns the logged-in user, or domain.ErrNoSession. A session
// pointing at an account that no longer exists is cleared.
func (s *Service) CurrentUser(ctx context.Context) (domain.User, error) {
	sess, err := s.sessions.Load()
	if err != nil {
		return domain.User{}, err
	}
	u, err := s.repo.FindUserByEmail(ctx, sess.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("Session refers to a missing user, clearing it", "email", sess.Email)
			if cerr := s.sessions.Clear(); cerr != nil {
				return domain.User{}, cerr
			}
			return domain.User{}, domain.ErrNoSession
		}
		return domain.User{}, err
	}
	return u, nil
}

// DeleteAccount removes the logged-in user, the events they organize with
// their participations, and ends the session.
func (s *Service) DeleteAccount(ctx context.Context) error {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return err
	}
	owned, err := s.repo.ListEventsByOrganizer(ctx, u.Email)
	if err != nil {
		s.log.Error("Failed to list organizer events", "email", u.Email, "error", err)
		return err
	}
	if err := s.repo.DeleteUser(ctx, u.Email); err != nil {
		s.log.Error("Failed to delete account", "email", u.Email, "error", err)
		return err
	}
	for _, e := range owned {
		s.discardPoster(e.ImagePath)
	}
	s.log.Info("Account deleted", "email", u.Email)
	return s.Logout()
}
