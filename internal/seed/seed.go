// Package seed loads users, events and participants from YAML fixture files.
package seed

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/conorfennell/nyx/internal/domain"
	"github.com/conorfennell/nyx/internal/forms"
)

// Target is the store fixtures are written to. *storage.DB implements it.
type Target interface {
	CountUsersByEmail(ctx context.Context, email string) (int, error)
	InsertUser(ctx context.Context, u domain.User) error
	ListEvents(ctx context.Context) ([]domain.Event, error)
	InsertEvent(ctx context.Context, e domain.Event) (int64, error)
	InsertParticipant(ctx context.Context, p domain.Participant) (int64, error)
}

// PosterImporter copies fixture images into the posters directory.
type PosterImporter interface {
	Import(src string) (string, error)
	Remove(path string) error
}

// Report summarizes one run.
type Report struct {
	Files        int
	Users        int
	Events       int
	Participants int
	Skipped      int
	Errors       []error
}

// Loader applies fixture files to a Target.
type Loader struct {
	target  Target
	posters PosterImporter
	forms   *forms.Validator
	cost    int
}

// NewLoader returns a Loader. Passwords are hashed with the given bcrypt cost
// (0 selects bcrypt.DefaultCost).
func NewLoader(target Target, posters PosterImporter, now func() time.Time, cost int) *Loader {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Loader{target: target, posters: posters, forms: forms.New(now), cost: cost}
}

// Run walks root for *.yaml and *.yml files and inserts what they describe.
// Users whose email already exists and events already present with the same
// title, date and organizer are skipped, so running twice is harmless.
// Invalid entries are reported and do not stop the run.
func (l *Loader) Run(ctx context.Context, root string) (Report, error) {
	var report Report

	existing, err := l.target.ListEvents(ctx)
	if err != nil {
		return report, err
	}
	known := make(map[string]bool, len(existing))
	for _, e := range existing {
		known[Fingerprint(e)] = true
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		report.Files++
		f, parseErr := ParseFile(path)
		if parseErr != nil {
			report.Errors = append(report.Errors, fmt.Errorf("parsing %s: %w", path, parseErr))
			return nil
		}
		l.apply(ctx, path, f, known, &report)
		return ctx.Err()
	})
	if walkErr != nil {
		slog.Error("Error walking fixture directory", "path", root, "error", walkErr)
		return report, walkErr
	}

	slog.Info("Seeding complete",
		"path", root,
		"files", report.Files,
		"users", report.Users,
		"events", report.Events,
		"participants", report.Participants,
		"skipped", report.Skipped,
		"errors", len(report.Errors),
	)
	return report, nil
}

func (l *Loader) apply(ctx context.Context, path string, f File, known map[string]bool, report *Report) {
	fail := func(err error) {
		report.Errors = append(report.Errors, fmt.Errorf("%s: %w", path, err))
	}

	for _, uf := range f.Users {
		created, err := l.applyUser(ctx, uf)
		if err != nil {
			fail(err)
			continue
		}
		if created {
			report.Users++
		} else {
			report.Skipped++
		}
	}

	for _, ef := range f.Events {
		date, err := parseDate("data_evento", ef.Date)
		if err != nil {
			fail(err)
			continue
		}
		form := forms.EventForm{Title: ef.Title, Description: ef.Description, Date: date, Capacity: ef.Capacity}
		if err := l.forms.Struct(form); err != nil {
			fail(fmt.Errorf("event %q: %w", ef.Title, err))
			continue
		}
		key := Fingerprint(domain.Event{Title: ef.Title, Date: date, Organizer: ef.Organizer})
		if known[key] {
			slog.Debug("Event already present, skipping", "title", ef.Title, "date", ef.Date)
			report.Skipped++
			continue
		}

		e := domain.Event{
			Title:       ef.Title,
			Description: ef.Description,
			Date:        date,
			Organizer:   ef.Organizer,
			Capacity:    ef.Capacity,
		}
		if ef.Image != "" && l.posters != nil {
			img := ef.Image
			if !filepath.IsAbs(img) {
				img = filepath.Join(filepath.Dir(path), img)
			}
			if e.ImagePath, err = l.posters.Import(img); err != nil {
				slog.Warn("Fixture poster not imported", "path", img, "error", err)
				e.ImagePath = ""
			}
		}

		id, err := l.target.InsertEvent(ctx, e)
		if err != nil {
			fail(err)
			if e.ImagePath != "" {
				if rerr := l.posters.Remove(e.ImagePath); rerr != nil {
					slog.Warn("Failed to remove unused poster", "path", e.ImagePath, "error", rerr)
				}
			}
			continue
		}
		known[key] = true
		report.Events++

		for _, pf := range ef.Participants {
			if err := l.applyParticipant(ctx, id, pf); err != nil {
				fail(fmt.Errorf("event %q: %w", ef.Title, err))
				continue
			}
			report.Participants++
		}
	}
}

func (l *Loader) applyUser(ctx context.Context, uf UserFixture) (bool, error) {
	birth, err := parseDate("data_nascita", uf.BirthDate)
	if err != nil {
		return false, err
	}
	form := forms.RegistrationForm{
		Email:           uf.Email,
		Password:        uf.Password,
		ConfirmPassword: uf.Password,
		FirstName:       uf.FirstName,
		LastName:        uf.LastName,
		BirthDate:       birth,
	}
	if err := l.forms.Struct(form); err != nil {
		return false, fmt.Errorf("user %q: %w", uf.Email, err)
	}

	n, err := l.target.CountUsersByEmail(ctx, uf.Email)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uf.Password), l.cost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password for %s: %w", uf.Email, err)
	}
	err = l.target.InsertUser(ctx, domain.User{
		Email:        uf.Email,
		PasswordHash: string(hash),
		FirstName:    uf.FirstName,
		LastName:     uf.LastName,
		BirthDate:    birth,
	})
	return err == nil, err
}

func (l *Loader) applyParticipant(ctx context.Context, eventID int64, pf ParticipantFixture) error {
	birth, err := parseDate("data_nascita", pf.BirthDate)
	if err != nil {
		return err
	}
	form := forms.ParticipantForm{FirstName: pf.FirstName, LastName: pf.LastName, BirthDate: birth}
	if err := l.forms.Struct(form); err != nil {
		return err
	}
	_, err = l.target.InsertParticipant(ctx, form.Participant(eventID))
	return err
}
