package app

import (
	"context"
	"errors"

	"github.com/conorfennell/nyx/internal/domain"
	"github.com/conorfennell/nyx/internal/forms"
)

// CreateEvent stores a new event organized by the logged-in user. A picked
// image is copied into the posters directory first.
func (s *Service) CreateEvent(ctx context.Context, form forms.EventForm) (domain.Event, error) {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return domain.Event{}, err
	}
	if err := s.forms.Struct(form); err != nil {
		s.log.Warn("Rejected event", "title", form.Title, "error", err)
		return domain.Event{}, err
	}
	if form.Date.Format(domain.DateLayout) < s.today().Format(domain.DateLayout) {
		return domain.Event{}, &forms.ValidationError{Fields: map[string]string{"data_evento": "must not be in the past"}}
	}

	e := domain.Event{
		Title:       form.Title,
		Description: form.Description,
		Date:        form.Date,
		Organizer:   u.Email,
		Capacity:    form.Capacity,
	}
	if form.ImagePath != "" {
		if e.ImagePath, err = s.posters.Import(form.ImagePath); err != nil {
			s.log.Error("Failed to import poster", "path", form.ImagePath, "error", err)
			return domain.Event{}, err
		}
	}

	if e.ID, err = s.repo.InsertEvent(ctx, e); err != nil {
		s.log.Error("Failed to create event", "title", e.Title, "error", err)
		s.discardPoster(e.ImagePath)
		return domain.Event{}, err
	}
	s.log.Info("Event created", "id", e.ID, "title", e.Title, "organizer", e.Organizer)
	return e, nil
}

// UpdateEvent overwrites every mutable field of an event owned by the
// logged-in user. An ImagePath equal to the stored one keeps the poster, an
// empty one removes it, anything else is imported as a new poster.
func (s *Service) UpdateEvent(ctx context.Context, id int64, form forms.EventForm) (domain.Event, error) {
	e, err := s.ownedEvent(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}
	if err := s.forms.Struct(form); err != nil {
		s.log.Warn("Rejected event update", "id", id, "error", err)
		return domain.Event{}, err
	}

	previous := e.ImagePath
	imported := false
	e.Title = form.Title
	e.Description = form.Description
	e.Date = form.Date
	e.Capacity = form.Capacity
	switch form.ImagePath {
	case e.ImagePath:
	case "":
		e.ImagePath = ""
	default:
		if e.ImagePath, err = s.posters.Import(form.ImagePath); err != nil {
			s.log.Error("Failed to import poster", "path", form.ImagePath, "error", err)
			return domain.Event{}, err
		}
		imported = true
	}

	if err := s.repo.UpdateEvent(ctx, e); err != nil {
		s.log.Error("Failed to update event", "id", id, "error", err)
		if imported {
			s.discardPoster(e.ImagePath)
		}
		return domain.Event{}, err
	}
	if previous != e.ImagePath {
		s.discardPoster(previous)
	}
	s.log.Info("Event updated", "id", id)
	return e, nil
}

// DeleteEvent removes an event owned by the logged-in user together with its
// participations.
func (s *Service) DeleteEvent(ctx context.Context, id int64) error {
	e, err := s.ownedEvent(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		s.log.Error("Failed to delete event", "id", id, "error", err)
		return err
	}
	s.discardPoster(e.ImagePath)
	s.log.Info("Event deleted", "id", id)
	return nil
}

func (s *Service) ownedEvent(ctx context.Context, id int64) (domain.Event, error) {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return domain.Event{}, err
	}
	e, err := s.repo.FindEvent(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Error("Failed to load event", "id", id, "error", err)
		}
		return domain.Event{}, err
	}
	if e.Organizer != u.Email {
		return domain.Event{}, domain.ErrNotOrganizer
	}
	return e, nil
}

// ListEvents returns every event with counts and organizer names, filtered by
// time relative to today and by title.
func (s *Service) ListEvents(ctx context.Context, when domain.TimeFilter, search string) ([]domain.EventView, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		s.log.Error("Failed to list events", "error", err)
		return nil, err
	}
	views, err := s.enrich(ctx, events)
	if err != nil {
		return nil, err
	}
	return domain.FilterEvents(views, when, search, s.today()), nil
}

// HomeEvents returns the events dated within the home window around today.
func (s *Service) HomeEvents(ctx context.Context) ([]domain.EventView, error) {
	today := s.today()
	from := today.AddDate(0, 0, -s.homeWindow)
	to := today.AddDate(0, 0, s.homeWindow)

	events, err := s.repo.ListEventsBetween(ctx, from, to)
	if err != nil {
		s.log.Error("Failed to list home events", "error", err)
		return nil, err
	}
	return s.enrich(ctx, events)
}

// MyEvents returns the events organized by the logged-in user.
func (s *Service) MyEvents(ctx context.Context) ([]domain.EventView, error) {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.ListEventsByOrganizer(ctx, u.Email)
	if err != nil {
		s.log.Error("Failed to list organizer events", "email", u.Email, "error", err)
		return nil, err
	}
	return s.enrich(ctx, events)
}

// Event returns one event with its participant count and organizer name.
func (s *Service) Event(ctx context.Context, id int64) (domain.EventView, error) {
	e, err := s.repo.FindEvent(ctx, id)
	if err != nil {
		return domain.EventView{}, err
	}
	views, err := s.enrich(ctx, []domain.Event{e})
	if err != nil {
		return domain.EventView{}, err
	}
	return views[0], nil
}

// enrich runs the count and organizer-name queries separately and merges
// them into the events by id.
func (s *Service) enrich(ctx context.Context, events []domain.Event) ([]domain.EventView, error) {
	counts, err := s.repo.CountParticipants(ctx)
	if err != nil {
		s.log.Error("Failed to count participants", "error", err)
		return nil, err
	}
	names, err := s.repo.OrganizerNames(ctx)
	if err != nil {
		s.log.Error("Failed to resolve organizers", "error", err)
		return nil, err
	}

	views := domain.MergeEventViews(events, counts, names)
	for i := range views {
		views[i].Poster = s.posters.Resolve(views[i].ImagePath)
	}
	return views, nil
}
