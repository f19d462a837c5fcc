package app

import (
	"context"

	"github.com/conorfennell/nyx/internal/domain"
	"github.com/conorfennell/nyx/internal/forms"
)

// AddParticipant registers an attendee to an event. Invalid input is
// rejected before anything is written. Capacity is not enforced.
func (s *Service) AddParticipant(ctx context.Context, eventID int64, form forms.ParticipantForm) (domain.Participant, error) {
	if err := s.forms.Struct(form); err != nil {
		s.log.Warn("Rejected participant", "event_id", eventID, "error", err)
		return domain.Participant{}, err
	}
	if _, err := s.repo.FindEvent(ctx, eventID); err != nil {
		return domain.Participant{}, err
	}

	p := form.Participant(eventID)
	id, err := s.repo.InsertParticipant(ctx, p)
	if err != nil {
		s.log.Error("Failed to add participant", "event_id", eventID, "error", err)
		return domain.Participant{}, err
	}
	p.ID = id
	s.log.Info("Participant added", "event_id", eventID, "participant_id", id)
	return p, nil
}

// Participants lists the attendees of an event.
func (s *Service) Participants(ctx context.Context, eventID int64) ([]domain.Participant, error) {
	participants, err := s.repo.ListParticipants(ctx, eventID)
	if err != nil {
		s.log.Error("Failed to list participants", "event_id", eventID, "error", err)
		return nil, err
	}
	return participants, nil
}

// Statistics returns participations per event title and events per organizer.
func (s *Service) Statistics(ctx context.Context) (domain.Statistics, error) {
	perEvent, err := s.repo.ParticipantsPerEvent(ctx)
	if err != nil {
		s.log.Error("Failed to read participation statistics", "error", err)
		return domain.Statistics{}, err
	}
	perOrganizer, err := s.repo.EventsPerOrganizer(ctx)
	if err != nil {
		s.log.Error("Failed to read organizer statistics", "error", err)
		return domain.Statistics{}, err
	}
	return domain.Statistics{PerEvent: perEvent, PerOrganizer: perOrganizer}, nil
}
