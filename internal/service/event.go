package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository"
)

var (
	ErrEventNotFound = repository.ErrEventNotFound
	ErrNotOrganizer  = errors.New("participant is not an organizer of this event")
)

// NestedParticipantLimit caps the participant list embedded in event
// payloads. Complete listings go through ListEventParticipants.
const NestedParticipantLimit = 50

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindAll(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindParticipants(ctx context.Context, eventID uint, limit, offset int) ([]domain.Participant, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
}

type OrganizerChecker interface {
	HasOrganizer(ctx context.Context, eventID uint) (bool, error)
	IsOrganizer(ctx context.Context, eventID, participantID uint) (bool, error)
}

type EventService struct {
	repo       EventRepository
	organizers OrganizerChecker
}

func NewEventService(repo EventRepository, organizers OrganizerChecker) *EventService {
	return &EventService{
		repo:       repo,
		organizers: organizers,
	}
}

func (s *EventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	for i := range events {
		participants, err := s.repo.FindParticipants(ctx, events[i].ID, NestedParticipantLimit, 0)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindParticipants -> %w", err)
		}
		events[i].Participants = participants
	}

	return events, nil
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	participants, err := s.repo.FindParticipants(ctx, id, NestedParticipantLimit, 0)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindParticipants -> %w", err)
	}
	event.Participants = participants

	return event, nil
}

// ListEventParticipants returns one page of the event's attendees.
func (s *EventService) ListEventParticipants(ctx context.Context, eventID uint, page, pageSize int) ([]domain.Participant, error) {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = NestedParticipantLimit
	}

	participants, err := s.repo.FindParticipants(ctx, eventID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindParticipants -> %w", err)
	}

	return participants, nil
}

// UpdateEvent applies a partial update. Events with at least one
// organizer may only be mutated by an organizer.
func (s *EventService) UpdateEvent(ctx context.Context, id uint, patch domain.EventPatch, callerID uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.checkOrganizer(ctx, id, callerID); err != nil {
		return domain.Event{}, err
	}

	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Date != nil {
		event.Date = *patch.Date
	}
	if patch.EventType != nil {
		event.EventType = *patch.EventType
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	participants, err := s.repo.FindParticipants(ctx, id, NestedParticipantLimit, 0)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindParticipants -> %w", err)
	}
	updated.Participants = participants

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint, callerID uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.checkOrganizer(ctx, id, callerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// checkOrganizer allows mutation by an organizer of the event, or by
// anyone while the event has no organizer yet.
func (s *EventService) checkOrganizer(ctx context.Context, eventID, callerID uint) error {
	hasOrganizer, err := s.organizers.HasOrganizer(ctx, eventID)
	if err != nil {
		return fmt.Errorf("s.organizers.HasOrganizer -> %w", err)
	}
	if !hasOrganizer {
		return nil
	}

	isOrganizer, err := s.organizers.IsOrganizer(ctx, eventID, callerID)
	if err != nil {
		return fmt.Errorf("s.organizers.IsOrganizer -> %w", err)
	}
	if !isOrganizer {
		return ErrNotOrganizer
	}

	return nil
}
