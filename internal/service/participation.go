package service

import (
	"context"
	"fmt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository"
)

var ErrAlreadyJoined = repository.ErrAlreadyJoined

type ParticipationRepository interface {
	Create(ctx context.Context, eventID, participantID uint, isOrganizer bool) (domain.EventParticipation, error)
	FindAll(ctx context.Context) ([]domain.EventParticipation, error)
}

type ParticipationEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

// ConfirmationNotifier is handed the committed participation's details;
// delivery happens off the request path.
type ConfirmationNotifier interface {
	NotifyJoined(participant domain.Participant, event domain.Event)
}

type ParticipationService struct {
	repo      ParticipationRepository
	eventRepo ParticipationEventRepository
	notifier  ConfirmationNotifier
}

func NewParticipationService(repo ParticipationRepository, eventRepo ParticipationEventRepository, notifier ConfirmationNotifier) *ParticipationService {
	return &ParticipationService{
		repo:      repo,
		eventRepo: eventRepo,
		notifier:  notifier,
	}
}

func (s *ParticipationService) ListParticipations(ctx context.Context) ([]domain.EventParticipation, error) {
	participations, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return participations, nil
}

// CreateParticipation is the raw entry point. The composite unique
// index still rejects duplicate pairs.
func (s *ParticipationService) CreateParticipation(ctx context.Context, eventID, participantID uint, isOrganizer bool) (domain.EventParticipation, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return domain.EventParticipation{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, eventID, participantID, isOrganizer)
	if err != nil {
		return domain.EventParticipation{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// JoinEvent links the calling participant to the event. The row is
// committed first; the confirmation notification is dispatched after,
// outside the write path.
func (s *ParticipationService) JoinEvent(ctx context.Context, eventID, participantID uint, isOrganizer bool) (domain.EventParticipation, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return domain.EventParticipation{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, eventID, participantID, isOrganizer)
	if err != nil {
		return domain.EventParticipation{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.notifier.NotifyJoined(created.Participant, event)

	return created, nil
}
