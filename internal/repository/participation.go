package repository

import (
	"context"
	"fmt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository/dao"
)

var ErrAlreadyJoined = dao.ErrAlreadyJoined

type ParticipationDAO interface {
	Insert(ctx context.Context, participation dao.EventParticipation) (dao.EventParticipation, error)
	FindAll(ctx context.Context) ([]dao.EventParticipation, error)
	HasOrganizer(ctx context.Context, eventID uint) (bool, error)
	IsOrganizer(ctx context.Context, eventID, participantID uint) (bool, error)
}

type ParticipationRepository struct {
	dao   ParticipationDAO
	pRepo *ParticipantRepository
}

func NewParticipationRepository(dao ParticipationDAO, pRepo *ParticipantRepository) *ParticipationRepository {
	return &ParticipationRepository{
		dao:   dao,
		pRepo: pRepo,
	}
}

// Create inserts the participation row. A duplicate (event, participant)
// pair surfaces as ErrAlreadyJoined from the composite unique index.
func (r *ParticipationRepository) Create(ctx context.Context, eventID, participantID uint, isOrganizer bool) (domain.EventParticipation, error) {
	created, err := r.dao.Insert(ctx, dao.EventParticipation{
		EventID:       eventID,
		ParticipantID: participantID,
		IsOrganizer:   isOrganizer,
	})
	if err != nil {
		return domain.EventParticipation{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	participant, err := r.pRepo.FindByID(ctx, participantID)
	if err != nil {
		return domain.EventParticipation{}, fmt.Errorf("r.pRepo.FindByID -> %w", err)
	}

	participation := r.daoToDomain(created)
	participation.Participant = participant

	return participation, nil
}

func (r *ParticipationRepository) FindAll(ctx context.Context) ([]domain.EventParticipation, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	participations := make([]domain.EventParticipation, len(found))
	for i, p := range found {
		participations[i] = r.daoToDomain(p)
		participations[i].Participant = r.pRepo.daoToDomain(p.Participant)
	}

	return participations, nil
}

func (r *ParticipationRepository) HasOrganizer(ctx context.Context, eventID uint) (bool, error) {
	has, err := r.dao.HasOrganizer(ctx, eventID)
	if err != nil {
		return false, fmt.Errorf("r.dao.HasOrganizer -> %w", err)
	}

	return has, nil
}

func (r *ParticipationRepository) IsOrganizer(ctx context.Context, eventID, participantID uint) (bool, error) {
	is, err := r.dao.IsOrganizer(ctx, eventID, participantID)
	if err != nil {
		return false, fmt.Errorf("r.dao.IsOrganizer -> %w", err)
	}

	return is, nil
}

func (r *ParticipationRepository) daoToDomain(p dao.EventParticipation) domain.EventParticipation {
	return domain.EventParticipation{
		ID:          p.ID,
		EventID:     p.EventID,
		IsOrganizer: p.IsOrganizer,
		CreatedAt:   p.CreatedAt,
	}
}
