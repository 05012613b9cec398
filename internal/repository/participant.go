package repository

import (
	"context"
	"fmt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository/dao"
)

var (
	ErrUsernameExists      = dao.ErrUsernameExists
	ErrEmailExists         = dao.ErrEmailExists
	ErrParticipantNotFound = dao.ErrParticipantNotFound
)

type ParticipantDAO interface {
	Insert(ctx context.Context, participant dao.Participant) (dao.Participant, error)
	FindAll(ctx context.Context) ([]dao.Participant, error)
	FindByID(ctx context.Context, id uint) (dao.Participant, error)
	FindByUsername(ctx context.Context, username string) (dao.Participant, error)
	Update(ctx context.Context, participant dao.Participant) (dao.Participant, error)
	Delete(ctx context.Context, id uint) error
}

type ParticipantRepository struct {
	dao ParticipantDAO
}

func NewParticipantRepository(dao ParticipantDAO) *ParticipantRepository {
	return &ParticipantRepository{
		dao: dao,
	}
}

func (r *ParticipantRepository) Create(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(participant))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ParticipantRepository) FindAll(ctx context.Context) ([]domain.Participant, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *ParticipantRepository) FindByID(ctx context.Context, id uint) (domain.Participant, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ParticipantRepository) FindByUsername(ctx context.Context, username string) (domain.Participant, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ParticipantRepository) Update(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(participant))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ParticipantRepository) domainToDao(p domain.Participant) dao.Participant {
	return dao.Participant{
		ID:        p.ID,
		Username:  p.Username,
		Email:     p.Email,
		Password:  p.Password,
		Name:      p.Name,
		Surname:   p.Surname,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *ParticipantRepository) daoToDomain(p dao.Participant) domain.Participant {
	return domain.Participant{
		ID:        p.ID,
		Username:  p.Username,
		Email:     p.Email,
		Password:  p.Password,
		Name:      p.Name,
		Surname:   p.Surname,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *ParticipantRepository) daosToDomain(daoParticipants []dao.Participant) []domain.Participant {
	participants := make([]domain.Participant, len(daoParticipants))
	for i, p := range daoParticipants {
		participants[i] = r.daoToDomain(p)
	}

	return participants
}
