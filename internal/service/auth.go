package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/repository"
)

var (
	ErrUsernameExists = repository.ErrUsernameExists
	ErrEmailExists    = repository.ErrEmailExists
	ErrWrongPassword  = errors.New("wrong password")
)

type AuthParticipantRepository interface {
	Create(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	FindByUsername(ctx context.Context, username string) (domain.Participant, error)
}

type AuthService struct {
	repo AuthParticipantRepository
}

func NewAuthService(repo AuthParticipantRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Register hashes the credential and persists the participant. The
// plaintext never reaches the repository.
func (s *AuthService) Register(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(participant.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Participant{}, err
	}
	participant.Password = string(hash)

	created, err := s.repo.Create(ctx, participant)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Participant, error) {
	participant, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.Participant{}, ErrParticipantNotFound
		}

		return domain.Participant{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(participant.Password), []byte(password)); err != nil {
		return domain.Participant{}, ErrWrongPassword
	}

	return participant, nil
}
