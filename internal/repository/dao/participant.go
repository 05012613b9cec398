package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUsernameExists      = errors.New("username already taken")
	ErrEmailExists         = errors.New("email already registered")
	ErrParticipantNotFound = errors.New("participant not found")
)

type Participant struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"unique;not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Name    string
	Surname string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ParticipantDAO struct {
	db *gorm.DB
}

func NewParticipantDAO(db *gorm.DB) *ParticipantDAO {
	return &ParticipantDAO{
		db: db,
	}
}

func (d *ParticipantDAO) Insert(ctx context.Context, participant Participant) (Participant, error) {
	result := d.db.WithContext(ctx).Create(&participant)
	if result.Error != nil {
		if err := mapParticipantUniqueViolation(result.Error); err != nil {
			return Participant{}, err
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) FindAll(ctx context.Context) ([]Participant, error) {
	var participants []Participant

	result := d.db.WithContext(ctx).Order("id").Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

func (d *ParticipantDAO) FindByID(ctx context.Context, id uint) (Participant, error) {
	var participant Participant

	result := d.db.WithContext(ctx).First(&participant, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) FindByUsername(ctx context.Context, username string) (Participant, error) {
	var participant Participant

	result := d.db.WithContext(ctx).First(&participant, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) Update(ctx context.Context, participant Participant) (Participant, error) {
	result := d.db.WithContext(ctx).Save(&participant)
	if result.Error != nil {
		if err := mapParticipantUniqueViolation(result.Error); err != nil {
			return Participant{}, err
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

// Delete removes the participant. Owned participations go with it via
// the ON DELETE CASCADE on event_participations.
func (d *ParticipantDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Participant{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

func mapParticipantUniqueViolation(resultErr error) error {
	var err *pgconn.PgError
	if errors.As(resultErr, &err) && err.Code == pgerrcode.UniqueViolation {
		if strings.Contains(err.Message, `unique constraint "uni_participants_username"`) {
			return ErrUsernameExists
		}
		if strings.Contains(err.Message, `unique constraint "uni_participants_email"`) {
			return ErrEmailExists
		}
	}

	return nil
}
