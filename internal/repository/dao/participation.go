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

var ErrAlreadyJoined = errors.New("participant already joined this event")

// EventParticipation carries a composite unique index on
// (event_id, participant_id) so a duplicate join is rejected by the
// database itself, not by a racy pre-check.
type EventParticipation struct {
	ID uint `gorm:"primaryKey"`

	EventID uint  `gorm:"not null;uniqueIndex:idx_event_participant"`
	Event   Event `gorm:"constraint:OnDelete:CASCADE"`

	ParticipantID uint        `gorm:"not null;uniqueIndex:idx_event_participant"`
	Participant   Participant `gorm:"constraint:OnDelete:CASCADE"`

	IsOrganizer bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
}

type ParticipationDAO struct {
	db *gorm.DB
}

func NewParticipationDAO(db *gorm.DB) *ParticipationDAO {
	return &ParticipationDAO{
		db: db,
	}
}

func (d *ParticipationDAO) Insert(ctx context.Context, participation EventParticipation) (EventParticipation, error) {
	result := d.db.WithContext(ctx).Create(&participation)
	if result.Error != nil {
		if err := mapParticipationConstraintViolation(result.Error); err != nil {
			return EventParticipation{}, err
		}

		return EventParticipation{}, result.Error
	}

	return participation, nil
}

// mapParticipationConstraintViolation translates the constraint errors
// an insert can raise: the composite unique index rejects a duplicate
// pair, the foreign keys reject dangling event or participant ids.
func mapParticipationConstraintViolation(resultErr error) error {
	var err *pgconn.PgError
	if !errors.As(resultErr, &err) {
		return nil
	}

	if err.Code == pgerrcode.UniqueViolation &&
		strings.Contains(err.Message, "idx_event_participant") {
		return ErrAlreadyJoined
	}

	if err.Code == pgerrcode.ForeignKeyViolation {
		if strings.Contains(err.Message, `"fk_event_participations_participant"`) {
			return ErrParticipantNotFound
		}
		if strings.Contains(err.Message, `"fk_event_participations_event"`) {
			return ErrEventNotFound
		}
	}

	return nil
}

func (d *ParticipationDAO) FindAll(ctx context.Context) ([]EventParticipation, error) {
	var participations []EventParticipation

	result := d.db.WithContext(ctx).
		Preload("Participant").
		Order("id").
		Find(&participations)
	if result.Error != nil {
		return nil, result.Error
	}

	return participations, nil
}

// HasOrganizer reports whether any organizer row exists for the event.
func (d *ParticipationDAO) HasOrganizer(ctx context.Context, eventID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&EventParticipation{}).
		Where("event_id = ? AND is_organizer", eventID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// IsOrganizer reports whether the participant holds an organizer row
// for the event.
func (d *ParticipationDAO) IsOrganizer(ctx context.Context, eventID, participantID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&EventParticipation{}).
		Where("event_id = ? AND participant_id = ? AND is_organizer", eventID, participantID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}
