package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string
	Date        time.Time `gorm:"type:date;not null"`
	EventType   string    `gorm:"not null"`
	Location    string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// EventFilter mirrors domain.EventFilter at the storage layer.
type EventFilter struct {
	Title     string
	Date      *time.Time
	Location  string
	EventType string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a substring ILIKE pattern, escaping the
// pattern metacharacters so filter values match literally.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context, filter EventFilter) ([]Event, error) {
	query := d.db.WithContext(ctx).Model(&Event{})

	if filter.Title != "" {
		query = query.Where("title ILIKE ?", containsPattern(filter.Title))
	}
	if filter.Date != nil {
		query = query.Where("date = ?", filter.Date.Format("2006-01-02"))
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", containsPattern(filter.Location))
	}
	if filter.EventType != "" {
		query = query.Where("event_type ILIKE ?", containsPattern(filter.EventType))
	}

	var events []Event
	result := query.Order("id").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// FindParticipants returns the participants linked to the event through
// event_participations, ordered by join id. limit < 0 means no limit.
func (d *EventDAO) FindParticipants(ctx context.Context, eventID uint, limit, offset int) ([]Participant, error) {
	var participants []Participant

	query := d.db.WithContext(ctx).
		Joins("JOIN event_participations ON event_participations.participant_id = participants.id").
		Where("event_participations.event_id = ?", eventID).
		Order("event_participations.id")
	if limit >= 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	result := query.Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Save(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

// Delete removes the event and, via ON DELETE CASCADE, all its
// participation rows.
func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
