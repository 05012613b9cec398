package domain

import "time"

// EventParticipation links one participant to one event. At most one
// row exists per (event, participant) pair.
type EventParticipation struct {
	ID          uint        `json:"id"`
	EventID     uint        `json:"event"`
	Participant Participant `json:"participant"`
	IsOrganizer bool        `json:"is_organizer"`
	CreatedAt   time.Time   `json:"created_at"`
}
