package domain

import "time"

type Event struct {
	ID           uint          `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Date         time.Time     `json:"date"`
	EventType    string        `json:"event_type"`
	Location     string        `json:"location"`
	Participants []Participant `json:"participants"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// EventFilter narrows an event listing. Zero values impose no constraint.
// Title, Location and EventType match case-insensitive substrings,
// Date matches the calendar date exactly.
type EventFilter struct {
	Title     string
	Date      *time.Time
	Location  string
	EventType string
}

type EventPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	EventType   *string
	Location    *string
}
