package response

import (
	"github.com/gatherly/gatherly-api/internal/domain"
)

// Participant is the public view of a participant. The credential is
// never part of it, whatever the input carried.
type Participant struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

// Event nests the public participant views, capped at the service
// layer; dates render as calendar dates.
type Event struct {
	ID           uint          `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Date         string        `json:"date"`
	EventType    string        `json:"event_type"`
	Location     string        `json:"location"`
	Participants []Participant `json:"participants"`
}

// Participation references its event by id and nests the participant
// view; event and participant are immutable once created.
type Participation struct {
	ID          uint        `json:"id"`
	Event       uint        `json:"event"`
	Participant Participant `json:"participant"`
	IsOrganizer bool        `json:"is_organizer"`
}

type LoginResponse struct {
	Token       string      `json:"token"`
	Participant Participant `json:"participant"`
}

func NewParticipant(p domain.Participant) Participant {
	return Participant{
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		Name:     p.Name,
		Surname:  p.Surname,
	}
}

func NewParticipants(participants []domain.Participant) []Participant {
	views := make([]Participant, len(participants))
	for i, p := range participants {
		views[i] = NewParticipant(p)
	}

	return views
}

func NewEvent(e domain.Event) Event {
	return Event{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Date:         e.Date.Format("2006-01-02"),
		EventType:    e.EventType,
		Location:     e.Location,
		Participants: NewParticipants(e.Participants),
	}
}

func NewEvents(events []domain.Event) []Event {
	views := make([]Event, len(events))
	for i, e := range events {
		views[i] = NewEvent(e)
	}

	return views
}

func NewParticipation(p domain.EventParticipation) Participation {
	return Participation{
		ID:          p.ID,
		Event:       p.EventID,
		Participant: NewParticipant(p.Participant),
		IsOrganizer: p.IsOrganizer,
	}
}

func NewParticipations(participations []domain.EventParticipation) []Participation {
	views := make([]Participation, len(participations))
	for i, p := range participations {
		views[i] = NewParticipation(p)
	}

	return views
}
