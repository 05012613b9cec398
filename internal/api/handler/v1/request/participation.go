package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateParticipationRequest struct {
	Event       uint `json:"event"`
	Participant uint `json:"participant"`
	IsOrganizer bool `json:"is_organizer"`
}

func (req *CreateParticipationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Event, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Participant, validation.Required, validation.Min(uint(1))),
	)
}

// JoinEventRequest is the join-workflow body; the participant is the
// authenticated caller.
type JoinEventRequest struct {
	Event       uint `json:"event"`
	IsOrganizer bool `json:"is_organizer"`
}

func (req *JoinEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Event, validation.Required, validation.Min(uint(1))),
	)
}
