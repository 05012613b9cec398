package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

const dateLayout = "2006-01-02"

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date" format:"YYYY-MM-DD"`
	EventType   string `json:"event_type"`
	Location    string `json:"location"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 300)),
		validation.Field(&req.Date, validation.Required, validation.Date(dateLayout)),
		validation.Field(&req.EventType, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Location, validation.Length(0, 100)),
	)
}

// UpdateEventRequest is a partial payload; nil fields stay untouched.
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date" format:"YYYY-MM-DD"`
	EventType   *string `json:"event_type"`
	Location    *string `json:"location"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 300)),
		validation.Field(&req.Date, validation.Date(dateLayout)),
		validation.Field(&req.EventType, validation.Length(1, 100)),
		validation.Field(&req.Location, validation.Length(0, 100)),
	)
}
