package domain

import "time"

type Participant struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParticipantPatch carries the fields of a partial update. Nil means
// "leave unchanged".
type ParticipantPatch struct {
	Username *string
	Email    *string
	Password *string
	Name     *string
	Surname  *string
}
