package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Lookaheads need regexp2; the stdlib engine rejects them.
const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	passwordExp        = regexp2.MustCompile(passwordRegexPattern, regexp2.None)
	errInvalidPassword = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
)

type RegisterParticipantRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

func (req *RegisterParticipantRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.Length(1, 150)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Name, validation.Length(0, 40)),
		validation.Field(&req.Surname, validation.Length(0, 60)),
	)
	if err != nil {
		return err
	}

	ok, err := passwordExp.MatchString(req.Password)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}

// UpdateParticipantRequest is a partial payload; nil fields stay
// untouched.
type UpdateParticipantRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	Surname  *string `json:"surname"`
}

func (req *UpdateParticipantRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Length(1, 150)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Name, validation.Length(0, 40)),
		validation.Field(&req.Surname, validation.Length(0, 60)),
	)
	if err != nil {
		return err
	}

	if req.Password != nil {
		ok, err := passwordExp.MatchString(*req.Password)
		if err != nil || !ok {
			return errInvalidPassword
		}
	}

	return nil
}
