package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/gatherly-api/internal/api/handler/v1/response"
	"github.com/gatherly/gatherly-api/internal/api/middleware"
)

// getCallerID returns the authenticated participant's ID placed in the
// context by the JWT middleware.
func getCallerID(ctx *gin.Context) (uint, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyParticipantID)
	if !exists {
		return 0, response.ErrUnauthorized(errors.New("missing authenticated participant"))
	}

	id, ok := value.(uint)
	if !ok || id == 0 {
		return 0, response.ErrUnauthorized(errors.New("invalid authenticated participant"))
	}

	return id, nil
}
