package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/gatherly-api/internal/api/handler/v1/request"
	"github.com/gatherly/gatherly-api/internal/api/handler/v1/response"
	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/service"
)

type ParticipationService interface {
	ListParticipations(ctx context.Context) ([]domain.EventParticipation, error)
	CreateParticipation(ctx context.Context, eventID, participantID uint, isOrganizer bool) (domain.EventParticipation, error)
	JoinEvent(ctx context.Context, eventID, participantID uint, isOrganizer bool) (domain.EventParticipation, error)
}

type ParticipationHandler struct {
	svc ParticipationService
}

func NewParticipationHandler(svc ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{
		svc: svc,
	}
}

// HandleListParticipations godoc
// @Summary      List all participations
// @Tags         participations
// @Produce      json
// @Success      200  {array}   response.Participation
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /participations/ [get]
// @Security     BearerAuth
func (h *ParticipationHandler) HandleListParticipations(ctx *gin.Context) {
	participations, err := h.svc.ListParticipations(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListParticipations -> h.svc.ListParticipations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewParticipations(participations))
}

// HandleCreateParticipation godoc
// @Summary      Create a participation row directly
// @Description  Raw entry point naming both event and participant. The composite unique constraint still rejects duplicate pairs.
// @Tags         participations
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateParticipationRequest  true  "participation fields"
// @Success      201      {object}  response.Participation
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /participations/ [post]
// @Security     BearerAuth
func (h *ParticipationHandler) HandleCreateParticipation(ctx *gin.Context) {
	var req request.CreateParticipationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateParticipation(ctx.Request.Context(), req.Event, req.Participant, req.IsOrganizer)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", req.Event))
			return
		}
		if errors.Is(err, service.ErrAlreadyJoined) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrAlreadyJoined))
			return
		}
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("participant", "ID", req.Participant))
			return
		}

		err = fmt.Errorf("v1.HandleCreateParticipation -> h.svc.CreateParticipation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewParticipation(created))
}

// HandleJoinEvent godoc
// @Summary      Join an event
// @Description  Links the authenticated caller to the event, at most once per pair, and sends a confirmation mail after the row is committed.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.JoinEventRequest  true  "join body"
// @Success      201      {object}  response.Participation
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/join/ [post]
// @Security     BearerAuth
func (h *ParticipationHandler) HandleJoinEvent(ctx *gin.Context) {
	callerID, respErr := getCallerID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.JoinEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.JoinEvent(ctx.Request.Context(), req.Event, callerID, req.IsOrganizer)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", req.Event))
			return
		}
		if errors.Is(err, service.ErrAlreadyJoined) {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("already joined this event")))
			return
		}

		err = fmt.Errorf("v1.HandleJoinEvent -> h.svc.JoinEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewParticipation(created))
}
