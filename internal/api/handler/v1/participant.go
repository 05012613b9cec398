package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/gatherly-api/internal/api/handler/v1/request"
	"github.com/gatherly/gatherly-api/internal/api/handler/v1/response"
	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/service"
)

type ParticipantService interface {
	ListParticipants(ctx context.Context) ([]domain.Participant, error)
	GetParticipant(ctx context.Context, id uint) (domain.Participant, error)
	UpdateParticipant(ctx context.Context, id uint, patch domain.ParticipantPatch) (domain.Participant, error)
	DeleteParticipant(ctx context.Context, id uint) error
}

type ParticipantHandler struct {
	svc     ParticipantService
	authSvc AuthService
}

func NewParticipantHandler(svc ParticipantService, authSvc AuthService) *ParticipantHandler {
	return &ParticipantHandler{
		svc:     svc,
		authSvc: authSvc,
	}
}

// HandleListParticipants godoc
// @Summary      List all participants
// @Tags         participants
// @Produce      json
// @Success      200  {array}   response.Participant
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /participants/ [get]
// @Security     BearerAuth
func (h *ParticipantHandler) HandleListParticipants(ctx *gin.Context) {
	participants, err := h.svc.ListParticipants(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListParticipants -> h.svc.ListParticipants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewParticipants(participants))
}

// HandleRegisterParticipant godoc
// @Summary      Register a new participant
// @Description  Self-registration. The only route that accepts an unauthenticated caller.
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        request  body      request.RegisterParticipantRequest  true  "registration fields"
// @Success      201      {object}  response.Participant
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /participants/ [post]
func (h *ParticipantHandler) HandleRegisterParticipant(ctx *gin.Context) {
	var req request.RegisterParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.authSvc.Register(ctx.Request.Context(), domain.Participant{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Surname:  req.Surname,
	})
	if err != nil {
		if errors.Is(err, service.ErrUsernameExists) || errors.Is(err, service.ErrEmailExists) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleRegisterParticipant -> h.authSvc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewParticipant(created))
}

// HandleGetParticipant godoc
// @Summary      Get a participant by ID
// @Tags         participants
// @Produce      json
// @Param        participantID  path      int  true  "Participant ID"
// @Success      200  {object}  response.Participant
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /participants/{participantID} [get]
// @Security     BearerAuth
func (h *ParticipantHandler) HandleGetParticipant(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("participantID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid participant ID: %w", err)))
		return
	}

	participant, err := h.svc.GetParticipant(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("participant", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetParticipant -> h.svc.GetParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewParticipant(participant))
}

// HandleUpdateParticipant godoc
// @Summary      Partially update a participant
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        participantID  path      int                               true  "Participant ID"
// @Param        request        body      request.UpdateParticipantRequest  true  "fields to update"
// @Success      200  {object}  response.Participant
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /participants/{participantID} [put]
// @Security     BearerAuth
func (h *ParticipantHandler) HandleUpdateParticipant(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("participantID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid participant ID: %w", err)))
		return
	}

	var req request.UpdateParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateParticipant(ctx.Request.Context(), uint(id), domain.ParticipantPatch{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Surname:  req.Surname,
	})
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("participant", "ID", id))
			return
		}
		if errors.Is(err, service.ErrUsernameExists) || errors.Is(err, service.ErrEmailExists) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateParticipant -> h.svc.UpdateParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewParticipant(updated))
}

// HandleDeleteParticipant godoc
// @Summary      Delete a participant
// @Description  Removes the participant and, by cascade, all their participations.
// @Tags         participants
// @Produce      json
// @Param        participantID  path  int  true  "Participant ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /participants/{participantID} [delete]
// @Security     BearerAuth
func (h *ParticipantHandler) HandleDeleteParticipant(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("participantID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid participant ID: %w", err)))
		return
	}

	if err := h.svc.DeleteParticipant(ctx.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("participant", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteParticipant -> h.svc.DeleteParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
