package controller

import (
	"hireflow-api/core/constants"
	"hireflow-api/core/controller"
	"hireflow-api/core/errors"
	"hireflow-api/core/utils"
	"hireflow-api/modules/scheduling/dto"
	"hireflow-api/modules/scheduling/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SchedulingController handles scheduling HTTP requests.
type SchedulingController struct {
	controller.BaseController
	SchedulingService service.SchedulingServiceInterface
}

func NewSchedulingController(svc service.SchedulingServiceInterface) *SchedulingController {
	return &SchedulingController{
		BaseController:    controller.NewBaseController(),
		SchedulingService: svc,
	}
}

func (c *SchedulingController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// CreateSchedule handles POST /schedules
// @Summary Create a scheduling request
// @Description Creates an interview schedule, generates its slots and invites the participants
// @Tags Scheduling
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateScheduleRequest true "Schedule details"
// @Success 200 {object} dto.ScheduleDetailResponse
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Router /private/schedules [post]
func (c *SchedulingController) CreateSchedule(ctx echo.Context) error {
	creatorID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateScheduleRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.SchedulingService.CreateSchedule(ctx.Request().Context(), creatorID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Schedule created successfully")
}

// GetMySchedules handles GET /schedules
// @Summary List my schedules
// @Description Lists the recruiter's scheduling requests with response counts
// @Tags Scheduling
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.ScheduleListItem
// @Failure 401 {object} errors.AppError
// @Router /private/schedules [get]
func (c *SchedulingController) GetMySchedules(ctx echo.Context) error {
	creatorID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.SchedulingService.GetMySchedules(ctx.Request().Context(), creatorID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetSchedule handles GET /schedules/:id
// @Summary Get schedule detail
// @Description Returns the schedule, its ranked slots and participant responses
// @Tags Scheduling
// @Security BearerAuth
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} dto.ScheduleDetailResponse
// @Failure 404 {object} errors.AppError
// @Router /private/schedules/{id} [get]
func (c *SchedulingController) GetSchedule(ctx echo.Context) error {
	requesterID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	scheduleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid schedule ID")
	}

	result, appErr := c.SchedulingService.GetScheduleDetail(ctx.Request().Context(), scheduleID, requesterID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ConfirmSlot handles POST /schedules/:id/confirm
// @Summary Confirm a slot
// @Description Locks the schedule to one slot and notifies the participants
// @Tags Scheduling
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param request body dto.ConfirmSlotRequest true "Chosen slot"
// @Success 200 {object} dto.ScheduleDetailResponse
// @Failure 409 {object} errors.AppError
// @Router /private/schedules/{id}/confirm [post]
func (c *SchedulingController) ConfirmSlot(ctx echo.Context) error {
	actorID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	scheduleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid schedule ID")
	}

	var req dto.ConfirmSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.SchedulingService.ConfirmSlot(ctx.Request().Context(), scheduleID, actorID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Slot confirmed successfully")
}

// GetVotingPage handles GET /availability/:token
// @Summary Voting page payload
// @Description Returns the slots a participant can vote on, looked up by vote token
// @Tags Availability
// @Produce json
// @Param token path string true "Vote token"
// @Success 200 {object} dto.VotingPageResponse
// @Failure 404 {object} errors.AppError
// @Router /public/availability/{token} [get]
func (c *SchedulingController) GetVotingPage(ctx echo.Context) error {
	result, appErr := c.SchedulingService.GetVotingPage(ctx.Request().Context(), ctx.Param("token"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// SubmitAvailability handles POST /availability/:token
// @Summary Submit availability
// @Description Replaces the participant's vote set with the chosen slots
// @Tags Availability
// @Accept json
// @Produce json
// @Param token path string true "Vote token"
// @Param request body dto.SubmitAvailabilityRequest true "Chosen slot IDs"
// @Success 200 {object} dto.VotingPageResponse
// @Failure 404 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /public/availability/{token} [post]
func (c *SchedulingController) SubmitAvailability(ctx echo.Context) error {
	var req dto.SubmitAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.SchedulingService.SubmitAvailability(ctx.Request().Context(), ctx.Param("token"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Availability saved")
}
