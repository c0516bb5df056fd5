package controller

import (
	"gclub-api/core/controller"
	"gclub-api/core/errors"
	"gclub-api/core/middleware"
	"gclub-api/core/params"
	"gclub-api/modules/gamepost/dto"
	"gclub-api/modules/gamepost/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type GamePostController struct {
	service *service.RecruitService
	controller.BaseController
}

func NewGamePostController(service *service.RecruitService) *GamePostController {
	return &GamePostController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

func (c *GamePostController) postID(ctx echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	return id, err == nil
}

// Create creates a recruitment post
// @Summary Create game post
// @Tags GamePost
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "Post data"
// @Success 201 {object} dto.PostDetailResponse
// @Router /game-posts [post]
func (c *GamePostController) Create(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.CreatePostRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.service.CreatePost(ctx.Request().Context(), userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, result, "Post created successfully")
}

// List lists recruitment posts
// @Summary List game posts
// @Tags GamePost
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Title search"
// @Router /game-posts [get]
func (c *GamePostController) List(ctx echo.Context) error {
	queryParams := params.NewQueryParams(ctx)
	result, appErr := c.service.ListPosts(ctx.Request().Context(), *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Posts retrieved successfully")
}

// Get returns one post with its roster
// @Summary Get game post
// @Tags GamePost
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} dto.PostDetailResponse
// @Router /game-posts/{id} [get]
func (c *GamePostController) Get(ctx echo.Context) error {
	postID, ok := c.postID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid post id")
	}

	result, appErr := c.service.GetPost(ctx.Request().Context(), postID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Post retrieved successfully")
}

// Delete removes a post (author or moderator)
// @Summary Delete game post
// @Tags GamePost
// @Security BearerAuth
// @Param id path string true "Post id"
// @Router /game-posts/{id} [delete]
func (c *GamePostController) Delete(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	postID, ok := c.postID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid post id")
	}

	if appErr := c.service.DeletePost(ctx.Request().Context(), postID, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Post deleted successfully")
}

// Join takes a seat on an open post
// @Summary Join game post
// @Tags GamePost
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {object} dto.JoinResponse
// @Router /game-posts/{id}/join [post]
func (c *GamePostController) Join(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	postID, ok := c.postID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid post id")
	}

	result, appErr := c.service.Join(ctx.Request().Context(), postID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Joined successfully")
}

// Leave gives up a seat before the session starts
// @Summary Leave game post
// @Tags GamePost
// @Security BearerAuth
// @Param id path string true "Post id"
// @Router /game-posts/{id}/leave [delete]
func (c *GamePostController) Leave(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	postID, ok := c.postID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid post id")
	}

	if appErr := c.service.Leave(ctx.Request().Context(), postID, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Left successfully")
}

// LeaveEarly records a mid-session departure
// @Summary Leave game post mid-session
// @Tags GamePost
// @Security BearerAuth
// @Accept json
// @Param id path string true "Post id"
// @Param request body dto.LeaveEarlyRequest false "Participant to remove (author only)"
// @Router /game-posts/{id}/leave-early [post]
func (c *GamePostController) LeaveEarly(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	postID, ok := c.postID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid post id")
	}

	req := new(dto.LeaveEarlyRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	if appErr := c.service.LeaveEarly(ctx.Request().Context(), postID, userID, req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Departure recorded")
}

// AddGuest seats an unregistered player (author only)
// @Summary Add guest participant
// @Tags GamePost
// @Security BearerAuth
// @Accept json
// @Param id path string true "Post id"
// @Param request body dto.AddGuestRequest true "Guest name"
// @Router /game-posts/{id}/guests [post]
func (c *GamePostController) AddGuest(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	postID, ok := c.postID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid post id")
	}

	req := new(dto.AddGuestRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.service.AddGuest(ctx.Request().Context(), postID, userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, result, "Guest added successfully")
}

// RequestWait registers in the waiting queue
// @Summary Request a waiting spot
// @Tags GamePost
// @Security BearerAuth
// @Accept json
// @Param id path string true "Post id"
// @Param request body dto.RequestWaitRequest false "Optional available time"
// @Success 200 {object} dto.WaitAckResponse
// @Router /game-posts/{id}/waiting [post]
func (c *GamePostController) RequestWait(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	postID, ok := c.postID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid post id")
	}

	req := new(dto.RequestWaitRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.service.RequestWait(ctx.Request().Context(), postID, userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Waiting spot registered")
}

// WaitingQueue lists the open waiting entries of a post
// @Summary List waiting queue
// @Tags GamePost
// @Produce json
// @Param id path string true "Post id"
// @Router /game-posts/{id}/waiting [get]
func (c *GamePostController) WaitingQueue(ctx echo.Context) error {
	postID, ok := c.postID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid post id")
	}

	result, appErr := c.service.WaitingQueue(ctx.Request().Context(), postID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Waiting queue retrieved")
}

// CancelWait withdraws the caller's waiting entry
// @Summary Cancel waiting entry
// @Tags GamePost
// @Security BearerAuth
// @Param id path string true "Post id"
// @Param entryId path string true "Waiting entry id"
// @Router /game-posts/{id}/waiting/{entryId} [delete]
func (c *GamePostController) CancelWait(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	postID, ok := c.postID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid post id")
	}
	entryID, err := uuid.Parse(ctx.Param("entryId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid entry id")
	}

	if appErr := c.service.CancelWait(ctx.Request().Context(), postID, entryID, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Waiting entry canceled")
}

// AcceptInvite claims a mid-session seat offer
// @Summary Accept seat invitation
// @Tags GamePost
// @Security BearerAuth
// @Param id path string true "Post id"
// @Param entryId path string true "Waiting entry id"
// @Success 200 {object} dto.JoinResponse
// @Router /game-posts/{id}/waiting/{entryId}/accept [post]
func (c *GamePostController) AcceptInvite(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	postID, ok := c.postID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid post id")
	}
	entryID, err := uuid.Parse(ctx.Param("entryId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid entry id")
	}

	result, appErr := c.service.AcceptInvite(ctx.Request().Context(), postID, entryID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Seat claimed successfully")
}

// ToggleStatus advances the post through its manual lifecycle (author only)
// @Summary Toggle post status
// @Tags GamePost
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {object} dto.ToggleStatusResponse
// @Router /game-posts/{id}/status/toggle [patch]
func (c *GamePostController) ToggleStatus(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	postID, ok := c.postID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid post id")
	}

	result, appErr := c.service.ToggleStatus(ctx.Request().Context(), postID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Status updated")
}

// Close abandons recruitment on an open post (author only)
// @Summary Close recruitment
// @Tags GamePost
// @Security BearerAuth
// @Param id path string true "Post id"
// @Router /game-posts/{id}/close [patch]
func (c *GamePostController) Close(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	postID, ok := c.postID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid post id")
	}

	result, appErr := c.service.CloseRecruitment(ctx.Request().Context(), postID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Recruitment closed")
}
