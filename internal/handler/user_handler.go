package handler

import (
	"context"
	"net/http"

	"course-manager/internal/dto"
	"course-manager/internal/models"
	"course-manager/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	svc      service.UserService
	eventSvc service.EventService
}

func NewUserHandler(svc service.UserService, eventSvc service.EventService) *UserHandler {
	return &UserHandler{svc: svc, eventSvc: eventSvc}
}

func (h *UserHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateUser)
	g.GET("", h.ListUsers)
	g.GET("/:id", h.GetUser)
	g.PUT("/:id", h.UpdateUser)
	g.DELETE("/:id", h.DeleteUser)
	g.GET("/:id/organized", h.ListOrganized)
	g.GET("/:id/events", h.ListParticipating)
	g.GET("/:id/events/past", h.ListPast)
	g.GET("/:id/events/future", h.ListFuture)
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req dto.UserRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := &models.User{
		Firstname:   req.Firstname,
		Surname:     req.Surname,
		Age:         req.Age,
		Email:       req.Email,
		Password:    req.Password,
		IsOrganizer: req.IsOrganizer,
	}
	if err := h.svc.CreateUser(c.Request().Context(), user); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = dto.ToUserResponse(&users[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), id, req.ToInput())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteUser cascades: every event the user organizes goes with it.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) ListOrganized(c echo.Context) error {
	return h.listEvents(c, h.eventSvc.ListByOrganizer)
}

func (h *UserHandler) ListParticipating(c echo.Context) error {
	return h.listEvents(c, h.eventSvc.ListForParticipant)
}

func (h *UserHandler) ListPast(c echo.Context) error {
	return h.listEvents(c, h.eventSvc.ListPastForParticipant)
}

func (h *UserHandler) ListFuture(c echo.Context) error {
	return h.listEvents(c, h.eventSvc.ListFutureForParticipant)
}

func (h *UserHandler) listEvents(c echo.Context, query func(ctx context.Context, id uint) ([]models.Event, error)) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	events, err := query(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponses(events))
}
