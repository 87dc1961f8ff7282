package handler

import (
	"net/http"

	"course-manager/internal/dto"
	"course-manager/internal/models"
	"course-manager/internal/service"
	"github.com/labstack/echo/v4"
)

type RoomHandler struct {
	svc service.RoomService
}

func NewRoomHandler(svc service.RoomService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

func (h *RoomHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateRoom)
	g.GET("", h.ListRooms)
	g.GET("/:id", h.GetRoom)
	g.PUT("/:id", h.UpdateRoom)
	g.DELETE("/:id", h.DeleteRoom)
}

func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req dto.RoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	room := &models.Room{
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
		Info:     req.Info,
	}
	if err := h.svc.CreateRoom(c.Request().Context(), room); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToRoomResponse(room))
}

func (h *RoomHandler) ListRooms(c echo.Context) error {
	rooms, err := h.svc.ListRooms(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]dto.RoomResponse, len(rooms))
	for i := range rooms {
		resp[i] = dto.ToRoomResponse(&rooms[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	room, err := h.svc.GetRoom(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRoomResponse(room))
}

func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.RoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	room, err := h.svc.UpdateRoom(c.Request().Context(), id, &models.Room{
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
		Info:     req.Info,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRoomResponse(room))
}

func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteRoom(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
