package handler

import (
	"net/http"

	"course-manager/internal/dto"
	"course-manager/internal/models"
	"course-manager/internal/service"
	"github.com/labstack/echo/v4"
)

type TagHandler struct {
	svc service.TagService
}

func NewTagHandler(svc service.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

func (h *TagHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateTag)
	g.GET("", h.ListTags)
	g.GET("/:id", h.GetTag)
	g.PUT("/:id", h.UpdateTag)
	g.DELETE("/:id", h.DeleteTag)
}

func (h *TagHandler) CreateTag(c echo.Context) error {
	var req dto.TagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tag := &models.Tag{Name: req.Name}
	if err := h.svc.CreateTag(c.Request().Context(), tag); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToTagResponse(tag))
}

func (h *TagHandler) ListTags(c echo.Context) error {
	tags, err := h.svc.ListTags(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]dto.TagResponse, len(tags))
	for i := range tags {
		resp[i] = dto.ToTagResponse(&tags[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TagHandler) GetTag(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	tag, err := h.svc.GetTag(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTagResponse(tag))
}

func (h *TagHandler) UpdateTag(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.TagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tag, err := h.svc.UpdateTag(c.Request().Context(), id, req.Name)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTagResponse(tag))
}

func (h *TagHandler) DeleteTag(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteTag(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
