package handler

import (
	"errors"
	"net/http"

	"course-manager/internal/service"
	"github.com/labstack/echo/v4"
)

// toHTTPError translates service errors into transport status codes.
// Anything unrecognized is a 500; the service never retries or swallows.
func toHTTPError(err error) *echo.HTTPError {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return echo.NewHTTPError(http.StatusBadRequest, vErr.Error())
	}

	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrOrganizerNotFound),
		errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrTagNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRoomUnavailable),
		errors.Is(err, service.ErrEventFull),
		errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrRoomNameTaken),
		errors.Is(err, service.ErrTagNameTaken),
		errors.Is(err, service.ErrRoomInUse):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := parseUintParam(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
