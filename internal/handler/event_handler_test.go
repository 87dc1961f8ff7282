package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"course-manager/internal/dto"
	"course-manager/internal/models"
	"course-manager/internal/repository"
	"course-manager/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock EventService ---

type mockEventService struct {
	createFn func(ctx context.Context, input service.EventInput) (*models.Event, error)
	updateFn func(ctx context.Context, eventID uint, input service.EventInput) error
	deleteFn func(ctx context.Context, eventID uint) error
	getFn    func(ctx context.Context, eventID uint) (*models.Event, error)
	searchFn func(ctx context.Context, filter repository.EventSearchFilter) ([]models.Event, error)
	enrollFn func(ctx context.Context, eventID, userID uint) (*models.Event, error)
}

func (m *mockEventService) CreateEvent(ctx context.Context, input service.EventInput) (*models.Event, error) {
	return m.createFn(ctx, input)
}
func (m *mockEventService) UpdateEvent(ctx context.Context, eventID uint, input service.EventInput) error {
	return m.updateFn(ctx, eventID, input)
}
func (m *mockEventService) DeleteEvent(ctx context.Context, eventID uint) error {
	return m.deleteFn(ctx, eventID)
}
func (m *mockEventService) GetEvent(ctx context.Context, eventID uint) (*models.Event, error) {
	return m.getFn(ctx, eventID)
}
func (m *mockEventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return nil, nil
}
func (m *mockEventService) ListByOrganizer(ctx context.Context, organizerID uint) ([]models.Event, error) {
	return nil, nil
}
func (m *mockEventService) ListForParticipant(ctx context.Context, userID uint) ([]models.Event, error) {
	return nil, nil
}
func (m *mockEventService) ListPastForParticipant(ctx context.Context, userID uint) ([]models.Event, error) {
	return nil, nil
}
func (m *mockEventService) ListFutureForParticipant(ctx context.Context, userID uint) ([]models.Event, error) {
	return nil, nil
}
func (m *mockEventService) Search(ctx context.Context, filter repository.EventSearchFilter) ([]models.Event, error) {
	return m.searchFn(ctx, filter)
}
func (m *mockEventService) Enroll(ctx context.Context, eventID, userID uint) (*models.Event, error) {
	return m.enrollFn(ctx, eventID, userID)
}

// --- Helpers ---

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

func sampleEvent() *models.Event {
	return &models.Event{
		ID:              1,
		Name:            "Golang Workshop",
		StartDatetime:   time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC),
		EndDatetime:     time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC),
		MaxParticipants: 25,
		MinAge:          18,
		OrganizerID:     7,
		RoomID:          3,
		Organizer:       &models.User{ID: 7, Firstname: "Jan", Surname: "Kowalski"},
		Room:            &models.Room{ID: 3, Name: "A-101"},
		Tags:            []models.Tag{{ID: 9, Name: "golang"}, {ID: 2, Name: "workshop"}},
	}
}

const validEventBody = `{
	"name": "Golang Workshop",
	"start_datetime": "2026-05-20T10:00:00Z",
	"end_datetime": "2026-05-20T12:00:00Z",
	"max_participants": 25,
	"min_age": 18,
	"organizer_id": 7,
	"room_id": 3,
	"tag_ids": [9, 2]
}`

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestCreateEvent_Created(t *testing.T) {
	svc := &mockEventService{
		createFn: func(ctx context.Context, input service.EventInput) (*models.Event, error) {
			assert.Equal(t, "Golang Workshop", input.Name)
			assert.Equal(t, []uint{9, 2}, input.TagIDs)
			return sampleEvent(), nil
		},
	}
	e := newEcho()
	NewEventHandler(svc).RegisterRoutes(e.Group("/api/v1/events"))

	rec := doRequest(e, http.MethodPost, "/api/v1/events", validEventBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp dto.EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "Jan Kowalski", resp.OrganizerName)
	assert.Equal(t, "A-101", resp.RoomName)
	// Projection tag ids come back sorted.
	assert.Equal(t, []uint{2, 9}, resp.TagIDs)
}

func TestCreateEvent_RoomConflict(t *testing.T) {
	svc := &mockEventService{
		createFn: func(ctx context.Context, input service.EventInput) (*models.Event, error) {
			return nil, service.ErrRoomUnavailable
		},
	}
	e := newEcho()
	NewEventHandler(svc).RegisterRoutes(e.Group("/api/v1/events"))

	rec := doRequest(e, http.MethodPost, "/api/v1/events", validEventBody)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateEvent_MissingOrganizer(t *testing.T) {
	svc := &mockEventService{
		createFn: func(ctx context.Context, input service.EventInput) (*models.Event, error) {
			return nil, service.ErrOrganizerNotFound
		},
	}
	e := newEcho()
	NewEventHandler(svc).RegisterRoutes(e.Group("/api/v1/events"))

	rec := doRequest(e, http.MethodPost, "/api/v1/events", validEventBody)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateEvent_InvalidBody(t *testing.T) {
	e := newEcho()
	NewEventHandler(&mockEventService{}).RegisterRoutes(e.Group("/api/v1/events"))

	// end before start trips the gtfield rule before the service is called
	body := `{
		"name": "Golang Workshop",
		"start_datetime": "2026-05-20T12:00:00Z",
		"end_datetime": "2026-05-20T10:00:00Z",
		"max_participants": 25,
		"organizer_id": 7,
		"room_id": 3
	}`
	rec := doRequest(e, http.MethodPost, "/api/v1/events", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateEvent_NoContent(t *testing.T) {
	svc := &mockEventService{
		updateFn: func(ctx context.Context, eventID uint, input service.EventInput) error {
			assert.Equal(t, uint(5), eventID)
			return nil
		},
	}
	e := newEcho()
	NewEventHandler(svc).RegisterRoutes(e.Group("/api/v1/events"))

	rec := doRequest(e, http.MethodPut, "/api/v1/events/5", validEventBody)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteEvent_NotFound(t *testing.T) {
	svc := &mockEventService{
		deleteFn: func(ctx context.Context, eventID uint) error {
			return service.ErrEventNotFound
		},
	}
	e := newEcho()
	NewEventHandler(svc).RegisterRoutes(e.Group("/api/v1/events"))

	rec := doRequest(e, http.MethodDelete, "/api/v1/events/42", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetEvent_InvalidID(t *testing.T) {
	e := newEcho()
	NewEventHandler(&mockEventService{}).RegisterRoutes(e.Group("/api/v1/events"))

	rec := doRequest(e, http.MethodGet, "/api/v1/events/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEvents_ParsesFilter(t *testing.T) {
	var got repository.EventSearchFilter
	svc := &mockEventService{
		searchFn: func(ctx context.Context, filter repository.EventSearchFilter) ([]models.Event, error) {
			got = filter
			return []models.Event{*sampleEvent()}, nil
		},
	}
	e := newEcho()
	NewEventHandler(svc).RegisterRoutes(e.Group("/api/v1/events"))

	rec := doRequest(e, http.MethodGet, "/api/v1/events/search?organizer_id=7&tag_id=9&exclude_full=true", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.OrganizerID)
	assert.Equal(t, uint(7), *got.OrganizerID)
	assert.Nil(t, got.RoomID)
	require.NotNil(t, got.TagID)
	assert.Equal(t, uint(9), *got.TagID)
	assert.True(t, got.ExcludeFull)

	var resp []dto.EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
}

func TestSearchEvents_BadQueryParam(t *testing.T) {
	e := newEcho()
	NewEventHandler(&mockEventService{}).RegisterRoutes(e.Group("/api/v1/events"))

	rec := doRequest(e, http.MethodGet, "/api/v1/events/search?room_id=abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnroll_Full(t *testing.T) {
	svc := &mockEventService{
		enrollFn: func(ctx context.Context, eventID, userID uint) (*models.Event, error) {
			return nil, service.ErrEventFull
		},
	}
	e := newEcho()
	NewEventHandler(svc).RegisterRoutes(e.Group("/api/v1/events"))

	rec := doRequest(e, http.MethodPost, "/api/v1/events/1/enroll", `{"user_id": 4}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEnroll_OK(t *testing.T) {
	svc := &mockEventService{
		enrollFn: func(ctx context.Context, eventID, userID uint) (*models.Event, error) {
			assert.Equal(t, uint(1), eventID)
			assert.Equal(t, uint(4), userID)
			return sampleEvent(), nil
		},
	}
	e := newEcho()
	NewEventHandler(svc).RegisterRoutes(e.Group("/api/v1/events"))

	rec := doRequest(e, http.MethodPost, "/api/v1/events/1/enroll", `{"user_id": 4}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEnroll_ValidationError(t *testing.T) {
	e := newEcho()
	NewEventHandler(&mockEventService{}).RegisterRoutes(e.Group("/api/v1/events"))

	rec := doRequest(e, http.MethodPost, "/api/v1/events/1/enroll", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToHTTPError_Validation(t *testing.T) {
	err := toHTTPError(&service.ValidationError{Field: "name", Reason: "must not be blank"})
	assert.Equal(t, http.StatusBadRequest, err.Code)
}
