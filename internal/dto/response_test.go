package dto

import (
	"testing"
	"time"

	"course-manager/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestToEventResponse_Projection(t *testing.T) {
	event := &models.Event{
		ID:              4,
		Name:            "Compilers",
		StartDatetime:   time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
		EndDatetime:     time.Date(2026, 4, 1, 11, 0, 0, 0, time.UTC),
		MaxParticipants: 30,
		MinAge:          18,
		OrganizerID:     2,
		RoomID:          8,
		Organizer:       &models.User{ID: 2, Firstname: "Maria", Surname: "Nowak"},
		Room:            &models.Room{ID: 8, Name: "B-202"},
		Tags:            []models.Tag{{ID: 7}, {ID: 3}, {ID: 5}},
	}

	resp := ToEventResponse(event)

	assert.Equal(t, uint(4), resp.ID)
	assert.Equal(t, "Maria Nowak", resp.OrganizerName)
	assert.Equal(t, "B-202", resp.RoomName)
	assert.Equal(t, []uint{3, 5, 7}, resp.TagIDs, "tag ids are sorted ascending")
}

func TestToEventResponse_WithoutPreloads(t *testing.T) {
	resp := ToEventResponse(&models.Event{ID: 1, OrganizerID: 2, RoomID: 3})

	assert.Empty(t, resp.OrganizerName)
	assert.Empty(t, resp.RoomName)
	assert.NotNil(t, resp.TagIDs)
	assert.Empty(t, resp.TagIDs)
}
