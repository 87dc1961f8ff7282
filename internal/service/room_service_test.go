package service

import (
	"context"
	"testing"

	"course-manager/internal/models"
	"course-manager/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomService_CreateAndUniqueName(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(repository.NewRoomRepository(db))
	ctx := context.Background()

	room := &models.Room{Name: "A-101", Location: "Building A", Capacity: 40}
	require.NoError(t, svc.CreateRoom(ctx, room))
	assert.NotZero(t, room.ID)

	dup := &models.Room{Name: "A-101", Location: "Building B", Capacity: 20}
	assert.ErrorIs(t, svc.CreateRoom(ctx, dup), ErrRoomNameTaken)
}

func TestRoomService_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(repository.NewRoomRepository(db))

	err := svc.CreateRoom(context.Background(), &models.Room{Name: "A-101", Location: "Building A", Capacity: 0})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "capacity", vErr.Field)
}

func TestRoomService_UpdateKeepsOwnName(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(repository.NewRoomRepository(db))
	ctx := context.Background()

	room := &models.Room{Name: "A-101", Location: "Building A", Capacity: 40}
	require.NoError(t, svc.CreateRoom(ctx, room))

	// Re-saving under the same name is not a conflict.
	updated, err := svc.UpdateRoom(ctx, room.ID, &models.Room{Name: "A-101", Location: "Building C", Capacity: 50})
	require.NoError(t, err)
	assert.Equal(t, "Building C", updated.Location)
	assert.Equal(t, 50, updated.Capacity)
}

func TestRoomService_DeleteRefusedWhileBooked(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomService(repository.NewRoomRepository(db))
	events := newEventService(db)
	ctx := context.Background()

	organizer := seedUser(t, db, "organizer@uni.edu", true)
	room := seedRoom(t, db, "A-101")

	_, err := events.CreateEvent(ctx, eventInput(organizer.ID, room.ID, at(10), at(12)))
	require.NoError(t, err)

	assert.ErrorIs(t, rooms.DeleteRoom(ctx, room.ID), ErrRoomInUse)

	empty := seedRoom(t, db, "B-202")
	assert.NoError(t, rooms.DeleteRoom(ctx, empty.ID))
}
