package service

import (
	"context"
	"errors"
	"strings"

	"course-manager/internal/models"
	"course-manager/internal/repository"
	"gorm.io/gorm"
)

type RoomService interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	UpdateRoom(ctx context.Context, id uint, room *models.Room) (*models.Room, error)
	DeleteRoom(ctx context.Context, id uint) error
}

type roomService struct {
	roomRepo repository.RoomRepository
}

func NewRoomService(roomRepo repository.RoomRepository) RoomService {
	return &roomService{roomRepo: roomRepo}
}

func validateRoom(room *models.Room) error {
	if strings.TrimSpace(room.Name) == "" {
		return invalid("name", "must not be blank")
	}
	if len(room.Name) > 100 {
		return invalid("name", "must not exceed 100 characters")
	}
	if strings.TrimSpace(room.Location) == "" {
		return invalid("location", "must not be blank")
	}
	if len(room.Location) > 100 {
		return invalid("location", "must not exceed 100 characters")
	}
	if room.Capacity < 1 {
		return invalid("capacity", "must be at least 1")
	}
	return nil
}

func (s *roomService) checkNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := s.roomRepo.FindByName(ctx, name)
	if err == nil {
		if existing.ID != selfID {
			return ErrRoomNameTaken
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *roomService) CreateRoom(ctx context.Context, room *models.Room) error {
	if err := validateRoom(room); err != nil {
		return err
	}
	if err := s.checkNameFree(ctx, room.Name, 0); err != nil {
		return err
	}
	return s.roomRepo.Create(ctx, room)
}

func (s *roomService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *roomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.roomRepo.FindAll(ctx)
}

func (s *roomService) UpdateRoom(ctx context.Context, id uint, room *models.Room) (*models.Room, error) {
	existing, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = room.Name
	existing.Location = room.Location
	existing.Capacity = room.Capacity
	existing.Info = room.Info

	if err := validateRoom(existing); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, existing.Name, existing.ID); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteRoom refuses while events are scheduled in the room; events
// reference rooms, they never keep them alive the other way around.
func (s *roomService) DeleteRoom(ctx context.Context, id uint) error {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.roomRepo.CountEvents(ctx, room.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrRoomInUse
	}
	return s.roomRepo.Delete(ctx, room)
}
