package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"course-manager/internal/models"
	"course-manager/internal/repository"
	"course-manager/monitoring"
	"course-manager/pkg/rabbitmq"
	"gorm.io/gorm"
)

// EventInput carries the full field set of an event; updates replace every
// field, they never merge.
type EventInput struct {
	Name            string
	StartDatetime   time.Time
	EndDatetime     time.Time
	MaxParticipants int
	MinAge          int
	Info            string
	OrganizerID     uint
	RoomID          uint
	TagIDs          []uint
}

type EventService interface {
	CreateEvent(ctx context.Context, input EventInput) (*models.Event, error)
	UpdateEvent(ctx context.Context, eventID uint, input EventInput) error
	DeleteEvent(ctx context.Context, eventID uint) error
	GetEvent(ctx context.Context, eventID uint) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListByOrganizer(ctx context.Context, organizerID uint) ([]models.Event, error)
	ListForParticipant(ctx context.Context, userID uint) ([]models.Event, error)
	ListPastForParticipant(ctx context.Context, userID uint) ([]models.Event, error)
	ListFutureForParticipant(ctx context.Context, userID uint) ([]models.Event, error)
	Search(ctx context.Context, filter repository.EventSearchFilter) ([]models.Event, error)
	Enroll(ctx context.Context, eventID, userID uint) (*models.Event, error)
}

type eventService struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	roomRepo  repository.RoomRepository
	tagRepo   repository.TagRepository
	publisher *rabbitmq.Publisher
}

func NewEventService(
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	roomRepo repository.RoomRepository,
	tagRepo repository.TagRepository,
	publisher *rabbitmq.Publisher,
) EventService {
	return &eventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		roomRepo:  roomRepo,
		tagRepo:   tagRepo,
		publisher: publisher,
	}
}

func validateEventInput(input EventInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return invalid("name", "must not be blank")
	}
	if len(input.Name) > 100 {
		return invalid("name", "must not exceed 100 characters")
	}
	if input.StartDatetime.IsZero() {
		return invalid("start_datetime", "is required")
	}
	if input.EndDatetime.IsZero() {
		return invalid("end_datetime", "is required")
	}
	if !input.StartDatetime.Before(input.EndDatetime) {
		return invalid("end_datetime", "must be after start_datetime")
	}
	if input.MaxParticipants < 1 {
		return invalid("max_participants", "must be at least 1")
	}
	if input.MinAge < 0 {
		return invalid("min_age", "must not be negative")
	}
	return nil
}

// schedule runs the resolve-check-commit sequence shared by create and
// update. The room row is locked before the overlap query so concurrent
// bookings of the same room serialize. excludeID is the event's own id on
// update, zero on create.
func (s *eventService) schedule(ctx context.Context, tx *gorm.DB, input EventInput, excludeID uint) (*models.Event, []models.Tag, error) {
	organizer, err := s.userRepo.FindByID(ctx, input.OrganizerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrganizerNotFound
		}
		return nil, nil, err
	}

	room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, input.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRoomNotFound
		}
		return nil, nil, err
	}

	// All-or-nothing: a single missing tag id rejects the whole set.
	tags, err := s.tagRepo.FindAllByIDs(ctx, tx, input.TagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(uniqueIDs(input.TagIDs)) {
		return nil, nil, ErrTagNotFound
	}

	available, err := s.isRoomAvailable(ctx, tx, room.ID, input.StartDatetime, input.EndDatetime, excludeID)
	if err != nil {
		return nil, nil, err
	}
	if !available {
		monitoring.RecordRoomConflict()
		return nil, nil, ErrRoomUnavailable
	}

	event := &models.Event{
		Name:            input.Name,
		StartDatetime:   input.StartDatetime,
		EndDatetime:     input.EndDatetime,
		MaxParticipants: input.MaxParticipants,
		MinAge:          input.MinAge,
		Info:            input.Info,
		OrganizerID:     organizer.ID,
		RoomID:          room.ID,
	}
	return event, tags, nil
}

// isRoomAvailable reports whether the room is free in [start, end).
// An overlapping event carrying excludeID is not a conflict, which lets an
// update re-save its own window.
func (s *eventService) isRoomAvailable(ctx context.Context, tx *gorm.DB, roomID uint, start, end time.Time, excludeID uint) (bool, error) {
	overlapping, err := s.eventRepo.FindOverlapping(ctx, tx, roomID, start, end)
	if err != nil {
		return false, err
	}
	for _, e := range overlapping {
		if excludeID == 0 || e.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

func (s *eventService) CreateEvent(ctx context.Context, input EventInput) (*models.Event, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	var created *models.Event
	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, tags, err := s.schedule(ctx, tx, input, 0)
		if err != nil {
			return err
		}
		if err := s.eventRepo.Create(ctx, tx, event, tags); err != nil {
			return err
		}
		created = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordEventCreated()
	if s.publisher != nil {
		_ = s.publisher.Publish("event.created", created)
	}
	return s.eventRepo.FindByID(ctx, created.ID)
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID uint, input EventInput) error {
	if err := validateEventInput(input); err != nil {
		return err
	}

	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		event, tags, err := s.schedule(ctx, tx, input, existing.ID)
		if err != nil {
			return err
		}
		event.ID = existing.ID
		return s.eventRepo.Update(ctx, tx, event, tags)
	})
	if err != nil {
		return err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.updated", map[string]uint{"id": eventID})
	}
	return nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID uint) error {
	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		return s.eventRepo.Delete(ctx, tx, event)
	})
	if err != nil {
		return err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.deleted", map[string]uint{"id": eventID})
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.eventRepo.FindAll(ctx)
}

func (s *eventService) ListByOrganizer(ctx context.Context, organizerID uint) ([]models.Event, error) {
	return s.eventRepo.FindByOrganizerID(ctx, organizerID)
}

func (s *eventService) ListForParticipant(ctx context.Context, userID uint) ([]models.Event, error) {
	return s.eventRepo.FindByParticipantID(ctx, userID)
}

// ListPastForParticipant returns events the user participates in that have
// already ended. An event currently in progress shows up in neither the
// past nor the future list.
func (s *eventService) ListPastForParticipant(ctx context.Context, userID uint) ([]models.Event, error) {
	return s.eventRepo.FindPastByParticipantID(ctx, userID, time.Now())
}

func (s *eventService) ListFutureForParticipant(ctx context.Context, userID uint) ([]models.Event, error) {
	return s.eventRepo.FindFutureByParticipantID(ctx, userID, time.Now())
}

func (s *eventService) Search(ctx context.Context, filter repository.EventSearchFilter) ([]models.Event, error) {
	return s.eventRepo.Search(ctx, filter, time.Now())
}

// Enroll adds the user to the event's participant set under the capacity
// constraint. The event row stays locked from the count through the write,
// so the (max+1)th concurrent attempt fails with ErrEventFull.
func (s *eventService) Enroll(ctx context.Context, eventID, userID uint) (*models.Event, error) {
	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		enrolled, err := s.eventRepo.IsParticipant(ctx, tx, event.ID, user.ID)
		if err != nil {
			return err
		}
		if enrolled {
			monitoring.RecordEnrollment("duplicate")
			return ErrAlreadyEnrolled
		}

		count, err := s.eventRepo.CountParticipants(ctx, tx, event.ID)
		if err != nil {
			return err
		}
		if count >= int64(event.MaxParticipants) {
			monitoring.RecordEnrollment("full")
			return ErrEventFull
		}

		return s.eventRepo.AddParticipant(ctx, tx, event, user)
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordEnrollment("accepted")
	if s.publisher != nil {
		_ = s.publisher.Publish("event.enrolled", map[string]uint{"event_id": eventID, "user_id": userID})
	}
	return s.eventRepo.FindByID(ctx, eventID)
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
