package repository

import (
	"context"
	"time"

	"course-manager/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventSearchFilter holds the optional search predicates; a nil pointer
// means "no constraint".
type EventSearchFilter struct {
	OrganizerID *uint
	RoomID      *uint
	TagID       *uint
	ExcludeFull bool
}

type EventRepository interface {
	Create(ctx context.Context, tx *gorm.DB, event *models.Event, tags []models.Tag) error
	Update(ctx context.Context, tx *gorm.DB, event *models.Event, tags []models.Tag) error
	Delete(ctx context.Context, tx *gorm.DB, event *models.Event) error
	DeleteByOrganizerID(ctx context.Context, tx *gorm.DB, organizerID uint) (int64, error)
	RemoveParticipantLinks(ctx context.Context, tx *gorm.DB, userID uint) error

	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	FindAll(ctx context.Context) ([]models.Event, error)
	FindOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, start, end time.Time) ([]models.Event, error)
	FindByOrganizerID(ctx context.Context, organizerID uint) ([]models.Event, error)
	FindByParticipantID(ctx context.Context, userID uint) ([]models.Event, error)
	FindPastByParticipantID(ctx context.Context, userID uint, now time.Time) ([]models.Event, error)
	FindFutureByParticipantID(ctx context.Context, userID uint, now time.Time) ([]models.Event, error)
	Search(ctx context.Context, filter EventSearchFilter, now time.Time) ([]models.Event, error)

	CountParticipants(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error)
	IsParticipant(ctx context.Context, tx *gorm.DB, eventID, userID uint) (bool, error)
	AddParticipant(ctx context.Context, tx *gorm.DB, event *models.Event, user *models.User) error

	GetDB() *gorm.DB
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *eventRepository) Create(ctx context.Context, tx *gorm.DB, event *models.Event, tags []models.Tag) error {
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(event).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Model(event).Association("Tags").Replace(&tags)
}

// Update replaces all scalar columns and the tag set; partial updates are
// not supported by the scheduling contract.
func (r *eventRepository) Update(ctx context.Context, tx *gorm.DB, event *models.Event, tags []models.Tag) error {
	err := tx.WithContext(ctx).Model(event).
		Select("name", "start_datetime", "end_datetime", "max_participants", "min_age", "info", "organizer_id", "room_id").
		Updates(event).Error
	if err != nil {
		return err
	}
	return tx.WithContext(ctx).Model(event).Association("Tags").Replace(&tags)
}

func (r *eventRepository) Delete(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	// Select(clause.Associations) clears the join rows alongside the row.
	return tx.WithContext(ctx).Select(clause.Associations).Delete(event).Error
}

// DeleteByOrganizerID removes every event organized by the given user,
// including participant and tag join rows. Returns the number of events
// deleted.
func (r *eventRepository) DeleteByOrganizerID(ctx context.Context, tx *gorm.DB, organizerID uint) (int64, error) {
	var ids []uint
	err := tx.WithContext(ctx).Model(&models.Event{}).
		Where("organizer_id = ?", organizerID).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := tx.WithContext(ctx).Exec("DELETE FROM event_participants WHERE event_id IN ?", ids).Error; err != nil {
		return 0, err
	}
	if err := tx.WithContext(ctx).Exec("DELETE FROM event_tags WHERE event_id IN ?", ids).Error; err != nil {
		return 0, err
	}
	res := tx.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Event{})
	return res.RowsAffected, res.Error
}

func (r *eventRepository) RemoveParticipantLinks(ctx context.Context, tx *gorm.DB, userID uint) error {
	return tx.WithContext(ctx).Exec("DELETE FROM event_participants WHERE user_id = ?", userID).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Organizer").Preload("Room").Preload("Tags").Preload("Participants").
		First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate locks the event row within the given transaction so
// concurrent enrollments on the same event serialize.
func (r *eventRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	var event models.Event
	if err := lockForUpdate(tx.WithContext(ctx)).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Preload("Organizer").Preload("Room").Preload("Tags").
		Order("id ASC").
		Find(&events).Error
	return events, err
}

// FindOverlapping returns the events in the room whose [start, end) window
// intersects the given one. Half-open semantics: back-to-back bookings do
// not overlap.
func (r *eventRepository) FindOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, start, end time.Time) ([]models.Event, error) {
	var events []models.Event
	err := tx.WithContext(ctx).
		Where("room_id = ? AND start_datetime < ? AND end_datetime > ?", roomID, end, start).
		Find(&events).Error
	return events, err
}

func (r *eventRepository) FindByOrganizerID(ctx context.Context, organizerID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Preload("Organizer").Preload("Room").Preload("Tags").
		Order("id ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) FindByParticipantID(ctx context.Context, userID uint) ([]models.Event, error) {
	return r.findForParticipant(ctx, userID, "")
}

func (r *eventRepository) FindPastByParticipantID(ctx context.Context, userID uint, now time.Time) ([]models.Event, error) {
	return r.findForParticipant(ctx, userID, "events.end_datetime < ?", now)
}

func (r *eventRepository) FindFutureByParticipantID(ctx context.Context, userID uint, now time.Time) ([]models.Event, error) {
	return r.findForParticipant(ctx, userID, "events.start_datetime > ?", now)
}

func (r *eventRepository) findForParticipant(ctx context.Context, userID uint, cond string, args ...interface{}) ([]models.Event, error) {
	var events []models.Event
	q := r.db.WithContext(ctx).
		Joins("JOIN event_participants ep ON ep.event_id = events.id").
		Where("ep.user_id = ?", userID)
	if cond != "" {
		q = q.Where(cond, args...)
	}
	err := q.Preload("Organizer").Preload("Room").Preload("Tags").
		Order("events.id ASC").
		Find(&events).Error
	return events, err
}

// Search applies the optional predicates on top of the always-on
// future-only rule: only events with start >= now match.
func (r *eventRepository) Search(ctx context.Context, filter EventSearchFilter, now time.Time) ([]models.Event, error) {
	q := r.db.WithContext(ctx).Model(&models.Event{}).
		Where("start_datetime >= ?", now)

	if filter.OrganizerID != nil {
		q = q.Where("organizer_id = ?", *filter.OrganizerID)
	}
	if filter.RoomID != nil {
		q = q.Where("room_id = ?", *filter.RoomID)
	}
	if filter.TagID != nil {
		q = q.Where("EXISTS (SELECT 1 FROM event_tags et WHERE et.event_id = events.id AND et.tag_id = ?)", *filter.TagID)
	}
	if filter.ExcludeFull {
		q = q.Where("(SELECT COUNT(*) FROM event_participants ep WHERE ep.event_id = events.id) < max_participants")
	}

	var events []models.Event
	err := q.Preload("Organizer").Preload("Room").Preload("Tags").
		Order("id ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) CountParticipants(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Table("event_participants").
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *eventRepository) IsParticipant(ctx context.Context, tx *gorm.DB, eventID, userID uint) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Table("event_participants").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *eventRepository) AddParticipant(ctx context.Context, tx *gorm.DB, event *models.Event, user *models.User) error {
	return tx.WithContext(ctx).Model(event).Association("Participants").Append(user)
}
