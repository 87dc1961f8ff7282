package service

import (
	"fmt"
	"strings"
	"testing"

	"course-manager/internal/models"
	"course-manager/internal/repository"
	"course-manager/pkg/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory SQLite database so the service
// tests run the real transactions and SQL predicates.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newEventService(db *gorm.DB) EventService {
	return NewEventService(
		repository.NewEventRepository(db),
		repository.NewUserRepository(db),
		repository.NewRoomRepository(db),
		repository.NewTagRepository(db),
		nil, // no broker in tests
	)
}

func newUserService(db *gorm.DB) UserService {
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewEventRepository(db),
		nil,
	)
}

func seedUser(t *testing.T, db *gorm.DB, email string, organizer bool) *models.User {
	t.Helper()
	user := &models.User{
		Firstname:   "Jan",
		Surname:     "Kowalski",
		Age:         30,
		Email:       email,
		Password:    "secret-credential",
		IsOrganizer: organizer,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedRoom(t *testing.T, db *gorm.DB, name string) *models.Room {
	t.Helper()
	room := &models.Room{
		Name:     name,
		Location: "Building A, floor 2",
		Capacity: 40,
	}
	if err := db.Create(room).Error; err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}
	return room
}

func seedTag(t *testing.T, db *gorm.DB, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to seed tag: %v", err)
	}
	return tag
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	if err := db.Table(table).Count(&n).Error; err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
