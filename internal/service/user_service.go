package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"course-manager/internal/models"
	"course-manager/internal/repository"
	"course-manager/pkg/rabbitmq"
	"gorm.io/gorm"
)

// UserUpdateInput merges per-field: nil pointers leave the stored value
// untouched. Event updates work the opposite way, see EventInput.
type UserUpdateInput struct {
	Firstname   *string
	Surname     *string
	Age         *int
	Email       *string
	Password    *string
	IsOrganizer *bool
}

type UserService interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id uint, input UserUpdateInput) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	userRepo  repository.UserRepository
	eventRepo repository.EventRepository
	publisher *rabbitmq.Publisher
}

func NewUserService(userRepo repository.UserRepository, eventRepo repository.EventRepository, publisher *rabbitmq.Publisher) UserService {
	return &userService{userRepo: userRepo, eventRepo: eventRepo, publisher: publisher}
}

func validateUser(user *models.User) error {
	if strings.TrimSpace(user.Firstname) == "" {
		return invalid("firstname", "must not be blank")
	}
	if len(user.Firstname) > 50 {
		return invalid("firstname", "must not exceed 50 characters")
	}
	if strings.TrimSpace(user.Surname) == "" {
		return invalid("surname", "must not be blank")
	}
	if len(user.Surname) > 50 {
		return invalid("surname", "must not exceed 50 characters")
	}
	if user.Age < 0 {
		return invalid("age", "must not be negative")
	}
	if strings.TrimSpace(user.Email) == "" {
		return invalid("email", "must not be blank")
	}
	if len(user.Email) > 100 {
		return invalid("email", "must not exceed 100 characters")
	}
	if user.Password == "" {
		return invalid("password", "must not be blank")
	}
	return nil
}

func (s *userService) CreateUser(ctx context.Context, user *models.User) error {
	if err := validateUser(user); err != nil {
		return err
	}

	_, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.userRepo.Create(ctx, user)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, id uint, input UserUpdateInput) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Firstname != nil {
		user.Firstname = *input.Firstname
	}
	if input.Surname != nil {
		user.Surname = *input.Surname
	}
	if input.Age != nil {
		user.Age = *input.Age
	}
	if input.Email != nil && *input.Email != user.Email {
		_, err := s.userRepo.FindByEmail(ctx, *input.Email)
		if err == nil {
			return nil, ErrEmailTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		user.Password = *input.Password
	}
	if input.IsOrganizer != nil {
		user.IsOrganizer = *input.IsOrganizer
	}

	if err := validateUser(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user, every event it organizes (with their
// participant and tag links), and its own participation links, in one
// transaction. The cascade is an explicit step here, not ORM behavior.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	var removed int64
	err = s.userRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed, err = s.eventRepo.DeleteByOrganizerID(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		if err := s.eventRepo.RemoveParticipantLinks(ctx, tx, user.ID); err != nil {
			return err
		}
		return s.userRepo.Delete(ctx, tx, user)
	})
	if err != nil {
		return err
	}

	if removed > 0 {
		log.Printf("[UserService] deleted user %d and %d organized event(s)", id, removed)
	}
	if s.publisher != nil {
		_ = s.publisher.Publish("user.deleted", map[string]uint{"id": id})
	}
	return nil
}
