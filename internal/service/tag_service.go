package service

import (
	"context"
	"errors"
	"strings"

	"course-manager/internal/models"
	"course-manager/internal/repository"
	"gorm.io/gorm"
)

type TagService interface {
	CreateTag(ctx context.Context, tag *models.Tag) error
	GetTag(ctx context.Context, id uint) (*models.Tag, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	UpdateTag(ctx context.Context, id uint, name string) (*models.Tag, error)
	DeleteTag(ctx context.Context, id uint) error
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func validateTagName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name", "must not be blank")
	}
	if len(name) > 50 {
		return invalid("name", "must not exceed 50 characters")
	}
	return nil
}

func (s *tagService) checkNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := s.tagRepo.FindByName(ctx, name)
	if err == nil {
		if existing.ID != selfID {
			return ErrTagNameTaken
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *tagService) CreateTag(ctx context.Context, tag *models.Tag) error {
	if err := validateTagName(tag.Name); err != nil {
		return err
	}
	if err := s.checkNameFree(ctx, tag.Name, 0); err != nil {
		return err
	}
	return s.tagRepo.Create(ctx, tag)
}

func (s *tagService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.FindAll(ctx)
}

func (s *tagService) UpdateTag(ctx context.Context, id uint, name string) (*models.Tag, error) {
	tag, err := s.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateTagName(name); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, name, tag.ID); err != nil {
		return nil, err
	}

	tag.Name = name
	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, id uint) error {
	tag, err := s.GetTag(ctx, id)
	if err != nil {
		return err
	}
	return s.tagRepo.Delete(ctx, tag)
}
