package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	"github.com/yourusername/quiz-game-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
)

// CategoryInput - данные для создания категории
type CategoryInput struct {
	Name        string
	Description *string
	Color       string
	IsActive    *bool
}

// CategoryUpdate - частичное обновление категории
type CategoryUpdate struct {
	Name        *string
	Description *string
	Color       *string
	IsActive    *bool
}

// CategoryService управляет категориями вопросов
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService создает сервис категорий
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List возвращает категории по имени вместе с количеством активных вопросов
func (s *CategoryService) List(ctx context.Context, includeInactive bool) ([]entity.CategoryWithCount, error) {
	return s.categoryRepo.ListWithCounts(ctx, includeInactive)
}

// Get возвращает категорию с количеством активных вопросов
func (s *CategoryService) Get(ctx context.Context, id uint) (*entity.CategoryWithCount, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withCount(ctx, category)
}

// Create создает категорию с уникальным именем
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*entity.CategoryWithCount, error) {
	name, err := validateCategoryName(input.Name)
	if err != nil {
		return nil, err
	}
	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	if !entity.IsValidCategoryColor(color) {
		return nil, fmt.Errorf("%w: color must be in #RRGGBB format", apperrors.ErrValidation)
	}
	if err := s.ensureNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	category := &entity.Category{
		Name:        name,
		Description: input.Description,
		Color:       color,
		IsActive:    true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	log.Printf("[CategoryService] Создана категория #%d %q", category.ID, category.Name)
	return &entity.CategoryWithCount{Category: *category}, nil
}

// Update частично обновляет категорию
func (s *CategoryService) Update(ctx context.Context, id uint, update CategoryUpdate) (*entity.CategoryWithCount, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name, err := validateCategoryName(*update.Name)
		if err != nil {
			return nil, err
		}
		if name != category.Name {
			if err := s.ensureNameFree(ctx, name, category.ID); err != nil {
				return nil, err
			}
		}
		category.Name = name
	}
	if update.Description != nil {
		category.Description = update.Description
	}
	if update.Color != nil {
		if !entity.IsValidCategoryColor(*update.Color) {
			return nil, fmt.Errorf("%w: color must be in #RRGGBB format", apperrors.ErrValidation)
		}
		category.Color = *update.Color
	}
	if update.IsActive != nil {
		category.IsActive = *update.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return s.withCount(ctx, category)
}

// Delete удаляет категорию; ее вопросы остаются без категории
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[CategoryService] Категория #%d удалена", id)
	return nil
}

func (s *CategoryService) withCount(ctx context.Context, category *entity.Category) (*entity.CategoryWithCount, error) {
	count, err := s.categoryRepo.CountActiveQuestions(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	return &entity.CategoryWithCount{Category: *category, QuestionCount: count}, nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("%w: Category with this name already exists", apperrors.ErrValidation)
	}
	return nil
}

func validateCategoryName(value string) (string, error) {
	name := strings.TrimSpace(value)
	if n := utf8.RuneCountInString(name); n < 1 || n > 100 {
		return "", fmt.Errorf("%w: name must be 1-100 characters", apperrors.ErrValidation)
	}
	return name, nil
}
