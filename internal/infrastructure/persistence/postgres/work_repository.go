package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/mediaranker/internal/domain/entities"
	domainerrors "github.com/rafabene/mediaranker/internal/domain/errors"
	"github.com/rafabene/mediaranker/internal/domain/repositories"
	"github.com/rafabene/mediaranker/internal/domain/valueobjects"
)

// WorkRepository implementa repositories.WorkRepository
type WorkRepository struct {
	db *gorm.DB
}

// NewWorkRepository cria um novo WorkRepository
func NewWorkRepository(db *gorm.DB) repositories.WorkRepository {
	return &WorkRepository{db: db}
}

func (r *WorkRepository) Create(ctx context.Context, work *entities.Work) error {
	model := r.toModel(work)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return err
	}

	work.ID = model.ID
	work.CreatedAt = time.Unix(model.CreatedAt, 0)
	work.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	return nil
}

// FindByID retorna nil, nil quando a obra não existe ou o id não é um UUID
func (r *WorkRepository) FindByID(ctx context.Context, id string) (*entities.Work, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var model WorkModel
	if err := dbFrom(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *WorkRepository) Update(ctx context.Context, work *entities.Work) error {
	model := r.toModel(work)

	result := dbFrom(ctx, r.db).
		Model(&WorkModel{ID: model.ID}).
		Updates(map[string]interface{}{
			"title":    model.Title,
			"category": model.Category,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrWorkNotFound
	}

	work.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *WorkRepository) Delete(ctx context.Context, id string) error {
	result := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&WorkModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrWorkNotFound
	}
	return nil
}

func (r *WorkRepository) List(ctx context.Context, filters repositories.WorkFilters) ([]*entities.Work, error) {
	var models []*WorkModel

	query := dbFrom(ctx, r.db).Model(&WorkModel{})

	// Aplicar filtros
	if filters.Category != nil {
		query = query.Where("category = ?", filters.Category.String())
	}

	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	works := make([]*entities.Work, 0, len(models))
	for _, model := range models {
		works = append(works, r.toEntity(model))
	}
	return works, nil
}

func (r *WorkRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&WorkModel{}).Count(&count).Error
	return count, err
}

// Conversores
func (r *WorkRepository) toModel(work *entities.Work) *WorkModel {
	return &WorkModel{
		ID:       work.ID,
		Title:    work.Title,
		Category: work.Category.String(),
		OwnerID:  work.OwnerID,
	}
}

func (r *WorkRepository) toEntity(model *WorkModel) *entities.Work {
	return &entities.Work{
		ID:        model.ID,
		Title:     model.Title,
		Category:  valueobjects.Category(model.Category),
		OwnerID:   model.OwnerID,
		CreatedAt: time.Unix(model.CreatedAt, 0),
		UpdatedAt: time.Unix(model.UpdatedAt, 0),
	}
}
