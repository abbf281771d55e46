package repositories

import (
	"context"

	"github.com/rafabene/mediaranker/internal/domain/entities"
	"github.com/rafabene/mediaranker/internal/domain/valueobjects"
)

// WorkRepository define a interface para persistência de obras
type WorkRepository interface {
	Create(ctx context.Context, work *entities.Work) error
	FindByID(ctx context.Context, id string) (*entities.Work, error)
	Update(ctx context.Context, work *entities.Work) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters WorkFilters) ([]*entities.Work, error)
	Count(ctx context.Context) (int64, error)
}

// WorkFilters contém filtros para listagem de obras
type WorkFilters struct {
	Category *valueobjects.Category
}
