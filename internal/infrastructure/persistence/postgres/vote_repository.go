package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/mediaranker/internal/domain/entities"
	domainerrors "github.com/rafabene/mediaranker/internal/domain/errors"
	"github.com/rafabene/mediaranker/internal/domain/repositories"
)

// VoteRepository implementa repositories.VoteRepository
type VoteRepository struct {
	db *gorm.DB
}

// NewVoteRepository cria um novo VoteRepository
func NewVoteRepository(db *gorm.DB) repositories.VoteRepository {
	return &VoteRepository{db: db}
}

// Create insere com ON CONFLICT DO NOTHING no índice (user_id, work_id).
// Nenhuma linha afetada significa voto duplicado; não existe leitura prévia.
func (r *VoteRepository) Create(ctx context.Context, vote *entities.Vote) error {
	model := &VoteModel{
		ID:     vote.ID,
		UserID: vote.UserID,
		WorkID: vote.WorkID,
	}
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	result := dbFrom(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)
	if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
		// obra excluída entre a busca e o insert
		return domainerrors.ErrWorkNotFound
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAlreadyVoted
	}

	vote.ID = model.ID
	vote.CreatedAt = time.Unix(model.CreatedAt, 0)
	return nil
}

func (r *VoteRepository) CountByWork(ctx context.Context, workID string) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&VoteModel{}).Where("work_id = ?", workID).Count(&count).Error
	return count, err
}

func (r *VoteRepository) CountByWorks(ctx context.Context, workIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(workIDs))
	if len(workIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		WorkID string
		Total  int64
	}
	err := dbFrom(ctx, r.db).
		Model(&VoteModel{}).
		Select("work_id, COUNT(*) AS total").
		Where("work_id IN ?", workIDs).
		Group("work_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.WorkID] = row.Total
	}
	return counts, nil
}

func (r *VoteRepository) ListByWork(ctx context.Context, workID string) ([]*entities.Vote, error) {
	var models []*VoteModel
	err := dbFrom(ctx, r.db).
		Where("work_id = ?", workID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	votes := make([]*entities.Vote, 0, len(models))
	for _, model := range models {
		votes = append(votes, &entities.Vote{
			ID:        model.ID,
			UserID:    model.UserID,
			WorkID:    model.WorkID,
			CreatedAt: time.Unix(model.CreatedAt, 0),
		})
	}
	return votes, nil
}

func (r *VoteRepository) DeleteByWork(ctx context.Context, workID string) error {
	return dbFrom(ctx, r.db).Where("work_id = ?", workID).Delete(&VoteModel{}).Error
}
