package repositories

import (
	"context"

	"github.com/rafabene/mediaranker/internal/domain/entities"
)

// VoteRepository define a interface para persistência de votos
type VoteRepository interface {
	// Create insere o voto de forma atômica.
	// Retorna errors.ErrAlreadyVoted se o par (usuário, obra) já existir.
	Create(ctx context.Context, vote *entities.Vote) error
	CountByWork(ctx context.Context, workID string) (int64, error)
	CountByWorks(ctx context.Context, workIDs []string) (map[string]int64, error)
	ListByWork(ctx context.Context, workID string) ([]*entities.Vote, error)
	DeleteByWork(ctx context.Context, workID string) error
}
