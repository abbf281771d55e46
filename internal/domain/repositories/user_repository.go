package repositories

import (
	"context"

	"github.com/rafabene/mediaranker/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários
type UserRepository interface {
	// CreateIfAbsent insere o usuário se (provider, uid) ainda não existir.
	// Retorna false quando outro registro já ocupava a identidade.
	CreateIfAbsent(ctx context.Context, user *entities.User) (bool, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByIdentity(ctx context.Context, provider, uid string) (*entities.User, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
}
