package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/rafabene/mediaranker/internal/domain/entities"
	"github.com/rafabene/mediaranker/internal/domain/errors"
	"github.com/rafabene/mediaranker/internal/domain/ports"
	"github.com/rafabene/mediaranker/internal/domain/repositories"
)

// IdentityService mapeia identidades OAuth para usuários locais
type IdentityService struct {
	userRepo repositories.UserRepository
	validate *validator.Validate
	logger   ports.Logger
}

// NewIdentityService cria um novo IdentityService
func NewIdentityService(
	userRepo repositories.UserRepository,
	logger ports.Logger,
) *IdentityService {
	return &IdentityService{
		userRepo: userRepo,
		validate: validator.New(),
		logger:   logger.With("service", "identity"),
	}
}

// Resolve encontra ou cria o usuário da identidade.
// O bool indica se o usuário foi criado agora.
func (s *IdentityService) Resolve(ctx context.Context, claim entities.IdentityClaim) (*entities.User, bool, error) {
	if err := s.validate.Struct(claim); err != nil {
		s.logger.Warn("rejected identity claim", "provider", claim.Provider, "error", err)
		return nil, false, errors.ErrInvalidClaim
	}

	existing, err := s.userRepo.FindByIdentity(ctx, claim.Provider, claim.UID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to find user by identity: %w", err)
	}
	if existing != nil {
		if existing.RefreshDisplay(claim) {
			if err := s.userRepo.Update(ctx, existing); err != nil {
				return nil, false, fmt.Errorf("failed to refresh user: %w", err)
			}
		}
		return existing, false, nil
	}

	user := entities.NewUserFromClaim(claim)
	created, err := s.userRepo.CreateIfAbsent(ctx, user)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	if !created {
		// Outro login da mesma identidade venceu a corrida
		user, err = s.userRepo.FindByIdentity(ctx, claim.Provider, claim.UID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to reload user: %w", err)
		}
		if user == nil {
			return nil, false, errors.ErrUserNotFound
		}
		return user, false, nil
	}

	s.logger.Info("user created", "user_id", user.ID, "provider", user.Provider)
	return user, true, nil
}

// GetUser busca um usuário por ID
func (s *IdentityService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}
