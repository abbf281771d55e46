package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/rafabene/mediaranker/internal/domain/entities"
	"github.com/rafabene/mediaranker/internal/domain/errors"
	"github.com/rafabene/mediaranker/internal/domain/ports"
	"github.com/rafabene/mediaranker/internal/domain/repositories"
	"github.com/rafabene/mediaranker/internal/domain/valueobjects"
)

// WorkService contém a lógica de negócio para obras
type WorkService struct {
	workRepo repositories.WorkRepository
	voteRepo repositories.VoteRepository
	uow      ports.UnitOfWork
	logger   ports.Logger
}

// NewWorkService cria um novo WorkService
func NewWorkService(
	workRepo repositories.WorkRepository,
	voteRepo repositories.VoteRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *WorkService {
	return &WorkService{
		workRepo: workRepo,
		voteRepo: voteRepo,
		uow:      uow,
		logger:   logger.With("service", "works"),
	}
}

// CreateWorkInput representa os dados para criar uma obra
type CreateWorkInput struct {
	OwnerID  string
	Title    string
	Category string
}

// UpdateWorkInput representa uma alteração parcial; campos nil não mudam
type UpdateWorkInput struct {
	Title    *string
	Category *string
}

// ListWorks lista obras com contagem de votos, ordenadas por ranking.
// category vazio lista todas.
func (s *WorkService) ListWorks(ctx context.Context, category string) ([]*entities.Work, error) {
	var filters repositories.WorkFilters
	if category != "" {
		parsed, err := valueobjects.ParseCategory(category)
		if err != nil {
			return nil, errors.NewValidationError([]entities.FieldProblem{
				{Field: "category", Message: "validation.category_invalid"},
			})
		}
		filters.Category = &parsed
	}

	works, err := s.workRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list works: %w", err)
	}

	if err := s.attachVoteCounts(ctx, works); err != nil {
		return nil, err
	}

	entities.SortByRank(works)
	return works, nil
}

// Catalog lista todas as obras particionadas por categoria
func (s *WorkService) Catalog(ctx context.Context) ([]entities.CategoryShelf, error) {
	works, err := s.ListWorks(ctx, "")
	if err != nil {
		return nil, err
	}
	return entities.GroupByCategory(works), nil
}

// CreateWork valida todos os campos e só persiste se nenhum falhar
func (s *WorkService) CreateWork(ctx context.Context, input CreateWorkInput) (*entities.Work, error) {
	work := &entities.Work{
		Title:   strings.TrimSpace(input.Title),
		OwnerID: input.OwnerID,
	}
	// Categoria inválida fica vazia e é reportada por Validate
	work.Category, _ = valueobjects.ParseCategory(input.Category)

	if err := errors.NewValidationError(work.Validate()); err != nil {
		return nil, err
	}

	if err := s.workRepo.Create(ctx, work); err != nil {
		return nil, fmt.Errorf("failed to create work: %w", err)
	}

	s.logger.Info("work created",
		"work_id", work.ID,
		"owner_id", work.OwnerID,
		"category", work.Category,
	)
	return work, nil
}

// GetWork busca uma obra por ID, com contagem de votos
func (s *WorkService) GetWork(ctx context.Context, id string) (*entities.Work, error) {
	work, err := s.workRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find work: %w", err)
	}
	if work == nil {
		return nil, errors.ErrWorkNotFound
	}

	count, err := s.voteRepo.CountByWork(ctx, work.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	work.VoteCount = count

	return work, nil
}

// ShowWork retorna a obra se o ator puder vê-la
func (s *WorkService) ShowWork(ctx context.Context, actor *entities.User, id string) (*entities.Work, error) {
	if actor == nil {
		return nil, errors.ErrUnauthorized
	}

	work, err := s.GetWork(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.Can(entities.PermissionWorkRead, work) {
		return nil, errors.ErrForbidden
	}
	return work, nil
}

// AuthorizeChange retorna a obra se o ator puder alterá-la.
// ErrForbidden vem acompanhado da obra para o chamador redirecionar.
func (s *WorkService) AuthorizeChange(ctx context.Context, actor *entities.User, id string) (*entities.Work, error) {
	if actor == nil {
		return nil, errors.ErrUnauthorized
	}

	work, err := s.GetWork(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.Can(entities.PermissionWorkWrite, work) {
		return work, errors.ErrForbidden
	}
	return work, nil
}

// UpdateWork aplica a alteração se o ator for o dono
func (s *WorkService) UpdateWork(ctx context.Context, actor *entities.User, id string, input UpdateWorkInput) (*entities.Work, error) {
	work, err := s.AuthorizeChange(ctx, actor, id)
	if err != nil {
		return work, err
	}

	updated := *work
	if input.Title != nil {
		updated.Title = strings.TrimSpace(*input.Title)
	}
	if input.Category != nil {
		updated.Category, _ = valueobjects.ParseCategory(*input.Category)
	}

	if err := errors.NewValidationError(updated.Validate()); err != nil {
		return work, err
	}

	if err := s.workRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update work: %w", err)
	}

	s.logger.Info("work updated", "work_id", updated.ID, "actor_id", actor.ID)
	return &updated, nil
}

// DeleteWork exclui a obra e seus votos na mesma transação
func (s *WorkService) DeleteWork(ctx context.Context, actor *entities.User, id string) (*entities.Work, error) {
	if actor == nil {
		return nil, errors.ErrUnauthorized
	}

	work, err := s.workRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find work: %w", err)
	}
	if work == nil {
		return nil, errors.ErrWorkNotFound
	}
	if !actor.Can(entities.PermissionWorkDelete, work) {
		return work, errors.ErrForbidden
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.voteRepo.DeleteByWork(txCtx, work.ID); err != nil {
			return err
		}
		return s.workRepo.Delete(txCtx, work.ID)
	})
	if stderrors.Is(err, errors.ErrWorkNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete work: %w", err)
	}

	s.logger.Info("work deleted", "work_id", work.ID, "actor_id", actor.ID)
	return work, nil
}

func (s *WorkService) attachVoteCounts(ctx context.Context, works []*entities.Work) error {
	ids := make([]string, len(works))
	for i, w := range works {
		ids[i] = w.ID
	}

	counts, err := s.voteRepo.CountByWorks(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to count votes: %w", err)
	}

	for _, w := range works {
		w.VoteCount = counts[w.ID]
	}
	return nil
}
