package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/rafabene/mediaranker/internal/domain/entities"
	"github.com/rafabene/mediaranker/internal/domain/errors"
	"github.com/rafabene/mediaranker/internal/domain/ports"
	"github.com/rafabene/mediaranker/internal/domain/repositories"
)

// VoteService registra upvotes, no máximo um por (usuário, obra)
type VoteService struct {
	voteRepo repositories.VoteRepository
	workRepo repositories.WorkRepository
	userRepo repositories.UserRepository
	logger   ports.Logger
}

// NewVoteService cria um novo VoteService
func NewVoteService(
	voteRepo repositories.VoteRepository,
	workRepo repositories.WorkRepository,
	userRepo repositories.UserRepository,
	logger ports.Logger,
) *VoteService {
	return &VoteService{
		voteRepo: voteRepo,
		workRepo: workRepo,
		userRepo: userRepo,
		logger:   logger.With("service", "votes"),
	}
}

// Upvote registra o voto do ator na obra.
// A unicidade é decidida pelo banco na própria inserção.
func (s *VoteService) Upvote(ctx context.Context, actor *entities.User, workID string) (*entities.Vote, error) {
	if !actor.Can(entities.PermissionVoteCast, nil) {
		return nil, errors.ErrUnauthorized
	}

	work, err := s.workRepo.FindByID(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("failed to find work: %w", err)
	}
	if work == nil {
		return nil, errors.ErrWorkNotFound
	}

	vote := &entities.Vote{UserID: actor.ID, WorkID: work.ID}
	if err := s.voteRepo.Create(ctx, vote); err != nil {
		if stderrors.Is(err, errors.ErrAlreadyVoted) {
			s.logger.Debug("duplicate vote rejected", "work_id", work.ID, "user_id", actor.ID)
			return nil, err
		}
		return nil, fmt.Errorf("failed to cast vote: %w", err)
	}

	s.logger.Info("vote cast", "work_id", work.ID, "user_id", actor.ID)
	return vote, nil
}

// Voter é um voto com o usuário que votou
type Voter struct {
	User    *entities.User
	VotedAt time.Time
}

// Voters lista quem votou na obra, do voto mais antigo ao mais recente
func (s *VoteService) Voters(ctx context.Context, workID string) ([]Voter, error) {
	votes, err := s.voteRepo.ListByWork(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	ids := make([]string, len(votes))
	for i, v := range votes {
		ids[i] = v.UserID
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load voters: %w", err)
	}

	voters := make([]Voter, 0, len(votes))
	for _, v := range votes {
		if user, ok := users[v.UserID]; ok {
			voters = append(voters, Voter{User: user, VotedAt: v.CreatedAt})
		}
	}
	return voters, nil
}
