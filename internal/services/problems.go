package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abdos10/think-like-genius/internal/data/store"
	"github.com/abdos10/think-like-genius/internal/domain"
	pkgerrors "github.com/abdos10/think-like-genius/internal/pkg/errors"
	"github.com/abdos10/think-like-genius/internal/platform/apierr"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
	"github.com/abdos10/think-like-genius/internal/services/thinking"
)

type CreateProblemInput struct {
	UserID      int    `json:"userId"`
	ProblemType string `json:"problemType"`
	Description string `json:"description"`
}

type ProblemService interface {
	Create(ctx context.Context, in CreateProblemInput) (*domain.UserProblem, error)
	// List returns the demo user's problems, newest first.
	List(ctx context.Context) ([]domain.UserProblem, error)
	Get(ctx context.Context, id int) (*domain.UserProblem, error)
	// GenerateThinkingProcess asks the coach for steps and stores them on the problem.
	GenerateThinkingProcess(ctx context.Context, id int) (*domain.UserProblem, error)
}

type problemService struct {
	log   *logger.Logger
	store store.Store
	coach thinking.Coach
}

func NewProblemService(log *logger.Logger, st store.Store, coach thinking.Coach) ProblemService {
	return &problemService{
		log:   log.With("service", "ProblemService"),
		store: st,
		coach: coach,
	}
}

func (ps *problemService) Create(ctx context.Context, in CreateProblemInput) (*domain.UserProblem, error) {
	switch {
	case in.UserID <= 0:
		return nil, apierr.BadRequest("userId is required")
	case strings.TrimSpace(in.ProblemType) == "":
		return nil, apierr.BadRequest("problemType is required")
	case strings.TrimSpace(in.Description) == "":
		return nil, apierr.BadRequest("description is required")
	}
	p, err := ps.store.CreateUserProblem(ctx, domain.UserProblem{
		UserID:      in.UserID,
		ProblemType: strings.TrimSpace(in.ProblemType),
		Description: in.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create problem: %w", err)
	}
	return p, nil
}

func (ps *problemService) List(ctx context.Context) ([]domain.UserProblem, error) {
	return ps.store.ListUserProblems(ctx, domain.DemoUserID)
}

func (ps *problemService) Get(ctx context.Context, id int) (*domain.UserProblem, error) {
	p, err := ps.store.GetUserProblem(ctx, id)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, apierr.NotFound("Problem not found")
	}
	return p, err
}

func (ps *problemService) GenerateThinkingProcess(ctx context.Context, id int) (*domain.UserProblem, error) {
	p, err := ps.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tp := ps.coach.GenerateThinkingProcess(ctx, p.ProblemType, p.Description)
	updated, err := ps.store.UpdateUserProblemThinkingProcess(ctx, id, tp)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, apierr.NotFound("Problem not found")
	}
	if err != nil {
		return nil, fmt.Errorf("store thinking process: %w", err)
	}
	ps.log.Debug("Thinking process stored", "problem_id", id, "steps", len(tp.Steps))
	return updated, nil
}
