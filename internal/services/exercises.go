package services

import (
	"context"
	"errors"

	"github.com/abdos10/think-like-genius/internal/data/store"
	"github.com/abdos10/think-like-genius/internal/domain"
	pkgerrors "github.com/abdos10/think-like-genius/internal/pkg/errors"
	"github.com/abdos10/think-like-genius/internal/platform/apierr"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
	"github.com/abdos10/think-like-genius/internal/services/thinking"
)

type ExerciseService interface {
	// List returns every exercise, or only those for skillID when it is > 0.
	List(ctx context.Context, skillID int) ([]domain.Exercise, error)
	Get(ctx context.Context, id int) (*domain.Exercise, error)
	Generate(ctx context.Context, thinkingType string) (*domain.GeneratedExercise, error)
}

type exerciseService struct {
	log   *logger.Logger
	store store.Store
	coach thinking.Coach
}

func NewExerciseService(log *logger.Logger, st store.Store, coach thinking.Coach) ExerciseService {
	return &exerciseService{
		log:   log.With("service", "ExerciseService"),
		store: st,
		coach: coach,
	}
}

func (es *exerciseService) List(ctx context.Context, skillID int) ([]domain.Exercise, error) {
	if skillID > 0 {
		return es.store.ListExercisesBySkill(ctx, skillID)
	}
	return es.store.ListExercises(ctx)
}

func (es *exerciseService) Get(ctx context.Context, id int) (*domain.Exercise, error) {
	ex, err := es.store.GetExercise(ctx, id)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, apierr.NotFound("Exercise not found")
	}
	return ex, err
}

func (es *exerciseService) Generate(ctx context.Context, thinkingType string) (*domain.GeneratedExercise, error) {
	t, ok := domain.ParseThinkingType(thinkingType)
	if !ok {
		return nil, apierr.BadRequest("thinkingType must be one of Critical, Creative, Strategic, Analytical")
	}
	ex := es.coach.GenerateExercise(ctx, t)
	return &ex, nil
}
