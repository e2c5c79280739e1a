package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/abdos10/think-like-genius/internal/data/store"
	"github.com/abdos10/think-like-genius/internal/domain"
	pkgerrors "github.com/abdos10/think-like-genius/internal/pkg/errors"
	"github.com/abdos10/think-like-genius/internal/platform/apierr"
	"github.com/abdos10/think-like-genius/internal/platform/ctxutil"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

type CreateActivityInput struct {
	UserID       int                 `json:"userId"`
	ActivityType domain.ActivityType `json:"activityType"`
	SkillID      *int                `json:"skillId"`
	ExerciseID   *int                `json:"exerciseId"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Score        *int                `json:"score"`
}

type ActivityService interface {
	// List returns the demo user's activities, newest first, with skill and
	// exercise attached. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]domain.UserActivityDetail, error)
	Create(ctx context.Context, in CreateActivityInput) (*domain.UserActivity, error)
	// Record stores an activity built by another service and re-checks
	// achievements for its user.
	Record(ctx context.Context, a domain.UserActivity) (*domain.UserActivity, error)
	// ThinkingHistory lists the demo user's activities of one thinking-tool type.
	ThinkingHistory(ctx context.Context, activityType string) ([]domain.UserActivity, error)
}

// AchievementChecker unlocks achievements whose conditions now hold.
type AchievementChecker interface {
	Check(ctx context.Context, userID int) ([]domain.UserAchievement, error)
}

type activityService struct {
	log          *logger.Logger
	store        store.Store
	achievements AchievementChecker
}

func NewActivityService(log *logger.Logger, st store.Store, achievements AchievementChecker) ActivityService {
	return &activityService{
		log:          log.With("service", "ActivityService"),
		store:        st,
		achievements: achievements,
	}
}

func (as *activityService) List(ctx context.Context, limit int) ([]domain.UserActivityDetail, error) {
	acts, err := as.store.ListUserActivities(ctx, domain.DemoUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	out := make([]domain.UserActivityDetail, len(acts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, a := range acts {
		i, a := i, a
		out[i].UserActivity = a
		g.Go(func() error {
			if a.SkillID != nil {
				sk, err := as.store.GetSkill(gctx, *a.SkillID)
				if err != nil && !errors.Is(err, pkgerrors.ErrNotFound) {
					return fmt.Errorf("activity %d skill: %w", a.ID, err)
				}
				out[i].Skill = sk
			}
			if a.ExerciseID != nil {
				ex, err := as.store.GetExercise(gctx, *a.ExerciseID)
				if err != nil && !errors.Is(err, pkgerrors.ErrNotFound) {
					return fmt.Errorf("activity %d exercise: %w", a.ID, err)
				}
				out[i].Exercise = ex
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (as *activityService) Create(ctx context.Context, in CreateActivityInput) (*domain.UserActivity, error) {
	switch {
	case in.UserID <= 0:
		return nil, apierr.BadRequest("userId is required")
	case strings.TrimSpace(string(in.ActivityType)) == "":
		return nil, apierr.BadRequest("activityType is required")
	case strings.TrimSpace(in.Title) == "":
		return nil, apierr.BadRequest("title is required")
	case strings.TrimSpace(in.Description) == "":
		return nil, apierr.BadRequest("description is required")
	}
	if in.Score != nil && (*in.Score < 0 || *in.Score > 100) {
		return nil, apierr.BadRequest("score must be between 0 and 100")
	}
	return as.Record(ctx, domain.UserActivity{
		UserID:       in.UserID,
		ActivityType: in.ActivityType,
		SkillID:      in.SkillID,
		ExerciseID:   in.ExerciseID,
		Title:        in.Title,
		Description:  in.Description,
		Score:        in.Score,
	})
}

func (as *activityService) Record(ctx context.Context, a domain.UserActivity) (*domain.UserActivity, error) {
	created, err := as.store.CreateUserActivity(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	if as.achievements != nil {
		unlocked, err := as.achievements.Check(ctx, created.UserID)
		if err != nil {
			as.log.Warn("Achievement check failed", append([]interface{}{
				"user_id", created.UserID,
				"error", err,
			}, ctxutil.LogFields(ctx)...)...)
		} else if len(unlocked) > 0 {
			as.log.Info("Achievements unlocked", "user_id", created.UserID, "count", len(unlocked))
		}
	}
	return created, nil
}

func (as *activityService) ThinkingHistory(ctx context.Context, activityType string) ([]domain.UserActivity, error) {
	t := domain.ActivityType(strings.TrimSpace(activityType))
	if !t.IsThinkingTool() {
		return nil, apierr.BadRequest("Invalid activity type")
	}
	acts, err := as.store.ListUserActivities(ctx, domain.DemoUserID, 0)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	out := make([]domain.UserActivity, 0, len(acts))
	for _, a := range acts {
		if a.ActivityType == t {
			out = append(out, a)
		}
	}
	return out, nil
}
