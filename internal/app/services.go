package app

import (
	"context"
	"fmt"
	"time"

	"github.com/abdos10/think-like-genius/internal/data/store"
	"github.com/abdos10/think-like-genius/internal/history"
	"github.com/abdos10/think-like-genius/internal/observability"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
	"github.com/abdos10/think-like-genius/internal/platform/openai"
	"github.com/abdos10/think-like-genius/internal/services"
	"github.com/abdos10/think-like-genius/internal/services/thinking"
)

type Services struct {
	Users        services.UserService
	Skills       services.SkillService
	Exercises    services.ExerciseService
	Activities   services.ActivityService
	Problems     services.ProblemService
	Thinking     services.ThinkingToolService
	Weekly       services.WeeklyActivityService
	Achievements services.AchievementService
	History      services.HistoryService

	// Mirror is closed by App.Close.
	Mirror history.Mirror
}

func wireServices(ctx context.Context, log *logger.Logger, cfg Config, st store.Store, metrics *observability.Metrics, now func() time.Time) (Services, error) {
	log.Info("Wiring services...")

	llm, err := openai.NewClient(log, cfg.OpenAI, metrics)
	if err != nil {
		return Services{}, fmt.Errorf("init openai client: %w", err)
	}
	coach := thinking.NewCoach(log, llm, metrics)

	mirror, err := history.New(ctx, log, cfg.History)
	if err != nil {
		// The mirror is optional; a dead remote must not keep the API down.
		log.Warn("History mirror disabled", "backend", cfg.History.Backend, "error", err)
		mirror = history.Noop{}
	}

	badges, err := services.NewBadgeRenderer(cfg.BadgeFont)
	if err != nil {
		_ = mirror.Close()
		return Services{}, fmt.Errorf("init badge renderer: %w", err)
	}

	achievements := services.NewAchievementService(log, st, now)
	activities := services.NewActivityService(log, st, achievements)
	historySvc := services.NewHistoryService(log, st, mirror, metrics)

	return Services{
		Users:        services.NewUserService(log, st),
		Skills:       services.NewSkillService(log, st, badges),
		Exercises:    services.NewExerciseService(log, st, coach),
		Activities:   activities,
		Problems:     services.NewProblemService(log, st, coach),
		Thinking:     services.NewThinkingToolService(log, coach, activities, historySvc),
		Weekly:       services.NewWeeklyActivityService(log, st, now),
		Achievements: achievements,
		History:      historySvc,
		Mirror:       mirror,
	}, nil
}
