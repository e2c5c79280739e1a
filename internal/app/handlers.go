package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/abdos10/think-like-genius/internal/http"
	httpH "github.com/abdos10/think-like-genius/internal/http/handlers"
	"github.com/abdos10/think-like-genius/internal/observability"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	Auth        *httpH.AuthHandler
	User        *httpH.UserHandler
	Skill       *httpH.SkillHandler
	Exercise    *httpH.ExerciseHandler
	Activity    *httpH.ActivityHandler
	Problem     *httpH.ProblemHandler
	Thinking    *httpH.ThinkingHandler
	Weekly      *httpH.WeeklyActivityHandler
	Achievement *httpH.AchievementHandler
	History     *httpH.HistoryHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	// Ready once the store can serve the demo user.
	ready := func(ctx context.Context) error {
		_, err := services.Users.Current(ctx)
		return err
	}
	return Handlers{
		Health:      httpH.NewHealthHandler(ready),
		Auth:        httpH.NewAuthHandler(services.Users),
		User:        httpH.NewUserHandler(services.Users),
		Skill:       httpH.NewSkillHandler(services.Skills),
		Exercise:    httpH.NewExerciseHandler(services.Exercises),
		Activity:    httpH.NewActivityHandler(services.Activities),
		Problem:     httpH.NewProblemHandler(services.Problems),
		Thinking:    httpH.NewThinkingHandler(services.Thinking),
		Weekly:      httpH.NewWeeklyActivityHandler(services.Weekly),
		Achievement: httpH.NewAchievementHandler(services.Achievements),
		History:     httpH.NewHistoryHandler(services.History),
	}
}

func routerConfig(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) http.RouterConfig {
	rc := http.RouterConfig{
		Log:                log,
		Metrics:            metrics,
		CORSOrigins:        cfg.CORSOrigins,
		HealthHandler:      handlers.Health,
		AuthHandler:        handlers.Auth,
		UserHandler:        handlers.User,
		SkillHandler:       handlers.Skill,
		ExerciseHandler:    handlers.Exercise,
		ActivityHandler:    handlers.Activity,
		ProblemHandler:     handlers.Problem,
		ThinkingHandler:    handlers.Thinking,
		WeeklyHandler:      handlers.Weekly,
		AchievementHandler: handlers.Achievement,
		HistoryHandler:     handlers.History,
	}
	if cfg.Otel.Enabled {
		rc.TracingService = cfg.Otel.ServiceName
	}
	return rc
}

func setGinMode(logMode string) {
	if logMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}
