package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/abdos10/think-like-genius/internal/http/handlers"
	httpMW "github.com/abdos10/think-like-genius/internal/http/middleware"
	"github.com/abdos10/think-like-genius/internal/observability"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	CORSOrigins []string
	// TracingService names the otelgin server spans; empty disables tracing.
	TracingService string

	AuthHandler        *httpH.AuthHandler
	UserHandler        *httpH.UserHandler
	SkillHandler       *httpH.SkillHandler
	ExerciseHandler    *httpH.ExerciseHandler
	ActivityHandler    *httpH.ActivityHandler
	ProblemHandler     *httpH.ProblemHandler
	ThinkingHandler    *httpH.ThinkingHandler
	WeeklyHandler      *httpH.WeeklyActivityHandler
	AchievementHandler *httpH.AchievementHandler
	HistoryHandler     *httpH.HistoryHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics, "/metrics", "/healthcheck"))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}

		// User
		if cfg.UserHandler != nil {
			api.GET("/users/current", cfg.UserHandler.Current)
		}

		// Skills
		if cfg.SkillHandler != nil {
			api.GET("/skills", cfg.SkillHandler.ListSkills)
			api.GET("/skills/:id", cfg.SkillHandler.GetSkill)
			api.GET("/user-skills", cfg.SkillHandler.ListUserSkills)
			api.PUT("/user-skills/:id", cfg.SkillHandler.UpdateUserSkill)
			api.GET("/user-skills/:id/badge.png", cfg.SkillHandler.Badge)
		}

		// Exercises
		if cfg.ExerciseHandler != nil {
			api.GET("/exercises", cfg.ExerciseHandler.List)
			api.GET("/exercises/:id", cfg.ExerciseHandler.Get)
			api.POST("/generate-exercise", cfg.ExerciseHandler.Generate)
		}

		// Activities
		if cfg.ActivityHandler != nil {
			api.GET("/user-activities", cfg.ActivityHandler.List)
			api.POST("/user-activities", cfg.ActivityHandler.Create)
			api.GET("/thinking-history", cfg.ActivityHandler.ThinkingHistory)
		}

		// Problems
		if cfg.ProblemHandler != nil {
			api.POST("/problems", cfg.ProblemHandler.Create)
			api.GET("/problems", cfg.ProblemHandler.List)
			api.GET("/problems/:id", cfg.ProblemHandler.Get)
			api.POST("/problems/:id/thinking-process", cfg.ProblemHandler.GenerateThinkingProcess)
		}

		// Thinking tools
		if cfg.ThinkingHandler != nil {
			api.POST("/evaluate-thinking", cfg.ThinkingHandler.Evaluate)
			api.POST("/reverse-engineer", cfg.ThinkingHandler.ReverseEngineer)
			api.POST("/verify-thinking", cfg.ThinkingHandler.Verify)
		}

		// Weekly activity
		if cfg.WeeklyHandler != nil {
			api.GET("/weekly-activity", cfg.WeeklyHandler.Current)
			api.POST("/weekly-activity", cfg.WeeklyHandler.Record)
		}

		// Achievements
		if cfg.AchievementHandler != nil {
			api.GET("/achievements", cfg.AchievementHandler.List)
			api.GET("/user-achievements", cfg.AchievementHandler.ForUser)
		}

		// History
		if cfg.HistoryHandler != nil {
			api.GET("/tab-history/:tabId", cfg.HistoryHandler.GetTab)
			api.PUT("/tab-history/:tabId", cfg.HistoryHandler.SaveTab)
			api.GET("/history/:kind", cfg.HistoryHandler.List)
		}
	}

	return r
}
