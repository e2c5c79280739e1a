package store

import (
	"context"
	"time"

	"github.com/abdos10/think-like-genius/internal/domain"
)

// DefaultHistoryLimit applies when a history list is requested without a limit.
const DefaultHistoryLimit = 10

// Getters return an error wrapping errors.ErrNotFound from internal/pkg/errors
// when the row does not exist. Every returned value is a copy.

type UserStore interface {
	GetUser(ctx context.Context, id int) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, u domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, id int, patch domain.UserPatch) (*domain.User, error)
}

type SkillStore interface {
	ListSkills(ctx context.Context) ([]domain.ThinkingSkill, error)
	GetSkill(ctx context.Context, id int) (*domain.ThinkingSkill, error)
	CreateSkill(ctx context.Context, s domain.ThinkingSkill) (*domain.ThinkingSkill, error)

	ListUserSkills(ctx context.Context, userID int) ([]domain.UserSkill, error)
	GetUserSkill(ctx context.Context, id int) (*domain.UserSkill, error)
	GetUserSkillBySkill(ctx context.Context, userID, skillID int) (*domain.UserSkill, error)
	CreateUserSkill(ctx context.Context, us domain.UserSkill) (*domain.UserSkill, error)
	UpdateUserSkill(ctx context.Context, id int, patch domain.UserSkillPatch) (*domain.UserSkill, error)
}

type ExerciseStore interface {
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	ListExercisesBySkill(ctx context.Context, skillID int) ([]domain.Exercise, error)
	GetExercise(ctx context.Context, id int) (*domain.Exercise, error)
	CreateExercise(ctx context.Context, e domain.Exercise) (*domain.Exercise, error)
}

type ActivityStore interface {
	// ListUserActivities returns newest first; limit <= 0 means all.
	ListUserActivities(ctx context.Context, userID int, limit int) ([]domain.UserActivity, error)
	CreateUserActivity(ctx context.Context, a domain.UserActivity) (*domain.UserActivity, error)

	ListWeeklyActivity(ctx context.Context, userID int, weekStart time.Time) ([]domain.WeeklyActivity, error)
	CreateWeeklyActivity(ctx context.Context, w domain.WeeklyActivity) (*domain.WeeklyActivity, error)
	UpdateWeeklyActivity(ctx context.Context, id int, minutes int) (*domain.WeeklyActivity, error)
}

type ProblemStore interface {
	// ListUserProblems returns newest first.
	ListUserProblems(ctx context.Context, userID int) ([]domain.UserProblem, error)
	GetUserProblem(ctx context.Context, id int) (*domain.UserProblem, error)
	CreateUserProblem(ctx context.Context, p domain.UserProblem) (*domain.UserProblem, error)
	UpdateUserProblemThinkingProcess(ctx context.Context, id int, tp domain.ThinkingProcess) (*domain.UserProblem, error)
}

type AchievementStore interface {
	ListAchievements(ctx context.Context) ([]domain.Achievement, error)
	GetAchievement(ctx context.Context, id int) (*domain.Achievement, error)
	CreateAchievement(ctx context.Context, a domain.Achievement) (*domain.Achievement, error)

	ListUserAchievements(ctx context.Context, userID int) ([]domain.UserAchievement, error)
	CreateUserAchievement(ctx context.Context, ua domain.UserAchievement) (*domain.UserAchievement, error)
}

type HistoryStore interface {
	// SaveTabHistory upserts by tab id.
	SaveTabHistory(ctx context.Context, tabID, title string, content []byte) (*domain.TabHistory, error)
	GetTabHistory(ctx context.Context, tabID string) (*domain.TabHistory, error)

	SaveEvaluateHistory(ctx context.Context, h domain.EvaluateHistory) (*domain.EvaluateHistory, error)
	ListEvaluateHistory(ctx context.Context, limit int) ([]domain.EvaluateHistory, error)
	SaveReverseHistory(ctx context.Context, h domain.ReverseHistory) (*domain.ReverseHistory, error)
	ListReverseHistory(ctx context.Context, limit int) ([]domain.ReverseHistory, error)
	SaveVerifyHistory(ctx context.Context, h domain.VerifyHistory) (*domain.VerifyHistory, error)
	ListVerifyHistory(ctx context.Context, limit int) ([]domain.VerifyHistory, error)
}

type Store interface {
	UserStore
	SkillStore
	ExerciseStore
	ActivityStore
	ProblemStore
	AchievementStore
	HistoryStore
	Close() error
}

func historyLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return limit
}
