package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdos10/think-like-genius/internal/data/db"
	"github.com/abdos10/think-like-genius/internal/domain"
	pkgerrors "github.com/abdos10/think-like-genius/internal/pkg/errors"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

type storeFactory func(t *testing.T) Store

func backends() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"sqlite": func(t *testing.T) Store {
			name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
			gdb, err := db.Open(db.Config{
				Driver: db.DriverSQLite,
				DSN:    "file:" + name + "?mode=memory&cache=shared",
			}, logger.Nop())
			require.NoError(t, err)
			s := NewGormStore(gdb, logger.Nop())
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s Store)) {
	for name, factory := range backends() {
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func TestSeedFixtures(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		now := time.Now()
		require.NoError(t, Seed(ctx, s, now))

		u, err := s.GetUser(ctx, domain.DemoUserID)
		require.NoError(t, err)
		assert.Equal(t, "Abdo", u.Username)
		assert.Equal(t, "Intermediate Thinker", u.Level)

		skills, err := s.ListSkills(ctx)
		require.NoError(t, err)
		require.Len(t, skills, 4)
		assert.Equal(t, "Critical Thinking", skills[0].Name)
		assert.Equal(t, "#ffd166", skills[3].Color)

		userSkills, err := s.ListUserSkills(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, userSkills, 4)
		assert.Equal(t, 85, userSkills[0].Progress)
		assert.Equal(t, "Advanced", userSkills[3].Level)

		exercises, err := s.ListExercises(ctx)
		require.NoError(t, err)
		assert.Len(t, exercises, 5)
		creative, err := s.ListExercisesBySkill(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, creative, 2)

		acts, err := s.ListUserActivities(ctx, u.ID, 0)
		require.NoError(t, err)
		require.Len(t, acts, 3)
		assert.Equal(t, "Completed Critical Thinking Exercise", acts[0].Title)
		require.NotNil(t, acts[0].Score)
		assert.Equal(t, 92, *acts[0].Score)
		assert.Nil(t, acts[1].Score)
		assert.Nil(t, acts[2].ExerciseID)

		ua, err := s.ListUserAchievements(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, ua, 2)
		assert.Equal(t, 1, ua[0].AchievementID)
		assert.Equal(t, 3, ua[1].AchievementID)

		weekly, err := s.ListWeeklyActivity(ctx, u.ID, domain.WeekStart(now))
		require.NoError(t, err)
		require.Len(t, weekly, 7)
		assert.Equal(t, "Mon", weekly[0].DayOfWeek)
		assert.Equal(t, 60, weekly[2].MinutesSpent)
	})
}

func TestNotFoundSentinel(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		_, err := s.GetSkill(ctx, 99)
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound), "err=%v", err)
		_, err = s.GetUserProblem(ctx, 99)
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
		_, err = s.GetTabHistory(ctx, "missing")
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
		_, err = s.UpdateUserSkill(ctx, 42, domain.UserSkillPatch{})
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})
}

func TestAutoIncrementAndDefaults(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		a, err := s.CreateUser(ctx, domain.User{Username: "a", Password: "x", DisplayName: "A"})
		require.NoError(t, err)
		b, err := s.CreateUser(ctx, domain.User{Username: "b", Password: "x", DisplayName: "B"})
		require.NoError(t, err)
		assert.Equal(t, 1, a.ID)
		assert.Equal(t, 2, b.ID)
		assert.Equal(t, domain.DefaultUserLevel, a.Level)

		_, err = s.CreateUser(ctx, domain.User{Username: "a", Password: "y", DisplayName: "A2"})
		assert.True(t, errors.Is(err, pkgerrors.ErrConflict), "err=%v", err)

		us, err := s.CreateUserSkill(ctx, domain.UserSkill{UserID: a.ID, SkillID: 1})
		require.NoError(t, err)
		assert.Equal(t, 0, us.Progress)
		assert.Equal(t, domain.DefaultSkillLevel, us.Level)
		assert.False(t, us.LastUpdated.IsZero())

		ex, err := s.CreateExercise(ctx, domain.Exercise{Title: "t", Description: "d", SkillID: 1, Duration: 5})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultSkillLevel, ex.Difficulty)
	})
}

func TestUpdateUserSkillMergesPatch(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		us, err := s.CreateUserSkill(ctx, domain.UserSkill{UserID: 1, SkillID: 1, Progress: 10, Level: "Beginner"})
		require.NoError(t, err)

		progress := 55
		got, err := s.UpdateUserSkill(ctx, us.ID, domain.UserSkillPatch{Progress: &progress})
		require.NoError(t, err)
		assert.Equal(t, 55, got.Progress)
		assert.Equal(t, "Beginner", got.Level)

		level := "Intermediate"
		got, err = s.UpdateUserSkill(ctx, us.ID, domain.UserSkillPatch{Level: &level})
		require.NoError(t, err)
		assert.Equal(t, 55, got.Progress)
		assert.Equal(t, "Intermediate", got.Level)
	})
}

func TestActivitiesNewestFirstWithLimit(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		base := time.Now().Add(-time.Hour)
		for i := 0; i < 4; i++ {
			_, err := s.CreateUserActivity(ctx, domain.UserActivity{
				UserID:       1,
				ActivityType: domain.ActivityExercise,
				Title:        string(rune('a' + i)),
				Description:  "d",
				CreatedAt:    base.Add(time.Duration(i) * time.Minute),
			})
			require.NoError(t, err)
		}
		_, err := s.CreateUserActivity(ctx, domain.UserActivity{UserID: 2, ActivityType: domain.ActivityExercise, Title: "other", Description: "d"})
		require.NoError(t, err)

		acts, err := s.ListUserActivities(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, acts, 2)
		assert.Equal(t, "d", acts[0].Title)
		assert.Equal(t, "c", acts[1].Title)

		all, err := s.ListUserActivities(ctx, 1, 0)
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})
}

func TestProblemThinkingProcess(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		p, err := s.CreateUserProblem(ctx, domain.UserProblem{UserID: 1, ProblemType: "Math", Description: "2+2"})
		require.NoError(t, err)
		assert.Nil(t, p.ThinkingProcess)

		tp := domain.ThinkingProcess{Steps: []domain.ThinkingStep{{Title: "Add", Content: "2+2=4"}}}
		got, err := s.UpdateUserProblemThinkingProcess(ctx, p.ID, tp)
		require.NoError(t, err)
		require.NotNil(t, got.ThinkingProcess)
		assert.Equal(t, "Add", got.ThinkingProcess.Steps[0].Title)

		reloaded, err := s.GetUserProblem(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, reloaded.ThinkingProcess)
		assert.Equal(t, tp, *reloaded.ThinkingProcess)
	})
}

func TestTabHistoryUpsert(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		first, err := s.SaveTabHistory(ctx, "evaluate", "Evaluate", []byte(`{"step":1}`))
		require.NoError(t, err)
		second, err := s.SaveTabHistory(ctx, "evaluate", "Evaluate v2", []byte(`{"step":2}`))
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		got, err := s.GetTabHistory(ctx, "evaluate")
		require.NoError(t, err)
		assert.Equal(t, "Evaluate v2", got.Title)
		assert.JSONEq(t, `{"step":2}`, string(got.Content))
	})
}

func TestHistoryListsDefaultLimit(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		base := time.Now().Add(-time.Hour)
		for i := 0; i < 12; i++ {
			_, err := s.SaveVerifyHistory(ctx, domain.VerifyHistory{
				VerifyInput: domain.VerifyInput{Problem: "p", ThinkingProcess: "t", Conclusion: "c"},
				Confidence:  float64(i) / 12,
				Gaps:        []string{"g"},
				CreatedAt:   base.Add(time.Duration(i) * time.Second),
			})
			require.NoError(t, err)
		}
		rows, err := s.ListVerifyHistory(ctx, 0)
		require.NoError(t, err)
		require.Len(t, rows, DefaultHistoryLimit)
		assert.Equal(t, 12, rows[0].ID)
		assert.Equal(t, []string{"g"}, rows[0].Gaps)

		_, err = s.SaveEvaluateHistory(ctx, domain.NewEvaluateHistory(
			domain.EvaluateInput{ProblemType: "Math", Description: "d"},
			domain.Evaluation{Score: 70, Strengths: []string{"clear"}},
		))
		require.NoError(t, err)
		evals, err := s.ListEvaluateHistory(ctx, 5)
		require.NoError(t, err)
		require.Len(t, evals, 1)
		assert.Equal(t, "Math", evals[0].ProblemType)
		assert.Equal(t, []string{"clear"}, evals[0].Strengths)

		_, err = s.SaveReverseHistory(ctx, domain.NewReverseHistory(
			domain.ReverseInput{ProblemType: "Design", Problem: "p", Solution: "s"},
			domain.ReverseAnalysis{Process: []domain.ReverseStep{{Step: "a", Reasoning: "b"}}},
		))
		require.NoError(t, err)
		revs, err := s.ListReverseHistory(ctx, 0)
		require.NoError(t, err)
		require.Len(t, revs, 1)
		assert.Equal(t, "a", revs[0].Process[0].Step)
	})
}

func TestEmptyListsAreNotNil(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		skills, err := s.ListUserSkills(ctx, 99)
		require.NoError(t, err)
		assert.NotNil(t, skills)
		exercises, err := s.ListExercisesBySkill(ctx, 99)
		require.NoError(t, err)
		assert.NotNil(t, exercises)
		activities, err := s.ListUserActivities(ctx, 99, 5)
		require.NoError(t, err)
		assert.NotNil(t, activities)
		weekly, err := s.ListWeeklyActivity(ctx, 99, domain.WeekStart(time.Now()))
		require.NoError(t, err)
		assert.NotNil(t, weekly)
		problems, err := s.ListUserProblems(ctx, 99)
		require.NoError(t, err)
		assert.NotNil(t, problems)
		unlocked, err := s.ListUserAchievements(ctx, 99)
		require.NoError(t, err)
		assert.NotNil(t, unlocked)
	})
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	score := 10
	a, err := s.CreateUserActivity(ctx, domain.UserActivity{UserID: 1, ActivityType: domain.ActivityExercise, Title: "t", Description: "d", Score: &score})
	require.NoError(t, err)
	*a.Score = 99
	score = 50

	acts, err := s.ListUserActivities(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, *acts[0].Score)
}

func TestMemoryStoreConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.CreateUserActivity(ctx, domain.UserActivity{UserID: 1, ActivityType: domain.ActivityExercise, Title: "t", Description: "d"})
		}()
	}
	wg.Wait()

	acts, err := s.ListUserActivities(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, acts, 50)
	seen := map[int]bool{}
	for _, a := range acts {
		assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
		seen[a.ID] = true
	}
}

func TestMemoryStoreClock(t *testing.T) {
	fixed := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
	s := NewMemoryStore(WithClock(func() time.Time { return fixed }))
	a, err := s.CreateUserActivity(context.Background(), domain.UserActivity{UserID: 1, ActivityType: domain.ActivityProblem, Title: "t", Description: "d"})
	require.NoError(t, err)
	assert.True(t, a.CreatedAt.Equal(fixed))
}
