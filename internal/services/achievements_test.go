package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdos10/think-like-genius/internal/domain"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

func TestParseCondition(t *testing.T) {
	c, err := ParseCondition("exercises.critical >= 10")
	require.NoError(t, err)
	assert.Equal(t, Condition{Metric: "exercises", Skill: "critical", Threshold: 10}, c)

	c, err = ParseCondition(" streak>=5 ")
	require.NoError(t, err)
	assert.Equal(t, "streak", c.Metric)

	for _, bad := range []string{"", "streak > 5", "exercises >= 3", "ideas.creative >= 2", "karma >= 1"} {
		_, err := ParseCondition(bad)
		assert.Error(t, err, bad)
	}
}

func TestForUserMarksSeededUnlocks(t *testing.T) {
	svc := NewAchievementService(logger.Nop(), seededStore(t), func() time.Time { return testNow })
	view, err := svc.ForUser(context.Background())
	require.NoError(t, err)
	require.Len(t, view, 4)

	assert.True(t, view[0].Unlocked)
	require.NotNil(t, view[0].UnlockedAt)
	assert.Equal(t, testNow.Add(-5*24*time.Hour), *view[0].UnlockedAt)
	assert.False(t, view[1].Unlocked)
	assert.Nil(t, view[1].UnlockedAt)
	assert.True(t, view[2].Unlocked)
	assert.False(t, view[3].Unlocked)
}

func TestCheckUnlocksStrategicAccuracy(t *testing.T) {
	st := seededStore(t)
	svc := NewAchievementService(logger.Nop(), st, func() time.Time { return testNow })
	ctx := context.Background()

	unlocked, err := svc.Check(ctx, domain.DemoUserID)
	require.NoError(t, err)
	assert.Empty(t, unlocked, "seeded problem activity is not an exercise")

	strategic := 3
	for _, score := range []int{70, 90} {
		s := score
		_, err := st.CreateUserActivity(ctx, domain.UserActivity{
			UserID:       domain.DemoUserID,
			ActivityType: domain.ActivityExercise,
			SkillID:      &strategic,
			Title:        "Strategy drill",
			Description:  "d",
			Score:        &s,
		})
		require.NoError(t, err)
	}

	unlocked, err = svc.Check(ctx, domain.DemoUserID)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	assert.Equal(t, 2, unlocked[0].AchievementID)
	assert.Equal(t, testNow, unlocked[0].UnlockedAt)

	again, err := svc.Check(ctx, domain.DemoUserID)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestActivityStatsStreakAndIdeas(t *testing.T) {
	day := func(n int) time.Time { return testNow.AddDate(0, 0, -n) }
	acts := []domain.UserActivity{
		{ActivityType: domain.ActivityReverseEngineering, CreatedAt: day(1)},
		{ActivityType: domain.ActivityThinkingEvaluation, CreatedAt: day(2)},
		{ActivityType: domain.ActivityThinkingVerification, CreatedAt: day(3)},
		{ActivityType: domain.ActivityProblem, CreatedAt: day(5)},
	}
	s := newActivityStats(acts, nil, testNow)
	assert.Equal(t, 3, s.streak, "today empty, so the streak counts back from yesterday")
	assert.Equal(t, 2, s.ideas)

	acts = append(acts, domain.UserActivity{ActivityType: domain.ActivityProblem, CreatedAt: testNow})
	s = newActivityStats(acts, nil, testNow)
	assert.Equal(t, 4, s.streak)
}
