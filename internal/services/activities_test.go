package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdos10/think-like-genius/internal/domain"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

func TestActivityListEnriches(t *testing.T) {
	st := seededStore(t)
	svc := NewActivityService(logger.Nop(), st, nil)

	rows, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Completed Critical Thinking Exercise", rows[0].Title)
	require.NotNil(t, rows[0].Skill)
	assert.Equal(t, "Critical Thinking", rows[0].Skill.Name)
	require.NotNil(t, rows[0].Exercise)
	assert.Equal(t, "Logical Fallacies Challenge", rows[0].Exercise.Title)

	assert.Equal(t, "Solved Business Problem", rows[2].Title)
	assert.NotNil(t, rows[2].Skill)
	assert.Nil(t, rows[2].Exercise)

	limited, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestActivityCreateValidates(t *testing.T) {
	svc := NewActivityService(logger.Nop(), seededStore(t), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateActivityInput{UserID: 1, ActivityType: domain.ActivityExercise, Title: "t"})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	created, err := svc.Create(ctx, CreateActivityInput{
		UserID:       1,
		ActivityType: domain.ActivityExercise,
		Title:        "Did a thing",
		Description:  "Details",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
	assert.Nil(t, created.Score)
}

type countingChecker struct{ calls []int }

func (c *countingChecker) Check(ctx context.Context, userID int) ([]domain.UserAchievement, error) {
	c.calls = append(c.calls, userID)
	return nil, nil
}

func TestActivityRecordChecksAchievements(t *testing.T) {
	checker := &countingChecker{}
	svc := NewActivityService(logger.Nop(), seededStore(t), checker)
	_, err := svc.Record(context.Background(), domain.UserActivity{
		UserID:       1,
		ActivityType: domain.ActivityProblem,
		Title:        "x",
		Description:  "y",
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, checker.calls)
}

func TestThinkingHistory(t *testing.T) {
	st := seededStore(t)
	svc := NewActivityService(logger.Nop(), st, nil)
	ctx := context.Background()

	_, err := svc.ThinkingHistory(ctx, "exercise")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	assert.Contains(t, err.Error(), "Invalid activity type")
	_, err = svc.ThinkingHistory(ctx, "")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	for _, title := range []string{"first", "second"} {
		_, err := svc.Record(ctx, domain.UserActivity{
			UserID:       1,
			ActivityType: domain.ActivityThinkingVerification,
			Title:        title,
			Description:  "d",
		})
		require.NoError(t, err)
	}
	rows, err := svc.ThinkingHistory(ctx, string(domain.ActivityThinkingVerification))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "second", rows[0].Title)
}
