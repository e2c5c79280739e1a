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

func TestExerciseListAndFilter(t *testing.T) {
	svc := NewExerciseService(logger.Nop(), seededStore(t), &fakeCoach{})
	ctx := context.Background()

	all, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	creative, err := svc.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, creative, 2)
	for _, e := range creative {
		assert.Equal(t, 2, e.SkillID)
	}

	_, err = svc.Get(ctx, 9)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestGenerateExerciseValidatesType(t *testing.T) {
	svc := NewExerciseService(logger.Nop(), seededStore(t), &fakeCoach{exercise: domain.GeneratedExercise{Title: "Six Hats"}})
	ctx := context.Background()

	_, err := svc.Generate(ctx, "Lateral")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	_, err = svc.Generate(ctx, "critical")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	ex, err := svc.Generate(ctx, "Creative")
	require.NoError(t, err)
	assert.Equal(t, "Six Hats", ex.Title)
}
