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

func TestProblemLifecycle(t *testing.T) {
	coach := &fakeCoach{process: domain.ThinkingProcess{Steps: []domain.ThinkingStep{{Title: "Frame", Content: "Restate"}}}}
	svc := NewProblemService(logger.Nop(), seededStore(t), coach)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProblemInput{UserID: 1, ProblemType: "Math"})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	p, err := svc.Create(ctx, CreateProblemInput{UserID: 1, ProblemType: "Math", Description: "Sum 1..100"})
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.Nil(t, p.ThinkingProcess)

	updated, err := svc.GenerateThinkingProcess(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.ThinkingProcess)
	assert.Equal(t, "Frame", updated.ThinkingProcess.Steps[0].Title)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].ThinkingProcess)

	_, err = svc.GenerateThinkingProcess(ctx, 99)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
	_, err = svc.Get(ctx, 99)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}
