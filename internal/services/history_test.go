package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdos10/think-like-genius/internal/domain"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

func TestSaveAndGetTab(t *testing.T) {
	st := seededStore(t)
	mirror := &recordingMirror{}
	svc := NewHistoryService(logger.Nop(), st, mirror, nil)
	ctx := context.Background()

	saved, err := svc.SaveTab(ctx, "evaluate", SaveTabInput{Title: "Draft", Content: json.RawMessage(`{"step":2}`)})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	require.Len(t, mirror.tabs, 1)
	assert.Equal(t, saved.ID, mirror.tabs[0].ID)

	got, err := svc.GetTab(ctx, "evaluate")
	require.NoError(t, err)
	assert.JSONEq(t, `{"step":2}`, string(got.Content))

	_, err = svc.SaveTab(ctx, "x", SaveTabInput{Content: json.RawMessage(`{broken`)})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	_, err = svc.SaveTab(ctx, " ", SaveTabInput{})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestGetTabFallsBackToMirror(t *testing.T) {
	mirror := &recordingMirror{tabs: []domain.TabHistory{{ID: "remote", TabID: "verify", Title: "Remote"}}}
	svc := NewHistoryService(logger.Nop(), seededStore(t), mirror, nil)

	got, err := svc.GetTab(context.Background(), "verify")
	require.NoError(t, err)
	assert.Equal(t, "Remote", got.Title)

	_, err = svc.GetTab(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestHistoryList(t *testing.T) {
	st := seededStore(t)
	svc := NewHistoryService(logger.Nop(), st, nil, nil)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		require.NoError(t, svc.RecordReverse(ctx, domain.ReverseHistory{ReverseInput: domain.ReverseInput{Problem: "p"}}))
	}
	out, err := svc.List(ctx, "reverse", 0, "")
	require.NoError(t, err)
	rows, ok := out.([]domain.ReverseHistory)
	require.True(t, ok)
	assert.Len(t, rows, 10)

	out, err = svc.List(ctx, "evaluate", 3, "")
	require.NoError(t, err)
	assert.Equal(t, []domain.EvaluateHistory{}, out)

	_, err = svc.List(ctx, "nope", 0, "")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	_, err = svc.List(ctx, "reverse", 0, "elsewhere")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestHistoryListReadsMirror(t *testing.T) {
	mirror := &recordingMirror{
		evaluate: []domain.EvaluateHistory{{ID: 41, Score: 70}},
		verify:   []domain.VerifyHistory{{ID: 42, IsValid: true}},
	}
	svc := NewHistoryService(logger.Nop(), seededStore(t), mirror, nil)
	ctx := context.Background()

	// Local store is empty, so the default source falls back to the mirror.
	out, err := svc.List(ctx, "evaluate", 0, "")
	require.NoError(t, err)
	assert.Equal(t, []domain.EvaluateHistory{{ID: 41, Score: 70}}, out)

	out, err = svc.List(ctx, "evaluate", 0, "local")
	require.NoError(t, err)
	assert.Equal(t, []domain.EvaluateHistory{}, out)

	require.NoError(t, svc.RecordVerify(ctx, domain.VerifyHistory{VerifyInput: domain.VerifyInput{Problem: "local"}}))
	out, err = svc.List(ctx, "verify", 0, "")
	require.NoError(t, err)
	rows := out.([]domain.VerifyHistory)
	require.Len(t, rows, 1)
	assert.Equal(t, "local", rows[0].Problem)

	out, err = svc.List(ctx, "verify", 0, "remote")
	require.NoError(t, err)
	rows = out.([]domain.VerifyHistory)
	require.Len(t, rows, 2)
	assert.Equal(t, 42, rows[0].ID)
}

func TestHistoryListMirrorFailure(t *testing.T) {
	mirror := &recordingMirror{err: errMirrorDown}
	svc := NewHistoryService(logger.Nop(), seededStore(t), mirror, nil)
	ctx := context.Background()

	out, err := svc.List(ctx, "evaluate", 0, "")
	require.NoError(t, err)
	assert.Equal(t, []domain.EvaluateHistory{}, out)

	_, err = svc.List(ctx, "evaluate", 0, "remote")
	assert.Equal(t, http.StatusBadGateway, statusOf(err))
}

func TestGetTabTrimsID(t *testing.T) {
	svc := NewHistoryService(logger.Nop(), seededStore(t), nil, nil)
	ctx := context.Background()

	_, err := svc.SaveTab(ctx, " a ", SaveTabInput{Title: "Padded", Content: json.RawMessage(`{}`)})
	require.NoError(t, err)
	got, err := svc.GetTab(ctx, " a")
	require.NoError(t, err)
	assert.Equal(t, "Padded", got.Title)
	assert.Equal(t, "a", got.TabID)

	_, err = svc.GetTab(ctx, "  ")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}
