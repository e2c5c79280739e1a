package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdos10/think-like-genius/internal/data/store"
	"github.com/abdos10/think-like-genius/internal/domain"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

type toolsFixture struct {
	store  *store.MemoryStore
	mirror *recordingMirror
	coach  *fakeCoach
	svc    ThinkingToolService
}

func newToolsFixture(t *testing.T) *toolsFixture {
	t.Helper()
	st := seededStore(t)
	mirror := &recordingMirror{}
	coach := &fakeCoach{
		evaluation: domain.Evaluation{Score: 82, Feedback: "Good", Strengths: []string{"clear"}, Weaknesses: []string{}, Improvements: []string{}},
		reverse:    domain.ReverseAnalysis{Process: []domain.ReverseStep{{Step: "s", Reasoning: "r"}}, Principles: []string{}, Insights: []string{}},
		verify:     domain.Verification{IsValid: true, Confidence: 0.876, Gaps: []string{}, Alternatives: []string{}},
	}
	activities := NewActivityService(logger.Nop(), st, nil)
	hist := NewHistoryService(logger.Nop(), st, mirror, nil)
	return &toolsFixture{
		store:  st,
		mirror: mirror,
		coach:  coach,
		svc:    NewThinkingToolService(logger.Nop(), coach, activities, hist),
	}
}

func TestEvaluateRecordsActivityAndHistory(t *testing.T) {
	f := newToolsFixture(t)
	ctx := context.Background()

	in := domain.EvaluateInput{
		ProblemType:     "Business",
		Description:     "How should a small bakery grow revenue without new staff?",
		ThinkingProcess: "List channels, estimate effort",
		ExpectedOutcome: "A ranked plan",
	}
	ev, err := f.svc.Evaluate(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 82, ev.Score)

	acts, err := f.store.ListUserActivities(ctx, domain.DemoUserID, 1)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, domain.ActivityThinkingEvaluation, acts[0].ActivityType)
	assert.Equal(t, "Evaluated Business: How should a small bakery grow...", acts[0].Title)
	require.NotNil(t, acts[0].Score)
	assert.Equal(t, 82, *acts[0].Score)
	assert.Nil(t, acts[0].SkillID)

	local, err := f.store.ListEvaluateHistory(ctx, 0)
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, in, local[0].EvaluateInput)

	require.Len(t, f.mirror.evaluate, 1)
	assert.Equal(t, local[0].CreatedAt, f.mirror.evaluate[0].CreatedAt)
}

func TestEvaluateValidates(t *testing.T) {
	f := newToolsFixture(t)
	_, err := f.svc.Evaluate(context.Background(), domain.EvaluateInput{ProblemType: "Math"})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	assert.Contains(t, err.Error(), "description is required")
}

func TestReverseEngineerWithoutSolution(t *testing.T) {
	f := newToolsFixture(t)
	ctx := context.Background()

	_, err := f.svc.ReverseEngineer(ctx, domain.ReverseInput{ProblemType: "Design", Problem: "short"})
	require.NoError(t, err)

	acts, err := f.store.ListUserActivities(ctx, domain.DemoUserID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Idea Journey Design: short...", acts[0].Title)
	assert.Nil(t, acts[0].Score)
	assert.Len(t, f.mirror.reverse, 1)
}

func TestVerifyScoreIsRoundedConfidence(t *testing.T) {
	f := newToolsFixture(t)
	ctx := context.Background()

	v, err := f.svc.Verify(ctx, domain.VerifyInput{Problem: "p", ThinkingProcess: "tp", Conclusion: "c"})
	require.NoError(t, err)
	assert.True(t, v.IsValid)

	acts, err := f.store.ListUserActivities(ctx, domain.DemoUserID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Verified Thinking: p...", acts[0].Title)
	require.NotNil(t, acts[0].Score)
	assert.Equal(t, 88, *acts[0].Score)
}

func TestMirrorFailureDoesNotFailTool(t *testing.T) {
	f := newToolsFixture(t)
	f.mirror.err = errMirrorDown
	ctx := context.Background()

	_, err := f.svc.Verify(ctx, domain.VerifyInput{Problem: "p", ThinkingProcess: "tp", Conclusion: "c"})
	require.NoError(t, err)

	local, err := f.store.ListVerifyHistory(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, local, 1)
	assert.Empty(t, f.mirror.verify)
}

func TestPreviewCountsRunes(t *testing.T) {
	assert.Equal(t, "short", preview("short"))
	assert.Equal(t, 30, len([]rune(preview("ééééééééééééééééééééééééééééééééééééééé"))))
}
