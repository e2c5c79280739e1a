package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abdos10/think-like-genius/internal/data/store"
	"github.com/abdos10/think-like-genius/internal/domain"
	"github.com/abdos10/think-like-genius/internal/history"
	"github.com/abdos10/think-like-genius/internal/platform/apierr"
)

// Wednesday, so the seeded week spans Mon 2026-03-02 .. Sun 2026-03-08.
var testNow = time.Date(2026, 3, 4, 15, 0, 0, 0, time.Local)

func seededStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	st := store.NewMemoryStore(store.WithClock(func() time.Time { return testNow }))
	require.NoError(t, store.Seed(context.Background(), st, testNow))
	return st
}

func statusOf(err error) int { return apierr.StatusOf(err) }

type fakeCoach struct {
	evaluation domain.Evaluation
	reverse    domain.ReverseAnalysis
	verify     domain.Verification
	exercise   domain.GeneratedExercise
	process    domain.ThinkingProcess
}

func (f *fakeCoach) GenerateThinkingProcess(ctx context.Context, problemType, description string) domain.ThinkingProcess {
	return f.process
}

func (f *fakeCoach) EvaluateThinking(ctx context.Context, in domain.EvaluateInput) domain.Evaluation {
	return f.evaluation
}

func (f *fakeCoach) GenerateExercise(ctx context.Context, t domain.ThinkingType) domain.GeneratedExercise {
	return f.exercise
}

func (f *fakeCoach) ReverseEngineer(ctx context.Context, in domain.ReverseInput) domain.ReverseAnalysis {
	return f.reverse
}

func (f *fakeCoach) VerifyThinking(ctx context.Context, in domain.VerifyInput) domain.Verification {
	return f.verify
}

// recordingMirror keeps what it was sent; err makes every write fail.
type recordingMirror struct {
	history.Noop
	mu       sync.Mutex
	err      error
	tabs     []domain.TabHistory
	evaluate []domain.EvaluateHistory
	reverse  []domain.ReverseHistory
	verify   []domain.VerifyHistory
}

func (m *recordingMirror) Name() string { return "recording" }

func (m *recordingMirror) SaveTab(ctx context.Context, tab domain.TabHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.tabs = append(m.tabs, tab)
	return nil
}

func (m *recordingMirror) GetTab(ctx context.Context, tabID string) (*domain.TabHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tabs {
		if t.TabID == tabID {
			t := t
			return &t, nil
		}
	}
	return m.Noop.GetTab(ctx, tabID)
}

func (m *recordingMirror) SaveEvaluate(ctx context.Context, h domain.EvaluateHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.evaluate = append(m.evaluate, h)
	return nil
}

func (m *recordingMirror) SaveReverse(ctx context.Context, h domain.ReverseHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.reverse = append(m.reverse, h)
	return nil
}

func (m *recordingMirror) SaveVerify(ctx context.Context, h domain.VerifyHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.verify = append(m.verify, h)
	return nil
}

func (m *recordingMirror) ListEvaluate(context.Context, int) ([]domain.EvaluateHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.EvaluateHistory(nil), m.evaluate...), nil
}

func (m *recordingMirror) ListVerify(context.Context, int) ([]domain.VerifyHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.VerifyHistory(nil), m.verify...), nil
}

var errMirrorDown = errors.New("mirror down")
