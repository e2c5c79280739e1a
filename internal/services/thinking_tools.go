package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/abdos10/think-like-genius/internal/domain"
	"github.com/abdos10/think-like-genius/internal/platform/apierr"
	"github.com/abdos10/think-like-genius/internal/platform/ctxutil"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
	"github.com/abdos10/think-like-genius/internal/services/thinking"
)

// ThinkingToolService backs the evaluate, reverse-engineer and verify tools.
// Each call logs an activity for the demo user and writes a history record.
type ThinkingToolService interface {
	Evaluate(ctx context.Context, in domain.EvaluateInput) (*domain.Evaluation, error)
	ReverseEngineer(ctx context.Context, in domain.ReverseInput) (*domain.ReverseAnalysis, error)
	Verify(ctx context.Context, in domain.VerifyInput) (*domain.Verification, error)
}

type thinkingToolService struct {
	log        *logger.Logger
	coach      thinking.Coach
	activities ActivityService
	history    HistoryService
}

func NewThinkingToolService(log *logger.Logger, coach thinking.Coach, activities ActivityService, history HistoryService) ThinkingToolService {
	return &thinkingToolService{
		log:        log.With("service", "ThinkingToolService"),
		coach:      coach,
		activities: activities,
		history:    history,
	}
}

func (ts *thinkingToolService) Evaluate(ctx context.Context, in domain.EvaluateInput) (*domain.Evaluation, error) {
	if err := requireFields(map[string]string{
		"problemType":     in.ProblemType,
		"description":     in.Description,
		"thinkingProcess": in.ThinkingProcess,
		"expectedOutcome": in.ExpectedOutcome,
	}, "problemType", "description", "thinkingProcess", "expectedOutcome"); err != nil {
		return nil, err
	}

	ev := ts.coach.EvaluateThinking(ctx, in)
	score := ev.Score
	if _, err := ts.activities.Record(ctx, domain.UserActivity{
		UserID:       domain.DemoUserID,
		ActivityType: domain.ActivityThinkingEvaluation,
		Title:        fmt.Sprintf("Evaluated %s: %s...", in.ProblemType, preview(in.Description)),
		Description:  in.Description,
		Score:        &score,
	}); err != nil {
		return nil, err
	}
	if err := ts.history.RecordEvaluate(ctx, domain.NewEvaluateHistory(in, ev)); err != nil {
		ts.logHistoryFailure(ctx, domain.HistoryEvaluate, err)
	}
	return &ev, nil
}

func (ts *thinkingToolService) ReverseEngineer(ctx context.Context, in domain.ReverseInput) (*domain.ReverseAnalysis, error) {
	if err := requireFields(map[string]string{
		"problemType": in.ProblemType,
		"problem":     in.Problem,
	}, "problemType", "problem"); err != nil {
		return nil, err
	}

	ra := ts.coach.ReverseEngineer(ctx, in)
	if _, err := ts.activities.Record(ctx, domain.UserActivity{
		UserID:       domain.DemoUserID,
		ActivityType: domain.ActivityReverseEngineering,
		Title:        fmt.Sprintf("Idea Journey %s: %s...", in.ProblemType, preview(in.Problem)),
		Description:  in.Problem,
	}); err != nil {
		return nil, err
	}
	if err := ts.history.RecordReverse(ctx, domain.NewReverseHistory(in, ra)); err != nil {
		ts.logHistoryFailure(ctx, domain.HistoryReverse, err)
	}
	return &ra, nil
}

func (ts *thinkingToolService) Verify(ctx context.Context, in domain.VerifyInput) (*domain.Verification, error) {
	if err := requireFields(map[string]string{
		"problem":         in.Problem,
		"thinkingProcess": in.ThinkingProcess,
		"conclusion":      in.Conclusion,
	}, "problem", "thinkingProcess", "conclusion"); err != nil {
		return nil, err
	}

	v := ts.coach.VerifyThinking(ctx, in)
	score := int(math.Round(v.Confidence * 100))
	if _, err := ts.activities.Record(ctx, domain.UserActivity{
		UserID:       domain.DemoUserID,
		ActivityType: domain.ActivityThinkingVerification,
		Title:        fmt.Sprintf("Verified Thinking: %s...", preview(in.Problem)),
		Description:  in.Problem,
		Score:        &score,
	}); err != nil {
		return nil, err
	}
	if err := ts.history.RecordVerify(ctx, domain.NewVerifyHistory(in, v)); err != nil {
		ts.logHistoryFailure(ctx, domain.HistoryVerify, err)
	}
	return &v, nil
}

// History is a secondary record; the activity above is the source of truth.
func (ts *thinkingToolService) logHistoryFailure(ctx context.Context, kind domain.HistoryKind, err error) {
	ts.log.Error("Failed to record history", append([]interface{}{
		"kind", kind,
		"error", err,
	}, ctxutil.LogFields(ctx)...)...)
}

// requireFields checks names in order so the first missing field is reported.
func requireFields(values map[string]string, order ...string) error {
	for _, name := range order {
		if strings.TrimSpace(values[name]) == "" {
			return apierr.BadRequest(name + " is required")
		}
	}
	return nil
}

// preview is the first 30 characters of s.
func preview(s string) string {
	r := []rune(s)
	if len(r) > 30 {
		r = r[:30]
	}
	return string(r)
}
