package thinking

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/abdos10/think-like-genius/internal/domain"
	"github.com/abdos10/think-like-genius/internal/platform/ctxutil"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
	"github.com/abdos10/think-like-genius/internal/platform/openai"
)

const (
	OpThinkingProcess = "thinking_process"
	OpEvaluate        = "evaluate"
	OpExercise        = "exercise"
	OpReverse         = "reverse"
	OpVerify          = "verify"

	OutcomeOK        = "ok"
	OutcomeRecovered = "recovered"
	OutcomeFallback  = "fallback"
)

// Coach runs the LLM-backed thinking operations. Every method always returns
// a usable payload: model failures degrade to a fixed fallback.
type Coach interface {
	GenerateThinkingProcess(ctx context.Context, problemType, description string) domain.ThinkingProcess
	EvaluateThinking(ctx context.Context, in domain.EvaluateInput) domain.Evaluation
	GenerateExercise(ctx context.Context, t domain.ThinkingType) domain.GeneratedExercise
	ReverseEngineer(ctx context.Context, in domain.ReverseInput) domain.ReverseAnalysis
	VerifyThinking(ctx context.Context, in domain.VerifyInput) domain.Verification
}

// Observer is told how each operation ended.
type Observer interface {
	ObserveThinkingOutcome(op, outcome string)
}

type coach struct {
	log      *logger.Logger
	llm      openai.Client
	observer Observer
}

func NewCoach(log *logger.Logger, llm openai.Client, observer Observer) Coach {
	return &coach{
		log:      log.With("service", "ThinkingCoach"),
		llm:      llm,
		observer: observer,
	}
}

func (c *coach) call(ctx context.Context, p prompt) (string, error) {
	if c.llm == nil {
		return "", errors.New("llm client not configured")
	}
	return c.llm.Chat(ctx, openai.ChatRequest{
		System:    p.system,
		User:      p.user,
		MaxTokens: p.maxTokens,
		JSON:      true,
	})
}

func (c *coach) fail(ctx context.Context, op string, err error) {
	c.log.Warn("Thinking operation fell back", append([]interface{}{
		"op", op,
		"error", err.Error(),
	}, ctxutil.LogFields(ctx)...)...)
	c.observe(op, OutcomeFallback)
}

func (c *coach) observe(op, outcome string) {
	if c.observer != nil {
		c.observer.ObserveThinkingOutcome(op, outcome)
	}
}

// ---------------- Thinking process ----------------

type rawStep struct {
	Title       string   `json:"title"`
	Name        string   `json:"name"`
	Step        string   `json:"step"`
	Content     flexText `json:"content"`
	Description flexText `json:"description"`
	Explanation flexText `json:"explanation"`
}

func (r rawStep) toStep(n int) domain.ThinkingStep {
	title := firstNonEmpty(r.Title, r.Name, r.Step)
	if title == "" {
		title = "Step " + strconv.Itoa(n)
	}
	return domain.ThinkingStep{
		Title:   title,
		Content: firstNonEmpty(string(r.Content), string(r.Description), string(r.Explanation)),
	}
}

func (c *coach) GenerateThinkingProcess(ctx context.Context, problemType, description string) domain.ThinkingProcess {
	content, err := c.call(ctx, thinkingProcessPrompt(problemType, description))
	if err != nil {
		c.fail(ctx, OpThinkingProcess, err)
		return fallbackThinkingProcess()
	}

	var parsed struct {
		Steps []rawStep `json:"steps"`
	}
	if err := decodeJSON(content, &parsed); err == nil && len(parsed.Steps) > 0 {
		out := domain.ThinkingProcess{Steps: make([]domain.ThinkingStep, 0, len(parsed.Steps))}
		for i, rs := range parsed.Steps {
			out.Steps = append(out.Steps, rs.toStep(i+1))
		}
		c.observe(OpThinkingProcess, OutcomeOK)
		return out
	}

	if steps := extractSteps(content); len(steps) > 0 {
		c.log.Info("Recovered thinking steps from prose", "steps", len(steps))
		c.observe(OpThinkingProcess, OutcomeRecovered)
		return domain.ThinkingProcess{Steps: steps}
	}
	c.fail(ctx, OpThinkingProcess, errors.New("no steps in model output"))
	return fallbackThinkingProcess()
}

// ---------------- Evaluate ----------------

func (c *coach) EvaluateThinking(ctx context.Context, in domain.EvaluateInput) domain.Evaluation {
	content, err := c.call(ctx, evaluatePrompt(in))
	if err != nil {
		c.fail(ctx, OpEvaluate, err)
		return fallbackEvaluation()
	}
	var parsed struct {
		Score        flexFloat `json:"score"`
		Feedback     flexText  `json:"feedback"`
		Strengths    []string  `json:"strengths"`
		Weaknesses   []string  `json:"weaknesses"`
		Improvements []string  `json:"improvements"`
	}
	if err := decodeJSON(content, &parsed); err != nil {
		c.fail(ctx, OpEvaluate, err)
		return fallbackEvaluation()
	}
	c.observe(OpEvaluate, OutcomeOK)
	return domain.Evaluation{
		Score:        clampInt(int(math.Round(float64(parsed.Score))), 0, 100),
		Feedback:     string(parsed.Feedback),
		Strengths:    nonNil(parsed.Strengths),
		Weaknesses:   nonNil(parsed.Weaknesses),
		Improvements: nonNil(parsed.Improvements),
	}
}

// ---------------- Exercise ----------------

func (c *coach) GenerateExercise(ctx context.Context, t domain.ThinkingType) domain.GeneratedExercise {
	content, err := c.call(ctx, exercisePrompt(t))
	if err != nil {
		c.fail(ctx, OpExercise, err)
		return fallbackExercise(t)
	}
	var parsed struct {
		Title        string   `json:"title"`
		Description  flexText `json:"description"`
		Difficulty   string   `json:"difficulty"`
		Duration     flexInt  `json:"duration"`
		Instructions flexText `json:"instructions"`
		Evaluation   flexText `json:"evaluation"`
	}
	if err := decodeJSON(content, &parsed); err != nil || strings.TrimSpace(parsed.Title) == "" {
		if err == nil {
			err = errors.New("exercise without title")
		}
		c.fail(ctx, OpExercise, err)
		return fallbackExercise(t)
	}
	out := domain.GeneratedExercise{
		Title:        strings.TrimSpace(parsed.Title),
		Description:  string(parsed.Description),
		Difficulty:   normalizeDifficulty(parsed.Difficulty),
		Duration:     int(parsed.Duration),
		Instructions: string(parsed.Instructions),
		Evaluation:   string(parsed.Evaluation),
	}
	if out.Duration <= 0 {
		out.Duration = 20
	}
	c.observe(OpExercise, OutcomeOK)
	return out
}

// ---------------- Reverse engineer ----------------

func (c *coach) ReverseEngineer(ctx context.Context, in domain.ReverseInput) domain.ReverseAnalysis {
	content, err := c.call(ctx, reversePrompt(in))
	if err != nil {
		c.fail(ctx, OpReverse, err)
		return fallbackReverse()
	}
	var parsed struct {
		Process []struct {
			Step      string   `json:"step"`
			Title     string   `json:"title"`
			Reasoning flexText `json:"reasoning"`
		} `json:"process"`
		Principles []string `json:"principles"`
		Insights   []string `json:"insights"`
	}
	if err := decodeJSON(content, &parsed); err != nil || len(parsed.Process) == 0 {
		if err == nil {
			err = errors.New("empty process")
		}
		c.fail(ctx, OpReverse, err)
		return fallbackReverse()
	}
	out := domain.ReverseAnalysis{
		Process:    make([]domain.ReverseStep, 0, len(parsed.Process)),
		Principles: nonNil(parsed.Principles),
		Insights:   nonNil(parsed.Insights),
	}
	for _, p := range parsed.Process {
		out.Process = append(out.Process, domain.ReverseStep{
			Step:      firstNonEmpty(p.Step, p.Title),
			Reasoning: string(p.Reasoning),
		})
	}
	c.observe(OpReverse, OutcomeOK)
	return out
}

// ---------------- Verify ----------------

func (c *coach) VerifyThinking(ctx context.Context, in domain.VerifyInput) domain.Verification {
	content, err := c.call(ctx, verifyPrompt(in))
	if err != nil {
		c.fail(ctx, OpVerify, err)
		return fallbackVerification()
	}
	var parsed struct {
		IsValid      flexBool  `json:"isValid"`
		Confidence   flexFloat `json:"confidence"`
		Gaps         []string  `json:"gaps"`
		Alternatives []string  `json:"alternatives"`
	}
	if err := decodeJSON(content, &parsed); err != nil {
		c.fail(ctx, OpVerify, err)
		return fallbackVerification()
	}
	c.observe(OpVerify, OutcomeOK)
	return domain.Verification{
		IsValid:      bool(parsed.IsValid),
		Confidence:   normalizeConfidence(float64(parsed.Confidence)),
		Gaps:         nonNil(parsed.Gaps),
		Alternatives: nonNil(parsed.Alternatives),
	}
}

// ---------------- helpers ----------------

// normalizeConfidence maps percentages (e.g. 85) onto 0..1 and clamps.
func normalizeConfidence(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v > 1 && v <= 100 {
		v = v / 100
	}
	return math.Max(0, math.Min(1, v))
}

func normalizeDifficulty(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "beginner", "easy":
		return "Beginner"
	case "advanced", "hard":
		return "Advanced"
	default:
		return "Intermediate"
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
