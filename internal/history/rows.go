package history

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/abdos10/think-like-genius/internal/domain"
)

// Remote rows use the snake_case column names of the hosted tables.

type tabRow struct {
	ID        string          `json:"id,omitempty"`
	TabID     string          `json:"tab_id"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}

func toTabRow(t domain.TabHistory) tabRow {
	content := json.RawMessage(t.Content)
	if len(content) == 0 {
		content = json.RawMessage("null")
	}
	return tabRow{
		ID:        t.ID,
		TabID:     t.TabID,
		Title:     t.Title,
		Content:   content,
		CreatedAt: t.CreatedAt.UTC(),
	}
}

func (r tabRow) toDomain() domain.TabHistory {
	return domain.TabHistory{
		ID:        r.ID,
		TabID:     r.TabID,
		Title:     r.Title,
		Content:   datatypes.JSON(r.Content),
		CreatedAt: r.CreatedAt,
	}
}

type evaluateRow struct {
	ID              int       `json:"id,omitempty"`
	ProblemType     string    `json:"problem_type"`
	Description     string    `json:"description"`
	ThinkingProcess string    `json:"thinking_process"`
	ExpectedOutcome string    `json:"expected_outcome"`
	Score           int       `json:"score"`
	Feedback        string    `json:"feedback"`
	Strengths       []string  `json:"strengths"`
	Weaknesses      []string  `json:"weaknesses"`
	Improvements    []string  `json:"improvements"`
	CreatedAt       time.Time `json:"created_at"`
}

func toEvaluateRow(h domain.EvaluateHistory) evaluateRow {
	return evaluateRow{
		ID:              h.ID,
		ProblemType:     h.ProblemType,
		Description:     h.Description,
		ThinkingProcess: h.ThinkingProcess,
		ExpectedOutcome: h.ExpectedOutcome,
		Score:           h.Score,
		Feedback:        h.Feedback,
		Strengths:       h.Strengths,
		Weaknesses:      h.Weaknesses,
		Improvements:    h.Improvements,
		CreatedAt:       h.CreatedAt.UTC(),
	}
}

func (r evaluateRow) toDomain() domain.EvaluateHistory {
	return domain.EvaluateHistory{
		ID: r.ID,
		EvaluateInput: domain.EvaluateInput{
			ProblemType:     r.ProblemType,
			Description:     r.Description,
			ThinkingProcess: r.ThinkingProcess,
			ExpectedOutcome: r.ExpectedOutcome,
		},
		Score:        r.Score,
		Feedback:     r.Feedback,
		Strengths:    r.Strengths,
		Weaknesses:   r.Weaknesses,
		Improvements: r.Improvements,
		CreatedAt:    r.CreatedAt,
	}
}

type reverseRow struct {
	ID          int                  `json:"id,omitempty"`
	ProblemType string               `json:"problem_type"`
	Problem     string               `json:"problem"`
	Solution    string               `json:"solution"`
	Process     []domain.ReverseStep `json:"process"`
	Principles  []string             `json:"principles"`
	Insights    []string             `json:"insights"`
	CreatedAt   time.Time            `json:"created_at"`
}

func toReverseRow(h domain.ReverseHistory) reverseRow {
	return reverseRow{
		ID:          h.ID,
		ProblemType: h.ProblemType,
		Problem:     h.Problem,
		Solution:    h.Solution,
		Process:     h.Process,
		Principles:  h.Principles,
		Insights:    h.Insights,
		CreatedAt:   h.CreatedAt.UTC(),
	}
}

func (r reverseRow) toDomain() domain.ReverseHistory {
	return domain.ReverseHistory{
		ID: r.ID,
		ReverseInput: domain.ReverseInput{
			ProblemType: r.ProblemType,
			Problem:     r.Problem,
			Solution:    r.Solution,
		},
		Process:    r.Process,
		Principles: r.Principles,
		Insights:   r.Insights,
		CreatedAt:  r.CreatedAt,
	}
}

type verifyRow struct {
	ID              int       `json:"id,omitempty"`
	Problem         string    `json:"problem"`
	ThinkingProcess string    `json:"thinking_process"`
	Conclusion      string    `json:"conclusion"`
	IsValid         bool      `json:"is_valid"`
	Confidence      float64   `json:"confidence"`
	Gaps            []string  `json:"gaps"`
	Alternatives    []string  `json:"alternatives"`
	CreatedAt       time.Time `json:"created_at"`
}

func toVerifyRow(h domain.VerifyHistory) verifyRow {
	return verifyRow{
		ID:              h.ID,
		Problem:         h.Problem,
		ThinkingProcess: h.ThinkingProcess,
		Conclusion:      h.Conclusion,
		IsValid:         h.IsValid,
		Confidence:      h.Confidence,
		Gaps:            h.Gaps,
		Alternatives:    h.Alternatives,
		CreatedAt:       h.CreatedAt.UTC(),
	}
}

func (r verifyRow) toDomain() domain.VerifyHistory {
	return domain.VerifyHistory{
		ID: r.ID,
		VerifyInput: domain.VerifyInput{
			Problem:         r.Problem,
			ThinkingProcess: r.ThinkingProcess,
			Conclusion:      r.Conclusion,
		},
		IsValid:      r.IsValid,
		Confidence:   r.Confidence,
		Gaps:         r.Gaps,
		Alternatives: r.Alternatives,
		CreatedAt:    r.CreatedAt,
	}
}
