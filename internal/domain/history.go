package domain

import (
	"time"

	"gorm.io/datatypes"
)

// TabHistory is the last saved state of a UI tab, keyed by TabID.
type TabHistory struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	TabID     string         `gorm:"uniqueIndex;not null" json:"tabId"`
	Title     string         `gorm:"not null" json:"title"`
	Content   datatypes.JSON `json:"content"`
	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
}

func (TabHistory) TableName() string { return "tab_history" }

type EvaluateHistory struct {
	ID int `gorm:"primaryKey" json:"id"`
	EvaluateInput
	Score        int       `json:"score"`
	Feedback     string    `json:"feedback"`
	Strengths    []string  `gorm:"serializer:json" json:"strengths"`
	Weaknesses   []string  `gorm:"serializer:json" json:"weaknesses"`
	Improvements []string  `gorm:"serializer:json" json:"improvements"`
	CreatedAt    time.Time `gorm:"not null;index" json:"createdAt"`
}

func (EvaluateHistory) TableName() string { return "evaluate_history" }

func NewEvaluateHistory(in EvaluateInput, ev Evaluation) EvaluateHistory {
	return EvaluateHistory{
		EvaluateInput: in,
		Score:         ev.Score,
		Feedback:      ev.Feedback,
		Strengths:     ev.Strengths,
		Weaknesses:    ev.Weaknesses,
		Improvements:  ev.Improvements,
	}
}

type ReverseHistory struct {
	ID int `gorm:"primaryKey" json:"id"`
	ReverseInput
	Process    []ReverseStep `gorm:"serializer:json" json:"process"`
	Principles []string      `gorm:"serializer:json" json:"principles"`
	Insights   []string      `gorm:"serializer:json" json:"insights"`
	CreatedAt  time.Time     `gorm:"not null;index" json:"createdAt"`
}

func (ReverseHistory) TableName() string { return "reverse_history" }

func NewReverseHistory(in ReverseInput, ra ReverseAnalysis) ReverseHistory {
	return ReverseHistory{
		ReverseInput: in,
		Process:      ra.Process,
		Principles:   ra.Principles,
		Insights:     ra.Insights,
	}
}

type VerifyHistory struct {
	ID int `gorm:"primaryKey" json:"id"`
	VerifyInput
	IsValid      bool      `json:"isValid"`
	Confidence   float64   `json:"confidence"`
	Gaps         []string  `gorm:"serializer:json" json:"gaps"`
	Alternatives []string  `gorm:"serializer:json" json:"alternatives"`
	CreatedAt    time.Time `gorm:"not null;index" json:"createdAt"`
}

func (VerifyHistory) TableName() string { return "verify_history" }

func NewVerifyHistory(in VerifyInput, v Verification) VerifyHistory {
	return VerifyHistory{
		VerifyInput:  in,
		IsValid:      v.IsValid,
		Confidence:   v.Confidence,
		Gaps:         v.Gaps,
		Alternatives: v.Alternatives,
	}
}

// HistoryKind names one of the three tool histories.
type HistoryKind string

const (
	HistoryEvaluate HistoryKind = "evaluate"
	HistoryReverse  HistoryKind = "reverse"
	HistoryVerify   HistoryKind = "verify"
)

func ParseHistoryKind(raw string) (HistoryKind, bool) {
	switch HistoryKind(raw) {
	case HistoryEvaluate, HistoryReverse, HistoryVerify:
		return HistoryKind(raw), true
	}
	return "", false
}
