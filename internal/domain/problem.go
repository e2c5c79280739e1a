package domain

import "time"

type ProblemType string

const (
	ProblemRealLife ProblemType = "Real-life"
	ProblemCoding   ProblemType = "Coding"
	ProblemMath     ProblemType = "Math"
	ProblemBusiness ProblemType = "Business"
	ProblemDesign   ProblemType = "Design"
)

type ThinkingStep struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type ThinkingProcess struct {
	Steps []ThinkingStep `json:"steps"`
}

type UserProblem struct {
	ID              int              `gorm:"primaryKey" json:"id"`
	UserID          int              `gorm:"not null;index" json:"userId"`
	ProblemType     string           `gorm:"not null" json:"problemType"`
	Description     string           `gorm:"not null" json:"description"`
	ThinkingProcess *ThinkingProcess `gorm:"serializer:json" json:"thinkingProcess"`
	CreatedAt       time.Time        `gorm:"not null;index" json:"createdAt"`
}

func (UserProblem) TableName() string { return "user_problems" }
