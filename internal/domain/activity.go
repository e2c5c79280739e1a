package domain

import "time"

type ActivityType string

const (
	ActivityExercise             ActivityType = "exercise"
	ActivityProblem              ActivityType = "problem"
	ActivityThinkingEvaluation   ActivityType = "thinking_evaluation"
	ActivityReverseEngineering   ActivityType = "reverse_engineering"
	ActivityThinkingVerification ActivityType = "thinking_verification"
)

// IsThinkingTool reports whether t is recorded by one of the three thinking tools.
func (t ActivityType) IsThinkingTool() bool {
	switch t {
	case ActivityThinkingEvaluation, ActivityReverseEngineering, ActivityThinkingVerification:
		return true
	}
	return false
}

type UserActivity struct {
	ID           int          `gorm:"primaryKey" json:"id"`
	UserID       int          `gorm:"not null;index" json:"userId"`
	ActivityType ActivityType `gorm:"not null;index" json:"activityType"`
	SkillID      *int         `json:"skillId"`
	ExerciseID   *int         `json:"exerciseId"`
	Title        string       `gorm:"not null" json:"title"`
	Description  string       `gorm:"not null" json:"description"`
	Score        *int         `json:"score"`
	CreatedAt    time.Time    `gorm:"not null;index" json:"createdAt"`
}

func (UserActivity) TableName() string { return "user_activities" }

// UserActivityDetail is an activity joined with its skill and exercise.
type UserActivityDetail struct {
	UserActivity
	Skill    *ThinkingSkill `json:"skill"`
	Exercise *Exercise      `json:"exercise"`
}

type WeeklyActivity struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	UserID        int       `gorm:"not null;index" json:"userId"`
	DayOfWeek     string    `gorm:"not null" json:"dayOfWeek"`
	MinutesSpent  int       `gorm:"not null" json:"minutesSpent"`
	WeekStartDate time.Time `gorm:"not null;index" json:"weekStartDate"`
}

func (WeeklyActivity) TableName() string { return "weekly_activities" }

// WeekDays lists day labels in week order starting Monday.
var WeekDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekStart returns local midnight of the Monday of t's week. Sunday belongs
// to the week that started six days earlier.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// DayLabel returns the WeekDays label for t.
func DayLabel(t time.Time) string {
	return WeekDays[(int(t.Weekday())+6)%7]
}
