package domain

import (
	"strings"
	"time"
)

// ThinkingType is one of the four coached thinking skills.
type ThinkingType string

const (
	ThinkingCritical   ThinkingType = "Critical"
	ThinkingCreative   ThinkingType = "Creative"
	ThinkingStrategic  ThinkingType = "Strategic"
	ThinkingAnalytical ThinkingType = "Analytical"
)

var ThinkingTypes = []ThinkingType{ThinkingCritical, ThinkingCreative, ThinkingStrategic, ThinkingAnalytical}

func ParseThinkingType(raw string) (ThinkingType, bool) {
	for _, t := range ThinkingTypes {
		if string(t) == strings.TrimSpace(raw) {
			return t, true
		}
	}
	return "", false
}

// SkillName is the display name of the seeded skill for t.
func (t ThinkingType) SkillName() string {
	return string(t) + " Thinking"
}

type ThinkingSkill struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
	Color       string `gorm:"not null" json:"color"`
}

func (ThinkingSkill) TableName() string { return "thinking_skills" }

type UserSkill struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	UserID      int       `gorm:"not null;index" json:"userId"`
	SkillID     int       `gorm:"not null;index" json:"skillId"`
	Progress    int       `gorm:"not null;default:0" json:"progress"`
	Level       string    `gorm:"not null;default:'Beginner'" json:"level"`
	LastUpdated time.Time `gorm:"not null" json:"lastUpdated"`
}

func (UserSkill) TableName() string { return "user_skills" }

type UserSkillPatch struct {
	Progress *int
	Level    *string
}

// UserSkillWithSkill is a user skill joined with its skill definition.
type UserSkillWithSkill struct {
	UserSkill
	Skill *ThinkingSkill `json:"skill"`
}

type Exercise struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	SkillID     int    `gorm:"not null;index" json:"skillId"`
	Duration    int    `gorm:"not null" json:"duration"`
	Difficulty  string `gorm:"not null;default:'Beginner'" json:"difficulty"`
}

func (Exercise) TableName() string { return "exercises" }
