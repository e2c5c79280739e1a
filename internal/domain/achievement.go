package domain

import "time"

type Achievement struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
	Icon        string `gorm:"not null" json:"icon"`
	Condition   string `gorm:"not null" json:"condition"`
}

func (Achievement) TableName() string { return "achievements" }

type UserAchievement struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	UserID        int       `gorm:"not null;index" json:"userId"`
	AchievementID int       `gorm:"not null;index" json:"achievementId"`
	UnlockedAt    time.Time `gorm:"not null" json:"unlockedAt"`
}

func (UserAchievement) TableName() string { return "user_achievements" }

// AchievementStatus is an achievement annotated with the user's unlock state.
type AchievementStatus struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt"`
}
