package domain

// DemoUserID is the single hardcoded user every per-user endpoint serves.
const DemoUserID = 1

const (
	DefaultUserLevel  = "Beginner Thinker"
	DefaultSkillLevel = "Beginner"
)

type User struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Username    string `gorm:"uniqueIndex;not null" json:"username"`
	Password    string `gorm:"not null" json:"-"`
	DisplayName string `gorm:"not null" json:"displayName"`
	Level       string `gorm:"not null;default:'Beginner Thinker'" json:"level"`
}

func (User) TableName() string { return "users" }

// UserPatch holds the optional fields of a user update.
type UserPatch struct {
	DisplayName *string
	Level       *string
	Password    *string
}
