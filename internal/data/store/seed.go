package store

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/abdos10/think-like-genius/internal/domain"
	"github.com/abdos10/think-like-genius/internal/pkg/pointers"
)

var seedSkills = []domain.ThinkingSkill{
	{Name: "Critical Thinking", Description: "Analyze and evaluate information to form a judgment", Color: "#ef476f"},
	{Name: "Creative Thinking", Description: "Generate innovative ideas and solutions", Color: "#06d6a0"},
	{Name: "Strategic Thinking", Description: "Plan and make decisions for long-term success", Color: "#118ab2"},
	{Name: "Analytical Thinking", Description: "Break complex problems into parts to find solutions", Color: "#ffd166"},
}

var seedUserSkills = []struct {
	progress int
	level    string
}{
	{85, "Advanced"},
	{65, "Intermediate"},
	{60, "Intermediate"},
	{80, "Advanced"},
}

// skill ids below refer to seedSkills order (1-based).
var seedExercises = []domain.Exercise{
	{Title: "Logical Fallacies Challenge", Description: "Identify common logical fallacies in arguments", SkillID: 1, Duration: 20, Difficulty: "Intermediate"},
	{Title: "Lateral Thinking Puzzles", Description: "Solve problems using indirect and creative approaches", SkillID: 2, Duration: 25, Difficulty: "Intermediate"},
	{Title: "Market Entry Strategy", Description: "Develop a strategic plan for a company entering a new market", SkillID: 3, Duration: 30, Difficulty: "Advanced"},
	{Title: "Data Pattern Recognition", Description: "Identify patterns and trends in datasets", SkillID: 4, Duration: 15, Difficulty: "Beginner"},
	{Title: "Divergent Thinking Challenge", Description: "Generate multiple solutions to everyday problems", SkillID: 2, Duration: 20, Difficulty: "Intermediate"},
}

var seedAchievements = []domain.Achievement{
	{Name: "Critical Thinker", Description: "Complete 10 critical thinking exercises", Icon: "ri-award-line", Condition: "exercises.critical >= 10"},
	{Name: "Strategic Master", Description: "75% accuracy in strategic exercises", Icon: "ri-rocket-line", Condition: "accuracy.strategic >= 75"},
	{Name: "Consistency", Description: "Practice for 5 consecutive days", Icon: "ri-timer-line", Condition: "streak >= 5"},
	{Name: "Idea Generator", Description: "Create 50 unique ideas in exercises", Icon: "ri-lightbulb-line", Condition: "ideas >= 50"},
}

var seedWeeklyMinutes = []int{30, 45, 60, 35, 50, 40, 45}

// Seed loads the demo fixtures into an empty store. Ids are assigned in
// insertion order, so the demo user gets id 1.
func Seed(ctx context.Context, s Store, now time.Time) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed user password: %w", err)
	}
	user, err := s.CreateUser(ctx, domain.User{
		Username:    "Abdo",
		Password:    string(hash),
		DisplayName: "Sabbagh",
		Level:       "Intermediate Thinker",
	})
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	skillIDs := make([]int, 0, len(seedSkills))
	for _, sk := range seedSkills {
		created, err := s.CreateSkill(ctx, sk)
		if err != nil {
			return fmt.Errorf("seed skill %q: %w", sk.Name, err)
		}
		skillIDs = append(skillIDs, created.ID)
	}

	for i, us := range seedUserSkills {
		_, err := s.CreateUserSkill(ctx, domain.UserSkill{
			UserID:   user.ID,
			SkillID:  skillIDs[i],
			Progress: us.progress,
			Level:    us.level,
		})
		if err != nil {
			return fmt.Errorf("seed user skill: %w", err)
		}
	}

	exerciseIDs := make([]int, 0, len(seedExercises))
	for _, ex := range seedExercises {
		ex.SkillID = skillIDs[ex.SkillID-1]
		created, err := s.CreateExercise(ctx, ex)
		if err != nil {
			return fmt.Errorf("seed exercise %q: %w", ex.Title, err)
		}
		exerciseIDs = append(exerciseIDs, created.ID)
	}

	activities := []domain.UserActivity{
		{
			UserID:       user.ID,
			ActivityType: domain.ActivityExercise,
			SkillID:      pointers.Int(skillIDs[0]),
			ExerciseID:   pointers.Int(exerciseIDs[0]),
			Title:        "Completed Critical Thinking Exercise",
			Description:  "Logical Fallacies Challenge - Score: 92%",
			Score:        pointers.Int(92),
			CreatedAt:    now.Add(-2 * time.Hour),
		},
		{
			UserID:       user.ID,
			ActivityType: domain.ActivityExercise,
			SkillID:      pointers.Int(skillIDs[1]),
			ExerciseID:   pointers.Int(exerciseIDs[1]),
			Title:        "Started Creative Thinking Session",
			Description:  "Lateral Thinking Puzzles - In progress",
			CreatedAt:    now.Add(-24 * time.Hour),
		},
		{
			UserID:       user.ID,
			ActivityType: domain.ActivityProblem,
			SkillID:      pointers.Int(skillIDs[2]),
			Title:        "Solved Business Problem",
			Description:  "Market Entry Strategy - Score: 78%",
			Score:        pointers.Int(78),
			CreatedAt:    now.Add(-48 * time.Hour),
		},
	}
	for _, a := range activities {
		if _, err := s.CreateUserActivity(ctx, a); err != nil {
			return fmt.Errorf("seed activity: %w", err)
		}
	}

	achievementIDs := make([]int, 0, len(seedAchievements))
	for _, a := range seedAchievements {
		created, err := s.CreateAchievement(ctx, a)
		if err != nil {
			return fmt.Errorf("seed achievement %q: %w", a.Name, err)
		}
		achievementIDs = append(achievementIDs, created.ID)
	}

	unlocked := []domain.UserAchievement{
		{UserID: user.ID, AchievementID: achievementIDs[0], UnlockedAt: now.Add(-5 * 24 * time.Hour)},
		{UserID: user.ID, AchievementID: achievementIDs[2], UnlockedAt: now.Add(-2 * 24 * time.Hour)},
	}
	for _, ua := range unlocked {
		if _, err := s.CreateUserAchievement(ctx, ua); err != nil {
			return fmt.Errorf("seed user achievement: %w", err)
		}
	}

	weekStart := domain.WeekStart(now)
	for i, minutes := range seedWeeklyMinutes {
		_, err := s.CreateWeeklyActivity(ctx, domain.WeeklyActivity{
			UserID:        user.ID,
			DayOfWeek:     domain.WeekDays[i],
			MinutesSpent:  minutes,
			WeekStartDate: weekStart,
		})
		if err != nil {
			return fmt.Errorf("seed weekly activity: %w", err)
		}
	}
	return nil
}
