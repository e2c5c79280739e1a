package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/abdos10/think-like-genius/internal/data/store"
	"github.com/abdos10/think-like-genius/internal/domain"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

type AchievementService interface {
	List(ctx context.Context) ([]domain.Achievement, error)
	// ForUser returns every achievement with the demo user's unlock state.
	ForUser(ctx context.Context) ([]domain.AchievementStatus, error)
	AchievementChecker
}

type achievementService struct {
	log   *logger.Logger
	store store.Store
	now   func() time.Time
	// serializes Check so concurrent activities cannot unlock twice
	mu sync.Mutex
}

func NewAchievementService(log *logger.Logger, st store.Store, now func() time.Time) AchievementService {
	if now == nil {
		now = time.Now
	}
	return &achievementService{
		log:   log.With("service", "AchievementService"),
		store: st,
		now:   now,
	}
}

func (as *achievementService) List(ctx context.Context) ([]domain.Achievement, error) {
	return as.store.ListAchievements(ctx)
}

func (as *achievementService) ForUser(ctx context.Context) ([]domain.AchievementStatus, error) {
	all, err := as.store.ListAchievements(ctx)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	unlocked, err := as.store.ListUserAchievements(ctx, domain.DemoUserID)
	if err != nil {
		return nil, fmt.Errorf("list user achievements: %w", err)
	}
	byID := make(map[int]time.Time, len(unlocked))
	for _, ua := range unlocked {
		byID[ua.AchievementID] = ua.UnlockedAt
	}
	out := make([]domain.AchievementStatus, 0, len(all))
	for _, a := range all {
		st := domain.AchievementStatus{Achievement: a}
		if at, ok := byID[a.ID]; ok {
			at := at
			st.Unlocked = true
			st.UnlockedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}

func (as *achievementService) Check(ctx context.Context, userID int) ([]domain.UserAchievement, error) {
	as.mu.Lock()
	defer as.mu.Unlock()

	all, err := as.store.ListAchievements(ctx)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	owned, err := as.store.ListUserAchievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user achievements: %w", err)
	}
	have := make(map[int]bool, len(owned))
	for _, ua := range owned {
		have[ua.AchievementID] = true
	}

	var stats *activityStats
	var created []domain.UserAchievement
	for _, a := range all {
		if have[a.ID] {
			continue
		}
		cond, err := ParseCondition(a.Condition)
		if err != nil {
			as.log.Debug("Skipping achievement with unsupported condition", "achievement_id", a.ID, "error", err)
			continue
		}
		if stats == nil {
			if stats, err = as.loadStats(ctx, userID); err != nil {
				return nil, err
			}
		}
		if !cond.holds(stats) {
			continue
		}
		ua, err := as.store.CreateUserAchievement(ctx, domain.UserAchievement{
			UserID:        userID,
			AchievementID: a.ID,
			UnlockedAt:    as.now(),
		})
		if err != nil {
			return created, fmt.Errorf("unlock achievement %d: %w", a.ID, err)
		}
		as.log.Info("Achievement unlocked", "user_id", userID, "achievement", a.Name)
		created = append(created, *ua)
	}
	return created, nil
}

func (as *achievementService) loadStats(ctx context.Context, userID int) (*activityStats, error) {
	acts, err := as.store.ListUserActivities(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	skills, err := as.store.ListSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return newActivityStats(acts, skills, as.now()), nil
}

// ---------------- Conditions ----------------

var conditionPattern = regexp.MustCompile(`^\s*([a-zA-Z]+(?:\.[a-zA-Z]+)?)\s*>=\s*(\d+(?:\.\d+)?)\s*$`)

// Condition is a parsed "<metric> >= <n>" achievement rule.
type Condition struct {
	Metric    string
	Skill     string
	Threshold float64
}

// ParseCondition accepts exercises.<skill>, accuracy.<skill>, streak and ideas.
func ParseCondition(raw string) (Condition, error) {
	m := conditionPattern.FindStringSubmatch(raw)
	if m == nil {
		return Condition{}, fmt.Errorf("malformed condition %q", raw)
	}
	threshold, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Condition{}, fmt.Errorf("bad threshold in %q: %w", raw, err)
	}
	metric, skill, _ := strings.Cut(strings.ToLower(m[1]), ".")
	switch metric {
	case "exercises", "accuracy":
		if skill == "" {
			return Condition{}, fmt.Errorf("%s needs a skill in %q", metric, raw)
		}
	case "streak", "ideas":
		if skill != "" {
			return Condition{}, fmt.Errorf("%s takes no skill in %q", metric, raw)
		}
	default:
		return Condition{}, fmt.Errorf("unknown metric %q", metric)
	}
	return Condition{Metric: metric, Skill: skill, Threshold: threshold}, nil
}

func (c Condition) holds(s *activityStats) bool {
	var v float64
	switch c.Metric {
	case "exercises":
		v = float64(s.exercises[c.Skill])
	case "accuracy":
		scores := s.scores[c.Skill]
		if len(scores) == 0 {
			return false
		}
		sum := 0
		for _, sc := range scores {
			sum += sc
		}
		v = float64(sum) / float64(len(scores))
	case "streak":
		v = float64(s.streak)
	case "ideas":
		v = float64(s.ideas)
	default:
		return false
	}
	return v >= c.Threshold
}

type activityStats struct {
	// keyed by lowercase skill prefix, e.g. "critical"
	exercises map[string]int
	scores    map[string][]int
	streak    int
	ideas     int
}

func newActivityStats(acts []domain.UserActivity, skills []domain.ThinkingSkill, now time.Time) *activityStats {
	skillKey := make(map[int]string, len(skills))
	for _, sk := range skills {
		skillKey[sk.ID] = metricSkillKey(sk.Name)
	}
	s := &activityStats{
		exercises: map[string]int{},
		scores:    map[string][]int{},
	}
	days := map[string]bool{}
	for _, a := range acts {
		days[a.CreatedAt.In(now.Location()).Format("2006-01-02")] = true
		switch a.ActivityType {
		case domain.ActivityReverseEngineering, domain.ActivityThinkingEvaluation:
			s.ideas++
		case domain.ActivityExercise:
			if a.SkillID == nil {
				continue
			}
			key, ok := skillKey[*a.SkillID]
			if !ok {
				continue
			}
			s.exercises[key]++
			if a.Score != nil {
				s.scores[key] = append(s.scores[key], *a.Score)
			}
		}
	}
	s.streak = streak(days, now)
	return s
}

// streak counts consecutive active days ending today, or yesterday when
// nothing has been logged yet today.
func streak(days map[string]bool, now time.Time) int {
	day := now
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}
	n := 0
	for days[day.Format("2006-01-02")] {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}

func metricSkillKey(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
