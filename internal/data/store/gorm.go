package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abdos10/think-like-genius/internal/domain"
	pkgerrors "github.com/abdos10/think-like-genius/internal/pkg/errors"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

// GormStore persists the same tables through gorm (postgres or sqlite).
type GormStore struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func NewGormStore(db *gorm.DB, log *logger.Logger) *GormStore {
	return &GormStore{db: db, log: log.With("store", "GormStore"), now: time.Now}
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Empty reports whether no user has been created yet.
func (s *GormStore) Empty(ctx context.Context) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Count(&n).Error; err != nil {
		return false, err
	}
	return n == 0, nil
}

func (s *GormStore) first(ctx context.Context, out any, kind string, key any, query string, args ...any) error {
	err := s.db.WithContext(ctx).Where(query, args...).First(out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(kind, key)
	}
	if err != nil {
		return fmt.Errorf("get %s %v: %w", kind, key, err)
	}
	return nil
}

func (s *GormStore) create(ctx context.Context, row any, kind string) error {
	err := s.db.WithContext(ctx).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("create %s: %w", kind, pkgerrors.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", kind, err)
	}
	return nil
}

// ---------------- Users ----------------

func (s *GormStore) GetUser(ctx context.Context, id int) (*domain.User, error) {
	var u domain.User
	if err := s.first(ctx, &u, "user", id, "id = ?", id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := s.first(ctx, &u, "user", username, "username = ?", username); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) CreateUser(ctx context.Context, in domain.User) (*domain.User, error) {
	in.ID = 0
	if in.Level == "" {
		in.Level = domain.DefaultUserLevel
	}
	if err := s.create(ctx, &in, "user"); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *GormStore) UpdateUser(ctx context.Context, id int, patch domain.UserPatch) (*domain.User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if patch.DisplayName != nil {
		updates["display_name"] = *patch.DisplayName
	}
	if patch.Level != nil {
		updates["level"] = *patch.Level
	}
	if patch.Password != nil {
		updates["password"] = *patch.Password
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(u).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update user %d: %w", id, err)
		}
	}
	return s.GetUser(ctx, id)
}

// ---------------- Skills ----------------

func (s *GormStore) ListSkills(ctx context.Context) ([]domain.ThinkingSkill, error) {
	out := []domain.ThinkingSkill{}
	if err := s.db.WithContext(ctx).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return out, nil
}

func (s *GormStore) GetSkill(ctx context.Context, id int) (*domain.ThinkingSkill, error) {
	var sk domain.ThinkingSkill
	if err := s.first(ctx, &sk, "skill", id, "id = ?", id); err != nil {
		return nil, err
	}
	return &sk, nil
}

func (s *GormStore) CreateSkill(ctx context.Context, in domain.ThinkingSkill) (*domain.ThinkingSkill, error) {
	in.ID = 0
	if err := s.create(ctx, &in, "skill"); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *GormStore) ListUserSkills(ctx context.Context, userID int) ([]domain.UserSkill, error) {
	out := []domain.UserSkill{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list user skills: %w", err)
	}
	return out, nil
}

func (s *GormStore) GetUserSkill(ctx context.Context, id int) (*domain.UserSkill, error) {
	var us domain.UserSkill
	if err := s.first(ctx, &us, "user skill", id, "id = ?", id); err != nil {
		return nil, err
	}
	return &us, nil
}

func (s *GormStore) GetUserSkillBySkill(ctx context.Context, userID, skillID int) (*domain.UserSkill, error) {
	var us domain.UserSkill
	key := fmt.Sprintf("%d/%d", userID, skillID)
	if err := s.first(ctx, &us, "user skill", key, "user_id = ? AND skill_id = ?", userID, skillID); err != nil {
		return nil, err
	}
	return &us, nil
}

func (s *GormStore) CreateUserSkill(ctx context.Context, in domain.UserSkill) (*domain.UserSkill, error) {
	in.ID = 0
	if in.Level == "" {
		in.Level = domain.DefaultSkillLevel
	}
	in.LastUpdated = s.now()
	if err := s.create(ctx, &in, "user skill"); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *GormStore) UpdateUserSkill(ctx context.Context, id int, patch domain.UserSkillPatch) (*domain.UserSkill, error) {
	us, err := s.GetUserSkill(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{"last_updated": s.now()}
	if patch.Progress != nil {
		updates["progress"] = *patch.Progress
	}
	if patch.Level != nil {
		updates["level"] = *patch.Level
	}
	if err := s.db.WithContext(ctx).Model(us).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update user skill %d: %w", id, err)
	}
	return s.GetUserSkill(ctx, id)
}

// ---------------- Exercises ----------------

func (s *GormStore) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	out := []domain.Exercise{}
	if err := s.db.WithContext(ctx).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return out, nil
}

func (s *GormStore) ListExercisesBySkill(ctx context.Context, skillID int) ([]domain.Exercise, error) {
	out := []domain.Exercise{}
	if err := s.db.WithContext(ctx).Where("skill_id = ?", skillID).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list exercises by skill: %w", err)
	}
	return out, nil
}

func (s *GormStore) GetExercise(ctx context.Context, id int) (*domain.Exercise, error) {
	var e domain.Exercise
	if err := s.first(ctx, &e, "exercise", id, "id = ?", id); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *GormStore) CreateExercise(ctx context.Context, in domain.Exercise) (*domain.Exercise, error) {
	in.ID = 0
	if in.Difficulty == "" {
		in.Difficulty = domain.DefaultSkillLevel
	}
	if err := s.create(ctx, &in, "exercise"); err != nil {
		return nil, err
	}
	return &in, nil
}

// ---------------- Activities ----------------

func (s *GormStore) ListUserActivities(ctx context.Context, userID int, limit int) ([]domain.UserActivity, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	out := []domain.UserActivity{}
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list user activities: %w", err)
	}
	return out, nil
}

func (s *GormStore) CreateUserActivity(ctx context.Context, in domain.UserActivity) (*domain.UserActivity, error) {
	in.ID = 0
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now()
	}
	if err := s.create(ctx, &in, "user activity"); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *GormStore) ListWeeklyActivity(ctx context.Context, userID int, weekStart time.Time) ([]domain.WeeklyActivity, error) {
	out := []domain.WeeklyActivity{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND week_start_date = ?", userID, weekStart).
		Order("id asc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list weekly activity: %w", err)
	}
	return out, nil
}

func (s *GormStore) CreateWeeklyActivity(ctx context.Context, in domain.WeeklyActivity) (*domain.WeeklyActivity, error) {
	in.ID = 0
	if err := s.create(ctx, &in, "weekly activity"); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *GormStore) UpdateWeeklyActivity(ctx context.Context, id int, minutes int) (*domain.WeeklyActivity, error) {
	res := s.db.WithContext(ctx).Model(&domain.WeeklyActivity{}).Where("id = ?", id).Update("minutes_spent", minutes)
	if res.Error != nil {
		return nil, fmt.Errorf("update weekly activity %d: %w", id, res.Error)
	}
	var w domain.WeeklyActivity
	if err := s.first(ctx, &w, "weekly activity", id, "id = ?", id); err != nil {
		return nil, err
	}
	return &w, nil
}

// ---------------- Problems ----------------

func (s *GormStore) ListUserProblems(ctx context.Context, userID int) ([]domain.UserProblem, error) {
	out := []domain.UserProblem{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc, id desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list user problems: %w", err)
	}
	return out, nil
}

func (s *GormStore) GetUserProblem(ctx context.Context, id int) (*domain.UserProblem, error) {
	var p domain.UserProblem
	if err := s.first(ctx, &p, "problem", id, "id = ?", id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) CreateUserProblem(ctx context.Context, in domain.UserProblem) (*domain.UserProblem, error) {
	in.ID = 0
	in.ThinkingProcess = nil
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now()
	}
	if err := s.create(ctx, &in, "problem"); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *GormStore) UpdateUserProblemThinkingProcess(ctx context.Context, id int, tp domain.ThinkingProcess) (*domain.UserProblem, error) {
	p, err := s.GetUserProblem(ctx, id)
	if err != nil {
		return nil, err
	}
	p.ThinkingProcess = &tp
	if err := s.db.WithContext(ctx).Model(p).Select("thinking_process").Updates(p).Error; err != nil {
		return nil, fmt.Errorf("update problem %d: %w", id, err)
	}
	return s.GetUserProblem(ctx, id)
}

// ---------------- Achievements ----------------

func (s *GormStore) ListAchievements(ctx context.Context) ([]domain.Achievement, error) {
	out := []domain.Achievement{}
	if err := s.db.WithContext(ctx).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	return out, nil
}

func (s *GormStore) GetAchievement(ctx context.Context, id int) (*domain.Achievement, error) {
	var a domain.Achievement
	if err := s.first(ctx, &a, "achievement", id, "id = ?", id); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *GormStore) CreateAchievement(ctx context.Context, in domain.Achievement) (*domain.Achievement, error) {
	in.ID = 0
	if err := s.create(ctx, &in, "achievement"); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *GormStore) ListUserAchievements(ctx context.Context, userID int) ([]domain.UserAchievement, error) {
	out := []domain.UserAchievement{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list user achievements: %w", err)
	}
	return out, nil
}

func (s *GormStore) CreateUserAchievement(ctx context.Context, in domain.UserAchievement) (*domain.UserAchievement, error) {
	in.ID = 0
	if in.UnlockedAt.IsZero() {
		in.UnlockedAt = s.now()
	}
	if err := s.create(ctx, &in, "user achievement"); err != nil {
		return nil, err
	}
	return &in, nil
}

// ---------------- History ----------------

func (s *GormStore) SaveTabHistory(ctx context.Context, tabID, title string, content []byte) (*domain.TabHistory, error) {
	row := domain.TabHistory{
		ID:        uuid.NewString(),
		TabID:     tabID,
		Title:     title,
		Content:   datatypes.JSON(content),
		CreatedAt: s.now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tab_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "content", "created_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("save tab history: %w", err)
	}
	return s.GetTabHistory(ctx, tabID)
}

func (s *GormStore) GetTabHistory(ctx context.Context, tabID string) (*domain.TabHistory, error) {
	var th domain.TabHistory
	if err := s.first(ctx, &th, "tab history", tabID, "tab_id = ?", tabID); err != nil {
		return nil, err
	}
	return &th, nil
}

func (s *GormStore) SaveEvaluateHistory(ctx context.Context, in domain.EvaluateHistory) (*domain.EvaluateHistory, error) {
	in.ID = 0
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now()
	}
	if err := s.create(ctx, &in, "evaluate history"); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *GormStore) ListEvaluateHistory(ctx context.Context, limit int) ([]domain.EvaluateHistory, error) {
	out := []domain.EvaluateHistory{}
	if err := s.db.WithContext(ctx).Order("created_at desc, id desc").Limit(historyLimit(limit)).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list evaluate history: %w", err)
	}
	return out, nil
}

func (s *GormStore) SaveReverseHistory(ctx context.Context, in domain.ReverseHistory) (*domain.ReverseHistory, error) {
	in.ID = 0
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now()
	}
	if err := s.create(ctx, &in, "reverse history"); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *GormStore) ListReverseHistory(ctx context.Context, limit int) ([]domain.ReverseHistory, error) {
	out := []domain.ReverseHistory{}
	if err := s.db.WithContext(ctx).Order("created_at desc, id desc").Limit(historyLimit(limit)).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list reverse history: %w", err)
	}
	return out, nil
}

func (s *GormStore) SaveVerifyHistory(ctx context.Context, in domain.VerifyHistory) (*domain.VerifyHistory, error) {
	in.ID = 0
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now()
	}
	if err := s.create(ctx, &in, "verify history"); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *GormStore) ListVerifyHistory(ctx context.Context, limit int) ([]domain.VerifyHistory, error) {
	out := []domain.VerifyHistory{}
	if err := s.db.WithContext(ctx).Order("created_at desc, id desc").Limit(historyLimit(limit)).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list verify history: %w", err)
	}
	return out, nil
}

var _ Store = (*GormStore)(nil)
