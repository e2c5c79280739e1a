package store

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abdos10/think-like-genius/internal/domain"
	pkgerrors "github.com/abdos10/think-like-genius/internal/pkg/errors"
	"github.com/abdos10/think-like-genius/internal/pkg/pointers"
)

// MemoryStore keeps every table in maps keyed by an auto-incrementing id.
// Not durable; state is lost on restart.
type MemoryStore struct {
	mu  sync.RWMutex
	now func() time.Time

	users            table[domain.User]
	skills           table[domain.ThinkingSkill]
	userSkills       table[domain.UserSkill]
	exercises        table[domain.Exercise]
	activities       table[domain.UserActivity]
	problems         table[domain.UserProblem]
	achievements     table[domain.Achievement]
	userAchievements table[domain.UserAchievement]
	weekly           table[domain.WeeklyActivity]

	tabs     map[string]domain.TabHistory
	evaluate table[domain.EvaluateHistory]
	reverse  table[domain.ReverseHistory]
	verify   table[domain.VerifyHistory]
}

type MemoryOption func(*MemoryStore)

// WithClock overrides the time source used for createdAt/lastUpdated.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		now:              time.Now,
		users:            newTable[domain.User](),
		skills:           newTable[domain.ThinkingSkill](),
		userSkills:       newTable[domain.UserSkill](),
		exercises:        newTable[domain.Exercise](),
		activities:       newTable[domain.UserActivity](),
		problems:         newTable[domain.UserProblem](),
		achievements:     newTable[domain.Achievement](),
		userAchievements: newTable[domain.UserAchievement](),
		weekly:           newTable[domain.WeeklyActivity](),
		tabs:             map[string]domain.TabHistory{},
		evaluate:         newTable[domain.EvaluateHistory](),
		reverse:          newTable[domain.ReverseHistory](),
		verify:           newTable[domain.VerifyHistory](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Close() error { return nil }

type table[T any] struct {
	rows   map[int]T
	nextID int
}

func newTable[T any]() table[T] {
	return table[T]{rows: map[int]T{}, nextID: 1}
}

func (t *table[T]) insert(build func(id int) T) T {
	id := t.nextID
	t.nextID++
	row := build(id)
	t.rows[id] = row
	return row
}

func (t *table[T]) get(id int) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

// all returns rows ordered by id.
func (t *table[T]) all() []T {
	ids := make([]int, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

func notFound(kind string, id any) error {
	return fmt.Errorf("%s %v: %w", kind, id, pkgerrors.ErrNotFound)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneActivity(a domain.UserActivity) domain.UserActivity {
	a.SkillID = clonePtr(a.SkillID)
	a.ExerciseID = clonePtr(a.ExerciseID)
	a.Score = clonePtr(a.Score)
	return a
}

func cloneProblem(p domain.UserProblem) domain.UserProblem {
	if p.ThinkingProcess != nil {
		tp := domain.ThinkingProcess{Steps: slices.Clone(p.ThinkingProcess.Steps)}
		p.ThinkingProcess = &tp
	}
	return p
}

func cloneEvaluate(h domain.EvaluateHistory) domain.EvaluateHistory {
	h.Strengths = slices.Clone(h.Strengths)
	h.Weaknesses = slices.Clone(h.Weaknesses)
	h.Improvements = slices.Clone(h.Improvements)
	return h
}

func cloneReverse(h domain.ReverseHistory) domain.ReverseHistory {
	h.Process = slices.Clone(h.Process)
	h.Principles = slices.Clone(h.Principles)
	h.Insights = slices.Clone(h.Insights)
	return h
}

func cloneVerify(h domain.VerifyHistory) domain.VerifyHistory {
	h.Gaps = slices.Clone(h.Gaps)
	h.Alternatives = slices.Clone(h.Alternatives)
	return h
}

func newestFirst[T any](rows []T, createdAt func(T) time.Time, id func(T) int) {
	sort.SliceStable(rows, func(i, j int) bool {
		ci, cj := createdAt(rows[i]), createdAt(rows[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(rows[i]) > id(rows[j])
	})
}

func truncate[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

// ---------------- Users ----------------

func (s *MemoryStore) GetUser(ctx context.Context, id int) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users.get(id)
	if !ok {
		return nil, notFound("user", id)
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users.rows {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, notFound("user", username)
}

func (s *MemoryStore) CreateUser(ctx context.Context, in domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users.rows {
		if u.Username == in.Username {
			return nil, fmt.Errorf("username %q: %w", in.Username, pkgerrors.ErrConflict)
		}
	}
	if in.Level == "" {
		in.Level = domain.DefaultUserLevel
	}
	u := s.users.insert(func(id int) domain.User {
		in.ID = id
		return in
	})
	return &u, nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, id int, patch domain.UserPatch) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users.get(id)
	if !ok {
		return nil, notFound("user", id)
	}
	if patch.DisplayName != nil {
		u.DisplayName = *patch.DisplayName
	}
	if patch.Level != nil {
		u.Level = *patch.Level
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	s.users.rows[id] = u
	return &u, nil
}

// ---------------- Skills ----------------

func (s *MemoryStore) ListSkills(ctx context.Context) ([]domain.ThinkingSkill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skills.all(), nil
}

func (s *MemoryStore) GetSkill(ctx context.Context, id int) (*domain.ThinkingSkill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sk, ok := s.skills.get(id)
	if !ok {
		return nil, notFound("skill", id)
	}
	return &sk, nil
}

func (s *MemoryStore) CreateSkill(ctx context.Context, in domain.ThinkingSkill) (*domain.ThinkingSkill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sk := s.skills.insert(func(id int) domain.ThinkingSkill {
		in.ID = id
		return in
	})
	return &sk, nil
}

func (s *MemoryStore) ListUserSkills(ctx context.Context, userID int) ([]domain.UserSkill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.UserSkill{}
	for _, us := range s.userSkills.all() {
		if us.UserID == userID {
			out = append(out, us)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetUserSkill(ctx context.Context, id int) (*domain.UserSkill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	us, ok := s.userSkills.get(id)
	if !ok {
		return nil, notFound("user skill", id)
	}
	return &us, nil
}

func (s *MemoryStore) GetUserSkillBySkill(ctx context.Context, userID, skillID int) (*domain.UserSkill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, us := range s.userSkills.all() {
		if us.UserID == userID && us.SkillID == skillID {
			return &us, nil
		}
	}
	return nil, notFound("user skill", fmt.Sprintf("%d/%d", userID, skillID))
}

func (s *MemoryStore) CreateUserSkill(ctx context.Context, in domain.UserSkill) (*domain.UserSkill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.Level == "" {
		in.Level = domain.DefaultSkillLevel
	}
	in.LastUpdated = s.now()
	us := s.userSkills.insert(func(id int) domain.UserSkill {
		in.ID = id
		return in
	})
	return &us, nil
}

func (s *MemoryStore) UpdateUserSkill(ctx context.Context, id int, patch domain.UserSkillPatch) (*domain.UserSkill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	us, ok := s.userSkills.get(id)
	if !ok {
		return nil, notFound("user skill", id)
	}
	if patch.Progress != nil {
		us.Progress = *patch.Progress
	}
	if patch.Level != nil {
		us.Level = *patch.Level
	}
	us.LastUpdated = s.now()
	s.userSkills.rows[id] = us
	return &us, nil
}

// ---------------- Exercises ----------------

func (s *MemoryStore) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exercises.all(), nil
}

func (s *MemoryStore) ListExercisesBySkill(ctx context.Context, skillID int) ([]domain.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Exercise{}
	for _, e := range s.exercises.all() {
		if e.SkillID == skillID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetExercise(ctx context.Context, id int) (*domain.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.exercises.get(id)
	if !ok {
		return nil, notFound("exercise", id)
	}
	return &e, nil
}

func (s *MemoryStore) CreateExercise(ctx context.Context, in domain.Exercise) (*domain.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.Difficulty == "" {
		in.Difficulty = domain.DefaultSkillLevel
	}
	e := s.exercises.insert(func(id int) domain.Exercise {
		in.ID = id
		return in
	})
	return &e, nil
}

// ---------------- Activities ----------------

func (s *MemoryStore) ListUserActivities(ctx context.Context, userID int, limit int) ([]domain.UserActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.UserActivity{}
	for _, a := range s.activities.rows {
		if a.UserID == userID {
			out = append(out, cloneActivity(a))
		}
	}
	newestFirst(out, func(a domain.UserActivity) time.Time { return a.CreatedAt }, func(a domain.UserActivity) int { return a.ID })
	return truncate(out, limit), nil
}

func (s *MemoryStore) CreateUserActivity(ctx context.Context, in domain.UserActivity) (*domain.UserActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now()
	}
	in = cloneActivity(in)
	a := s.activities.insert(func(id int) domain.UserActivity {
		in.ID = id
		return in
	})
	a = cloneActivity(a)
	return &a, nil
}

func (s *MemoryStore) ListWeeklyActivity(ctx context.Context, userID int, weekStart time.Time) ([]domain.WeeklyActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.WeeklyActivity{}
	for _, w := range s.weekly.all() {
		if w.UserID == userID && w.WeekStartDate.Equal(weekStart) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateWeeklyActivity(ctx context.Context, in domain.WeeklyActivity) (*domain.WeeklyActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.weekly.insert(func(id int) domain.WeeklyActivity {
		in.ID = id
		return in
	})
	return &w, nil
}

func (s *MemoryStore) UpdateWeeklyActivity(ctx context.Context, id int, minutes int) (*domain.WeeklyActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.weekly.get(id)
	if !ok {
		return nil, notFound("weekly activity", id)
	}
	w.MinutesSpent = minutes
	s.weekly.rows[id] = w
	return &w, nil
}

// ---------------- Problems ----------------

func (s *MemoryStore) ListUserProblems(ctx context.Context, userID int) ([]domain.UserProblem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.UserProblem{}
	for _, p := range s.problems.rows {
		if p.UserID == userID {
			out = append(out, cloneProblem(p))
		}
	}
	newestFirst(out, func(p domain.UserProblem) time.Time { return p.CreatedAt }, func(p domain.UserProblem) int { return p.ID })
	return out, nil
}

func (s *MemoryStore) GetUserProblem(ctx context.Context, id int) (*domain.UserProblem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.problems.get(id)
	if !ok {
		return nil, notFound("problem", id)
	}
	p = cloneProblem(p)
	return &p, nil
}

func (s *MemoryStore) CreateUserProblem(ctx context.Context, in domain.UserProblem) (*domain.UserProblem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now()
	}
	in.ThinkingProcess = nil
	p := s.problems.insert(func(id int) domain.UserProblem {
		in.ID = id
		return in
	})
	return &p, nil
}

func (s *MemoryStore) UpdateUserProblemThinkingProcess(ctx context.Context, id int, tp domain.ThinkingProcess) (*domain.UserProblem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.problems.get(id)
	if !ok {
		return nil, notFound("problem", id)
	}
	p.ThinkingProcess = &domain.ThinkingProcess{Steps: slices.Clone(tp.Steps)}
	s.problems.rows[id] = p
	p = cloneProblem(p)
	return &p, nil
}

// ---------------- Achievements ----------------

func (s *MemoryStore) ListAchievements(ctx context.Context) ([]domain.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.achievements.all(), nil
}

func (s *MemoryStore) GetAchievement(ctx context.Context, id int) (*domain.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.achievements.get(id)
	if !ok {
		return nil, notFound("achievement", id)
	}
	return &a, nil
}

func (s *MemoryStore) CreateAchievement(ctx context.Context, in domain.Achievement) (*domain.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.achievements.insert(func(id int) domain.Achievement {
		in.ID = id
		return in
	})
	return &a, nil
}

func (s *MemoryStore) ListUserAchievements(ctx context.Context, userID int) ([]domain.UserAchievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.UserAchievement{}
	for _, ua := range s.userAchievements.all() {
		if ua.UserID == userID {
			out = append(out, ua)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateUserAchievement(ctx context.Context, in domain.UserAchievement) (*domain.UserAchievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.UnlockedAt.IsZero() {
		in.UnlockedAt = s.now()
	}
	ua := s.userAchievements.insert(func(id int) domain.UserAchievement {
		in.ID = id
		return in
	})
	return &ua, nil
}

// ---------------- History ----------------

func (s *MemoryStore) SaveTabHistory(ctx context.Context, tabID, title string, content []byte) (*domain.TabHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	th, ok := s.tabs[tabID]
	if !ok {
		th = domain.TabHistory{ID: uuid.NewString(), TabID: tabID}
	}
	th.Title = title
	th.Content = slices.Clone(content)
	th.CreatedAt = s.now()
	s.tabs[tabID] = th
	th.Content = slices.Clone(th.Content)
	return &th, nil
}

func (s *MemoryStore) GetTabHistory(ctx context.Context, tabID string) (*domain.TabHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	th, ok := s.tabs[tabID]
	if !ok {
		return nil, notFound("tab history", tabID)
	}
	th.Content = slices.Clone(th.Content)
	return &th, nil
}

func (s *MemoryStore) SaveEvaluateHistory(ctx context.Context, in domain.EvaluateHistory) (*domain.EvaluateHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now()
	}
	in = cloneEvaluate(in)
	h := s.evaluate.insert(func(id int) domain.EvaluateHistory {
		in.ID = id
		return in
	})
	return pointers.Ptr(cloneEvaluate(h)), nil
}

func (s *MemoryStore) ListEvaluateHistory(ctx context.Context, limit int) ([]domain.EvaluateHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.EvaluateHistory, 0, len(s.evaluate.rows))
	for _, h := range s.evaluate.rows {
		out = append(out, cloneEvaluate(h))
	}
	newestFirst(out, func(h domain.EvaluateHistory) time.Time { return h.CreatedAt }, func(h domain.EvaluateHistory) int { return h.ID })
	return truncate(out, historyLimit(limit)), nil
}

func (s *MemoryStore) SaveReverseHistory(ctx context.Context, in domain.ReverseHistory) (*domain.ReverseHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now()
	}
	in = cloneReverse(in)
	h := s.reverse.insert(func(id int) domain.ReverseHistory {
		in.ID = id
		return in
	})
	return pointers.Ptr(cloneReverse(h)), nil
}

func (s *MemoryStore) ListReverseHistory(ctx context.Context, limit int) ([]domain.ReverseHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ReverseHistory, 0, len(s.reverse.rows))
	for _, h := range s.reverse.rows {
		out = append(out, cloneReverse(h))
	}
	newestFirst(out, func(h domain.ReverseHistory) time.Time { return h.CreatedAt }, func(h domain.ReverseHistory) int { return h.ID })
	return truncate(out, historyLimit(limit)), nil
}

func (s *MemoryStore) SaveVerifyHistory(ctx context.Context, in domain.VerifyHistory) (*domain.VerifyHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now()
	}
	in = cloneVerify(in)
	h := s.verify.insert(func(id int) domain.VerifyHistory {
		in.ID = id
		return in
	})
	return pointers.Ptr(cloneVerify(h)), nil
}

func (s *MemoryStore) ListVerifyHistory(ctx context.Context, limit int) ([]domain.VerifyHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.VerifyHistory, 0, len(s.verify.rows))
	for _, h := range s.verify.rows {
		out = append(out, cloneVerify(h))
	}
	newestFirst(out, func(h domain.VerifyHistory) time.Time { return h.CreatedAt }, func(h domain.VerifyHistory) int { return h.ID })
	return truncate(out, historyLimit(limit)), nil
}

var _ Store = (*MemoryStore)(nil)
