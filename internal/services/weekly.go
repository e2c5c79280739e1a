package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abdos10/think-like-genius/internal/data/store"
	"github.com/abdos10/think-like-genius/internal/domain"
	"github.com/abdos10/think-like-genius/internal/platform/apierr"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

type RecordMinutesInput struct {
	// DayOfWeek is Mon..Sun; empty means today.
	DayOfWeek string `json:"dayOfWeek"`
	Minutes   int    `json:"minutes"`
}

type WeeklyActivityService interface {
	// Current lists the demo user's rows for the week starting this Monday.
	Current(ctx context.Context) ([]domain.WeeklyActivity, error)
	// Record adds minutes to a day of the current week, creating the row if needed.
	Record(ctx context.Context, in RecordMinutesInput) (*domain.WeeklyActivity, error)
}

type weeklyActivityService struct {
	log   *logger.Logger
	store store.Store
	now   func() time.Time

	// mu makes the find-or-create in Record atomic.
	mu sync.Mutex
}

func NewWeeklyActivityService(log *logger.Logger, st store.Store, now func() time.Time) WeeklyActivityService {
	if now == nil {
		now = time.Now
	}
	return &weeklyActivityService{
		log:   log.With("service", "WeeklyActivityService"),
		store: st,
		now:   now,
	}
}

func (ws *weeklyActivityService) Current(ctx context.Context) ([]domain.WeeklyActivity, error) {
	return ws.store.ListWeeklyActivity(ctx, domain.DemoUserID, domain.WeekStart(ws.now()))
}

func (ws *weeklyActivityService) Record(ctx context.Context, in RecordMinutesInput) (*domain.WeeklyActivity, error) {
	if in.Minutes <= 0 {
		return nil, apierr.BadRequest("minutes must be positive")
	}
	now := ws.now()
	day := strings.TrimSpace(in.DayOfWeek)
	if day == "" {
		day = domain.DayLabel(now)
	}
	if !validDay(day) {
		return nil, apierr.BadRequest("dayOfWeek must be one of Mon, Tue, Wed, Thu, Fri, Sat, Sun")
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	weekStart := domain.WeekStart(now)
	rows, err := ws.store.ListWeeklyActivity(ctx, domain.DemoUserID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("list weekly activity: %w", err)
	}
	for _, row := range rows {
		if row.DayOfWeek == day {
			return ws.store.UpdateWeeklyActivity(ctx, row.ID, row.MinutesSpent+in.Minutes)
		}
	}
	return ws.store.CreateWeeklyActivity(ctx, domain.WeeklyActivity{
		UserID:        domain.DemoUserID,
		DayOfWeek:     day,
		MinutesSpent:  in.Minutes,
		WeekStartDate: weekStart,
	})
}

func validDay(day string) bool {
	for _, d := range domain.WeekDays {
		if d == day {
			return true
		}
	}
	return false
}
