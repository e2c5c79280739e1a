package services

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

func TestWeeklyCurrentReturnsSeededWeek(t *testing.T) {
	svc := NewWeeklyActivityService(logger.Nop(), seededStore(t), func() time.Time { return testNow })
	rows, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 7)
	total := 0
	for _, r := range rows {
		total += r.MinutesSpent
	}
	assert.Equal(t, 305, total)
}

func TestWeeklyRecord(t *testing.T) {
	st := seededStore(t)
	ctx := context.Background()
	svc := NewWeeklyActivityService(logger.Nop(), st, func() time.Time { return testNow })

	row, err := svc.Record(ctx, RecordMinutesInput{Minutes: 15})
	require.NoError(t, err)
	assert.Equal(t, "Wed", row.DayOfWeek)
	assert.Equal(t, 75, row.MinutesSpent)

	_, err = svc.Record(ctx, RecordMinutesInput{DayOfWeek: "Funday", Minutes: 5})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	_, err = svc.Record(ctx, RecordMinutesInput{DayOfWeek: "Mon"})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	nextWeek := NewWeeklyActivityService(logger.Nop(), st, func() time.Time { return testNow.AddDate(0, 0, 7) })
	row, err = nextWeek.Record(ctx, RecordMinutesInput{DayOfWeek: "Mon", Minutes: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, row.MinutesSpent)
	rows, err := nextWeek.Current(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWeeklyRecordConcurrentNewDay(t *testing.T) {
	st := seededStore(t)
	ctx := context.Background()
	svc := NewWeeklyActivityService(logger.Nop(), st, func() time.Time { return testNow.AddDate(0, 0, 14) })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Record(ctx, RecordMinutesInput{DayOfWeek: "Tue", Minutes: 5})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rows, err := svc.Current(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 40, rows[0].MinutesSpent)
}
