package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/abdos10/think-like-genius/internal/data/db"
	"github.com/abdos10/think-like-genius/internal/data/store"
	"github.com/abdos10/think-like-genius/internal/domain"
	pkgerrors "github.com/abdos10/think-like-genius/internal/pkg/errors"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

// wireStore opens the configured store and loads the demo fixtures when the
// demo user is missing. The returned *gorm.DB is nil for the memory store.
func wireStore(ctx context.Context, log *logger.Logger, cfg StoreConfig, now func() time.Time) (store.Store, *gorm.DB, error) {
	log.Info("Wiring store...", "driver", cfg.Driver)

	var (
		st  store.Store
		gdb *gorm.DB
	)
	switch cfg.Driver {
	case StoreMemory:
		st = store.NewMemoryStore(store.WithClock(now))
	default:
		var err error
		gdb, err = db.Open(db.Config{Driver: cfg.Driver, DSN: cfg.DSN}, log)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
		}
		st = store.NewGormStore(gdb, log)
	}

	_, err := st.GetUser(ctx, domain.DemoUserID)
	switch {
	case err == nil:
		log.Info("Store already seeded")
	case errors.Is(err, pkgerrors.ErrNotFound):
		if err := store.Seed(ctx, st, now()); err != nil {
			closeDB(gdb)
			return nil, nil, fmt.Errorf("seed store: %w", err)
		}
		log.Info("Seeded demo data", "user_id", domain.DemoUserID)
	default:
		closeDB(gdb)
		return nil, nil, fmt.Errorf("check demo user: %w", err)
	}
	return st, gdb, nil
}

func closeDB(gdb *gorm.DB) {
	if gdb == nil {
		return
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
