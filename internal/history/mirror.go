package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abdos10/think-like-genius/internal/domain"
	pkgerrors "github.com/abdos10/think-like-genius/internal/pkg/errors"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

const (
	BackendNone     = "none"
	BackendSupabase = "supabase"
	BackendRedis    = "redis"
)

// Mirror copies tab state and thinking-tool history to a remote store.
// Callers treat it as best effort.
type Mirror interface {
	Name() string

	SaveTab(ctx context.Context, tab domain.TabHistory) error
	// GetTab returns a wrapped ErrNotFound when nothing is stored for tabID.
	GetTab(ctx context.Context, tabID string) (*domain.TabHistory, error)

	SaveEvaluate(ctx context.Context, h domain.EvaluateHistory) error
	ListEvaluate(ctx context.Context, limit int) ([]domain.EvaluateHistory, error)
	SaveReverse(ctx context.Context, h domain.ReverseHistory) error
	ListReverse(ctx context.Context, limit int) ([]domain.ReverseHistory, error)
	SaveVerify(ctx context.Context, h domain.VerifyHistory) error
	ListVerify(ctx context.Context, limit int) ([]domain.VerifyHistory, error)

	Close() error
}

type Config struct {
	Backend string `yaml:"backend"`

	SupabaseURL string        `yaml:"supabase_url"`
	SupabaseKey string        `yaml:"supabase_key"`
	Timeout     time.Duration `yaml:"timeout"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisPrefix   string `yaml:"redis_prefix"`
	// RedisMaxEntries caps each history list.
	RedisMaxEntries int `yaml:"redis_max_entries"`
}

// New builds the mirror selected by cfg.Backend. An empty backend means none.
func New(ctx context.Context, log *logger.Logger, cfg Config) (Mirror, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendNone:
		return Noop{}, nil
	case BackendSupabase:
		sb, err := NewSupabase(log, cfg, nil)
		if err != nil {
			return nil, err
		}
		return sb, nil
	case BackendRedis:
		r, err := NewRedis(ctx, log, cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}

// Noop discards writes and reports nothing stored.
type Noop struct{}

func (Noop) Name() string { return BackendNone }

func (Noop) SaveTab(context.Context, domain.TabHistory) error { return nil }

func (Noop) GetTab(_ context.Context, tabID string) (*domain.TabHistory, error) {
	return nil, fmt.Errorf("tab history %s: %w", tabID, pkgerrors.ErrNotFound)
}

func (Noop) SaveEvaluate(context.Context, domain.EvaluateHistory) error { return nil }

func (Noop) ListEvaluate(context.Context, int) ([]domain.EvaluateHistory, error) {
	return []domain.EvaluateHistory{}, nil
}

func (Noop) SaveReverse(context.Context, domain.ReverseHistory) error { return nil }

func (Noop) ListReverse(context.Context, int) ([]domain.ReverseHistory, error) {
	return []domain.ReverseHistory{}, nil
}

func (Noop) SaveVerify(context.Context, domain.VerifyHistory) error { return nil }

func (Noop) ListVerify(context.Context, int) ([]domain.VerifyHistory, error) {
	return []domain.VerifyHistory{}, nil
}

func (Noop) Close() error { return nil }

// defaultLimit matches the local store's history page size.
const defaultLimit = 10

func listLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}
