package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/abdos10/think-like-genius/internal/domain"
	pkgerrors "github.com/abdos10/think-like-genius/internal/pkg/errors"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

const defaultRedisMaxEntries = 100

// Redis keeps tab state as JSON strings and each history kind as a capped
// list, newest at the head.
type Redis struct {
	log        *logger.Logger
	rdb        goredis.UniversalClient
	prefix     string
	maxEntries int64
}

func NewRedis(ctx context.Context, log *logger.Logger, cfg Config) (*Redis, error) {
	if log == nil {
		return nil, errors.New("logger required")
	}
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisWithClient(log, rdb, cfg.RedisPrefix, cfg.RedisMaxEntries), nil
}

// NewRedisWithClient wraps an existing client. prefix defaults to "tlg".
func NewRedisWithClient(log *logger.Logger, rdb goredis.UniversalClient, prefix string, maxEntries int) *Redis {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "tlg"
	}
	if maxEntries <= 0 {
		maxEntries = defaultRedisMaxEntries
	}
	return &Redis{
		log:        log.With("service", "RedisMirror"),
		rdb:        rdb,
		prefix:     prefix,
		maxEntries: int64(maxEntries),
	}
}

func (r *Redis) Name() string { return BackendRedis }

func (r *Redis) tabKey(tabID string) string { return r.prefix + ":tab:" + tabID }

func (r *Redis) listKey(kind domain.HistoryKind) string { return r.prefix + ":" + string(kind) }

func (r *Redis) seqKey(kind domain.HistoryKind) string { return r.prefix + ":" + string(kind) + ":seq" }

func (r *Redis) SaveTab(ctx context.Context, tab domain.TabHistory) error {
	raw, err := json.Marshal(toTabRow(tab))
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.tabKey(tab.TabID), raw, 0).Err()
}

func (r *Redis) GetTab(ctx context.Context, tabID string) (*domain.TabHistory, error) {
	raw, err := r.rdb.Get(ctx, r.tabKey(tabID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("tab history %s: %w", tabID, pkgerrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get tab: %w", err)
	}
	var row tabRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("decode tab %s: %w", tabID, err)
	}
	out := row.toDomain()
	return &out, nil
}

// push assigns a mirror-local id, then LPUSH + LTRIM in one transaction.
func (r *Redis) push(ctx context.Context, kind domain.HistoryKind, row func(id int) any) error {
	id, err := r.rdb.Incr(ctx, r.seqKey(kind)).Result()
	if err != nil {
		return fmt.Errorf("redis %s seq: %w", kind, err)
	}
	raw, err := json.Marshal(row(int(id)))
	if err != nil {
		return err
	}
	key := r.listKey(kind)
	_, err = r.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.LPush(ctx, key, raw)
		p.LTrim(ctx, key, 0, r.maxEntries-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis push %s: %w", kind, err)
	}
	return nil
}

func (r *Redis) rangeRaw(ctx context.Context, kind domain.HistoryKind, limit int) ([]string, error) {
	vals, err := r.rdb.LRange(ctx, r.listKey(kind), 0, int64(listLimit(limit))-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list %s: %w", kind, err)
	}
	return vals, nil
}

func (r *Redis) SaveEvaluate(ctx context.Context, h domain.EvaluateHistory) error {
	return r.push(ctx, domain.HistoryEvaluate, func(id int) any {
		row := toEvaluateRow(h)
		row.ID = id
		return row
	})
}

func (r *Redis) ListEvaluate(ctx context.Context, limit int) ([]domain.EvaluateHistory, error) {
	vals, err := r.rangeRaw(ctx, domain.HistoryEvaluate, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.EvaluateHistory, 0, len(vals))
	for _, v := range vals {
		var row evaluateRow
		if err := json.Unmarshal([]byte(v), &row); err != nil {
			r.log.Warn("Skipping bad evaluate history entry", "error", err)
			continue
		}
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *Redis) SaveReverse(ctx context.Context, h domain.ReverseHistory) error {
	return r.push(ctx, domain.HistoryReverse, func(id int) any {
		row := toReverseRow(h)
		row.ID = id
		return row
	})
}

func (r *Redis) ListReverse(ctx context.Context, limit int) ([]domain.ReverseHistory, error) {
	vals, err := r.rangeRaw(ctx, domain.HistoryReverse, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ReverseHistory, 0, len(vals))
	for _, v := range vals {
		var row reverseRow
		if err := json.Unmarshal([]byte(v), &row); err != nil {
			r.log.Warn("Skipping bad reverse history entry", "error", err)
			continue
		}
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *Redis) SaveVerify(ctx context.Context, h domain.VerifyHistory) error {
	return r.push(ctx, domain.HistoryVerify, func(id int) any {
		row := toVerifyRow(h)
		row.ID = id
		return row
	})
}

func (r *Redis) ListVerify(ctx context.Context, limit int) ([]domain.VerifyHistory, error) {
	vals, err := r.rangeRaw(ctx, domain.HistoryVerify, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.VerifyHistory, 0, len(vals))
	for _, v := range vals {
		var row verifyRow
		if err := json.Unmarshal([]byte(v), &row); err != nil {
			r.log.Warn("Skipping bad verify history entry", "error", err)
			continue
		}
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *Redis) Close() error {
	if r == nil || r.rdb == nil {
		return nil
	}
	return r.rdb.Close()
}
