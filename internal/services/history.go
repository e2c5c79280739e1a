package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abdos10/think-like-genius/internal/data/store"
	"github.com/abdos10/think-like-genius/internal/domain"
	"github.com/abdos10/think-like-genius/internal/history"
	pkgerrors "github.com/abdos10/think-like-genius/internal/pkg/errors"
	"github.com/abdos10/think-like-genius/internal/platform/apierr"
	"github.com/abdos10/think-like-genius/internal/platform/ctxutil"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

type SaveTabInput struct {
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

type HistoryService interface {
	SaveTab(ctx context.Context, tabID string, in SaveTabInput) (*domain.TabHistory, error)
	// GetTab reads the local copy and falls back to the mirror.
	GetTab(ctx context.Context, tabID string) (*domain.TabHistory, error)
	// List returns one history kind newest first. The result is a slice of
	// the matching history record type. source is "local", "remote" or empty;
	// empty reads the local store and falls back to the mirror when it has
	// nothing.
	List(ctx context.Context, kind string, limit int, source string) (any, error)

	RecordEvaluate(ctx context.Context, h domain.EvaluateHistory) error
	RecordReverse(ctx context.Context, h domain.ReverseHistory) error
	RecordVerify(ctx context.Context, h domain.VerifyHistory) error
}

// MirrorObserver is told the result of every mirror write.
type MirrorObserver interface {
	ObserveMirrorWrite(backend, kind string, err error)
}

type historyService struct {
	log      *logger.Logger
	store    store.Store
	mirror   history.Mirror
	observer MirrorObserver
	now      func() time.Time
}

func NewHistoryService(log *logger.Logger, st store.Store, mirror history.Mirror, observer MirrorObserver) HistoryService {
	if mirror == nil {
		mirror = history.Noop{}
	}
	return &historyService{
		log:      log.With("service", "HistoryService", "mirror", mirror.Name()),
		store:    st,
		mirror:   mirror,
		observer: observer,
		now:      time.Now,
	}
}

func (hs *historyService) SaveTab(ctx context.Context, tabID string, in SaveTabInput) (*domain.TabHistory, error) {
	tabID = strings.TrimSpace(tabID)
	if tabID == "" {
		return nil, apierr.BadRequest("tabId is required")
	}
	content := []byte(in.Content)
	if len(content) == 0 {
		content = []byte("null")
	}
	if !json.Valid(content) {
		return nil, apierr.BadRequest("content must be valid JSON")
	}
	saved, err := hs.store.SaveTabHistory(ctx, tabID, in.Title, content)
	if err != nil {
		return nil, fmt.Errorf("save tab history: %w", err)
	}
	hs.mirrorWrite(ctx, "tab", func(ctx context.Context) error { return hs.mirror.SaveTab(ctx, *saved) })
	return saved, nil
}

func (hs *historyService) GetTab(ctx context.Context, tabID string) (*domain.TabHistory, error) {
	tabID = strings.TrimSpace(tabID)
	if tabID == "" {
		return nil, apierr.BadRequest("tabId is required")
	}
	tab, err := hs.store.GetTabHistory(ctx, tabID)
	if err == nil {
		return tab, nil
	}
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, fmt.Errorf("get tab history: %w", err)
	}
	tab, err = hs.mirror.GetTab(ctx, tabID)
	if err == nil {
		return tab, nil
	}
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		hs.log.Warn("Mirror tab lookup failed", append([]interface{}{"tab_id", tabID, "error", err}, ctxutil.LogFields(ctx)...)...)
	}
	return nil, apierr.NotFound("Tab history not found")
}

const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

func (hs *historyService) List(ctx context.Context, kind string, limit int, source string) (any, error) {
	k, ok := domain.ParseHistoryKind(kind)
	if !ok {
		return nil, apierr.BadRequest("Invalid history kind")
	}
	source = strings.ToLower(strings.TrimSpace(source))
	switch source {
	case "", SourceLocal, SourceRemote:
	default:
		return nil, apierr.BadRequest("Invalid history source")
	}
	switch k {
	case domain.HistoryEvaluate:
		return listHistory(ctx, hs, k, source,
			func(ctx context.Context) ([]domain.EvaluateHistory, error) { return hs.store.ListEvaluateHistory(ctx, limit) },
			func(ctx context.Context) ([]domain.EvaluateHistory, error) { return hs.mirror.ListEvaluate(ctx, limit) },
		)
	case domain.HistoryReverse:
		return listHistory(ctx, hs, k, source,
			func(ctx context.Context) ([]domain.ReverseHistory, error) { return hs.store.ListReverseHistory(ctx, limit) },
			func(ctx context.Context) ([]domain.ReverseHistory, error) { return hs.mirror.ListReverse(ctx, limit) },
		)
	default:
		return listHistory(ctx, hs, k, source,
			func(ctx context.Context) ([]domain.VerifyHistory, error) { return hs.store.ListVerifyHistory(ctx, limit) },
			func(ctx context.Context) ([]domain.VerifyHistory, error) { return hs.mirror.ListVerify(ctx, limit) },
		)
	}
}

// listHistory reads one history kind from the chosen source. A remote read
// that fails is a 502; a failed fallback read only logs and keeps the empty
// local result.
func listHistory[T any](ctx context.Context, hs *historyService, kind domain.HistoryKind, source string, local, remote func(context.Context) ([]T, error)) ([]T, error) {
	if source == SourceRemote {
		rows, err := remote(ctx)
		if err != nil {
			hs.log.Warn("Mirror history read failed", append([]interface{}{"kind", kind, "error", err}, ctxutil.LogFields(ctx)...)...)
			return nil, apierr.New(http.StatusBadGateway, "mirror_unavailable", fmt.Errorf("History mirror unavailable: %w", err))
		}
		return nonNilRows(rows), nil
	}

	rows, err := local(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s history: %w", kind, err)
	}
	if len(rows) > 0 || source == SourceLocal {
		return nonNilRows(rows), nil
	}
	remoteRows, err := remote(ctx)
	if err != nil {
		hs.log.Warn("Mirror history fallback failed", append([]interface{}{"kind", kind, "error", err}, ctxutil.LogFields(ctx)...)...)
		return nonNilRows(rows), nil
	}
	return nonNilRows(remoteRows), nil
}

func nonNilRows[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

func (hs *historyService) RecordEvaluate(ctx context.Context, h domain.EvaluateHistory) error {
	h.CreatedAt = hs.stamp(h.CreatedAt)
	return hs.dualWrite(ctx, domain.HistoryEvaluate,
		func(ctx context.Context) error {
			_, err := hs.store.SaveEvaluateHistory(ctx, h)
			return err
		},
		func(ctx context.Context) error { return hs.mirror.SaveEvaluate(ctx, h) },
	)
}

func (hs *historyService) RecordReverse(ctx context.Context, h domain.ReverseHistory) error {
	h.CreatedAt = hs.stamp(h.CreatedAt)
	return hs.dualWrite(ctx, domain.HistoryReverse,
		func(ctx context.Context) error {
			_, err := hs.store.SaveReverseHistory(ctx, h)
			return err
		},
		func(ctx context.Context) error { return hs.mirror.SaveReverse(ctx, h) },
	)
}

func (hs *historyService) RecordVerify(ctx context.Context, h domain.VerifyHistory) error {
	h.CreatedAt = hs.stamp(h.CreatedAt)
	return hs.dualWrite(ctx, domain.HistoryVerify,
		func(ctx context.Context) error {
			_, err := hs.store.SaveVerifyHistory(ctx, h)
			return err
		},
		func(ctx context.Context) error { return hs.mirror.SaveVerify(ctx, h) },
	)
}

// stamp gives both copies of a record the same creation time.
func (hs *historyService) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return hs.now()
	}
	return t
}

// dualWrite runs the local and mirror writes concurrently. Only the local
// write can fail the call.
func (hs *historyService) dualWrite(ctx context.Context, kind domain.HistoryKind, local, remote func(context.Context) error) error {
	var g errgroup.Group
	g.Go(func() error {
		if err := local(ctx); err != nil {
			return fmt.Errorf("save %s history: %w", kind, err)
		}
		return nil
	})
	g.Go(func() error {
		hs.mirrorWrite(ctx, string(kind), remote)
		return nil
	})
	return g.Wait()
}

func (hs *historyService) mirrorWrite(ctx context.Context, what string, fn func(context.Context) error) {
	err := fn(ctx)
	if hs.observer != nil {
		hs.observer.ObserveMirrorWrite(hs.mirror.Name(), what, err)
	}
	if err != nil {
		hs.log.Warn("History mirror write failed", append([]interface{}{
			"kind", what,
			"error", err,
		}, ctxutil.LogFields(ctx)...)...)
	}
}
