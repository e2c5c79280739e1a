package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"

	"github.com/abdos10/think-like-genius/internal/domain"
	pkgerrors "github.com/abdos10/think-like-genius/internal/pkg/errors"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

const (
	tableTab      = "tab_history"
	tableEvaluate = "evaluate_history"
	tableReverse  = "reverse_history"
	tableVerify   = "verify_history"
)

// Supabase mirrors history into the PostgREST endpoint under <url>/rest/v1.
type Supabase struct {
	log       *logger.Logger
	client    *postgrest.Client
	transport http.RoundTripper
}

// NewSupabase builds the REST mirror. rt may be nil; the default transport
// bounds each request by cfg.Timeout.
func NewSupabase(log *logger.Logger, cfg Config, rt http.RoundTripper) (*Supabase, error) {
	if log == nil {
		return nil, errors.New("logger required")
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.SupabaseURL), "/")
	if base == "" {
		return nil, errors.New("missing SUPABASE_URL")
	}
	key := strings.TrimSpace(cfg.SupabaseKey)
	if key == "" {
		return nil, errors.New("missing SUPABASE_SERVICE_KEY or SUPABASE_ANON_KEY")
	}
	if rt == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.ResponseHeaderTimeout = timeout
		rt = tr
	}

	client := postgrest.NewClient(base+"/rest/v1", "public", map[string]string{
		"apikey":        key,
		"Authorization": "Bearer " + key,
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("supabase client: %w", client.ClientError)
	}
	client.Transport.Parent = rt

	return &Supabase{
		log:       log.With("service", "SupabaseMirror"),
		client:    client,
		transport: rt,
	}, nil
}

func (s *Supabase) Name() string { return BackendSupabase }

func (s *Supabase) SaveTab(ctx context.Context, tab domain.TabHistory) error {
	row := toTabRow(tab)
	// The remote table owns its ids.
	row.ID = ""
	body, err := encodeRow(tableTab, row)
	if err != nil {
		return err
	}
	return s.run(ctx, http.MethodPost, tableTab, func() error {
		var saved []tabRow
		_, err := s.client.From(tableTab).
			Upsert(body, "tab_id", "representation", "").
			ExecuteTo(&saved)
		return err
	})
}

func (s *Supabase) GetTab(ctx context.Context, tabID string) (*domain.TabHistory, error) {
	var rows []tabRow
	err := s.run(ctx, http.MethodGet, tableTab, func() error {
		_, err := s.client.From(tableTab).
			Select("*", "", false).
			Eq("tab_id", tabID).
			Order("created_at", nil).
			Limit(1, "").
			ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("tab history %s: %w", tabID, pkgerrors.ErrNotFound)
	}
	out := rows[0].toDomain()
	return &out, nil
}

func (s *Supabase) SaveEvaluate(ctx context.Context, h domain.EvaluateHistory) error {
	row := toEvaluateRow(h)
	row.ID = 0
	return s.insert(ctx, tableEvaluate, row)
}

func (s *Supabase) ListEvaluate(ctx context.Context, limit int) ([]domain.EvaluateHistory, error) {
	var rows []evaluateRow
	if err := s.list(ctx, tableEvaluate, limit, &rows); err != nil {
		return nil, err
	}
	out := make([]domain.EvaluateHistory, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Supabase) SaveReverse(ctx context.Context, h domain.ReverseHistory) error {
	row := toReverseRow(h)
	row.ID = 0
	return s.insert(ctx, tableReverse, row)
}

func (s *Supabase) ListReverse(ctx context.Context, limit int) ([]domain.ReverseHistory, error) {
	var rows []reverseRow
	if err := s.list(ctx, tableReverse, limit, &rows); err != nil {
		return nil, err
	}
	out := make([]domain.ReverseHistory, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Supabase) SaveVerify(ctx context.Context, h domain.VerifyHistory) error {
	row := toVerifyRow(h)
	row.ID = 0
	return s.insert(ctx, tableVerify, row)
}

func (s *Supabase) ListVerify(ctx context.Context, limit int) ([]domain.VerifyHistory, error) {
	var rows []verifyRow
	if err := s.list(ctx, tableVerify, limit, &rows); err != nil {
		return nil, err
	}
	out := make([]domain.VerifyHistory, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Supabase) Close() error {
	if ci, ok := s.transport.(interface{ CloseIdleConnections() }); ok {
		ci.CloseIdleConnections()
	}
	return nil
}

func (s *Supabase) insert(ctx context.Context, table string, row any) error {
	body, err := encodeRow(table, row)
	if err != nil {
		return err
	}
	return s.run(ctx, http.MethodPost, table, func() error {
		_, _, err := s.client.From(table).
			Insert(body, false, "", "minimal", "").
			Execute()
		return err
	})
}

func (s *Supabase) list(ctx context.Context, table string, limit int, out any) error {
	return s.run(ctx, http.MethodGet, table, func() error {
		_, err := s.client.From(table).
			Select("*", "", false).
			Order("created_at", nil).
			Limit(listLimit(limit), "").
			ExecuteTo(out)
		return err
	})
}

// run executes one PostgREST call. The client has no context support, so a
// cancelled ctx returns early and leaves the request to the transport timeout.
func (s *Supabase) run(ctx context.Context, method, table string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	done := make(chan error, 1)
	go func() { done <- fn() }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	s.log.Debug("Supabase request finished",
		"method", method,
		"table", table,
		"ok", err == nil,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("supabase: %s %s: %w", method, table, err)
	}
	return nil
}

// encodeRow marshals up front so a bad row never reaches the shared client,
// which keeps encoding failures in ClientError for every later call.
func encodeRow(table string, row any) (json.RawMessage, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("supabase: encode %s row: %w", table, err)
	}
	return raw, nil
}
