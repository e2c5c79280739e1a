package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/abdos10/think-like-genius/internal/pkg/httpx"
	"github.com/abdos10/think-like-genius/internal/platform/ctxutil"
	"github.com/abdos10/think-like-genius/internal/platform/envutil"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

// ErrEmptyContent is returned when the model answers without any text.
var ErrEmptyContent = errors.New("openai: empty completion content")

// ChatRequest is one system+user exchange.
type ChatRequest struct {
	System    string
	User      string
	MaxTokens int
	// JSON asks the API for a json_object response.
	JSON bool
}

// Client is the chat completions client used by the thinking tools.
type Client interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
	Model() string
}

// Observer receives one callback per finished request.
type Observer interface {
	ObserveLLMRequest(model, status string, d time.Duration)
}

type Config struct {
	APIKey     string        `yaml:"api_key"`
	BaseURL    string        `yaml:"base_url"`
	Model      string        `yaml:"model"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

func DefaultConfig() Config {
	return Config{
		APIKey:     "dummy-key-for-development",
		BaseURL:    "https://api.openai.com",
		Model:      "gpt-4o",
		Timeout:    60 * time.Second,
		MaxRetries: 0,
	}
}

// WithEnv overrides c with any OPENAI_* variables that are set.
func (c Config) WithEnv() Config {
	c.APIKey = envutil.String("OPENAI_API_KEY", c.APIKey)
	c.BaseURL = envutil.String("OPENAI_BASE_URL", c.BaseURL)
	c.Model = envutil.String("OPENAI_MODEL", c.Model)
	c.Timeout = envutil.Seconds("OPENAI_TIMEOUT_SECONDS", c.Timeout)
	c.MaxRetries = envutil.Int("OPENAI_MAX_RETRIES", c.MaxRetries)
	return c
}

// ConfigFromEnv reads OPENAI_* variables over the defaults.
func ConfigFromEnv() Config {
	return DefaultConfig().WithEnv()
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
	observer   Observer
}

func NewClient(log *logger.Logger, cfg Config, observer Observer) (Client, error) {
	return NewWithHTTPClient(log, cfg, observer, nil)
}

// NewWithHTTPClient is intended for tests; it avoids network access by using a custom RoundTripper.
func NewWithHTTPClient(log *logger.Logger, cfg Config, observer Observer, httpClient *http.Client) (Client, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, errors.New("openai: base url required")
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if httpClient == nil {
		httpClient = &http.Client{Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        20,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		}}
	}
	return &client{
		log:        log.With("client", "OpenAIClient"),
		cfg:        cfg,
		httpClient: httpClient,
		observer:   observer,
	}, nil
}

func (c *client) Model() string { return c.cfg.Model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content,omitempty"`
		} `json:"message,omitempty"`
		Text string `json:"text,omitempty"`
	} `json:"choices"`
}

func (c *client) Chat(ctx context.Context, req ChatRequest) (string, error) {
	body := chatCompletionRequest{
		Model:     c.cfg.Model,
		MaxTokens: req.MaxTokens,
	}
	if strings.TrimSpace(req.System) != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.User})
	if req.JSON {
		body.ResponseFormat = map[string]any{"type": "json_object"}
	}

	var resp chatCompletionResponse
	if err := c.do(ctx, "/v1/chat/completions", body, &resp); err != nil {
		return "", err
	}
	for _, ch := range resp.Choices {
		if s := strings.TrimSpace(ch.Message.Content); s != "" {
			return s, nil
		}
		if s := strings.TrimSpace(ch.Text); s != "" {
			return s, nil
		}
	}
	return "", ErrEmptyContent
}

func (c *client) do(ctx context.Context, path string, body any, out any) error {
	backoff := time.Second
	start := time.Now()
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		resp, err := c.doOnce(ctx, path, body, out)
		if err == nil {
			c.observe("ok", start)
			return nil
		}
		if !httpx.IsRetryableError(err) || attempt == c.cfg.MaxRetries {
			c.observe(statusLabel(err), start)
			return err
		}
		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		c.log.Warn("OpenAI request retrying", append([]interface{}{
			"path", path,
			"attempt", attempt + 1,
			"max_retries", c.cfg.MaxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		}, ctxutil.LogFields(ctx)...)...)
		if err := httpx.Sleep(ctx, sleepFor); err != nil {
			return err
		}
		backoff *= 2
	}
	return fmt.Errorf("unreachable retry loop")
}

func (c *client) doOnce(ctx context.Context, path string, body any, out any) (*http.Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	ctx2, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx2, http.MethodPost, c.cfg.BaseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return resp, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp, fmt.Errorf("openai decode error: %w", err)
	}
	return resp, nil
}

func (c *client) observe(status string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveLLMRequest(c.cfg.Model, status, time.Since(start))
	}
}

func statusLabel(err error) string {
	var he *HTTPError
	if errors.As(err, &he) {
		return fmt.Sprintf("%d", he.StatusCode)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "error"
}
