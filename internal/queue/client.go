package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scenevault/scenevault/internal/catalog"
)

type Config struct {
	URL      string
	Password string
	Timeout  time.Duration

	HTTPClient *http.Client
}

func (c Config) withDefaultValues() Config {
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	return c
}

type ClientCtx struct {
	logger zerolog.Logger
	config Config
}

func New(config Config) *ClientCtx {
	return &ClientCtx{
		logger: log.With().Str("module", "queue").Logger(),
		config: config.withDefaultValues(),
	}
}

func (c *ClientCtx) endpoint(path string) string {
	return c.config.URL + "/queue/" + path + "?password=" + url.QueryEscape(c.config.Password)
}

// Head returns the next queued scene, or nil when the queue is empty.
func (c *ClientCtx) Head(ctx context.Context) (*catalog.Scene, error) {
	resp, err := c.do(ctx, http.MethodGet, c.endpoint("head"), nil)
	if err != nil {
		return nil, &ProtocolError{Op: "head", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProtocolError{Op: "head", Err: fmt.Errorf("status error: %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProtocolError{Op: "head", Err: fmt.Errorf("read body: %w", err)}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var scene catalog.Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, &ProtocolError{Op: "head", Err: err}
	}

	return &scene, nil
}

func (c *ClientCtx) Submit(ctx context.Context, id string, result *Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return &ProtocolError{Op: "submit", Err: err}
	}

	resp, err := c.do(ctx, http.MethodPost, c.endpoint(url.PathEscape(id)), data)
	if err != nil {
		return &ProtocolError{Op: "submit", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ProtocolError{Op: "submit", Err: fmt.Errorf("status error: %d", resp.StatusCode)}
	}

	c.logger.Debug().Str("scene", id).Msg("result submitted")
	return nil
}

// Delete removes an item that could not be processed.
func (c *ClientCtx) Delete(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, c.endpoint(url.PathEscape(id)), nil)
	if err != nil {
		return &ProtocolError{Op: "delete", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ProtocolError{Op: "delete", Err: fmt.Errorf("status error: %d", resp.StatusCode)}
	}

	c.logger.Debug().Str("scene", id).Msg("item deleted")
	return nil
}

func (c *ClientCtx) do(ctx context.Context, method, target string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.config.HTTPClient.Do(req)
}
