package catalog

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
)

const collection = "scenes"

type Config struct {
	URL     string
	Timeout time.Duration

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

// ClientCtx talks to the catalog collection API.
type ClientCtx struct {
	logger zerolog.Logger
	config Config
}

func New(config Config) *ClientCtx {
	return &ClientCtx{
		logger: log.With().Str("module", "catalog").Logger(),
		config: config.withDefaultValues(),
	}
}

func (c *ClientCtx) sceneURL(id string) string {
	return c.config.URL + "/collection/" + collection + "/" + url.PathEscape(id)
}

// GetScene returns nil without error when the scene does not exist.
func (c *ClientCtx) GetScene(ctx context.Context, id string) (*Scene, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sceneURL(id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog get error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog get status error: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	// collection returns null for removed keys
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}

	var scene Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("unable to decode scene %s: %w", id, err)
	}

	return &scene, nil
}

func (c *ClientCtx) UpsertScene(ctx context.Context, scene *Scene) error {
	data, err := json.Marshal(scene)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sceneURL(scene.ID), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog upsert error: %w", err)
	}
	defer resp.Body.Close()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("catalog upsert status error: %d", resp.StatusCode)
	}

	c.logger.Debug().Str("scene", scene.ID).Msg("scene updated")
	return nil
}
