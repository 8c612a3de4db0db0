// Package sim implements the directory client against the SIM REST API.
package sim

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/sim-tools/simapps/internal/config"
	"github.com/sim-tools/simapps/internal/directory"
)

const BackendName = "sim"

type simClient struct {
	rest *resty.Client
}

// New creates a SIM backend client from configuration.
func New(cfg *config.Config) (directory.Client, error) {
	if len(cfg.Sim.Endpoint) == 0 {
		return nil, fmt.Errorf("sim.endpoint is required for the SIM backend")
	}

	rest := resty.New().
		SetBaseURL(cfg.Sim.Endpoint).
		SetTimeout(cfg.Sim.Timeout).
		SetHeader("Accept", "application/json")

	if len(cfg.Sim.APIKey) > 0 {
		rest.SetAuthToken(cfg.Sim.APIKey)
	}

	return &simClient{rest: rest}, nil
}

func (c *simClient) Close() error {
	return nil
}

// fetchRecords fetches a collection endpoint and decodes it into raw
// records. The API returns either a bare JSON array or an object wrapping
// it under "items".
func (c *simClient) fetchRecords(ctx context.Context, path string) ([]map[string]any, error) {
	resp, err := c.rest.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch %s: %s", path, resp.Status())
	}
	return decodeRecords(resp.Body())
}

func (c *simClient) fetchRecord(ctx context.Context, path string) (map[string]any, error) {
	resp, err := c.rest.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch %s: %s", path, resp.Status())
	}

	var record map[string]any
	if err := json.Unmarshal(resp.Body(), &record); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return record, nil
}

func decodeRecords(body []byte) ([]map[string]any, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var items []any
	switch value := payload.(type) {
	case []any:
		items = value
	case map[string]any:
		wrapped, ok := value["items"].([]any)
		if !ok {
			return nil, fmt.Errorf("unexpected response shape: object without items")
		}
		items = wrapped
	default:
		return nil, fmt.Errorf("unexpected response shape: %T", payload)
	}

	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records, nil
}

func init() {
	directory.Register(BackendName, New)
}
