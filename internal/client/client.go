// Package client is the typed data-access layer for the records API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/tailtrack/tailtrack/internal/components/exercise"
	"github.com/tailtrack/tailtrack/internal/summary"
)

// Config is passed in explicitly; nothing here reads process globals.
type Config struct {
	BaseURL string        `env:"TAILTRACK_API_URL" envDefault:"http://localhost:8080"`
	PetID   string        `env:"TAILTRACK_PET_ID" envDefault:"demo-pet-1"`
	Timeout time.Duration `env:"TAILTRACK_TIMEOUT" envDefault:"10s"`
}

func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// APIError is a non-2xx answer from the API. Message is the server's {error} text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest
}

type Client struct {
	baseURL *url.URL
	petID   string
	http    *http.Client
	logger  zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: base,
		petID:   cfg.PetID,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "client").Logger(),
	}, nil
}

// PetID is the pet this client was configured for.
func (c *Client) PetID() string {
	return c.petID
}

// List returns records for petID, or all records when petID is empty.
func (c *Client) List(ctx context.Context, petID string) ([]exercise.Record, error) {
	query := url.Values{}
	if petID != "" {
		query.Set("petId", petID)
	}

	var records []exercise.Record
	if err := c.do(ctx, http.MethodGet, "/records", query, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) Get(ctx context.Context, id string) (*exercise.Record, error) {
	var record exercise.Record
	if err := c.do(ctx, http.MethodGet, "/records/"+url.PathEscape(id), nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create fills in the configured pet when the payload has none.
func (c *Client) Create(ctx context.Context, in exercise.CreateRecordIn) (*exercise.Record, error) {
	if in.PetID == "" {
		in.PetID = c.petID
	}

	var record exercise.Record
	if err := c.do(ctx, http.MethodPost, "/records", nil, in, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) Update(ctx context.Context, id string, in exercise.UpdateRecordIn) (*exercise.Record, error) {
	var record exercise.Record
	if err := c.do(ctx, http.MethodPut, "/records/"+url.PathEscape(id), nil, in, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete reports whether a record was removed. A missing id is (false, nil).
func (c *Client) Delete(ctx context.Context, id string) (bool, error) {
	var out exercise.DeleteRecordOut
	if err := c.do(ctx, http.MethodDelete, "/records/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return false, err
	}
	return out.OK, nil
}

// Weekly lists the configured pet's records and totals the trailing window ending at now.
func (c *Client) Weekly(ctx context.Context, now time.Time) (summary.WeeklyTotals, []exercise.Record, error) {
	records, err := c.List(ctx, c.petID)
	if err != nil {
		return summary.WeeklyTotals{}, nil, err
	}
	return summary.Weekly(now, exercise.Entries(records)), records, nil
}

// do sends one request. path must already be escaped; ids go through url.PathEscape.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := *c.baseURL
	rawPath := strings.TrimRight(u.EscapedPath(), "/") + path
	decoded, err := url.PathUnescape(rawPath)
	if err != nil {
		return fmt.Errorf("build path: %w", err)
	}
	u.Path, u.RawPath = decoded, rawPath
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("Request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body exercise.ErrorOut
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		apiErr.Message = text
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
