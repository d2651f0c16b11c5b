// Package refdata fetches the cascading brand -> model -> variant
// reference catalog from the marketplace API. Fetches below the top
// level are gated on the parent selection being present: asking for the
// models of an empty brand id returns an empty list without touching
// the network. Results are cached per (entity, parent) key because the
// catalog changes rarely.
package refdata

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
)

// DefaultTTL is how long a cached catalog fetch stays fresh.
const DefaultTTL = 30 * time.Minute

// Client talks to the reference-data endpoints of the marketplace API.
// It is safe for concurrent use; the cache is shared across sessions.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache
	log     zerolog.Logger
}

// NewClient creates a reference-data client for the given API base URL.
func NewClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		cache:   newCache(DefaultTTL),
		log:     log,
	}
}

// Brands returns all phone brands. Always hits the cache first.
func (c *Client) Brands(ctx context.Context) ([]Brand, error) {
	key := cacheKey{entity: EntityBrand}
	if v, ok := c.cache.get(key); ok {
		return v.([]Brand), nil
	}

	var resp struct {
		Brands []Brand `json:"brands"`
	}
	if err := c.getJSON(ctx, "/api/phone-brands", nil, &resp); err != nil {
		return nil, &FetchError{Entity: EntityBrand, Err: err}
	}
	c.cache.put(key, resp.Brands)
	return resp.Brands, nil
}

// Models returns the models of the given brand. An empty brandID
// resolves to an empty list with no network call; a model fetch is only
// meaningful once its parent brand is known.
func (c *Client) Models(ctx context.Context, brandID string) ([]Model, error) {
	if brandID == "" {
		return nil, nil
	}

	key := cacheKey{entity: EntityModel, parent: brandID}
	if v, ok := c.cache.get(key); ok {
		return v.([]Model), nil
	}

	var resp struct {
		Models []Model `json:"models"`
	}
	q := url.Values{"brandId": {brandID}}
	if err := c.getJSON(ctx, "/api/phone-models", q, &resp); err != nil {
		return nil, &FetchError{Entity: EntityModel, ParentKey: brandID, Err: err}
	}
	c.cache.put(key, resp.Models)
	return resp.Models, nil
}

// Variants returns the variants of the given model, gated on modelID
// the same way Models is gated on brandID.
func (c *Client) Variants(ctx context.Context, modelID string) ([]Variant, error) {
	if modelID == "" {
		return nil, nil
	}

	key := cacheKey{entity: EntityVariant, parent: modelID}
	if v, ok := c.cache.get(key); ok {
		return v.([]Variant), nil
	}

	var resp struct {
		Variants []Variant `json:"variants"`
	}
	q := url.Values{"modelId": {modelID}}
	if err := c.getJSON(ctx, "/api/phone-variants", q, &resp); err != nil {
		return nil, &FetchError{Entity: EntityVariant, ParentKey: modelID, Err: err}
	}
	c.cache.put(key, resp.Variants)
	return resp.Variants, nil
}

// ---------------------------------------------------------------------------
// Admin CRUD for phone models
// ---------------------------------------------------------------------------

// CreateModel adds a model to the catalog and invalidates the model cache.
func (c *Client) CreateModel(ctx context.Context, m Model) (*Model, error) {
	var out Model
	if err := c.sendJSON(ctx, http.MethodPost, "/api/phone-models", nil, m, &out); err != nil {
		return nil, fmt.Errorf("create model %q: %w", m.Name, err)
	}
	c.cache.invalidate(EntityModel)
	return &out, nil
}

// UpdateModel replaces an existing model and invalidates the model cache.
func (c *Client) UpdateModel(ctx context.Context, m Model) (*Model, error) {
	var out Model
	if err := c.sendJSON(ctx, http.MethodPut, "/api/phone-models", nil, m, &out); err != nil {
		return nil, fmt.Errorf("update model %q: %w", m.ID, err)
	}
	c.cache.invalidate(EntityModel)
	return &out, nil
}

// DeleteModel removes a model by id. Variants under it become orphaned
// server-side, so the variant cache is invalidated too.
func (c *Client) DeleteModel(ctx context.Context, id string) error {
	q := url.Values{"id": {id}}
	if err := c.sendJSON(ctx, http.MethodDelete, "/api/phone-models", q, nil, nil); err != nil {
		return fmt.Errorf("delete model %q: %w", id, err)
	}
	c.cache.invalidate(EntityModel)
	c.cache.invalidate(EntityVariant)
	return nil
}

// ---------------------------------------------------------------------------
// HTTP plumbing
// ---------------------------------------------------------------------------

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", http.MethodGet).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("refdata request")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, q url.Values, in, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("refdata request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
