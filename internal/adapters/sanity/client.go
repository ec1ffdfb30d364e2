package sanity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/3-lines-studio/jamb/internal/core"
)

const (
	DefaultAPIVersion = "2025-02-10"
	DefaultTimeout    = 10 * time.Second
)

var (
	ErrMissingProject = errors.New("sanity: project id is required")
	ErrMissingDataset = errors.New("sanity: dataset is required")
)

type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	// BaseURL replaces the project API host, mostly for tests.
	BaseURL string
}

// QueryError is returned when the query API answers with a non-2xx status.
type QueryError struct {
	Status      int
	Description string
}

func (e *QueryError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("sanity: query failed with status %d", e.Status)
	}
	return fmt.Sprintf("sanity: query failed with status %d: %s", e.Status, e.Description)
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

// Client reads documents through the GROQ query API.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, ErrMissingProject
	}
	if cfg.Dataset == "" {
		return nil, ErrMissingDataset
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	cfg.APIVersion = strings.TrimPrefix(cfg.APIVersion, "v")

	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: DefaultTimeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// host picks the CDN only for anonymous published reads; drafts and
// authenticated requests must hit the live API.
func (c *Client) host(perspective core.Perspective) string {
	if c.cfg.BaseURL != "" {
		return strings.TrimSuffix(c.cfg.BaseURL, "/")
	}
	if c.cfg.UseCDN && c.cfg.Token == "" && !perspective.Preview() {
		return "https://" + c.cfg.ProjectID + ".apicdn.sanity.io"
	}
	return "https://" + c.cfg.ProjectID + ".api.sanity.io"
}

func (c *Client) queryURL(groq string, params map[string]any, perspective core.Perspective) (string, error) {
	values := url.Values{}
	values.Set("query", groq)
	if perspective != "" {
		values.Set("perspective", string(perspective))
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		encoded, err := json.Marshal(params[name])
		if err != nil {
			return "", fmt.Errorf("sanity: encode param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	return fmt.Sprintf("%s/v%s/data/query/%s?%s", c.host(perspective), c.cfg.APIVersion, url.PathEscape(c.cfg.Dataset), values.Encode()), nil
}

// Query runs groq and returns the raw result member of the response.
func (c *Client) Query(ctx context.Context, groq string, params map[string]any, perspective core.Perspective) (json.RawMessage, error) {
	endpoint, err := c.queryURL(groq, params, perspective)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("sanity: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sanity: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sanity: read response: %w", err)
	}
	c.logger.DebugContext(ctx, "sanity query", "status", resp.StatusCode, "duration", time.Since(start), "perspective", perspective)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		desc := gjson.GetBytes(body, "error.description").String()
		if desc == "" {
			desc = gjson.GetBytes(body, "message").String()
		}
		return nil, &QueryError{Status: resp.StatusCode, Description: desc}
	}

	result := gjson.GetBytes(body, "result")
	if !result.Exists() {
		return nil, errors.New("sanity: response has no result")
	}
	return json.RawMessage(result.Raw), nil
}

// Fetch loads one document. A null result is reported as core.ErrNotFound.
func (c *Client) Fetch(ctx context.Context, q core.Query) (json.RawMessage, error) {
	groq, params, err := documentQuery(q)
	if err != nil {
		return nil, err
	}
	raw, err := c.Query(ctx, groq, params, q.Perspective)
	if err != nil {
		return nil, err
	}
	if isNull(raw) {
		return nil, fmt.Errorf("%s %q: %w", q.Type, q.Slug+q.ID, core.ErrNotFound)
	}
	return raw, nil
}

func (c *Client) Slugs(ctx context.Context, docType string, perspective core.Perspective) ([]string, error) {
	raw, err := c.Query(ctx, querySlugs, map[string]any{"type": docType}, perspective)
	if err != nil {
		return nil, err
	}
	var slugs []string
	for _, r := range gjson.ParseBytes(raw).Array() {
		if s := r.String(); s != "" {
			slugs = append(slugs, s)
		}
	}
	return slugs, nil
}

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}
