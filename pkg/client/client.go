package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxErrorBody bounds how much of an error reply is read.
const maxErrorBody = 64 << 10

// Client is the duodex API entry point.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	obs       *observer
}

// New creates a Client for the API served at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("duodex: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("duodex: base url %q must be absolute", baseURL)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{baseURL: u, http: hc, userAgent: cfg.userAgent, obs: obs}, nil
}

// Search runs a search. With an empty Query results are newest first and
// carry no relevance score.
func (c *Client) Search(ctx context.Context, p SearchParams) (res *SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	q := url.Values{}
	setString(q, "q", p.Query)
	setString(q, "category", p.Category)
	setString(q, "type", p.Type)
	setString(q, "region", p.Region)
	setString(q, "country", p.Country)
	setString(q, "mode", string(p.Mode))
	setString(q, "lang", string(p.Language))
	setInt(q, "page", p.Page)
	setInt(q, "limit", p.Limit)

	res = &SearchResponse{}
	if err = c.get(ctx, "/api/articles/search", q, res); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return res, nil
}

// List returns articles available in the requested language, optionally
// restricted to one category.
func (c *Client) List(ctx context.Context, p ListParams) (res *SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("list", start, err) }()

	q := listQuery(p)
	setString(q, "category", p.Category)

	res = &SearchResponse{}
	if err = c.get(ctx, "/api/articles", q, res); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return res, nil
}

// ListByType returns available articles of one type.
func (c *Client) ListByType(ctx context.Context, typ string, p ListParams) (res *SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("list_by_type", start, err) }()

	res = &SearchResponse{}
	if err = c.get(ctx, "/api/articles/type/"+url.PathEscape(typ), listQuery(p), res); err != nil {
		return nil, fmt.Errorf("list type %s: %w", typ, err)
	}
	return res, nil
}

// Get fetches one article by ID projected into lang. Returns an error
// matching ErrNotFound when it does not exist.
func (c *Client) Get(ctx context.Context, id string, lang Language) (a *Article, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get", start, err) }()

	q := url.Values{}
	setString(q, "lang", string(lang))

	a = &Article{}
	if err = c.get(ctx, "/api/articles/"+url.PathEscape(id), q, a); err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	return a, nil
}

// GetBySlug fetches one article by slug. Exact matches win over
// case-insensitive ones.
func (c *Client) GetBySlug(ctx context.Context, slug string, lang Language) (a *Article, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_by_slug", start, err) }()

	q := url.Values{}
	setString(q, "lang", string(lang))

	a = &Article{}
	if err = c.get(ctx, "/api/articles/slug/"+url.PathEscape(slug), q, a); err != nil {
		return nil, fmt.Errorf("get slug %s: %w", slug, err)
	}
	return a, nil
}

// Health checks service health. An unhealthy service is reported through
// the returned status, not as an error.
func (c *Client) Health(ctx context.Context) (hs HealthStatus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	resp, err := c.do(ctx, "/health", nil)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("health: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return HealthStatus{}, fmt.Errorf("health: %w", decodeError(resp))
	}
	if err = json.NewDecoder(resp.Body).Decode(&hs); err != nil {
		return HealthStatus{}, fmt.Errorf("health: decode: %w", err)
	}
	return hs, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	resp, err := c.do(ctx, path, q)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	u := *c.baseURL
	u.Path += path
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}
	var e struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &e) == nil && e.Message != "" {
		apiErr.Message = e.Message
	}
	return apiErr
}

func listQuery(p ListParams) url.Values {
	q := url.Values{}
	setString(q, "lang", string(p.Language))
	if p.Oldest {
		q.Set("sort", "oldest")
	}
	setInt(q, "page", p.Page)
	setInt(q, "limit", p.Limit)
	return q
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
