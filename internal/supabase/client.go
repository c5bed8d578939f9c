// Package supabase reads complaint records through a Supabase (PostgREST)
// REST endpoint.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"complaintfinder/internal/store"
)

const (
	backendName = "supabase"

	// DefaultTable is the table complaints are read from.
	DefaultTable = "complaints"

	contentColumn  = "question_content"
	categoryColumn = "complaint_field"

	maxErrorBody = 4 << 10
)

// likeEscaper escapes LIKE metacharacters. PostgREST passes the pattern to
// ILIKE after turning '*' into '%', so a literal '*' cannot be escaped.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Client implements store.Gateway against the PostgREST API.
type Client struct {
	baseURL *url.URL
	apiKey  string
	table   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTable reads from a table other than DefaultTable. An empty name
// keeps the default.
func WithTable(table string) Option {
	return func(c *Client) {
		if table != "" {
			c.table = table
		}
	}
}

// New creates a client for the project at baseURL authenticated with apiKey.
// Returns store.ErrNotConfigured if either is empty.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" || apiKey == "" {
		return nil, store.ErrNotConfigured
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid supabase url %q: %w", baseURL, store.ErrNotConfigured)
	}

	c := &Client{
		baseURL: u,
		apiKey:  apiKey,
		table:   DefaultTable,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CountByCategory returns the number of complaints whose category equals
// category exactly. The count comes from the Content-Range header, so no rows
// are transferred.
func (c *Client) CountByCategory(ctx context.Context, category string) (int, error) {
	q := url.Values{}
	q.Set("select", categoryColumn)
	q.Set(categoryColumn, "eq."+category)

	req, err := c.newRequest(ctx, http.MethodHead, q)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Prefer", "count=exact")

	resp, err := c.do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	count, err := parseContentRangeTotal(resp.Header.Get("Content-Range"))
	if err != nil {
		return 0, &store.BackendError{Backend: backendName, Status: resp.StatusCode, Err: fmt.Errorf("%w: %v", store.ErrUpstream, err)}
	}
	return count, nil
}

type categoryRow struct {
	Category string `json:"complaint_field"`
}

// SearchContent returns the category of every complaint whose content
// contains needle, ignoring case.
func (c *Client) SearchContent(ctx context.Context, needle string) ([]string, error) {
	q := url.Values{}
	q.Set("select", categoryColumn)
	q.Set(contentColumn, "ilike.*"+likeEscaper.Replace(needle)+"*")

	req, err := c.newRequest(ctx, http.MethodGet, q)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rows []categoryRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, &store.BackendError{Backend: backendName, Status: resp.StatusCode, Err: fmt.Errorf("%w: decode response: %v", store.ErrUpstream, err)}
	}

	categories := make([]string, len(rows))
	for i, r := range rows {
		categories[i] = r.Category
	}
	return categories, nil
}

// Ping issues a one-row read to verify the endpoint and credentials.
func (c *Client) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("select", categoryColumn)
	q.Set("limit", "1")

	req, err := c.newRequest(ctx, http.MethodGet, q)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

func (c *Client) newRequest(ctx context.Context, method string, q url.Values) (*http.Request, error) {
	u := c.baseURL.JoinPath("rest", "v1", c.table)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build supabase request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do sends req and turns transport failures and non-2xx answers into
// store.BackendError. The response body of a failed request is logged, never
// returned.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &store.BackendError{Backend: backendName, Err: fmt.Errorf("%w: %v", store.ErrUpstream, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		slog.Error("supabase query rejected",
			"method", req.Method,
			"table", c.table,
			"status", resp.StatusCode,
			"body", string(body),
		)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, &store.BackendError{Backend: backendName, Status: resp.StatusCode, Err: store.ErrNotConfigured}
		}
		return nil, &store.BackendError{Backend: backendName, Status: resp.StatusCode, Err: store.ErrUpstream}
	}

	return resp, nil
}

// parseContentRangeTotal extracts the total from a PostgREST Content-Range
// header such as "0-24/3573" or "*/0".
func parseContentRangeTotal(header string) (int, error) {
	if header == "" {
		return 0, errors.New("missing Content-Range header")
	}
	i := strings.LastIndexByte(header, '/')
	if i < 0 || i == len(header)-1 {
		return 0, fmt.Errorf("malformed Content-Range %q", header)
	}
	total := header[i+1:]
	if total == "*" {
		return 0, fmt.Errorf("content range %q has no exact count", header)
	}
	n, err := strconv.Atoi(total)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("malformed Content-Range %q", header)
	}
	return n, nil
}
