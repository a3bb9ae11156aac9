package raindrop

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"BookmarkDigest/internal/domain"
	"BookmarkDigest/internal/ports"
)

const (
	defaultBaseURL = "https://api.raindrop.io/rest/v1"

	// pageSize is the upstream's hard per-page cap.
	pageSize = 50
	// maxPages is a circuit breaker against an upstream whose reported
	// count never reconciles with what it actually serves.
	maxPages = 100
)

// Client talks to the Raindrop REST API. It performs no retries; transport
// failures surface to the caller classified by domain error kind.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

var _ ports.BookmarkSource = (*Client)(nil)

// NewClient wires an API client; baseURL defaults to the public endpoint.
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 20 * time.Second},
		logger:  logger,
	}
}

// listResponse is the expected shape of the listing endpoint.
type listResponse struct {
	Items json.RawMessage `json:"items"`
	Count int             `json:"count"`
}

type listQuery struct {
	created  string
	page     int
	pageSize int
}

// FetchRecent walks the listing endpoint page by page and returns every
// bookmark created within [from, to], in arrival order. Zero from/to default
// to the trailing seven days ending now. Pages are fetched strictly
// sequentially; the walk trusts the first page's reported count to decide
// when to stop.
func (c *Client) FetchRecent(ctx context.Context, from, to time.Time) ([]domain.Bookmark, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -7)
	}

	var (
		records []domain.Bookmark
		total   int
		seen    int
	)

	for page := 0; page < maxPages; page++ {
		resp, err := c.fetchPage(ctx, "/raindrops/0", listQuery{
			created:  createdRange(from, to),
			page:     page,
			pageSize: pageSize,
		})
		if err != nil {
			return nil, err
		}
		if resp.Items == nil {
			return nil, &domain.Error{Kind: domain.KindUpstreamProtocol, Message: "listing response has no items"}
		}

		pageRecords, dropped, err := ToRecords(resp.Items)
		if err != nil {
			return nil, &domain.Error{Kind: domain.KindUpstreamProtocol, Message: "listing items are malformed", Err: err}
		}
		if len(dropped) > 0 {
			c.warn("dropped malformed items", "page", page, "dropped", summarizeDropped(dropped))
		}

		records = append(records, pageRecords...)

		fetched := len(pageRecords) + len(dropped)
		if page == 0 {
			total = resp.Count
		}
		seen += fetched

		if fetched < pageSize || seen >= total {
			return records, nil
		}
	}

	c.warn("stopping pagination at hard ceiling", "pages", maxPages, "records", len(records), "reported_count", total)
	return records, nil
}

// FetchOptions narrows a single-page folder fetch. The zero value fetches
// page 0 of up to 50 items with no time filter.
type FetchOptions struct {
	// From and To bound the creation window. When either is set, the
	// missing one defaults like FetchRecent (To = now, From = To - 7d).
	From time.Time
	To   time.Time
	// Page is the zero-based page index.
	Page int
	// PageSize is capped at the upstream limit of 50; zero means 50.
	PageSize int
}

// FetchByFolder performs one unpaginated page fetch against a specific
// collection. An upstream with no items yields an empty slice, not an error.
// Diagnostic accessor; the weekly path uses FetchRecent.
func (c *Client) FetchByFolder(ctx context.Context, folderID string, opts FetchOptions) ([]domain.Bookmark, error) {
	size := opts.PageSize
	if size <= 0 || size > pageSize {
		size = pageSize
	}

	q := listQuery{page: opts.Page, pageSize: size}
	if !opts.From.IsZero() || !opts.To.IsZero() {
		to := opts.To
		if to.IsZero() {
			to = time.Now().UTC()
		}
		from := opts.From
		if from.IsZero() {
			from = to.AddDate(0, 0, -7)
		}
		q.created = createdRange(from, to)
	}

	resp, err := c.fetchPage(ctx, "/raindrops/"+url.PathEscape(folderID), q)
	if err != nil {
		return nil, err
	}
	if resp.Items == nil {
		return []domain.Bookmark{}, nil
	}

	records, dropped, err := ToRecords(resp.Items)
	if err != nil {
		return nil, &domain.Error{Kind: domain.KindUpstreamProtocol, Message: "listing items are malformed", Err: err}
	}
	if len(dropped) > 0 {
		c.warn("dropped malformed items", "folder", folderID, "dropped", summarizeDropped(dropped))
	}
	return records, nil
}

func (c *Client) fetchPage(ctx context.Context, path string, q listQuery) (*listResponse, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid listing url %s: %w", c.baseURL+path, err)
	}

	query := u.Query()
	if q.created != "" {
		query.Set("created", q.created)
	}
	query.Set("perpage", strconv.Itoa(q.pageSize))
	query.Set("page", strconv.Itoa(q.page))
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.Error{Kind: domain.KindNetwork, Message: "request listing page", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, classifyStatus(resp)
	}

	var parsed listResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &domain.Error{Kind: domain.KindUpstreamProtocol, Message: "undecodable listing response", Err: err}
	}
	return &parsed, nil
}

// classifyStatus maps non-2xx responses onto the domain error taxonomy,
// preserving status code and any error payload for the caller.
func classifyStatus(resp *http.Response) *domain.Error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

	kind := domain.KindUpstreamProtocol
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		kind = domain.KindAuth
	case resp.StatusCode == http.StatusTooManyRequests:
		kind = domain.KindRateLimited
	case resp.StatusCode >= http.StatusInternalServerError:
		kind = domain.KindUpstreamUnavailable
	}

	return &domain.Error{
		Kind:    kind,
		Status:  resp.StatusCode,
		Message: strings.TrimSpace(string(payload)),
	}
}

// createdRange renders the inclusive creation window as the upstream's
// start..end range expression.
func createdRange(from, to time.Time) string {
	return from.UTC().Format(time.RFC3339) + ".." + to.UTC().Format(time.RFC3339)
}

func (c *Client) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
