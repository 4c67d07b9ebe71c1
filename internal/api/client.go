// Package api provides the HTTP client for the remote schedule service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"dayflow/internal/datetime"
	"dayflow/internal/schedule"
	"dayflow/internal/stats"
)

// Service defines the schedule service operations the planner consumes.
// Implemented by *Client; adapters and the lifecycle coordinator depend on
// it so tests can substitute fakes.
type Service interface {
	ListByDate(ctx context.Context, dateKey string) ([]schedule.Summary, error)
	Detail(ctx context.Context, id int64) (*schedule.Summary, error)
	Create(ctx context.Context, req schedule.Request) (*schedule.Summary, error)
	Update(ctx context.Context, id int64, patch schedule.Patch) (*schedule.Summary, error)
	Delete(ctx context.Context, id int64) error
	Start(ctx context.Context, id int64, at datetime.ZonedDateTime) error
	Suspend(ctx context.Context, id int64, at datetime.ZonedDateTime) error
	Complete(ctx context.Context, id int64, at datetime.ZonedDateTime) error
	Cancel(ctx context.Context, id int64) error
	ActiveID(ctx context.Context) (int64, bool, error)
	WeeklyStatistics(ctx context.Context, at datetime.ZonedDateTime) (*stats.Weekly, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// StatusError reports a non-2xx response from the schedule service.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Op, e.StatusCode)
}

// Client talks to the schedule service HTTP API. Every request is scoped to
// the configured member and carries a correlation id.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	memberID  int64
}

const (
	defaultAPIBase   = "127.0.0.1:8080"
	defaultUserAgent = "dayflow/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client from the configured api_base host:port value and
// member id.
func NewClient(apiBase string, memberID int64) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	if memberID <= 0 {
		return nil, fmt.Errorf("member id must be positive, got %d", memberID)
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		memberID:  memberID,
	}, nil
}

// ListByDate retrieves the schedule summaries for one calendar day.
func (c *Client) ListByDate(ctx context.Context, dateKey string) ([]schedule.Summary, error) {
	values := c.memberQuery()
	values.Set("date", dateKey)
	rel := &url.URL{Path: "/api/v1/schedules", RawQuery: values.Encode()}

	var payload []schedule.Summary
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Detail retrieves the full record for one schedule.
func (c *Client) Detail(ctx context.Context, id int64) (*schedule.Summary, error) {
	rel := &url.URL{
		Path:     "/api/v1/schedules/" + strconv.FormatInt(id, 10),
		RawQuery: c.memberQuery().Encode(),
	}
	var payload schedule.Summary
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Create registers a new schedule. The payload is validated locally first so
// malformed requests never reach the service.
func (c *Client) Create(ctx context.Context, req schedule.Request) (*schedule.Summary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	rel := &url.URL{Path: "/api/v1/schedules", RawQuery: c.memberQuery().Encode()}
	var payload schedule.Summary
	if err := c.do(ctx, http.MethodPost, rel, req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Update applies a partial edit to a schedule.
func (c *Client) Update(ctx context.Context, id int64, patch schedule.Patch) (*schedule.Summary, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	rel := &url.URL{
		Path:     "/api/v1/schedules/" + strconv.FormatInt(id, 10),
		RawQuery: c.memberQuery().Encode(),
	}
	var payload schedule.Summary
	if err := c.do(ctx, http.MethodPatch, rel, patch, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Delete removes a schedule.
func (c *Client) Delete(ctx context.Context, id int64) error {
	rel := &url.URL{
		Path:     "/api/v1/schedules/" + strconv.FormatInt(id, 10),
		RawQuery: c.memberQuery().Encode(),
	}
	return c.do(ctx, http.MethodDelete, rel, nil, nil)
}

// Start issues the start lifecycle command at the given zoned instant.
func (c *Client) Start(ctx context.Context, id int64, at datetime.ZonedDateTime) error {
	return c.lifecycle(ctx, id, "start", &at)
}

// Suspend issues the suspend lifecycle command at the given zoned instant.
func (c *Client) Suspend(ctx context.Context, id int64, at datetime.ZonedDateTime) error {
	return c.lifecycle(ctx, id, "suspend", &at)
}

// Complete issues the complete lifecycle command at the given zoned instant.
func (c *Client) Complete(ctx context.Context, id int64, at datetime.ZonedDateTime) error {
	return c.lifecycle(ctx, id, "complete", &at)
}

// Cancel issues the cancel lifecycle command.
func (c *Client) Cancel(ctx context.Context, id int64) error {
	return c.lifecycle(ctx, id, "cancel", nil)
}

// lifecycle posts a state-transition command. The instant travels as an
// explicit (local date-time, zone id) pair so the service can reconstruct
// the member's local day; a bare UTC offset would lose the calendar zone.
func (c *Client) lifecycle(ctx context.Context, id int64, action string, at *datetime.ZonedDateTime) error {
	values := c.memberQuery()
	if at != nil {
		values.Set("time", at.DateTime)
		values.Set("zoneId", at.ZoneID)
	}
	rel := &url.URL{
		Path:     "/api/v1/schedules/" + strconv.FormatInt(id, 10) + "/" + action,
		RawQuery: values.Encode(),
	}
	return c.do(ctx, http.MethodPost, rel, nil, nil)
}

// ActiveID asks the service which schedule is currently active for the
// member. The second return is false when none is.
func (c *Client) ActiveID(ctx context.Context) (int64, bool, error) {
	rel := &url.URL{Path: "/api/v1/now", RawQuery: c.memberQuery().Encode()}

	var payload *int64
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return 0, false, err
	}
	if payload == nil || *payload <= 0 {
		return 0, false, nil
	}
	return *payload, true, nil
}

// WeeklyStatistics retrieves the aggregate work statistics for the week
// containing the given instant.
func (c *Client) WeeklyStatistics(ctx context.Context, at datetime.ZonedDateTime) (*stats.Weekly, error) {
	values := c.memberQuery()
	values.Set("time", at.DateTime)
	values.Set("zoneId", at.ZoneID)
	rel := &url.URL{Path: "/api/v2/statistics", RawQuery: values.Encode()}

	var payload stats.Weekly
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) memberQuery() url.Values {
	values := url.Values{}
	values.Set("memberId", strconv.FormatInt(c.memberID, 10))
	return values
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Op: rel.Path, StatusCode: resp.StatusCode}
	}
	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
