package remote

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

	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

// Client talks to the hosted backend's PostgREST-style REST surface. All
// methods return plain errors on transport or service failure; callers keep
// local state untouched and retry.
type Client struct {
	baseURL string
	apiKey  string
	token   string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetAccessToken installs the signed-in user's bearer token.
func (c *Client) SetAccessToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("remote: build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: %s %s", ErrUnauthenticated, method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("remote: %s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("remote: decode response: %w", err)
	}
	return nil
}

func (c *Client) ListEvents(ctx context.Context) ([]model.WeekendEvent, error) {
	var out []model.WeekendEvent
	if err := c.do(ctx, http.MethodGet, "/rest/v1/weekend_events?deleted_at=is.null&order=weekend_key.asc", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpsertEvent(ctx context.Context, event model.WeekendEvent) error {
	return c.do(ctx, http.MethodPost, "/rest/v1/weekend_events?on_conflict=id", []model.WeekendEvent{event}, nil)
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	path := "/rest/v1/weekend_events?id=eq." + url.QueryEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) ListCalendars(ctx context.Context) ([]model.PlannerCalendar, error) {
	var out []model.PlannerCalendar
	if err := c.do(ctx, http.MethodGet, "/rest/v1/planner_calendars?order=created_at.asc", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListNotices(ctx context.Context) ([]model.UserNotice, error) {
	var out []model.UserNotice
	if err := c.do(ctx, http.MethodGet, "/rest/v1/user_notices?order=created_at.desc", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkNoticeRead(ctx context.Context, noticeID string) (bool, error) {
	var out struct {
		Updated bool `json:"updated"`
	}
	body := map[string]string{"notice_id": noticeID}
	if err := c.do(ctx, http.MethodPost, "/rest/v1/rpc/mark_notice_read", body, &out); err != nil {
		return false, err
	}
	return out.Updated, nil
}

func (c *Client) ListGoals(ctx context.Context) ([]model.MonthlyGoal, error) {
	var out []model.MonthlyGoal
	if err := c.do(ctx, http.MethodGet, "/rest/v1/monthly_goals?order=month.asc", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpsertGoal(ctx context.Context, goal model.MonthlyGoal) error {
	return c.do(ctx, http.MethodPost, "/rest/v1/monthly_goals?on_conflict=user_id,month", []model.MonthlyGoal{goal}, nil)
}

func (c *Client) DeleteMyAccount(ctx context.Context, mode OwnershipMode) (DeleteAccountResult, error) {
	if !mode.IsValid() {
		return DeleteAccountResult{}, ErrInvalidOwnershipMode
	}
	var out DeleteAccountResult
	body := map[string]string{"ownership_mode": string(mode)}
	if err := c.do(ctx, http.MethodPost, "/rest/v1/rpc/delete_my_account", body, &out); err != nil {
		return DeleteAccountResult{}, err
	}
	return out, nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/auth/v1/recover", body, nil)
}

var _ Service = (*Client)(nil)

// IsUnauthenticated reports whether err stems from a rejected session.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}
