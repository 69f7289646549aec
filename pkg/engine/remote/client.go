// Package remote implements the engine gateway over the task daemon's JSON
// HTTP surface. The daemon owns all task semantics; this client only moves
// bytes and classifies failures.
package remote

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

	"github.com/google/uuid"

	"tableflip.dev/tasque/pkg/engine"
)

// Client talks to a tasque engine daemon.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New creates a client with sane defaults. The returned client is safe for
// concurrent use.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Timeout:    10 * time.Second,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ engine.Gateway = (*Client)(nil)

// errorEnvelope is the daemon's uniform failure body.
type errorEnvelope struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) ConnectAndLoad(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "v1/session/connect", nil, nil)
}

func (c *Client) Calendars(ctx context.Context) ([]engine.Calendar, error) {
	var resp struct {
		Items []engine.Calendar `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "v1/calendars", nil, &resp)
	return resp.Items, err
}

func (c *Client) Tags(ctx context.Context) ([]engine.Tag, error) {
	var resp struct {
		Items []engine.Tag `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "v1/tags", nil, &resp)
	return resp.Items, err
}

func (c *Client) Config(ctx context.Context) (engine.Config, error) {
	var resp engine.Config
	err := c.do(ctx, http.MethodGet, "v1/config", nil, &resp)
	return resp, err
}

func (c *Client) Tasks(ctx context.Context, sel *engine.TagSelector, query string) ([]engine.Task, error) {
	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}
	if sel != nil {
		if sel.Uncategorized {
			params.Set("uncategorized", "true")
		} else {
			params.Set("tag", sel.Name)
		}
	}
	endpoint := "v1/tasks"
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	var resp struct {
		Items []engine.Task `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp.Items, err
}

func (c *Client) ToggleTask(ctx context.Context, uid string) error {
	return c.do(ctx, http.MethodPost, c.taskPath(uid, "toggle"), nil, nil)
}

func (c *Client) DeleteTask(ctx context.Context, uid string) error {
	return c.do(ctx, http.MethodDelete, c.taskPath(uid, ""), nil, nil)
}

func (c *Client) AddTask(ctx context.Context, smart string) error {
	body := map[string]any{"smart_string": smart}
	return c.do(ctx, http.MethodPost, "v1/tasks", body, nil)
}

func (c *Client) UpdateTaskText(ctx context.Context, uid, smart string) error {
	body := map[string]any{"smart_string": smart}
	return c.do(ctx, http.MethodPatch, c.taskPath(uid, "text"), body, nil)
}

func (c *Client) UpdateTaskDescription(ctx context.Context, uid, text string) error {
	body := map[string]any{"description": text}
	return c.do(ctx, http.MethodPatch, c.taskPath(uid, "description"), body, nil)
}

func (c *Client) MoveTask(ctx context.Context, uid, destHref string) error {
	body := map[string]any{"calendar_href": destHref}
	return c.do(ctx, http.MethodPost, c.taskPath(uid, "move"), body, nil)
}

func (c *Client) SetCalendarVisibility(ctx context.Context, href string, visible bool) error {
	body := map[string]any{"href": href, "visible": visible}
	return c.do(ctx, http.MethodPut, "v1/calendars/visibility", body, nil)
}

func (c *Client) SetDefaultCalendar(ctx context.Context, href string) error {
	body := map[string]any{"href": href}
	return c.do(ctx, http.MethodPut, "v1/calendars/default", body, nil)
}

func (c *Client) SaveConfig(ctx context.Context, cfg engine.ConnectionConfig) error {
	return c.do(ctx, http.MethodPut, "v1/config", cfg, nil)
}

func (c *Client) Connect(ctx context.Context, cfg engine.ConnectionConfig) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	err := c.do(ctx, http.MethodPost, "v1/session/connect", cfg, &resp)
	return resp.Status, err
}

func (c *Client) AddAlias(ctx context.Context, key string, tags []string) error {
	body := map[string]any{"alias": key, "tags": tags}
	return c.do(ctx, http.MethodPost, "v1/aliases", body, nil)
}

func (c *Client) RemoveAlias(ctx context.Context, key string) error {
	return c.do(ctx, http.MethodDelete, "v1/aliases/"+url.PathEscape(key), nil, nil)
}

func (c *Client) taskPath(uid, action string) string {
	p := fmt.Sprintf("v1/tasks/%s", url.PathEscape(uid))
	if action != "" {
		p += "/" + action
	}
	return p
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	// Never write fields here; gateway calls run concurrently.
	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: c.Timeout}
	}
	target := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return engine.Errorf(engine.KindValidation, "encode request: %v", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, target, &buf)
	if err != nil {
		return engine.Errorf(engine.KindConnection, "build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	resp, err := client.Do(req)
	if err != nil {
		return engine.Errorf(engine.KindConnection, "engine unreachable: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return engine.Errorf(engine.KindTransient, "decode response: %v", err)
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)
	var env errorEnvelope
	if err := json.Unmarshal(b, &env); err == nil && env.Error.Message != "" {
		kind := engine.Kind(env.Error.Kind)
		switch kind {
		case engine.KindConnection, engine.KindQuery, engine.KindNotFound,
			engine.KindValidation, engine.KindTransient:
		default:
			kind = kindForStatus(resp.StatusCode)
		}
		return engine.Errorf(kind, "%s", env.Error.Message)
	}
	return engine.Errorf(kindForStatus(resp.StatusCode), "engine error: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
}

func kindForStatus(status int) engine.Kind {
	switch status {
	case http.StatusNotFound:
		return engine.KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return engine.KindValidation
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusBadGateway:
		return engine.KindConnection
	default:
		return engine.KindTransient
	}
}

func (c *Client) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}
