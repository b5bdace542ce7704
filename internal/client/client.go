// Package client is the Go client for the FlowTask API: typed wrappers over
// the REST surface plus an in-memory store kept current by the change feed.
package client

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

	"flowtask/internal/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches a session token to subsequent requests. Only the
// realtime feed requires one.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Session is the response of the session endpoint.
type Session struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	ExpiresIn int64  `json:"expires_in"`
}

// TaskDraft is the caller-controlled portion of a new task.
type TaskDraft struct {
	ListID      string     `json:"list_id"`
	Title       string     `json:"title"`
	Notes       string     `json:"notes,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsImportant bool       `json:"is_important,omitempty"`
	IsMyDay     bool       `json:"is_my_day,omitempty"`
	ClientRef   string     `json:"client_ref,omitempty"`
}

func (c *Client) NewSession(ctx context.Context, email string) (Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/api/auth/session", map[string]string{"email": email}, &session)
	return session, err
}

func (c *Client) ListLists(ctx context.Context) ([]models.List, error) {
	var lists []models.List
	err := c.do(ctx, http.MethodGet, "/api/lists", nil, &lists)
	return lists, err
}

// ListDraft is the caller-controlled portion of a new list.
type ListDraft struct {
	Title          string `json:"title"`
	UserIdentifier string `json:"user_identifier,omitempty"`
	IsDefault      bool   `json:"is_default,omitempty"`
}

func (c *Client) CreateList(ctx context.Context, draft ListDraft) (models.List, error) {
	var created []models.List
	if err := c.do(ctx, http.MethodPost, "/api/lists", draft, &created); err != nil {
		return models.List{}, err
	}
	if len(created) == 0 {
		return models.List{}, fmt.Errorf("server returned no created list")
	}
	return created[0], nil
}

// ListTasks fetches tasks, optionally narrowed to a list and then to one of
// the my-day/important filters.
func (c *Client) ListTasks(ctx context.Context, listID, filter string) ([]models.Task, error) {
	params := url.Values{}
	if listID != "" {
		params.Set("listId", listID)
	}
	if filter != "" {
		params.Set("filter", filter)
	}
	path := "/api/tasks"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var tasks []models.Task
	err := c.do(ctx, http.MethodGet, path, nil, &tasks)
	return tasks, err
}

func (c *Client) CreateTask(ctx context.Context, draft TaskDraft) (models.Task, error) {
	var created []models.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", draft, &created); err != nil {
		return models.Task{}, err
	}
	if len(created) == 0 {
		return models.Task{}, fmt.Errorf("server returned no created task")
	}
	return created[0], nil
}

// UpdateTask applies a partial update. A missing task yields ok=false, not
// an error, mirroring the server's idempotent zero-row semantics.
func (c *Client) UpdateTask(ctx context.Context, id string, fields map[string]interface{}) (models.Task, bool, error) {
	var updated []models.Task
	if err := c.do(ctx, http.MethodPatch, "/api/tasks/"+id, fields, &updated); err != nil {
		return models.Task{}, false, err
	}
	if len(updated) == 0 {
		return models.Task{}, false, nil
	}
	return updated[0], true, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server error (%d)", resp.StatusCode)
	}

	if dest == nil {
		return nil
	}
	return json.Unmarshal(data, dest)
}
