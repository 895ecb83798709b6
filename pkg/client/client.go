// Package client is a typed Go client for the Lummy Consults HTTP API.
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
	"sync"
	"time"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response decoded from the API's error body.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to one API deployment. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New builds a client for baseURL, e.g. "http://localhost:5000/api".
// httpClient may be nil.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(u.String(), "/"), http: httpClient}, nil
}

// SetToken replaces the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Signup creates a user-role account.
func (c *Client) Signup(ctx context.Context, in SignupInput) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login authenticates and remembers the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Protected returns the identity the server verified from the token.
func (c *Client) Protected(ctx context.Context) (*Identity, error) {
	var out struct {
		User Identity `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/protected", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UpsertTutorProfile saves the caller's tutor profile.
func (c *Client) UpsertTutorProfile(ctx context.Context, in TutorProfileInput) (*TutorProfile, error) {
	var out struct {
		Tutor TutorProfile `json:"tutor"`
	}
	if err := c.do(ctx, http.MethodPost, "/tutors", in, &out); err != nil {
		return nil, err
	}
	return &out.Tutor, nil
}

// GetTutorProfile returns the caller's own profile.
func (c *Client) GetTutorProfile(ctx context.Context) (*TutorProfile, error) {
	var out struct {
		Tutor TutorProfile `json:"tutor"`
	}
	if err := c.do(ctx, http.MethodGet, "/tutors/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.Tutor, nil
}

// ListPublicTutors returns every active tutor.
func (c *Client) ListPublicTutors(ctx context.Context) ([]PublicTutor, error) {
	var out struct {
		Tutors []PublicTutor `json:"tutors"`
	}
	if err := c.do(ctx, http.MethodGet, "/tutors", nil, &out); err != nil {
		return nil, err
	}
	return out.Tutors, nil
}

// GetPublicTutor returns an active tutor, or nil when none matches.
func (c *Client) GetPublicTutor(ctx context.Context, id string) (*TutorDetail, error) {
	var out struct {
		Tutor TutorDetail `json:"tutor"`
	}
	if err := c.do(ctx, http.MethodGet, "/tutors/"+url.PathEscape(id), nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &out.Tutor, nil
}

// ListPublicJobs returns published jobs.
func (c *Client) ListPublicJobs(ctx context.Context) ([]Job, error) {
	return c.listJobs(ctx, "/jobs")
}

// GetPublicJob returns a published job.
func (c *Client) GetPublicJob(ctx context.Context, id string) (*Job, error) {
	var out struct {
		Job Job `json:"job"`
	}
	if err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Job, nil
}

// ListAdminJobs returns jobs of every status. status may be empty.
func (c *Client) ListAdminJobs(ctx context.Context, status string) ([]Job, error) {
	path := "/admin/jobs"
	if status != "" {
		path += "?" + url.Values{"status": {status}}.Encode()
	}
	return c.listJobs(ctx, path)
}

// CreateJob posts a new job.
func (c *Client) CreateJob(ctx context.Context, in JobInput) (*Job, error) {
	var out struct {
		Job Job `json:"job"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/jobs", in, &out); err != nil {
		return nil, err
	}
	return &out.Job, nil
}

// UpdateJob replaces a job.
func (c *Client) UpdateJob(ctx context.Context, id string, in JobInput) (*Job, error) {
	var out struct {
		Job Job `json:"job"`
	}
	if err := c.do(ctx, http.MethodPut, "/admin/jobs/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out.Job, nil
}

// DeleteJob removes a job.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/jobs/"+url.PathEscape(id), nil, nil)
}

func (c *Client) listJobs(ctx context.Context, path string) ([]Job, error) {
	var out struct {
		Jobs []Job `json:"jobs"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
