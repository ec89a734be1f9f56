package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "backend_requests_total",
	Help: "Requests issued to the attendance backend by endpoint and outcome.",
}, []string{"endpoint", "outcome"})

// APIError is a backend response with a non-2xx status.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Body)
}

// Client calls the attendance REST backend. It is a plain pass-through: no
// retries, no caching; a failed call surfaces once.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a client for the given API base URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Login exchanges credentials for an access/refresh token pair.
func (c *Client) Login(ctx context.Context, username, password string) (TokenPair, error) {
	var pair TokenPair
	payload := map[string]string{"username": username, "password": password}
	err := c.do(ctx, "", http.MethodPost, "auth/login/", payload, &pair)
	return pair, err
}

// ListTeachers returns all teacher accounts.
func (c *Client) ListTeachers(ctx context.Context, token string) ([]Teacher, error) {
	var out []Teacher
	err := c.do(ctx, token, http.MethodGet, "teachers/", nil, &out)
	return out, err
}

// CreateTeacher creates a teacher account. The role is fixed server-side
// semantics; the client always submits "teacher".
func (c *Client) CreateTeacher(ctx context.Context, token string, t Teacher) error {
	t.Role = "teacher"
	return c.do(ctx, token, http.MethodPost, "teachers/", t, nil)
}

// UpdateTeacher patches a teacher account.
func (c *Client) UpdateTeacher(ctx context.Context, token string, id int64, t Teacher) error {
	return c.do(ctx, token, http.MethodPatch, fmt.Sprintf("teachers/%d/", id), t, nil)
}

// DeleteTeacher removes a teacher account.
func (c *Client) DeleteTeacher(ctx context.Context, token string, id int64) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("teachers/%d/", id), nil, nil)
}

// ListStudents returns students visible to the caller (the backend scopes
// the list by role).
func (c *Client) ListStudents(ctx context.Context, token string) ([]Student, error) {
	var out []Student
	err := c.do(ctx, token, http.MethodGet, "students/", nil, &out)
	return out, err
}

// CreateStudent creates a student profile.
func (c *Client) CreateStudent(ctx context.Context, token string, s Student) error {
	return c.do(ctx, token, http.MethodPost, "students/", s, nil)
}

// UpdateStudent patches a student profile.
func (c *Client) UpdateStudent(ctx context.Context, token string, id int64, s Student) error {
	return c.do(ctx, token, http.MethodPatch, fmt.Sprintf("students/%d/", id), s, nil)
}

// DeleteStudent removes a student profile.
func (c *Client) DeleteStudent(ctx context.Context, token string, id int64) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("students/%d/", id), nil, nil)
}

// MarkBulk submits attendance for multiple students on one date.
func (c *Client) MarkBulk(ctx context.Context, token string, marks []AttendanceMark) error {
	return c.do(ctx, token, http.MethodPost, "attendance/mark_bulk/", marks, nil)
}

// ListAttendance returns attendance records scoped to the caller.
func (c *Client) ListAttendance(ctx context.Context, token string) ([]AttendanceRecord, error) {
	var out []AttendanceRecord
	err := c.do(ctx, token, http.MethodGet, "attendance/", nil, &out)
	return out, err
}

// DashboardStats returns the role-scoped aggregate counts for admin and
// teacher dashboards.
func (c *Client) DashboardStats(ctx context.Context, token string) (DashboardStats, error) {
	var out DashboardStats
	err := c.do(ctx, token, http.MethodGet, "dashboard/stats/", nil, &out)
	return out, err
}

// StudentStats returns the student-scoped aggregate. The backend serves this
// under dashboard-stats/, a distinct path from DashboardStats; both are kept
// for compatibility with the deployed contract.
func (c *Client) StudentStats(ctx context.Context, token string) (StudentStats, error) {
	var out StudentStats
	err := c.do(ctx, token, http.MethodGet, "dashboard-stats/", nil, &out)
	return out, err
}

// Reports returns per-student aggregate attendance rows.
func (c *Client) Reports(ctx context.Context, token string) ([]ReportRow, error) {
	var out []ReportRow
	err := c.do(ctx, token, http.MethodGet, "reports/", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, token, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+"/"+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(path, "transport_error").Inc()
		return fmt.Errorf("backend request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		requestsTotal.WithLabelValues(path, "error").Inc()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	requestsTotal.WithLabelValues(path, "ok").Inc()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s response: %w", path, err)
		}
	}
	return nil
}
