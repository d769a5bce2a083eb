package gateway

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

	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/models"
	"github.com/noah-isme/student-records/pkg/config"
	"github.com/noah-isme/student-records/pkg/middleware/requestid"
)

// Backend actions, tables and modes.
const (
	ActionReadJoined = "read_joined"
	ActionGetPending = "get_pending"
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionBulkEnroll = "bulk_enroll"
	ActionLogin      = "login"

	TableProfile = "profile"
	TableHistory = "history"

	ModeFullStudent = "full_student"

	statusSuccess = "success"
)

const maxResponseBytes = 32 << 20

// Observer receives the outcome of every backend call.
type Observer interface {
	ObserveGatewayCall(action string, success bool, duration time.Duration)
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	User    json.RawMessage `json:"user,omitempty"`
	Message string          `json:"message,omitempty"`
}

type postBody struct {
	Action string      `json:"action"`
	Table  string      `json:"table,omitempty"`
	Mode   string      `json:"mode,omitempty"`
	Data   interface{} `json:"data"`
}

// profileUpdate drops the creation timestamp from profile updates; the
// shallower field shadows the embedded one and is always empty.
type profileUpdate struct {
	models.StudentProfile
	ProfileCreatedAt string `json:"Profile_Created_At,omitempty"`
}

// Client talks to the remote records and auth endpoints.
// Reads return an empty slice and mutations return false on any failure;
// failures are logged and never surfaced as errors.
type Client struct {
	dataURL  string
	authURL  string
	settings models.Settings
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// NewClient builds a gateway client. A zero timeout leaves the transport defaults in charge.
func NewClient(backend config.BackendConfig, settings config.SettingsConfig, logger *zap.Logger, observer Observer) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		dataURL: backend.DataURL,
		authURL: backend.AuthURL,
		settings: models.Settings{
			ClassList:   append([]string(nil), settings.Classes...),
			SectionList: append([]string(nil), settings.Sections...),
			YearList:    append([]string(nil), settings.Years...),
		},
		http:     &http.Client{Timeout: backend.Timeout},
		logger:   logger,
		observer: observer,
	}
}

// ReadProfiles returns every student merged with its record, optionally for one year.
func (c *Client) ReadProfiles(ctx context.Context, year string) []models.StudentData {
	return c.readStudents(ctx, ActionReadJoined, strings.TrimSpace(year))
}

// GetPending returns the profiles that have no record for the given year.
func (c *Client) GetPending(ctx context.Context, year string) []models.StudentData {
	return c.readStudents(ctx, ActionGetPending, strings.TrimSpace(year))
}

// FetchSettings returns the configured enumerations.
func (c *Client) FetchSettings(context.Context) models.Settings {
	return models.Settings{
		ClassList:   append([]string(nil), c.settings.ClassList...),
		SectionList: append([]string(nil), c.settings.SectionList...),
		YearList:    append([]string(nil), c.settings.YearList...),
	}
}

// CreateProfile submits a new profile.
func (c *Client) CreateProfile(ctx context.Context, profile models.StudentProfile) bool {
	return c.mutate(ctx, postBody{Action: ActionCreate, Table: TableProfile, Data: profile})
}

// UpdateProfile submits profile columns only so enrollment data is never touched.
func (c *Client) UpdateProfile(ctx context.Context, profile models.StudentProfile) bool {
	return c.mutate(ctx, postBody{Action: ActionUpdate, Table: TableProfile, Data: profileUpdate{StudentProfile: profile}})
}

// EnrollStudent creates an academic record.
func (c *Client) EnrollStudent(ctx context.Context, record models.AcademicRecord) bool {
	return c.mutate(ctx, postBody{Action: ActionCreate, Table: TableHistory, Data: record})
}

// UpdateHistory updates an academic record in place.
func (c *Client) UpdateHistory(ctx context.Context, record models.AcademicRecord) bool {
	return c.mutate(ctx, postBody{Action: ActionUpdate, Table: TableHistory, Data: record})
}

// BulkEnroll writes a batch of records as one unit.
func (c *Client) BulkEnroll(ctx context.Context, entries []models.BulkEnrollEntry) bool {
	if entries == nil {
		entries = []models.BulkEnrollEntry{}
	}
	return c.mutate(ctx, postBody{Action: ActionBulkEnroll, Data: entries})
}

// DeleteFull removes a profile together with all of its records.
func (c *Client) DeleteFull(ctx context.Context, uid string) bool {
	return c.mutate(ctx, postBody{
		Action: ActionDelete,
		Mode:   ModeFullStudent,
		Data:   map[string]string{"Student_UID": uid},
	})
}

// LoginUser authenticates against the auth endpoint. The backend message is kept on failure.
func (c *Client) LoginUser(ctx context.Context, email, password string) models.LoginResult {
	start := time.Now()
	env, err := c.do(ctx, http.MethodPost, c.authURL, postBody{
		Action: ActionLogin,
		Data:   map[string]string{"email": email, "password": password},
	})
	if err != nil {
		c.fail(ctx, ActionLogin, "", start, err)
		return models.LoginResult{Status: models.LoginStatusError, Message: "Network error"}
	}

	result := models.LoginResult{Status: env.Status, Message: env.Message}
	if env.Status != statusSuccess {
		c.fail(ctx, ActionLogin, "", start, fmt.Errorf("backend status %q: %s", env.Status, env.Message))
		return result
	}

	userRaw := env.User
	if isEmptyData(userRaw) {
		userRaw = env.Data
	}
	if !isEmptyData(userRaw) {
		var user models.User
		if err := cleanData(userRaw, &user); err != nil {
			c.fail(ctx, ActionLogin, "", start, fmt.Errorf("decode user: %w", err))
			return models.LoginResult{Status: models.LoginStatusError, Message: "invalid login response"}
		}
		result.User = &user
	}
	c.observe(ActionLogin, result.User != nil, start)
	return result
}

func (c *Client) readStudents(ctx context.Context, action, year string) []models.StudentData {
	start := time.Now()
	target, err := c.queryURL(action, year)
	if err != nil {
		c.fail(ctx, action, "", start, err)
		return []models.StudentData{}
	}

	env, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		c.fail(ctx, action, "", start, err)
		return []models.StudentData{}
	}
	if env.Status != statusSuccess {
		c.fail(ctx, action, "", start, fmt.Errorf("backend status %q: %s", env.Status, env.Message))
		return []models.StudentData{}
	}
	if isEmptyData(env.Data) {
		c.observe(action, true, start)
		return []models.StudentData{}
	}

	var students []models.StudentData
	if err := cleanData(env.Data, &students); err != nil {
		c.fail(ctx, action, "", start, fmt.Errorf("decode students: %w", err))
		return []models.StudentData{}
	}
	if students == nil {
		students = []models.StudentData{}
	}
	c.observe(action, true, start)
	return NormalizeAll(students)
}

func (c *Client) mutate(ctx context.Context, body postBody) bool {
	start := time.Now()
	env, err := c.do(ctx, http.MethodPost, c.dataURL, body)
	if err != nil {
		c.fail(ctx, body.Action, body.Table, start, err)
		return false
	}
	if env.Status != statusSuccess {
		c.fail(ctx, body.Action, body.Table, start, fmt.Errorf("backend status %q: %s", env.Status, env.Message))
		return false
	}
	c.observe(body.Action, true, start)
	return true
}

func (c *Client) queryURL(action, year string) (string, error) {
	u, err := url.Parse(c.dataURL)
	if err != nil {
		return "", fmt.Errorf("parse data url: %w", err)
	}
	q := u.Query()
	q.Set("action", action)
	if year != "" {
		q.Set("year", year)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) do(ctx context.Context, method, target string, body interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.HeaderKey, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("backend responded %d", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &env, nil
}

func (c *Client) fail(ctx context.Context, action, table string, start time.Time, err error) {
	c.logger.Warn("backend call failed",
		zap.String("action", action),
		zap.String("table", table),
		zap.String("request_id", requestid.FromContext(ctx)),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)
	c.observe(action, false, start)
}

func (c *Client) observe(action string, success bool, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveGatewayCall(action, success, time.Since(start))
}
