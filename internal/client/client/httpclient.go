package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/profilesync/internal/client/models"
	"github.com/dmitrijs2005/profilesync/internal/client/session"
	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/logging"
	"github.com/dmitrijs2005/profilesync/internal/netx"
	"github.com/spf13/cast"
)

// Endpoint paths, relative to the base URL.
const (
	PathRegister = "/register"
	PathLogin    = "/login"
	PathProfile  = "/profile"
	PathTest     = "/test"
)

// ExistenceCheckPassword is sent by CheckUserExists. The remote API answers
// 401 for a known user and 404 for an unknown one.
const ExistenceCheckPassword = "dummy_check_password_123"

// operation describes how one endpoint's failures are reported.
type operation struct {
	what        string // used in "HTTP <code>: <what>"
	specific    map[int]error
	withDetails bool // whether the server's "details" field is a fallback text
}

var (
	opRegister = operation{
		what: "Registration failed",
		specific: map[int]error{
			http.StatusConflict:   common.ErrUserAlreadyExists,
			http.StatusBadRequest: common.ErrInvalidData,
		},
		withDetails: true,
	}
	opLogin = operation{
		what: "Login failed",
		specific: map[int]error{
			http.StatusNotFound:     common.ErrUserNotFound,
			http.StatusUnauthorized: common.ErrInvalidCredentials,
		},
		withDetails: true,
	}
	profileErrors = map[int]error{
		http.StatusUnauthorized: common.ErrUnauthorized,
		http.StatusForbidden:    common.ErrUnauthorized,
	}
	opGetProfile    = operation{what: "Failed to fetch profile", specific: profileErrors}
	opCreateProfile = operation{what: "Failed to create profile", specific: profileErrors}
	opUpdateProfile = operation{what: "Failed to update profile", specific: profileErrors}
)

// envelope is the union of the JSON bodies the remote API returns. Members
// are read one by one so that a member of an unexpected type never hides the
// others.
type envelope struct {
	AccessToken string
	User        *models.UserInfo
	Message     any
	Error       any
	Details     any
	Data        json.RawMessage
}

// parseEnvelope fails only when raw is not a JSON object.
func parseEnvelope(raw []byte) (*envelope, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, err
	}
	return &envelope{
		AccessToken: scalar(value(members["access_token"])),
		User:        userInfo(value(members["user"])),
		Message:     value(members["message"]),
		Error:       value(members["error"]),
		Details:     value(members["details"]),
		Data:        members["data"],
	}, nil
}

// value decodes one member; numbers stay exact as json.Number.
func value(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// scalar renders strings, numbers and booleans as text; anything else is "".
func scalar(v any) string {
	switch t := v.(type) {
	case json.Number:
		return t.String()
	case map[string]any, []any:
		return ""
	default:
		return cast.ToString(t)
	}
}

// userInfo accepts a user object with string or numeric members. Other
// shapes yield nil.
func userInfo(v any) *models.UserInfo {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return &models.UserInfo{
		ID:       scalar(obj["id"]),
		Email:    scalar(obj["email"]),
		Username: scalar(obj["username"]),
	}
}

func (e *envelope) serverText(withDetails bool) string {
	for _, v := range []any{e.Error, e.Message} {
		if s := text(v); s != "" {
			return s
		}
	}
	if withDetails {
		return text(e.Details)
	}
	return ""
}

// profile decodes the "data" member, or returns fallback when it is absent
// or not an object.
func (e *envelope) profile(fallback models.Profile) models.Profile {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return fallback
	}
	var in models.ProfileInput
	if err := json.Unmarshal(e.Data, &in); err != nil {
		return fallback
	}
	return in.Normalize()
}

// rawData returns the "data" member unchanged, or nil when absent.
func (e *envelope) rawData() json.RawMessage {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return nil
	}
	return e.Data
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// HTTPClient talks to the remote identity/profile API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient returns a client for baseURL; every request is bounded by
// timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With("backend", ModeRemote),
	}
}

func (c *HTTPClient) Mode() string { return ModeRemote }

func (c *HTTPClient) CheckUserExists(ctx context.Context, identifier string) (bool, error) {
	payload := map[string]string{"password": ExistenceCheckPassword}
	if strings.Contains(identifier, "@") {
		payload["email"] = identifier
	} else {
		payload["username"] = identifier
	}

	resp, err := c.call(ctx, http.MethodPost, PathLogin, "", payload)
	if err != nil {
		return false, err
	}
	switch resp.Status {
	case http.StatusOK, http.StatusUnauthorized:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		c.log.Debug(ctx, "existence check returned an unexpected status, reporting not found", "status", resp.Status)
		return false, nil
	}
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	c.log.Debug(ctx, "register", "email", req.Email, "username", req.Username, "password", "***")

	resp, err := c.call(ctx, http.MethodPost, PathRegister, "", req)
	if err != nil {
		return nil, err
	}
	env, err := decode(resp, opRegister)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{AccessToken: env.AccessToken, User: env.User, Message: text(env.Message)}, nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	c.log.Debug(ctx, "login", "email", req.Email, "username", req.Username, "password", "***")

	resp, err := c.call(ctx, http.MethodPost, PathLogin, "", req)
	if err != nil {
		return nil, err
	}
	env, err := decode(resp, opLogin)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{AccessToken: env.AccessToken, User: env.User, Message: text(env.Message)}, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, s session.Session) (*models.ProfileResponse, error) {
	resp, err := c.call(ctx, http.MethodGet, PathProfile, s.Token, nil)
	if err != nil {
		return nil, err
	}
	env, err := decode(resp, opGetProfile)
	if err != nil {
		return nil, err
	}
	return &models.ProfileResponse{Message: text(env.Message), Data: env.profile(models.DefaultProfile()), Raw: env.rawData()}, nil
}

func (c *HTTPClient) CreateProfile(ctx context.Context, s session.Session, p models.Profile) (*models.ProfileResponse, error) {
	return c.writeProfile(ctx, http.MethodPost, s, p, opCreateProfile)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, s session.Session, p models.Profile) (*models.ProfileResponse, error) {
	return c.writeProfile(ctx, http.MethodPut, s, p, opUpdateProfile)
}

func (c *HTTPClient) writeProfile(ctx context.Context, method string, s session.Session, p models.Profile, op operation) (*models.ProfileResponse, error) {
	p = p.Normalize()
	c.log.Debug(ctx, "write profile", "method", method, "name", p.Name, "has_image", p.ProfileImage != "")

	resp, err := c.call(ctx, method, PathProfile, s.Token, p)
	if err != nil {
		return nil, err
	}
	env, err := decode(resp, op)
	if err != nil {
		return nil, err
	}
	return &models.ProfileResponse{Message: text(env.Message), Data: env.profile(p), Raw: env.rawData()}, nil
}

func (c *HTTPClient) TestConnection(ctx context.Context) error {
	resp, err := c.call(ctx, http.MethodGet, PathTest, "", nil)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return statusError(resp.Status, nil, "", "connection test failed")
	}
	return nil
}

// call performs one request. token is sent in the access-token header when
// not empty.
func (c *HTTPClient) call(ctx context.Context, method, path, token string, payload any) (*netx.Response, error) {
	if c.baseURL == "" {
		return nil, common.NewAPIError(common.ErrRequestFailed, 0, "API base URL is not configured")
	}

	header := http.Header{}
	if token != "" {
		header.Set(common.AccessTokenHeaderName, token)
	}

	started := time.Now()
	resp, err := netx.DoJSON(ctx, c.http, method, c.baseURL+path, header, payload)
	if err != nil {
		c.log.Warn(ctx, "remote request failed", "method", method, "path", path, "error", err)
		return nil, mapError(err)
	}
	c.log.Debug(ctx, "remote request", "method", method, "path", path,
		"status", resp.Status, "token", token != "", "elapsed", time.Since(started))
	return resp, nil
}

// decode applies the body rules shared by every endpoint: an empty body is a
// message-only result, a 2xx body that is not JSON becomes its own message,
// and non-2xx statuses are mapped to errors.
func decode(resp *netx.Response, op operation) (*envelope, error) {
	raw := strings.TrimSpace(string(resp.Body))
	env := &envelope{}

	parsed := true
	if raw == "" {
		env.Message = DetailEmptyResponse
	} else if e, err := parseEnvelope([]byte(raw)); err != nil {
		parsed = false
	} else {
		env = e
	}

	if !resp.OK() {
		if !parsed {
			if isSpecific(resp.Status, op.specific) {
				return nil, statusError(resp.Status, op.specific, "", op.what)
			}
			return nil, malformedError(resp.Status, raw)
		}
		return nil, statusError(resp.Status, op.specific, env.serverText(op.withDetails), op.what)
	}

	if !parsed {
		return &envelope{Message: raw}, nil
	}
	return env, nil
}

var _ Client = (*HTTPClient)(nil)
