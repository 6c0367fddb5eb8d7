// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keep is a minimal client for the unofficial Google Keep API:
// token login, note creation, and a final change-flush sync. The endpoint
// URLs are overridable so tests can point the client at a local server.
package keep

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/notes-migrate/pkg/types"
)

const (
	defaultBaseURL   = "https://www.googleapis.com/notes/v1"
	defaultAuthURL   = "https://android.clients.google.com/auth"
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "notes-migrate/0.1"

	// authService is the OAuth scope requested from the token endpoint,
	// the same one the unofficial Keep clients use.
	authService = "oauth2:https://www.googleapis.com/auth/memento"
)

// Client talks to the destination service. It starts unauthenticated;
// Login transitions it to authenticated, and CreateNote and Sync refuse
// to run before that.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authURL    string
	userAgent  string
	token      string
	logger     zerolog.Logger
}

// NewClient builds a client from cfg, filling in defaults for any zero
// fields. Wire-level debug logging is off until WithLogger is called.
func NewClient(cfg types.KeepConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = defaultAuthURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		authURL:    authURL,
		userAgent:  userAgent,
		logger:     zerolog.Nop(),
	}
}

// WithLogger enables wire-level debug logging on the client.
func (c *Client) WithLogger(logger zerolog.Logger) *Client {
	c.logger = logger
	return c
}

// Authenticated reports whether Login has succeeded.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// Login exchanges the account credentials for an API token. The endpoint
// answers with key=value lines; a Token line authenticates the client and
// an Error line (e.g. BadAuthentication for app-password accounts) fails
// the login. Any failure is an *AuthError.
func (c *Client) Login(email, password string) error {
	form := url.Values{}
	form.Set("Email", email)
	form.Set("Passwd", password)
	form.Set("service", authService)

	req, err := http.NewRequest(http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return &AuthError{Reason: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().Str("url", c.authURL).Str("email", email).Msg("login request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &AuthError{Reason: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &AuthError{Reason: err.Error(), StatusCode: resp.StatusCode, Err: err}
	}

	fields := parseAuthResponse(string(body))
	if reason, ok := fields["Error"]; ok {
		return &AuthError{Reason: reason, StatusCode: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return &AuthError{Reason: fmt.Sprintf("HTTP %d", resp.StatusCode), StatusCode: resp.StatusCode}
	}
	token, ok := fields["Token"]
	if !ok || token == "" {
		return &AuthError{Reason: "no token in auth response", StatusCode: resp.StatusCode}
	}

	c.token = token
	c.logger.Debug().Msg("login succeeded")
	return nil
}

// parseAuthResponse splits the token endpoint's key=value line format.
func parseAuthResponse(body string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(body, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if found && key != "" {
			fields[key] = value
		}
	}
	return fields
}

// createNoteRequest is the JSON body for note creation.
type createNoteRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// CreateNote creates one remote note. Failures are *CallError and are
// independent per note: the caller decides whether to continue.
func (c *Client) CreateNote(title, text string) error {
	if !c.Authenticated() {
		return ErrNotAuthenticated
	}

	body, err := json.Marshal(createNoteRequest{Title: title, Text: text})
	if err != nil {
		return &CallError{Op: "create", Err: err}
	}

	c.logger.Debug().Str("title", title).Msg("create note")
	return c.post(c.baseURL+"/notes", "create", bytes.NewReader(body))
}

// Sync flushes any buffered state on the service side. It is called once,
// after all create attempts.
func (c *Client) Sync() error {
	if !c.Authenticated() {
		return ErrNotAuthenticated
	}
	c.logger.Debug().Msg("sync")
	return c.post(c.baseURL+"/changes", "sync", strings.NewReader("{}"))
}

func (c *Client) post(url, op string, body io.Reader) error {
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return &CallError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Authorization", "OAuth "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &CallError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &CallError{Op: op, StatusCode: resp.StatusCode}
	}
	return nil
}
