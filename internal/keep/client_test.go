// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keep

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notes-migrate/pkg/types"
)

// fakeKeep is a destination-service stand-in with a token endpoint at
// /auth and the notes API at the server root.
type fakeKeep struct {
	mux *http.ServeMux
	srv *httptest.Server

	authResponse string
	authStatus   int
	createStatus int
	syncStatus   int

	createCalls int
	syncCalls   int
	lastAuth    string
	lastCreate  createNoteRequest
}

func newFakeKeep(t *testing.T) *fakeKeep {
	t.Helper()
	f := &fakeKeep{
		mux:          http.NewServeMux(),
		authResponse: "SID=ignored\nToken=test-token-123\n",
		authStatus:   http.StatusOK,
		createStatus: http.StatusOK,
		syncStatus:   http.StatusOK,
	}

	f.mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(f.authStatus)
		w.Write([]byte(f.authResponse))
	})
	f.mux.HandleFunc("/notes", func(w http.ResponseWriter, r *http.Request) {
		f.createCalls++
		f.lastAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&f.lastCreate)
		w.WriteHeader(f.createStatus)
	})
	f.mux.HandleFunc("/changes", func(w http.ResponseWriter, r *http.Request) {
		f.syncCalls++
		w.WriteHeader(f.syncStatus)
	})

	f.srv = httptest.NewServer(f.mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeKeep) client() *Client {
	return NewClient(types.KeepConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "notes-migrate-test"},
		BaseURL:    f.srv.URL,
		AuthURL:    f.srv.URL + "/auth",
	})
}

func TestLoginSuccess(t *testing.T) {
	f := newFakeKeep(t)
	c := f.client()

	require.False(t, c.Authenticated())
	require.NoError(t, c.Login("user@example.com", "app-password"))
	assert.True(t, c.Authenticated())
}

func TestLoginBadAuthentication(t *testing.T) {
	f := newFakeKeep(t)
	f.authStatus = http.StatusForbidden
	f.authResponse = "Error=BadAuthentication\n"
	c := f.client()

	err := c.Login("user@example.com", "wrong")
	require.Error(t, err)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "BadAuthentication", authErr.Reason)
	assert.Equal(t, http.StatusForbidden, authErr.StatusCode)
	assert.False(t, c.Authenticated())
}

func TestLoginMissingToken(t *testing.T) {
	f := newFakeKeep(t)
	f.authResponse = "SID=only\n"
	c := f.client()

	err := c.Login("user@example.com", "pw")
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "no token in auth response", authErr.Reason)
}

func TestRemoteCallsRequireLogin(t *testing.T) {
	f := newFakeKeep(t)
	c := f.client()

	assert.ErrorIs(t, c.CreateNote("title", "text"), ErrNotAuthenticated)
	assert.ErrorIs(t, c.Sync(), ErrNotAuthenticated)
	assert.Zero(t, f.createCalls)
	assert.Zero(t, f.syncCalls)
}

func TestCreateNote(t *testing.T) {
	f := newFakeKeep(t)
	c := f.client()
	require.NoError(t, c.Login("user@example.com", "pw"))

	require.NoError(t, c.CreateNote("Groceries", "milk\neggs"))
	assert.Equal(t, 1, f.createCalls)
	assert.Equal(t, "OAuth test-token-123", f.lastAuth)
	assert.Equal(t, createNoteRequest{Title: "Groceries", Text: "milk\neggs"}, f.lastCreate)
}

func TestCreateNoteServerError(t *testing.T) {
	f := newFakeKeep(t)
	f.createStatus = http.StatusInternalServerError
	c := f.client()
	require.NoError(t, c.Login("user@example.com", "pw"))

	err := c.CreateNote("Groceries", "milk")
	require.Error(t, err)

	var callErr *CallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, "create", callErr.Op)
	assert.Equal(t, http.StatusInternalServerError, callErr.StatusCode)
}

func TestSyncServerError(t *testing.T) {
	f := newFakeKeep(t)
	f.syncStatus = http.StatusBadGateway
	c := f.client()
	require.NoError(t, c.Login("user@example.com", "pw"))

	err := c.Sync()
	var callErr *CallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, "sync", callErr.Op)
}

func TestParseAuthResponse(t *testing.T) {
	fields := parseAuthResponse("SID=abc\nToken=tok=with=equals\n\nmalformed line\n")
	assert.Equal(t, "abc", fields["SID"])
	assert.Equal(t, "tok=with=equals", fields["Token"])
	assert.NotContains(t, fields, "malformed line")
}
