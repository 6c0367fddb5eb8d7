// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keep

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned by remote calls issued before a
// successful Login.
var ErrNotAuthenticated = errors.New("not authenticated: call Login first")

// AuthGuidance is printed to the operator after a login failure. Accounts
// with two-factor enabled cannot log in with their regular password.
const AuthGuidance = `Note: If you have 2FA enabled, you need to use an App Password:
1. Go to https://myaccount.google.com/apppasswords
2. Generate a new app password for 'Mail'
3. Use that password instead of your regular password`

// AuthError reports a failed login. No uploads are attempted after one.
type AuthError struct {
	// Reason is the failure token from the auth endpoint
	// (e.g. "BadAuthentication"), or a transport description.
	Reason string

	// StatusCode is the HTTP status of the auth response, 0 on
	// transport errors.
	StatusCode int

	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("logging in to Google Keep: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// CallError reports a failed remote call after authentication. Per-note
// create failures are isolated; a sync failure is surfaced as a warning.
type CallError struct {
	// Op is the remote operation, "create" or "sync".
	Op string

	// StatusCode is the HTTP status of the response, 0 on transport errors.
	StatusCode int

	Err error
}

func (e *CallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }
