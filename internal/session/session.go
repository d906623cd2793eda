// Package session owns the authenticated identity of one POS terminal:
// who is logged in, persisted so a till restart does not force a fresh
// login, cleared on logout.
package session

import "errors"

// Session is the authenticated identity for the current terminal user.
// The json tags match the "user" object of the login response, so the
// same struct is decoded off the wire and serialized into the persisted
// store.
type Session struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`                 // admin, manager or cashier
	StationID uint64 `json:"station_id,omitempty"` // zero when not assigned to a station
}

// ErrAuthentication marks login failures: rejected credentials, backend
// errors, unreachable network. Callers match it with errors.Is to render
// a login failure message; the wrapped cause keeps the detail.
var ErrAuthentication = errors.New("authentication failed")
