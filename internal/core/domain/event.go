package domain

import "time"

// AuthEventType names an entry in the authentication audit trail.
type AuthEventType string

const (
	EventRegistered      AuthEventType = "registered"
	EventLoginSucceeded  AuthEventType = "login_succeeded"
	EventLoginFailed     AuthEventType = "login_failed"
	EventPasswordChanged AuthEventType = "password_changed"
	EventIdentityRemoved AuthEventType = "identity_removed"
)

// AuthEvent records an authentication-relevant action.
type AuthEvent struct {
	Type       AuthEventType
	SubjectID  int64 // zero when the identity could not be resolved
	Identifier string
	Reason     string
	OccurredAt time.Time
}
