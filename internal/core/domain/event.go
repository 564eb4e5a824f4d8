package domain

import "time"

// AuthEventType classifies an entry in the authentication audit trail.
type AuthEventType string

const (
	AuthEventRegister      AuthEventType = "register"
	AuthEventLogin         AuthEventType = "login"
	AuthEventProfileUpdate AuthEventType = "profile_update"
)

// AuthEvent records a single authentication-related action.
type AuthEvent struct {
	Type       AuthEventType
	UserID     string // empty when the account could not be resolved
	Email      string
	Success    bool
	IP         string
	OccurredAt time.Time
}
