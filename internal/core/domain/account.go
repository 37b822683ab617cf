package domain

import (
	"errors"
	"time"
)

// Role is the closed set of roles an account can hold. Self-registration may
// only pick Tourist or Guide; Admin accounts are provisioned at startup.
type Role string

const (
	RoleTourist Role = "Tourist"
	RoleGuide   Role = "Guide"
	RoleAdmin   Role = "Admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleTourist, RoleGuide, RoleAdmin:
		return true
	}
	return false
}

// SelfAssignable reports whether a user may pick r during registration.
func (r Role) SelfAssignable() bool {
	return r == RoleTourist || r == RoleGuide
}

// AccountStatus represents the lifecycle state of an account.
type AccountStatus string

const (
	StatusActive  AccountStatus = "Active"
	StatusBlocked AccountStatus = "Blocked"
)

var ErrUsernameTaken = errors.New("username taken")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountBlocked = errors.New("account blocked")
var ErrAccountNotFound = errors.New("account not found")
var ErrAlreadyBlocked = errors.New("account already blocked")
var ErrAlreadyActive = errors.New("account already active")
var ErrInvalidRole = errors.New("invalid role")
var ErrForbidden = errors.New("access forbidden")
var ErrTooManyAttempts = errors.New("too many login attempts")

// Account models a registered user of the platform.
//
// Invariants: Username is unique across all accounts and immutable, Role is
// immutable post-creation, BlockedAt is non-nil exactly when Status is
// Blocked, and PasswordHash is never empty nor serialized to any response.
type Account struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Role         Role          `json:"role"`
	Status       AccountStatus `json:"status"`
	FirstName    string        `json:"first_name,omitempty"`
	LastName     string        `json:"last_name,omitempty"`
	Description  string        `json:"description,omitempty"`
	Motto        string        `json:"motto,omitempty"`
	ProfilePhoto string        `json:"profile_photo,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	BlockedAt    *time.Time    `json:"blocked_at,omitempty"`
}

// Blocked reports whether the account is currently blocked.
func (a *Account) Blocked() bool {
	return a.Status == StatusBlocked
}
