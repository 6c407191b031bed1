package domain

import "time"

// Role enumerates the authorization roles a token may carry. A single
// variant is populated today; new roles extend the enum without widening
// the authentication contract.
type Role string

const (
	// RoleUser is the only role issued to accounts at present.
	RoleUser Role = "User"
)

// User mirrors the persisted representation in the users table. The
// authentication subsystem owns the credential and security-state fields;
// storage of the record belongs to the repository layer.
type User struct {
	ID           int64
	Email        string
	PasswordHash string

	FirstName string
	LastName  string
	Phone     string

	// Security state. LockoutEnd absent or in the past means not locked;
	// the reset token is stored as a SHA-256 hash of the opaque value.
	FailedLoginAttempts      int
	LockoutEnd               *time.Time
	PasswordResetToken       *string
	PasswordResetTokenExpiry *time.Time

	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLoginAt *time.Time
	IsActive    bool

	// Version guards the read-modify-write on security counters. A save
	// against a stale version is reported as a conflict, not silently lost.
	Version int64
}

// RecordLogin applies the successful-authentication transition: counters
// cleared, lockout lifted, login stamped.
func (u *User) RecordLogin(now time.Time) {
	u.FailedLoginAttempts = 0
	u.LockoutEnd = nil
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// ClearResetToken removes the password-reset artifact after use.
func (u *User) ClearResetToken(now time.Time) {
	u.PasswordResetToken = nil
	u.PasswordResetTokenExpiry = nil
	u.UpdatedAt = now
}
