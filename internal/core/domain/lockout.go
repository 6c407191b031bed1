package domain

import (
	"fmt"
	"time"
)

// LockoutOptions is the immutable per-process lockout configuration. It is
// constructed once at startup and injected by reference; operations never
// re-instantiate it.
type LockoutOptions struct {
	MaxFailedAccessAttempts int
	DefaultLockoutTimeSpan  time.Duration
	AllowedForNewUser       bool
}

// DefaultLockoutOptions returns the stock policy: five attempts, five
// minute lockout, lockout applied to new accounts too.
func DefaultLockoutOptions() LockoutOptions {
	return LockoutOptions{
		MaxFailedAccessAttempts: 5,
		DefaultLockoutTimeSpan:  5 * time.Minute,
		AllowedForNewUser:       true,
	}
}

// Applies reports whether the policy covers the account. When
// AllowedForNewUser is false, accounts that have not been activated yet
// are exempt from lockout; their failures are still counted but never
// lock.
func (o LockoutOptions) Applies(accountActive bool) bool {
	return o.AllowedForNewUser || accountActive
}

// AccountState is the derived security state of an account. It is computed
// from the lockout timestamp on every check, never stored, so an elapsed
// lockout lifts itself without a background job.
type AccountState int

const (
	// AccountActive allows authentication to proceed.
	AccountActive AccountState = iota
	// AccountLocked rejects authentication until the lockout end passes.
	AccountLocked
)

// AccountStateAt evaluates the lockout timestamp against the clock.
// A nil or elapsed LockoutEnd is Active.
func AccountStateAt(now time.Time, lockoutEnd *time.Time) AccountState {
	if lockoutEnd == nil || !lockoutEnd.After(now) {
		return AccountActive
	}
	return AccountLocked
}

// LockoutDecision is the outcome of applying the policy to a failed
// credential check.
type LockoutDecision struct {
	FailedAttempts int
	LockoutEnd     *time.Time
	Locked         bool
	Message        string
}

// NextLockoutState increments the failure counter and decides whether the
// account locks. The lockout end is set only on the attempt that reaches
// the configured maximum.
func NextLockoutState(currentFailedAttempts int, opts LockoutOptions, now time.Time) LockoutDecision {
	attempts := currentFailedAttempts + 1
	decision := LockoutDecision{FailedAttempts: attempts}

	if attempts >= opts.MaxFailedAccessAttempts {
		end := now.Add(opts.DefaultLockoutTimeSpan)
		decision.LockoutEnd = &end
		decision.Locked = true
		decision.Message = fmt.Sprintf(
			"Account locked due to too many failed attempts. Attempt %d of %d",
			attempts, opts.MaxFailedAccessAttempts,
		)
		return decision
	}

	decision.Message = fmt.Sprintf(
		"Invalid credentials. Attempt %d of %d",
		attempts, opts.MaxFailedAccessAttempts,
	)
	return decision
}
