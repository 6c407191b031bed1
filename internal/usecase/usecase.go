// Package usecase holds the account-security application services. Every
// operation returns a monad.Result so callers branch on one channel; the
// fault taxonomy inside failures maps directly to transport responses.
package usecase

import (
	"errors"

	"github.com/CoreDX1/File-Explorer-2/internal/core/fault"
	"github.com/CoreDX1/File-Explorer-2/internal/repository"
)

const (
	msgEmailTaken      = "Email is already registered"
	msgVersionConflict = "The account was modified concurrently, please retry"
)

// saveFault categorizes a SaveChanges error. Version races and duplicate
// emails are expected conflicts; everything else is a storage failure.
func saveFault(operation string, err error) *fault.Error {
	switch {
	case errors.Is(err, repository.ErrVersionConflict):
		return fault.Conflict(msgVersionConflict)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return fault.Conflict(msgEmailTaken)
	default:
		return fault.Storage(operation, err)
	}
}
