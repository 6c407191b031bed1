package port

import (
	"context"

	"github.com/CoreDX1/File-Explorer-2/internal/core/domain"
	"github.com/CoreDX1/File-Explorer-2/internal/core/monad"
)

// UserStore exposes persistence behavior for user accounts. Lookups return
// Maybe for absence and error for storage failure; Insert and Update queue
// mutations that SaveChanges commits in a single transaction.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (monad.Maybe[domain.User], error)
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (monad.Maybe[domain.User], error)
	// FindByResetToken looks up by the stored hash of the opaque reset token.
	FindByResetToken(ctx context.Context, tokenHash string) (monad.Maybe[domain.User], error)
	// Insert queues a new user; the store assigns the ID during SaveChanges.
	Insert(user *domain.User)
	Update(user domain.User)
	// SaveChanges flushes every queued mutation atomically and returns the
	// number of rows affected. A stale Version surfaces as
	// repository.ErrVersionConflict.
	SaveChanges(ctx context.Context) (int, error)
}
