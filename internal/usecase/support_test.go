package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/CoreDX1/File-Explorer-2/internal/core/domain"
	"github.com/CoreDX1/File-Explorer-2/internal/core/monad"
	"github.com/CoreDX1/File-Explorer-2/internal/repository"
)

// fakeUserStore is an in-memory port.UserStore with the same queue and
// version semantics as the postgres implementation.
type fakeUserStore struct {
	mu      sync.Mutex
	users   map[int64]domain.User
	nextID  int64
	inserts []*domain.User
	updates []domain.User

	findErr   error
	saveErr   error
	saveCalls int
}

func newFakeUserStore(seed ...domain.User) *fakeUserStore {
	store := &fakeUserStore{users: make(map[int64]domain.User), nextID: 1}
	for _, user := range seed {
		if user.ID >= store.nextID {
			store.nextID = user.ID + 1
		}
		store.users[user.ID] = user
	}
	return store
}

func (s *fakeUserStore) FindByID(_ context.Context, id int64) (monad.Maybe[domain.User], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return monad.None[domain.User](), s.findErr
	}
	if user, ok := s.users[id]; ok {
		return monad.Some(user), nil
	}
	return monad.None[domain.User](), nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (monad.Maybe[domain.User], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return monad.None[domain.User](), s.findErr
	}
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return monad.Some(user), nil
		}
	}
	return monad.None[domain.User](), nil
}

func (s *fakeUserStore) FindByResetToken(_ context.Context, tokenHash string) (monad.Maybe[domain.User], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return monad.None[domain.User](), s.findErr
	}
	for _, user := range s.users {
		if user.PasswordResetToken != nil && *user.PasswordResetToken == tokenHash {
			return monad.Some(user), nil
		}
	}
	return monad.None[domain.User](), nil
}

func (s *fakeUserStore) Insert(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts = append(s.inserts, user)
}

func (s *fakeUserStore) Update(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, user)
}

func (s *fakeUserStore) SaveChanges(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveCalls++
	inserts := s.inserts
	updates := s.updates
	s.inserts = nil
	s.updates = nil

	if s.saveErr != nil {
		return 0, s.saveErr
	}

	affected := 0
	for _, user := range inserts {
		user.ID = s.nextID
		s.nextID++
		s.users[user.ID] = *user
		affected++
	}
	for _, user := range updates {
		current, ok := s.users[user.ID]
		if !ok || current.Version != user.Version {
			return 0, repository.ErrVersionConflict
		}
		user.Version++
		s.users[user.ID] = user
		affected++
	}
	return affected, nil
}

func (s *fakeUserStore) get(id int64) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

// fakeMailer records deliveries and signals each one, so tests can wait
// for the fire-and-forget goroutine.
type fakeMailer struct {
	mu        sync.Mutex
	emails    []string
	tokens    []string
	err       error
	delivered chan struct{}
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{delivered: make(chan struct{}, 8)}
}

func (m *fakeMailer) SendPasswordResetEmail(_ context.Context, email, token string) error {
	m.mu.Lock()
	m.emails = append(m.emails, email)
	m.tokens = append(m.tokens, token)
	err := m.err
	m.mu.Unlock()
	m.delivered <- struct{}{}
	return err
}

func (m *fakeMailer) waitForDelivery(timeout time.Duration) bool {
	select {
	case <-m.delivered:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (m *fakeMailer) lastToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tokens) == 0 {
		return ""
	}
	return m.tokens[len(m.tokens)-1]
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testLogger = zap.NewNop()
