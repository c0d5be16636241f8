package ledger

import (
	"context"
	"strings"
	"sync"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/repository"
)

// FakeRepository is a stateful in-memory implementation of repository.Ledger
// for integration-style unit tests. It must remain in the ledger package to
// avoid import cycles with service tests.
type FakeRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by user ID

	// Failure injection
	BeginTxErr error
	CommitErr  error
}

// NewFakeRepository creates an empty fake ledger repository
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser seeds a user record
func (f *FakeRepository) AddUser(user domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = cloneUser(&user)
}

func (f *FakeRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (f *FakeRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Username, username) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (f *FakeRepository) CreateUser(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = cloneUser(user)
	return nil
}

func (f *FakeRepository) UpdateUser(ctx context.Context, user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = cloneUser(&user)
	return nil
}

func (f *FakeRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	if f.BeginTxErr != nil {
		return nil, f.BeginTxErr
	}
	return &fakeTx{repo: f}, nil
}

// fakeTx applies writes straight through to the fake store. Rollback is a
// no-op, which is fine for tests that only exercise the happy path or fail
// before any write.
type fakeTx struct {
	repo *FakeRepository
}

func (t *fakeTx) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return t.repo.GetUserByID(ctx, userID)
}

func (t *fakeTx) UpdateUser(ctx context.Context, user domain.User) error {
	return t.repo.UpdateUser(ctx, user)
}

func (t *fakeTx) Commit(ctx context.Context) error {
	return t.repo.CommitErr
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Skills = append([]string(nil), u.Skills...)
	c.Portfolio = append([]domain.PortfolioItem(nil), u.Portfolio...)
	return &c
}
