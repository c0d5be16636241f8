package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playventures/bizlab/internal/accrual"
	"github.com/playventures/bizlab/internal/concurrency"
	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/event"
	"github.com/playventures/bizlab/internal/logger"
	"github.com/playventures/bizlab/internal/metrics"
	"github.com/playventures/bizlab/internal/repository"
)

// CompletionSummary describes the outcome of committing a game result
type CompletionSummary struct {
	CurrencyEarned int   `json:"currency_earned"`
	XPEarned       int   `json:"xp_earned"`
	LeveledUp      bool  `json:"leveled_up"`
	NewLevel       int   `json:"new_level"`
	TotalCoins     int   `json:"total_coins"`
	TotalXP        int64 `json:"total_xp"`
}

// PendingItem is one portfolio entry's uncollected yield
type PendingItem struct {
	BusinessID   string  `json:"business_id"`
	ManagerLevel int     `json:"manager_level"`
	Pending      int     `json:"pending"`
	Progress     float64 `json:"progress"`
}

// CollectedItem is one portfolio entry's share of a collection
type CollectedItem struct {
	BusinessID string `json:"business_id"`
	Amount     int    `json:"amount"`
}

// CollectResult contains the result of an idle-income collection
type CollectResult struct {
	Collected int             `json:"collected"`
	Items     []CollectedItem `json:"items"`
	Balance   int             `json:"balance"`
}

// BusinessDirectory answers whether a business config exists. The catalog
// implements this; the ledger only needs existence checks.
type BusinessDirectory interface {
	Exists(businessID string) bool
}

// Service defines the interface for reward-ledger operations. All mutating
// operations are serialized per user.
type Service interface {
	RegisterUser(ctx context.Context, username string) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	CompleteGame(ctx context.Context, userID, businessID string, gameType domain.GameType, result domain.GameResult) (*CompletionSummary, error)
	HireManager(ctx context.Context, userID, businessID string) (*domain.User, error)
	PendingIncome(ctx context.Context, userID string, now time.Time) ([]PendingItem, error)
	CollectIdleIncome(ctx context.Context, userID, businessID string, now time.Time) (*CollectResult, error)
	CollectAllIdleIncome(ctx context.Context, userID string, now time.Time) (*CollectResult, error)
	Shutdown(ctx context.Context) error
}

type service struct {
	repo       repository.Ledger
	businesses BusinessDirectory
	bus        event.Bus
	cache      *UserCache
	locks      *concurrency.LockManager
	wg         sync.WaitGroup
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger, businesses BusinessDirectory, bus event.Bus) Service {
	return &service{
		repo:       repo,
		businesses: businesses,
		bus:        bus,
		cache:      NewUserCache(),
		locks:      concurrency.NewLockManager(),
	}
}

func (s *service) RegisterUser(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContext(ctx)
	log.Info("RegisterUser called", "username", username)

	if username == "" {
		return nil, fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	existing, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		log.Error("Failed to check username", "error", err)
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUsernameTaken, username)
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		log.Error("Failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("User registered", "user_id", user.ID, "username", username)
	return user, nil
}

func (s *service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if cached, ok := s.cache.Get(userID); ok {
		return cached, nil
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	s.cache.Put(user)
	return user, nil
}

func (s *service) CompleteGame(ctx context.Context, userID, businessID string, gameType domain.GameType, result domain.GameResult) (*CompletionSummary, error) {
	log := logger.FromContext(ctx)
	log.Info("CompleteGame called", "user_id", userID, "business_id", businessID, "game_type", gameType, "currency", result.CurrencyEarned, "xp", result.XPEarned)

	if result.CurrencyEarned < 0 || result.XPEarned < 0 {
		return nil, fmt.Errorf("%w: negative reward deltas", domain.ErrInvalidInput)
	}

	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUser(ctx, userID)
	if err != nil {
		log.Error("Failed to get user", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	oldLevel := CalculateLevel(user.XP)
	user.BizCoins += result.CurrencyEarned
	user.XP += int64(result.XPEarned)
	user.Level = CalculateLevel(user.XP)
	leveledUp := user.Level > oldLevel

	if err := tx.UpdateUser(ctx, *user); err != nil {
		log.Error("Failed to update user", "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit transaction", "error", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cache.Invalidate(userID)

	metrics.CoinsAwarded.Add(float64(result.CurrencyEarned))
	metrics.XPAwarded.Add(float64(result.XPEarned))

	s.publishAsync(event.NewGameCompletedEvent(userID, businessID, string(gameType), result.CurrencyEarned, result.XPEarned))
	if leveledUp {
		metrics.LevelUps.Inc()
		s.publishAsync(event.NewLevelUpEvent(userID, oldLevel, user.Level, user.XP))
		log.Info("User leveled up", "user_id", userID, "old_level", oldLevel, "new_level", user.Level)
	}

	return &CompletionSummary{
		CurrencyEarned: result.CurrencyEarned,
		XPEarned:       result.XPEarned,
		LeveledUp:      leveledUp,
		NewLevel:       user.Level,
		TotalCoins:     user.BizCoins,
		TotalXP:        user.XP,
	}, nil
}

func (s *service) HireManager(ctx context.Context, userID, businessID string) (*domain.User, error) {
	log := logger.FromContext(ctx)
	log.Info("HireManager called", "user_id", userID, "business_id", businessID)

	if s.businesses != nil && !s.businesses.Exists(businessID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrBusinessNotFound, businessID)
	}

	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUser(ctx, userID)
	if err != nil {
		log.Error("Failed to get user", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if user.FindPortfolioItem(businessID) != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrManagerAlreadyHired, businessID)
	}
	if user.BizCoins < ManagerHireCost {
		return nil, fmt.Errorf("%w: hire costs %d, balance %d", domain.ErrInsufficientFunds, ManagerHireCost, user.BizCoins)
	}

	user.BizCoins -= ManagerHireCost
	user.Portfolio = append(user.Portfolio, domain.PortfolioItem{
		BusinessID:    businessID,
		ManagerLevel:  InitialManagerLevel,
		LastCollected: time.Now().UTC(),
	})

	if err := tx.UpdateUser(ctx, *user); err != nil {
		log.Error("Failed to update user", "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit transaction", "error", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cache.Invalidate(userID)
	metrics.ManagersHired.Inc()
	s.publishAsync(event.NewManagerHiredEvent(userID, businessID, ManagerHireCost))

	log.Info("Manager hired", "user_id", userID, "business_id", businessID, "balance", user.BizCoins)
	return user, nil
}

func (s *service) PendingIncome(ctx context.Context, userID string, now time.Time) ([]PendingItem, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]PendingItem, 0, len(user.Portfolio))
	for _, p := range user.Portfolio {
		items = append(items, PendingItem{
			BusinessID:   p.BusinessID,
			ManagerLevel: p.ManagerLevel,
			Pending:      accrual.Pending(p.LastCollected, now, p.ManagerLevel),
			Progress:     accrual.Progress(p.LastCollected, now, p.ManagerLevel),
		})
	}
	return items, nil
}

func (s *service) CollectIdleIncome(ctx context.Context, userID, businessID string, now time.Time) (*CollectResult, error) {
	return s.collect(ctx, userID, &businessID, now)
}

func (s *service) CollectAllIdleIncome(ctx context.Context, userID string, now time.Time) (*CollectResult, error) {
	return s.collect(ctx, userID, nil, now)
}

// collect gathers pending income from one portfolio item (businessID set) or
// all of them (businessID nil). Collection resets LastCollected even when the
// pending amount floors to zero, so partial-coin progress is forfeited.
func (s *service) collect(ctx context.Context, userID string, businessID *string, now time.Time) (*CollectResult, error) {
	log := logger.FromContext(ctx)

	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUser(ctx, userID)
	if err != nil {
		log.Error("Failed to get user", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	result := &CollectResult{Items: []CollectedItem{}}
	matched := false
	for i := range user.Portfolio {
		p := &user.Portfolio[i]
		if businessID != nil && p.BusinessID != *businessID {
			continue
		}
		matched = true

		amount := accrual.Pending(p.LastCollected, now, p.ManagerLevel)
		p.LastCollected = now
		user.BizCoins += amount
		result.Collected += amount
		result.Items = append(result.Items, CollectedItem{BusinessID: p.BusinessID, Amount: amount})
	}
	if businessID != nil && !matched {
		return nil, fmt.Errorf("%w: %s", domain.ErrManagerNotHired, *businessID)
	}

	if err := tx.UpdateUser(ctx, *user); err != nil {
		log.Error("Failed to update user", "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit transaction", "error", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cache.Invalidate(userID)
	result.Balance = user.BizCoins

	if result.Collected > 0 {
		metrics.IdleIncomeCollected.Add(float64(result.Collected))
		s.publishAsync(event.NewIncomeCollectedEvent(userID, result.Collected, len(result.Items)))
	}

	log.Info("Idle income collected", "user_id", userID, "collected", result.Collected, "balance", result.Balance)
	return result, nil
}

// publishAsync publishes an event without blocking the caller
func (s *service) publishAsync(evt event.Event) {
	if s.bus == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx := context.Background()
		if err := s.bus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Warn("Failed to publish event", "type", evt.Type, "error", err)
		}
	}()
}

func (s *service) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info("Ledger service shutting down, waiting for background tasks...")
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}
