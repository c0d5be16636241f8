package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/game/engine"
	"github.com/playventures/bizlab/internal/game/ticker"
	"github.com/playventures/bizlab/internal/ledger"
	"github.com/playventures/bizlab/internal/logger"
	"github.com/playventures/bizlab/internal/metrics"
	"github.com/playventures/bizlab/internal/repository"
	"github.com/playventures/bizlab/internal/skill"
	"github.com/playventures/bizlab/internal/utils"
)

// ConfigSource supplies business configs by ID
type ConfigSource interface {
	Get(businessID string) (*domain.BusinessSimulation, error)
}

// LedgerService is the slice of the reward ledger the game runtime needs
type LedgerService interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	CompleteGame(ctx context.Context, userID, businessID string, gameType domain.GameType, result domain.GameResult) (*ledger.CompletionSummary, error)
}

// ExitSummary is returned when a session ends: the raw template reward plus
// the ledger's view of the commit.
type ExitSummary struct {
	Result     domain.GameResult         `json:"result"`
	Completion *ledger.CompletionSummary `json:"completion"`
}

// Manager owns the active game sessions, keyed by (userID, businessID).
// One session per key; all input to a session is serialized on its mutex.
type Manager struct {
	configs   ConfigSource
	ledgerSvc LedgerService
	saves     repository.SessionSave
	modifiers engine.ModifierSource
	sched     ticker.Scheduler
	rnd       func() float64
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*managedSession
}

type managedSession struct {
	mu           sync.Mutex
	session      engine.Session
	userID       string
	businessID   string
	handle       ticker.Handle
	lastActivity time.Time
}

// ManagerOption customizes a Manager
type ManagerOption func(*Manager)

// WithScheduler overrides the tick scheduler (tests use ticker.Manual)
func WithScheduler(s ticker.Scheduler) ManagerOption {
	return func(m *Manager) { m.sched = s }
}

// WithRandom overrides the RNG
func WithRandom(rnd func() float64) ManagerOption {
	return func(m *Manager) { m.rnd = rnd }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a session manager
func NewManager(configs ConfigSource, ledgerSvc LedgerService, saves repository.SessionSave, resolver *skill.Resolver, opts ...ManagerOption) *Manager {
	m := &Manager{
		configs:   configs,
		ledgerSvc: ledgerSvc,
		saves:     saves,
		sched:     ticker.NewScheduler(),
		rnd:       utils.RandomFloat,
		now:       time.Now,
		sessions:  make(map[string]*managedSession),
	}
	m.modifiers = &skillModifierSource{resolver: resolver, users: ledgerSvc}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// skillModifierSource resolves a user's current skills on demand, so a skill
// unlocked mid-session affects the next simulated day.
type skillModifierSource struct {
	resolver *skill.Resolver
	users    LedgerService
}

func (s *skillModifierSource) ModifiersFor(ctx context.Context, userID string) (skill.Modifiers, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return skill.Modifiers{}, fmt.Errorf("failed to get user for modifiers: %w", err)
	}
	return s.resolver.Resolve(user.Skills), nil
}

func sessionKey(userID, businessID string) string {
	return userID + "|" + businessID
}

// Start opens a session for (user, business), or resumes the existing one
func (m *Manager) Start(ctx context.Context, userID, businessID string) (engine.View, error) {
	log := logger.FromContext(ctx)

	cfg, err := m.configs.Get(businessID)
	if err != nil {
		return engine.View{}, err
	}

	key := sessionKey(userID, businessID)

	m.mu.Lock()
	if existing, ok := m.sessions[key]; ok {
		m.mu.Unlock()
		existing.mu.Lock()
		defer existing.mu.Unlock()
		existing.lastActivity = m.now()
		return existing.session.View(), nil
	}
	m.mu.Unlock()

	session, err := NewSession(ctx, cfg, engine.Deps{
		UserID:    userID,
		Rnd:       m.rnd,
		Now:       m.now,
		Modifiers: m.modifiers,
		Saves:     m.saves,
	})
	if err != nil {
		return engine.View{}, err
	}

	ms := &managedSession{
		session:      session,
		userID:       userID,
		businessID:   businessID,
		lastActivity: m.now(),
	}
	if interval := session.TickInterval(); interval > 0 {
		ms.handle = m.sched.Every(interval, func(now time.Time) {
			ms.mu.Lock()
			defer ms.mu.Unlock()
			ms.session.Tick(context.Background(), now)
		})
	}

	m.mu.Lock()
	if existing, ok := m.sessions[key]; ok {
		// Lost the race to a concurrent Start; discard ours
		m.mu.Unlock()
		if ms.handle != nil {
			ms.handle.Stop()
		}
		existing.mu.Lock()
		defer existing.mu.Unlock()
		return existing.session.View(), nil
	}
	m.sessions[key] = ms
	m.mu.Unlock()

	metrics.GamesStarted.WithLabelValues(string(cfg.GameType)).Inc()
	log.Info("Game session started", "user_id", userID, "business_id", businessID, "game_type", cfg.GameType)
	return session.View(), nil
}

func (m *Manager) find(userID, businessID string) (*managedSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms, ok := m.sessions[sessionKey(userID, businessID)]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return ms, nil
}

// Act delivers a player input to the session
func (m *Manager) Act(ctx context.Context, userID, businessID string, action engine.Action) (engine.View, error) {
	ms, err := m.find(userID, businessID)
	if err != nil {
		return engine.View{}, err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.lastActivity = m.now()
	return ms.session.Act(ctx, action)
}

// State returns the session's current view
func (m *Manager) State(_ context.Context, userID, businessID string) (engine.View, error) {
	ms, err := m.find(userID, businessID)
	if err != nil {
		return engine.View{}, err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.session.View(), nil
}

// Exit ends the session, stops its ticks, and commits the reward exactly once
func (m *Manager) Exit(ctx context.Context, userID, businessID string) (*ExitSummary, error) {
	ms, err := m.find(userID, businessID)
	if err != nil {
		return nil, err
	}
	return m.teardown(ctx, ms)
}

func (m *Manager) teardown(ctx context.Context, ms *managedSession) (*ExitSummary, error) {
	log := logger.FromContext(ctx)

	ms.mu.Lock()
	result, err := ms.session.Exit(ctx)
	gameType := ms.session.Type()
	ms.mu.Unlock()

	// The session is gone from the map either way; a second Exit on the
	// template is the only ErrSessionEnded source here.
	m.mu.Lock()
	delete(m.sessions, sessionKey(ms.userID, ms.businessID))
	m.mu.Unlock()
	if ms.handle != nil {
		ms.handle.Stop()
	}

	if err != nil {
		return nil, err
	}

	metrics.GamesCompleted.WithLabelValues(string(gameType)).Inc()

	summary := &ExitSummary{Result: result}
	if result.CurrencyEarned > 0 || result.XPEarned > 0 {
		completion, err := m.ledgerSvc.CompleteGame(ctx, ms.userID, ms.businessID, gameType, result)
		if err != nil {
			log.Error("Failed to commit game reward", "user_id", ms.userID, "business_id", ms.businessID, "error", err)
			return nil, fmt.Errorf("failed to commit game reward: %w", err)
		}
		summary.Completion = completion
	}

	log.Info("Game session ended", "user_id", ms.userID, "business_id", ms.businessID, "game_type", gameType, "currency", result.CurrencyEarned, "xp", result.XPEarned)
	return summary, nil
}

// ExpireIdle force-exits sessions idle longer than the timeout, committing
// their rewards. Returns the number of sessions expired.
func (m *Manager) ExpireIdle(ctx context.Context, timeout time.Duration) int {
	cutoff := m.now().Add(-timeout)

	m.mu.Lock()
	var stale []*managedSession
	for _, ms := range m.sessions {
		ms.mu.Lock()
		if ms.lastActivity.Before(cutoff) {
			stale = append(stale, ms)
		}
		ms.mu.Unlock()
	}
	m.mu.Unlock()

	for _, ms := range stale {
		if _, err := m.teardown(ctx, ms); err != nil {
			logger.FromContext(ctx).Warn("Failed to expire idle session", "user_id", ms.userID, "business_id", ms.businessID, "error", err)
			continue
		}
		metrics.SessionsExpired.Inc()
	}
	return len(stale)
}

// ActiveSessions returns the number of live sessions
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown force-exits every session so no reward is lost on stop
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	all := make([]*managedSession, 0, len(m.sessions))
	for _, ms := range m.sessions {
		all = append(all, ms)
	}
	m.mu.Unlock()

	for _, ms := range all {
		if _, err := m.teardown(ctx, ms); err != nil {
			logger.FromContext(ctx).Warn("Failed to close session during shutdown", "user_id", ms.userID, "business_id", ms.businessID, "error", err)
		}
	}
	return nil
}
