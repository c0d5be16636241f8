// Package rhythm implements the beat-tap template: three lanes of falling
// notes judged by distance from a fixed hit line. This is the only template
// running on a frame-rate tick; everything else uses coarser timers.
package rhythm

import (
	"context"
	"fmt"
	"time"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/game/engine"
)

// Playfield constants. Positions are in virtual pixels; notes spawn at the
// top and fall toward the hit line at a constant per-frame speed.
const (
	LaneCount          = 3
	HitLineY           = 400.0
	NoteSpeedPerFrame  = 4.0
	HitWindow          = 50.0
	PerfectWindow      = 10.0
	GreatWindow        = 30.0
	PerfectPoints      = 50
	GreatPoints        = 25
	GoodPoints         = 10
	DefaultSpawnRateMs = 1000

	frameInterval = 16 * time.Millisecond
)

// Judgement grades
const (
	JudgementPerfect = "PERFECT"
	JudgementGreat   = "Great"
	JudgementGood    = "Good"
	JudgementMiss    = "MISS"
)

type note struct {
	Lane  int     `json:"lane"`
	Y     float64 `json:"y"`
	Glyph string  `json:"glyph"`
}

// Session is a rhythm game in progress
type Session struct {
	rnd       func() float64
	glyphs    []string
	spawnRate time.Duration

	notes         []note
	score         int
	combo         int
	lastJudgement string
	lastSpawn     time.Time
	started       bool
	ended         bool
}

// New creates a rhythm session from a config
func New(cfg *domain.BusinessSimulation, deps engine.Deps) *Session {
	spawnMs := cfg.GameMechanics.SpawnRateMs
	if spawnMs <= 0 {
		spawnMs = DefaultSpawnRateMs
	}

	glyphs := make([]string, 0, len(cfg.Entities))
	for _, e := range cfg.ItemEntities() {
		if e.Glyph != "" {
			glyphs = append(glyphs, e.Glyph)
		}
	}
	if len(glyphs) == 0 {
		glyphs = []string{"♪"}
	}

	return &Session{
		rnd:       deps.Rnd,
		glyphs:    glyphs,
		spawnRate: time.Duration(spawnMs) * time.Millisecond,
	}
}

func (s *Session) Type() domain.GameType {
	return domain.GameTypeRhythm
}

func (s *Session) View() engine.View {
	notes := make([]note, len(s.notes))
	copy(notes, s.notes)

	return engine.View{
		GameType: domain.GameTypeRhythm,
		Phase:    "playing",
		Score:    s.score,
		Combo:    s.combo,
		Message:  s.lastJudgement,
		Extra: map[string]any{
			"notes":    notes,
			"hit_line": HitLineY,
			"lanes":    LaneCount,
		},
	}
}

func (s *Session) Act(_ context.Context, action engine.Action) (engine.View, error) {
	if s.ended {
		return engine.View{}, domain.ErrSessionEnded
	}
	if action.Type != engine.ActionTap {
		return engine.View{}, fmt.Errorf("%w: %s", domain.ErrInvalidAction, action.Type)
	}
	if action.Lane < 0 || action.Lane >= LaneCount {
		return engine.View{}, fmt.Errorf("%w: lane %d out of range", domain.ErrInvalidAction, action.Lane)
	}

	s.judge(action.Lane)
	return s.View(), nil
}

// judge scores the nearest in-window note in the lane, or registers a miss
func (s *Session) judge(lane int) {
	best := -1
	bestDist := HitWindow
	for i, n := range s.notes {
		if n.Lane != lane {
			continue
		}
		dist := n.Y - HitLineY
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}

	if best == -1 {
		s.combo = 0
		s.lastJudgement = JudgementMiss
		return
	}

	var points int
	switch {
	case bestDist < PerfectWindow:
		points = PerfectPoints
		s.lastJudgement = JudgementPerfect
	case bestDist < GreatWindow:
		points = GreatPoints
		s.lastJudgement = JudgementGreat
	default:
		points = GoodPoints
		s.lastJudgement = JudgementGood
	}

	// Combo counts every hit regardless of grade and scales the points
	s.combo++
	bonus := 1 + float64(s.combo/5)*0.1
	s.score += int(float64(points) * bonus)

	s.notes = append(s.notes[:best], s.notes[best+1:]...)
}

// Tick advances every note one frame and spawns when the interval elapses
func (s *Session) Tick(_ context.Context, now time.Time) {
	if s.ended {
		return
	}

	if !s.started {
		s.started = true
		s.lastSpawn = now
	}

	if now.Sub(s.lastSpawn) >= s.spawnRate {
		s.spawn()
		s.lastSpawn = now
	}

	kept := s.notes[:0]
	for _, n := range s.notes {
		n.Y += NoteSpeedPerFrame
		// Notes falling past the window are gone; only taps can miss
		if n.Y <= HitLineY+HitWindow {
			kept = append(kept, n)
		}
	}
	s.notes = kept
}

func (s *Session) spawn() {
	lane := int(s.rnd() * LaneCount)
	if lane >= LaneCount {
		lane = LaneCount - 1
	}
	glyph := s.glyphs[int(s.rnd()*float64(len(s.glyphs)))%len(s.glyphs)]

	s.notes = append(s.notes, note{Lane: lane, Y: 0, Glyph: glyph})
}

func (s *Session) TickInterval() time.Duration {
	return frameInterval
}

func (s *Session) Exit(_ context.Context) (domain.GameResult, error) {
	if s.ended {
		return domain.GameResult{}, domain.ErrSessionEnded
	}
	s.ended = true

	return domain.GameResult{
		CurrencyEarned: s.score / 10,
		XPEarned:       s.score / 20,
	}, nil
}
