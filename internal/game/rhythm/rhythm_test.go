package rhythm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/game/engine"
)

func testConfig() *domain.BusinessSimulation {
	return &domain.BusinessSimulation{
		ID:       "dance_studio",
		GameType: domain.GameTypeRhythm,
		GameMechanics: domain.GameMechanics{
			SpawnRateMs: 1000,
		},
		Entities: []domain.Entity{
			{ID: "note_star", Type: domain.EntityTypeItem, Glyph: "⭐"},
		},
	}
}

func newSession() *Session {
	return New(testConfig(), engine.Deps{Rnd: func() float64 { return 0 }})
}

func tap(t *testing.T, s *Session, lane int) engine.View {
	t.Helper()
	view, err := s.Act(context.Background(), engine.Action{Type: engine.ActionTap, Lane: lane})
	require.NoError(t, err)
	return view
}

func TestJudgement_ByDistance(t *testing.T) {
	tests := []struct {
		name      string
		y         float64
		points    int
		judgement string
	}{
		{"perfect on the line", HitLineY, PerfectPoints, JudgementPerfect},
		{"perfect within 10px", HitLineY - 9, PerfectPoints, JudgementPerfect},
		{"great within 30px", HitLineY + 20, GreatPoints, JudgementGreat},
		{"good within window", HitLineY - 45, GoodPoints, JudgementGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession()
			s.notes = []note{{Lane: 1, Y: tt.y, Glyph: "⭐"}}

			view := tap(t, s, 1)
			assert.Equal(t, tt.points, view.Score)
			assert.Equal(t, tt.judgement, view.Message)
			assert.Equal(t, 1, view.Combo)
			assert.Empty(t, s.notes, "a judged note is consumed")
		})
	}
}

func TestMiss_ResetsCombo(t *testing.T) {
	s := newSession()
	s.combo = 7

	// Note outside the window
	s.notes = []note{{Lane: 1, Y: HitLineY - 60, Glyph: "⭐"}}
	view := tap(t, s, 1)
	assert.Equal(t, JudgementMiss, view.Message)
	assert.Equal(t, 0, view.Combo)
	assert.Equal(t, 0, view.Score)
	assert.Len(t, s.notes, 1, "an unjudged note stays on the field")

	// Right position, wrong lane
	s.notes = []note{{Lane: 0, Y: HitLineY, Glyph: "⭐"}}
	view = tap(t, s, 2)
	assert.Equal(t, JudgementMiss, view.Message)
}

func TestComboBonus(t *testing.T) {
	s := newSession()

	// Hits 1-4: no bonus yet (combo/5 == 0). Hit 5: 10% bonus.
	for i := 0; i < 5; i++ {
		s.notes = []note{{Lane: 0, Y: HitLineY, Glyph: "⭐"}}
		tap(t, s, 0)
	}

	// 4 * 50 + floor(50 * 1.1) = 200 + 55
	assert.Equal(t, 255, s.score)
	assert.Equal(t, 5, s.combo)
}

func TestTick_SpawnsAndMoves(t *testing.T) {
	s := newSession()
	ctx := context.Background()
	start := time.Unix(0, 0)

	s.Tick(ctx, start)
	assert.Empty(t, s.notes, "no spawn until the interval elapses")

	s.Tick(ctx, start.Add(time.Second))
	require.Len(t, s.notes, 1)
	assert.Equal(t, NoteSpeedPerFrame, s.notes[0].Y, "a new note moves with the same frame")

	s.Tick(ctx, start.Add(time.Second+frameInterval))
	assert.Equal(t, 2*NoteSpeedPerFrame, s.notes[0].Y)
}

func TestTick_DropsNotesPastWindow(t *testing.T) {
	s := newSession()
	s.started = true
	s.lastSpawn = time.Unix(0, 0)
	s.notes = []note{{Lane: 0, Y: HitLineY + HitWindow, Glyph: "⭐"}}

	s.Tick(context.Background(), time.Unix(0, 0).Add(frameInterval))
	assert.Empty(t, s.notes)
}

func TestLaneValidation(t *testing.T) {
	s := newSession()

	_, err := s.Act(context.Background(), engine.Action{Type: engine.ActionTap, Lane: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestExit_Reward(t *testing.T) {
	s := newSession()
	s.score = 157

	result, err := s.Exit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, result.CurrencyEarned)
	assert.Equal(t, 7, result.XPEarned)

	_, err = s.Exit(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionEnded)
}
