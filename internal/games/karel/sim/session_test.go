package sim

import (
	"testing"

	"github.com/vovakirdan/karel-quest/internal/config"
	"github.com/vovakirdan/karel-quest/internal/core"
)

// yardSpec is a flat single-screen level with two beepers and a goal.
func yardSpec() LevelSpec {
	goal := core.Vec2{X: 500, Y: 350}
	return LevelSpec{
		ID:         "yard",
		Name:       "Yard",
		WorldWidth: 640,
		Spawn:      core.Vec2{X: 50, Y: 398},
		Obstacles:  []Obstacle{Ground(0, 430, 640, 50)},
		Beepers: []core.Vec2{
			{X: 66, Y: 414},
			{X: 300, Y: 414},
		},
		Goal: &goal,
	}
}

func newTestSession(t *testing.T, spec LevelSpec) *Session {
	t.Helper()
	s, err := New(spec, config.DefaultKarelConfig(), 42)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func countEvents(evs []Event, kind EventKind) int {
	n := 0
	for _, e := range evs {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestCollectionIsIdempotent(t *testing.T) {
	s := newTestSession(t, yardSpec())

	pickups := 0
	for range 20 {
		rs := s.AdvanceTick(Input{})
		pickups += countEvents(rs.Events, EventPickup)
	}

	if pickups != 1 {
		t.Errorf("pickups = %d, expected 1 while standing on a beeper", pickups)
	}
	if s.Score() != 10 {
		t.Errorf("Score() = %d, expected 10", s.Score())
	}
	if !s.Level().Beepers[0].Collected || s.Level().Beepers[1].Collected {
		t.Error("only the first beeper should be collected")
	}
}

func TestTryCollect(t *testing.T) {
	b := Beeper{Pos: core.Vec2{X: 0, Y: 0}, Points: 10}

	if b.TryCollect(core.Vec2{X: 25, Y: 0}, 25) {
		t.Error("distance equal to the threshold should not collect")
	}
	if !b.TryCollect(core.Vec2{X: 24.9, Y: 0}, 25) {
		t.Error("distance below the threshold should collect")
	}
	if b.TryCollect(core.Vec2{X: 0, Y: 0}, 25) {
		t.Error("collected beeper must not be collected again")
	}
}

func TestPickupSpawnsParticles(t *testing.T) {
	cfg := config.DefaultKarelConfig()
	s := newTestSession(t, yardSpec())

	rs := s.AdvanceTick(Input{})
	if countEvents(rs.Events, EventPickup) != 1 {
		t.Fatal("expected a pickup on the first tick")
	}
	if len(rs.Particles) != cfg.Particles.Count {
		t.Fatalf("particles = %d, expected %d", len(rs.Particles), cfg.Particles.Count)
	}
	for _, p := range rs.Particles {
		if p.Fade <= 0 || p.Fade >= 1 {
			t.Errorf("fade = %v, expected within (0, 1) after one update", p.Fade)
		}
	}

	for range cfg.Particles.Lifetime {
		rs = s.AdvanceTick(Input{})
	}
	if len(rs.Particles) != 0 {
		t.Errorf("particles = %d, expected all expired", len(rs.Particles))
	}
}

func TestParticlesDisabled(t *testing.T) {
	cfg := config.DefaultKarelConfig()
	cfg.Particles.Enabled = false
	s, err := New(yardSpec(), cfg, 1)
	if err != nil {
		t.Fatal(err)
	}

	rs := s.AdvanceTick(Input{})
	if countEvents(rs.Events, EventPickup) != 1 || len(rs.Particles) != 0 {
		t.Errorf("expected a pickup without particles, got %d particles", len(rs.Particles))
	}
}

func TestGoalFiresOnce(t *testing.T) {
	cfg := config.DefaultKarelConfig()
	s := newTestSession(t, yardSpec())
	s.Character().Pos.X = 480

	victories := 0
	var rs RenderState
	for i := range 10 {
		rs = s.AdvanceTick(Input{})
		victories += countEvents(rs.Events, EventVictory)
		if i == 0 && rs.WinTimer != cfg.Goal.WinTimerTicks {
			t.Errorf("WinTimer = %d on the victory tick, expected %d", rs.WinTimer, cfg.Goal.WinTimerTicks)
		}
	}

	if victories != 1 {
		t.Errorf("victories = %d, expected exactly 1", victories)
	}
	if !s.Won() || !rs.Won {
		t.Error("expected the session to be won")
	}
	if rs.WinTimer != cfg.Goal.WinTimerTicks-9 {
		t.Errorf("WinTimer = %d, expected countdown to %d", rs.WinTimer, cfg.Goal.WinTimerTicks-9)
	}
}

func TestWinTimerAndRestartPrompt(t *testing.T) {
	cfg := config.DefaultKarelConfig()
	s := newTestSession(t, yardSpec())
	s.Character().Pos.X = 480

	rs := s.AdvanceTick(Input{})
	for rs.WinTimer >= cfg.Goal.RestartPromptBelow {
		if rs.ShowRestartPrompt {
			t.Fatalf("prompt shown at timer %d", rs.WinTimer)
		}
		rs = s.AdvanceTick(Input{})
	}
	if !rs.ShowRestartPrompt {
		t.Errorf("prompt not shown at timer %d", rs.WinTimer)
	}

	for range cfg.Goal.WinTimerTicks * 2 {
		rs = s.AdvanceTick(Input{})
	}
	if rs.WinTimer != 0 {
		t.Errorf("WinTimer = %d, expected to stop at 0", rs.WinTimer)
	}
}

func TestInputIgnoredAfterWin(t *testing.T) {
	s := newTestSession(t, yardSpec())
	s.Character().Pos.X = 480
	s.AdvanceTick(Input{})

	x := s.Character().Pos.X
	for range 10 {
		s.AdvanceTick(Input{MoveRight: true, Jump: true})
	}
	if s.Character().Pos.X != x || !s.Character().Grounded {
		t.Errorf("character moved after the win: x=%v grounded=%v", s.Character().Pos.X, s.Character().Grounded)
	}
}

func TestRestartResetsFully(t *testing.T) {
	spec := yardSpec()
	s := newTestSession(t, spec)

	s.AdvanceTick(Input{})
	s.Character().Pos.X = 284
	s.AdvanceTick(Input{})
	s.Character().Pos.X = 480
	s.AdvanceTick(Input{})

	if s.Level().Collected() != 2 || !s.Won() || s.Score() != 20 {
		t.Fatalf("setup failed: collected=%d won=%v score=%d", s.Level().Collected(), s.Won(), s.Score())
	}

	s.Restart()

	if s.Score() != 0 || s.Won() || s.Tick() != 0 {
		t.Errorf("score=%d won=%v tick=%d, expected a fresh session", s.Score(), s.Won(), s.Tick())
	}
	for i, b := range s.Level().Beepers {
		if b.Collected {
			t.Errorf("beeper %d still collected", i)
		}
	}
	if s.Level().Goal.Reached {
		t.Error("goal still reached")
	}
	c := s.Character()
	if c.Pos != spec.Spawn || c.VY != 0 || c.Grounded {
		t.Errorf("character = %+v, expected at spawn %+v", c.Pos, spec.Spawn)
	}
	if s.Camera().X != 0 || s.Camera().Target != 0 {
		t.Error("camera not reset")
	}
	if len(s.particles) != 0 {
		t.Error("particles not cleared")
	}

	// The rebuilt session plays the same as a new one.
	rs := s.AdvanceTick(Input{})
	if countEvents(rs.Events, EventPickup) != 1 {
		t.Error("first beeper should be collectable again after restart")
	}
}

func TestFallThroughRespawn(t *testing.T) {
	spec := LevelSpec{
		ID:         "pit",
		WorldWidth: 640,
		Spawn:      core.Vec2{X: 50, Y: 0},
	}
	s := newTestSession(t, spec)

	var fellAt []int
	for tick := 1; tick <= 300; tick++ {
		rs := s.AdvanceTick(Input{})
		n := countEvents(rs.Events, EventFell)
		if n > 1 {
			t.Fatalf("tick %d: %d fell events", tick, n)
		}
		if n == 1 {
			fellAt = append(fellAt, tick)
			c := s.Character()
			if c.Pos != spec.Spawn || c.VY != 0 || c.Grounded {
				t.Fatalf("tick %d: character %+v vy=%v, expected respawn at %+v", tick, c.Pos, c.VY, spec.Spawn)
			}
			if !s.shake.Active() && s.cfg.Shake.DurationTicks > 1 {
				t.Errorf("tick %d: shake not started", tick)
			}
		}
	}

	if len(fellAt) < 2 {
		t.Fatalf("fell %d times, expected repeated falls", len(fellAt))
	}
	period := fellAt[0]
	for i, tick := range fellAt {
		if tick != period*(i+1) {
			t.Errorf("fall %d at tick %d, expected every %d ticks", i, tick, period)
		}
	}
}

func TestShakeStaysOutOfWorldState(t *testing.T) {
	a := newTestSession(t, Quest())
	b, err := New(Quest(), config.DefaultKarelConfig(), 9999)
	if err != nil {
		t.Fatal(err)
	}

	for tick := range 2000 {
		in := scriptedInput(tick)
		ra := a.AdvanceTick(in)
		b.AdvanceTick(in)

		sa, sb := a.Snapshot(), b.Snapshot()
		if sa.Hash() != sb.Hash() {
			t.Fatalf("tick %d: world state diverged between shake seeds", tick)
		}
		if ra.Character.Rect.X != a.Character().Pos.X-a.Camera().X+ra.Shake.X {
			t.Fatalf("tick %d: character screen x does not follow camera and shake", tick)
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []uint64 {
		s := newTestSession(t, Quest())
		hashes := make([]uint64, 0, 1500)
		for tick := range 1500 {
			s.AdvanceTick(scriptedInput(tick))
			snap := s.Snapshot()
			hashes = append(hashes, snap.Hash())
		}
		return hashes
	}

	first, second := run(), run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("tick %d: hash %x != %x", i, first[i], second[i])
		}
	}
}

func TestRenderStateCulling(t *testing.T) {
	s := newTestSession(t, Quest())
	rs := s.AdvanceTick(Input{})

	if rs.Total != 15 || rs.Collected != 0 {
		t.Errorf("collected/total = %d/%d, expected 0/15", rs.Collected, rs.Total)
	}
	if rs.Goal != nil {
		t.Error("goal at the far end should be culled at the start")
	}
	for _, ob := range rs.Obstacles {
		if ob.Rect.X >= rs.Viewport.X || ob.Rect.Right() <= 0 {
			t.Errorf("off-screen obstacle %+v in render state", ob)
		}
	}
	if len(rs.Obstacles) == 0 || len(rs.Beepers) == 0 {
		t.Error("expected visible obstacles and beepers at the start")
	}
}

func TestGoalVisuals(t *testing.T) {
	tests := []struct {
		progress float64
		want     core.RGB
	}{
		{0, core.RGB{R: 255}},
		{0.25, core.RGB{R: 255, G: 255}},
		{0.5, core.RGB{G: 255}},
		{0.75, core.RGB{G: 255, B: 255}},
		{1, core.RGB{B: 255}},
		{-1, core.RGB{R: 255}},
		{0.125, core.RGB{R: 255, G: 128}},
	}
	for _, tt := range tests {
		if got := GoalColor(tt.progress); got != tt.want {
			t.Errorf("GoalColor(%v) = %+v, expected %+v", tt.progress, got, tt.want)
		}
	}

	g := GoalMarker{Rect: core.NewRect(100, 350, 40, 80)}
	for _, p := range []float64{0, 0.5, 1} {
		r := g.VisualRect(p)
		if r.Bottom() != 430 {
			t.Errorf("progress %v: bottom = %v, expected anchored at 430", p, r.Bottom())
		}
		if want := 80 * (0.5 + p); r.H != want {
			t.Errorf("progress %v: height = %v, expected %v", p, r.H, want)
		}
	}
}
