// Package sim is the Karel platformer simulation: character physics and
// collision, the forward-only camera, beeper and goal resolution, particles
// and screen shake. It performs no I/O and never draws; shells feed it an
// Input per tick and draw the RenderState it returns.
package sim

import (
	"fmt"

	"github.com/vovakirdan/karel-quest/internal/config"
)

// Session is one play-through of a level, advanced by a single caller.
type Session struct {
	cfg   config.KarelConfig
	seed  int64
	level *Level

	karel     *Character
	camera    *Camera
	shake     *Shake
	particles []Particle

	score    int
	won      bool
	winTimer int
	tick     uint64
	events   []Event
}

// New builds the level and starts a session on it. The seed only drives
// screen shake jitter.
func New(spec LevelSpec, cfg config.KarelConfig, seed int64) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	lvl, err := Build(spec, cfg)
	if err != nil {
		return nil, fmt.Errorf("sim: build level: %w", err)
	}

	s := &Session{cfg: cfg, seed: seed, level: lvl}
	s.start()
	return s, nil
}

func (s *Session) start() {
	s.karel = newCharacter(s.level.Spawn, s.cfg)
	s.camera = newCamera(s.cfg.Viewport.Width, s.cfg.Viewport.Height, s.level.WorldWidth, s.cfg.Camera.FollowFactor)
	s.shake = newShake(s.cfg.Shake.DurationTicks, s.cfg.Shake.Intensity, s.seed)
	s.particles = nil
	s.score = 0
	s.won = false
	s.winTimer = 0
	s.tick = 0
	s.events = nil
}

// Restart returns the session to its initial state. Level geometry is kept.
func (s *Session) Restart() {
	s.level.Reset()
	s.start()
}

// AdvanceTick runs one fixed-rate step and returns the frame to draw.
// Once the goal is reached input is ignored but physics keeps running.
func (s *Session) AdvanceTick(in Input) RenderState {
	s.tick++
	s.events = nil

	if s.won {
		in = Input{}
		if s.winTimer > 0 {
			s.winTimer--
		}
	}

	if s.karel.Update(in, s.level) {
		s.shake.Start()
		s.events = append(s.events, Event{Kind: EventFell, Pos: s.karel.Pos})
	}

	center := s.karel.Center()
	for i := range s.level.Beepers {
		b := &s.level.Beepers[i]
		if !b.TryCollect(center, s.cfg.Collectibles.CollectDistance) {
			continue
		}
		s.score += b.Points
		s.events = append(s.events, Event{Kind: EventPickup, Pos: b.Pos, Points: b.Points})
		s.particles = append(s.particles, Burst(b.Pos, s.cfg.Particles)...)
	}

	if g := s.level.Goal; g != nil && g.TryReach(s.karel.Rect()) {
		s.won = true
		s.winTimer = s.cfg.Goal.WinTimerTicks
		s.events = append(s.events, Event{Kind: EventVictory, Pos: s.karel.Pos})
	}

	s.camera.Update(s.karel.Pos.X)
	s.particles = sweepParticles(s.particles, s.cfg.Particles.Gravity)
	s.shake.Update()

	return s.renderState()
}

// Score returns the points collected so far.
func (s *Session) Score() int { return s.score }

// Won reports whether the goal has been reached.
func (s *Session) Won() bool { return s.won }

// Tick returns the number of ticks since start or the last restart.
func (s *Session) Tick() uint64 { return s.tick }

// Level returns the session's level.
func (s *Session) Level() *Level { return s.level }

// Character returns Karel.
func (s *Session) Character() *Character { return s.karel }

// Camera returns the session camera.
func (s *Session) Camera() *Camera { return s.camera }

// Preview returns the current frame without advancing the simulation.
func (s *Session) Preview() RenderState {
	return s.renderState()
}
