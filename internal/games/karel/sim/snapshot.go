package sim

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Snapshot captures the world state that must be reproducible from inputs.
// Shake offsets are render-only and deliberately left out.
type Snapshot struct {
	Tick      uint64
	X, Y, VY  float64
	Grounded  bool
	CameraX   float64
	CameraTgt float64
	Score     int
	Won       bool
	WinTimer  int
	Collected []bool
	Particles int
}

// Snapshot returns the current world state.
func (s *Session) Snapshot() Snapshot {
	collected := make([]bool, len(s.level.Beepers))
	for i := range s.level.Beepers {
		collected[i] = s.level.Beepers[i].Collected
	}
	return Snapshot{
		Tick:      s.tick,
		X:         s.karel.Pos.X,
		Y:         s.karel.Pos.Y,
		VY:        s.karel.VY,
		Grounded:  s.karel.Grounded,
		CameraX:   s.camera.X,
		CameraTgt: s.camera.Target,
		Score:     s.score,
		Won:       s.won,
		WinTimer:  s.winTimer,
		Collected: collected,
		Particles: len(s.particles),
	}
}

// Hash returns an FNV-1a hash of the snapshot's exact bit patterns.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	flag := func(b bool) uint64 {
		if b {
			return 1
		}
		return 0
	}

	put(snap.Tick)
	put(math.Float64bits(snap.X))
	put(math.Float64bits(snap.Y))
	put(math.Float64bits(snap.VY))
	put(flag(snap.Grounded))
	put(math.Float64bits(snap.CameraX))
	put(math.Float64bits(snap.CameraTgt))
	put(uint64(snap.Score)) //#nosec G115 -- hash computation
	put(flag(snap.Won))
	put(uint64(snap.WinTimer)) //#nosec G115 -- hash computation
	for _, c := range snap.Collected {
		put(flag(c))
	}
	put(uint64(snap.Particles)) //#nosec G115 -- hash computation
	return h.Sum64()
}
