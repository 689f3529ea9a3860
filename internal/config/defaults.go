package config

import (
	_ "embed"
)

//go:embed defaults/karel.yaml
var defaultKarelYAML []byte

// DefaultKarelConfig returns the default Karel configuration.
// It mirrors defaults/karel.yaml and is used when the embedded file cannot be parsed.
func DefaultKarelConfig() KarelConfig {
	return KarelConfig{
		Viewport: Viewport{
			Width:  640,
			Height: 480,
		},
		Physics: Physics{
			Gravity:          0.8,
			JumpVelocity:     -15,
			TerminalVelocity: 12,
			MoveSpeed:        5,
			FallBuffer:       100,
		},
		Character: Character{
			Width:  32,
			Height: 32,
		},
		Camera: Camera{
			FollowFactor: 0.1,
		},
		Collectibles: Collectibles{
			CollectDistance:  25,
			Radius:           8,
			Points:           10,
			Neighborhood:     20,
			HorizontalNudges: []float64{40, -40, 60, -60, 80, -80},
			VerticalNudges:   []float64{-30, 30},
		},
		Goal: Goal{
			Width:              40,
			Height:             80,
			WinTimerTicks:      180,
			RestartPromptBelow: 120,
		},
		Particles: Particles{
			Enabled:  true,
			Count:    8,
			Speed:    3,
			Gravity:  0.15,
			Lifetime: 30,
		},
		Shake: Shake{
			DurationTicks: 20,
			Intensity:     8,
		},
	}
}
