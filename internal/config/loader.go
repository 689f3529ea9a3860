package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidationError lists every invalid field of a loaded configuration.
type ValidationError struct {
	Problems []string
}

func (e ValidationError) Error() string {
	return "invalid karel config: " + strings.Join(e.Problems, "; ")
}

// LoadKarel loads Karel configuration.
// Search order: customPath -> ~/.karel/configs/karel.yaml -> ./configs/karel.yaml -> embedded default
func LoadKarel(customPath string) (KarelConfig, error) {
	cfg, err := loadKarelYAML(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadKarelYAML(customPath string) (KarelConfig, error) {
	// Missing keys keep their default values.
	cfg := DefaultKarelConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("karel.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultKarelConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "karel.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultKarelConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultKarelYAML, &cfg); err != nil {
		return DefaultKarelConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".karel", "configs", filename)
}

// Validate checks that the configuration describes a playable simulation.
func (c KarelConfig) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(c.Viewport.Width > 0 && c.Viewport.Height > 0, "viewport size must be positive")
	check(c.Character.Width > 0 && c.Character.Height > 0, "character size must be positive")
	check(c.Physics.Gravity > 0, "physics.gravity must be positive")
	check(c.Physics.JumpVelocity < 0, "physics.jump_velocity must be negative (upward)")
	check(c.Physics.TerminalVelocity > 0, "physics.terminal_velocity must be positive")
	check(c.Physics.MoveSpeed >= 0, "physics.move_speed must not be negative")
	check(c.Physics.FallBuffer >= 0, "physics.fall_buffer must not be negative")
	check(c.Camera.FollowFactor > 0 && c.Camera.FollowFactor <= 1, "camera.follow_factor must be in (0, 1]")
	check(c.Collectibles.CollectDistance > 0, "collectibles.collect_distance must be positive")
	check(c.Collectibles.Neighborhood >= 0, "collectibles.neighborhood must not be negative")
	check(len(c.Collectibles.HorizontalNudges) > 0, "collectibles.horizontal_nudges must not be empty")
	check(len(c.Collectibles.VerticalNudges) > 0, "collectibles.vertical_nudges must not be empty")
	check(c.Goal.Width > 0 && c.Goal.Height > 0, "goal size must be positive")
	check(c.Goal.WinTimerTicks >= 0, "goal.win_timer_ticks must not be negative")
	check(c.Particles.Count >= 0 && c.Particles.Lifetime >= 0, "particle count and lifetime must not be negative")
	check(c.Shake.DurationTicks >= 0, "shake.duration_ticks must not be negative")

	if len(problems) > 0 {
		return ValidationError{Problems: problems}
	}
	return nil
}

// IsValidationError reports whether err came from Validate.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
