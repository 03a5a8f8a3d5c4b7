package config

import (
	"time"

	"github.com/ItsNotGoodName/touchwm/internal/wm"
)

var defaultConfig = Config{
	Backend: "x11",
	HTTP: HTTP{
		Host: "127.0.0.1",
		Port: 8080,
	},
}

type Config struct {
	Backend  string   `yaml:"backend"`
	HTTP     HTTP     `yaml:"http"`
	Gestures Gestures `yaml:"gestures"`
}

type HTTP struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Gestures tunes the overview gestures. Zero values fall back to the
// built in defaults.
type Gestures struct {
	HorizontalSensitivity     float64 `yaml:"horizontal_sensitivity"`
	OverdragLimit             float64 `yaml:"overdrag_limit"`
	OverdragAnimationSpeed    float64 `yaml:"overdrag_animation_speed"`
	CloseCancelAnimationSpeed float64 `yaml:"close_cancel_animation_speed"`
	CloseDistance             float64 `yaml:"close_distance"`
	HoldDurationMS            int     `yaml:"hold_duration_ms"`
}

func (g Gestures) Tuning() wm.Tuning {
	return wm.Tuning{
		HorizontalSensitivity:     g.HorizontalSensitivity,
		OverdragLimit:             g.OverdragLimit,
		OverdragAnimationSpeed:    g.OverdragAnimationSpeed,
		CloseCancelAnimationSpeed: g.CloseCancelAnimationSpeed,
		CloseDistance:             g.CloseDistance,
		HoldDuration:              time.Duration(g.HoldDurationMS) * time.Millisecond,
	}
}
