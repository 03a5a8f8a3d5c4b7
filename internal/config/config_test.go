package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestStoreSeedsDefaultConfig(t *testing.T) {
	store, err := NewStore(NewMemory())
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := store.GetConfig()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.Backend, "x11"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := cfg.HTTP.Port, 8080; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStoreUpdateConfig(t *testing.T) {
	store, err := NewStore(NewMemory())
	if err != nil {
		t.Fatal(err)
	}

	if err := store.UpdateConfig(func(cfg Config) (Config, error) {
		cfg.Gestures.HorizontalSensitivity = 500
		return cfg, nil
	}); err != nil {
		t.Fatal(err)
	}

	cfg, err := store.GetConfig()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.Gestures.HorizontalSensitivity, 500.; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestYAMLDriverRoundTrip(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "touchwm.yaml")

	store, err := NewStore(NewYAML(filePath))
	if err != nil {
		t.Fatal(err)
	}

	if err := store.UpdateConfig(func(cfg Config) (Config, error) {
		cfg.Gestures.HoldDurationMS = 500
		return cfg, nil
	}); err != nil {
		t.Fatal(err)
	}

	// A fresh store sees the persisted values.
	store2, err := NewStore(NewYAML(filePath))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := store2.GetConfig()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.Gestures.HoldDurationMS, 500; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := cfg.Backend, "x11"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGesturesTuning(t *testing.T) {
	gestures := Gestures{
		HorizontalSensitivity: 300,
		HoldDurationMS:        500,
	}

	tuning := gestures.Tuning()
	if got, want := tuning.HorizontalSensitivity, 300.; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := tuning.HoldDuration, 500*time.Millisecond; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// Unset fields stay zero so the window manager falls back to its
	// defaults.
	if got, want := tuning.CloseDistance, 0.; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
