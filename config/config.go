package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds every setting read from the environment
type Config struct {
	TickRate          int
	BroadcastRate     int
	JumpscareDuration time.Duration
	SoundVolume       float64
	WorldSeed         int64
	ItemCount         int
	LogLevel          log.Level
	NatsStoreDir      string

	FlavorEndpoint string
	FlavorAPIKey   string
	FlavorModel    string
	FlavorTimeout  time.Duration
}

// FlavorEnabled reports whether a remote flavor provider is configured
func (c Config) FlavorEnabled() bool {
	return c.FlavorEndpoint != ""
}

// Load reads .env if present, then the process environment
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an environment lookup function
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	r := reader{lookup: lookup}

	cfg := Config{
		TickRate:          r.int("TICK_HZ", 60),
		BroadcastRate:     r.int("BROADCAST_HZ", 10),
		JumpscareDuration: r.duration("JUMPSCARE_DURATION", 2500*time.Millisecond),
		SoundVolume:       r.float("SOUND_VOLUME", 0.8),
		WorldSeed:         r.int64("WORLD_SEED", 1337),
		ItemCount:         r.int("ITEM_COUNT", 5),
		NatsStoreDir:      r.string("NATS_STORE_DIR", ""),
		FlavorEndpoint:    r.string("FLAVOR_ENDPOINT", ""),
		FlavorAPIKey:      r.string("FLAVOR_API_KEY", ""),
		FlavorModel:       r.string("FLAVOR_MODEL", "gpt-4o-mini"),
		FlavorTimeout:     r.duration("FLAVOR_TIMEOUT", 8*time.Second),
	}

	level, err := log.ParseLevel(r.string("LOG_LEVEL", "info"))
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	cfg.LogLevel = level

	if cfg.TickRate <= 0 {
		r.errs = append(r.errs, fmt.Errorf("TICK_HZ must be positive, got %d", cfg.TickRate))
	}
	if cfg.BroadcastRate <= 0 || cfg.BroadcastRate > cfg.TickRate {
		r.errs = append(r.errs, fmt.Errorf("BROADCAST_HZ must be in (0, TICK_HZ], got %d", cfg.BroadcastRate))
	}
	if cfg.SoundVolume < 0 || cfg.SoundVolume > 1 {
		r.errs = append(r.errs, fmt.Errorf("SOUND_VOLUME must be in [0, 1], got %g", cfg.SoundVolume))
	}
	if cfg.ItemCount < 0 {
		r.errs = append(r.errs, fmt.Errorf("ITEM_COUNT must not be negative, got %d", cfg.ItemCount))
	}

	if err := errors.Join(r.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type reader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (r *reader) raw(key string) (string, bool) {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r *reader) string(key, def string) string {
	if v, ok := r.raw(key); ok {
		return v
	}
	return def
}

func (r *reader) int(key string, def int) int {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (r *reader) int64(key string, def int64) int64 {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (r *reader) float(key string, def float64) float64 {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	d, err := cast.ToDurationE(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}
