// Package config resolves runtime settings from the process environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendGL   = "gl"
	BackendTerm = "term"

	DefaultWidth  = 1280
	DefaultHeight = 800
)

var ErrInvalid = errors.New("invalid setting")

type Settings struct {
	Section  string  // preset name, FIELD_SECTION
	Backend  string  // BackendGL or BackendTerm, FIELD_BACKEND
	Seed     uint64  // FIELD_SEED, clock when unset
	MaxSpeed float64 // FIELD_MAX_SPEED, 0 keeps the field uncapped
	Audio    bool    // FIELD_AUDIO
	Width    int     // FIELD_WIDTH, initial window width
	Height   int     // FIELD_HEIGHT, initial window height
}

// Load reads the given .env files (".env" when none are named) into the
// environment without overriding variables that are already set, then
// parses the settings. A missing .env file is not an error.
func Load(files ...string) (Settings, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv parses settings through getenv so callers can supply any source.
func FromEnv(getenv func(string) string) (Settings, error) {
	s := Settings{
		Section: "hero",
		Backend: BackendGL,
		Seed:    uint64(time.Now().UnixNano()),
		Width:   DefaultWidth,
		Height:  DefaultHeight,
	}

	if v := strings.TrimSpace(getenv("FIELD_SECTION")); v != "" {
		s.Section = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv("FIELD_BACKEND")); v != "" {
		v = strings.ToLower(v)
		if v != BackendGL && v != BackendTerm {
			return Settings{}, fmt.Errorf("%w: FIELD_BACKEND=%q", ErrInvalid, v)
		}
		s.Backend = v
	}
	if v := getenv("FIELD_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: FIELD_SEED: %v", ErrInvalid, err)
		}
		s.Seed = seed
	}
	if v := getenv("FIELD_MAX_SPEED"); v != "" {
		sp, err := strconv.ParseFloat(v, 64)
		if err != nil || sp < 0 {
			return Settings{}, fmt.Errorf("%w: FIELD_MAX_SPEED=%q", ErrInvalid, v)
		}
		s.MaxSpeed = sp
	}
	if v := getenv("FIELD_AUDIO"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: FIELD_AUDIO: %v", ErrInvalid, err)
		}
		s.Audio = on
	}

	var err error
	if s.Width, err = positiveInt(getenv, "FIELD_WIDTH", s.Width); err != nil {
		return Settings{}, err
	}
	if s.Height, err = positiveInt(getenv, "FIELD_HEIGHT", s.Height); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func positiveInt(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalid, key, v)
	}
	return n, nil
}
