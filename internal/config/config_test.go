package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	s, err := FromEnv(envMap(nil))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if s.Section != "hero" || s.Backend != BackendGL || s.Width != DefaultWidth || s.Height != DefaultHeight {
		t.Errorf("defaults = %+v", s)
	}
	if s.Audio || s.MaxSpeed != 0 {
		t.Errorf("audio/max speed should default off: %+v", s)
	}
}

func TestParse(t *testing.T) {
	s, err := FromEnv(envMap(map[string]string{
		"FIELD_SECTION":   " About ",
		"FIELD_BACKEND":   "TERM",
		"FIELD_SEED":      "42",
		"FIELD_MAX_SPEED": "1.5",
		"FIELD_AUDIO":     "true",
		"FIELD_WIDTH":     "640",
		"FIELD_HEIGHT":    "480",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	want := Settings{Section: "about", Backend: BackendTerm, Seed: 42, MaxSpeed: 1.5, Audio: true, Width: 640, Height: 480}
	if s != want {
		t.Errorf("got %+v, want %+v", s, want)
	}
}

func TestInvalid(t *testing.T) {
	bad := []map[string]string{
		{"FIELD_BACKEND": "vulkan"},
		{"FIELD_SEED": "-1"},
		{"FIELD_MAX_SPEED": "fast"},
		{"FIELD_MAX_SPEED": "-2"},
		{"FIELD_AUDIO": "maybe"},
		{"FIELD_WIDTH": "0"},
		{"FIELD_HEIGHT": "tall"},
	}
	for _, m := range bad {
		if _, err := FromEnv(envMap(m)); !errors.Is(err, ErrInvalid) {
			t.Errorf("%v: err = %v, want ErrInvalid", m, err)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "field.env")
	if err := os.WriteFile(path, []byte("FIELD_SECTION=projects\nFIELD_SEED=7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Already-set variables win over the file.
	t.Setenv("FIELD_SEED", "9")
	t.Setenv("FIELD_SECTION", "")
	os.Unsetenv("FIELD_SECTION")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Section != "projects" || s.Seed != 9 {
		t.Errorf("got %+v", s)
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("Load of a missing file: %v", err)
	}
}
