package theme

import "testing"

func TestParseRGB(t *testing.T) {
	rgb, err := ParseRGB("#ff0000")
	if err != nil || rgb != (RGB{0xff, 0, 0}) {
		t.Fatalf("got %v, %v", rgb, err)
	}
	rgb, err = ParseRGB("f00")
	if err != nil || rgb != (RGB{0xff, 0, 0}) {
		t.Fatalf("short form: got %v, %v", rgb, err)
	}
	if _, err := ParseRGB("bogus"); err == nil {
		t.Fatalf("expected error for invalid color")
	}
}

func TestParseSpecNamedPalette(t *testing.T) {
	tm, err := ParseSpec("dark")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tm.ShowPreview {
		t.Fatalf("dark theme should default to preview shown")
	}
}

func TestParseSpecOverridesLayerLeftToRight(t *testing.T) {
	tm, err := ParseSpec("dark,accent=#ff00ff")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tm.Accent != (RGB{0xff, 0x00, 0xff}) {
		t.Fatalf("accent override did not apply: %v", tm.Accent)
	}
}

func TestParseSpecUnknownAttribute(t *testing.T) {
	if _, err := ParseSpec("bogus=1"); err == nil {
		t.Fatalf("expected error for unknown attribute")
	}
}

func TestFromEnvFallsBackOnEmpty(t *testing.T) {
	t.Setenv("SWEEP_THEME", "")
	tm := FromEnv()
	if tm == nil {
		t.Fatalf("FromEnv returned nil")
	}
}

func TestIconFallsBackToDefault(t *testing.T) {
	tm := Light()
	if tm.Icon("nonexistent") != tm.Icons["default"] {
		t.Fatalf("expected fallback to default icon")
	}
	if tm.Icon("file") == "" {
		t.Fatalf("expected non-empty file icon")
	}
}
