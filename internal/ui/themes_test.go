package ui

import (
	"bytes"
	"testing"
)

func TestSetTheme(t *testing.T) {
	saved := GetCurrentTheme()
	defer SetCurrentTheme(saved)

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"unknown", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) -> %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitTheme(t *testing.T) {
	saved := GetCurrentTheme()
	defer SetCurrentTheme(saved)

	t.Run("NoColorFlag", func(t *testing.T) {
		if InitTheme(true, &bytes.Buffer{}) {
			t.Error("expected colours to be disabled")
		}
		if ColorRed() != "" || ColorReset() != "" {
			t.Error("expected empty escape codes")
		}
	})

	t.Run("NotATerminal", func(t *testing.T) {
		SetTheme("dark")
		if InitTheme(false, &bytes.Buffer{}) {
			t.Error("a buffer is not a terminal")
		}
		if GetCurrentTheme().Name != "none" {
			t.Errorf("expected the none theme, got %q", GetCurrentTheme().Name)
		}
	})

	t.Run("NoColorEnv", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		SetTheme("dark")
		InitTheme(false, &bytes.Buffer{})
		if GetCurrentTheme().Name != "none" {
			t.Errorf("expected the none theme, got %q", GetCurrentTheme().Name)
		}
	})
}

func TestColorShortcuts(t *testing.T) {
	saved := GetCurrentTheme()
	defer SetCurrentTheme(saved)

	SetCurrentTheme(LightTheme)
	pairs := map[string][2]string{
		"red":     {ColorRed(), LightTheme.Error},
		"green":   {ColorGreen(), LightTheme.Success},
		"yellow":  {ColorYellow(), LightTheme.Warning},
		"blue":    {ColorBlue(), LightTheme.Primary},
		"magenta": {ColorMagenta(), LightTheme.Info},
		"cyan":    {ColorCyan(), LightTheme.Secondary},
		"bold":    {ColorBold(), LightTheme.Bold},
		"under":   {ColorUnderline(), LightTheme.Underline},
		"err":     {ErrorColors{}.Red(), LightTheme.Error},
	}
	for name, p := range pairs {
		if p[0] != p[1] {
			t.Errorf("%s: got %q, want %q", name, p[0], p[1])
		}
	}
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
