package cmakeext

import (
	"path/filepath"
	"testing"
)

func TestResolveDebug(t *testing.T) {
	on, off := true, false

	testCases := []struct {
		name      string
		toolDebug *bool
		envDebug  bool
		expected  Mode
	}{
		{"both unset", nil, false, ModeRelease},
		{"env only", nil, true, ModeDebug},
		{"tool debug wins over env", &on, false, ModeDebug},
		{"tool release wins over env", &off, true, ModeRelease},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ModeFor(ResolveDebug(tc.toolDebug, tc.envDebug))
			if got != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestModeUpper(t *testing.T) {
	if ModeDebug.Upper() != "DEBUG" || ModeRelease.Upper() != "RELEASE" {
		t.Fatalf("unexpected upper-case modes %q %q", ModeDebug.Upper(), ModeRelease.Upper())
	}
}

func TestNewExtension(t *testing.T) {
	ext, err := NewExtension("pkg._stk", "src")
	if err != nil {
		t.Fatalf("NewExtension returned error: %v", err)
	}
	if !filepath.IsAbs(ext.SourceDir) {
		t.Errorf("expected absolute source dir, got %s", ext.SourceDir)
	}
	if ext.baseName() != "_stk" {
		t.Errorf("expected base name _stk, got %s", ext.baseName())
	}

	if _, err := NewExtension("", "."); err == nil {
		t.Error("expected error for empty extension name")
	}
}
