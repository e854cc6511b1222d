package cmakeext

import (
	"errors"
	"testing"
)

func stubLookPath(t *testing.T, available map[string]string) {
	t.Helper()
	orig := execLookPath
	t.Cleanup(func() { execLookPath = orig })

	execLookPath = func(name string) (string, error) {
		if path, ok := available[name]; ok {
			return path, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
}

func TestCheckRequiredTools(t *testing.T) {
	stubLookPath(t, map[string]string{"cmake3": "/usr/bin/cmake3"})

	if err := CheckRequiredTools([]ToolRequirement{{Name: "cmake", Alternatives: []string{"cmake3"}}}); err != nil {
		t.Fatalf("alternative should satisfy requirement, got %v", err)
	}

	err := CheckRequiredTools([]ToolRequirement{{Name: "ninja", Purpose: "Ninja build tool"}})
	if err == nil || err.Error() != "ninja (Ninja build tool) not found in PATH" {
		t.Fatalf("unexpected error for single missing tool: %v", err)
	}

	err = CheckRequiredTools([]ToolRequirement{{Name: "ninja"}, {Name: "make", Purpose: "Make"}})
	if err == nil || err.Error() != "missing required tools: ninja, make (Make)" {
		t.Fatalf("unexpected error for multiple missing tools: %v", err)
	}
}

func TestLocateToolPrefersPrimary(t *testing.T) {
	stubLookPath(t, map[string]string{
		"cmake":  "/usr/local/bin/cmake",
		"cmake3": "/usr/bin/cmake3",
	})

	name, path, err := LocateTool(ToolRequirement{Name: "cmake", Alternatives: []string{"cmake3"}})
	if err != nil {
		t.Fatalf("LocateTool returned error: %v", err)
	}
	if name != "cmake" || path != "/usr/local/bin/cmake" {
		t.Errorf("expected primary cmake, got %s at %s", name, path)
	}
}

func TestParseCMakeVersion(t *testing.T) {
	testCases := []struct {
		output   string
		expected string
		ok       bool
	}{
		{"cmake version 3.28.1\n\nCMake suite maintained and supported by Kitware (kitware.com/cmake).", "3.28.1", true},
		{"cmake3 version 3.20.2", "3.20.2", true},
		{"cmake version 3.29.0-rc1", "3.29.0-rc1", true},
		{"not cmake", "", false},
	}

	for _, tc := range testCases {
		version, ok := parseCMakeVersion(tc.output)
		if version != tc.expected || ok != tc.ok {
			t.Errorf("parseCMakeVersion(%q) = (%q, %v), expected (%q, %v)", tc.output, version, ok, tc.expected, tc.ok)
		}
	}
}

func TestVersionAtLeast(t *testing.T) {
	testCases := []struct {
		version  string
		minimum  string
		atLeast  bool
		parsable bool
	}{
		{"3.28.1", "3.12", true, true},
		{"3.12.0", "3.12", true, true},
		{"3.10.2", "3.12", false, true},
		{"3.29.0-rc1", "3.29", false, true},
		{"4.0.0", "v3.12.4", true, true},
		{"unknown", "3.12", false, false},
	}

	for _, tc := range testCases {
		atLeast, ok := versionAtLeast(tc.version, tc.minimum)
		if atLeast != tc.atLeast || ok != tc.parsable {
			t.Errorf("versionAtLeast(%s, %s) = (%v, %v), expected (%v, %v)",
				tc.version, tc.minimum, atLeast, ok, tc.atLeast, tc.parsable)
		}
	}
}
