package cmakeext

import (
	"errors"
	"strings"
	"testing"
)

func TestMatchesPattern(t *testing.T) {
	testCases := []struct {
		filename string
		patterns []string
		expected bool
	}{
		{"CMakeLists.txt", []string{`CMakeLists\.txt$`}, true},
		{"ext/CMakeLists.txt", []string{`CMakeLists\.txt$`}, true},
		{"cmake.txt", []string{`CMakeLists\.txt$`}, false},
		{"setup.py", []string{`CMakeLists\.txt$`, `\.cmake$`}, false},
		{"toolchain.cmake", []string{`CMakeLists\.txt$`, `\.cmake$`}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.filename, func(t *testing.T) {
			result := MatchesPattern(tc.filename, tc.patterns...)
			if result != tc.expected {
				t.Errorf("MatchesPattern(%s, %v) = %v, expected %v",
					tc.filename, tc.patterns, result, tc.expected)
			}
		})
	}
}

func TestMatchesExtension(t *testing.T) {
	testCases := []struct {
		filename   string
		extensions []string
		expected   bool
	}{
		{"_stk.so", []string{".so"}, true},
		{"_stk.PYD", []string{".pyd"}, true},
		{"_stk.dylib", []string{".so", ".dylib"}, true},
		{"_stk.a", []string{".so", ".dll"}, false},
		{"noext", []string{".so"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.filename, func(t *testing.T) {
			result := MatchesExtension(tc.filename, tc.extensions...)
			if result != tc.expected {
				t.Errorf("MatchesExtension(%s, %v) = %v, expected %v",
					tc.filename, tc.extensions, result, tc.expected)
			}
		})
	}
}

func TestFormatFailure(t *testing.T) {
	output := []string{"line 1", "line 2", "error occurred"}

	got := formatFailure("CMake build", output, errors.New("exit status 2"))
	expected := "CMake build failed: exit status 2\n\nBuild output:\nline 1\nline 2\nerror occurred"
	if got != expected {
		t.Errorf("formatFailure output mismatch.\nExpected: %s\nGot: %s", expected, got)
	}

	if got := formatFailure("CMake configure", nil, nil); got != "CMake configure failed" {
		t.Errorf("unexpected message without output: %q", got)
	}
}

func TestTypedErrorsUnwrap(t *testing.T) {
	cause := errors.New("exit status 1")
	step := &StepResult{Output: []string{"CMake Error at CMakeLists.txt:1"}, ExitCode: 1}

	var err error = &ConfigureError{Result: step, Err: cause}
	if !errors.Is(err, cause) {
		t.Fatal("ConfigureError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "CMake Error at CMakeLists.txt:1") {
		t.Fatalf("ConfigureError message should carry output, got %q", err.Error())
	}

	err = &BuildError{Result: step, Err: cause}
	if !errors.Is(err, cause) {
		t.Fatal("BuildError should unwrap to its cause")
	}

	err = &ToolNotFoundError{Tool: "cmake", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatal("ToolNotFoundError should unwrap to its cause")
	}
	if !strings.HasPrefix(err.Error(), "cannot find cmake executable") {
		t.Fatalf("unexpected ToolNotFoundError message %q", err.Error())
	}
}
