package cmakeext

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

const testExtDir = "/work/build/lib"

func baseFlags(mode Mode) []string {
	debugInfo := "OFF"
	if mode == ModeDebug {
		debugInfo = "ON"
	}
	return []string{
		"-DSTK_BUILD_PYTHON_WRAPPER=ON",
		"-DSTK_BUILD_TESTS=OFF",
		"-DSTK_BUILD_WITH_DEBUG_INFO=" + debugInfo,
		"-DCMAKE_BUILD_TYPE=" + string(mode),
		"-DCMAKE_LIBRARY_OUTPUT_DIRECTORY=" + testExtDir,
	}
}

func countPrefix(flags []string, prefix string) int {
	n := 0
	for _, f := range flags {
		if strings.HasPrefix(f, prefix) {
			n++
		}
	}
	return n
}

func TestAssembleFlagsNonWindows(t *testing.T) {
	for _, goos := range []string{"linux", "darwin", "freebsd"} {
		for _, debug := range []bool{false, true} {
			config := &BuildConfig{Debug: debug, GOOS: goos}

			flags := AssembleFlags(STK, config, testExtDir)

			expected := baseFlags(ModeFor(debug))
			if !reflect.DeepEqual(flags, expected) {
				t.Errorf("%s debug=%v: expected %v, got %v", goos, debug, expected, flags)
			}
			if n := countPrefix(flags, "-DCMAKE_LIBRARY_OUTPUT_DIRECTORY_"); n != 0 {
				t.Errorf("%s: expected no per-configuration output flag, got %d", goos, n)
			}
		}
	}
}

func TestAssembleFlagsWindowsAddsPerConfigDir(t *testing.T) {
	testCases := []struct {
		debug    bool
		expected string
	}{
		{false, "-DCMAKE_LIBRARY_OUTPUT_DIRECTORY_RELEASE=" + testExtDir},
		{true, "-DCMAKE_LIBRARY_OUTPUT_DIRECTORY_DEBUG=" + testExtDir},
	}

	for _, tc := range testCases {
		config := &BuildConfig{Debug: tc.debug, GOOS: "windows"}

		flags := AssembleFlags(STK, config, testExtDir)

		if n := countPrefix(flags, "-DCMAKE_LIBRARY_OUTPUT_DIRECTORY_"); n != 1 {
			t.Fatalf("expected exactly one per-configuration flag, got %d in %v", n, flags)
		}
		expected := append(baseFlags(ModeFor(tc.debug)), tc.expected)
		if !reflect.DeepEqual(flags, expected) {
			t.Errorf("expected %v, got %v", expected, flags)
		}
	}
}

func TestAssembleFlagsExtraArgs(t *testing.T) {
	config := &BuildConfig{
		GOOS:      "linux",
		ExtraArgs: strings.Fields("-DFOO=1 -DBAR=2"),
	}

	flags := AssembleFlags(STK, config, testExtDir)

	if len(flags) != len(baseFlags(ModeRelease))+2 {
		t.Fatalf("expected two extra flags, got %v", flags)
	}
	tail := flags[len(flags)-2:]
	if !reflect.DeepEqual(tail, []string{"-DFOO=1", "-DBAR=2"}) {
		t.Errorf("expected extra flags at the end in order, got %v", tail)
	}
}

func TestAssembleFlagsSkipsEmptyExtraArgs(t *testing.T) {
	for _, extra := range [][]string{nil, {}, {"", "  "}} {
		config := &BuildConfig{GOOS: "linux", ExtraArgs: extra}

		flags := AssembleFlags(STK, config, testExtDir)

		if !reflect.DeepEqual(flags, baseFlags(ModeRelease)) {
			t.Errorf("extra %q: expected no additional flags, got %v", extra, flags)
		}
	}
}

func TestAssembleFlagsOptionalToolchainFlags(t *testing.T) {
	config := &BuildConfig{
		GOOS:        "linux",
		Interpreter: "/usr/bin/python3",
		Generator:   "Ninja",
		ExtraArgs:   []string{"-DFOO=1"},
	}

	flags := AssembleFlags(STK, config, testExtDir)

	expected := []string{
		"-DSTK_BUILD_PYTHON_WRAPPER=ON",
		"-DSTK_BUILD_TESTS=OFF",
		"-DSTK_BUILD_WITH_DEBUG_INFO=OFF",
		"-DCMAKE_BUILD_TYPE=Release",
		"-DPYTHON_EXECUTABLE=/usr/bin/python3",
		"-DCMAKE_LIBRARY_OUTPUT_DIRECTORY=" + testExtDir,
		"-G", "Ninja",
		"-DFOO=1",
	}
	if !reflect.DeepEqual(flags, expected) {
		t.Errorf("expected %v, got %v", expected, flags)
	}
}

func TestAssembleFlagsCustomProject(t *testing.T) {
	project := Project{
		Name:    "demo",
		Defines: []Define{{Key: "DEMO_SHARED", Value: "ON"}},
	}

	flags := AssembleFlags(project, &BuildConfig{GOOS: "linux", Debug: true}, testExtDir)

	expected := []string{
		"-DDEMO_SHARED=ON",
		"-DCMAKE_BUILD_TYPE=Debug",
		"-DCMAKE_LIBRARY_OUTPUT_DIRECTORY=" + testExtDir,
	}
	if !reflect.DeepEqual(flags, expected) {
		t.Errorf("expected %v, got %v", expected, flags)
	}
}

func TestCompileArgs(t *testing.T) {
	got := compileArgs(ModeRelease, []string{"--parallel", "4"})
	expected := []string{"--build", ".", "--config", "Release", "--parallel", "4"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestCompileArgsFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		config   BuildConfig
		expected []string
	}{
		{"release", BuildConfig{}, []string{"--build", ".", "--config", "Release"}},
		{"parallel", BuildConfig{Debug: true, Parallel: 4}, []string{"--build", ".", "--config", "Debug", "--parallel", "4"}},
		{"build args after parallel", BuildConfig{Parallel: 2, BuildArgs: []string{"--target", "_stk"}},
			[]string{"--build", ".", "--config", "Release", "--parallel", "2", "--target", "_stk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompileArgs(&tt.config); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPrintFlags(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintFlags(&buf, []string{"-DA=1", "-DB=2"}); err != nil {
		t.Fatalf("PrintFlags returned error: %v", err)
	}
	expected := "cmake arguments:\n  -DA=1\n  -DB=2\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
