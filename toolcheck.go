package cmakeext

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// ToolRequirement describes a build tool dependency.
//
// Tool with alternatives:
//
//	ToolRequirement{
//	    Name:         "cmake",
//	    Alternatives: []string{"cmake3"},
//	    Purpose:      "CMake build system",
//	}
type ToolRequirement struct {
	// Name is the primary tool binary name (e.g., "cmake").
	Name string

	// Alternatives are tool names that can satisfy this requirement when
	// Name is not found. Some distributions ship CMake 3 as "cmake3".
	Alternatives []string

	// Purpose is a human-readable description of why this tool is needed.
	Purpose string
}

// ToolInfo describes a located, runnable build tool.
type ToolInfo struct {
	Name    string // Name that was found (cmake or an alternative)
	Path    string // Absolute path from PATH lookup
	Version string // Version as reported by --version, e.g. "3.28.1"
}

// CheckRequiredTools verifies all required tools are available.
//
// The primary name is tried first, then each alternative in order. All
// missing tools are reported in a single error:
//
//	missing required tools: cmake (CMake build system), ninja
func CheckRequiredTools(requirements []ToolRequirement) error {
	var missingTools []string

	for _, req := range requirements {
		if _, _, err := LocateTool(req); err != nil {
			if req.Purpose != "" {
				missingTools = append(missingTools, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
			} else {
				missingTools = append(missingTools, req.Name)
			}
		}
	}

	if len(missingTools) == 0 {
		return nil
	}

	if len(missingTools) == 1 {
		return fmt.Errorf("%s not found in PATH", missingTools[0])
	}

	return fmt.Errorf("missing required tools: %s", strings.Join(missingTools, ", "))
}

// LocateTool finds the first candidate of req in PATH.
//
// # Parameters
//
//   - req: The tool to find. req.Name is tried first, then each entry of
//     req.Alternatives in order.
//
// # Returns
//
// The candidate name that was found and its path as reported by the PATH
// lookup. When no candidate is found, err names req.Name and both strings
// are empty.
//
// # Example
//
//	// On a distribution that only ships "cmake3"
//	name, path, err := LocateTool(ToolRequirement{
//	    Name:         "cmake",
//	    Alternatives: []string{"cmake3"},
//	})
//	// name == "cmake3", path == "/usr/bin/cmake3"
//
// # Thread Safety
//
// This function is thread-safe and can be called concurrently.
func LocateTool(req ToolRequirement) (name, path string, err error) {
	for _, candidate := range append([]string{req.Name}, req.Alternatives...) {
		if p, lookErr := execLookPath(candidate); lookErr == nil {
			return candidate, p, nil
		}
	}
	return "", "", fmt.Errorf("%s not found in PATH", req.Name)
}

var cmakeVersionPattern = regexp.MustCompile(`(?m)^cmake3? version (\S+)`)

// parseCMakeVersion extracts the version from "cmake --version" output.
func parseCMakeVersion(output string) (string, bool) {
	m := cmakeVersionPattern.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// versionAtLeast reports whether version >= minimum. Pre-release suffixes
// such as "-rc1" are honored. ok is false when either value is not a
// recognizable version.
func versionAtLeast(version, minimum string) (atLeast, ok bool) {
	v, vok := canonicalVersion(version)
	m, mok := canonicalVersion(minimum)
	if !vok || !mok {
		return false, false
	}
	return semver.Compare(v, m) >= 0, true
}

func canonicalVersion(version string) (string, bool) {
	v := "v" + strings.TrimPrefix(strings.TrimSpace(version), "v")
	if !semver.IsValid(v) {
		return "", false
	}
	return v, true
}
