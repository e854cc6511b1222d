package cmakeext

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchesPattern checks if a filename matches any of the given regex patterns.
//
// # Parameters
//
//   - filename: The file to check (typically just the base name)
//   - patterns: One or more regex patterns to match against
//
// # Returns
//
// True if the filename matches any pattern. Invalid patterns are silently
// skipped.
//
// # Example
//
//	if MatchesPattern(filename, `^CMakeLists\.txt$`) {
//	    // Handle a CMake project
//	}
//
// # Thread Safety
//
// This function is thread-safe and can be called concurrently.
func MatchesPattern(filename string, patterns ...string) bool {
	for _, pattern := range patterns {
		if matched, _ := regexp.MatchString(pattern, filename); matched {
			return true
		}
	}
	return false
}

// MatchesExtension checks if a filename has any of the given extensions.
//
// This is a case-insensitive suffix check; extensions may be given with or
// without the leading dot.
func MatchesExtension(filename string, extensions ...string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(strings.ToLower(filename), strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// formatFailure renders a step failure with its captured output.
//
// With error and output:
//
//	CMake configure failed: exit status 1
//
//	Build output:
//	-- The C compiler identification is GNU 13.2.0
//	CMake Error at CMakeLists.txt:3 (find_package):
//
// With error but no output:
//
//	CMake configure failed: exit status 1
func formatFailure(stage string, output []string, err error) string {
	outputStr := strings.TrimRight(strings.Join(output, "\n"), "\n")

	var prefix string
	if err != nil {
		prefix = fmt.Sprintf("%s failed: %v", stage, err)
	} else {
		prefix = fmt.Sprintf("%s failed", stage)
	}

	if outputStr != "" {
		return fmt.Sprintf("%s\n\nBuild output:\n%s", prefix, outputStr)
	}

	return prefix
}
