package enrollments

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	codePrefix = "PL-"

	// firstCodeNumber is where the member code sequence starts.
	firstCodeNumber int64 = 1000
)

// FormatCode renders a numeric code suffix as a member code.
func FormatCode(n int64) string {
	return fmt.Sprintf("%s%d", codePrefix, n)
}

// ParseCodeNumber extracts the numeric suffix from a member code.
func ParseCodeNumber(code string) (int64, error) {
	trimmed := strings.TrimSpace(code)
	if !strings.HasPrefix(trimmed, codePrefix) {
		return 0, fmt.Errorf("invalid member code %q", code)
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(trimmed, codePrefix), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid member code %q: %w", code, err)
	}
	return n, nil
}

// nextCodeNumber derives the next code suffix from the current maximum.
// A zero maximum means the table is empty and the sequence starts fresh.
func nextCodeNumber(currentMax int64) int64 {
	if currentMax < firstCodeNumber {
		return firstCodeNumber
	}
	return currentMax + 1
}
