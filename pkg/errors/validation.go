package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// coordinatePartRegex matches a Maven groupId or artifactId segment.
var coordinatePartRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9._-]*$`)

// ValidateCoordinate validates a "groupId:artifactId" plugin coordinate and
// returns its parts.
//
// The rules are conservative because both parts end up in repository URLs
// and cache file names:
//   - exactly one colon
//   - no control characters or path traversal sequences
//   - maximum length of 256 characters
func ValidateCoordinate(coord string) (groupID, artifactID string, err error) {
	if coord == "" {
		return "", "", New(ErrCodeInvalidCoordinate, "coordinate cannot be empty")
	}
	if len(coord) > 256 {
		return "", "", New(ErrCodeInvalidCoordinate, "coordinate too long (max 256 characters)")
	}
	for _, r := range coord {
		if unicode.IsControl(r) {
			return "", "", New(ErrCodeInvalidCoordinate, "coordinate contains control characters")
		}
	}
	if strings.Contains(coord, "..") {
		return "", "", New(ErrCodeInvalidCoordinate, "coordinate contains invalid characters: %q", "..")
	}

	parts := strings.Split(coord, ":")
	if len(parts) != 2 {
		return "", "", New(ErrCodeInvalidCoordinate, "invalid coordinate %q (expected groupId:artifactId)", coord)
	}
	for _, p := range parts {
		if !coordinatePartRegex.MatchString(p) {
			return "", "", New(ErrCodeInvalidCoordinate, "invalid coordinate %q", coord)
		}
	}
	return parts[0], parts[1], nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
