package directory

import (
	"regexp"
	"strings"

	"github.com/rileyhilliard/cfx/internal/errors"
)

var (
	// joinLinkPattern extracts the code from links like https://cfx.re/join/abc123.
	joinLinkPattern = regexp.MustCompile(`cfx\.re/join/(\w+)`)

	// codePattern accepts join codes and raw endpoints (host:port).
	codePattern = regexp.MustCompile(`^[A-Za-z0-9._:\-]+$`)
)

// ParseCode turns user input into a server code. Full join links are
// reduced to their code; anything else must look like a code or endpoint.
func ParseCode(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.New(errors.ErrEmptyInput,
			"Enter a server code or join link",
			"Example: cfx lookup abc123 or cfx lookup https://cfx.re/join/abc123")
	}

	if m := joinLinkPattern.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}

	if !codePattern.MatchString(input) {
		return "", errors.New(errors.ErrMalformedInput,
			"'"+input+"' doesn't look like a server code",
			"Codes are letters and digits, e.g. abc123, or a cfx.re/join link")
	}
	return input, nil
}

// ParseQuery validates a free-text search query.
func ParseQuery(input string) (string, error) {
	q := strings.TrimSpace(input)
	if q == "" {
		return "", errors.New(errors.ErrEmptyInput,
			"Enter a search term",
			"Search by server name, e.g. cfx search roleplay")
	}
	return q, nil
}
