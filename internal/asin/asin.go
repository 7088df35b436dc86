package asin

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidURL is returned when no ASIN can be located in a product URL.
// The message is surfaced verbatim to the caller.
var ErrInvalidURL = errors.New("Could not find a valid 10-character ASIN in the URL. Please check the link.")

var asinPattern = regexp.MustCompile(`/(dp|gp/product|ASIN)/([A-Z0-9]{10})`)

// Resolve extracts the 10-character ASIN from an Amazon product URL.
// The query string is ignored; only /dp/, /gp/product/ and /ASIN/ path
// segments are recognized.
func Resolve(url string) (string, error) {
	base, _, _ := strings.Cut(url, "?")

	matches := asinPattern.FindStringSubmatch(base)
	if len(matches) < 3 {
		return "", ErrInvalidURL
	}

	return matches[2], nil
}
