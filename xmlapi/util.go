package xmlapi

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

//////////////////////////////////////////////////

func isValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	if u.Scheme == "" {
		return false
	}

	return true
}

// Parses a date-and-time string (RFC3339) as found in <published> and
// <updated>.
func parseDate(datetime string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(datetime))
}

// XML 1.0 Char production.
func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	}

	return false
}

func checkXMLText(field string, s string) error {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return &InvalidParamsError{Field: field, Reason: "invalid UTF-8"}
		}
		if !isXMLChar(r) {
			return invalidChar(field, r)
		}

		i += size
	}

	return nil
}
