package stringutil

import (
	"regexp"
	"strconv"
	"time"
)

const timestampFormat = "20060102-150405"

// FormatTimestamp renders t in the compact form used for run directory names.
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampFormat)
}

// ParseTimestamp parses a run directory timestamp back into a time.Time.
func ParseTimestamp(val string) (time.Time, error) {
	return time.ParseInLocation(timestampFormat, val, time.Local)
}

// TruncString returns truncated string.
func TruncString(val string, max int) string {
	if len(val) > max {
		return val[:max]
	}
	return val
}

// FloatToken returns a short, filename-safe token for a float value.
// The value is rendered with %.4g, then "." becomes "p" and "-" becomes "m"
// so the token survives in file and directory names.
func FloatToken(v float64) string {
	text := strconv.FormatFloat(v, 'g', 4, 64)
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.':
			out = append(out, 'p')
		case '-':
			out = append(out, 'm')
		default:
			out = append(out, text[i])
		}
	}
	return string(out)
}

var (
	unsafeTokenChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	repeatedDashes   = regexp.MustCompile(`-{2,}`)
)

// SanitizeToken removes characters that are awkward in file or directory
// names, collapses repeated dashes, and falls back to "run" when nothing
// usable remains.
func SanitizeToken(val string) string {
	token := unsafeTokenChars.ReplaceAllString(val, "-")
	token = repeatedDashes.ReplaceAllString(token, "-")
	for len(token) > 0 && token[0] == '-' {
		token = token[1:]
	}
	for len(token) > 0 && token[len(token)-1] == '-' {
		token = token[:len(token)-1]
	}
	if token == "" {
		return "run"
	}
	return token
}
