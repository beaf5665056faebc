package container

import (
	"regexp"
	"strings"
)

// CatchAll is the definition key matched only when nothing more specific applies.
const CatchAll = "*"

// NormalizeID returns the exact-lookup form of an identifier: lowercased, with
// any leading namespace separators stripped.
//
//	NormalizeID(`\App\Mailer`) // "app\mailer"
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimLeft(id, `\`))
}

// IsPattern reports whether key is a delimited regular expression such as
// `/^app\.(.+)$/i`. A malformed pattern is not a pattern; it never errors.
func IsPattern(key string) bool {
	return compilePattern(key) != nil
}

// MatchPattern reports whether id matches the pattern key. It returns false
// when key is not a valid pattern.
func MatchPattern(key, id string) bool {
	re := compilePattern(key)
	return re != nil && re.MatchString(id)
}

// compilePattern returns the compiled form of a delimited pattern key, or nil
// when key is not a valid pattern.
func compilePattern(key string) *regexp.Regexp {
	if len(key) < 2 {
		return nil
	}
	delim := key[0]
	if !isDelimiter(delim) {
		return nil
	}
	end := strings.LastIndexByte(key, delim)
	if end <= 0 {
		return nil
	}
	body, flags := key[1:end], key[end+1:]

	var prefix strings.Builder
	for i := 0; i < len(flags); i++ {
		switch flags[i] {
		case 'i', 'm', 's', 'U':
			prefix.WriteByte(flags[i])
		default:
			return nil
		}
	}
	if prefix.Len() > 0 {
		body = "(?" + prefix.String() + ")" + body
	}

	re, err := regexp.Compile(body)
	if err != nil {
		return nil
	}
	return re
}

func isDelimiter(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return false
	case c == '\\', c == ' ', c == '\t', c == '\n', c == '\r':
		return false
	case c == '*':
		// the catch-all key must never read as a pattern
		return false
	}
	return c < 0x80
}
