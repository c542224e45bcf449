package meta

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// ExpandEnv replaces every ${env.KEY} in value with the KEY environment
// variable, unset variables expand to "".
func ExpandEnv(value string) string {
	return expand(value, os.Getenv)
}

// expand leaves an unterminated expression as is; an expression with an
// invalid key keeps its prefix literal and scanning resumes after it.
func expand(value string, lookup func(string) string) string {
	if !strings.Contains(value, envPrefix) {
		return value
	}
	var b strings.Builder
	for {
		idx := strings.Index(value, envPrefix)
		if idx < 0 {
			b.WriteString(value)
			return b.String()
		}
		b.WriteString(value[:idx])
		rest := value[idx+len(envPrefix):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			b.WriteString(value[idx:])
			return b.String()
		}
		key := rest[:end]
		if !isKey(key) {
			b.WriteString(envPrefix)
			value = rest
			continue
		}
		b.WriteString(lookup(key))
		value = rest[end+1:]
	}
}

func isKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
