package program

import "strings"

// Source is a raw process definition as read from storage.
type Source struct {
	// File is the entry name the source was read from.
	File  string
	Lines []string
}

// NewSource splits data into lines and wraps it as a Source.
func NewSource(file string, data []byte) *Source {
	return &Source{File: file, Lines: SplitLines(string(data))}
}

// SplitLines splits text on universal line boundaries (\n, \r\n, \r, \v,
// \f, \x1c-\x1e, U+0085, U+2028, U+2029). A trailing boundary does not
// produce an empty last line.
func SplitLines(text string) []string {
	var lines []string
	var line strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if !isLineBoundary(r) {
			line.WriteRune(r)
			continue
		}
		if r == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
			i++
		}
		lines = append(lines, line.String())
		line.Reset()
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
