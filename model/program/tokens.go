package program

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	registerCode
	assignCode
	integerCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	registerToken   = parsly.NewToken(registerCode, "Register", &registerMatcher{})
	assignToken     = parsly.NewToken(assignCode, "=", matcher.NewByte('='))
	integerToken    = parsly.NewToken(integerCode, "Integer", &integerMatcher{})
)

// registerMatcher matches an identifier; the register name itself is
// validated by the parser so that unknown names get a precise error.
type registerMatcher struct{}

func (m *registerMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize
	if pos >= size || !isLetter(input[pos]) {
		return 0
	}
	matched := 1
	for i := pos + 1; i < size; i++ {
		if isLetter(input[i]) || isDigit(input[i]) || input[i] == '_' {
			matched++
			continue
		}
		break
	}
	return matched
}

// integerMatcher matches an optionally signed run of decimal digits.
type integerMatcher struct{}

func (m *integerMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize
	if pos >= size {
		return 0
	}
	matched := 0
	if input[pos] == '+' || input[pos] == '-' {
		matched++
	}
	digits := 0
	for i := pos + matched; i < size && isDigit(input[i]); i++ {
		digits++
	}
	if digits == 0 {
		return 0
	}
	return matched + digits
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
