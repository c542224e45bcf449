package program

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/parsly"
)

// Parse decodes a single instruction line. Any line containing '=' is an
// assignment; keywords must match exactly. Unknown tokens decode as no-ops
// unless strict is set.
func Parse(text string, strict bool) (*Instruction, error) {
	if strings.Contains(text, "=") {
		return parseAssignment(text)
	}
	switch text {
	case KeywordIO:
		return &Instruction{Kind: KindIO, Text: text}, nil
	case KeywordCompute:
		return &Instruction{Kind: KindCompute, Text: text}, nil
	case KeywordExit:
		return &Instruction{Kind: KindExit, Text: text}, nil
	}
	if strict {
		return nil, fmt.Errorf("%w: unknown instruction %q", ErrMalformedInstruction, text)
	}
	return &Instruction{Kind: KindNoop, Text: text}, nil
}

// parseAssignment parses REG=VALUE, allowing blanks around both operands.
func parseAssignment(text string) (*Instruction, error) {
	cursor := parsly.NewCursor("", []byte(text), 0)

	matched := cursor.MatchAfterOptional(whitespaceToken, registerToken)
	if matched.Code != registerToken.Code {
		return nil, malformed(text, cursor.NewError(registerToken))
	}
	register := Register(matched.Text(cursor))
	if !register.Valid() {
		return nil, fmt.Errorf("%w: unknown register %q in %q", ErrMalformedInstruction, register, text)
	}

	matched = cursor.MatchAfterOptional(whitespaceToken, assignToken)
	if matched.Code != assignToken.Code {
		return nil, malformed(text, cursor.NewError(assignToken))
	}

	matched = cursor.MatchAfterOptional(whitespaceToken, integerToken)
	if matched.Code != integerToken.Code {
		return nil, malformed(text, cursor.NewError(integerToken))
	}
	literal := matched.Text(cursor)
	if rest := strings.TrimSpace(text[cursor.Pos:]); rest != "" {
		return nil, fmt.Errorf("%w: unexpected %q after value in %q", ErrMalformedInstruction, rest, text)
	}
	value, err := strconv.Atoi(literal)
	if err != nil {
		return nil, malformed(text, err)
	}
	return &Instruction{Kind: KindAssign, Text: text, Register: register, Value: value}, nil
}

func malformed(text string, cause error) error {
	return fmt.Errorf("%w: %q: %v", ErrMalformedInstruction, text, cause)
}
