package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	env := map[string]string{"FOO": "bar", "A": "1", "B": "2", "X": "x", "QUANTUM": "4"}
	lookup := func(key string) string { return env[key] }

	testCases := []struct {
		description string
		input       string
		expected    string
	}{
		{description: "no expressions", input: "quantum: 3", expected: "quantum: 3"},
		{description: "single expression", input: "value is ${env.FOO}", expected: "value is bar"},
		{description: "multiple expressions", input: "${env.A}-${env.B}-${env.A}", expected: "1-2-1"},
		{description: "unset variable becomes empty", input: "unset=${env.NOTSET}-end", expected: "unset=-end"},
		{description: "missing closing brace", input: "start ${env.X and ${env.Y} end", expected: "start ${env.X and  end"},
		{description: "empty key", input: "oops ${env.} done", expected: "oops  done"},
		{description: "unterminated", input: "quantum: ${env.QUANTUM", expected: "quantum: ${env.QUANTUM"},
		{description: "yaml value", input: "quantum: ${env.QUANTUM}\n", expected: "quantum: 4\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, expand(tc.input, lookup))
		})
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("RRSCHED_QUANTUM", "7")
	assert.Equal(t, "7", ExpandEnv("${env.RRSCHED_QUANTUM}"))
}
