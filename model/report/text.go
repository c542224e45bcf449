package report

import (
	"fmt"
	"strings"

	"github.com/viant/rrsched/model/message"
	"github.com/viant/toolbox"
)

// Lines returns the log lines followed by the three summary lines
func (r *Report) Lines(catalog *message.Catalog) []string {
	if catalog == nil {
		catalog = message.English()
	}
	ret := make([]string, 0, len(r.Log)+3)
	ret = append(ret, r.Log...)
	ret = append(ret,
		fmt.Sprintf("%s: %.2f", catalog.AverageContextSwitches, r.AverageContextSwitches),
		fmt.Sprintf("%s: %.2f", catalog.AverageInstructions, r.AverageInstructions),
		fmt.Sprintf("%s: %d", catalog.Quantum, r.Quantum),
	)
	return ret
}

// Text renders the report artifact, every line is newline terminated
func (r *Report) Text(catalog *message.Catalog) string {
	builder := strings.Builder{}
	for _, line := range r.Lines(catalog) {
		builder.WriteString(line)
		builder.WriteByte('\n')
	}
	return builder.String()
}

// Parse reads a report artifact. The trailing summary lines are matched by
// catalog labels; every preceding line is a log line. The catalog labels are
// tried first, then every other supported locale; Locale is set from the
// catalog that matched.
func Parse(data []byte, catalog *message.Catalog) (*Report, error) {
	if catalog == nil {
		catalog = message.English()
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	if len(lines) < 3 {
		return nil, fmt.Errorf("invalid report: expected at least 3 lines, but had %d", len(lines))
	}
	ret, err := parseSummary(lines, catalog)
	if err == nil {
		return ret, nil
	}
	for _, locale := range message.Locales() {
		candidate, _ := message.Lookup(locale)
		if candidate.Locale == catalog.Locale {
			continue
		}
		if ret, cErr := parseSummary(lines, candidate); cErr == nil {
			return ret, nil
		}
	}
	return nil, err
}

func parseSummary(lines []string, catalog *message.Catalog) (*Report, error) {
	summary := lines[len(lines)-3:]
	ret := &Report{Log: lines[:len(lines)-3], Locale: catalog.Locale}
	var err error
	if ret.AverageContextSwitches, err = parseFloat(summary[0], catalog.AverageContextSwitches); err != nil {
		return nil, err
	}
	if ret.AverageInstructions, err = parseFloat(summary[1], catalog.AverageInstructions); err != nil {
		return nil, err
	}
	value, err := summaryValue(summary[2], catalog.Quantum)
	if err != nil {
		return nil, err
	}
	if ret.Quantum, err = toolbox.ToInt(value); err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", catalog.Quantum, value, err)
	}
	if len(ret.Log) == 0 {
		ret.Log = nil
	}
	return ret, nil
}

func parseFloat(line, label string) (float64, error) {
	value, err := summaryValue(line, label)
	if err != nil {
		return 0, err
	}
	ret, err := toolbox.ToFloat(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", label, value, err)
	}
	return ret, nil
}

func summaryValue(line, label string) (string, error) {
	prefix := label + ":"
	if !strings.HasPrefix(line, prefix) {
		return "", fmt.Errorf("invalid report: expected %q line, but had %q", label, line)
	}
	return strings.TrimSpace(line[len(prefix):]), nil
}
