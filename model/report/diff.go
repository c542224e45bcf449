package report

import (
	"github.com/pmezard/go-difflib/difflib"
	"github.com/viant/rrsched/model/message"
)

// Diff returns a unified diff between expected and actual rendered with
// catalog, the result is empty when both render identically.
func Diff(expected, actual *Report, catalog *message.Catalog) (string, error) {
	return DiffText(expected.Text(catalog), actual.Text(catalog), expected.FileName(), actual.FileName())
}

// DiffText returns a unified diff between two report artifacts.
func DiffText(expected, actual, fromFile, toFile string) (string, error) {
	if expected == actual {
		return "", nil
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
