package criteria

import (
	"strconv"

	"github.com/viant/rrsched/model/report"
	"github.com/viant/rrsched/service/dao"
)

// Match reports whether aReport satisfies every parameter. Unknown
// parameter names are ignored.
func Match(aReport *report.Report, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil {
			continue
		}
		switch parameter.Name {
		case dao.ParameterLocale:
			if !matchValue(aReport.Locale, parameter.Value) {
				return false
			}
		case dao.ParameterQuantum:
			if !matchValue(strconv.Itoa(aReport.Quantum), parameter.Value) {
				return false
			}
		}
	}
	return true
}

func matchValue(actual string, expected interface{}) bool {
	switch value := expected.(type) {
	case string:
		return actual == value
	case []string:
		for _, candidate := range value {
			if actual == candidate {
				return true
			}
		}
		return false
	case int:
		return actual == strconv.Itoa(value)
	}
	return true
}
