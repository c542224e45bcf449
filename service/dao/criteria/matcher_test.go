package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/rrsched/model/report"
	"github.com/viant/rrsched/service/dao"
)

func TestMatch(t *testing.T) {
	aReport := &report.Report{Quantum: 4, Locale: "pt"}
	testCases := []struct {
		description string
		parameters  []*dao.Parameter
		expect      bool
	}{
		{description: "no parameters", expect: true},
		{description: "locale match", parameters: []*dao.Parameter{dao.NewParameter(dao.ParameterLocale, "pt")}, expect: true},
		{description: "locale mismatch", parameters: []*dao.Parameter{dao.NewParameter(dao.ParameterLocale, "en")}, expect: false},
		{description: "any of quanta", parameters: []*dao.Parameter{dao.NewParameter(dao.ParameterQuantum, "2", "4")}, expect: true},
		{description: "int quantum", parameters: []*dao.Parameter{{Name: dao.ParameterQuantum, Value: 5}}, expect: false},
		{description: "both", parameters: []*dao.Parameter{dao.NewParameter(dao.ParameterLocale, "pt"), dao.NewParameter(dao.ParameterQuantum, "4")}, expect: true},
		{description: "unknown ignored", parameters: []*dao.Parameter{dao.NewParameter("State", "done"), nil}, expect: true},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expect, Match(aReport, tc.parameters))
		})
	}
}
