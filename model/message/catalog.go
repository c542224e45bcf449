// Package message defines localized templates for the simulation event log
// and the run summary.
package message

import "strings"

// Supported locales
const (
	LocaleEN = "en"
	LocalePT = "pt"
)

// Catalog holds printf templates for every log line and summary label
type Catalog struct {
	Locale           string
	Loading          string // name
	Executing        string // name
	IOStarted        string // name
	Terminated       string // process textual form
	Interrupting     string // name, instructions
	OversizedFile    string // file, limit
	OversizedProgram string // name, limit
	EmptySource      string // file

	AverageContextSwitches string
	AverageInstructions    string
	Quantum                string
}

var english = &Catalog{
	Locale:                 LocaleEN,
	Loading:                "Loading %s",
	Executing:              "Executing %s",
	IOStarted:              "I/O started on %s",
	Terminated:             "%s terminated.",
	Interrupting:           "Interrupting %s after %d instructions",
	OversizedFile:          "Error: file %s exceeds the %d line limit and will be ignored.",
	OversizedProgram:       "Error: program %s has more than %d commands and will be ignored.",
	EmptySource:            "Error: file %s is empty and will be ignored.",
	AverageContextSwitches: "AVERAGE CONTEXT SWITCHES",
	AverageInstructions:    "AVERAGE INSTRUCTIONS",
	Quantum:                "QUANTUM",
}

var portuguese = &Catalog{
	Locale:                 LocalePT,
	Loading:                "Carregando %s",
	Executing:              "Executando %s",
	IOStarted:              "E/S iniciada em %s",
	Terminated:             "%s terminado.",
	Interrupting:           "Interrompendo %s após %d instruções",
	OversizedFile:          "Erro: O arquivo %s excede o limite de %d linhas e será ignorado.",
	OversizedProgram:       "Erro: O programa %s possui mais de %d comandos e será ignorado.",
	EmptySource:            "Erro: O arquivo %s está vazio e será ignorado.",
	AverageContextSwitches: "MEDIA DE TROCAS",
	AverageInstructions:    "MEDIA DE INSTRUCOES",
	Quantum:                "QUANTUM",
}

// English returns the default catalog
func English() *Catalog { return english }

// Portuguese returns the catalog matching the classic report format
func Portuguese() *Catalog { return portuguese }

// Lookup returns the catalog for locale, ok is false when the locale is
// unknown, in which case the English catalog is returned.
func Lookup(locale string) (*Catalog, bool) {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "", LocaleEN:
		return english, true
	case LocalePT, "pt-br", "pt_br":
		return portuguese, true
	}
	return english, false
}

// Locales lists supported locales
func Locales() []string {
	return []string{LocaleEN, LocalePT}
}
