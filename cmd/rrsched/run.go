package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/rrsched"
	"github.com/viant/rrsched/model/report"
	"github.com/viant/rrsched/tracing"
)

const (
	serviceName    = "rrsched"
	serviceVersion = "0.1.0"
)

type options struct {
	config    string
	processes string
	output    string
	locale    string
	strict    bool
	trace     string
	expect    string
	summary   bool
	verbose   bool
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	ret := &options{}
	flags := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&ret.config, "config", rrsched.DefaultConfigURL, "quantum file or yaml/json config URL")
	flags.StringVar(&ret.processes, "processes", "", "process directory URL (default "+rrsched.DefaultProcessesURL+")")
	flags.StringVar(&ret.output, "output", "", "report location URL (default "+rrsched.DefaultOutputURL+")")
	flags.StringVar(&ret.locale, "locale", "", "log and summary locale: en or pt")
	flags.BoolVar(&ret.strict, "strict", false, "reject unknown instructions")
	flags.StringVar(&ret.trace, "trace", "", "write OpenTelemetry spans to file")
	flags.StringVar(&ret.expect, "expect", "", "expected report URL, the run fails when it differs")
	flags.BoolVar(&ret.summary, "summary", false, "print a per process summary table")
	flags.BoolVar(&ret.verbose, "v", false, "verbose logging")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	return ret, nil
}

// apply overrides config values with explicitly set flags.
func (o *options) apply(config *rrsched.Config) {
	if o.processes != "" {
		config.Processes = o.processes
	}
	if o.output != "" {
		config.Output = o.output
	}
	if o.locale != "" {
		config.Locale = o.locale
	}
	if o.strict {
		config.Strict = true
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return 2
	}
	logger := logrus.New()
	logger.SetOutput(stderr)
	if opts.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	ctx := context.Background()
	config, err := rrsched.LoadConfig(ctx, afs.New(), opts.config)
	if err != nil {
		logger.WithError(err).WithField("config", opts.config).Error("failed to load config")
		return 1
	}
	opts.apply(config)

	serviceOptions := []rrsched.Option{rrsched.WithConfig(config), rrsched.WithLogger(logger)}
	if opts.trace != "" {
		serviceOptions = append(serviceOptions, rrsched.WithTracing(serviceName, serviceVersion, opts.trace))
		defer func() { _ = tracing.Shutdown(ctx) }()
	}
	srv, err := rrsched.New(serviceOptions...)
	if err != nil {
		logger.WithError(err).Error("failed to create service")
		return 1
	}
	aReport, err := srv.Run(ctx)
	if err != nil {
		logger.WithError(err).WithField("processes", config.Processes).Error("simulation failed")
		return 1
	}
	if opts.summary {
		printSummary(stdout, aReport)
	}
	if opts.expect != "" {
		diff, err := srv.Compare(ctx, opts.expect, aReport)
		if err != nil {
			logger.WithError(err).Error("failed to compare report")
			return 1
		}
		if diff != "" {
			fmt.Fprint(stdout, diff)
			logger.WithField("expect", opts.expect).Error("report differs from expected")
			return 1
		}
	}
	return 0
}

func printSummary(w io.Writer, aReport *report.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Process", "Registers", "Turns", "Instructions"})
	for _, process := range aReport.Processes {
		table.Append([]string{
			strconv.Itoa(process.ID),
			process.Name,
			process.Registers,
			strconv.Itoa(process.Dispatches),
			strconv.Itoa(process.Instructions),
		})
	}
	table.SetFooter([]string{
		"",
		"quantum " + strconv.Itoa(aReport.Quantum),
		fmt.Sprintf("avg switches %.2f", aReport.AverageContextSwitches),
		strconv.Itoa(aReport.ContextSwitches),
		strconv.Itoa(aReport.Instructions),
	})
	table.Render()
}
