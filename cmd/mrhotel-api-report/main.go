/*
Copyright 2025 the MrHotel Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/mrhotel/api-tests/pkg/report"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

type options struct {
	input  string
	output string
	format string
}

func (o *options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.input, "input", "test-results/results.json", "Results document produced by the test run.")
	f.StringVar(&o.output, "output", "test-results/summary.md", "Where to write the markdown summary.")
	f.StringVar(&o.format, "format", string(report.FormatAuto), "Results format, one of auto, ginkgo or playwright.")
}

func main() {
	var o options

	o.AddFlags(pflag.CommandLine)

	zapOptions := zap.Options{
		Development: true,
	}

	zapOptions.BindFlags(flag.CommandLine)
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)

	pflag.Parse()

	log.SetLogger(zap.New(zap.UseFlagOptions(&zapOptions)))

	logger := log.Log.WithName("report")

	format, err := report.ParseFormat(o.format)
	if err != nil {
		logger.Error(err, "invalid flags")
		os.Exit(1)
	}

	results, err := report.Load(o.input, format)
	if err != nil {
		if errors.Is(err, report.ErrNoResults) {
			logger.Error(err, "results file not found, run the suites first", "input", o.input)
		} else {
			logger.Error(err, "unable to read results", "input", o.input)
		}

		os.Exit(1)
	}

	summary := report.Summarize(results, time.Now())

	if err := report.WriteMarkdown(o.output, summary); err != nil {
		logger.Error(err, "unable to write summary", "output", o.output)
		os.Exit(1)
	}

	report.RenderConsole(os.Stdout, summary)

	logger.Info("detailed report written", "output", o.output, "total", summary.Total, "failed", summary.Failed)

	if !summary.Succeeded() {
		os.Exit(1)
	}
}
