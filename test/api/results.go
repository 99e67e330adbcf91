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

package api

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/onsi/ginkgo/v2/reporters"
	"github.com/onsi/ginkgo/v2/types"

	"github.com/mrhotel/api-tests/pkg/report"
)

const (
	JSONReportFile  = "results.json"
	JUnitReportFile = "junit.xml"
	SummaryFile     = "summary.md"
)

// WriteReports stores the suite outcome as Ginkgo JSON, JUnit XML and a
// markdown summary, then prints the console summary.
func WriteReports(w io.Writer, suiteReport types.Report, dir string) (*report.Summary, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}

	if err := reporters.GenerateJSONReport(suiteReport, filepath.Join(dir, JSONReportFile)); err != nil {
		return nil, fmt.Errorf("writing json report: %w", err)
	}

	if err := reporters.GenerateJUnitReport(suiteReport, filepath.Join(dir, JUnitReportFile)); err != nil {
		return nil, fmt.Errorf("writing junit report: %w", err)
	}

	summary := report.Summarize(report.FromGinkgo(suiteReport), time.Now())

	if err := report.WriteMarkdown(filepath.Join(dir, SummaryFile), summary); err != nil {
		return nil, err
	}

	report.RenderConsole(w, summary)

	return summary, nil
}
