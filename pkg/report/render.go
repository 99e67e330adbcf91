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

package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
)

const markdownTemplate = `# Automated Test Report - MrHotel API

## Executive Summary

**Run date:** {{ .GeneratedAt.Format "2006-01-02 15:04:05" }}

| Metric | Value |
|--------|-------|
| **Total tests** | {{ .Total }} |
| **Passed** | {{ .Passed }} ({{ printf "%.1f" .PassedPercent }}%) |
| **Failed** | {{ .Failed }} ({{ printf "%.1f" .FailedPercent }}%) |
| **Skipped** | {{ .Skipped }} ({{ printf "%.1f" .SkippedPercent }}%) |
| **Total time** | {{ seconds .TotalDuration }}s |
| **Average time** | {{ .AverageDuration.Milliseconds }}ms |

---

## Results by Scenario
{{ range .Suites }}
### {{ .Name }}

**Result:** {{ .Passed }}/{{ .Total }} passed

| # | Test Case | Status | Time |
|---|-----------|--------|------|
{{- range $i, $t := .Tests }}
| {{ add1 $i }} | {{ cell $t.Name }} | {{ icon $t.Status }} {{ $t.Status }} | {{ $t.Duration.Milliseconds }}ms |
{{- end }}
{{ with .Errors }}
#### Errors found:
{{ range . }}
**{{ .Name }}**
` + "```" + `
{{ trim .Error }}
` + "```" + `
{{ end }}{{ end }}{{ end }}
---

## Performance Analysis

### Slowest tests:

{{ range $i, $t := .Slowest }}{{ add1 $i }}. **{{ $t.Name }}** - {{ $t.Duration.Milliseconds }}ms
{{ end }}
### Fastest tests:

{{ range $i, $t := .Fastest }}{{ add1 $i }}. **{{ $t.Name }}** - {{ $t.Duration.Milliseconds }}ms
{{ end }}
---

## Recommendations

{{ range .Recommendations }}- {{ if .Warning }}WARNING: {{ end }}{{ .Message }}
{{ end }}`

func icon(status Status) string {
	switch status {
	case StatusPassed:
		return "✅"
	case StatusFailed:
		return "❌"
	default:
		return "⏭️"
	}
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.2f", d.Seconds())
}

// cell escapes text for use inside a markdown table.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func markdown() *template.Template {
	funcs := sprig.TxtFuncMap()
	funcs["icon"] = icon
	funcs["seconds"] = seconds
	funcs["cell"] = cell

	return template.Must(template.New("summary").Funcs(funcs).Parse(markdownTemplate))
}

// RenderMarkdown writes the detailed markdown report.
func RenderMarkdown(w io.Writer, s *Summary) error {
	if err := markdown().Execute(w, s); err != nil {
		return fmt.Errorf("rendering markdown report: %w", err)
	}

	return nil
}

// WriteMarkdown renders the markdown report to a file, creating its directory.
func WriteMarkdown(path string, s *Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}

	if err := RenderMarkdown(f, s); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report: %w", err)
	}

	return nil
}

// RenderConsole writes the short banner printed after a run.
func RenderConsole(w io.Writer, s *Summary) {
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "TEST SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total:    %d\n", s.Total)
	fmt.Fprintf(w, "Passed:   %d (%.1f%%)\n", s.Passed, s.PassedPercent())
	fmt.Fprintf(w, "Failed:   %d (%.1f%%)\n", s.Failed, s.FailedPercent())
	fmt.Fprintf(w, "Skipped:  %d (%.1f%%)\n", s.Skipped, s.SkippedPercent())
	fmt.Fprintf(w, "Time:     %ss\n", seconds(s.TotalDuration))
	fmt.Fprintln(w, rule)
}
