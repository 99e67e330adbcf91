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
	"encoding/json"
	"fmt"
	"time"
)

type playwrightReport struct {
	Suites []playwrightSuite `json:"suites"`
}

type playwrightSuite struct {
	Title  string            `json:"title"`
	Specs  []playwrightSpec  `json:"specs"`
	Suites []playwrightSuite `json:"suites"`
}

type playwrightSpec struct {
	Title string           `json:"title"`
	Tests []playwrightTest `json:"tests"`
}

type playwrightTest struct {
	Results []playwrightResult `json:"results"`
}

type playwrightResult struct {
	Status   string           `json:"status"`
	Duration int64            `json:"duration"`
	Error    *playwrightError `json:"error"`
}

type playwrightError struct {
	Message string `json:"message"`
}

func playwrightStatus(status string) Status {
	switch status {
	case "passed":
		return StatusPassed
	case "skipped":
		return StatusSkipped
	default:
		return StatusFailed
	}
}

// ParsePlaywright reads a Playwright JSON reporter document.  File level suites
// wrap the describe blocks, so specs are attributed to the innermost titled suite.
func ParsePlaywright(data []byte) ([]TestResult, error) {
	var report playwrightReport

	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("unmarshaling playwright report: %w", err)
	}

	var out []TestResult

	for _, suite := range report.Suites {
		out = walkPlaywrightSuite(out, suite)
	}

	return out, nil
}

func walkPlaywrightSuite(out []TestResult, suite playwrightSuite) []TestResult {
	for _, spec := range suite.Specs {
		for _, test := range spec.Tests {
			if len(test.Results) == 0 {
				out = append(out, TestResult{
					Suite:  suite.Title,
					Name:   spec.Title,
					Status: StatusSkipped,
				})

				continue
			}

			// Retries append attempts, the last one is the verdict.
			final := test.Results[len(test.Results)-1]

			result := TestResult{
				Suite:    suite.Title,
				Name:     spec.Title,
				Status:   playwrightStatus(final.Status),
				Duration: time.Duration(final.Duration) * time.Millisecond,
			}

			if final.Error != nil {
				result.Error = final.Error.Message
			}

			out = append(out, result)
		}
	}

	for _, child := range suite.Suites {
		out = walkPlaywrightSuite(out, child)
	}

	return out
}
