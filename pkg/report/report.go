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

// Package report turns raw end-to-end test results into a human readable summary.
package report

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	ErrNoResults     = errors.New("results document not found")
	ErrUnknownFormat = errors.New("unknown results format")
)

// Status is the normalised outcome of a test case.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

const (
	// rankingSize is how many tests the slowest and fastest rankings hold.
	rankingSize = 5

	slowAverageThreshold = 2 * time.Second
	slowSuiteThreshold   = 2 * time.Minute
	targetSuccessRate    = 95.0
)

// TestResult is the outcome of one test case.
type TestResult struct {
	Suite    string
	Name     string
	Status   Status
	Duration time.Duration
	Error    string
}

// SuiteSummary groups the results of one scenario.
type SuiteSummary struct {
	Name    string
	Tests   []TestResult
	Passed  int
	Failed  int
	Skipped int
}

// Total is the number of tests in the scenario.
func (s *SuiteSummary) Total() int {
	return len(s.Tests)
}

// Errors returns the tests that reported an error message.
func (s *SuiteSummary) Errors() []TestResult {
	var out []TestResult

	for _, test := range s.Tests {
		if test.Error != "" {
			out = append(out, test)
		}
	}

	return out
}

// Summary aggregates a whole run.
type Summary struct {
	GeneratedAt     time.Time
	Total           int
	Passed          int
	Failed          int
	Skipped         int
	TotalDuration   time.Duration
	Suites          []*SuiteSummary
	Slowest         []TestResult
	Fastest         []TestResult
	Recommendations []Recommendation
}

// Recommendation is a single remark about the health of the run.
type Recommendation struct {
	Warning bool
	Message string
}

func percentage(n, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(n) / float64(total) * 100
}

func (s *Summary) PassedPercent() float64 {
	return percentage(s.Passed, s.Total)
}

func (s *Summary) FailedPercent() float64 {
	return percentage(s.Failed, s.Total)
}

func (s *Summary) SkippedPercent() float64 {
	return percentage(s.Skipped, s.Total)
}

// AverageDuration is the mean test duration, zero for an empty run.
func (s *Summary) AverageDuration() time.Duration {
	if s.Total == 0 {
		return 0
	}

	return s.TotalDuration / time.Duration(s.Total)
}

// Succeeded is true when no test failed.
func (s *Summary) Succeeded() bool {
	return s.Failed == 0
}

// Summarize computes counts, timing aggregates, rankings and recommendations.
// Suites keep the order in which they are first seen.
func Summarize(results []TestResult, now time.Time) *Summary {
	summary := &Summary{
		GeneratedAt: now,
		Total:       len(results),
	}

	suites := map[string]*SuiteSummary{}

	for _, result := range results {
		summary.TotalDuration += result.Duration

		suite, ok := suites[result.Suite]
		if !ok {
			suite = &SuiteSummary{
				Name: result.Suite,
			}

			suites[result.Suite] = suite
			summary.Suites = append(summary.Suites, suite)
		}

		suite.Tests = append(suite.Tests, result)

		switch result.Status {
		case StatusPassed:
			summary.Passed++
			suite.Passed++
		case StatusFailed:
			summary.Failed++
			suite.Failed++
		case StatusSkipped:
			summary.Skipped++
			suite.Skipped++
		}
	}

	byDuration := func(a, b TestResult) int {
		return cmp.Compare(a.Duration, b.Duration)
	}

	slowest := slices.Clone(results)
	slices.SortStableFunc(slowest, func(a, b TestResult) int {
		return byDuration(b, a)
	})

	summary.Slowest = slowest[:min(rankingSize, len(slowest))]

	fastest := slices.DeleteFunc(slices.Clone(results), func(r TestResult) bool {
		return r.Status != StatusPassed
	})
	slices.SortStableFunc(fastest, byDuration)

	summary.Fastest = fastest[:min(rankingSize, len(fastest))]

	summary.Recommendations = recommend(summary)

	return summary
}

func recommend(s *Summary) []Recommendation {
	var out []Recommendation

	if s.Failed > 0 {
		out = append(out, Recommendation{
			Warning: true,
			Message: fmt.Sprintf("%d failed tests detected, review the detailed logs.", s.Failed),
		})
	}

	if average := s.AverageDuration(); average > slowAverageThreshold {
		out = append(out, Recommendation{
			Warning: true,
			Message: fmt.Sprintf("High average duration (%dms), consider optimizing.", average.Milliseconds()),
		})
	}

	if rate := s.PassedPercent(); rate < targetSuccessRate {
		out = append(out, Recommendation{
			Warning: true,
			Message: fmt.Sprintf("Low success rate (%.1f%%), target is above %.0f%%.", rate, targetSuccessRate),
		})
	} else {
		out = append(out, Recommendation{
			Message: fmt.Sprintf("Excellent success rate (%.1f%%).", rate),
		})
	}

	if s.TotalDuration > slowSuiteThreshold {
		out = append(out, Recommendation{
			Warning: true,
			Message: "The suite takes longer than 2 minutes, consider splitting it.",
		})
	} else {
		out = append(out, Recommendation{
			Message: "Execution time within target (< 2 min).",
		})
	}

	return out
}
