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

	"github.com/onsi/ginkgo/v2/types"
)

// ginkgoStatus maps Ginkgo spec states onto the three reported outcomes.
func ginkgoStatus(state types.SpecState) Status {
	switch state {
	case types.SpecStatePassed:
		return StatusPassed
	case types.SpecStateSkipped, types.SpecStatePending:
		return StatusSkipped
	default:
		return StatusFailed
	}
}

// FromGinkgo extracts one result per It node, setup and reporting nodes are ignored.
// The scenario is the outermost container of the spec.
func FromGinkgo(reports ...types.Report) []TestResult {
	var out []TestResult

	for _, report := range reports {
		for _, spec := range report.SpecReports {
			if spec.LeafNodeType != types.NodeTypeIt {
				continue
			}

			suite := report.SuiteDescription
			if len(spec.ContainerHierarchyTexts) > 0 {
				suite = spec.ContainerHierarchyTexts[0]
			}

			result := TestResult{
				Suite:    suite,
				Name:     spec.LeafNodeText,
				Status:   ginkgoStatus(spec.State),
				Duration: spec.RunTime,
			}

			if result.Status == StatusFailed {
				result.Error = spec.Failure.Message
			}

			out = append(out, result)
		}
	}

	return out
}

// ParseGinkgo reads a report written by ginkgo --json-report.
func ParseGinkgo(data []byte) ([]TestResult, error) {
	var reports []types.Report

	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("unmarshaling ginkgo report: %w", err)
	}

	return FromGinkgo(reports...), nil
}
