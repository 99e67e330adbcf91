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
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Format identifies the producer of a results document.
type Format string

const (
	FormatAuto       Format = "auto"
	FormatGinkgo     Format = "ginkgo"
	FormatPlaywright Format = "playwright"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatGinkgo, FormatPlaywright:
		return f, nil
	case "":
		return FormatAuto, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// detectFormat relies on the top level shape: Ginkgo writes an array of suite
// reports, Playwright a single object.
func detectFormat(data []byte) (Format, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrUnknownFormat)
	}

	switch trimmed[0] {
	case '[':
		return FormatGinkgo, nil
	case '{':
		return FormatPlaywright, nil
	}

	return "", fmt.Errorf("%w: unexpected leading character %q", ErrUnknownFormat, trimmed[0])
}

// Parse decodes a results document of the given format.
func Parse(data []byte, format Format) ([]TestResult, error) {
	if format == FormatAuto || format == "" {
		detected, err := detectFormat(data)
		if err != nil {
			return nil, err
		}

		format = detected
	}

	switch format {
	case FormatGinkgo:
		return ParseGinkgo(data)
	case FormatPlaywright:
		return ParsePlaywright(data)
	case FormatAuto:
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Load reads and decodes a results document from disk.
func Load(path string, format Format) ([]TestResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoResults, path)
		}

		return nil, fmt.Errorf("reading results: %w", err)
	}

	return Parse(data, format)
}
