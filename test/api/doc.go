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

// Package api provides end-to-end test utilities for the MrHotel API.
//
// # Separate Client Implementation
//
// The APIClient is written by hand against the REST contract rather than
// generated from it.  Any legitimate change to the API must have a
// compensating change here, which makes API evolution explicit and
// reviewable.  When VALIDATE_RESPONSES is set successful responses are also
// checked against the embedded OpenAPI document.
//
// The client is test specific:
//   - one HTTP call per operation, no retries
//   - W3C trace context propagation for request correlation
//   - a cookie jar per client, so authenticated and anonymous clients can
//     be used side by side within a scenario
//   - raw status codes and bodies are returned for the caller to assert on
//
// # Configuration
//
// Settings come from the environment, optionally seeded from a .env file.
// When API_BASE_URL is unset the suites start an in-process fake of the API
// so they can run without any external dependency.
package api
