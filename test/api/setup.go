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
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

var ErrAPIUnavailable = errors.New("api not available")

const bannerWidth = 55

//go:generate mockgen -source=setup.go -destination=mock/interfaces.go -package=mock

// AccountAPI is what global setup needs from a client.
type AccountAPI interface {
	CheckAdminRegistrationStatus(ctx context.Context) (*Response, error)
	Login(ctx context.Context, username, password string) (*Response, error)
	Register(ctx context.Context, username, password string) (*Response, error)
}

// TestUserStatus records how the test user was made available.
type TestUserStatus int

const (
	// TestUserExisting means the credentials already worked.
	TestUserExisting TestUserStatus = iota
	// TestUserCreated means the user was registered during setup.
	TestUserCreated
	// TestUserUnverified means registration failed, the suites carry on
	// with the configured credentials regardless.
	TestUserUnverified
)

func (s TestUserStatus) String() string {
	switch s {
	case TestUserExisting:
		return "existing"
	case TestUserCreated:
		return "created"
	case TestUserUnverified:
		return "unverified"
	}

	return fmt.Sprintf("TestUserStatus(%d)", int(s))
}

// PrintBanner writes a boxed title.
func PrintBanner(w io.Writer, title string) {
	fmt.Fprintf(w, "\n╔%s╗\n", strings.Repeat("═", bannerWidth))
	fmt.Fprintf(w, "║  %-*s║\n", bannerWidth-2, title)
	fmt.Fprintf(w, "╚%s╝\n\n", strings.Repeat("═", bannerWidth))
}

// WaitForAPI polls the admin registration status endpoint until it answers
// 200 and returns whether an administrator may still be registered.
func WaitForAPI(ctx context.Context, api AccountAPI, interval, timeout time.Duration) (bool, error) {
	var (
		allowed bool
		lastErr error
	)

	condition := func(ctx context.Context) (bool, error) {
		resp, err := api.CheckAdminRegistrationStatus(ctx)
		if err != nil {
			lastErr = err
			return false, nil
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
			return false, nil
		}

		if err := resp.JSON(&allowed); err != nil {
			return false, err
		}

		return true, nil
	}

	if err := wait.PollUntilContextTimeout(ctx, interval, timeout, true, condition); err != nil {
		if lastErr != nil {
			return false, fmt.Errorf("%w: %w (last error: %w)", ErrAPIUnavailable, err, lastErr)
		}

		return false, fmt.Errorf("%w: %w", ErrAPIUnavailable, err)
	}

	return allowed, nil
}

// EnsureTestUser logs in with the configured credentials, registering the
// user when that fails.  A failed registration is reported but not fatal.
func EnsureTestUser(ctx context.Context, w io.Writer, api AccountAPI, username, password string) (TestUserStatus, error) {
	fmt.Fprintln(w, "Configuring test user...")

	resp, err := api.Login(ctx, username, password)
	if err != nil {
		return TestUserUnverified, fmt.Errorf("logging in test user: %w", err)
	}

	if resp.OK() {
		fmt.Fprintf(w, "Existing test user: %s\n", username)
		return TestUserExisting, nil
	}

	fmt.Fprintf(w, "Creating new test user: %s\n", username)

	resp, err = api.Register(ctx, username, password)
	if err != nil {
		return TestUserUnverified, fmt.Errorf("registering test user: %w", err)
	}

	if !resp.OK() {
		fmt.Fprintf(w, "WARNING: unable to create test user (status: %d)\n", resp.StatusCode)
		fmt.Fprintln(w, "         the suites will continue with the configured credentials")

		return TestUserUnverified, nil
	}

	fmt.Fprintln(w, "Test user created")

	return TestUserCreated, nil
}

// GlobalSetup runs once before any scenario: the API must answer and the
// test user should exist.
func GlobalSetup(ctx context.Context, w io.Writer, api AccountAPI, config *TestConfig, baseURL string) error {
	PrintBanner(w, "STARTING GLOBAL TEST SETUP")

	fmt.Fprintf(w, "Base URL: %s\n", baseURL)
	fmt.Fprintf(w, "Timestamp: %s\n\n", time.Now().Format(time.DateTime))

	fmt.Fprintln(w, "Checking API availability...")

	allowed, err := WaitForAPI(ctx, api, time.Second, config.HealthTimeout)
	if err != nil {
		fmt.Fprintf(w, "\nERROR IN GLOBAL SETUP: %v\n", err)
		fmt.Fprintln(w, "Tests will fail while the API is not available")

		return err
	}

	fmt.Fprintln(w, "API available and responding")
	fmt.Fprintf(w, "Admin registration allowed: %t\n\n", allowed)

	if _, err := EnsureTestUser(ctx, w, api, config.Username, config.Password); err != nil {
		return err
	}

	PrintBanner(w, "GLOBAL SETUP COMPLETE")

	return nil
}

// GlobalTeardown runs once after every scenario finished.
func GlobalTeardown(w io.Writer, resultsDir string) {
	PrintBanner(w, "GLOBAL TEARDOWN")

	fmt.Fprintf(w, "Finished: %s\n", time.Now().Format(time.DateTime))
	fmt.Fprintf(w, "Reports available in: %s\n\n", resultsDir)

	fmt.Fprintln(w, "Useful commands:")
	fmt.Fprintf(w, "   go run ./cmd/mrhotel-api-report --input %s/%s  - Print the markdown summary\n\n", resultsDir, JSONReportFile)

	PrintBanner(w, "TEARDOWN COMPLETE")
}
