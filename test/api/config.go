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
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type TestConfig struct {
	// BaseURL of the API under test, empty starts the in-process fake.
	BaseURL string
	// AuthToken is sent as a bearer token when set, otherwise the
	// session cookie from login authenticates requests.
	AuthToken         string
	Username          string
	Password          string
	AdminCode         string
	RequestTimeout    time.Duration
	TestTimeout       time.Duration
	HealthTimeout     time.Duration
	ResultsDir        string
	ValidateResponses bool
	DebugLogging      bool
	LogRequests       bool
	LogResponses      bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Every invalid setting is reported in a single aggregate error.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:           os.Getenv("API_BASE_URL"),
		AuthToken:         os.Getenv("API_AUTH_TOKEN"),
		Username:          getStringWithDefault("TEST_USERNAME", "testuser"),
		Password:          getStringWithDefault("TEST_PASSWORD", "Test123!"),
		AdminCode:         getStringWithDefault("ADMIN_CODE", "admin-secret-code"),
		RequestTimeout:    getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		TestTimeout:       getDurationWithDefault("TEST_TIMEOUT", 30*time.Second),
		HealthTimeout:     getDurationWithDefault("HEALTH_TIMEOUT", 30*time.Second),
		ResultsDir:        getStringWithDefault("RESULTS_DIR", "test-results"),
		ValidateResponses: getBoolWithDefault("VALIDATE_RESPONSES", false),
		DebugLogging:      getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:       getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:      getBoolWithDefault("LOG_RESPONSES", false),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// UseFake is true when no remote API is configured.
func (c *TestConfig) UseFake() bool {
	return c.BaseURL == ""
}

// Validate checks the configuration is usable.
func (c *TestConfig) Validate() error {
	var errs []error

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)

		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%w: API_BASE_URL: %w", ErrInvalidConfig, err))
		case u.Scheme != "http" && u.Scheme != "https", u.Host == "":
			errs = append(errs, fmt.Errorf("%w: API_BASE_URL must be an absolute http(s) URL, got %q", ErrInvalidConfig, c.BaseURL))
		}
	}

	if c.Username == "" {
		errs = append(errs, fmt.Errorf("%w: TEST_USERNAME must not be empty", ErrInvalidConfig))
	}

	if c.Password == "" {
		errs = append(errs, fmt.Errorf("%w: TEST_PASSWORD must not be empty", ErrInvalidConfig))
	}

	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"REQUEST_TIMEOUT", c.RequestTimeout},
		{"TEST_TIMEOUT", c.TestTimeout},
		{"HEALTH_TIMEOUT", c.HealthTimeout},
	}

	for _, t := range timeouts {
		if t.value <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, t.name, t.value))
		}
	}

	return utilerrors.NewAggregate(errs)
}

func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		".env",          // From the repository root
		"../../.env",    // From test/api
		"../../../.env", // From test/api/suites
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Variables already in the environment take precedence.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
