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

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/onsi/ginkgo/v2"

	"github.com/mrhotel/api-tests/pkg/openapi"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrContract         = errors.New("response violates the api contract")
)

// loadSchema parses the embedded API document once per process.
//
//nolint:gochecknoglobals
var loadSchema = sync.OnceValues(openapi.NewSchema)

// Response is a completed HTTP exchange, the body has already been read so
// callers may inspect it any number of times.
type Response struct {
	Method     string
	Path       string
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration
	TraceID    string
}

// OK is true for any 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

func (r *Response) Text() string {
	return string(r.Body)
}

func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unmarshaling %s %s response: %w", r.Method, r.Path, err)
	}

	return nil
}

// ID decodes the identifier returned by create operations, a JSON string
// holding a UUID.
func (r *Response) ID() (string, error) {
	var id openapi.ResourceID

	if err := json.Unmarshal(r.Body, &id); err != nil {
		return "", fmt.Errorf("%w: identifier from %s %s: %w", ErrContract, r.Method, r.Path, err)
	}

	if id.Value == "" {
		return "", fmt.Errorf("%w: empty identifier from %s %s", ErrContract, r.Method, r.Path)
	}

	return id.String(), nil
}

// APIClient issues one HTTP call per business operation.  Each client owns a
// cookie jar so a login on one client never authenticates another.
type APIClient struct {
	baseURL   string
	client    *http.Client
	authToken string
	config    *TestConfig
	endpoints *Endpoints
	schema    *openapi.Schema
}

func NewAPIClient(baseURL string) (*APIClient, error) {
	config, err := LoadTestConfig()
	if err != nil {
		return nil, err
	}

	if baseURL == "" {
		baseURL = config.BaseURL
	}

	return newAPIClientWithConfig(config, baseURL)
}

func NewAPIClientWithConfig(config *TestConfig) (*APIClient, error) {
	return newAPIClientWithConfig(config, config.BaseURL)
}

// NewAnonymousAPIClient creates a client that never authenticates, the
// configured bearer token is not sent.
func NewAnonymousAPIClient(config *TestConfig) (*APIClient, error) {
	c, err := newAPIClientWithConfig(config, config.BaseURL)
	if err != nil {
		return nil, err
	}

	c.SetAuthToken("")

	return c, nil
}

// common constructor logic.
func newAPIClientWithConfig(config *TestConfig, baseURL string) (*APIClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	c := &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
			Jar:     jar,
		},
		authToken: config.AuthToken,
		config:    config,
		endpoints: NewEndpoints(),
	}

	if config.ValidateResponses {
		schema, err := loadSchema()
		if err != nil {
			return nil, err
		}

		c.schema = schema
	}

	return c, nil
}

func (c *APIClient) SetAuthToken(token string) {
	c.authToken = token
}

func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s traceparent=%s error=%v\n", method, path, context, duration, traceParent, err)
	c.logTraceContext(traceParent)
}

// logErrorWithStatus logs an error with HTTP status code.
func (c *APIClient) logErrorWithStatus(method, path string, duration time.Duration, statusCode int, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s status=%d traceparent=%s error=%v\n", method, path, context, duration, statusCode, traceParent, err)
	c.logTraceContext(traceParent)
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *APIClient) logUnexpectedStatus(resp *Response, expectedStatus int) {
	ginkgo.GinkgoWriter.Printf("[%s %s] UNEXPECTED STATUS expected=%d got=%d body=%s trace=%s\n", resp.Method, resp.Path, expectedStatus, resp.StatusCode, resp.Text(), resp.TraceID)
	ginkgo.GinkgoWriter.Printf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", resp.TraceID)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	ginkgo.GinkgoWriter.Printf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID.
// A fresh trace per request lets a failure be found in the server logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// encodeBody marshals a request body, raw JSON is sent untouched.
func encodeBody(body any) (io.Reader, error) {
	switch t := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return bytes.NewReader(t), nil
	case []byte:
		return bytes.NewReader(t), nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	return bytes.NewReader(data), nil
}

// doRequest performs exactly one HTTP call and never retries.  An error is
// only returned when no response was received or the response breaks the
// API contract, any status code is otherwise handed back to the caller.
//
//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, method, path string, body any) (*Response, error) {
	reader, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("Accept", "application/json")

	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	if c.config.DebugLogging {
		ginkgo.GinkgoWriter.Printf("[%s %s] sending request traceparent=%s\n", method, path, traceParent)
	}

	start := time.Now()
	httpResp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.logErrorWithStatus(method, path, duration, httpResp.StatusCode, traceParent, err, "reading response body")
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		Method:     method,
		Path:       path,
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
		Duration:   duration,
		TraceID:    extractTraceID(traceParent),
	}

	if c.config.LogRequests {
		ginkgo.GinkgoWriter.Printf("[%s %s] status=%d duration=%s traceparent=%s\n", method, path, resp.StatusCode, duration, traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		ginkgo.GinkgoWriter.Printf("[%s %s] response body: %s\n", method, path, resp.Text())
	}

	// Error responses are asserted by the scenarios themselves, only
	// successful ones are held to the document.
	if c.schema != nil && resp.OK() {
		if err := c.schema.ValidateResponse(ctx, req, resp.StatusCode, resp.Header, respBody); err != nil {
			c.logErrorWithStatus(method, path, duration, resp.StatusCode, traceParent, err, "contract validation")
			return resp, fmt.Errorf("%w: %w", ErrContract, err)
		}
	}

	return resp, nil
}

// expectStatus turns a response with the wrong status into an error.
func (c *APIClient) expectStatus(resp *Response, expectedStatus int) error {
	if resp.StatusCode == expectedStatus {
		return nil
	}

	c.logUnexpectedStatus(resp, expectedStatus)

	return fmt.Errorf("%w: expected %d, got %d, body: %s (trace ID: %s)", ErrUnexpectedStatus, expectedStatus, resp.StatusCode, resp.Text(), resp.TraceID)
}

// LogRequestResponse prints the outcome of a test step.
func (c *APIClient) LogRequestResponse(testName string, resp *Response) {
	LogRequestResponse(ginkgo.GinkgoWriter, testName, resp)
}

// LogRequestResponse prints a boxed test name, status and body.
func LogRequestResponse(w io.Writer, testName string, resp *Response) {
	rule := strings.Repeat("═", 42)

	fmt.Fprintf(w, "\n%s\nTest: %s\nStatus: %d\nResponse: %s\n%s\n", rule, testName, resp.StatusCode, resp.Text(), rule)
}

// Account operations.

func (c *APIClient) CheckAdminRegistrationStatus(ctx context.Context) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.AdminRegisterStatus(), nil)
}

func (c *APIClient) RegisterAdmin(ctx context.Context, username, password, adminCode string) (*Response, error) {
	body := &openapi.RegisterAdminRequest{
		UserName:  username,
		Password:  password,
		AdminCode: adminCode,
	}

	return c.doRequest(ctx, http.MethodPost, c.endpoints.RegisterAdmin(), body)
}

func (c *APIClient) Register(ctx context.Context, username, password string) (*Response, error) {
	body := &openapi.LoginRequest{
		UserName: username,
		Password: password,
	}

	return c.doRequest(ctx, http.MethodPost, c.endpoints.Register(), body)
}

// Login establishes the session cookie on this client only.
func (c *APIClient) Login(ctx context.Context, username, password string) (*Response, error) {
	body := &openapi.LoginRequest{
		UserName: username,
		Password: password,
	}

	return c.doRequest(ctx, http.MethodPost, c.endpoints.Login(), body)
}

func (c *APIClient) Logout(ctx context.Context) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost, c.endpoints.Logout(), nil)
}

func (c *APIClient) GetUserInfo(ctx context.Context) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.UserInfo(), nil)
}

// Guest operations.

func (c *APIClient) CreateGuest(ctx context.Context, guest *openapi.GuestCreate) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost, c.endpoints.Guests(), guest)
}

func (c *APIClient) GetGuests(ctx context.Context) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.Guests(), nil)
}

func (c *APIClient) UpdateGuest(ctx context.Context, guestID string, update *openapi.GuestUpdate) (*Response, error) {
	return c.doRequest(ctx, http.MethodPut, c.endpoints.Guest(guestID), update)
}

func (c *APIClient) DeleteGuest(ctx context.Context, guestID string) (*Response, error) {
	return c.doRequest(ctx, http.MethodDelete, c.endpoints.Guest(guestID), nil)
}

// Room property group operations.

func (c *APIClient) CreateRoomPropertyGroup(ctx context.Context, name string) (*Response, error) {
	body := &openapi.RoomPropertyGroupCreate{
		Name: name,
	}

	return c.doRequest(ctx, http.MethodPost, c.endpoints.RoomPropertyGroups(), body)
}

func (c *APIClient) GetRoomPropertyGroups(ctx context.Context) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.RoomPropertyGroups(), nil)
}

// UpdateRoomPropertyGroup replaces the group's properties, the response maps
// property names to their identifiers.
func (c *APIClient) UpdateRoomPropertyGroup(ctx context.Context, groupID string, update *openapi.RoomPropertyGroupUpdate) (*Response, error) {
	return c.doRequest(ctx, http.MethodPut, c.endpoints.RoomPropertyGroup(groupID), update)
}

func (c *APIClient) DeleteRoomPropertyGroup(ctx context.Context, groupID string) (*Response, error) {
	return c.doRequest(ctx, http.MethodDelete, c.endpoints.RoomPropertyGroup(groupID), nil)
}

// Room operations.

func (c *APIClient) CreateRoom(ctx context.Context, name string) (*Response, error) {
	body := &openapi.RoomCreate{
		Name: name,
	}

	return c.doRequest(ctx, http.MethodPost, c.endpoints.Rooms(), body)
}

func (c *APIClient) GetRooms(ctx context.Context) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.Rooms(), nil)
}

func (c *APIClient) UpdateRoom(ctx context.Context, roomID string, update *openapi.RoomUpdate) (*Response, error) {
	return c.doRequest(ctx, http.MethodPut, c.endpoints.Room(roomID), update)
}

func (c *APIClient) DeleteRoom(ctx context.Context, roomID string) (*Response, error) {
	return c.doRequest(ctx, http.MethodDelete, c.endpoints.Room(roomID), nil)
}

func (c *APIClient) GetRoomAvailability(ctx context.Context) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.RoomAvailability(), nil)
}

// Reservation operations.

func (c *APIClient) CreateReservation(ctx context.Context, reservation *openapi.ReservationCreate) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost, c.endpoints.Reservations(), reservation)
}

func (c *APIClient) GetReservations(ctx context.Context) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.Reservations(), nil)
}

func (c *APIClient) Checkout(ctx context.Context, reservationID string) (*Response, error) {
	return c.doRequest(ctx, http.MethodPut, c.endpoints.Checkout(reservationID), nil)
}

// Inventory operations.

func (c *APIClient) CreateProductStock(ctx context.Context, stock *openapi.ProductStockCreate) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost, c.endpoints.Inventory(), stock)
}

func (c *APIClient) GetInventory(ctx context.Context) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.Inventory(), nil)
}

func (c *APIClient) UpdateProductStock(ctx context.Context, stockID string, update *openapi.ProductStockUpdate) (*Response, error) {
	return c.doRequest(ctx, http.MethodPut, c.endpoints.ProductStock(stockID), update)
}

func (c *APIClient) DeleteProductStock(ctx context.Context, stockID string) (*Response, error) {
	return c.doRequest(ctx, http.MethodDelete, c.endpoints.ProductStock(stockID), nil)
}

// Report operations.

func (c *APIClient) CreatePurchaseReport(ctx context.Context, report *openapi.PurchaseReportCreate) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost, c.endpoints.PurchaseReports(), report)
}

func (c *APIClient) GetPurchaseReports(ctx context.Context) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.PurchaseReports(), nil)
}

func (c *APIClient) CreateUsageReport(ctx context.Context, report *openapi.UsageReportCreate) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost, c.endpoints.UsageReports(), report)
}

func (c *APIClient) GetUsageReports(ctx context.Context) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.UsageReports(), nil)
}

// Post sends an arbitrary body, used to exercise malformed payloads.
func (c *APIClient) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost, path, body)
}

// Typed helpers, these expect success and decode the result.

func (c *APIClient) createID(resp *Response, err error, action string) (string, error) {
	if err != nil {
		return "", fmt.Errorf("%s: %w", action, err)
	}

	if err := c.expectStatus(resp, http.StatusOK); err != nil {
		return "", fmt.Errorf("%s: %w", action, err)
	}

	id, err := resp.ID()
	if err != nil {
		return "", fmt.Errorf("%s: %w", action, err)
	}

	return id, nil
}

func decodeResponse[T any](c *APIClient, resp *Response, err error, expectedStatus int, action string) (T, error) {
	var result T

	if err != nil {
		return result, fmt.Errorf("%s: %w", action, err)
	}

	if err := c.expectStatus(resp, expectedStatus); err != nil {
		return result, fmt.Errorf("%s: %w", action, err)
	}

	if err := resp.JSON(&result); err != nil {
		return result, fmt.Errorf("%s: %w", action, err)
	}

	return result, nil
}

// CreateGuestID creates a guest and returns its identifier.
func (c *APIClient) CreateGuestID(ctx context.Context, guest *openapi.GuestCreate) (string, error) {
	resp, err := c.CreateGuest(ctx, guest)

	return c.createID(resp, err, "creating guest")
}

func (c *APIClient) CreateRoomPropertyGroupID(ctx context.Context, name string) (string, error) {
	resp, err := c.CreateRoomPropertyGroup(ctx, name)

	return c.createID(resp, err, "creating room property group")
}

// SetRoomProperties replaces a group's properties and returns their identifiers by name.
func (c *APIClient) SetRoomProperties(ctx context.Context, groupID string, update *openapi.RoomPropertyGroupUpdate) (map[string]string, error) {
	resp, err := c.UpdateRoomPropertyGroup(ctx, groupID, update)

	return decodeResponse[map[string]string](c, resp, err, http.StatusOK, "updating room property group")
}

func (c *APIClient) CreateRoomID(ctx context.Context, name string) (string, error) {
	resp, err := c.CreateRoom(ctx, name)

	return c.createID(resp, err, "creating room")
}

func (c *APIClient) AssignRoomProperties(ctx context.Context, roomID string, update *openapi.RoomUpdate) error {
	resp, err := c.UpdateRoom(ctx, roomID, update)
	if err != nil {
		return fmt.Errorf("updating room: %w", err)
	}

	if err := c.expectStatus(resp, http.StatusNoContent); err != nil {
		return fmt.Errorf("updating room: %w", err)
	}

	return nil
}

func (c *APIClient) CreateReservationID(ctx context.Context, reservation *openapi.ReservationCreate) (string, error) {
	resp, err := c.CreateReservation(ctx, reservation)

	return c.createID(resp, err, "creating reservation")
}

func (c *APIClient) CreateProductStockIDs(ctx context.Context, stock *openapi.ProductStockCreate) (*openapi.CreateProductStockResult, error) {
	resp, err := c.CreateProductStock(ctx, stock)

	return decodeResponse[*openapi.CreateProductStockResult](c, resp, err, http.StatusOK, "creating product stock")
}

func (c *APIClient) CreatePurchaseReportID(ctx context.Context, report *openapi.PurchaseReportCreate) (string, error) {
	resp, err := c.CreatePurchaseReport(ctx, report)

	return c.createID(resp, err, "creating purchase report")
}

func (c *APIClient) CreateUsageReportID(ctx context.Context, report *openapi.UsageReportCreate) (string, error) {
	resp, err := c.CreateUsageReport(ctx, report)

	return c.createID(resp, err, "creating usage report")
}

func (c *APIClient) CurrentUser(ctx context.Context) (*openapi.UserInfo, error) {
	resp, err := c.GetUserInfo(ctx)

	return decodeResponse[*openapi.UserInfo](c, resp, err, http.StatusOK, "reading user info")
}

func (c *APIClient) ListGuests(ctx context.Context) ([]openapi.Guest, error) {
	resp, err := c.GetGuests(ctx)

	return decodeResponse[[]openapi.Guest](c, resp, err, http.StatusOK, "listing guests")
}

func (c *APIClient) ListRoomAvailability(ctx context.Context) ([]openapi.RoomAvailability, error) {
	resp, err := c.GetRoomAvailability(ctx)

	return decodeResponse[[]openapi.RoomAvailability](c, resp, err, http.StatusOK, "listing room availability")
}

func (c *APIClient) ListInventory(ctx context.Context) ([]openapi.ProductStock, error) {
	resp, err := c.GetInventory(ctx)

	return decodeResponse[[]openapi.ProductStock](c, resp, err, http.StatusOK, "listing inventory")
}

func (c *APIClient) ListPurchaseReports(ctx context.Context) ([]openapi.PurchaseReport, error) {
	resp, err := c.GetPurchaseReports(ctx)

	return decodeResponse[[]openapi.PurchaseReport](c, resp, err, http.StatusOK, "listing purchase reports")
}

func (c *APIClient) ListUsageReports(ctx context.Context) ([]openapi.UsageReport, error) {
	resp, err := c.GetUsageReports(ctx)

	return decodeResponse[[]openapi.UsageReport](c, resp, err, http.StatusOK, "listing usage reports")
}
