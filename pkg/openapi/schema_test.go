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

package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mrhotel/api-tests/pkg/openapi"
)

func jsonHeader() http.Header {
	header := http.Header{}
	header.Set("Content-Type", "application/json")

	return header
}

// TestSchemaLoads ensures the embedded document is a valid OpenAPI document.
func TestSchemaLoads(t *testing.T) {
	t.Parallel()

	schema, err := openapi.NewSchema()
	require.NoError(t, err)
	require.NotNil(t, schema.Document().Paths.Find("/api/inventory"))
}

// TestValidateInventoryResponse ensures conforming stock listings pass and
// malformed ones are reported.
func TestValidateInventoryResponse(t *testing.T) {
	t.Parallel()

	schema, err := openapi.NewSchema()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "http://hotel.test/api/inventory", nil)

	good, err := json.Marshal([]openapi.ProductStock{
		{
			ID:            "5a2b4a53-2a44-4d8e-9f0e-3a9a4ea9c2f1",
			Product:       openapi.Product{ID: "8d1e1d8e-3b0c-4a55-8c4e-1f6a2a7a4a10", Name: "Bath Towels"},
			StockQuantity: 50,
			IdealQuantity: 100,
		},
	})
	require.NoError(t, err)

	require.NoError(t, schema.ValidateResponse(t.Context(), req, http.StatusOK, jsonHeader(), good))

	bad := []byte(`[{"id":"5a2b4a53-2a44-4d8e-9f0e-3a9a4ea9c2f1","stockQuantity":"many"}]`)

	require.Error(t, schema.ValidateResponse(t.Context(), req, http.StatusOK, jsonHeader(), bad))
}

// TestValidateCreateResponse ensures create operations must answer with an identifier.
func TestValidateCreateResponse(t *testing.T) {
	t.Parallel()

	schema, err := openapi.NewSchema()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "http://hotel.test/api/guests", nil)

	require.NoError(t, schema.ValidateResponse(t.Context(), req, http.StatusOK, jsonHeader(), []byte(`"5a2b4a53-2a44-4d8e-9f0e-3a9a4ea9c2f1"`)))
	require.Error(t, schema.ValidateResponse(t.Context(), req, http.StatusOK, jsonHeader(), []byte(`{"id":42}`)))
}

// TestValidateUndocumentedStatus ensures statuses outside the contract are rejected.
func TestValidateUndocumentedStatus(t *testing.T) {
	t.Parallel()

	schema, err := openapi.NewSchema()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "http://hotel.test/api/guests/5a2b4a53-2a44-4d8e-9f0e-3a9a4ea9c2f1", nil)

	require.NoError(t, schema.ValidateResponse(t.Context(), req, http.StatusNoContent, http.Header{}, nil))
	require.Error(t, schema.ValidateResponse(t.Context(), req, http.StatusAccepted, http.Header{}, nil))
}

// TestResourceID ensures only UUIDs are accepted as identifiers.
func TestResourceID(t *testing.T) {
	t.Parallel()

	var id openapi.ResourceID

	require.NoError(t, id.UnmarshalText([]byte(openapi.NilResourceID)))
	require.Equal(t, openapi.NilResourceID, id.String())
	require.ErrorIs(t, id.UnmarshalText([]byte("room-101")), openapi.ErrInvalidResourceID)
}

// TestTimestamp ensures date times with and without a zone are accepted
// wherever the API returns them.
func TestTimestamp(t *testing.T) {
	t.Parallel()

	var availability []openapi.RoomAvailability

	require.NoError(t, json.Unmarshal([]byte(`[{
		"room": {"id": "5a2b4a53-2a44-4d8e-9f0e-3a9a4ea9c2f1", "name": "101", "properties": []},
		"state": 2,
		"activeReservation": {
			"id": "8d1e1d8e-3b0c-4a55-8c4e-1f6a2a7a4a10",
			"checkInDate": "2026-10-18T10:00:00",
			"checkOutDate": "2026-10-21T10:00:00+02:00",
			"checkOutDone": false
		}
	}]`), &availability))
	require.Len(t, availability, 1)
	require.WithinDuration(t, time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC), availability[0].ActiveReservation.CheckInDate.Time, 0)
	require.WithinDuration(t, time.Date(2026, time.October, 21, 8, 0, 0, 0, time.UTC), availability[0].ActiveReservation.CheckOutDate.Time, 0)

	var report openapi.PurchaseReport

	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","registrationDate":"2026-10-17T12:34:56.1234567","price":1250.5}`), &report))
	require.WithinDuration(t, time.Date(2026, time.October, 17, 12, 34, 56, 123456700, time.UTC), report.RegistrationDate.Time, 0)

	var usage openapi.UsageReport

	require.Error(t, json.Unmarshal([]byte(`{"registrationDate":"yesterday"}`), &usage))
	require.Error(t, json.Unmarshal([]byte(`{"registrationDate":42}`), &usage))

	data, err := json.Marshal(openapi.NewTimestamp(time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.JSONEq(t, `"2026-10-17T12:00:00Z"`, string(data))
}

// TestRestockNeeded ensures the restock shortfall never goes negative.
func TestRestockNeeded(t *testing.T) {
	t.Parallel()

	stock := &openapi.ProductStock{StockQuantity: 80, IdealQuantity: 120}
	require.Equal(t, 40, stock.RestockNeeded())

	stock.StockQuantity = 130
	require.Equal(t, 0, stock.RestockNeeded())
}
