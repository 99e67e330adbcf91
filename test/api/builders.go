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
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/mrhotel/api-tests/pkg/openapi"
)

func generateRandomName(prefix string) string {
	bytes := make([]byte, 4) // 8 hex characters
	_, _ = rand.Read(bytes)

	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(bytes))
}

// UniqueName suffixes a human readable name so repeated runs against the
// same server never collide.
func UniqueName(name string) string {
	return generateRandomName(name)
}

// Date truncates a time to a calendar date.
func Date(t time.Time) openapi_types.Date {
	return openapi_types.Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// GuestPayloadBuilder builds guest payloads for testing.
type GuestPayloadBuilder struct {
	payload openapi.GuestCreate
}

// NewGuestPayload creates a guest born on 15 May 1990.
func NewGuestPayload() *GuestPayloadBuilder {
	return &GuestPayloadBuilder{
		payload: openapi.GuestCreate{
			FullName:    "Juan Pérez García",
			PhoneNumber: "52-999-123-4567",
			DateOfBirth: Date(time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC)),
		},
	}
}

func (b *GuestPayloadBuilder) WithFullName(name string) *GuestPayloadBuilder {
	b.payload.FullName = name
	return b
}

func (b *GuestPayloadBuilder) WithPhoneNumber(phone string) *GuestPayloadBuilder {
	b.payload.PhoneNumber = phone
	return b
}

func (b *GuestPayloadBuilder) WithDateOfBirth(t time.Time) *GuestPayloadBuilder {
	b.payload.DateOfBirth = Date(t)
	return b
}

// Build returns the completed guest payload.
func (b *GuestPayloadBuilder) Build() *openapi.GuestCreate {
	payload := b.payload
	return &payload
}

// ReservationPayloadBuilder builds reservation payloads for testing.
type ReservationPayloadBuilder struct {
	payload openapi.ReservationCreate
}

// NewReservationPayload creates a three night stay starting tomorrow.
func NewReservationPayload(guestID, roomID string) *ReservationPayloadBuilder {
	checkIn := time.Now().UTC().Add(24 * time.Hour)

	return &ReservationPayloadBuilder{
		payload: openapi.ReservationCreate{
			GuestID:      guestID,
			RoomID:       roomID,
			CheckInDate:  checkIn,
			CheckOutDate: checkIn.Add(3 * 24 * time.Hour),
			Price:        1500,
		},
	}
}

func (b *ReservationPayloadBuilder) WithDates(checkIn, checkOut time.Time) *ReservationPayloadBuilder {
	b.payload.CheckInDate = checkIn
	b.payload.CheckOutDate = checkOut

	return b
}

func (b *ReservationPayloadBuilder) WithPrice(price float64) *ReservationPayloadBuilder {
	b.payload.Price = price
	return b
}

func (b *ReservationPayloadBuilder) Build() *openapi.ReservationCreate {
	payload := b.payload
	return &payload
}

// ProductStockPayloadBuilder builds inventory payloads for testing.
type ProductStockPayloadBuilder struct {
	payload openapi.ProductStockCreate
}

// NewProductStockPayload creates a uniquely named product.
func NewProductStockPayload(name string, stock, ideal int) *ProductStockPayloadBuilder {
	return &ProductStockPayloadBuilder{
		payload: openapi.ProductStockCreate{
			ProductName:   UniqueName(name),
			StockQuantity: stock,
			IdealQuantity: ideal,
		},
	}
}

// WithExactName disables the unique suffix.
func (b *ProductStockPayloadBuilder) WithExactName(name string) *ProductStockPayloadBuilder {
	b.payload.ProductName = name
	return b
}

func (b *ProductStockPayloadBuilder) Build() *openapi.ProductStockCreate {
	payload := b.payload
	return &payload
}

// StockAdjustmentsBuilder collects product quantity changes for reports.
type StockAdjustmentsBuilder struct {
	adjustments []openapi.StockAdjustmentData
}

func NewStockAdjustments() *StockAdjustmentsBuilder {
	return &StockAdjustmentsBuilder{}
}

func (b *StockAdjustmentsBuilder) With(productID string, quantity int) *StockAdjustmentsBuilder {
	b.adjustments = append(b.adjustments, openapi.StockAdjustmentData{
		ProductID: productID,
		Quantity:  quantity,
	})

	return b
}

func (b *StockAdjustmentsBuilder) Purchase(price float64) *openapi.PurchaseReportCreate {
	return &openapi.PurchaseReportCreate{
		StockAdjustmentData: b.adjustments,
		Price:               price,
	}
}

func (b *StockAdjustmentsBuilder) Usage(concept string) *openapi.UsageReportCreate {
	return &openapi.UsageReportCreate{
		StockAdjustmentData: b.adjustments,
		Concept:             concept,
	}
}
