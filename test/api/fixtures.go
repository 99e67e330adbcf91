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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mrhotel/api-tests/pkg/openapi"
)

// RoomFixture is a room with one property from a dedicated group assigned.
type RoomFixture struct {
	GroupID    string
	PropertyID string
	RoomID     string
}

// CreateRoomWithProperty creates a property group with a single property and
// a room that uses it.  Nothing is cleaned up afterwards, the server keeps
// the data for inspection.
func CreateRoomWithProperty(ctx context.Context, client *APIClient, groupName, propertyName, roomName string) *RoomFixture {
	groupID, err := client.CreateRoomPropertyGroupID(ctx, groupName)
	Expect(err).NotTo(HaveOccurred())

	properties, err := client.SetRoomProperties(ctx, groupID, &openapi.RoomPropertyGroupUpdate{
		Name: groupName,
		Properties: []openapi.RoomPropertyCreate{
			{Name: propertyName},
		},
	})
	Expect(err).NotTo(HaveOccurred())
	Expect(properties).To(HaveKey(propertyName))

	roomID, err := client.CreateRoomID(ctx, roomName)
	Expect(err).NotTo(HaveOccurred())

	err = client.AssignRoomProperties(ctx, roomID, &openapi.RoomUpdate{
		Name:          roomName,
		PropertiesIDs: []string{properties[propertyName]},
	})
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Created room %s (%s) with property %s from group %s\n", roomName, roomID, properties[propertyName], groupID)

	fixture := &RoomFixture{
		GroupID:    groupID,
		PropertyID: properties[propertyName],
		RoomID:     roomID,
	}

	return fixture
}

// Find returns the first item matching the predicate, or nil.
func Find[T any](items []T, match func(*T) bool) *T {
	for i := range items {
		if match(&items[i]) {
			return &items[i]
		}
	}

	return nil
}

func FindAvailability(availability []openapi.RoomAvailability, roomID string) *openapi.RoomAvailability {
	return Find(availability, func(a *openapi.RoomAvailability) bool {
		return a.Room.ID == roomID
	})
}

func FindStock(inventory []openapi.ProductStock, stockID string) *openapi.ProductStock {
	return Find(inventory, func(s *openapi.ProductStock) bool {
		return s.ID == stockID
	})
}

func FindStockByProduct(inventory []openapi.ProductStock, productID string) *openapi.ProductStock {
	return Find(inventory, func(s *openapi.ProductStock) bool {
		return s.Product.ID == productID
	})
}

func FindPurchaseReport(reports []openapi.PurchaseReport, reportID string) *openapi.PurchaseReport {
	return Find(reports, func(r *openapi.PurchaseReport) bool {
		return r.ID == reportID
	})
}

func FindUsageReport(reports []openapi.UsageReport, reportID string) *openapi.UsageReport {
	return Find(reports, func(r *openapi.UsageReport) bool {
		return r.ID == reportID
	})
}

// LogResponseTime records how long a test step took.
func LogResponseTime(start time.Time) {
	GinkgoWriter.Printf("Response time: %dms\n", time.Since(start).Milliseconds())
}
