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
	"fmt"
	"net/url"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Account endpoints.
func (e *Endpoints) AdminRegisterStatus() string {
	return "/api/account/admin-register-status"
}

func (e *Endpoints) RegisterAdmin() string {
	return "/api/account/register-admin"
}

func (e *Endpoints) Register() string {
	return "/api/account/register"
}

func (e *Endpoints) Login() string {
	return "/api/account/login"
}

func (e *Endpoints) Logout() string {
	return "/api/account/logout"
}

func (e *Endpoints) UserInfo() string {
	return "/api/account/manage/info"
}

// Guest endpoints.
func (e *Endpoints) Guests() string {
	return "/api/guests"
}

func (e *Endpoints) Guest(guestID string) string {
	return fmt.Sprintf("/api/guests/%s", url.PathEscape(guestID))
}

// Room property group endpoints.
func (e *Endpoints) RoomPropertyGroups() string {
	return "/api/room-property-groups"
}

func (e *Endpoints) RoomPropertyGroup(groupID string) string {
	return fmt.Sprintf("/api/room-property-groups/%s", url.PathEscape(groupID))
}

// Room endpoints.
func (e *Endpoints) Rooms() string {
	return "/api/rooms"
}

func (e *Endpoints) Room(roomID string) string {
	return fmt.Sprintf("/api/rooms/%s", url.PathEscape(roomID))
}

func (e *Endpoints) RoomAvailability() string {
	return "/api/rooms/availability"
}

// Reservation endpoints.
func (e *Endpoints) Reservations() string {
	return "/api/reservations"
}

func (e *Endpoints) Checkout(reservationID string) string {
	return fmt.Sprintf("/api/reservations/%s/checkout", url.PathEscape(reservationID))
}

// Inventory endpoints.
func (e *Endpoints) Inventory() string {
	return "/api/inventory"
}

func (e *Endpoints) ProductStock(stockID string) string {
	return fmt.Sprintf("/api/inventory/%s", url.PathEscape(stockID))
}

// Report endpoints.
func (e *Endpoints) PurchaseReports() string {
	return "/api/reports/purchases"
}

func (e *Endpoints) UsageReports() string {
	return "/api/reports/usages"
}
