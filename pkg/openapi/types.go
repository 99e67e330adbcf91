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

package openapi

import (
	"fmt"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// RoomState is the occupancy state reported by the availability endpoint.
type RoomState int

const (
	RoomStateAvailable RoomState = iota
	RoomStateOccupied
	RoomStateReserved
	RoomStateMaintenance
)

func (s RoomState) String() string {
	switch s {
	case RoomStateAvailable:
		return "Available"
	case RoomStateOccupied:
		return "Occupied"
	case RoomStateReserved:
		return "Reserved"
	case RoomStateMaintenance:
		return "Maintenance"
	}

	return fmt.Sprintf("RoomState(%d)", int(s))
}

// LoginRequest is the body of the login and register endpoints.
type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// RegisterAdminRequest registers the first administrator.
type RegisterAdminRequest struct {
	UserName  string `json:"userName"`
	Password  string `json:"password"`
	AdminCode string `json:"adminCode"`
}

// UserInfo describes the authenticated user.
type UserInfo struct {
	UserName string `json:"userName"`
	IsAdmin  bool   `json:"isAdmin"`
}

// ValidationProblem is the problem details document returned on 400.
type ValidationProblem struct {
	Type   string              `json:"type,omitempty"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors,omitempty"`
}

type GuestCreate struct {
	FullName    string             `json:"fullName"`
	PhoneNumber string             `json:"phoneNumber"`
	DateOfBirth openapi_types.Date `json:"dateOfBirth"`
}

// GuestUpdate carries optional fields, unset fields are left unchanged.
type GuestUpdate struct {
	FullName    *string             `json:"fullName,omitempty"`
	PhoneNumber *string             `json:"phoneNumber,omitempty"`
	DateOfBirth *openapi_types.Date `json:"dateOfBirth,omitempty"`
}

type Guest struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	DateOfBirth string `json:"dateOfBirth"`
}

type RoomProperty struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoomPropertyCreate struct {
	Name string `json:"name"`
}

type RoomPropertyGroupCreate struct {
	Name string `json:"name"`
}

type RoomPropertyGroupUpdate struct {
	Name       string               `json:"name"`
	Properties []RoomPropertyCreate `json:"properties"`
}

type RoomPropertyGroup struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Properties []RoomProperty `json:"properties"`
}

type RoomCreate struct {
	Name string `json:"name"`
}

type RoomUpdate struct {
	Name          string   `json:"name"`
	PropertiesIDs []string `json:"propertiesIds"`
}

type Room struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Properties []RoomProperty `json:"properties"`
}

type ReservationCreate struct {
	GuestID      string    `json:"guestId"`
	RoomID       string    `json:"roomId"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	Price        float64   `json:"price"`
}

type Reservation struct {
	ID           string    `json:"id"`
	GuestID      string    `json:"guestId"`
	RoomID       string    `json:"roomId"`
	CheckInDate  Timestamp `json:"checkInDate"`
	CheckOutDate Timestamp `json:"checkOutDate"`
	Price        float64   `json:"price"`
	CheckOutDone bool      `json:"checkOutDone"`
}

// RoomAvailability is one entry of the availability board.
type RoomAvailability struct {
	Room              Room         `json:"room"`
	State             RoomState    `json:"state"`
	ActiveReservation *Reservation `json:"activeReservation"`
}

type ProductStockCreate struct {
	ProductName   string `json:"productName"`
	StockQuantity int    `json:"stockQuantity"`
	IdealQuantity int    `json:"idealQuantity"`
}

// ProductStockUpdate carries optional fields, unset fields are left unchanged.
type ProductStockUpdate struct {
	Name          *string `json:"name,omitempty"`
	StockQuantity *int    `json:"stockQuantity,omitempty"`
	IdealQuantity *int    `json:"idealQuantity,omitempty"`
}

// CreateProductStockResult identifies both the stock entry and its product.
type CreateProductStockResult struct {
	StockID   string `json:"stockId"`
	ProductID string `json:"productId"`
}

type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProductStock struct {
	ID            string  `json:"id"`
	Product       Product `json:"product"`
	StockQuantity int     `json:"stockQuantity"`
	IdealQuantity int     `json:"idealQuantity"`
}

// RestockNeeded returns how many units are missing to reach the ideal quantity.
func (s *ProductStock) RestockNeeded() int {
	if s.StockQuantity >= s.IdealQuantity {
		return 0
	}

	return s.IdealQuantity - s.StockQuantity
}

type StockAdjustmentData struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type StockAdjustment struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Quantity    int    `json:"quantity"`
}

type PurchaseReportCreate struct {
	StockAdjustmentData []StockAdjustmentData `json:"stockAdjustmentData"`
	Price               float64               `json:"price"`
}

type UsageReportCreate struct {
	StockAdjustmentData []StockAdjustmentData `json:"stockAdjustmentData"`
	Concept             string                `json:"concept"`
}

type PurchaseReport struct {
	ID               string            `json:"id"`
	RegistrationDate Timestamp         `json:"registrationDate"`
	Price            float64           `json:"price"`
	StockAdjustments []StockAdjustment `json:"stockAdjustments"`
}

type UsageReport struct {
	ID               string            `json:"id"`
	RegistrationDate Timestamp         `json:"registrationDate"`
	Concept          string            `json:"concept"`
	StockAdjustments []StockAdjustment `json:"stockAdjustments"`
}
