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

package fake

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/spjmurray/go-util/pkg/set"

	"github.com/mrhotel/api-tests/pkg/openapi"
)

const minPasswordLength = 6

// table keeps items in insertion order so listings are stable.
type table[T any] struct {
	order []string
	items map[string]*T
}

func newTable[T any]() *table[T] {
	return &table[T]{
		items: map[string]*T{},
	}
}

func (t *table[T]) add(id string, item *T) {
	t.order = append(t.order, id)
	t.items[id] = item
}

func (t *table[T]) get(id string) (*T, bool) {
	item, ok := t.items[id]

	return item, ok
}

func (t *table[T]) remove(id string) {
	delete(t.items, id)

	if i := slices.Index(t.order, id); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
}

func (t *table[T]) list() []*T {
	out := make([]*T, 0, len(t.order))

	for _, id := range t.order {
		out = append(out, t.items[id])
	}

	return out
}

// validator accumulates field errors into a single validation problem.
type validator struct {
	err *Error
}

func (v *validator) check(ok bool, field, message string) {
	if ok {
		return
	}

	if v.err == nil {
		v.err = HTTPValidationError(field, message)
		return
	}

	v.err.WithField(field, message)
}

func (v *validator) result() error {
	if v.err == nil {
		return nil
	}

	return v.err
}

type user struct {
	name     string
	password string
	admin    bool
}

type propertyGroup struct {
	id         string
	name       string
	properties []string
}

type room struct {
	id         string
	name       string
	properties []string
}

// Store is the in-memory state of the hotel.
type Store struct {
	lock sync.Mutex

	now func() time.Time

	users        map[string]*user
	revoked      map[string]struct{}
	guests       *table[openapi.Guest]
	groups       *table[propertyGroup]
	properties   *table[openapi.RoomProperty]
	rooms        *table[room]
	reservations *table[openapi.Reservation]
	stocks       *table[openapi.ProductStock]
	purchases    *table[openapi.PurchaseReport]
	usages       *table[openapi.UsageReport]
}

// NewStore returns an empty hotel, now defaults to the wall clock.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}

	return &Store{
		now:          now,
		users:        map[string]*user{},
		revoked:      map[string]struct{}{},
		guests:       newTable[openapi.Guest](),
		groups:       newTable[propertyGroup](),
		properties:   newTable[openapi.RoomProperty](),
		rooms:        newTable[room](),
		reservations: newTable[openapi.Reservation](),
		stocks:       newTable[openapi.ProductStock](),
		purchases:    newTable[openapi.PurchaseReport](),
		usages:       newTable[openapi.UsageReport](),
	}
}

func (s *Store) adminExists() bool {
	for _, u := range s.users {
		if u.admin {
			return true
		}
	}

	return false
}

// AdminRegistrationAllowed is true until the first administrator registers.
func (s *Store) AdminRegistrationAllowed() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return !s.adminExists()
}

func (s *Store) validateCredentials(v *validator, request *openapi.LoginRequest) {
	v.check(request.UserName != "", "UserName", "The UserName field is required.")
	v.check(request.Password != "", "Password", "The Password field is required.")

	if request.Password != "" {
		v.check(len(request.Password) >= minPasswordLength, "PasswordTooShort", fmt.Sprintf("Passwords must be at least %d characters.", minPasswordLength))
	}

	if request.UserName != "" {
		_, exists := s.users[request.UserName]
		v.check(!exists, "DuplicateUserName", fmt.Sprintf("Username '%s' is already taken.", request.UserName))
	}
}

func (s *Store) Register(request *openapi.LoginRequest) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	v := &validator{}
	s.validateCredentials(v, request)

	if err := v.result(); err != nil {
		return err
	}

	s.users[request.UserName] = &user{
		name:     request.UserName,
		password: request.Password,
	}

	return nil
}

// RegisterAdmin creates the one and only administrator.
func (s *Store) RegisterAdmin(request *openapi.RegisterAdminRequest, adminCode string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.adminExists() {
		return HTTPBadRequest("An administrator is already registered.")
	}

	v := &validator{}
	s.validateCredentials(v, &openapi.LoginRequest{UserName: request.UserName, Password: request.Password})
	v.check(request.AdminCode == adminCode, "AdminCode", "Invalid admin code.")

	if err := v.result(); err != nil {
		return err
	}

	s.users[request.UserName] = &user{
		name:     request.UserName,
		password: request.Password,
		admin:    true,
	}

	return nil
}

// Authenticate checks a login request, missing fields are a validation
// problem while wrong credentials are unauthorized.
func (s *Store) Authenticate(request *openapi.LoginRequest) (*openapi.UserInfo, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	v := &validator{}
	v.check(request.UserName != "", "UserName", "The UserName field is required.")
	v.check(request.Password != "", "Password", "The Password field is required.")

	if err := v.result(); err != nil {
		return nil, err
	}

	u, ok := s.users[request.UserName]
	if !ok || u.password != request.Password {
		return nil, HTTPUnauthorized()
	}

	info := &openapi.UserInfo{
		UserName: u.name,
		IsAdmin:  u.admin,
	}

	return info, nil
}

func (s *Store) UserInfo(name string) (*openapi.UserInfo, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	u, ok := s.users[name]
	if !ok {
		return nil, HTTPUnauthorized()
	}

	info := &openapi.UserInfo{
		UserName: u.name,
		IsAdmin:  u.admin,
	}

	return info, nil
}

func (s *Store) Revoke(sessionID string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.revoked[sessionID] = struct{}{}
}

func (s *Store) Revoked(sessionID string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, ok := s.revoked[sessionID]

	return ok
}

func (s *Store) today() time.Time {
	now := s.now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Store) validateDateOfBirth(v *validator, date openapi_types.Date) {
	if date.IsZero() {
		v.check(false, "DateOfBirth", "The DateOfBirth field is required.")
		return
	}

	v.check(!date.After(s.today()), "DateOfBirth", "Date of birth cannot be in the future.")
}

func (s *Store) CreateGuest(request *openapi.GuestCreate) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	v := &validator{}
	v.check(request.FullName != "", "FullName", "The FullName field is required.")
	s.validateDateOfBirth(v, request.DateOfBirth)

	if err := v.result(); err != nil {
		return "", err
	}

	id := uuid.NewString()

	s.guests.add(id, &openapi.Guest{
		ID:          id,
		FullName:    request.FullName,
		PhoneNumber: request.PhoneNumber,
		DateOfBirth: request.DateOfBirth.Format(openapi_types.DateFormat),
	})

	return id, nil
}

func (s *Store) Guests() []openapi.Guest {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]openapi.Guest, 0, len(s.guests.order))

	for _, g := range s.guests.list() {
		out = append(out, *g)
	}

	return out
}

// LookupGuest reports whether the guest exists.
func (s *Store) LookupGuest(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.guests.get(id); !ok {
		return HTTPNotFound("guest", id)
	}

	return nil
}

func (s *Store) UpdateGuest(id string, request *openapi.GuestUpdate) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	g, ok := s.guests.get(id)
	if !ok {
		return HTTPNotFound("guest", id)
	}

	v := &validator{}

	if request.FullName != nil {
		v.check(*request.FullName != "", "FullName", "The FullName field is required.")
	}

	if request.DateOfBirth != nil {
		s.validateDateOfBirth(v, *request.DateOfBirth)
	}

	if err := v.result(); err != nil {
		return err
	}

	if request.FullName != nil {
		g.FullName = *request.FullName
	}

	if request.PhoneNumber != nil {
		g.PhoneNumber = *request.PhoneNumber
	}

	if request.DateOfBirth != nil {
		g.DateOfBirth = request.DateOfBirth.Format(openapi_types.DateFormat)
	}

	return nil
}

func (s *Store) DeleteGuest(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.guests.get(id); !ok {
		return HTTPNotFound("guest", id)
	}

	for _, r := range s.reservations.list() {
		if r.GuestID == id && !r.CheckOutDone {
			return HTTPConflict(fmt.Sprintf("guest %s has an open reservation", id))
		}
	}

	s.guests.remove(id)

	return nil
}

func members(s set.Set[string]) []string {
	var out []string

	for member := range s.All() {
		out = append(out, member)
	}

	slices.Sort(out)

	return out
}

// assignedProperties is every property referenced by a room.
func (s *Store) assignedProperties() set.Set[string] {
	var ids []string

	for _, r := range s.rooms.list() {
		ids = append(ids, r.properties...)
	}

	return set.New[string](ids...)
}

func (s *Store) renderGroup(g *propertyGroup) openapi.RoomPropertyGroup {
	out := openapi.RoomPropertyGroup{
		ID:         g.id,
		Name:       g.name,
		Properties: []openapi.RoomProperty{},
	}

	for _, id := range g.properties {
		if p, ok := s.properties.get(id); ok {
			out.Properties = append(out.Properties, *p)
		}
	}

	return out
}

func (s *Store) CreatePropertyGroup(request *openapi.RoomPropertyGroupCreate) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if request.Name == "" {
		return "", HTTPValidationError("Name", "The Name field is required.")
	}

	id := uuid.NewString()

	s.groups.add(id, &propertyGroup{
		id:   id,
		name: request.Name,
	})

	return id, nil
}

func (s *Store) PropertyGroups() []openapi.RoomPropertyGroup {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]openapi.RoomPropertyGroup, 0, len(s.groups.order))

	for _, g := range s.groups.list() {
		out = append(out, s.renderGroup(g))
	}

	return out
}

func (s *Store) LookupPropertyGroup(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.groups.get(id); !ok {
		return HTTPNotFound("room property group", id)
	}

	return nil
}

// UpdatePropertyGroup replaces the group's properties, those whose names are
// kept retain their identifiers.  The result maps property names to IDs.
func (s *Store) UpdatePropertyGroup(id string, request *openapi.RoomPropertyGroupUpdate) (map[string]string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	g, ok := s.groups.get(id)
	if !ok {
		return nil, HTTPNotFound("room property group", id)
	}

	v := &validator{}
	v.check(request.Name != "", "Name", "The Name field is required.")

	requested := make([]string, 0, len(request.Properties))

	for i, p := range request.Properties {
		field := fmt.Sprintf("Properties[%d].Name", i)

		v.check(p.Name != "", field, "The Name field is required.")
		v.check(!slices.Contains(requested, p.Name), field, fmt.Sprintf("Duplicate property name '%s'.", p.Name))

		requested = append(requested, p.Name)
	}

	if err := v.result(); err != nil {
		return nil, err
	}

	current := map[string]string{}

	for _, propertyID := range g.properties {
		if p, ok := s.properties.get(propertyID); ok {
			current[p.Name] = p.ID
		}
	}

	var removedIDs []string

	for name := range set.New[string](slices.Collect(maps.Keys(current))...).Difference(set.New[string](requested...)).All() {
		removedIDs = append(removedIDs, current[name])
	}

	if inUse := members(set.New[string](removedIDs...).Intersection(s.assignedProperties())); len(inUse) > 0 {
		return nil, HTTPConflict(fmt.Sprintf("room property %s is assigned to a room", inUse[0]))
	}

	for _, propertyID := range removedIDs {
		s.properties.remove(propertyID)
	}

	result := make(map[string]string, len(requested))
	properties := make([]string, 0, len(requested))

	for _, name := range requested {
		propertyID, ok := current[name]
		if !ok {
			propertyID = uuid.NewString()

			s.properties.add(propertyID, &openapi.RoomProperty{
				ID:   propertyID,
				Name: name,
			})
		}

		result[name] = propertyID
		properties = append(properties, propertyID)
	}

	g.name = request.Name
	g.properties = properties

	return result, nil
}

func (s *Store) DeletePropertyGroup(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	g, ok := s.groups.get(id)
	if !ok {
		return HTTPNotFound("room property group", id)
	}

	if inUse := members(set.New[string](g.properties...).Intersection(s.assignedProperties())); len(inUse) > 0 {
		return HTTPConflict(fmt.Sprintf("room property %s of group %s is assigned to a room", inUse[0], id))
	}

	for _, propertyID := range g.properties {
		s.properties.remove(propertyID)
	}

	s.groups.remove(id)

	return nil
}

func (s *Store) roomNameTaken(name, except string) bool {
	for _, r := range s.rooms.list() {
		if r.name == name && r.id != except {
			return true
		}
	}

	return false
}

func (s *Store) renderRoom(r *room) openapi.Room {
	out := openapi.Room{
		ID:         r.id,
		Name:       r.name,
		Properties: []openapi.RoomProperty{},
	}

	for _, id := range r.properties {
		if p, ok := s.properties.get(id); ok {
			out.Properties = append(out.Properties, *p)
		}
	}

	return out
}

func (s *Store) CreateRoom(request *openapi.RoomCreate) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if request.Name == "" {
		return "", HTTPValidationError("Name", "The Name field is required.")
	}

	if s.roomNameTaken(request.Name, "") {
		return "", HTTPConflict(fmt.Sprintf("room %s already exists", request.Name))
	}

	id := uuid.NewString()

	s.rooms.add(id, &room{
		id:   id,
		name: request.Name,
	})

	return id, nil
}

func (s *Store) Rooms() []openapi.Room {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]openapi.Room, 0, len(s.rooms.order))

	for _, r := range s.rooms.list() {
		out = append(out, s.renderRoom(r))
	}

	return out
}

func (s *Store) LookupRoom(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.rooms.get(id); !ok {
		return HTTPNotFound("room", id)
	}

	return nil
}

func (s *Store) UpdateRoom(id string, request *openapi.RoomUpdate) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	r, ok := s.rooms.get(id)
	if !ok {
		return HTTPNotFound("room", id)
	}

	v := &validator{}
	v.check(request.Name != "", "Name", "The Name field is required.")

	for propertyID := range set.New[string](request.PropertiesIDs...).Difference(set.New[string](s.properties.order...)).All() {
		v.check(false, "PropertiesIds", fmt.Sprintf("Room property %s does not exist.", propertyID))
	}

	if err := v.result(); err != nil {
		return err
	}

	if s.roomNameTaken(request.Name, id) {
		return HTTPConflict(fmt.Sprintf("room %s already exists", request.Name))
	}

	r.name = request.Name
	r.properties = slices.Compact(slices.Sorted(slices.Values(request.PropertiesIDs)))

	return nil
}

func (s *Store) DeleteRoom(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.rooms.get(id); !ok {
		return HTTPNotFound("room", id)
	}

	if s.openReservation(id) != nil {
		return HTTPConflict(fmt.Sprintf("room %s has an open reservation", id))
	}

	s.rooms.remove(id)

	return nil
}

// openReservation is the earliest reservation of a room that has not been
// checked out.
func (s *Store) openReservation(roomID string) *openapi.Reservation {
	var open []*openapi.Reservation

	for _, r := range s.reservations.list() {
		if r.RoomID == roomID && !r.CheckOutDone {
			open = append(open, r)
		}
	}

	if len(open) == 0 {
		return nil
	}

	return slices.MinFunc(open, func(a, b *openapi.Reservation) int {
		return a.CheckInDate.Compare(b.CheckInDate.Time)
	})
}

func (s *Store) Availability() []openapi.RoomAvailability {
	s.lock.Lock()
	defer s.lock.Unlock()

	now := s.now()

	out := make([]openapi.RoomAvailability, 0, len(s.rooms.order))

	for _, r := range s.rooms.list() {
		entry := openapi.RoomAvailability{
			Room:  s.renderRoom(r),
			State: openapi.RoomStateAvailable,
		}

		if reservation := s.openReservation(r.id); reservation != nil {
			entry.State = openapi.RoomStateOccupied

			if now.Before(reservation.CheckInDate.Time) {
				entry.State = openapi.RoomStateReserved
			}

			active := *reservation
			entry.ActiveReservation = &active
		}

		out = append(out, entry)
	}

	return out
}

func (s *Store) CreateReservation(request *openapi.ReservationCreate) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, guestOK := s.guests.get(request.GuestID)
	_, roomOK := s.rooms.get(request.RoomID)

	v := &validator{}
	v.check(guestOK, "GuestId", "Guest not found.")
	v.check(roomOK, "RoomId", "Room not found.")
	v.check(!request.CheckInDate.IsZero(), "CheckInDate", "The CheckInDate field is required.")
	v.check(request.CheckOutDate.After(request.CheckInDate), "CheckOutDate", "Check-out date must be after check-in date.")
	v.check(request.Price >= 0, "Price", "Price cannot be negative.")

	if err := v.result(); err != nil {
		return "", err
	}

	for _, r := range s.reservations.list() {
		if r.RoomID != request.RoomID || r.CheckOutDone {
			continue
		}

		if request.CheckInDate.Before(r.CheckOutDate.Time) && r.CheckInDate.Before(request.CheckOutDate) {
			return "", HTTPConflict(fmt.Sprintf("room %s is already reserved by %s", request.RoomID, r.ID))
		}
	}

	id := uuid.NewString()

	s.reservations.add(id, &openapi.Reservation{
		ID:           id,
		GuestID:      request.GuestID,
		RoomID:       request.RoomID,
		CheckInDate:  openapi.NewTimestamp(request.CheckInDate),
		CheckOutDate: openapi.NewTimestamp(request.CheckOutDate),
		Price:        request.Price,
	})

	return id, nil
}

func (s *Store) Reservations() []openapi.Reservation {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]openapi.Reservation, 0, len(s.reservations.order))

	for _, r := range s.reservations.list() {
		out = append(out, *r)
	}

	return out
}

// Checkout closes a reservation, which frees its room.
func (s *Store) Checkout(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	r, ok := s.reservations.get(id)
	if !ok {
		return HTTPNotFound("reservation", id)
	}

	if r.CheckOutDone {
		return HTTPConflict(fmt.Sprintf("reservation %s is already checked out", id))
	}

	r.CheckOutDone = true

	return nil
}

func (s *Store) stockByProduct(productID string) (*openapi.ProductStock, bool) {
	for _, stock := range s.stocks.list() {
		if stock.Product.ID == productID {
			return stock, true
		}
	}

	return nil, false
}

func (s *Store) productNameTaken(name, except string) bool {
	for _, stock := range s.stocks.list() {
		if stock.Product.Name == name && stock.ID != except {
			return true
		}
	}

	return false
}

func (s *Store) CreateProductStock(request *openapi.ProductStockCreate) (*openapi.CreateProductStockResult, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	v := &validator{}
	v.check(request.ProductName != "", "ProductName", "The ProductName field is required.")
	v.check(request.StockQuantity >= 0, "StockQuantity", "Stock quantity cannot be negative.")
	v.check(request.IdealQuantity >= 0, "IdealQuantity", "Ideal quantity cannot be negative.")

	if err := v.result(); err != nil {
		return nil, err
	}

	if s.productNameTaken(request.ProductName, "") {
		return nil, HTTPConflict(fmt.Sprintf("product %s already exists", request.ProductName))
	}

	result := &openapi.CreateProductStockResult{
		StockID:   uuid.NewString(),
		ProductID: uuid.NewString(),
	}

	s.stocks.add(result.StockID, &openapi.ProductStock{
		ID: result.StockID,
		Product: openapi.Product{
			ID:   result.ProductID,
			Name: request.ProductName,
		},
		StockQuantity: request.StockQuantity,
		IdealQuantity: request.IdealQuantity,
	})

	return result, nil
}

func (s *Store) Inventory() []openapi.ProductStock {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]openapi.ProductStock, 0, len(s.stocks.order))

	for _, stock := range s.stocks.list() {
		out = append(out, *stock)
	}

	return out
}

func (s *Store) LookupProductStock(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.stocks.get(id); !ok {
		return HTTPNotFound("product stock", id)
	}

	return nil
}

func (s *Store) UpdateProductStock(id string, request *openapi.ProductStockUpdate) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	stock, ok := s.stocks.get(id)
	if !ok {
		return HTTPNotFound("product stock", id)
	}

	v := &validator{}

	if request.Name != nil {
		v.check(*request.Name != "", "Name", "The Name field is required.")
	}

	if request.StockQuantity != nil {
		v.check(*request.StockQuantity >= 0, "StockQuantity", "Stock quantity cannot be negative.")
	}

	if request.IdealQuantity != nil {
		v.check(*request.IdealQuantity >= 0, "IdealQuantity", "Ideal quantity cannot be negative.")
	}

	if err := v.result(); err != nil {
		return err
	}

	if request.Name != nil {
		if s.productNameTaken(*request.Name, id) {
			return HTTPConflict(fmt.Sprintf("product %s already exists", *request.Name))
		}

		stock.Product.Name = *request.Name
	}

	if request.StockQuantity != nil {
		stock.StockQuantity = *request.StockQuantity
	}

	if request.IdealQuantity != nil {
		stock.IdealQuantity = *request.IdealQuantity
	}

	return nil
}

func (s *Store) DeleteProductStock(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.stocks.get(id); !ok {
		return HTTPNotFound("product stock", id)
	}

	s.stocks.remove(id)

	return nil
}

// validateAdjustments checks every adjustment refers to a known product with a
// positive quantity, sign is the direction the stock will move in.
func (s *Store) validateAdjustments(v *validator, adjustments []openapi.StockAdjustmentData, sign int) {
	v.check(len(adjustments) > 0, "StockAdjustmentData", "At least one stock adjustment is required.")

	// Several adjustments may name the same product.
	pending := map[string]int{}

	for i, adjustment := range adjustments {
		field := fmt.Sprintf("StockAdjustmentData[%d]", i)

		v.check(adjustment.Quantity > 0, field+".Quantity", "Quantity must be greater than zero.")

		stock, ok := s.stockByProduct(adjustment.ProductID)
		if !ok {
			v.check(false, field+".ProductId", fmt.Sprintf("Product %s not found.", adjustment.ProductID))
			continue
		}

		pending[stock.ID] += sign * adjustment.Quantity

		v.check(stock.StockQuantity+pending[stock.ID] >= 0, field+".Quantity", fmt.Sprintf("Insufficient stock for product %s.", stock.Product.Name))
	}
}

func (s *Store) applyAdjustments(adjustments []openapi.StockAdjustmentData, sign int) []openapi.StockAdjustment {
	out := make([]openapi.StockAdjustment, 0, len(adjustments))

	for _, adjustment := range adjustments {
		stock, _ := s.stockByProduct(adjustment.ProductID)
		stock.StockQuantity += sign * adjustment.Quantity

		out = append(out, openapi.StockAdjustment{
			ProductID:   adjustment.ProductID,
			ProductName: stock.Product.Name,
			Quantity:    sign * adjustment.Quantity,
		})
	}

	return out
}

func (s *Store) CreatePurchaseReport(request *openapi.PurchaseReportCreate) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	v := &validator{}
	v.check(request.Price >= 0, "Price", "Price cannot be negative.")
	s.validateAdjustments(v, request.StockAdjustmentData, 1)

	if err := v.result(); err != nil {
		return "", err
	}

	id := uuid.NewString()

	s.purchases.add(id, &openapi.PurchaseReport{
		ID:               id,
		RegistrationDate: openapi.NewTimestamp(s.now().UTC()),
		Price:            request.Price,
		StockAdjustments: s.applyAdjustments(request.StockAdjustmentData, 1),
	})

	return id, nil
}

func (s *Store) PurchaseReports() []openapi.PurchaseReport {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]openapi.PurchaseReport, 0, len(s.purchases.order))

	for _, report := range s.purchases.list() {
		r := *report
		r.StockAdjustments = slices.Clone(report.StockAdjustments)

		out = append(out, r)
	}

	return out
}

func (s *Store) CreateUsageReport(request *openapi.UsageReportCreate) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	v := &validator{}
	v.check(request.Concept != "", "Concept", "The Concept field is required.")
	s.validateAdjustments(v, request.StockAdjustmentData, -1)

	if err := v.result(); err != nil {
		return "", err
	}

	id := uuid.NewString()

	s.usages.add(id, &openapi.UsageReport{
		ID:               id,
		RegistrationDate: openapi.NewTimestamp(s.now().UTC()),
		Concept:          request.Concept,
		StockAdjustments: s.applyAdjustments(request.StockAdjustmentData, -1),
	})

	return id, nil
}

func (s *Store) UsageReports() []openapi.UsageReport {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]openapi.UsageReport, 0, len(s.usages.order))

	for _, report := range s.usages.list() {
		r := *report
		r.StockAdjustments = slices.Clone(report.StockAdjustments)

		out = append(out, r)
	}

	return out
}
