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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mrhotel/api-tests/pkg/openapi"
	"github.com/mrhotel/api-tests/test/api"
)

var _ = Describe("Scenario 1: Complete reservation flow", Ordered, Serial, ContinueOnFailure, func() {
	timeout := SpecTimeout(config.TestTimeout)

	var (
		client        *api.APIClient
		groupID       string
		propertyID    string
		roomID        string
		guestID       string
		reservationID string
	)

	BeforeAll(func() {
		client = newClient()
	})

	It("TC001 - Verify admin registration status", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := client.CheckAdminRegistrationStatus(ctx)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC001", resp)

		Expect(resp.OK()).To(BeTrue())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		var allowed bool

		Expect(resp.JSON(&allowed)).To(Succeed())
		GinkgoWriter.Printf("✓ Admin registration allowed: %t\n", allowed)
	}, timeout)

	It("TC002 - Register administrator", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := client.RegisterAdmin(ctx, config.Username, config.Password, config.AdminCode)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC002", resp)

		switch resp.StatusCode {
		case http.StatusOK:
			GinkgoWriter.Printf("✓ Administrator created: %s\n", config.Username)
		case http.StatusBadRequest:
			GinkgoWriter.Println("⚠ An administrator already exists")
		}
	}, timeout)

	It("TC003 - Log in successfully", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := client.Login(ctx, config.Username, config.Password)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC003", resp)

		Expect(resp.OK()).To(BeTrue())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		GinkgoWriter.Printf("✓ Session started for: %s\n", config.Username)
	}, timeout)

	It("TC004 - Get user information", func(ctx SpecContext) {
		resp, err := client.GetUserInfo(ctx)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC004", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		var info map[string]any

		Expect(resp.JSON(&info)).To(Succeed())
		Expect(info).To(HaveKey("userName"))

		GinkgoWriter.Printf("✓ Authenticated user: %v\n", info["userName"])
	}, timeout)

	It("TC005 - Create room property group", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := client.CreateRoomPropertyGroup(ctx, "Tipo de Cama")
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC005", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		groupID, err = resp.ID()
		Expect(err).NotTo(HaveOccurred())

		GinkgoWriter.Printf("✓ Property group created: %s\n", groupID)
	}, timeout)

	It("TC006 - Add properties to the group", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := client.UpdateRoomPropertyGroup(ctx, groupID, &openapi.RoomPropertyGroupUpdate{
			Name: "Tipo de Cama",
			Properties: []openapi.RoomPropertyCreate{
				{Name: "Cama Individual"},
				{Name: "Cama Doble"},
				{Name: "Cama King Size"},
			},
		})
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC006", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		var properties map[string]string

		Expect(resp.JSON(&properties)).To(Succeed())
		Expect(properties).To(HaveLen(3))
		Expect(properties).To(HaveKey("Cama Individual"))

		// JSON objects are unordered, the first declared property is
		// picked by name.
		propertyID = properties["Cama Individual"]

		GinkgoWriter.Printf("✓ Properties added: %d\n", len(properties))
	}, timeout)

	It("TC007 - Create room", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		name := api.UniqueName("Habitación")

		resp, err := client.CreateRoom(ctx, name)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC007", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		roomID, err = resp.ID()
		Expect(err).NotTo(HaveOccurred())

		GinkgoWriter.Printf("✓ Room created: %s (%s)\n", name, roomID)
	}, timeout)

	It("TC008 - Assign properties to room", func(ctx SpecContext) {
		resp, err := client.UpdateRoom(ctx, roomID, &openapi.RoomUpdate{
			Name:          api.UniqueName("Habitación Suite"),
			PropertiesIDs: []string{propertyID},
		})
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC008", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusNoContent))

		GinkgoWriter.Println("✓ Properties assigned to room")
	}, timeout)

	It("TC009 - Create guest", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		guest := api.NewGuestPayload().Build()

		resp, err := client.CreateGuest(ctx, guest)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC009", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		guestID, err = resp.ID()
		Expect(err).NotTo(HaveOccurred())

		GinkgoWriter.Printf("✓ Guest created: %s (%s)\n", guest.FullName, guestID)
	}, timeout)

	It("TC010 - Check room availability", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := client.GetRoomAvailability(ctx)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC010", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		var availability []openapi.RoomAvailability

		Expect(resp.JSON(&availability)).To(Succeed())

		room := api.FindAvailability(availability, roomID)
		Expect(room).NotTo(BeNil())

		GinkgoWriter.Printf("✓ Room state: %d (%s)\n", room.State, room.State)
	}, timeout)

	It("TC011 - Create reservation", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		reservation := api.NewReservationPayload(guestID, roomID).Build()

		resp, err := client.CreateReservation(ctx, reservation)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC011", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		reservationID, err = resp.ID()
		Expect(err).NotTo(HaveOccurred())

		GinkgoWriter.Printf("✓ Reservation created: %s\n", reservationID)
		GinkgoWriter.Printf("  Check-in: %s\n", reservation.CheckInDate.Format(time.DateOnly))
		GinkgoWriter.Printf("  Check-out: %s\n", reservation.CheckOutDate.Format(time.DateOnly))
		GinkgoWriter.Printf("  Price: $%.2f\n", reservation.Price)
	}, timeout)

	It("TC012 - Check out", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := client.Checkout(ctx, reservationID)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC012", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		GinkgoWriter.Println("✓ Checkout completed")
	}, timeout)

	It("TC013 - Verify final room state", func(ctx SpecContext) {
		availability, err := client.ListRoomAvailability(ctx)
		Expect(err).NotTo(HaveOccurred())

		room := api.FindAvailability(availability, roomID)
		Expect(room).NotTo(BeNil())

		checkedOut := room.ActiveReservation != nil && room.ActiveReservation.CheckOutDone

		GinkgoWriter.Printf("✓ Final room state: %d (%s)\n", room.State, room.State)
		GinkgoWriter.Printf("✓ Checkout done: %t\n", checkedOut)
	}, timeout)
})
