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

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/utils/ptr"

	"github.com/mrhotel/api-tests/pkg/openapi"
	"github.com/mrhotel/api-tests/test/api"
)

// logAcceptance reports lenient cases where either outcome is tolerated.
func logAcceptance(resp *api.Response, accepted, rejected string) {
	if resp.OK() {
		GinkgoWriter.Printf("⚠ %s\n", accepted)
		return
	}

	GinkgoWriter.Printf("✓ %s (Status: %d)\n", rejected, resp.StatusCode)
}

var _ = Describe("Scenario 3: Negative cases and error handling", Ordered, Serial, ContinueOnFailure, func() {
	timeout := SpecTimeout(config.TestTimeout)

	missingID := uuid.Nil.String()

	var (
		client          *api.APIClient
		anonymousClient *api.APIClient
	)

	BeforeAll(func(ctx SpecContext) {
		client = newLoggedInClient(ctx)
		anonymousClient = newAnonymousClient()
	}, NodeTimeout(config.TestTimeout))

	It("TC025 - Log in with wrong credentials", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := anonymousClient.Login(ctx, "usuarioInexistente", "ClaveMala")
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC025", resp)

		Expect(resp.OK()).To(BeFalse())
		Expect(resp.StatusCode).To(BeElementOf(http.StatusBadRequest, http.StatusUnauthorized))

		GinkgoWriter.Printf("✓ Login rejected (Status: %d)\n", resp.StatusCode)
	}, timeout)

	It("TC026 - Log in with incomplete data", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := anonymousClient.Post(ctx, api.NewEndpoints().Login(), map[string]string{
			"userName": config.Username,
		})
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC026", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))

		var problem map[string]any

		Expect(resp.JSON(&problem)).To(Succeed())
		Expect(problem).To(HaveKey("errors"))

		GinkgoWriter.Println("✓ Required field validation OK")
	}, timeout)

	It("TC027 - Create guest without authentication", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		guest := api.NewGuestPayload().
			WithFullName("Test Guest").
			WithPhoneNumber("+52-999-000-0000").
			WithDateOfBirth(time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)).
			Build()

		resp, err := anonymousClient.CreateGuest(ctx, guest)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC027", resp)

		Expect(resp.OK()).To(BeFalse())
		Expect(resp.StatusCode).To(BeElementOf(http.StatusUnauthorized, http.StatusForbidden))

		GinkgoWriter.Println("✓ Endpoint correctly protected")
	}, timeout)

	It("TC028 - Update unknown guest", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := client.UpdateGuest(ctx, missingID, &openapi.GuestUpdate{
			FullName: ptr.To("Updated Name"),
		})
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC028", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))

		GinkgoWriter.Println("✓ Missing resource handled correctly")
	}, timeout)

	It("TC029 - Delete unknown room", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := client.DeleteRoom(ctx, missingID)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC029", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))

		GinkgoWriter.Println("✓ Missing resource on DELETE handled correctly")
	}, timeout)

	It("TC030 - Create guest born in the future", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		guest := api.NewGuestPayload().
			WithFullName("Test Guest").
			WithPhoneNumber("+52-999-000-0000").
			WithDateOfBirth(time.Now().AddDate(1, 0, 0)).
			Build()

		resp, err := client.CreateGuest(ctx, guest)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC030", resp)

		logAcceptance(resp, "The server accepted a future date", "Invalid date rejected")
	}, timeout)

	It("TC031 - Create reservation with inverted dates", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		guestID, err := client.CreateGuestID(ctx, api.NewGuestPayload().WithFullName("Test").Build())
		Expect(err).NotTo(HaveOccurred())

		roomID, err := client.CreateRoomID(ctx, api.UniqueName("Test Room"))
		Expect(err).NotTo(HaveOccurred())

		today := time.Now().UTC()

		reservation := api.NewReservationPayload(guestID, roomID).
			WithDates(today, today.Add(-24*time.Hour)).
			WithPrice(100).
			Build()

		resp, err := client.CreateReservation(ctx, reservation)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC031", resp)

		logAcceptance(resp, "The server accepted invalid dates", "Invalid dates rejected")
	}, timeout)

	It("TC032 - Create product with negative quantity", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := client.CreateProductStock(ctx, api.NewProductStockPayload("Test Product", -5, 50).Build())
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC032", resp)

		Expect(resp.OK()).To(BeFalse())
		Expect(resp.StatusCode).To(BeElementOf(http.StatusBadRequest, http.StatusUnprocessableEntity))

		GinkgoWriter.Println("✓ Negative quantity rejected")
	}, timeout)

	It("TC033 - Get user information without authentication", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := anonymousClient.GetUserInfo(ctx)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC033", resp)

		Expect(resp.OK()).To(BeFalse())
		Expect(resp.StatusCode).To(BeElementOf(http.StatusUnauthorized, http.StatusForbidden))

		GinkgoWriter.Println("✓ User information correctly protected")
	}, timeout)

	It("TC034 - Check out unknown reservation", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := client.Checkout(ctx, missingID)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC034", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))

		GinkgoWriter.Println("✓ Missing reservation handled correctly")
	}, timeout)

	It("TC035 - Create purchase report with unknown product", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := client.CreatePurchaseReport(ctx, api.NewStockAdjustments().With(missingID, 10).Purchase(100))
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC035", resp)

		logAcceptance(resp, "The server accepted an unknown product", "Unknown product rejected")
	}, timeout)

	It("TC036 - Delete property group assigned to a room", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		fixture := api.CreateRoomWithProperty(ctx, client, "Test Group", "Prop A", api.UniqueName("Test Room"))

		resp, err := client.DeleteRoomPropertyGroup(ctx, fixture.GroupID)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC036", resp)

		Expect(resp.OK()).To(BeFalse())
		Expect(resp.StatusCode).To(BeElementOf(http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity))

		GinkgoWriter.Println("✓ Group with dependants cannot be deleted")
	}, timeout)
})
