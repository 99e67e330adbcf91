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
	"k8s.io/utils/ptr"

	"github.com/mrhotel/api-tests/pkg/openapi"
	"github.com/mrhotel/api-tests/test/api"
)

var _ = Describe("Scenario 2: Inventory management", Ordered, Serial, ContinueOnFailure, func() {
	timeout := SpecTimeout(config.TestTimeout)

	var (
		client           *api.APIClient
		towels           *openapi.ProductStockCreate
		soap             *openapi.ProductStockCreate
		towelsIDs        *openapi.CreateProductStockResult
		soapIDs          *openapi.CreateProductStockResult
		purchaseReportID string
		usageReportID    string
	)

	BeforeAll(func(ctx SpecContext) {
		client = newLoggedInClient(ctx)

		towels = api.NewProductStockPayload("Toallas de Baño", 50, 100).Build()
		soap = api.NewProductStockPayload("Jabón Líquido", 30, 80).Build()
	}, NodeTimeout(config.TestTimeout))

	// createProduct runs a create case and returns the new identifiers.
	createProduct := func(ctx SpecContext, name string, payload *openapi.ProductStockCreate) *openapi.CreateProductStockResult {
		defer api.LogResponseTime(time.Now())

		resp, err := client.CreateProductStock(ctx, payload)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse(name, resp)

		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		result := &openapi.CreateProductStockResult{}

		Expect(resp.JSON(result)).To(Succeed())
		Expect(result.StockID).NotTo(BeEmpty())
		Expect(result.ProductID).NotTo(BeEmpty())

		GinkgoWriter.Printf("✓ Product created: %s\n", payload.ProductName)
		GinkgoWriter.Printf("  Stock ID: %s\n", result.StockID)
		GinkgoWriter.Printf("  Product ID: %s\n", result.ProductID)
		GinkgoWriter.Printf("  Current quantity: %d\n", payload.StockQuantity)
		GinkgoWriter.Printf("  Ideal quantity: %d\n", payload.IdealQuantity)

		return result
	}

	It("TC014 - Create first inventory product (towels)", func(ctx SpecContext) {
		towelsIDs = createProduct(ctx, "TC014", towels)
	}, timeout)

	It("TC015 - Create second inventory product (soap)", func(ctx SpecContext) {
		soapIDs = createProduct(ctx, "TC015", soap)
	}, timeout)

	It("TC016 - List full inventory", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		resp, err := client.GetInventory(ctx)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC016", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		var inventory []openapi.ProductStock

		Expect(resp.JSON(&inventory)).To(Succeed())
		Expect(len(inventory)).To(BeNumerically(">=", 2))

		GinkgoWriter.Printf("✓ Products in inventory: %d\n", len(inventory))

		for _, item := range inventory {
			GinkgoWriter.Printf("  - %s: %d/%d\n", item.Product.Name, item.StockQuantity, item.IdealQuantity)
		}
	}, timeout)

	It("TC017 - Register product purchase", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		purchase := api.NewStockAdjustments().
			With(towelsIDs.ProductID, 50).
			With(soapIDs.ProductID, 30).
			Purchase(1250.5)

		resp, err := client.CreatePurchaseReport(ctx, purchase)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC017", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		purchaseReportID, err = resp.ID()
		Expect(err).NotTo(HaveOccurred())

		GinkgoWriter.Printf("✓ Purchase registered: %s\n", purchaseReportID)
		GinkgoWriter.Printf("  + 50 %s\n", towels.ProductName)
		GinkgoWriter.Printf("  + 30 %s\n", soap.ProductName)
		GinkgoWriter.Printf("  Total cost: $%.2f\n", purchase.Price)
	}, timeout)

	It("TC018 - Verify stock after purchase", func(ctx SpecContext) {
		inventory, err := client.ListInventory(ctx)
		Expect(err).NotTo(HaveOccurred())

		towelsStock := api.FindStock(inventory, towelsIDs.StockID)
		soapStock := api.FindStock(inventory, soapIDs.StockID)

		Expect(towelsStock).NotTo(BeNil())
		Expect(soapStock).NotTo(BeNil())
		Expect(towelsStock.StockQuantity).To(Equal(100))
		Expect(soapStock.StockQuantity).To(Equal(60))

		GinkgoWriter.Println("✓ Stock updated:")
		GinkgoWriter.Printf("  Towels: %d (expected: 100)\n", towelsStock.StockQuantity)
		GinkgoWriter.Printf("  Soap: %d (expected: 60)\n", soapStock.StockQuantity)
	}, timeout)

	It("TC019 - Register product usage", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		usage := api.NewStockAdjustments().
			With(towelsIDs.ProductID, 20).
			With(soapIDs.ProductID, 15).
			Usage("Consumo diario habitaciones 101-110")

		resp, err := client.CreateUsageReport(ctx, usage)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC019", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		usageReportID, err = resp.ID()
		Expect(err).NotTo(HaveOccurred())

		GinkgoWriter.Printf("✓ Usage registered: %s\n", usageReportID)
		GinkgoWriter.Printf("  - 20 %s\n", towels.ProductName)
		GinkgoWriter.Printf("  - 15 %s\n", soap.ProductName)
		GinkgoWriter.Printf("  Concept: %s\n", usage.Concept)
	}, timeout)

	It("TC020 - Verify final stock after usage", func(ctx SpecContext) {
		inventory, err := client.ListInventory(ctx)
		Expect(err).NotTo(HaveOccurred())

		towelsStock := api.FindStock(inventory, towelsIDs.StockID)
		soapStock := api.FindStock(inventory, soapIDs.StockID)

		Expect(towelsStock).NotTo(BeNil())
		Expect(soapStock).NotTo(BeNil())
		Expect(towelsStock.StockQuantity).To(Equal(80))
		Expect(soapStock.StockQuantity).To(Equal(45))

		GinkgoWriter.Println("✓ Final stock verified:")
		GinkgoWriter.Printf("  Towels: %d (expected: 80)\n", towelsStock.StockQuantity)
		GinkgoWriter.Printf("  Soap: %d (expected: 45)\n", soapStock.StockQuantity)

		for _, stock := range []*openapi.ProductStock{towelsStock, soapStock} {
			if needed := stock.RestockNeeded(); needed > 0 {
				GinkgoWriter.Printf("  ⚠ %s needs restocking: %d units\n", stock.Product.Name, needed)
			}
		}
	}, timeout)

	It("TC021 - List purchase reports", func(ctx SpecContext) {
		reports, err := client.ListPurchaseReports(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(reports).NotTo(BeEmpty())

		GinkgoWriter.Printf("✓ Purchase reports found: %d\n", len(reports))

		report := api.FindPurchaseReport(reports, purchaseReportID)
		Expect(report).NotTo(BeNil())

		GinkgoWriter.Printf("  Date: %s\n", report.RegistrationDate.Format(time.DateTime))
		GinkgoWriter.Printf("  Price: $%.2f\n", report.Price)
		GinkgoWriter.Printf("  Adjustments: %d products\n", len(report.StockAdjustments))
	}, timeout)

	It("TC022 - List usage reports", func(ctx SpecContext) {
		reports, err := client.ListUsageReports(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(reports).NotTo(BeEmpty())

		GinkgoWriter.Printf("✓ Usage reports found: %d\n", len(reports))

		report := api.FindUsageReport(reports, usageReportID)
		Expect(report).NotTo(BeNil())

		GinkgoWriter.Printf("  Date: %s\n", report.RegistrationDate.Format(time.DateTime))
		GinkgoWriter.Printf("  Concept: %s\n", report.Concept)
		GinkgoWriter.Printf("  Adjustments: %d products\n", len(report.StockAdjustments))
	}, timeout)

	It("TC023 - Update product information", func(ctx SpecContext) {
		defer api.LogResponseTime(time.Now())

		update := &openapi.ProductStockUpdate{
			Name:          ptr.To(towels.ProductName + " Premium"),
			IdealQuantity: ptr.To(120),
		}

		resp, err := client.UpdateProductStock(ctx, towelsIDs.StockID, update)
		Expect(err).NotTo(HaveOccurred())

		client.LogRequestResponse("TC023", resp)

		Expect(resp.StatusCode).To(Equal(http.StatusNoContent))

		GinkgoWriter.Println("✓ Product updated")
		GinkgoWriter.Printf("  New name: %s\n", *update.Name)
		GinkgoWriter.Printf("  New ideal quantity: %d\n", *update.IdealQuantity)
	}, timeout)

	It("TC024 - Verify product changes", func(ctx SpecContext) {
		inventory, err := client.ListInventory(ctx)
		Expect(err).NotTo(HaveOccurred())

		towelsStock := api.FindStock(inventory, towelsIDs.StockID)
		Expect(towelsStock).NotTo(BeNil())
		Expect(towelsStock.Product.Name).To(Equal(towels.ProductName + " Premium"))
		Expect(towelsStock.IdealQuantity).To(Equal(120))

		GinkgoWriter.Println("✓ Changes verified:")
		GinkgoWriter.Printf("  Name: %s\n", towelsStock.Product.Name)
		GinkgoWriter.Printf("  Ideal quantity: %d\n", towelsStock.IdealQuantity)
	}, timeout)
})
