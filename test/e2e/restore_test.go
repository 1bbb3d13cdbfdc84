package e2e_test

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openshift-assisted/machine-monitor/test/e2e"
)

var _ = Describe("Checking state persistence", func() {
	var testContext *e2e.TestContext

	BeforeEach(func(ctx SpecContext) {
		testContext = startServer(ctx, "restore")
	})

	When("the server restarts", func() {
		It("should restore the last known state", func(ctx SpecContext) {
			status, err := testContext.PushFile(ctx, "ironcast_mexico", "resources/warning.json")
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusOK))

			Expect(testContext.Stop()).To(Succeed())
			Expect(testContext.Start(ctx)).To(Succeed())

			body, err := testContext.GetMachine(ctx, "ironcast_mexico")
			Expect(err).NotTo(HaveOccurred())
			Expect(body).To(ContainSubstring(`"status":"yellow"`))
			Expect(body).To(ContainSubstring(`"temperature":70`))
		})
	})
})
