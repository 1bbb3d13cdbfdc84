package e2e_test

import (
	"context"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openshift-assisted/machine-monitor/test/e2e"
)

var _ = Describe("Checking invalid input", func() {
	var testContext *e2e.TestContext

	BeforeEach(func(ctx SpecContext) {
		testContext = startServer(ctx, "invalid")
	})

	DescribeTable("should reject the push and count the error",
		func(ctx SpecContext, file string, category string) {
			status, err := testContext.PushFile(ctx, "doktas_turkey", file)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusBadRequest))

			Eventually(func(g Gomega, ctx context.Context) {
				value, err := testContext.GetMetric(ctx, e2e.ErrorMetricFamily, e2e.KeyValue{Key: "category", Value: category})
				g.Expect(err).NotTo(HaveOccurred())
				g.Expect(value).To(BeEquivalentTo(1))
			}).WithContext(ctx).WithTimeout(time.Minute).WithPolling(time.Second).Should(Succeed())

			By("keeping the previous state")
			body, err := testContext.GetMachine(ctx, "doktas_turkey")
			Expect(err).NotTo(HaveOccurred())
			Expect(body).To(ContainSubstring(`"last_seen":null`))
		},
		Entry("truncated json", "resources/invalid.json", "unmarshal"),
		Entry("non numeric reading", "resources/invalid_payload.json", "invalid_snapshot"),
	)

	It("should refuse a push without api key", func(ctx SpecContext) {
		testContext.Config.APIKey = "wrong"

		status, err := testContext.PushFile(ctx, "doktas_turkey", "resources/warning.json")
		Expect(err).NotTo(HaveOccurred())
		Expect(status).To(Equal(http.StatusUnauthorized))
	})
})
