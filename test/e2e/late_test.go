package e2e_test

import (
	"context"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openshift-assisted/machine-monitor/test/e2e"
)

var _ = Describe("Checking late data handling", func() {
	var testContext *e2e.TestContext

	BeforeEach(func(ctx SpecContext) {
		testContext = startServer(ctx, "latedata")
	})

	When("pushing a snapshot sampled on 2024-10-27", func() {
		It("should succeed but report late data", func(ctx SpecContext) {
			status, err := testContext.PushFile(ctx, "caterpillar_usa", "resources/old_snapshot.json")
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusOK))

			By("eventually incrementing the late metrics")
			Eventually(func(g Gomega, ctx context.Context) {
				value, err := testContext.GetMetric(ctx, e2e.LateMetricFamily)
				g.Expect(err).NotTo(HaveOccurred())
				g.Expect(value).To(BeEquivalentTo(1))
			}).WithContext(ctx).WithTimeout(time.Minute).WithPolling(time.Second).Should(Succeed())
		})
	})
})
