package e2e_test

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openshift-assisted/machine-monitor/test/e2e"
)

var _ = Describe("Checking the happy path", func() {
	var testContext *e2e.TestContext

	BeforeEach(func(ctx SpecContext) {
		testContext = startServer(ctx, "happy-path")
	})

	It("should serve the default inventory", func(ctx SpecContext) {
		body, err := testContext.ListMachines(ctx)
		Expect(err).NotTo(HaveOccurred())

		machines := []map[string]any{}
		Expect(json.Unmarshal([]byte(body), &machines)).To(Succeed())
		Expect(machines).To(HaveLen(50))
		Expect(machines[0]).To(HaveKeyWithValue("machine_id", "asimco_china"))
		Expect(machines[0]).To(HaveKeyWithValue("name", "ASIMCO International (AS4000)"))
	})

	When("a machine reports a hot snapshot", func() {
		It("should classify it and notify viewers", func(ctx SpecContext) {
			viewer, err := testContext.DialViewer(ctx)
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(viewer.Close)

			status, err := testContext.PushFile(ctx, "volvo_sweden", "resources/warning.json")
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusOK))

			By("broadcasting the change")
			Expect(viewer.SetReadDeadline(time.Now().Add(10 * time.Second))).To(Succeed())

			event := map[string]any{}
			Expect(viewer.ReadJSON(&event)).To(Succeed())
			Expect(event).To(HaveKeyWithValue("type", "machine_update"))
			Expect(event).To(HaveKeyWithValue("machine_id", "volvo_sweden"))
			Expect(event).To(HaveKeyWithValue("status", "yellow"))

			By("exposing the new state")
			body, err := testContext.GetMachine(ctx, "volvo_sweden")
			Expect(err).NotTo(HaveOccurred())
			Expect(body).To(ContainSubstring(`"status":"yellow"`))

			By("eventually incrementing the snapshot metrics")
			Eventually(func(g Gomega, ctx context.Context) {
				value, err := testContext.GetMetric(ctx, e2e.SnapshotMetricFamily, e2e.KeyValue{Key: "result", Value: "processed"})
				g.Expect(err).NotTo(HaveOccurred())
				g.Expect(value).To(BeEquivalentTo(1))
			}).WithContext(ctx).WithTimeout(time.Minute).WithPolling(time.Second).Should(Succeed())
		})
	})
})
