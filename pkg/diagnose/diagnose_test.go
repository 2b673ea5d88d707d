package diagnose_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/faultlinehq/faultline/pkg/diagnose"
	"github.com/faultlinehq/faultline/pkg/inference"
	"github.com/faultlinehq/faultline/pkg/kb"
)

var _ = Describe("Service", func() {
	var svc *diagnose.Service

	BeforeEach(func() {
		svc = diagnose.NewService(kb.DefaultForwardRules(), kb.DefaultBackwardRules())
	})

	Describe("Forward", func() {
		It("reports the power supply fault for a low battery", func() {
			report := svc.Forward([]string{"battery_low"})

			Expect(report.InputFacts).To(Equal([]string{"battery_low"}))
			Expect(report.DerivedFacts).To(Equal([]string{
				"fault_power_supply", "power_unstable", "system_restarts",
			}))
			Expect(report.Faults).To(Equal([]string{"fault_power_supply"}))
		})

		It("reports the network fault for wifi symptoms", func() {
			report := svc.Forward([]string{"no_wifi", "router_off"})

			Expect(report.DerivedFacts).To(ContainElements("network_down", "cannot_sync"))
			Expect(report.Faults).To(Equal([]string{"fault_network"}))
		})

		It("trims, drops blanks, and dedups input facts", func() {
			report := svc.Forward([]string{" battery_low ", "", "battery_low", "  "})

			Expect(report.InputFacts).To(Equal([]string{"battery_low"}))
		})

		It("flags fault atoms supplied as input facts", func() {
			report := svc.Forward([]string{"fault_network"})

			Expect(report.DerivedFacts).To(BeEmpty())
			Expect(report.Faults).To(Equal([]string{"fault_network"}))
		})

		It("handles an empty fact list", func() {
			report := svc.Forward(nil)

			Expect(report.InputFacts).To(BeEmpty())
			Expect(report.DerivedFacts).To(BeEmpty())
			Expect(report.Trace).To(BeEmpty())
			Expect(report.Faults).To(BeEmpty())
		})

		It("assigns a unique diagnosis ID per report", func() {
			a := svc.Forward([]string{"battery_low"})
			b := svc.Forward([]string{"battery_low"})

			Expect(a.ID).NotTo(BeEmpty())
			Expect(a.ID).NotTo(Equal(b.ID))
		})
	})

	Describe("Backward", func() {
		It("proves a power supply fault from strong evidence", func() {
			report := svc.Backward([]string{"power_unstable", "system_restarts"}, "fault_power_supply")

			Expect(report.Provable).To(BeTrue())
			Expect(report.Proof).To(HaveLen(1))
			Expect(report.Proof[0].Kind).To(Equal(inference.StepInferred))
		})

		It("cannot prove a power supply fault from nothing", func() {
			report := svc.Backward(nil, "fault_power_supply")

			Expect(report.Provable).To(BeFalse())
			Expect(report.Facts).To(BeEmpty())
		})

		It("trims the goal and sorts the facts", func() {
			report := svc.Backward([]string{"system_restarts", "power_unstable"}, "  fault_power_supply ")

			Expect(report.Goal).To(Equal("fault_power_supply"))
			Expect(report.Facts).To(Equal([]string{"power_unstable", "system_restarts"}))
		})
	})

	Describe("Rules", func() {
		It("dumps both rule sets and the fault prefix", func() {
			report := svc.Rules()

			Expect(report.ForwardRules).To(HaveLen(7))
			Expect(report.BackwardRules).To(HaveLen(9))
			Expect(report.FaultPrefix).To(Equal(kb.FaultPrefix))
		})
	})
})
