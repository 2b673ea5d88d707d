package inference_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/faultlinehq/faultline/pkg/inference"
	"github.com/faultlinehq/faultline/pkg/kb"
)

func mustRuleSet(name string, rules []kb.Rule) *kb.RuleSet {
	set, err := kb.NewRuleSet(name, rules)
	Expect(err).NotTo(HaveOccurred())
	return set
}

func traceConsequents(trace []inference.TraceEntry) []string {
	out := make([]string, len(trace))
	for i, e := range trace {
		out[i] = e.Consequent
	}
	return out
}

var _ = Describe("Forward", func() {
	var rules *kb.RuleSet

	BeforeEach(func() {
		rules = kb.DefaultForwardRules()
	})

	It("derives the power fault chain from a low battery", func() {
		known, trace := inference.Forward(kb.NewFactSet("battery_low"), rules)

		Expect(known.Sorted()).To(Equal([]string{
			"battery_low", "fault_power_supply", "power_unstable", "system_restarts",
		}))
		Expect(traceConsequents(trace)).To(Equal([]string{
			"power_unstable", "system_restarts", "fault_power_supply",
		}))
	})

	It("derives the network fault chain from wifi symptoms", func() {
		known, _ := inference.Forward(kb.NewFactSet("no_wifi", "router_off"), rules)

		Expect(known.Has("network_down")).To(BeTrue())
		Expect(known.Has("cannot_sync")).To(BeTrue())
		Expect(known.Has("fault_network")).To(BeTrue())
	})

	It("derives nothing from an empty fact set", func() {
		known, trace := inference.Forward(kb.NewFactSet(), rules)

		Expect(known).To(BeEmpty())
		Expect(trace).To(BeEmpty())
	})

	It("leaves unknown atoms inert", func() {
		known, trace := inference.Forward(kb.NewFactSet("made_up_symptom"), rules)

		Expect(known.Sorted()).To(Equal([]string{"made_up_symptom"}))
		Expect(trace).To(BeEmpty())
	})

	It("does not mutate the input fact set", func() {
		input := kb.NewFactSet("battery_low")
		_, _ = inference.Forward(input, rules)

		Expect(input.Sorted()).To(Equal([]string{"battery_low"}))
	})

	It("fires a rule in the pass where its antecedents first hold", func() {
		// The enabling rule is listed after the rule it enables, so the
		// dependent rule only fires on the second pass.
		chain := mustRuleSet("chain", []kb.Rule{
			{Antecedents: []string{"a2"}, Consequent: "a3"},
			{Antecedents: []string{"a1"}, Consequent: "a2"},
		})

		known, trace := inference.Forward(kb.NewFactSet("a1"), chain)

		Expect(known.Sorted()).To(Equal([]string{"a1", "a2", "a3"}))
		Expect(traceConsequents(trace)).To(Equal([]string{"a2", "a3"}))
	})

	It("is idempotent: re-running on the closure adds nothing", func() {
		known, _ := inference.Forward(kb.NewFactSet("battery_low", "no_wifi", "router_off"), rules)

		again, trace := inference.Forward(known, rules)

		Expect(again.Sorted()).To(Equal(known.Sorted()))
		Expect(trace).To(BeEmpty())
	})

	It("is monotonic: more facts never derive less", func() {
		small, _ := inference.Forward(kb.NewFactSet("battery_low"), rules)
		large, _ := inference.Forward(kb.NewFactSet("battery_low", "no_wifi", "router_off"), rules)

		for _, atom := range small.Sorted() {
			Expect(large.Has(atom)).To(BeTrue(), "expected %q in the larger closure", atom)
		}
	})
})
