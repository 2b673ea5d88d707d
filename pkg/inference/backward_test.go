package inference_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/faultlinehq/faultline/pkg/inference"
	"github.com/faultlinehq/faultline/pkg/kb"
)

// flatten walks a proof tree depth first and returns every step.
func flatten(steps []inference.ProofStep) []inference.ProofStep {
	var out []inference.ProofStep
	for _, s := range steps {
		out = append(out, s)
		out = append(out, flatten(s.Subproof)...)
	}
	return out
}

// usedRules collects the rules of all inferred steps in a proof tree.
func usedRules(steps []inference.ProofStep) []kb.Rule {
	var out []kb.Rule
	for _, s := range flatten(steps) {
		if s.Kind == inference.StepInferred && s.Using != nil {
			out = append(out, *s.Using)
		}
	}
	return out
}

var _ = Describe("Prove", func() {
	var rules *kb.RuleSet

	BeforeEach(func() {
		rules = kb.DefaultBackwardRules()
	})

	It("proves a goal that is a given fact without searching", func() {
		ok, proof := inference.Prove("battery_low", kb.NewFactSet("battery_low"), rules)

		Expect(ok).To(BeTrue())
		Expect(proof).To(HaveLen(1))
		Expect(proof[0].Kind).To(Equal(inference.StepGiven))
		Expect(proof[0].Goal).To(Equal("battery_low"))
	})

	It("proves a power supply fault from unstable power and restarts", func() {
		ok, proof := inference.Prove("fault_power_supply",
			kb.NewFactSet("power_unstable", "system_restarts"), rules)

		Expect(ok).To(BeTrue())
		Expect(proof).To(HaveLen(1))

		step := proof[0]
		Expect(step.Kind).To(Equal(inference.StepInferred))
		Expect(step.Using.Consequent).To(Equal("fault_power_supply"))
		Expect(step.Subproof).To(HaveLen(2))
		Expect(step.Subproof[0].Kind).To(Equal(inference.StepGiven))
		Expect(step.Subproof[0].Goal).To(Equal("power_unstable"))
		Expect(step.Subproof[1].Kind).To(Equal(inference.StepGiven))
		Expect(step.Subproof[1].Goal).To(Equal("system_restarts"))
	})

	It("cannot prove a power supply fault from no facts", func() {
		ok, proof := inference.Prove("fault_power_supply", kb.NewFactSet(), rules)

		Expect(ok).To(BeFalse())
		Expect(proof).To(HaveLen(1))
		Expect(proof[0].Kind).To(Equal(inference.StepNotProvable))
		Expect(proof[0].Goal).To(Equal("fault_power_supply"))
	})

	It("proves a battery fault from the full battery evidence", func() {
		ok, _ := inference.Prove("fault_battery",
			kb.NewFactSet("battery_low", "charging_not_working", "old_battery"), rules)

		Expect(ok).To(BeTrue())
	})

	It("proves intermediate goals through rule chains", func() {
		// battery_low ⇒ power_unstable ⇒ system_restarts
		ok, proof := inference.Prove("system_restarts", kb.NewFactSet("battery_low"), rules)

		Expect(ok).To(BeTrue())
		Expect(proof[0].Kind).To(Equal(inference.StepInferred))
		Expect(proof[0].Subproof[0].Kind).To(Equal(inference.StepInferred))
		Expect(proof[0].Subproof[0].Goal).To(Equal("power_unstable"))
	})

	It("commits to the first rule that fully succeeds", func() {
		set := mustRuleSet("first-wins", []kb.Rule{
			{Antecedents: []string{"x"}, Consequent: "g", Description: "first"},
			{Antecedents: []string{"y"}, Consequent: "g", Description: "second"},
		})

		ok, proof := inference.Prove("g", kb.NewFactSet("x", "y"), set)

		Expect(ok).To(BeTrue())
		Expect(proof[0].Using.Description).To(Equal("first"))
	})

	It("tries later rules after an earlier rule fails partway", func() {
		set := mustRuleSet("fallback", []kb.Rule{
			{Antecedents: []string{"x"}, Consequent: "g", Description: "first"},
			{Antecedents: []string{"y"}, Consequent: "g", Description: "second"},
		})

		ok, proof := inference.Prove("g", kb.NewFactSet("y"), set)

		Expect(ok).To(BeTrue())
		Expect(proof[0].Using.Description).To(Equal("second"))
	})

	It("terminates on circular rule dependencies with a cycle step", func() {
		set := mustRuleSet("circular", []kb.Rule{
			{Antecedents: []string{"b"}, Consequent: "a"},
			{Antecedents: []string{"a"}, Consequent: "b"},
		})

		ok, proof := inference.Prove("a", kb.NewFactSet(), set)

		Expect(ok).To(BeFalse())
		Expect(proof[0].Kind).To(Equal(inference.StepNotProvable))

		kinds := []inference.StepKind{}
		for _, s := range flatten(proof) {
			kinds = append(kinds, s.Kind)
		}
		Expect(kinds).To(ContainElement(inference.StepCycle))
	})

	It("lets independent branches prove the same intermediate atom", func() {
		// Both antecedents of g depend on i; the visited set is scoped to
		// the active path, so the second branch proves i again rather than
		// reporting a false cycle.
		set := mustRuleSet("diamond", []kb.Rule{
			{Antecedents: []string{"c"}, Consequent: "i"},
			{Antecedents: []string{"i"}, Consequent: "m"},
			{Antecedents: []string{"i"}, Consequent: "n"},
			{Antecedents: []string{"m", "n"}, Consequent: "g"},
		})

		ok, proof := inference.Prove("g", kb.NewFactSet("c"), set)

		Expect(ok).To(BeTrue())
		for _, s := range flatten(proof) {
			Expect(s.Kind).NotTo(Equal(inference.StepCycle))
		}
	})

	It("is sound: replaying a proof's rules forward re-derives the goal", func() {
		facts := kb.NewFactSet("battery_low", "charging_not_working", "old_battery")
		ok, proof := inference.Prove("fault_battery", facts, rules)
		Expect(ok).To(BeTrue())

		replay := mustRuleSet("replay", usedRules(proof))
		known, _ := inference.Forward(facts, replay)

		Expect(known.Has("fault_battery")).To(BeTrue())
	})

	It("is complete relative to forward chaining", func() {
		facts := kb.NewFactSet("battery_low", "no_wifi", "router_off")
		known, _ := inference.Forward(facts, rules)

		for _, atom := range known.Sorted() {
			ok, _ := inference.Prove(atom, facts, rules)
			Expect(ok).To(BeTrue(), "expected %q to be provable", atom)
		}
	})
})
