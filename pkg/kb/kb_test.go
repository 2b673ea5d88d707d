package kb_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/faultlinehq/faultline/pkg/kb"
)

var _ = Describe("RuleSet", func() {
	It("preserves rule order", func() {
		set, err := kb.NewRuleSet("ordered", []kb.Rule{
			{Antecedents: []string{"a"}, Consequent: "b"},
			{Antecedents: []string{"b"}, Consequent: "c"},
		})
		Expect(err).NotTo(HaveOccurred())

		rules := set.Rules()
		Expect(rules).To(HaveLen(2))
		Expect(rules[0].Consequent).To(Equal("b"))
		Expect(rules[1].Consequent).To(Equal("c"))
	})

	It("rejects a rule with an empty consequent", func() {
		_, err := kb.NewRuleSet("bad", []kb.Rule{
			{Antecedents: []string{"a"}, Consequent: "  "},
		})
		Expect(err).To(MatchError(ContainSubstring("empty consequent")))
	})

	It("rejects a rule with a blank antecedent", func() {
		_, err := kb.NewRuleSet("bad", []kb.Rule{
			{Antecedents: []string{"a", ""}, Consequent: "b"},
		})
		Expect(err).To(MatchError(ContainSubstring("antecedent 1 is empty")))
	})

	It("is not affected by mutation of the input or output slices", func() {
		input := []kb.Rule{{Antecedents: []string{"a"}, Consequent: "b"}}
		set, err := kb.NewRuleSet("immutable", input)
		Expect(err).NotTo(HaveOccurred())

		input[0].Consequent = "changed"
		out := set.Rules()
		out[0].Consequent = "also changed"

		Expect(set.Rules()[0].Consequent).To(Equal("b"))
	})
})

var _ = Describe("FactSet", func() {
	It("collapses duplicates and sorts", func() {
		fs := kb.NewFactSet("b", "a", "b")

		Expect(fs).To(HaveLen(2))
		Expect(fs.Sorted()).To(Equal([]string{"a", "b"}))
	})

	It("clones independently", func() {
		fs := kb.NewFactSet("a")
		clone := fs.Clone()
		clone.Add("b")

		Expect(fs.Has("b")).To(BeFalse())
		Expect(clone.Has("b")).To(BeTrue())
	})
})

var _ = Describe("Builtin rule sets", func() {
	It("ships a permissive forward set and a strict backward set", func() {
		forward := kb.DefaultForwardRules()
		backward := kb.DefaultBackwardRules()

		Expect(forward.Name()).To(Equal("forward"))
		Expect(forward.Len()).To(Equal(7))
		Expect(backward.Name()).To(Equal("backward"))
		Expect(backward.Len()).To(Equal(9))
	})

	It("requires stronger evidence for faults in the backward set", func() {
		for _, r := range kb.DefaultBackwardRules().Rules() {
			if r.Consequent == "fault_power_supply" {
				Expect(r.Antecedents).To(Equal([]string{"power_unstable", "system_restarts"}))
			}
		}
	})
})
