// Package inference implements the two propositional Horn-clause inference
// algorithms faultline is built around: forward chaining (fixed-point
// saturation with a firing trace) and backward chaining (goal-directed
// depth-first proof search with cycle detection).
//
// Both are pure functions of their inputs plus a read-only RuleSet: no I/O,
// no shared mutable state, and guaranteed termination, so they are safe to
// call concurrently from any number of requests.
package inference

import "github.com/faultlinehq/faultline/pkg/kb"

// TraceEntry records one rule firing during forward chaining, in the order
// it fired.
type TraceEntry struct {
	Antecedents []string `json:"antecedents"`
	Consequent  string   `json:"consequent"`
	Description string   `json:"description,omitempty"`
}

// Forward saturates the given facts under the rule set and returns all known
// facts (input plus derived) together with the firing trace.
//
// The algorithm is naive fixed-point iteration: repeat passes over the rules
// in list order, firing any rule whose antecedents are all known and whose
// consequent is not, until a full pass adds nothing. Termination is
// guaranteed because the known set only grows and is bounded by the finite
// atom universe. The resulting set is the least model containing facts and
// closed under rules; rule order affects only the trace order, which is
// deterministic for a fixed rule set.
func Forward(facts kb.FactSet, rules *kb.RuleSet) (kb.FactSet, []TraceEntry) {
	known := facts.Clone()
	trace := []TraceEntry{}

	ruleList := rules.Rules()
	for applied := true; applied; {
		applied = false
		for _, r := range ruleList {
			if known.Has(r.Consequent) || !allKnown(known, r.Antecedents) {
				continue
			}
			known.Add(r.Consequent)
			trace = append(trace, TraceEntry{
				Antecedents: r.Antecedents,
				Consequent:  r.Consequent,
				Description: r.Description,
			})
			applied = true
		}
	}

	return known, trace
}

func allKnown(known kb.FactSet, atoms []string) bool {
	for _, a := range atoms {
		if !known.Has(a) {
			return false
		}
	}
	return true
}
