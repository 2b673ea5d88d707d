package inference

import "github.com/faultlinehq/faultline/pkg/kb"

// StepKind classifies how a subgoal was resolved during backward chaining.
type StepKind string

const (
	// StepGiven means the goal was already a known fact.
	StepGiven StepKind = "given"

	// StepInferred means the goal was derived via a rule whose antecedents
	// all proved.
	StepInferred StepKind = "inferred"

	// StepCycle means the goal was already being proven higher in the
	// current search path; the path is abandoned to guarantee termination.
	StepCycle StepKind = "cycle"

	// StepNotProvable means the goal is not a given fact and no rule for it
	// fully succeeds. Its subproof records the failed rule attempts so a
	// caller can see where each candidate derivation broke down.
	StepNotProvable StepKind = "not-provable"
)

// ProofStep describes how one subgoal was satisfied (or why it was not).
// Inferred steps carry the rule used and the ordered subproofs of its
// antecedents.
type ProofStep struct {
	Goal     string      `json:"goal"`
	Kind     StepKind    `json:"type"`
	Using    *kb.Rule    `json:"using,omitempty"`
	Subproof []ProofStep `json:"subproof,omitempty"`
}

// Prove attempts to derive goal from facts using the rule set, depth first.
//
// Resolution order for a goal: a given fact wins immediately; a goal already
// on the active search path fails as a cycle; otherwise rules concluding the
// goal are tried in list order, antecedents proven left to right with
// short-circuit on the first failure. The first rule whose antecedents all
// prove is committed to — no alternative rules are explored once one fully
// succeeds. Recursion depth is bounded by the number of distinct atoms, so
// Prove always terminates.
func Prove(goal string, facts kb.FactSet, rules *kb.RuleSet) (bool, []ProofStep) {
	return prove(goal, facts, rules.Rules(), make(map[string]bool))
}

// visited holds the atoms on the active proof path only. Entries are removed
// on the way back out, so a cycle is judged against the ancestors of the
// current subgoal, never against sibling branches: two independent branches
// may each prove the same intermediate atom, and a later rule for a goal is
// unaffected by an earlier rule's failed partial attempt.
func prove(goal string, facts kb.FactSet, rules []kb.Rule, visited map[string]bool) (bool, []ProofStep) {
	if facts.Has(goal) {
		return true, []ProofStep{{Goal: goal, Kind: StepGiven}}
	}

	if visited[goal] {
		return false, []ProofStep{{Goal: goal, Kind: StepCycle}}
	}

	visited[goal] = true
	defer delete(visited, goal)

	var attempts []ProofStep
	for i := range rules {
		r := rules[i]
		if r.Consequent != goal {
			continue
		}

		var subproof []ProofStep
		allOK := true
		for _, subgoal := range r.Antecedents {
			ok, steps := prove(subgoal, facts, rules, visited)
			subproof = append(subproof, steps...)
			if !ok {
				allOK = false
				break
			}
		}

		if allOK {
			return true, []ProofStep{{
				Goal:     goal,
				Kind:     StepInferred,
				Using:    &r,
				Subproof: subproof,
			}}
		}

		attempts = append(attempts, subproof...)
	}

	return false, []ProofStep{{Goal: goal, Kind: StepNotProvable, Subproof: attempts}}
}
