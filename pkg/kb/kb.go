// Package kb holds the knowledge-base data model for faultline: propositional
// Horn rules, ordered rule sets, and fact sets. Atoms are opaque, case-sensitive
// string identifiers; the engine assumes no internal structure beyond the
// fault-hypothesis naming convention.
package kb

import (
	"fmt"
	"sort"
	"strings"
)

// FaultPrefix marks an atom as a fault hypothesis. This is a naming
// convention consumed by callers when summarizing forward-chaining results;
// the inference engine itself never inspects it.
const FaultPrefix = "fault_"

// Rule is a single propositional Horn clause: when every antecedent atom
// holds, the consequent atom holds.
type Rule struct {
	Antecedents []string `yaml:"antecedents" json:"antecedents"`
	Consequent  string   `yaml:"consequent" json:"consequent"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
}

// Validate checks that the rule is well-formed: a non-blank consequent and
// non-blank antecedent atoms.
func (r Rule) Validate() error {
	if strings.TrimSpace(r.Consequent) == "" {
		return fmt.Errorf("rule has empty consequent")
	}
	for i, a := range r.Antecedents {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("rule %q: antecedent %d is empty", r.Consequent, i)
		}
	}
	return nil
}

// RuleSet is an ordered, immutable collection of rules. Order matters: forward
// chaining fires rules in list order within a pass, and backward chaining
// commits to the first rule for a consequent that fully succeeds. A RuleSet is
// built once at load time and is safe for concurrent readers.
type RuleSet struct {
	name  string
	rules []Rule
}

// NewRuleSet validates the given rules and returns an immutable RuleSet.
func NewRuleSet(name string, rules []Rule) (*RuleSet, error) {
	owned := make([]Rule, len(rules))
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		ants := make([]string, len(r.Antecedents))
		copy(ants, r.Antecedents)
		owned[i] = Rule{
			Antecedents: ants,
			Consequent:  r.Consequent,
			Description: r.Description,
		}
	}
	return &RuleSet{name: name, rules: owned}, nil
}

// Name returns the rule set's display name.
func (s *RuleSet) Name() string {
	return s.name
}

// Len returns the number of rules.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Rules returns a copy of the rules in load order.
func (s *RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// FactSet is a set of atom names representing ground truths. A FactSet is
// built per request and never shared across concurrent diagnoses.
type FactSet map[string]bool

// NewFactSet builds a FactSet from the given atoms. Duplicates collapse.
func NewFactSet(atoms ...string) FactSet {
	fs := make(FactSet, len(atoms))
	for _, a := range atoms {
		fs[a] = true
	}
	return fs
}

// Has reports whether atom is in the set.
func (f FactSet) Has(atom string) bool {
	return f[atom]
}

// Add inserts atom into the set.
func (f FactSet) Add(atom string) {
	f[atom] = true
}

// Clone returns an independent copy of the set.
func (f FactSet) Clone() FactSet {
	out := make(FactSet, len(f))
	for a := range f {
		out[a] = true
	}
	return out
}

// Sorted returns the atoms in lexical order.
func (f FactSet) Sorted() []string {
	out := make([]string, 0, len(f))
	for a := range f {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
