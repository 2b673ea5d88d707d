// Package diagnose is the caller-facing diagnosis layer. It normalizes raw
// fact input, runs the inference engines over the configured rule sets, and
// shapes the results into transport-ready reports. The API server and the
// one-shot CLI both sit on top of this package.
package diagnose

import (
	"crypto/rand"
	"sort"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/faultlinehq/faultline/pkg/inference"
	"github.com/faultlinehq/faultline/pkg/kb"
)

// Service runs diagnoses against a fixed pair of rule sets. The rule sets are
// read-only, so one Service may serve any number of concurrent requests.
type Service struct {
	forward  *kb.RuleSet
	backward *kb.RuleSet

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewService builds a Service over the given forward and backward rule sets.
func NewService(forward, backward *kb.RuleSet) *Service {
	return &Service{
		forward:  forward,
		backward: backward,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

// ForwardReport is the result of a forward-chaining diagnosis.
type ForwardReport struct {
	ID           string                 `json:"id"`
	InputFacts   []string               `json:"input_facts"`
	DerivedFacts []string               `json:"derived_facts"`
	Trace        []inference.TraceEntry `json:"trace"`
	Faults       []string               `json:"faults"`
}

// BackwardReport is the result of a backward-chaining proof attempt.
type BackwardReport struct {
	ID       string                `json:"id"`
	Goal     string                `json:"goal"`
	Facts    []string              `json:"facts"`
	Provable bool                  `json:"provable"`
	Proof    []inference.ProofStep `json:"proof"`
}

// RulesReport is a read-only dump of both rule sets for client display.
type RulesReport struct {
	ForwardRules  []kb.Rule `json:"forward_rules"`
	BackwardRules []kb.Rule `json:"backward_rules"`
	FaultPrefix   string    `json:"fault_prefix"`
}

// Forward derives every fact reachable from the given facts under the forward
// rule set and flags derived fault hypotheses. Input facts are trimmed,
// blanks dropped, and duplicates collapsed before chaining.
func (s *Service) Forward(facts []string) ForwardReport {
	input := normalize(facts)
	known, trace := inference.Forward(input, s.forward)

	derived := make([]string, 0, len(known)-len(input))
	faults := make([]string, 0)
	for atom := range known {
		if !input.Has(atom) {
			derived = append(derived, atom)
		}
		if strings.HasPrefix(atom, kb.FaultPrefix) {
			faults = append(faults, atom)
		}
	}
	sort.Strings(derived)
	sort.Strings(faults)

	return ForwardReport{
		ID:           s.newID(),
		InputFacts:   input.Sorted(),
		DerivedFacts: derived,
		Trace:        trace,
		Faults:       faults,
	}
}

// Backward attempts to prove goal from the given facts under the backward
// rule set. The goal is trimmed; fact normalization matches Forward.
func (s *Service) Backward(facts []string, goal string) BackwardReport {
	input := normalize(facts)
	goal = strings.TrimSpace(goal)
	provable, proof := inference.Prove(goal, input, s.backward)

	return BackwardReport{
		ID:       s.newID(),
		Goal:     goal,
		Facts:    input.Sorted(),
		Provable: provable,
		Proof:    proof,
	}
}

// Rules returns both rule sets and the fault-prefix convention. No
// computation happens here; it exists so clients can render the knowledge
// base.
func (s *Service) Rules() RulesReport {
	return RulesReport{
		ForwardRules:  s.forward.Rules(),
		BackwardRules: s.backward.Rules(),
		FaultPrefix:   kb.FaultPrefix,
	}
}

func (s *Service) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Now(), s.entropy).String()
}

// normalize trims whitespace, drops empty strings, and dedups into a FactSet.
func normalize(facts []string) kb.FactSet {
	fs := make(kb.FactSet, len(facts))
	for _, f := range facts {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		fs.Add(f)
	}
	return fs
}
