package kb

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ruleFile is the on-disk YAML layout for a rule set:
//
//	name: forward
//	rules:
//	  - antecedents: [battery_low]
//	    consequent: power_unstable
//	    description: Low battery can cause unstable power
type ruleFile struct {
	Name  string `yaml:"name"`
	Rules []Rule `yaml:"rules"`
}

// LoadRuleSet reads a rule set from a YAML file. The file's rule order is
// preserved as the rule set's order.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}

	set, err := ParseRuleSet(data, "")
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return set, nil
}

// Resolve returns the forward and backward rule sets for the given file
// paths. An empty path selects the corresponding builtin set.
func Resolve(forwardPath, backwardPath string) (*RuleSet, *RuleSet, error) {
	forward := DefaultForwardRules()
	backward := DefaultBackwardRules()

	if forwardPath != "" {
		var err error
		if forward, err = LoadRuleSet(forwardPath); err != nil {
			return nil, nil, fmt.Errorf("loading forward rules: %w", err)
		}
	}

	if backwardPath != "" {
		var err error
		if backward, err = LoadRuleSet(backwardPath); err != nil {
			return nil, nil, fmt.Errorf("loading backward rules: %w", err)
		}
	}

	return forward, backward, nil
}

// ParseRuleSet parses YAML rule set data. fallbackName is used when the file
// does not carry a name of its own.
func ParseRuleSet(data []byte, fallbackName string) (*RuleSet, error) {
	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("unmarshaling rules: %w", err)
	}

	if len(rf.Rules) == 0 {
		return nil, fmt.Errorf("rule file contains no rules")
	}

	name := rf.Name
	if name == "" {
		name = fallbackName
	}

	return NewRuleSet(name, rf.Rules)
}
