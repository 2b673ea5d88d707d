package kb

// Two builtin rule sets ship with the service. The forward set is broader and
// more permissive, tuned for exploratory hypothesis generation; the backward
// set is stricter, requiring stronger evidence before a fault is provable.
// Keeping them as two distinct RuleSet values keeps the two policies
// independently testable and swappable.

// DefaultForwardRules returns the builtin permissive rule set used for
// forward-chaining diagnosis.
func DefaultForwardRules() *RuleSet {
	return mustRuleSet("forward", []Rule{
		{Antecedents: []string{"battery_low"}, Consequent: "power_unstable", Description: "Low battery can cause unstable power"},
		{Antecedents: []string{"power_unstable"}, Consequent: "system_restarts", Description: "Unstable power can trigger restarts"},
		{Antecedents: []string{"no_wifi", "router_off"}, Consequent: "network_down", Description: "No WiFi and router off implies network down"},
		{Antecedents: []string{"network_down"}, Consequent: "cannot_sync", Description: "If the network is down, syncing fails"},
		{Antecedents: []string{"power_unstable"}, Consequent: "fault_power_supply", Description: "Unstable power suggests power supply fault"},
		{Antecedents: []string{"battery_low", "charging_not_working"}, Consequent: "fault_battery", Description: "Low battery + charging not working suggests battery fault"},
		{Antecedents: []string{"network_down"}, Consequent: "fault_network", Description: "Network down suggests network fault"},
	})
}

// DefaultBackwardRules returns the builtin strict rule set used for
// backward-chaining proofs.
func DefaultBackwardRules() *RuleSet {
	return mustRuleSet("backward", []Rule{
		{Antecedents: []string{"battery_low"}, Consequent: "power_unstable", Description: "Low battery can cause unstable power"},
		{Antecedents: []string{"mains_fluctuation"}, Consequent: "power_unstable", Description: "Mains fluctuation can cause unstable power"},
		{Antecedents: []string{"power_unstable"}, Consequent: "system_restarts", Description: "Unstable power can trigger restarts"},
		{Antecedents: []string{"interference", "weak_signal"}, Consequent: "no_wifi", Description: "Interference and weak signal cause Wi-Fi loss"},
		{Antecedents: []string{"no_wifi", "router_off"}, Consequent: "network_down", Description: "Router off with no Wi-Fi implies network is down"},
		{Antecedents: []string{"network_down"}, Consequent: "cannot_sync", Description: "No network means syncing fails"},
		{Antecedents: []string{"power_unstable", "system_restarts"}, Consequent: "fault_power_supply", Description: "Unstable power AND restarts indicate power supply fault"},
		{Antecedents: []string{"battery_low", "charging_not_working", "old_battery"}, Consequent: "fault_battery", Description: "Low, not charging, and aged battery indicates battery fault"},
		{Antecedents: []string{"no_wifi", "router_off", "cannot_sync"}, Consequent: "fault_network", Description: "No Wi-Fi, router off, and cannot sync indicates network fault"},
	})
}

func mustRuleSet(name string, rules []Rule) *RuleSet {
	s, err := NewRuleSet(name, rules)
	if err != nil {
		panic("kb: invalid builtin rule set " + name + ": " + err.Error())
	}
	return s
}
