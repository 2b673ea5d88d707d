package config

// Config represents the persistent faultline configuration stored as
// config.toml in the .faultline/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version int          `toml:"version"`
	API     APIConfig    `toml:"api"`
	Rules   RulesConfig  `toml:"rules"`
	Client  ClientConfig `toml:"client"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// RulesConfig points at user-supplied YAML rule files. Empty paths mean the
// builtin rule sets are used.
type RulesConfig struct {
	ForwardPath  string `toml:"forward_path,omitempty"`
	BackwardPath string `toml:"backward_path,omitempty"`
}

// ClientConfig holds settings for CLI commands that connect to a running API
// server. Values are full URLs (scheme + host + port).
type ClientConfig struct {
	APITarget string `toml:"api_target,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"rules.forward_path": {
		get: func(c *Config) string { return c.Rules.ForwardPath },
		set: func(c *Config, v string) error { c.Rules.ForwardPath = v; return nil },
	},
	"rules.backward_path": {
		get: func(c *Config) string { return c.Rules.BackwardPath },
		set: func(c *Config, v string) error { c.Rules.BackwardPath = v; return nil },
	},
	"client.api_target": {
		get: func(c *Config) string { return c.Client.APITarget },
		set: func(c *Config, v string) error { c.Client.APITarget = v; return nil },
	},
}
