/*
Package config loads abacus engine settings from YAML or JSON.

# Config

Config wraps a decoded document and extracts typed values with defaults.
Keys may be dotted paths into nested sections:

	cfg, err := config.FromFile("abacus.yaml")
	if err != nil {
	    return err
	}
	dir := cfg.String("lookup.base_dir", "")
	timeout := cfg.Duration("resolver.timeout", 0)

A missing key or a value of the wrong type yields the default.

# Settings

LoadSettings reads the keys the engine understands:

	lookup:
	  base_dir: ./tables
	  delimiter: ","
	resolver:
	  memoize: true
	  timeout: 2s
	observability:
	  tracing: false
	  metrics: false
	log:
	  level: warn

Unlike the plain accessors, LoadSettings validates what it reads and
returns an error for a malformed delimiter, timeout or log level.

Config is safe for concurrent reads.
*/
package config
