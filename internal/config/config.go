package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"fwgen/internal/diag"
)

// Load reads and parses a device description. Unknown YAML fields are
// rejected so typos surface as load errors instead of silently-ignored
// settings. The returned config is parsed but not yet validated; callers
// merge board defaults first, then call Validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg.source = string(data)
	cfg.path = path
	return &cfg, nil
}

// Path returns the file the config was loaded from, or "" for configs
// built in memory.
func (c *Config) Path() string { return c.path }

// Locate finds a snippet (typically a user lambda body) back in the loaded
// document and reports its 1-based line. Ambiguous or missing snippets
// report ok=false; diagnostics then simply omit the location.
func (c *Config) Locate(snippet string) (line int, ok bool) {
	if c.source == "" {
		return 0, false
	}
	line, _, ok = diag.LocateContext(c.source, snippet)
	return line, ok
}

// ParseInterval parses an update-interval string such as "60s" or "500ms".
// A bare number is taken as seconds. The result is clamped to millisecond
// resolution because that is what the generated firmware APIs take.
func ParseInterval(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative interval: %s", s)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative interval: %s", s)
	}
	if d > 0 && d < time.Millisecond {
		return 0, fmt.Errorf("interval %q is below millisecond resolution", s)
	}
	return d, nil
}
