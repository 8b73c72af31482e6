package board

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"fwgen/internal/config"
)

// Profile describes one supported board: the platform toolchain it builds
// for, which pins exist, and the defaults merged into a device description
// when the user leaves fields unset.
type Profile struct {
	Name     string   `yaml:"name"`
	Platform string   `yaml:"platform"`
	Includes []string `yaml:"includes,omitempty"`
	GPIOMin  int      `yaml:"gpioMin"`
	GPIOMax  int      `yaml:"gpioMax"`
	ADCPins  []int    `yaml:"adcPins,omitempty"`
	Defaults Defaults `yaml:"defaults,omitempty"`
}

// Defaults are per-board fallback settings for component fields.
type Defaults struct {
	UpdateInterval string `yaml:"updateInterval,omitempty"`
	RestoreMode    string `yaml:"restoreMode,omitempty"`
}

// Built-in profiles. Kept as YAML so external profile files and built-ins
// share one schema and one loader.
var builtinProfiles = []string{
	`
name: esp32dev
platform: esp32
includes: ["Arduino.h", "esp32-hal-adc.h"]
gpioMin: 0
gpioMax: 39
adcPins: [32, 33, 34, 35, 36, 39]
defaults:
  updateInterval: 60s
  restoreMode: restore_last
`,
	`
name: nodemcuv2
platform: esp8266
includes: ["Arduino.h"]
gpioMin: 0
gpioMax: 16
adcPins: [17]
defaults:
  updateInterval: 60s
  restoreMode: always_off
`,
	`
name: pico-w
platform: rp2040
includes: ["Arduino.h", "hardware/adc.h"]
gpioMin: 0
gpioMax: 29
adcPins: [26, 27, 28]
defaults:
  updateInterval: 30s
  restoreMode: always_off
`,
}

// Registry holds the known board profiles for one generator invocation.
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry returns a registry seeded with the built-in profiles.
func NewRegistry() (*Registry, error) {
	r := &Registry{profiles: make(map[string]*Profile)}
	for _, doc := range builtinProfiles {
		var p Profile
		if err := yaml.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("failed to parse built-in profile: %w", err)
		}
		r.profiles[p.Name] = &p
	}
	return r, nil
}

// LoadDir merges additional profile files (*.yaml, *.yml) into the
// registry. A missing directory is not an error; a file profile overrides
// a built-in of the same name.
func (r *Registry) LoadDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read profile directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read profile %s: %w", path, err)
		}
		var p Profile
		if err := yaml.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("failed to parse profile %s: %w", path, err)
		}
		if p.Name == "" {
			return fmt.Errorf("profile %s must have a name", path)
		}
		r.profiles[p.Name] = &p
	}
	return nil
}

// Get returns a profile by board name, or nil if unknown.
func (r *Registry) Get(name string) *Profile {
	return r.profiles[name]
}

// List returns the known board names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyDefaults overlays profile defaults onto a device description. User
// settings always win; only unset fields are filled in.
func (p *Profile) ApplyDefaults(cfg *config.Config) {
	if cfg.Device.Platform == "" {
		cfg.Device.Platform = p.Platform
	}
	for i := range cfg.Sensors {
		if cfg.Sensors[i].UpdateInterval == "" {
			cfg.Sensors[i].UpdateInterval = p.Defaults.UpdateInterval
		}
	}
	for i := range cfg.Switches {
		if cfg.Switches[i].RestoreMode == "" {
			cfg.Switches[i].RestoreMode = p.Defaults.RestoreMode
		}
	}
}

// CheckPins validates every pin reference in the config against the
// board's pin map: ADC sensors must use ADC-capable pins, everything else
// must fall inside the GPIO range.
func (p *Profile) CheckPins(cfg *config.Config) error {
	for i := range cfg.Sensors {
		s := &cfg.Sensors[i]
		if s.Pin == nil {
			continue
		}
		if s.Platform == "adc" {
			if !p.isADCPin(*s.Pin) {
				return fmt.Errorf("sensor %s: pin %d is not ADC-capable on %s (valid: %v)",
					s.ID, *s.Pin, p.Name, p.ADCPins)
			}
			continue
		}
		if err := p.checkGPIO(*s.Pin); err != nil {
			return fmt.Errorf("sensor %s: %w", s.ID, err)
		}
	}
	for i := range cfg.BinarySensors {
		bs := &cfg.BinarySensors[i]
		if bs.Pin != nil {
			if err := p.checkGPIO(*bs.Pin); err != nil {
				return fmt.Errorf("binary_sensor %s: %w", bs.ID, err)
			}
		}
	}
	for i := range cfg.Switches {
		sw := &cfg.Switches[i]
		if sw.Pin != nil {
			if err := p.checkGPIO(*sw.Pin); err != nil {
				return fmt.Errorf("switch %s: %w", sw.ID, err)
			}
		}
	}
	return nil
}

func (p *Profile) isADCPin(pin int) bool {
	for _, adc := range p.ADCPins {
		if adc == pin {
			return true
		}
	}
	return false
}

func (p *Profile) checkGPIO(pin int) error {
	if pin < p.GPIOMin || pin > p.GPIOMax {
		return fmt.Errorf("pin %d outside GPIO range %d..%d on %s", pin, p.GPIOMin, p.GPIOMax, p.Name)
	}
	return nil
}
