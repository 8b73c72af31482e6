package config

import (
	"fmt"
	"regexp"
)

// Config is the root of a declarative device description. It names the
// device and board, and lists the components the generated firmware must
// carry. Board-profile defaults are merged into it before validation.
type Config struct {
	Device        Device         `yaml:"device"`
	Sensors       []Sensor       `yaml:"sensors,omitempty"`
	BinarySensors []BinarySensor `yaml:"binary_sensors,omitempty"`
	Switches      []Switch       `yaml:"switches,omitempty"`

	// source and path keep the raw document around so components can be
	// located back to their config lines for diagnostics.
	source string
	path   string
}

// Device identifies the target hardware. Platform may be omitted; it is
// then filled in from the board profile.
type Device struct {
	Name     string `yaml:"name"`
	Board    string `yaml:"board"`
	Platform string `yaml:"platform,omitempty"`
}

// Sensor describes one numeric sensor: where it reads from, how often, and
// the filter chain applied to every raw reading.
type Sensor struct {
	ID             string   `yaml:"id"`
	Platform       string   `yaml:"platform"`
	Pin            *int     `yaml:"pin,omitempty"`
	UpdateInterval string   `yaml:"update_interval,omitempty"`
	Filters        []Filter `yaml:"filters,omitempty"`

	// Lambda is a user-supplied C++ body for template sensors. It may
	// reference enclosing firmware state, so generated code always keeps
	// it inline.
	Lambda string `yaml:"lambda,omitempty"`
}

// Filter is one step of a sensor's filter chain. Exactly one of the fields
// must be set.
type Filter struct {
	Multiply *float64 `yaml:"multiply,omitempty"`
	Offset   *float64 `yaml:"offset,omitempty"`
	Clamp    *Clamp   `yaml:"clamp,omitempty"`
	Lambda   string   `yaml:"lambda,omitempty"`
}

// Clamp bounds a reading to [Min, Max].
type Clamp struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// BinarySensor describes an on/off input pin.
type BinarySensor struct {
	ID       string `yaml:"id"`
	Pin      *int   `yaml:"pin,omitempty"`
	Inverted bool   `yaml:"inverted,omitempty"`
}

// Switch describes an output pin with optional interlocking against other
// switches.
type Switch struct {
	ID            string   `yaml:"id"`
	Pin           *int     `yaml:"pin,omitempty"`
	RestoreMode   string   `yaml:"restore_mode,omitempty"`
	InterlockWith []string `yaml:"interlock_with,omitempty"`
}

var identRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateIdentifier checks that a config ID uses only alphanumerics,
// dashes and underscores.
func ValidateIdentifier(value string) error {
	if !identRe.MatchString(value) {
		return fmt.Errorf("value must contain only alphanumeric characters, dashes, and underscores: %s", value)
	}
	return nil
}

var sensorPlatforms = map[string]bool{
	"adc":           true,
	"pulse_counter": true,
	"template":      true,
}

var restoreModes = map[string]bool{
	"always_off":   true,
	"always_on":    true,
	"restore_last": true,
}

// Validate checks one filter: exactly one action, and clamp bounds ordered.
func (f *Filter) Validate() error {
	set := 0
	if f.Multiply != nil {
		set++
	}
	if f.Offset != nil {
		set++
	}
	if f.Clamp != nil {
		set++
	}
	if f.Lambda != "" {
		set++
	}
	if set != 1 {
		return fmt.Errorf("filter must set exactly one of multiply, offset, clamp, lambda")
	}
	if f.Clamp != nil && f.Clamp.Min > f.Clamp.Max {
		return fmt.Errorf("clamp min %g exceeds max %g", f.Clamp.Min, f.Clamp.Max)
	}
	return nil
}

// Validate checks one sensor in isolation.
func (s *Sensor) Validate() error {
	if err := ValidateIdentifier(s.ID); err != nil {
		return fmt.Errorf("invalid sensor id: %w", err)
	}
	if !sensorPlatforms[s.Platform] {
		return fmt.Errorf("unknown sensor platform: %s", s.Platform)
	}
	switch s.Platform {
	case "template":
		if s.Lambda == "" {
			return fmt.Errorf("template sensor %s requires a lambda", s.ID)
		}
	default:
		if s.Pin == nil {
			return fmt.Errorf("%s sensor %s requires a pin", s.Platform, s.ID)
		}
	}
	if s.UpdateInterval != "" {
		if _, err := ParseInterval(s.UpdateInterval); err != nil {
			return fmt.Errorf("sensor %s: %w", s.ID, err)
		}
	}
	for i := range s.Filters {
		if err := s.Filters[i].Validate(); err != nil {
			return fmt.Errorf("sensor %s filter %d: %w", s.ID, i, err)
		}
	}
	return nil
}

// Validate performs whole-document validation: per-component checks, ID
// uniqueness across all component kinds, and interlock cross-references.
func (c *Config) Validate() error {
	if c.Device.Name == "" {
		return fmt.Errorf("device name is required")
	}
	if err := ValidateIdentifier(c.Device.Name); err != nil {
		return fmt.Errorf("invalid device name: %w", err)
	}
	if c.Device.Board == "" {
		return fmt.Errorf("device board is required")
	}

	ids := make(map[string]bool)
	claim := func(id string) error {
		if ids[id] {
			return fmt.Errorf("duplicate component id: %s", id)
		}
		ids[id] = true
		return nil
	}

	for i := range c.Sensors {
		if err := c.Sensors[i].Validate(); err != nil {
			return err
		}
		if err := claim(c.Sensors[i].ID); err != nil {
			return err
		}
	}

	switchIDs := make(map[string]bool)
	for i := range c.Switches {
		sw := &c.Switches[i]
		if err := ValidateIdentifier(sw.ID); err != nil {
			return fmt.Errorf("invalid switch id: %w", err)
		}
		if sw.Pin == nil {
			return fmt.Errorf("switch %s requires a pin", sw.ID)
		}
		if sw.RestoreMode != "" && !restoreModes[sw.RestoreMode] {
			return fmt.Errorf("switch %s: unknown restore_mode %q", sw.ID, sw.RestoreMode)
		}
		if err := claim(sw.ID); err != nil {
			return err
		}
		switchIDs[sw.ID] = true
	}

	for i := range c.BinarySensors {
		bs := &c.BinarySensors[i]
		if err := ValidateIdentifier(bs.ID); err != nil {
			return fmt.Errorf("invalid binary_sensor id: %w", err)
		}
		if bs.Pin == nil {
			return fmt.Errorf("binary_sensor %s requires a pin", bs.ID)
		}
		if err := claim(bs.ID); err != nil {
			return err
		}
	}

	for i := range c.Switches {
		sw := &c.Switches[i]
		for _, other := range sw.InterlockWith {
			if other == sw.ID {
				return fmt.Errorf("switch %s interlocks with itself", sw.ID)
			}
			if !switchIDs[other] {
				return fmt.Errorf("switch %s interlocks with unknown switch %s", sw.ID, other)
			}
		}
	}

	return nil
}
