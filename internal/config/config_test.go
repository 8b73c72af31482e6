package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "device.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadParsesDeviceDescription(t *testing.T) {
	doc := `
device:
  name: greenhouse
  board: esp32dev
sensors:
  - id: soil
    platform: adc
    pin: 34
    update_interval: 30s
    filters:
      - multiply: 0.1
      - lambda: "return x - baseline;"
switches:
  - id: pump
    pin: 4
`
	cfg, err := Load(writeConfig(t, doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Device.Name != "greenhouse" || cfg.Device.Board != "esp32dev" {
		t.Fatalf("device parsed wrong: %+v", cfg.Device)
	}
	if len(cfg.Sensors) != 1 || cfg.Sensors[0].Pin == nil || *cfg.Sensors[0].Pin != 34 {
		t.Fatalf("sensor parsed wrong: %+v", cfg.Sensors)
	}
	if len(cfg.Sensors[0].Filters) != 2 || cfg.Sensors[0].Filters[1].Lambda == "" {
		t.Fatalf("filters parsed wrong: %+v", cfg.Sensors[0].Filters)
	}
	if cfg.Path() == "" {
		t.Fatalf("loaded config should remember its path")
	}

	line, ok := cfg.Locate("return x - baseline;")
	if !ok || line == 0 {
		t.Fatalf("lambda snippet should be locatable, got (%d,%v)", line, ok)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	doc := `
device:
  name: dev
  board: esp32dev
sensores: []
`
	if _, err := Load(writeConfig(t, doc)); err == nil {
		t.Fatalf("expected unknown-field error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestValidateRejectsBrokenConfigs(t *testing.T) {
	base := func() *Config {
		return &Config{
			Device: Device{Name: "dev", Board: "esp32dev"},
			Sensors: []Sensor{
				{ID: "soil", Platform: "adc", Pin: intp(34)},
			},
			Switches: []Switch{
				{ID: "pump", Pin: intp(4)},
			},
		}
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing device name", func(c *Config) { c.Device.Name = "" }, "device name"},
		{"bad device name", func(c *Config) { c.Device.Name = "a b" }, "alphanumeric"},
		{"missing board", func(c *Config) { c.Device.Board = "" }, "board"},
		{"duplicate ids", func(c *Config) { c.Switches[0].ID = "soil" }, "duplicate"},
		{"unknown platform", func(c *Config) { c.Sensors[0].Platform = "dht99" }, "platform"},
		{"adc without pin", func(c *Config) { c.Sensors[0].Pin = nil }, "requires a pin"},
		{"bad interval", func(c *Config) { c.Sensors[0].UpdateInterval = "soon" }, "interval"},
		{"template without lambda", func(c *Config) {
			c.Sensors[0] = Sensor{ID: "t", Platform: "template"}
		}, "lambda"},
		{"filter with two actions", func(c *Config) {
			c.Sensors[0].Filters = []Filter{{Multiply: floatp(2), Offset: floatp(1)}}
		}, "exactly one"},
		{"filter with no action", func(c *Config) {
			c.Sensors[0].Filters = []Filter{{}}
		}, "exactly one"},
		{"clamp inverted bounds", func(c *Config) {
			c.Sensors[0].Filters = []Filter{{Clamp: &Clamp{Min: 5, Max: 1}}}
		}, "clamp"},
		{"switch without pin", func(c *Config) { c.Switches[0].Pin = nil }, "requires a pin"},
		{"unknown restore mode", func(c *Config) { c.Switches[0].RestoreMode = "sometimes" }, "restore_mode"},
		{"self interlock", func(c *Config) { c.Switches[0].InterlockWith = []string{"pump"} }, "itself"},
		{"unknown interlock", func(c *Config) { c.Switches[0].InterlockWith = []string{"ghost"} }, "unknown switch"},
	}

	for _, tc := range cases {
		cfg := base()
		tc.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	cfg := &Config{
		Device: Device{Name: "dev", Board: "esp32dev"},
		Sensors: []Sensor{
			{ID: "soil", Platform: "adc", Pin: intp(34), UpdateInterval: "60s",
				Filters: []Filter{{Multiply: floatp(0.1)}, {Clamp: &Clamp{Min: 0, Max: 100}}}},
			{ID: "virt", Platform: "template", Lambda: "return 1.0;"},
		},
		BinarySensors: []BinarySensor{
			{ID: "door", Pin: intp(12), Inverted: true},
		},
		Switches: []Switch{
			{ID: "pump", Pin: intp(4), RestoreMode: "always_off", InterlockWith: []string{"fan"}},
			{ID: "fan", Pin: intp(5)},
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestParseInterval(t *testing.T) {
	good := []struct {
		in   string
		want time.Duration
	}{
		{"60s", 60 * time.Second},
		{"500ms", 500 * time.Millisecond},
		{"2m", 2 * time.Minute},
		{"15", 15 * time.Second},
		{"0", 0},
	}
	for _, c := range good {
		got, err := ParseInterval(c.in)
		if err != nil || got != c.want {
			t.Fatalf("ParseInterval(%q)=(%v,%v) want %v", c.in, got, err, c.want)
		}
	}

	bad := []string{"soon", "-5", "-2s", "100us", ""}
	for _, in := range bad {
		if _, err := ParseInterval(in); err == nil {
			t.Fatalf("ParseInterval(%q) should fail", in)
		}
	}
}
