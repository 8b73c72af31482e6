package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunGeneratesFirmware(t *testing.T) {
	dir := t.TempDir()
	doc := `
device:
  name: greenhouse
  board: esp32dev
sensors:
  - id: soil_a
    platform: adc
    pin: 32
    filters:
      - multiply: 0.1
  - id: soil_b
    platform: adc
    pin: 33
    filters:
      - multiply: 0.1
switches:
  - id: pump
    pin: 4
`
	cfgPath := filepath.Join(dir, "device.yaml")
	if err := os.WriteFile(cfgPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	outPath := filepath.Join(dir, "main.cpp")

	if code := run([]string{cfgPath, outPath}); code != 0 {
		t.Fatalf("run exited with %d", code)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	src := string(data)
	if !strings.Contains(src, "shared_lambda_") {
		t.Fatalf("expected shared lambdas in output:\n%s", src)
	}
	if !strings.Contains(src, "void setup()") || !strings.Contains(src, "void loop()") {
		t.Fatalf("output missing entry points:\n%s", src)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	if code := run(nil); code == 0 {
		t.Fatalf("no arguments should fail")
	}
	if code := run([]string{filepath.Join(t.TempDir(), "missing.yaml")}); code == 0 {
		t.Fatalf("missing config should fail")
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("device:\n  name: dev\n  board: no-such-board\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if code := run([]string{bad}); code == 0 {
		t.Fatalf("unknown board should fail")
	}
}

func TestRunVersionFlag(t *testing.T) {
	if code := run([]string{"--version"}); code != 0 {
		t.Fatalf("--version should exit 0")
	}
}
