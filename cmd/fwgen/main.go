package main

import (
	"fmt"
	"os"

	"github.com/xyproto/env/v2"

	"fwgen/internal/board"
	"fwgen/internal/codegen"
	"fwgen/internal/config"
)

// Version can be set during build time
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Println("fwgen - firmware code generator")
		fmt.Printf("Version: %s\n", Version)
		fmt.Println("Usage: fwgen <config-file> [output-file]")
		fmt.Println("       fwgen --version")
		fmt.Println("Environment: FWGEN_OUT, FWGEN_BOARD_DIR, FWGEN_VERBOSE")
		return 1
	}

	if args[0] == "--version" || args[0] == "-v" {
		fmt.Printf("fwgen v%s\n", Version)
		return 0
	}

	cfg, err := config.Load(args[0])
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return 1
	}

	boards, err := board.NewRegistry()
	if err != nil {
		fmt.Printf("Error loading board profiles: %v\n", err)
		return 1
	}
	if dir := env.Str("FWGEN_BOARD_DIR", ""); dir != "" {
		if err := boards.LoadDir(dir); err != nil {
			fmt.Printf("Error loading board profiles from %s: %v\n", dir, err)
			return 1
		}
	}

	profile := boards.Get(cfg.Device.Board)
	if profile == nil {
		fmt.Printf("Unknown board %q (known: %v)\n", cfg.Device.Board, boards.List())
		return 1
	}

	profile.ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Validation error: %v\n", err)
		return 1
	}
	if err := profile.CheckPins(cfg); err != nil {
		fmt.Printf("Pin validation error: %v\n", err)
		return 1
	}

	cg := codegen.New(cfg, profile)
	source := cg.Generate()
	if errs := cg.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("Codegen error: %s\n", e)
		}
		return 1
	}

	out := env.Str("FWGEN_OUT", "main.cpp")
	if len(args) >= 2 {
		out = args[1]
	}
	if err := codegen.WriteSource(source, out); err != nil {
		fmt.Printf("Error writing output: %v\n", err)
		return 1
	}

	fmt.Printf("Generated %s for device %q\n", out, cfg.Device.Name)
	if env.Bool("FWGEN_VERBOSE") {
		fmt.Printf("  board: %s (platform %s)\n", profile.Name, cfg.Device.Platform)
		fmt.Printf("  sensors: %d, binary_sensors: %d, switches: %d\n",
			len(cfg.Sensors), len(cfg.BinarySensors), len(cfg.Switches))
		fmt.Printf("  shared lambdas: %d\n", cg.SharedLambdaCount())
	}
	return 0
}
