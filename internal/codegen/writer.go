package codegen

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// WriteSource writes the generated C++ to outputPath and, when a
// clang-format binary is on PATH, reformats the file in place. Formatting
// is cosmetic; a failing or missing formatter leaves the plain output.
func WriteSource(source string, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %v", err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(source), 0o644); err != nil {
		return fmt.Errorf("failed to write source: %v", err)
	}

	if _, err := exec.LookPath("clang-format"); err == nil {
		cmd := exec.Command("clang-format", "-i", outputPath)
		_, _ = cmd.CombinedOutput()
	}
	return nil
}
