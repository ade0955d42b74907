package main

import (
	"os/exec"
	"strings"
	"testing"
)

func TestVersionFlag(t *testing.T) {
	buildCmd := exec.Command("go", "build", "-o", "fanwall_test")
	if err := buildCmd.Run(); err != nil {
		t.Fatalf("Failed to build binary: %v", err)
	}
	defer exec.Command("rm", "fanwall_test").Run()

	cmd := exec.Command("./fanwall_test", "-v")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to run with -v flag: %v", err)
	}

	outputStr := strings.TrimSpace(string(output))

	if !strings.HasPrefix(outputStr, "fanwall v") {
		t.Errorf("Expected output to start with 'fanwall v', got: %s", outputStr)
	}

	parts := strings.Split(outputStr, "fanwall v")
	if len(parts) != 2 {
		t.Errorf("Expected format 'fanwall vX.Y.Z', got: %s", outputStr)
	}

	version := parts[1]
	versionParts := strings.Split(version, ".")
	if len(versionParts) != 3 {
		t.Errorf("Expected semantic version format X.Y.Z, got: %s", version)
	}
}

func TestVersionFlagExitCode(t *testing.T) {
	buildCmd := exec.Command("go", "build", "-o", "fanwall_test")
	if err := buildCmd.Run(); err != nil {
		t.Fatalf("Failed to build binary: %v", err)
	}
	defer exec.Command("rm", "fanwall_test").Run()

	cmd := exec.Command("./fanwall_test", "-v")
	if err := cmd.Run(); err != nil {
		t.Errorf("Expected exit code 0, but got error: %v", err)
	}
}
