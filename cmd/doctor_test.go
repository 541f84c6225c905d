package cmd

import (
	"strings"
	"testing"

	"github.com/PolarWolf314/envseal/internal/workflows"
)

func TestDoctorCommandExitCodes(t *testing.T) {
	tempDir := setupTestEnvironment(t)
	initializeProject(t)
	writeEnvFile(t, tempDir, ".env", "A=1\n")

	ResetGlobalState()
	exitCode := -1
	SetDoctorExitFunc(func(code int) { exitCode = code })

	output, err := captureOutput(func() error {
		RootCmd.SetArgs([]string{"doctor"})
		return RootCmd.Execute()
	})
	if err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, output)
	}
	if exitCode != 1 {
		t.Errorf("Expected exit code 1 for warnings, got %d", exitCode)
	}
	if !strings.Contains(output, "waiting to be sealed") {
		t.Errorf("Expected unsealed value warning, got: %s", output)
	}
	if !strings.Contains(output, "fix:") {
		t.Errorf("Expected the fix beneath the failing check, got: %s", output)
	}
	if !strings.Contains(output, "checks passed") {
		t.Errorf("Expected a pass count, got: %s", output)
	}
}

func TestDoctorCommandStrict(t *testing.T) {
	tempDir := setupTestEnvironment(t)
	initializeProject(t)
	writeEnvFile(t, tempDir, ".env", "A=1\n")

	ResetGlobalState()
	exitCode := -1
	SetDoctorExitFunc(func(code int) { exitCode = code })

	output, err := captureOutput(func() error {
		RootCmd.SetArgs([]string{"doctor", "--strict"})
		return RootCmd.Execute()
	})
	if err != nil {
		t.Fatalf("doctor --strict failed: %v\n%s", err, output)
	}
	if exitCode != 2 {
		t.Errorf("Expected exit code 2 for warnings under --strict, got %d", exitCode)
	}
}

func TestDoctorExitCode(t *testing.T) {
	tests := []struct {
		name     string
		summary  workflows.DoctorSummary
		strict   bool
		expected int
	}{
		{"AllPassed", workflows.DoctorSummary{Passed: 5}, false, 0},
		{"AllPassedStrict", workflows.DoctorSummary{Passed: 5}, true, 0},
		{"Warnings", workflows.DoctorSummary{Passed: 4, Warnings: 1}, false, 1},
		{"WarningsStrict", workflows.DoctorSummary{Passed: 4, Warnings: 1}, true, 2},
		{"Errors", workflows.DoctorSummary{Passed: 3, Warnings: 1, Errors: 1}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doctorExitCode(tt.summary, tt.strict); got != tt.expected {
				t.Errorf("Expected exit code %d, got %d", tt.expected, got)
			}
		})
	}
}
