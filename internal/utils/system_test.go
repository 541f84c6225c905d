package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetUsername(t *testing.T) {
	username, err := GetUsername()
	if err != nil {
		t.Fatalf("GetUsername failed: %v", err)
	}
	if username == "" {
		t.Fatal("Expected non-empty username")
	}
}

func TestGetHostname(t *testing.T) {
	hostname, err := GetHostname()
	if err != nil {
		t.Fatalf("GetHostname failed: %v", err)
	}
	if hostname == "" {
		t.Fatal("Expected non-empty hostname")
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create dirs: %v", err)
	}

	t.Run("NotFound", func(t *testing.T) {
		got, err := FindProjectRoot(nested, ".marker-that-does-not-exist")
		if err != nil {
			t.Fatalf("FindProjectRoot failed: %v", err)
		}
		if got != "" {
			t.Errorf("Expected empty root, got %q", got)
		}
	})

	t.Run("FoundAbove", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(root, "a", ".marker"), nil, 0644); err != nil {
			t.Fatalf("Failed to write marker: %v", err)
		}
		got, err := FindProjectRoot(nested, ".marker")
		if err != nil {
			t.Fatalf("FindProjectRoot failed: %v", err)
		}
		if got != filepath.Join(root, "a") {
			t.Errorf("Expected %q, got %q", filepath.Join(root, "a"), got)
		}
	})

	t.Run("DirectoryIsNotMarker", func(t *testing.T) {
		if err := os.Mkdir(filepath.Join(nested, ".dirmarker"), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		got, err := FindProjectRoot(nested, ".dirmarker")
		if err != nil {
			t.Fatalf("FindProjectRoot failed: %v", err)
		}
		if got != "" {
			t.Errorf("Expected directories to be ignored, got %q", got)
		}
	})
}

func TestGetProjectName(t *testing.T) {
	if got := GetProjectName(filepath.Join("/srv", "billing")); got != "billing" {
		t.Errorf("Expected billing, got %q", got)
	}
	if got := GetProjectName(""); got != "" {
		t.Errorf("Expected empty name, got %q", got)
	}
}

func TestRelativePath(t *testing.T) {
	base := filepath.Join("/work", "app")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"Below", filepath.Join(base, "config", ".env"), filepath.Join("config", ".env")},
		{"Outside", filepath.Join("/etc", ".env"), filepath.Join("/etc", ".env")},
		{"Sibling", filepath.Join("/work", "other", ".env"), filepath.Join("/work", "other", ".env")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RelativePath(base, tc.path); got != tc.want {
				t.Errorf("RelativePath(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}

	if got := RelativePath("", "x/.env"); got != "x/.env" {
		t.Errorf("Expected path unchanged with empty base, got %q", got)
	}
}

func TestFormatPaths(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	got := FormatPaths([]string{".env", "api/.env"})
	if !strings.Contains(got, "    - .env\n") || !strings.Contains(got, "    - api/.env\n") {
		t.Errorf("Unexpected output: %q", got)
	}
}
