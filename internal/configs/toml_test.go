package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testSection struct {
	Name    string   `toml:"name"`
	Workers int      `toml:"workers"`
	Globs   []string `toml:"globs"`
}

type testDocument struct {
	Section testSection `toml:"section"`
}

func TestSaveAndLoadTOML(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.toml")

	original := testDocument{Section: testSection{
		Name:    "api",
		Workers: 3,
		Globs:   []string{".env", "**/.env.*"},
	}}

	if err := SaveTOML(testFile, original); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	var loaded testDocument
	if err := LoadTOML(testFile, &loaded); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	if loaded.Section.Name != original.Section.Name {
		t.Errorf("Expected Name %q, got %q", original.Section.Name, loaded.Section.Name)
	}
	if loaded.Section.Workers != original.Section.Workers {
		t.Errorf("Expected Workers %d, got %d", original.Section.Workers, loaded.Section.Workers)
	}
	if strings.Join(loaded.Section.Globs, ",") != strings.Join(original.Section.Globs, ",") {
		t.Errorf("Expected Globs %v, got %v", original.Section.Globs, loaded.Section.Globs)
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	var data testDocument
	if err := LoadTOML(filepath.Join(t.TempDir(), "nonexistent.toml"), &data); err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
}

func TestLoadTOMLRejectsUnknownKeys(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "typo.toml")
	content := "[section]\nname = \"api\"\nworkerz = 2\n"
	if err := os.WriteFile(testFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	var data testDocument
	err := LoadTOML(testFile, &data)
	if err == nil {
		t.Fatal("Expected error for unknown key, got nil")
	}
	if !strings.Contains(err.Error(), "section.workerz") {
		t.Errorf("Expected error to name the key, got %v", err)
	}
}

func TestSaveTOMLCreatesDirectory(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "subdir", "test.toml")

	if err := SaveTOML(testFile, testDocument{Section: testSection{Name: "Test"}}); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	if _, err := os.Stat(testFile); os.IsNotExist(err) {
		t.Fatal("File was not created")
	}
}
