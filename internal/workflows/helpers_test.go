package workflows

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/envseal/internal/configs"
	"github.com/PolarWolf314/envseal/internal/envelope"
)

var (
	testPassphrase  = []byte("correct horse battery staple")
	otherPassphrase = []byte("tr0ub4dor&3")
)

func testCodec() *envelope.Codec {
	return envelope.New(envelope.WithKDF(envelope.KDF{Time: 1, Memory: 64, Threads: 1}))
}

// setupProject creates an initialized project in a temp directory. mutate,
// when non-nil, adjusts the default config before it is written.
func setupProject(t *testing.T, mutate func(*configs.ProjectConfig)) string {
	t.Helper()
	dir := t.TempDir()

	config := configs.DefaultProjectConfig("testproject")
	if mutate != nil {
		mutate(config)
	}
	if err := configs.SaveProjectConfig(filepath.Join(dir, configs.ConfigFileName), config); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
