package configs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// SaveTOML encodes data to a TOML file, creating parent directories.
func SaveTOML(filePath string, data interface{}) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}

	return os.WriteFile(filePath, buf.Bytes(), 0644)
}

// LoadTOML decodes a TOML file into data. Keys that do not map to a field
// are an error, so typos in config files do not go unnoticed.
func LoadTOML(filePath string, data interface{}) error {
	md, err := toml.DecodeFile(filePath, data)
	if err != nil {
		return err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return fmt.Errorf("unknown keys in %s: %s", filepath.Base(filePath), strings.Join(keys, ", "))
	}

	return nil
}
