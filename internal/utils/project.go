package utils

import (
	"path/filepath"
)

// GetProjectName returns the name of the project rooted at projectRoot, which
// is its directory name.
func GetProjectName(projectRoot string) string {
	if projectRoot == "" {
		return ""
	}
	return filepath.Base(projectRoot)
}
