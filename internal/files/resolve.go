package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

// StateDir holds envseal's own files, such as the audit log.
const StateDir = ".envseal"

// skippedDirs are never searched when walking a directory.
var skippedDirs = map[string]bool{
	StateDir:       true,
	".git":         true,
	".hg":          true,
	"node_modules": true,
}

// Resolve expands patterns into .env file paths. Results are absolute,
// deduplicated and keep pattern order. Files ending in backupSuffix are
// skipped unless named literally.
//
// Returns ErrFileNotFound for a literal path that does not exist,
// ErrInvalidFileType for a literal path that is not a .env file and
// ErrNoFilesFound when nothing matched.
func Resolve(patterns []string, projectPath, backupSuffix string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{".env"}
	}

	var files []string
	seen := make(map[string]bool) // Deduplicate.

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, projectPath, backupSuffix)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNoFilesFound, strings.Join(patterns, ", "))
	}

	return files, nil
}

func resolvePattern(pattern, projectPath, backupSuffix string) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(projectPath, pattern)
	}

	// Check if it's a directory.
	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findFilesInDir(absPattern, backupSuffix)
	}

	// Check if it contains glob characters.
	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(absPattern, pattern, backupSuffix)
	}

	// Treat as literal file path.
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, pattern)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", pattern, err)
	}

	if !info.Mode().IsRegular() || !IsEnvFile(absPattern) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrInvalidFileType, pattern)
	}

	return []string{filepath.Clean(absPattern)}, nil
}

func expandGlob(absPattern, pattern, backupSuffix string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if inSkippedDir(m) || isBackup(m, backupSuffix) || !IsEnvFile(m) {
			continue
		}
		filtered = append(filtered, m)
	}

	return filtered, nil
}

func findFilesInDir(dir, backupSuffix string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip irregular files.
		if !d.Type().IsRegular() {
			return nil
		}

		if IsEnvFile(path) && !isBackup(path, backupSuffix) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// IsEnvFile reports whether the file name looks like a dotenv file:
// ".env", ".env.local", "prod.env" and similar.
func IsEnvFile(path string) bool {
	base := filepath.Base(path)
	return base == ".env" || strings.HasPrefix(base, ".env.") || strings.HasSuffix(base, ".env")
}

func isBackup(path, backupSuffix string) bool {
	return backupSuffix != "" && strings.HasSuffix(path, backupSuffix)
}

func inSkippedDir(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		if skippedDirs[part] {
			return true
		}
	}
	return false
}
