package utils

import (
	"strings"

	"github.com/PolarWolf314/envseal/internal/ui"
)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// RelativePaths returns paths relative to base where possible.
func RelativePaths(base string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = RelativePath(base, p)
	}
	return out
}
