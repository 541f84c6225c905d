package workflows

import (
	"context"
	"os"

	"github.com/PolarWolf314/envseal/internal/dotenv"
	"github.com/PolarWolf314/envseal/internal/transform"
)

// FileStatus holds the sealing state of one file.
type FileStatus struct {
	// Path is the relative path of the file.
	Path string

	transform.Status
}

// StatusSummary holds totals across files.
type StatusSummary struct {
	Sealed  int
	Marked  int
	Plain   int
	Invalid int
}

// StatusOptions configures the status workflow.
type StatusOptions struct {
	// Dir is the directory to run in. Defaults to the working directory.
	Dir string

	// FilePatterns specifies files to inspect. If empty, the configured
	// patterns are used.
	FilePatterns []string
}

// StatusResult contains the outcome of a status operation.
type StatusResult struct {
	// ProjectName is the name of the project.
	ProjectName string

	// Initialized is false when no .envseal.toml was found.
	Initialized bool

	Files   []FileStatus
	Summary StatusSummary
}

// Status reports which values of each file are sealed, marked for sealing
// or plain. It needs no passphrase and never modifies files.
//
// Returns ErrNoFilesFound if no files match the patterns.
func Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	proj, err := loadProject(opts.Dir)
	if err != nil {
		return nil, err
	}

	envFiles, err := proj.resolveFiles(opts.FilePatterns)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		ProjectName: proj.name,
		Initialized: proj.initialized,
	}

	for _, path := range envFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		status := transform.Inspect(dotenv.Parse(string(data)))
		result.Files = append(result.Files, FileStatus{Path: proj.rel(path), Status: status})

		result.Summary.Sealed += status.Sealed
		result.Summary.Marked += status.Marked
		result.Summary.Plain += status.Plain
		result.Summary.Invalid += status.Invalid
	}

	return result, nil
}
