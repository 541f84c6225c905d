package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/envseal/internal/audit"
	"github.com/PolarWolf314/envseal/internal/dotenv"
	"github.com/PolarWolf314/envseal/internal/envelope"
	"github.com/PolarWolf314/envseal/internal/files"
	logger "github.com/PolarWolf314/envseal/internal/logging"
	"github.com/PolarWolf314/envseal/internal/transform"
)

// FileReport is the outcome for one file.
type FileReport struct {
	// Path is relative to the project root when the file is inside it.
	Path string

	// Changed counts the values that were sealed, revealed or rotated.
	Changed int

	Errors   []transform.LineError
	Warnings []transform.LineWarning

	// Backup is the path of the backup copy, if one was written.
	Backup string

	// Content holds the rendered document when the caller asked for output
	// instead of an in-place write.
	Content string
}

// FilesResult summarizes a workflow over several files.
type FilesResult struct {
	Files []FileReport

	// ProjectPath is the project root, or the working directory outside a
	// project.
	ProjectPath string

	// DryRun indicates whether this was a dry-run (no files modified).
	DryRun bool
}

// Changed is the total number of changed values.
func (r *FilesResult) Changed() int {
	n := 0
	for _, f := range r.Files {
		n += f.Changed
	}
	return n
}

// Failed is the total number of lines that failed.
func (r *FilesResult) Failed() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Errors)
	}
	return n
}

// Paths lists the reported file paths.
func (r *FilesResult) Paths() []string {
	paths := make([]string, len(r.Files))
	for i, f := range r.Files {
		paths[i] = f.Path
	}
	return paths
}

// writeMode says what happens to a transformed document.
type writeMode int

const (
	writeInPlace writeMode = iota
	writeNone
	writeCapture
	writeTo
)

// run describes one pass of the engine over a set of files.
type run struct {
	proj      *project
	files     []string
	transform transform.Options
	codec     *envelope.Codec
	log       logger.Logger

	mode     writeMode
	output   string // for writeTo
	noBackup bool
}

// process transforms every file in order. A FailFast line error or a
// cancelled context stops processing and is returned; other line errors are
// reported per file.
func (r *run) process(ctx context.Context) ([]FileReport, error) {
	engine := transform.New(r.codec, r.log)
	reports := make([]FileReport, 0, len(r.files))

	for _, path := range r.files {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		report, err := r.processFile(ctx, engine, path)
		if err != nil {
			return reports, fmt.Errorf("%s: %w", r.proj.rel(path), err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *run) processFile(ctx context.Context, engine *transform.Engine, path string) (FileReport, error) {
	report := FileReport{Path: r.proj.rel(path)}

	data, err := os.ReadFile(path)
	if err != nil {
		return report, err
	}

	r.log.Infof("Processing %s", report.Path)
	result, err := engine.Transform(ctx, dotenv.Parse(string(data)), r.transform)
	if err != nil {
		return report, err
	}

	report.Changed = result.Changed
	report.Errors = result.Errors
	report.Warnings = result.Warnings
	for _, w := range result.Warnings {
		r.log.Warnf("%s: %s", report.Path, w)
	}

	rendered := result.Document.Render()

	switch r.mode {
	case writeNone:
		return report, nil
	case writeCapture:
		report.Content = rendered
		return report, nil
	case writeTo:
		if err := files.WriteAtomic(r.output, []byte(rendered), 0600); err != nil {
			return report, err
		}
		return report, nil
	}

	if result.Changed == 0 {
		r.log.Debugf("%s unchanged", report.Path)
		return report, nil
	}

	if r.proj.config.Files.Backup && !r.noBackup {
		backup, err := files.Backup(path, r.proj.config.Files.BackupSuffix)
		if err != nil {
			return report, err
		}
		report.Backup = r.proj.rel(backup)
		r.log.Debugf("Backed up %s to %s", report.Path, report.Backup)
	}

	if err := files.WriteAtomic(path, []byte(rendered), 0600); err != nil {
		return report, err
	}
	return report, nil
}

// record appends an audit entry for a finished run.
func (r *run) record(op string, reports []FileReport) {
	if r.mode != writeInPlace {
		return
	}
	entry := audit.NewEntry(op)
	if op == "encrypt" {
		entry.Policy = r.transform.Policy.String()
	}
	for _, f := range reports {
		entry.Files = append(entry.Files, f.Path)
		entry.Changed += f.Changed
		entry.Failed += len(f.Errors)
	}
	audit.Log(r.proj.auditPath(), entry)
}

// workers picks the flag value when set, else the configured one.
func (p *project) workers(flag int) int {
	if flag > 0 {
		return flag
	}
	return p.config.Transform.Workers
}
