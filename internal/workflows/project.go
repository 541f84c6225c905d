package workflows

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/envseal/internal/configs"
	"github.com/PolarWolf314/envseal/internal/files"
	"github.com/PolarWolf314/envseal/internal/utils"
)

// project is the resolved context every file workflow runs in.
type project struct {
	// dir is the directory the command was run from. Patterns given on the
	// command line are relative to it.
	dir string

	// root is the directory holding .envseal.toml, or dir outside a project.
	root   string
	name   string
	config *configs.ProjectConfig

	// initialized is false when no .envseal.toml was found.
	initialized bool
}

// loadProject finds the project containing dir (the working directory when
// empty) and loads its configuration. Outside a project the defaults apply.
func loadProject(dir string) (*project, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		dir = cwd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	if err := configs.InitProjectSettingsFrom(dir); err != nil {
		return nil, fmt.Errorf("initializing project settings: %w", err)
	}
	settings := configs.ProjectEnvsealSettings

	if settings.ProjectPath == "" {
		name := utils.GetProjectName(dir)
		return &project{
			dir:    dir,
			root:   dir,
			name:   name,
			config: configs.DefaultProjectConfig(name),
		}, nil
	}

	config, err := configs.LoadProjectConfig(settings.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &project{
		dir:         dir,
		root:        settings.ProjectPath,
		name:        settings.ProjectName,
		config:      config,
		initialized: true,
	}, nil
}

// resolveFiles expands command-line patterns relative to the working
// directory, or the configured patterns relative to the project root.
func (p *project) resolveFiles(patterns []string) ([]string, error) {
	suffix := p.config.Files.BackupSuffix
	if len(patterns) > 0 {
		return files.Resolve(patterns, p.dir, suffix)
	}
	return files.Resolve(p.config.Files.Patterns, p.root, suffix)
}

// auditPath returns the audit log location, or "" when auditing is off or
// there is no project to log into.
func (p *project) auditPath() string {
	if !p.initialized || !p.config.Audit.Enabled || p.config.Audit.Path == "" {
		return ""
	}
	if filepath.IsAbs(p.config.Audit.Path) {
		return p.config.Audit.Path
	}
	return filepath.Join(p.root, p.config.Audit.Path)
}

// rel shortens path for reports and audit entries.
func (p *project) rel(path string) string {
	return utils.RelativePath(p.root, path)
}
