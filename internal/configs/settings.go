package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/envseal/internal/utils"
)

type ProjectSettings struct {
	ProjectName string
	ProjectPath string
	ConfigPath  string
}

// ProjectEnvsealSettings describes the current project. It is empty until
// InitProjectSettings finds a project.
var ProjectEnvsealSettings = &ProjectSettings{}

// InitProjectSettings walks up from the working directory to the nearest
// .envseal.toml. Outside a project it leaves the settings empty and returns
// nil.
func InitProjectSettings() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("error getting working directory: %w", err)
	}
	return InitProjectSettingsFrom(cwd)
}

// InitProjectSettingsFrom is InitProjectSettings starting at dir.
func InitProjectSettingsFrom(dir string) error {
	projectPath, err := utils.FindProjectRoot(dir, ConfigFileName)
	if err != nil {
		return fmt.Errorf("error getting project root: %w", err)
	}

	if projectPath == "" {
		ProjectEnvsealSettings = &ProjectSettings{}
		return nil
	}

	ProjectEnvsealSettings = &ProjectSettings{
		ProjectName: utils.GetProjectName(projectPath),
		ProjectPath: projectPath,
		ConfigPath:  filepath.Join(projectPath, ConfigFileName),
	}
	return nil
}
