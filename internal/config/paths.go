// ABOUTME: Standard filesystem paths for promptkit configuration
// ABOUTME: Resolves ~/.promptkit/ for global and <project>/.promptkit/ for project-local settings

package config

import (
	"os"
	"path/filepath"
)

const (
	dirName      = ".promptkit"
	settingsName = "settings.yaml"
)

// GlobalDir returns the user-global config directory (~/.promptkit/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", dirName)
	}
	return filepath.Join(home, dirName)
}

// ProjectDir returns the project-local config directory.
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, dirName)
}

// GlobalSettingsFile returns the path to the global settings file.
func GlobalSettingsFile() string {
	return filepath.Join(GlobalDir(), settingsName)
}

// ProjectSettingsFile returns the path to the project settings file.
func ProjectSettingsFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), settingsName)
}

// SettingsFiles returns the settings files in merge order, global first.
func SettingsFiles(projectRoot string) []string {
	return []string{GlobalSettingsFile(), ProjectSettingsFile(projectRoot)}
}
