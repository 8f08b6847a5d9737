package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver locates data files and the config file relative to the binary.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execDir, err := ExecutableDir()
	if err != nil {
		return nil, err
	}
	homeDir := homeDirOrTemp()
	pr := &PathResolver{
		executableDir: execDir,
		homeDir:       homeDir,
		configDir:     configDirFor(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// ExecutableDir returns the directory of the running binary, symlinks resolved.
func ExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// ConfigDir returns the platform config directory for seedguard. Config,
// scan state and data files all resolve from here.
func ConfigDir() string {
	return configDirFor(homeDirOrTemp())
}

func homeDirOrTemp() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		return os.TempDir()
	}
	return homeDir
}

// configDirFor returns the platform config directory for seedguard.
func configDirFor(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "seedguard")
		}
		return filepath.Join(homeDir, ".config", "seedguard")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "seedguard")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "seedguard")
	default:
		return filepath.Join(homeDir, ".config", "seedguard")
	}
}

// ResolveDataFile finds name in order of preference:
// 1. name itself, if absolute or present relative to the working directory
// 2. next to the executable, then in its data/ dir
// 3. in the config dir's data/ dir
//
// When nothing exists, name is returned unchanged so the caller reports the
// path the user asked for.
func (pr *PathResolver) ResolveDataFile(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	candidates := []string{
		name,
		filepath.Join(pr.executableDir, name),
		filepath.Join(pr.executableDir, "data", name),
		filepath.Join(pr.configDir, "data", name),
	}
	for _, path := range candidates {
		if FileExists(path) {
			log.Debugf("Found data file: %s", path)
			return path
		}
		log.Debugf("Data file candidate missing: %s", path)
	}
	return name
}

// GetConfigPath returns the full path for a config file.
// It falls back to ~/.seedguard and the temp dir when the config dir is not writable.
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	dirs := []string{
		pr.configDir,
		filepath.Join(pr.homeDir, ".seedguard"),
		filepath.Join(os.TempDir(), "seedguard"),
	}
	for i, dir := range dirs {
		if result := CheckDirStatus(dir); result.Writable {
			path := filepath.Join(dir, filename)
			if i > 0 {
				log.Warnf("Using fallback config location: %s", path)
			}
			return path, nil
		}
	}
	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}
