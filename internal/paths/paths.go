// Package paths resolves the configuration and data directory locations.
package paths

import (
	"os"
	"path/filepath"
)

// CWD-relative directory names used when nothing else is configured.
const (
	DefaultConfigDirName = ".recipebox"
	DefaultDataDirName   = ".recipebox-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "RECIPEBOX_CONFIG_DIR"
	EnvDataDir   = "RECIPEBOX_DATA_DIR"
)

// getwd is replaced in tests.
var getwd = os.Getwd

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > RECIPEBOX_CONFIG_DIR > $(CWD)/.recipebox.
func ResolveConfigDir(flag string) (string, error) {
	return resolve(DefaultConfigDirName, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > config.yaml data_dir > RECIPEBOX_DATA_DIR > $(CWD)/.recipebox-db.
// Relative values are made absolute against the working directory.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	return resolve(DefaultDataDirName, flag, configYAMLValue, os.Getenv(EnvDataDir))
}

// resolve returns the first non-empty candidate as an absolute path, or
// defaultName under the working directory.
func resolve(defaultName string, candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, defaultName), nil
}
