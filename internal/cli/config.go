package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/recipebox/internal/logging"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "RECIPEBOX"

	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyLogLevel = "log_level"
	cfgKeyOutput   = "output"
)

// defaultConfigYAML is written to config.yaml by init.
const defaultConfigYAML = `# recipebox configuration

# Storage backend (only sqlite is supported)
backend: sqlite

# Data directory (optional; overridable by --data-dir)
# data_dir:

# Log level written to stderr: debug, info, warn, error or off
log_level: warn

# Output format: text, json or yaml
output: text
`

// loadConfig reads config.yaml from configDir with Viper. A missing file is
// not an error. backend, log_level and output may be overridden by
// RECIPEBOX_<KEY> environment variables; flags in fs win over both when set.
// data_dir is read from the file only so that paths.ResolveDataDir can apply
// its own precedence.
func loadConfig(configDir string, fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyLogLevel, logging.LevelWarn)
	v.SetDefault(cfgKeyOutput, outputText)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyLogLevel, cfgKeyOutput} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if fs != nil {
		for key, flag := range map[string]string{cfgKeyLogLevel: "log-level", cfgKeyOutput: "output"} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates configDir and a default config.yaml if
// the file does not exist. It reports whether the file was written.
func ensureDefaultConfigFile(configDir string) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return false, fmt.Errorf("write config file: %w", err)
	}
	return true, nil
}
