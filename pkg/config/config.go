/*
Package config manages TOML config for seedguard.

Values are layered: builtin defaults, then the TOML file, then SEEDGUARD_*
environment variables. The result is validated before use.
*/
package config

import (
	"fmt"
	"path/filepath"

	"github.com/bastiangx/seedguard/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the entire config structure
type Config struct {
	Detector DetectorConfig `toml:"detector"`
	Scan     ScanConfig     `toml:"scan"`
	Server   ServerConfig   `toml:"server"`
	CLI      CliConfig      `toml:"cli"`
	Log      LogConfig      `toml:"log"`
}

// DetectorConfig holds seed phrase detection options.
type DetectorConfig struct {
	MinSeedWords   int    `toml:"min_seed_words"  env:"SEEDGUARD_MIN_SEED_WORDS"  validate:"gte=1"`
	DictionaryPath string `toml:"dictionary_path" env:"SEEDGUARD_DICTIONARY_PATH" validate:"required"`
}

// ScanConfig holds comment scan options.
// MaxResourceAgeDays skips resources with no activity in that many days; 0 scans everything.
type ScanConfig struct {
	SourceFile         string `toml:"source_file"           env:"SEEDGUARD_SOURCE_FILE"`
	StateBackend       string `toml:"state_backend"         env:"SEEDGUARD_STATE_BACKEND"         validate:"oneof=file sqlite"`
	StatePath          string `toml:"state_path"            env:"SEEDGUARD_STATE_PATH"            validate:"required"`
	ForceFullScan      bool   `toml:"force_full_scan"       env:"SEEDGUARD_FORCE_FULL_SCAN"`
	MaxPerResource     int    `toml:"max_per_resource"      env:"SEEDGUARD_MAX_PER_RESOURCE"      validate:"gte=0"`
	MaxResourceAgeDays int    `toml:"max_resource_age_days" env:"SEEDGUARD_MAX_RESOURCE_AGE_DAYS" validate:"gte=0"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxTextLength int `toml:"max_text_length" env:"SEEDGUARD_MAX_TEXT_LENGTH" validate:"gte=1"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	PreviewLength int `toml:"preview_length" validate:"gte=1"`
}

// LogConfig holds logging options. When File is set every log line is also
// written there; Console false then silences stderr.
type LogConfig struct {
	Level   string `toml:"level"   env:"SEEDGUARD_LOG_LEVEL"   validate:"oneof=debug info warn error"`
	File    string `toml:"file"    env:"SEEDGUARD_LOG_FILE"`
	Console bool   `toml:"console" env:"SEEDGUARD_LOG_CONSOLE"`
}

var validate = validator.New()

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Detector: DetectorConfig{
			MinSeedWords:   12,
			DictionaryPath: "english.txt",
		},
		Scan: ScanConfig{
			StateBackend:       "file",
			StatePath:          "last_scan_time.json",
			ForceFullScan:      false,
			MaxPerResource:     1000,
			MaxResourceAgeDays: 0,
		},
		Server: ServerConfig{
			MaxTextLength: 10000,
		},
		CLI: CliConfig{
			PreviewLength: 100,
		},
		Log: LogConfig{
			Level:   "warn",
			File:    "",
			Console: true,
		},
	}
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ApplyEnv overlays SEEDGUARD_* environment variables that are set.
func (c *Config) ApplyEnv() error {
	if err := cleanenv.ReadEnv(c); err != nil {
		return fmt.Errorf("read env overrides: %w", err)
	}
	return nil
}

// GetConfigDir returns the config directory with fallback priority:
// 1. the platform config dir (XDG_CONFIG_HOME/seedguard, ~/.config/seedguard, APPDATA/seedguard)
// 2. Current executable dir
func GetConfigDir() (string, error) {
	primaryPath := utils.ConfigDir()
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	execDir, err := utils.ExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: <config dir>/config.toml
// 3. Builtin defaults
//
// Env overrides are applied and the result validated in every case.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	config, path := loadWithPriority(customConfigPath)
	if err := config.ApplyEnv(); err != nil {
		return nil, path, err
	}
	if err := config.Validate(); err != nil {
		return nil, path, err
	}
	return config, path, nil
}

func loadWithPriority(customConfigPath string) (*Config, string) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), ""
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if result := utils.CheckDirStatus(configDir); !result.Writable {
		log.Warnf("Config directory %s is not usable: %v. Using built-in defaults...", configDir, result.Error)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Fields missing from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse picks up whatever sections still parse, coercing loose values.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "detector"); ok {
		extractDetectorConfig(section, &config.Detector)
	}
	if section, ok := utils.ExtractSection(tempConfig, "scan"); ok {
		extractScanConfig(section, &config.Scan)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		if val, ok := utils.ExtractInt(section, "max_text_length"); ok {
			config.Server.MaxTextLength = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		if val, ok := utils.ExtractInt(section, "preview_length"); ok {
			config.CLI.PreviewLength = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "log"); ok {
		if val, ok := utils.ExtractString(section, "level"); ok {
			config.Log.Level = val
		}
		if val, ok := utils.ExtractString(section, "file"); ok {
			config.Log.File = val
		}
		if val, ok := utils.ExtractBool(section, "console"); ok {
			config.Log.Console = val
		}
	}
	return config, nil
}

func extractDetectorConfig(data map[string]any, detector *DetectorConfig) {
	if val, ok := utils.ExtractInt(data, "min_seed_words"); ok {
		detector.MinSeedWords = val
	}
	if val, ok := utils.ExtractString(data, "dictionary_path"); ok {
		detector.DictionaryPath = val
	}
}

func extractScanConfig(data map[string]any, scan *ScanConfig) {
	if val, ok := utils.ExtractString(data, "source_file"); ok {
		scan.SourceFile = val
	}
	if val, ok := utils.ExtractString(data, "state_backend"); ok {
		scan.StateBackend = val
	}
	if val, ok := utils.ExtractString(data, "state_path"); ok {
		scan.StatePath = val
	}
	if val, ok := utils.ExtractBool(data, "force_full_scan"); ok {
		scan.ForceFullScan = val
	}
	if val, ok := utils.ExtractInt(data, "max_per_resource"); ok {
		scan.MaxPerResource = val
	}
	if val, ok := utils.ExtractInt(data, "max_resource_age_days"); ok {
		scan.MaxResourceAgeDays = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
