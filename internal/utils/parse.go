package utils

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cast"
)

// LoadTOMLFile loads and parses a TOML file into the provided struct
func LoadTOMLFile(configPath string, config any) error {
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return err
	}
	return nil
}

// ParseTOMLWithRecovery parses a TOML file into a generic map so that
// loosely typed values can still be picked up section by section.
func ParseTOMLWithRecovery(configPath string) (map[string]any, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	tempConfig := make(map[string]any)
	if _, err := toml.Decode(string(data), &tempConfig); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", configPath, err)
		return nil, err
	}
	return tempConfig, nil
}

// ExtractSection extracts a specific section from parsed TOML data
func ExtractSection(data map[string]any, sectionName string) (map[string]any, bool) {
	section, ok := data[sectionName].(map[string]any)
	return section, ok
}

// ExtractInt reads key as an int, accepting quoted numbers and floats.
func ExtractInt(data map[string]any, key string) (int, bool) {
	val, ok := data[key]
	if !ok {
		return 0, false
	}
	n, err := cast.ToIntE(val)
	if err != nil {
		log.Warnf("Ignoring %s: %v", key, err)
		return 0, false
	}
	return n, true
}

// ExtractBool reads key as a bool, accepting "true"/"false" strings and 0/1.
func ExtractBool(data map[string]any, key string) (bool, bool) {
	val, ok := data[key]
	if !ok {
		return false, false
	}
	b, err := cast.ToBoolE(val)
	if err != nil {
		log.Warnf("Ignoring %s: %v", key, err)
		return false, false
	}
	return b, true
}

// ExtractString reads key as a string.
func ExtractString(data map[string]any, key string) (string, bool) {
	val, ok := data[key]
	if !ok {
		return "", false
	}
	s, err := cast.ToStringE(val)
	if err != nil {
		log.Warnf("Ignoring %s: %v", key, err)
		return "", false
	}
	return s, true
}
