// Package config provides Viper-based configuration loading for the roll tools.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// TablesConfig holds roll table content settings.
type TablesConfig struct {
	// Dir is the directory holding roll table YAML files.
	Dir string `mapstructure:"dir"`
}

// MacrosConfig holds Lua macro settings.
type MacrosConfig struct {
	// Dir is the directory holding macro Lua files.
	Dir string `mapstructure:"dir"`
	// InstructionLimit bounds the Lua instructions a single macro call may
	// execute; 0 uses the built-in default limit.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level tool configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Tables  TablesConfig  `mapstructure:"tables"`
	Macros  MacrosConfig  `mapstructure:"macros"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateTables(c.Tables); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateMacros(c.Macros); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateTables(t TablesConfig) error {
	if t.Dir == "" {
		return fmt.Errorf("tables.dir must not be empty")
	}
	return nil
}

func validateMacros(m MacrosConfig) error {
	var errs []string
	if m.Dir == "" {
		errs = append(errs, "macros.dir must not be empty")
	}
	if m.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("macros.instruction_limit must be >= 0, got %d", m.InstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path when one is provided,
// applies environment variable overrides, and validates the result. An empty
// path loads defaults and environment overrides only, so the tools run
// without any config file at all.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with ROLL_ prefix
	v.SetEnvPrefix("ROLL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("tables.dir", "tables")

	v.SetDefault("macros.dir", "macros")
	v.SetDefault("macros.instruction_limit", 100000)
}
