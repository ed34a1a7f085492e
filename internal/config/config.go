// Package config provides configuration management for the secondhand
// marketplace. Configuration can be loaded from YAML files and environment
// variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Assets  AssetsConfig  `mapstructure:"assets"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig holds the locations of the two JSON documents.
type DataConfig struct {
	// UsersFile is the path of the user document.
	UsersFile string `mapstructure:"users_file"`

	// ProductsFile is the path of the product document.
	ProductsFile string `mapstructure:"products_file"`
}

// AssetsConfig holds the managed image directory settings.
type AssetsConfig struct {
	// Dir is the directory imported images are copied into. The documents
	// reference files below it by forward-slash relative paths.
	Dir string `mapstructure:"dir"`
}

// AdminConfig holds the identity of the bootstrap administrator. It is
// only consulted when the user document contains no admin account at all.
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Nickname string `mapstructure:"nickname"`
	Password string `mapstructure:"password"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`

	// Output is "stdout", "stderr" or a file path. The interactive
	// interface owns the terminal, so its default is a log file.
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

// Load reads configuration from the specified file and environment variables.
// Environment variables take precedence over file values.
// Environment variables are prefixed with SECONDHAND_ and use _ as separator.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Environment variable configuration
	v.SetEnvPrefix("SECONDHAND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file configuration
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	// Read config file (optional - environment variables can be used instead)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is acceptable - use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Data defaults
	v.SetDefault("data.users_file", "users.json")
	v.SetDefault("data.products_file", "products.json")

	// Assets defaults
	v.SetDefault("assets.dir", "images")

	// Admin defaults
	v.SetDefault("admin.email", "admin@example.com")
	v.SetDefault("admin.nickname", "Administrator")
	v.SetDefault("admin.password", "admin")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "secondhand.log")
	v.SetDefault("logging.time_format", time.RFC3339)
}

// Validate checks the configuration for required values and valid ranges.
func (c *Config) Validate() error {
	if c.Data.UsersFile == "" {
		return fmt.Errorf("data.users_file is required")
	}
	if c.Data.ProductsFile == "" {
		return fmt.Errorf("data.products_file is required")
	}
	if c.Assets.Dir == "" {
		return fmt.Errorf("assets.dir is required")
	}

	// Validate admin configuration; a blank identity would be bootstrapped
	// verbatim into the user document.
	if c.Admin.Email == "" {
		return fmt.Errorf("admin.email is required")
	}
	if c.Admin.Password == "" {
		return fmt.Errorf("admin.password is required")
	}

	// Validate logging configuration
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of: trace, debug, info, warn, error, fatal, panic")
	}

	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("logging.format must be 'console' or 'json'")
	}

	return nil
}

// MustLoad loads configuration or panics on error.
// Useful for main function initialization.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
