package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"taskdeck/internal/projects"
	"taskdeck/internal/version"
)

// minimumVersion is the oldest build whose data files this build
// understands. Startup refuses to run an older binary against them.
const minimumVersion = "0.1.0"

// ConfigurationService loads settings from, in increasing priority,
// built-in defaults, the config file, a local .env, and TASKDECK_*
// environment variables.
type ConfigurationService struct {
	v           *viper.Viper
	initialized bool
}

// NewConfigurationService creates an uninitialized configuration service.
func NewConfigurationService() *ConfigurationService {
	return &ConfigurationService{v: viper.New()}
}

// Name returns the service name "configuration" for registration.
func (c *ConfigurationService) Name() string {
	return "configuration"
}

// Initialize loads every configuration source and checks the build
// against the minimum supported version.
func (c *ConfigurationService) Initialize() error {
	if c.initialized {
		return nil
	}

	if ok, err := version.MeetsMinimum(minimumVersion); err != nil {
		return fmt.Errorf("checking build version: %w", err)
	} else if !ok {
		return fmt.Errorf("taskdeck %s is older than the minimum supported %s", version.GetVersion(), minimumVersion)
	}

	c.v.SetDefault("db_path", defaultDBPath())
	c.v.SetDefault("log_level", "warn")
	c.v.SetDefault("log_file", "")
	c.v.SetDefault("cache_ttl", projects.DefaultCacheTTL)
	c.v.SetDefault("user", defaultUser())

	// A missing .env is not an error; it only exists in dev setups.
	_ = godotenv.Load()

	c.v.SetConfigName("taskdeck")
	c.v.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		c.v.AddConfigPath(filepath.Join(dir, "taskdeck"))
	}
	c.v.AddConfigPath(".")
	if err := c.v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	c.v.SetEnvPrefix("TASKDECK")
	c.v.AutomaticEnv()

	c.initialized = true
	return nil
}

// DBPath returns the sqlite database location.
func (c *ConfigurationService) DBPath() string {
	return c.v.GetString("db_path")
}

// LogLevel returns the configured log level name.
func (c *ConfigurationService) LogLevel() string {
	return c.v.GetString("log_level")
}

// LogFile returns the log destination, empty for stderr.
func (c *ConfigurationService) LogFile() string {
	return c.v.GetString("log_file")
}

// CacheTTL returns the project summary cache window.
func (c *ConfigurationService) CacheTTL() time.Duration {
	ttl := c.v.GetDuration("cache_ttl")
	if ttl <= 0 {
		return projects.DefaultCacheTTL
	}
	return ttl
}

// User returns the acting user id for this shell process.
func (c *ConfigurationService) User() string {
	return c.v.GetString("user")
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "taskdeck.db"
	}
	return filepath.Join(dir, "taskdeck", "taskdeck.db")
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "default"
}
