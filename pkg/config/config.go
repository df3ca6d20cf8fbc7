package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Rules    RulesConfig    `mapstructure:"rules"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`

	viper *viper.Viper
}

// RulesConfig holds the run-time validation rules for votings and votes
type RulesConfig struct {
	MinVotingDuration       time.Duration `mapstructure:"min_voting_duration"`
	MaxVotingDuration       time.Duration `mapstructure:"max_voting_duration"`
	MinCandidatesElection   int           `mapstructure:"min_candidates_election"`
	CanCandidateStartVoting bool          `mapstructure:"can_candidate_start_voting"`
	CanVoterVoteForHimself  bool          `mapstructure:"can_voter_vote_for_himself"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Type            string        `mapstructure:"type"` // postgres, sqlite
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	Path            string        `mapstructure:"path"`    // For SQLite
	SSLMode         string        `mapstructure:"sslmode"` // For PostgreSQL
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxLifetime     time.Duration `mapstructure:"max_lifetime"`
	RunningCounters bool          `mapstructure:"running_counters"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, text
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// LoadConfig loads configuration from an optional .env file, the config file
// and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env is the normal case outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %v", err)
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("POLL")

	if configPath != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				fmt.Printf("Warning: Config file not found at %s, using defaults\n", configPath)
			} else {
				return nil, fmt.Errorf("error reading config file: %v", err)
			}
		}
	}

	overrideWithEnvVars(v)

	config, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	config.viper = v
	return config, nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %v", err)
	}
	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Rule defaults
	v.SetDefault("rules.min_voting_duration", "10m")
	v.SetDefault("rules.max_voting_duration", "720h")
	v.SetDefault("rules.min_candidates_election", 2)
	v.SetDefault("rules.can_candidate_start_voting", false)
	v.SetDefault("rules.can_voter_vote_for_himself", false)

	// Database defaults
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "./polls.db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_lifetime", "5m")
	v.SetDefault("database.running_counters", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)
}

// overrideWithEnvVars overrides config with specific environment variables
func overrideWithEnvVars(v *viper.Viper) {
	envMappings := map[string]string{
		"DATABASE_TYPE": "database.type",
		"DB_HOST":       "database.host",
		"DB_NAME":       "database.dbname",
		"DB_PATH":       "database.path",
		"DB_PASSWORD":   "database.password",
		"DB_USER":       "database.user",
		"LOG_LEVEL":     "logging.level",
		"LOG_FILE":      "logging.file",
	}

	for envVar, configKey := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			v.Set(configKey, value)
		}
	}
}

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	if err := config.Rules.Validate(); err != nil {
		return err
	}

	switch config.Database.Type {
	case "postgres":
		if config.Database.Host == "" || config.Database.User == "" {
			return fmt.Errorf("postgres requires host and user")
		}
	case "sqlite":
		if config.Database.Path == "" {
			return fmt.Errorf("sqlite requires path")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", config.Database.Type)
	}

	return nil
}

// Validate checks that the rule bounds are consistent
func (r RulesConfig) Validate() error {
	if r.MinVotingDuration < 0 {
		return fmt.Errorf("min voting duration must not be negative")
	}
	if r.MaxVotingDuration < r.MinVotingDuration {
		return fmt.Errorf("max voting duration must not be shorter than min voting duration")
	}
	if r.MinCandidatesElection < 1 {
		return fmt.Errorf("min candidates for an election must be at least 1")
	}
	return nil
}

// WatchRules reloads the rules into rs whenever the config file changes.
// Invalid edits are reported through onError and leave rs untouched.
func (c *Config) WatchRules(rs *RuleSet, onChange func(RulesConfig), onError func(error)) {
	if c.viper == nil || c.viper.ConfigFileUsed() == "" {
		return
	}

	c.viper.OnConfigChange(func(e fsnotify.Event) {
		var rules RulesConfig
		if err := c.viper.UnmarshalKey("rules", &rules); err != nil {
			if onError != nil {
				onError(fmt.Errorf("error reloading rules from %s: %v", e.Name, err))
			}
			return
		}
		if err := rs.Set(rules); err != nil {
			if onError != nil {
				onError(fmt.Errorf("rejected rules from %s: %v", e.Name, err))
			}
			return
		}
		if onChange != nil {
			onChange(rules)
		}
	})
	c.viper.WatchConfig()
}

// DSN returns the driver-specific connection string
func (d DatabaseConfig) DSN() string {
	switch d.Type {
	case "postgres":
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
	case "sqlite":
		return d.Path
	default:
		return ""
	}
}

// SanitizeForLogging returns a copy of the config with sensitive data redacted
func (c *Config) SanitizeForLogging() *Config {
	sanitized := *c
	sanitized.viper = nil

	if sanitized.Database.Password != "" {
		sanitized.Database.Password = "[REDACTED]"
	}

	return &sanitized
}
