package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Lumen Core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Channels ChannelsConfig `yaml:"channels"`
	Playback PlaybackConfig `yaml:"playback"`
	Engine   EngineConfig   `yaml:"engine"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SiteConfig identifies the installation running the shows.
type SiteConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// ChannelsConfig contains channel map settings.
type ChannelsConfig struct {
	// MapFile is the path to the channel map YAML (named groups of channels).
	MapFile string `yaml:"map_file"`

	// Driver selects the output backend: "memory" or "log".
	// Physical drivers are wired by the deployment, not configured here.
	Driver string `yaml:"driver"`
}

// PlaybackConfig contains audio player subprocess settings.
type PlaybackConfig struct {
	// Player is the path to the audio player executable (e.g. /usr/bin/mpv).
	// Empty selects the silent null source.
	Player string `yaml:"player"`

	// Args are extra arguments passed to the player before the audio file path.
	Args []string `yaml:"args"`

	// GracefulTimeout is how long to wait for the player to exit on stop (seconds).
	GracefulTimeout int `yaml:"graceful_timeout"`
}

// EngineConfig contains scheduler timing settings.
type EngineConfig struct {
	// PollInterval is the busy-wait granularity while awaiting a segment (milliseconds).
	PollInterval int `yaml:"poll_interval"`

	// DrainInterval is the poll granularity while waiting for playback to end (milliseconds).
	DrainInterval int `yaml:"drain_interval"`

	// TickInterval is the clock reporter's poll granularity (milliseconds).
	TickInterval int `yaml:"tick_interval"`

	// ReporterJoinTimeout bounds the wait for the clock reporter to stop (milliseconds).
	ReporterJoinTimeout int `yaml:"reporter_join_timeout"`
}

// MQTTConfig contains MQTT status-plane connection settings.
// The client is publish-only; Lumen Core emits show status and accepts no commands.
type MQTTConfig struct {
	Enabled bool             `yaml:"enabled"`
	Broker  MQTTBrokerConfig `yaml:"broker"`
	Auth    MQTTAuthConfig   `yaml:"auth"`
	QoS     int              `yaml:"qos"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// InfluxDBConfig contains InfluxDB telemetry settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: LUMEN_SECTION_KEY
// For example: LUMEN_CHANNELS_MAP_FILE, LUMEN_MQTT_HOST
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			ID:   "site-001",
			Name: "Lumen Core",
		},
		Channels: ChannelsConfig{
			MapFile: "./configs/channel_map.yaml",
			Driver:  "log",
		},
		Playback: PlaybackConfig{
			GracefulTimeout: 5,
		},
		Engine: EngineConfig{
			PollInterval:        50,
			DrainInterval:       100,
			TickInterval:        50,
			ReporterJoinTimeout: 500,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "lumencore",
			},
			QoS: 1,
		},
		InfluxDB: InfluxDBConfig{
			BatchSize:     100,
			FlushInterval: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: LUMEN_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Channels
	if v := os.Getenv("LUMEN_CHANNELS_MAP_FILE"); v != "" {
		cfg.Channels.MapFile = v
	}

	// Playback
	if v := os.Getenv("LUMEN_PLAYBACK_PLAYER"); v != "" {
		cfg.Playback.Player = v
	}

	// MQTT
	if v := os.Getenv("LUMEN_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("LUMEN_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("LUMEN_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("LUMEN_INFLUXDB_URL"); v != "" {
		cfg.InfluxDB.URL = v
	}
	if v := os.Getenv("LUMEN_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Logging
	if v := os.Getenv("LUMEN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for invalid or missing values.
//
// Returns:
//   - error: nil if valid, or a single error listing every problem found
func (c *Config) Validate() error {
	var errs []string

	// Site validation
	if c.Site.ID == "" {
		errs = append(errs, "site.id is required")
	}

	// Channels validation
	if c.Channels.MapFile == "" {
		errs = append(errs, "channels.map_file is required")
	}
	switch c.Channels.Driver {
	case "memory", "log":
	default:
		errs = append(errs, "channels.driver must be \"memory\" or \"log\"")
	}

	// Engine validation
	if c.Engine.PollInterval <= 0 {
		errs = append(errs, "engine.poll_interval must be positive")
	}
	if c.Engine.TickInterval <= 0 {
		errs = append(errs, "engine.tick_interval must be positive")
	}

	// MQTT validation
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled && c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required when mqtt is enabled")
	}

	// InfluxDB validation
	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Token == "" {
			errs = append(errs, "influxdb.token is required when influxdb is enabled (set LUMEN_INFLUXDB_TOKEN)")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetPollInterval returns the scheduler busy-wait granularity as a Duration.
func (c *Config) GetPollInterval() time.Duration {
	return time.Duration(c.Engine.PollInterval) * time.Millisecond
}

// GetDrainInterval returns the playback drain poll granularity as a Duration.
func (c *Config) GetDrainInterval() time.Duration {
	return time.Duration(c.Engine.DrainInterval) * time.Millisecond
}

// GetTickInterval returns the clock reporter poll granularity as a Duration.
func (c *Config) GetTickInterval() time.Duration {
	return time.Duration(c.Engine.TickInterval) * time.Millisecond
}

// GetReporterJoinTimeout returns the bounded reporter join window as a Duration.
func (c *Config) GetReporterJoinTimeout() time.Duration {
	return time.Duration(c.Engine.ReporterJoinTimeout) * time.Millisecond
}

// GetPlaybackGracefulTimeout returns the player stop timeout as a Duration.
func (c *Config) GetPlaybackGracefulTimeout() time.Duration {
	return time.Duration(c.Playback.GracefulTimeout) * time.Second
}
