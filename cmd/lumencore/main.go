// Lumen Core - Light Show Runtime
//
// This is the main entry point for the Lumen Core show runner. It loads a
// channel map and a declarative show file, starts audio playback for the
// clock reference, and drives the lighting channels through the show's
// pattern timeline.
//
// Usage:
//
//	lumencore path/to/show.yaml
//	lumencore -test-channels
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frostline/lumencore/internal/channel"
	"github.com/frostline/lumencore/internal/engine"
	"github.com/frostline/lumencore/internal/infrastructure/config"
	"github.com/frostline/lumencore/internal/infrastructure/influxdb"
	"github.com/frostline/lumencore/internal/infrastructure/logging"
	"github.com/frostline/lumencore/internal/infrastructure/mqtt"
	"github.com/frostline/lumencore/internal/pattern"
	"github.com/frostline/lumencore/internal/playback"
	"github.com/frostline/lumencore/internal/show"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// nullSourceTail is how long the silent playback source outlives the last
// timeline segment, standing in for the audio outro a real track would have.
const nullSourceTail = time.Second

func main() {
	testChannels := flag.Bool("test-channels", false, "blink every channel once and exit")
	flag.Parse()

	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	// This is the Go pattern for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Run the application
	if err := run(ctx, flag.Arg(0), *testChannels); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//   - showPath: Path to the show file to run (ignored with testChannels)
//   - testChannels: When true, blink every channel once instead of running a show
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context, showPath string, testChannels bool) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Lumen Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Load the channel map and build the registry
	channelMap, err := channel.LoadMap(cfg.Channels.MapFile)
	if err != nil {
		return fmt.Errorf("loading channel map: %w", err)
	}
	factory, err := outputFactory(cfg.Channels.Driver, log)
	if err != nil {
		return err
	}
	registry := channelMap.Build(factory)
	registry.SetLogger(log)
	log.Info("channel registry built",
		"map", cfg.Channels.MapFile,
		"driver", cfg.Channels.Driver,
		"channels", registry.Len(),
		"groups", registry.GroupNames(),
	)

	if testChannels {
		log.Info("running channel test blink")
		channel.TestBlink(registry, 2*time.Second, 250*time.Millisecond)
		log.Info("channel test complete")
		return nil
	}

	if showPath == "" {
		return errors.New("no show file given (usage: lumencore path/to/show.yaml)")
	}

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		// Set up InfluxDB error callback
		influxClient.SetErrorCallback(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		// Record every channel transition
		registry.SetStateSink(func(name string, on bool) {
			influxClient.WriteChannelState(name, on)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Load the show (measure-indexed timing is resolved by the loader)
	sh, baseDir, err := show.Load(showPath)
	if err != nil {
		return fmt.Errorf("loading show: %w", err)
	}
	log.Info("show loaded",
		"path", showPath,
		"audio", sh.File,
		"sections", len(sh.Sections),
		"bpm", sh.BPM,
	)

	// Select the playback source
	source := playbackSource(cfg, sh, baseDir, log)

	// Build the runner
	opts := engine.Options{
		Logger:              log,
		PollInterval:        cfg.GetPollInterval(),
		DrainInterval:       cfg.GetDrainInterval(),
		TickInterval:        cfg.GetTickInterval(),
		ReporterJoinTimeout: cfg.GetReporterJoinTimeout(),
		QoS:                 byte(cfg.MQTT.QoS), //nolint:gosec // QoS validated to 0..2
	}
	// Assign only non-nil clients: a typed nil inside the interface would
	// defeat the runner's nil checks.
	if mqttClient != nil {
		opts.MQTT = mqttClient
	}
	if influxClient != nil {
		opts.Telemetry = influxClient
	}
	runner := engine.NewRunner(sh, registry, pattern.NewLibrary(), source, opts)

	log.Info("initialisation complete, starting show")
	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("running show: %w", err)
	}

	log.Info("Lumen Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses LUMEN_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("LUMEN_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// outputFactory selects the channel output backend for the configured driver.
//
// Parameters:
//   - driver: Driver name from config ("memory" or "log")
//   - log: Logger for the log driver
//
// Returns:
//   - channel.OutputFactory: Factory producing outputs for the registry
//   - error: If the driver name is unknown
func outputFactory(driver string, log *logging.Logger) (channel.OutputFactory, error) {
	switch driver {
	case "log":
		return func(name string, _ int) channel.Output {
			return channel.NewLogOutput(name, log)
		}, nil
	case "", "memory":
		return func(string, int) channel.Output {
			return channel.NopOutput{}
		}, nil
	default:
		return nil, fmt.Errorf("unknown channel driver %q", driver)
	}
}

// playbackSource selects the playback source for a show.
//
// A configured player binary runs the show's audio track as a supervised
// subprocess. With no player configured the show runs silently against a
// fixed-duration null source sized to the timeline.
func playbackSource(cfg *config.Config, sh *show.Show, baseDir string, log *logging.Logger) playback.Source {
	if cfg.Playback.Player == "" {
		duration := silentDuration(sh)
		log.Info("no player configured, running silent", "duration", duration)
		return playback.NewNull(duration)
	}

	player := playback.NewPlayer(playback.PlayerConfig{
		Binary:          cfg.Playback.Player,
		Args:            cfg.Playback.Args,
		AudioPath:       sh.AudioPath(baseDir),
		GracefulTimeout: cfg.GetPlaybackGracefulTimeout(),
	})
	player.SetLogger(log)
	return player
}

// silentDuration sizes the null source: the end of the last timeline
// segment plus a short tail.
func silentDuration(sh *show.Show) time.Duration {
	var end float64
	for i := range sh.Sections {
		if sh.Sections[i].End > end {
			end = sh.Sections[i].End
		}
	}
	return time.Duration(end*float64(time.Second)) + nullSourceTail
}
