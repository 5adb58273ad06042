package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benmeehan/trailmap/internal/prompt"
	"github.com/benmeehan/trailmap/internal/services"
	"github.com/benmeehan/trailmap/internal/utils"
	"github.com/benmeehan/trailmap/pkg/file"
	"github.com/benmeehan/trailmap/pkg/homeassistant"
	"github.com/benmeehan/trailmap/pkg/location"
	"github.com/benmeehan/trailmap/pkg/mqtt"
	"github.com/benmeehan/trailmap/pkg/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML configuration file")
	envFile := flag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	entityID := flag.String("entity", "", "device tracker entity id; skips the person prompt")
	days := flag.Int("days", -1, "days of history to fetch; prompts when negative")
	output := flag.String("output", "", "output HTML file (default from config)")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	logJSON := flag.Bool("log-json", false, "log as JSON instead of console text")
	flag.Parse()

	// Logs go to stderr so the prompts on stdout stay readable
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	var logger zerolog.Logger
	if *logJSON {
		logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).With().Timestamp().Logger()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, runFlags{
		configPath: *configPath,
		envFile:    *envFile,
		entityID:   *entityID,
		days:       *days,
		output:     *output,
	}); err != nil {
		reportFailure(logger, os.Stderr, err)
		os.Exit(1)
	}
}

// reportFailure prints err once for the operator. The structured entry is debug
// only so the default log level does not repeat the message.
func reportFailure(logger zerolog.Logger, w io.Writer, err error) {
	logger.Debug().Err(err).Msg("Run failed")
	fmt.Fprintf(w, "Error: %v\n", err)
}

type runFlags struct {
	configPath string
	envFile    string
	entityID   string
	days       int
	output     string
}

func run(ctx context.Context, logger zerolog.Logger, flags runFlags) error {
	if err := utils.LoadEnvFile(flags.envFile); err != nil {
		return fmt.Errorf("failed to load %s: %w", flags.envFile, err)
	}

	// Initialize file operations handler
	fileClient := file.NewFileService()

	// Load configuration from file and environment
	config, err := utils.LoadConfig(flags.configPath, fileClient)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	outputPath := config.Map.OutputFile
	if flags.output != "" {
		outputPath = flags.output
	}

	haClient := homeassistant.NewClient(config.HomeAssistant.URL, config.HomeAssistant.Token, config.HomeAssistant.Timeout)

	var placeNamer location.PlaceNamer
	if config.Geocoding.Enabled {
		namer, err := location.NewGooglePlaceNamer(config.Geocoding.MapsAPIKey, config.Geocoding.Timeout)
		if err != nil {
			return fmt.Errorf("failed to create geocoding client: %w", err)
		}
		placeNamer = namer
	}

	var publishers []services.Publisher
	if config.Storage.Enabled {
		storage := s3.NewObjectStorage()
		if err := storage.Connect(config.Storage.Endpoint, config.Storage.AccessKeyID,
			config.Storage.SecretAccessKey, config.Storage.Region, config.Storage.UseSSL); err != nil {
			return err
		}
		publishers = append(publishers, services.NewUploadService(config.Storage.Bucket, config.Storage.Prefix,
			config.Storage.PresignExpiry, storage, fileClient, logger))
	}
	if config.MQTT.Enabled {
		// Unique client ID per run so parallel runs do not kick each other off the broker
		mqttClient := mqtt.NewMqttService(fileClient)
		err := mqttClient.Initialize(mqtt.Options{
			Broker:         config.MQTT.Broker,
			ClientID:       config.MQTT.ClientID + "-" + uuid.New().String(),
			Username:       config.MQTT.Username,
			Password:       config.MQTT.Password,
			CACertificate:  config.MQTT.CACertificate,
			ConnectTimeout: 10 * time.Second,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize MQTT connection: %w", err)
		}
		defer mqttClient.Disconnect(250)
		publishers = append(publishers, services.NewNotificationService(config.MQTT.Topic, config.MQTT.QOS,
			config.MQTT.Retained, mqttClient, logger))
	}

	trailMap := services.NewTrailMapService(
		services.NewEntityResolver(haClient, logger),
		services.NewHistoryService(haClient, logger),
		services.NewMapRenderer(fileClient, placeNamer, config.Map.Zoom, logger),
		logger,
		publishers...,
	)

	terminal := prompt.NewTerminal(os.Stdin, os.Stdout)
	var daysSource services.DaysSource = terminal
	if flags.days >= 0 {
		daysSource = prompt.FixedDays(flags.days)
	}

	doc, err := trailMap.Run(ctx, services.RunRequest{
		EntityID:   flags.entityID,
		Selector:   terminal,
		Days:       daysSource,
		Tiles:      config.Tiles,
		OutputPath: outputPath,
	})
	if doc != nil {
		fmt.Printf("Map saved as '%s'\n", doc.Path)
		if doc.URL != "" {
			fmt.Printf("Map uploaded to %s\n", doc.URL)
		}
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("interrupted")
		}
		return err
	}

	return nil
}
