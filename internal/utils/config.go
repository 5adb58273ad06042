package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/benmeehan/trailmap/internal/constants"
	"github.com/benmeehan/trailmap/internal/models"
	"github.com/benmeehan/trailmap/pkg/file"
	"github.com/joho/godotenv"
)

// Environment variables that override the configuration file.
const (
	EnvHomeAssistantURL   = "HA_URL"
	EnvHomeAssistantToken = "HA_TOKEN"
	EnvTileAPIKey         = "THUNDERFOREST_API_KEY"
	EnvMapsAPIKey         = "GOOGLE_MAPS_API_KEY"
)

// Config represents the structure of the configuration file.
type Config struct {
	HomeAssistant struct {
		URL     string        `yaml:"url"`     // Base URL of the Home Assistant instance
		Token   string        `yaml:"token"`   // Long-lived access token
		Timeout time.Duration `yaml:"timeout"` // HTTP timeout, 0 keeps the client default
	} `yaml:"home_assistant"`

	Tiles TileConfig `yaml:"tiles"`

	Map struct {
		OutputFile string `yaml:"output_file"` // Map document written to the working directory
		Zoom       int    `yaml:"zoom"`        // Initial zoom level
	} `yaml:"map"`

	Geocoding struct {
		Enabled    bool          `yaml:"enabled"`      // Name the map center with reverse geocoding
		MapsAPIKey string        `yaml:"maps_api_key"` // Google maps API Key
		Timeout    time.Duration `yaml:"timeout"`      // Timeout for the geocoding request
	} `yaml:"geocoding"`

	Storage struct {
		Enabled         bool          `yaml:"enabled"`           // Upload the map document after rendering
		Endpoint        string        `yaml:"endpoint"`          // S3 compatible endpoint, host[:port]
		AccessKeyID     string        `yaml:"access_key_id"`     // Access key
		SecretAccessKey string        `yaml:"secret_access_key"` // Secret key
		Region          string        `yaml:"region"`            // Bucket region
		UseSSL          bool          `yaml:"use_ssl"`           // Use HTTPS for the endpoint
		Bucket          string        `yaml:"bucket"`            // Target bucket
		Prefix          string        `yaml:"prefix"`            // Object name prefix
		PresignExpiry   time.Duration `yaml:"presign_expiry"`    // Lifetime of the returned link
	} `yaml:"storage"`

	MQTT struct {
		Enabled       bool   `yaml:"enabled"`        // Announce rendered maps over MQTT
		Broker        string `yaml:"broker"`         // MQTT broker address
		ClientID      string `yaml:"client_id"`      // MQTT client ID
		Username      string `yaml:"username"`       // Optional broker username
		Password      string `yaml:"password"`       // Optional broker password
		CACertificate string `yaml:"ca_certificate"` // Path to the CA certificate
		Topic         string `yaml:"topic"`          // Topic for render events
		QOS           int    `yaml:"qos"`            // MQTT QoS level for render events
		Retained      bool   `yaml:"retained"`       // Publish render events as retained messages
	} `yaml:"mqtt"`
}

// TileConfig describes the raster tile provider used by the rendered map.
type TileConfig struct {
	APIKey      string   `yaml:"api_key"`      // Tile provider API key
	URLTemplate string   `yaml:"url_template"` // Tile URL with {s},{z},{x},{y} and {apikey} placeholders
	Attribution string   `yaml:"attribution"`  // Attribution shown on the map
	Subdomains  []string `yaml:"subdomains"`   // Values substituted for {s}
	MaxZoom     int      `yaml:"max_zoom"`     // Maximum zoom offered by the provider
}

// URL returns the tile URL template with the API key substituted.
func (t TileConfig) URL() string {
	return strings.ReplaceAll(t.URLTemplate, constants.TileAPIKeyPlaceholder, t.APIKey)
}

// LoadConfig loads the YAML configuration from the specified file, if it exists,
// then applies defaults and environment overrides.
// It returns a pointer to the Config struct and an error if loading fails.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	var config Config

	if filename != "" {
		exists, err := fileClient.IsFileExists(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to stat config file %s: %w", filename, err)
		}
		if exists {
			if err := fileClient.ReadYamlFile(filename, &config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
			}
		}
	}

	config.applyEnv(os.LookupEnv)
	config.applyDefaults()

	return &config, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process environment.
// Variables already set are not overwritten and a missing file is not an error.
func LoadEnvFile(filename string) error {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(filename)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvHomeAssistantURL); ok && v != "" {
		c.HomeAssistant.URL = v
	}
	if v, ok := lookup(EnvHomeAssistantToken); ok && v != "" {
		c.HomeAssistant.Token = v
	}
	if v, ok := lookup(EnvTileAPIKey); ok && v != "" {
		c.Tiles.APIKey = v
	}
	if v, ok := lookup(EnvMapsAPIKey); ok && v != "" {
		c.Geocoding.MapsAPIKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.Tiles.URLTemplate == "" {
		c.Tiles.URLTemplate = constants.DefaultTileURLTemplate
	}
	if c.Tiles.Attribution == "" {
		c.Tiles.Attribution = constants.DefaultTileAttribution
	}
	if c.Map.OutputFile == "" {
		c.Map.OutputFile = constants.DefaultOutputFile
	}
	if c.Map.Zoom == 0 {
		c.Map.Zoom = constants.DefaultZoom
	}
	if c.Storage.PresignExpiry == 0 {
		c.Storage.PresignExpiry = 7 * 24 * time.Hour
	}
	if c.Storage.Region == "" {
		c.Storage.Region = "us-east-1"
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "trailmap"
	}
	if c.MQTT.Topic == "" {
		c.MQTT.Topic = "trailmap/rendered"
	}
}

// Validate returns a ConfigurationError for the first missing required setting.
func (c *Config) Validate() error {
	required := []struct {
		setting string
		value   string
	}{
		{EnvHomeAssistantURL + " (home_assistant.url)", c.HomeAssistant.URL},
		{EnvHomeAssistantToken + " (home_assistant.token)", c.HomeAssistant.Token},
		{EnvTileAPIKey + " (tiles.api_key)", c.Tiles.APIKey},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &models.ConfigurationError{Setting: r.setting}
		}
	}

	if !strings.HasPrefix(c.HomeAssistant.URL, "http://") && !strings.HasPrefix(c.HomeAssistant.URL, "https://") {
		return &models.ConfigurationError{Setting: "home_assistant.url", Reason: "must start with http:// or https://"}
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > 22 {
		return &models.ConfigurationError{Setting: "map.zoom", Reason: "must be between 0 and 22"}
	}
	if c.Geocoding.Enabled && c.Geocoding.MapsAPIKey == "" {
		return &models.ConfigurationError{Setting: EnvMapsAPIKey + " (geocoding.maps_api_key)"}
	}
	if c.Storage.Enabled && (c.Storage.Endpoint == "" || c.Storage.Bucket == "") {
		return &models.ConfigurationError{Setting: "storage", Reason: "endpoint and bucket are required when enabled"}
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return &models.ConfigurationError{Setting: "mqtt.broker"}
	}
	if c.MQTT.QOS < 0 || c.MQTT.QOS > 2 {
		return &models.ConfigurationError{Setting: "mqtt.qos", Reason: "must be 0, 1 or 2"}
	}

	return nil
}
