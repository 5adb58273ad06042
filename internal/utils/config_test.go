package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benmeehan/trailmap/internal/constants"
	"github.com/benmeehan/trailmap/internal/mocks"
	"github.com/benmeehan/trailmap/internal/models"
	"github.com/benmeehan/trailmap/pkg/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadConfig reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvHomeAssistantURL, EnvHomeAssistantToken, EnvTileAPIKey, EnvMapsAPIKey} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_FromYaml(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
home_assistant:
  url: http://homeassistant.local:8123
  token: yaml-token
  timeout: 15s
tiles:
  api_key: yaml-key
map:
  zoom: 12
mqtt:
  enabled: true
  broker: tcp://broker.local:1883
  qos: 1
`), 0600))

	config, err := LoadConfig(path, file.NewFileService())
	require.NoError(t, err)

	assert.Equal(t, "http://homeassistant.local:8123", config.HomeAssistant.URL)
	assert.Equal(t, "yaml-token", config.HomeAssistant.Token)
	assert.Equal(t, 15*time.Second, config.HomeAssistant.Timeout)
	assert.Equal(t, 12, config.Map.Zoom)
	assert.Equal(t, constants.DefaultOutputFile, config.Map.OutputFile)
	assert.Equal(t, "trailmap/rendered", config.MQTT.Topic)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig_EnvOverridesYaml(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHomeAssistantURL, "https://ha.example.com")
	t.Setenv(EnvHomeAssistantToken, "env-token")
	t.Setenv(EnvTileAPIKey, "env-key")

	fileClient := new(mocks.MockFileOperations)
	fileClient.On("IsFileExists", "config.yaml").Return(true, nil)
	fileClient.On("ReadYamlFile", "config.yaml", mock.Anything).Run(func(args mock.Arguments) {
		cfg := args.Get(1).(*Config)
		cfg.HomeAssistant.URL = "http://yaml.local"
		cfg.HomeAssistant.Token = "yaml-token"
	}).Return(nil)

	config, err := LoadConfig("config.yaml", fileClient)
	require.NoError(t, err)

	assert.Equal(t, "https://ha.example.com", config.HomeAssistant.URL)
	assert.Equal(t, "env-token", config.HomeAssistant.Token)
	assert.Equal(t, "env-key", config.Tiles.APIKey)
	assert.Equal(t, constants.DefaultZoom, config.Map.Zoom)
	assert.Equal(t, constants.DefaultTileURLTemplate, config.Tiles.URLTemplate)
	fileClient.AssertExpectations(t)
}

func TestLoadConfig_MissingFileUsesEnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHomeAssistantURL, "http://ha.local")

	fileClient := new(mocks.MockFileOperations)
	fileClient.On("IsFileExists", "missing.yaml").Return(false, nil)

	config, err := LoadConfig("missing.yaml", fileClient)
	require.NoError(t, err)
	assert.Equal(t, "http://ha.local", config.HomeAssistant.URL)
	fileClient.AssertNotCalled(t, "ReadYamlFile", mock.Anything, mock.Anything)
}

func TestLoadConfig_ParseError(t *testing.T) {
	clearEnv(t)
	fileClient := new(mocks.MockFileOperations)
	fileClient.On("IsFileExists", "bad.yaml").Return(true, nil)
	fileClient.On("ReadYamlFile", "bad.yaml", mock.Anything).Return(errors.New("yaml: line 1: did not find expected key"))

	_, err := LoadConfig("bad.yaml", fileClient)
	assert.ErrorContains(t, err, "failed to parse config file bad.yaml")
}

func TestConfig_Validate_MissingSettings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		setting string
	}{
		{name: "missing url", mutate: func(c *Config) { c.HomeAssistant.URL = "" }, setting: "HA_URL (home_assistant.url)"},
		{name: "missing token", mutate: func(c *Config) { c.HomeAssistant.Token = "" }, setting: "HA_TOKEN (home_assistant.token)"},
		{name: "missing tile key", mutate: func(c *Config) { c.Tiles.APIKey = " " }, setting: "THUNDERFOREST_API_KEY (tiles.api_key)"},
		{name: "bad scheme", mutate: func(c *Config) { c.HomeAssistant.URL = "homeassistant.local" }, setting: "home_assistant.url"},
		{name: "geocoding without key", mutate: func(c *Config) { c.Geocoding.Enabled = true }, setting: "GOOGLE_MAPS_API_KEY (geocoding.maps_api_key)"},
		{name: "storage without bucket", mutate: func(c *Config) { c.Storage.Enabled = true; c.Storage.Endpoint = "s3.local" }, setting: "storage"},
		{name: "mqtt without broker", mutate: func(c *Config) { c.MQTT.Enabled = true }, setting: "mqtt.broker"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(config)

			err := config.Validate()
			var configErr *models.ConfigurationError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, tt.setting, configErr.Setting)
		})
	}
}

func TestTileConfig_URL(t *testing.T) {
	tiles := TileConfig{URLTemplate: constants.DefaultTileURLTemplate, APIKey: "abc123"}
	assert.Equal(t, "https://{s}.tile.thunderforest.com/pioneer/{z}/{x}/{y}.png?apikey=abc123", tiles.URL())
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv keeps variables that are set, even when empty
	require.NoError(t, os.Unsetenv(EnvHomeAssistantToken))
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HA_TOKEN=from-dotenv\n"), 0600))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-dotenv", os.Getenv(EnvHomeAssistantToken))

	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")))
}

func validConfig() *Config {
	config := &Config{}
	config.HomeAssistant.URL = "http://homeassistant.local:8123"
	config.HomeAssistant.Token = "token"
	config.Tiles.APIKey = "key"
	config.applyDefaults()
	return config
}
