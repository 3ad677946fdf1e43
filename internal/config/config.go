package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Camera  CameraConfig  `yaml:"camera"`
	Web     WebConfig     `yaml:"web"`
}

type BackendConfig struct {
	URL string `yaml:"url"` // base address of the recognition service
}

type CameraConfig struct {
	Device  string `yaml:"device"`  // V4L2 device path (default /dev/video0)
	Width   int    `yaml:"width"`   // capture width in pixels
	Height  int    `yaml:"height"`  // capture height in pixels
	Quality int    `yaml:"quality"` // JPEG encoding quality (1-100)
	MaxSize int    `yaml:"max_size"` // max snapshot dimension before upload, 0 disables downscaling
}

type WebConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	SessionSecret string `yaml:"session_secret"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// Load builds the configuration from environment variables. If PORTAL_CONFIG
// points to a YAML file, values from the file override the environment.
func Load() *Config {
	cfg := &Config{
		Backend: BackendConfig{
			URL: envString("BACKEND_URL", "http://127.0.0.1:8000"),
		},
		Camera: CameraConfig{
			Device:  envString("CAMERA_DEVICE", "/dev/video0"),
			Width:   envInt("CAMERA_WIDTH", 640),
			Height:  envInt("CAMERA_HEIGHT", 480),
			Quality: envInt("CAMERA_JPEG_QUALITY", 85),
			MaxSize: envInt("CAMERA_MAX_SIZE", 800),
		},
		Web: WebConfig{
			Host:          envString("WEB_HOST", "0.0.0.0"),
			Port:          envInt("WEB_PORT", 8080),
			SessionSecret: os.Getenv("WEB_SESSION_SECRET"),
		},
	}

	if path := os.Getenv("PORTAL_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			// Config file problems should be loud but not fatal - env values still apply.
			fmt.Fprintf(os.Stderr, "warning: could not load config file %s: %v\n", path, err)
		}
	}

	return cfg
}

// mergeFile overlays non-zero values from a YAML config file.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // operator-provided config path
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("could not parse config file: %w", err)
	}

	if file.Backend.URL != "" {
		c.Backend.URL = file.Backend.URL
	}
	if file.Camera.Device != "" {
		c.Camera.Device = file.Camera.Device
	}
	if file.Camera.Width > 0 {
		c.Camera.Width = file.Camera.Width
	}
	if file.Camera.Height > 0 {
		c.Camera.Height = file.Camera.Height
	}
	if file.Camera.Quality > 0 {
		c.Camera.Quality = file.Camera.Quality
	}
	if file.Camera.MaxSize > 0 {
		c.Camera.MaxSize = file.Camera.MaxSize
	}
	if file.Web.Host != "" {
		c.Web.Host = file.Web.Host
	}
	if file.Web.Port > 0 {
		c.Web.Port = file.Web.Port
	}
	if file.Web.SessionSecret != "" {
		c.Web.SessionSecret = file.Web.SessionSecret
	}

	return nil
}
