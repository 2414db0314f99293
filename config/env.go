package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	DefaultPort               = 5000
	DefaultSongsDirectory     = "songs"
	DefaultStaticDirectory    = "static"
	DefaultTemplatesDirectory = "templates"
	DefaultPollInterval       = 2 * time.Second
	DefaultCORSOrigins        = "http://localhost:3000,http://localhost:5000,http://localhost:5173"
)

// Config holds the server configuration. It is resolved once at startup.
type Config struct {
	Port               int           `toml:"port"`
	SongsDirectory     string        `toml:"songs_directory"`
	StaticDirectory    string        `toml:"static_directory"`
	TemplatesDirectory string        `toml:"templates_directory"`
	CORSOrigins        []string      `toml:"cors_origins"`
	PollInterval       time.Duration `toml:"poll_interval"`
	GinMode            string        `toml:"gin_mode"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Port:               DefaultPort,
		SongsDirectory:     DefaultSongsDirectory,
		StaticDirectory:    DefaultStaticDirectory,
		TemplatesDirectory: DefaultTemplatesDirectory,
		CORSOrigins:        strings.Split(DefaultCORSOrigins, ","),
		PollInterval:       DefaultPollInterval,
		GinMode:            gin.ReleaseMode,
	}
}

// Load resolves the configuration from defaults, an optional TOML file,
// a .env file and the process environment, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("SONGBOOK_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: No .env file found, using environment variables")
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values that would only fail later at startup
func (c *Config) Validate() error {
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("invalid gin mode %q: must be %q, %q or %q",
			c.GinMode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
	return nil
}

// loadFile overlays values found in a TOML file
func (c *Config) loadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Printf("WARNING: unknown keys in %s: %v", path, undecoded)
	}
	return nil
}

// applyEnv overlays values found in environment variables
func (c *Config) applyEnv() error {
	port := os.Getenv("SONGBOOK_PORT")
	if port == "" {
		port = os.Getenv("SERVER_PORT")
	}
	if port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", port, err)
		}
		c.Port = p
	}

	if dir := os.Getenv("SONGS_DIRECTORY"); dir != "" {
		c.SongsDirectory = dir
	}
	if dir := os.Getenv("STATIC_DIRECTORY"); dir != "" {
		c.StaticDirectory = dir
	}
	if dir := os.Getenv("TEMPLATES_DIRECTORY"); dir != "" {
		c.TemplatesDirectory = dir
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORSOrigins = strings.Split(origins, ",")
	}
	if interval := os.Getenv("SONGBOOK_POLL_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return fmt.Errorf("invalid poll interval %q: %w", interval, err)
		}
		c.PollInterval = d
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		c.GinMode = mode
	}
	return nil
}

// Addr returns the listen address for the configured port
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
