// Initializing common application configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Collage CollageConfig `mapstructure:"collage"`
	Log     LogConfig     `mapstructure:"log"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
}

type ServerConfig struct {
	Host        string        `mapstructure:"host"`
	Port        string        `mapstructure:"port"`
	Timeout     time.Duration `mapstructure:"timeout"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	Mode        string        `mapstructure:"mode"`
}

type CollageConfig struct {
	DefaultWidth  int    `mapstructure:"default_width"`
	DefaultHeight int    `mapstructure:"default_height"`
	TileSize      int    `mapstructure:"tile_size"`
	MaxPixels     int64  `mapstructure:"max_pixels"`
	FormField     string `mapstructure:"form_field"`
	MaxMemory     int64  `mapstructure:"max_memory"`
	Compression   string `mapstructure:"compression"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// KafkaConfig describes where collage events go. No brokers means events are only logged.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"group_id"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.timeout", 60*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.mode", "release")

	v.SetDefault("collage.default_width", 3000)
	v.SetDefault("collage.default_height", 2000)
	v.SetDefault("collage.tile_size", 300)
	v.SetDefault("collage.max_pixels", 100_000_000)
	v.SetDefault("collage.form_field", "images")
	v.SetDefault("collage.max_memory", 32<<20)
	v.SetDefault("collage.compression", "default")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 7)
	v.SetDefault("log.compress", true)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "collage-events")
	v.SetDefault("kafka.group_id", "collage-event-logger")
}

// LoadConfig reads ./config/config.yaml on top of the compiled-in defaults.
// A missing file is not an error; environment variables (SERVER_PORT, PORT, ...) win over both.
func LoadConfig(paths ...string) (*viper.Viper, error) {

	viperInstance := viper.New()
	setDefaults(viperInstance)

	if len(paths) == 0 {
		paths = []string{"./config"}
	}
	for _, p := range paths {
		viperInstance.AddConfigPath(p)
	}
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()
	if err := viperInstance.BindEnv("server.port", "SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}

	err := viperInstance.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.Collage.DefaultWidth <= 0 || c.Collage.DefaultHeight <= 0 {
		return fmt.Errorf("collage default size must be positive, got %dx%d", c.Collage.DefaultWidth, c.Collage.DefaultHeight)
	}
	if c.Collage.TileSize <= 0 {
		return fmt.Errorf("collage tile size must be positive, got %d", c.Collage.TileSize)
	}
	if c.Collage.MaxPixels <= 0 {
		return fmt.Errorf("collage max pixels must be positive, got %d", c.Collage.MaxPixels)
	}
	if c.Collage.FormField == "" {
		return errors.New("collage form field must not be empty")
	}
	if c.Server.Port == "" {
		return errors.New("server port must not be empty")
	}
	return nil
}

func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
