package bootstrap

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

const (
	StorageMemory = "memory"
	StorageRemote = "remote"
)

type Config struct {
	ServerPort       string  `mapstructure:"SERVER_PORT"`
	RedisUrl         string  `mapstructure:"REDIS_URL"`
	MongoUri         string  `mapstructure:"MONGO_URI"`
	MongoDatabase    string  `mapstructure:"MONGO_DATABASE"`
	StorageMode      string  `mapstructure:"STORAGE_MODE"`
	IsLocalCors      bool    `mapstructure:"LOCAL_CORS"`
	PageLimitGames   int     `mapstructure:"PAGE_LIMIT_GAMES"`
	AppID            string  `mapstructure:"APP_ID"`
	DefaultBoardSize int     `mapstructure:"DEFAULT_BOARD_SIZE"`
	DefaultKomi      float64 `mapstructure:"DEFAULT_KOMI"`
}

var defaults = map[string]any{
	"SERVER_PORT":        "8080",
	"REDIS_URL":          "localhost:6379",
	"MONGO_URI":          "mongodb://localhost:27017",
	"MONGO_DATABASE":     "goban",
	"STORAGE_MODE":       StorageMemory,
	"LOCAL_CORS":         false,
	"PAGE_LIMIT_GAMES":   20,
	"APP_ID":             "goban:1.0",
	"DEFAULT_BOARD_SIZE": 19,
	"DEFAULT_KOMI":       6.5,
}

// Setup reads cfgPath (an .env file), then lets environment variables
// override it. A missing file is not an error.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		err := v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		if err != nil && !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.StorageMode = strings.ToLower(cfg.StorageMode)
	return &cfg, nil
}

// Addr is the listen address for ServerPort.
func (c *Config) Addr() string {
	if strings.HasPrefix(c.ServerPort, ":") {
		return c.ServerPort
	}
	return ":" + c.ServerPort
}
