package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Ayash-Bera/ophelia/frontend/internal/escape"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port      string
		RateLimit int // requests per minute per client IP, 0 disables
	}
	Backend struct {
		URL        string
		SearchPath string
	}
	Render struct {
		Escaper string
	}
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.rate_limit", 60)
	v.SetDefault("backend.url", "http://localhost:8081")
	v.SetDefault("backend.search_path", "/search")
	v.SetDefault("render.escaper", escape.NodeMode)
}

func fromViper(v *viper.Viper) *Config {
	var config Config
	config.Server.Port = v.GetString("server.port")
	config.Server.RateLimit = v.GetInt("server.rate_limit")
	config.Backend.URL = v.GetString("backend.url")
	config.Backend.SearchPath = v.GetString("backend.search_path")
	config.Render.Escaper = v.GetString("render.escaper")
	return &config
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("invalid BACKEND_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("BACKEND_URL must be an http(s) URL, got %q", c.Backend.URL)
	}
	if !strings.HasPrefix(c.Backend.SearchPath, "/") {
		return fmt.Errorf("BACKEND_SEARCH_PATH must start with '/'")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("SERVER_RATE_LIMIT cannot be negative")
	}
	if _, err := escape.ByName(c.Render.Escaper); err != nil {
		return err
	}
	return nil
}
