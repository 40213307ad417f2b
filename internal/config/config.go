// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"CCMS_DB_PATH" envDefault:"./data/college.db"`
	ServerHost string `env:"CCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"CCMS_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"CCMS_ENV" envDefault:"development"`
	LogLevel   string `env:"CCMS_LOG_LEVEL" envDefault:"info"`

	// PagesDir holds the static informational pages served at /page/{slug}.
	PagesDir string `env:"CCMS_PAGES_DIR" envDefault:"./pages"`
	// ImagesDir holds legacy image files served at /images/.
	ImagesDir string `env:"CCMS_IMAGES_DIR" envDefault:"./images"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
