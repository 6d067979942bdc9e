package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the meal delivery service
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port                   int `yaml:"port" env:"SERVER_PORT"`
	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds" env:"SERVER_SHUTDOWN_TIMEOUT_SECONDS"`
}

// CatalogConfig holds catalog data source configuration
type CatalogConfig struct {
	MenuPath string `yaml:"menu_path" env:"CATALOG_MENU_PATH"`
}

// Load reads configuration from a YAML file. Environment variables
// override file values for the server and catalog sections.
func Load(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	config := &Config{
		Server: ServerConfig{
			Port:                   3000,
			ShutdownTimeoutSeconds: 10,
		},
		Catalog: CatalogConfig{
			MenuPath: "menu.json",
		},
	}
	scanner := bufio.NewScanner(file)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Check for section headers
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			currentSection = strings.TrimSuffix(line, ":")
			continue
		}

		// Parse key-value pairs
		if strings.Contains(line, ":") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if err := config.setValue(currentSection, key, value); err != nil {
				return nil, fmt.Errorf("failed to set config value %s.%s: %w", currentSection, key, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	return config, nil
}

// setValue sets a configuration value based on section and key
func (c *Config) setValue(section, key, value string) error {
	switch section {
	case "server":
		return c.setServerValue(key, value)
	case "catalog":
		return c.setCatalogValue(key, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

// setServerValue sets server configuration values
func (c *Config) setServerValue(key, value string) error {
	switch key {
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port value: %w", err)
		}
		c.Server.Port = port
	case "shutdown_timeout_seconds":
		timeout, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid shutdown_timeout_seconds value: %w", err)
		}
		c.Server.ShutdownTimeoutSeconds = timeout
	default:
		return fmt.Errorf("unknown server key: %s", key)
	}
	return nil
}

// setCatalogValue sets catalog configuration values
func (c *Config) setCatalogValue(key, value string) error {
	switch key {
	case "menu_path":
		c.Catalog.MenuPath = value
	default:
		return fmt.Errorf("unknown catalog key: %s", key)
	}
	return nil
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
