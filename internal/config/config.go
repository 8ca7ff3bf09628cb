// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ServerConfig holds all server-related settings
type ServerConfig struct {
	Port int
	Host string
}

// DiscordConfig holds the OAuth application credentials
type DiscordConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// Config holds the complete application configuration
type Config struct {
	Server          *ServerConfig
	Discord         *DiscordConfig
	MongoURI        string
	SessionSecret   string
	FrontendURL     string
	AllowedOrigins  []string
	RedditUserAgent string
	Debug           bool
}

// DefaultConfig provides default server settings
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Port: 3000,
		Host: "0.0.0.0",
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LoadConfig loads configuration from environment variables and applies defaults
func LoadConfig() (*Config, error) {
	// A missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	serverConfig := DefaultConfig()

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			serverConfig.Port = port
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		serverConfig.Host = host
	}

	discord := &DiscordConfig{
		ClientID:     os.Getenv("DISCORD_CLIENT_ID"),
		ClientSecret: os.Getenv("DISCORD_CLIENT_SECRET"),
		CallbackURL:  os.Getenv("DISCORD_CALLBACK_URL"),
	}
	if discord.ClientID == "" || discord.ClientSecret == "" {
		return nil, fmt.Errorf("DISCORD_CLIENT_ID and DISCORD_CLIENT_SECRET environment variables are required")
	}
	if discord.CallbackURL == "" {
		return nil, fmt.Errorf("DISCORD_CALLBACK_URL environment variable is required")
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	config := &Config{
		Server:          serverConfig,
		Discord:         discord,
		MongoURI:        getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		SessionSecret:   sessionSecret,
		FrontendURL:     getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
		RedditUserAgent: getEnvOrDefault("REDDIT_USER_AGENT", "Supereddit/1.0"),
	}

	// The frontend origin must always be allowed for credentialed requests.
	config.AllowedOrigins = []string{config.FrontendURL}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		config.Debug = true
	}

	return config, nil
}

// Helper function to get environment variable with default fallback
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
