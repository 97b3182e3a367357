package config

import (
	"os"
	"strings"
)

const (
	// GatewayURLVar overrides the marketplace data gateway endpoint.
	GatewayURLVar = "SEER_GATEWAY_URL"
	// GatewayTokenVar holds the bearer token for the gateway. Without it,
	// operation listing falls back to the static catalog and operation calls
	// fail fast.
	GatewayTokenVar = "SEER_GATEWAY_TOKEN"
	// EthereumNodeVar optionally puts a custom mainnet node in front of the
	// public ENS fallback endpoints.
	EthereumNodeVar = "ETHEREUM_MAINNET_NODE"

	DefaultGatewayURL = "https://mcp.opensea.io/mcp"
)

// Config carries everything Seer reads from the environment. It is built
// once at process start and passed down explicitly; nothing in the core
// reads env vars on its own.
type Config struct {
	GatewayURL   string
	GatewayToken string
	EthereumNode string
}

// FromEnv reads the configuration from the environment. Note: values are
// taken blindly after trimming spaces, they are not validated as urls.
// Errors will pop up during command execution instead.
func FromEnv() Config {
	c := Config{
		GatewayURL:   env(GatewayURLVar),
		GatewayToken: env(GatewayTokenVar),
		EthereumNode: env(EthereumNodeVar),
	}
	if c.GatewayURL == "" {
		c.GatewayURL = DefaultGatewayURL
	}
	return c
}

func env(name string) string {
	return strings.Trim(os.Getenv(name), " ")
}
