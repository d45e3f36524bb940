package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config carries the settings shared by every CLI command.
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
}

// DefaultConfig resolves settings from the environment, falling back to
// a local server and a token file under the user's home directory.
func DefaultConfig() *Config {
	cfg := &Config{
		ServerURL: os.Getenv("COURTSHOT_SERVER"),
		Token:     os.Getenv("COURTSHOT_TOKEN"),
		TokenFile: os.Getenv("COURTSHOT_TOKEN_FILE"),
		Output:    "text",
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:8080"
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = defaultTokenFile()
	}
	return cfg
}

// LoadToken reads the persisted session token unless one was already
// provided via flag or environment. A missing file is not an error.
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading token file: %w", err)
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

// SaveToken persists the session token for later invocations.
func (c *Config) SaveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(c.TokenFile), 0700); err != nil {
		return fmt.Errorf("creating token dir: %w", err)
	}
	if err := os.WriteFile(c.TokenFile, []byte(token), 0600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}

	c.Token = token
	return nil
}

// ClearToken forgets the session token and removes the token file.
func (c *Config) ClearToken() error {
	c.Token = ""
	err := os.Remove(c.TokenFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".courtshot/token"
	}
	return filepath.Join(home, ".courtshot", "token")
}
