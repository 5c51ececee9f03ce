package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
)

// TokenFile persists the session token under the config directory.
type TokenFile struct {
	cfg *Config
}

// Tokens returns the token store for this config.
func (c *Config) Tokens() *TokenFile {
	return &TokenFile{cfg: c}
}

// Load returns the stored token, or nil if there is none.
func (t *TokenFile) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(t.cfg.TokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TokenFileName, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", TokenFileName, err)
	}
	if token.AccessToken == "" {
		return nil, nil
	}
	return &token, nil
}

// Save stores the token with mode 0600.
func (t *TokenFile) Save(token *oauth2.Token) error {
	if err := t.cfg.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(t.cfg.TokenPath(), data, 0600)
}

// Clear removes the stored token. A missing file is not an error.
func (t *TokenFile) Clear() error {
	err := os.Remove(t.cfg.TokenPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
