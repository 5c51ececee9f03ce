// Package tui is the interactive task browser.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tasktrack/internal/listview"
	"tasktrack/internal/log"
	"tasktrack/internal/service"
)

// Config is the configuration for the browser.
type Config struct {
	Service service.Service
	// Admin enables the all-tasks view toggle.
	Admin bool
	// View is the initial view mode.
	View   listview.ViewMode
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Service == nil {
		return fmt.Errorf("service is required")
	}
	if c.View == listview.ViewAll && !c.Admin {
		return fmt.Errorf("the all-tasks view needs an admin session")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "tui.Browser"})
	return nil
}

// Run opens the browser full screen and blocks until it is closed or ctx is done.
func Run(ctx context.Context, cfg Config) error {
	m, err := newBrowseModel(ctx, cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
