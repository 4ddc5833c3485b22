package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/matiasleandrokruk/unitai/internal/infra/config"
	"github.com/matiasleandrokruk/unitai/internal/infra/logging"
)

// commandContext carries state shared by every subcommand. Configuration is
// loaded once, after flags are parsed.
type commandContext struct {
	envFile string
	out     io.Writer
	errOut  io.Writer

	configOnce sync.Once
	config     config.Config
	configErr  error
	log        *slog.Logger
}

func newCommandContext(out, errOut io.Writer) *commandContext {
	return &commandContext{out: out, errOut: errOut}
}

// ensureConfig loads the .env file and the environment into a Config.
func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		if path := strings.TrimSpace(c.envFile); path != "" {
			if err := config.LoadDotEnv(path); err != nil {
				c.configErr = err
				return
			}
		}
		c.config = config.Load()
		// Logs go to stderr; stdout carries command output and MCP stdio.
		c.log = logging.Init(c.errOut, c.config.Environment, c.config.LogLevel)
	})
	return c.config, c.configErr
}

// requireConfig is ensureConfig plus Validate, for commands that call the model.
func (c *commandContext) requireConfig() (config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *commandContext) logger() *slog.Logger {
	if c.log == nil {
		return slog.Default()
	}
	return c.log
}
