package cli

import (
	service "github.com/okian/winedex/internal/app"
	"github.com/okian/winedex/internal/config"
	"github.com/okian/winedex/pkg/logger"
)

// Option applies a configuration option to the CLI.
type Option func(*CLI)

// WithService runs every command against svc instead of opening the
// configured store. The caller owns svc and its lifecycle.
func WithService(svc *service.Service) Option {
	return func(c *CLI) {
		c.svc = svc
		c.ownsService = false
	}
}

// WithConfig sets the base configuration; flags still override it.
func WithConfig(cfg *config.Config) Option {
	return func(c *CLI) {
		if cfg != nil {
			c.cfg = cfg
		}
	}
}

// WithLogger sets the logger handed to the store and service.
func WithLogger(l logger.Logger) Option {
	return func(c *CLI) {
		if l != nil {
			c.logger = l
		}
	}
}
