// Package cli implements the cellar command line: offline access to the
// wine collection through the same service the HTTP server uses.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/winedex/internal/adapters/repository"
	service "github.com/okian/winedex/internal/app"
	"github.com/okian/winedex/internal/config"
	"github.com/okian/winedex/internal/domain/classify"
	"github.com/okian/winedex/pkg/logger"
)

// CLI holds the command tree and the service it runs against.
type CLI struct {
	root *cobra.Command

	cfg         *config.Config
	svc         *service.Service
	ownsService bool
	logger      logger.Logger

	// Flag overrides.
	store   string
	dataDir string
	year    int
	asJSON  bool
}

// New builds the command tree.
func New(opts ...Option) *CLI {
	c := &CLI{ownsService: true, logger: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}

	c.root = &cobra.Command{
		Use:   "cellar",
		Short: "Manage a wine collection as trading cards",
		Long: `cellar reads and writes the wine collection used by the winedex server.

Configuration is layered like the server: defaults, the YAML file named by
WINEDEX_CONFIG, WINEDEX_* environment variables, then the flags below.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.open,
	}

	flags := c.root.PersistentFlags()
	flags.StringVar(&c.store, "store", "", "collection backend: memory, sqlite or badger")
	flags.StringVar(&c.dataDir, "data-dir", "", "directory holding the collection")
	flags.IntVar(&c.year, "year", 0, "pin the current year used for wine age")
	flags.BoolVar(&c.asJSON, "json", false, "print JSON instead of formatted output")

	c.root.AddCommand(
		c.listCmd(),
		c.cardCmd(),
		c.statsCmd(),
		c.classifyCmd(),
		c.importCmd(),
		c.exportCmd(),
		c.seedCmd(),
		c.reclassifyCmd(),
		c.clearCmd(),
	)
	return c
}

// Command returns the root command, e.g. to set args or output in tests.
func (c *CLI) Command() *cobra.Command {
	return c.root
}

// Execute runs the command line and closes the service it opened.
func (c *CLI) Execute(ctx context.Context) error {
	defer c.close()
	if err := c.root.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("cellar: %w", err)
	}
	return nil
}

// open resolves configuration and starts the service unless one was injected.
func (c *CLI) open(cmd *cobra.Command, _ []string) error {
	if c.svc != nil {
		return nil
	}

	cfg := c.cfg
	if cfg == nil {
		loaded, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("store") {
		cfg.Store = c.store
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = c.dataDir
	}
	if cmd.Flags().Changed("year") {
		cfg.CurrentYear = c.year
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := repository.Open(cmd.Context(), cfg.Store, cfg.DataDir, repository.WithLogger(c.logger))
	if err != nil {
		return err
	}
	svc := service.New(
		service.WithStore(store),
		service.WithLogger(c.logger),
		service.WithClassifier(classify.New(classify.WithCurrentYear(cfg.CurrentYear))),
		service.WithSeedSampleData(cfg.SeedSampleData),
		service.WithSystemMetrics(false),
	)
	if err := svc.Start(cmd.Context()); err != nil {
		_ = store.Close()
		return err
	}
	c.svc = svc
	c.ownsService = true
	return nil
}

func (c *CLI) close() {
	if c.svc != nil && c.ownsService {
		c.svc.Stop()
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
