package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	service "github.com/okian/winedex/internal/app"
	"github.com/okian/winedex/internal/domain/types"
)

func (c *CLI) listCmd() *cobra.Command {
	var q service.ListQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List wines, optionally searched, filtered and sorted",
		Example: `  cellar list --search bordeaux
  cellar list --category type --value "Red Wine" --sort rating --order desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wines, err := c.svc.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), wines)
			}
			if len(wines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no wines")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderList(wines))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&q.Search, "search", "q", "", "case-insensitive search term")
	f.StringVar(&q.Category, "category", "", "filter category: type, region, grape, year or rating")
	f.StringVar(&q.Value, "value", "", "filter value")
	f.StringVar(&q.SortField, "sort", "", "field to sort by")
	f.StringVar(&q.Order, "order", "asc", "sort order: asc or desc")
	return cmd
}

func (c *CLI) cardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "card <id>",
		Short: "Show a wine as a trading card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid wine id %q", args[0])
			}
			card, err := c.svc.Card(cmd.Context(), id)
			if err != nil {
				return err
			}
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), card)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCard(card))
			return nil
		},
	}
}

func (c *CLI) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := c.svc.CollectionStats(cmd.Context())
			if err != nil {
				return err
			}
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderStats(stats))
			return nil
		},
	}
}

func (c *CLI) classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <file>",
		Short: "Classify wines from a YAML file without storing them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wines, err := readWines(args[0])
			if err != nil {
				return err
			}
			cards := make([]service.Card, 0, len(wines))
			for _, w := range wines {
				cards = append(cards, service.Card{Wine: w, Stats: c.svc.Classify(w)})
			}
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), cards)
			}
			for _, card := range cards {
				fmt.Fprintln(cmd.OutOrStdout(), renderCard(card))
			}
			return nil
		},
	}
}

func (c *CLI) importCmd() *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add wines from a YAML file to the collection",
		Long: `Add wines from a YAML file to the collection. Incoming ids are
ignored and new ones assigned. With --replace the collection is emptied first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wines, err := readWines(args[0])
			if err != nil {
				return err
			}
			res, err := c.svc.Import(cmd.Context(), wines, replace)
			if err != nil {
				return err
			}
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d wines, collection now holds %d\n", res.Added, res.Total)
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "replace the whole collection")
	return cmd
}

func (c *CLI) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the collection as YAML to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wines, err := c.svc.Export(cmd.Context())
			if err != nil {
				return err
			}
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), wines)
			}
			if len(args) == 0 {
				return encodeWines(cmd.OutOrStdout(), wines)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			if err := encodeWines(f, wines); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d wines to %s\n", len(wines), args[0])
			return nil
		},
	}
}

func (c *CLI) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add the sample collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.svc.Seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d wines, collection now holds %d\n", res.Added, res.Total)
			return nil
		},
	}
}

func (c *CLI) reclassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reclassify",
		Short: "Overwrite every stored rarity with the computed one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			changed, err := c.svc.Reclassify(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reclassified %d wines\n", changed)
			return nil
		},
	}
}

func (c *CLI) clearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every wine in the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return ErrNotConfirmed
			}
			if err := c.svc.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "collection cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm clearing the collection")
	return cmd
}

func readWines(path string) (_ []types.Wine, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return decodeWines(f)
}
