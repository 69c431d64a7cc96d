package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessaro/storefront/internal/catalog"
	"github.com/tessaro/storefront/internal/price"
)

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	*RootOptions
}

// CatalogResult is the JSON payload of a successful validation.
type CatalogResult struct {
	File     string `json:"file"`
	Currency string `json:"currency"`
	Products int    `json:"products"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog <file>",
		Short: "Validate a catalog CUE file",
		Long: `Validate a catalog CUE file against the product schema.

Exit codes:
  0 - Catalog is valid
  1 - Catalog violates the schema
  2 - Command error (file not readable)

Examples:
  storefront catalog ./catalog.cue
  storefront catalog ./catalog.cue --verbose
  storefront catalog ./catalog.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(opts, args[0], cmd)
		},
	}

	return cmd
}

func runCatalog(opts *CatalogOptions, path string, cmd *cobra.Command) error {
	w := cmd.OutOrStdout()

	cat, err := catalog.Load(path)
	if err != nil {
		if opts.Format == "json" {
			if werr := writeJSONError(w, ErrCodeCatalog, err.Error(), nil); werr != nil {
				return werr
			}
			return NewExitError(ExitFailure, "catalog validation failed")
		}
		fmt.Fprintf(w, "✗ %s\n", err)
		return NewExitError(ExitFailure, "catalog validation failed")
	}

	if opts.Format == "json" {
		return writeJSON(w, Response{
			Status: "ok",
			Data: CatalogResult{
				File:     path,
				Currency: cat.Currency,
				Products: len(cat.Products),
			},
		})
	}

	fmt.Fprintf(w, "✓ %s: %d product(s), currency %s\n", path, len(cat.Products), cat.Currency)
	if opts.Verbose {
		formatter, err := price.NewFormatter(cat.Currency)
		if err != nil {
			return WrapExitError(ExitCommandError, "unknown catalog currency", err)
		}
		for _, p := range cat.Products {
			stock := "in stock"
			if !p.InStock {
				stock = "out of stock"
			}
			fmt.Fprintf(w, "  %-12s %-24s %-12s %s (%s)\n",
				p.ID, p.Name, p.Category, formatter.Format(p.Price), stock)
		}
	}
	return nil
}
