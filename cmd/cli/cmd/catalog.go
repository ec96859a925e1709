package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"msp-pricing/core/catalog"
	"msp-pricing/core/output"
)

func newCatalogCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the price catalog",
	}
	cmd.AddCommand(newCatalogShowCmd(opts), newCatalogValidateCmd(opts))
	return cmd
}

func newCatalogShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show rates, bundles, plans and services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), &output.Report{Catalog: cat})
		},
	}
}

func newCatalogValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate an HCL catalog file",
		Long: `Validate an HCL catalog file.

Without an argument the configured catalog is validated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cat *catalog.Catalog
				err error
			)
			if len(args) == 1 {
				cat, err = catalog.LoadFile(args[0])
			} else {
				cat, err = opts.loadCatalog()
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog %s is valid (%s)\n", cat.Version(), cat.Fingerprint().Short())
			return nil
		},
	}
}
