// Package cmd provides the CLI commands for msp-pricing.
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"msp-pricing/core/catalog"
	"msp-pricing/core/output"
	"msp-pricing/core/types"
	"msp-pricing/internal/config"
	"msp-pricing/internal/errors"
	"msp-pricing/internal/logging"
)

// Version is the CLI version
const Version = "0.1.0"

// options carries the global flags and what initConfig derives from them
type options struct {
	cfgFile     string
	verbose     bool
	format      string
	catalogPath string
	lang        string

	cfg      *config.Config
	catalog  *catalog.Catalog
	language types.Language
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "msp-pricing",
		Short: "Price IT support plans and build quotes",
		Long: `msp-pricing prices IT support for small and mid-sized organisations.

It compares ad-hoc hourly support, pre-paid hour bundles and a managed
service (MSP) flat rate, and builds itemised quotes from the service catalog.

Examples:
  msp-pricing compare --users 25 --type remote --sla priority
  msp-pricing msp --users 50 --format json
  msp-pricing quote --plan remote --users 10 --addon microsoft-365-business-standard --yearly`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.msp-pricing.json)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVarP(&opts.format, "format", "f", "", "output format (cli, json, markdown)")
	pf.StringVar(&opts.catalogPath, "catalog", "", "HCL catalog file (default is the built-in catalog)")
	pf.StringVar(&opts.lang, "lang", "", "presentation language (de, en)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(errors.TypeInvalidInput, "invalid flag", err)
	})

	// Add subcommands
	rootCmd.AddCommand(
		newAdhocCmd(opts),
		newPrepaidCmd(opts),
		newMSPCmd(opts),
		newCompareCmd(opts),
		newQuoteCmd(opts),
		newCatalogCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	switch errors.TypeOf(err) {
	case errors.TypeInvalidInput, errors.TypeInvalidQuantity, errors.TypeUnknownKey, errors.TypeUnknownService:
		return 2
	case errors.TypeConfig:
		return 3
	default:
		return 1
	}
}

func (o *options) initConfig() error {
	path := o.cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if o.catalogPath != "" {
		cfg.Catalog.Path = o.catalogPath
	}
	if o.format != "" {
		cfg.Output.DefaultFormat = o.format
	}
	o.cfg = cfg

	// Initialize logging
	if o.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return errors.Config("cannot initialize logging", err)
	}

	o.language = cfg.Output.Language
	if o.lang != "" {
		if o.language, err = output.ParseLanguage(o.lang); err != nil {
			return err
		}
	}
	return nil
}

// loadCatalog loads the configured catalog once
func (o *options) loadCatalog() (*catalog.Catalog, error) {
	if o.catalog != nil {
		return o.catalog, nil
	}
	cat, err := o.cfg.LoadCatalog()
	if err != nil {
		return nil, err
	}
	logging.Debug("catalog loaded",
		zap.String("version", cat.Version()),
		zap.String("fingerprint", cat.Fingerprint().Short()),
	)
	o.catalog = cat
	return cat, nil
}

// render writes report in the selected format
func (o *options) render(w io.Writer, report *output.Report) error {
	report.Language = o.language
	return output.Render(w, output.Format(o.cfg.Output.DefaultFormat), report)
}

// newVersionCmd prints version information
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "msp-pricing version %s\n", Version)
		},
	}
}
