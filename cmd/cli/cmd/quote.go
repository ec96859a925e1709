package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"msp-pricing/core/export"
	"msp-pricing/core/output"
	"msp-pricing/core/quote"
	"msp-pricing/internal/errors"
	"msp-pricing/internal/logging"
)

type quoteFlags struct {
	services []string
	plan     string
	users    int
	addOns   []string
	yearly   bool
	export   string
}

func newQuoteCmd(opts *options) *cobra.Command {
	f := &quoteFlags{}
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Build an itemised quote",
		Long: `Build an itemised quote from catalog services.

Select services directly with --service id=quantity, or describe a plan
with --plan and --users and add extra services with --addon. With
--yearly the yearly billing discount is applied to the subtotal.

Examples:
  msp-pricing quote --service ayce-remote=10 --service microsoft-365-business-standard=10
  msp-pricing quote --plan hybrid --users 25 --addon m365-backup --yearly --export quote.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}

			selections, err := f.selections(opts)
			if err != nil {
				return err
			}
			q, err := quote.Generate(cat, selections, f.yearly)
			if err != nil {
				return err
			}

			if f.export != "" {
				if err := writeExport(f.export, q, f.yearly, opts); err != nil {
					return err
				}
			}
			return opts.render(cmd.OutOrStdout(), &output.Report{Quote: q})
		},
	}

	cmd.Flags().StringArrayVar(&f.services, "service", nil, "service selection as id=quantity (repeatable)")
	cmd.Flags().StringVar(&f.plan, "plan", "", "support plan type (remote, hybrid, onsite)")
	cmd.Flags().IntVarP(&f.users, "users", "u", 0, "number of users for --plan")
	cmd.Flags().StringSliceVar(&f.addOns, "addon", nil, "per-user add-on service id for --plan (repeatable)")
	cmd.Flags().BoolVar(&f.yearly, "yearly", false, "bill yearly and apply the yearly discount")
	cmd.Flags().StringVar(&f.export, "export", "", "write the export document as JSON to this file")
	return cmd
}

// selections builds the service selections from either --service or --plan
func (f *quoteFlags) selections(opts *options) ([]quote.Selection, error) {
	switch {
	case f.plan != "" && len(f.services) > 0:
		return nil, errors.InvalidInput("use either --service or --plan, not both")
	case f.plan != "":
		cat, err := opts.loadCatalog()
		if err != nil {
			return nil, err
		}
		st, err := cat.ParseSupportType(f.plan)
		if err != nil {
			return nil, err
		}
		return quote.FromPlan(cat, quote.Plan{SupportType: st, Users: f.users, AddOns: f.addOns})
	case len(f.addOns) > 0:
		return nil, errors.InvalidInput("--addon requires --plan")
	}

	selections := make([]quote.Selection, 0, len(f.services))
	for _, s := range f.services {
		sel, err := parseSelection(s)
		if err != nil {
			return nil, err
		}
		selections = append(selections, sel)
	}
	return selections, nil
}

// parseSelection parses "id=quantity"
func parseSelection(s string) (quote.Selection, error) {
	id, qty, ok := strings.Cut(s, "=")
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return quote.Selection{}, errors.InvalidInput("service %q: expected id=quantity", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(qty))
	if err != nil {
		return quote.Selection{}, errors.Wrapf(errors.TypeInvalidQuantity, err, "service %q: quantity must be a whole number", s).
			WithContext("service_id", id)
	}
	return quote.Selection{ServiceID: id, Quantity: n}, nil
}

func writeExport(path string, q *quote.Quote, yearly bool, opts *options) error {
	doc, err := export.NewDocument(q, yearly, opts.language)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer file.Close()

	if err := doc.WriteJSON(file); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	logging.Info("quote exported",
		zap.String("path", path),
		zap.String("reference", doc.Reference),
		zap.String("filename", doc.Filename()),
	)
	return nil
}
