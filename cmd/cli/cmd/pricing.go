// Package cmd - pricing model commands
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"msp-pricing/core/catalog"
	"msp-pricing/core/output"
	"msp-pricing/core/pricing"
	"msp-pricing/internal/logging"
)

// pricingFlags are shared by the calculator commands
type pricingFlags struct {
	users       int
	supportType string
	slaLevel    string
	bundle      int
}

func (f *pricingFlags) addUsers(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.users, "users", "u", 0, "number of users")
}

func (f *pricingFlags) addMSP(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.supportType, "type", "t", "remote", "support type (remote, hybrid, onsite)")
	cmd.Flags().StringVarP(&f.slaLevel, "sla", "s", "standard", "SLA level (standard, priority, premium)")
}

func (f *pricingFlags) addBundle(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.bundle, "bundle", "b", 0, "bundle index from 'catalog show' (omit for the cheapest bundle for the user count)")
}

// input resolves the flags of cmd against cat.
// An omitted --bundle selects the recommended bundle; an explicit index is passed through as given.
func (f *pricingFlags) input(cmd *cobra.Command, cat *catalog.Catalog, withMSP, withBundle bool) (pricing.Input, error) {
	in := pricing.Input{Users: f.users, BundleIndex: f.bundle}

	if withMSP {
		st, err := cat.ParseSupportType(f.supportType)
		if err != nil {
			return in, err
		}
		lvl, err := cat.ParseSLALevel(f.slaLevel)
		if err != nil {
			return in, err
		}
		in.SupportType, in.SLALevel = st, lvl
	}

	if withBundle && !cmd.Flags().Changed("bundle") {
		idx, err := pricing.RecommendBundle(cat, f.users)
		if err != nil {
			return in, err
		}
		logging.Debug("using recommended bundle", zap.Int("index", idx), zap.Int("users", f.users))
		in.BundleIndex = idx
	}
	return in, nil
}

type calculator func(*catalog.Catalog, pricing.Input) (*pricing.Result, error)

// runCalculator prices one model and renders the result
func runCalculator(opts *options, f *pricingFlags, calc calculator, withMSP, withBundle bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cat, err := opts.loadCatalog()
		if err != nil {
			return err
		}
		in, err := f.input(cmd, cat, withMSP, withBundle)
		if err != nil {
			return err
		}

		res, err := calc(cat, in)
		if err != nil {
			return err
		}
		logging.Debug("priced",
			zap.String("model", res.Model.String()),
			zap.Int("users", in.Users),
			logging.Money("monthly", res.MonthlyTotal),
		)
		return opts.render(cmd.OutOrStdout(), &output.Report{Result: res, Users: in.Users})
	}
}

func newAdhocCmd(opts *options) *cobra.Command {
	f := &pricingFlags{}
	cmd := &cobra.Command{
		Use:   "adhoc",
		Short: "Price reactive support billed per hour",
		Args:  cobra.NoArgs,
		RunE:  runCalculator(opts, f, pricing.Adhoc, false, false),
	}
	f.addUsers(cmd)
	return cmd
}

func newPrepaidCmd(opts *options) *cobra.Command {
	f := &pricingFlags{}
	cmd := &cobra.Command{
		Use:   "prepaid",
		Short: "Price a pre-paid hour bundle",
		Long: `Price a pre-paid hour bundle for the whole organisation.

Without --bundle the bundle with the lowest monthly total for the user
count is chosen.`,
		Args: cobra.NoArgs,
		RunE: runCalculator(opts, f, pricing.Prepaid, false, true),
	}
	f.addUsers(cmd)
	f.addBundle(cmd)
	return cmd
}

func newMSPCmd(opts *options) *cobra.Command {
	f := &pricingFlags{}
	cmd := &cobra.Command{
		Use:   "msp",
		Short: "Price the managed-service flat rate",
		Long: `Price the managed-service (MSP) flat rate per user.

The SLA multiplier scales the per-user price and volume discounts apply
from the catalog's user tiers. The yearly total includes the yearly
billing discount.`,
		Args: cobra.NoArgs,
		RunE: runCalculator(opts, f, pricing.MSP, true, false),
	}
	f.addUsers(cmd)
	f.addMSP(cmd)
	return cmd
}

func newCompareCmd(opts *options) *cobra.Command {
	f := &pricingFlags{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare ad-hoc, pre-paid and MSP pricing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			in, err := f.input(cmd, cat, true, true)
			if err != nil {
				return err
			}
			cmp, err := pricing.Compare(cat, in)
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), &output.Report{Comparison: cmp, Users: in.Users})
		},
	}
	f.addUsers(cmd)
	f.addMSP(cmd)
	f.addBundle(cmd)
	return cmd
}
