package catalog

import (
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"msp-pricing/core/types"
	"msp-pricing/internal/errors"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDefaultCatalogIsValid(t *testing.T) {
	spec := DefaultSpec()
	if errs := spec.Validate(DefaultValidationRules()); len(errs) > 0 {
		t.Fatalf("default catalog has %d violations: %v", len(errs), errs)
	}

	cat := Default()
	if cat.Version() != DefaultVersion {
		t.Errorf("version = %s, want %s", cat.Version(), DefaultVersion)
	}
	if cat.Currency() != types.CurrencyEUR {
		t.Errorf("currency = %s", cat.Currency())
	}
	if !cat.YearlyBillingFactor().Equal(dec("0.9")) {
		t.Errorf("yearly factor = %s, want 0.9", cat.YearlyBillingFactor())
	}
}

func TestBundleDerivedRates(t *testing.T) {
	bundles := Default().Bundles()

	for i, b := range bundles {
		want := b.Price.Div(decimal.NewFromInt(int64(b.Hours)))
		if !b.HourlyRate.Equal(want) {
			t.Errorf("bundle[%d] hourly rate = %s, want price/hours = %s", i, b.HourlyRate, want)
		}
		if i == 0 {
			continue
		}
		if !b.HourlyRate.LessThan(bundles[i-1].HourlyRate) {
			t.Errorf("bundle[%d] rate %s does not fall below %s", i, b.HourlyRate, bundles[i-1].HourlyRate)
		}
		if !b.Discount.GreaterThan(bundles[i-1].Discount) {
			t.Errorf("bundle[%d] discount %s does not grow past %s", i, b.Discount, bundles[i-1].Discount)
		}
	}

	if !bundles[0].Discount.Equal(dec("5")) {
		t.Errorf("10h bundle saves %s%%, want 5%%", bundles[0].Discount)
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	spec := DefaultSpec()
	cat := MustNew(spec)
	before := cat.Fingerprint()

	// Mutating the source spec must not leak into the catalog
	spec.MSPPlans[types.SupportRemote] = MSPPlan{PricePerUser: dec("1")}
	spec.VolumeTiers[0].DiscountPercent = dec("99")

	// Mutating returned slices must not leak either
	tiers := cat.VolumeTiers()
	tiers[0].MinUsers = 999
	bundles := cat.Bundles()
	bundles[0].Price = dec("1")

	plan, err := cat.MSPPlan(types.SupportRemote)
	if err != nil {
		t.Fatalf("MSPPlan: %v", err)
	}
	if !plan.PricePerUser.Equal(dec("60")) {
		t.Errorf("remote price changed to %s", plan.PricePerUser)
	}
	if cat.VolumeTiers()[0].MinUsers != 10 {
		t.Errorf("tier table was mutated through a returned slice")
	}
	if cat.Fingerprint() != before {
		t.Errorf("fingerprint changed")
	}
}

func TestFingerprintTracksContent(t *testing.T) {
	a := Default()
	b := Default()
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("identical catalogs have different fingerprints")
	}

	spec := DefaultSpec()
	spec.Adhoc.HourlyRate = dec("110")
	c := MustNew(spec)
	if c.Fingerprint() == a.Fingerprint() {
		t.Errorf("changing the hourly rate did not change the fingerprint")
	}
}

func TestLookupErrors(t *testing.T) {
	cat := Default()

	if _, err := cat.MSPPlan("satellite"); !stderrors.Is(err, errors.ErrUnknownKey) {
		t.Errorf("MSPPlan(satellite) err = %v, want UNKNOWN_KEY", err)
	}
	if _, err := cat.SLA("platinum"); !stderrors.Is(err, errors.ErrUnknownKey) {
		t.Errorf("SLA(platinum) err = %v, want UNKNOWN_KEY", err)
	}
	if _, err := cat.Service("does-not-exist"); !stderrors.Is(err, errors.ErrUnknownService) {
		t.Errorf("Service(does-not-exist) err = %v, want UNKNOWN_SERVICE", err)
	}
	for _, idx := range []int{-1, len(cat.Bundles())} {
		if _, err := cat.Bundle(idx); !stderrors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("Bundle(%d) err = %v, want INVALID_INPUT", idx, err)
		}
	}
}

func TestParseHelpers(t *testing.T) {
	cat := Default()

	st, err := cat.ParseSupportType("onsite")
	if err != nil || st != types.SupportOnsite {
		t.Errorf("ParseSupportType(onsite) = %q, %v", st, err)
	}
	if _, err := cat.ParseSupportType("Onsite"); err == nil {
		t.Errorf("support types are case sensitive")
	}

	lvl, err := cat.ParseSLALevel("premium")
	if err != nil || lvl != types.SLAPremium {
		t.Errorf("ParseSLALevel(premium) = %q, %v", lvl, err)
	}

	levels := cat.SLALevels()
	want := []types.SLALevel{types.SLAStandard, types.SLAPriority, types.SLAPremium}
	for i := range want {
		if levels[i] != want[i] {
			t.Fatalf("SLALevels = %v, want %v", levels, want)
		}
	}
}

func TestServicesKeepCatalogOrder(t *testing.T) {
	services := Default().Services()
	if services[0].ID != "ayce-remote" {
		t.Errorf("first service = %s", services[0].ID)
	}
	spec := DefaultSpec()
	for i := range spec.Services {
		if services[i].ID != spec.Services[i].ID {
			t.Fatalf("service %d = %s, want %s", i, services[i].ID, spec.Services[i].ID)
		}
	}
}

func TestValidationRejectsBrokenCatalogs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Spec)
		want   string
	}{
		{"bundle rate rises", func(s *Spec) { s.Bundles[1].Price = dec("5000") }, "hourly rate"},
		{"tier users not increasing", func(s *Spec) { s.VolumeTiers[2].MinUsers = 25 }, "min users"},
		{"tier discount not increasing", func(s *Spec) { s.VolumeTiers[2].DiscountPercent = dec("10") }, "discount"},
		{"sla multiplier below one", func(s *Spec) {
			s.SLAOptions[types.SLAStandard] = SLAOption{ResponseTime: "8h", Multiplier: dec("0.9")}
		}, "multiplier"},
		{"duplicate service", func(s *Spec) { s.Services = append(s.Services, s.Services[0]) }, "duplicate"},
		{"no bundles", func(s *Spec) { s.Bundles = nil }, "at least one bundle"},
		{"yearly discount of 100%", func(s *Spec) { s.YearlyBillingDiscount = dec("1") }, "yearly billing discount"},
		{"zero hours estimate", func(s *Spec) { s.Adhoc.EstimatedHoursPerUser = decimal.Zero }, "estimated hours"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := DefaultSpec()
			tc.mutate(&spec)

			_, err := New(spec)
			if !stderrors.Is(err, errors.ErrConfig) {
				t.Fatalf("err = %v, want CONFIG_ERROR", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestInvalidBundleReportedOnce(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Spec)
		want   string
	}{
		{"first bundle free", func(s *Spec) { s.Bundles[0].Price = decimal.Zero }, "bundle[0]: price must be positive"},
		{"middle bundle without hours", func(s *Spec) { s.Bundles[1].Hours = 0 }, "bundle[1]: hours must be positive"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := DefaultSpec()
			tc.mutate(&spec)

			errs := validateBundles(&spec)
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
			}
			if !strings.Contains(errs[0].Error(), tc.want) {
				t.Errorf("error %q does not mention %q", errs[0], tc.want)
			}
		})
	}
}

func TestBundleOrderSkipsInvalidNeighbour(t *testing.T) {
	spec := DefaultSpec()
	spec.Bundles[1].Hours = 0
	// 5000/50 = 100 per hour, compared with bundle[0] at 95
	spec.Bundles[2].Price = dec("5000")

	errs := validateBundles(&spec)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	if !strings.Contains(errs[1].Error(), "bundle[2]: hourly rate 100 must be below bundle[0]'s 95") {
		t.Errorf("error = %q", errs[1])
	}
}

func TestLoadFile(t *testing.T) {
	cat, err := LoadFile(filepath.Join("testdata", "catalog.hcl"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cat.Version() != "test-2" {
		t.Errorf("version = %s", cat.Version())
	}
	if !cat.YearlyBillingDiscount().Equal(dec("0.15")) {
		t.Errorf("yearly discount = %s", cat.YearlyBillingDiscount())
	}
	if !cat.Adhoc().EstimatedHoursPerUser.Equal(dec("0.75")) {
		t.Errorf("numeric string not decoded: %s", cat.Adhoc().EstimatedHoursPerUser)
	}

	plan, err := cat.MSPPlan(types.SupportRemote)
	if err != nil {
		t.Fatalf("MSPPlan: %v", err)
	}
	if plan.PricePerUser.String() != "55.5" {
		t.Errorf("remote price = %s, want exact 55.5", plan.PricePerUser)
	}

	sla, err := cat.SLA(types.SLAPremium)
	if err != nil {
		t.Fatalf("SLA: %v", err)
	}
	if !sla.Multiplier.Equal(dec("1.4")) || sla.Availability != "24/7" {
		t.Errorf("premium sla = %+v", sla)
	}

	if _, err := cat.SLA(types.SLAPriority); err == nil {
		t.Errorf("priority is not defined in the file")
	}

	tiers := cat.VolumeTiers()
	if len(tiers) != 2 || !tiers[0].DiscountPercent.Equal(dec("2.5")) {
		t.Errorf("tiers = %+v", tiers)
	}

	svc, err := cat.Service("microsoft-365-business-standard")
	if err != nil {
		t.Fatalf("Service: %v", err)
	}
	if !svc.UnitPrice.Equal(dec("12.5")) || svc.BillingUnit != PerUserMonth {
		t.Errorf("service = %+v", svc)
	}
}

func TestParseRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"syntax error":    `version = `,
		"missing adhoc":   `version = "x"` + "\nyearly_billing_discount = 0.1\n",
		"non-numeric":     validHead + `msp_plan "remote" { price_per_user = "sixty" }`,
		"invariant break": validHead + `msp_plan "remote" { price_per_user = 0 }`,
		"duplicate plan":  validHead + "msp_plan \"remote\" { price_per_user = 60 }\nmsp_plan \"remote\" { price_per_user = 61 }\n",
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src), "inline.hcl")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !stderrors.Is(err, errors.ErrConfig) {
				t.Errorf("err = %v, want CONFIG_ERROR", err)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.hcl"))
	if !stderrors.Is(err, errors.ErrConfig) {
		t.Fatalf("err = %v, want CONFIG_ERROR", err)
	}
}

const validHead = `
version                 = "inline"
yearly_billing_discount = 0.1

adhoc {
  hourly_rate              = 100
  estimated_hours_per_user = 0.5
}

bundle {
  hours = 10
  price = 950
}

sla "standard" {
  response_time = "8h"
  availability  = "Mon-Fri"
  multiplier    = 1
}
`
