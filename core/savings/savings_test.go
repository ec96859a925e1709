package savings

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculateCheaperCandidate(t *testing.T) {
	r := Calculate(d("600"), d("1000"))

	checks := map[string]struct{ got, want decimal.Decimal }{
		"monthly":    {r.Monthly, d("400")},
		"yearly":     {r.Yearly, d("4800")},
		"percentage": {r.Percentage, d("40")},
		"threeYear":  {r.ThreeYear, d("14400")},
		"fiveYear":   {r.FiveYear, d("24000")},
	}
	for name, c := range checks {
		if !c.got.Equal(c.want) {
			t.Errorf("%s = %s, want %s", name, c.got, c.want)
		}
	}
	if !r.IsSaving() {
		t.Errorf("IsSaving should be true")
	}
}

func TestCalculateSignFlipsWhenArgumentsSwap(t *testing.T) {
	msp := d("2550")
	adhoc := d("2500")

	forward := Calculate(adhoc, msp)
	backward := Calculate(msp, adhoc)

	if !forward.Monthly.Equal(backward.Monthly.Neg()) {
		t.Errorf("monthly %s is not the negation of %s", forward.Monthly, backward.Monthly)
	}
	if !backward.Monthly.IsNegative() || backward.IsSaving() {
		t.Errorf("a more expensive candidate must produce a negative saving, got %s", backward.Monthly)
	}
	if !backward.Percentage.IsNegative() {
		t.Errorf("percentage = %s, want negative", backward.Percentage)
	}
	if !forward.Percentage.IsPositive() {
		t.Errorf("percentage = %s, want positive", forward.Percentage)
	}
}

func TestCalculateZeroBaseline(t *testing.T) {
	r := Calculate(d("100"), decimal.Zero)
	if !r.Percentage.IsZero() {
		t.Errorf("percentage = %s, want 0 for a zero baseline", r.Percentage)
	}
	if !r.Monthly.Equal(d("-100")) {
		t.Errorf("monthly = %s, want -100", r.Monthly)
	}
}

func TestPercentageRounding(t *testing.T) {
	cases := []struct {
		candidate, baseline, want string
	}{
		{"665", "1000", "34"},   // 33.5 rounds up
		{"666", "1000", "33"},   // 33.4
		{"1335", "1000", "-33"}, // -33.5 rounds toward +inf
		{"1000", "3000", "67"},  // 66.67
	}
	for _, tc := range cases {
		got := Calculate(d(tc.candidate), d(tc.baseline)).Percentage
		if !got.Equal(d(tc.want)) {
			t.Errorf("Calculate(%s, %s).Percentage = %s, want %s", tc.candidate, tc.baseline, got, tc.want)
		}
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	a := Calculate(d("1234.56"), d("2345.67"))
	b := Calculate(d("1234.56"), d("2345.67"))
	pairs := [][2]decimal.Decimal{
		{a.Monthly, b.Monthly},
		{a.Yearly, b.Yearly},
		{a.Percentage, b.Percentage},
		{a.ThreeYear, b.ThreeYear},
		{a.FiveYear, b.FiveYear},
	}
	for _, p := range pairs {
		if p[0].String() != p[1].String() {
			t.Errorf("repeated calls differ: %+v vs %+v", a, b)
		}
	}
}
