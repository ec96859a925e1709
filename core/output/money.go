package output

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"msp-pricing/core/types"
	"msp-pricing/internal/errors"
)

// DefaultLanguage is used when no language was requested
const DefaultLanguage = types.LanguageGerman

// supported is ordered by preference; the first entry is the matcher fallback
var supported = []types.Language{types.LanguageGerman, types.LanguageEnglish}

var matcher = language.NewMatcher([]language.Tag{language.German, language.English})

// FormatEuro renders amount in the conventions of lang, rounded to cents:
// German "1.234,50 €", English "€1,234.50". Unknown languages use German.
func FormatEuro(amount decimal.Decimal, lang types.Language) string {
	amount = types.RoundCents(amount)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	f := amount.InexactFloat64()
	if lang == types.LanguageEnglish {
		return sign + "€" + humanize.FormatFloat("#,###.##", f)
	}
	return sign + humanize.FormatFloat("#.###,##", f) + " €"
}

// FormatPercent renders a percentage without trailing zeros
func FormatPercent(percent decimal.Decimal, lang types.Language) string {
	s := percent.String()
	if lang == types.LanguageEnglish {
		return s + "%"
	}
	return strings.Replace(s, ".", ",", 1) + " %"
}

// ParseLanguage accepts a BCP 47 tag such as "de", "de-AT" or "en-GB".
// An empty string selects DefaultLanguage.
func ParseLanguage(s string) (types.Language, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultLanguage, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", errors.UnknownKey("language", s)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", errors.UnknownKey("language", s)
	}
	return supported[idx], nil
}

// NegotiateLanguage picks a supported language from an Accept-Language header.
// Anything unparseable or unsupported falls back to DefaultLanguage.
func NegotiateLanguage(acceptLanguage string) types.Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLanguage
	}
	return supported[idx]
}
