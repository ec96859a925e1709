package export

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// German captions. English falls through to the message keys.
var german = map[string]string{
	"Quote":                   "Angebot",
	"Service":                 "Leistung",
	"Quantity":                "Menge",
	"Unit price":              "Einzelpreis",
	"Line total":              "Gesamtpreis",
	"Subtotal":                "Zwischensumme",
	"Yearly billing discount": "Rabatt bei jährlicher Zahlung",
	"Total":                   "Gesamt",
	"billed monthly":          "monatliche Abrechnung",
	"billed yearly":           "jährliche Abrechnung",
}

func init() {
	for key, msg := range german {
		if err := message.SetString(language.German, key, msg); err != nil {
			panic(err)
		}
	}
}
