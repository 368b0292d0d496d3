package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// All ledger amounts are in Uzbek so'm; only the rendering differs per
// language (grouping, decimal separator, currency word).
type moneyFormat struct {
	tag    language.Tag
	suffix string
}

var moneyFormats = map[Lang]moneyFormat{
	Uz: {language.Uzbek, "so'm"},
	Ru: {language.Russian, "сум"},
	En: {language.English, "UZS"},
}

// FormatAmount renders an amount with the grouping and decimal
// conventions of the given language plus its currency suffix.
func FormatAmount(amount float64, lang Lang) string {
	f, ok := moneyFormats[lang]
	if !ok {
		f = moneyFormats[DefaultLang]
	}
	p := message.NewPrinter(f.tag)
	return p.Sprintf("%v %s", number.Decimal(amount), f.suffix)
}
