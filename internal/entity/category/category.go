package category

import "strings"

// Canonical category codes. Stored expenses reference these, not the
// localized labels, although legacy rows may still carry a label.
const (
	Food          = "food"
	Transport     = "transport"
	Entertainment = "entertainment"
	Utilities     = "utilities"
	Other         = "other"
)

var Codes = []string{Food, Transport, Entertainment, Utilities, Other}

var labels = map[string]map[string]string{
	Food:          {"uz": "Oziq-ovqat", "ru": "Продукты", "en": "Food"},
	Transport:     {"uz": "Transport", "ru": "Транспорт", "en": "Transport"},
	Entertainment: {"uz": "Ko'ngilochar", "ru": "Развлечения", "en": "Entertainment"},
	Utilities:     {"uz": "Kommunal", "ru": "Коммунальные", "en": "Utilities"},
	Other:         {"uz": "Boshqa", "ru": "Другое", "en": "Other"},
}

// Resolve maps user input to a canonical code. It accepts the code
// itself or any language's label, case-insensitively, exact match only.
func Resolve(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	for _, code := range Codes {
		if strings.EqualFold(input, code) {
			return code, true
		}
		for _, label := range labels[code] {
			if strings.EqualFold(input, label) {
				return code, true
			}
		}
	}
	return "", false
}

// Label renders a stored category value in the given language. The
// value may be a canonical code or a legacy localized label; anything
// unresolvable is returned as is.
func Label(value, lang string) string {
	code, ok := Resolve(value)
	if !ok {
		return value
	}
	if label, ok := labels[code][lang]; ok {
		return label
	}
	return code
}

// Labels lists all category labels for one language in a stable order,
// ready to be rendered as keyboard buttons.
func Labels(lang string) []string {
	res := make([]string, 0, len(Codes))
	for _, code := range Codes {
		res = append(res, Label(code, lang))
	}
	return res
}
