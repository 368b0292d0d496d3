package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_OnResolveCode_ShouldReturnSameCode(t *testing.T) {
	for _, code := range Codes {
		resolved, ok := Resolve(code)
		assert.True(t, ok)
		assert.Equal(t, code, resolved)
	}
}

func Test_OnResolveLabel_ShouldReturnCanonicalCode(t *testing.T) {
	cases := []struct {
		input string
		code  string
	}{
		{"Oziq-ovqat", Food},
		{"Продукты", Food},
		{"Food", Food},
		{"Transport", Transport},
		{"Транспорт", Transport},
		{"Ko'ngilochar", Entertainment},
		{"Развлечения", Entertainment},
		{"Kommunal", Utilities},
		{"Utilities", Utilities},
		{"Boshqa", Other},
		{"Другое", Other},
	}
	for _, c := range cases {
		resolved, ok := Resolve(c.input)
		assert.True(t, ok, c.input)
		assert.Equal(t, c.code, resolved, c.input)
	}
}

func Test_OnResolveMessyInput_ShouldNormalize(t *testing.T) {
	resolved, ok := Resolve("  oziq-OVQAT ")
	assert.True(t, ok)
	assert.Equal(t, Food, resolved)

	resolved, ok = Resolve("FOOD")
	assert.True(t, ok)
	assert.Equal(t, Food, resolved)
}

func Test_OnResolveUnknownInput_ShouldFail(t *testing.T) {
	for _, input := range []string{"", "   ", "Groceries", "еда", "food and drinks"} {
		_, ok := Resolve(input)
		assert.False(t, ok, input)
	}
}

func Test_OnCrossLanguageLabel_ShouldBeIdempotent(t *testing.T) {
	langs := []string{"uz", "ru", "en"}
	for _, code := range Codes {
		for _, stored := range langs {
			for _, viewer := range langs {
				storedLabel := Label(code, stored)
				assert.Equal(t, Label(code, viewer), Label(storedLabel, viewer),
					"stored %s viewed in %s", stored, viewer)
			}
		}
	}
}

func Test_OnLegacyUnknownValue_ShouldPassThrough(t *testing.T) {
	assert.Equal(t, "Sayohat", Label("Sayohat", "ru"))
}

func Test_OnLabels_ShouldKeepStableOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"Food", "Transport", "Entertainment", "Utilities", "Other"},
		Labels("en"))
}
