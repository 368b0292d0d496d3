package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_OnParseAmount_ShouldAcceptBothSeparators(t *testing.T) {
	dot, err := parseAmount("12.5")
	require.NoError(t, err)
	comma, err := parseAmount("12,5")
	require.NoError(t, err)

	assert.Equal(t, 12.5, dot)
	assert.Equal(t, dot, comma)
}

func Test_OnParseAmount_ShouldTrimWhitespace(t *testing.T) {
	amount, err := parseAmount("  1000 ")
	require.NoError(t, err)
	assert.Equal(t, float64(1000), amount)
}

func Test_OnParseAmountGarbage_ShouldFail(t *testing.T) {
	for _, input := range []string{"abc", "", "-5", "0", "NaN", "Inf", "-Inf", "12..5"} {
		_, err := parseAmount(input)
		assert.Error(t, err, input)
	}
}

func Test_OnIsCancel_ShouldMatchPrefixOnly(t *testing.T) {
	assert.True(t, isCancel("/cancel"))
	assert.True(t, isCancel("  /cancel "))
	assert.True(t, isCancel("/cancel please"))
	assert.False(t, isCancel("cancel"))
	assert.False(t, isCancel("please /cancel"))
}

func Test_OnReportCacheOptions_ShouldCoverPeriodsAndLanguages(t *testing.T) {
	options := reportCacheOptions()
	assert.Len(t, options, 6)
	assert.Contains(t, options, "week:uz")
	assert.Contains(t, options, "month:en")
}
