package messages

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"moliyabot/internal/locale"
	"moliyabot/internal/model/reports"
)

const cancelCommand = "/cancel"

// parseAmount accepts a decimal with either `.` or `,` as the
// fractional separator and rejects everything that is not a finite
// positive number.
func parseAmount(text string) (float64, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	amount, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse amount")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, errors.New("amount must be a positive number")
	}
	return amount, nil
}

func isCancel(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), cancelCommand)
}

func mainMenuRows(str locale.Strings) [][]Button {
	return [][]Button{
		{{Label: str.BtnAddExpense, Data: callbackAddExpense}},
		{{Label: str.BtnAddIncome, Data: callbackAddIncome}},
		{{Label: str.BtnBalance, Data: callbackBalance}},
		{{Label: str.BtnReport, Data: callbackReport}},
		{{Label: str.BtnSetLimit, Data: callbackSetLimit}},
		{{Label: str.BtnReset, Data: callbackReset}},
		{{Label: str.BtnLanguage, Data: callbackLanguage}},
	}
}

func periodRows(str locale.Strings) [][]Button {
	return [][]Button{
		{
			{Label: str.BtnWeek, Data: callbackReportWeek},
			{Label: str.BtnMonth, Data: callbackReportMonth},
		},
		{{Label: str.BtnBack, Data: callbackBack}},
	}
}

func resetRows(str locale.Strings) [][]Button {
	return [][]Button{
		{{Label: str.BtnConfirmReset, Data: callbackConfirmReset}},
		{{Label: str.BtnBack, Data: callbackBack}},
	}
}

func languageRows() [][]Button {
	rows := make([][]Button, 0, len(locale.Supported))
	for _, lang := range locale.Supported {
		rows = append(rows, []Button{{
			Label: locale.LanguageNames[lang],
			Data:  callbackLangPrefix + string(lang),
		}})
	}
	return rows
}

// reportCacheOptions enumerates every cached rendering of one user's
// reports, for invalidation after a ledger write.
func reportCacheOptions() []string {
	res := make([]string, 0, len(reports.Periods)*len(locale.Supported))
	for _, period := range reports.Periods {
		for _, lang := range locale.Supported {
			res = append(res, reports.CacheOption(period, lang))
		}
	}
	return res
}
