package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"moliyabot/internal/entity/category"
	"moliyabot/internal/entity/user"
	"moliyabot/internal/locale"
	"moliyabot/internal/logger"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

var Periods = []string{PeriodWeek, PeriodMonth}

// Request is the kafka payload asking for one report. Language is
// captured when the request is enqueued so the reporter does not have
// to re-read the user profile.
type Request struct {
	UserID   int64  `json:"user_id"`
	ChatID   int64  `json:"chat_id"`
	Period   string `json:"period"`
	Language string `json:"language"`
}

// CacheOption is the memcached key suffix for one rendered report. The
// language is part of the key because the same numbers render
// differently per language.
func CacheOption(period string, lang locale.Lang) string {
	return period + ":" + string(lang)
}

type reportStorage interface {
	GetReport(ctx context.Context, userID int64, period string) (user.Report, error)
}

type Generator struct {
	storage reportStorage
}

func NewGenerator(storage reportStorage) *Generator {
	return &Generator{storage: storage}
}

// Generate renders a trailing-window report in the viewer's language.
// Stored category values are re-resolved so an expense recorded under
// one language's label shows up under the viewer's label.
func (g *Generator) Generate(ctx context.Context, userID int64, period string, lang locale.Lang) (string, error) {
	logger.Info("Generate report - start", zap.Int64("userID", userID), zap.String("period", period))
	defer logger.Info("Generate report - end")

	rep, err := g.storage.GetReport(ctx, userID, period)
	if err != nil {
		return "", errors.Wrap(err, "generate report")
	}

	str := locale.T(lang)
	header := str.ReportHeaderWeek
	if period == PeriodMonth {
		header = str.ReportHeaderMonth
	}

	lines := make([]string, 0, len(rep.Categories)+4)
	lines = append(lines, header, "")
	if len(rep.Categories) == 0 {
		lines = append(lines, str.ReportNoExpenses)
	} else {
		lines = append(lines, str.ReportCategories)
		for _, ct := range rep.Categories {
			lines = append(lines, fmt.Sprintf("  - %s: %s",
				category.Label(ct.Category, string(lang)),
				locale.FormatAmount(ct.Total, lang)))
		}
	}
	lines = append(lines, "", fmt.Sprintf(str.ReportTotals,
		locale.FormatAmount(rep.TotalIncome, lang),
		locale.FormatAmount(rep.TotalExpense, lang),
		locale.FormatAmount(rep.NetBalance, lang)))

	return strings.Join(lines, "\n"), nil
}
