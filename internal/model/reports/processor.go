package reports

import (
	"context"

	"go.uber.org/zap"

	"moliyabot/internal/locale"
	"moliyabot/internal/logger"
)

type messageSender interface {
	SendMessage(text string, userID int64) error
}

type reportCache interface {
	CacheReport(userID int64, option string, report string) error
}

// Processor serves dequeued report requests: generate, cache the
// rendered text, deliver to the chat.
type Processor struct {
	generator *Generator
	sender    messageSender
	cache     reportCache
}

func NewProcessor(generator *Generator, sender messageSender, cache reportCache) *Processor {
	return &Processor{
		generator: generator,
		sender:    sender,
		cache:     cache,
	}
}

func (p *Processor) Process(ctx context.Context, req Request) {
	lang := locale.Lang(req.Language)
	text, err := p.generator.Generate(ctx, req.UserID, req.Period, lang)
	if err != nil {
		logger.Error("failed to generate report", zap.Error(err), zap.Int64("userID", req.UserID))
		if sendErr := p.sender.SendMessage(locale.T(lang).SomethingWrong, req.ChatID); sendErr != nil {
			logger.Error("failed to report failure", zap.Error(sendErr))
		}
		return
	}

	// Cache failures are not fatal, the report is still delivered.
	if err = p.cache.CacheReport(req.UserID, CacheOption(req.Period, lang), text); err != nil {
		logger.Error("failed to cache report", zap.Error(err), zap.Int64("userID", req.UserID))
	}

	if err = p.sender.SendMessage(text, req.ChatID); err != nil {
		logger.Error("failed to send report", zap.Error(err), zap.Int64("userID", req.UserID))
	}
}
