package messages

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"moliyabot/internal/entity/user"
	"moliyabot/internal/locale"
	"moliyabot/internal/logger"
	"moliyabot/internal/model/reports"
	"moliyabot/internal/model/sessions"
)

const (
	callbackAddExpense   = "add_expense_action"
	callbackAddIncome    = "add_income_action"
	callbackBalance      = "balance_action"
	callbackReport       = "report_action"
	callbackReportWeek   = "report_week"
	callbackReportMonth  = "report_month"
	callbackSetLimit     = "set_limit_action"
	callbackReset        = "reset_action"
	callbackConfirmReset = "confirm_reset"
	callbackLanguage     = "language_action"
	callbackBack         = "back_to_main"
	callbackLangPrefix   = "lang_"
)

func (s *Service) handleCallback(ctx context.Context, cb Callback) error {
	rec, err := s.storage.GetUser(ctx, cb.UserID)
	if err != nil {
		s.answer(cb, "")
		s.sendFallbackError(cb.UserID)
		return errors.Wrap(err, "handle callback")
	}

	if strings.HasPrefix(cb.Data, callbackLangPrefix) {
		return s.handleLanguageSelect(ctx, cb, rec)
	}
	if rec.Language == "" {
		s.answer(cb, "")
		return s.sendLanguagePrompt(cb.UserID)
	}

	lang := locale.Lang(rec.Language)
	str := locale.T(lang)

	switch cb.Data {
	case callbackAddExpense:
		return s.startWizard(cb, sessions.FlowExpense, sessions.StepName, str.ExpenseStarted, str.AskExpenseName)
	case callbackAddIncome:
		return s.startWizard(cb, sessions.FlowIncome, sessions.StepSource, str.IncomeStarted, str.AskIncomeSource)
	case callbackSetLimit:
		return s.startWizard(cb, sessions.FlowLimit, sessions.StepAmount, str.LimitStarted, str.AskLimit)

	case callbackBalance:
		return s.handleBalance(ctx, cb, lang, str)

	case callbackReport:
		s.answer(cb, "")
		return s.editOrSend(str.ChoosePeriod, cb.UserID, cb.MessageID, periodRows(str))
	case callbackReportWeek, callbackReportMonth:
		return s.handleReportRequest(cb, rec, lang, str)

	case callbackReset:
		s.answer(cb, "")
		return s.editOrSend(str.ConfirmResetText, cb.UserID, cb.MessageID, resetRows(str))
	case callbackConfirmReset:
		return s.handleReset(ctx, cb, str)

	case callbackLanguage:
		s.answer(cb, "")
		return s.editOrSend(locale.LanguagePrompt, cb.UserID, cb.MessageID, languageRows())
	case callbackBack:
		s.answer(cb, "")
		return s.editOrSend(str.MainMenu, cb.UserID, cb.MessageID, mainMenuRows(str))
	}

	s.answer(cb, "")
	return nil
}

func (s *Service) handleLanguageSelect(ctx context.Context, cb Callback, rec user.Record) error {
	lang := locale.Lang(strings.TrimPrefix(cb.Data, callbackLangPrefix))
	supported := false
	for _, l := range locale.Supported {
		if l == lang {
			supported = true
			break
		}
	}
	if !supported {
		s.answer(cb, "")
		return nil
	}

	rec.Language = string(lang)
	if rec.Name == "" {
		rec.Name = cb.UserName
	}
	if err := s.storage.SaveUser(ctx, cb.UserID, rec); err != nil {
		s.answer(cb, "")
		s.sendFallbackError(cb.UserID)
		return errors.Wrap(err, "select language")
	}

	s.answer(cb, "")
	str := locale.T(lang)
	return s.editOrSend(fmt.Sprintf(str.Greeting, rec.Name), cb.UserID, cb.MessageID, mainMenuRows(str))
}

// startWizard replaces whatever wizard was active, so a menu press is
// never consumed by a stale flow.
func (s *Service) startWizard(cb Callback, flow sessions.Flow, step sessions.Step, started, prompt string) error {
	s.answer(cb, "")
	s.sessions.Put(cb.UserID, sessions.Session{Flow: flow, Step: step})
	if err := s.editOrSend(started, cb.UserID, cb.MessageID, nil); err != nil {
		return errors.Wrap(err, "start wizard")
	}
	return s.tgClient.SendMessage(prompt, cb.UserID)
}

func (s *Service) handleBalance(ctx context.Context, cb Callback, lang locale.Lang, str locale.Strings) error {
	s.answer(cb, str.ComputingBalance)
	bal, err := s.storage.GetBalance(ctx, cb.UserID)
	if err != nil {
		s.notifyError(cb.UserID, str)
		return errors.Wrap(err, "handle balance")
	}

	text := fmt.Sprintf(str.BalanceText,
		locale.FormatAmount(bal.TotalIncome, lang),
		locale.FormatAmount(bal.TotalExpense, lang),
		locale.FormatAmount(bal.Balance, lang))
	return s.editOrSend(text+"\n\n"+str.ChooseAction, cb.UserID, cb.MessageID, mainMenuRows(str))
}

func (s *Service) handleReportRequest(cb Callback, rec user.Record, lang locale.Lang, str locale.Strings) error {
	period := reports.PeriodWeek
	if cb.Data == callbackReportMonth {
		period = reports.PeriodMonth
	}
	s.answer(cb, str.PreparingReport)

	if cached, err := s.cache.GetReport(cb.UserID, reports.CacheOption(period, lang)); err == nil {
		return s.editOrSend(cached+"\n\n"+str.ChooseAction, cb.UserID, cb.MessageID, mainMenuRows(str))
	}

	raw, err := json.Marshal(reports.Request{
		UserID:   cb.UserID,
		ChatID:   cb.UserID,
		Period:   period,
		Language: rec.Language,
	})
	if err != nil {
		return errors.Wrap(err, "request report")
	}
	if err = s.producer.ProduceMessage(raw); err != nil {
		s.notifyError(cb.UserID, str)
		return errors.Wrap(err, "request report")
	}
	// The reporter service delivers the rendered report as a new message.
	return nil
}

func (s *Service) handleReset(ctx context.Context, cb Callback, str locale.Strings) error {
	s.answer(cb, "")
	if err := s.storage.ResetBalance(ctx, cb.UserID); err != nil {
		s.notifyError(cb.UserID, str)
		return errors.Wrap(err, "handle reset")
	}
	s.invalidateReports(cb.UserID)
	return s.editOrSend(str.ResetDone+"\n\n"+str.ChooseAction, cb.UserID, cb.MessageID, mainMenuRows(str))
}

func (s *Service) answer(cb Callback, text string) {
	if err := s.tgClient.AnswerCallback(cb.ID, text); err != nil {
		logger.Error("failed to answer callback", zap.Error(err), zap.String("callbackID", cb.ID))
	}
}

// editOrSend edits the message the button lives on; when the target is
// stale or deleted it falls back to a fresh message.
func (s *Service) editOrSend(text string, userID int64, messageID int, rows [][]Button) error {
	err := s.tgClient.EditMessage(text, userID, messageID, rows)
	if err == nil {
		return nil
	}
	logger.Warn("message edit failed, sending new message", zap.Error(err), zap.Int64("userID", userID))
	if rows == nil {
		return s.tgClient.SendMessage(text, userID)
	}
	return s.tgClient.SendMenu(text, userID, rows)
}
