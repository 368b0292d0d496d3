package messages

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"moliyabot/internal/entity/category"
	"moliyabot/internal/entity/user"
	"moliyabot/internal/locale"
	"moliyabot/internal/logger"
	"moliyabot/internal/model/sessions"
)

// continueWizard feeds one text reply into the user's saved wizard
// continuation. A /cancel-prefixed reply aborts at any prompt.
func (s *Service) continueWizard(ctx context.Context, userID int64, text string, sess sessions.Session, rec user.Record) error {
	lang := locale.Lang(rec.Language)
	str := locale.T(lang)

	if isCancel(text) {
		s.sessions.Delete(userID)
		return s.tgClient.RemoveReplyKeyboard(str.Cancelled, userID)
	}

	switch sess.Flow {
	case sessions.FlowExpense:
		return s.expenseStep(ctx, userID, text, sess, lang, str)
	case sessions.FlowIncome:
		return s.incomeStep(ctx, userID, text, sess, lang, str)
	case sessions.FlowLimit:
		return s.limitStep(ctx, userID, text, sess, lang, str)
	}

	s.sessions.Delete(userID)
	return s.tgClient.SendMessage(str.DontUnderstand, userID)
}

func (s *Service) expenseStep(ctx context.Context, userID int64, text string, sess sessions.Session, lang locale.Lang, str locale.Strings) error {
	switch sess.Step {
	case sessions.StepName:
		sess.Name = text
		sess.Step = sessions.StepAmount
		s.sessions.Put(userID, sess)
		return s.tgClient.SendMessage(str.AskAmount, userID)

	case sessions.StepAmount:
		amount, err := parseAmount(text)
		if err != nil {
			s.sessions.Delete(userID)
			return s.tgClient.SendMessage(str.BadAmount, userID)
		}
		sess.Amount = amount
		sess.Step = sessions.StepCategory
		s.sessions.Put(userID, sess)
		return s.tgClient.SendReplyKeyboard(str.AskCategory, userID, category.Labels(string(lang)))

	case sessions.StepCategory:
		code, ok := category.Resolve(text)
		if !ok {
			s.sessions.Delete(userID)
			return s.tgClient.RemoveReplyKeyboard(str.UnknownCategory, userID)
		}
		return s.commitExpense(ctx, userID, sess, code, lang, str)
	}

	s.sessions.Delete(userID)
	return nil
}

func (s *Service) commitExpense(ctx context.Context, userID int64, sess sessions.Session, code string, lang locale.Lang, str locale.Strings) error {
	s.sessions.Delete(userID)

	if err := s.storage.AddExpense(ctx, userID, sess.Name, sess.Amount, code); err != nil {
		s.notifyError(userID, str)
		return errors.Wrap(err, "commit expense")
	}
	s.invalidateReports(userID)

	confirmation := fmt.Sprintf(str.ExpenseAdded,
		sess.Name,
		locale.FormatAmount(sess.Amount, lang),
		category.Label(code, string(lang)))
	if err := s.tgClient.RemoveReplyKeyboard(confirmation, userID); err != nil {
		return errors.Wrap(err, "commit expense")
	}

	status, err := s.storage.CheckExpenseLimit(ctx, userID)
	if err != nil {
		// the expense is already saved, only the warning is at stake
		logger.Error("failed to check expense limit", zap.Error(err), zap.Int64("userID", userID))
		return nil
	}
	if status.JustExceeded {
		warning := fmt.Sprintf(str.LimitWarning,
			locale.FormatAmount(status.Limit, lang),
			locale.FormatAmount(status.Spent, lang),
			locale.FormatAmount(status.Spent-status.Limit, lang))
		return s.tgClient.SendMessage(warning, userID)
	}
	return nil
}

func (s *Service) incomeStep(ctx context.Context, userID int64, text string, sess sessions.Session, lang locale.Lang, str locale.Strings) error {
	switch sess.Step {
	case sessions.StepSource:
		sess.Name = text
		sess.Step = sessions.StepAmount
		s.sessions.Put(userID, sess)
		return s.tgClient.SendMessage(str.AskAmount, userID)

	case sessions.StepAmount:
		amount, err := parseAmount(text)
		if err != nil {
			s.sessions.Delete(userID)
			return s.tgClient.SendMessage(str.BadAmount, userID)
		}
		s.sessions.Delete(userID)

		if err = s.storage.AddIncome(ctx, userID, sess.Name, amount); err != nil {
			s.notifyError(userID, str)
			return errors.Wrap(err, "commit income")
		}
		s.invalidateReports(userID)

		return s.tgClient.SendMessage(
			fmt.Sprintf(str.IncomeAdded, sess.Name, locale.FormatAmount(amount, lang)),
			userID)
	}

	s.sessions.Delete(userID)
	return nil
}

func (s *Service) limitStep(ctx context.Context, userID int64, text string, sess sessions.Session, lang locale.Lang, str locale.Strings) error {
	if sess.Step != sessions.StepAmount {
		s.sessions.Delete(userID)
		return nil
	}

	amount, err := parseAmount(text)
	if err != nil {
		s.sessions.Delete(userID)
		return s.tgClient.SendMessage(str.BadAmount, userID)
	}
	s.sessions.Delete(userID)

	// Any new limit starts with the notification latch unarmed.
	if err = s.storage.SetExpenseLimit(ctx, userID, amount); err != nil {
		s.notifyError(userID, str)
		return errors.Wrap(err, "commit limit")
	}

	return s.tgClient.SendMessage(
		fmt.Sprintf(str.LimitSet, locale.FormatAmount(amount, lang)),
		userID)
}
