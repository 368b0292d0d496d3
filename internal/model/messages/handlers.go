package messages

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"moliyabot/internal/entity/user"
	"moliyabot/internal/locale"
	"moliyabot/internal/logger"
)

const startCommand = "/start"

func (s *Service) handleMessage(ctx context.Context, msg Message) error {
	rec, err := s.storage.GetUser(ctx, msg.UserID)
	if err != nil {
		s.sendFallbackError(msg.UserID)
		return errors.Wrap(err, "handle message")
	}
	s.syncName(ctx, msg.UserID, msg.UserName, &rec)

	if rec.Language == "" {
		return s.sendLanguagePrompt(msg.UserID)
	}
	str := locale.T(locale.Lang(rec.Language))
	text := strings.TrimSpace(msg.Text)

	// A fresh /start always wins over a pending wizard; every other
	// text belongs to the wizard while one is active.
	if sess, ok := s.sessions.Get(msg.UserID); ok && !strings.HasPrefix(text, startCommand) {
		return s.continueWizard(ctx, msg.UserID, text, sess, rec)
	}

	switch {
	case strings.HasPrefix(text, startCommand):
		s.sessions.Delete(msg.UserID)
		return s.tgClient.SendMenu(fmt.Sprintf(str.Greeting, rec.Name), msg.UserID, mainMenuRows(str))
	case isCancel(text):
		return s.tgClient.RemoveReplyKeyboard(str.CancelledAll, msg.UserID)
	default:
		return s.tgClient.SendMessage(str.DontUnderstand, msg.UserID)
	}
}

// syncName keeps the stored display name in line with the transport's.
// Failures here only cost a stale name, so they are logged and ignored.
func (s *Service) syncName(ctx context.Context, userID int64, name string, rec *user.Record) {
	if name == "" || rec.Name == name {
		return
	}
	rec.Name = name
	if err := s.storage.SaveUser(ctx, userID, *rec); err != nil {
		logger.Error("failed to save user name", zap.Error(err), zap.Int64("userID", userID))
	}
}

func (s *Service) sendLanguagePrompt(userID int64) error {
	return s.tgClient.SendMenu(locale.LanguagePrompt, userID, languageRows())
}

// sendFallbackError is for the rare case when even the user's language
// cannot be loaded; it renders in the default language.
func (s *Service) sendFallbackError(userID int64) {
	if err := s.tgClient.SendMessage(locale.T(locale.DefaultLang).SomethingWrong, userID); err != nil {
		logger.Error("failed to send fallback error", zap.Error(err), zap.Int64("userID", userID))
	}
}

func (s *Service) notifyError(userID int64, str locale.Strings) {
	if err := s.tgClient.RemoveReplyKeyboard(str.SomethingWrong, userID); err != nil {
		logger.Error("failed to send error message", zap.Error(err), zap.Int64("userID", userID))
	}
}

func (s *Service) invalidateReports(userID int64) {
	if err := s.cache.InvalidateCache(userID, reportCacheOptions()); err != nil {
		logger.Error("failed to invalidate report cache", zap.Error(err), zap.Int64("userID", userID))
	}
}
