package messages

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"

	"moliyabot/internal/entity/user"
	"moliyabot/internal/locale"
	"moliyabot/internal/logger"
	"moliyabot/internal/model/sessions"
)

// Button is one inline keyboard option: a visible label plus the
// opaque identifier sent back when pressed.
type Button struct {
	Label string
	Data  string
}

type messageSender interface {
	SendMessage(text string, userID int64) error
	SendMenu(text string, userID int64, rows [][]Button) error
	SendReplyKeyboard(text string, userID int64, labels []string) error
	RemoveReplyKeyboard(text string, userID int64) error
	EditMessage(text string, userID int64, messageID int, rows [][]Button) error
	AnswerCallback(callbackID, text string) error
}

type ledgerStorage interface {
	GetUser(ctx context.Context, id int64) (user.Record, error)
	SaveUser(ctx context.Context, id int64, rec user.Record) error
	AddIncome(ctx context.Context, userID int64, source string, amount float64) error
	AddExpense(ctx context.Context, userID int64, name string, amount float64, category string) error
	GetBalance(ctx context.Context, userID int64) (user.Balance, error)
	SetExpenseLimit(ctx context.Context, userID int64, amount float64) error
	CheckExpenseLimit(ctx context.Context, userID int64) (user.LimitStatus, error)
	ResetBalance(ctx context.Context, userID int64) error
}

type reportRequester interface {
	ProduceMessage(message []byte) error
}

type reportCache interface {
	GetReport(userID int64, option string) (string, error)
	InvalidateCache(userID int64, options []string) error
}

type config interface {
	SessionTTLMinutes() int64
}

type Service struct {
	tgClient   messageSender
	storage    ledgerStorage
	producer   reportRequester
	cache      reportCache
	sessions   sessions.Store
	sessionTTL time.Duration
}

func NewService(tgClient messageSender, storage ledgerStorage, producer reportRequester,
	cache reportCache, sessionStore sessions.Store, conf config) *Service {
	return &Service{
		tgClient:   tgClient,
		storage:    storage,
		producer:   producer,
		cache:      cache,
		sessions:   sessionStore,
		sessionTTL: time.Duration(conf.SessionTTLMinutes()) * time.Minute,
	}
}

// Message is an inbound text message normalized away from the
// transport's update shape.
type Message struct {
	Text     string
	UserID   int64
	UserName string
}

// Callback is an inbound button press.
type Callback struct {
	ID        string
	Data      string
	UserID    int64
	UserName  string
	MessageID int
}

func (s *Service) HandleIncomingMessage(ctx context.Context, msg Message) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "handleMessage")
	defer span.Finish()

	start := time.Now()
	err := s.handleMessage(ctx, msg)
	elapsed := time.Since(start)

	observeResponse("message", elapsed, err != nil)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return err
}

func (s *Service) HandleCallback(ctx context.Context, cb Callback) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "handleCallback")
	defer span.Finish()

	start := time.Now()
	err := s.handleCallback(ctx, cb)
	elapsed := time.Since(start)

	observeResponse("callback", elapsed, err != nil)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return err
}

const sessionSweepInterval = time.Minute

// WatchSessions abandons wizards whose owner went silent: the session
// is dropped first so a late reply cannot be consumed by a stale
// wizard, then the owner is told in their language.
func (s *Service) WatchSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	logger.Info("Start watching wizard sessions")
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stop watching wizard sessions")
			return
		case <-ticker.C:
			s.expireSessions(ctx)
		}
	}
}

func (s *Service) expireSessions(ctx context.Context) {
	expired := s.sessions.Expire(time.Now().Add(-s.sessionTTL))
	for userID := range expired {
		lang := locale.DefaultLang
		if rec, err := s.storage.GetUser(ctx, userID); err == nil {
			lang = locale.Lang(rec.Language)
		}
		logger.Info("wizard session expired", zap.Int64("userID", userID))
		if err := s.tgClient.RemoveReplyKeyboard(locale.T(lang).SessionExpired, userID); err != nil {
			logger.Error("failed to notify about expired session", zap.Error(err))
		}
	}
}
