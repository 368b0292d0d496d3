package tg

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"moliyabot/internal/logger"
	"moliyabot/internal/model/messages"
)

const (
	defaultUpdateOffset = 0
	timeoutSeconds      = 5
)

type tokenGetter interface {
	Token() string
}

type Client struct {
	client *tgbotapi.BotAPI
}

func New(tokenGetter tokenGetter) (*Client, error) {
	client, err := tgbotapi.NewBotAPI(tokenGetter.Token())
	if err != nil {
		return nil, errors.Wrap(err, "cannot NewBotApi")
	}
	return &Client{client}, nil
}

func (c *Client) SendMessage(text string, userID int64) error {
	_, err := c.client.Send(tgbotapi.NewMessage(userID, text))
	return errors.Wrap(err, "client.Send")
}

func (c *Client) SendMenu(text string, userID int64, rows [][]messages.Button) error {
	msg := tgbotapi.NewMessage(userID, text)
	msg.ReplyMarkup = inlineMarkup(rows)
	_, err := c.client.Send(msg)
	return errors.Wrap(err, "client.Send")
}

// SendReplyKeyboard shows a one-time keyboard with one label per row.
func (c *Client) SendReplyKeyboard(text string, userID int64, labels []string) error {
	keyboardRows := make([][]tgbotapi.KeyboardButton, 0, len(labels))
	for _, label := range labels {
		keyboardRows = append(keyboardRows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(label)))
	}
	keyboard := tgbotapi.NewReplyKeyboard(keyboardRows...)
	keyboard.OneTimeKeyboard = true
	keyboard.ResizeKeyboard = true

	msg := tgbotapi.NewMessage(userID, text)
	msg.ReplyMarkup = keyboard
	_, err := c.client.Send(msg)
	return errors.Wrap(err, "client.Send")
}

func (c *Client) RemoveReplyKeyboard(text string, userID int64) error {
	msg := tgbotapi.NewMessage(userID, text)
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	_, err := c.client.Send(msg)
	return errors.Wrap(err, "client.Send")
}

func (c *Client) EditMessage(text string, userID int64, messageID int, rows [][]messages.Button) error {
	if rows == nil {
		_, err := c.client.Send(tgbotapi.NewEditMessageText(userID, messageID, text))
		return errors.Wrap(err, "client.Send edit")
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(userID, messageID, text, inlineMarkup(rows))
	_, err := c.client.Send(edit)
	return errors.Wrap(err, "client.Send edit")
}

func (c *Client) AnswerCallback(callbackID, text string) error {
	_, err := c.client.Request(tgbotapi.NewCallback(callbackID, text))
	return errors.Wrap(err, "client.Request callback")
}

func inlineMarkup(rows [][]messages.Button) tgbotapi.InlineKeyboardMarkup {
	keyboardRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		keyboardRows = append(keyboardRows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboardRows...)
}

func (c *Client) ListenUpdates(ctx context.Context, msgModel *messages.Service) {
	u := tgbotapi.NewUpdate(defaultUpdateOffset)
	u.Timeout = 60

	updates := c.client.GetUpdatesChan(u)

	logger.Info("Start listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stop listening for updates")
			return
		case update := <-updates:
			c.listenOnce(ctx, update, msgModel)
		}
	}
}

// listenOnce is the last-resort boundary: nothing coming out of one
// update may take the whole listener down.
func (c *Client) listenOnce(ctx context.Context, update tgbotapi.Update, msgModel *messages.Service) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while handling update",
				zap.Any("panic", r),
				zap.Int("updateID", update.UpdateID))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, time.Second*timeoutSeconds)
	defer cancel()

	switch {
	case update.Message != nil:
		logger.Info(update.Message.Text, zap.String("user", update.Message.From.UserName))

		err := msgModel.HandleIncomingMessage(ctx, messages.Message{
			Text:     update.Message.Text,
			UserID:   update.Message.From.ID,
			UserName: update.Message.From.FirstName,
		})
		if err != nil {
			logger.Error("error processing message", zap.Error(err), zap.Int("updateID", update.UpdateID))
		}

	case update.CallbackQuery != nil:
		cb := messages.Callback{
			ID:       update.CallbackQuery.ID,
			Data:     update.CallbackQuery.Data,
			UserID:   update.CallbackQuery.From.ID,
			UserName: update.CallbackQuery.From.FirstName,
		}
		if update.CallbackQuery.Message != nil {
			cb.MessageID = update.CallbackQuery.Message.MessageID
		}

		if err := msgModel.HandleCallback(ctx, cb); err != nil {
			logger.Error("error processing callback", zap.Error(err), zap.Int("updateID", update.UpdateID))
		}
	}
}
