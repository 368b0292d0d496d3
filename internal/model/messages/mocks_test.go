package messages

import (
	"time"

	"github.com/pkg/errors"

	"moliyabot/internal/model/sessions"
)

type sentItem struct {
	kind   string
	text   string
	labels []string
}

// senderMock records every outgoing interaction in order.
type senderMock struct {
	sent    []sentItem
	answers []string
	editErr error
}

func (m *senderMock) SendMessage(text string, _ int64) error {
	m.sent = append(m.sent, sentItem{kind: "message", text: text})
	return nil
}

func (m *senderMock) SendMenu(text string, _ int64, _ [][]Button) error {
	m.sent = append(m.sent, sentItem{kind: "menu", text: text})
	return nil
}

func (m *senderMock) SendReplyKeyboard(text string, _ int64, labels []string) error {
	m.sent = append(m.sent, sentItem{kind: "keyboard", text: text, labels: labels})
	return nil
}

func (m *senderMock) RemoveReplyKeyboard(text string, _ int64) error {
	m.sent = append(m.sent, sentItem{kind: "message", text: text})
	return nil
}

func (m *senderMock) EditMessage(text string, _ int64, _ int, _ [][]Button) error {
	if m.editErr != nil {
		return m.editErr
	}
	m.sent = append(m.sent, sentItem{kind: "edit", text: text})
	return nil
}

func (m *senderMock) AnswerCallback(_, text string) error {
	m.answers = append(m.answers, text)
	return nil
}

func (m *senderMock) last() sentItem {
	if len(m.sent) == 0 {
		return sentItem{}
	}
	return m.sent[len(m.sent)-1]
}

func (m *senderMock) texts() []string {
	res := make([]string, 0, len(m.sent))
	for _, item := range m.sent {
		res = append(res, item.text)
	}
	return res
}

type producerMock struct {
	produced [][]byte
	err      error
}

func (m *producerMock) ProduceMessage(message []byte) error {
	if m.err != nil {
		return m.err
	}
	m.produced = append(m.produced, message)
	return nil
}

type cacheMock struct {
	reports     map[string]string
	invalidated int
}

func newCacheMock() *cacheMock {
	return &cacheMock{reports: make(map[string]string)}
}

func (m *cacheMock) GetReport(_ int64, option string) (string, error) {
	if text, ok := m.reports[option]; ok {
		return text, nil
	}
	return "", errors.New("cache miss")
}

func (m *cacheMock) InvalidateCache(int64, []string) error {
	m.invalidated++
	return nil
}

type configMock struct{}

func (configMock) SessionTTLMinutes() int64 { return 10 }

// expiringStoreMock hands out a pre-seeded expiration batch regardless
// of the cutoff.
type expiringStoreMock struct {
	*sessions.InMemStore
	expired map[int64]sessions.Session
}

func (m *expiringStoreMock) Expire(time.Time) map[int64]sessions.Session {
	res := m.expired
	m.expired = nil
	return res
}
