package messages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moliyabot/internal/entity/user"
	"moliyabot/internal/model/sessions"
	"moliyabot/internal/model/storage"
)

func Test_OnStartCommand_ShouldGreetWithMenu(t *testing.T) {
	svc, sender, _, _, _ := newTestService(t)

	say(t, svc, "/start")

	assert.Equal(t, "menu", sender.last().kind)
	assert.Contains(t, sender.last().text, "Assalomu alaykum, Anvar")
}

func Test_OnUnknownText_ShouldAnswerDontUnderstand(t *testing.T) {
	svc, sender, _, _, _ := newTestService(t)

	say(t, svc, "qalaysan")

	assert.Contains(t, sender.last().text, "Tushunmadim")
}

func Test_OnCancelOutsideWizard_ShouldCancelAll(t *testing.T) {
	svc, sender, _, _, _ := newTestService(t)

	say(t, svc, "/cancel")

	assert.Contains(t, sender.last().text, "Barcha amallar bekor qilindi")
}

func Test_OnStartDuringWizard_ShouldDropSessionAndGreet(t *testing.T) {
	svc, sender, st, _, _ := newTestService(t)

	press(t, svc, callbackAddExpense)
	say(t, svc, "Non")
	say(t, svc, "/start")
	assert.Equal(t, "menu", sender.last().kind)

	// the aborted wizard must not consume the next reply
	say(t, svc, "100")
	assert.Contains(t, sender.last().text, "Tushunmadim")

	bal, err := st.GetBalance(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Zero(t, bal.TotalExpense)
}

func Test_OnFirstContact_ShouldAskForLanguage(t *testing.T) {
	sender := &senderMock{}
	st := storage.NewInMemStorage()
	svc := NewService(sender, st, &producerMock{}, newCacheMock(), sessions.NewInMemStore(), configMock{})
	ctx := context.Background()

	require.NoError(t, svc.HandleIncomingMessage(ctx, Message{Text: "hi", UserID: 99, UserName: "Bob"}))
	assert.Equal(t, "menu", sender.last().kind)
	assert.Contains(t, sender.last().text, "Choose your language")

	require.NoError(t, svc.HandleCallback(ctx, Callback{
		ID: "cb", Data: "lang_en", UserID: 99, UserName: "Bob", MessageID: 1,
	}))
	assert.Contains(t, sender.last().text, "Hello, Bob")

	rec, err := st.GetUser(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, "en", rec.Language)
	assert.Equal(t, "Bob", rec.Name)
}

func Test_OnRenamedUser_ShouldSyncStoredName(t *testing.T) {
	svc, _, st, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.HandleIncomingMessage(ctx, Message{
		Text: "/start", UserID: testUserID, UserName: "Anvarbek",
	}))

	rec, err := st.GetUser(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, "Anvarbek", rec.Name)
}

func Test_OnSessionExpiry_ShouldNotifyInUserLanguage(t *testing.T) {
	sender := &senderMock{}
	st := storage.NewInMemStorage()
	store := &expiringStoreMock{
		InMemStore: sessions.NewInMemStore(),
		expired: map[int64]sessions.Session{
			testUserID: {Flow: sessions.FlowExpense, Step: sessions.StepAmount},
		},
	}
	svc := NewService(sender, st, &producerMock{}, newCacheMock(), store, configMock{})
	ctx := context.Background()
	require.NoError(t, st.SaveUser(ctx, testUserID, user.Record{Name: "Anvar", Language: "ru"}))

	svc.expireSessions(ctx)

	assert.Contains(t, sender.last().text, "долгого ожидания")

	// the batch was consumed, a second sweep is quiet
	before := len(sender.sent)
	svc.expireSessions(ctx)
	assert.Len(t, sender.sent, before)
}
