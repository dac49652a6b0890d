package bot

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bjtrainer/internal/config"
	"bjtrainer/internal/game"
)

const chatID = int64(42)

type fakeSender struct {
	mu       sync.Mutex
	messages []tgbotapi.MessageConfig
	answers  []tgbotapi.CallbackConfig
	sent     chan struct{}
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(chan struct{}, 100)}
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.messages = append(f.messages, msg)
	}
	f.mu.Unlock()
	f.sent <- struct{}{}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		f.answers = append(f.answers, cb)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) last() tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[len(f.messages)-1]
}

func (f *fakeSender) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.messages))
	for i, m := range f.messages {
		out[i] = m.Text
	}
	return out
}

func (f *fakeSender) lastAnswer() tgbotapi.CallbackConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.answers[len(f.answers)-1]
}

func (f *fakeSender) waitSends(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-f.sent:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for message %d of %d", i+1, n)
		}
	}
}

func buttons(t *testing.T, msg tgbotapi.MessageConfig) []string {
	t.Helper()
	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok, "message has no inline keyboard")
	var data []string
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			data = append(data, *b.CallbackData)
		}
	}
	return data
}

func newTestHandler(t *testing.T, cfg *config.Config, clock quartz.Clock, ranks ...string) (*Handler, *fakeSender) {
	t.Helper()
	sender := newFakeSender()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	h := NewHandler(sender, cfg, clock, logger)
	if len(ranks) > 0 {
		cards, err := game.Cards(ranks...)
		require.NoError(t, err)
		h.newSession = func(opts game.Options) *game.Session {
			opts.Rand = rand.New(rand.NewSource(1))
			return game.NewSessionWithShoe(opts, game.NewStackedShoe(cards, opts.Rand))
		}
	}
	return h, sender
}

func message(text string) *tgbotapi.Message {
	return &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: text}
}

func callback(data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{ID: "cb", Data: data, Message: message("")}
}

func TestStartOffersModes(t *testing.T) {
	h, sender := newTestHandler(t, config.Default(), quartz.NewMock(t))
	h.HandleMessage(message("/start"))

	sender.waitSends(t, 1)
	assert.Contains(t, sender.last().Text, "Тренажёр")
	assert.Equal(t, []string{CallbackStrategy, CallbackCounting}, buttons(t, sender.last()))
	assert.Equal(t, 1, h.tables.Len())
}

func TestDealAndStand(t *testing.T) {
	h, sender := newTestHandler(t, config.Default(), quartz.NewMock(t), "10", "10", "9", "7")

	h.HandleMessage(message("/deal"))
	sender.waitSends(t, 1)
	assert.Equal(t, []string{CallbackHit, CallbackStand, CallbackDouble}, buttons(t, sender.last()))
	assert.Contains(t, sender.last().Text, "🂠")

	h.HandleCallback(callback(CallbackStand))
	sender.waitSends(t, 1)
	assert.Equal(t, "", sender.lastAnswer().Text)
	assert.Contains(t, sender.last().Text, "✅ 19 vs 10: Stand")
	assert.Contains(t, sender.last().Text, "Win")
	assert.Equal(t, []string{CallbackDeal, CallbackStats}, buttons(t, sender.last()))

	h.HandleMessage(message("/stats"))
	sender.waitSends(t, 1)
	assert.Contains(t, sender.last().Text, "Побед: 1")
	assert.Contains(t, sender.last().Text, "1 верно / 0 неверно")
}

func TestInvalidActionIsRejected(t *testing.T) {
	h, sender := newTestHandler(t, config.Default(), quartz.NewMock(t), "10", "10", "9", "7")

	h.HandleCallback(callback(CallbackHit))
	assert.Equal(t, "Сейчас это действие недоступно", sender.lastAnswer().Text)

	h.HandleMessage(message("/deal"))
	sender.waitSends(t, 1)

	h.HandleCallback(callback(CallbackSplit))
	assert.Equal(t, "Сейчас это действие недоступно", sender.lastAnswer().Text)

	tb := h.tables.Get(chatID)
	tb.mu.Lock()
	defer tb.mu.Unlock()
	assert.Zero(t, tb.session.Stats().Correct+tb.session.Stats().Incorrect)
}

func TestDealerDrawsArePaced(t *testing.T) {
	mClock := quartz.NewMock(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := config.Default()
	cfg.StepDelay = time.Second
	h, sender := newTestHandler(t, cfg, mClock, "10", "6", "10", "A", "5", "10")

	h.HandleMessage(message("/deal"))
	sender.waitSends(t, 1)

	h.HandleCallback(callback(CallbackStand))
	sender.waitSends(t, 1)
	assert.Contains(t, sender.last().Text, "✅ 20 vs 6: Stand")
	assert.Nil(t, sender.last().ReplyMarkup, "no buttons while the dealer plays")

	mClock.Advance(time.Second).MustWait(ctx)
	sender.waitSends(t, 1)
	assert.Nil(t, sender.last().ReplyMarkup)

	mClock.Advance(time.Second).MustWait(ctx)
	sender.waitSends(t, 1)
	assert.Contains(t, sender.last().Text, "Win")
	assert.Equal(t, []string{CallbackDeal, CallbackStats}, buttons(t, sender.last()))
}

func TestCountingPrompt(t *testing.T) {
	cfg := config.Default()
	cfg.Mode = game.ModeCounting.String()
	cfg.CountEvery = 1
	h, sender := newTestHandler(t, cfg, quartz.NewMock(t), "10", "10", "9", "7", "2", "3", "4", "5", "6", "K")

	h.HandleMessage(message("/deal"))
	sender.waitSends(t, 1)
	assert.NotContains(t, sender.last().Text, "Счёт:", "the count is hidden in counting mode")

	h.HandleMessage(message("/s"))
	sender.waitSends(t, 2)
	assert.Contains(t, sender.last().Text, "Какой сейчас счёт")

	h.HandleMessage(message("/deal"))
	sender.waitSends(t, 1)
	assert.Contains(t, sender.last().Text, "Сначала назовите счёт")

	h.HandleMessage(message("/count many"))
	sender.waitSends(t, 1)
	assert.Contains(t, sender.last().Text, "Нужно целое число")

	// 10, 10, 9, 7 counts to -2
	h.HandleMessage(message("-2"))
	sender.waitSends(t, 1)
	assert.Contains(t, sender.last().Text, "✅ Верно, счёт -2")

	h.HandleMessage(message("/deal"))
	sender.waitSends(t, 1)
	assert.Equal(t, []string{CallbackHit, CallbackStand, CallbackDouble}, buttons(t, sender.last()))
}

func TestModeSwitchResetsSession(t *testing.T) {
	h, sender := newTestHandler(t, config.Default(), quartz.NewMock(t))

	h.HandleMessage(message("/mode counting"))
	sender.waitSends(t, 1)
	assert.Contains(t, sender.last().Text, "счёт карт")

	tb := h.tables.Get(chatID)
	require.NotNil(t, tb)
	tb.mu.Lock()
	assert.Equal(t, game.ModeCounting, tb.session.Mode())
	tb.mu.Unlock()

	h.HandleMessage(message("/mode poker"))
	sender.waitSends(t, 1)
	assert.Contains(t, sender.last().Text, "Режимы")
}

func TestStopDropsSession(t *testing.T) {
	h, sender := newTestHandler(t, config.Default(), quartz.NewMock(t), "10", "10", "9", "7")

	h.HandleMessage(message("/deal"))
	sender.waitSends(t, 1)
	require.Equal(t, 1, h.tables.Len())

	h.HandleMessage(message("/stop"))
	sender.waitSends(t, 1)
	assert.Contains(t, sender.last().Text, "Сессия завершена")
	assert.Zero(t, h.tables.Len())

	h.HandleCallback(callback(CallbackStand))
	assert.Equal(t, "Сейчас это действие недоступно", sender.lastAnswer().Text)
}

func TestJudgementPrecedesDealerDrawsWithoutDelay(t *testing.T) {
	cfg := config.Default()
	cfg.StepDelay = 0
	h, sender := newTestHandler(t, cfg, quartz.NewReal(), "10", "6", "10", "A", "5", "10")

	h.HandleMessage(message("/deal"))
	sender.waitSends(t, 1)

	h.HandleCallback(callback(CallbackStand))
	sender.waitSends(t, 3)

	texts := sender.texts()
	require.Len(t, texts, 4)
	assert.Contains(t, texts[1], "✅ 20 vs 6: Stand")
	assert.NotContains(t, texts[2], "Win")
	assert.Contains(t, texts[3], "Win")
}
