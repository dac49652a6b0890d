package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"bjtrainer/internal/config"
	"bjtrainer/internal/game"
	"bjtrainer/internal/pacer"
)

// Sender is the part of the Telegram API the handlers use.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	bot    Sender
	cfg    *config.Config
	clock  quartz.Clock
	logger *log.Logger
	tables *tables

	// newSession is replaced in tests to stack the shoe.
	newSession func(opts game.Options) *game.Session
}

func NewHandler(bot Sender, cfg *config.Config, clock quartz.Clock, logger *log.Logger) *Handler {
	return &Handler{
		bot:        bot,
		cfg:        cfg,
		clock:      clock,
		logger:     logger,
		tables:     newTables(),
		newSession: game.NewSession,
	}
}

// ============== ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ ==============

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.logger.Error("Failed to send message", "chat", chatID, "error", err)
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Error("Failed to send message", "chat", chatID, "error", err)
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("Failed to answer callback", "error", err)
	}
}

func (h *Handler) table(chatID int64) *table {
	return h.tables.GetOrCreate(chatID, func() *table {
		h.logger.Info("New training session", "chat", chatID)
		return &table{
			session: h.newSession(h.cfg.SessionOptions()),
			pacer:   pacer.New(h.clock, h.cfg.StepDelay, h.logger),
		}
	})
}

// render sends the table and whatever keyboard fits the phase. Called
// with the table's lock released.
func (h *Handler) render(chatID int64, snap game.Snapshot, prefix string) {
	text := formatTable(snap)
	if prefix != "" {
		text = prefix + "\n\n" + text
	}

	switch {
	case snap.AwaitingInput:
		h.sendWithKeyboard(chatID, text, GameKeyboard(GameKeyboardOptions{
			CanDouble: snap.CanDouble,
			CanSplit:  snap.CanSplit,
		}))
	case snap.Phase == game.End:
		h.sendWithKeyboard(chatID, text, EndGameKeyboard())
		if snap.CountDue {
			h.send(chatID, "🧮 Какой сейчас счёт? Ответьте числом, например: /count -2")
		}
	default:
		h.send(chatID, text)
	}
}

// continueRound hands pending steps to the pacer. It runs after the
// caller's own render so paced messages always follow it. A round
// abandoned in between has nothing pending and is left alone.
func (h *Handler) continueRound(chatID int64, t *table) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.session.HasPending() {
		return
	}
	t.pacer.Start(t.session, &t.mu, func(snap game.Snapshot, more bool) {
		h.render(chatID, snap, "")
	})
}

// ============== ОБРАБОТЧИКИ КОМАНД ==============

func (h *Handler) HandleStart(chatID int64) {
	h.table(chatID)
	h.sendWithKeyboard(chatID,
		"🎰 Тренажёр блэкджека\n\n"+
			"Отрабатывайте базовую стратегию и счёт Hi-Lo.\n\n"+
			"/deal — раздать\n"+
			"/mode strategy|counting — режим\n"+
			"/count <число> — назвать счёт\n"+
			"/stats — статистика\n"+
			"/history — последние решения\n"+
			"/stop — завершить сессию\n"+
			"/help — правила",
		ModeKeyboard())
}

func (h *Handler) HandleHelp(chatID int64) {
	h.send(chatID,
		"📖 Правила стола:\n\n"+
			fmt.Sprintf("• %d колод, подрезка на 72–78%% шуза\n", h.cfg.Decks)+
			"• Дилер берёт на мягких 17\n"+
			"• Double только на двух картах\n"+
			"• Split пар; тузы получают по одной карте\n\n"+
			"🧮 Hi-Lo: 2–6 = +1, 7–9 = 0, 10–A = −1\n"+
			"Истинный счёт = текущий / оставшиеся колоды\n\n"+
			"Каждое решение сверяется с базовой стратегией.")
}

func (h *Handler) HandleMode(chatID int64, args []string) {
	if len(args) == 0 {
		h.sendWithKeyboard(chatID, "Выберите режим:", ModeKeyboard())
		return
	}
	mode, err := game.ParseMode(strings.ToLower(args[0]))
	if err != nil {
		h.send(chatID, "❌ Режимы: strategy, counting")
		return
	}
	h.selectMode(chatID, mode)
}

func (h *Handler) selectMode(chatID int64, mode game.Mode) {
	t := h.table(chatID)
	t.mu.Lock()
	t.pacer.Stop()
	t.session.Abandon()
	t.session.SelectMode(mode)
	t.mu.Unlock()

	h.logger.Info("Mode selected", "chat", chatID, "mode", mode)
	text := "🎯 Режим: базовая стратегия. Счёт показывается на столе."
	if mode == game.ModeCounting {
		text = "🧮 Режим: счёт карт. Считайте сами, время от времени я спрошу счёт."
	}
	h.sendWithKeyboard(chatID, text, EndGameKeyboard())
}

func (h *Handler) HandleDeal(chatID int64) {
	t := h.table(chatID)
	t.mu.Lock()
	if t.session.CountDue() {
		t.mu.Unlock()
		h.send(chatID, "🧮 Сначала назовите счёт: /count <число>")
		return
	}
	rebuild := t.session.Shoe().CutCardReached()
	if err := t.session.DealNewGame(); err != nil {
		t.mu.Unlock()
		h.logger.Warn("Deal rejected", "chat", chatID, "error", err)
		h.send(chatID, "❌ Сначала закончите текущую раздачу")
		return
	}
	snap := t.session.Snapshot(0)
	t.mu.Unlock()

	prefix := ""
	if rebuild {
		prefix = "🔀 Новый шуз, счёт сброшен"
	}
	h.render(chatID, snap, prefix)
	h.continueRound(chatID, t)
}

func (h *Handler) HandleStats(chatID int64) {
	t := h.table(chatID)
	t.mu.Lock()
	st := t.session.Stats()
	t.mu.Unlock()
	h.send(chatID, formatStats(st))
}

func (h *Handler) HandleHistory(chatID int64) {
	t := h.table(chatID)
	t.mu.Lock()
	entries := t.session.History().Recent(15)
	t.mu.Unlock()
	h.send(chatID, formatHistory(entries))
}

func (h *Handler) HandleCount(chatID int64, text string) {
	t := h.table(chatID)
	t.mu.Lock()
	actual := t.session.RunningCount()
	correct, err := t.session.ConfirmCountText(text)
	t.mu.Unlock()

	if errors.Is(err, game.ErrInvalidCountEntry) {
		h.send(chatID, "❌ Нужно целое число, например: /count -3")
		return
	}
	if correct {
		h.sendWithKeyboard(chatID, fmt.Sprintf("✅ Верно, счёт %+d", actual), EndGameKeyboard())
		return
	}
	h.sendWithKeyboard(chatID, fmt.Sprintf("❌ Неверно, счёт %+d", actual), EndGameKeyboard())
}

// HandleStop ends the chat's session. The next command starts a fresh one.
func (h *Handler) HandleStop(chatID int64) {
	if t := h.tables.Get(chatID); t != nil {
		t.mu.Lock()
		t.pacer.Stop()
		t.session.Abandon()
		t.mu.Unlock()
		h.tables.Delete(chatID)
		h.logger.Info("Training session ended", "chat", chatID)
	}
	h.send(chatID, "👋 Сессия завершена. /start — начать заново")
}

// ============== ОБРАБОТЧИКИ CALLBACK ==============

func (h *Handler) HandleCallback(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil || callback.Message.Chat == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	switch callback.Data {
	case CallbackDeal:
		h.answerCallback(callback.ID, "")
		h.HandleDeal(chatID)
		return
	case CallbackStats:
		h.answerCallback(callback.ID, "")
		h.HandleStats(chatID)
		return
	case CallbackStrategy:
		h.answerCallback(callback.ID, "")
		h.selectMode(chatID, game.ModeStrategy)
		return
	case CallbackCounting:
		h.answerCallback(callback.ID, "")
		h.selectMode(chatID, game.ModeCounting)
		return
	}

	action, ok := map[string]game.Action{
		CallbackHit:    game.Hit,
		CallbackStand:  game.Stand,
		CallbackDouble: game.Double,
		CallbackSplit:  game.Split,
	}[callback.Data]
	if !ok {
		h.answerCallback(callback.ID, "Неизвестная команда")
		return
	}

	if err := h.handleAction(chatID, action); err != nil {
		h.answerCallback(callback.ID, "Сейчас это действие недоступно")
		return
	}
	h.answerCallback(callback.ID, "")
}

func (h *Handler) handleAction(chatID int64, action game.Action) error {
	t := h.tables.Get(chatID)
	if t == nil {
		return game.ErrNoRound
	}

	t.mu.Lock()
	j, err := t.session.Act(action)
	if err != nil {
		t.mu.Unlock()
		h.logger.Debug("Action rejected", "chat", chatID, "action", action, "error", err)
		return err
	}
	snap := t.session.Snapshot(0)
	t.mu.Unlock()

	h.logger.Debug("Action judged", "chat", chatID, "action", j.Action, "recommended", j.Recommended, "correct", j.Correct)
	h.render(chatID, snap, formatJudgement(j))
	h.continueRound(chatID, t)
	return nil
}

// ============== ОБРАБОТЧИК СООБЩЕНИЙ ==============

func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID
	parts := strings.Fields(msg.Text)

	if len(parts) == 0 {
		return
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/start":
		h.HandleStart(chatID)
	case "/help":
		h.HandleHelp(chatID)
	case "/mode":
		h.HandleMode(chatID, args)
	case "/deal", "/play":
		h.HandleDeal(chatID)
	case "/stats", "/balance":
		h.HandleStats(chatID)
	case "/history":
		h.HandleHistory(chatID)
	case "/stop":
		h.HandleStop(chatID)
	case "/count":
		h.HandleCount(chatID, strings.Join(args, ""))
	case "/h", "/s", "/d", "/p":
		action, err := game.ParseAction(strings.TrimPrefix(cmd, "/"))
		if err == nil && h.handleAction(chatID, action) != nil {
			h.send(chatID, "❌ Сейчас это действие недоступно")
		}
	default:
		// a bare number answers a pending count prompt
		if t := h.tables.Get(chatID); t != nil && len(parts) == 1 {
			t.mu.Lock()
			due := t.session.CountDue()
			t.mu.Unlock()
			if due {
				h.HandleCount(chatID, parts[0])
			}
		}
	}
}
