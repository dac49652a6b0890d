package bot

import (
	"fmt"
	"strings"

	"bjtrainer/internal/game"
)

func formatCards(cards []game.Card) string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.String()
	}
	return strings.Join(names, " ")
}

func formatTable(snap game.Snapshot) string {
	var sb strings.Builder

	dealer := formatCards(snap.Dealer.Cards)
	if snap.Dealer.HoleHidden {
		dealer += " 🂠"
	}
	sb.WriteString(fmt.Sprintf("🃏 Дилер: %s (%s)\n", dealer, snap.Dealer.Display))

	resultByHand := make(map[int]game.HandResult, len(snap.Results))
	for _, r := range snap.Results {
		resultByHand[r.Hand] = r
	}

	for i, h := range snap.Hands {
		label := "🎴 Вы"
		if h.Seat != game.TraineeSeat {
			label = fmt.Sprintf("🤖 Место %d", h.Seat+1)
		}
		marker := ""
		if h.Active {
			marker = " 👈"
		}
		if h.Doubled {
			marker += " x2"
		}
		sb.WriteString(fmt.Sprintf("%s: %s (%s)%s", label, formatCards(h.Cards), h.Display, marker))
		if r, ok := resultByHand[i]; ok {
			sb.WriteString(" — " + r.Outcome.String())
		}
		sb.WriteString("\n")
	}

	if snap.Mode == game.ModeStrategy {
		sb.WriteString(fmt.Sprintf("\n🧮 Счёт: %+d | Истинный: %+.1f | Шуз: %d/%d",
			snap.RunningCount, snap.TrueCount, snap.Shoe.Remaining, snap.Shoe.Size))
	} else {
		sb.WriteString(fmt.Sprintf("\n👟 Шуз: %d/%d", snap.Shoe.Remaining, snap.Shoe.Size))
	}
	if snap.Shoe.CutCardReached {
		sb.WriteString(" ✂️ последняя раздача")
	}
	return sb.String()
}

func formatJudgement(j game.Judgement) string {
	if j.Correct {
		return "✅ " + j.Text
	}
	return "❌ " + j.Text
}

func formatStats(st game.Statistics) string {
	return fmt.Sprintf(
		"📊 Статистика:\n"+
			"🎯 Решения: %d верно / %d неверно (%.1f%%)\n"+
			"🔥 Серия: %d (лучшая %d)\n"+
			"🎮 Раздач: %d\n"+
			"✅ Побед: %d | ❌ Поражений: %d | 🤝 Ничьих: %d\n"+
			"🎰 Блэкджеков: %d | у дилера: %d\n"+
			"🧮 Счёт: %d верно / %d неверно",
		st.Correct, st.Incorrect, st.Accuracy(),
		st.Streak, st.BestStreak,
		st.Rounds,
		st.Wins, st.Losses, st.Pushes,
		st.PlayerBlackjacks, st.DealerBlackjacks,
		st.CountCorrect, st.CountIncorrect)
}

func formatHistory(entries []game.Entry) string {
	if len(entries) == 0 {
		return "📜 История пуста"
	}
	var sb strings.Builder
	sb.WriteString("📜 История:\n")
	for _, e := range entries {
		mark := "✅"
		switch {
		case e.Kind == game.EntryResult:
			mark = "🏁"
		case !e.Correct:
			mark = "❌"
		}
		sb.WriteString(mark + " " + e.Text + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
