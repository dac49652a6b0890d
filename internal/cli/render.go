package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bjtrainer/internal/game"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle = lipgloss.NewStyle().Bold(true).Width(9)
)

func Title(text string) string {
	return titleStyle.Render(text)
}

func renderCard(c game.Card) string {
	if c.Suit.IsRed() {
		return redStyle.Render(c.String())
	}
	return c.String()
}

func renderCards(cards []game.Card) string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = renderCard(c)
	}
	return strings.Join(out, " ")
}

// RenderTable draws the dealer, every hand and the shoe line.
func RenderTable(snap game.Snapshot) string {
	var lines []string

	dealer := renderCards(snap.Dealer.Cards)
	if snap.Dealer.HoleHidden {
		dealer += " " + dimStyle.Render("[?]")
	}
	lines = append(lines, labelStyle.Render("Dealer")+dealer+dimStyle.Render(" ("+snap.Dealer.Display+")"))

	results := make(map[int]game.HandResult, len(snap.Results))
	for _, r := range snap.Results {
		results[r.Hand] = r
	}

	for i, h := range snap.Hands {
		label := "You"
		if h.Seat != game.TraineeSeat {
			label = fmt.Sprintf("Seat %d", h.Seat+1)
		}
		line := labelStyle.Render(label) + renderCards(h.Cards) + dimStyle.Render(" ("+h.Display+")")
		if h.Doubled {
			line += " x2"
		}
		if h.Active {
			line += " <"
		}
		if r, ok := results[i]; ok {
			line += "  " + renderOutcome(r.Outcome)
		}
		lines = append(lines, line)
	}

	shoe := fmt.Sprintf("Shoe %d/%d", snap.Shoe.Remaining, snap.Shoe.Size)
	if snap.Shoe.CutCardReached {
		shoe += " (cut card out)"
	}
	if snap.Mode == game.ModeStrategy {
		shoe += fmt.Sprintf("  RC %+d  TC %+.1f", snap.RunningCount, snap.TrueCount)
	}
	lines = append(lines, dimStyle.Render(shoe))

	return strings.Join(lines, "\n")
}

func renderOutcome(o game.Outcome) string {
	switch o {
	case game.Win, game.BlackjackWin:
		return goodStyle.Render(o.String())
	case game.Push:
		return o.String()
	}
	return badStyle.Render(o.String())
}

func RenderJudgement(j game.Judgement) string {
	if j.Correct {
		return goodStyle.Render("✓ " + j.Text)
	}
	return badStyle.Render("✗ " + j.Text)
}

func RenderStats(st game.Statistics) string {
	return strings.Join([]string{
		fmt.Sprintf("Decisions  %d correct, %d wrong (%.1f%%)", st.Correct, st.Incorrect, st.Accuracy()),
		fmt.Sprintf("Streak     %d (best %d)", st.Streak, st.BestStreak),
		fmt.Sprintf("Rounds     %d", st.Rounds),
		fmt.Sprintf("Results    %d won, %d lost, %d pushed", st.Wins, st.Losses, st.Pushes),
		fmt.Sprintf("Naturals   %d yours, %d dealer's", st.PlayerBlackjacks, st.DealerBlackjacks),
		fmt.Sprintf("Count      %d correct, %d wrong", st.CountCorrect, st.CountIncorrect),
	}, "\n")
}

func RenderHistory(entries []game.Entry) string {
	if len(entries) == 0 {
		return dimStyle.Render("no history yet")
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		switch {
		case e.Kind == game.EntryResult:
			lines[i] = dimStyle.Render("= " + e.Text)
		case e.Correct:
			lines[i] = goodStyle.Render("✓ " + e.Text)
		default:
			lines[i] = badStyle.Render("✗ " + e.Text)
		}
	}
	return strings.Join(lines, "\n")
}
