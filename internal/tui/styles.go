package tui

import (
	"deck-of-cards-go/internal/cards"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pointsStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	statusStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	chipStyle  = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	redChip    = chipStyle.BorderForeground(lipgloss.Color("1")).Foreground(lipgloss.Color("1"))
	blackChip  = chipStyle.BorderForeground(lipgloss.Color("7")).Foreground(lipgloss.Color("7"))
	jokerChip  = chipStyle.BorderForeground(lipgloss.Color("5")).Foreground(lipgloss.Color("5"))
	backChip   = chipStyle.BorderForeground(lipgloss.Color("4")).Foreground(lipgloss.Color("4"))
	emptyStyle = lipgloss.NewStyle().Faint(true)
)

// cardStyle picks the chip colour for c: red suits, black suits, jokers.
func cardStyle(c cards.Card) lipgloss.Style {
	switch {
	case c.IsJoker():
		return jokerChip
	case c.Suit == cards.Hearts || c.Suit == cards.Diamonds:
		return redChip
	default:
		return blackChip
	}
}
