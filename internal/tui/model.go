package tui

import (
	"fmt"
	"strings"

	"deck-of-cards-go/internal/cards"
	"deck-of-cards-go/internal/deck"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const bigDraw = 5

// changedMsg signals that the engine published at least one event since the
// model last looked.
type changedMsg struct{}

// Watch subscribes to svc and coalesces events into a 1-slot signal channel.
// The observer never blocks and never calls back into svc.
func Watch(svc *deck.Service) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	unsubscribe := svc.Subscribe(func(deck.Event) {
		select {
		case ch <- struct{}{}:
		default:
		}
	})
	return ch, unsubscribe
}

// Model renders one deck and maps keys to service operations.
type Model struct {
	svc     *deck.Service
	changes <-chan struct{}

	view   deck.View
	status string
	width  int
}

func New(svc *deck.Service, changes <-chan struct{}) Model {
	return Model{svc: svc, changes: changes, view: svc.State(), status: "ready"}
}

func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		m.view = m.svc.State()
		return m, m.waitForChange()
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "s":
		m.view = m.svc.Shuffle()
		m.status = "shuffled"
	case "d":
		m.view = m.draw(1)
	case "D":
		m.view = m.draw(bigDraw)
	case "o":
		m.view = m.svc.SortDrawn()
		m.status = "sorted drawn cards"
	case "u":
		if !m.view.CanUndo {
			m.status = "nothing to undo"
			break
		}
		m.view = m.svc.Undo()
		m.status = "undone"
	case "y":
		if !m.view.CanRedo {
			m.status = "nothing to redo"
			break
		}
		m.view = m.svc.Redo()
		m.status = "redone"
	case "0", "1", "2":
		jokers := int(msg.String()[0] - '0')
		m.view = m.svc.Reset(jokers)
		m.status = fmt.Sprintf("new deck with %d joker(s)", jokers)
	}
	return m, nil
}

func (m *Model) draw(n int) deck.View {
	if !m.view.CanDraw {
		m.status = "deck is empty"
		return m.view
	}
	v := m.svc.Draw(n)
	m.status = fmt.Sprintf("drew %d", len(v.Drawn)-len(m.view.Drawn))
	return v
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Deck of Cards"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Remaining "))
	b.WriteString(fmt.Sprintf("%d", len(m.view.Remaining)))
	b.WriteString(labelStyle.Render("   Drawn "))
	b.WriteString(fmt.Sprintf("%d", len(m.view.Drawn)))
	b.WriteString(labelStyle.Render("   Points "))
	b.WriteString(pointsStyle.Render(fmt.Sprintf("%d", m.view.Points)))
	b.WriteString("\n\n")

	if m.view.CanDraw {
		b.WriteString(backChip.Render("??"))
	} else {
		b.WriteString(emptyStyle.Render("(deck empty)"))
	}
	b.WriteString("\n")
	b.WriteString(m.renderDrawn())
	b.WriteString("\n\n")

	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine(m.view)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderDrawn() string {
	if len(m.view.Drawn) == 0 {
		return emptyStyle.Render("(nothing drawn)")
	}
	perRow := len(m.view.Drawn)
	if m.width > 0 {
		// chip = 2 border + 2 padding + up to 3 glyphs
		perRow = max(1, m.width/7)
	}
	var rows []string
	for start := 0; start < len(m.view.Drawn); start += perRow {
		end := min(start+perRow, len(m.view.Drawn))
		chips := make([]string, 0, end-start)
		for _, c := range m.view.Drawn[start:end] {
			chips = append(chips, renderCard(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(c cards.Card) string {
	return cardStyle(c).Render(c.String())
}

func helpLine(v deck.View) string {
	keys := []string{"s shuffle", "d draw", "D draw 5", "o sort"}
	if v.CanUndo {
		keys = append(keys, "u undo")
	}
	if v.CanRedo {
		keys = append(keys, "y redo")
	}
	keys = append(keys, "0/1/2 new deck", "q quit")
	return strings.Join(keys, " • ")
}
