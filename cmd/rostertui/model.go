package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DukeRupert/carecrm/internal/selection"
	"github.com/DukeRupert/carecrm/internal/service"
)

var (
	colorAccent  = lipgloss.Color("#4338CA")
	colorMuted   = lipgloss.Color("241")
	colorWarning = lipgloss.Color("#B45309")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(colorAccent)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorAccent)
	statusStyle   = lipgloss.NewStyle().Foreground(colorWarning)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 2)
)

// stateMsg carries a selection change delivered by the Context observer.
type stateMsg selection.State

// model is the bubbletea model for the roster console.
type model struct {
	sel         *selection.Context
	updates     chan selection.State
	unsubscribe func()

	carerName string
	day       time.Time
	roster    []selection.CustomerRef

	cursor int
	state  selection.State
	status string
}

func newModel(sel *selection.Context, roster *service.Roster) model {
	updates := make(chan selection.State, 1)
	unsubscribe := sel.Subscribe(func(s selection.State) {
		// Keep only the latest state; the view always renders the newest.
		select {
		case updates <- s:
		default:
			select {
			case <-updates:
			default:
			}
			updates <- s
		}
	})

	return model{
		sel:         sel,
		updates:     updates,
		unsubscribe: unsubscribe,
		carerName:   roster.Carer.Name,
		day:         roster.Day,
		roster:      roster.Customers,
		state:       sel.Snapshot(),
	}
}

func (m model) close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// waitForState blocks until the Context publishes a new state.
func waitForState(updates <-chan selection.State) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-updates)
	}
}

func (m model) Init() tea.Cmd {
	return waitForState(m.updates)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		if msg.Revision < m.state.Revision {
			return m, waitForState(m.updates)
		}
		m.state = selection.State(msg)
		if i := m.state.Index(); i >= 0 {
			m.cursor = i
		}
		return m, waitForState(m.updates)
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.roster)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.roster) == 0 {
			m.status = "Roster is empty."
			return m, nil
		}
		m.sel.Establish(m.roster[m.cursor].CustomerID, m.roster)
	case "n":
		if !m.sel.Snapshot().HasNext() {
			m.status = "Already at the last customer."
			return m, nil
		}
		m.sel.Next()
	case "p":
		if !m.sel.Snapshot().HasPrevious() {
			m.status = "Already at the first customer."
			return m, nil
		}
		m.sel.Previous()
	case "c":
		m.sel.Clear()
		m.cursor = 0
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.carerName))
	b.WriteString(mutedStyle.Render("  " + m.day.Format("Monday 2 January 2006")))
	b.WriteString("\n\n")

	if len(m.roster) == 0 {
		b.WriteString(mutedStyle.Render("No customers on this roster."))
		b.WriteString("\n")
	}
	for i, c := range m.roster {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		name := strings.TrimSpace(c.FirstName + " " + c.LastName)
		if c.CustomerID == m.state.CustomerID {
			name = selectedStyle.Render(" " + name + " ")
		}
		b.WriteString(prefix + name + "\n")
	}

	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.selectionSummary()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("↑/↓ move · enter open · n next · p previous · c clear · q quit"))
	return b.String()
}

func (m model) selectionSummary() string {
	s := m.state
	if !s.Selected() {
		return "No customer selected"
	}
	name := strings.TrimSpace(s.FirstName + " " + s.LastName)
	if name == "" {
		name = s.CustomerID
	}
	if i := s.Index(); i >= 0 {
		return fmt.Sprintf("%s  %s", name, mutedStyle.Render(fmt.Sprintf("%d of %d", i+1, len(s.CustomerList))))
	}
	return fmt.Sprintf("%s  %s", name, statusStyle.Render("not on roster"))
}
