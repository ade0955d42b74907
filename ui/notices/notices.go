// Package notices holds the queue of transient toasts shown above the page.
// Entries keep insertion order, are never merged, and disappear on timeout or
// explicit dismissal. Removing an id twice is a no-op.
package notices

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/solwave/fanwall/ui/common"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_SUCCESS)).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_CRITICAL)).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_SECONDARY))
)

type Notice struct {
	Id        uuid.UUID
	Type      common.NoticeType
	Message   string
	CreatedAt time.Time
}

type Model struct {
	Notices []Notice
	Ttl     time.Duration
}

// expireMsg retires one notice after its lifetime. A stale expiry for an
// already-dismissed id falls through harmlessly.
type expireMsg struct {
	id uuid.UUID
}

func InitialModel(ttl time.Duration) Model {
	return Model{
		Notices: []Notice{},
		Ttl:     ttl,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.NoticeMsg:
		notice := Notice{
			Id:        uuid.New(),
			Type:      msg.Type,
			Message:   msg.Message,
			CreatedAt: time.Now(),
		}
		m.Notices = append(m.Notices, notice)
		return m, expireAfter(notice.Id, m.Ttl)

	case expireMsg:
		m = m.Remove(msg.id)
		return m, nil
	}
	return m, nil
}

// Remove drops the notice with the given id. Unknown ids are ignored.
func (m Model) Remove(id uuid.UUID) Model {
	kept := make([]Notice, 0, len(m.Notices))
	for _, n := range m.Notices {
		if n.Id != id {
			kept = append(kept, n)
		}
	}
	m.Notices = kept
	return m
}

// DismissOldest drops the front of the queue.
func (m Model) DismissOldest() Model {
	if len(m.Notices) == 0 {
		return m
	}
	return m.Remove(m.Notices[0].Id)
}

func (m Model) View() string {
	if len(m.Notices) == 0 {
		return ""
	}

	var s strings.Builder
	for _, n := range m.Notices {
		switch n.Type {
		case common.NoticeSuccess:
			s.WriteString(successStyle.Render("✓ " + n.Message))
		case common.NoticeError:
			s.WriteString(errorStyle.Render("✗ " + n.Message))
		default:
			s.WriteString(infoStyle.Render("ℹ " + n.Message))
		}
		s.WriteString("\n")
	}
	return s.String()
}

func expireAfter(id uuid.UUID, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return expireMsg{id: id}
	})
}
