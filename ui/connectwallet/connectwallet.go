// Package connectwallet is the view a signed-action gesture lands on when the
// session has no wallet identity. Arriving here is a redirect, not an error;
// the page behind it is untouched.
package connectwallet

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/solwave/fanwall/ui/common"
)

var (
	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_WHITE))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_DIM))

	exampleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_SECONDARY))
)

type Model struct{}

func InitialModel() Model {
	return Model{}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "enter", "b":
			return m, func() tea.Msg {
				return common.CloseModalMsg{}
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("🔑 Connect a wallet"))
	s.WriteString("\n\n")
	s.WriteString(bodyStyle.Render("Reacting, commenting, tipping and posting need a wallet identity."))
	s.WriteString("\n")
	s.WriteString(bodyStyle.Render("Reconnect with an ed25519 key and your address is derived from it:"))
	s.WriteString("\n\n")
	s.WriteString(exampleStyle.Render("  ssh -i ~/.ssh/id_ed25519 <this host>"))
	s.WriteString("\n\n")
	s.WriteString(hintStyle.Render("Browsing stays open to everyone. esc: back"))

	return s.String()
}
