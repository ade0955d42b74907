package header

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/solwave/fanwall/domain"
	"github.com/solwave/fanwall/ui/common"
	"github.com/solwave/fanwall/util"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_ACCENT)).
			Bold(true)

	walletStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_USERNAME))

	disconnectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(common.COLOR_DIM)).
				Italic(true)
)

type Model struct {
	Identity domain.Identity
	Width    int
}

func InitialModel(identity domain.Identity, width int) Model {
	return Model{
		Identity: identity,
		Width:    width,
	}
}

func (m Model) View() string {
	title := titleStyle.Render(util.GetNameAndVersion())

	var status string
	if m.Identity.Connected {
		status = walletStyle.Render("◉ " + util.ShortWallet(m.Identity.Address))
	} else {
		status = disconnectedStyle.Render("○ no wallet")
	}

	gap := m.Width - lipgloss.Width(title) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}
	return title + lipgloss.NewStyle().Width(gap).Render("") + status + "\n"
}
