// Package tip drives the micro-tip modal. Amounts are typed as decimal SOL
// and converted to lamports before anything touches the payment boundary;
// invalid or non-positive input never produces a payment call.
package tip

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/solwave/fanwall/domain"
	"github.com/solwave/fanwall/pay"
	"github.com/solwave/fanwall/ui/common"
	"github.com/solwave/fanwall/util"
)

var (
	recipientStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_USERNAME)).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_DIM))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_DIM)).
			Italic(true)
)

type Model struct {
	Identity      domain.Identity
	Post          *domain.Post
	Input         textinput.Model
	DefaultAmount string
	sending       bool
}

// tipResultMsg resolves one payment attempt.
type tipResultMsg struct {
	lamports uint64
	err      error
}

func InitialModel(identity domain.Identity, defaultAmount string) Model {
	input := textinput.New()
	input.Placeholder = defaultAmount
	input.CharLimit = 20
	input.Width = common.TextInputDefaultWidth

	return Model{
		Identity:      identity,
		Input:         input,
		DefaultAmount: defaultAmount,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Open targets the modal at a post's author and pre-fills the default amount.
func (m Model) Open(post domain.Post) Model {
	m.Post = &post
	m.Input.SetValue(m.DefaultAmount)
	m.Input.CursorEnd()
	m.Input.Focus()
	return m
}

func (m Model) Close() Model {
	m.Post = nil
	m.sending = false
	m.Input.Blur()
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tipResultMsg:
		m.sending = false
		if msg.err != nil {
			// The modal and the typed amount stay; retrying is the user's call
			message := "Failed to send tip. Please try again."
			if errors.Is(msg.err, pay.ErrAmbiguous) {
				message = "Tip status unknown. Check your wallet before sending again."
			}
			return m, func() tea.Msg {
				return common.NoticeMsg{Type: common.NoticeError, Message: message}
			}
		}
		sol := util.FormatSol(msg.lamports)
		return m, tea.Batch(
			func() tea.Msg {
				return common.NoticeMsg{Type: common.NoticeSuccess, Message: fmt.Sprintf("Tip of %s SOL sent successfully!", sol)}
			},
			func() tea.Msg {
				return common.CloseModalMsg{}
			},
		)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if m.sending {
				return m, nil
			}
			return m, func() tea.Msg {
				return common.CloseModalMsg{}
			}
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// submit validates the amount before the payment boundary is touched. A bad
// amount produces a toast and no call.
func (m Model) submit() (Model, tea.Cmd) {
	if !m.Identity.Connected || m.Post == nil || m.sending {
		return m, nil
	}
	lamports, err := util.ParseSol(m.Input.Value())
	if err != nil {
		return m, func() tea.Msg {
			return common.NoticeMsg{Type: common.NoticeError, Message: "Enter a valid tip amount."}
		}
	}
	m.sending = true
	return m, sendTip(lamports, m.Post.AuthorWallet)
}

func (m Model) View() string {
	var s strings.Builder

	if m.Post == nil {
		return emptyStyle.Render("No post selected.")
	}

	s.WriteString(common.CaptionStyle.Render("💸 Send a tip"))
	s.WriteString("\n\n")
	s.WriteString("To: " + recipientStyle.Render(util.ShortWallet(m.Post.AuthorWallet)))
	s.WriteString("\n\n")
	s.WriteString("Amount (SOL):\n")
	s.WriteString(m.Input.View())
	s.WriteString("\n\n")

	if m.sending {
		s.WriteString(hintStyle.Render("Sending..."))
	} else {
		s.WriteString(hintStyle.Render("enter: send • esc: cancel"))
	}

	return s.String()
}

// sendTip makes exactly one payment call. An ambiguous outcome is surfaced
// as-is; nothing here retries.
func sendTip(lamports uint64, recipient string) tea.Cmd {
	return func() tea.Msg {
		if err := pay.Get().SendTip(lamports, recipient); err != nil {
			log.Printf("Failed to send tip of %d lamports: %v", lamports, err)
			return tipResultMsg{lamports: lamports, err: err}
		}
		return tipResultMsg{lamports: lamports}
	}
}
