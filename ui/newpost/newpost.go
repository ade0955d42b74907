// Package newpost drives the post creation modal. The draft lives here until
// the store accepts it; a failed submit keeps every typed field so nothing is
// lost to a flaky network.
package newpost

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/solwave/fanwall/domain"
	"github.com/solwave/fanwall/store"
	"github.com/solwave/fanwall/ui/common"
	"github.com/solwave/fanwall/util"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_SECONDARY))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_DIM))

	limitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_CRITICAL))
)

const (
	fieldContent = iota
	fieldTwitter
	fieldWebsite
	fieldFacebook
	fieldTelegram
	fieldCount
)

type Model struct {
	Identity   domain.Identity
	Content    textarea.Model
	Embeds     []textinput.Model
	MaxChars   int
	focus      int
	submitting bool
}

// createResultMsg resolves one post submission.
type createResultMsg struct {
	err error
}

func InitialModel(identity domain.Identity, maxChars int) Model {
	content := textarea.New()
	content.Placeholder = "What's happening?"
	// No input-level cap: the counter goes red and submit rejects instead,
	// so nothing typed is ever silently cut off
	content.CharLimit = 0
	content.SetWidth(common.TextInputDefaultWidth + 10)
	content.SetHeight(4)
	content.Focus()

	labels := []string{"Twitter embed", "Website", "Facebook", "Telegram"}
	embeds := make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Placeholder = label + " (optional)"
		in.CharLimit = 200
		in.Width = common.TextInputDefaultWidth
		embeds[i] = in
	}

	return Model{
		Identity: identity,
		Content:  content,
		Embeds:   embeds,
		MaxChars: maxChars,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Open focuses the content field. The draft is whatever was typed before; a
// reset only happens after a successful submit.
func (m Model) Open() Model {
	m.focus = fieldContent
	m.Content.Focus()
	for i := range m.Embeds {
		m.Embeds[i].Blur()
	}
	return m
}

func (m Model) Close() Model {
	m.Content.Blur()
	for i := range m.Embeds {
		m.Embeds[i].Blur()
	}
	return m
}

// Draft snapshots the typed fields.
func (m Model) Draft() domain.NewPostDraft {
	return domain.NewPostDraft{
		Content:      m.Content.Value(),
		TwitterEmbed: strings.TrimSpace(m.Embeds[0].Value()),
		Website:      strings.TrimSpace(m.Embeds[1].Value()),
		Facebook:     strings.TrimSpace(m.Embeds[2].Value()),
		Telegram:     strings.TrimSpace(m.Embeds[3].Value()),
	}
}

func (m Model) reset() Model {
	m.Content.Reset()
	for i := range m.Embeds {
		m.Embeds[i].Reset()
	}
	m.focus = fieldContent
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case createResultMsg:
		m.submitting = false
		if msg.err != nil {
			// Draft fields stay put for a retry
			return m, func() tea.Msg {
				return common.NoticeMsg{Type: common.NoticeError, Message: "Failed to create post. Please try again."}
			}
		}
		m = m.reset()
		return m, tea.Batch(
			func() tea.Msg {
				return common.NoticeMsg{Type: common.NoticeSuccess, Message: "Post created successfully!"}
			},
			func() tea.Msg {
				return common.CloseModalMsg{}
			},
			func() tea.Msg {
				return common.RefreshPosts
			},
		)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if m.submitting {
				return m, nil
			}
			return m, func() tea.Msg {
				return common.CloseModalMsg{}
			}
		case "tab", "down":
			if m.focus == fieldContent && msg.String() == "down" {
				break // let the textarea move its own cursor
			}
			m = m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "shift+tab":
			m = m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case "ctrl+s":
			return m.submit()
		case "enter":
			if m.focus != fieldContent {
				return m.submit()
			}
		}
	}

	var cmd tea.Cmd
	if m.focus == fieldContent {
		m.Content, cmd = m.Content.Update(msg)
	} else {
		m.Embeds[m.focus-1], cmd = m.Embeds[m.focus-1].Update(msg)
	}
	return m, cmd
}

func (m Model) setFocus(focus int) Model {
	m.focus = focus
	if focus == fieldContent {
		m.Content.Focus()
	} else {
		m.Content.Blur()
	}
	for i := range m.Embeds {
		if focus == i+1 {
			m.Embeds[i].Focus()
		} else {
			m.Embeds[i].Blur()
		}
	}
	return m
}

// submit validates the draft locally before the store is touched. Blank or
// over-limit content produces a toast and no call.
func (m Model) submit() (Model, tea.Cmd) {
	if !m.Identity.Connected || m.submitting {
		return m, nil
	}
	draft := m.Draft()
	if strings.TrimSpace(draft.Content) == "" {
		return m, func() tea.Msg {
			return common.NoticeMsg{Type: common.NoticeError, Message: "Post content cannot be empty."}
		}
	}
	if util.CountVisibleChars(draft.Content) > m.MaxChars {
		return m, func() tea.Msg {
			return common.NoticeMsg{Type: common.NoticeError, Message: "Post content is too long."}
		}
	}
	m.submitting = true
	return m, createPost(draft, m.Identity.Address)
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("📝 New post"))
	s.WriteString("\n\n")
	s.WriteString(m.Content.View())
	s.WriteString("\n")

	used := util.CountVisibleChars(m.Content.Value())
	counter := fmt.Sprintf("%d/%d", used, m.MaxChars)
	if used > m.MaxChars {
		s.WriteString(limitStyle.Render(counter))
	} else {
		s.WriteString(hintStyle.Render(counter))
	}
	s.WriteString("\n\n")

	labels := []string{"Twitter:", "Website:", "Facebook:", "Telegram:"}
	for i, in := range m.Embeds {
		s.WriteString(labelStyle.Render(labels[i]))
		s.WriteString("\n")
		s.WriteString(in.View())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if m.submitting {
		s.WriteString(hintStyle.Render("Publishing..."))
	} else {
		s.WriteString(hintStyle.Render("ctrl+s: publish • tab: next field • esc: cancel"))
	}

	return s.String()
}

// createPost makes the user record exist, then publishes the draft.
func createPost(draft domain.NewPostDraft, wallet string) tea.Cmd {
	return func() tea.Msg {
		s := store.Get()
		if err := s.EnsureUser(wallet); err != nil {
			log.Printf("Failed to ensure user %s: %v", wallet, err)
			return createResultMsg{err: err}
		}
		err, _ := s.CreatePost(draft, wallet)
		if err != nil {
			log.Printf("Failed to create post: %v", err)
			return createResultMsg{err: err}
		}
		return createResultMsg{}
	}
}
