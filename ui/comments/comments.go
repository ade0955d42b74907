// Package comments drives the comment thread modal: fetching a post's thread
// and submitting new comments. The thread is always replaced wholesale from
// the store — after a successful submit the list is re-fetched rather than
// appended to, so the display never drifts from the remote shape.
package comments

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/solwave/fanwall/domain"
	"github.com/solwave/fanwall/store"
	"github.com/solwave/fanwall/ui/common"
	"github.com/solwave/fanwall/util"
)

var (
	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_USERNAME)).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_DIM))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_DIM)).
			Italic(true)
)

type Model struct {
	Identity   domain.Identity
	Post       *domain.Post
	Comments   []domain.Comment
	Input      textinput.Model
	Width      int
	Height     int
	submitting bool
}

// commentsLoadedMsg replaces the thread for one post.
type commentsLoadedMsg struct {
	postId   uuid.UUID
	comments []domain.Comment
	err      error
}

// submitResultMsg resolves a comment submission.
type submitResultMsg struct {
	postId uuid.UUID
	err    error
}

func InitialModel(identity domain.Identity, width, height int) Model {
	input := textinput.New()
	input.Placeholder = "Write a comment..."
	input.CharLimit = 280
	input.Width = common.TextInputDefaultWidth

	return Model{
		Identity: identity,
		Comments: []domain.Comment{},
		Input:    input,
		Width:    width,
		Height:   height,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Open targets the modal at a post and starts the thread fetch. The input
// buffer is kept — typed text survives switching posts mid-thought.
func (m Model) Open(post domain.Post) (Model, tea.Cmd) {
	m.Post = &post
	m.Comments = []domain.Comment{}
	m.Input.Focus()
	return m, fetchComments(post.Id)
}

// Close drops the target. In-flight completions for the old target are
// discarded by the postId check in Update.
func (m Model) Close() Model {
	m.Post = nil
	m.Input.Blur()
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commentsLoadedMsg:
		// Ignore completions for a post that is no longer targeted
		if m.Post == nil || m.Post.Id != msg.postId {
			return m, nil
		}
		if msg.err != nil {
			return m, func() tea.Msg {
				return common.NoticeMsg{Type: common.NoticeError, Message: "Failed to load comments. Please try again."}
			}
		}
		m.Comments = msg.comments
		return m, nil

	case submitResultMsg:
		m.submitting = false
		if m.Post == nil || m.Post.Id != msg.postId {
			return m, nil
		}
		if msg.err != nil {
			// Typed text stays in the buffer for a deliberate retry
			return m, func() tea.Msg {
				return common.NoticeMsg{Type: common.NoticeError, Message: "Failed to add comment. Please try again."}
			}
		}
		m.Input.SetValue("")
		return m, tea.Batch(
			func() tea.Msg {
				return common.NoticeMsg{Type: common.NoticeSuccess, Message: "Comment added successfully!"}
			},
			fetchComments(msg.postId),
		)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
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

// submit is a silent no-op unless there is a connected identity, a targeted
// post and non-blank text. Nothing to submit means no toast and no call.
func (m Model) submit() (Model, tea.Cmd) {
	if !m.Identity.Connected || m.Post == nil || m.submitting {
		return m, nil
	}
	text := strings.TrimSpace(m.Input.Value())
	if text == "" {
		return m, nil
	}
	m.submitting = true
	return m, submitComment(m.Post.Id, m.Identity.Address, text)
}

func (m Model) View() string {
	var s strings.Builder

	if m.Post == nil {
		return emptyStyle.Render("No post selected.")
	}

	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("💬 Comments (%d)", len(m.Comments))))
	s.WriteString("\n")
	s.WriteString(timeStyle.Render(util.Truncate(m.Post.Content, common.MaxContentTruncateWidth)))
	s.WriteString("\n\n")

	if len(m.Comments) == 0 {
		s.WriteString(emptyStyle.Render("No comments yet. Be the first!"))
		s.WriteString("\n")
	} else {
		contentWidth := common.CalculateContentWidth(m.Width, 4)
		for _, c := range m.Comments {
			s.WriteString(authorStyle.Render(util.ShortWallet(c.AuthorWallet)))
			s.WriteString("\n")
			s.WriteString(util.Truncate(c.Text, contentWidth))
			s.WriteString("\n\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(m.Input.View())
	s.WriteString("\n")
	if m.submitting {
		s.WriteString(timeStyle.Render("Submitting..."))
	} else if !m.Identity.Connected {
		s.WriteString(emptyStyle.Render("Connect a wallet key to comment."))
	} else {
		s.WriteString(timeStyle.Render("enter: submit • esc: back"))
	}

	return s.String()
}

func fetchComments(postId uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		err, comments := store.Get().FetchComments(postId)
		if err != nil {
			log.Printf("Failed to load comments for %s: %v", postId, err)
			return commentsLoadedMsg{postId: postId, err: err}
		}
		if comments == nil {
			return commentsLoadedMsg{postId: postId, comments: []domain.Comment{}}
		}
		return commentsLoadedMsg{postId: postId, comments: *comments}
	}
}

// submitComment ensures the author's user record exists before the write;
// authorship needs a resolvable identity on the remote side.
func submitComment(postId uuid.UUID, wallet string, text string) tea.Cmd {
	return func() tea.Msg {
		s := store.Get()
		if err := s.EnsureUser(wallet); err != nil {
			log.Printf("Failed to ensure user %s: %v", wallet, err)
			return submitResultMsg{postId: postId, err: err}
		}
		if err := s.CreateComment(postId, wallet, text); err != nil {
			log.Printf("Failed to create comment: %v", err)
			return submitResultMsg{postId: postId, err: err}
		}
		return submitResultMsg{postId: postId}
	}
}
