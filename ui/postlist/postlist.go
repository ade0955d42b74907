package postlist

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/solwave/fanwall/domain"
	"github.com/solwave/fanwall/store"
	"github.com/solwave/fanwall/ui/common"
	"github.com/solwave/fanwall/util"
)

var (
	timeStyle = lipgloss.NewStyle().
			Align(lipgloss.Left).
			Foreground(lipgloss.Color(common.COLOR_DIM))

	authorStyle = lipgloss.NewStyle().
			Align(lipgloss.Left).
			Foreground(lipgloss.Color(common.COLOR_USERNAME)).
			Bold(true)

	contentStyle = lipgloss.NewStyle().
			Align(lipgloss.Left)

	reactionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_SECONDARY))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_DIM)).
			Italic(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_DIM)).
			Italic(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_WHITE)).
			Bold(true)
)

type Model struct {
	Identity      domain.Identity
	Posts         []domain.Post
	Selected      int
	Offset        int
	Width         int
	Height        int
	Error         string
	isActive      bool
	tickerRunning bool
	inflight      map[string]bool // keyed postId/emoji while a toggle is unresolved
}

func InitialModel(identity domain.Identity, width, height int) Model {
	return Model{
		Identity: identity,
		Posts:    []domain.Post{},
		Selected: 0,
		Offset:   0,
		Width:    width,
		Height:   height,
		inflight: map[string]bool{},
	}
}

func (m Model) Init() tea.Cmd {
	return loadPosts()
}

// postsLoadedMsg carries a fetched posts list or the failure to get one.
type postsLoadedMsg struct {
	posts []domain.Post
	err   error
}

// reactionResultMsg resolves one in-flight emoji toggle.
type reactionResultMsg struct {
	postId string
	emoji  domain.EmojiType
	state  *domain.ReactionState
	err    error
}

type refreshTickMsg struct{}

func tickRefresh() tea.Cmd {
	return tea.Tick(common.TimelineRefreshSeconds*time.Second, func(t time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func inflightKey(postId string, emoji domain.EmojiType) string {
	return postId + "/" + string(emoji)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.DeactivateViewMsg:
		m.isActive = false
		m.tickerRunning = false
		return m, nil

	case common.ActivateViewMsg:
		m.isActive = true
		m.tickerRunning = false
		return m, loadPosts()

	case common.SessionState:
		if msg == common.RefreshPosts {
			return m, loadPosts()
		}
		return m, nil

	case refreshTickMsg:
		if m.isActive {
			return m, loadPosts()
		}
		return m, nil

	case postsLoadedMsg:
		if msg.err != nil {
			// Keep the previously displayed posts on a failed load
			m.Error = "Failed to load posts."
			return m, nil
		}
		m.Error = ""
		m.Posts = msg.posts
		if m.Selected >= len(m.Posts) {
			m.Selected = max(0, len(m.Posts)-1)
		}
		m.Offset = m.Selected

		if m.isActive && !m.tickerRunning {
			m.tickerRunning = true
			return m, tickRefresh()
		}
		return m, nil

	case reactionResultMsg:
		delete(m.inflight, inflightKey(msg.postId, msg.emoji))
		if msg.err != nil {
			// Displayed counts stay untouched; the user sees one toast
			return m, func() tea.Msg {
				return common.NoticeMsg{Type: common.NoticeError, Message: "Failed to update reaction. Please try again."}
			}
		}
		for i := range m.Posts {
			if m.Posts[i].Id == msg.state.PostId {
				if m.Posts[i].Reactions == nil {
					m.Posts[i].Reactions = map[domain.EmojiType]int{}
				}
				m.Posts[i].Reactions[msg.state.Emoji] = msg.state.Count
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
				m.Offset = m.Selected
			}
		case "down", "j":
			if len(m.Posts) > 0 && m.Selected < len(m.Posts)-1 {
				m.Selected++
				m.Offset = m.Selected
			}
		case "r":
			return m, loadPosts()
		case "c":
			if post, ok := m.selectedPost(); ok {
				return m, func() tea.Msg {
					return common.OpenCommentsMsg{Post: post}
				}
			}
		case "t":
			if post, ok := m.selectedPost(); ok {
				return m, func() tea.Msg {
					return common.OpenTipMsg{Post: post}
				}
			}
		case "n":
			return m, func() tea.Msg {
				return common.OpenNewPostMsg{}
			}
		case "1", "2", "3", "4", "5":
			idx := int(msg.String()[0] - '1')
			if post, ok := m.selectedPost(); ok && idx < len(domain.AllEmojis) {
				emoji := domain.AllEmojis[idx]
				return m, func() tea.Msg {
					return common.ReactMsg{PostId: post.Id, Emoji: emoji}
				}
			}
		}
	}
	return m, nil
}

// StartReaction begins the façade call for a toggle the orchestrator has
// already capability-checked. A second gesture on the same (post, emoji)
// while one is unresolved is ignored, which serializes updates per control.
func (m Model) StartReaction(msg common.ReactMsg) (Model, tea.Cmd) {
	if m.inflight == nil {
		m.inflight = map[string]bool{}
	}
	key := inflightKey(msg.PostId.String(), msg.Emoji)
	if m.inflight[key] {
		return m, nil
	}
	m.inflight[key] = true
	return m, toggleReaction(msg.PostId, msg.Emoji, m.Identity.Address)
}

func (m Model) selectedPost() (domain.Post, bool) {
	if len(m.Posts) == 0 || m.Selected >= len(m.Posts) {
		return domain.Post{}, false
	}
	return m.Posts[m.Selected], true
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("fan wall (%d posts)", len(m.Posts))))
	s.WriteString("\n\n")

	if m.Error != "" {
		s.WriteString(common.ListErrorStyle.Render(m.Error))
		s.WriteString("\n\n")
	}

	if len(m.Posts) == 0 {
		s.WriteString(emptyStyle.Render("No posts yet."))
		return s.String()
	}

	contentWidth := common.CalculateContentWidth(m.Width, 4)

	itemsPerPage := common.DefaultItemsPerPage
	start := m.Offset
	end := start + itemsPerPage
	if end > len(m.Posts) {
		end = len(m.Posts)
	}

	for i := start; i < end; i++ {
		post := m.Posts[i]

		author := util.ShortWallet(post.AuthorWallet)
		timeStr := formatTime(post.CreatedAt)
		content := util.Truncate(post.Content, contentWidth)

		var reactions strings.Builder
		for n, emoji := range domain.AllEmojis {
			if n > 0 {
				reactions.WriteString("  ")
			}
			reactions.WriteString(fmt.Sprintf("%d:%s %d", n+1, emoji.Glyph(), post.ReactionCount(emoji)))
		}

		if i == m.Selected {
			s.WriteString(common.ListSelectedPrefix + selectedStyle.Render(author) + "  " + timeStyle.Render(timeStr))
			s.WriteString("\n  " + selectedStyle.Render(content))
		} else {
			s.WriteString(common.ListUnselectedPrefix + authorStyle.Render(author) + "  " + timeStyle.Render(timeStr))
			s.WriteString("\n  " + contentStyle.Render(content))
		}
		s.WriteString("\n  " + reactionStyle.Render(reactions.String()))

		if link := postLink(post); link != "" {
			s.WriteString("\n  " + linkStyle.Render(link))
		}

		s.WriteString("\n\n")
	}

	if len(m.Posts) > itemsPerPage {
		pageInfo := fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(m.Posts))
		s.WriteString(common.ListBadgeStyle.Render(pageInfo))
	}

	return s.String()
}

// postLink picks the first embed worth showing under the content.
func postLink(post domain.Post) string {
	for _, link := range []string{post.TwitterEmbed, post.Website, post.Facebook, post.Telegram} {
		if link != "" && util.IsURL(link) {
			return "🔗 " + link
		}
	}
	return ""
}

func loadPosts() tea.Cmd {
	return func() tea.Msg {
		err, posts := store.Get().FetchPosts()
		if err != nil {
			log.Printf("Failed to load posts: %v", err)
			return postsLoadedMsg{err: err}
		}
		if posts == nil {
			return postsLoadedMsg{posts: []domain.Post{}}
		}
		return postsLoadedMsg{posts: *posts}
	}
}

// toggleReaction makes exactly one façade call for one gesture. Failures are
// logged and resolved into the result msg, never thrown.
func toggleReaction(postId uuid.UUID, emoji domain.EmojiType, wallet string) tea.Cmd {
	return func() tea.Msg {
		err, state := store.Get().ToggleReaction(postId, emoji, wallet)
		if err != nil {
			log.Printf("Failed to toggle reaction: %v", err)
			return reactionResultMsg{postId: postId.String(), emoji: emoji, err: err}
		}
		return reactionResultMsg{postId: postId.String(), emoji: emoji, state: state}
	}
}

func formatTime(t time.Time) string {
	duration := time.Since(t)

	if duration < time.Minute {
		return "just now"
	} else if duration < time.Hour {
		mins := int(duration.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if duration < common.HoursPerDay*time.Hour {
		hours := int(duration.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else {
		days := int(duration.Hours() / common.HoursPerDay)
		return fmt.Sprintf("%dd ago", days)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
