package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/solwave/fanwall/domain"
	"github.com/solwave/fanwall/ui/common"
	"github.com/solwave/fanwall/ui/comments"
	"github.com/solwave/fanwall/ui/connectwallet"
	"github.com/solwave/fanwall/ui/header"
	"github.com/solwave/fanwall/ui/newpost"
	"github.com/solwave/fanwall/ui/notices"
	"github.com/solwave/fanwall/ui/postlist"
	"github.com/solwave/fanwall/ui/tip"
	"github.com/solwave/fanwall/util"
)

var helpStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(common.COLOR_HELP))

// MainModel owns the page state machine. Exactly one view is focused at a
// time; gestures that need a wallet identity are checked here and redirected
// to the connect-wallet view when the session has none.
type MainModel struct {
	width  int
	height int
	config *util.AppConfig

	identity domain.Identity
	state    common.SessionState

	headerModel        header.Model
	postListModel      postlist.Model
	commentsModel      comments.Model
	tipModel           tip.Model
	newPostModel       newpost.Model
	connectWalletModel connectwallet.Model
	noticesModel       notices.Model
}

func NewModel(identity domain.Identity, config *util.AppConfig, width int, height int) MainModel {
	width = common.DefaultWindowWidth(width)
	height = common.DefaultWindowHeight(height)

	ttl := 5 * time.Second
	maxChars := 150
	tipDefault := "0.01"
	if config != nil {
		ttl = time.Duration(config.Conf.NoticeTtlSeconds) * time.Second
		maxChars = config.Conf.MaxChars
		tipDefault = config.Conf.TipDefault
	}

	m := MainModel{state: common.PostListView}
	m.config = config
	m.identity = identity
	m.width = width
	m.height = height
	m.headerModel = header.InitialModel(identity, width)
	m.postListModel = postlist.InitialModel(identity, width, height)
	m.commentsModel = comments.InitialModel(identity, width, height)
	m.tipModel = tip.InitialModel(identity, tipDefault)
	m.newPostModel = newpost.InitialModel(identity, maxChars)
	m.connectWalletModel = connectwallet.InitialModel()
	m.noticesModel = notices.InitialModel(ttl)
	return m
}

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(
		m.postListModel.Init(),
		func() tea.Msg { return common.ActivateViewMsg{} },
	)
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.headerModel.Width = msg.Width
		m.postListModel.Width = msg.Width
		m.postListModel.Height = msg.Height
		m.commentsModel.Width = msg.Width
		m.commentsModel.Height = msg.Height
		return m, nil

	case common.NoticeMsg:
		m.noticesModel, cmd = m.noticesModel.Update(msg)
		return m, cmd

	case common.OpenCommentsMsg:
		// Reading a thread is open to everyone; only submitting needs a wallet
		m.state = common.CommentsView
		m.commentsModel, cmd = m.commentsModel.Open(msg.Post)
		cmds = append(cmds, cmd)
		cmds = append(cmds, func() tea.Msg { return common.DeactivateViewMsg{} })
		return m, batch(cmds)

	case common.OpenTipMsg:
		if !m.identity.Connected {
			m.state = common.ConnectWalletView
			return m, nil
		}
		m.state = common.TipView
		m.tipModel = m.tipModel.Open(msg.Post)
		return m, func() tea.Msg { return common.DeactivateViewMsg{} }

	case common.OpenNewPostMsg:
		if !m.identity.Connected {
			m.state = common.ConnectWalletView
			return m, nil
		}
		m.state = common.NewPostView
		m.newPostModel = m.newPostModel.Open()
		return m, func() tea.Msg { return common.DeactivateViewMsg{} }

	case common.ReactMsg:
		// Capability check, not an error: no wallet means no signed action
		if !m.identity.Connected {
			m.state = common.ConnectWalletView
			return m, nil
		}
		m.postListModel, cmd = m.postListModel.StartReaction(msg)
		return m, cmd

	case common.ConnectWalletMsg:
		m.state = common.ConnectWalletView
		return m, nil

	case common.CloseModalMsg:
		m.state = common.PostListView
		m.commentsModel = m.commentsModel.Close()
		m.tipModel = m.tipModel.Close()
		m.newPostModel = m.newPostModel.Close()
		return m, func() tea.Msg { return common.ActivateViewMsg{} }

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.state == common.PostListView {
				return m, tea.Quit
			}
		case "x":
			// Global shortcut: dismiss the oldest toast
			if len(m.noticesModel.Notices) > 0 {
				m.noticesModel = m.noticesModel.DismissOldest()
				return m, nil
			}
		}
		return m.routeKey(msg)
	}

	// Async completions (loads, submits, expiries) are delivered regardless
	// of which view is focused, so a result arriving after a view switch
	// still resolves its in-flight state.
	m.postListModel, cmd = m.postListModel.Update(msg)
	cmds = append(cmds, cmd)
	m.commentsModel, cmd = m.commentsModel.Update(msg)
	cmds = append(cmds, cmd)
	m.tipModel, cmd = m.tipModel.Update(msg)
	cmds = append(cmds, cmd)
	m.newPostModel, cmd = m.newPostModel.Update(msg)
	cmds = append(cmds, cmd)
	m.noticesModel, cmd = m.noticesModel.Update(msg)
	cmds = append(cmds, cmd)

	return m, batch(cmds)
}

// routeKey sends a key press only to the focused view.
func (m MainModel) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case common.PostListView:
		m.postListModel, cmd = m.postListModel.Update(msg)
	case common.CommentsView:
		m.commentsModel, cmd = m.commentsModel.Update(msg)
	case common.TipView:
		m.tipModel, cmd = m.tipModel.Update(msg)
	case common.NewPostView:
		m.newPostModel, cmd = m.newPostModel.Update(msg)
	case common.ConnectWalletView:
		m.connectWalletModel, cmd = m.connectWalletModel.Update(msg)
	}
	return m, cmd
}

func (m MainModel) View() string {
	minWidth := 60
	minHeight := 20

	if m.width < minWidth || m.height < minHeight {
		message := fmt.Sprintf(
			"Terminal too small!\n\nMinimum required: %dx%d\nCurrent size: %dx%d\n\nPlease resize your terminal.",
			minWidth, minHeight, m.width, m.height,
		)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(lipgloss.Color(common.COLOR_CRITICAL)).
			Bold(true).
			Render(message)
	}

	availableHeight := common.CalculateAvailableHeight(m.height)

	var body string
	switch m.state {
	case common.CommentsView:
		body = m.commentsModel.View()
	case common.TipView:
		body = m.tipModel.View()
	case common.NewPostView:
		body = m.newPostModel.View()
	case common.ConnectWalletView:
		body = m.connectWalletModel.View()
	default:
		body = m.postListModel.View()
	}

	bodyStr := lipgloss.NewStyle().
		MaxHeight(availableHeight).
		Height(availableHeight).
		Width(m.width - 2).
		MaxWidth(m.width - 2).
		Margin(0, 1).
		Render(body)

	var s string
	s += m.headerModel.View()
	if toasts := m.noticesModel.View(); toasts != "" {
		s += toasts
	}
	s += bodyStr
	s += "\n" + helpStyle.Render(m.helpLine())
	return s
}

func (m MainModel) helpLine() string {
	switch m.state {
	case common.CommentsView:
		return " enter: submit • esc: back • x: dismiss toast • ctrl+c: quit"
	case common.TipView:
		return " enter: send • esc: cancel • ctrl+c: quit"
	case common.NewPostView:
		return " ctrl+s: publish • tab: next field • esc: cancel • ctrl+c: quit"
	case common.ConnectWalletView:
		return " esc: back • ctrl+c: quit"
	default:
		return " ↑/↓: select • 1-5: react • c: comments • t: tip • n: new post • r: refresh • q: quit"
	}
}

// batch filters out nil cmds so tea.Batch gets only real work.
func batch(cmds []tea.Cmd) tea.Cmd {
	filtered := make([]tea.Cmd, 0, len(cmds))
	for _, c := range cmds {
		if c != nil {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return tea.Batch(filtered...)
}
