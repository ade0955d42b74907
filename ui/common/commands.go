package common

import (
	"github.com/google/uuid"
	"github.com/solwave/fanwall/domain"
)

type SessionState uint

const (
	PostListView SessionState = iota
	CommentsView
	TipView
	NewPostView
	ConnectWalletView
	// RefreshPosts is broadcast as a state value but never entered; models
	// holding post data reload when they see it.
	RefreshPosts
)

// NoticeType classifies a transient toast.
type NoticeType uint

const (
	NoticeSuccess NoticeType = iota
	NoticeError
	NoticeInfo
)

// NoticeMsg enqueues a toast in the notification queue. Any coordinator may
// emit it; the orchestrator routes it to the notices model.
type NoticeMsg struct {
	Type    NoticeType
	Message string
}

// OpenCommentsMsg selects a post and opens the comments modal.
type OpenCommentsMsg struct {
	Post domain.Post
}

// OpenTipMsg selects a post and opens the tip modal.
type OpenTipMsg struct {
	Post domain.Post
}

// OpenNewPostMsg opens the post creation modal.
type OpenNewPostMsg struct{}

// CloseModalMsg returns to the post list from any modal.
type CloseModalMsg struct{}

// ReactMsg asks for an emoji toggle on a post by the current identity.
type ReactMsg struct {
	PostId uuid.UUID
	Emoji  domain.EmojiType
}

// ConnectWalletMsg redirects to the connect-wallet view. It is a capability
// redirect, not an error.
type ConnectWalletMsg struct{}

// ActivateViewMsg and DeactivateViewMsg control whether list models refresh.
type ActivateViewMsg struct{}
type DeactivateViewMsg struct{}
