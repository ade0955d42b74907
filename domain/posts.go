package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EmojiType identifies one of the fixed reaction emojis available on a post.
type EmojiType string

const (
	EmojiHeart  EmojiType = "heart"
	EmojiFire   EmojiType = "fire"
	EmojiRocket EmojiType = "rocket"
	EmojiClap   EmojiType = "clap"
	EmojiMoon   EmojiType = "moon"
)

// AllEmojis lists the reaction emojis in display order.
var AllEmojis = []EmojiType{EmojiHeart, EmojiFire, EmojiRocket, EmojiClap, EmojiMoon}

// Glyph returns the terminal glyph for an emoji type.
func (e EmojiType) Glyph() string {
	switch e {
	case EmojiHeart:
		return "❤️"
	case EmojiFire:
		return "🔥"
	case EmojiRocket:
		return "🚀"
	case EmojiClap:
		return "👏"
	case EmojiMoon:
		return "🌙"
	default:
		return "?"
	}
}

// Valid reports whether e is one of the known emoji types.
func (e EmojiType) Valid() bool {
	switch e {
	case EmojiHeart, EmojiFire, EmojiRocket, EmojiClap, EmojiMoon:
		return true
	}
	return false
}

type Post struct {
	Id           uuid.UUID
	AuthorWallet string
	Content      string
	TwitterEmbed string
	Website      string
	Facebook     string
	Telegram     string
	Reactions    map[EmojiType]int
	CreatedAt    time.Time
}

func (p *Post) ToString() string {
	return fmt.Sprintf("\n\tId: %s \n\tAuthor: %s \n\tContent: %s \n\tCreatedAt: %s)", p.Id, p.AuthorWallet, p.Content, p.CreatedAt)
}

// ReactionCount returns the count for an emoji, treating a nil map as zero.
func (p *Post) ReactionCount(e EmojiType) int {
	if p.Reactions == nil {
		return 0
	}
	return p.Reactions[e]
}

// NewPostDraft is the staged content of a not-yet-submitted post. It carries
// the same content fields as Post minus identity and id.
type NewPostDraft struct {
	Content      string
	TwitterEmbed string
	Website      string
	Facebook     string
	Telegram     string
}

// Empty reports whether the draft equals the empty default.
func (d NewPostDraft) Empty() bool {
	return d == NewPostDraft{}
}

type Comment struct {
	Id           uuid.UUID
	PostId       uuid.UUID
	AuthorWallet string
	Text         string
	CreatedAt    time.Time
}

// ReactionState is the authoritative toggle result for one (post, emoji,
// identity) after a reaction mutation.
type ReactionState struct {
	PostId  uuid.UUID
	Emoji   EmojiType
	Count   int
	Reacted bool // whether the identity holds the reaction after the toggle
}
