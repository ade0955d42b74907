package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/solwave/fanwall/domain"
)

// Wire shapes shared with the web API.

type PostJSON struct {
	Id           string         `json:"id"`
	AuthorWallet string         `json:"author_wallet"`
	Content      string         `json:"content"`
	TwitterEmbed string         `json:"twitter_embed,omitempty"`
	Website      string         `json:"website,omitempty"`
	Facebook     string         `json:"facebook,omitempty"`
	Telegram     string         `json:"telegram,omitempty"`
	Reactions    map[string]int `json:"reactions"`
	CreatedAt    time.Time      `json:"created_at"`
}

type CommentJSON struct {
	Id           string    `json:"id"`
	PostId       string    `json:"post_id"`
	AuthorWallet string    `json:"author_wallet"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReactionJSON struct {
	PostId  string `json:"post_id"`
	Emoji   string `json:"emoji"`
	Count   int    `json:"count"`
	Reacted bool   `json:"reacted"`
}

type NewPostJSON struct {
	AuthorWallet string `json:"author_wallet"`
	Content      string `json:"content"`
	TwitterEmbed string `json:"twitter_embed,omitempty"`
	Website      string `json:"website,omitempty"`
	Facebook     string `json:"facebook,omitempty"`
	Telegram     string `json:"telegram,omitempty"`
}

type NewCommentJSON struct {
	AuthorWallet string `json:"author_wallet"`
	Text         string `json:"text"`
}

type NewReactionJSON struct {
	Wallet string `json:"wallet"`
	Emoji  string `json:"emoji"`
}

type NewUserJSON struct {
	Wallet string `json:"wallet"`
}

func PostToJSON(p domain.Post) PostJSON {
	reactions := map[string]int{}
	for e, n := range p.Reactions {
		reactions[string(e)] = n
	}
	return PostJSON{
		Id:           p.Id.String(),
		AuthorWallet: p.AuthorWallet,
		Content:      p.Content,
		TwitterEmbed: p.TwitterEmbed,
		Website:      p.Website,
		Facebook:     p.Facebook,
		Telegram:     p.Telegram,
		Reactions:    reactions,
		CreatedAt:    p.CreatedAt,
	}
}

func (pj PostJSON) ToPost() (domain.Post, error) {
	id, err := uuid.Parse(pj.Id)
	if err != nil {
		return domain.Post{}, fmt.Errorf("bad post id %q", pj.Id)
	}
	reactions := map[domain.EmojiType]int{}
	for e, n := range pj.Reactions {
		reactions[domain.EmojiType(e)] = n
	}
	return domain.Post{
		Id:           id,
		AuthorWallet: pj.AuthorWallet,
		Content:      pj.Content,
		TwitterEmbed: pj.TwitterEmbed,
		Website:      pj.Website,
		Facebook:     pj.Facebook,
		Telegram:     pj.Telegram,
		Reactions:    reactions,
		CreatedAt:    pj.CreatedAt,
	}, nil
}

func CommentToJSON(c domain.Comment) CommentJSON {
	return CommentJSON{
		Id:           c.Id.String(),
		PostId:       c.PostId.String(),
		AuthorWallet: c.AuthorWallet,
		Text:         c.Text,
		CreatedAt:    c.CreatedAt,
	}
}

func (cj CommentJSON) ToComment() (domain.Comment, error) {
	id, err := uuid.Parse(cj.Id)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("bad comment id %q", cj.Id)
	}
	postId, err := uuid.Parse(cj.PostId)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("bad post id %q", cj.PostId)
	}
	return domain.Comment{
		Id:           id,
		PostId:       postId,
		AuthorWallet: cj.AuthorWallet,
		Text:         cj.Text,
		CreatedAt:    cj.CreatedAt,
	}, nil
}

// HttpStore talks to a remote fanwall web API.
type HttpStore struct {
	BaseURL    string
	HTTPClient *http.Client
}

var _ Store = (*HttpStore)(nil)

func NewHttpStore(baseURL string) *HttpStore {
	return &HttpStore{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (h *HttpStore) Close() error {
	return nil
}

func (h *HttpStore) FetchPosts() (error, *[]domain.Post) {
	var payload []PostJSON
	if err := h.getJSON("/api/posts", &payload); err != nil {
		return err, nil
	}
	posts := make([]domain.Post, 0, len(payload))
	for _, pj := range payload {
		p, err := pj.ToPost()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNetwork, err), nil
		}
		posts = append(posts, p)
	}
	return nil, &posts
}

func (h *HttpStore) EnsureUser(wallet string) error {
	return h.postJSON("/api/users", NewUserJSON{Wallet: wallet}, nil)
}

func (h *HttpStore) FetchComments(postId uuid.UUID) (error, *[]domain.Comment) {
	var payload []CommentJSON
	if err := h.getJSON("/api/posts/"+postId.String()+"/comments", &payload); err != nil {
		return err, nil
	}
	comments := make([]domain.Comment, 0, len(payload))
	for _, cj := range payload {
		c, err := cj.ToComment()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNetwork, err), nil
		}
		comments = append(comments, c)
	}
	return nil, &comments
}

func (h *HttpStore) CreateComment(postId uuid.UUID, wallet string, text string) error {
	return h.postJSON("/api/posts/"+postId.String()+"/comments", NewCommentJSON{AuthorWallet: wallet, Text: text}, nil)
}

func (h *HttpStore) ToggleReaction(postId uuid.UUID, emoji domain.EmojiType, wallet string) (error, *domain.ReactionState) {
	var rj ReactionJSON
	err := h.postJSON("/api/posts/"+postId.String()+"/reactions", NewReactionJSON{Wallet: wallet, Emoji: string(emoji)}, &rj)
	if err != nil {
		return err, nil
	}
	return nil, &domain.ReactionState{
		PostId:  postId,
		Emoji:   domain.EmojiType(rj.Emoji),
		Count:   rj.Count,
		Reacted: rj.Reacted,
	}
}

func (h *HttpStore) CreatePost(draft domain.NewPostDraft, wallet string) (error, *domain.Post) {
	body := NewPostJSON{
		AuthorWallet: wallet,
		Content:      draft.Content,
		TwitterEmbed: draft.TwitterEmbed,
		Website:      draft.Website,
		Facebook:     draft.Facebook,
		Telegram:     draft.Telegram,
	}
	var pj PostJSON
	if err := h.postJSON("/api/posts", body, &pj); err != nil {
		return err, nil
	}
	p, err := pj.ToPost()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err), nil
	}
	return nil, &p
}

func (h *HttpStore) getJSON(path string, out interface{}) error {
	resp, err := h.HTTPClient.Get(h.BaseURL + path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	if err := classifyStatus(resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return nil
}

func (h *HttpStore) postJSON(path string, in interface{}, out interface{}) error {
	buf, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	resp, err := h.HTTPClient.Post(h.BaseURL+path, "application/json", bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	if err := classifyStatus(resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body)
		return err
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return nil
}

func classifyStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: http %d", ErrNotFound, code)
	case code == http.StatusConflict:
		return fmt.Errorf("%w: http %d", ErrConflict, code)
	case code == http.StatusUnprocessableEntity || code == http.StatusBadRequest:
		return fmt.Errorf("%w: http %d", ErrValidation, code)
	default:
		return fmt.Errorf("%w: http %d", ErrNetwork, code)
	}
}
