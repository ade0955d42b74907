package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/solwave/fanwall/domain"
	"github.com/solwave/fanwall/pay"
	"github.com/solwave/fanwall/util"
)

// handlePosts shows the fan wall, newest first
func (h *Handler) handlePosts(args []string) error {
	limit := 20
	for i := 0; i < len(args); i++ {
		if args[i] == "-n" && i+1 < len(args) {
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 1 {
				err := fmt.Errorf("invalid count: %s", args[i+1])
				h.output.Error(err)
				return err
			}
			limit = n
			i++
		}
	}

	err, posts := h.store.FetchPosts()
	if err != nil {
		h.output.Error(err)
		return err
	}

	list := []domain.Post{}
	if posts != nil {
		list = *posts
	}
	if len(list) > limit {
		list = list[:limit]
	}

	if h.output.IsJSON() {
		resp := WallResponse{Posts: []WallPost{}, Count: len(list)}
		for _, p := range list {
			reactions := map[string]int{}
			for _, e := range domain.AllEmojis {
				reactions[string(e)] = p.ReactionCount(e)
			}
			resp.Posts = append(resp.Posts, WallPost{
				ID:        p.Id.String(),
				Author:    p.AuthorWallet,
				Content:   p.Content,
				Link:      firstLink(p),
				Reactions: reactions,
				CreatedAt: p.CreatedAt,
			})
		}
		h.output.JSON(resp)
		return nil
	}

	if len(list) == 0 {
		h.output.Println("No posts yet.")
		return nil
	}
	for _, p := range list {
		h.output.Print("%s  %s  (%s)\n", p.Id, util.ShortWallet(p.AuthorWallet), FormatTimeAgo(p.CreatedAt))
		h.output.Print("  %s\n", p.Content)
		var row []string
		for _, e := range domain.AllEmojis {
			row = append(row, fmt.Sprintf("%s %d", e.Glyph(), p.ReactionCount(e)))
		}
		h.output.Print("  %s\n\n", strings.Join(row, "  "))
	}
	return nil
}

// handlePost creates a new post
func (h *Handler) handlePost(args []string) error {
	if err := h.requireWallet(); err != nil {
		return err
	}

	var message string
	if len(args) == 0 {
		err := fmt.Errorf("usage: post <message> or post -")
		h.output.Error(err)
		return err
	}

	if args[0] == "-" {
		data, err := io.ReadAll(h.session)
		if err != nil {
			h.output.Error(err)
			return err
		}
		message = strings.TrimSpace(string(data))
	} else {
		message = strings.Join(args, " ")
	}

	if message == "" {
		err := fmt.Errorf("message cannot be empty")
		h.output.Error(err)
		return err
	}

	visibleChars := util.CountVisibleChars(message)
	maxChars := h.conf.Conf.MaxChars
	if visibleChars > maxChars {
		err := fmt.Errorf("message too long (%d chars, max %d)", visibleChars, maxChars)
		h.output.Error(err)
		return err
	}

	if err := h.store.EnsureUser(h.identity.Address); err != nil {
		h.output.Error(err)
		return err
	}
	err, post := h.store.CreatePost(domain.NewPostDraft{Content: message}, h.identity.Address)
	if err != nil {
		h.output.Error(err)
		return err
	}

	if h.output.IsJSON() {
		h.output.JSON(PostResponse{
			ID:        post.Id.String(),
			Author:    post.AuthorWallet,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
		})
	} else {
		h.output.Success("Post created: %s\n", post.Id)
	}
	return nil
}

// handleComments shows a post's thread, oldest first
func (h *Handler) handleComments(args []string) error {
	if len(args) == 0 {
		err := fmt.Errorf("usage: comments <post-id>")
		h.output.Error(err)
		return err
	}
	postId, err := uuid.Parse(args[0])
	if err != nil {
		err := fmt.Errorf("invalid post id: %s", args[0])
		h.output.Error(err)
		return err
	}

	err, comments := h.store.FetchComments(postId)
	if err != nil {
		h.output.Error(err)
		return err
	}
	list := []domain.Comment{}
	if comments != nil {
		list = *comments
	}

	if h.output.IsJSON() {
		resp := CommentsResponse{PostID: postId.String(), Comments: []CommentItem{}, Count: len(list)}
		for _, c := range list {
			resp.Comments = append(resp.Comments, CommentItem{
				ID:        c.Id.String(),
				Author:    c.AuthorWallet,
				Text:      c.Text,
				CreatedAt: c.CreatedAt,
			})
		}
		h.output.JSON(resp)
		return nil
	}

	if len(list) == 0 {
		h.output.Println("No comments yet.")
		return nil
	}
	for _, c := range list {
		h.output.Print("%s  (%s)\n", util.ShortWallet(c.AuthorWallet), FormatTimeAgo(c.CreatedAt))
		h.output.Print("  %s\n\n", c.Text)
	}
	return nil
}

// handleComment adds a comment to a post
func (h *Handler) handleComment(args []string) error {
	if err := h.requireWallet(); err != nil {
		return err
	}
	if len(args) < 2 {
		err := fmt.Errorf("usage: comment <post-id> <text>")
		h.output.Error(err)
		return err
	}
	postId, err := uuid.Parse(args[0])
	if err != nil {
		err := fmt.Errorf("invalid post id: %s", args[0])
		h.output.Error(err)
		return err
	}
	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		err := fmt.Errorf("comment cannot be empty")
		h.output.Error(err)
		return err
	}

	if err := h.store.EnsureUser(h.identity.Address); err != nil {
		h.output.Error(err)
		return err
	}
	if err := h.store.CreateComment(postId, h.identity.Address, text); err != nil {
		h.output.Error(err)
		return err
	}

	if h.output.IsJSON() {
		h.output.JSON(map[string]interface{}{"status": "ok", "post_id": postId.String()})
	} else {
		h.output.Success("Comment added.\n")
	}
	return nil
}

// handleReact toggles an emoji reaction
func (h *Handler) handleReact(args []string) error {
	if err := h.requireWallet(); err != nil {
		return err
	}
	if len(args) < 2 {
		err := fmt.Errorf("usage: react <post-id> <heart|fire|rocket|clap|moon>")
		h.output.Error(err)
		return err
	}
	postId, err := uuid.Parse(args[0])
	if err != nil {
		err := fmt.Errorf("invalid post id: %s", args[0])
		h.output.Error(err)
		return err
	}
	emoji := domain.EmojiType(strings.ToLower(args[1]))
	if !emoji.Valid() {
		err := fmt.Errorf("unknown emoji: %s", args[1])
		h.output.Error(err)
		return err
	}

	if err := h.store.EnsureUser(h.identity.Address); err != nil {
		h.output.Error(err)
		return err
	}
	err, state := h.store.ToggleReaction(postId, emoji, h.identity.Address)
	if err != nil {
		h.output.Error(err)
		return err
	}

	if h.output.IsJSON() {
		h.output.JSON(ReactResponse{
			PostID:  state.PostId.String(),
			Emoji:   string(state.Emoji),
			Count:   state.Count,
			Reacted: state.Reacted,
		})
	} else if state.Reacted {
		h.output.Success("Reacted %s (%d)\n", emoji.Glyph(), state.Count)
	} else {
		h.output.Success("Removed %s (%d)\n", emoji.Glyph(), state.Count)
	}
	return nil
}

// handleTip sends a SOL tip to a post's author
func (h *Handler) handleTip(args []string) error {
	if err := h.requireWallet(); err != nil {
		return err
	}
	if len(args) < 2 {
		err := fmt.Errorf("usage: tip <post-id> <amount>")
		h.output.Error(err)
		return err
	}
	postId, err := uuid.Parse(args[0])
	if err != nil {
		err := fmt.Errorf("invalid post id: %s", args[0])
		h.output.Error(err)
		return err
	}
	lamports, err := util.ParseSol(args[1])
	if err != nil {
		h.output.Error(err)
		return err
	}

	err, posts := h.store.FetchPosts()
	if err != nil {
		h.output.Error(err)
		return err
	}
	var recipient string
	if posts != nil {
		for _, p := range *posts {
			if p.Id == postId {
				recipient = p.AuthorWallet
				break
			}
		}
	}
	if recipient == "" {
		err := fmt.Errorf("post not found: %s", postId)
		h.output.Error(err)
		return err
	}

	if err := h.payer.SendTip(lamports, recipient); err != nil {
		if errors.Is(err, pay.ErrAmbiguous) {
			// The outcome is unknown; make that explicit and do not retry
			err := fmt.Errorf("tip status unknown, check your wallet before sending again")
			h.output.Error(err)
			return err
		}
		h.output.Error(err)
		return err
	}

	if h.output.IsJSON() {
		h.output.JSON(TipResponse{
			PostID:    postId.String(),
			Recipient: recipient,
			AmountSol: util.FormatSol(lamports),
			Status:    "sent",
		})
	} else {
		h.output.Success("Tip of %s SOL sent to %s\n", util.FormatSol(lamports), util.ShortWallet(recipient))
	}
	return nil
}

func firstLink(p domain.Post) string {
	for _, link := range []string{p.TwitterEmbed, p.Website, p.Facebook, p.Telegram} {
		if link != "" {
			return link
		}
	}
	return ""
}
