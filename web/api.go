package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/solwave/fanwall/domain"
	"github.com/solwave/fanwall/store"
)

// apiStatus maps store failures onto HTTP codes. The SSH client maps them
// right back, so the two must stay in lockstep.
func apiStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func apiError(c *gin.Context, err error) {
	status := apiStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("API error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func HandleApiPosts(c *gin.Context) {
	err, posts := store.Get().FetchPosts()
	if err != nil {
		apiError(c, err)
		return
	}

	payload := []store.PostJSON{}
	if posts != nil {
		for _, p := range *posts {
			payload = append(payload, store.PostToJSON(p))
		}
	}
	c.JSON(http.StatusOK, payload)
}

func HandleApiCreatePost(c *gin.Context) {
	var body store.NewPostJSON
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if body.AuthorWallet == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "author_wallet is required"})
		return
	}

	draft := domain.NewPostDraft{
		Content:      body.Content,
		TwitterEmbed: body.TwitterEmbed,
		Website:      body.Website,
		Facebook:     body.Facebook,
		Telegram:     body.Telegram,
	}
	err, post := store.Get().CreatePost(draft, body.AuthorWallet)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, store.PostToJSON(*post))
}

func HandleApiEnsureUser(c *gin.Context) {
	var body store.NewUserJSON
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if body.Wallet == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "wallet is required"})
		return
	}
	if err := store.Get().EnsureUser(body.Wallet); err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func HandleApiComments(c *gin.Context) {
	postId, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	err, comments := store.Get().FetchComments(postId)
	if err != nil {
		apiError(c, err)
		return
	}

	payload := []store.CommentJSON{}
	if comments != nil {
		for _, cm := range *comments {
			payload = append(payload, store.CommentToJSON(cm))
		}
	}
	c.JSON(http.StatusOK, payload)
}

func HandleApiCreateComment(c *gin.Context) {
	postId, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	var body store.NewCommentJSON
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if body.AuthorWallet == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "author_wallet is required"})
		return
	}

	if err := store.Get().CreateComment(postId, body.AuthorWallet, body.Text); err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok"})
}

func HandleApiToggleReaction(c *gin.Context) {
	postId, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	var body store.NewReactionJSON
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if body.Wallet == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "wallet is required"})
		return
	}
	emoji := domain.EmojiType(body.Emoji)
	if !emoji.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown emoji"})
		return
	}

	err, state := store.Get().ToggleReaction(postId, emoji, body.Wallet)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, store.ReactionJSON{
		PostId:  state.PostId.String(),
		Emoji:   string(state.Emoji),
		Count:   state.Count,
		Reacted: state.Reacted,
	})
}
