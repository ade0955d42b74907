// Package store is the data-access boundary for posts, comments, users and
// reactions. Two implementations exist: a local sqlite store for single-binary
// mode and an HTTP client against a remote fanwall API. Callers pick neither —
// Init wires the right one from config and Get hands it out.
package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/solwave/fanwall/domain"
	"github.com/solwave/fanwall/util"
)

// Failure classes surfaced by every implementation. Callers branch with
// errors.Is and never show the underlying detail to the user.
var (
	ErrNetwork    = errors.New("network failure")
	ErrValidation = errors.New("validation failure")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)

type Store interface {
	FetchPosts() (error, *[]domain.Post)
	EnsureUser(wallet string) error
	FetchComments(postId uuid.UUID) (error, *[]domain.Comment)
	CreateComment(postId uuid.UUID, wallet string, text string) error
	ToggleReaction(postId uuid.UUID, emoji domain.EmojiType, wallet string) (error, *domain.ReactionState)
	CreatePost(draft domain.NewPostDraft, wallet string) (error, *domain.Post)
	Close() error
}

var current Store

// Init selects the store implementation: the HTTP client when apiBaseUrl is
// configured, the local sqlite store otherwise.
func Init(conf *util.AppConfig) error {
	if conf.Conf.ApiBaseUrl != "" {
		current = NewHttpStore(conf.Conf.ApiBaseUrl)
		return nil
	}
	s, err := NewSqliteStore(conf.Conf.DbPath)
	if err != nil {
		return fmt.Errorf("init sqlite store: %w", err)
	}
	current = s
	return nil
}

// Get returns the store selected by Init.
func Get() Store {
	return current
}

// Set swaps the active store. Used by tests and by main during shutdown.
func Set(s Store) {
	current = s
}
