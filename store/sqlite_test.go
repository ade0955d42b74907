package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/solwave/fanwall/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SqliteStore {
	t.Helper()
	s, err := NewSqliteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestPost(t *testing.T, s *SqliteStore, wallet, content string) domain.Post {
	t.Helper()
	err, post := s.CreatePost(domain.NewPostDraft{Content: content}, wallet)
	require.NoError(t, err)
	require.NotNil(t, post)
	return *post
}

func TestToggleReactionIdempotence(t *testing.T) {
	s := newTestStore(t)
	post := createTestPost(t, s, "walletA", "gm")

	err, state := s.ToggleReaction(post.Id, domain.EmojiFire, "walletB")
	require.NoError(t, err)
	assert.True(t, state.Reacted)
	assert.Equal(t, 1, state.Count)

	// The same toggle again removes the reaction and restores the count
	err, state = s.ToggleReaction(post.Id, domain.EmojiFire, "walletB")
	require.NoError(t, err)
	assert.False(t, state.Reacted)
	assert.Equal(t, 0, state.Count)
}

func TestToggleReactionPerWalletAndEmoji(t *testing.T) {
	s := newTestStore(t)
	post := createTestPost(t, s, "walletA", "gm")

	err, _ := s.ToggleReaction(post.Id, domain.EmojiFire, "walletB")
	require.NoError(t, err)
	err, state := s.ToggleReaction(post.Id, domain.EmojiFire, "walletC")
	require.NoError(t, err)
	assert.Equal(t, 2, state.Count)

	// A different emoji from the same wallet is independent
	err, state = s.ToggleReaction(post.Id, domain.EmojiHeart, "walletB")
	require.NoError(t, err)
	assert.True(t, state.Reacted)
	assert.Equal(t, 1, state.Count)
}

func TestToggleReactionValidation(t *testing.T) {
	s := newTestStore(t)
	post := createTestPost(t, s, "walletA", "gm")

	err, state := s.ToggleReaction(post.Id, domain.EmojiType("pizza"), "walletB")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, state)

	err, state = s.ToggleReaction(uuid.New(), domain.EmojiFire, "walletB")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, state)
}

func TestEnsureUserIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.EnsureUser("walletA"))
	// Second call must not conflict
	require.NoError(t, s.EnsureUser("walletA"))

	assert.ErrorIs(t, s.EnsureUser("  "), ErrValidation)
}

func TestFetchCommentsOldestFirst(t *testing.T) {
	s := newTestStore(t)
	post := createTestPost(t, s, "walletA", "gm")

	base := time.Now().Add(-time.Hour)
	for i, text := range []string{"first", "second", "third"} {
		_, err := s.db.Exec(`INSERT INTO comments (id, post_id, author_wallet, text, created_at) VALUES (?, ?, ?, ?, ?)`,
			uuid.New().String(), post.Id.String(), "walletB", text, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	err, comments := s.FetchComments(post.Id)
	require.NoError(t, err)
	require.Len(t, *comments, 3)
	assert.Equal(t, "first", (*comments)[0].Text)
	assert.Equal(t, "second", (*comments)[1].Text)
	assert.Equal(t, "third", (*comments)[2].Text)
}

func TestCreateCommentValidation(t *testing.T) {
	s := newTestStore(t)
	post := createTestPost(t, s, "walletA", "gm")

	assert.ErrorIs(t, s.CreateComment(post.Id, "walletB", "   "), ErrValidation)
	assert.ErrorIs(t, s.CreateComment(uuid.New(), "walletB", "hello"), ErrNotFound)

	require.NoError(t, s.CreateComment(post.Id, "walletB", "hello"))
	err, comments := s.FetchComments(post.Id)
	require.NoError(t, err)
	require.Len(t, *comments, 1)
	assert.Equal(t, "hello", (*comments)[0].Text)
	assert.Equal(t, "walletB", (*comments)[0].AuthorWallet)
}

func TestCreatePostValidation(t *testing.T) {
	s := newTestStore(t)

	err, post := s.CreatePost(domain.NewPostDraft{Content: "   "}, "walletA")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, post)
}

func TestFetchPostsNewestFirstWithReactions(t *testing.T) {
	s := newTestStore(t)

	older := createTestPost(t, s, "walletA", "older")
	_, err := s.db.Exec(`UPDATE posts SET created_at = ? WHERE id = ?`,
		time.Now().Add(-time.Hour), older.Id.String())
	require.NoError(t, err)
	newer := createTestPost(t, s, "walletA", "newer")

	errToggle, _ := s.ToggleReaction(older.Id, domain.EmojiRocket, "walletB")
	require.NoError(t, errToggle)

	errFetch, posts := s.FetchPosts()
	require.NoError(t, errFetch)
	require.Len(t, *posts, 2)
	assert.Equal(t, newer.Id, (*posts)[0].Id)
	assert.Equal(t, older.Id, (*posts)[1].Id)
	assert.Equal(t, 1, (*posts)[1].ReactionCount(domain.EmojiRocket))
	assert.Equal(t, 0, (*posts)[0].ReactionCount(domain.EmojiRocket))
}
