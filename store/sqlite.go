package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/solwave/fanwall/domain"
	_ "modernc.org/sqlite"
)

const sqlCreateUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	wallet     TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL
);`

const sqlCreatePostsTable = `
CREATE TABLE IF NOT EXISTS posts (
	id            TEXT PRIMARY KEY,
	author_wallet TEXT NOT NULL,
	content       TEXT NOT NULL,
	twitter_embed TEXT NOT NULL DEFAULT '',
	website       TEXT NOT NULL DEFAULT '',
	facebook      TEXT NOT NULL DEFAULT '',
	telegram      TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMP NOT NULL
);`

const sqlCreateCommentsTable = `
CREATE TABLE IF NOT EXISTS comments (
	id            TEXT PRIMARY KEY,
	post_id       TEXT NOT NULL,
	author_wallet TEXT NOT NULL,
	text          TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL
);`

const sqlCreateReactionsTable = `
CREATE TABLE IF NOT EXISTS reactions (
	post_id    TEXT NOT NULL,
	wallet     TEXT NOT NULL,
	emoji      TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	PRIMARY KEY (post_id, wallet, emoji)
);`

// SqliteStore backs the façade with a local sqlite database.
type SqliteStore struct {
	db *sql.DB
}

func NewSqliteStore(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &SqliteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqliteStore) migrate() error {
	for _, stmt := range []string{sqlCreateUsersTable, sqlCreatePostsTable, sqlCreateCommentsTable, sqlCreateReactionsTable} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) FetchPosts() (error, *[]domain.Post) {
	rows, err := s.db.Query(`SELECT id, author_wallet, content, twitter_embed, website, facebook, telegram, created_at
		FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err), nil
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		var id string
		if err := rows.Scan(&id, &p.AuthorWallet, &p.Content, &p.TwitterEmbed, &p.Website, &p.Facebook, &p.Telegram, &p.CreatedAt); err != nil {
			return fmt.Errorf("%w: %v", ErrNetwork, err), nil
		}
		p.Id, err = uuid.Parse(id)
		if err != nil {
			return fmt.Errorf("%w: bad post id %q", ErrNetwork, id), nil
		}
		p.Reactions = map[domain.EmojiType]int{}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err), nil
	}

	if err := s.loadReactionCounts(posts); err != nil {
		return err, nil
	}
	return nil, &posts
}

func (s *SqliteStore) loadReactionCounts(posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}
	byId := map[uuid.UUID]*domain.Post{}
	for i := range posts {
		byId[posts[i].Id] = &posts[i]
	}
	rows, err := s.db.Query(`SELECT post_id, emoji, COUNT(*) FROM reactions GROUP BY post_id, emoji`)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer rows.Close()
	for rows.Next() {
		var postId, emoji string
		var count int
		if err := rows.Scan(&postId, &emoji, &count); err != nil {
			return fmt.Errorf("%w: %v", ErrNetwork, err)
		}
		id, err := uuid.Parse(postId)
		if err != nil {
			continue
		}
		if p, ok := byId[id]; ok {
			p.Reactions[domain.EmojiType(emoji)] = count
		}
	}
	return rows.Err()
}

// EnsureUser is an idempotent upsert: a second call for the same wallet is a
// no-op, not a conflict.
func (s *SqliteStore) EnsureUser(wallet string) error {
	if strings.TrimSpace(wallet) == "" {
		return fmt.Errorf("%w: empty wallet", ErrValidation)
	}
	_, err := s.db.Exec(`INSERT INTO users (wallet, created_at) VALUES (?, ?) ON CONFLICT(wallet) DO NOTHING`,
		wallet, time.Now())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return nil
}

func (s *SqliteStore) FetchComments(postId uuid.UUID) (error, *[]domain.Comment) {
	// Oldest first: the modal reads as a transcript
	rows, err := s.db.Query(`SELECT id, post_id, author_wallet, text, created_at
		FROM comments WHERE post_id = ? ORDER BY created_at ASC, id ASC`, postId.String())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err), nil
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		var id, pid string
		if err := rows.Scan(&id, &pid, &c.AuthorWallet, &c.Text, &c.CreatedAt); err != nil {
			return fmt.Errorf("%w: %v", ErrNetwork, err), nil
		}
		if c.Id, err = uuid.Parse(id); err != nil {
			return fmt.Errorf("%w: bad comment id %q", ErrNetwork, id), nil
		}
		if c.PostId, err = uuid.Parse(pid); err != nil {
			return fmt.Errorf("%w: bad post id %q", ErrNetwork, pid), nil
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err), nil
	}
	return nil, &comments
}

func (s *SqliteStore) CreateComment(postId uuid.UUID, wallet string, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: empty comment", ErrValidation)
	}
	if err := s.postExists(postId); err != nil {
		return err
	}
	_, err := s.db.Exec(`INSERT INTO comments (id, post_id, author_wallet, text, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), postId.String(), wallet, text, time.Now())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return nil
}

// ToggleReaction flips the (post, wallet, emoji) reaction inside one
// transaction and reports the resulting authoritative count. Applying the
// same toggle twice returns the count to its starting value.
func (s *SqliteStore) ToggleReaction(postId uuid.UUID, emoji domain.EmojiType, wallet string) (error, *domain.ReactionState) {
	if !emoji.Valid() {
		return fmt.Errorf("%w: unknown emoji %q", ErrValidation, emoji), nil
	}
	if err := s.postExists(postId); err != nil {
		return err, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err), nil
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(`SELECT COUNT(*) FROM reactions WHERE post_id = ? AND wallet = ? AND emoji = ?`,
		postId.String(), wallet, string(emoji)).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err), nil
	}

	reacted := exists == 0
	if reacted {
		_, err = tx.Exec(`INSERT INTO reactions (post_id, wallet, emoji, created_at) VALUES (?, ?, ?, ?)`,
			postId.String(), wallet, string(emoji), time.Now())
	} else {
		_, err = tx.Exec(`DELETE FROM reactions WHERE post_id = ? AND wallet = ? AND emoji = ?`,
			postId.String(), wallet, string(emoji))
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err), nil
	}

	var count int
	err = tx.QueryRow(`SELECT COUNT(*) FROM reactions WHERE post_id = ? AND emoji = ?`,
		postId.String(), string(emoji)).Scan(&count)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err), nil
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err), nil
	}

	return nil, &domain.ReactionState{PostId: postId, Emoji: emoji, Count: count, Reacted: reacted}
}

func (s *SqliteStore) CreatePost(draft domain.NewPostDraft, wallet string) (error, *domain.Post) {
	if strings.TrimSpace(draft.Content) == "" {
		return fmt.Errorf("%w: empty content", ErrValidation), nil
	}
	post := domain.Post{
		Id:           uuid.New(),
		AuthorWallet: wallet,
		Content:      strings.TrimSpace(draft.Content),
		TwitterEmbed: draft.TwitterEmbed,
		Website:      draft.Website,
		Facebook:     draft.Facebook,
		Telegram:     draft.Telegram,
		Reactions:    map[domain.EmojiType]int{},
		CreatedAt:    time.Now(),
	}
	_, err := s.db.Exec(`INSERT INTO posts (id, author_wallet, content, twitter_embed, website, facebook, telegram, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		post.Id.String(), post.AuthorWallet, post.Content, post.TwitterEmbed, post.Website, post.Facebook, post.Telegram, post.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err), nil
	}
	return nil, &post
}

func (s *SqliteStore) postExists(postId uuid.UUID) error {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE id = ?`, postId.String()).Scan(&n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: post %s", ErrNotFound, postId)
	}
	return nil
}
