package postlist

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/solwave/fanwall/domain"
	"github.com/solwave/fanwall/store"
	"github.com/solwave/fanwall/ui/common"
)

type fakeStore struct {
	posts       []domain.Post
	fetchErr    error
	toggleErr   error
	toggleCalls int
	toggleState *domain.ReactionState
}

func (f *fakeStore) FetchPosts() (error, *[]domain.Post) {
	if f.fetchErr != nil {
		return f.fetchErr, nil
	}
	posts := f.posts
	return nil, &posts
}

func (f *fakeStore) EnsureUser(wallet string) error { return nil }

func (f *fakeStore) FetchComments(postId uuid.UUID) (error, *[]domain.Comment) {
	return nil, &[]domain.Comment{}
}

func (f *fakeStore) CreateComment(postId uuid.UUID, wallet string, text string) error { return nil }

func (f *fakeStore) ToggleReaction(postId uuid.UUID, emoji domain.EmojiType, wallet string) (error, *domain.ReactionState) {
	f.toggleCalls++
	if f.toggleErr != nil {
		return f.toggleErr, nil
	}
	if f.toggleState != nil {
		return nil, f.toggleState
	}
	return nil, &domain.ReactionState{PostId: postId, Emoji: emoji, Count: 1, Reacted: true}
}

func (f *fakeStore) CreatePost(draft domain.NewPostDraft, wallet string) (error, *domain.Post) {
	return nil, &domain.Post{}
}

func (f *fakeStore) Close() error { return nil }

func useFakeStore(t *testing.T, f *fakeStore) {
	t.Helper()
	store.Set(f)
	t.Cleanup(func() { store.Set(nil) })
}

func testPost(content string) domain.Post {
	return domain.Post{
		Id:           uuid.New(),
		AuthorWallet: "walletAuthor",
		Content:      content,
		Reactions:    map[domain.EmojiType]int{},
		CreatedAt:    time.Now(),
	}
}

func connectedModel(posts ...domain.Post) Model {
	m := InitialModel(domain.Identity{Connected: true, Address: "walletMe"}, 120, 40)
	m.Posts = posts
	return m
}

func TestStartReactionDedupesInflight(t *testing.T) {
	fake := &fakeStore{}
	useFakeStore(t, fake)

	post := testPost("gm")
	m := connectedModel(post)
	react := common.ReactMsg{PostId: post.Id, Emoji: domain.EmojiFire}

	m, cmd1 := m.StartReaction(react)
	if cmd1 == nil {
		t.Fatal("first gesture should start a call")
	}
	// Second identical gesture while the first is unresolved
	m, cmd2 := m.StartReaction(react)
	if cmd2 != nil {
		t.Fatal("duplicate gesture on the same control should be ignored")
	}

	cmd1()
	if fake.toggleCalls != 1 {
		t.Errorf("expected exactly 1 store call, got %d", fake.toggleCalls)
	}
}

func TestStartReactionAllowsDistinctControls(t *testing.T) {
	fake := &fakeStore{}
	useFakeStore(t, fake)

	post := testPost("gm")
	m := connectedModel(post)

	m, cmd1 := m.StartReaction(common.ReactMsg{PostId: post.Id, Emoji: domain.EmojiFire})
	m, cmd2 := m.StartReaction(common.ReactMsg{PostId: post.Id, Emoji: domain.EmojiHeart})
	if cmd1 == nil || cmd2 == nil {
		t.Fatal("distinct (post, emoji) pairs should each start a call")
	}

	cmd1()
	cmd2()
	if fake.toggleCalls != 2 {
		t.Errorf("expected 2 store calls, got %d", fake.toggleCalls)
	}
}

func TestRapidToggleEndsAtOriginalCount(t *testing.T) {
	fake := &fakeStore{}
	useFakeStore(t, fake)

	post := testPost("gm")
	post.Reactions[domain.EmojiFire] = 3
	m := connectedModel(post)
	react := common.ReactMsg{PostId: post.Id, Emoji: domain.EmojiFire}

	// First toggle adds
	fake.toggleState = &domain.ReactionState{PostId: post.Id, Emoji: domain.EmojiFire, Count: 4, Reacted: true}
	m, cmd := m.StartReaction(react)
	m, _ = m.Update(cmd())

	// Second toggle removes, returning the count to its starting value
	fake.toggleState = &domain.ReactionState{PostId: post.Id, Emoji: domain.EmojiFire, Count: 3, Reacted: false}
	m, cmd = m.StartReaction(react)
	if cmd == nil {
		t.Fatal("control should be free again after the first toggle resolved")
	}
	m, _ = m.Update(cmd())

	if fake.toggleCalls != 2 {
		t.Errorf("expected 2 store calls, got %d", fake.toggleCalls)
	}
	if got := m.Posts[0].ReactionCount(domain.EmojiFire); got != 3 {
		t.Errorf("count should be back at 3, got %d", got)
	}
}

func TestReactionFailureEmitsOneNoticeAndKeepsCounts(t *testing.T) {
	fake := &fakeStore{toggleErr: fmt.Errorf("%w: boom", store.ErrNetwork)}
	useFakeStore(t, fake)

	post := testPost("gm")
	post.Reactions[domain.EmojiFire] = 7
	m := connectedModel(post)

	m, cmd := m.StartReaction(common.ReactMsg{PostId: post.Id, Emoji: domain.EmojiFire})
	m, noticeCmd := m.Update(cmd())

	if got := m.Posts[0].ReactionCount(domain.EmojiFire); got != 7 {
		t.Errorf("failed toggle must not change the displayed count, got %d", got)
	}
	if noticeCmd == nil {
		t.Fatal("failure should produce a notice")
	}
	raw := noticeCmd()
	notice, ok := raw.(common.NoticeMsg)
	if !ok {
		t.Fatalf("expected NoticeMsg, got %T", raw)
	}
	if notice.Type != common.NoticeError {
		t.Error("failure notice should be an error")
	}
	if notice.Message != "Failed to update reaction. Please try again." {
		t.Errorf("unexpected notice message: %q", notice.Message)
	}

	// The control is free for a retry
	m, retry := m.StartReaction(common.ReactMsg{PostId: post.Id, Emoji: domain.EmojiFire})
	if retry == nil {
		t.Error("control should accept a new gesture after the failure resolved")
	}
}

func TestLoadFailureKeepsPriorPosts(t *testing.T) {
	post := testPost("still here")
	m := connectedModel(post)

	m, _ = m.Update(postsLoadedMsg{err: fmt.Errorf("%w: down", store.ErrNetwork)})

	if len(m.Posts) != 1 || m.Posts[0].Content != "still here" {
		t.Error("a failed refresh must keep the previously displayed posts")
	}
	if m.Error == "" {
		t.Error("a failed refresh should surface an error line")
	}
}

func TestNumberKeyEmitsReactMsg(t *testing.T) {
	post := testPost("gm")
	m := connectedModel(post)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	if cmd == nil {
		t.Fatal("number key on a selected post should emit a gesture")
	}
	raw := cmd()
	msg, ok := raw.(common.ReactMsg)
	if !ok {
		t.Fatalf("expected ReactMsg, got %T", raw)
	}
	if msg.Emoji != domain.EmojiFire {
		t.Errorf("key 2 should map to fire, got %s", msg.Emoji)
	}
	if msg.PostId != post.Id {
		t.Error("gesture should target the selected post")
	}
}
