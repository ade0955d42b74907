package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/solwave/fanwall/domain"
	"github.com/solwave/fanwall/pay"
	"github.com/solwave/fanwall/util"
)

type fakeStore struct {
	posts       []domain.Post
	comments    []domain.Comment
	toggleCalls int
	createCalls int
}

func (f *fakeStore) FetchPosts() (error, *[]domain.Post) {
	posts := f.posts
	return nil, &posts
}
func (f *fakeStore) EnsureUser(wallet string) error { return nil }
func (f *fakeStore) FetchComments(postId uuid.UUID) (error, *[]domain.Comment) {
	comments := f.comments
	return nil, &comments
}
func (f *fakeStore) CreateComment(postId uuid.UUID, wallet string, text string) error { return nil }
func (f *fakeStore) ToggleReaction(postId uuid.UUID, emoji domain.EmojiType, wallet string) (error, *domain.ReactionState) {
	f.toggleCalls++
	return nil, &domain.ReactionState{PostId: postId, Emoji: emoji, Count: 3, Reacted: true}
}
func (f *fakeStore) CreatePost(draft domain.NewPostDraft, wallet string) (error, *domain.Post) {
	f.createCalls++
	return nil, &domain.Post{Id: uuid.New(), AuthorWallet: wallet, Content: draft.Content, CreatedAt: time.Now()}
}
func (f *fakeStore) Close() error { return nil }

type fakePayer struct {
	calls int
	err   error
}

func (f *fakePayer) SendTip(lamports uint64, recipient string) error {
	f.calls++
	return f.err
}

func testConf() *util.AppConfig {
	c := &util.AppConfig{}
	c.Conf.MaxChars = 150
	return c
}

func connected() domain.Identity {
	return domain.Identity{Connected: true, Address: "walletMe"}
}

func run(t *testing.T, st *fakeStore, payer *fakePayer, identity domain.Identity, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	h := NewHandler(&buf, st, payer, identity, testConf())
	err := h.Execute(args)
	return buf.String(), err
}

func TestPostsTextOutput(t *testing.T) {
	st := &fakeStore{posts: []domain.Post{
		{Id: uuid.New(), AuthorWallet: "walletAAAAAAAAAAAAA", Content: "gm world", CreatedAt: time.Now()},
	}}
	out, err := run(t, st, &fakePayer{}, connected(), "posts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "gm world") {
		t.Errorf("output should contain the post content, got %q", out)
	}
}

func TestPostsJSONOutput(t *testing.T) {
	st := &fakeStore{posts: []domain.Post{
		{Id: uuid.New(), AuthorWallet: "walletA", Content: "gm", CreatedAt: time.Now()},
	}}
	out, err := run(t, st, &fakePayer{}, connected(), "posts", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp WallResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if resp.Count != 1 || len(resp.Posts) != 1 {
		t.Errorf("expected 1 post, got %+v", resp)
	}
	if resp.Posts[0].Content != "gm" {
		t.Errorf("unexpected content: %q", resp.Posts[0].Content)
	}
}

func TestSignedCommandsRequireWallet(t *testing.T) {
	for _, args := range [][]string{
		{"post", "hello"},
		{"comment", uuid.NewString(), "hi"},
		{"react", uuid.NewString(), "fire"},
		{"tip", uuid.NewString(), "0.01"},
	} {
		st := &fakeStore{}
		payer := &fakePayer{}
		out, err := run(t, st, payer, domain.Disconnected, args...)
		if err == nil {
			t.Errorf("%v should fail without a wallet", args)
		}
		if !strings.Contains(out, "wallet") {
			t.Errorf("%v error should mention the wallet, got %q", args, out)
		}
		if st.toggleCalls != 0 || st.createCalls != 0 || payer.calls != 0 {
			t.Errorf("%v must not reach the store or payer while disconnected", args)
		}
	}
}

func TestReactTogglesAndReportsState(t *testing.T) {
	st := &fakeStore{}
	out, err := run(t, st, &fakePayer{}, connected(), "react", uuid.NewString(), "fire", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.toggleCalls != 1 {
		t.Errorf("expected 1 toggle call, got %d", st.toggleCalls)
	}

	var resp ReactResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if resp.Emoji != "fire" || resp.Count != 3 || !resp.Reacted {
		t.Errorf("unexpected state: %+v", resp)
	}
}

func TestReactRejectsUnknownEmoji(t *testing.T) {
	st := &fakeStore{}
	_, err := run(t, st, &fakePayer{}, connected(), "react", uuid.NewString(), "pizza")
	if err == nil {
		t.Fatal("unknown emoji should fail")
	}
	if st.toggleCalls != 0 {
		t.Error("invalid emoji must not reach the store")
	}
}

func TestPostCreates(t *testing.T) {
	st := &fakeStore{}
	out, err := run(t, st, &fakePayer{}, connected(), "post", "hello", "world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.createCalls != 1 {
		t.Errorf("expected 1 create call, got %d", st.createCalls)
	}
	if !strings.Contains(out, "Post created") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestPostRejectsOverLimit(t *testing.T) {
	st := &fakeStore{}
	long := strings.Repeat("a", 200)
	_, err := run(t, st, &fakePayer{}, connected(), "post", long)
	if err == nil {
		t.Fatal("over-limit post should fail")
	}
	if st.createCalls != 0 {
		t.Error("over-limit post must not reach the store")
	}
}

func TestTipSendsToAuthor(t *testing.T) {
	post := domain.Post{Id: uuid.New(), AuthorWallet: "walletAuthor", Content: "gm", CreatedAt: time.Now()}
	st := &fakeStore{posts: []domain.Post{post}}
	payer := &fakePayer{}

	out, err := run(t, st, payer, connected(), "tip", post.Id.String(), "0.01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payer.calls != 1 {
		t.Errorf("expected 1 payer call, got %d", payer.calls)
	}
	if !strings.Contains(out, "0.01") {
		t.Errorf("output should contain the amount, got %q", out)
	}
}

func TestTipInvalidAmountNeverReachesPayer(t *testing.T) {
	post := domain.Post{Id: uuid.New(), AuthorWallet: "walletAuthor", CreatedAt: time.Now()}
	st := &fakeStore{posts: []domain.Post{post}}
	payer := &fakePayer{}

	for _, bad := range []string{"0", "-1", "abc"} {
		if _, err := run(t, st, payer, connected(), "tip", post.Id.String(), bad); err == nil {
			t.Errorf("amount %q should fail", bad)
		}
	}
	if payer.calls != 0 {
		t.Errorf("invalid amounts must never reach the payer, got %d calls", payer.calls)
	}
}

func TestTipUnknownPost(t *testing.T) {
	st := &fakeStore{}
	payer := &fakePayer{}
	_, err := run(t, st, payer, connected(), "tip", uuid.NewString(), "0.01")
	if err == nil {
		t.Fatal("tipping an unknown post should fail")
	}
	if payer.calls != 0 {
		t.Error("unknown post must not reach the payer")
	}
}

func TestUnknownCommand(t *testing.T) {
	out, err := run(t, &fakeStore{}, &fakePayer{}, connected(), "frobnicate")
	if err == nil {
		t.Fatal("unknown command should fail")
	}
	if !strings.Contains(out, "unknown command") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestHelpJSON(t *testing.T) {
	out, err := run(t, &fakeStore{}, &fakePayer{}, connected(), "help", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp HelpResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("help output is not valid JSON: %v", err)
	}
	if len(resp.Commands) == 0 {
		t.Error("help should list commands")
	}
}

func TestCommentsJSON(t *testing.T) {
	postId := uuid.New()
	st := &fakeStore{comments: []domain.Comment{
		{Id: uuid.New(), PostId: postId, AuthorWallet: "walletB", Text: "first", CreatedAt: time.Now()},
		{Id: uuid.New(), PostId: postId, AuthorWallet: "walletC", Text: "second", CreatedAt: time.Now()},
	}}

	out, err := run(t, st, &fakePayer{}, domain.Disconnected, "comments", postId.String(), "--json")
	if err != nil {
		t.Fatalf("browsing must not require a wallet: %v", err)
	}

	var resp CommentsResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected 2 comments, got %d", resp.Count)
	}
	if resp.Comments[0].Text != "first" {
		t.Error("thread order must follow the store")
	}
}

func TestTipAmbiguousOutcome(t *testing.T) {
	post := domain.Post{Id: uuid.New(), AuthorWallet: "walletAuthor", CreatedAt: time.Now()}
	st := &fakeStore{posts: []domain.Post{post}}
	payer := &fakePayer{err: fmt.Errorf("%w: timeout", pay.ErrAmbiguous)}

	out, err := run(t, st, payer, connected(), "tip", post.Id.String(), "0.01")
	if err == nil {
		t.Fatal("ambiguous outcome should surface as an error")
	}
	if payer.calls != 1 {
		t.Errorf("an ambiguous outcome must never be retried, got %d calls", payer.calls)
	}
	if !strings.Contains(out, "unknown") {
		t.Errorf("output should flag the unknown outcome, got %q", out)
	}
}

