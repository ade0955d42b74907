package notices

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/solwave/fanwall/ui/common"
)

func TestNoticesKeepInsertionOrder(t *testing.T) {
	m := InitialModel(5 * time.Second)

	m, _ = m.Update(common.NoticeMsg{Type: common.NoticeError, Message: "first"})
	m, _ = m.Update(common.NoticeMsg{Type: common.NoticeSuccess, Message: "second"})
	m, _ = m.Update(common.NoticeMsg{Type: common.NoticeInfo, Message: "third"})

	if len(m.Notices) != 3 {
		t.Fatalf("expected 3 notices, got %d", len(m.Notices))
	}
	for i, want := range []string{"first", "second", "third"} {
		if m.Notices[i].Message != want {
			t.Errorf("notice %d = %q, want %q", i, m.Notices[i].Message, want)
		}
	}
}

func TestIdenticalMessagesAreNotMerged(t *testing.T) {
	m := InitialModel(5 * time.Second)

	m, _ = m.Update(common.NoticeMsg{Type: common.NoticeError, Message: "same"})
	m, _ = m.Update(common.NoticeMsg{Type: common.NoticeError, Message: "same"})

	if len(m.Notices) != 2 {
		t.Errorf("duplicate messages must coexist, got %d notices", len(m.Notices))
	}
	if m.Notices[0].Id == m.Notices[1].Id {
		t.Error("each notice needs its own id")
	}
}

func TestExpiryRemovesOnlyItsNotice(t *testing.T) {
	m := InitialModel(5 * time.Second)

	m, _ = m.Update(common.NoticeMsg{Message: "a"})
	m, _ = m.Update(common.NoticeMsg{Message: "b"})
	first := m.Notices[0].Id

	m, _ = m.Update(expireMsg{id: first})
	if len(m.Notices) != 1 || m.Notices[0].Message != "b" {
		t.Error("expiry should remove exactly the expired notice")
	}

	// A stale expiry for the already-removed id is harmless
	m, _ = m.Update(expireMsg{id: first})
	if len(m.Notices) != 1 {
		t.Error("stale expiry must be a no-op")
	}
}

func TestRemoveUnknownIdIsNoOp(t *testing.T) {
	m := InitialModel(5 * time.Second)
	m, _ = m.Update(common.NoticeMsg{Message: "keep"})

	m = m.Remove(uuid.New())
	if len(m.Notices) != 1 {
		t.Error("removing an unknown id must not drop anything")
	}
}

func TestDismissOldest(t *testing.T) {
	m := InitialModel(5 * time.Second)

	m = m.DismissOldest() // empty queue
	if len(m.Notices) != 0 {
		t.Error("dismiss on an empty queue should be a no-op")
	}

	m, _ = m.Update(common.NoticeMsg{Message: "old"})
	m, _ = m.Update(common.NoticeMsg{Message: "new"})
	m = m.DismissOldest()

	if len(m.Notices) != 1 || m.Notices[0].Message != "new" {
		t.Error("dismiss should drop the front of the queue")
	}
}

func TestNoticeSchedulesExpiry(t *testing.T) {
	m := InitialModel(time.Millisecond)

	m, cmd := m.Update(common.NoticeMsg{Message: "gone soon"})
	if cmd == nil {
		t.Fatal("enqueueing should schedule an expiry")
	}
	msg := cmd()
	exp, ok := msg.(expireMsg)
	if !ok {
		t.Fatalf("expected expireMsg, got %T", msg)
	}
	if exp.id != m.Notices[0].Id {
		t.Error("expiry should target the enqueued notice")
	}

	m, _ = m.Update(exp)
	if len(m.Notices) != 0 {
		t.Error("the notice should be gone after its expiry fires")
	}
}
