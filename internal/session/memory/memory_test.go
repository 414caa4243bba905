package memory

import (
	"context"
	"testing"

	"github.com/mohammad-safakhou/finadvisor/internal/session"
)

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	st := NewStore()

	created, err := st.Create(ctx, "College budget")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.CreatedAt == "" {
		t.Fatalf("incomplete session: %+v", created)
	}
	if len(created.Messages) != 0 {
		t.Fatalf("new session has %d messages", len(created.Messages))
	}

	msgs := []session.Message{
		{Role: session.RoleUser, Content: "how do I budget?"},
		{Role: session.RoleAssistant, Content: "start by tracking expenses"},
	}
	updated, ok, err := st.ReplaceMessages(ctx, created.ID, msgs)
	if err != nil || !ok {
		t.Fatalf("ReplaceMessages: ok=%v err=%v", ok, err)
	}
	if len(updated.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(updated.Messages))
	}

	got, ok, err := st.Get(ctx, created.ID)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	for i, m := range msgs {
		if got.Messages[i] != m {
			t.Fatalf("message %d = %+v, want %+v", i, got.Messages[i], m)
		}
	}

	deleted, err := st.Delete(ctx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete: ok=%v err=%v", deleted, err)
	}
	if _, ok, _ := st.Get(ctx, created.ID); ok {
		t.Fatal("session still present after delete")
	}
	if deleted, _ := st.Delete(ctx, created.ID); deleted {
		t.Fatal("double delete reported success")
	}
}

func TestDefaultTitlesAndOrder(t *testing.T) {
	ctx := context.Background()
	st := NewStore()

	first, _ := st.Create(ctx, "")
	second, _ := st.Create(ctx, "")
	if first.Title != "Session 1" || second.Title != "Session 2" {
		t.Fatalf("titles = %q, %q", first.Title, second.Title)
	}
	if first.ID == second.ID {
		t.Fatal("duplicate session ids")
	}

	all, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].ID != first.ID || all[1].ID != second.ID {
		t.Fatalf("list out of creation order: %+v", all)
	}
}

func TestStoredMessagesAreIsolated(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	created, _ := st.Create(ctx, "t")

	msgs := []session.Message{{Role: session.RoleUser, Content: "original"}}
	if _, ok, _ := st.ReplaceMessages(ctx, created.ID, msgs); !ok {
		t.Fatal("ReplaceMessages failed")
	}
	msgs[0].Content = "mutated by caller"

	got, _, _ := st.Get(ctx, created.ID)
	if got.Messages[0].Content != "original" {
		t.Fatal("store shares memory with the caller's slice")
	}
}

func TestReplaceMessagesNotFound(t *testing.T) {
	st := NewStore()
	if _, ok, err := st.ReplaceMessages(context.Background(), "missing", nil); ok || err != nil {
		t.Fatalf("ok=%v err=%v, want not-found without error", ok, err)
	}
}
