package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mohammad-safakhou/finadvisor/internal/session"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "sessions.json"))
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.Create(ctx, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Title != "Session 1" {
		t.Fatalf("title = %q, want Session 1", created.Title)
	}

	msgs := []session.Message{
		{Role: session.RoleUser, Content: "hello"},
		{Role: session.RoleAssistant, Content: "hi, how can I help with your finances?"},
	}
	if _, ok, err := st.ReplaceMessages(ctx, created.ID, msgs); !ok || err != nil {
		t.Fatalf("ReplaceMessages: ok=%v err=%v", ok, err)
	}

	got, ok, err := st.Get(ctx, created.ID)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if len(got.Messages) != 2 || got.Messages[0].Content != "hello" {
		t.Fatalf("messages not preserved in order: %+v", got.Messages)
	}

	if deleted, err := st.Delete(ctx, created.ID); !deleted || err != nil {
		t.Fatalf("Delete: ok=%v err=%v", deleted, err)
	}
	if _, ok, _ := st.Get(ctx, created.ID); ok {
		t.Fatal("session survived delete")
	}
}

func TestPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions.json")

	first := NewStore(path)
	created, err := first.Create(ctx, "durable")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	second := NewStore(path)
	got, ok, err := second.Get(ctx, created.ID)
	if err != nil || !ok {
		t.Fatalf("Get from fresh instance: ok=%v err=%v", ok, err)
	}
	if got.Title != "durable" {
		t.Fatalf("title = %q", got.Title)
	}
}

func TestDocumentShape(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions.json")
	st := NewStore(path)
	if _, err := st.Create(ctx, "shape"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}
	var doc struct {
		Sessions []session.Session `json:"sessions"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("store file is not the expected document: %v", err)
	}
	if len(doc.Sessions) != 1 {
		t.Fatalf("document holds %d sessions, want 1", len(doc.Sessions))
	}
}

func TestCorruptFileTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	st := NewStore(path)
	all, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List over corrupt file: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("got %d sessions from corrupt file", len(all))
	}
}

func TestConcurrentWritersLoseNoUpdates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := st.Create(ctx, "w"); err != nil {
				t.Errorf("Create: %v", err)
			}
		}()
	}
	wg.Wait()

	all, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != writers {
		t.Fatalf("got %d sessions, want %d", len(all), writers)
	}
}
