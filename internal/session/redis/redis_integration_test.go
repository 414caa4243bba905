package redis_test

import (
	"context"
	"fmt"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mohammad-safakhou/finadvisor/internal/session"
	redisstore "github.com/mohammad-safakhou/finadvisor/internal/session/redis"
)

func TestRedisStoreLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	redisC, err := tcRedis.RunContainer(ctx, testcontainers.WithWaitStrategy(wait.ForListeningPort("6379/tcp")))
	if err != nil {
		t.Fatalf("redis container: %v", err)
	}
	defer func() { _ = redisC.Terminate(ctx) }()

	host, err := redisC.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := redisC.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	defer func() { _ = client.Close() }()

	st := redisstore.NewStoreWithClient(client)

	first, err := st.Create(ctx, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Title != "Session 1" {
		t.Fatalf("default title = %q", first.Title)
	}
	second, err := st.Create(ctx, "Debt plan")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	listed, err := st.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != first.ID || listed[1].ID != second.ID {
		t.Fatalf("listing out of creation order: %+v", listed)
	}

	msgs := []session.Message{
		{Role: session.RoleUser, Content: "how do I pay off my cards?"},
		{Role: session.RoleAssistant, Content: "List balances and rates first."},
	}
	updated, found, err := st.ReplaceMessages(ctx, second.ID, msgs)
	if err != nil || !found {
		t.Fatalf("replace messages: found=%v err=%v", found, err)
	}
	if len(updated.Messages) != 2 {
		t.Fatalf("messages = %+v", updated.Messages)
	}

	got, found, err := st.Get(ctx, second.ID)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got.Messages[1].Content != "List balances and rates first." {
		t.Fatalf("persisted messages = %+v", got.Messages)
	}

	deleted, err := st.Delete(ctx, first.ID)
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}
	if _, found, _ := st.Get(ctx, first.ID); found {
		t.Fatal("deleted session still readable")
	}
	listed, err = st.List(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != second.ID {
		t.Fatalf("index not pruned: %+v", listed)
	}

	if _, found, _ := st.ReplaceMessages(ctx, "missing1", nil); found {
		t.Fatal("replace on missing id reported found")
	}
	if deleted, _ := st.Delete(ctx, "missing1"); deleted {
		t.Fatal("delete on missing id reported deleted")
	}
}
