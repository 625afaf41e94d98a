package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"skinview-go/internal/model"
)

// newTestSessionRepo 起一个内存 Redis 并返回仓库与服务器句柄。
func newTestSessionRepo(t *testing.T) (SessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionRepository(client), mr
}

func TestSessionSaveSetsTTL(t *testing.T) {
	repo, mr := newTestSessionRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, "user-1", model.NewChatSession()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	key := sessionKey("user-1")
	if !mr.Exists(key) {
		t.Fatal("session key was not written")
	}
	if ttl := mr.TTL(key); ttl != sessionTTL {
		t.Errorf("TTL = %v, want %v", ttl, sessionTTL)
	}
}

func TestSessionSaveRefreshesTTL(t *testing.T) {
	repo, mr := newTestSessionRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, "user-1", model.NewChatSession()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	// TTL 过去一段时间后再次写入，过期时间应重置回完整窗口
	mr.FastForward(200 * time.Second)
	if err := repo.Save(ctx, "user-1", model.NewChatSession()); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	if ttl := mr.TTL(sessionKey("user-1")); ttl != sessionTTL {
		t.Errorf("TTL after rewrite = %v, want %v", ttl, sessionTTL)
	}
}

func TestSessionExpiresAfterTTL(t *testing.T) {
	repo, mr := newTestSessionRepo(t)
	ctx := context.Background()

	session := model.NewChatSession()
	session.ChatHistory = append(session.ChatHistory,
		model.ChatMessage{Role: "user", Content: "안녕", Time: "오전 10:00"})
	if err := repo.Save(ctx, "user-1", session); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	// 过期前可读
	mr.FastForward(sessionTTL - time.Second)
	loaded, err := repo.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("Load before expiry returned error: %v", err)
	}
	if len(loaded.ChatHistory) != 1 {
		t.Errorf("expected stored history before expiry, got %d entries", len(loaded.ChatHistory))
	}

	// 过期后读到的是全新的初始会话
	mr.FastForward(2 * time.Second)
	loaded, err = repo.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("Load after expiry returned error: %v", err)
	}
	if len(loaded.ChatHistory) != 0 {
		t.Errorf("expected fresh session after expiry, got %d history entries", len(loaded.ChatHistory))
	}
	if loaded.State != model.StateInitialMessage {
		t.Errorf("state after expiry = %q, want initial", loaded.State)
	}
}

func TestSessionLoadMissingReturnsFreshSession(t *testing.T) {
	repo, _ := newTestSessionRepo(t)

	session, err := repo.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if session.State != model.StateInitialMessage {
		t.Errorf("state = %q, want initial", session.State)
	}
	if session.ChatHistory == nil || len(session.ChatHistory) != 0 {
		t.Errorf("expected empty non-nil history, got %#v", session.ChatHistory)
	}
}

func TestSessionLoadUnknownStateFallsBack(t *testing.T) {
	repo, mr := newTestSessionRepo(t)

	// 直接写入一个状态值未知的会话，读取时应回退到初始状态
	raw, err := json.Marshal(map[string]interface{}{
		"state": "legacy_state",
		"chat_history": []model.ChatMessage{
			{Role: "user", Content: "안녕", Time: "오전 10:00"},
		},
	})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	if err := mr.Set(sessionKey("user-1"), string(raw)); err != nil {
		t.Fatalf("seed redis: %v", err)
	}

	session, err := repo.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if session.State != model.StateInitialMessage {
		t.Errorf("state = %q, want fallback to initial", session.State)
	}
	if len(session.ChatHistory) != 1 {
		t.Errorf("history should survive the state fallback, got %d entries", len(session.ChatHistory))
	}
}

func TestSessionDelete(t *testing.T) {
	repo, mr := newTestSessionRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, "user-1", model.NewChatSession()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := repo.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if mr.Exists(sessionKey("user-1")) {
		t.Error("session key still present after delete")
	}
}
