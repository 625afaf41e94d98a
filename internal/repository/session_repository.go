// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"skinview-go/internal/model"
)

// sessionTTL 是会话的固定过期时间，每次写入都会重置。
const sessionTTL = 300 * time.Second

// SessionRepository 定义了对话会话在 Redis 中的存取操作。
type SessionRepository interface {
	// Load 读取用户会话，不存在时返回初始状态的空会话。
	Load(ctx context.Context, userKey string) (*model.ChatSession, error)
	// Save 整体覆盖写入会话并重置过期时间。
	Save(ctx context.Context, userKey string, session *model.ChatSession) error
	Delete(ctx context.Context, userKey string) error
}

type redisSessionRepository struct {
	redisClient *redis.Client
}

// NewSessionRepository 创建一个新的 SessionRepository 实例。
func NewSessionRepository(redisClient *redis.Client) SessionRepository {
	return &redisSessionRepository{redisClient: redisClient}
}

func sessionKey(userKey string) string {
	return fmt.Sprintf("chat:session:%s", userKey)
}

// Load 从 Redis 获取会话，未知状态值回退到初始状态。
func (r *redisSessionRepository) Load(ctx context.Context, userKey string) (*model.ChatSession, error) {
	jsonData, err := r.redisClient.Get(ctx, sessionKey(userKey)).Result()
	if err == redis.Nil {
		return model.NewChatSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}

	var session model.ChatSession
	if err := json.Unmarshal([]byte(jsonData), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat session: %w", err)
	}

	switch session.State {
	case model.StateInitialMessage, model.StateProductRecommendation, model.StateProductUsage:
	default:
		session.State = model.StateInitialMessage
	}
	if session.ChatHistory == nil {
		session.ChatHistory = []model.ChatMessage{}
	}
	return &session, nil
}

// Save 序列化会话整体写入 Redis，并重置 TTL。
func (r *redisSessionRepository) Save(ctx context.Context, userKey string, session *model.ChatSession) error {
	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal chat session: %w", err)
	}
	if err := r.redisClient.Set(ctx, sessionKey(userKey), jsonData, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to set chat session: %w", err)
	}
	return nil
}

// Delete 删除用户会话。
func (r *redisSessionRepository) Delete(ctx context.Context, userKey string) error {
	if err := r.redisClient.Del(ctx, sessionKey(userKey)).Err(); err != nil {
		return fmt.Errorf("failed to delete chat session: %w", err)
	}
	return nil
}
