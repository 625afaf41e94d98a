// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skinview-go/internal/service"
	"skinview-go/pkg/log"
)

// ChatHandler 负责处理对话相关的 API 请求。
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler 创建一个新的 ChatHandler 实例。
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// UserKeyRequest 定义了只携带用户主键的请求体结构。
type UserKeyRequest struct {
	UserKey string `json:"user_key" binding:"required"`
}

// ChatMessageRequest 定义了发送消息 API 的请求体结构。
type ChatMessageRequest struct {
	UserKey string `json:"user_key" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// StartChat 处理进入聊天页请求：返回渲染后的历史或欢迎消息。
func (h *ChatHandler) StartChat(c *gin.Context) {
	var req UserKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_key가 필요합니다."})
		return
	}

	messages, err := h.chatService.StartChat(c.Request.Context(), req.UserKey)
	if err != nil {
		log.Errorf("StartChat: 处理失败, userKey: %s, error: %v", req.UserKey, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "채팅방 입장에 실패했습니다."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"initialMessages": messages})
}

// Message 处理一条用户消息并返回结构化回复。
// 内部错误一律映射为通用错误文案，不向调用方暴露原始错误。
func (h *ChatHandler) Message(c *gin.Context) {
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"reply": "잘못된 요청입니다."})
		return
	}

	resp, err := h.chatService.ProcessMessage(c.Request.Context(), req.UserKey, req.Message)
	if err != nil {
		log.Errorf("Message: 处理失败, userKey: %s, error: %v", req.UserKey, err)
		c.JSON(http.StatusInternalServerError, gin.H{"reply": "서버 내부 오류가 발생했습니다."})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Reset 删除用户会话并返回一组新的预设问题。
func (h *ChatHandler) Reset(c *gin.Context) {
	var req UserKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_key가 필요합니다."})
		return
	}

	quickReplies, err := h.chatService.Reset(c.Request.Context(), req.UserKey)
	if err != nil {
		log.Errorf("Reset: 处理失败, userKey: %s, error: %v", req.UserKey, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "대화 기록 초기화에 실패했습니다."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quick_replies": quickReplies})
}
