package model

// SessionState 表示对话状态机中的当前状态。
type SessionState string

const (
	// StateInitialMessage 初始状态，等待意图识别。
	StateInitialMessage SessionState = "initial_message"
	// StateProductRecommendation 已给出推荐，等待用户选择商品或回答是否保存。
	StateProductRecommendation SessionState = "product_recommendation"
	// StateProductUsage 用户已选择商品，等待生成使用方法。
	StateProductUsage SessionState = "product_usage"
)

// ChatMessage 代表存储在 Redis 会话中的单条对话消息。
type ChatMessage struct {
	Role         string   `json:"role"` // "user" 或 "assistant"
	Content      string   `json:"content"`
	Time         string   `json:"time"` // 韩语时钟格式，如 "오후 03:12"
	QuickReplies []string `json:"quickReplies,omitempty"`
}

// ProductCandidate 是一次推荐中出现的候选商品。
type ProductCandidate struct {
	ProductName string `json:"product_name"`
	Description string `json:"description"`
	ButtonText  string `json:"button_text,omitempty"`
	UsageGuide  string `json:"usage_guide,omitempty"`
}

// SessionContext 保留跨回合的推荐上下文。
type SessionContext struct {
	RecommendedProducts []ProductCandidate `json:"recommended_products,omitempty"`
	SelectedProduct     *ProductCandidate  `json:"selected_product,omitempty"`
}

// ChatSession 是存储在 Redis 中的完整会话结构。
type ChatSession struct {
	State       SessionState   `json:"state"`
	ChatHistory []ChatMessage  `json:"chat_history"`
	Context     SessionContext `json:"context"`
}

// NewChatSession 返回一个处于初始状态的空会话。
func NewChatSession() *ChatSession {
	return &ChatSession{
		State:       StateInitialMessage,
		ChatHistory: []ChatMessage{},
		Context:     SessionContext{},
	}
}
