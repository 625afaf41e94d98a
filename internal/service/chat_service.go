// Package service 提供了对话编排的核心业务逻辑。
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skinview-go/internal/model"
	"skinview-go/internal/repository"
	"skinview-go/pkg/log"
)

// 固定回复文案。
const (
	welcomeMessage     = "무엇을 도와드릴까요?"
	savePresetPrompt   = "이 제품 정보를 프리셋에 저장하시겠습니까?"
	presetSavedReply   = "프리셋에 성공적으로 저장되었습니다."
	presetDeclined     = "알겠습니다. 다른 궁금한 점이 있다면 편하게 질문해주세요."
	recommendationTopK = 3
)

// ChatResponse 是一次消息处理返回给调用方的结构化回复。
type ChatResponse struct {
	Reply        string   `json:"reply"`
	QuickReplies []string `json:"quick_replies,omitempty"`
}

// RenderedMessage 是进入聊天页时返回的前端渲染消息。
type RenderedMessage struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"` // "bot" 或 "user"
	Text         string   `json:"text"`
	Time         string   `json:"time"`
	QuickReplies []string `json:"quickReplies,omitempty"`
}

// ChatService 接口定义了对话编排的对外操作。
type ChatService interface {
	// StartChat 进入或恢复会话：有历史则渲染历史，否则生成欢迎语和预设问题。
	StartChat(ctx context.Context, userKey string) ([]RenderedMessage, error)
	// ProcessMessage 按当前会话状态分发处理一条消息，成功后持久化新会话。
	ProcessMessage(ctx context.Context, userKey, text string) (*ChatResponse, error)
	// Reset 删除会话并返回一组新的预设问题。
	Reset(ctx context.Context, userKey string) ([]string, error)
}

type chatService struct {
	profileService ProfileService
	searchService  SearchService
	genService     GenerationService
	sessionRepo    repository.SessionRepository
	presetRepo     repository.PresetRepository
	loc            *time.Location
	now            func() time.Time
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(
	profileService ProfileService,
	searchService SearchService,
	genService GenerationService,
	sessionRepo repository.SessionRepository,
	presetRepo repository.PresetRepository,
) ChatService {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	return &chatService{
		profileService: profileService,
		searchService:  searchService,
		genService:     genService,
		sessionRepo:    sessionRepo,
		presetRepo:     presetRepo,
		loc:            loc,
		now:            time.Now,
	}
}

// koreanClock 返回韩语时钟文本，如 "오후 03:12"。
func (s *chatService) koreanClock() string {
	t := s.now().In(s.loc)
	formatted := t.Format("PM 03:04")
	formatted = strings.Replace(formatted, "AM", "오전", 1)
	formatted = strings.Replace(formatted, "PM", "오후", 1)
	return formatted
}

// isAffirmative 判断用户回答是否为肯定。与既有客户端行为保持一致，
// 采用包含匹配而不是全等匹配。
func isAffirmative(text string) bool {
	return strings.Contains(text, "예")
}

func (s *chatService) StartChat(ctx context.Context, userKey string) ([]RenderedMessage, error) {
	session, err := s.sessionRepo.Load(ctx, userKey)
	if err != nil {
		return nil, err
	}

	if len(session.ChatHistory) > 0 {
		messages := make([]RenderedMessage, 0, len(session.ChatHistory))
		for i, msg := range session.ChatHistory {
			msgType := "user"
			if msg.Role == "assistant" {
				msgType = "bot"
			}
			messages = append(messages, RenderedMessage{
				ID:           fmt.Sprintf("%s-%d", msg.Role, i),
				Type:         msgType,
				Text:         msg.Content,
				Time:         msg.Time,
				QuickReplies: msg.QuickReplies,
			})
		}
		return messages, nil
	}

	// 首次进入：生成欢迎语和预设问题，并写入初始会话
	profile, err := s.profileService.Aggregate(userKey)
	if err != nil {
		return nil, err
	}
	quickReplies, err := s.genService.QuickReplies(ctx, profile)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Save(ctx, userKey, model.NewChatSession()); err != nil {
		return nil, err
	}

	return []RenderedMessage{{
		ID:           "bot-welcome",
		Type:         "bot",
		Text:         welcomeMessage,
		Time:         s.koreanClock(),
		QuickReplies: quickReplies,
	}}, nil
}

func (s *chatService) ProcessMessage(ctx context.Context, userKey, text string) (*ChatResponse, error) {
	session, err := s.sessionRepo.Load(ctx, userKey)
	if err != nil {
		return nil, err
	}

	var resp *ChatResponse
	switch session.State {
	case model.StateProductRecommendation:
		resp, err = s.handleProductRecommendation(ctx, userKey, text, session)
	case model.StateProductUsage:
		resp, err = s.handleProductUsage(ctx, userKey, text, session)
	default:
		resp, err = s.handleInitialMessage(ctx, userKey, text, session)
	}
	if err != nil {
		// 上游失败时不落盘，避免持久化半成品状态
		return nil, err
	}

	if err := s.sessionRepo.Save(ctx, userKey, session); err != nil {
		return nil, err
	}
	return resp, nil
}

// handleInitialMessage 处理初始状态：按钮点选优先于意图分类。
func (s *chatService) handleInitialMessage(ctx context.Context, userKey, text string, session *model.ChatSession) (*ChatResponse, error) {
	// 命中候选商品按钮则视为商品选择
	for i := range session.Context.RecommendedProducts {
		if session.Context.RecommendedProducts[i].ButtonText == text {
			log.Infof("[ChatService] [%s] 检测到商品按钮点击, 转入推荐处理", userKey)
			selected := session.Context.RecommendedProducts[i]
			session.Context.SelectedProduct = &selected
			return s.handleProductRecommendation(ctx, userKey, text, session)
		}
	}

	nowStr := s.koreanClock()
	intent := s.genService.ClassifyIntent(ctx, text)

	if intent == IntentSimpleChat {
		reply, err := s.genService.SimpleChat(ctx, session.ChatHistory, text)
		if err != nil {
			return nil, err
		}
		session.ChatHistory = append(session.ChatHistory,
			model.ChatMessage{Role: "user", Content: text, Time: nowStr},
			model.ChatMessage{Role: "assistant", Content: reply, Time: nowStr},
		)
		session.State = model.StateInitialMessage
		session.Context = model.SessionContext{}
		return &ChatResponse{Reply: reply}, nil
	}

	// 商品推荐路径
	session.ChatHistory = append(session.ChatHistory,
		model.ChatMessage{Role: "user", Content: text, Time: nowStr})

	profile, err := s.profileService.Aggregate(userKey)
	if err != nil {
		return nil, err
	}
	retrieved, err := s.searchService.Retrieve(ctx, profile, text, recommendationTopK)
	if err != nil {
		return nil, err
	}
	intro, buttonTexts, err := s.genService.Recommend(ctx, profile, text, session.ChatHistory, retrieved)
	if err != nil {
		return nil, err
	}

	session.ChatHistory = append(session.ChatHistory,
		model.ChatMessage{Role: "assistant", Content: intro, Time: nowStr, QuickReplies: buttonTexts})

	candidates := make([]model.ProductCandidate, 0, len(retrieved))
	for i, p := range retrieved {
		candidates = append(candidates, model.ProductCandidate{
			ProductName: p.ProductName,
			Description: p.Description,
			ButtonText:  buttonTexts[i],
		})
	}
	session.State = model.StateInitialMessage
	session.Context = model.SessionContext{RecommendedProducts: candidates}

	return &ChatResponse{Reply: intro, QuickReplies: buttonTexts}, nil
}

// handleProductRecommendation 处理商品选择后的使用方法生成；
// 是/否回答则转交保存处理。
func (s *chatService) handleProductRecommendation(ctx context.Context, userKey, text string, session *model.ChatSession) (*ChatResponse, error) {
	if text == "예" || text == "아니요" {
		log.Infof("[ChatService] [%s] 检测到保存确认回答, 转入保存处理", userKey)
		return s.handleProductUsage(ctx, userKey, text, session)
	}

	nowStr := s.koreanClock()
	session.ChatHistory = append(session.ChatHistory,
		model.ChatMessage{Role: "user", Content: text, Time: nowStr})

	if session.Context.SelectedProduct == nil {
		return nil, errors.New("no selected product in session context")
	}

	usageGuide, err := s.genService.UsageGuide(ctx, session.Context.SelectedProduct)
	if err != nil {
		return nil, err
	}
	session.Context.SelectedProduct.UsageGuide = usageGuide

	reply := fmt.Sprintf("%s\n\n%s", usageGuide, savePresetPrompt)
	quickReplies := []string{"예", "아니요"}

	session.ChatHistory = append(session.ChatHistory,
		model.ChatMessage{Role: "assistant", Content: reply, Time: nowStr, QuickReplies: quickReplies})
	session.State = model.StateProductRecommendation

	return &ChatResponse{Reply: reply, QuickReplies: quickReplies}, nil
}

// handleProductUsage 处理保存确认：标题摘要或写库失败都在本地转成用户可见文案，
// 会话仍然回到初始状态并照常保存。
func (s *chatService) handleProductUsage(ctx context.Context, userKey, text string, session *model.ChatSession) (*ChatResponse, error) {
	nowStr := s.koreanClock()
	session.ChatHistory = append(session.ChatHistory,
		model.ChatMessage{Role: "user", Content: text, Time: nowStr})

	var reply string
	if isAffirmative(text) {
		reply = s.savePreset(ctx, userKey, session)
	} else {
		reply = presetDeclined
	}

	session.ChatHistory = append(session.ChatHistory,
		model.ChatMessage{Role: "assistant", Content: reply, Time: nowStr})
	session.State = model.StateInitialMessage
	session.Context = model.SessionContext{}

	return &ChatResponse{Reply: reply}, nil
}

// savePreset 生成标题并落库，任何一步失败都返回错误文案而不是错误。
func (s *chatService) savePreset(ctx context.Context, userKey string, session *model.ChatSession) string {
	selected := session.Context.SelectedProduct
	if selected == nil {
		return fmt.Sprintf("프리셋 저장 중 오류가 발생했습니다: %v", errors.New("no selected product"))
	}

	title, err := s.genService.SummarizeTitle(ctx, session.ChatHistory)
	if err != nil {
		log.Errorf("[ChatService] [%s] 生成标题失败: %v", userKey, err)
		return fmt.Sprintf("프리셋 저장 중 오류가 발생했습니다: %v", err)
	}

	preset := &model.Preset{
		UserKey:     userKey,
		Concerns:    title,
		ProductName: selected.ProductName,
		UsageGuide:  selected.UsageGuide,
		Date:        s.now().In(s.loc),
	}
	if err := s.presetRepo.Create(preset); err != nil {
		log.Errorf("[ChatService] [%s] 保存例程失败: %v", userKey, err)
		return fmt.Sprintf("프리셋 저장 중 오류가 발생했습니다: %v", err)
	}

	log.Infof("[ChatService] [%s] 例程保存完成: %s", userKey, title)
	return presetSavedReply
}

func (s *chatService) Reset(ctx context.Context, userKey string) ([]string, error) {
	if err := s.sessionRepo.Delete(ctx, userKey); err != nil {
		return nil, err
	}
	log.Infof("[ChatService] [%s] 会话已重置", userKey)

	profile, err := s.profileService.Aggregate(userKey)
	if err != nil {
		return nil, err
	}
	return s.genService.QuickReplies(ctx, profile)
}
