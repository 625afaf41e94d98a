package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"skinview-go/internal/model"
	"skinview-go/pkg/llm"
)

// fakeLLMClient 回放固定内容并记录最近一次请求。
type fakeLLMClient struct {
	response     string
	err          error
	lastMessages []llm.Message
	lastParams   *llm.GenerationParams
}

func (f *fakeLLMClient) Complete(ctx context.Context, messages []llm.Message, gen *llm.GenerationParams) (string, error) {
	f.lastMessages = messages
	f.lastParams = gen
	return f.response, f.err
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     string
	}{
		{"bracketed simple chat", "[단순 대화]", nil, IntentSimpleChat},
		{"plain simple chat", "단순 대화", nil, IntentSimpleChat},
		{"recommend", "[제품 추천]", nil, IntentRecommend},
		{"whitespace around label", "  단순 대화 \n", nil, IntentSimpleChat},
		{"unparseable output falls back", "모르겠어요", nil, IntentRecommend},
		{"llm failure falls back", "", errors.New("timeout"), IntentRecommend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeLLMClient{response: tt.response, err: tt.err}
			svc := NewGenerationService(client)
			if got := svc.ClassifyIntent(context.Background(), "질문"); got != tt.want {
				t.Errorf("ClassifyIntent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyIntentUsesDeterministicParams(t *testing.T) {
	client := &fakeLLMClient{response: "[제품 추천]"}
	svc := NewGenerationService(client)
	svc.ClassifyIntent(context.Background(), "질문")

	if client.lastParams == nil || client.lastParams.Temperature == nil || *client.lastParams.Temperature != 0 {
		t.Errorf("expected temperature 0, got %+v", client.lastParams)
	}
	if client.lastParams.MaxTokens == nil || *client.lastParams.MaxTokens != 20 {
		t.Errorf("expected max tokens 20, got %+v", client.lastParams)
	}
}

func TestSimpleChatMessageOrder(t *testing.T) {
	client := &fakeLLMClient{response: "답변"}
	svc := NewGenerationService(client)

	history := []model.ChatMessage{
		{Role: "user", Content: "이전 질문"},
		{Role: "assistant", Content: "이전 답변"},
	}
	reply, err := svc.SimpleChat(context.Background(), history, "새 질문")
	if err != nil {
		t.Fatalf("SimpleChat returned error: %v", err)
	}
	if reply != "답변" {
		t.Errorf("reply = %q", reply)
	}

	roles := make([]string, 0, len(client.lastMessages))
	for _, m := range client.lastMessages {
		roles = append(roles, m.Role)
	}
	want := []string{"system", "user", "assistant", "user"}
	if !reflect.DeepEqual(roles, want) {
		t.Errorf("message roles = %v, want %v", roles, want)
	}
	if client.lastMessages[len(client.lastMessages)-1].Content != "새 질문" {
		t.Errorf("last message should be the new question: %+v", client.lastMessages)
	}
}

func TestParseRecommendation(t *testing.T) {
	tests := []struct {
		name      string
		full      string
		wantIntro string
		wantDescs []string
	}{
		{
			name:      "intro and three descriptions",
			full:      "소개글입니다.\n\n첫 번째 설명\n두 번째 설명\n세 번째 설명",
			wantIntro: "소개글입니다.",
			wantDescs: []string{"첫 번째 설명", "두 번째 설명", "세 번째 설명"},
		},
		{
			name:      "blank lines inside description block are skipped",
			full:      "소개\n\n설명1\n\n설명2",
			wantIntro: "소개",
			wantDescs: []string{"설명1", "설명2"},
		},
		{
			name:      "no blank separator yields no descriptions",
			full:      "소개글만 있는 응답",
			wantIntro: "소개글만 있는 응답",
			wantDescs: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intro, descs := parseRecommendation(tt.full)
			if intro != tt.wantIntro {
				t.Errorf("intro = %q, want %q", intro, tt.wantIntro)
			}
			if !reflect.DeepEqual(descs, tt.wantDescs) {
				t.Errorf("descriptions = %v, want %v", descs, tt.wantDescs)
			}
		})
	}
}

func TestRecommendButtonTexts(t *testing.T) {
	client := &fakeLLMClient{response: "추천 소개글\n\n진정 효과\n수분 공급\n장벽 강화"}
	svc := NewGenerationService(client)

	products := []model.ProductSearchResult{
		{ProductName: "토너A"},
		{ProductName: "세럼B"},
		{ProductName: "크림C"},
	}
	intro, buttons, err := svc.Recommend(context.Background(), &model.UserProfile{}, "질문", nil, products)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	if intro != "추천 소개글" {
		t.Errorf("intro = %q", intro)
	}
	want := []string{"토너A: 진정 효과", "세럼B: 수분 공급", "크림C: 장벽 강화"}
	if !reflect.DeepEqual(buttons, want) {
		t.Errorf("buttons = %v, want %v", buttons, want)
	}
}

func TestRecommendFallbackOnCountMismatch(t *testing.T) {
	// 两行描述对三个商品：全部候选降级为占位描述而不是报错
	client := &fakeLLMClient{response: "소개글\n\n설명1\n설명2"}
	svc := NewGenerationService(client)

	products := []model.ProductSearchResult{
		{ProductName: "토너A"},
		{ProductName: "세럼B"},
		{ProductName: "크림C"},
	}
	_, buttons, err := svc.Recommend(context.Background(), &model.UserProfile{}, "질문", nil, products)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	if len(buttons) != 3 {
		t.Fatalf("expected 3 buttons, got %v", buttons)
	}
	for i, b := range buttons {
		if !strings.HasSuffix(b, ": "+placeholderDescription) {
			t.Errorf("button %d = %q, want placeholder suffix", i, b)
		}
	}
}

func TestRecommendPropagatesLLMError(t *testing.T) {
	client := &fakeLLMClient{err: errors.New("unavailable")}
	svc := NewGenerationService(client)

	_, _, err := svc.Recommend(context.Background(), &model.UserProfile{}, "질문", nil, nil)
	if err == nil {
		t.Fatal("expected error to propagate")
	}
}

func TestSummarizeTitleStripsQuotes(t *testing.T) {
	client := &fakeLLMClient{response: ` "여드름 케어 상담" `}
	svc := NewGenerationService(client)

	title, err := svc.SummarizeTitle(context.Background(), nil)
	if err != nil {
		t.Fatalf("SummarizeTitle returned error: %v", err)
	}
	if title != "여드름 케어 상담" {
		t.Errorf("title = %q", title)
	}
}

func TestQuickRepliesCapsAtFour(t *testing.T) {
	client := &fakeLLMClient{response: "질문1\n질문2\n\n질문3\n질문4\n질문5\n질문6"}
	svc := NewGenerationService(client)

	replies, err := svc.QuickReplies(context.Background(), &model.UserProfile{})
	if err != nil {
		t.Fatalf("QuickReplies returned error: %v", err)
	}
	want := []string{"질문1", "질문2", "질문3", "질문4"}
	if !reflect.DeepEqual(replies, want) {
		t.Errorf("replies = %v, want %v", replies, want)
	}
}

func TestQuickRepliesPropagatesError(t *testing.T) {
	client := &fakeLLMClient{err: errors.New("unavailable")}
	svc := NewGenerationService(client)

	if _, err := svc.QuickReplies(context.Background(), &model.UserProfile{}); err == nil {
		t.Fatal("expected error to propagate")
	}
}
