package service

import (
	"context"
	"fmt"
	"strings"

	"skinview-go/internal/model"
	"skinview-go/pkg/llm"
	"skinview-go/pkg/log"
)

// 意图标签，分类器只允许返回这两个值。
const (
	IntentSimpleChat = "단순 대화"
	IntentRecommend  = "제품 추천"
)

// placeholderDescription 是推荐解析失败时的统一兜底描述。
const placeholderDescription = "상세 정보 보기"

// GenerationService 封装了所有经由 LLM 的提示词契约。
type GenerationService interface {
	// ClassifyIntent 对用户消息做单标签意图分类。
	// 输出无法解析或调用失败时一律回退到 IntentRecommend，永不报错。
	ClassifyIntent(ctx context.Context, message string) string
	// SimpleChat 以完整历史做一次普通闲聊补全。
	SimpleChat(ctx context.Context, history []model.ChatMessage, message string) (string, error)
	// Recommend 生成推荐引导语和每个候选商品的按钮文本。
	// 解析出的描述行数与候选数不一致时，全部候选降级为占位描述，请求不失败。
	Recommend(ctx context.Context, profile *model.UserProfile, query string, history []model.ChatMessage, products []model.ProductSearchResult) (string, []string, error)
	// UsageGuide 为选中商品生成使用方法文本，不做任何解析。
	UsageGuide(ctx context.Context, product *model.ProductCandidate) (string, error)
	// SummarizeTitle 将对话历史摘要为短标题，去掉引号。失败时错误原样上抛。
	SummarizeTitle(ctx context.Context, history []model.ChatMessage) (string, error)
	// QuickReplies 根据用户画像生成至多 4 个预设问题。失败时错误原样上抛。
	QuickReplies(ctx context.Context, profile *model.UserProfile) ([]string, error)
}

type generationService struct {
	llmClient llm.Client
}

// NewGenerationService 创建一个新的 GenerationService 实例。
func NewGenerationService(llmClient llm.Client) GenerationService {
	return &generationService{llmClient: llmClient}
}

func (s *generationService) ClassifyIntent(ctx context.Context, message string) string {
	maxTokens := 20
	temperature := 0.0
	messages := []llm.Message{
		{Role: "system", Content: "당신은 사용자 질문의 의도를 [제품 추천] 또는 [단순 대화] 중 하나로만 분류하는 AI입니다."},
		{Role: "user", Content: message},
	}
	result, err := s.llmClient.Complete(ctx, messages, &llm.GenerationParams{
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		log.Warnf("[GenerationService] 意图分类调用失败, 回退到默认意图: %v", err)
		return IntentRecommend
	}

	intent := strings.NewReplacer("[", "", "]", "").Replace(strings.TrimSpace(result))
	if intent == IntentSimpleChat || intent == IntentRecommend {
		return intent
	}
	return IntentRecommend
}

func (s *generationService) SimpleChat(ctx context.Context, history []model.ChatMessage, message string) (string, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: "당신은 친절한 AI 챗봇입니다."})
	for _, msg := range history {
		messages = append(messages, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: message})

	return s.llmClient.Complete(ctx, messages, nil)
}

func (s *generationService) Recommend(ctx context.Context, profile *model.UserProfile, query string, history []model.ChatMessage, products []model.ProductSearchResult) (string, []string, error) {
	historyLines := make([]string, 0, len(history))
	for _, msg := range history {
		historyLines = append(historyLines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}

	productLines := make([]string, 0, len(products))
	for _, p := range products {
		productLines = append(productLines, fmt.Sprintf("- 제품명: %s\n  카테고리: %s\n  주요성분: %s\n  제품소개문구: %s",
			p.ProductName, p.SkinType, p.Ingredients, p.Description))
	}

	gender := profile.UserProfile.Gender
	if gender == "" {
		gender = unknownValue
	}
	skinType := profile.SurveyData.SkinType
	if skinType == "" {
		skinType = unknownValue
	}

	userPrompt := fmt.Sprintf(`
[이전 대화 내용]
%s

[사용자 기본 정보]
- 나이: %s세
- 성별: %s

[사용자 피부 분석 데이터]
- 안면부 여드름 개수: %d개
- 안면부 여드름 면적 비율: %.1f%%
- 안면부 홍조 면적 비율: %.1f%%

[사용자 설문 조사 데이터 (바우만 피부 타입 테스트)]
- D/O 타입: %s
- S/R 타입: %s
- P/N 타입: %s
- W/T 타입: %s
- 최종 피부 타입: %s

[사용자의 현재 질문]
%s

[시스템이 찾아낸 관련 제품 목록]
%s

[지시사항]
1. 위의 모든 정보를 종합하여, 사용자에게 찾아낸 %d가지 제품을 추천하는 '소개글'을 70자 이내로 작성해주세요.
2. 소개글 마지막에는 "제품 사용법이 궁금하시면 아래 버튼을 클릭해주시고, 다른 문의는 채팅으로 입력해주세요." 라는 안내 문구를 반드시 포함해주세요.
3. 소개글 작성 후, 빈 줄 하나를 띄고, 각 제품에 대한 '간단한 설명'을 15자 이내로 각각 한 줄씩, 총 %d줄을 생성해주세요. (제품명은 절대 포함하지 마세요)
`,
		strings.Join(historyLines, "\n"),
		profile.Age,
		gender,
		profile.SkinAnalysis.AcneCount,
		profile.SkinAnalysis.AcneAreaRatio,
		profile.SkinAnalysis.RednessAreaRatio,
		profile.DODesc,
		profile.SRDesc,
		profile.PNDesc,
		profile.WTDesc,
		skinType,
		query,
		strings.Join(productLines, "\n\n"),
		len(products),
		len(products),
	)

	messages := []llm.Message{
		{Role: "system", Content: "당신은 대한민국 최고의 피부 관리 전문가입니다. 사용자의 정보를 바탕으로 제품을 소개하고, 지정된 형식에 맞춰 버튼 텍스트를 생성해야 합니다."},
		{Role: "user", Content: userPrompt},
	}
	fullResponse, err := s.llmClient.Complete(ctx, messages, nil)
	if err != nil {
		return "", nil, err
	}

	intro, descriptions := parseRecommendation(fullResponse)

	// 安全装置：描述行数与商品数不一致时，整体替换为占位描述
	if len(descriptions) != len(products) {
		log.Warnf("[GenerationService] 生成的描述行数(%d)与商品数(%d)不一致, 使用占位描述", len(descriptions), len(products))
		descriptions = make([]string, len(products))
		for i := range descriptions {
			descriptions[i] = placeholderDescription
		}
	}

	buttonTexts := make([]string, 0, len(products))
	for i, p := range products {
		buttonTexts = append(buttonTexts, fmt.Sprintf("%s: %s", p.ProductName, descriptions[i]))
	}
	return intro, buttonTexts, nil
}

// parseRecommendation 在第一个空行处切分：前段为引导语，后段逐行取非空描述。
func parseRecommendation(full string) (string, []string) {
	parts := strings.SplitN(full, "\n\n", 2)
	intro := parts[0]

	var descriptions []string
	if len(parts) > 1 {
		for _, line := range strings.Split(parts[1], "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				descriptions = append(descriptions, line)
			}
		}
	}
	return intro, descriptions
}

func (s *generationService) UsageGuide(ctx context.Context, product *model.ProductCandidate) (string, error) {
	prompt := fmt.Sprintf(`
'%s' 제품의 상세한 사용 방법과 주요 성분, 주의사항을 알려줘.

[지시사항]
1. 제품을 추천할 때는 어떤 성분 때문에, 왜 사용자에게 좋은지 그 이유를 반드시 설명해야 합니다.
2. 추천한 제품을 어떤 순서로, 어떻게 사용하면 좋을지 '스킨케어 루틴'을 상세히 제안해주세요. (예: 아침/저녁, 사용 순서, 주의사항 등)
3. 전문가적이고 신뢰도 높은 말투를 사용하되, 너무 딱딱하지 않게 친근한 어조를 유지해주세요.
`, product.ProductName)

	return s.llmClient.Complete(ctx, []llm.Message{{Role: "user", Content: prompt}}, nil)
}

func (s *generationService) SummarizeTitle(ctx context.Context, history []model.ChatMessage) (string, error) {
	historyLines := make([]string, 0, len(history))
	for _, msg := range history {
		historyLines = append(historyLines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	prompt := fmt.Sprintf("다음 대화 내용의 핵심 주제를 10자 이내의 제목으로 요약해줘.\n\n%s", strings.Join(historyLines, "\n"))

	maxTokens := 30
	title, err := s.llmClient.Complete(ctx, []llm.Message{{Role: "user", Content: prompt}}, &llm.GenerationParams{MaxTokens: &maxTokens})
	if err != nil {
		return "", err
	}
	title = strings.NewReplacer(`"`, "", `'`, "").Replace(strings.TrimSpace(title))
	return title, nil
}

func (s *generationService) QuickReplies(ctx context.Context, profile *model.UserProfile) ([]string, error) {
	gender := profile.UserProfile.Gender
	if gender == "" {
		gender = unknownValue
	}
	skinType := profile.SurveyData.SkinType
	if skinType == "" {
		skinType = unknownValue
	}
	combination := "낮음"
	if profile.SurveyData.CombinationType != "" {
		combination = "있음"
	}

	prompt := fmt.Sprintf(`
[사용자 기본 정보]
- 나이: %s세
- 성별: %s

[사용자 피부 분석 데이터]
- 안면부 여드름 개수: %d개
- 안면부 여드름 면적 비율: %.1f%%
- 안면부 홍조 면적 비율: %.1f%%

[사용자 설문 조사 데이터 (바우만 피부 타입 테스트)]
- D/O 타입: %s
- S/R 타입: %s
- P/N 타입: %s
- W/T 타입: %s
- 최종 피부 타입: %s
- 복합성 피부 가능성: %s

위 사용자 데이터를 가진 사람이 AI 뷰티 어드바이저에게 할 법한 질문 4개를 생성해줘. 각 질문은 다음 조건을 반드시 지켜야 해:
1. 제공된 사용자 안면부 피부 분석 데이터와 사용자의 바우만 피부 타입 테스트 설문조사 결과 데이터를 기반으로 질문을 만들어줘.
2. 여드름 피부 문제에 대한 질문을 필수적으로 2개 생성해줘.
3. 한국어로 작성해줘.
4. 각 질문을 줄바꿈으로만 구분하고, 번호나 다른 기호는 절대 붙이지 마.
`,
		profile.Age,
		gender,
		profile.SkinAnalysis.AcneCount,
		profile.SkinAnalysis.AcneAreaRatio,
		profile.SkinAnalysis.RednessAreaRatio,
		profile.DODesc,
		profile.SRDesc,
		profile.PNDesc,
		profile.WTDesc,
		skinType,
		combination,
	)

	temperature := 0.7
	maxTokens := 200
	messages := []llm.Message{
		{Role: "system", Content: "당신은 사용자의 복합적인 피부 데이터를 분석하여, 가장 적절하고 개인화된 스킨케어 질문을 생성하는 AI입니다."},
		{Role: "user", Content: prompt},
	}
	content, err := s.llmClient.Complete(ctx, messages, &llm.GenerationParams{
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, err
	}

	var quickReplies []string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			quickReplies = append(quickReplies, line)
		}
	}
	if len(quickReplies) > 4 {
		quickReplies = quickReplies[:4]
	}
	return quickReplies, nil
}
