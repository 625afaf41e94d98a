// Package service 提供了搜索相关的业务逻辑。
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"skinview-go/internal/model"
	"skinview-go/pkg/embedding"
	"skinview-go/pkg/log"

	"github.com/elastic/go-elasticsearch/v8"
)

// SearchService 接口定义了商品向量检索操作。
type SearchService interface {
	// Retrieve 将画像和查询拼成嵌入输入，执行 kNN 余弦检索，按相似度降序返回 k 条候选。
	Retrieve(ctx context.Context, profile *model.UserProfile, query string, k int) ([]model.ProductSearchResult, error)
	// RetrieveByText 直接用调用方给定的嵌入输入执行检索。
	RetrieveByText(ctx context.Context, embeddingInput string, k int) ([]model.ProductSearchResult, error)
}

type searchService struct {
	embeddingClient embedding.Client
	esClient        *elasticsearch.Client
	indexName       string
}

// NewSearchService 创建一个新的 SearchService 实例。
func NewSearchService(embeddingClient embedding.Client, esClient *elasticsearch.Client, indexName string) SearchService {
	return &searchService{
		embeddingClient: embeddingClient,
		esClient:        esClient,
		indexName:       indexName,
	}
}

// Retrieve 执行画像加查询的向量检索。嵌入或搜索失败都原样上抛，不做部分兜底。
func (s *searchService) Retrieve(ctx context.Context, profile *model.UserProfile, query string, k int) ([]model.ProductSearchResult, error) {
	return s.RetrieveByText(ctx, buildEmbeddingInput(profile, query), k)
}

// RetrieveByText 执行 kNN 检索并解析命中结果。
func (s *searchService) RetrieveByText(ctx context.Context, embeddingInput string, k int) ([]model.ProductSearchResult, error) {
	queryVector, err := s.embeddingClient.CreateEmbedding(ctx, embeddingInput)
	if err != nil {
		return nil, fmt.Errorf("failed to create query embedding: %w", err)
	}

	var buf bytes.Buffer
	esQuery := map[string]interface{}{
		"knn": map[string]interface{}{
			"field":          "vector",
			"query_vector":   queryVector,
			"k":              k,
			"num_candidates": k * 10,
		},
		"size": k,
	}
	if err := json.NewEncoder(&buf).Encode(esQuery); err != nil {
		return nil, fmt.Errorf("failed to encode es query: %w", err)
	}

	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(ctx),
		s.esClient.Search.WithIndex(s.indexName),
		s.esClient.Search.WithBody(&buf),
	)
	if err != nil {
		log.Errorf("[SearchService] 向 Elasticsearch 发送搜索请求失败: %v", err)
		return nil, fmt.Errorf("elasticsearch search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		bodyBytes, _ := io.ReadAll(res.Body)
		log.Errorf("[SearchService] Elasticsearch 返回错误, status: %s, body: %s", res.Status(), string(bodyBytes))
		return nil, fmt.Errorf("elasticsearch returned an error: %s", res.Status())
	}

	var esResponse struct {
		Hits struct {
			Hits []struct {
				Source model.ProductDocument `json:"_source"`
				Score  float64               `json:"_score"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResponse); err != nil {
		return nil, fmt.Errorf("failed to decode es response: %w", err)
	}

	results := make([]model.ProductSearchResult, 0, len(esResponse.Hits.Hits))
	for _, hit := range esResponse.Hits.Hits {
		results = append(results, model.ProductSearchResult{
			ProductKey:  hit.Source.ProductKey,
			ProductName: hit.Source.ProductName,
			Description: hit.Source.Description,
			Ingredients: hit.Source.Ingredients,
			SkinType:    hit.Source.SkinType,
			Score:       hit.Score,
		})
	}

	log.Infof("[SearchService] 向量检索完成, 命中 %d 条候选商品", len(results))
	return results, nil
}

// buildEmbeddingInput 将用户画像与当前问题拼接为嵌入输入文本。
func buildEmbeddingInput(profile *model.UserProfile, query string) string {
	gender := profile.UserProfile.Gender
	if gender == "" {
		gender = unknownValue
	}
	skinType := profile.SurveyData.SkinType
	if skinType == "" {
		skinType = unknownValue
	}
	return fmt.Sprintf(`
[사용자 기본 정보]
- 나이: %s세
- 성별: %s

[사용자 피부 분석 데이터]
- 안면부 여드름 개수: %d개
- 안면부 여드름 면적 비율: %.1f%%
- 안면부 홍조 면적 비율: %.1f%%

[사용자 설문 조사 데이터 (바우만 피부 타입 테스트)]
- D/O 타입: %s
- 최종 피부 타입: %s

[사용자의 질문]
%s
`,
		profile.Age,
		gender,
		profile.SkinAnalysis.AcneCount,
		profile.SkinAnalysis.AcneAreaRatio,
		profile.SkinAnalysis.RednessAreaRatio,
		profile.DODesc,
		skinType,
		query,
	)
}
