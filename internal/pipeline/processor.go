// Package pipeline 定义了商品向量化的核心流程。
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"skinview-go/internal/config"
	"skinview-go/internal/model"
	"skinview-go/internal/repository"
	"skinview-go/pkg/embedding"
	"skinview-go/pkg/es"
	"skinview-go/pkg/log"
	"skinview-go/pkg/tasks"
)

// Processor 封装了商品向量化的所有依赖和逻辑。
type Processor struct {
	embeddingClient embedding.Client
	esCfg           config.ElasticsearchConfig
	embeddingCfg    config.EmbeddingConfig
	productRepo     repository.ProductRepository
}

// NewProcessor 创建一个新的 Processor 实例。
func NewProcessor(
	embeddingClient embedding.Client,
	esCfg config.ElasticsearchConfig,
	embeddingCfg config.EmbeddingConfig,
	productRepo repository.ProductRepository,
) *Processor {
	return &Processor{
		embeddingClient: embeddingClient,
		esCfg:           esCfg,
		embeddingCfg:    embeddingCfg,
		productRepo:     productRepo,
	}
}

// Process 处理单个商品的向量化任务：读目录、拼嵌入文本、向量化、写入 ES。
// 以 ProductKey 作为文档 ID，重复处理同一商品是幂等的覆盖写。
func (p *Processor) Process(ctx context.Context, task tasks.ProductIndexTask) error {
	log.Infof("[Processor] 开始处理商品向量化, ProductKey: %s", task.ProductKey)

	product, err := p.productRepo.FindByKey(task.ProductKey)
	if err != nil {
		log.Errorf("[Processor] 读取商品失败, ProductKey: %s, Error: %v", task.ProductKey, err)
		return fmt.Errorf("读取商品失败: %w", err)
	}

	embeddingInput := buildProductText(product)
	vector, err := p.embeddingClient.CreateEmbedding(ctx, embeddingInput)
	if err != nil {
		log.Errorf("[Processor] 商品 %s 向量化失败, Error: %v", task.ProductKey, err)
		return fmt.Errorf("商品向量化失败: %w", err)
	}

	doc := model.ProductDocument{
		ProductKey:   product.ProductKey,
		ProductName:  product.Name,
		Description:  product.Description,
		Ingredients:  product.Ingredients,
		SkinType:     product.Type,
		Vector:       vector,
		ModelVersion: p.embeddingCfg.Model,
	}
	if err := es.IndexDocument(ctx, p.esCfg.IndexName, doc); err != nil {
		log.Errorf("[Processor] 索引商品 %s 到 Elasticsearch 失败, Error: %v", task.ProductKey, err)
		return fmt.Errorf("索引商品到 Elasticsearch 失败: %w", err)
	}

	log.Infof("[Processor] 商品向量化成功完成, ProductKey: %s", task.ProductKey)
	return nil
}

// buildProductText 将商品各字段拼成向量化输入文本。
func buildProductText(product *model.Product) string {
	parts := []string{
		fmt.Sprintf("제품명: %s", product.Name),
		fmt.Sprintf("카테고리: %s", product.Type),
		fmt.Sprintf("브랜드: %s", product.Brand),
		fmt.Sprintf("주요성분: %s", product.Ingredients),
		fmt.Sprintf("제품소개문구: %s", product.Description),
	}
	return strings.Join(parts, "\n")
}
