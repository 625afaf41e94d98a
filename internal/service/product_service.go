package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"skinview-go/internal/model"
	"skinview-go/internal/repository"
	"skinview-go/pkg/kafka"
	"skinview-go/pkg/log"
	"skinview-go/pkg/storage"
	"skinview-go/pkg/tasks"
)

// presignedURLExpiry 是商品图片签名链接的有效期。
const presignedURLExpiry = 24 * time.Hour

// ProductDTO 是返回给前端的商品结构，图片为临时签名链接。
type ProductDTO struct {
	ProductName string `json:"product_name"`
	Description string `json:"product_description"`
	Image       string `json:"product_image,omitempty"`
	Link        string `json:"product_link,omitempty"`
	Type        string `json:"product_type"`
	Brand       string `json:"product_brand,omitempty"`
}

// AdvancedRecommendation 是高级推荐接口的返回结构。
type AdvancedRecommendation struct {
	UserID          string       `json:"user_id"`
	Recommendations []ProductDTO `json:"recommendations"`
}

// ProductService 接口定义了商品目录和高级推荐操作。
type ProductService interface {
	GetProductsByType(skinType string) ([]ProductDTO, error)
	SearchProducts(keyword string) ([]ProductDTO, error)
	// GetAdvancedRecommendations 基于完整画像和皮肤类型说明构建检索提示，
	// 执行 k=7 的向量检索并返回候选商品。
	GetAdvancedRecommendations(ctx context.Context, userKey string) (*AdvancedRecommendation, error)
	// EnqueueIndexing 将一个商品的向量化任务投递到 Kafka。
	EnqueueIndexing(productKey string) error
}

type productService struct {
	productRepo    repository.ProductRepository
	userRepo       repository.UserRepository
	profileService ProfileService
	searchService  SearchService
	bucketName     string
}

// NewProductService 创建一个新的 ProductService 实例。
func NewProductService(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	profileService ProfileService,
	searchService SearchService,
	bucketName string,
) ProductService {
	return &productService{
		productRepo:    productRepo,
		userRepo:       userRepo,
		profileService: profileService,
		searchService:  searchService,
		bucketName:     bucketName,
	}
}

func (s *productService) GetProductsByType(skinType string) ([]ProductDTO, error) {
	products, err := s.productRepo.FindByType(skinType)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(products), nil
}

func (s *productService) SearchProducts(keyword string) ([]ProductDTO, error) {
	products, err := s.productRepo.SearchByName(keyword)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(products), nil
}

func (s *productService) GetAdvancedRecommendations(ctx context.Context, userKey string) (*AdvancedRecommendation, error) {
	user, err := s.userRepo.FindByKey(userKey)
	if err != nil {
		return nil, fmt.Errorf("invalid user key: %w", err)
	}

	profile, err := s.profileService.Aggregate(userKey)
	if err != nil {
		return nil, err
	}

	// 第一阶段检索：取出皮肤类型的说明文本
	skinType := profile.SurveyData.SkinType
	skinDetails := ""
	if skinType != "" {
		infos, err := s.productRepo.FindBaumannInfoByType(skinType)
		if err != nil {
			return nil, err
		}
		lines := make([]string, 0, len(infos))
		for _, info := range infos {
			lines = append(lines, fmt.Sprintf("[%s]\n%s", info.Category, info.Content))
		}
		skinDetails = strings.Join(lines, "\n")
		log.Infof("[ProductService] %s 类型命中 %d 条皮肤说明", skinType, len(infos))
	}

	ragPrompt := buildAdvancedPrompt(profile, skinDetails)
	hits, err := s.searchService.RetrieveByText(ctx, ragPrompt, 7)
	if err != nil {
		return nil, err
	}

	recommendations := make([]ProductDTO, 0, len(hits))
	for _, hit := range hits {
		product, err := s.productRepo.FindByKey(hit.ProductKey)
		if err != nil {
			log.Warnf("[ProductService] 命中商品 %s 在目录中不存在, 跳过", hit.ProductKey)
			continue
		}
		recommendations = append(recommendations, s.toDTO(*product))
	}

	return &AdvancedRecommendation{
		UserID:          user.UserID,
		Recommendations: recommendations,
	}, nil
}

// EnqueueIndexing 投递商品向量化任务。
func (s *productService) EnqueueIndexing(productKey string) error {
	if _, err := s.productRepo.FindByKey(productKey); err != nil {
		return err
	}
	return kafka.ProduceIndexTask(tasks.ProductIndexTask{ProductKey: productKey})
}

func (s *productService) toDTOs(products []model.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, s.toDTO(p))
	}
	return dtos
}

// toDTO 把目录记录转成前端结构，图片对象换成临时签名链接。
// 签名失败只记日志，不影响整个列表。
func (s *productService) toDTO(p model.Product) ProductDTO {
	dto := ProductDTO{
		ProductName: p.Name,
		Description: p.Description,
		Link:        p.Link,
		Type:        p.Type,
		Brand:       p.Brand,
	}
	if p.Image != "" {
		url, err := storage.GetPresignedURL(s.bucketName, p.Image, presignedURLExpiry)
		if err != nil {
			log.Warnf("[ProductService] 生成商品 %s 图片签名链接失败: %v", p.ProductKey, err)
		} else {
			dto.Image = url
		}
	}
	return dto
}

// buildAdvancedPrompt 组装高级推荐的嵌入输入，年龄归并到年代段。
func buildAdvancedPrompt(profile *model.UserProfile, skinDetails string) string {
	ageGroup := profile.Age
	if age, err := strconv.Atoi(profile.Age); err == nil {
		ageGroup = fmt.Sprintf("%d대", age/10*10)
	}
	gender := profile.UserProfile.Gender
	if gender == "" {
		gender = unknownValue
	}
	combination := "낮음"
	if profile.SurveyData.CombinationType != "" {
		combination = "높음"
	}

	return fmt.Sprintf(`
[사용자 기본 정보]
- 나이: %s
- 성별: %s

[사용자 피부 분석 데이터]
- 최종 피부 타입: %s
- 상세 분석: %s, %s, %s, %s
- 복합성 피부 가능성: %s
- 최근 촬영 사진 분석: 안면부 여드름 %d개, 홍조 면적 %.1f%%

[사용자 피부 타입(%s) 상세 정보]
%s

[사용자의 현재 질문]
현재 내 피부 상태에 가장 잘 맞는 스킨케어 제품을 추천해줘.
`,
		ageGroup,
		gender,
		profile.SurveyData.SkinType,
		profile.DODesc, profile.SRDesc, profile.PNDesc, profile.WTDesc,
		combination,
		profile.SkinAnalysis.AcneCount,
		profile.SkinAnalysis.RednessAreaRatio,
		profile.SurveyData.SkinType,
		skinDetails,
	)
}
