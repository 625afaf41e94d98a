package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skinview-go/internal/service"
	"skinview-go/pkg/log"
)

// ProductHandler 负责处理商品目录和推荐相关的 API 请求。
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler 创建一个新的 ProductHandler 实例。
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductTypeRequest 定义了按皮肤类型查询商品的请求体结构。
type ProductTypeRequest struct {
	ProductType string `json:"product_type" binding:"required"`
}

// GetProducts 返回指定皮肤类型的商品列表。
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var req ProductTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_type이 필요합니다."})
		return
	}

	products, err := h.productService.GetProductsByType(req.ProductType)
	if err != nil {
		log.Errorf("GetProducts: 查询失败, type: %s, error: %v", req.ProductType, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Search 根据名称关键字模糊查找商品。
func (h *ProductHandler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keyword가 필요합니다."})
		return
	}

	products, err := h.productService.SearchProducts(keyword)
	if err != nil {
		log.Errorf("Search: 查询失败, keyword: %s, error: %v", keyword, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// AdvancedRecommendations 基于完整画像执行 k=7 的向量推荐。
func (h *ProductHandler) AdvancedRecommendations(c *gin.Context) {
	var req UserKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_key가 필요합니다."})
		return
	}

	result, err := h.productService.GetAdvancedRecommendations(c.Request.Context(), req.UserKey)
	if err != nil {
		log.Errorf("AdvancedRecommendations: 推荐失败, userKey: %s, error: %v", req.UserKey, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// IndexProductRequest 定义了商品向量化投递的请求体结构。
type IndexProductRequest struct {
	ProductKey string `json:"product_key" binding:"required"`
}

// Index 将一个商品的向量化任务投递到 Kafka。
func (h *ProductHandler) Index(c *gin.Context) {
	var req IndexProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_key가 필요합니다."})
		return
	}

	if err := h.productService.EnqueueIndexing(req.ProductKey); err != nil {
		log.Errorf("Index: 投递失败, productKey: %s, error: %v", req.ProductKey, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "向量化任务已投递"})
}
