// Package model 定义了与数据库表对应的 Go 结构体。
package model

// ProductDocument 代表存储在 Elasticsearch 中的商品向量文档结构。
type ProductDocument struct {
	ProductKey   string    `json:"product_key"`
	ProductName  string    `json:"product_name"`
	Description  string    `json:"description"`
	Ingredients  string    `json:"ingredients"`
	SkinType     string    `json:"skin_type"`
	Vector       []float32 `json:"vector"` // 商品文本的向量表示
	ModelVersion string    `json:"model_version"`
}

// ProductSearchResult 定义了向量检索返回的单个商品命中。
type ProductSearchResult struct {
	ProductKey  string  `json:"productKey"`
	ProductName string  `json:"productName"`
	Description string  `json:"description"`
	Ingredients string  `json:"ingredients"`
	SkinType    string  `json:"skinType"`
	Score       float64 `json:"score"`
}
