package model

// Product 对应于数据库中的 products_tbl 表。
type Product struct {
	ProductKey  string `gorm:"primaryKey;type:varchar(36);column:product_key" json:"productKey"`
	Name        string `gorm:"type:varchar(200);not null;column:product_name" json:"productName"`
	Description string `gorm:"type:text;column:product_description" json:"productDescription"`
	Ingredients string `gorm:"type:text;column:product_ingredients" json:"productIngredients"`
	Image       string `gorm:"type:varchar(500);column:product_image" json:"productImage"`
	Link        string `gorm:"type:varchar(500);column:product_link" json:"productLink"`
	Type        string `gorm:"type:varchar(10);index;column:product_type" json:"productType"`
	Brand       string `gorm:"type:varchar(100);column:product_brand" json:"productBrand"`
}

func (Product) TableName() string {
	return "products_tbl"
}

// BaumannInfo 对应于数据库中的 baumann_info_tbl 表，存储每种皮肤类型的分类说明文本。
type BaumannInfo struct {
	InfoID   uint   `gorm:"primaryKey;autoIncrement;column:baumann_info_id" json:"infoId"`
	SkinType string `gorm:"type:varchar(10);index;column:baumann_info_skin_type" json:"skinType"`
	Category string `gorm:"type:varchar(50);column:baumann_info_category" json:"category"`
	Content  string `gorm:"type:text;column:baumann_info_content" json:"content"`
}

func (BaumannInfo) TableName() string {
	return "baumann_info_tbl"
}
