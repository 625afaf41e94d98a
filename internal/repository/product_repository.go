package repository

import (
	"gorm.io/gorm"

	"skinview-go/internal/model"
)

// ProductRepository 定义了商品目录和皮肤类型说明的读取操作。
type ProductRepository interface {
	FindByKey(productKey string) (*model.Product, error)
	FindByType(skinType string) ([]model.Product, error)
	SearchByName(keyword string) ([]model.Product, error)
	FindAll() ([]model.Product, error)
	FindBaumannInfoByType(skinType string) ([]model.BaumannInfo, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建一个新的 ProductRepository 实例。
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// FindByKey 根据主键查找单个商品。
func (r *productRepository) FindByKey(productKey string) (*model.Product, error) {
	var product model.Product
	err := r.db.Where("product_key = ?", productKey).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByType 查找指定皮肤类型的所有商品。
func (r *productRepository) FindByType(skinType string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("product_type = ?", skinType).Find(&products).Error
	return products, err
}

// SearchByName 根据名称关键字模糊查找商品。
func (r *productRepository) SearchByName(keyword string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("product_name LIKE ?", "%"+keyword+"%").Find(&products).Error
	return products, err
}

// FindAll 检索所有商品记录。
func (r *productRepository) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Find(&products).Error
	return products, err
}

// FindBaumannInfoByType 查找指定皮肤类型的全部分类说明条目。
func (r *productRepository) FindBaumannInfoByType(skinType string) ([]model.BaumannInfo, error) {
	var infos []model.BaumannInfo
	err := r.db.Where("baumann_info_skin_type = ?", skinType).Find(&infos).Error
	return infos, err
}
