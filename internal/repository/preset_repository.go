package repository

import (
	"gorm.io/gorm"

	"skinview-go/internal/model"
)

// PresetRepository 定义了护肤例程记录的持久化操作。
type PresetRepository interface {
	Create(preset *model.Preset) error
	FindByUserKey(userKey string) ([]model.Preset, error)
	// Delete 删除指定用户的一条例程，返回删除的行数。
	Delete(presetID uint, userKey string) (int64, error)
}

type presetRepository struct {
	db *gorm.DB
}

// NewPresetRepository 创建一个新的 PresetRepository 实例。
func NewPresetRepository(db *gorm.DB) PresetRepository {
	return &presetRepository{db: db}
}

// Create 插入一条新的例程记录。
func (r *presetRepository) Create(preset *model.Preset) error {
	return r.db.Create(preset).Error
}

// FindByUserKey 按日期倒序返回用户的全部例程。
func (r *presetRepository) FindByUserKey(userKey string) ([]model.Preset, error) {
	var presets []model.Preset
	err := r.db.Where("preset_user_key = ?", userKey).
		Order("preset_date DESC").Find(&presets).Error
	return presets, err
}

// Delete 删除指定的例程记录，越权的 preset_id 不会命中任何行。
func (r *presetRepository) Delete(presetID uint, userKey string) (int64, error) {
	result := r.db.Where("preset_id = ? AND preset_user_key = ?", presetID, userKey).
		Delete(&model.Preset{})
	return result.RowsAffected, result.Error
}
