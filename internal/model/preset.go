package model

import "time"

// Preset 对应于数据库中的 preset_tbl 表，存储用户保存的护肤例程。
type Preset struct {
	PresetID    uint      `gorm:"primaryKey;autoIncrement;column:preset_id" json:"presetId"`
	UserKey     string    `gorm:"type:varchar(36);index;not null;column:preset_user_key" json:"userKey"`
	Concerns    string    `gorm:"type:varchar(200);column:preset_concerns" json:"concerns"`
	ProductName string    `gorm:"type:varchar(200);column:preset_product_name" json:"productName"`
	UsageGuide  string    `gorm:"type:text;column:preset_usage_guide" json:"usageGuide"`
	Date        time.Time `gorm:"type:date;column:preset_date" json:"date"`
}

func (Preset) TableName() string {
	return "preset_tbl"
}
