package model

import "time"

// AnalysisPhoto 对应于数据库中的 analysis_photo_tbl 表，存储单次照片分析的结果。
type AnalysisPhoto struct {
	AnalysisID  uint      `gorm:"primaryKey;autoIncrement;column:analysis_id" json:"analysisId"`
	UserKey     string    `gorm:"type:varchar(36);index;not null;column:analysis_user_key" json:"userKey"`
	AcneCount   int       `gorm:"column:analysis_photo_acne_count" json:"acneCount"`
	AcneArea    float64   `gorm:"column:analysis_photo_acne_area" json:"acneArea"`
	RednessArea float64   `gorm:"column:analysis_photo_redness_area" json:"rednessArea"`
	Date        time.Time `gorm:"index;column:analysis_photo_date" json:"date"`
}

func (AnalysisPhoto) TableName() string {
	return "analysis_photo_tbl"
}
