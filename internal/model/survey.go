package model

// Survey 对应于数据库中的 survey_tbl 表，存储鲍曼皮肤问卷的四轴得分与判定结果。
type Survey struct {
	UserKey         string `gorm:"primaryKey;type:varchar(36);column:survey_user_key" json:"userKey"`
	SkinDO          int    `gorm:"not null;column:survey_skin_do" json:"skinDo"`
	SkinSR          int    `gorm:"not null;column:survey_skin_sr" json:"skinSr"`
	SkinPN          int    `gorm:"not null;column:survey_skin_pn" json:"skinPn"`
	SkinWT          int    `gorm:"not null;column:survey_skin_wt" json:"skinWt"`
	SkinType        string `gorm:"type:varchar(10);column:survey_skin_type" json:"skinType"`
	CombinationType string `gorm:"type:varchar(10);column:survey_skin_combination_type" json:"combinationType"`
}

func (Survey) TableName() string {
	return "survey_tbl"
}
