package repository

import (
	"time"

	"gorm.io/gorm"
)

// ProfileRow 是用户画像联表查询的原始结果，所有可能缺失的列都用指针表示。
type ProfileRow struct {
	UserBirth       *time.Time `gorm:"column:user_birth"`
	UserGender      *string    `gorm:"column:user_gender"`
	SkinDO          *int       `gorm:"column:survey_skin_do"`
	SkinSR          *int       `gorm:"column:survey_skin_sr"`
	SkinPN          *int       `gorm:"column:survey_skin_pn"`
	SkinWT          *int       `gorm:"column:survey_skin_wt"`
	SkinType        *string    `gorm:"column:survey_skin_type"`
	CombinationType *string    `gorm:"column:survey_skin_combination_type"`
	AcneCount       *int       `gorm:"column:analysis_photo_acne_count"`
	AcneArea        *float64   `gorm:"column:analysis_photo_acne_area"`
	RednessArea     *float64   `gorm:"column:analysis_photo_redness_area"`
}

// ProfileRepository 定义了用户画像原始数据的读取操作。
type ProfileRepository interface {
	// FindUserSkinData 以单条联表查询取出用户基础信息、问卷得分和最新分析记录。
	// 用户不存在时返回 (nil, nil)。
	FindUserSkinData(userKey string) (*ProfileRow, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建一个新的 ProfileRepository 实例。
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// FindUserSkinData 联表查询 user_tbl、survey_tbl 和最新一条 analysis_photo_tbl 记录。
func (r *profileRepository) FindUserSkinData(userKey string) (*ProfileRow, error) {
	sql := `
		SELECT
			u.user_birth,
			u.user_gender,
			s.survey_skin_do,
			s.survey_skin_sr,
			s.survey_skin_pn,
			s.survey_skin_wt,
			s.survey_skin_type,
			s.survey_skin_combination_type,
			a.analysis_photo_acne_count,
			a.analysis_photo_acne_area,
			a.analysis_photo_redness_area
		FROM user_tbl u
		LEFT JOIN survey_tbl s ON u.user_key = s.survey_user_key
		LEFT JOIN (
			SELECT * FROM analysis_photo_tbl
			WHERE analysis_user_key = ?
			ORDER BY analysis_photo_date DESC
			LIMIT 1
		) a ON u.user_key = a.analysis_user_key
		WHERE u.user_key = ?`

	var row ProfileRow
	result := r.db.Raw(sql, userKey, userKey).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}
