package repository

import (
	"errors"

	"gorm.io/gorm"

	"skinview-go/internal/model"
)

// SurveyRepository 定义了问卷结果的持久化操作。
type SurveyRepository interface {
	FindByUserKey(userKey string) (*model.Survey, error)
	// Upsert 已有记录则更新，否则插入。
	Upsert(survey *model.Survey) error
}

type surveyRepository struct {
	db *gorm.DB
}

// NewSurveyRepository 创建一个新的 SurveyRepository 实例。
func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepository{db: db}
}

// FindByUserKey 根据用户主键查找问卷结果，不存在时返回 (nil, nil)。
func (r *surveyRepository) FindByUserKey(userKey string) (*model.Survey, error) {
	var survey model.Survey
	err := r.db.Where("survey_user_key = ?", userKey).First(&survey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

// Upsert 先查再写，保持每个用户只有一条问卷记录。
func (r *surveyRepository) Upsert(survey *model.Survey) error {
	existing, err := r.FindByUserKey(survey.UserKey)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(survey).Error
	}
	return r.db.Model(&model.Survey{}).Where("survey_user_key = ?", survey.UserKey).
		Updates(map[string]interface{}{
			"survey_skin_do":               survey.SkinDO,
			"survey_skin_sr":               survey.SkinSR,
			"survey_skin_pn":               survey.SkinPN,
			"survey_skin_wt":               survey.SkinWT,
			"survey_skin_type":             survey.SkinType,
			"survey_skin_combination_type": survey.CombinationType,
		}).Error
}
