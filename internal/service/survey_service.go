package service

import (
	"skinview-go/internal/baumann"
	"skinview-go/internal/model"
	"skinview-go/internal/repository"
	"skinview-go/pkg/log"
)

// SurveyService 接口定义了问卷结果的业务操作。
type SurveyService interface {
	// Submit 按四轴得分计算皮肤类型编码后落库，同一用户重复提交则覆盖。
	Submit(userKey string, skinDO, skinSR, skinPN, skinWT int, combinationType string) (*model.Survey, error)
	GetResult(userKey string) (*model.Survey, error)
}

type surveyService struct {
	surveyRepo repository.SurveyRepository
}

// NewSurveyService 创建一个新的 SurveyService 实例。
func NewSurveyService(surveyRepo repository.SurveyRepository) SurveyService {
	return &surveyService{surveyRepo: surveyRepo}
}

func (s *surveyService) Submit(userKey string, skinDO, skinSR, skinPN, skinWT int, combinationType string) (*model.Survey, error) {
	skinType := baumann.Classify(skinDO, skinSR, skinPN, skinWT)
	log.Infof("[SurveyService] [%s] 问卷判定结果: %s", userKey, skinType)

	survey := &model.Survey{
		UserKey:         userKey,
		SkinDO:          skinDO,
		SkinSR:          skinSR,
		SkinPN:          skinPN,
		SkinWT:          skinWT,
		SkinType:        skinType,
		CombinationType: combinationType,
	}
	if err := s.surveyRepo.Upsert(survey); err != nil {
		return nil, err
	}
	return survey, nil
}

// GetResult 返回用户的问卷结果，没有记录时返回 (nil, nil)。
func (s *surveyService) GetResult(userKey string) (*model.Survey, error) {
	return s.surveyRepo.FindByUserKey(userKey)
}
