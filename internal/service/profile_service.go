// Package service 实现了应用的业务逻辑层。
package service

import (
	"strconv"
	"time"

	"skinview-go/internal/baumann"
	"skinview-go/internal/model"
	"skinview-go/internal/repository"
	"skinview-go/pkg/log"
)

// unknownValue 是画像中缺失字段的统一兜底文本。
const unknownValue = "알 수 없음"

// ProfileService 接口定义了用户画像的聚合操作。
type ProfileService interface {
	// Aggregate 查询并组装用户画像。用户不存在时返回空画像而不是错误，
	// 下游不需要区分"用户未找到"。
	Aggregate(userKey string) (*model.UserProfile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

// NewProfileService 创建一个新的 ProfileService 实例。
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

// Aggregate 单次联表取出原始数据，再用分类器填充描述文本和年龄。
func (s *profileService) Aggregate(userKey string) (*model.UserProfile, error) {
	row, err := s.profileRepo.FindUserSkinData(userKey)
	if err != nil {
		return nil, err
	}
	if row == nil {
		log.Warnf("[ProfileService] 未找到用户 %s，返回空画像", userKey)
		return s.decorate(&model.UserProfile{}), nil
	}

	profile := &model.UserProfile{}
	if row.UserBirth != nil {
		profile.UserProfile.Birth = row.UserBirth.Format("2006-01-02")
	}
	if row.UserGender != nil {
		profile.UserProfile.Gender = *row.UserGender
	}
	if row.AcneCount != nil {
		profile.SkinAnalysis.AcneCount = *row.AcneCount
	}
	if row.AcneArea != nil {
		profile.SkinAnalysis.AcneAreaRatio = *row.AcneArea
	}
	if row.RednessArea != nil {
		profile.SkinAnalysis.RednessAreaRatio = *row.RednessArea
	}
	if row.SkinDO != nil {
		profile.SurveyData.DOScore = *row.SkinDO
	}
	if row.SkinSR != nil {
		profile.SurveyData.SRScore = *row.SkinSR
	}
	if row.SkinPN != nil {
		profile.SurveyData.PNScore = *row.SkinPN
	}
	if row.SkinWT != nil {
		profile.SurveyData.WTScore = *row.SkinWT
	}
	if row.SkinType != nil {
		profile.SurveyData.SkinType = *row.SkinType
	}
	if row.CombinationType != nil {
		profile.SurveyData.CombinationType = *row.CombinationType
	}

	return s.decorate(profile), nil
}

// decorate 填充描述文本和年龄，保证画像始终可直接用于提示词构建。
func (s *profileService) decorate(profile *model.UserProfile) *model.UserProfile {
	profile.DODesc = baumann.DescribeDO(profile.SurveyData.DOScore)
	profile.SRDesc = baumann.DescribeSR(profile.SurveyData.SRScore)
	profile.PNDesc = baumann.DescribePN(profile.SurveyData.PNScore)
	profile.WTDesc = baumann.DescribeWT(profile.SurveyData.WTScore)

	profile.Age = unknownValue
	if profile.UserProfile.Birth != "" {
		if birth, err := time.Parse("2006-01-02", profile.UserProfile.Birth); err == nil {
			if age, ok := baumann.Age(&birth, s.now()); ok {
				profile.Age = strconv.Itoa(age)
			}
		}
	}
	return profile
}
