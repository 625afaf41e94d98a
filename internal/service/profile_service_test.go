package service

import (
	"errors"
	"testing"
	"time"

	"skinview-go/internal/repository"
)

type fakeProfileRepo struct {
	row *repository.ProfileRow
	err error
}

func (f *fakeProfileRepo) FindUserSkinData(userKey string) (*repository.ProfileRow, error) {
	return f.row, f.err
}

func newTestProfileService(row *repository.ProfileRow, err error) *profileService {
	return &profileService{
		profileRepo: &fakeProfileRepo{row: row, err: err},
		now: func() time.Time {
			return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
		},
	}
}

func TestAggregateMissingUserReturnsEmptyProfile(t *testing.T) {
	svc := newTestProfileService(nil, nil)

	profile, err := svc.Aggregate("missing")
	if err != nil {
		t.Fatalf("missing user must not error, got %v", err)
	}
	if profile.Age != unknownValue {
		t.Errorf("age = %q, want %q", profile.Age, unknownValue)
	}
	if profile.UserProfile.Gender != "" || profile.SurveyData.SkinType != "" {
		t.Errorf("expected zero-value fields, got %+v", profile)
	}
	// 描述文本始终填充，缺失得分落到各轴的兜底区间
	if profile.DODesc == "" || profile.SRDesc == "" || profile.PNDesc == "" || profile.WTDesc == "" {
		t.Errorf("descriptors must always be populated: %+v", profile)
	}
}

func TestAggregateFullRow(t *testing.T) {
	birth := time.Date(2000, 3, 10, 0, 0, 0, 0, time.UTC)
	gender := "여성"
	skinDO, skinSR, skinPN, skinWT := 35, 28, 40, 30
	skinType := "ORPT"
	combination := "OD"
	acneCount := 5
	acneArea, rednessArea := 2.5, 1.3

	svc := newTestProfileService(&repository.ProfileRow{
		UserBirth:       &birth,
		UserGender:      &gender,
		SkinDO:          &skinDO,
		SkinSR:          &skinSR,
		SkinPN:          &skinPN,
		SkinWT:          &skinWT,
		SkinType:        &skinType,
		CombinationType: &combination,
		AcneCount:       &acneCount,
		AcneArea:        &acneArea,
		RednessArea:     &rednessArea,
	}, nil)

	profile, err := svc.Aggregate("user-1")
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if profile.Age != "25" {
		t.Errorf("age = %q, want 25 (birthday already passed in fixed now)", profile.Age)
	}
	if profile.UserProfile.Gender != "여성" {
		t.Errorf("gender = %q", profile.UserProfile.Gender)
	}
	if profile.SurveyData.SkinType != "ORPT" || profile.SurveyData.CombinationType != "OD" {
		t.Errorf("survey data not copied: %+v", profile.SurveyData)
	}
	if profile.SkinAnalysis.AcneCount != 5 || profile.SkinAnalysis.AcneAreaRatio != 2.5 {
		t.Errorf("analysis data not copied: %+v", profile.SkinAnalysis)
	}
	// 35 落在 D/O 轴的"매우 유분" 区间
	if profile.DODesc != "매우 유분이 많은 피부 (악지성)" {
		t.Errorf("DO descriptor = %q", profile.DODesc)
	}
	// 28 落在 S/R 轴的"약간 저항성" 区间
	if profile.SRDesc != "약간 저항성이 있는 피부" {
		t.Errorf("SR descriptor = %q", profile.SRDesc)
	}
}

func TestAggregateBirthdayNotYetPassed(t *testing.T) {
	birth := time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC)
	svc := newTestProfileService(&repository.ProfileRow{UserBirth: &birth}, nil)

	profile, err := svc.Aggregate("user-1")
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if profile.Age != "24" {
		t.Errorf("age = %q, want 24 (birthday later this year)", profile.Age)
	}
}

func TestAggregatePropagatesRepositoryError(t *testing.T) {
	svc := newTestProfileService(nil, errors.New("db down"))

	if _, err := svc.Aggregate("user-1"); err == nil {
		t.Fatal("expected repository error to propagate")
	}
}
