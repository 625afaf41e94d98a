package service

import (
	"errors"

	"skinview-go/internal/model"
	"skinview-go/internal/repository"
)

// ErrRoutineNotFound 表示待删除的例程不存在或不属于该用户。
var ErrRoutineNotFound = errors.New("routine not found")

// RoutineDTO 是返回给前端的例程结构，日期按 "YYYY-MM-DD" 输出。
type RoutineDTO struct {
	PresetID    uint            `json:"preset_id"`
	ProductName string          `json:"preset_product_name"`
	UsageGuide  string          `json:"preset_usage_guide"`
	Concerns    string          `json:"preset_concerns"`
	Date        model.LocalDate `json:"preset_date"`
}

// RoutineService 接口定义了已保存护肤例程的业务操作。
type RoutineService interface {
	List(userKey string) ([]RoutineDTO, error)
	Delete(presetID uint, userKey string) error
}

type routineService struct {
	presetRepo repository.PresetRepository
}

// NewRoutineService 创建一个新的 RoutineService 实例。
func NewRoutineService(presetRepo repository.PresetRepository) RoutineService {
	return &routineService{presetRepo: presetRepo}
}

// List 按日期倒序返回用户的全部例程。
func (s *routineService) List(userKey string) ([]RoutineDTO, error) {
	presets, err := s.presetRepo.FindByUserKey(userKey)
	if err != nil {
		return nil, err
	}

	routines := make([]RoutineDTO, 0, len(presets))
	for _, p := range presets {
		routines = append(routines, RoutineDTO{
			PresetID:    p.PresetID,
			ProductName: p.ProductName,
			UsageGuide:  p.UsageGuide,
			Concerns:    p.Concerns,
			Date:        model.LocalDate(p.Date),
		})
	}
	return routines, nil
}

// Delete 删除用户的一条例程，没有命中任何行时返回 ErrRoutineNotFound。
func (s *routineService) Delete(presetID uint, userKey string) error {
	affected, err := s.presetRepo.Delete(presetID, userKey)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRoutineNotFound
	}
	return nil
}
