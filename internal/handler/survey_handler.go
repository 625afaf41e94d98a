package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skinview-go/internal/service"
	"skinview-go/pkg/log"
)

// SurveyHandler 负责处理问卷相关的 API 请求。
type SurveyHandler struct {
	surveyService service.SurveyService
}

// NewSurveyHandler 创建一个新的 SurveyHandler 实例。
func NewSurveyHandler(surveyService service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

// SubmitSurveyRequest 定义了提交问卷 API 的请求体结构。
// 得分用指针字段区分"缺失"和合法的 0 分。
type SubmitSurveyRequest struct {
	UserKey         string `json:"user_key" binding:"required"`
	SkinDO          *int   `json:"skin_do" binding:"required"`
	SkinSR          *int   `json:"skin_sr" binding:"required"`
	SkinPN          *int   `json:"skin_pn" binding:"required"`
	SkinWT          *int   `json:"skin_wt" binding:"required"`
	CombinationType string `json:"skin_combination_type"`
}

// Submit 处理问卷提交：计算皮肤类型编码并落库。
func (h *SurveyHandler) Submit(c *gin.Context) {
	var req SubmitSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	survey, err := h.surveyService.Submit(req.UserKey, *req.SkinDO, *req.SkinSR, *req.SkinPN, *req.SkinWT, req.CombinationType)
	if err != nil {
		log.Errorf("Submit: 问卷保存失败, userKey: %s, error: %v", req.UserKey, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "설문조사 저장에 실패했습니다."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":    "설문조사 저장 성공",
		"skin_type": survey.SkinType,
	})
}

// GetResult 返回用户的问卷结果。
func (h *SurveyHandler) GetResult(c *gin.Context) {
	var req UserKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_key가 필요합니다."})
		return
	}

	survey, err := h.surveyService.GetResult(req.UserKey)
	if err != nil {
		log.Errorf("GetResult: 查询失败, userKey: %s, error: %v", req.UserKey, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "설문조사 조회에 실패했습니다."})
		return
	}
	if survey == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "설문조사 기록이 없습니다."})
		return
	}

	c.JSON(http.StatusOK, survey)
}
