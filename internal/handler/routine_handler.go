package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skinview-go/internal/service"
	"skinview-go/pkg/log"
)

// RoutineHandler 负责处理已保存护肤例程的 API 请求。
type RoutineHandler struct {
	routineService service.RoutineService
}

// NewRoutineHandler 创建一个新的 RoutineHandler 实例。
func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

// List 返回用户的全部例程，按日期倒序。
func (h *RoutineHandler) List(c *gin.Context) {
	var req UserKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_key가 필요합니다."})
		return
	}

	routines, err := h.routineService.List(req.UserKey)
	if err != nil {
		log.Errorf("List: 查询失败, userKey: %s, error: %v", req.UserKey, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "루틴 조회에 실패했습니다."})
		return
	}
	c.JSON(http.StatusOK, routines)
}

// DeleteRoutineRequest 定义了删除例程 API 的请求体结构。
type DeleteRoutineRequest struct {
	PresetID uint   `json:"preset_id" binding:"required"`
	UserKey  string `json:"user_key" binding:"required"`
}

// Delete 删除用户的一条例程。
func (h *RoutineHandler) Delete(c *gin.Context) {
	var req DeleteRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	if err := h.routineService.Delete(req.PresetID, req.UserKey); err != nil {
		if errors.Is(err, service.ErrRoutineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "해당 루틴을 찾을 수 없습니다."})
			return
		}
		log.Errorf("Delete: 删除失败, presetID: %d, error: %v", req.PresetID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "루틴 삭제에 실패했습니다."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "루틴이 성공적으로 삭제되었습니다."})
}
