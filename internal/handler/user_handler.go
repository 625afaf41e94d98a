package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"skinview-go/internal/model"
	"skinview-go/internal/service"
	"skinview-go/pkg/log"
)

// currentUser 从上下文取出认证中间件注入的用户对象。
func currentUser(c *gin.Context) *model.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// UserHandler 负责处理所有与用户账号相关的 API 请求。
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler 创建一个新的 UserHandler 实例。
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest 定义了用户注册 API 的请求体结构。
type RegisterRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Password string `json:"user_password" binding:"required"`
	UserName string `json:"user_name"`
	Phone    string `json:"user_phone_number"`
	Email    string `json:"user_email"`
	Birth    string `json:"user_birth"` // "YYYY-MM-DD"
	Gender   string `json:"user_gender"`
	Address  string `json:"user_address"`
}

// Register 处理用户注册请求。
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Register: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "无效的请求负载：账号和密码不能为空",
		})
		return
	}

	var birth *time.Time
	if req.Birth != "" {
		parsed, err := time.Parse("2006-01-02", req.Birth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的出生日期格式"})
			return
		}
		birth = &parsed
	}

	user, err := h.userService.Register(service.RegisterInput{
		UserID:   req.UserID,
		Password: req.Password,
		UserName: req.UserName,
		Phone:    req.Phone,
		Email:    req.Email,
		Birth:    birth,
		Gender:   req.Gender,
		Address:  req.Address,
	})
	if err != nil {
		log.Warnf("Register: User registration failed for '%s', error: %v", req.UserID, err)
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	log.Infof("User '%s' registered successfully", user.UserID)
	c.JSON(http.StatusOK, gin.H{
		"code":     http.StatusOK,
		"message":  "User registered successfully",
		"user_key": user.UserKey,
	})
}

// LoginRequest 定义了用户登录 API 的请求体结构。
type LoginRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Password string `json:"user_password" binding:"required"`
}

// Login 处理用户登录请求，签发一对 token。
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	user, accessToken, refreshToken, hasSurvey, err := h.userService.Login(req.UserID, req.Password)
	if err != nil {
		log.Warnf("Login: 登录失败, userID: %s, error: %v", req.UserID, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "账号或密码错误"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":         http.StatusOK,
		"user_key":     user.UserKey,
		"user_name":    user.UserName,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"hasSurvey":    hasSurvey,
	})
}

// CheckIDRequest 定义了账号查重 API 的请求体结构。
type CheckIDRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// CheckID 检查登录账号是否可用。
func (h *UserHandler) CheckID(c *gin.Context) {
	var req CheckIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	available, err := h.userService.CheckUserIDAvailable(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

// CheckEmailRequest 定义了邮箱查重 API 的请求体结构。
type CheckEmailRequest struct {
	Email string `json:"user_email" binding:"required"`
}

// CheckEmail 检查邮箱是否可用。
func (h *UserHandler) CheckEmail(c *gin.Context) {
	var req CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_email이 필요합니다."})
		return
	}

	available, err := h.userService.CheckEmailAvailable(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

// CheckPhoneRequest 定义了手机号查重 API 的请求体结构。
type CheckPhoneRequest struct {
	Phone string `json:"phone_number" binding:"required"`
}

// CheckPhone 校验手机号格式并检查是否可用。
func (h *UserHandler) CheckPhone(c *gin.Context) {
	var req CheckPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone_number가 필요합니다."})
		return
	}

	available, err := h.userService.CheckPhoneAvailable(req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPhoneNumber) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

// UpdateAddressRequest 定义了地址更新 API 的请求体结构。
type UpdateAddressRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Address string `json:"user_address" binding:"required"`
}

// UpdateAddress 更新用户的地址信息。
func (h *UserHandler) UpdateAddress(c *gin.Context) {
	var req UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	if err := h.userService.UpdateAddress(req.UserID, req.Address); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Errorf("UpdateAddress: 更新失败, userID: %s, error: %v", req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "주소 정보가 성공적으로 업데이트되었습니다."})
}

// GetUserInfo 返回当前认证用户的信息。
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": user})
}

// UpdatePasswordRequest 定义了修改密码 API 的请求体结构。
type UpdatePasswordRequest struct {
	UserID          string `json:"user_id" binding:"required"`
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// UpdatePassword 处理修改密码请求。
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	if err := h.userService.UpdatePassword(req.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		log.Warnf("UpdatePassword: 修改失败, userID: %s, error: %v", req.UserID, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "账号或密码错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "密码修改成功"})
}

// RefreshTokenRequest 定义了刷新 token API 的请求体结构。
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshToken 用有效的 refresh token 换取新的一对 token。
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	accessToken, refreshToken, err := h.userService.RefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// Logout 将当前 token 加入黑名单。
func (h *UserHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求未包含授权头"})
		return
	}

	if err := h.userService.Logout(tokenString); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "无效或已过期的 token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "登出成功"})
}
