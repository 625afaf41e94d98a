package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skinview-go/internal/model"
	"skinview-go/internal/repository"
	"skinview-go/pkg/database"
	"skinview-go/pkg/hash"
	"skinview-go/pkg/token"
)

// ErrInvalidPhoneNumber 表示手机号不符合 010 开头的 11 位数字格式。
var ErrInvalidPhoneNumber = errors.New("전화번호 형식이 잘못되었습니다. 예: 01012345678")

// ErrUserNotFound 表示指定的用户不存在。
var ErrUserNotFound = errors.New("user not found")

// 手机号格式：010 后跟 8 位数字。
var phonePattern = regexp.MustCompile(`^010\d{8}$`)

// RegisterInput 是注册操作的输入字段集合。
type RegisterInput struct {
	UserID   string
	Password string
	UserName string
	Phone    string
	Email    string
	Birth    *time.Time
	Gender   string
	Address  string
}

// UserService 接口定义了所有与用户账号相关的业务操作。
type UserService interface {
	// Register 对账号、邮箱、手机号逐项查重后创建用户。
	Register(input RegisterInput) (*model.User, error)
	// Login 验证密码并签发 token，同时返回用户是否已提交过问卷。
	Login(userID, password string) (user *model.User, accessToken, refreshToken string, hasSurvey bool, err error)
	GetUserInfo(userKey string) (*model.User, error)
	CheckUserIDAvailable(userID string) (bool, error)
	CheckEmailAvailable(email string) (bool, error)
	// CheckPhoneAvailable 先做格式校验再查重，格式错误返回 ErrInvalidPhoneNumber。
	CheckPhoneAvailable(phone string) (bool, error)
	UpdatePassword(userID, currentPassword, newPassword string) error
	// UpdateAddress 更新地址，账号不存在时返回 ErrUserNotFound。
	UpdateAddress(userID, address string) error
	RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error)
	Logout(tokenString string) error
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo   repository.UserRepository
	surveyRepo repository.SurveyRepository
	jwtManager *token.JWTManager
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository, surveyRepo repository.SurveyRepository, jwtManager *token.JWTManager) UserService {
	return &userService{
		userRepo:   userRepo,
		surveyRepo: surveyRepo,
		jwtManager: jwtManager,
	}
}

// Register 处理用户注册：账号、邮箱、手机号逐项查重后生成用户主键并落库。
func (s *userService) Register(input RegisterInput) (*model.User, error) {
	if input.Phone != "" && !phonePattern.MatchString(input.Phone) {
		return nil, ErrInvalidPhoneNumber
	}

	if _, err := s.userRepo.FindByUserID(input.UserID); err == nil {
		return nil, errors.New("이미 사용된 아이디입니다.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if input.Email != "" {
		if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
			return nil, errors.New("이미 사용된 이메일입니다.")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if input.Phone != "" {
		if _, err := s.userRepo.FindByPhone(input.Phone); err == nil {
			return nil, errors.New("이미 사용된 전화번호입니다.")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	hashedPassword, err := hash.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	newUser := &model.User{
		UserKey:  uuid.NewString(),
		UserID:   input.UserID,
		Password: hashedPassword,
		UserName: input.UserName,
		Phone:    input.Phone,
		Email:    input.Email,
		Birth:    input.Birth,
		Gender:   input.Gender,
		Address:  input.Address,
	}
	if err := s.userRepo.Create(newUser); err != nil {
		return nil, err
	}
	return newUser, nil
}

// Login 验证账号密码并签发 access token 和 refresh token。
// 同时查询问卷记录，供前端决定登录后跳转到问卷页还是主页。
func (s *userService) Login(userID, password string) (*model.User, string, string, bool, error) {
	user, err := s.userRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", false, errors.New("invalid credentials")
		}
		return nil, "", "", false, err
	}

	if !hash.CheckPasswordHash(password, user.Password) {
		return nil, "", "", false, errors.New("invalid credentials")
	}

	accessToken, err := s.jwtManager.GenerateToken(user.UserKey, user.UserID)
	if err != nil {
		return nil, "", "", false, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.UserKey, user.UserID)
	if err != nil {
		return nil, "", "", false, err
	}

	survey, err := s.surveyRepo.FindByUserKey(user.UserKey)
	if err != nil {
		return nil, "", "", false, err
	}
	return user, accessToken, refreshToken, survey != nil, nil
}

// GetUserInfo 根据用户主键获取用户详细信息。
func (s *userService) GetUserInfo(userKey string) (*model.User, error) {
	return s.userRepo.FindByKey(userKey)
}

// CheckUserIDAvailable 检查登录账号是否可用。
func (s *userService) CheckUserIDAvailable(userID string) (bool, error) {
	_, err := s.userRepo.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// CheckEmailAvailable 检查邮箱是否可用。
func (s *userService) CheckEmailAvailable(email string) (bool, error) {
	_, err := s.userRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// CheckPhoneAvailable 校验手机号格式后检查是否可用。
func (s *userService) CheckPhoneAvailable(phone string) (bool, error) {
	if !phonePattern.MatchString(phone) {
		return false, ErrInvalidPhoneNumber
	}
	_, err := s.userRepo.FindByPhone(phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// UpdatePassword 验证当前密码后更新为新密码的哈希。
func (s *userService) UpdatePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByUserID(userID)
	if err != nil {
		return err
	}
	if !hash.CheckPasswordHash(currentPassword, user.Password) {
		return errors.New("invalid credentials")
	}

	hashedPassword, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(userID, hashedPassword)
}

// UpdateAddress 更新指定账号的地址。
func (s *userService) UpdateAddress(userID, address string) error {
	affected, err := s.userRepo.UpdateAddress(userID, address)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// RefreshToken 验证 refresh token 并签发新的一对 token。
func (s *userService) RefreshToken(refreshTokenString string) (string, string, error) {
	claims, err := s.jwtManager.VerifyToken(refreshTokenString)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	user, err := s.userRepo.FindByKey(claims.UserKey)
	if err != nil {
		return "", "", errors.New("user not found")
	}

	newAccessToken, err := s.jwtManager.GenerateToken(user.UserKey, user.UserID)
	if err != nil {
		return "", "", err
	}
	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(user.UserKey, user.UserID)
	if err != nil {
		return "", "", err
	}
	return newAccessToken, newRefreshToken, nil
}

// Logout 将 token 加入 Redis 黑名单，剩余有效期作为过期时间。
func (s *userService) Logout(tokenString string) error {
	claims, err := s.jwtManager.VerifyToken(tokenString)
	if err != nil {
		return err
	}
	expiration := time.Until(claims.ExpiresAt.Time)
	return database.RDB.Set(context.Background(), "blacklist:"+tokenString, "true", expiration).Err()
}
