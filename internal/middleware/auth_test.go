package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"skinview-go/internal/model"
	"skinview-go/internal/service"
	"skinview-go/pkg/database"
	"skinview-go/pkg/token"
)

// fakeUserService 只实现认证中间件会用到的 GetUserInfo，其余方法不会被调用。
type fakeUserService struct {
	user *model.User
}

func (f *fakeUserService) Register(input service.RegisterInput) (*model.User, error) {
	return nil, nil
}

func (f *fakeUserService) Login(userID, password string) (*model.User, string, string, bool, error) {
	return nil, "", "", false, nil
}

func (f *fakeUserService) GetUserInfo(userKey string) (*model.User, error) {
	return f.user, nil
}

func (f *fakeUserService) CheckUserIDAvailable(userID string) (bool, error) { return true, nil }
func (f *fakeUserService) CheckEmailAvailable(email string) (bool, error)  { return true, nil }
func (f *fakeUserService) CheckPhoneAvailable(phone string) (bool, error)  { return true, nil }

func (f *fakeUserService) UpdatePassword(userID, currentPassword, newPassword string) error {
	return nil
}

func (f *fakeUserService) UpdateAddress(userID, address string) error { return nil }

func (f *fakeUserService) RefreshToken(refreshTokenString string) (string, string, error) {
	return "", "", nil
}

func (f *fakeUserService) Logout(tokenString string) error { return nil }

func newAuthTestRouter(t *testing.T, jwtManager *token.JWTManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userService := &fakeUserService{user: &model.User{UserKey: "key-1", UserID: "user"}}
	r := gin.New()
	r.GET("/protected", AuthMiddleware(jwtManager, userService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	mr := miniredis.RunT(t)
	database.RDB = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	jwtManager := token.NewJWTManager("test-secret", 1, 1)
	tokenString, err := jwtManager.GenerateToken("key-1", "user")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	r := newAuthTestRouter(t, jwtManager)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAuthMiddlewareRejectsBlacklistedToken(t *testing.T) {
	mr := miniredis.RunT(t)
	database.RDB = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	jwtManager := token.NewJWTManager("test-secret", 1, 1)
	tokenString, err := jwtManager.GenerateToken("key-1", "user")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	// 模拟登出：签名依然有效，但 token 已进入黑名单
	if err := database.RDB.Set(context.Background(), "blacklist:"+tokenString, "1", time.Hour).Err(); err != nil {
		t.Fatalf("seed blacklist: %v", err)
	}

	r := newAuthTestRouter(t, jwtManager)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
