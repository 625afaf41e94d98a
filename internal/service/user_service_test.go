package service

import (
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	"skinview-go/internal/model"
	"skinview-go/internal/repository"
	"skinview-go/pkg/hash"
	"skinview-go/pkg/token"
)

// fakeUserRepo 用内存 map 模拟 user_tbl，按账号、邮箱、手机号三个维度索引。
type fakeUserRepo struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User
	byPhone map[string]*model.User
	created []*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
		byPhone: make(map[string]*model.User),
	}
}

func (f *fakeUserRepo) add(user *model.User) {
	f.byID[user.UserID] = user
	if user.Email != "" {
		f.byEmail[user.Email] = user
	}
	if user.Phone != "" {
		f.byPhone[user.Phone] = user
	}
}

func (f *fakeUserRepo) Create(user *model.User) error {
	f.created = append(f.created, user)
	f.add(user)
	return nil
}

func (f *fakeUserRepo) FindByUserID(userID string) (*model.User, error) {
	if u, ok := f.byID[userID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByKey(userKey string) (*model.User, error) {
	for _, u := range f.byID {
		if u.UserKey == userKey {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByPhone(phone string) (*model.User, error) {
	if u, ok := f.byPhone[phone]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdatePassword(userID, hashedPassword string) error {
	u, ok := f.byID[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = hashedPassword
	return nil
}

func (f *fakeUserRepo) UpdateAddress(userID, address string) (int64, error) {
	u, ok := f.byID[userID]
	if !ok {
		return 0, nil
	}
	u.Address = address
	return 1, nil
}

// fakeSurveyRepo 只回放是否存在问卷记录。
type fakeSurveyRepo struct {
	survey *model.Survey
}

func (f *fakeSurveyRepo) FindByUserKey(userKey string) (*model.Survey, error) {
	return f.survey, nil
}

func (f *fakeSurveyRepo) Upsert(survey *model.Survey) error {
	f.survey = survey
	return nil
}

func newTestUserService(userRepo repository.UserRepository, surveyRepo repository.SurveyRepository) UserService {
	return NewUserService(userRepo, surveyRepo, token.NewJWTManager("test-secret", 1, 1))
}

func TestRegisterDuplicateChecks(t *testing.T) {
	existing := &model.User{
		UserKey: "key-1",
		UserID:  "taken",
		Email:   "taken@example.com",
		Phone:   "01011112222",
	}

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr string
	}{
		{
			name:    "duplicate user id",
			input:   RegisterInput{UserID: "taken", Password: "pw"},
			wantErr: "아이디",
		},
		{
			name:    "duplicate email",
			input:   RegisterInput{UserID: "fresh", Password: "pw", Email: "taken@example.com"},
			wantErr: "이메일",
		},
		{
			name:    "duplicate phone",
			input:   RegisterInput{UserID: "fresh", Password: "pw", Phone: "01011112222"},
			wantErr: "전화번호",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			repo.add(existing)
			svc := newTestUserService(repo, &fakeSurveyRepo{})

			_, err := svc.Register(tt.input)
			if err == nil {
				t.Fatal("expected duplicate error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterRejectsMalformedPhone(t *testing.T) {
	tests := []string{"0101234567", "010123456789", "01112345678", "010-1234-5678"}
	for _, phone := range tests {
		svc := newTestUserService(newFakeUserRepo(), &fakeSurveyRepo{})
		_, err := svc.Register(RegisterInput{UserID: "user", Password: "pw", Phone: phone})
		if !errors.Is(err, ErrInvalidPhoneNumber) {
			t.Errorf("Register with phone %q: err = %v, want ErrInvalidPhoneNumber", phone, err)
		}
	}
}

func TestRegisterStoresAllFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &fakeSurveyRepo{})

	user, err := svc.Register(RegisterInput{
		UserID:   "newuser",
		Password: "secret",
		UserName: "홍길동",
		Phone:    "01012345678",
		Email:    "new@example.com",
		Gender:   "남성",
		Address:  "서울시 강남구",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.UserKey == "" {
		t.Error("user key was not generated")
	}
	if user.Password == "secret" {
		t.Error("password stored in plain text")
	}
	if !hash.CheckPasswordHash("secret", user.Password) {
		t.Error("stored hash does not verify against the original password")
	}
	if user.Phone != "01012345678" || user.Email != "new@example.com" || user.Address != "서울시 강남구" {
		t.Errorf("contact fields not stored: %+v", user)
	}
	if len(repo.created) != 1 {
		t.Errorf("expected 1 created row, got %d", len(repo.created))
	}
}

func TestLoginReturnsHasSurvey(t *testing.T) {
	hashed, err := hash.HashPassword("secret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{UserKey: "key-1", UserID: "user", Password: hashed}

	tests := []struct {
		name   string
		survey *model.Survey
		want   bool
	}{
		{"no survey yet", nil, false},
		{"survey exists", &model.Survey{UserKey: "key-1", SkinType: "ORPT"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			repo.add(user)
			svc := newTestUserService(repo, &fakeSurveyRepo{survey: tt.survey})

			got, accessToken, refreshToken, hasSurvey, err := svc.Login("user", "secret")
			if err != nil {
				t.Fatalf("Login returned error: %v", err)
			}
			if got.UserKey != "key-1" {
				t.Errorf("user key = %q", got.UserKey)
			}
			if accessToken == "" || refreshToken == "" {
				t.Error("tokens were not issued")
			}
			if hasSurvey != tt.want {
				t.Errorf("hasSurvey = %v, want %v", hasSurvey, tt.want)
			}
		})
	}
}

func TestCheckEmailAvailable(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{UserID: "u1", Email: "taken@example.com"})
	svc := newTestUserService(repo, &fakeSurveyRepo{})

	if available, err := svc.CheckEmailAvailable("taken@example.com"); err != nil || available {
		t.Errorf("taken email: available = %v, err = %v", available, err)
	}
	if available, err := svc.CheckEmailAvailable("free@example.com"); err != nil || !available {
		t.Errorf("free email: available = %v, err = %v", available, err)
	}
}

func TestCheckPhoneAvailable(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{UserID: "u1", Phone: "01011112222"})
	svc := newTestUserService(repo, &fakeSurveyRepo{})

	if _, err := svc.CheckPhoneAvailable("123"); !errors.Is(err, ErrInvalidPhoneNumber) {
		t.Errorf("malformed phone: err = %v, want ErrInvalidPhoneNumber", err)
	}
	if available, err := svc.CheckPhoneAvailable("01011112222"); err != nil || available {
		t.Errorf("taken phone: available = %v, err = %v", available, err)
	}
	if available, err := svc.CheckPhoneAvailable("01099998888"); err != nil || !available {
		t.Errorf("free phone: available = %v, err = %v", available, err)
	}
}

func TestUpdateAddress(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{UserID: "user", Address: "이전 주소"})
	svc := newTestUserService(repo, &fakeSurveyRepo{})

	if err := svc.UpdateAddress("user", "새 주소"); err != nil {
		t.Fatalf("UpdateAddress returned error: %v", err)
	}
	if got := repo.byID["user"].Address; got != "새 주소" {
		t.Errorf("address = %q, want updated value", got)
	}

	if err := svc.UpdateAddress("nobody", "어딘가"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing user: err = %v, want ErrUserNotFound", err)
	}
}
