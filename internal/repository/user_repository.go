// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"gorm.io/gorm"

	"skinview-go/internal/model"
)

// UserRepository 接口定义了用户数据的持久化操作。
type UserRepository interface {
	Create(user *model.User) error
	FindByUserID(userID string) (*model.User, error)
	FindByKey(userKey string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByPhone(phone string) (*model.User, error)
	UpdatePassword(userID, hashedPassword string) error
	// UpdateAddress 更新指定登录账号的地址，返回命中的行数。
	UpdateAddress(userID, address string) (int64, error)
}

// userRepository 是 UserRepository 接口的 GORM 实现。
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建一个新的 UserRepository 实例。
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 在数据库中创建一个新的用户记录。
func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// FindByUserID 根据登录账号从数据库中查找一个用户。
func (r *userRepository) FindByUserID(userID string) (*model.User, error) {
	var user model.User
	err := r.db.Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByKey 根据用户主键查找一个用户。
func (r *userRepository) FindByKey(userKey string) (*model.User, error) {
	var user model.User
	err := r.db.Where("user_key = ?", userKey).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail 根据邮箱查找一个用户。
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("user_email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByPhone 根据手机号查找一个用户。
func (r *userRepository) FindByPhone(phone string) (*model.User, error) {
	var user model.User
	err := r.db.Where("user_phone_number = ?", phone).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword 更新指定登录账号的密码哈希。
func (r *userRepository) UpdatePassword(userID, hashedPassword string) error {
	return r.db.Model(&model.User{}).Where("user_id = ?", userID).
		Update("user_pw", hashedPassword).Error
}

// UpdateAddress 更新指定登录账号的地址。
func (r *userRepository) UpdateAddress(userID, address string) (int64, error) {
	result := r.db.Model(&model.User{}).Where("user_id = ?", userID).
		Update("user_address", address)
	return result.RowsAffected, result.Error
}
