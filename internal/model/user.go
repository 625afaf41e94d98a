// Package model 包含了应用的数据模型定义。
package model

import "time"

// User 对应于数据库中的 user_tbl 表。
type User struct {
	UserKey   string     `gorm:"primaryKey;type:varchar(36);column:user_key" json:"userKey"`
	UserID    string     `gorm:"type:varchar(50);uniqueIndex;not null;column:user_id" json:"userId"`
	Password  string     `gorm:"type:varchar(100);not null;column:user_pw" json:"-"`
	UserName  string     `gorm:"type:varchar(50);column:user_name" json:"userName"`
	Phone     string     `gorm:"type:varchar(20);uniqueIndex;column:user_phone_number" json:"phone"`
	Email     string     `gorm:"type:varchar(100);column:user_email" json:"email"`
	Birth     *time.Time `gorm:"type:date;column:user_birth" json:"birth"`
	Gender    string     `gorm:"type:varchar(10);column:user_gender" json:"gender"`
	Address   string     `gorm:"type:varchar(200);column:user_address" json:"address"`
	CreatedAt time.Time  `gorm:"autoCreateTime;column:created_at" json:"createdAt"`
}

func (User) TableName() string {
	return "user_tbl"
}
