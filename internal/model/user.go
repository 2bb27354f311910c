package model

import (
	"github.com/campuslog/page-share-service/pkg/timex"
)

// User 用户数据库模型
type User struct {
	UID       int64      `gorm:"column:uid;primaryKey;autoIncrement"`
	Email     string     `gorm:"column:email;size:255;uniqueIndex;not null"`
	Username  string     `gorm:"column:username;size:64;uniqueIndex;not null"`
	Password  string     `gorm:"column:password;size:255;not null"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

// TableName 指定表名
func (User) TableName() string {
	return "user"
}
