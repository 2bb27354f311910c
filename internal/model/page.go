package model

import (
	"github.com/campuslog/page-share-service/pkg/timex"
)

// Page 页面数据库模型
type Page struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	UID       int64      `gorm:"column:uid;index;not null"`
	Title     string     `gorm:"column:title;size:64;not null"`
	Content   string     `gorm:"column:content;type:text"`
	ViewCount int64      `gorm:"column:view_count;not null;default:0"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

// TableName 指定表名
func (Page) TableName() string {
	return "page"
}
