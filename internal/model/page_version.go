package model

import (
	"github.com/campuslog/page-share-service/pkg/timex"
)

// PageVersion 页面历史版本数据库模型
type PageVersion struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	PageID    int64      `gorm:"column:page_id;index;not null"`
	Title     string     `gorm:"column:title;size:64;not null"`
	Content   string     `gorm:"column:content;type:text"`
	SavedAt   timex.Time `gorm:"column:saved_at"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false"`
}

// TableName 指定表名
func (PageVersion) TableName() string {
	return "page_version"
}
