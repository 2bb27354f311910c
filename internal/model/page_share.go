package model

import (
	"github.com/campuslog/page-share-service/pkg/timex"
)

// PageShare 分享关系数据库模型
// 连接表，(page_id, target_kind, target_id) 唯一
// 两个方向的分享视图都从这张表派生
type PageShare struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement"`
	PageID     int64      `gorm:"column:page_id;uniqueIndex:idx_page_share;index;not null"`
	TargetKind string     `gorm:"column:target_kind;size:16;uniqueIndex:idx_page_share;not null"`
	TargetID   int64      `gorm:"column:target_id;uniqueIndex:idx_page_share;index;not null"`
	CreatedAt  timex.Time `gorm:"column:created_at;autoCreateTime:false"`
}

// TableName 指定表名
func (PageShare) TableName() string {
	return "page_share"
}
