package model

import (
	"github.com/campuslog/page-share-service/pkg/timex"
)

// Group 群组数据库模型
type Group struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string     `gorm:"column:name;size:64;uniqueIndex;not null"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

// TableName 指定表名
func (Group) TableName() string {
	return "group"
}

// GroupMember 群组成员数据库模型
// (group_id, uid) 唯一，成员集合无重复
type GroupMember struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	GroupID   int64      `gorm:"column:group_id;uniqueIndex:idx_group_member;not null"`
	UID       int64      `gorm:"column:uid;uniqueIndex:idx_group_member;index;not null"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false"`
}

// TableName 指定表名
func (GroupMember) TableName() string {
	return "group_member"
}
