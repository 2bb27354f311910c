package model

import (
	"github.com/campuslog/page-share-service/pkg/timex"
)

// GroupInvite 群组邀请数据库模型
// (uid, group_id) 唯一，唯一性在创建时约束
type GroupInvite struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	UID       int64      `gorm:"column:uid;uniqueIndex:idx_invite_uid_group;index;not null"`
	GroupID   int64      `gorm:"column:group_id;uniqueIndex:idx_invite_uid_group;index;not null"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false"`
}

// TableName 指定表名
func (GroupInvite) TableName() string {
	return "group_invite"
}
