package domain

import "time"

// Group 群组领域模型
// 名称全局唯一，成员集合无重复，最后一名成员退出时群组被删除
type Group struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Invite 群组邀请领域模型
// 同一 (用户, 群组) 组合同时最多存在一条待处理邀请
// 接受或拒绝都会删除记录，终态由记录缺失表示
type Invite struct {
	ID        int64
	UID       int64
	GroupID   int64
	CreatedAt time.Time
}
