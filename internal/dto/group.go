package dto

import "github.com/campuslog/page-share-service/pkg/timex"

// GroupCreateRequest 创建群组请求参数
type GroupCreateRequest struct {
	Name string `json:"name" form:"name" binding:"required,max=64"`
}

// GroupDTO 群组数据传输对象
type GroupDTO struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	MemberCount int64      `json:"memberCount"`
	CreatedAt   timex.Time `json:"createdAt"`
}

// MemberDTO 群组成员数据传输对象
type MemberDTO struct {
	UID      int64  `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// InviteCandidatesRequest 发起邀请请求参数
// Candidates 为候选人邮箱列表
type InviteCandidatesRequest struct {
	Candidates []string `json:"candidates" form:"candidates" binding:"required"`
}

// InviteResultDTO 发起邀请结果
// Skipped 为未解析、重复或已是成员而被跳过的输入
type InviteResultDTO struct {
	Invited []string `json:"invited"`
	Skipped []string `json:"skipped,omitempty"`
}

// InviteDTO 邀请数据传输对象
type InviteDTO struct {
	ID        int64      `json:"id"`
	UID       int64      `json:"uid"`
	GroupID   int64      `json:"groupId"`
	GroupName string     `json:"groupName"`
	CreatedAt timex.Time `json:"createdAt"`
}
