package dto

import "github.com/campuslog/page-share-service/pkg/timex"

// PageCreateRequest 创建页面请求参数
type PageCreateRequest struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}

// PageUpdateRequest 编辑页面请求参数
type PageUpdateRequest struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}

// PageDTO 页面数据传输对象
type PageDTO struct {
	ID        int64      `json:"id"`
	UID       int64      `json:"uid"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	ViewCount int64      `json:"viewCount"`
	UpdatedAt timex.Time `json:"updatedAt"`
	CreatedAt timex.Time `json:"createdAt"`
}

// PageVersionDTO 页面历史版本数据传输对象
// Diff 为该版本内容相对当前页面内容的差异文本
type PageVersionDTO struct {
	ID      int64      `json:"id"`
	PageID  int64      `json:"pageId"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Diff    string     `json:"diff,omitempty"`
	SavedAt timex.Time `json:"savedAt"`
}

// ShareTargetDTO 分享对象数据传输对象
type ShareTargetDTO struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AddRecipientsRequest 添加分享对象请求参数
// Targets 为自由文本列表，逐个按邮箱、群组名解析
type AddRecipientsRequest struct {
	Targets []string `json:"targets" form:"targets" binding:"required"`
}

// AddRecipientsResultDTO 添加分享对象结果
// Skipped 为未能解析而被跳过的输入
type AddRecipientsResultDTO struct {
	Added   []ShareTargetDTO `json:"added"`
	Skipped []string         `json:"skipped,omitempty"`
}

// RemoveRecipientRequest 移除分享对象请求参数
type RemoveRecipientRequest struct {
	Kind string `json:"kind" form:"kind" binding:"required,oneof=user group"`
	ID   int64  `json:"id" form:"id" binding:"required"`
}
