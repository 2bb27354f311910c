package domain

import (
	"time"
	"unicode/utf8"
)

// 页面内容边界，按 Unicode 码点计数
// Content limits, counted in Unicode code points
const (
	MaxPageTitleLen   = 64
	MaxPageContentLen = 8192
)

// Page 页面领域模型
// 由所有者独占写入，浏览计数只增不减
type Page struct {
	ID        int64
	UID       int64 // 所有者 UID，创建后不可变更
	Title     string
	Content   string
	ViewCount int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy 判断页面是否属于指定用户
func (p *Page) IsOwnedBy(uid int64) bool {
	return uid != 0 && p.UID == uid
}

// PageVersion 页面历史版本领域模型
// 不可变快照，随页面删除级联删除
type PageVersion struct {
	ID        int64
	PageID    int64
	Title     string
	Content   string
	SavedAt   time.Time
	CreatedAt time.Time
}

// ValidateTitleLen 校验标题长度
func ValidateTitleLen(title string) bool {
	return utf8.RuneCountInString(title) <= MaxPageTitleLen
}

// ValidateContentLen 校验内容长度
func ValidateContentLen(content string) bool {
	return utf8.RuneCountInString(content) <= MaxPageContentLen
}
