// Package domain 定义领域模型和接口
package domain

import "context"

// Transactor 事务边界接口
// fn 内通过 ctx 传递事务，组合操作要么全部落库要么全部回滚
type Transactor interface {
	// WithinTx 在单个事务内执行 fn
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUsername 根据用户名获取用户
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// ListByUIDs 根据UID集合批量获取用户
	ListByUIDs(ctx context.Context, uids []int64) ([]*User, error)
}

// PageRepository 页面仓储接口
type PageRepository interface {
	// GetByID 根据ID获取页面
	GetByID(ctx context.Context, id int64) (*Page, error)

	// Create 创建页面
	Create(ctx context.Context, page *Page) (*Page, error)

	// Update 更新页面标题和内容并刷新修改时间
	Update(ctx context.Context, page *Page) error

	// IncrementViewCount 浏览计数加一
	IncrementViewCount(ctx context.Context, id int64) error

	// Delete 物理删除页面
	Delete(ctx context.Context, id int64) error

	// ListByUID 分页获取用户拥有的页面
	ListByUID(ctx context.Context, uid int64, page, pageSize int) ([]*Page, int64, error)

	// ListByIDs 分页获取指定ID集合的页面
	ListByIDs(ctx context.Context, ids []int64, page, pageSize int) ([]*Page, int64, error)
}

// PageVersionRepository 页面历史版本仓储接口
type PageVersionRepository interface {
	// GetByID 根据ID获取历史版本
	GetByID(ctx context.Context, id int64) (*PageVersion, error)

	// Create 创建历史版本
	Create(ctx context.Context, version *PageVersion) (*PageVersion, error)

	// Delete 删除指定历史版本
	Delete(ctx context.Context, id int64) error

	// DeleteByPageID 删除页面的全部历史版本
	DeleteByPageID(ctx context.Context, pageID int64) error

	// ListByPageID 分页获取页面的历史版本，新的在前
	ListByPageID(ctx context.Context, pageID int64, page, pageSize int) ([]*PageVersion, int64, error)

	// CountByPageID 获取页面的历史版本数量
	CountByPageID(ctx context.Context, pageID int64) (int64, error)
}

// GroupRepository 群组仓储接口
type GroupRepository interface {
	// GetByID 根据ID获取群组
	GetByID(ctx context.Context, id int64) (*Group, error)

	// GetByName 根据名称获取群组
	GetByName(ctx context.Context, name string) (*Group, error)

	// Create 创建群组
	Create(ctx context.Context, group *Group) (*Group, error)

	// Delete 物理删除群组
	Delete(ctx context.Context, id int64) error

	// AddMember 添加成员
	AddMember(ctx context.Context, groupID, uid int64) error

	// RemoveMember 移除成员
	RemoveMember(ctx context.Context, groupID, uid int64) error

	// IsMember 判断用户是否为群组成员
	IsMember(ctx context.Context, groupID, uid int64) (bool, error)

	// IsMemberOfAny 判断用户是否属于任意一个群组
	// 成员关系每次请求重新计算，不做缓存
	IsMemberOfAny(ctx context.Context, uid int64, groupIDs []int64) (bool, error)

	// MemberUIDs 获取群组全部成员UID
	MemberUIDs(ctx context.Context, groupID int64) ([]int64, error)

	// MemberCount 获取群组成员数量
	MemberCount(ctx context.Context, groupID int64) (int64, error)

	// ListByUID 获取用户所属的全部群组
	ListByUID(ctx context.Context, uid int64) ([]*Group, error)
}

// InviteRepository 群组邀请仓储接口
type InviteRepository interface {
	// GetByID 根据ID获取邀请
	GetByID(ctx context.Context, id int64) (*Invite, error)

	// GetByUIDAndGroup 根据 (用户, 群组) 组合获取待处理邀请
	GetByUIDAndGroup(ctx context.Context, uid, groupID int64) (*Invite, error)

	// Create 创建邀请
	Create(ctx context.Context, invite *Invite) (*Invite, error)

	// Delete 删除邀请
	Delete(ctx context.Context, id int64) error

	// ListByGroupID 获取群组的全部待处理邀请
	ListByGroupID(ctx context.Context, groupID int64) ([]*Invite, error)

	// ListByUID 获取用户的全部待处理邀请
	ListByUID(ctx context.Context, uid int64) ([]*Invite, error)
}

// ShareRepository 分享关系仓储接口
// page_share 连接表是分享关系的唯一事实来源
type ShareRepository interface {
	// Add 添加分享关系，重复添加为无操作
	Add(ctx context.Context, pageID int64, target ShareTarget) error

	// Remove 移除分享关系
	Remove(ctx context.Context, pageID int64, target ShareTarget) error

	// Exists 判断分享关系是否存在
	Exists(ctx context.Context, pageID int64, target ShareTarget) (bool, error)

	// ListTargets 获取页面的全部分享对象
	ListTargets(ctx context.Context, pageID int64) ([]ShareTarget, error)

	// ListGroupIDs 获取页面分享到的群组ID集合
	ListGroupIDs(ctx context.Context, pageID int64) ([]int64, error)

	// ListPageIDs 获取分享给任意一个对象的页面ID集合
	ListPageIDs(ctx context.Context, targets []ShareTarget) ([]int64, error)

	// DeleteByPageID 删除页面的全部分享关系
	DeleteByPageID(ctx context.Context, pageID int64) error

	// DeleteByTarget 删除分享对象名下的全部分享关系
	DeleteByTarget(ctx context.Context, target ShareTarget) error
}
