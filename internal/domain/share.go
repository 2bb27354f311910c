package domain

// TargetKind 分享对象类型
type TargetKind string

const (
	// TargetKindUser 直接分享给用户
	TargetKindUser TargetKind = "user"
	// TargetKindGroup 分享给群组
	TargetKindGroup TargetKind = "group"
)

// IsValid 判断类型是否合法
func (k TargetKind) IsValid() bool {
	return k == TargetKindUser || k == TargetKindGroup
}

// ShareTarget 分享对象，带类型标签的变体
// 分享关系本身是唯一事实来源，两个方向的视图都由它派生
type ShareTarget struct {
	Kind TargetKind
	ID   int64
}

// UserTarget 构造用户分享对象
func UserTarget(uid int64) ShareTarget {
	return ShareTarget{Kind: TargetKindUser, ID: uid}
}

// GroupTarget 构造群组分享对象
func GroupTarget(gid int64) ShareTarget {
	return ShareTarget{Kind: TargetKindGroup, ID: gid}
}
