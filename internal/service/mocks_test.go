package service

import (
	"context"

	"github.com/campuslog/page-share-service/internal/domain"
	"gorm.io/gorm"
)

// 内存实现的仓储 mock，各服务测试共用
// 仅实现被测路径用到的方法，其余由内嵌接口兜底

type mockTransactor struct{}

func (mockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockUserRepo struct {
	domain.UserRepository
	users []*domain.User

	// emailErr 非空时 GetByEmail 直接返回该错误，模拟存储故障
	emailErr error
}

func (m *mockUserRepo) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	for _, u := range m.users {
		if u.UID == uid {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.emailErr != nil {
		return nil, m.emailErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	cp := *user
	cp.UID = int64(len(m.users) + 1)
	m.users = append(m.users, &cp)
	return &cp, nil
}

func (m *mockUserRepo) ListByUIDs(ctx context.Context, uids []int64) ([]*domain.User, error) {
	var list []*domain.User
	for _, uid := range uids {
		for _, u := range m.users {
			if u.UID == uid {
				list = append(list, u)
			}
		}
	}
	return list, nil
}

type mockPageRepo struct {
	domain.PageRepository
	pages      map[int64]*domain.Page
	trace      *[]string
	updated    []*domain.Page
	deletedIDs []int64
	viewIncIDs []int64
}

func (m *mockPageRepo) Create(ctx context.Context, page *domain.Page) (*domain.Page, error) {
	if m.pages == nil {
		m.pages = make(map[int64]*domain.Page)
	}
	cp := *page
	cp.ID = int64(len(m.pages) + 1)
	m.pages[cp.ID] = &cp
	return &cp, nil
}

func (m *mockPageRepo) GetByID(ctx context.Context, id int64) (*domain.Page, error) {
	if p, ok := m.pages[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPageRepo) Update(ctx context.Context, page *domain.Page) error {
	cp := *page
	m.updated = append(m.updated, &cp)
	m.pages[page.ID] = &cp
	return nil
}

func (m *mockPageRepo) IncrementViewCount(ctx context.Context, id int64) error {
	m.viewIncIDs = append(m.viewIncIDs, id)
	if p, ok := m.pages[id]; ok {
		p.ViewCount++
	}
	return nil
}

func (m *mockPageRepo) Delete(ctx context.Context, id int64) error {
	if m.trace != nil {
		*m.trace = append(*m.trace, "page.Delete")
	}
	m.deletedIDs = append(m.deletedIDs, id)
	delete(m.pages, id)
	return nil
}

func (m *mockPageRepo) ListByIDs(ctx context.Context, ids []int64, page, pageSize int) ([]*domain.Page, int64, error) {
	var list []*domain.Page
	for _, id := range ids {
		if p, ok := m.pages[id]; ok {
			list = append(list, p)
		}
	}
	return list, int64(len(list)), nil
}

type mockVersionRepo struct {
	domain.PageVersionRepository
	versions   map[int64]*domain.PageVersion
	nextID     int64
	created    []*domain.PageVersion
	deletedIDs []int64
	trace      *[]string
}

func (m *mockVersionRepo) GetByID(ctx context.Context, id int64) (*domain.PageVersion, error) {
	if v, ok := m.versions[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVersionRepo) Create(ctx context.Context, version *domain.PageVersion) (*domain.PageVersion, error) {
	m.nextID++
	cp := *version
	cp.ID = m.nextID
	if m.versions == nil {
		m.versions = make(map[int64]*domain.PageVersion)
	}
	m.versions[cp.ID] = &cp
	m.created = append(m.created, &cp)
	return &cp, nil
}

func (m *mockVersionRepo) Delete(ctx context.Context, id int64) error {
	m.deletedIDs = append(m.deletedIDs, id)
	delete(m.versions, id)
	return nil
}

func (m *mockVersionRepo) DeleteByPageID(ctx context.Context, pageID int64) error {
	if m.trace != nil {
		*m.trace = append(*m.trace, "version.DeleteByPageID")
	}
	for id, v := range m.versions {
		if v.PageID == pageID {
			delete(m.versions, id)
		}
	}
	return nil
}

func (m *mockVersionRepo) ListByPageID(ctx context.Context, pageID int64, page, pageSize int) ([]*domain.PageVersion, int64, error) {
	var list []*domain.PageVersion
	for _, v := range m.versions {
		if v.PageID == pageID {
			list = append(list, v)
		}
	}
	return list, int64(len(list)), nil
}

func (m *mockVersionRepo) CountByPageID(ctx context.Context, pageID int64) (int64, error) {
	var count int64
	for _, v := range m.versions {
		if v.PageID == pageID {
			count++
		}
	}
	return count, nil
}

type mockGroupRepo struct {
	domain.GroupRepository
	groups     map[int64]*domain.Group
	members    map[int64][]int64
	deletedIDs []int64
}

func (m *mockGroupRepo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	for _, g := range m.groups {
		if g.Name == name {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) Create(ctx context.Context, group *domain.Group) (*domain.Group, error) {
	if m.groups == nil {
		m.groups = make(map[int64]*domain.Group)
	}
	cp := *group
	cp.ID = int64(len(m.groups) + 1)
	m.groups[cp.ID] = &cp
	return &cp, nil
}

func (m *mockGroupRepo) Delete(ctx context.Context, id int64) error {
	m.deletedIDs = append(m.deletedIDs, id)
	delete(m.groups, id)
	return nil
}

func (m *mockGroupRepo) AddMember(ctx context.Context, groupID, uid int64) error {
	if m.members == nil {
		m.members = make(map[int64][]int64)
	}
	for _, existing := range m.members[groupID] {
		if existing == uid {
			return nil
		}
	}
	m.members[groupID] = append(m.members[groupID], uid)
	return nil
}

func (m *mockGroupRepo) RemoveMember(ctx context.Context, groupID, uid int64) error {
	var kept []int64
	for _, existing := range m.members[groupID] {
		if existing != uid {
			kept = append(kept, existing)
		}
	}
	m.members[groupID] = kept
	return nil
}

func (m *mockGroupRepo) IsMember(ctx context.Context, groupID, uid int64) (bool, error) {
	for _, existing := range m.members[groupID] {
		if existing == uid {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockGroupRepo) IsMemberOfAny(ctx context.Context, uid int64, groupIDs []int64) (bool, error) {
	for _, groupID := range groupIDs {
		ok, _ := m.IsMember(ctx, groupID, uid)
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockGroupRepo) MemberUIDs(ctx context.Context, groupID int64) ([]int64, error) {
	return m.members[groupID], nil
}

func (m *mockGroupRepo) MemberCount(ctx context.Context, groupID int64) (int64, error) {
	return int64(len(m.members[groupID])), nil
}

func (m *mockGroupRepo) ListByUID(ctx context.Context, uid int64) ([]*domain.Group, error) {
	var list []*domain.Group
	for groupID, uids := range m.members {
		for _, existing := range uids {
			if existing == uid {
				if g, ok := m.groups[groupID]; ok {
					list = append(list, g)
				}
			}
		}
	}
	return list, nil
}

type mockInviteRepo struct {
	domain.InviteRepository
	invites    map[int64]*domain.Invite
	nextID     int64
	deletedIDs []int64
}

func (m *mockInviteRepo) GetByID(ctx context.Context, id int64) (*domain.Invite, error) {
	if inv, ok := m.invites[id]; ok {
		return inv, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInviteRepo) GetByUIDAndGroup(ctx context.Context, uid, groupID int64) (*domain.Invite, error) {
	for _, inv := range m.invites {
		if inv.UID == uid && inv.GroupID == groupID {
			return inv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInviteRepo) Create(ctx context.Context, invite *domain.Invite) (*domain.Invite, error) {
	if m.invites == nil {
		m.invites = make(map[int64]*domain.Invite)
	}
	m.nextID++
	cp := *invite
	cp.ID = m.nextID
	m.invites[cp.ID] = &cp
	return &cp, nil
}

func (m *mockInviteRepo) Delete(ctx context.Context, id int64) error {
	m.deletedIDs = append(m.deletedIDs, id)
	delete(m.invites, id)
	return nil
}

func (m *mockInviteRepo) ListByGroupID(ctx context.Context, groupID int64) ([]*domain.Invite, error) {
	var list []*domain.Invite
	for _, inv := range m.invites {
		if inv.GroupID == groupID {
			list = append(list, inv)
		}
	}
	return list, nil
}

func (m *mockInviteRepo) ListByUID(ctx context.Context, uid int64) ([]*domain.Invite, error) {
	var list []*domain.Invite
	for _, inv := range m.invites {
		if inv.UID == uid {
			list = append(list, inv)
		}
	}
	return list, nil
}

type mockShareRepo struct {
	domain.ShareRepository
	grants         map[int64][]domain.ShareTarget
	trace          *[]string
	deletedPages   []int64
	deletedTargets []domain.ShareTarget
}

func (m *mockShareRepo) Add(ctx context.Context, pageID int64, target domain.ShareTarget) error {
	if m.grants == nil {
		m.grants = make(map[int64][]domain.ShareTarget)
	}
	for _, existing := range m.grants[pageID] {
		if existing == target {
			return nil
		}
	}
	m.grants[pageID] = append(m.grants[pageID], target)
	return nil
}

func (m *mockShareRepo) Remove(ctx context.Context, pageID int64, target domain.ShareTarget) error {
	var kept []domain.ShareTarget
	for _, existing := range m.grants[pageID] {
		if existing != target {
			kept = append(kept, existing)
		}
	}
	m.grants[pageID] = kept
	return nil
}

func (m *mockShareRepo) Exists(ctx context.Context, pageID int64, target domain.ShareTarget) (bool, error) {
	for _, existing := range m.grants[pageID] {
		if existing == target {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockShareRepo) ListTargets(ctx context.Context, pageID int64) ([]domain.ShareTarget, error) {
	return m.grants[pageID], nil
}

func (m *mockShareRepo) ListGroupIDs(ctx context.Context, pageID int64) ([]int64, error) {
	var ids []int64
	for _, target := range m.grants[pageID] {
		if target.Kind == domain.TargetKindGroup {
			ids = append(ids, target.ID)
		}
	}
	return ids, nil
}

func (m *mockShareRepo) ListPageIDs(ctx context.Context, targets []domain.ShareTarget) ([]int64, error) {
	var ids []int64
	for pageID, grants := range m.grants {
		for _, grant := range grants {
			for _, target := range targets {
				if grant == target {
					ids = append(ids, pageID)
				}
			}
		}
	}
	return ids, nil
}

func (m *mockShareRepo) DeleteByPageID(ctx context.Context, pageID int64) error {
	if m.trace != nil {
		*m.trace = append(*m.trace, "share.DeleteByPageID")
	}
	m.deletedPages = append(m.deletedPages, pageID)
	delete(m.grants, pageID)
	return nil
}

func (m *mockShareRepo) DeleteByTarget(ctx context.Context, target domain.ShareTarget) error {
	m.deletedTargets = append(m.deletedTargets, target)
	for pageID := range m.grants {
		_ = m.Remove(ctx, pageID, target)
	}
	return nil
}
