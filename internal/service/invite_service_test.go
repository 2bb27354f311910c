package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/pkg/code"
	"go.uber.org/zap"
)

func newInviteServiceForTest(inviteRepo *mockInviteRepo, groupRepo *mockGroupRepo, userRepo *mockUserRepo) *inviteService {
	return &inviteService{
		inviteRepo: inviteRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		transactor: mockTransactor{},
		logger:     zap.NewNop(),
	}
}

func TestInviteSkipsRules(t *testing.T) {
	ctx := context.Background()

	groupRepo := &mockGroupRepo{
		groups:  map[int64]*domain.Group{1: {ID: 1, Name: "team"}},
		members: map[int64][]int64{1: {7, 8}},
	}
	userRepo := &mockUserRepo{users: []*domain.User{
		{UID: 7, Email: "inviter@example.com"},
		{UID: 8, Email: "member@example.com"},
		{UID: 9, Email: "pending@example.com"},
		{UID: 10, Email: "fresh@example.com"},
	}}
	inviteRepo := &mockInviteRepo{
		invites: map[int64]*domain.Invite{5: {ID: 5, UID: 9, GroupID: 1}},
		nextID:  5,
	}
	svc := newInviteServiceForTest(inviteRepo, groupRepo, userRepo)

	result, err := svc.Invite(ctx, 7, 1, []string{
		"inviter@example.com",
		"member@example.com",
		"pending@example.com",
		"ghost@example.com",
		"fresh@example.com",
	})
	if err != nil {
		t.Fatalf("Invite() failed: %v", err)
	}

	if len(result.Invited) != 1 || result.Invited[0] != "fresh@example.com" {
		t.Errorf("invited = %v, want only the fresh candidate", result.Invited)
	}
	if len(result.Skipped) != 4 {
		t.Errorf("skipped = %v, want self, member, pending and unresolved", result.Skipped)
	}
	if len(inviteRepo.invites) != 2 {
		t.Errorf("invites = %v, want the pre existing one plus one new", inviteRepo.invites)
	}
}

func TestInviteMemberOnly(t *testing.T) {
	ctx := context.Background()
	groupRepo := &mockGroupRepo{
		groups:  map[int64]*domain.Group{1: {ID: 1, Name: "team"}},
		members: map[int64][]int64{1: {7}},
	}
	svc := newInviteServiceForTest(&mockInviteRepo{}, groupRepo, &mockUserRepo{})

	if _, err := svc.Invite(ctx, 9, 1, []string{"x@example.com"}); !errors.Is(err, code.ErrorNotGroupMember) {
		t.Fatalf("Invite() by outsider error = %v, want %v", err, code.ErrorNotGroupMember)
	}
	if _, err := svc.Invite(ctx, 7, 99, []string{"x@example.com"}); !errors.Is(err, code.ErrorGroupNotFound) {
		t.Fatalf("Invite() on missing group error = %v, want %v", err, code.ErrorGroupNotFound)
	}
}

func TestInviteAccept(t *testing.T) {
	ctx := context.Background()
	groupRepo := &mockGroupRepo{
		groups:  map[int64]*domain.Group{1: {ID: 1, Name: "team"}},
		members: map[int64][]int64{1: {7}},
	}
	inviteRepo := &mockInviteRepo{
		invites: map[int64]*domain.Invite{5: {ID: 5, UID: 9, GroupID: 1}},
		nextID:  5,
	}
	svc := newInviteServiceForTest(inviteRepo, groupRepo, &mockUserRepo{})

	// 只有被邀请人可以接受
	if err := svc.Accept(ctx, 8, 5); !errors.Is(err, code.ErrorInviteNotFound) {
		t.Fatalf("Accept() by another user error = %v, want %v", err, code.ErrorInviteNotFound)
	}

	if err := svc.Accept(ctx, 9, 5); err != nil {
		t.Fatalf("Accept() failed: %v", err)
	}
	ok, _ := groupRepo.IsMember(ctx, 1, 9)
	if !ok {
		t.Error("accepting must add the user to the group")
	}
	if _, found := inviteRepo.invites[5]; found {
		t.Error("accepted invite must be consumed")
	}

	// 邀请已消费，重复接受失败
	if err := svc.Accept(ctx, 9, 5); !errors.Is(err, code.ErrorInviteNotFound) {
		t.Errorf("Accept() twice error = %v, want %v", err, code.ErrorInviteNotFound)
	}
}

func TestInviteReject(t *testing.T) {
	ctx := context.Background()
	groupRepo := &mockGroupRepo{
		groups:  map[int64]*domain.Group{1: {ID: 1, Name: "team"}},
		members: map[int64][]int64{1: {7}},
	}
	inviteRepo := &mockInviteRepo{
		invites: map[int64]*domain.Invite{5: {ID: 5, UID: 9, GroupID: 1}},
		nextID:  5,
	}
	svc := newInviteServiceForTest(inviteRepo, groupRepo, &mockUserRepo{})

	if err := svc.Reject(ctx, 9, 5); err != nil {
		t.Fatalf("Reject() failed: %v", err)
	}
	ok, _ := groupRepo.IsMember(ctx, 1, 9)
	if ok {
		t.Error("rejecting must not add the user to the group")
	}
	if _, found := inviteRepo.invites[5]; found {
		t.Error("rejected invite must be deleted")
	}
}

func TestInviteListMine(t *testing.T) {
	ctx := context.Background()
	groupRepo := &mockGroupRepo{groups: map[int64]*domain.Group{
		1: {ID: 1, Name: "team"},
		2: {ID: 2, Name: "readers"},
	}}
	inviteRepo := &mockInviteRepo{
		invites: map[int64]*domain.Invite{
			5: {ID: 5, UID: 9, GroupID: 1},
			6: {ID: 6, UID: 9, GroupID: 2},
			7: {ID: 7, UID: 10, GroupID: 1},
		},
		nextID: 7,
	}
	svc := newInviteServiceForTest(inviteRepo, groupRepo, &mockUserRepo{})

	list, err := svc.ListMine(ctx, 9)
	if err != nil {
		t.Fatalf("ListMine() failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d invites, want 2", len(list))
	}
	for _, item := range list {
		if item.GroupName == "" {
			t.Errorf("invite %d missing group name", item.ID)
		}
	}
}
