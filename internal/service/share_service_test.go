package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/pkg/code"
	"go.uber.org/zap"
)

func newShareServiceForTest(pageRepo *mockPageRepo, shareRepo *mockShareRepo, userRepo *mockUserRepo, groupRepo *mockGroupRepo) *shareService {
	return &shareService{
		pageRepo:   pageRepo,
		shareRepo:  shareRepo,
		userRepo:   userRepo,
		groupRepo:  groupRepo,
		transactor: mockTransactor{},
		logger:     zap.NewNop(),
	}
}

func TestShowAccessResolution(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		uid       int64
		grants    []domain.ShareTarget
		members   map[int64][]int64
		wantErr   error
		wantCount int64
	}{
		{
			name:    "anonymous denied silently",
			uid:     0,
			grants:  []domain.ShareTarget{domain.UserTarget(8)},
			wantErr: code.ErrorPageNotFound,
		},
		{
			name:      "owner reads without counting",
			uid:       7,
			wantCount: 3,
		},
		{
			name:      "direct grant counts view",
			uid:       8,
			grants:    []domain.ShareTarget{domain.UserTarget(8)},
			wantCount: 4,
		},
		{
			name:      "group membership grant counts view",
			uid:       9,
			grants:    []domain.ShareTarget{domain.GroupTarget(2)},
			members:   map[int64][]int64{2: {9}},
			wantCount: 4,
		},
		{
			name:    "group grant without membership denied",
			uid:     9,
			grants:  []domain.ShareTarget{domain.GroupTarget(2)},
			members: map[int64][]int64{2: {11}},
			wantErr: code.ErrorPageNotFound,
		},
		{
			name:    "no grant denied silently",
			uid:     8,
			wantErr: code.ErrorPageNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pageRepo := &mockPageRepo{pages: map[int64]*domain.Page{
				1: {ID: 1, UID: 7, Title: "t", ViewCount: 3},
			}}
			shareRepo := &mockShareRepo{grants: map[int64][]domain.ShareTarget{1: tt.grants}}
			groupRepo := &mockGroupRepo{members: tt.members}
			svc := newShareServiceForTest(pageRepo, shareRepo, &mockUserRepo{}, groupRepo)

			got, err := svc.Show(ctx, tt.uid, 1)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Show() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if len(pageRepo.viewIncIDs) != 0 {
					t.Error("denied request must not increment view count")
				}
				return
			}
			if got.ViewCount != tt.wantCount {
				t.Errorf("ViewCount = %d, want %d", got.ViewCount, tt.wantCount)
			}
			if tt.uid == 7 && len(pageRepo.viewIncIDs) != 0 {
				t.Error("owner read must not increment view count")
			}
		})
	}
}

func TestShowMissingPage(t *testing.T) {
	ctx := context.Background()
	svc := newShareServiceForTest(&mockPageRepo{}, &mockShareRepo{}, &mockUserRepo{}, &mockGroupRepo{})

	if _, err := svc.Show(ctx, 8, 42); !errors.Is(err, code.ErrorPageNotFound) {
		t.Errorf("Show() error = %v, want %v", err, code.ErrorPageNotFound)
	}
}

func TestAddRecipientsResolution(t *testing.T) {
	ctx := context.Background()

	pageRepo := &mockPageRepo{pages: map[int64]*domain.Page{1: {ID: 1, UID: 7}}}
	shareRepo := &mockShareRepo{}
	userRepo := &mockUserRepo{users: []*domain.User{
		{UID: 8, Email: "alice@example.com", Username: "alice"},
	}}
	groupRepo := &mockGroupRepo{groups: map[int64]*domain.Group{
		2: {ID: 2, Name: "readers"},
	}}
	svc := newShareServiceForTest(pageRepo, shareRepo, userRepo, groupRepo)

	result, err := svc.AddRecipients(ctx, 7, 1, []string{
		"alice@example.com",
		"readers",
		"ghost@example.com",
		"no-such-group",
	})
	if err != nil {
		t.Fatalf("AddRecipients() failed: %v", err)
	}

	if len(result.Added) != 2 {
		t.Fatalf("added = %+v, want 2 entries", result.Added)
	}
	if result.Added[0].Kind != string(domain.TargetKindUser) || result.Added[0].ID != 8 {
		t.Errorf("first added = %+v, want user 8", result.Added[0])
	}
	if result.Added[1].Kind != string(domain.TargetKindGroup) || result.Added[1].ID != 2 {
		t.Errorf("second added = %+v, want group 2", result.Added[1])
	}
	if len(result.Skipped) != 2 {
		t.Errorf("skipped = %v, want the two unresolvable identifiers", result.Skipped)
	}
	if len(shareRepo.grants[1]) != 2 {
		t.Errorf("grants = %v, want 2", shareRepo.grants[1])
	}
}

func TestAddRecipientsIdempotent(t *testing.T) {
	ctx := context.Background()

	pageRepo := &mockPageRepo{pages: map[int64]*domain.Page{1: {ID: 1, UID: 7}}}
	shareRepo := &mockShareRepo{}
	userRepo := &mockUserRepo{users: []*domain.User{
		{UID: 8, Email: "alice@example.com", Username: "alice"},
	}}
	svc := newShareServiceForTest(pageRepo, shareRepo, userRepo, &mockGroupRepo{})

	for i := 0; i < 3; i++ {
		if _, err := svc.AddRecipients(ctx, 7, 1, []string{"alice@example.com"}); err != nil {
			t.Fatalf("AddRecipients() round %d failed: %v", i, err)
		}
	}

	if len(shareRepo.grants[1]) != 1 {
		t.Errorf("grants after repeated add = %v, want exactly 1", shareRepo.grants[1])
	}
}

func TestAddRecipientsStorageFailure(t *testing.T) {
	ctx := context.Background()

	pageRepo := &mockPageRepo{pages: map[int64]*domain.Page{1: {ID: 1, UID: 7}}}
	shareRepo := &mockShareRepo{}
	userRepo := &mockUserRepo{emailErr: errors.New("connection reset")}
	svc := newShareServiceForTest(pageRepo, shareRepo, userRepo, &mockGroupRepo{})

	result, err := svc.AddRecipients(ctx, 7, 1, []string{"alice@example.com"})
	if !errors.Is(err, code.ErrorDBQuery) {
		t.Fatalf("AddRecipients() with failing store error = %v, want %v", err, code.ErrorDBQuery)
	}
	if result != nil {
		t.Errorf("result = %+v, want nil on storage failure", result)
	}
	if len(shareRepo.grants[1]) != 0 {
		t.Errorf("grants = %v, want none written after failure", shareRepo.grants[1])
	}
}

func TestAddRecipientsOwnerOnly(t *testing.T) {
	ctx := context.Background()
	pageRepo := &mockPageRepo{pages: map[int64]*domain.Page{1: {ID: 1, UID: 7}}}
	svc := newShareServiceForTest(pageRepo, &mockShareRepo{}, &mockUserRepo{}, &mockGroupRepo{})

	if _, err := svc.AddRecipients(ctx, 8, 1, []string{"x"}); !errors.Is(err, code.ErrorNotPageOwner) {
		t.Errorf("AddRecipients() by non owner error = %v, want %v", err, code.ErrorNotPageOwner)
	}
}

func TestRemoveRecipient(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		uid      int64
		kind     string
		targetID int64
		wantErr  error
	}{
		{name: "owner removes user grant", uid: 7, kind: "user", targetID: 8},
		{name: "owner removes group grant", uid: 7, kind: "group", targetID: 2},
		{name: "recipient removes themselves", uid: 8, kind: "user", targetID: 8},
		{name: "recipient cannot remove others", uid: 8, kind: "user", targetID: 9, wantErr: code.ErrorNotAuthorized},
		{name: "recipient cannot remove group grant", uid: 8, kind: "group", targetID: 2, wantErr: code.ErrorNotAuthorized},
		{name: "invalid kind rejected", uid: 7, kind: "team", targetID: 2, wantErr: code.ErrorInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pageRepo := &mockPageRepo{pages: map[int64]*domain.Page{1: {ID: 1, UID: 7}}}
			shareRepo := &mockShareRepo{grants: map[int64][]domain.ShareTarget{
				1: {domain.UserTarget(8), domain.UserTarget(9), domain.GroupTarget(2)},
			}}
			svc := newShareServiceForTest(pageRepo, shareRepo, &mockUserRepo{}, &mockGroupRepo{})

			err := svc.RemoveRecipient(ctx, tt.uid, 1, tt.kind, tt.targetID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RemoveRecipient() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && len(shareRepo.grants[1]) != 2 {
				t.Errorf("grants = %v, want one removed", shareRepo.grants[1])
			}
			if tt.wantErr != nil && len(shareRepo.grants[1]) != 3 {
				t.Errorf("grants = %v, rejected removal must not change grants", shareRepo.grants[1])
			}
		})
	}
}

func TestListSharedWithMe(t *testing.T) {
	ctx := context.Background()

	pageRepo := &mockPageRepo{pages: map[int64]*domain.Page{
		1: {ID: 1, UID: 7, Title: "direct"},
		2: {ID: 2, UID: 7, Title: "via group"},
		3: {ID: 3, UID: 7, Title: "not shared"},
	}}
	shareRepo := &mockShareRepo{grants: map[int64][]domain.ShareTarget{
		1: {domain.UserTarget(8)},
		2: {domain.GroupTarget(5)},
	}}
	groupRepo := &mockGroupRepo{
		groups:  map[int64]*domain.Group{5: {ID: 5, Name: "team"}},
		members: map[int64][]int64{5: {8}},
	}
	svc := newShareServiceForTest(pageRepo, shareRepo, &mockUserRepo{}, groupRepo)

	pages, count, err := svc.ListSharedWithMe(ctx, 8, 1, 20)
	if err != nil {
		t.Fatalf("ListSharedWithMe() failed: %v", err)
	}
	if count != 2 || len(pages) != 2 {
		t.Fatalf("got %d pages (count %d), want 2", len(pages), count)
	}
	seen := map[int64]bool{}
	for _, p := range pages {
		seen[p.ID] = true
	}
	if !seen[1] || !seen[2] {
		t.Errorf("page ids = %v, want direct and group shared pages", seen)
	}
}
