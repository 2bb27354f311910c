package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/internal/dto"
	"github.com/campuslog/page-share-service/pkg/code"
	"go.uber.org/zap"
)

func newPageServiceForTest(pageRepo *mockPageRepo, versionRepo *mockVersionRepo, shareRepo *mockShareRepo) *pageService {
	return &pageService{
		pageRepo:    pageRepo,
		versionRepo: versionRepo,
		shareRepo:   shareRepo,
		transactor:  mockTransactor{},
		logger:      zap.NewNop(),
	}
}

func TestPageCreateValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		uid     int64
		title   string
		content string
		wantErr error
	}{
		{
			name:    "anonymous rejected",
			uid:     0,
			title:   "hello",
			wantErr: code.ErrorNotAuthorized,
		},
		{
			name:    "title too long",
			uid:     1,
			title:   strings.Repeat("字", 65),
			wantErr: code.ErrorPageTitleTooLong,
		},
		{
			name:    "title at limit",
			uid:     1,
			title:   strings.Repeat("字", 64),
			wantErr: nil,
		},
		{
			name:    "content too long",
			uid:     1,
			title:   "hello",
			content: strings.Repeat("x", 8193),
			wantErr: code.ErrorPageContentTooLong,
		},
		{
			name:    "content at limit",
			uid:     1,
			title:   "hello",
			content: strings.Repeat("x", 8192),
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newPageServiceForTest(&mockPageRepo{}, &mockVersionRepo{}, &mockShareRepo{})
			got, err := svc.Create(ctx, tt.uid, &dto.PageCreateRequest{Title: tt.title, Content: tt.content})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if got == nil || got.UID != tt.uid {
					t.Errorf("Create() owner = %+v, want uid %d", got, tt.uid)
				}
			}
		})
	}
}

func TestPageUpdateSnapshotsBeforeApply(t *testing.T) {
	ctx := context.Background()
	savedAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	pageRepo := &mockPageRepo{pages: map[int64]*domain.Page{
		1: {ID: 1, UID: 7, Title: "old title", Content: "old content", UpdatedAt: savedAt},
	}}
	versionRepo := &mockVersionRepo{}
	svc := newPageServiceForTest(pageRepo, versionRepo, &mockShareRepo{})

	got, err := svc.Update(ctx, 7, 1, &dto.PageUpdateRequest{Title: "new title", Content: "new content"})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if len(versionRepo.created) != 1 {
		t.Fatalf("snapshot count = %d, want 1", len(versionRepo.created))
	}
	snap := versionRepo.created[0]
	if snap.Title != "old title" || snap.Content != "old content" {
		t.Errorf("snapshot holds %q/%q, want pre edit state", snap.Title, snap.Content)
	}
	if !snap.SavedAt.Equal(savedAt) {
		t.Errorf("snapshot savedAt = %v, want page's previous updatedAt %v", snap.SavedAt, savedAt)
	}
	if got.Title != "new title" || got.Content != "new content" {
		t.Errorf("page after update = %q/%q, want new state", got.Title, got.Content)
	}
}

func TestPageUpdateOwnershipGuard(t *testing.T) {
	ctx := context.Background()
	pageRepo := &mockPageRepo{pages: map[int64]*domain.Page{
		1: {ID: 1, UID: 7, Title: "t", Content: "c"},
	}}
	versionRepo := &mockVersionRepo{}
	svc := newPageServiceForTest(pageRepo, versionRepo, &mockShareRepo{})

	tests := []struct {
		name    string
		uid     int64
		pageID  int64
		wantErr error
	}{
		{name: "non owner rejected", uid: 8, pageID: 1, wantErr: code.ErrorNotPageOwner},
		{name: "anonymous rejected", uid: 0, pageID: 1, wantErr: code.ErrorNotAuthorized},
		{name: "missing page", uid: 7, pageID: 99, wantErr: code.ErrorPageNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, tt.uid, tt.pageID, &dto.PageUpdateRequest{Title: "x", Content: "y"})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Update() error = %v, want %v", err, tt.wantErr)
			}
			if len(versionRepo.created) != 0 {
				t.Errorf("rejected update must not snapshot, got %d snapshots", len(versionRepo.created))
			}
		})
	}
}

func TestPageDeleteCleansGrantsFirst(t *testing.T) {
	ctx := context.Background()
	var trace []string

	pageRepo := &mockPageRepo{
		pages: map[int64]*domain.Page{1: {ID: 1, UID: 7}},
		trace: &trace,
	}
	versionRepo := &mockVersionRepo{
		versions: map[int64]*domain.PageVersion{10: {ID: 10, PageID: 1}},
		nextID:   10,
		trace:    &trace,
	}
	shareRepo := &mockShareRepo{
		grants: map[int64][]domain.ShareTarget{1: {domain.UserTarget(8), domain.GroupTarget(3)}},
		trace:  &trace,
	}
	svc := newPageServiceForTest(pageRepo, versionRepo, shareRepo)

	if err := svc.Delete(ctx, 7, 1); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if len(shareRepo.grants[1]) != 0 {
		t.Errorf("grants remain after delete: %v", shareRepo.grants[1])
	}
	if len(versionRepo.versions) != 0 {
		t.Errorf("versions remain after delete: %v", versionRepo.versions)
	}
	if _, ok := pageRepo.pages[1]; ok {
		t.Error("page remains after delete")
	}

	// 授权先于页面本身删除，不存在指向已删页面的授权窗口
	want := []string{"share.DeleteByPageID", "version.DeleteByPageID", "page.Delete"}
	if len(trace) != len(want) {
		t.Fatalf("operation order = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("operation order = %v, want %v", trace, want)
		}
	}
}

func TestPageGetOwnerOnly(t *testing.T) {
	ctx := context.Background()
	pageRepo := &mockPageRepo{pages: map[int64]*domain.Page{
		1: {ID: 1, UID: 7, ViewCount: 5},
	}}
	svc := newPageServiceForTest(pageRepo, &mockVersionRepo{}, &mockShareRepo{})

	got, err := svc.Get(ctx, 7, 1)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.ViewCount != 5 {
		t.Errorf("ViewCount = %d, want 5", got.ViewCount)
	}
	if len(pageRepo.viewIncIDs) != 0 {
		t.Error("owner read must not increment view count")
	}

	if _, err := svc.Get(ctx, 8, 1); !errors.Is(err, code.ErrorNotPageOwner) {
		t.Errorf("Get() by non owner error = %v, want %v", err, code.ErrorNotPageOwner)
	}
}
