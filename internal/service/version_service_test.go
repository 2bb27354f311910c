package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/pkg/code"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

func newVersionServiceForTest(versionRepo *mockVersionRepo, pageRepo *mockPageRepo) *versionService {
	return &versionService{
		versionRepo: versionRepo,
		pageRepo:    pageRepo,
		transactor:  mockTransactor{},
		logger:      zap.NewNop(),
	}
}

func TestRestoreAppliesVersionState(t *testing.T) {
	ctx := context.Background()
	savedAt := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	pageRepo := &mockPageRepo{pages: map[int64]*domain.Page{
		1: {ID: 1, UID: 7, Title: "current", Content: "current body", UpdatedAt: savedAt.Add(time.Hour)},
	}}
	versionRepo := &mockVersionRepo{
		versions: map[int64]*domain.PageVersion{
			10: {ID: 10, PageID: 1, Title: "older", Content: "older body", SavedAt: savedAt},
		},
		nextID: 10,
	}
	svc := newVersionServiceForTest(versionRepo, pageRepo)

	got, err := svc.Restore(ctx, 7, 1, 10)
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	if got.Title != "older" || got.Content != "older body" {
		t.Errorf("restored page = %q/%q, want version state", got.Title, got.Content)
	}

	// 恢复前的当前状态成为新的历史版本
	if len(versionRepo.created) != 1 {
		t.Fatalf("created snapshots = %d, want 1", len(versionRepo.created))
	}
	snap := versionRepo.created[0]
	if snap.Title != "current" || snap.Content != "current body" {
		t.Errorf("snapshot = %q/%q, want the pre restore state", snap.Title, snap.Content)
	}

	// 被消费的版本被删除，总量不变
	if _, ok := versionRepo.versions[10]; ok {
		t.Error("consumed version must be deleted")
	}
	count, _ := versionRepo.CountByPageID(ctx, 1)
	if count != 1 {
		t.Errorf("version count after restore = %d, want 1", count)
	}
}

func TestRestoreGuards(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		uid       int64
		pageID    int64
		versionID int64
		wantErr   error
	}{
		{name: "anonymous rejected", uid: 0, pageID: 1, versionID: 10, wantErr: code.ErrorNotAuthorized},
		{name: "non owner rejected", uid: 8, pageID: 1, versionID: 10, wantErr: code.ErrorNotPageOwner},
		{name: "missing version", uid: 7, pageID: 1, versionID: 99, wantErr: code.ErrorPageVersionNotFound},
		{name: "version of another page", uid: 7, pageID: 1, versionID: 20, wantErr: code.ErrorPageVersionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pageRepo := &mockPageRepo{pages: map[int64]*domain.Page{
				1: {ID: 1, UID: 7, Title: "t", Content: "c"},
				2: {ID: 2, UID: 7},
			}}
			versionRepo := &mockVersionRepo{
				versions: map[int64]*domain.PageVersion{
					10: {ID: 10, PageID: 1},
					20: {ID: 20, PageID: 2},
				},
				nextID: 20,
			}
			svc := newVersionServiceForTest(versionRepo, pageRepo)

			_, err := svc.Restore(ctx, tt.uid, tt.pageID, tt.versionID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Restore() error = %v, want %v", err, tt.wantErr)
			}
			if len(versionRepo.created) != 0 {
				t.Error("rejected restore must not snapshot")
			}
		})
	}
}

// 连续恢复任意次，历史版本数量保持不变
func TestPropertyRestorePreservesVersionCount(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("restore keeps version count", prop.ForAll(
		func(initialVersions int, restores int) bool {
			ctx := context.Background()
			pageRepo := &mockPageRepo{pages: map[int64]*domain.Page{
				1: {ID: 1, UID: 7, Title: "v-current", Content: "c-current"},
			}}
			versionRepo := &mockVersionRepo{versions: map[int64]*domain.PageVersion{}}
			for i := 0; i < initialVersions; i++ {
				_, _ = versionRepo.Create(ctx, &domain.PageVersion{PageID: 1, Title: "v", Content: "c"})
			}
			svc := newVersionServiceForTest(versionRepo, pageRepo)

			before, _ := versionRepo.CountByPageID(ctx, 1)
			for i := 0; i < restores; i++ {
				// 每轮恢复任意一个现存版本
				var pick int64
				for id := range versionRepo.versions {
					pick = id
					break
				}
				if _, err := svc.Restore(ctx, 7, 1, pick); err != nil {
					return false
				}
			}
			after, _ := versionRepo.CountByPageID(ctx, 1)
			return before == after
		},
		gen.IntRange(1, 5),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}

func TestDiscardIsNoopForForeignVersion(t *testing.T) {
	ctx := context.Background()
	pageRepo := &mockPageRepo{pages: map[int64]*domain.Page{
		1: {ID: 1, UID: 7},
		2: {ID: 2, UID: 7},
	}}
	versionRepo := &mockVersionRepo{
		versions: map[int64]*domain.PageVersion{
			10: {ID: 10, PageID: 1},
			20: {ID: 20, PageID: 2},
		},
		nextID: 20,
	}
	svc := newVersionServiceForTest(versionRepo, pageRepo)

	// 不存在的版本，静默无操作
	if err := svc.Discard(ctx, 7, 1, 99); err != nil {
		t.Fatalf("Discard() missing version = %v, want nil", err)
	}
	// 属于其他页面的版本不受影响
	if err := svc.Discard(ctx, 7, 1, 20); err != nil {
		t.Fatalf("Discard() foreign version = %v, want nil", err)
	}
	if _, ok := versionRepo.versions[20]; !ok {
		t.Error("foreign version must not be deleted")
	}

	if err := svc.Discard(ctx, 7, 1, 10); err != nil {
		t.Fatalf("Discard() failed: %v", err)
	}
	if _, ok := versionRepo.versions[10]; ok {
		t.Error("discarded version must be deleted")
	}
}

func TestVersionListOwnerOnlyWithDiff(t *testing.T) {
	ctx := context.Background()
	pageRepo := &mockPageRepo{pages: map[int64]*domain.Page{
		1: {ID: 1, UID: 7, Content: "hello new world"},
	}}
	versionRepo := &mockVersionRepo{
		versions: map[int64]*domain.PageVersion{
			10: {ID: 10, PageID: 1, Content: "hello old world"},
		},
		nextID: 10,
	}
	svc := newVersionServiceForTest(versionRepo, pageRepo)

	if _, _, err := svc.List(ctx, 8, 1, 1, 20); !errors.Is(err, code.ErrorNotPageOwner) {
		t.Fatalf("List() by non owner error = %v, want %v", err, code.ErrorNotPageOwner)
	}

	list, count, err := svc.List(ctx, 7, 1, 1, 20)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if count != 1 || len(list) != 1 {
		t.Fatalf("got %d versions (count %d), want 1", len(list), count)
	}
	if list[0].Diff == "" || !strings.Contains(list[0].Content, "old") {
		t.Errorf("version entry = %+v, want content and diff", list[0])
	}
}
