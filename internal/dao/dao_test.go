package dao

import (
	"context"
	"errors"
	"testing"

	"github.com/campuslog/page-share-service/internal/domain"

	"github.com/gookit/goutil/dump"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// newTestDao 使用内存 SQLite 构建 Dao
func newTestDao(t *testing.T) *Dao {
	t.Helper()

	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type:            "sqlite",
		Path:            ":memory:",
		AutoMigrate:     true,
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: "30m",
		ConnMaxIdleTime: "10m",
	}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	return New(db, zap.NewNop())
}

func TestPageRepository(t *testing.T) {
	d := newTestDao(t)
	repo := NewPageRepository(d)
	ctx := context.Background()

	page, err := repo.Create(ctx, &domain.Page{
		UID:     1,
		Title:   "testTitle",
		Content: "testContent",
	})

	dump.P(page)

	assert.Nil(t, err)
	assert.NotZero(t, page.ID)
	assert.Equal(t, "testTitle", page.Title)
	assert.Equal(t, "testContent", page.Content)
	assert.Equal(t, int64(0), page.ViewCount)

	// 计数自增
	assert.Nil(t, repo.IncrementViewCount(ctx, page.ID))
	assert.Nil(t, repo.IncrementViewCount(ctx, page.ID))

	got, err := repo.GetByID(ctx, page.ID)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), got.ViewCount)

	// 更新标题与内容
	got.Title = "updatedTitle"
	got.Content = "updatedContent"
	assert.Nil(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, page.ID)
	assert.Nil(t, err)
	assert.Equal(t, "updatedTitle", got.Title)
	assert.Equal(t, "updatedContent", got.Content)

	pages, count, err := repo.ListByUID(ctx, 1, 1, 10)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), count)
	assert.Len(t, pages, 1)

	assert.Nil(t, repo.Delete(ctx, page.ID))
	_, err = repo.GetByID(ctx, page.ID)
	assert.NotNil(t, err)
}

func TestShareRepository(t *testing.T) {
	d := newTestDao(t)
	repo := NewShareRepository(d)
	ctx := context.Background()

	userGrant := domain.UserTarget(8)
	groupGrant := domain.GroupTarget(2)

	// 重复添加为无操作
	assert.Nil(t, repo.Add(ctx, 5, userGrant))
	assert.Nil(t, repo.Add(ctx, 5, userGrant))
	assert.Nil(t, repo.Add(ctx, 5, groupGrant))

	targets, err := repo.ListTargets(ctx, 5)
	assert.Nil(t, err)
	assert.Len(t, targets, 2)

	ok, err := repo.Exists(ctx, 5, userGrant)
	assert.Nil(t, err)
	assert.True(t, ok)

	gids, err := repo.ListGroupIDs(ctx, 5)
	assert.Nil(t, err)
	assert.Equal(t, []int64{2}, gids)

	pageIDs, err := repo.ListPageIDs(ctx, []domain.ShareTarget{userGrant, groupGrant})
	assert.Nil(t, err)
	assert.Equal(t, []int64{5}, pageIDs)

	// 删除群组名下的分享关系，用户直连关系保留
	assert.Nil(t, repo.DeleteByTarget(ctx, groupGrant))
	targets, err = repo.ListTargets(ctx, 5)
	assert.Nil(t, err)
	assert.Len(t, targets, 1)
	assert.Equal(t, domain.TargetKindUser, targets[0].Kind)

	assert.Nil(t, repo.DeleteByPageID(ctx, 5))
	targets, err = repo.ListTargets(ctx, 5)
	assert.Nil(t, err)
	assert.Len(t, targets, 0)
}

func TestWithinTxRollback(t *testing.T) {
	d := newTestDao(t)
	repo := NewPageRepository(d)
	ctx := context.Background()

	wantErr := errors.New("boom")
	err := d.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, &domain.Page{UID: 1, Title: "t", Content: "c"}); err != nil {
			return err
		}
		return wantErr
	})
	assert.Equal(t, wantErr, err)

	// 事务回滚后页面不存在
	_, count, err := repo.ListByUID(ctx, 1, 1, 10)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), count)
}
