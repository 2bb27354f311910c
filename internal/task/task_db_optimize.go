package task

import (
	"context"
	"time"

	"github.com/campuslog/page-share-service/internal/app"
	"github.com/campuslog/page-share-service/pkg/util"

	"go.uber.org/zap"
)

// DbOptimizeTask periodically compacts the SQLite database file
// DbOptimizeTask 定期整理 SQLite 数据库文件
type DbOptimizeTask struct {
	app      *app.App
	interval time.Duration
}

// Name 返回任务名称
func (t *DbOptimizeTask) Name() string {
	return "DbOptimize"
}

// LoopInterval 返回执行间隔
func (t *DbOptimizeTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 是否立即执行一次
func (t *DbOptimizeTask) IsStartupRun() bool {
	return false
}

// Run 执行整理任务
func (t *DbOptimizeTask) Run(ctx context.Context) error {
	db := t.app.DB.WithContext(ctx)

	if err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
		return err
	}
	if err := db.Exec("VACUUM").Error; err != nil {
		return err
	}

	t.app.Logger().Info("task log",
		zap.String("task", t.Name()),
		zap.String("msg", "success"))

	return nil
}

// NewDbOptimizeTask 创建整理任务,仅对 SQLite 生效
func NewDbOptimizeTask(appContainer *app.App) (Task, error) {
	if appContainer.Config().Database.Type != "sqlite" {
		return nil, nil
	}

	intervalStr := appContainer.Config().App.DbOptimizeInterval
	if intervalStr == "" {
		return nil, nil
	}
	interval, err := util.ParseDuration(intervalStr)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		return nil, nil
	}

	return &DbOptimizeTask{app: appContainer, interval: interval}, nil
}

// init 自动注册整理任务
func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return NewDbOptimizeTask(appContainer)
	})
}
