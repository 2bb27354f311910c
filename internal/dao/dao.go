// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/internal/model"
	"github.com/campuslog/page-share-service/pkg/fileurl"
	"github.com/campuslog/page-share-service/pkg/util"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
}

// Dao 数据访问对象，持有数据库连接并提供事务边界
type Dao struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New 创建 Dao 实例
func New(db *gorm.DB, lg *zap.Logger) *Dao {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Dao{db: db, logger: lg}
}

// DB 获取原始数据库连接
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// Logger 获取日志器
func (d *Dao) Logger() *zap.Logger {
	return d.logger
}

// txKey 事务在 context 中的键
type txKey struct{}

// WithinTx 在单个事务内执行 fn
// fn 收到携带事务的 ctx，期间所有仓储调用都走同一个事务
func (d *Dao) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// 已在事务中则直接复用，避免嵌套事务
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// orm 获取查询入口，ctx 中携带事务时返回事务连接
func (d *Dao) orm(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return d.db.WithContext(ctx)
}

var _ domain.Transactor = (*Dao)(nil)

// NewDBEngineWithConfig 初始化数据库连接
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {

	dialector := newDialector(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	logMode := logger.Default.LogMode(logger.Silent)
	if c.RunMode == "debug" {
		logMode = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logMode,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	// 获取通用数据库对象 sql.DB，配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	if lifetime, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && lifetime > 0 {
		sqlDB.SetConnMaxLifetime(lifetime)
	} else {
		sqlDB.SetConnMaxLifetime(time.Minute * 30)
	}
	if idleTime, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && idleTime > 0 {
		sqlDB.SetConnMaxIdleTime(idleTime)
	}

	if c.AutoMigrate {
		if err := model.AutoMigrateAll(db); err != nil {
			return nil, fmt.Errorf("auto migrate failed: %w", err)
		}
	}

	return db, nil
}

func newDialector(c DatabaseConfig) gorm.Dialector {
	if c.Type == "mysql" {
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	} else if c.Type == "sqlite" {
		if !fileurl.IsExist(c.Path) {
			_ = fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}
