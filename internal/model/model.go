// Package model 定义数据库模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 按模型名执行自动迁移
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "User":
		return db.AutoMigrate(User{})

	case "Page":
		return db.AutoMigrate(Page{})

	case "PageVersion":
		return db.AutoMigrate(PageVersion{})

	case "Group":
		return db.AutoMigrate(Group{})

	case "GroupMember":
		return db.AutoMigrate(GroupMember{})

	case "GroupInvite":
		return db.AutoMigrate(GroupInvite{})

	case "PageShare":
		return db.AutoMigrate(PageShare{})
	}
	return nil
}

// AutoMigrateAll 迁移全部模型
func AutoMigrateAll(db *gorm.DB) error {
	keys := []string{"User", "Page", "PageVersion", "Group", "GroupMember", "GroupInvite", "PageShare"}
	for _, key := range keys {
		if err := AutoMigrate(db, key); err != nil {
			return err
		}
	}
	return nil
}
