// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	User UserServiceConfig // User related config // 用户相关配置
	Page PageServiceConfig // Page related config // 页面相关配置
}

// UserServiceConfig user service configuration
// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	RegisterIsEnable bool // Whether registration is enabled // 注册是否启用
}

// PageServiceConfig page service configuration
// PageServiceConfig 页面服务配置
type PageServiceConfig struct {
	DefaultPageSize int // Default list page size // 默认每页数量
	MaxPageSize     int // Max list page size // 最大每页数量
}
