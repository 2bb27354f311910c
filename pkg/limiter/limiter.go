// Package limiter 基于令牌桶的接口限流
package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face limiter interface // 限流器接口
type Face interface {
	// Key 从请求中提取限流键
	Key(c *gin.Context) string
	// GetBucket 按键获取令牌桶
	GetBucket(key string) (*ratelimit.Bucket, bool)
	// AddBuckets 注册限流规则
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule token bucket rule for one key // 单个键的令牌桶规则
type BucketRule struct {
	// Key 限流键，按 URI 前缀匹配
	Key string
	// FillInterval 放入令牌的间隔
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次放入的令牌数
	Quantum int64
}
