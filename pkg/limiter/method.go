package limiter

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// MethodLimiter rate limits by URI prefix // 按 URI 前缀限流
type MethodLimiter struct {
	rules   []BucketRule
	buckets map[string]*ratelimit.Bucket
}

func NewMethodLimiter() Face {
	return &MethodLimiter{
		buckets: map[string]*ratelimit.Bucket{},
	}
}

// Key strips the query string from the request URI
// Key 取请求 URI，去掉查询串
func (l *MethodLimiter) Key(c *gin.Context) string {
	uri := c.Request.RequestURI
	index := strings.Index(uri, "?")
	if index == -1 {
		return uri
	}
	return uri[:index]
}

// GetBucket matches the longest registered prefix
// GetBucket 按最长注册前缀匹配
func (l *MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	var matched string
	for _, rule := range l.rules {
		if strings.HasPrefix(key, rule.Key) && len(rule.Key) > len(matched) {
			matched = rule.Key
		}
	}
	if matched == "" {
		return nil, false
	}
	bucket, ok := l.buckets[matched]
	return bucket, ok
}

func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	for _, rule := range rules {
		if _, ok := l.buckets[rule.Key]; ok {
			continue
		}
		l.rules = append(l.rules, rule)
		l.buckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
	}
	return l
}
