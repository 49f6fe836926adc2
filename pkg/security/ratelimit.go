package security

import (
	"context"
	"fmt"
	"microhabits_backend/pkg/logger"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Limiter 判断某个 key 在当前窗口内是否还能继续请求
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	SetLimit(maxRequests int, window time.Duration)
}

// visitor 包装限流器和最后活跃时间，用于定期清理
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter 单进程令牌桶，按 key 各自计数
type MemoryLimiter struct {
	mu     sync.Mutex
	store  map[string]*visitor
	limit  rate.Limit
	burst  int
	window time.Duration
}

func NewMemoryLimiter(maxRequests int, window time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{store: make(map[string]*visitor)}
	l.SetLimit(maxRequests, window)
	go l.cleanup()
	return l
}

func normalize(maxRequests int, window time.Duration) (int, time.Duration) {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return maxRequests, window
}

// SetLimit 配置热更新时调用，已存在的 visitor 同步调整
func (l *MemoryLimiter) SetLimit(maxRequests int, window time.Duration) {
	maxRequests, window = normalize(maxRequests, window)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.limit = rate.Every(window / time.Duration(maxRequests))
	l.burst = maxRequests
	l.window = window
	for _, v := range l.store {
		v.limiter.SetLimit(l.limit)
		v.limiter.SetBurst(l.burst)
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	v, exists := l.store[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.store[key] = v
	}
	v.lastSeen = time.Now()
	l.mu.Unlock()

	return v.limiter.Allow(), nil
}

func (l *MemoryLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		expiry := l.window * 3
		if expiry < time.Minute {
			expiry = time.Minute
		}
		for key, v := range l.store {
			if time.Since(v.lastSeen) > expiry {
				delete(l.store, key)
			}
		}
		l.mu.Unlock()
	}
}

// RedisLimiter 固定窗口计数，多实例部署时共享配额
type RedisLimiter struct {
	Client *redis.Client

	mu          sync.RWMutex
	maxRequests int64
	window      time.Duration
}

func NewRedisLimiter(client *redis.Client, maxRequests int, window time.Duration) *RedisLimiter {
	l := &RedisLimiter{Client: client}
	l.SetLimit(maxRequests, window)
	return l
}

func (l *RedisLimiter) SetLimit(maxRequests int, window time.Duration) {
	maxRequests, window = normalize(maxRequests, window)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.maxRequests = int64(maxRequests)
	l.window = window
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.RLock()
	maxRequests, window := l.maxRequests, l.window
	l.mu.RUnlock()

	slot := time.Now().UnixNano() / int64(window)
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, slot)

	pipe := l.Client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= maxRequests, nil
}

// RateLimit 限流中间件 按客户端IP限流；后端出错时放行并记录日志
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Log.Warn("Rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "too many requests",
			})
			return
		}

		c.Next()
	}
}
