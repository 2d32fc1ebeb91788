package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/luewire/DailyFlow-HabitTracker/internal/infrastructure/cache"
)

// CacheMiddleware caches successful GET responses per user and path.
type CacheMiddleware struct {
	cache  *cache.RedisClient
	prefix string
	ttl    time.Duration
}

func NewCacheMiddleware(redisClient *cache.RedisClient, prefix string, ttl time.Duration) *CacheMiddleware {
	return &CacheMiddleware{
		cache:  redisClient,
		prefix: prefix,
		ttl:    ttl,
	}
}

// responseBuffer mirrors the response body so it can be cached after the
// handler ran.
type responseBuffer struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBuffer) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseBuffer) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

func (m *CacheMiddleware) cacheKey(c *gin.Context) string {
	userID, _ := GetUserID(c)
	key := fmt.Sprintf("%s:%s:%s", m.prefix, userID, c.Request.URL.Path)
	if raw := c.Request.URL.RawQuery; raw != "" {
		key += "?" + raw
	}
	return key
}

// CacheResponse serves cached JSON for GET requests and stores fresh
// responses on the way out. Cache failures fall through to the handler.
func (m *CacheMiddleware) CacheResponse() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.cache == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := m.cacheKey(c)
		var cached json.RawMessage
		if err := m.cache.GetJSON(c.Request.Context(), key, &cached); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		buff := &responseBuffer{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = buff
		c.Next()

		if c.Writer.Status() == http.StatusOK && buff.body.Len() > 0 {
			if err := m.cache.SetJSON(c.Request.Context(), key, json.RawMessage(buff.body.Bytes()), m.ttl); err != nil {
				log.Warn("Failed to cache response", zap.String("key", key), zap.Error(err))
			}
		}
	}
}

// CacheInvalidate drops every cached response of the calling user after a
// successful mutation.
func (m *CacheMiddleware) CacheInvalidate() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if m.cache == nil || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserID(c)
		if !ok {
			return
		}
		pattern := fmt.Sprintf("%s:%s:*", m.prefix, userID)
		if err := m.cache.InvalidatePattern(c.Request.Context(), pattern); err != nil {
			log.Warn("Failed to invalidate cache", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}
