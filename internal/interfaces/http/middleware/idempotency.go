package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"warranty-register.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time the lock is held while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long a completed response is kept for replay
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type bodyCapture struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// WriteString must mirror Write; gin handlers that render via c.String take
// this path instead.
func (w bodyCapture) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// IdempotencyMiddleware makes registration requests safe to retry. Clients
// send an Idempotency-Key header; a retried request with the same key replays
// the stored response instead of creating a second record. The stored value
// is scoped to the authenticated API key so two clients cannot collide.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		idemKey := c.GetHeader(IdempotencyHeader)
		if idemKey == "" {
			c.Next()
			return
		}

		scope := "anonymous"
		if key, ok := GetApiKey(c); ok {
			scope = strconv.FormatUint(uint64(key.ID), 10)
		}
		storageKey := fmt.Sprintf("idempotency:%s:%s", scope, idemKey)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == processingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"code":    "ERR_IDEMPOTENCY_CONFLICT",
					"message": "Request already in progress",
				})
				return
			}
			replayStored(c, val)
			return
		}
		// on redis failure, fail open; retries just lose their dedup guarantee

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err == nil && !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "ERR_IDEMPOTENCY_CONFLICT",
				"message": "Request already in progress",
			})
			return
		}

		w := &bodyCapture{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			stored := fmt.Sprintf("%d\n%s", status, w.body.String())
			_ = redisSet(ctx, storageKey, stored, RetentionDuration)
		} else {
			// release the key so the client can retry a failed request
			_ = redisDel(ctx, storageKey)
		}
	}
}

// replayStored writes back a response stored as "<status>\n<body>"
func replayStored(c *gin.Context, stored string) {
	status := http.StatusOK
	body := stored
	if idx := strings.IndexByte(stored, '\n'); idx > 0 {
		if parsed, err := strconv.Atoi(stored[:idx]); err == nil {
			status = parsed
			body = stored[idx+1:]
		}
	}

	c.Header("Content-Type", "application/json")
	c.Header("X-Idempotency-Hit", "true")
	c.String(status, body)
	c.Abort()
}
