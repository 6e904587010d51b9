package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// cacheEntry is the JSON body stored in Redis together with the status
// code it was served with.
type cacheEntry struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// captureWriter buffers the response body while forwarding it to the
// client so a successful response can be stored after the handler ran.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// CacheGET returns a middleware that caches successful GET responses in
// Redis under a fixed key prefix plus the request URI, for the given
// TTL. It is applied to the public event listing only: the collection
// is reloaded after every mutation anyway, so a short TTL merely
// absorbs bursts of identical reads. When rdb is nil the middleware is
// a no-op, matching how the Redis client degrades at startup.
func CacheGET(rdb *redis.Client, prefix string, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := prefix + ":" + c.Request().RequestURI
			ctx := c.Request().Context()

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var entry cacheEntry
				if json.Unmarshal(raw, &entry) == nil && entry.Status != 0 {
					return c.JSONBlob(entry.Status, entry.Body)
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK && cw.buf.Len() > 0 {
				if raw, err := json.Marshal(cacheEntry{Status: cw.status, Body: cw.buf.Bytes()}); err == nil {
					_ = rdb.Set(ctx, key, raw, ttl).Err()
				}
			}
			return nil
		}
	}
}
