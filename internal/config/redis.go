package config

// Redis backs the response cache on the public event listing.  The
// client parameters come from environment variables.  If the connection
// fails during startup the constructor returns nil and callers degrade
// gracefully by disabling caching.

import (
	"context"
	"crypto/tls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client using environment variables.
// Supported variables are:
//   REDIS_HOST and REDIS_PORT - hostname and port of the Redis server
//     (take precedence over REDIS_ADDR when both are set)
//   REDIS_ADDR - host:port shorthand
//   REDIS_PASSWORD - optional password
//   REDIS_DB - database number (default 0)
//   REDIS_TLS - enable TLS when "true" or "1"
// The returned client may be nil if a connection cannot be established.
func NewRedisClient() *redis.Client {
	addr := redisAddr(os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"), os.Getenv("REDIS_ADDR"))
	pwd := os.Getenv("REDIS_PASSWORD")
	dbNum := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if n, err := strconv.Atoi(dbStr); err == nil {
			dbNum = n
		}
	}
	var tlsConf *tls.Config
	if tlsEnv := os.Getenv("REDIS_TLS"); strings.EqualFold(tlsEnv, "true") || tlsEnv == "1" {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      addr,
		Password:  pwd,
		DB:        dbNum,
		TLSConfig: tlsConf,
	})
	// Ping the server with a short timeout.  Return nil on failure.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

// redisAddr resolves the server address: the host/port pair wins when
// both are set, then the addr shorthand, then the localhost default.
func redisAddr(host, port, addr string) string {
	if host != "" && port != "" {
		return host + ":" + port
	}
	if addr != "" {
		return addr
	}
	return "localhost:6379"
}
