package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisAddrPrecedence(t *testing.T) {
	// Host/port pair wins over the addr shorthand when both are set.
	assert.Equal(t, "cache:6380", redisAddr("cache", "6380", "other:6379"))
	assert.Equal(t, "other:6379", redisAddr("", "", "other:6379"))
	// An incomplete pair falls through to the shorthand.
	assert.Equal(t, "other:6379", redisAddr("cache", "", "other:6379"))
	assert.Equal(t, "other:6379", redisAddr("", "6380", "other:6379"))
	assert.Equal(t, "localhost:6379", redisAddr("", "", ""))
}
