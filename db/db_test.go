package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/minblog-go/apperror"
	"github.com/user/minblog-go/config"
)

func TestIsTransient(t *testing.T) {
	t.Parallel()

	t.Run("nil is not transient", func(t *testing.T) {
		t.Parallel()
		assert.False(t, IsTransient(nil))
	})

	t.Run("deadline exceeded is transient", func(t *testing.T) {
		t.Parallel()
		assert.True(t, IsTransient(context.DeadlineExceeded))
		assert.True(t, IsTransient(fmt.Errorf("query posts: %w", context.DeadlineExceeded)))
	})

	t.Run("network errors are transient", func(t *testing.T) {
		t.Parallel()
		netErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
		assert.True(t, IsTransient(netErr))
		assert.True(t, IsTransient(fmt.Errorf("exec: %w", netErr)))
	})

	t.Run("ordinary errors are not transient", func(t *testing.T) {
		t.Parallel()
		assert.False(t, IsTransient(errors.New("duplicate key value violates unique constraint")))
	})
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	t.Run("transient cause maps to unavailable", func(t *testing.T) {
		t.Parallel()
		appErr := StoreError("failed to list posts", context.DeadlineExceeded)
		assert.Equal(t, apperror.UnavailableError, appErr.Type)
		assert.Equal(t, "failed to list posts", appErr.Message)
		assert.ErrorIs(t, appErr, context.DeadlineExceeded)
	})

	t.Run("permanent cause maps to database error", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("relation \"posts\" does not exist")
		appErr := StoreError("failed to get post", cause)
		assert.Equal(t, apperror.DatabaseError, appErr.Type)
		assert.ErrorIs(t, appErr, cause)
	})
}

func TestNewPoolRejectsBadConfig(t *testing.T) {
	t.Parallel()

	// A space in the host makes pgxpool.ParseConfig fail before any network
	// activity happens, so this stays a pure unit test.
	start := time.Now()
	_, err := NewPool(&config.PoolConfig{
		Host:     "bad host",
		Port:     5432,
		User:     "minblog",
		Password: "secret",
		DBName:   "minblog_db",
		MaxSize:  5,
	})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.DatabaseError, appErr.Type)
}
