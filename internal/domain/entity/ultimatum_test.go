package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUltimatum_Respond(t *testing.T) {
	now := time.Now()
	deadline := now.Add(24 * time.Hour)

	u := NewUltimatum("empire", "rebels", "withdraw from the border", deadline, 10, 10)
	require.Equal(t, UltimatumPending, u.Status)

	require.NoError(t, u.Accept(now))
	assert.Equal(t, UltimatumAccepted, u.Status)
	require.NotNil(t, u.RespondedAt)
	assert.Equal(t, now, *u.RespondedAt)

	// 终态后拒绝一切再次响应
	assert.ErrorIs(t, u.Reject(now), ErrUltimatumNotPending)
	assert.ErrorIs(t, u.Accept(now), ErrUltimatumNotPending)
	assert.ErrorIs(t, u.Expire(now), ErrUltimatumNotPending)
}

func TestUltimatum_RejectAndExpire(t *testing.T) {
	now := time.Now()
	deadline := now.Add(time.Hour)

	u := NewUltimatum("empire", "rebels", "pay tribute", deadline, 5, 15)
	require.NoError(t, u.Reject(now))
	assert.Equal(t, UltimatumRejected, u.Status)

	u2 := NewUltimatum("empire", "rebels", "pay tribute", deadline, 5, 15)
	require.NoError(t, u2.Expire(now))
	assert.Equal(t, UltimatumExpired, u2.Status)
}

func TestUltimatum_IsExpired(t *testing.T) {
	now := time.Now()
	u := NewUltimatum("a", "b", "demand", now.Add(-time.Minute), 0, 10)
	assert.True(t, u.IsExpired(now))

	u.Deadline = now.Add(time.Minute)
	assert.False(t, u.IsExpired(now))

	// 已响应的通牒不再视为过期
	u.Deadline = now.Add(-time.Minute)
	require.NoError(t, u.Accept(now))
	assert.False(t, u.IsExpired(now))
}
