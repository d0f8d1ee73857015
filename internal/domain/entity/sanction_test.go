package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanction_RecordViolation(t *testing.T) {
	now := time.Now()
	s := NewSanction("empire", "pirates", "trade embargo", 40, 15)
	require.Equal(t, SanctionActive, s.Status)

	require.NoError(t, s.RecordViolation("v1", "smuggling run", now))
	assert.Equal(t, SanctionViolated, s.Status)
	require.Len(t, s.Violations, 1)

	// violated 状态允许继续累计违规
	require.NoError(t, s.RecordViolation("v2", "another run", now))
	require.Len(t, s.Violations, 2)

	require.NoError(t, s.Lift(now))
	assert.Equal(t, SanctionLifted, s.Status)
	require.NotNil(t, s.LiftedAt)

	assert.ErrorIs(t, s.RecordViolation("v3", "late run", now), ErrSanctionNotActive)
	assert.ErrorIs(t, s.Lift(now), ErrSanctionNotActive)
}

func TestSanction_ImpactClamped(t *testing.T) {
	s := NewSanction("a", "b", "heavy embargo", 250, 15)
	assert.Equal(t, 100, s.Impact)
}

func TestSanction_Expire(t *testing.T) {
	now := time.Now()
	s := NewSanction("a", "b", "embargo", 30, 10)
	assert.False(t, s.IsExpired(now))

	end := now.Add(-time.Hour)
	s.EndDate = &end
	assert.True(t, s.IsExpired(now))

	s.Expire(now)
	assert.Equal(t, SanctionExpired, s.Status)
	assert.False(t, s.IsExpired(now))
}

func TestDiplomaticIncident_Lifecycle(t *testing.T) {
	now := time.Now()
	i := NewDiplomaticIncident("orcs", "elves", "border raid", 60, 25)
	assert.True(t, i.Open())

	i.Acknowledge(now)
	assert.True(t, i.Open())
	require.NotNil(t, i.AcknowledgedAt)

	i.Resolve(now)
	assert.False(t, i.Open())
	require.NotNil(t, i.ResolvedAt)
}

func TestTreatyViolation_Lifecycle(t *testing.T) {
	now := time.Now()
	v := NewTreatyViolation("t1", "orcs", "elves", "crossed the border", 50)
	assert.True(t, v.Open())

	v.Acknowledge(now)
	assert.True(t, v.Open())

	v.Resolve(now)
	assert.False(t, v.Open())
}
