package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreaty_Validate(t *testing.T) {
	tr := NewTreaty("东西和约", TreatyTypePeace, []string{"east", "west"})
	require.NoError(t, tr.Validate())

	tr.Parties = StringSlice{"east"}
	assert.ErrorIs(t, tr.Validate(), ErrTreatyTooFewParties)

	tr.Parties = StringSlice{"east", "west"}
	end := tr.StartDate.Add(-time.Hour)
	tr.EndDate = &end
	assert.ErrorIs(t, tr.Validate(), ErrTreatyDateOrder)

	// 结束日期等于开始日期同样非法
	tr.EndDate = &tr.StartDate
	assert.ErrorIs(t, tr.Validate(), ErrTreatyDateOrder)
}

func TestTreaty_DurationDays(t *testing.T) {
	tr := NewTreaty("贸易协定", TreatyTypeTrade, []string{"a", "b"})
	assert.Equal(t, 0, tr.DurationDays())

	end := tr.StartDate.Add(30 * 24 * time.Hour)
	tr.EndDate = &end
	assert.Equal(t, 30, tr.DurationDays())
}

func TestTreaty_StatusLifecycle(t *testing.T) {
	tr := NewTreaty("停火协议", TreatyTypeCeasefire, []string{"a", "b"})
	assert.True(t, tr.IsActive())

	tr.MarkViolated()
	assert.Equal(t, TreatyStatusViolated, tr.Status)
	assert.False(t, tr.IsActive())

	tr.Reactivate()
	assert.True(t, tr.IsActive())

	tr.MarkExpired()
	assert.Equal(t, TreatyStatusExpired, tr.Status)
}

func TestTreaty_IsExpired(t *testing.T) {
	tr := NewTreaty("同盟条约", TreatyTypeAlliance, []string{"a", "b"})
	now := time.Now()
	assert.False(t, tr.IsExpired(now))

	end := now.Add(-time.Minute)
	tr.EndDate = &end
	assert.True(t, tr.IsExpired(now))
}

func TestTreaty_PairsOf(t *testing.T) {
	tr := NewTreaty("三方同盟", TreatyTypeAlliance, []string{"orcs", "elves", "dwarves"})
	pairs := tr.PairsOf()
	require.Len(t, pairs, 3)
	// 每对都是规范化顺序
	for _, p := range pairs {
		assert.Less(t, p[0], p[1])
	}
	assert.Contains(t, pairs, [2]string{"elves", "orcs"})
	assert.Contains(t, pairs, [2]string{"dwarves", "elves"})
	assert.Contains(t, pairs, [2]string{"dwarves", "orcs"})
}

func TestTreatyType_Valid(t *testing.T) {
	for _, typ := range []TreatyType{TreatyTypeAlliance, TreatyTypeTrade, TreatyTypePeace, TreatyTypeNonAggression, TreatyTypeCeasefire} {
		assert.True(t, typ.Valid(), string(typ))
	}
	assert.False(t, TreatyType("vassalage").Valid())
}
