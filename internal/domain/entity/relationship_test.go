package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	a, b := CanonicalPair("empire", "dwarves")
	assert.Equal(t, "dwarves", a)
	assert.Equal(t, "empire", b)

	// 已经有序时保持不变
	a, b = CanonicalPair("dwarves", "empire")
	assert.Equal(t, "dwarves", a)
	assert.Equal(t, "empire", b)
}

func TestPairKey_Symmetric(t *testing.T) {
	assert.Equal(t, PairKey("empire", "dwarves"), PairKey("dwarves", "empire"))
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, 0},
		{0, 0},
		{57, 57},
		{100, 100},
		{140, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampScore(tt.in))
	}
}

func TestNewFactionRelationship_Canonicalizes(t *testing.T) {
	rel := NewFactionRelationship("orcs", "elves", 50)

	assert.Equal(t, "elves", rel.FactionAID)
	assert.Equal(t, "orcs", rel.FactionBID)
	assert.Equal(t, StatusNeutral, rel.Status)
	assert.Equal(t, 50, rel.TrustLevel)
	assert.Equal(t, 0, rel.TensionLevel)
}

func TestFactionRelationship_ApplyDeltas_Clamped(t *testing.T) {
	rel := NewFactionRelationship("a", "b", 50)

	rel.ApplyTensionDelta(81)
	assert.Equal(t, 81, rel.TensionLevel)

	// 过冲收敛到边界
	rel.ApplyTensionDelta(40)
	assert.Equal(t, 100, rel.TensionLevel)

	rel.ApplyTensionDelta(-85)
	assert.Equal(t, 15, rel.TensionLevel)

	rel.ApplyTrustDelta(-60)
	assert.Equal(t, 0, rel.TrustLevel)
}

func TestDiplomaticStatus_Valid(t *testing.T) {
	for _, s := range []DiplomaticStatus{StatusNeutral, StatusFriendly, StatusAlliance, StatusTense, StatusHostile, StatusWar} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, DiplomaticStatus("annexed").Valid())
	assert.False(t, DiplomaticStatus("").Valid())
}
