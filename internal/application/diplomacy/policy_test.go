package diplomacy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"faction-diplomacy-api/internal/domain/entity"
)

func TestPolicy_DeriveStatus(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name    string
		current entity.DiplomaticStatus
		tension int
		trust   int
		want    entity.DiplomaticStatus
	}{
		{"war at threshold", entity.StatusNeutral, 80, 50, entity.StatusWar},
		{"war above threshold", entity.StatusNeutral, 100, 50, entity.StatusWar},
		{"hostile", entity.StatusNeutral, 50, 50, entity.StatusHostile},
		{"tense", entity.StatusNeutral, 25, 50, entity.StatusTense},
		{"calm neutral", entity.StatusTense, 10, 50, entity.StatusNeutral},
		{"calm friendly", entity.StatusTense, 5, 70, entity.StatusFriendly},
		{"calm alliance sticky", entity.StatusAlliance, 0, 30, entity.StatusAlliance},
		{"middle band keeps current", entity.StatusHostile, 20, 50, entity.StatusHostile},
		{"middle band keeps neutral", entity.StatusNeutral, 15, 90, entity.StatusNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.DeriveStatus(tt.current, tt.tension, tt.trust)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicy_DeriveStatus_NeverProducesAlliance(t *testing.T) {
	p := DefaultPolicy()
	for tension := 0; tension <= 100; tension += 5 {
		for trust := 0; trust <= 100; trust += 20 {
			got := p.DeriveStatus(entity.StatusNeutral, tension, trust)
			assert.NotEqual(t, entity.StatusAlliance, got,
				"tension=%d trust=%d", tension, trust)
		}
	}
}

func TestPolicy_ReliefDelta(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, -42, p.ReliefDelta(85))
	assert.Equal(t, -5, p.ReliefDelta(10))
	assert.Equal(t, 0, p.ReliefDelta(0))
	assert.Equal(t, 0, p.ReliefDelta(-10))
}
