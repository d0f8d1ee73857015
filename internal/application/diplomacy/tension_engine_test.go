package diplomacy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faction-diplomacy-api/internal/domain/entity"
)

func TestTensionService_FindRelationship_NoSideEffect(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	rel, err := env.tension.FindRelationship(ctx, "elves", "orcs")
	require.NoError(t, err)
	assert.Nil(t, rel)
	assert.Empty(t, env.relationships.byPair)
}

func TestTensionService_GetOrCreate_Materializes(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	rel, err := env.tension.GetOrCreateRelationship(ctx, "orcs", "elves")
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.NotEmpty(t, rel.ID)
	assert.Equal(t, "elves", rel.FactionAID)
	assert.Equal(t, "orcs", rel.FactionBID)
	assert.Equal(t, entity.StatusNeutral, rel.Status)
	assert.Equal(t, 50, rel.TrustLevel)
	assert.Equal(t, 0, rel.TensionLevel)

	// 再次获取命中同一条记录，参数顺序无关
	again, err := env.tension.GetOrCreateRelationship(ctx, "elves", "orcs")
	require.NoError(t, err)
	assert.Equal(t, rel.ID, again.ID)
	assert.Len(t, env.relationships.byPair, 1)
}

func TestTensionService_UpdateTension_CrossesWarThreshold(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	rel, err := env.tension.UpdateTension(ctx, "elves", "orcs", 79, "border skirmish")
	require.NoError(t, err)
	assert.Equal(t, 79, rel.TensionLevel)
	assert.Equal(t, entity.StatusHostile, rel.Status)

	rel, err = env.tension.UpdateTension(ctx, "elves", "orcs", 6, "raid")
	require.NoError(t, err)
	assert.Equal(t, 85, rel.TensionLevel)
	assert.Equal(t, entity.StatusWar, rel.Status)
}

func TestTensionService_UpdateTension_ClampAndDeescalate(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	rel, err := env.tension.UpdateTension(ctx, "a", "b", 81, "escalation")
	require.NoError(t, err)
	assert.Equal(t, 81, rel.TensionLevel)
	assert.Equal(t, entity.StatusWar, rel.Status)

	// 大幅回落：收敛到 0，进入平静区间
	rel, err = env.tension.UpdateTension(ctx, "a", "b", -85, "armistice")
	require.NoError(t, err)
	assert.Equal(t, 0, rel.TensionLevel)
	assert.Equal(t, entity.StatusNeutral, rel.Status)
}

func TestTensionService_SetStatus_OverrideWins(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	// 紧张度处于敌对区间，但显式覆盖优先于阈值推导
	_, err := env.tension.UpdateTension(ctx, "a", "b", 60, "raids")
	require.NoError(t, err)

	rel, err := env.tension.SetStatus(ctx, "a", "b", entity.StatusAlliance, "royal marriage")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAlliance, rel.Status)
	assert.Equal(t, 60, rel.TensionLevel)

	// 后续无覆盖的动作重新走阈值推导
	rel, err = env.tension.UpdateTension(ctx, "a", "b", -55, "peace talks")
	require.NoError(t, err)
	assert.Equal(t, 5, rel.TensionLevel)
	// 平静区间内结盟状态保持
	assert.Equal(t, entity.StatusAlliance, rel.Status)
}

func TestTensionService_AdjustTrust(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	rel, err := env.tension.AdjustTrust(ctx, "a", "b", 25, "gift")
	require.NoError(t, err)
	assert.Equal(t, 75, rel.TrustLevel)
	// 信任过阈且紧张度平静 -> 友好
	assert.Equal(t, entity.StatusFriendly, rel.Status)
}

func TestTensionService_Decay(t *testing.T) {
	policy := DefaultPolicy()
	env := newTestEnv(policy)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rel := entity.NewFactionRelationship("a", "b", 50)
	rel.ID = "rel-1"
	rel.TensionLevel = 30
	rel.Status = entity.StatusTense
	rel.LastInteraction = base
	require.NoError(t, env.relationships.Create(ctx, rel))

	// 3 天未交互：先衰减 3*2，再应用增量
	env.tension.now = func() time.Time { return base.Add(72 * time.Hour) }

	got, err := env.tension.UpdateTension(ctx, "a", "b", 4, "patrol clash")
	require.NoError(t, err)
	assert.Equal(t, 28, got.TensionLevel)
	assert.Equal(t, entity.StatusTense, got.Status)
}

func TestTensionService_Decay_CappedAtZero(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rel := entity.NewFactionRelationship("a", "b", 50)
	rel.ID = "rel-1"
	rel.TensionLevel = 5
	rel.Status = entity.StatusNeutral
	rel.LastInteraction = base
	require.NoError(t, env.relationships.Create(ctx, rel))

	// 衰减量超过当前紧张度时只降到 0，不会变负
	env.tension.now = func() time.Time { return base.Add(30 * 24 * time.Hour) }

	got, err := env.tension.AdjustTrust(ctx, "a", "b", 0, "quiet month")
	require.NoError(t, err)
	assert.Equal(t, 0, got.TensionLevel)
}

func TestTensionService_DecayDisabled(t *testing.T) {
	policy := DefaultPolicy()
	policy.DecayEnabled = false
	env := newTestEnv(policy)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rel := entity.NewFactionRelationship("a", "b", 50)
	rel.ID = "rel-1"
	rel.TensionLevel = 30
	rel.Status = entity.StatusTense
	rel.LastInteraction = base
	require.NoError(t, env.relationships.Create(ctx, rel))

	env.tension.now = func() time.Time { return base.Add(10 * 24 * time.Hour) }

	got, err := env.tension.UpdateTension(ctx, "a", "b", 0, "noop")
	require.NoError(t, err)
	assert.Equal(t, 30, got.TensionLevel)
}
