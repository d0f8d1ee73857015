package diplomacy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/pkg/errors"
)

func TestTreatyService_CreateTreaty(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	treaty, err := env.treaties.CreateTreaty(ctx, CreateTreatyInput{
		Name:    "贸易协定",
		Type:    entity.TreatyTypeTrade,
		Parties: []string{"elves", "orcs"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, treaty.ID)
	assert.Equal(t, entity.TreatyStatusActive, treaty.Status)

	// 签署方信任上调
	rel, err := env.tension.FindRelationship(ctx, "elves", "orcs")
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, 60, rel.TrustLevel)
	assert.Equal(t, entity.StatusNeutral, rel.Status)

	require.Len(t, env.events.byType(entity.EventTreatyCreated), 1)
}

func TestTreatyService_CreateAllianceTreaty_SetsAllianceStatus(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	_, err := env.treaties.CreateTreaty(ctx, CreateTreatyInput{
		Name:    "三方同盟",
		Type:    entity.TreatyTypeAlliance,
		Parties: []string{"elves", "orcs", "dwarves"},
	})
	require.NoError(t, err)

	// 三方两两关系全部显式结盟
	require.Len(t, env.relationships.byPair, 3)
	for _, pair := range [][2]string{{"elves", "orcs"}, {"dwarves", "elves"}, {"dwarves", "orcs"}} {
		rel, err := env.tension.FindRelationship(ctx, pair[0], pair[1])
		require.NoError(t, err)
		require.NotNil(t, rel)
		assert.Equal(t, entity.StatusAlliance, rel.Status)
	}
}

func TestTreatyService_CreateTreaty_Invalid(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	_, err := env.treaties.CreateTreaty(ctx, CreateTreatyInput{
		Name:    "单方条约",
		Type:    entity.TreatyTypePeace,
		Parties: []string{"elves"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsAppError(err))
	// 校验失败时不产生任何副作用
	assert.Empty(t, env.treatyRepo.byID)
	assert.Empty(t, env.events.events)
}

func TestTreatyService_ViolationLifecycle(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	treaty, err := env.treaties.CreateTreaty(ctx, CreateTreatyInput{
		Name:    "和平条约",
		Type:    entity.TreatyTypePeace,
		Parties: []string{"elves", "orcs"},
	})
	require.NoError(t, err)

	violation, err := env.treaties.ReportViolation(ctx, treaty.ID, ReportViolationInput{
		ViolatorID:  "orcs",
		Description: "crossed the demilitarized zone",
		Severity:    40,
	})
	require.NoError(t, err)
	// 未指明受害方时取首个非违约方
	assert.Equal(t, "elves", violation.VictimID)

	got, err := env.treaties.GetTreaty(ctx, treaty.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TreatyStatusViolated, got.Status)

	// 紧张度按严重度上调
	rel, err := env.tension.FindRelationship(ctx, "elves", "orcs")
	require.NoError(t, err)
	assert.Equal(t, 40, rel.TensionLevel)
	assert.Equal(t, entity.StatusTense, rel.Status)

	// 全部违约解决后条约恢复生效
	resolved, err := env.treaties.ResolveViolation(ctx, violation.ID)
	require.NoError(t, err)
	assert.False(t, resolved.Open())

	got, err = env.treaties.GetTreaty(ctx, treaty.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TreatyStatusActive, got.Status)
}

func TestTreatyService_ResolveViolation_TreatyStaysViolatedWhileOpenRemain(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	treaty, err := env.treaties.CreateTreaty(ctx, CreateTreatyInput{
		Name:    "和平条约",
		Type:    entity.TreatyTypePeace,
		Parties: []string{"elves", "orcs"},
	})
	require.NoError(t, err)

	first, err := env.treaties.ReportViolation(ctx, treaty.ID, ReportViolationInput{
		ViolatorID: "orcs", Description: "raid one", Severity: 10,
	})
	require.NoError(t, err)
	_, err = env.treaties.ReportViolation(ctx, treaty.ID, ReportViolationInput{
		ViolatorID: "orcs", Description: "raid two", Severity: 10,
	})
	require.NoError(t, err)

	_, err = env.treaties.ResolveViolation(ctx, first.ID)
	require.NoError(t, err)

	got, err := env.treaties.GetTreaty(ctx, treaty.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TreatyStatusViolated, got.Status)
}

func TestTreatyService_ExpireTreaty(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	end := time.Now().Add(24 * time.Hour)
	treaty, err := env.treaties.CreateTreaty(ctx, CreateTreatyInput{
		Name:    "停火协议",
		Type:    entity.TreatyTypeCeasefire,
		Parties: []string{"a", "b"},
		EndDate: &end,
	})
	require.NoError(t, err)

	expired, err := env.treaties.ExpireTreaty(ctx, treaty.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TreatyStatusExpired, expired.Status)

	// 幂等：重复过期不报错
	again, err := env.treaties.ExpireTreaty(ctx, treaty.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TreatyStatusExpired, again.Status)
	require.Len(t, env.events.byType(entity.EventTreatyExpired), 1)
}

func TestTreatyService_GetTreaty_NotFound(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	_, err := env.treaties.GetTreaty(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrTreatyNotFound)
}
