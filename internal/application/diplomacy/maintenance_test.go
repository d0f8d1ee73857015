package diplomacy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faction-diplomacy-api/internal/domain/entity"
)

func TestMaintenanceService_SweepAll(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	past := time.Now().Add(-48 * time.Hour)
	endSoon := time.Now().Add(-time.Hour)

	// 已过结束日期的生效条约
	start := time.Now().Add(-30 * 24 * time.Hour)
	treaty, err := env.treaties.CreateTreaty(ctx, CreateTreatyInput{
		Name:      "旧停火协议",
		Type:      entity.TreatyTypeCeasefire,
		Parties:   []string{"a", "b"},
		StartDate: &start,
		EndDate:   &endSoon,
	})
	require.NoError(t, err)

	// 截止未响应的通牒（直接入库绕过未来截止校验）
	ultimatum := entity.NewUltimatum("a", "b", "stand down", past, 5, 20)
	ultimatum.ID = "u-1"
	require.NoError(t, env.ultimatumRepo.Create(ctx, ultimatum))

	// 已过结束日期的制裁
	sanction := entity.NewSanction("a", "c", "expired embargo", 30, 10)
	sanction.ID = "s-1"
	sanction.EndDate = &endSoon
	require.NoError(t, env.sanctionRepo.Create(ctx, sanction))

	// 未到期的制裁不受影响
	future := time.Now().Add(24 * time.Hour)
	active := entity.NewSanction("a", "d", "active embargo", 30, 10)
	active.ID = "s-2"
	active.EndDate = &future
	require.NoError(t, env.sanctionRepo.Create(ctx, active))

	report := env.maintenance.SweepAll(ctx)

	assert.Equal(t, 1, report.ExpiredTreaties)
	assert.Equal(t, 1, report.ExpiredUltimatums)
	assert.Equal(t, 1, report.ExpiredSanctions)
	assert.Equal(t, 0, report.Errors)

	gotTreaty, err := env.treaties.GetTreaty(ctx, treaty.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TreatyStatusExpired, gotTreaty.Status)

	gotUltimatum, err := env.ultimatums.GetUltimatum(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, entity.UltimatumExpired, gotUltimatum.Status)

	// 通牒过期按拒绝后果处理
	rel, err := env.tension.FindRelationship(ctx, "a", "b")
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, 20, rel.TensionLevel)

	gotSanction, err := env.sanctions.GetSanction(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SanctionExpired, gotSanction.Status)

	stillActive, err := env.sanctions.GetSanction(ctx, "s-2")
	require.NoError(t, err)
	assert.Equal(t, entity.SanctionActive, stillActive.Status)

	require.Len(t, env.events.byType(entity.EventUltimatumExpired), 1)
	require.Len(t, env.events.byType(entity.EventSanctionExpired), 1)
	require.Len(t, env.events.byType(entity.EventTreatyExpired), 1)
}

func TestMaintenanceService_SweepAll_Empty(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	report := env.maintenance.SweepAll(context.Background())
	assert.Equal(t, 0, report.ExpiredTreaties)
	assert.Equal(t, 0, report.ExpiredUltimatums)
	assert.Equal(t, 0, report.ExpiredSanctions)
	assert.Equal(t, 0, report.Errors)
}
