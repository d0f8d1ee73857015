package diplomacy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/pkg/errors"
)

func TestSanctionService_Impose(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	sanction, err := env.sanctions.ImposeSanction(ctx, ImposeSanctionInput{
		ImposerID:    "empire",
		TargetID:     "pirates",
		SanctionType: "embargo",
		Description:  "trade embargo on all ports",
		Impact:       40,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SanctionActive, sanction.Status)
	// 未显式给出紧张度增量时取策略缺省
	assert.Equal(t, 15, sanction.TensionDelta)

	rel, err := env.tension.FindRelationship(ctx, "empire", "pirates")
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, 15, rel.TensionLevel)
	require.Len(t, env.events.byType(entity.EventSanctionImposed), 1)
}

func TestSanctionService_ImposeValidation(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	_, err := env.sanctions.ImposeSanction(ctx, ImposeSanctionInput{
		ImposerID:   "empire",
		TargetID:    "empire",
		Description: "self sanction",
	})
	require.Error(t, err)
	assert.Empty(t, env.sanctionRepo.byID)
}

func TestSanctionService_ViolationEscalates(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	sanction, err := env.sanctions.ImposeSanction(ctx, ImposeSanctionInput{
		ImposerID:    "empire",
		TargetID:     "pirates",
		Description:  "trade embargo",
		Impact:       40,
		TensionDelta: 20,
	})
	require.NoError(t, err)

	violated, err := env.sanctions.RecordSanctionViolation(ctx, sanction.ID, "smuggling convoy intercepted")
	require.NoError(t, err)
	assert.Equal(t, entity.SanctionViolated, violated.Status)
	require.Len(t, violated.Violations, 1)

	// 施加 20 + 违规 20
	rel, err := env.tension.FindRelationship(ctx, "empire", "pirates")
	require.NoError(t, err)
	assert.Equal(t, 40, rel.TensionLevel)
	require.Len(t, env.events.byType(entity.EventSanctionViolated), 1)
}

func TestSanctionService_Lift_Relief(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	sanction, err := env.sanctions.ImposeSanction(ctx, ImposeSanctionInput{
		ImposerID:    "empire",
		TargetID:     "pirates",
		Description:  "trade embargo",
		Impact:       40,
		TensionDelta: 20,
	})
	require.NoError(t, err)

	lifted, err := env.sanctions.LiftSanction(ctx, sanction.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SanctionLifted, lifted.Status)
	require.NotNil(t, lifted.LiftedAt)

	// 解除回落：20 - 10 = 10
	rel, err := env.tension.FindRelationship(ctx, "empire", "pirates")
	require.NoError(t, err)
	assert.Equal(t, 10, rel.TensionLevel)

	// 已解除的制裁不能再记录违规
	_, err = env.sanctions.RecordSanctionViolation(ctx, sanction.ID, "late run")
	require.Error(t, err)
	appErr := errors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeSanctionNotActive, appErr.Code)
}

func TestSanctionService_GetNotFound(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	_, err := env.sanctions.GetSanction(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrSanctionNotFound)
}
