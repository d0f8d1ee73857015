package diplomacy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/pkg/errors"
)

func TestIncidentService_RecordIncident_EscalatesToWar(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	incident, err := env.incidents.RecordIncident(ctx, RecordIncidentInput{
		PerpetratorID: "orcs",
		VictimID:      "elves",
		IncidentType:  "assassination",
		Description:   "assassinated the elven envoy",
		Severity:      85,
	})
	require.NoError(t, err)
	// 未显式给出紧张度影响时取严重度
	assert.Equal(t, 85, incident.TensionImpact)
	assert.True(t, incident.Open())

	rel, err := env.tension.FindRelationship(ctx, "elves", "orcs")
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, 85, rel.TensionLevel)
	assert.Equal(t, entity.StatusWar, rel.Status)

	events := env.events.byType(entity.EventIncident)
	require.Len(t, events, 1)
	assert.Equal(t, 85, events[0].TensionDeltas[rel.PairKey()])
}

func TestIncidentService_RecordIncident_Validation(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	_, err := env.incidents.RecordIncident(ctx, RecordIncidentInput{
		PerpetratorID: "orcs",
		VictimID:      "orcs",
		Description:   "self harm",
		Severity:      10,
	})
	require.Error(t, err)

	_, err = env.incidents.RecordIncident(ctx, RecordIncidentInput{
		PerpetratorID: "",
		VictimID:      "elves",
		Description:   "no perpetrator",
		Severity:      10,
	})
	require.Error(t, err)
	assert.Empty(t, env.incidentRepo.byID)
}

func TestIncidentService_ResolveIncident_Relief(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	incident, err := env.incidents.RecordIncident(ctx, RecordIncidentInput{
		PerpetratorID: "orcs",
		VictimID:      "elves",
		Description:   "border raid",
		Severity:      60,
	})
	require.NoError(t, err)

	resolved, err := env.incidents.ResolveIncident(ctx, incident.ID)
	require.NoError(t, err)
	assert.False(t, resolved.Open())
	assert.True(t, resolved.Acknowledged)

	// 解决后按系数回落：60 - 30 = 30
	rel, err := env.tension.FindRelationship(ctx, "elves", "orcs")
	require.NoError(t, err)
	assert.Equal(t, 30, rel.TensionLevel)
	assert.Equal(t, entity.StatusTense, rel.Status)

	// 幂等：已解决的事件直接返回
	again, err := env.incidents.ResolveIncident(ctx, incident.ID)
	require.NoError(t, err)
	assert.False(t, again.Open())
	rel, _ = env.tension.FindRelationship(ctx, "elves", "orcs")
	assert.Equal(t, 30, rel.TensionLevel)
}

func TestIncidentService_Acknowledge(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	incident, err := env.incidents.RecordIncident(ctx, RecordIncidentInput{
		PerpetratorID: "orcs",
		VictimID:      "elves",
		Description:   "spy caught",
		Severity:      20,
	})
	require.NoError(t, err)

	acked, err := env.incidents.AcknowledgeIncident(ctx, incident.ID)
	require.NoError(t, err)
	assert.True(t, acked.Acknowledged)
	assert.True(t, acked.Open())
}

func TestIncidentService_GetNotFound(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	_, err := env.incidents.GetIncident(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrIncidentNotFound)
}
