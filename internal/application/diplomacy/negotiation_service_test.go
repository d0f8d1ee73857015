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

func TestNegotiationService_FullLifecycle(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	negotiation, err := env.negotiation.StartNegotiation(ctx, StartNegotiationInput{
		Parties:   []string{"elves", "orcs"},
		Initiator: "elves",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.NegotiationPending, negotiation.Status)

	negotiation, err = env.negotiation.MakeOffer(ctx, negotiation.ID, MakeOfferInput{
		Proposer: "elves",
		Terms: entity.JSONMap{
			"treaty_name": "精灵兽人和约",
			"treaty_type": "peace",
			"tribute":     float64(100),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.NegotiationOffered, negotiation.Status)

	negotiation, err = env.negotiation.MakeOffer(ctx, negotiation.ID, MakeOfferInput{
		Proposer: "orcs",
		Terms: entity.JSONMap{
			"treaty_name": "精灵兽人和约",
			"treaty_type": "peace",
			"tribute":     float64(50),
		},
		Message: "counter",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.NegotiationCounterOffered, negotiation.Status)
	require.Len(t, negotiation.Offers, 2)

	accepted, treaty, err := env.negotiation.AcceptOffer(ctx, negotiation.ID, "elves")
	require.NoError(t, err)
	assert.Equal(t, entity.NegotiationAccepted, accepted.Status)
	assert.True(t, accepted.IsTerminal())

	// 接受即产出一份条约，条款来自当前出价
	require.NotNil(t, treaty)
	assert.Equal(t, "精灵兽人和约", treaty.Name)
	assert.Equal(t, entity.TreatyTypePeace, treaty.Type)
	assert.ElementsMatch(t, []string{"elves", "orcs"}, []string(treaty.Parties))
	assert.Equal(t, negotiation.ID, treaty.NegotiationID)
	assert.Len(t, env.treatyRepo.byID, 1)

	// 条约签署附带信任上调
	rel, err := env.tension.FindRelationship(ctx, "elves", "orcs")
	require.NoError(t, err)
	assert.Equal(t, 60, rel.TrustLevel)

	require.Len(t, env.events.byType(entity.EventNegotiationStarted), 1)
	require.Len(t, env.events.byType(entity.EventNegotiationOffer), 2)
	require.Len(t, env.events.byType(entity.EventNegotiationAccepted), 1)
	require.Len(t, env.events.byType(entity.EventTreatyCreated), 1)

	// 终态后继续出价返回冲突
	_, err = env.negotiation.MakeOffer(ctx, negotiation.ID, MakeOfferInput{Proposer: "orcs", Terms: entity.JSONMap{}})
	require.Error(t, err)
	appErr := errors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeInvalidTransition, appErr.Code)
}

func TestNegotiationService_StartValidation(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	_, err := env.negotiation.StartNegotiation(ctx, StartNegotiationInput{
		Parties:   []string{"elves"},
		Initiator: "elves",
	})
	require.Error(t, err)

	_, err = env.negotiation.StartNegotiation(ctx, StartNegotiationInput{
		Parties:   []string{"elves", "orcs"},
		Initiator: "dwarves",
	})
	require.Error(t, err)
}

func TestNegotiationService_OfferGuards(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	deadline := time.Now().Add(-time.Hour)
	expired, err := env.negotiation.StartNegotiation(ctx, StartNegotiationInput{
		Parties:   []string{"elves", "orcs"},
		Initiator: "elves",
		Deadline:  &deadline,
	})
	require.NoError(t, err)

	// 截止已过
	_, err = env.negotiation.MakeOffer(ctx, expired.ID, MakeOfferInput{Proposer: "elves", Terms: entity.JSONMap{}})
	require.Error(t, err)

	open, err := env.negotiation.StartNegotiation(ctx, StartNegotiationInput{
		Parties:   []string{"elves", "orcs"},
		Initiator: "elves",
	})
	require.NoError(t, err)

	// 非谈判方不能出价
	_, err = env.negotiation.MakeOffer(ctx, open.ID, MakeOfferInput{Proposer: "dwarves", Terms: entity.JSONMap{}})
	require.Error(t, err)

	// pending 状态不能直接接受
	_, _, err = env.negotiation.AcceptOffer(ctx, open.ID, "orcs")
	require.Error(t, err)
	appErr := errors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeInvalidTransition, appErr.Code)
}

func TestNegotiationService_Reject(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	negotiation, err := env.negotiation.StartNegotiation(ctx, StartNegotiationInput{
		Parties:   []string{"elves", "orcs"},
		Initiator: "elves",
	})
	require.NoError(t, err)

	rejected, err := env.negotiation.RejectOffer(ctx, negotiation.ID, "orcs")
	require.NoError(t, err)
	assert.Equal(t, entity.NegotiationRejected, rejected.Status)

	// 拒绝不产出条约
	assert.Empty(t, env.treatyRepo.byID)
	require.Len(t, env.events.byType(entity.EventNegotiationRejected), 1)
}

func TestNegotiationService_AcceptWithoutTypedTerms_DefaultsToTrade(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	negotiation, err := env.negotiation.StartNegotiation(ctx, StartNegotiationInput{
		Parties:   []string{"elves", "orcs"},
		Initiator: "elves",
	})
	require.NoError(t, err)

	_, err = env.negotiation.MakeOffer(ctx, negotiation.ID, MakeOfferInput{
		Proposer: "elves",
		Terms:    entity.JSONMap{"tribute": float64(10)},
	})
	require.NoError(t, err)

	_, treaty, err := env.negotiation.AcceptOffer(ctx, negotiation.ID, "orcs")
	require.NoError(t, err)
	assert.Equal(t, entity.TreatyTypeTrade, treaty.Type)
	assert.Equal(t, "Treaty of elves", treaty.Name)
}

func TestNegotiationService_AcceptFailureSuppressesPublish(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	negotiation, err := env.negotiation.StartNegotiation(ctx, StartNegotiationInput{
		Parties:   []string{"elves", "orcs"},
		Initiator: "elves",
	})
	require.NoError(t, err)

	_, err = env.negotiation.MakeOffer(ctx, negotiation.ID, MakeOfferInput{
		Proposer: "elves",
		Terms: entity.JSONMap{
			"treaty_name": "精灵兽人和约",
			"treaty_type": "peace",
		},
	})
	require.NoError(t, err)

	// 接受路径先追加 treaty_created，再追加 negotiation_accepted；
	// 让第二次追加失败，使整个动作在事务内失败
	sink := &capturingSink{}
	env.recorder.sink = sink
	env.recorder.events = &failingEventRepo{inner: env.events, failAt: 2}

	_, _, err = env.negotiation.AcceptOffer(ctx, negotiation.ID, "orcs")
	require.Error(t, err)

	// 失败的动作不对下游发布，已追加的 treaty_created 也不能漏出
	assert.Empty(t, sink.events)
}

func TestNegotiationService_GetNotFound(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	_, err := env.negotiation.GetNegotiation(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrNegotiationNotFound)
}
