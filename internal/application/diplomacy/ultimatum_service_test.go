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

func TestUltimatumService_Issue(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	ultimatum, err := env.ultimatums.IssueUltimatum(ctx, IssueUltimatumInput{
		IssuerID:           "empire",
		RecipientID:        "rebels",
		Demand:             "surrender the fortress",
		Deadline:           time.Now().Add(48 * time.Hour),
		AcceptTrustDelta:   5,
		RejectTensionDelta: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.UltimatumPending, ultimatum.Status)

	// 发出通牒本身即敌意升级
	rel, err := env.tension.FindRelationship(ctx, "empire", "rebels")
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, 10, rel.TensionLevel)
	require.Len(t, env.events.byType(entity.EventUltimatumIssued), 1)
}

func TestUltimatumService_IssueValidation(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	_, err := env.ultimatums.IssueUltimatum(ctx, IssueUltimatumInput{
		IssuerID:    "empire",
		RecipientID: "empire",
		Demand:      "demand",
		Deadline:    time.Now().Add(time.Hour),
	})
	require.Error(t, err)

	// 截止时间必须在未来
	_, err = env.ultimatums.IssueUltimatum(ctx, IssueUltimatumInput{
		IssuerID:    "empire",
		RecipientID: "rebels",
		Demand:      "demand",
		Deadline:    time.Now().Add(-time.Hour),
	})
	require.Error(t, err)
	assert.Empty(t, env.ultimatumRepo.byID)
}

func TestUltimatumService_Accept(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	ultimatum, err := env.ultimatums.IssueUltimatum(ctx, IssueUltimatumInput{
		IssuerID:           "empire",
		RecipientID:        "rebels",
		Demand:             "pay tribute",
		Deadline:           time.Now().Add(48 * time.Hour),
		AcceptTrustDelta:   8,
		RejectTensionDelta: 20,
	})
	require.NoError(t, err)

	accepted, err := env.ultimatums.AcceptUltimatum(ctx, ultimatum.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UltimatumAccepted, accepted.Status)

	// 接受：信任上调、紧张度回落拒绝幅度（10 - 20 收敛到 0）
	rel, err := env.tension.FindRelationship(ctx, "empire", "rebels")
	require.NoError(t, err)
	assert.Equal(t, 58, rel.TrustLevel)
	assert.Equal(t, 0, rel.TensionLevel)

	// 已响应的通牒不能再次响应
	_, err = env.ultimatums.RejectUltimatum(ctx, ultimatum.ID)
	require.Error(t, err)
	appErr := errors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeInvalidTransition, appErr.Code)
}

func TestUltimatumService_Reject(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	ultimatum, err := env.ultimatums.IssueUltimatum(ctx, IssueUltimatumInput{
		IssuerID:           "empire",
		RecipientID:        "rebels",
		Demand:             "disband the militia",
		Deadline:           time.Now().Add(48 * time.Hour),
		RejectTensionDelta: 30,
	})
	require.NoError(t, err)

	rejected, err := env.ultimatums.RejectUltimatum(ctx, ultimatum.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UltimatumRejected, rejected.Status)

	// 发出 10 + 拒绝 30
	rel, err := env.tension.FindRelationship(ctx, "empire", "rebels")
	require.NoError(t, err)
	assert.Equal(t, 40, rel.TensionLevel)
	assert.Equal(t, entity.StatusTense, rel.Status)
	require.Len(t, env.events.byType(entity.EventUltimatumRejected), 1)
}

func TestUltimatumService_RejectDeltaDefaultsToPolicy(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	ctx := context.Background()

	ultimatum, err := env.ultimatums.IssueUltimatum(ctx, IssueUltimatumInput{
		IssuerID:    "empire",
		RecipientID: "rebels",
		Demand:      "open the ports",
		Deadline:    time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, ultimatum.RejectTensionDelta)
}

func TestUltimatumService_GetNotFound(t *testing.T) {
	env := newTestEnv(DefaultPolicy())
	_, err := env.ultimatums.GetUltimatum(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrUltimatumNotFound)
}
