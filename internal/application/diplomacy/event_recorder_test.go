package diplomacy

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faction-diplomacy-api/internal/domain/entity"
)

type failingSink struct {
	calls int
}

func (s *failingSink) Publish(ctx context.Context, event *entity.DiplomaticEvent) error {
	s.calls++
	return stderrors.New("broker down")
}

func TestEventRecorder_AssignsID(t *testing.T) {
	events := newMemEventRepo()
	recorder := NewEventRecorder(events, nil)

	event := entity.NewDiplomaticEvent(entity.EventTensionChange, []string{"a", "b"}, "tension bump", 5)
	require.NoError(t, recorder.Record(context.Background(), event))
	assert.NotEmpty(t, event.ID)
	require.Len(t, events.events, 1)
}

func TestEventRecorder_PublishFailureDoesNotFail(t *testing.T) {
	events := newMemEventRepo()
	sink := &failingSink{}
	recorder := NewEventRecorder(events, sink)

	event := entity.NewDiplomaticEvent(entity.EventStatusChange, []string{"a", "b"}, "status change", 0)
	// 发布失败不回滚追加，也不向调用方冒泡
	require.NoError(t, recorder.Record(context.Background(), event))
	assert.Equal(t, 1, sink.calls)
	require.Len(t, events.events, 1)
}

func TestEventRecorder_PublishDeferredUntilCommit(t *testing.T) {
	events := newMemEventRepo()
	sink := &capturingSink{}
	recorder := NewEventRecorder(events, sink)

	err := memTx{}.WithTransaction(context.Background(), func(ctx context.Context) error {
		event := entity.NewDiplomaticEvent(entity.EventTreatyCreated, []string{"a", "b"}, "treaty signed", 0)
		if err := recorder.Record(ctx, event); err != nil {
			return err
		}
		// 事务未提交，下游尚不可见
		assert.Empty(t, sink.events)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, sink.events, 1)
	assert.Equal(t, entity.EventTreatyCreated, sink.events[0].Type)
}

func TestEventRecorder_RollbackSuppressesPublish(t *testing.T) {
	events := newMemEventRepo()
	sink := &capturingSink{}
	recorder := NewEventRecorder(events, sink)

	err := memTx{}.WithTransaction(context.Background(), func(ctx context.Context) error {
		event := entity.NewDiplomaticEvent(entity.EventTreatyCreated, []string{"a", "b"}, "treaty signed", 0)
		if err := recorder.Record(ctx, event); err != nil {
			return err
		}
		return stderrors.New("later write failed")
	})
	require.Error(t, err)

	// 回滚的动作不对外发布
	assert.Empty(t, sink.events)
}
