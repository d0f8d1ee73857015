package messaging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faction-diplomacy-api/internal/domain/entity"
)

func TestMessage_CarriesDiplomaticEvent(t *testing.T) {
	event := entity.NewDiplomaticEvent(entity.EventTreatyCreated, []string{"elves", "orcs"}, "treaty signed", 3)
	event.ID = "evt-1"

	msg, err := NewMessage(event.ID, string(event.Type), event.Factions, event)
	require.NoError(t, err)
	assert.Equal(t, "treaty_created", msg.Type)
	assert.Equal(t, []string{"elves", "orcs"}, msg.Factions)

	// 消费侧按载荷还原事件
	var decoded entity.DiplomaticEvent
	require.NoError(t, msg.UnmarshalPayload(&decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, entity.EventTreatyCreated, decoded.Type)
	assert.Equal(t, entity.StringSlice{"elves", "orcs"}, decoded.Factions)
}

func TestStream_DLQStream(t *testing.T) {
	assert.Equal(t, "dlq:stream:diplomacy:events", StreamDiplomacyEvents.DLQStream())
}

func TestBackoffConfig_CalculateBackoff(t *testing.T) {
	cfg := BackoffConfig{Initial: time.Second, Max: 8 * time.Second, Multiplier: 2}

	assert.Equal(t, time.Second, cfg.CalculateBackoff(0))
	assert.Equal(t, 2*time.Second, cfg.CalculateBackoff(1))
	assert.Equal(t, 4*time.Second, cfg.CalculateBackoff(2))
	// 超过上限后封顶
	assert.Equal(t, 8*time.Second, cfg.CalculateBackoff(5))
}
