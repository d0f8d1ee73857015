package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegotiation_TransitionTable(t *testing.T) {
	all := []NegotiationStatus{
		NegotiationPending,
		NegotiationOffered,
		NegotiationCounterOffered,
		NegotiationAccepted,
		NegotiationRejected,
	}
	allowed := map[NegotiationStatus][]NegotiationStatus{
		NegotiationPending:        {NegotiationOffered, NegotiationRejected},
		NegotiationOffered:        {NegotiationCounterOffered, NegotiationAccepted, NegotiationRejected},
		NegotiationCounterOffered: {NegotiationCounterOffered, NegotiationAccepted, NegotiationRejected},
		NegotiationAccepted:       {},
		NegotiationRejected:       {},
	}

	for _, from := range all {
		okSet := map[NegotiationStatus]bool{}
		for _, to := range allowed[from] {
			okSet[to] = true
		}
		for _, to := range all {
			n := &Negotiation{Status: from}
			got := n.CanTransition(to)
			assert.Equal(t, okSet[to], got, "%s -> %s", from, to)
		}
	}
}

func TestNegotiation_OfferFlow(t *testing.T) {
	n := NewNegotiation([]string{"elves", "orcs"}, "elves", nil)
	require.Equal(t, NegotiationPending, n.Status)

	err := n.MakeOffer("o1", "elves", JSONMap{"tribute": 100}, "first offer")
	require.NoError(t, err)
	assert.Equal(t, NegotiationOffered, n.Status)
	assert.Equal(t, "o1", n.CurrentOfferID)

	err = n.MakeOffer("o2", "orcs", JSONMap{"tribute": 50}, "")
	require.NoError(t, err)
	assert.Equal(t, NegotiationCounterOffered, n.Status)

	// counter_offered 可以继续还价
	err = n.MakeOffer("o3", "elves", JSONMap{"tribute": 75}, "")
	require.NoError(t, err)
	assert.Equal(t, NegotiationCounterOffered, n.Status)
	require.Len(t, n.Offers, 3)

	cur := n.CurrentOffer()
	require.NotNil(t, cur)
	assert.Equal(t, "o3", cur.ID)
	assert.Equal(t, "elves", cur.Proposer)

	require.NoError(t, n.Accept())
	assert.True(t, n.IsTerminal())

	// 终态后禁止一切操作
	err = n.MakeOffer("o4", "orcs", nil, "")
	assert.True(t, errors.Is(err, ErrInvalidNegotiationTransition))
	assert.True(t, errors.Is(n.Reject(), ErrInvalidNegotiationTransition))
}

func TestNegotiation_RejectBeforeOffer(t *testing.T) {
	n := NewNegotiation([]string{"a", "b"}, "a", nil)
	require.NoError(t, n.Reject())
	assert.Equal(t, NegotiationRejected, n.Status)
	assert.True(t, n.IsTerminal())

	// pending 不能直接 accepted
	n2 := NewNegotiation([]string{"a", "b"}, "a", nil)
	assert.True(t, errors.Is(n2.Accept(), ErrInvalidNegotiationTransition))
}

func TestNegotiation_CurrentOffer_Empty(t *testing.T) {
	n := NewNegotiation([]string{"a", "b"}, "a", nil)
	assert.Nil(t, n.CurrentOffer())
}

func TestNegotiation_IsParty(t *testing.T) {
	n := NewNegotiation([]string{"elves", "orcs"}, "elves", nil)
	assert.True(t, n.IsParty("orcs"))
	assert.False(t, n.IsParty("dwarves"))
}
