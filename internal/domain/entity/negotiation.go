// Package entity 定义领域实体
package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// NegotiationStatus 谈判状态
type NegotiationStatus string

const (
	NegotiationPending        NegotiationStatus = "pending"
	NegotiationOffered        NegotiationStatus = "offered"
	NegotiationCounterOffered NegotiationStatus = "counter_offered"
	NegotiationAccepted       NegotiationStatus = "accepted"
	NegotiationRejected       NegotiationStatus = "rejected"
)

// ErrInvalidNegotiationTransition 非法的谈判状态迁移
var ErrInvalidNegotiationTransition = errors.New("invalid negotiation transition")

// negotiationTransitions 封闭迁移表，未列出的迁移一律拒绝
var negotiationTransitions = map[NegotiationStatus]map[NegotiationStatus]bool{
	NegotiationPending: {
		NegotiationOffered:  true,
		NegotiationRejected: true,
	},
	NegotiationOffered: {
		NegotiationCounterOffered: true,
		NegotiationAccepted:       true,
		NegotiationRejected:       true,
	},
	NegotiationCounterOffered: {
		NegotiationCounterOffered: true,
		NegotiationAccepted:       true,
		NegotiationRejected:       true,
	},
	// accepted / rejected 为终态
}

// Offer 谈判中的一次出价
type Offer struct {
	ID        string    `json:"id"`
	Proposer  string    `json:"proposer"`
	Terms     JSONMap   `json:"terms"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OfferList 可存储为 JSONB 的出价历史
type OfferList []Offer

// Value 实现 driver.Valuer
func (l OfferList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan 实现 sql.Scanner
func (l *OfferList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// Negotiation 朝向条约的出价/还价交换过程
type Negotiation struct {
	ID             string            `json:"id"`
	Parties        StringSlice       `json:"parties"`
	Initiator      string            `json:"initiator"`
	Status         NegotiationStatus `json:"status"`
	Offers         OfferList         `json:"offers"`
	CurrentOfferID string            `json:"current_offer_id,omitempty"`
	Deadline       *time.Time        `json:"deadline,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewNegotiation 创建谈判，初始状态 pending
func NewNegotiation(parties []string, initiator string, deadline *time.Time) *Negotiation {
	now := time.Now()
	return &Negotiation{
		Parties:   parties,
		Initiator: initiator,
		Status:    NegotiationPending,
		Offers:    OfferList{},
		Deadline:  deadline,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanTransition 判断迁移是否被迁移表允许
func (n *Negotiation) CanTransition(to NegotiationStatus) bool {
	allowed, ok := negotiationTransitions[n.Status]
	if !ok {
		return false
	}
	return allowed[to]
}

// transition 执行状态迁移，非法迁移返回错误
func (n *Negotiation) transition(to NegotiationStatus) error {
	if !n.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidNegotiationTransition, n.Status, to)
	}
	n.Status = to
	n.UpdatedAt = time.Now()
	return nil
}

// MakeOffer 追加一次出价并推进状态
// pending -> offered；offered / counter_offered -> counter_offered
func (n *Negotiation) MakeOffer(offerID, proposer string, terms JSONMap, message string) error {
	var target NegotiationStatus
	switch n.Status {
	case NegotiationPending:
		target = NegotiationOffered
	case NegotiationOffered, NegotiationCounterOffered:
		target = NegotiationCounterOffered
	default:
		return fmt.Errorf("%w: cannot offer in status %s", ErrInvalidNegotiationTransition, n.Status)
	}

	if err := n.transition(target); err != nil {
		return err
	}

	offer := Offer{
		ID:        offerID,
		Proposer:  proposer,
		Terms:     terms,
		Message:   message,
		CreatedAt: time.Now(),
	}
	n.Offers = append(n.Offers, offer)
	n.CurrentOfferID = offer.ID
	return nil
}

// Accept 接受当前出价，进入终态 accepted
func (n *Negotiation) Accept() error {
	return n.transition(NegotiationAccepted)
}

// Reject 拒绝谈判，进入终态 rejected
func (n *Negotiation) Reject() error {
	return n.transition(NegotiationRejected)
}

// IsTerminal 判断谈判是否已终结
func (n *Negotiation) IsTerminal() bool {
	return n.Status == NegotiationAccepted || n.Status == NegotiationRejected
}

// CurrentOffer 返回当前出价；没有出价时返回 nil
func (n *Negotiation) CurrentOffer() *Offer {
	for i := range n.Offers {
		if n.Offers[i].ID == n.CurrentOfferID {
			return &n.Offers[i]
		}
	}
	return nil
}

// IsParty 判断指定阵营是否为谈判一方
func (n *Negotiation) IsParty(factionID string) bool {
	return n.Parties.Contains(factionID)
}
