// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"faction-diplomacy-api/internal/application/diplomacy"
	"faction-diplomacy-api/internal/domain/entity"
)

// OfferResponse 出价响应
type OfferResponse struct {
	ID        string         `json:"id"`
	Proposer  string         `json:"proposer"`
	Terms     entity.JSONMap `json:"terms"`
	Message   string         `json:"message,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NegotiationResponse 谈判响应
type NegotiationResponse struct {
	ID             string           `json:"id"`
	Parties        []string         `json:"parties"`
	Initiator      string           `json:"initiator"`
	Status         string           `json:"status"`
	Offers         []*OfferResponse `json:"offers"`
	CurrentOfferID string           `json:"current_offer_id,omitempty"`
	Deadline       *time.Time       `json:"deadline,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// NegotiationListResponse 谈判列表响应
type NegotiationListResponse struct {
	Items []*NegotiationResponse `json:"items"`
}

// AcceptOfferResponse 接受出价响应：终态谈判与自动生成的条约
type AcceptOfferResponse struct {
	Negotiation *NegotiationResponse `json:"negotiation"`
	Treaty      *TreatyResponse      `json:"treaty"`
}

// ToNegotiationResponse 实体转换为响应
func ToNegotiationResponse(n *entity.Negotiation) *NegotiationResponse {
	offers := make([]*OfferResponse, len(n.Offers))
	for i := range n.Offers {
		o := n.Offers[i]
		offers[i] = &OfferResponse{
			ID:        o.ID,
			Proposer:  o.Proposer,
			Terms:     o.Terms,
			Message:   o.Message,
			CreatedAt: o.CreatedAt,
		}
	}
	return &NegotiationResponse{
		ID:             n.ID,
		Parties:        n.Parties,
		Initiator:      n.Initiator,
		Status:         string(n.Status),
		Offers:         offers,
		CurrentOfferID: n.CurrentOfferID,
		Deadline:       n.Deadline,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}

// ToNegotiationListResponse 实体列表转换为响应
func ToNegotiationListResponse(negotiations []*entity.Negotiation) *NegotiationListResponse {
	items := make([]*NegotiationResponse, len(negotiations))
	for i, n := range negotiations {
		items[i] = ToNegotiationResponse(n)
	}
	return &NegotiationListResponse{Items: items}
}

// StartNegotiationRequest 发起谈判请求
type StartNegotiationRequest struct {
	Parties   []string   `json:"parties" binding:"required,min=2"`
	Initiator string     `json:"initiator" binding:"required"`
	Deadline  *time.Time `json:"deadline" binding:"omitempty"`
}

// ToStartNegotiationInput 转换为服务入参
func (r *StartNegotiationRequest) ToStartNegotiationInput() diplomacy.StartNegotiationInput {
	return diplomacy.StartNegotiationInput{
		Parties:   r.Parties,
		Initiator: r.Initiator,
		Deadline:  r.Deadline,
	}
}

// MakeOfferRequest 出价请求
type MakeOfferRequest struct {
	Proposer string         `json:"proposer" binding:"required"`
	Terms    entity.JSONMap `json:"terms" binding:"required"`
	Message  string         `json:"message" binding:"omitempty,max=2000"`
}

// ToMakeOfferInput 转换为服务入参
func (r *MakeOfferRequest) ToMakeOfferInput() diplomacy.MakeOfferInput {
	return diplomacy.MakeOfferInput{
		Proposer: r.Proposer,
		Terms:    r.Terms,
		Message:  r.Message,
	}
}

// RespondOfferRequest 接受/拒绝当前出价请求
type RespondOfferRequest struct {
	FactionID string `json:"faction_id" binding:"required"`
}
