// Package entity 定义领域实体
package entity

import (
	"errors"
	"fmt"
	"time"
)

// UltimatumStatus 最后通牒状态
type UltimatumStatus string

const (
	UltimatumPending  UltimatumStatus = "pending"
	UltimatumAccepted UltimatumStatus = "accepted"
	UltimatumRejected UltimatumStatus = "rejected"
	UltimatumExpired  UltimatumStatus = "expired"
)

// ErrUltimatumNotPending 只有待处理的通牒可以响应
var ErrUltimatumNotPending = errors.New("ultimatum is not pending")

// Ultimatum 带截止时间与后果的外交要求
type Ultimatum struct {
	ID                 string          `json:"id"`
	IssuerID           string          `json:"issuer_id"`
	RecipientID        string          `json:"recipient_id"`
	Demand             string          `json:"demand"`
	Terms              JSONMap         `json:"terms,omitempty"`
	Deadline           time.Time       `json:"deadline"`
	Status             UltimatumStatus `json:"status"`
	AcceptTrustDelta   int             `json:"accept_trust_delta"`
	RejectTensionDelta int             `json:"reject_tension_delta"`
	RespondedAt        *time.Time      `json:"responded_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// NewUltimatum 创建最后通牒
func NewUltimatum(issuerID, recipientID, demand string, deadline time.Time, acceptTrustDelta, rejectTensionDelta int) *Ultimatum {
	now := time.Now()
	return &Ultimatum{
		IssuerID:           issuerID,
		RecipientID:        recipientID,
		Demand:             demand,
		Terms:              JSONMap{},
		Deadline:           deadline,
		Status:             UltimatumPending,
		AcceptTrustDelta:   acceptTrustDelta,
		RejectTensionDelta: rejectTensionDelta,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// respond 统一的终态迁移，仅允许从 pending 出发
func (u *Ultimatum) respond(to UltimatumStatus, now time.Time) error {
	if u.Status != UltimatumPending {
		return fmt.Errorf("%w: status %s", ErrUltimatumNotPending, u.Status)
	}
	u.Status = to
	u.RespondedAt = &now
	u.UpdatedAt = now
	return nil
}

// Accept 接受通牒
func (u *Ultimatum) Accept(now time.Time) error {
	return u.respond(UltimatumAccepted, now)
}

// Reject 拒绝通牒
func (u *Ultimatum) Reject(now time.Time) error {
	return u.respond(UltimatumRejected, now)
}

// Expire 截止时间已过，按拒绝处理后果
func (u *Ultimatum) Expire(now time.Time) error {
	return u.respond(UltimatumExpired, now)
}

// IsExpired 判断是否已过截止时间且仍未响应
func (u *Ultimatum) IsExpired(now time.Time) bool {
	return u.Status == UltimatumPending && now.After(u.Deadline)
}
