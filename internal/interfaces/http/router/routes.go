// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, h Handlers) {
	// 阵营关系
	relationships := v1.Group("/relationships")
	{
		relationships.GET("", h.Relationships.ListByStatus)
		relationships.POST("", h.Relationships.Establish)
		relationships.GET("/pair", h.Relationships.GetPair)
		relationships.POST("/tension", h.Relationships.AdjustTension)
		relationships.POST("/trust", h.Relationships.AdjustTrust)
		relationships.PUT("/status", h.Relationships.SetStatus)
	}

	// 阵营视角
	factions := v1.Group("/factions")
	{
		factions.GET("/:fid/relationships", h.Relationships.ListByFaction)
	}

	// 条约
	treaties := v1.Group("/treaties")
	{
		treaties.GET("", h.Treaties.ListTreaties)
		treaties.POST("", h.Treaties.CreateTreaty)
		treaties.GET("/:tid", h.Treaties.GetTreaty)
		treaties.POST("/:tid/expire", h.Treaties.ExpireTreaty)
		treaties.GET("/:tid/violations", h.Treaties.ListViolations)
		treaties.POST("/:tid/violations", h.Treaties.ReportViolation)
	}

	// 违约记录
	violations := v1.Group("/violations")
	{
		violations.POST("/:vid/resolve", h.Treaties.ResolveViolation)
	}

	// 谈判
	negotiations := v1.Group("/negotiations")
	{
		negotiations.GET("", h.Negotiations.ListNegotiations)
		negotiations.POST("", h.Negotiations.StartNegotiation)
		negotiations.GET("/:nid", h.Negotiations.GetNegotiation)
		negotiations.POST("/:nid/offers", h.Negotiations.MakeOffer)
		negotiations.POST("/:nid/accept", h.Negotiations.AcceptOffer)
		negotiations.POST("/:nid/reject", h.Negotiations.RejectOffer)
	}

	// 事件时间线
	events := v1.Group("/events")
	{
		events.GET("", h.Events.ListEvents)
		events.GET("/:evid", h.Events.GetEvent)
	}

	// 外交冲突
	incidents := v1.Group("/incidents")
	{
		incidents.GET("", h.Incidents.ListIncidents)
		incidents.POST("", h.Incidents.RecordIncident)
		incidents.GET("/:iid", h.Incidents.GetIncident)
		incidents.POST("/:iid/acknowledge", h.Incidents.AcknowledgeIncident)
		incidents.POST("/:iid/resolve", h.Incidents.ResolveIncident)
	}

	// 最后通牒
	ultimatums := v1.Group("/ultimatums")
	{
		ultimatums.GET("", h.Ultimatums.ListUltimatums)
		ultimatums.POST("", h.Ultimatums.IssueUltimatum)
		ultimatums.GET("/:uid", h.Ultimatums.GetUltimatum)
		ultimatums.POST("/:uid/accept", h.Ultimatums.AcceptUltimatum)
		ultimatums.POST("/:uid/reject", h.Ultimatums.RejectUltimatum)
	}

	// 制裁
	sanctions := v1.Group("/sanctions")
	{
		sanctions.GET("", h.Sanctions.ListSanctions)
		sanctions.POST("", h.Sanctions.ImposeSanction)
		sanctions.GET("/:sid", h.Sanctions.GetSanction)
		sanctions.POST("/:sid/violations", h.Sanctions.RecordViolation)
		sanctions.POST("/:sid/lift", h.Sanctions.LiftSanction)
	}

	// 运维
	maintenance := v1.Group("/maintenance")
	{
		maintenance.POST("/sweep", h.Maintenance.Sweep)
	}
}
