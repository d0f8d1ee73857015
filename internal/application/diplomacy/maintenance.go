package diplomacy

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"

	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/pkg/logger"
	"faction-diplomacy-api/pkg/metrics"
)

var maintenanceTracer = otel.Tracer("diplomacy.maintenance")

// SweepReport 一轮维护扫描的处理计数
type SweepReport struct {
	ExpiredTreaties   int `json:"expired_treaties"`
	ExpiredUltimatums int `json:"expired_ultimatums"`
	ExpiredSanctions  int `json:"expired_sanctions"`
	Errors            int `json:"errors"`
}

// MaintenanceService 时间驱动的维护扫描，由外部调度器（sweeper）周期触发
type MaintenanceService struct {
	treatyRepo repository.TreatyRepository
	treaties   *TreatyService
	ultimatums *UltimatumService
	sanctions  *SanctionService
	now        func() time.Time
}

// NewMaintenanceService 创建维护服务
func NewMaintenanceService(
	treatyRepo repository.TreatyRepository,
	treaties *TreatyService,
	ultimatums *UltimatumService,
	sanctions *SanctionService,
) *MaintenanceService {
	return &MaintenanceService{
		treatyRepo: treatyRepo,
		treaties:   treaties,
		ultimatums: ultimatums,
		sanctions:  sanctions,
		now:        time.Now,
	}
}

// SweepAll 依次执行全部扫描；单项失败只计数不中断
func (s *MaintenanceService) SweepAll(ctx context.Context) *SweepReport {
	ctx, span := maintenanceTracer.Start(ctx, "maintenance.SweepAll")
	defer span.End()

	report := &SweepReport{}
	s.sweepExpiredTreaties(ctx, report)
	s.sweepExpiredUltimatums(ctx, report)
	s.sweepExpiredSanctions(ctx, report)

	logger.Info(ctx, "maintenance sweep finished",
		"expired_treaties", report.ExpiredTreaties,
		"expired_ultimatums", report.ExpiredUltimatums,
		"expired_sanctions", report.ExpiredSanctions,
		"errors", report.Errors,
	)
	return report
}

// sweepExpiredTreaties 过期处理结束日期已过的条约
func (s *MaintenanceService) sweepExpiredTreaties(ctx context.Context, report *SweepReport) {
	start := s.now()
	defer func() {
		metrics.SweepDuration.WithLabelValues("treaties").Observe(time.Since(start).Seconds())
	}()

	expiring, err := s.treatyRepo.ListActiveExpiring(ctx, s.now())
	if err != nil {
		logger.Error(ctx, "list expiring treaties failed", err)
		report.Errors++
		return
	}
	for _, treaty := range expiring {
		if _, err := s.treaties.ExpireTreaty(ctx, treaty.ID); err != nil {
			logger.Error(ctx, "expire treaty failed", err, "treaty_id", treaty.ID)
			report.Errors++
			continue
		}
		metrics.SweepExpiredTotal.WithLabelValues("treaty").Inc()
		report.ExpiredTreaties++
	}
}

// sweepExpiredUltimatums 截止未响应的通牒按拒绝后果处理
func (s *MaintenanceService) sweepExpiredUltimatums(ctx context.Context, report *SweepReport) {
	start := s.now()
	defer func() {
		metrics.SweepDuration.WithLabelValues("ultimatums").Observe(time.Since(start).Seconds())
	}()

	expired, err := s.ultimatums.ultimatums.ListPendingExpired(ctx, s.now())
	if err != nil {
		logger.Error(ctx, "list expired ultimatums failed", err)
		report.Errors++
		return
	}
	for _, ultimatum := range expired {
		if err := s.ultimatums.ExpireUltimatum(ctx, ultimatum); err != nil {
			logger.Error(ctx, "expire ultimatum failed", err, "ultimatum_id", ultimatum.ID)
			report.Errors++
			continue
		}
		report.ExpiredUltimatums++
	}
}

// sweepExpiredSanctions 结束日期已过的制裁转为过期
func (s *MaintenanceService) sweepExpiredSanctions(ctx context.Context, report *SweepReport) {
	start := s.now()
	defer func() {
		metrics.SweepDuration.WithLabelValues("sanctions").Observe(time.Since(start).Seconds())
	}()

	expired, err := s.sanctions.sanctions.ListActiveExpired(ctx, s.now())
	if err != nil {
		logger.Error(ctx, "list expired sanctions failed", err)
		report.Errors++
		return
	}
	for _, sanction := range expired {
		if err := s.sanctions.ExpireSanction(ctx, sanction); err != nil {
			logger.Error(ctx, "expire sanction failed", err, "sanction_id", sanction.ID)
			report.Errors++
			continue
		}
		report.ExpiredSanctions++
	}
}
