package diplomacy

import (
	"context"
	stderrors "errors"
	"time"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/internal/domain/service"
)

// 内存仓储实现，测试专用。不做并发保护：测试内串行访问。

type memTx struct{}

func (memTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// 复用外层"事务"，与 TxManager 的嵌套语义一致
	if ctx.Value(repository.TxKey{}) != nil {
		return fn(ctx)
	}

	hooks := &repository.TxHooks{}
	txCtx := context.WithValue(ctx, repository.TxKey{}, struct{}{})
	txCtx = repository.ContextWithTxHooks(txCtx, hooks)

	if err := fn(txCtx); err != nil {
		return err
	}
	hooks.Run(ctx)
	return nil
}

// capturingSink 记录全部发布的事件
type capturingSink struct {
	events []*entity.DiplomaticEvent
}

func (s *capturingSink) Publish(ctx context.Context, event *entity.DiplomaticEvent) error {
	s.events = append(s.events, event)
	return nil
}

// failingEventRepo 在第 failAt 次追加时返回错误
type failingEventRepo struct {
	inner  *memEventRepo
	failAt int
	calls  int
}

func (r *failingEventRepo) Create(ctx context.Context, event *entity.DiplomaticEvent) error {
	r.calls++
	if r.calls == r.failAt {
		return stderrors.New("event append failed")
	}
	return r.inner.Create(ctx, event)
}

func (r *failingEventRepo) GetByID(ctx context.Context, id string) (*entity.DiplomaticEvent, error) {
	return r.inner.GetByID(ctx, id)
}

func (r *failingEventRepo) List(ctx context.Context, filter *repository.EventFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.DiplomaticEvent], error) {
	return r.inner.List(ctx, filter, pagination)
}

type memRelationshipRepo struct {
	byPair map[string]*entity.FactionRelationship
}

func newMemRelationshipRepo() *memRelationshipRepo {
	return &memRelationshipRepo{byPair: map[string]*entity.FactionRelationship{}}
}

func (r *memRelationshipRepo) Create(ctx context.Context, rel *entity.FactionRelationship) error {
	cp := *rel
	r.byPair[rel.PairKey()] = &cp
	return nil
}

func (r *memRelationshipRepo) GetByPair(ctx context.Context, factionA, factionB string) (*entity.FactionRelationship, error) {
	rel, ok := r.byPair[entity.PairKey(factionA, factionB)]
	if !ok {
		return nil, nil
	}
	cp := *rel
	return &cp, nil
}

func (r *memRelationshipRepo) Update(ctx context.Context, rel *entity.FactionRelationship) error {
	cp := *rel
	r.byPair[rel.PairKey()] = &cp
	return nil
}

func (r *memRelationshipRepo) ListByFaction(ctx context.Context, factionID string, pagination repository.Pagination) (*repository.PagedResult[*entity.FactionRelationship], error) {
	var items []*entity.FactionRelationship
	for _, rel := range r.byPair {
		if rel.Involves(factionID) {
			cp := *rel
			items = append(items, &cp)
		}
	}
	return repository.NewPagedResult(items, int64(len(items)), pagination), nil
}

func (r *memRelationshipRepo) ListByStatus(ctx context.Context, status entity.DiplomaticStatus, pagination repository.Pagination) (*repository.PagedResult[*entity.FactionRelationship], error) {
	var items []*entity.FactionRelationship
	for _, rel := range r.byPair {
		if rel.Status == status {
			cp := *rel
			items = append(items, &cp)
		}
	}
	return repository.NewPagedResult(items, int64(len(items)), pagination), nil
}

type memTreatyRepo struct {
	byID map[string]*entity.Treaty
}

func newMemTreatyRepo() *memTreatyRepo {
	return &memTreatyRepo{byID: map[string]*entity.Treaty{}}
}

func (r *memTreatyRepo) Create(ctx context.Context, treaty *entity.Treaty) error {
	cp := *treaty
	r.byID[treaty.ID] = &cp
	return nil
}

func (r *memTreatyRepo) GetByID(ctx context.Context, id string) (*entity.Treaty, error) {
	treaty, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *treaty
	return &cp, nil
}

func (r *memTreatyRepo) Update(ctx context.Context, treaty *entity.Treaty) error {
	cp := *treaty
	r.byID[treaty.ID] = &cp
	return nil
}

func (r *memTreatyRepo) List(ctx context.Context, filter *repository.TreatyFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Treaty], error) {
	var items []*entity.Treaty
	for _, treaty := range r.byID {
		if filter != nil {
			if filter.FactionID != "" && !treaty.Parties.Contains(filter.FactionID) {
				continue
			}
			if filter.Status != "" && treaty.Status != filter.Status {
				continue
			}
			if filter.Type != "" && treaty.Type != filter.Type {
				continue
			}
		}
		cp := *treaty
		items = append(items, &cp)
	}
	return repository.NewPagedResult(items, int64(len(items)), pagination), nil
}

func (r *memTreatyRepo) ListActiveExpiring(ctx context.Context, before time.Time) ([]*entity.Treaty, error) {
	var items []*entity.Treaty
	for _, treaty := range r.byID {
		if treaty.IsActive() && treaty.IsExpired(before) {
			cp := *treaty
			items = append(items, &cp)
		}
	}
	return items, nil
}

type memViolationRepo struct {
	byID map[string]*entity.TreatyViolation
}

func newMemViolationRepo() *memViolationRepo {
	return &memViolationRepo{byID: map[string]*entity.TreatyViolation{}}
}

func (r *memViolationRepo) Create(ctx context.Context, violation *entity.TreatyViolation) error {
	cp := *violation
	r.byID[violation.ID] = &cp
	return nil
}

func (r *memViolationRepo) GetByID(ctx context.Context, id string) (*entity.TreatyViolation, error) {
	violation, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *violation
	return &cp, nil
}

func (r *memViolationRepo) Update(ctx context.Context, violation *entity.TreatyViolation) error {
	cp := *violation
	r.byID[violation.ID] = &cp
	return nil
}

func (r *memViolationRepo) ListByTreaty(ctx context.Context, treatyID string) ([]*entity.TreatyViolation, error) {
	var items []*entity.TreatyViolation
	for _, violation := range r.byID {
		if violation.TreatyID == treatyID {
			cp := *violation
			items = append(items, &cp)
		}
	}
	return items, nil
}

func (r *memViolationRepo) CountOpenByTreaty(ctx context.Context, treatyID string) (int64, error) {
	var n int64
	for _, violation := range r.byID {
		if violation.TreatyID == treatyID && violation.Open() {
			n++
		}
	}
	return n, nil
}

type memNegotiationRepo struct {
	byID map[string]*entity.Negotiation
}

func newMemNegotiationRepo() *memNegotiationRepo {
	return &memNegotiationRepo{byID: map[string]*entity.Negotiation{}}
}

func (r *memNegotiationRepo) Create(ctx context.Context, negotiation *entity.Negotiation) error {
	cp := *negotiation
	r.byID[negotiation.ID] = &cp
	return nil
}

func (r *memNegotiationRepo) GetByID(ctx context.Context, id string) (*entity.Negotiation, error) {
	negotiation, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *negotiation
	return &cp, nil
}

func (r *memNegotiationRepo) Update(ctx context.Context, negotiation *entity.Negotiation) error {
	cp := *negotiation
	r.byID[negotiation.ID] = &cp
	return nil
}

func (r *memNegotiationRepo) List(ctx context.Context, filter *repository.NegotiationFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Negotiation], error) {
	var items []*entity.Negotiation
	for _, negotiation := range r.byID {
		if filter != nil {
			if filter.FactionID != "" && !negotiation.IsParty(filter.FactionID) {
				continue
			}
			if filter.Status != "" && negotiation.Status != filter.Status {
				continue
			}
		}
		cp := *negotiation
		items = append(items, &cp)
	}
	return repository.NewPagedResult(items, int64(len(items)), pagination), nil
}

type memEventRepo struct {
	events []*entity.DiplomaticEvent
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{}
}

func (r *memEventRepo) Create(ctx context.Context, event *entity.DiplomaticEvent) error {
	cp := *event
	r.events = append(r.events, &cp)
	return nil
}

func (r *memEventRepo) GetByID(ctx context.Context, id string) (*entity.DiplomaticEvent, error) {
	for _, event := range r.events {
		if event.ID == id {
			cp := *event
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memEventRepo) List(ctx context.Context, filter *repository.EventFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.DiplomaticEvent], error) {
	var items []*entity.DiplomaticEvent
	for _, event := range r.events {
		cp := *event
		items = append(items, &cp)
	}
	return repository.NewPagedResult(items, int64(len(items)), pagination), nil
}

// byType 按类型筛选已追加的事件，断言用
func (r *memEventRepo) byType(t entity.DiplomaticEventType) []*entity.DiplomaticEvent {
	var out []*entity.DiplomaticEvent
	for _, event := range r.events {
		if event.Type == t {
			out = append(out, event)
		}
	}
	return out
}

type memIncidentRepo struct {
	byID map[string]*entity.DiplomaticIncident
}

func newMemIncidentRepo() *memIncidentRepo {
	return &memIncidentRepo{byID: map[string]*entity.DiplomaticIncident{}}
}

func (r *memIncidentRepo) Create(ctx context.Context, incident *entity.DiplomaticIncident) error {
	cp := *incident
	r.byID[incident.ID] = &cp
	return nil
}

func (r *memIncidentRepo) GetByID(ctx context.Context, id string) (*entity.DiplomaticIncident, error) {
	incident, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *incident
	return &cp, nil
}

func (r *memIncidentRepo) Update(ctx context.Context, incident *entity.DiplomaticIncident) error {
	cp := *incident
	r.byID[incident.ID] = &cp
	return nil
}

func (r *memIncidentRepo) List(ctx context.Context, filter *repository.IncidentFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.DiplomaticIncident], error) {
	var items []*entity.DiplomaticIncident
	for _, incident := range r.byID {
		if filter != nil {
			if filter.FactionID != "" && incident.PerpetratorID != filter.FactionID && incident.VictimID != filter.FactionID {
				continue
			}
			if filter.OpenOnly && !incident.Open() {
				continue
			}
		}
		cp := *incident
		items = append(items, &cp)
	}
	return repository.NewPagedResult(items, int64(len(items)), pagination), nil
}

type memUltimatumRepo struct {
	byID map[string]*entity.Ultimatum
}

func newMemUltimatumRepo() *memUltimatumRepo {
	return &memUltimatumRepo{byID: map[string]*entity.Ultimatum{}}
}

func (r *memUltimatumRepo) Create(ctx context.Context, ultimatum *entity.Ultimatum) error {
	cp := *ultimatum
	r.byID[ultimatum.ID] = &cp
	return nil
}

func (r *memUltimatumRepo) GetByID(ctx context.Context, id string) (*entity.Ultimatum, error) {
	ultimatum, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *ultimatum
	return &cp, nil
}

func (r *memUltimatumRepo) Update(ctx context.Context, ultimatum *entity.Ultimatum) error {
	cp := *ultimatum
	r.byID[ultimatum.ID] = &cp
	return nil
}

func (r *memUltimatumRepo) List(ctx context.Context, filter *repository.UltimatumFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Ultimatum], error) {
	var items []*entity.Ultimatum
	for _, ultimatum := range r.byID {
		if filter != nil {
			if filter.FactionID != "" && ultimatum.IssuerID != filter.FactionID && ultimatum.RecipientID != filter.FactionID {
				continue
			}
			if filter.Status != "" && ultimatum.Status != filter.Status {
				continue
			}
		}
		cp := *ultimatum
		items = append(items, &cp)
	}
	return repository.NewPagedResult(items, int64(len(items)), pagination), nil
}

func (r *memUltimatumRepo) ListPendingExpired(ctx context.Context, before time.Time) ([]*entity.Ultimatum, error) {
	var items []*entity.Ultimatum
	for _, ultimatum := range r.byID {
		if ultimatum.IsExpired(before) {
			cp := *ultimatum
			items = append(items, &cp)
		}
	}
	return items, nil
}

type memSanctionRepo struct {
	byID map[string]*entity.Sanction
}

func newMemSanctionRepo() *memSanctionRepo {
	return &memSanctionRepo{byID: map[string]*entity.Sanction{}}
}

func (r *memSanctionRepo) Create(ctx context.Context, sanction *entity.Sanction) error {
	cp := *sanction
	r.byID[sanction.ID] = &cp
	return nil
}

func (r *memSanctionRepo) GetByID(ctx context.Context, id string) (*entity.Sanction, error) {
	sanction, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *sanction
	return &cp, nil
}

func (r *memSanctionRepo) Update(ctx context.Context, sanction *entity.Sanction) error {
	cp := *sanction
	r.byID[sanction.ID] = &cp
	return nil
}

func (r *memSanctionRepo) List(ctx context.Context, filter *repository.SanctionFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Sanction], error) {
	var items []*entity.Sanction
	for _, sanction := range r.byID {
		if filter != nil {
			if filter.FactionID != "" && sanction.ImposerID != filter.FactionID && sanction.TargetID != filter.FactionID {
				continue
			}
			if filter.Status != "" && sanction.Status != filter.Status {
				continue
			}
		}
		cp := *sanction
		items = append(items, &cp)
	}
	return repository.NewPagedResult(items, int64(len(items)), pagination), nil
}

func (r *memSanctionRepo) ListActiveExpired(ctx context.Context, before time.Time) ([]*entity.Sanction, error) {
	var items []*entity.Sanction
	for _, sanction := range r.byID {
		if sanction.IsExpired(before) {
			cp := *sanction
			items = append(items, &cp)
		}
	}
	return items, nil
}

// testEnv 组装一套完整的服务依赖图，各测试按需取用
type testEnv struct {
	relationships *memRelationshipRepo
	treatyRepo    *memTreatyRepo
	violationRepo *memViolationRepo
	negotiations  *memNegotiationRepo
	events        *memEventRepo
	incidentRepo  *memIncidentRepo
	ultimatumRepo *memUltimatumRepo
	sanctionRepo  *memSanctionRepo

	tension     *TensionService
	treaties    *TreatyService
	negotiation *NegotiationService
	incidents   *IncidentService
	ultimatums  *UltimatumService
	sanctions   *SanctionService
	maintenance *MaintenanceService

	recorder *EventRecorder
}

func newTestEnv(policy Policy) *testEnv {
	env := &testEnv{
		relationships: newMemRelationshipRepo(),
		treatyRepo:    newMemTreatyRepo(),
		violationRepo: newMemViolationRepo(),
		negotiations:  newMemNegotiationRepo(),
		events:        newMemEventRepo(),
		incidentRepo:  newMemIncidentRepo(),
		ultimatumRepo: newMemUltimatumRepo(),
		sanctionRepo:  newMemSanctionRepo(),
	}

	tx := memTx{}
	recorder := NewEventRecorder(env.events, service.NopEventSink{})
	env.recorder = recorder

	env.tension = NewTensionService(env.relationships, policy)
	env.treaties = NewTreatyService(env.treatyRepo, env.violationRepo, env.tension, recorder, tx)
	env.negotiation = NewNegotiationService(env.negotiations, env.treaties, recorder, tx)
	env.incidents = NewIncidentService(env.incidentRepo, env.tension, recorder, tx)
	env.ultimatums = NewUltimatumService(env.ultimatumRepo, env.tension, recorder, tx)
	env.sanctions = NewSanctionService(env.sanctionRepo, env.tension, recorder, tx)
	env.maintenance = NewMaintenanceService(env.treatyRepo, env.treaties, env.ultimatums, env.sanctions)
	return env
}
