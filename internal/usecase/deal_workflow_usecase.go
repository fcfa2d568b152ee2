package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"roofing_crm/internal/domain/entities"
	"roofing_crm/internal/domain/workflow"
	"roofing_crm/internal/infrastructure/logging"
	"roofing_crm/internal/infrastructure/metrics"
	"roofing_crm/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrDealNotFound          = errors.New("deal not found")
	ErrInvalidDealID         = errors.New("invalid deal id")
	ErrInvalidActor          = errors.New("invalid actor")
	ErrHomeownerNameRequired = errors.New("homeowner name is required")
	ErrInvalidAssetKind      = errors.New("invalid asset kind")
	ErrInvalidAssetRefs      = errors.New("invalid asset references")
	ErrNothingToMark         = errors.New("mark paid requires mark_paid or advance_status")
)

// ApplyOptions carries who is acting and whether a backward move was
// explicitly confirmed.
type ApplyOptions struct {
	Actor           entities.Actor
	ConfirmBackward bool
}

// ApplyResult is the persisted deal plus an optional warning when linked
// pins could not be synchronized. The deal update stands either way.
type ApplyResult struct {
	Deal    entities.Deal
	Warning *workflow.SideEffectPartialFailure
}

type CreateDealInput struct {
	HomeownerName string
	Address       string
	Phone         string
	Email         string
	Notes         string
	RepID         string
	RepName       string
	PinID         string
}

// CommissionResult is the commission derived on read for a deal.
type CommissionResult struct {
	DealID    string
	Breakdown workflow.CommissionBreakdown
	Override  *entities.CommissionOverride
	Paid      bool
	PaidDate  *time.Time
}

// MarkPaidOptions selects the payout steps. DefaultMarkPaidOptions enables both.
//
// AdvanceStatus alone still pays the commission through the side effect of
// reaching paid, freezing the same amount.
type MarkPaidOptions struct {
	MarkPaid      bool
	AdvanceStatus bool
}

func DefaultMarkPaidOptions() MarkPaidOptions {
	return MarkPaidOptions{MarkPaid: true, AdvanceStatus: true}
}

// IDealWorkflowUseCase is the single entry point for deal mutations.
type IDealWorkflowUseCase interface {
	Apply(ctx context.Context, dealID string, update workflow.DealUpdate, opts ApplyOptions) (ApplyResult, error)
	CreateDeal(ctx context.Context, in CreateDealInput, actor entities.Actor) (entities.Deal, error)
	GetDeal(ctx context.Context, id string) (entities.Deal, error)
	SignContract(ctx context.Context, id string, signedAt time.Time, url string, actor entities.Actor) (entities.Deal, error)
	AddAsset(ctx context.Context, id string, kind entities.AssetKind, refs []string, actor entities.Actor) (entities.Deal, error)
	RemoveAsset(ctx context.Context, id string, kind entities.AssetKind, refs []string, actor entities.Actor) (entities.Deal, error)
	GetCommission(ctx context.Context, id string) (CommissionResult, error)
	SetCommissionOverride(ctx context.Context, id string, amount decimal.Decimal, reason string, actor entities.Actor) (CommissionResult, error)
	ClearCommissionOverride(ctx context.Context, id string, actor entities.Actor) (CommissionResult, error)
	MarkCommissionPaid(ctx context.Context, id string, opts MarkPaidOptions, actor entities.Actor) (ApplyResult, error)
	UnlockFinancials(ctx context.Context, id string, reason string, actor entities.Actor) (entities.Deal, error)
	NextAction(ctx context.Context, id string, actor entities.Actor) (*workflow.NextAction, error)
	ListPinsForDeal(ctx context.Context, id string) ([]entities.Pin, error)
}

type DealWorkflowUseCase struct {
	deals  interfaces.IDealRepository
	pins   interfaces.IPinRepository
	reps   interfaces.IRepRepository
	policy workflow.CommissionPolicy
	log    *zap.Logger
	now    func() time.Time
}

var _ IDealWorkflowUseCase = (*DealWorkflowUseCase)(nil)

func NewDealWorkflowUseCase(
	deals interfaces.IDealRepository,
	pins interfaces.IPinRepository,
	reps interfaces.IRepRepository,
	policy workflow.CommissionPolicy,
	logger *zap.Logger,
) *DealWorkflowUseCase {
	return &DealWorkflowUseCase{
		deals:  deals,
		pins:   pins,
		reps:   reps,
		policy: policy,
		log:    logging.OrNop(logger),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Apply validates and persists one update.
//
// The deal is always read fresh. Validation and the approval gate run on
// the merged candidate before anything is written; deal-local side effects
// travel with the same write. Pin effects run afterwards and only ever
// produce a warning.
func (u *DealWorkflowUseCase) Apply(ctx context.Context, dealID string, update workflow.DealUpdate, opts ApplyOptions) (ApplyResult, error) {
	if !opts.Actor.Role.Valid() {
		return ApplyResult{}, ErrInvalidActor
	}
	current, err := u.load(ctx, dealID)
	if err != nil {
		return ApplyResult{}, err
	}
	if update.Empty() {
		return ApplyResult{Deal: current}, nil
	}

	log := u.log.With(zap.String("deal_id", current.ID), zap.String("actor_id", opts.Actor.ID), zap.String("role", string(opts.Actor.Role)))
	now := u.now()
	candidate := workflow.Merge(current, update, now)

	from, to := current.Status, candidate.Status
	if update.Status != nil {
		if err := workflow.CanTransition(current, candidate, to, opts.Actor.Role, opts.ConfirmBackward); err != nil {
			log.Info("[deal][usecase] transition rejected", zap.String("from", string(from)), zap.String("to", string(to)), zap.Error(err))
			metrics.RecordRejection(rejectionReason(err))
			return ApplyResult{}, err
		}
	}
	if err := workflow.CheckFinancialUpdate(current, update, candidate); err != nil {
		log.Info("[deal][usecase] financial update rejected", zap.Error(err))
		metrics.RecordRejection(rejectionReason(err))
		return ApplyResult{}, err
	}
	if err := workflow.CheckAssignmentUpdate(current, update, opts.Actor); err != nil {
		log.Info("[deal][usecase] assignment update rejected", zap.Error(err))
		metrics.RecordRejection(rejectionReason(err))
		return ApplyResult{}, err
	}
	candidate.AuditLog = append(candidate.AuditLog, workflow.AuditAssignment(current, update, opts.Actor, now)...)

	backward := workflow.IndexOf(to) < workflow.IndexOf(from)
	if backward {
		candidate.AuditLog = append(candidate.AuditLog, entities.AuditEntry{
			At: now, ActorID: opts.Actor.ID, Action: workflow.AuditBackwardTransition, Detail: string(from) + " -> " + string(to),
		})
	}

	effects := workflow.OnStatusChanged(candidate, from, to, update.MilestoneDate, now)
	var payout *workflow.CommissionBreakdown
	if hasEffect(effects, workflow.EffectMarkCommissionPaid) {
		c, err := u.commissionOf(ctx, candidate)
		if err != nil {
			return ApplyResult{}, err
		}
		payout = &c.Breakdown
		candidate = workflow.RecordPayout(candidate, opts.Actor.ID, c.Breakdown, now)
	}
	candidate = workflow.ApplyDealEffects(candidate, effects)

	saved, err := u.deals.Save(ctx, candidate)
	if err != nil {
		log.Error("[deal][usecase] save failed", zap.Error(err))
		return ApplyResult{}, err
	}
	if saved.ID == "" {
		return ApplyResult{}, ErrDealNotFound
	}
	if payout != nil {
		metrics.RecordCommissionEvent(workflow.AuditCommissionPaid)
		log.Info("[commission][usecase] marked paid on status change", zap.String("amount", payout.Amount.StringFixed(2)), zap.String("source", string(payout.Source)))
	}
	if from != to {
		metrics.RecordTransition(string(from), string(to), backward)
		log.Info("[deal][usecase] status changed", zap.String("from", string(from)), zap.String("to", string(to)))
	}

	result := ApplyResult{Deal: saved}
	if pinEffects := workflow.PinEffects(effects); len(pinEffects) > 0 {
		result.Warning = u.syncPins(ctx, saved.ID, pinEffects, log)
	}
	return result, nil
}

// syncPins applies pin effects to every pin linked to the deal. Failures are
// collected and never retried.
func (u *DealWorkflowUseCase) syncPins(ctx context.Context, dealID string, effects []workflow.SideEffect, log *zap.Logger) *workflow.SideEffectPartialFailure {
	if u.pins == nil {
		return nil
	}
	failure := &workflow.SideEffectPartialFailure{}

	pins, err := u.pins.ListByDealID(ctx, dealID)
	if err != nil {
		log.Warn("[deal][usecase] pin lookup failed", zap.Error(err))
		failure.Causes = append(failure.Causes, err)
		metrics.RecordPinSyncFailures(1)
		return failure
	}

	for _, e := range effects {
		for _, p := range pins {
			if p.Status == e.PinStatus {
				continue
			}
			if _, err := u.pins.UpdateStatus(ctx, p.ID, e.PinStatus); err != nil {
				log.Warn("[deal][usecase] pin sync failed", zap.String("pin_id", p.ID), zap.String("pin_status", string(e.PinStatus)), zap.Error(err))
				failure.Add(p.ID, err)
				continue
			}
			log.Info("[deal][usecase] pin synced", zap.String("pin_id", p.ID), zap.String("pin_status", string(e.PinStatus)))
		}
	}

	if failure.Empty() {
		return nil
	}
	metrics.RecordPinSyncFailures(len(failure.FailedPinIDs))
	return failure
}

func (u *DealWorkflowUseCase) CreateDeal(ctx context.Context, in CreateDealInput, actor entities.Actor) (entities.Deal, error) {
	if !actor.Role.Valid() {
		return entities.Deal{}, ErrInvalidActor
	}
	name := strings.TrimSpace(in.HomeownerName)
	if name == "" {
		return entities.Deal{}, ErrHomeownerNameRequired
	}

	repID := strings.TrimSpace(in.RepID)
	if repID == "" && actor.Role == entities.RoleRep {
		repID = actor.ID
	}
	repName := strings.TrimSpace(in.RepName)
	if repName == "" && repID != "" {
		rep, err := u.loadRep(ctx, repID)
		if err != nil {
			return entities.Deal{}, err
		}
		repName = rep.FullName
	}

	now := u.now()
	d := entities.Deal{
		ID:            uuid.NewString(),
		PinID:         strings.TrimSpace(in.PinID),
		CreatedAt:     now,
		UpdatedAt:     now,
		HomeownerName: name,
		Address:       strings.TrimSpace(in.Address),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		Notes:         in.Notes,
		Status:        entities.DealStatusLead,
		Milestones:    map[entities.DealStatus]time.Time{entities.DealStatusLead: now},
		RepID:         repID,
		RepName:       repName,
	}

	created, err := u.deals.Create(ctx, d)
	if err != nil {
		u.log.Error("[deal][usecase] create failed", zap.Error(err))
		return entities.Deal{}, err
	}
	u.log.Info("[deal][usecase] created", zap.String("deal_id", created.ID), zap.String("pin_id", created.PinID), zap.String("rep_id", created.RepID))
	return created, nil
}

func (u *DealWorkflowUseCase) GetDeal(ctx context.Context, id string) (entities.Deal, error) {
	return u.load(ctx, id)
}

func (u *DealWorkflowUseCase) SignContract(ctx context.Context, id string, signedAt time.Time, url string, actor entities.Actor) (entities.Deal, error) {
	if !actor.Role.Valid() {
		return entities.Deal{}, ErrInvalidActor
	}
	d, err := u.load(ctx, id)
	if err != nil {
		return entities.Deal{}, err
	}
	signed, err := workflow.Sign(d, signedAt, url, u.now())
	if err != nil {
		return entities.Deal{}, err
	}
	return u.save(ctx, signed)
}

func (u *DealWorkflowUseCase) AddAsset(ctx context.Context, id string, kind entities.AssetKind, refs []string, actor entities.Actor) (entities.Deal, error) {
	return u.mutateAssets(ctx, id, kind, refs, actor, u.deals.AddAsset)
}

func (u *DealWorkflowUseCase) RemoveAsset(ctx context.Context, id string, kind entities.AssetKind, refs []string, actor entities.Actor) (entities.Deal, error) {
	return u.mutateAssets(ctx, id, kind, refs, actor, u.deals.RemoveAsset)
}

type assetMutation func(ctx context.Context, id string, kind entities.AssetKind, refs []string) (entities.Deal, error)

func (u *DealWorkflowUseCase) mutateAssets(ctx context.Context, id string, kind entities.AssetKind, refs []string, actor entities.Actor, mutate assetMutation) (entities.Deal, error) {
	if !actor.Role.Valid() {
		return entities.Deal{}, ErrInvalidActor
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Deal{}, ErrInvalidDealID
	}
	if !kind.Valid() {
		return entities.Deal{}, ErrInvalidAssetKind
	}
	cleaned := cleanRefs(refs)
	if len(cleaned) == 0 {
		return entities.Deal{}, ErrInvalidAssetRefs
	}

	d, err := mutate(ctx, id, kind, cleaned)
	if err != nil {
		u.log.Error("[deal][usecase] asset update failed", zap.String("deal_id", id), zap.String("kind", string(kind)), zap.Error(err))
		return entities.Deal{}, err
	}
	if d.ID == "" {
		return entities.Deal{}, ErrDealNotFound
	}
	return d, nil
}

func (u *DealWorkflowUseCase) GetCommission(ctx context.Context, id string) (CommissionResult, error) {
	d, err := u.load(ctx, id)
	if err != nil {
		return CommissionResult{}, err
	}
	return u.commissionOf(ctx, d)
}

func (u *DealWorkflowUseCase) SetCommissionOverride(ctx context.Context, id string, amount decimal.Decimal, reason string, actor entities.Actor) (CommissionResult, error) {
	d, err := u.load(ctx, id)
	if err != nil {
		return CommissionResult{}, err
	}
	updated, err := workflow.SetOverride(d, actor, amount, reason, u.now())
	if err != nil {
		return CommissionResult{}, err
	}
	saved, err := u.save(ctx, updated)
	if err != nil {
		return CommissionResult{}, err
	}
	metrics.RecordCommissionEvent(workflow.AuditOverrideSet)
	u.log.Info("[commission][usecase] override set", zap.String("deal_id", saved.ID), zap.String("actor_id", actor.ID), zap.String("amount", amount.StringFixed(2)))
	return u.commissionOf(ctx, saved)
}

func (u *DealWorkflowUseCase) ClearCommissionOverride(ctx context.Context, id string, actor entities.Actor) (CommissionResult, error) {
	d, err := u.load(ctx, id)
	if err != nil {
		return CommissionResult{}, err
	}
	updated, err := workflow.ClearOverride(d, actor, u.now())
	if err != nil {
		return CommissionResult{}, err
	}
	saved, err := u.save(ctx, updated)
	if err != nil {
		return CommissionResult{}, err
	}
	metrics.RecordCommissionEvent(workflow.AuditOverrideCleared)
	u.log.Info("[commission][usecase] override cleared", zap.String("deal_id", saved.ID), zap.String("actor_id", actor.ID))
	return u.commissionOf(ctx, saved)
}

// MarkCommissionPaid pays out the commission of a completed deal and, by
// default, advances it to paid through Apply.
func (u *DealWorkflowUseCase) MarkCommissionPaid(ctx context.Context, id string, opts MarkPaidOptions, actor entities.Actor) (ApplyResult, error) {
	if !opts.MarkPaid && !opts.AdvanceStatus {
		return ApplyResult{}, ErrNothingToMark
	}
	if !actor.IsAdmin() {
		return ApplyResult{}, &workflow.RoleNotPermittedError{Role: actor.Role, Operation: "mark commission paid"}
	}
	d, err := u.load(ctx, id)
	if err != nil {
		return ApplyResult{}, err
	}
	if !workflow.CanMarkPaid(d) {
		return ApplyResult{}, workflow.ErrCommissionNotPayable
	}

	if opts.MarkPaid && !d.CommissionPaid {
		c, err := u.commissionOf(ctx, d)
		if err != nil {
			return ApplyResult{}, err
		}
		paid, err := workflow.MarkPaid(d, actor, c.Breakdown, u.now())
		if err != nil {
			return ApplyResult{}, err
		}
		if d, err = u.save(ctx, paid); err != nil {
			return ApplyResult{}, err
		}
		metrics.RecordCommissionEvent(workflow.AuditCommissionPaid)
		u.log.Info("[commission][usecase] marked paid", zap.String("deal_id", d.ID), zap.String("amount", c.Breakdown.Amount.StringFixed(2)), zap.String("source", string(c.Breakdown.Source)))
	}

	if !opts.AdvanceStatus || d.Status == entities.DealStatusPaid {
		return ApplyResult{Deal: d}, nil
	}
	target := entities.DealStatusPaid
	return u.Apply(ctx, d.ID, workflow.DealUpdate{Status: &target}, ApplyOptions{Actor: actor})
}

func (u *DealWorkflowUseCase) UnlockFinancials(ctx context.Context, id string, reason string, actor entities.Actor) (entities.Deal, error) {
	d, err := u.load(ctx, id)
	if err != nil {
		return entities.Deal{}, err
	}
	unlocked, err := workflow.Unlock(d, actor, reason, u.now())
	if err != nil {
		return entities.Deal{}, err
	}
	saved, err := u.save(ctx, unlocked)
	if err != nil {
		return entities.Deal{}, err
	}
	u.log.Info("[deal][usecase] financials unlocked", zap.String("deal_id", saved.ID), zap.String("actor_id", actor.ID))
	return saved, nil
}

func (u *DealWorkflowUseCase) NextAction(ctx context.Context, id string, actor entities.Actor) (*workflow.NextAction, error) {
	d, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return workflow.NextRequiredAction(d.Status, actor.Role), nil
}

func (u *DealWorkflowUseCase) ListPinsForDeal(ctx context.Context, id string) ([]entities.Pin, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidDealID
	}
	if u.pins == nil {
		return nil, nil
	}
	return u.pins.ListByDealID(ctx, id)
}

func (u *DealWorkflowUseCase) load(ctx context.Context, id string) (entities.Deal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Deal{}, ErrInvalidDealID
	}
	d, err := u.deals.GetByID(ctx, id)
	if err != nil {
		u.log.Error("[deal][usecase] load failed", zap.String("deal_id", id), zap.Error(err))
		return entities.Deal{}, err
	}
	if d.ID == "" {
		return entities.Deal{}, ErrDealNotFound
	}
	return d, nil
}

func (u *DealWorkflowUseCase) save(ctx context.Context, d entities.Deal) (entities.Deal, error) {
	saved, err := u.deals.Save(ctx, d)
	if err != nil {
		u.log.Error("[deal][usecase] save failed", zap.String("deal_id", d.ID), zap.Error(err))
		return entities.Deal{}, err
	}
	if saved.ID == "" {
		return entities.Deal{}, ErrDealNotFound
	}
	return saved, nil
}

// loadRep returns a zero Rep when the deal has no rep or the rep is gone, so
// the policy default applies.
func (u *DealWorkflowUseCase) loadRep(ctx context.Context, repID string) (entities.Rep, error) {
	if u.reps == nil || repID == "" {
		return entities.Rep{}, nil
	}
	r, err := u.reps.GetByID(ctx, repID)
	if err != nil {
		return entities.Rep{}, err
	}
	if r.ID == "" {
		u.log.Warn("[deal][usecase] rep not found", zap.String("rep_id", repID))
	}
	return r, nil
}

func (u *DealWorkflowUseCase) commissionOf(ctx context.Context, d entities.Deal) (CommissionResult, error) {
	rep, err := u.loadRep(ctx, d.RepID)
	if err != nil {
		return CommissionResult{}, err
	}
	return CommissionResult{
		DealID:    d.ID,
		Breakdown: u.policy.ComputeCommission(d, rep),
		Override:  d.CommissionOverride,
		Paid:      d.CommissionPaid,
		PaidDate:  d.CommissionPaidDate,
	}, nil
}

func hasEffect(effects []workflow.SideEffect, kind workflow.SideEffectKind) bool {
	for _, e := range effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func cleanRefs(refs []string) []string {
	seen := make(map[string]struct{}, len(refs))
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// rejectionReason is the metrics label of a workflow rejection.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, workflow.ErrUnknownStatus):
		return "unknown_status"
	case errors.Is(err, workflow.ErrBackwardTransitionRejected):
		return "backward"
	case errors.Is(err, workflow.ErrRoleNotPermitted):
		return "role"
	case errors.Is(err, workflow.ErrMissingRequiredField):
		return "missing_field"
	case errors.Is(err, workflow.ErrFinancialsLocked):
		return "financials_locked"
	case errors.Is(err, workflow.ErrIncompleteApprovalSnapshot):
		return "incomplete_snapshot"
	case errors.Is(err, workflow.ErrInvalidApprovalType):
		return "invalid_approval_type"
	default:
		return "other"
	}
}
