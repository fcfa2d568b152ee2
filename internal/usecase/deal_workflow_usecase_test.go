package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"roofing_crm/internal/domain/entities"
	"roofing_crm/internal/domain/workflow"
	mock_interfaces "roofing_crm/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var (
	fixedNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	admin    = entities.Actor{ID: "u-admin", Role: entities.RoleAdmin}
	rep      = entities.Actor{ID: "rep-1", Role: entities.RoleRep}
)

func ptr[T any](v T) *T { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

type workflowMocks struct {
	deals *mock_interfaces.MockIDealRepository
	pins  *mock_interfaces.MockIPinRepository
	reps  *mock_interfaces.MockIRepRepository
}

func newWorkflowUseCase(t *testing.T) (*DealWorkflowUseCase, workflowMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := workflowMocks{
		deals: mock_interfaces.NewMockIDealRepository(ctrl),
		pins:  mock_interfaces.NewMockIPinRepository(ctrl),
		reps:  mock_interfaces.NewMockIRepRepository(ctrl),
	}
	uc := NewDealWorkflowUseCase(m.deals, m.pins, m.reps, workflow.DefaultCommissionPolicy(), nil)
	uc.now = func() time.Time { return fixedNow }
	return uc, m
}

// storeBacked wires GetByID/Save to a single in-memory record.
func storeBacked(m workflowMocks, d entities.Deal) *entities.Deal {
	stored := d
	m.deals.EXPECT().GetByID(gomock.Any(), d.ID).DoAndReturn(func(_ context.Context, _ string) (entities.Deal, error) {
		return stored.Clone(), nil
	}).AnyTimes()
	m.deals.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in entities.Deal) (entities.Deal, error) {
		stored = in.Clone()
		return in, nil
	}).AnyTimes()
	return &stored
}

func TestDealWorkflowUseCase_Apply_Validations(t *testing.T) {
	t.Run("invalid actor", func(t *testing.T) {
		uc, _ := newWorkflowUseCase(t)
		_, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{Notes: ptr("x")}, ApplyOptions{})
		if !errors.Is(err, ErrInvalidActor) {
			t.Fatalf("expected ErrInvalidActor, got %v", err)
		}
	})

	t.Run("empty id", func(t *testing.T) {
		uc, _ := newWorkflowUseCase(t)
		_, err := uc.Apply(context.Background(), "  ", workflow.DealUpdate{}, ApplyOptions{Actor: rep})
		if !errors.Is(err, ErrInvalidDealID) {
			t.Fatalf("expected ErrInvalidDealID, got %v", err)
		}
	})

	t.Run("deal not found", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().GetByID(gomock.Any(), "deal-1").Return(entities.Deal{}, nil)

		_, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{Notes: ptr("x")}, ApplyOptions{Actor: rep})
		if !errors.Is(err, ErrDealNotFound) {
			t.Fatalf("expected ErrDealNotFound, got %v", err)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().GetByID(gomock.Any(), "deal-1").Return(entities.Deal{}, errors.New("db"))

		_, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{Notes: ptr("x")}, ApplyOptions{Actor: rep})
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("empty update returns stored deal without writing", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().GetByID(gomock.Any(), "deal-1").Return(entities.Deal{ID: "deal-1", Status: entities.DealStatusLead}, nil)

		res, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{}, ApplyOptions{Actor: rep})
		if err != nil || res.Deal.ID != "deal-1" {
			t.Fatalf("unexpected result %+v err=%v", res, err)
		}
	})
}

func TestDealWorkflowUseCase_Apply_Rejections(t *testing.T) {
	t.Run("backward move never reaches the store", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().GetByID(gomock.Any(), "deal-1").Return(entities.Deal{ID: "deal-1", Status: entities.DealStatusInstalled}, nil)

		target := entities.DealStatusLead
		_, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{Status: &target}, ApplyOptions{Actor: rep, ConfirmBackward: true})
		if !errors.Is(err, workflow.ErrBackwardTransitionRejected) {
			t.Fatalf("expected ErrBackwardTransitionRejected, got %v", err)
		}
	})

	t.Run("missing install date", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().GetByID(gomock.Any(), "deal-1").Return(entities.Deal{ID: "deal-1", Status: entities.DealStatusMaterialsSelected}, nil)

		target := entities.DealStatusInstallScheduled
		_, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{Status: &target}, ApplyOptions{Actor: admin})
		var me *workflow.MissingRequiredFieldError
		if !errors.As(err, &me) || me.Field != "install_date" {
			t.Fatalf("expected missing install_date, got %v", err)
		}
	})

	t.Run("locked financials", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		at := entities.ApprovalTypeFull
		m.deals.EXPECT().GetByID(gomock.Any(), "deal-1").Return(entities.Deal{
			ID: "deal-1", Status: entities.DealStatusApproved, ApprovalType: &at, ApprovedDate: ptr(fixedNow),
			RCV: dec("15000"), ACV: dec("1000"), Deductible: dec("1000"), Depreciation: dec("500"),
		}, nil)

		_, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{ACV: dec("5000")}, ApplyOptions{Actor: admin})
		if !errors.Is(err, workflow.ErrFinancialsLocked) {
			t.Fatalf("expected ErrFinancialsLocked, got %v", err)
		}
	})
}

func TestDealWorkflowUseCase_Apply_Success(t *testing.T) {
	t.Run("forward move with data in the same call", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		stored := storeBacked(m, entities.Deal{ID: "deal-1", Status: entities.DealStatusMaterialsSelected})

		target := entities.DealStatusInstallScheduled
		installOn := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
		res, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{Status: &target, InstallDate: &installOn}, ApplyOptions{Actor: admin})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Warning != nil {
			t.Fatalf("unexpected warning: %v", res.Warning)
		}
		if stored.Status != target || stored.InstallDate == nil {
			t.Fatalf("unexpected stored deal: %+v", stored)
		}
		if got := stored.Milestones[target]; !got.Equal(fixedNow) {
			t.Fatalf("expected milestone at %v, got %v", fixedNow, got)
		}
	})

	t.Run("confirmed backward move is audited", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		stored := storeBacked(m, entities.Deal{ID: "deal-1", Status: entities.DealStatusInstalled})

		target := entities.DealStatusMaterialsSelected
		_, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{Status: &target}, ApplyOptions{Actor: admin, ConfirmBackward: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(stored.AuditLog) != 1 || stored.AuditLog[0].Action != workflow.AuditBackwardTransition {
			t.Fatalf("expected backward audit entry, got %+v", stored.AuditLog)
		}
	})

	t.Run("installed syncs linked pins", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		storeBacked(m, entities.Deal{
			ID: "deal-1", Status: entities.DealStatusInstallScheduled, InstallDate: ptr(fixedNow),
			Assets: map[entities.AssetKind][]string{entities.AssetInstallPhotos: {"roof.jpg"}},
		})
		m.pins.EXPECT().ListByDealID(gomock.Any(), "deal-1").Return([]entities.Pin{
			{ID: "pin-1", DealID: "deal-1", Status: entities.PinStatusAppointment},
			{ID: "pin-2", DealID: "deal-1", Status: entities.PinStatusInstalled},
		}, nil)
		m.pins.EXPECT().UpdateStatus(gomock.Any(), "pin-1", entities.PinStatusInstalled).Return(entities.Pin{ID: "pin-1", Status: entities.PinStatusInstalled}, nil)

		target := entities.DealStatusInstalled
		res, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{Status: &target}, ApplyOptions{Actor: rep})
		if err != nil || res.Warning != nil {
			t.Fatalf("unexpected result warning=%v err=%v", res.Warning, err)
		}
	})

	t.Run("pin failure is a warning, not an error", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		stored := storeBacked(m, entities.Deal{
			ID: "deal-1", Status: entities.DealStatusInstallScheduled, InstallDate: ptr(fixedNow),
			Assets: map[entities.AssetKind][]string{entities.AssetInstallPhotos: {"roof.jpg"}},
		})
		m.pins.EXPECT().ListByDealID(gomock.Any(), "deal-1").Return([]entities.Pin{
			{ID: "pin-1", Status: entities.PinStatusAppointment},
			{ID: "pin-2", Status: entities.PinStatusLead},
		}, nil)
		m.pins.EXPECT().UpdateStatus(gomock.Any(), "pin-1", entities.PinStatusInstalled).Return(entities.Pin{}, errors.New("throttled"))
		m.pins.EXPECT().UpdateStatus(gomock.Any(), "pin-2", entities.PinStatusInstalled).Return(entities.Pin{ID: "pin-2"}, nil)

		target := entities.DealStatusInstalled
		res, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{Status: &target}, ApplyOptions{Actor: rep})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored.Status != entities.DealStatusInstalled || res.Deal.Status != entities.DealStatusInstalled {
			t.Fatalf("deal update must stand, got %s", stored.Status)
		}
		if res.Warning == nil || len(res.Warning.FailedPinIDs) != 1 || res.Warning.FailedPinIDs[0] != "pin-1" {
			t.Fatalf("expected warning for pin-1, got %+v", res.Warning)
		}
		if !errors.Is(res.Warning, workflow.ErrSideEffectPartialFailure) {
			t.Fatalf("warning must match ErrSideEffectPartialFailure")
		}
	})

	t.Run("pin lookup failure is a warning", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		storeBacked(m, entities.Deal{
			ID: "deal-1", Status: entities.DealStatusInstallScheduled, InstallDate: ptr(fixedNow),
			Assets: map[entities.AssetKind][]string{entities.AssetInstallPhotos: {"roof.jpg"}},
		})
		m.pins.EXPECT().ListByDealID(gomock.Any(), "deal-1").Return(nil, errors.New("db"))

		target := entities.DealStatusInstalled
		res, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{Status: &target}, ApplyOptions{Actor: rep})
		if err != nil || res.Warning == nil || len(res.Warning.Causes) != 1 {
			t.Fatalf("expected lookup warning, got warning=%+v err=%v", res.Warning, err)
		}
	})

	t.Run("save reports missing record", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().GetByID(gomock.Any(), "deal-1").Return(entities.Deal{ID: "deal-1", Status: entities.DealStatusLead}, nil)
		m.deals.EXPECT().Save(gomock.Any(), gomock.Any()).Return(entities.Deal{}, nil)

		_, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{Notes: ptr("x")}, ApplyOptions{Actor: rep})
		if !errors.Is(err, ErrDealNotFound) {
			t.Fatalf("expected ErrDealNotFound, got %v", err)
		}
	})
}

func TestDealWorkflowUseCase_Apply_Assignment(t *testing.T) {
	deal := entities.Deal{ID: "deal-1", Status: entities.DealStatusInstalled, RCV: dec("10000"), RepID: "rep-1", RepName: "Jo"}

	t.Run("rep cannot raise the commission percent", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().GetByID(gomock.Any(), "deal-1").Return(deal, nil)

		_, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{CommissionPercent: dec("50")}, ApplyOptions{Actor: rep})
		var re *workflow.RoleNotPermittedError
		if !errors.As(err, &re) || re.Role != entities.RoleRep {
			t.Fatalf("expected RoleNotPermittedError, got %v", err)
		}
	})

	t.Run("rep cannot reassign the deal", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().GetByID(gomock.Any(), "deal-1").Return(deal, nil)

		_, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{RepID: ptr("rep-2")}, ApplyOptions{Actor: rep})
		if !errors.Is(err, workflow.ErrRoleNotPermitted) {
			t.Fatalf("expected ErrRoleNotPermitted, got %v", err)
		}
	})

	t.Run("rep may resend the stored assignment", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		stored := storeBacked(m, deal)

		_, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{RepID: ptr("rep-1"), Notes: ptr("called")}, ApplyOptions{Actor: rep})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(stored.AuditLog) != 0 {
			t.Fatalf("expected no audit entry, got %+v", stored.AuditLog)
		}
	})

	t.Run("admin change is audited", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		stored := storeBacked(m, deal)

		_, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{RepID: ptr("rep-2"), CommissionPercent: dec("7.5")}, ApplyOptions{Actor: admin})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(stored.AuditLog) != 2 {
			t.Fatalf("expected two audit entries, got %+v", stored.AuditLog)
		}
		for _, e := range stored.AuditLog {
			if e.Action != workflow.AuditAssignmentChanged || e.ActorID != admin.ID {
				t.Fatalf("unexpected audit entry %+v", e)
			}
		}
		if stored.AuditLog[0].Detail != "rep_id: rep-1 -> rep-2" {
			t.Fatalf("unexpected detail %q", stored.AuditLog[0].Detail)
		}
	})
}

func TestDealWorkflowUseCase_CreateDeal(t *testing.T) {
	t.Run("homeowner required", func(t *testing.T) {
		uc, _ := newWorkflowUseCase(t)
		_, err := uc.CreateDeal(context.Background(), CreateDealInput{HomeownerName: " "}, rep)
		if !errors.Is(err, ErrHomeownerNameRequired) {
			t.Fatalf("expected ErrHomeownerNameRequired, got %v", err)
		}
	})

	t.Run("rep caller owns the deal", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.reps.EXPECT().GetByID(gomock.Any(), "rep-1").Return(entities.Rep{ID: "rep-1", FullName: "Sam Rivera"}, nil)
		m.deals.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d entities.Deal) (entities.Deal, error) {
			return d, nil
		})

		d, err := uc.CreateDeal(context.Background(), CreateDealInput{HomeownerName: " Ana Lima ", Address: "12 Oak St"}, rep)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.ID == "" || d.Status != entities.DealStatusLead || d.HomeownerName != "Ana Lima" {
			t.Fatalf("unexpected deal: %+v", d)
		}
		if d.RepID != "rep-1" || d.RepName != "Sam Rivera" {
			t.Fatalf("expected rep assignment, got %s/%s", d.RepID, d.RepName)
		}
		if _, ok := d.Milestones[entities.DealStatusLead]; !ok {
			t.Fatalf("expected lead milestone")
		}
	})
}

func TestDealWorkflowUseCase_Assets(t *testing.T) {
	t.Run("invalid kind", func(t *testing.T) {
		uc, _ := newWorkflowUseCase(t)
		_, err := uc.AddAsset(context.Background(), "deal-1", "selfies", []string{"a"}, rep)
		if !errors.Is(err, ErrInvalidAssetKind) {
			t.Fatalf("expected ErrInvalidAssetKind, got %v", err)
		}
	})

	t.Run("no references", func(t *testing.T) {
		uc, _ := newWorkflowUseCase(t)
		_, err := uc.AddAsset(context.Background(), "deal-1", entities.AssetInstallPhotos, []string{" ", ""}, rep)
		if !errors.Is(err, ErrInvalidAssetRefs) {
			t.Fatalf("expected ErrInvalidAssetRefs, got %v", err)
		}
	})

	t.Run("add trims and dedupes", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().AddAsset(gomock.Any(), "deal-1", entities.AssetInstallPhotos, []string{"a.jpg", "b.jpg"}).
			Return(entities.Deal{ID: "deal-1"}, nil)

		if _, err := uc.AddAsset(context.Background(), "deal-1", entities.AssetInstallPhotos, []string{" a.jpg", "b.jpg", "a.jpg"}, rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("remove on missing deal", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().RemoveAsset(gomock.Any(), "deal-1", entities.AssetInvoices, []string{"inv.pdf"}).Return(entities.Deal{}, nil)

		_, err := uc.RemoveAsset(context.Background(), "deal-1", entities.AssetInvoices, []string{"inv.pdf"}, admin)
		if !errors.Is(err, ErrDealNotFound) {
			t.Fatalf("expected ErrDealNotFound, got %v", err)
		}
	})
}

func TestDealWorkflowUseCase_SignContract(t *testing.T) {
	uc, m := newWorkflowUseCase(t)
	stored := storeBacked(m, entities.Deal{ID: "deal-1", Status: entities.DealStatusApproved})

	if _, err := uc.SignContract(context.Background(), "deal-1", fixedNow, "", rep); !errors.Is(err, workflow.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if _, err := uc.SignContract(context.Background(), "deal-1", fixedNow, "https://files/sig.png", rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.IsSigned() {
		t.Fatalf("expected signature to be stored")
	}
}

func TestDealWorkflowUseCase_Commission(t *testing.T) {
	deal := entities.Deal{ID: "deal-1", Status: entities.DealStatusInstalled, RCV: dec("10000"), RepID: "rep-1"}

	t.Run("computed from the rep tier", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().GetByID(gomock.Any(), "deal-1").Return(deal, nil)
		m.reps.EXPECT().GetByID(gomock.Any(), "rep-1").Return(entities.Rep{ID: "rep-1", CommissionLevel: entities.CommissionLevelManager}, nil)

		c, err := uc.GetCommission(context.Background(), "deal-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Breakdown.Percent.String() != "13" || c.Breakdown.Amount.StringFixed(2) != "1192.75" {
			t.Fatalf("unexpected breakdown: %+v", c.Breakdown)
		}
	})

	t.Run("missing rep falls back to policy default", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().GetByID(gomock.Any(), "deal-1").Return(deal, nil)
		m.reps.EXPECT().GetByID(gomock.Any(), "rep-1").Return(entities.Rep{}, nil)

		c, err := uc.GetCommission(context.Background(), "deal-1")
		if err != nil || c.Breakdown.Amount.StringFixed(2) != "917.50" {
			t.Fatalf("unexpected commission %+v err=%v", c, err)
		}
	})

	t.Run("override requires admin", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().GetByID(gomock.Any(), "deal-1").Return(deal, nil)

		_, err := uc.SetCommissionOverride(context.Background(), "deal-1", decimal.NewFromInt(999), "split", rep)
		if !errors.Is(err, workflow.ErrRoleNotPermitted) {
			t.Fatalf("expected ErrRoleNotPermitted, got %v", err)
		}
	})

	t.Run("override set and cleared", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		stored := storeBacked(m, deal)
		m.reps.EXPECT().GetByID(gomock.Any(), "rep-1").Return(entities.Rep{ID: "rep-1"}, nil).Times(2)

		c, err := uc.SetCommissionOverride(context.Background(), "deal-1", decimal.NewFromInt(999), "split deal", admin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Breakdown.Source != workflow.CommissionSourceOverride || c.Breakdown.Amount.String() != "999" {
			t.Fatalf("unexpected breakdown: %+v", c.Breakdown)
		}

		c, err = uc.ClearCommissionOverride(context.Background(), "deal-1", admin)
		if err != nil || c.Override != nil || c.Breakdown.Source != workflow.CommissionSourceComputed {
			t.Fatalf("unexpected clear result %+v err=%v", c, err)
		}
		if len(stored.AuditLog) != 2 {
			t.Fatalf("expected two audit entries, got %d", len(stored.AuditLog))
		}
	})

	t.Run("invalid override", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().GetByID(gomock.Any(), "deal-1").Return(deal, nil)

		_, err := uc.SetCommissionOverride(context.Background(), "deal-1", decimal.NewFromInt(10), "", admin)
		if !errors.Is(err, workflow.ErrInvalidOverride) {
			t.Fatalf("expected ErrInvalidOverride, got %v", err)
		}
	})
}

func TestDealWorkflowUseCase_MarkCommissionPaid(t *testing.T) {
	complete := entities.Deal{ID: "deal-1", Status: entities.DealStatusComplete, RCV: dec("10000")}

	t.Run("rep rejected", func(t *testing.T) {
		uc, _ := newWorkflowUseCase(t)
		_, err := uc.MarkCommissionPaid(context.Background(), "deal-1", DefaultMarkPaidOptions(), rep)
		if !errors.Is(err, workflow.ErrRoleNotPermitted) {
			t.Fatalf("expected ErrRoleNotPermitted, got %v", err)
		}
	})

	t.Run("before complete", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().GetByID(gomock.Any(), "deal-1").Return(entities.Deal{ID: "deal-1", Status: entities.DealStatusInstalled}, nil)

		_, err := uc.MarkCommissionPaid(context.Background(), "deal-1", DefaultMarkPaidOptions(), admin)
		if !errors.Is(err, workflow.ErrCommissionNotPayable) {
			t.Fatalf("expected ErrCommissionNotPayable, got %v", err)
		}
	})

	t.Run("no option selected", func(t *testing.T) {
		uc, _ := newWorkflowUseCase(t)
		_, err := uc.MarkCommissionPaid(context.Background(), "deal-1", MarkPaidOptions{}, admin)
		if !errors.Is(err, ErrNothingToMark) {
			t.Fatalf("expected ErrNothingToMark, got %v", err)
		}
	})

	t.Run("mark paid and advance", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		stored := storeBacked(m, complete)

		res, err := uc.MarkCommissionPaid(context.Background(), "deal-1", DefaultMarkPaidOptions(), admin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Deal.Status != entities.DealStatusPaid || stored.Status != entities.DealStatusPaid {
			t.Fatalf("expected paid status, got %s", stored.Status)
		}
		if !stored.CommissionPaid || stored.Commission == nil || stored.Commission.Amount.StringFixed(2) != "917.50" {
			t.Fatalf("expected frozen commission, got %+v", stored.Commission)
		}
		if _, ok := stored.Milestones[entities.DealStatusPaid]; !ok {
			t.Fatalf("expected paid milestone")
		}
	})

	t.Run("mark paid only", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		stored := storeBacked(m, complete)

		res, err := uc.MarkCommissionPaid(context.Background(), "deal-1", MarkPaidOptions{MarkPaid: true}, admin)
		if err != nil || !res.Deal.CommissionPaid {
			t.Fatalf("unexpected result %+v err=%v", res.Deal, err)
		}
		if stored.Status != entities.DealStatusComplete {
			t.Fatalf("status must not change, got %s", stored.Status)
		}
	})
}

func TestDealWorkflowUseCase_PayoutThroughStatusIsFrozen(t *testing.T) {
	complete := entities.Deal{ID: "deal-1", Status: entities.DealStatusComplete, RCV: dec("10000")}

	t.Run("advance only", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		stored := storeBacked(m, complete)

		if _, err := uc.MarkCommissionPaid(context.Background(), "deal-1", MarkPaidOptions{AdvanceStatus: true}, admin); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !stored.CommissionPaid || stored.Commission == nil || stored.Commission.Amount == nil {
			t.Fatalf("expected frozen commission record, got %+v", stored.Commission)
		}

		if _, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{RCV: dec("20000")}, ApplyOptions{Actor: admin}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		c, err := uc.GetCommission(context.Background(), "deal-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Breakdown.Amount.StringFixed(2) != "917.50" || c.Breakdown.Source != workflow.CommissionSourceRecord {
			t.Fatalf("paid amount moved: %+v", c.Breakdown)
		}
	})

	t.Run("status update to paid", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		stored := storeBacked(m, complete)

		target := entities.DealStatusPaid
		if _, err := uc.Apply(context.Background(), "deal-1", workflow.DealUpdate{Status: &target}, ApplyOptions{Actor: admin}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored.Commission == nil || stored.Commission.Amount.StringFixed(2) != "917.50" || !stored.Commission.Paid {
			t.Fatalf("expected frozen commission record, got %+v", stored.Commission)
		}
		if len(stored.AuditLog) != 1 || stored.AuditLog[0].Action != workflow.AuditCommissionPaid {
			t.Fatalf("expected payout audit entry, got %+v", stored.AuditLog)
		}
	})
}

func TestDealWorkflowUseCase_UnlockAndNextAction(t *testing.T) {
	at := entities.ApprovalTypeFull
	locked := entities.Deal{
		ID: "deal-1", Status: entities.DealStatusMaterialsSelected, ApprovalType: &at, ApprovedDate: ptr(fixedNow),
		RCV: dec("15000"), ACV: dec("1000"), Deductible: dec("1000"), Depreciation: dec("500"),
	}

	t.Run("unlock", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		stored := storeBacked(m, locked)

		if _, err := uc.UnlockFinancials(context.Background(), "deal-1", "", admin); !errors.Is(err, workflow.ErrUnlockReasonRequired) {
			t.Fatalf("expected ErrUnlockReasonRequired, got %v", err)
		}
		if _, err := uc.UnlockFinancials(context.Background(), "deal-1", "carrier revision", admin); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if workflow.IsLocked(*stored) {
			t.Fatalf("expected deal to be unlocked")
		}
	})

	t.Run("next action", func(t *testing.T) {
		uc, m := newWorkflowUseCase(t)
		m.deals.EXPECT().GetByID(gomock.Any(), "deal-1").Return(locked, nil).Times(2)

		a, err := uc.NextAction(context.Background(), "deal-1", rep)
		if err != nil || a == nil || !a.AwaitingAdmin {
			t.Fatalf("expected awaiting admin, got %+v err=%v", a, err)
		}
		a, err = uc.NextAction(context.Background(), "deal-1", admin)
		if err != nil || a == nil || a.AwaitingAdmin || a.TargetStatus != entities.DealStatusInstallScheduled {
			t.Fatalf("unexpected admin action %+v err=%v", a, err)
		}
	})
}

func TestDealWorkflowUseCase_ListPinsForDeal(t *testing.T) {
	uc, m := newWorkflowUseCase(t)
	m.pins.EXPECT().ListByDealID(gomock.Any(), "deal-1").Return([]entities.Pin{{ID: "pin-1"}}, nil)

	pins, err := uc.ListPinsForDeal(context.Background(), " deal-1 ")
	if err != nil || len(pins) != 1 {
		t.Fatalf("unexpected pins %+v err=%v", pins, err)
	}
	if _, err := uc.ListPinsForDeal(context.Background(), ""); !errors.Is(err, ErrInvalidDealID) {
		t.Fatalf("expected ErrInvalidDealID, got %v", err)
	}
}
