package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"roofing_crm/internal/adapter/http/handlers/mocks"
	"roofing_crm/internal/domain/entities"
	"roofing_crm/internal/domain/workflow"
	"roofing_crm/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newDealRouter(t *testing.T, actor entities.Actor) (*mocks.MockIDealWorkflowUseCase, *gin.Engine) {
	t.Helper()
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIDealWorkflowUseCase(ctrl)
	h := NewDealHandler(uc, nil)
	h.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	r := newRouter(actor)
	r.GET("/v1/statuses", h.ListStatuses)
	r.POST("/v1/deals", h.CreateDeal)
	r.GET("/v1/deals/:id", h.GetDeal)
	r.PATCH("/v1/deals/:id", h.UpdateDeal)
	r.POST("/v1/deals/:id/signature", h.SignContract)
	r.POST("/v1/deals/:id/assets/:kind", h.AddAsset)
	r.DELETE("/v1/deals/:id/assets/:kind", h.RemoveAsset)
	r.GET("/v1/deals/:id/commission", h.GetCommission)
	r.PUT("/v1/deals/:id/commission/override", h.SetCommissionOverride)
	r.DELETE("/v1/deals/:id/commission/override", h.ClearCommissionOverride)
	r.POST("/v1/deals/:id/commission/paid", h.MarkCommissionPaid)
	r.POST("/v1/deals/:id/financials/unlock", h.UnlockFinancials)
	r.GET("/v1/deals/:id/next-action", h.NextAction)
	r.GET("/v1/deals/:id/pins", h.ListPins)
	return uc, r
}

func decodeBody(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("invalid json body %s: %v", string(raw), err)
	}
	return body
}

func TestDealHandler_ListStatuses(t *testing.T) {
	_, r := newDealRouter(t, repActor)

	w := doJSON(r, "GET", "/v1/statuses", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body) != len(workflow.Statuses()) || body[0]["status"] != "lead" {
		t.Fatalf("unexpected catalog: %s", w.Body.String())
	}
}

func TestDealHandler_CreateDeal(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		_, r := newDealRouter(t, entities.Actor{})
		if w := doJSON(r, "POST", "/v1/deals", `{"homeowner_name":"Ann"}`); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, r := newDealRouter(t, repActor)
		if w := doJSON(r, "POST", "/v1/deals", `{"address":"1 Main"}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		uc, r := newDealRouter(t, repActor)
		uc.EXPECT().CreateDeal(gomock.Any(), usecase.CreateDealInput{HomeownerName: "Ann", Address: "1 Main"}, repActor).
			Return(entities.Deal{ID: "deal-1", HomeownerName: "Ann", Status: entities.DealStatusLead}, nil)

		w := doJSON(r, "POST", "/v1/deals", `{"homeowner_name":"Ann","address":"1 Main"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decodeBody(t, w.Body.Bytes())
		if body["id"] != "deal-1" || body["status_label"] != "Lead" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestDealHandler_GetDeal(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		uc, r := newDealRouter(t, repActor)
		uc.EXPECT().GetDeal(gomock.Any(), "deal-1").Return(entities.Deal{}, usecase.ErrDealNotFound)
		if w := doJSON(r, "GET", "/v1/deals/deal-1", ""); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		uc, r := newDealRouter(t, repActor)
		uc.EXPECT().GetDeal(gomock.Any(), "deal-1").Return(entities.Deal{ID: "deal-1", Status: entities.DealStatusClaimFiled}, nil)
		w := doJSON(r, "GET", "/v1/deals/deal-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w.Body.Bytes()); body["status"] != "claim_filed" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestDealHandler_UpdateDeal(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		_, r := newDealRouter(t, repActor)
		w := doJSON(r, "PATCH", "/v1/deals/deal-1", `{"status":"teleported"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeBody(t, w.Body.Bytes()); body["code"] != "UNKNOWN_STATUS" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("passes update and confirmation", func(t *testing.T) {
		uc, r := newDealRouter(t, adminActor)
		uc.EXPECT().Apply(gomock.Any(), "deal-1", gomock.Any(), usecase.ApplyOptions{Actor: adminActor, ConfirmBackward: true}).
			DoAndReturn(func(_ context.Context, _ string, u workflow.DealUpdate, _ usecase.ApplyOptions) (usecase.ApplyResult, error) {
				if u.Status == nil || *u.Status != entities.DealStatusInspectionScheduled {
					t.Fatalf("unexpected status: %v", u.Status)
				}
				if u.RCV == nil || !u.RCV.Equal(decimal.RequireFromString("12000.50")) {
					t.Fatalf("unexpected rcv: %v", u.RCV)
				}
				return usecase.ApplyResult{Deal: entities.Deal{ID: "deal-1", Status: *u.Status}}, nil
			})

		w := doJSON(r, "PATCH", "/v1/deals/deal-1", `{"status":"inspection","rcv":"12000.50","confirm_backward":true}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
		body := decodeBody(t, w.Body.Bytes())
		deal, _ := body["deal"].(map[string]any)
		if deal["status"] != "inspection_scheduled" || body["warning"] != nil {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("backward rejected carries details", func(t *testing.T) {
		uc, r := newDealRouter(t, repActor)
		uc.EXPECT().Apply(gomock.Any(), "deal-1", gomock.Any(), gomock.Any()).Return(usecase.ApplyResult{}, &workflow.BackwardTransitionError{
			From: entities.DealStatusClaimFiled,
			To:   entities.DealStatusLead,
		})

		w := doJSON(r, "PATCH", "/v1/deals/deal-1", `{"status":"lead"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		details, _ := decodeBody(t, w.Body.Bytes())["details"].(map[string]any)
		if details["from"] != "claim_filed" || details["to"] != "lead" || details["confirmation_required"] != false {
			t.Fatalf("unexpected details: %s", w.Body.String())
		}
	})

	t.Run("missing field", func(t *testing.T) {
		uc, r := newDealRouter(t, repActor)
		uc.EXPECT().Apply(gomock.Any(), "deal-1", gomock.Any(), gomock.Any()).Return(usecase.ApplyResult{}, &workflow.MissingRequiredFieldError{
			Status: entities.DealStatusClaimFiled,
			Field:  "claim_number",
		})

		w := doJSON(r, "PATCH", "/v1/deals/deal-1", `{"status":"claim_filed"}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		details, _ := decodeBody(t, w.Body.Bytes())["details"].(map[string]any)
		if details["field"] != "claim_number" {
			t.Fatalf("unexpected details: %s", w.Body.String())
		}
	})

	t.Run("pin sync warning", func(t *testing.T) {
		uc, r := newDealRouter(t, adminActor)
		warn := &workflow.SideEffectPartialFailure{}
		warn.Add("pin-9", errors.New("boom"))
		uc.EXPECT().Apply(gomock.Any(), "deal-1", gomock.Any(), gomock.Any()).
			Return(usecase.ApplyResult{Deal: entities.Deal{ID: "deal-1", Status: entities.DealStatusInstalled}, Warning: warn}, nil)

		w := doJSON(r, "PATCH", "/v1/deals/deal-1", `{"status":"installed"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		warning, _ := decodeBody(t, w.Body.Bytes())["warning"].(map[string]any)
		pins, _ := warning["failed_pin_ids"].([]any)
		if warning["code"] != "SIDE_EFFECT_PARTIAL_FAILURE" || len(pins) != 1 || pins[0] != "pin-9" {
			t.Fatalf("unexpected warning: %s", w.Body.String())
		}
	})
}

func TestDealHandler_SignContract(t *testing.T) {
	t.Run("missing url", func(t *testing.T) {
		_, r := newDealRouter(t, repActor)
		if w := doJSON(r, "POST", "/v1/deals/deal-1/signature", `{}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("defaults signed_at to now", func(t *testing.T) {
		uc, r := newDealRouter(t, repActor)
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		uc.EXPECT().SignContract(gomock.Any(), "deal-1", now, "https://files/sig.png", repActor).
			Return(entities.Deal{ID: "deal-1", Signature: &entities.Signature{SignedAt: now, URL: "https://files/sig.png"}}, nil)

		w := doJSON(r, "POST", "/v1/deals/deal-1/signature", `{"url":"https://files/sig.png"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestDealHandler_Assets(t *testing.T) {
	t.Run("empty refs", func(t *testing.T) {
		_, r := newDealRouter(t, repActor)
		if w := doJSON(r, "POST", "/v1/deals/deal-1/assets/permit_urls", `{"refs":[]}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid kind", func(t *testing.T) {
		uc, r := newDealRouter(t, repActor)
		uc.EXPECT().AddAsset(gomock.Any(), "deal-1", entities.AssetKind("selfies"), []string{"a"}, repActor).Return(entities.Deal{}, usecase.ErrInvalidAssetKind)
		w := doJSON(r, "POST", "/v1/deals/deal-1/assets/selfies", `{"refs":["a"]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeBody(t, w.Body.Bytes()); body["code"] != "INVALID_ASSET_KIND" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("add and remove", func(t *testing.T) {
		uc, r := newDealRouter(t, repActor)
		uc.EXPECT().AddAsset(gomock.Any(), "deal-1", entities.AssetPermits, []string{"p1"}, repActor).
			Return(entities.Deal{ID: "deal-1", Assets: map[entities.AssetKind][]string{entities.AssetPermits: {"p1"}}}, nil)
		uc.EXPECT().RemoveAsset(gomock.Any(), "deal-1", entities.AssetPermits, []string{"p1"}, repActor).
			Return(entities.Deal{ID: "deal-1"}, nil)

		if w := doJSON(r, "POST", "/v1/deals/deal-1/assets/permit_urls", `{"refs":["p1"]}`); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w := doJSON(r, "DELETE", "/v1/deals/deal-1/assets/permit_urls", `{"refs":["p1"]}`); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestDealHandler_Commission(t *testing.T) {
	result := usecase.CommissionResult{
		DealID: "deal-1",
		Breakdown: workflow.CommissionBreakdown{
			Amount: decimal.RequireFromString("1108.50"),
			Source: workflow.CommissionSourceComputed,
		},
	}

	t.Run("get", func(t *testing.T) {
		uc, r := newDealRouter(t, repActor)
		uc.EXPECT().GetCommission(gomock.Any(), "deal-1").Return(result, nil)
		w := doJSON(r, "GET", "/v1/deals/deal-1/commission", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w.Body.Bytes())
		if body["amount"] != "1108.5" || body["source"] != "computed" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("override requires amount", func(t *testing.T) {
		_, r := newDealRouter(t, adminActor)
		w := doJSON(r, "PUT", "/v1/deals/deal-1/commission/override", `{"reason":"bonus"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("override by rep is forbidden", func(t *testing.T) {
		uc, r := newDealRouter(t, repActor)
		uc.EXPECT().SetCommissionOverride(gomock.Any(), "deal-1", gomock.Any(), "bonus", repActor).
			Return(usecase.CommissionResult{}, &workflow.RoleNotPermittedError{Role: entities.RoleRep, Operation: "override commission"})
		w := doJSON(r, "PUT", "/v1/deals/deal-1/commission/override", `{"amount":"500","reason":"bonus"}`)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("override and clear", func(t *testing.T) {
		uc, r := newDealRouter(t, adminActor)
		uc.EXPECT().SetCommissionOverride(gomock.Any(), "deal-1", gomock.Any(), "bonus", adminActor).
			DoAndReturn(func(_ context.Context, _ string, amount decimal.Decimal, _ string, _ entities.Actor) (usecase.CommissionResult, error) {
				if !amount.Equal(decimal.NewFromInt(500)) {
					t.Fatalf("unexpected amount %s", amount)
				}
				return result, nil
			})
		uc.EXPECT().ClearCommissionOverride(gomock.Any(), "deal-1", adminActor).Return(result, nil)

		if w := doJSON(r, "PUT", "/v1/deals/deal-1/commission/override", `{"amount":"500","reason":"bonus"}`); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w := doJSON(r, "DELETE", "/v1/deals/deal-1/commission/override", ""); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("mark paid with empty body", func(t *testing.T) {
		uc, r := newDealRouter(t, adminActor)
		uc.EXPECT().MarkCommissionPaid(gomock.Any(), "deal-1", usecase.DefaultMarkPaidOptions(), adminActor).
			Return(usecase.ApplyResult{Deal: entities.Deal{ID: "deal-1", Status: entities.DealStatusPaid, CommissionPaid: true}}, nil)
		w := doJSON(r, "POST", "/v1/deals/deal-1/commission/paid", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("mark paid not payable", func(t *testing.T) {
		uc, r := newDealRouter(t, adminActor)
		uc.EXPECT().MarkCommissionPaid(gomock.Any(), "deal-1", usecase.MarkPaidOptions{MarkPaid: true, AdvanceStatus: false}, adminActor).
			Return(usecase.ApplyResult{}, workflow.ErrCommissionNotPayable)
		w := doJSON(r, "POST", "/v1/deals/deal-1/commission/paid", `{"advance_status":false}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestDealHandler_UnlockFinancials(t *testing.T) {
	t.Run("reason required", func(t *testing.T) {
		uc, r := newDealRouter(t, adminActor)
		uc.EXPECT().UnlockFinancials(gomock.Any(), "deal-1", "", adminActor).Return(entities.Deal{}, workflow.ErrUnlockReasonRequired)
		if w := doJSON(r, "POST", "/v1/deals/deal-1/financials/unlock", ""); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		uc, r := newDealRouter(t, adminActor)
		uc.EXPECT().UnlockFinancials(gomock.Any(), "deal-1", "supplement", adminActor).Return(entities.Deal{ID: "deal-1"}, nil)
		w := doJSON(r, "POST", "/v1/deals/deal-1/financials/unlock", `{"reason":"supplement"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w.Body.Bytes()); body["financials_locked"] != false {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestDealHandler_NextAction(t *testing.T) {
	t.Run("terminal deal", func(t *testing.T) {
		uc, r := newDealRouter(t, repActor)
		uc.EXPECT().NextAction(gomock.Any(), "deal-1", repActor).Return(nil, nil)
		w := doJSON(r, "GET", "/v1/deals/deal-1/next-action", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w.Body.Bytes())
		if v, ok := body["next_action"]; !ok || v != nil {
			t.Fatalf("expected null next_action, got %s", w.Body.String())
		}
	})

	t.Run("awaiting admin", func(t *testing.T) {
		uc, r := newDealRouter(t, repActor)
		uc.EXPECT().NextAction(gomock.Any(), "deal-1", repActor).
			Return(&workflow.NextAction{Label: "Mark Approved", TargetStatus: entities.DealStatusApproved, AwaitingAdmin: true}, nil)
		w := doJSON(r, "GET", "/v1/deals/deal-1/next-action", "")
		next, _ := decodeBody(t, w.Body.Bytes())["next_action"].(map[string]any)
		if next["target_status"] != "approved" || next["awaiting_admin"] != true {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestDealHandler_ListPins(t *testing.T) {
	uc, r := newDealRouter(t, repActor)
	uc.EXPECT().ListPinsForDeal(gomock.Any(), "deal-1").Return([]entities.Pin{{ID: "pin-1", DealID: "deal-1"}}, nil)
	w := doJSON(r, "GET", "/v1/deals/deal-1/pins", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body) != 1 || body[0]["converted"] != true {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
