package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	request "roofing_crm/internal/adapter/http/dto/request"
	response "roofing_crm/internal/adapter/http/dto/response"
	"roofing_crm/internal/domain/entities"
	"roofing_crm/internal/domain/workflow"
	"roofing_crm/internal/infrastructure/logging"
	"roofing_crm/internal/usecase"
	"roofing_crm/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidDealPayload = pkg.NewDomainErrorSimple("INVALID_DEAL_INPUT", "Invalid deal payload", http.StatusBadRequest)
)

// DealHandler exposes the deal workflow. Every mutation goes through
// usecase.IDealWorkflowUseCase.
type DealHandler struct {
	usecase usecase.IDealWorkflowUseCase
	log     *zap.Logger
	now     func() time.Time
}

func NewDealHandler(uc usecase.IDealWorkflowUseCase, logger *zap.Logger) *DealHandler {
	return &DealHandler{usecase: uc, log: logging.OrNop(logger), now: func() time.Time { return time.Now().UTC() }}
}

// ListStatuses returns the status catalog in pipeline order.
func (h *DealHandler) ListStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromCatalog(workflow.Statuses()))
}

func (h *DealHandler) CreateDeal(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var payload request.CreateDealRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidDealPayload)
		return
	}

	deal, err := h.usecase.CreateDeal(c.Request.Context(), payload.ToInput(), actor)
	if err != nil {
		h.fail(c, "create", "", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromDeal(deal))
}

func (h *DealHandler) GetDeal(c *gin.Context) {
	deal, err := h.usecase.GetDeal(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get", c.Param("id"), err)
		return
	}
	c.JSON(http.StatusOK, response.FromDeal(deal))
}

// UpdateDeal applies a partial update, including status moves.
func (h *DealHandler) UpdateDeal(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	dealID := c.Param("id")

	var payload request.UpdateDealRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidDealPayload)
		return
	}
	update, err := payload.ToUpdate()
	if err != nil {
		h.fail(c, "update", dealID, err)
		return
	}

	res, err := h.usecase.Apply(c.Request.Context(), dealID, update, usecase.ApplyOptions{
		Actor:           actor,
		ConfirmBackward: payload.ConfirmBackward,
	})
	if err != nil {
		h.fail(c, "update", dealID, err)
		return
	}
	c.JSON(http.StatusOK, response.FromApplyResult(res))
}

func (h *DealHandler) SignContract(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	dealID := c.Param("id")

	var payload request.SignatureRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidDealPayload)
		return
	}

	deal, err := h.usecase.SignContract(c.Request.Context(), dealID, payload.ResolveSignedAt(h.now()), payload.URL, actor)
	if err != nil {
		h.fail(c, "sign", dealID, err)
		return
	}
	c.JSON(http.StatusOK, response.FromDeal(deal))
}

func (h *DealHandler) AddAsset(c *gin.Context) {
	h.mutateAssets(c, "asset-add", h.usecase.AddAsset)
}

func (h *DealHandler) RemoveAsset(c *gin.Context) {
	h.mutateAssets(c, "asset-remove", h.usecase.RemoveAsset)
}

func (h *DealHandler) mutateAssets(
	c *gin.Context,
	op string,
	mutate func(ctx context.Context, id string, kind entities.AssetKind, refs []string, actor entities.Actor) (entities.Deal, error),
) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	dealID := c.Param("id")

	var payload request.AssetRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidDealPayload)
		return
	}

	deal, err := mutate(c.Request.Context(), dealID, entities.AssetKind(c.Param("kind")), payload.Refs, actor)
	if err != nil {
		h.fail(c, op, dealID, err)
		return
	}
	c.JSON(http.StatusOK, response.FromDeal(deal))
}

func (h *DealHandler) GetCommission(c *gin.Context) {
	res, err := h.usecase.GetCommission(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "commission", c.Param("id"), err)
		return
	}
	c.JSON(http.StatusOK, response.FromCommission(res))
}

func (h *DealHandler) SetCommissionOverride(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	dealID := c.Param("id")

	var payload request.CommissionOverrideRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidDealPayload)
		return
	}
	amount, err := payload.ResolveAmount()
	if err != nil {
		h.fail(c, "override-set", dealID, err)
		return
	}

	res, err := h.usecase.SetCommissionOverride(c.Request.Context(), dealID, amount, payload.Reason, actor)
	if err != nil {
		h.fail(c, "override-set", dealID, err)
		return
	}
	c.JSON(http.StatusOK, response.FromCommission(res))
}

func (h *DealHandler) ClearCommissionOverride(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	res, err := h.usecase.ClearCommissionOverride(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		h.fail(c, "override-clear", c.Param("id"), err)
		return
	}
	c.JSON(http.StatusOK, response.FromCommission(res))
}

// MarkCommissionPaid accepts an empty body, which runs both payout steps.
func (h *DealHandler) MarkCommissionPaid(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	dealID := c.Param("id")

	var payload request.MarkPaidRequest
	if !bindOptionalJSON(c, &payload) {
		writeError(c, errInvalidDealPayload)
		return
	}

	res, err := h.usecase.MarkCommissionPaid(c.Request.Context(), dealID, payload.ToOptions(), actor)
	if err != nil {
		h.fail(c, "mark-paid", dealID, err)
		return
	}
	c.JSON(http.StatusOK, response.FromApplyResult(res))
}

func (h *DealHandler) UnlockFinancials(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	dealID := c.Param("id")

	var payload request.UnlockRequest
	if !bindOptionalJSON(c, &payload) {
		writeError(c, errInvalidDealPayload)
		return
	}

	deal, err := h.usecase.UnlockFinancials(c.Request.Context(), dealID, payload.Reason, actor)
	if err != nil {
		h.fail(c, "unlock", dealID, err)
		return
	}
	c.JSON(http.StatusOK, response.FromDeal(deal))
}

func (h *DealHandler) NextAction(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	dealID := c.Param("id")

	next, err := h.usecase.NextAction(c.Request.Context(), dealID, actor)
	if err != nil {
		h.fail(c, "next-action", dealID, err)
		return
	}
	c.JSON(http.StatusOK, response.NextActionResponse{DealID: dealID, NextAction: next})
}

func (h *DealHandler) ListPins(c *gin.Context) {
	pins, err := h.usecase.ListPinsForDeal(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "pins", c.Param("id"), err)
		return
	}
	c.JSON(http.StatusOK, response.FromPins(pins))
}

func (h *DealHandler) fail(c *gin.Context, op, dealID string, err error) {
	appErr := mapWorkflowError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.Error("[deal][handler] "+op+" failed", zap.String("deal_id", dealID), zap.Error(err))
	} else {
		h.log.Info("[deal][handler] "+op+" rejected", zap.String("deal_id", dealID), zap.String("code", appErr.Code))
	}
	writeError(c, appErr)
}

// bindOptionalJSON binds the body when present. A missing body keeps the
// zero value.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	return true
}
