package handlers

import (
	"errors"
	"net/http"

	request "roofing_crm/internal/adapter/http/dto/request"
	response "roofing_crm/internal/adapter/http/dto/response"
	"roofing_crm/internal/infrastructure/logging"
	"roofing_crm/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PinHandler struct {
	usecase usecase.IPinUseCase
	log     *zap.Logger
}

func NewPinHandler(uc usecase.IPinUseCase, logger *zap.Logger) *PinHandler {
	return &PinHandler{usecase: uc, log: logging.OrNop(logger)}
}

func (h *PinHandler) GetPin(c *gin.Context) {
	pin, err := h.usecase.GetPin(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get", c.Param("id"), err)
		return
	}
	c.JSON(http.StatusOK, response.FromPin(pin))
}

// ConvertToDeal creates a deal from the pin. When only the link back to the
// pin fails the deal is still returned, with a warning.
func (h *PinHandler) ConvertToDeal(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	pinID := c.Param("id")

	var payload request.ConvertPinRequest
	if !bindOptionalJSON(c, &payload) {
		writeError(c, newInvalidRequest())
		return
	}

	deal, err := h.usecase.ConvertToDeal(c.Request.Context(), pinID, payload.ToInput(), actor)
	if errors.Is(err, usecase.ErrPinLinkFailed) && deal.ID != "" {
		h.log.Warn("[pin][handler] convert partial", zap.String("pin_id", pinID), zap.String("deal_id", deal.ID), zap.Error(err))
		c.JSON(http.StatusCreated, response.ConvertPinResponse{
			Deal: response.FromDeal(deal),
			Warning: &response.WarningResponse{
				Code:         "PIN_LINK_FAILED",
				Message:      "Deal created but the pin could not be linked",
				FailedPinIDs: []string{pinID},
			},
		})
		return
	}
	if err != nil {
		h.fail(c, "convert", pinID, err)
		return
	}
	c.JSON(http.StatusCreated, response.ConvertPinResponse{Deal: response.FromDeal(deal)})
}

func (h *PinHandler) fail(c *gin.Context, op, pinID string, err error) {
	appErr := mapWorkflowError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.Error("[pin][handler] "+op+" failed", zap.String("pin_id", pinID), zap.Error(err))
	}
	writeError(c, appErr)
}
