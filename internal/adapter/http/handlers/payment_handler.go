package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	response "roofing_crm/internal/adapter/http/dto/response"
	"roofing_crm/internal/infrastructure/config"
	"roofing_crm/internal/infrastructure/logging"
	"roofing_crm/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler handles homeowner payment requests for invoiced deals.
type PaymentHandler struct {
	usecase usecase.IPaymentRequestUseCase
	log     *zap.Logger
}

func NewPaymentHandler(uc usecase.IPaymentRequestUseCase, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{usecase: uc, log: logging.OrNop(logger)}
}

// RequestPayment sends a payment request through Mercado Pago. The amount is
// taken from the deal, never from the body.
func (h *PaymentHandler) RequestPayment(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	dealID := c.Param("id")
	log := h.log.With(zap.String("deal_id", dealID))
	log.Info("[payment][handler] request start")

	mpPayload, err := readMPPayload(c)
	if err != nil {
		if config.IsPaymentGatewayMockEnabled() {
			log.Warn("[payment][handler] payload invalid in mock mode; fallback to empty payload", zap.Error(err))
			mpPayload = json.RawMessage("{}")
		} else {
			log.Info("[payment][handler] invalid payload", zap.Error(err))
			writeError(c, newInvalidRequest())
			return
		}
	}

	created, err := h.usecase.RequestPayment(c.Request.Context(), dealID, mpPayload, actor)
	if errors.Is(err, usecase.ErrPaymentFlagNotSaved) && created.ID != "" {
		log.Warn("[payment][handler] payment created without flag", zap.String("payment_id", created.ID), zap.Error(err))
		res := response.FromInvoicePayment(created)
		res.Warning = &response.WarningResponse{
			Code:    "PAYMENT_FLAG_NOT_SAVED",
			Message: "Payment created but the deal was not flagged",
		}
		c.JSON(http.StatusOK, res)
		return
	}
	if err != nil {
		log.Error("[payment][handler] request failed", zap.Error(err))
		appErr := mapPaymentError(err)
		writeError(c, appErr)
		return
	}
	log.Info("[payment][handler] request success", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))

	c.JSON(http.StatusOK, response.FromInvoicePayment(created))
}

// ListPayments returns the payment history of a deal, oldest first.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	dealID := c.Param("id")

	payments, err := h.usecase.ListByDealID(c.Request.Context(), dealID)
	if err != nil {
		h.log.Error("[payment][handler] list failed", zap.String("deal_id", dealID), zap.Error(err))
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoicePayments(payments))
}
