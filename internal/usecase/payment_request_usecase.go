package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"roofing_crm/internal/domain/entities"
	"roofing_crm/internal/domain/workflow"
	"roofing_crm/internal/infrastructure/config"
	"roofing_crm/internal/infrastructure/logging"
	"roofing_crm/internal/infrastructure/metrics"
	"roofing_crm/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrDealNotInvoiced                = errors.New("deal has not reached invoice_sent")
	ErrInvalidPaymentAmount           = errors.New("deal has no amount to request")
	ErrPaymentFlagNotSaved            = errors.New("payment created but payment_requested was not saved")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// IPaymentRequestUseCase opens a homeowner payment for an invoiced deal.
type IPaymentRequestUseCase interface {
	RequestPayment(ctx context.Context, dealID string, mpPayload json.RawMessage, actor entities.Actor) (entities.InvoicePayment, error)
	ListByDealID(ctx context.Context, dealID string) ([]entities.InvoicePayment, error)
}

type PaymentRequestUseCase struct {
	repo    interfaces.IInvoicePaymentRepository
	deals   IDealWorkflowUseCase
	gateway interfaces.IPaymentGateway
	log     *zap.Logger
	now     func() time.Time
}

var _ IPaymentRequestUseCase = (*PaymentRequestUseCase)(nil)

func NewPaymentRequestUseCase(repo interfaces.IInvoicePaymentRepository, deals IDealWorkflowUseCase, gateway interfaces.IPaymentGateway, logger *zap.Logger) *PaymentRequestUseCase {
	return &PaymentRequestUseCase{
		repo:    repo,
		deals:   deals,
		gateway: gateway,
		log:     logging.OrNop(logger),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// RequestPayment charges the deal's resolved RCV through the provider,
// stores the InvoicePayment and flags the deal payment_requested.
//
// The amount always comes from the stored deal; a transaction_amount in the
// payload is replaced. When the flag write fails the stored payment is
// returned with ErrPaymentFlagNotSaved.
func (u *PaymentRequestUseCase) RequestPayment(ctx context.Context, dealID string, mpPayload json.RawMessage, actor entities.Actor) (entities.InvoicePayment, error) {
	dealID = strings.TrimSpace(dealID)
	log := u.log.With(zap.String("deal_id", dealID))
	log.Info("[payment][usecase] request start", zap.Int("payload_len", len(mpPayload)))

	mockMode := config.IsPaymentGatewayMockEnabled()
	if dealID == "" {
		return entities.InvoicePayment{}, ErrInvalidDealID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !mockMode {
			log.Info("[payment][usecase] invalid payload")
			return entities.InvoicePayment{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil {
		log.Warn("[payment][usecase] gateway not configured")
		return entities.InvoicePayment{}, ErrPaymentGatewayNotConfigured
	}

	deal, err := u.deals.GetDeal(ctx, dealID)
	if err != nil {
		return entities.InvoicePayment{}, err
	}
	if workflow.IndexOf(deal.Status) < workflow.IndexOf(entities.DealStatusInvoiceSent) {
		log.Info("[payment][usecase] deal not invoiced", zap.String("status", string(deal.Status)))
		return entities.InvoicePayment{}, ErrDealNotInvoiced
	}
	amount := workflow.ResolveRCV(deal)
	if !amount.IsPositive() {
		return entities.InvoicePayment{}, ErrInvalidPaymentAmount
	}

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		if !mockMode {
			return entities.InvoicePayment{}, ErrInvalidMPPayload
		}
		reqMap = map[string]any{}
	}
	if !mockMode && !hasNonEmptyString(reqMap, "payment_method_id") {
		log.Info("[payment][usecase] missing payment_method_id")
		return entities.InvoicePayment{}, ErrInvalidMPPayload
	}
	ensurePayerDefaults(reqMap, deal.Email)
	if !mockMode && !hasPayer(reqMap) {
		log.Info("[payment][usecase] missing payer")
		return entities.InvoicePayment{}, ErrInvalidMPPayload
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = deal.ID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Roofing invoice %s", strings.TrimSpace(deal.Address+" "+deal.HomeownerName))
	}
	// the provider SDK takes a float; the stored amount stays decimal
	reqMap["transaction_amount"] = amount.InexactFloat64()

	payload, err := json.Marshal(reqMap)
	if err != nil {
		return entities.InvoicePayment{}, err
	}

	providerID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		log.Warn("[payment][usecase] payment gateway failed", zap.Error(err))
		metrics.RecordPaymentRequest("error")
		return entities.InvoicePayment{}, classifyGatewayError(err)
	}
	if providerID == "" {
		providerID = strconv.FormatInt(u.now().UnixNano(), 10)
	}
	log.Info("[payment][usecase] payment gateway success", zap.String("provider_payment_id", providerID), zap.String("provider_status", providerStatus))

	var parsed map[string]interface{}
	if len(providerResp) > 0 {
		if err := json.Unmarshal(providerResp, &parsed); err != nil {
			log.Warn("[payment][usecase] provider response unmarshal failed", zap.Error(err))
		}
	}

	p := entities.InvoicePayment{
		ID:                 providerID,
		DealID:             deal.ID,
		Date:               u.now(),
		Amount:             amount,
		Status:             paymentStatusOf(providerStatus),
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Error("[payment][usecase] payment repository create failed", zap.String("payment_id", p.ID), zap.Error(err))
		return entities.InvoicePayment{}, err
	}
	metrics.RecordPaymentRequest(string(created.Status))

	if !deal.PaymentRequested {
		requested := true
		if _, err := u.deals.Apply(ctx, deal.ID, workflow.DealUpdate{PaymentRequested: &requested}, ApplyOptions{Actor: actor}); err != nil {
			log.Error("[payment][usecase] payment_requested flag failed", zap.String("payment_id", created.ID), zap.Error(err))
			return created, fmt.Errorf("%w: %v", ErrPaymentFlagNotSaved, err)
		}
	}
	log.Info("[payment][usecase] request success", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))
	return created, nil
}

func (u *PaymentRequestUseCase) ListByDealID(ctx context.Context, dealID string) ([]entities.InvoicePayment, error) {
	dealID = strings.TrimSpace(dealID)
	if dealID == "" {
		return nil, ErrInvalidDealID
	}
	return u.repo.ListByDealID(ctx, dealID)
}

func paymentStatusOf(providerStatus string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(providerStatus)) {
	case "approved", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusDenied
	default:
		return entities.PaymentStatusPending
	}
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

// ensurePayerDefaults fills payer.email from the homeowner, then from the
// sandbox test payer, when neither payer id nor email was sent.
func ensurePayerDefaults(m map[string]any, homeownerEmail string) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if email := strings.TrimSpace(homeownerEmail); email != "" {
		payer["email"] = email
	} else if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")); email != "" {
		payer["email"] = email
	}
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	default:
		return err
	}
}
