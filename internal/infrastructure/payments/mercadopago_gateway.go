package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"roofing_crm/internal/infrastructure/logging"
	"roofing_crm/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway opens homeowner payments for invoiced deals. In mock
// mode it never calls the provider and approves every request.
type MercadoPagoGateway struct {
	client   payment.Client
	mockMode bool
	log      *zap.Logger
	now      func() time.Time
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, mockMode bool, logger *zap.Logger) (*MercadoPagoGateway, error) {
	log := logging.OrNop(logger)
	now := func() time.Time { return time.Now().UTC() }
	if mockMode {
		log.Info("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, log: log, now: now}, nil
	}

	if accessToken == "" {
		log.Error("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Error("[payment][gateway] failed creating sdk config", zap.Error(err))
		return nil, err
	}
	log.Info("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg), log: log, now: now}, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error) {
	if g != nil && g.mockMode {
		return g.createMock(requestPayload)
	}

	if g == nil || g.client == nil {
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	g.log.Info("[payment][gateway] create start", zap.Int("payload_len", len(requestPayload)))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		g.log.Warn("[payment][gateway] payload unmarshal failed", zap.Error(err))
		return "", "", nil, err
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		g.log.Warn("[payment][gateway] sdk create failed", zap.Error(err))
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		g.log.Error("[payment][gateway] response marshal failed", zap.Error(err))
		return "", "", nil, err
	}
	id := fmt.Sprintf("%d", resp.ID)
	g.log.Info("[payment][gateway] create success", zap.String("provider_payment_id", id), zap.String("provider_status", resp.Status))

	return id, resp.Status, b, nil
}

// mockPaymentRequest picks the fields of the outgoing request that the mock
// reflects back.
type mockPaymentRequest struct {
	ExternalReference string          `json:"external_reference"`
	Description       string          `json:"description"`
	TransactionAmount float64         `json:"transaction_amount"`
	PaymentMethodID   string          `json:"payment_method_id"`
	Payer             json.RawMessage `json:"payer,omitempty"`
}

// mockPaymentResponse mirrors the subset of payment.Response the billing
// flow reads back.
type mockPaymentResponse struct {
	ID                int64           `json:"id"`
	Status            string          `json:"status"`
	StatusDetail      string          `json:"status_detail"`
	ExternalReference string          `json:"external_reference"`
	Description       string          `json:"description,omitempty"`
	TransactionAmount float64         `json:"transaction_amount"`
	PaymentMethodID   string          `json:"payment_method_id,omitempty"`
	Payer             json.RawMessage `json:"payer,omitempty"`
	LiveMode          bool            `json:"live_mode"`
	DateCreated       string          `json:"date_created"`
	DateApproved      string          `json:"date_approved"`
}

// createMock approves the request without calling the provider. The
// response carries the deal reference and amount of the request.
func (g *MercadoPagoGateway) createMock(requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	g.log.Info("[payment][gateway] mock create start", zap.Int("payload_len", len(requestPayload)))

	var req mockPaymentRequest
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		if err := json.Unmarshal(requestPayload, &req); err != nil {
			g.log.Warn("[payment][gateway] mock payload unmarshal failed", zap.Error(err))
			req = mockPaymentRequest{}
		}
	}

	now := g.now()
	stamp := now.Format(time.RFC3339Nano)
	resp := mockPaymentResponse{
		ID:                now.UnixNano(),
		Status:            "approved",
		StatusDetail:      "accredited",
		ExternalReference: req.ExternalReference,
		Description:       req.Description,
		TransactionAmount: req.TransactionAmount,
		PaymentMethodID:   req.PaymentMethodID,
		Payer:             req.Payer,
		DateCreated:       stamp,
		DateApproved:      stamp,
	}

	b, err := json.Marshal(resp)
	if err != nil {
		g.log.Error("[payment][gateway] mock response marshal failed", zap.Error(err))
		return "", "", nil, err
	}

	id := strconv.FormatInt(resp.ID, 10)
	g.log.Info("[payment][gateway] mock create success",
		zap.String("provider_payment_id", id),
		zap.String("external_reference", resp.ExternalReference),
		zap.String("provider_status", resp.Status))
	return id, resp.Status, b, nil
}
