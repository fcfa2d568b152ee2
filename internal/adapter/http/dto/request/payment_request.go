package request

import "encoding/json"

// PaymentCreateRequest is the payload of the homeowner payment route.
//
// `mp_payload` is forwarded as-is (raw JSON) to support varying Mercado Pago schemas;
// the amount and external reference are always taken from the deal.

type PaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload" swaggertype:"object"`
}
