package response

import "roofing_crm/internal/domain/entities"

type PinResponse struct {
	entities.Pin
	Converted bool `json:"converted"`
}

func FromPin(p entities.Pin) PinResponse {
	return PinResponse{Pin: p, Converted: p.DealID != ""}
}

func FromPins(ps []entities.Pin) []PinResponse {
	out := make([]PinResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPin(p))
	}
	return out
}

// ConvertPinResponse carries the new deal; Warning is set when the pin could
// not be linked back to it.
type ConvertPinResponse struct {
	Deal    DealResponse     `json:"deal"`
	Warning *WarningResponse `json:"warning,omitempty"`
}
