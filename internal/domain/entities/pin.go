package entities

import "time"

// PinStatus is the lead-marker status shown on the map. It is a separate,
// smaller vocabulary than DealStatus and only meets it at "installed".
type PinStatus string

const (
	PinStatusLead          PinStatus = "lead"
	PinStatusFollowup      PinStatus = "followup"
	PinStatusAppointment   PinStatus = "appointment"
	PinStatusInstalled     PinStatus = "installed"
	PinStatusRenter        PinStatus = "renter"
	PinStatusNotInterested PinStatus = "not_interested"
)

func (s PinStatus) Valid() bool {
	switch s {
	case PinStatusLead, PinStatusFollowup, PinStatusAppointment, PinStatusInstalled, PinStatusRenter, PinStatusNotInterested:
		return true
	}
	return false
}

// Pin is a map lead marker. Once converted it keeps its own identity and
// references the deal through DealID.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (deal_id-index): deal_id
type Pin struct {
	ID            string    `json:"id"`
	DealID        string    `json:"deal_id,omitempty"`
	Status        PinStatus `json:"status"`
	HomeownerName string    `json:"homeowner_name"`
	Address       string    `json:"address"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	RepID         string    `json:"rep_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
