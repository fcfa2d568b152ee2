package workflow

import (
	"time"

	"roofing_crm/internal/domain/entities"
)

// Sign records the contract signature on a copy of d. Date and URL are set
// together; a signature without a URL is rejected.
func Sign(d entities.Deal, signedAt time.Time, url string, now time.Time) (entities.Deal, error) {
	url = trimmed(url)
	if url == "" || signedAt.IsZero() {
		return d, ErrInvalidSignature
	}
	out := d.Clone()
	out.Signature = &entities.Signature{SignedAt: signedAt, URL: url}
	out.UpdatedAt = now
	return out, nil
}
