package addressval

import (
	"context"

	"github.com/shipbatch/backend/internal/domain/shipping"
)

// Confidence levels reported by providers
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Provider validates a single US address against one upstream service.
// A returned error means the provider itself failed (network, auth,
// malformed response) and the caller should try the next provider. A
// nil error with Valid=false means the provider answered and rejected
// the address.
type Provider interface {
	Name() string
	// Configured reports whether the provider has the credentials it
	// needs. Unconfigured providers are skipped without counting as a
	// failure.
	Configured() bool
	Validate(ctx context.Context, addr shipping.Address) (*shipping.AddressReview, error)
}
