package addressval

import (
	"context"
	"strings"

	"github.com/shipbatch/backend/internal/domain/shipping"
)

const heuristicDisclaimer = "Address checked with basic formatting rules only; deliverability was not verified."

// HeuristicProvider is the terminal fallback when no upstream service
// answers. It applies formatting rules only, so a pass is always
// reported with low confidence and a disclaimer.
type HeuristicProvider struct{}

// NewHeuristicProvider creates the fallback provider
func NewHeuristicProvider() *HeuristicProvider {
	return &HeuristicProvider{}
}

// Name returns the provider identifier
func (p *HeuristicProvider) Name() string { return "basic" }

// Configured always returns true; the fallback needs no credentials
func (p *HeuristicProvider) Configured() bool { return true }

// Validate applies formatting checks and never fails
func (p *HeuristicProvider) Validate(_ context.Context, addr shipping.Address) (*shipping.AddressReview, error) {
	var problems []string

	if strings.TrimSpace(addr.AddressLine1) == "" {
		problems = append(problems, "address line 1 is required")
	}
	if strings.TrimSpace(addr.City) == "" {
		problems = append(problems, "city is required")
	}
	state := strings.TrimSpace(addr.State)
	if len(state) != 2 || !isLetters(state) {
		problems = append(problems, "state must be a two-letter code")
	}
	// Hyphens are cosmetic: 62704-1234 and 627041234 are the same ZIP+4
	zip := strings.ReplaceAll(strings.TrimSpace(addr.ZipCode), "-", "")
	if (len(zip) != 5 && len(zip) != 9) || !isDigits(zip) {
		problems = append(problems, "ZIP code must be 5 digits or ZIP+4")
	}

	review := &shipping.AddressReview{
		Provider:   p.Name(),
		Confidence: ConfidenceLow,
		Disclaimer: heuristicDisclaimer,
	}
	if len(problems) > 0 {
		review.Error = strings.Join(problems, "; ")
		return review, nil
	}

	review.Valid = true
	return review, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isLetters(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
