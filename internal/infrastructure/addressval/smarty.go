package addressval

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/infrastructure/config"
)

// SmartyProvider validates addresses against the Smarty US Street API
type SmartyProvider struct {
	config     config.SmartyConfig
	httpClient *http.Client
}

// NewSmartyProvider creates a Smarty adapter
func NewSmartyProvider(cfg config.SmartyConfig) *SmartyProvider {
	return &SmartyProvider{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name returns the provider identifier
func (p *SmartyProvider) Name() string { return "smarty" }

// Configured reports whether API credentials are present
func (p *SmartyProvider) Configured() bool {
	return p.config.AuthID != "" && p.config.AuthToken != ""
}

type smartyCandidate struct {
	DeliveryLine1 string `json:"delivery_line_1"`
	Components    struct {
		CityName          string `json:"city_name"`
		StateAbbreviation string `json:"state_abbreviation"`
		ZipCode           string `json:"zipcode"`
		Plus4Code         string `json:"plus4_code"`
	} `json:"components"`
	Analysis struct {
		DPVMatchCode string `json:"dpv_match_code"`
	} `json:"analysis"`
}

// Validate queries the US Street API and maps the first candidate
func (p *SmartyProvider) Validate(ctx context.Context, addr shipping.Address) (*shipping.AddressReview, error) {
	q := url.Values{}
	q.Set("auth-id", p.config.AuthID)
	q.Set("auth-token", p.config.AuthToken)
	q.Set("street", addr.AddressLine1)
	if addr.AddressLine2 != "" {
		q.Set("secondary", addr.AddressLine2)
	}
	q.Set("city", addr.City)
	q.Set("state", addr.State)
	q.Set("zipcode", addr.ZipCode)
	q.Set("candidates", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("smarty: failed to build request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("smarty: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("smarty: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("smarty: failed to read response: %w", err)
	}

	var candidates []smartyCandidate
	if err := json.Unmarshal(body, &candidates); err != nil {
		return nil, fmt.Errorf("smarty: failed to parse response: %w", err)
	}

	review := &shipping.AddressReview{Provider: p.Name()}

	if len(candidates) == 0 {
		review.Error = "address not found"
		review.Confidence = ConfidenceHigh
		return review, nil
	}

	c := candidates[0]
	zip := c.Components.ZipCode
	if c.Components.Plus4Code != "" {
		zip = zip + "-" + c.Components.Plus4Code
	}

	review.Valid = true
	review.Confidence = smartyConfidence(c.Analysis.DPVMatchCode)
	review.Normalized = &shipping.Address{
		FirstName:    addr.FirstName,
		LastName:     addr.LastName,
		AddressLine1: c.DeliveryLine1,
		City:         c.Components.CityName,
		State:        c.Components.StateAbbreviation,
		ZipCode:      zip,
	}

	return review, nil
}

// smartyConfidence maps the DPV match code to a confidence level.
// Y is a full match; S and D matched after dropping or adding
// secondary information.
func smartyConfidence(dpv string) string {
	switch dpv {
	case "Y":
		return ConfidenceHigh
	case "S", "D":
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
