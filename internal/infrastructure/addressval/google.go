package addressval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/infrastructure/config"
)

// GoogleProvider validates addresses against the Google Address
// Validation API
type GoogleProvider struct {
	config     config.GoogleConfig
	httpClient *http.Client
}

// NewGoogleProvider creates a Google adapter
func NewGoogleProvider(cfg config.GoogleConfig) *GoogleProvider {
	return &GoogleProvider{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name returns the provider identifier
func (p *GoogleProvider) Name() string { return "google" }

// Configured reports whether an API key is present
func (p *GoogleProvider) Configured() bool {
	return p.config.APIKey != ""
}

type googleRequest struct {
	Address googlePostalAddress `json:"address"`
}

type googlePostalAddress struct {
	RegionCode         string   `json:"regionCode"`
	AddressLines       []string `json:"addressLines"`
	Locality           string   `json:"locality,omitempty"`
	AdministrativeArea string   `json:"administrativeArea,omitempty"`
	PostalCode         string   `json:"postalCode,omitempty"`
}

type googleResponse struct {
	Result struct {
		Verdict struct {
			AddressComplete           bool   `json:"addressComplete"`
			ValidationGranularity     string `json:"validationGranularity"`
			HasUnconfirmedComponents  bool   `json:"hasUnconfirmedComponents"`
			HasInferredComponents     bool   `json:"hasInferredComponents"`
			HasReplacedComponents     bool   `json:"hasReplacedComponents"`
		} `json:"verdict"`
		Address struct {
			PostalAddress googlePostalAddress `json:"postalAddress"`
		} `json:"address"`
	} `json:"result"`
}

// Validate posts the address and maps the verdict
func (p *GoogleProvider) Validate(ctx context.Context, addr shipping.Address) (*shipping.AddressReview, error) {
	lines := []string{addr.AddressLine1}
	if addr.AddressLine2 != "" {
		lines = append(lines, addr.AddressLine2)
	}

	reqBody := googleRequest{
		Address: googlePostalAddress{
			RegionCode:         "US",
			AddressLines:       lines,
			Locality:           addr.City,
			AdministrativeArea: addr.State,
			PostalCode:         addr.ZipCode,
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("google: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"?key="+p.config.APIKey, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("google: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("google: failed to read response: %w", err)
	}

	var parsed googleResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("google: failed to parse response: %w", err)
	}

	verdict := parsed.Result.Verdict
	review := &shipping.AddressReview{Provider: p.Name()}

	if !verdict.AddressComplete || verdict.HasUnconfirmedComponents {
		review.Error = "address could not be confirmed"
		review.Confidence = ConfidenceHigh
		return review, nil
	}

	review.Valid = true
	switch verdict.ValidationGranularity {
	case "PREMISE", "SUB_PREMISE":
		review.Confidence = ConfidenceHigh
	case "ROUTE", "BLOCK":
		review.Confidence = ConfidenceMedium
	default:
		review.Confidence = ConfidenceLow
	}
	if verdict.HasInferredComponents || verdict.HasReplacedComponents {
		review.Confidence = ConfidenceMedium
	}

	normalized := parsed.Result.Address.PostalAddress
	if len(normalized.AddressLines) > 0 {
		norm := &shipping.Address{
			FirstName:    addr.FirstName,
			LastName:     addr.LastName,
			AddressLine1: normalized.AddressLines[0],
			City:         normalized.Locality,
			State:        normalized.AdministrativeArea,
			ZipCode:      normalized.PostalCode,
		}
		if len(normalized.AddressLines) > 1 {
			norm.AddressLine2 = normalized.AddressLines[1]
		}
		review.Normalized = norm
	}

	return review, nil
}
