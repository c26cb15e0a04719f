package addressval

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/infrastructure/config"
)

// USPSProvider validates addresses against the USPS Web Tools
// Address Verify API
type USPSProvider struct {
	config     config.USPSConfig
	httpClient *http.Client
}

// NewUSPSProvider creates a USPS adapter
func NewUSPSProvider(cfg config.USPSConfig) *USPSProvider {
	return &USPSProvider{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name returns the provider identifier
func (p *USPSProvider) Name() string { return "usps" }

// Configured reports whether a Web Tools user ID is present
func (p *USPSProvider) Configured() bool {
	return p.config.UserID != ""
}

type uspsRequest struct {
	XMLName xml.Name    `xml:"AddressValidateRequest"`
	UserID  string      `xml:"USERID,attr"`
	Address uspsAddress `xml:"Address"`
}

type uspsAddress struct {
	ID       string `xml:"ID,attr"`
	Address1 string `xml:"Address1"`
	Address2 string `xml:"Address2"`
	City     string `xml:"City"`
	State    string `xml:"State"`
	Zip5     string `xml:"Zip5"`
	Zip4     string `xml:"Zip4"`
}

type uspsResponse struct {
	XMLName xml.Name `xml:"AddressValidateResponse"`
	Address struct {
		Address1 string `xml:"Address1"`
		Address2 string `xml:"Address2"`
		City     string `xml:"City"`
		State    string `xml:"State"`
		Zip5     string `xml:"Zip5"`
		Zip4     string `xml:"Zip4"`
		Error    *struct {
			Description string `xml:"Description"`
		} `xml:"Error"`
	} `xml:"Address"`
}

// Validate calls the Verify API. USPS swaps Address1/Address2: the
// secondary unit goes in Address1 and the street line in Address2.
func (p *USPSProvider) Validate(ctx context.Context, addr shipping.Address) (*shipping.AddressReview, error) {
	payload := uspsRequest{
		UserID: p.config.UserID,
		Address: uspsAddress{
			ID:       "0",
			Address1: addr.AddressLine2,
			Address2: addr.AddressLine1,
			City:     addr.City,
			State:    addr.State,
			Zip5:     zip5(addr.ZipCode),
		},
	}
	xmlBytes, err := xml.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("usps: failed to marshal request: %w", err)
	}

	q := url.Values{}
	q.Set("API", "Verify")
	q.Set("XML", string(xmlBytes))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("usps: failed to build request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usps: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usps: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("usps: failed to read response: %w", err)
	}

	var parsed uspsResponse
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("usps: failed to parse response: %w", err)
	}

	review := &shipping.AddressReview{Provider: p.Name()}

	if parsed.Address.Error != nil {
		review.Error = parsed.Address.Error.Description
		review.Confidence = ConfidenceHigh
		return review, nil
	}

	zip := parsed.Address.Zip5
	if parsed.Address.Zip4 != "" {
		zip = zip + "-" + parsed.Address.Zip4
	}

	review.Valid = true
	review.Confidence = ConfidenceHigh
	review.Normalized = &shipping.Address{
		FirstName:    addr.FirstName,
		LastName:     addr.LastName,
		AddressLine1: parsed.Address.Address2,
		AddressLine2: parsed.Address.Address1,
		City:         parsed.Address.City,
		State:        parsed.Address.State,
		ZipCode:      zip,
	}

	return review, nil
}

func zip5(zip string) string {
	if len(zip) > 5 {
		return zip[:5]
	}
	return zip
}
