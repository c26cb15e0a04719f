package addressval

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipbatch/backend/internal/infrastructure/config"
)

func newGoogleTestProvider(t *testing.T, handler http.HandlerFunc) *GoogleProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewGoogleProvider(config.GoogleConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
}

func TestGoogleConfigured(t *testing.T) {
	assert.False(t, NewGoogleProvider(config.GoogleConfig{}).Configured())
	assert.True(t, NewGoogleProvider(config.GoogleConfig{APIKey: "k"}).Configured())
}

func TestGoogleValidMatch(t *testing.T) {
	provider := newGoogleTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req googleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "US", req.Address.RegionCode)
		require.NotEmpty(t, req.Address.AddressLines)
		assert.Equal(t, "1 Main St", req.Address.AddressLines[0])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":{
			"verdict":{"addressComplete":true,"validationGranularity":"PREMISE"},
			"address":{"postalAddress":{
				"addressLines":["1 Main St"],
				"locality":"Springfield",
				"administrativeArea":"IL",
				"postalCode":"62704"
			}}
		}}`))
	})

	review, err := provider.Validate(context.Background(), testAddr())
	require.NoError(t, err)

	assert.True(t, review.Valid)
	assert.Equal(t, "google", review.Provider)
	assert.Equal(t, ConfidenceHigh, review.Confidence)
	require.NotNil(t, review.Normalized)
	assert.Equal(t, "Springfield", review.Normalized.City)
}

func TestGoogleUnconfirmedComponentsIsRejection(t *testing.T) {
	provider := newGoogleTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":{
			"verdict":{"addressComplete":true,"hasUnconfirmedComponents":true}
		}}`))
	})

	review, err := provider.Validate(context.Background(), testAddr())
	require.NoError(t, err)

	assert.False(t, review.Valid)
	assert.Equal(t, "address could not be confirmed", review.Error)
}

func TestGoogleGranularityConfidence(t *testing.T) {
	respond := func(granularity string, inferred bool) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			body := map[string]any{"result": map[string]any{
				"verdict": map[string]any{
					"addressComplete":       true,
					"validationGranularity": granularity,
					"hasInferredComponents": inferred,
				},
			}}
			_ = json.NewEncoder(w).Encode(body)
		}
	}

	t.Run("route is medium", func(t *testing.T) {
		provider := newGoogleTestProvider(t, respond("ROUTE", false))
		review, err := provider.Validate(context.Background(), testAddr())
		require.NoError(t, err)
		assert.Equal(t, ConfidenceMedium, review.Confidence)
	})

	t.Run("unknown granularity is low", func(t *testing.T) {
		provider := newGoogleTestProvider(t, respond("OTHER", false))
		review, err := provider.Validate(context.Background(), testAddr())
		require.NoError(t, err)
		assert.Equal(t, ConfidenceLow, review.Confidence)
	})

	t.Run("inferred components downgrade to medium", func(t *testing.T) {
		provider := newGoogleTestProvider(t, respond("PREMISE", true))
		review, err := provider.Validate(context.Background(), testAddr())
		require.NoError(t, err)
		assert.Equal(t, ConfidenceMedium, review.Confidence)
	})
}

func TestGoogleServerErrorIsProviderFailure(t *testing.T) {
	provider := newGoogleTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := provider.Validate(context.Background(), testAddr())
	assert.Error(t, err)
}
