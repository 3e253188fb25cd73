package clients_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"farehub/internal/clients"
	"farehub/internal/models"
	"farehub/internal/money"
)

func TestCharge_PostsDecimalAmounts(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := clients.NewPaymentsClient(server.URL, zap.NewNop())

	customer := models.Customer{ID: 42, Name: "Ada", CardID: uuid.New()}
	journey := models.Journey{
		CardID:    customer.CardID,
		StartTime: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 8, 20, 0, 0, time.UTC),
	}

	err := client.Charge(context.Background(), customer, []models.Journey{journey}, money.MustParse("8.30"))
	require.NoError(t, err)

	assert.Equal(t, "/v1/charges", gotPath)
	assert.Equal(t, float64(42), gotBody["customer_id"])
	assert.Equal(t, "8.30", gotBody["amount"])
	assert.Len(t, gotBody["journeys"], 1)
}

func TestCharge_NilJourneysSentAsEmptyList(t *testing.T) {
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := clients.NewPaymentsClient(server.URL, zap.NewNop())
	err := client.Charge(context.Background(), models.Customer{ID: 1, CardID: uuid.New()}, nil, money.FromPence(0))
	require.NoError(t, err)

	journeys, ok := gotBody["journeys"].([]interface{})
	require.True(t, ok, "journeys must encode as a list, not null")
	assert.Empty(t, journeys)
	assert.Equal(t, "0.00", gotBody["amount"])
}

func TestCharge_DisabledWithoutBaseURL(t *testing.T) {
	client := clients.NewPaymentsClient("", zap.NewNop())
	err := client.Charge(context.Background(), models.Customer{ID: 1, CardID: uuid.New()}, nil, money.FromPence(160))
	require.NoError(t, err)
}

func TestCharge_TransportFailure(t *testing.T) {
	client := clients.NewPaymentsClient("http://127.0.0.1:1", zap.NewNop())
	err := client.Charge(context.Background(), models.Customer{ID: 1, CardID: uuid.New()}, nil, money.FromPence(160))
	require.Error(t, err)
}
