package docproc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
)

func TestProcess_MapsExtractedTransactions(t *testing.T) {
	var gotPayload processRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, processPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		resp := processResponse{
			Success: true,
			Transactions: []wireTransaction{
				{
					Date:            "2024-03-05",
					Description:     "CHIPOTLE 1234",
					Merchant:        "Chipotle",
					Category:        "Food and Drink",
					TransactionType: "debit",
					Amount:          12.50,
				},
				{
					Date:            "2024-03-15",
					Description:     "PAYROLL DEPOSIT",
					TransactionType: "credit",
					Amount:          1000,
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	result, err := client.Process(context.Background(), "march.pdf", []byte("%PDF-1.4 fake"))
	require.NoError(t, err)

	assert.Equal(t, "march.pdf", gotPayload.FileName)
	decoded, err := base64.StdEncoding.DecodeString(gotPayload.PDFData)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(decoded))

	require.Len(t, result.Transactions, 2)

	debit := result.Transactions[0]
	assert.InDelta(t, -12.50, debit.Amount, 0.001, "debit amounts are stored negative")
	assert.Equal(t, model.TypeDebit, debit.Type)
	assert.Equal(t, "Chipotle", debit.Merchant)
	assert.NotEmpty(t, debit.ID)

	credit := result.Transactions[1]
	assert.InDelta(t, 1000, credit.Amount, 0.001)
	assert.Equal(t, model.TypeCredit, credit.Type)
	assert.Equal(t, "Other", credit.Category, "missing category falls back")
}

func TestProcess_UpstreamStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "extraction crashed", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Process(context.Background(), "march.pdf", []byte("data"))
	assert.ErrorIs(t, err, common.ErrUpstream)
}

func TestProcess_EmptyExtractionIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := processResponse{Success: true}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Process(context.Background(), "scanned.pdf", []byte("data"))
	assert.ErrorIs(t, err, common.ErrUpstream, "no fallback data is fabricated")
}

func TestProcess_ValidatesInput(t *testing.T) {
	client, err := NewClient("http://localhost:1")
	require.NoError(t, err)

	_, err = client.Process(context.Background(), "", []byte("data"))
	assert.Error(t, err)

	_, err = client.Process(context.Background(), "march.pdf", nil)
	assert.Error(t, err)
}

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient("")
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}
