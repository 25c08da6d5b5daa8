// Package docproc calls the external statement-extraction service that turns
// an uploaded statement file into transactions.
package docproc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
	"github.com/cashly/cashly/internal/service"
)

const processPath = "/process-pdf"

// Client implements the DocumentProcessor interface against an HTTP
// extraction service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Wire format of the extraction service.
type processRequest struct {
	PDFData  string `json:"pdfData"` // base64-encoded file contents
	FileName string `json:"fileName"`
}

type wireTransaction struct {
	Date            string  `json:"date"`
	Description     string  `json:"description"`
	Merchant        string  `json:"merchant"`
	Category        string  `json:"category"`
	TransactionType string  `json:"transactionType"`
	Amount          float64 `json:"amount"`
}

type processResponse struct {
	Transactions []wireTransaction         `json:"transactions"`
	Summary      service.ExtractionSummary `json:"summary"`
	Success      bool                      `json:"success"`
}

// NewClient creates a client for the extraction service at baseURL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: extraction service URL", common.ErrMissingConfig)
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // extraction of a large statement is slow
		},
		logger: slog.Default().With("component", "docproc"),
	}, nil
}

// Process sends the file to the extraction service and returns the
// transactions it found. Any upstream failure, including an extraction that
// found no transactions, is reported as a wrapped ErrUpstream; there is no
// fallback data.
func (c *Client) Process(ctx context.Context, fileName string, data []byte) (*service.ExtractionResult, error) {
	if fileName == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("file data is empty")
	}

	payload, err := json.Marshal(processRequest{
		PDFData:  base64.StdEncoding.EncodeToString(data),
		FileName: fileName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+processPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("Sending statement for extraction",
		"file_name", fileName,
		"bytes", len(data))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: extraction service returned %d - %s",
			common.ErrUpstream, resp.StatusCode, string(body))
	}

	var wire processResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", common.ErrUpstream, err)
	}

	if !wire.Success || len(wire.Transactions) == 0 {
		return nil, fmt.Errorf("%w: no transactions could be extracted from %s",
			common.ErrUpstream, fileName)
	}

	result := &service.ExtractionResult{
		Transactions: make([]model.Transaction, 0, len(wire.Transactions)),
		Summary:      wire.Summary,
		Success:      true,
	}
	for _, wt := range wire.Transactions {
		result.Transactions = append(result.Transactions, mapTransaction(wt))
	}

	c.logger.Info("Extraction complete",
		"file_name", fileName,
		"transactions", len(result.Transactions))

	return result, nil
}

// mapTransaction converts a wire transaction to the internal model. The
// service reports debits as positive amounts tagged "debit"; internally
// debits are negative.
func mapTransaction(wt wireTransaction) model.Transaction {
	amount := wt.Amount
	if wt.TransactionType == string(model.TypeDebit) && amount > 0 {
		amount = -amount
	}

	category := wt.Category
	if category == "" {
		category = "Other"
	}

	return model.Transaction{
		ID:          uuid.New().String(),
		Date:        wt.Date,
		Description: wt.Description,
		Merchant:    wt.Merchant,
		Category:    category,
		Type:        model.TypeForAmount(amount),
		Amount:      amount,
	}
}

// Ensure Client implements DocumentProcessor.
var _ service.DocumentProcessor = (*Client)(nil)
