// Package minting talks to the external document-minting service. The service
// receives the source document plus student and wallet metadata, pins the
// document, and mints the representative NFT. Responses may or may not carry a
// transaction hash: minting can confirm asynchronously.
package minting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"credchain/src/logger"
)

type MintRequest struct {
	DocumentPath   string
	StudentId      string
	StudentName    string
	UniversityId   int
	UniversityName string
	WalletAddress  string
}

type MintResult struct {
	Success         bool   `json:"success"`
	AssetName       string `json:"asset_name"`
	PolicyId        string `json:"policy_id"`
	TransactionHash string `json:"transaction_hash"`
	Error           string `json:"error,omitempty"`
}

type Client struct {
	baseURL    string
	client     *http.Client
	maxRetries int
}

func NewClient(baseURL string, maxRetries int, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		client:     &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
	}
}

// Mint uploads the document and metadata as multipart form data. Network
// errors and 5xx responses are retried with a linear backoff; 4xx responses
// are not.
func (c *Client) Mint(ctx context.Context, req MintRequest) (*MintResult, error) {
	log := logger.Default()

	body, contentType, err := buildForm(req)
	if err != nil {
		return nil, err
	}

	var resp *http.Response
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", bytes.NewReader(body))
		if reqErr != nil {
			return nil, fmt.Errorf("building mint request: %w", reqErr)
		}
		httpReq.Header.Set("Content-Type", contentType)

		resp, err = c.client.Do(httpReq)
		if err == nil && resp.StatusCode < 500 {
			break
		}

		if attempt < c.maxRetries {
			if err != nil {
				log.Warnf("Mint attempt %d/%d failed: %v. Retrying...", attempt+1, c.maxRetries+1, err)
			} else {
				resp.Body.Close()
				log.Warnf("Mint attempt %d/%d failed with status %d. Retrying...", attempt+1, c.maxRetries+1, resp.StatusCode)
			}
			time.Sleep(time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("calling minting service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("minting service returned status %d", resp.StatusCode)
	}

	var result MintResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding minting response: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("minting service rejected document: %s", result.Error)
	}
	return &result, nil
}

func buildForm(req MintRequest) ([]byte, string, error) {
	file, err := os.Open(req.DocumentPath)
	if err != nil {
		return nil, "", fmt.Errorf("opening staged document: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("document", filepath.Base(req.DocumentPath))
	if err != nil {
		return nil, "", fmt.Errorf("building multipart form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("copying document into form: %w", err)
	}

	fields := map[string]string{
		"studentId":      req.StudentId,
		"name":           req.StudentName,
		"universityId":   fmt.Sprint(req.UniversityId),
		"universityName": req.UniversityName,
		"walletAddress":  req.WalletAddress,
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing multipart form: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}
