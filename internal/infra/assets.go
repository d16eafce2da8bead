package infra

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// AssetUploadResponse is returned by the asset store after persisting a file.
type AssetUploadResponse struct {
	URL    string `json:"url"`
	Key    string `json:"key"`
	Size   int64  `json:"size"`
	Status string `json:"status"` // "ok" | "rejected"
}

// AssetClient uploads product images to the asset-store sidecar over HTTP.
// Files are keyed by content hash so re-uploading the same image is idempotent.
type AssetClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *CircuitBreaker
}

func NewAssetClient(baseURL string, breaker *CircuitBreaker) *AssetClient {
	return &AssetClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		breaker:    breaker,
	}
}

// Upload pushes the file content under <folder>/<hash><ext> and returns the
// public URL. Calls go through the circuit breaker when one is configured.
func (c *AssetClient) Upload(ctx context.Context, folder, filename string, content io.Reader) (*AssetUploadResponse, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("assets: read content: %w", err)
	}

	sum := sha256.Sum256(data)
	key := folder + "/" + hex.EncodeToString(sum[:16]) + strings.ToLower(filepath.Ext(filename))

	var result *AssetUploadResponse
	doUpload := func() error {
		var uerr error
		result, uerr = c.doUpload(ctx, key, filename, data)
		return uerr
	}

	if c.breaker != nil {
		if err := c.breaker.Execute(doUpload); err != nil {
			return nil, err
		}
	} else if err := doUpload(); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *AssetClient) doUpload(ctx context.Context, key, filename string, data []byte) (*AssetUploadResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("key", key); err != nil {
		return nil, fmt.Errorf("assets: write key field: %w", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("assets: create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("assets: write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("assets: close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("assets: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assets: store unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("assets: store returned %d", resp.StatusCode)
	}

	var result AssetUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("assets: decode response: %w", err)
	}
	return &result, nil
}
