package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/config"
)

// OCRService is the client for the external quittance extraction API. The
// API receives the raw image and returns the stored image's location plus a
// free-form extraction payload tagged with the format it detected. Calls are
// bounded by a fixed timeout and never retried.
type OCRService struct {
	config     *config.OCRConfig
	httpClient *http.Client
}

// OCRResponse is the extraction API's success payload. ExtractedData is
// entirely format-dependent; FormatUsed tells the normalizer which field
// naming convention to expect.
type OCRResponse struct {
	StorageURL      string         `json:"storage_url"`
	StorageObjectID string         `json:"storage_object_id"`
	ExtractedData   map[string]any `json:"extracted_data"`
	FormatUsed      string         `json:"format_used"`
}

func NewOCRService(cfg *config.OCRConfig) *OCRService {
	return &OCRService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Extract sends the image to the extraction API and returns its response.
// Any transport error, timeout, non-2xx status or unreadable body is
// returned as an error; the caller decides what a failed extraction means
// for the record.
func (s *OCRService) Extract(ctx context.Context, file []byte, filename, companyName string) (*OCRResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build form file: %w", err)
	}
	if _, err := part.Write(file); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.WriteField("company_name", companyName); err != nil {
		return nil, fmt.Errorf("failed to write company name: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.APIURL+"/extract_quittance/", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OCR API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var result OCRResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, body: %s", err, string(respBody))
	}

	return &result, nil
}
