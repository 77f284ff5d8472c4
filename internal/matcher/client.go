// Package matcher is a thin client for the external AI matching service.
// The service owns all embedding/similarity intelligence; this package is
// purely a pass-through over its two endpoints.
package matcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ReportResult is the service's answer to a /report submission.
type ReportResult struct {
	Status    string      `json:"status"`
	Message   string      `json:"message"`
	ItemID    string      `json:"item_id"`
	Embedding []float64   `json:"embedding,omitempty"`
	Matches   []Candidate `json:"matches,omitempty"`

	// The service reports bad input as {"error": ...} with a 200 status.
	Error string `json:"error,omitempty"`
}

// Candidate is one ranked similarity hit.
type Candidate struct {
	ItemID     string  `json:"item_id"`
	Score      float64 `json:"score"`
	Confidence string  `json:"confidence,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Report submits a report as a multipart form and returns the assigned
// external item ID plus, for lost reports, the ranked match list. Errors
// propagate; the caller treats enrichment as best-effort.
func (c *Client) Report(ctx context.Context, imageURL, description, location, category, reportType string) (*ReportResult, error) {
	if category == "" {
		category = "general"
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	fields := []struct{ name, value string }{
		{"image_url", imageURL},
		{"description", description},
		{"location", location},
		{"category", category},
		{"report_type", reportType},
	}
	for _, f := range fields {
		if err := form.WriteField(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/report", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("matching service returned status %d", resp.StatusCode)
	}

	var result ReportResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode matching service response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("matching service error: %s", result.Error)
	}
	if result.ItemID == "" {
		return nil, fmt.Errorf("matching service returned no item id")
	}
	return &result, nil
}

// FindSimilar returns ranked candidates for an embedding handle. It swallows
// errors and returns an empty list so a degraded matching service never fails
// a found-item submission.
func (c *Client) FindSimilar(ctx context.Context, embedding []float64, topK int) []Candidate {
	payload, err := json.Marshal(map[string]interface{}{
		"embedding": embedding,
		"top_k":     topK,
	})
	if err != nil {
		log.Printf("Error encoding find-similar request: %v", err)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/find-similar", bytes.NewReader(payload))
	if err != nil {
		log.Printf("Error building find-similar request: %v", err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Error finding similar items: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Find-similar returned status %d", resp.StatusCode)
		return nil
	}

	var result struct {
		Matches []Candidate `json:"matches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Error decoding find-similar response: %v", err)
		return nil
	}
	return result.Matches
}
