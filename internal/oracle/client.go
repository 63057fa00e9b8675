package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"peerloan-backend/internal/domain/application"
)

const defaultTimeout = 30 * time.Second

// Client talks to the external scoring service. Callers that cannot
// tolerate a hard failure should use AnalyzePDFWithFallback, which never
// returns an error: an unreachable or slow oracle degrades to the
// deterministic zero-score/High-risk summary.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

type apiResponse struct {
	Success bool                   `json:"success"`
	Data    *application.AISummary `json:"data"`
}

// Fallback is the summary written when the oracle cannot be consulted.
func Fallback() *application.AISummary {
	return &application.AISummary{RiskLevel: "High"}
}

func (c *Client) AnalyzePDF(ctx context.Context, file []byte) (*application.AISummary, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "statement.pdf")
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(file); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze-pdf", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req)
}

func (c *Client) AnalyzeText(ctx context.Context, text string) (*application.AISummary, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze-text", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// AnalyzePDFWithFallback never fails: any transport, timeout or protocol
// error yields the fallback summary and the cause for logging.
func (c *Client) AnalyzePDFWithFallback(ctx context.Context, file []byte) (*application.AISummary, error) {
	s, err := c.AnalyzePDF(ctx, file)
	if err != nil {
		return Fallback(), err
	}
	return s, nil
}

func (c *Client) do(req *http.Request) (*application.AISummary, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return nil, fmt.Errorf("oracle: unexpected status %d", resp.StatusCode)
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("oracle: decode response: %w", err)
	}
	if !out.Success || out.Data == nil {
		return nil, fmt.Errorf("oracle: analysis failed")
	}
	return out.Data, nil
}
