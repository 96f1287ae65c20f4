package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Printer is the print-to-file port. The actual HTML-to-PDF conversion is an
// external service treated as a black box.
type Printer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// HTTPPrinter posts the document markup to a remote print service and
// returns the PDF bytes it answers with.
type HTTPPrinter struct {
	BaseURL string
	client  *http.Client
}

func NewHTTPPrinter(baseURL string) *HTTPPrinter {
	return &HTTPPrinter{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *HTTPPrinter) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/render", bytes.NewBufferString(html))
	if err != nil {
		return nil, fmt.Errorf("build print request: %w", err)
	}
	req.Header.Set("Content-Type", "text/html; charset=utf-8")
	req.Header.Set("Accept", "application/pdf")
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call print service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("print service returned %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

// PassthroughPrinter stands in for the print service in development: it
// returns the markup bytes unchanged so the flow stays exercisable without a
// converter running.
type PassthroughPrinter struct{}

func (PassthroughPrinter) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	return []byte(html), nil
}
