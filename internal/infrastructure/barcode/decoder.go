package barcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/craftshop/backend/internal/application/resolver"
)

const defaultDecodeTimeout = 15 * time.Second

// DecoderConfig holds the connection settings for the external decode service.
type DecoderConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Validate validates the decoder configuration
func (c *DecoderConfig) Validate() error {
	if c.BaseURL == "" {
		return nil // unconfigured means local-only decoding
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid decoder base URL: %w", err)
	}
	return nil
}

// HTTPDecoder implements resolver.Decoder against an external barcode decode
// service. The service takes a raw image and returns the decoded symbol text;
// parsing the text into label fields happens locally. Without a configured
// service the decoder runs local-only: payloads that are already symbol text
// are parsed directly, image data resolves to manual entry.
type HTTPDecoder struct {
	config     *DecoderConfig
	httpClient *http.Client
}

// NewHTTPDecoder creates a new HTTPDecoder
func NewHTTPDecoder(config *DecoderConfig) (*HTTPDecoder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultDecodeTimeout
	}
	return &HTTPDecoder{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type decodeResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Decode sends the captured image to the decode service and parses the
// returned symbol text. The request is cancellable through ctx so an operator
// closing the scan modal aborts the call.
func (d *HTTPDecoder) Decode(ctx context.Context, image []byte) (*resolver.ScanResult, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("empty image payload")
	}
	if d.config.BaseURL == "" {
		return d.decodeLocal(image), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.config.BaseURL+"/decode", bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to build decode request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if d.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+d.config.APIKey)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("decode request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("decode service returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded decodeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse decode response: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("decode service error: %s", decoded.Error)
	}
	if decoded.Text == "" {
		return nil, fmt.Errorf("decode service returned no symbol text")
	}

	return ToScanResult(decoded.Text), nil
}

// decodeLocal handles deployments without a decode service. A payload that is
// printable text — a pre-decoded symbol from a scanner gun, or typed label
// text — is parsed like any decoded symbol. Actual image bytes cannot be
// decoded locally; they come back as an unmatched result so the operator
// lands on manual entry instead of an error.
func (d *HTTPDecoder) decodeLocal(payload []byte) *resolver.ScanResult {
	text := strings.TrimSpace(string(payload))
	if text == "" || !utf8.ValidString(text) {
		return &resolver.ScanResult{}
	}
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return &resolver.ScanResult{}
		}
	}
	return ToScanResult(text)
}

// ToScanResult parses decoded symbol text into a ScanResult. A text that
// cannot be parsed as a label still yields a result carrying the raw text, so
// the operator sees what was scanned and can fall back to manual entry.
func ToScanResult(text string) *resolver.ScanResult {
	result := &resolver.ScanResult{Text: text}
	label, err := ParseLabel(text)
	if err != nil {
		return result
	}
	result.SKU = label.SKU
	result.Qty = label.Qty
	result.Lot = label.Lot
	return result
}

// Ensure HTTPDecoder implements the decoder interface
var _ resolver.Decoder = (*HTTPDecoder)(nil)
