// Package asr talks to the remote speech-to-text service.
package asr

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/alanef/local-voice-type/internal/jsonpath"
)

const (
	transcribePath = "v1/transcribe"
	healthPath     = "v1/health"
	userAgent      = "voice-type/1.0"

	// uploadName is the filename attached to the audio part.
	uploadName = "audio.wav"
)

// Options configures a Client.
type Options struct {
	APIURL   string
	APIToken string
	// TextPath locates the transcript in the response JSON. Empty means "text".
	TextPath string
	// Debug logs request timing and failed response bodies.
	Debug  bool
	Logger *slog.Logger
}

// Client performs transcription uploads.
type Client struct {
	opts          Options
	httpClient    *http.Client
	transcribeURL string
	healthURL     string
	log           *slog.Logger
}

// New creates a client. A nil httpClient means http.DefaultClient.
func New(opts Options, httpClient *http.Client) (*Client, error) {
	if opts.APIURL == "" {
		return nil, fmt.Errorf("api url is empty")
	}
	base, err := url.Parse(opts.APIURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid api url %q", opts.APIURL)
	}
	transcribeURL, err := url.JoinPath(opts.APIURL, transcribePath)
	if err != nil {
		return nil, fmt.Errorf("build transcribe url: %w", err)
	}
	healthURL, err := url.JoinPath(opts.APIURL, healthPath)
	if err != nil {
		return nil, fmt.Errorf("build health url: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		opts:          opts,
		httpClient:    httpClient,
		transcribeURL: transcribeURL,
		healthURL:     healthURL,
		log:           log,
	}, nil
}

// Transcribe uploads a WAV blob and returns the recognized text. An empty
// string is a valid result and means no speech was recognized.
func (c *Client) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	body, contentType, err := buildForm(audio, language)
	if err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.transcribeURL, body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	respBody, err := c.do(req)
	if err != nil {
		return "", err
	}

	text, err := jsonpath.ExtractText(respBody, c.opts.TextPath)
	if err != nil {
		if c.opts.Debug {
			c.log.Debug("unexpected transcription response", "body", formatResponse(respBody))
		}
		return "", &ParseError{Body: string(respBody), Err: err}
	}
	return text, nil
}

// Health is the service's readiness report.
type Health struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// Ready reports whether the service can transcribe.
func (h Health) Ready() bool {
	return h.Status == "ok" && h.ModelLoaded
}

// Health probes the service's readiness endpoint.
func (c *Client) Health(ctx context.Context) (Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		return Health{}, fmt.Errorf("build health request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	respBody, err := c.do(req)
	if err != nil {
		return Health{}, err
	}
	var h Health
	if err := json.Unmarshal(respBody, &h); err != nil {
		return Health{}, &ParseError{Body: string(respBody), Err: err}
	}
	if h.Status == "" {
		return Health{}, &ParseError{Body: string(respBody), Err: errors.New("missing status")}
	}
	return h, nil
}

// do sends req with auth and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.opts.APIToken)
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.opts.Debug {
		c.log.Debug("request finished", "method", req.Method, "url", req.URL.String(), "duration", time.Since(start))
	}
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if c.opts.Debug {
			c.log.Debug("request failed", "status", resp.StatusCode, "body", formatResponse(respBody))
		}
		return nil, &ServerError{Status: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}

// buildForm writes exactly one audio part and one language field.
func buildForm(audio []byte, language string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, uploadName))
	h.Set("Content-Type", "audio/wav")
	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, "", fmt.Errorf("write file part: %w", err)
	}
	if err := writer.WriteField("language", language); err != nil {
		return nil, "", fmt.Errorf("write language field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}

func formatResponse(b []byte) string {
	if len(b) == 0 {
		return "<empty>"
	}
	const maxText = 1000
	const maxBin = 256

	if utf8.Valid(b) {
		s := string(b)
		if len(s) > maxText {
			return fmt.Sprintf("%s... (truncated, total %d bytes)", s[:maxText], len(b))
		}
		return s
	}

	if len(b) > maxBin {
		return fmt.Sprintf("<binary %d bytes, prefix hex: %s...>", len(b), hex.EncodeToString(b[:maxBin]))
	}
	return fmt.Sprintf("<binary %d bytes, hex: %s>", len(b), hex.EncodeToString(b))
}
