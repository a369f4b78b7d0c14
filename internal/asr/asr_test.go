package asr

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanef/local-voice-type/internal/jsonpath"
)

type capturedPart struct {
	name        string
	filename    string
	contentType string
	body        []byte
}

type capturedRequest struct {
	method string
	path   string
	auth   string
	parts  []capturedPart
}

func readParts(t *testing.T, r *http.Request) []capturedPart {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	var parts []capturedPart
	mr := multipart.NewReader(r.Body, params["boundary"])
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		b, err := io.ReadAll(p)
		require.NoError(t, err)
		parts = append(parts, capturedPart{
			name:        p.FormName(),
			filename:    p.FileName(),
			contentType: p.Header.Get("Content-Type"),
			body:        b,
		})
	}
	return parts
}

// newServer answers every request with status and body. Captured requests
// are delivered on the returned channel.
func newServer(t *testing.T, status int, body string) (*httptest.Server, <-chan capturedRequest) {
	t.Helper()
	reqs := make(chan capturedRequest, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := capturedRequest{
			method: r.Method,
			path:   r.URL.Path,
			auth:   r.Header.Get("Authorization"),
		}
		if r.Method == http.MethodPost {
			got.parts = readParts(t, r)
		}
		reqs <- got
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, reqs
}

func newClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(Options{APIURL: url, APIToken: "tok"}, nil)
	require.NoError(t, err)
	return c
}

func TestTranscribeRequestShape(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK, `{"text":"hello world"}`)

	audio := []byte("RIFF....WAVEfmt fake audio")
	text, err := newClient(t, srv.URL).Transcribe(context.Background(), audio, "en")
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	got := <-reqs

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/v1/transcribe", got.path)
	assert.Equal(t, "Bearer tok", got.auth)

	require.Len(t, got.parts, 2)
	var files, langs int
	for _, p := range got.parts {
		switch p.name {
		case "file":
			files++
			assert.Equal(t, "audio.wav", p.filename)
			assert.Equal(t, "audio/wav", p.contentType)
			assert.Equal(t, audio, p.body)
		case "language":
			langs++
			assert.Equal(t, "en", string(p.body))
		default:
			t.Errorf("unexpected part %q", p.name)
		}
	}
	assert.Equal(t, 1, files)
	assert.Equal(t, 1, langs)
}

func TestTranscribeTrailingSlashBaseURL(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK, `{"text":"x"}`)

	_, err := newClient(t, srv.URL+"/").Transcribe(context.Background(), []byte("a"), "en")
	require.NoError(t, err)
	assert.Equal(t, "/v1/transcribe", (<-reqs).path)
}

func TestTranscribeEmptyText(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"text":""}`)

	text, err := newClient(t, srv.URL).Transcribe(context.Background(), []byte("a"), "en")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestTranscribeAccepts2xx(t *testing.T) {
	srv, _ := newServer(t, http.StatusCreated, `{"text":"made"}`)

	text, err := newClient(t, srv.URL).Transcribe(context.Background(), []byte("a"), "en")
	require.NoError(t, err)
	assert.Equal(t, "made", text)
}

func TestTranscribeServerError(t *testing.T) {
	srv, _ := newServer(t, http.StatusInternalServerError, "boom")

	_, err := newClient(t, srv.URL).Transcribe(context.Background(), []byte("a"), "en")
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 500, se.Status)
	assert.Equal(t, "boom", se.Body)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "boom")
}

func TestTranscribeUnauthorized(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnauthorized, `{"detail":"Invalid API token"}`)

	_, err := newClient(t, srv.URL).Transcribe(context.Background(), []byte("a"), "en")
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
}

func TestTranscribeParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"not json", "<html>", jsonpath.ErrInvalidJSON},
		{"missing text", `{"result":"x"}`, jsonpath.ErrMissing},
		{"numeric text", `{"text":42}`, jsonpath.ErrNotString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusOK, tt.body)
			_, err := newClient(t, srv.URL).Transcribe(context.Background(), []byte("a"), "en")
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.body, pe.Body)
		})
	}
}

func TestTranscribeCustomTextPath(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"results":[{"alternatives":[{"transcript":"deep"}]}]}`)

	c, err := New(Options{
		APIURL:   srv.URL,
		APIToken: "tok",
		TextPath: "results[0].alternatives[0].transcript",
		Debug:    true,
	}, nil)
	require.NoError(t, err)

	text, err := c.Transcribe(context.Background(), []byte("a"), "en")
	require.NoError(t, err)
	assert.Equal(t, "deep", text)
}

func TestTranscribeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newClient(t, url).Transcribe(context.Background(), []byte("a"), "en")
	var te *TransportError
	require.ErrorAs(t, err, &te)
}

func TestTranscribeCanceledContext(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"text":"late"}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(t, srv.URL).Transcribe(ctx, []byte("a"), "en")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTranscribeLocalRequestErrorIsNotTransport(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK, `{"text":"never"}`)

	var ctx context.Context
	_, err := newClient(t, srv.URL).Transcribe(ctx, []byte("a"), "en")
	require.Error(t, err)
	var te *TransportError
	assert.False(t, errors.As(err, &te))
	assert.Empty(t, reqs)
}

func TestHealth(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK, `{"status":"ok","model_loaded":true}`)

	h, err := newClient(t, srv.URL).Health(context.Background())
	require.NoError(t, err)
	got := <-reqs
	assert.Equal(t, "/v1/health", got.path)
	assert.Equal(t, http.MethodGet, got.method)
	assert.True(t, h.Ready())

	srv, _ = newServer(t, http.StatusOK, `{"status":"ok","model_loaded":false}`)
	h, err = newClient(t, srv.URL).Health(context.Background())
	require.NoError(t, err)
	assert.False(t, h.Ready())

	srv, _ = newServer(t, http.StatusServiceUnavailable, "starting")
	_, err = newClient(t, srv.URL).Health(context.Background())
	var se *ServerError
	require.ErrorAs(t, err, &se)

	srv, _ = newServer(t, http.StatusOK, `{}`)
	_, err = newClient(t, srv.URL).Health(context.Background())
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New(Options{APIURL: ""}, nil)
	assert.Error(t, err)
	_, err = New(Options{APIURL: "localhost"}, nil)
	assert.Error(t, err)
}

func TestFormatResponse(t *testing.T) {
	assert.Equal(t, "<empty>", formatResponse(nil))
	assert.Equal(t, "hi", formatResponse([]byte("hi")))
	assert.Contains(t, formatResponse([]byte{0xff, 0xfe}), "<binary 2 bytes")
}
