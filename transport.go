package rossum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
)

// SubmitRequest carries one document upload.
type SubmitRequest struct {
	Filename    string
	Data        []byte
	ContentType string
	Locale      string // opaque hint, passed through to the service
	Tables      bool
}

// SubmitResponse is the parsed body of a submit call. Exactly one of ID and
// Error is expected to be set.
type SubmitResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Transport abstraction allows mocking the remote service in tests and
// swapping the HTTP layer.
type Transport interface {
	// Submit uploads a document and returns the parsed submit response.
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error)
	// Status queries one job and returns the raw response body. When the
	// job is ready the body carries the full extraction payload.
	Status(ctx context.Context, jobID string, filter Filter) (json.RawMessage, error)
}

// httpTransport talks to the Elis API over plain HTTP with multipart uploads
// and the `secret_key` authorization scheme.
type httpTransport struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *slog.Logger
}

// NewHTTPTransport builds the default Transport for the given credentials.
// baseURL is used without a trailing slash.
func NewHTTPTransport(apiKey, baseURL string, client *http.Client, log *slog.Logger) Transport {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = slog.Default()
	}
	return &httpTransport{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
		log:     log,
	}
}

func (t *httpTransport) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, req.Filename))
	header.Set("Content-Type", req.ContentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(req.Data); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	query := url.Values{}
	if req.Locale != "" {
		query.Set("locale", req.Locale)
	}
	query.Set("tables", strconv.FormatBool(req.Tables))
	endpoint := t.baseURL + "/document?" + query.Encode()

	t.log.Debug("submitting document", "url", endpoint, "filename", req.Filename,
		"content_type", req.ContentType, "size", len(req.Data))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	t.authorize(httpReq)

	raw, err := t.do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("submit document: %w", err)
	}
	var resp SubmitResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("parse submit response: %w", err)
	}
	t.log.Debug("submit response", "id", resp.ID, "error", resp.Error)
	return &resp, nil
}

func (t *httpTransport) Status(ctx context.Context, jobID string, filter Filter) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/document/%s?filter=%s", t.baseURL, url.PathEscape(jobID), url.QueryEscape(string(filter)))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	t.authorize(httpReq)

	raw, err := t.do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("query job %s: %w", jobID, err)
	}
	return raw, nil
}

func (t *httpTransport) authorize(req *http.Request) {
	req.Header.Set("Authorization", "secret_key "+t.apiKey)
}

func (t *httpTransport) do(req *http.Request) (json.RawMessage, error) {
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("unexpected response (HTTP %d): %s", resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
