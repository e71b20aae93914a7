package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/afea/einvoice/logger"
	"github.com/afea/einvoice/observability"
	"github.com/afea/einvoice/version"
)

const (
	acceptJSON   = "application/json"
	acceptHTML   = "text/html"
	acceptBinary = "*/*"
)

// mode selects header defaults and body encoding for a call.
type mode int

const (
	modeJSON mode = iota
	modeMultipart
	modeHTML
	modeBinary
)

func (m mode) accept() string {
	switch m {
	case modeHTML:
		return acceptHTML
	case modeBinary:
		return acceptBinary
	default:
		return acceptJSON
	}
}

// Gateway is the shared HTTP transport of a provider client.
// It is safe for concurrent use; the bearer token is the only mutable state.
type Gateway struct {
	httpClient *http.Client
	config     Config
	token      tokenHolder
	log        *logger.Logger
	metrics    *observability.GatewayMetrics
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger used for per-call debug and failure logs.
func WithLogger(l *logger.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.log = l
		}
	}
}

// WithMetrics records request counts, durations and errors.
func WithMetrics(m *observability.GatewayMetrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(g *Gateway) {
		if rt != nil {
			g.httpClient.Transport = rt
		}
	}
}

// New creates a gateway with the given configuration.
func New(cfg Config, opts ...Option) (*Gateway, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Gateway{
		httpClient: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		log:    logger.NewNop(),
	}
	g.token.set(cfg.Token)

	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.WithComponent("gateway").WithFields(logger.Fields(logger.FieldProvider, cfg.Name))
	return g, nil
}

// Name returns the gateway name.
func (g *Gateway) Name() string { return g.config.Name }

// BaseURL returns the configured base URL without trailing slash.
func (g *Gateway) BaseURL() string { return g.config.BaseURL }

// Timeout returns the per-call timeout.
func (g *Gateway) Timeout() time.Duration { return g.config.Timeout }

// SetToken replaces the bearer token. Subsequent calls use the new value;
// an empty token disables the Authorization header.
func (g *Gateway) SetToken(token string) { g.token.set(token) }

// Token returns the current bearer token.
func (g *Gateway) Token() string { return g.token.get() }

// TokenExpiry returns the exp claim of the current token when it is a JWT.
// The token is not verified; the value is informational.
func (g *Gateway) TokenExpiry() (time.Time, bool) {
	return tokenExpiry(g.token.get())
}

// Close releases idle connections.
func (g *Gateway) Close(_ context.Context) error {
	g.httpClient.CloseIdleConnections()
	return nil
}

// Get issues a GET request.
func (g *Gateway) Get(ctx context.Context, path string, query Query, headers map[string]string) (*Response, error) {
	return g.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Headers: headers})
}

// Post issues a POST request with a JSON body.
func (g *Gateway) Post(ctx context.Context, path string, body any, headers map[string]string) (*Response, error) {
	return g.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body, Headers: headers})
}

// PostMultipart issues a multipart/form-data POST. Parts are sent in order;
// without parts the body is an empty multipart form.
func (g *Gateway) PostMultipart(ctx context.Context, path string, parts []Part, headers map[string]string, query Query) (*Response, error) {
	req := Request{Method: http.MethodPost, Path: path, Parts: parts, Headers: headers, Query: query}
	return g.do(ctx, req, modeMultipart)
}

// Put issues a PUT request with a JSON body.
func (g *Gateway) Put(ctx context.Context, path string, body any, headers map[string]string) (*Response, error) {
	return g.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body, Headers: headers})
}

// Delete issues a DELETE request.
func (g *Gateway) Delete(ctx context.Context, path string, headers map[string]string) (*Response, error) {
	return g.Do(ctx, Request{Method: http.MethodDelete, Path: path, Headers: headers})
}

// Do executes req and normalizes the response. A request with Parts is sent
// as multipart/form-data, any other as JSON.
func (g *Gateway) Do(ctx context.Context, req Request) (*Response, error) {
	m := modeJSON
	if len(req.Parts) > 0 {
		m = modeMultipart
	}
	return g.do(ctx, req, m)
}

func (g *Gateway) do(ctx context.Context, req Request, m mode) (*Response, error) {
	raw, err := g.execute(ctx, operationName(req.Method, m), req, m)
	if err != nil {
		return nil, err
	}
	return ClassifyResponse(raw.status, raw.header, raw.body), nil
}

// DownloadHTML fetches an HTML document together with its response headers.
func (g *Gateway) DownloadHTML(ctx context.Context, path string, query Query, headers map[string]string) (*HTMLDocument, error) {
	req := Request{Method: http.MethodGet, Path: path, Query: query, Headers: headers}
	raw, err := g.execute(ctx, "download_html", req, modeHTML)
	if err != nil {
		return nil, err
	}
	return &HTMLDocument{
		Content: string(raw.body),
		Headers: joinHeaders(raw.header),
	}, nil
}

// DownloadBinary fetches a file, unwrapping base64 JSON envelopes. See DecodeBinary.
func (g *Gateway) DownloadBinary(ctx context.Context, path string, query Query, headers map[string]string) ([]byte, error) {
	req := Request{Method: http.MethodGet, Path: path, Query: query, Headers: headers}
	raw, err := g.execute(ctx, "download_binary", req, modeBinary)
	if err != nil {
		return nil, err
	}
	return DecodeBinary(raw.header.Get("Content-Type"), raw.body), nil
}

// rawResponse is a fully read success response.
type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

// execute sends the request and returns the read response, or an *Error for
// transport failures and error statuses.
func (g *Gateway) execute(ctx context.Context, op string, req Request, m mode) (*rawResponse, error) {
	requestID := uuid.NewString()
	ctx, span := observability.StartSpan(ctx, "gateway."+op)
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrProvider, g.config.Name)
	observability.SetSpanAttribute(ctx, observability.AttrOperation, op)
	observability.SetSpanAttribute(ctx, observability.AttrRequestID, requestID)
	observability.SetSpanAttribute(ctx, observability.AttrHTTPMethod, req.Method)
	observability.SetSpanAttribute(ctx, observability.AttrHTTPPath, req.Path)

	log := g.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldRequestID, requestID,
		logger.FieldOperation, op,
		logger.FieldMethod, req.Method,
		logger.FieldPath, req.Path,
	))

	var opened *openedParts
	if m == modeMultipart {
		var err error
		if opened, err = openParts(req.Parts); err != nil {
			return nil, g.fail(ctx, log, NewValidationError(err))
		}
		defer opened.close()
	}

	httpReq, err := g.buildRequest(ctx, req, m, opened)
	if err != nil {
		return nil, g.fail(ctx, log, NewValidationError(err))
	}

	start := time.Now()
	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, g.fail(ctx, log, newTransportError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, g.fail(ctx, log, newTransportError(fmt.Errorf("read response body: %w", err)))
	}
	elapsed := time.Since(start)

	observability.SetSpanAttribute(ctx, observability.AttrHTTPStatus, resp.StatusCode)
	g.metrics.RecordRequest(ctx, g.config.Name, op, resp.StatusCode, elapsed)
	log = log.WithFields(logger.Fields(
		logger.FieldStatus, resp.StatusCode,
		logger.FieldDuration, elapsed.Milliseconds(),
	))

	if gerr := ClassifyStatusCode(resp.StatusCode, body); gerr != nil {
		return nil, g.fail(ctx, log, gerr)
	}

	log.Debug("gateway call completed")
	return &rawResponse{status: resp.StatusCode, header: resp.Header, body: body}, nil
}

// fail records a failed call on the span, metrics and log, and returns err.
func (g *Gateway) fail(ctx context.Context, log *logger.Logger, err *Error) *Error {
	observability.SetSpanError(ctx, err)
	g.metrics.RecordError(ctx, g.config.Name, err.Code.String())
	log.Warn("gateway call failed", logger.Fields(
		logger.FieldCode, err.Code.String(),
		logger.FieldError, firstLine(err.Message),
	))
	return err
}

// buildRequest constructs an *http.Request from the gateway config and request.
func (g *Gateway) buildRequest(ctx context.Context, req Request, m mode, opened *openedParts) (*http.Request, error) {
	url := g.config.BaseURL + "/" + strings.TrimLeft(req.Path, "/")
	if qs := req.Query.Encode(); qs != "" {
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		url += sep + qs
	}

	var body io.Reader
	var contentType string
	switch m {
	case modeMultipart:
		var err error
		if body, contentType, err = encodeMultipart(req.Parts, opened); err != nil {
			return nil, fmt.Errorf("encode multipart: %w", err)
		}
	case modeJSON:
		if req.Body != nil {
			data, err := json.Marshal(req.Body)
			if err != nil {
				return nil, fmt.Errorf("encode body: %w", err)
			}
			body = bytes.NewReader(data)
		}
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Accept", m.accept())
	httpReq.Header.Set("User-Agent", version.UserAgent())
	if m == modeJSON && !hasHeader(g.config.Headers, "Content-Type") && !hasHeader(req.Headers, "Content-Type") {
		httpReq.Header.Set("Content-Type", acceptJSON)
	}
	applyBearer(httpReq, g.token.get())

	// Apply default headers
	for k, v := range g.config.Headers {
		httpReq.Header.Set(k, v)
	}

	// Apply request-specific headers (override defaults)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	// The boundary is only known to the encoder.
	if m == modeMultipart {
		httpReq.Header.Set("Content-Type", contentType)
	}

	return httpReq, nil
}

func operationName(method string, m mode) string {
	if m == modeMultipart {
		return "post_multipart"
	}
	if method == "" {
		return "get"
	}
	return strings.ToLower(method)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
