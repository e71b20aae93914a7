package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/afea/einvoice/logger"
	"github.com/afea/einvoice/observability"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc, cfg Config, opts ...Option) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	if cfg.BaseURL == "" {
		cfg.BaseURL = srv.URL
	}
	g, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestNew_Config(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error for missing base URL")
	}
	if _, err := New(Config{BaseURL: "not a url"}); err == nil {
		t.Error("expected error for invalid base URL")
	}

	g, err := New(Config{BaseURL: "https://apitest.nes.com.tr/", Name: "nes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.BaseURL() != "https://apitest.nes.com.tr" {
		t.Errorf("trailing slash should be stripped, got %q", g.BaseURL())
	}
	if g.Timeout() != 30*time.Second {
		t.Errorf("expected 30s default timeout, got %v", g.Timeout())
	}
	if g.Name() != "nes" {
		t.Errorf("expected name nes, got %q", g.Name())
	}
	if g.Token() != "" {
		t.Errorf("expected no token, got %q", g.Token())
	}
}

func TestGateway_Get(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/general/v1/management/creditsummary" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected Accept application/json, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected Content-Type application/json, got %q", got)
		}
		if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, "einvoice/") {
			t.Errorf("unexpected User-Agent %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"TotalDefinedCount":100}`))
	}, Config{})

	resp, err := g.Get(context.Background(), "general/v1/management/creditsummary", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsJSON() || resp.StatusCode != 200 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if v, _ := resp.Lookup("TotalDefinedCount"); v != json.Number("100") {
		t.Errorf("unexpected payload %#v", resp.JSON)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("headers not exposed: %v", resp.Headers)
	}
}

func TestGateway_QueryOrder(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.RawQuery; got != "page=2&isArchive=1&sort=a+b&draft=0" {
			t.Errorf("unexpected query %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}, Config{})

	q := Query{}.Add("page", 2).Add("isArchive", true).Add("skip", nil).Add("sort", "a b").Add("draft", false)
	resp, err := g.Get(context.Background(), "/list", q, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsEmpty() {
		t.Errorf("expected empty response, got %s", resp.Variant)
	}
}

func TestGateway_QueryAppendsToPathQuery(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.RawQuery; got != "a=1&b=2" {
			t.Errorf("unexpected query %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}, Config{})

	if _, err := g.Get(context.Background(), "/x?a=1", Query{}.Add("b", 2), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGateway_PostJSON(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	}, Config{})

	resp, err := g.Post(context.Background(), "/vouchers", map[string]string{"uuid": "abc"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
	if v, _ := resp.Lookup("uuid"); v != "abc" {
		t.Errorf("expected echoed body, got %#v", resp.JSON)
	}
}

func TestGateway_PostNilBodySendsNothing(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		if len(data) != 0 {
			t.Errorf("expected empty body, got %q", data)
		}
		w.WriteHeader(http.StatusOK)
	}, Config{})

	if _, err := g.Post(context.Background(), "/noop", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGateway_CallerContentTypeWins(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/xml" {
			t.Errorf("expected caller content type, got %q", ct)
		}
		if got := r.Header.Get("X-Tenant"); got != "42" {
			t.Errorf("expected default header, got %q", got)
		}
		if got := r.Header.Get("X-Trace"); got != "caller" {
			t.Errorf("caller header should override default, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
	}, Config{Headers: map[string]string{"X-Tenant": "42", "X-Trace": "default"}})

	_, err := g.Put(context.Background(), "/doc", "<x/>", map[string]string{
		"content-type": "application/xml",
		"X-Trace":      "caller",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGateway_Delete(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(`{"deleted":true}`))
	}, Config{})

	resp, err := g.Delete(context.Background(), "/vouchers/1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsText() || resp.Text != `{"deleted":true}` {
		t.Errorf("text/plain must not be decoded, got %s %q", resp.Variant, resp.Text)
	}
}

func TestGateway_TokenRotation(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if _, ok := r.Header["Authorization"]; !ok {
			seen = append(seen, "<none>")
		} else {
			seen = append(seen, r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusOK)
	}, Config{Token: "t1"})

	ctx := context.Background()
	_, _ = g.Get(ctx, "/a", nil, nil)
	g.SetToken("t2")
	_, _ = g.Get(ctx, "/a", nil, nil)
	g.SetToken("")
	_, _ = g.Get(ctx, "/a", nil, nil)

	want := []string{"Bearer t1", "Bearer t2", "<none>"}
	if strings.Join(seen, "|") != strings.Join(want, "|") {
		t.Errorf("Authorization headers = %v, want %v", seen, want)
	}
	if g.Token() != "" {
		t.Errorf("expected cleared token, got %q", g.Token())
	}
}

func TestGateway_ConcurrentTokenRotation(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth != "" && !strings.HasPrefix(auth, "Bearer tok-") {
			t.Errorf("unexpected Authorization %q", auth)
		}
		w.WriteHeader(http.StatusOK)
	}, Config{Token: "tok-0"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = g.Get(context.Background(), "/x", nil, nil)
		}()
		go func(i int) {
			defer wg.Done()
			g.SetToken("tok-" + string(rune('a'+i)))
		}(i)
	}
	wg.Wait()
}

func TestGateway_TokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "integrator",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	g, err := New(Config{BaseURL: "https://apitest.nilvera.com", Token: signed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := g.TokenExpiry()
	if !ok || !got.Equal(exp) {
		t.Errorf("TokenExpiry() = %v, %v; want %v", got, ok, exp)
	}

	g.SetToken("opaque-api-key")
	if _, ok := g.TokenExpiry(); ok {
		t.Error("opaque token should have no expiry")
	}
}

func TestGateway_HTTPErrorIsEnriched(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Validation failed","errors":[{"code":"E1","description":"bad","detail":"x"}]}`))
	}, Config{})

	resp, err := g.Post(context.Background(), "/vouchers", map[string]any{}, nil)
	if resp != nil {
		t.Error("expected nil response on error")
	}
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.StatusCode != 400 || gerr.Code != ErrCodeValidation {
		t.Errorf("unexpected status/code %d %s", gerr.StatusCode, gerr.Code)
	}
	if !strings.Contains(gerr.Message, "[E1] bad - x") {
		t.Errorf("message not enriched: %q", gerr.Message)
	}
}

func TestGateway_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g, err := New(Config{BaseURL: url})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = g.Get(context.Background(), "/x", nil, nil)
	if !IsConnection(err) || !IsTransport(err) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if StatusCode(err) != 0 {
		t.Errorf("transport failure must have no status, got %d", StatusCode(err))
	}
	if !strings.HasPrefix(err.Error(), "request failed: ") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestGateway_Timeout(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, Config{Timeout: 50 * time.Millisecond})

	_, err := g.Get(context.Background(), "/slow", nil, nil)
	if !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if StatusCode(err) != 0 {
		t.Errorf("timeout must have no status")
	}
}

func TestGateway_CancelledContext(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Get(ctx, "/x", nil, nil)
	if !IsTransport(err) {
		t.Fatalf("expected transport failure, got %v", err)
	}
}

func TestGateway_PostMultipart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invoice.xml")
	if err := os.WriteFile(path, []byte("<Invoice/>"), 0o600); err != nil {
		t.Fatal(err)
	}

	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data; boundary=") {
			t.Errorf("expected multipart content type, got %q", ct)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected Accept application/json, got %q", got)
		}
		if got := r.URL.RawQuery; got != "autoSaveCompany=1" {
			t.Errorf("unexpected query %q", got)
		}

		mr, err := r.MultipartReader()
		if err != nil {
			t.Fatalf("multipart reader: %v", err)
		}
		var names []string
		contents := map[string]string{}
		filenames := map[string]string{}
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("next part: %v", err)
			}
			data, _ := io.ReadAll(p)
			names = append(names, p.FormName())
			contents[p.FormName()] = string(data)
			filenames[p.FormName()] = p.FileName()
		}
		if strings.Join(names, ",") != "Type,File,Attachment" {
			t.Errorf("parts out of order: %v", names)
		}
		if contents["Type"] != "xml" || filenames["Type"] != "" {
			t.Errorf("unexpected value field %q %q", contents["Type"], filenames["Type"])
		}
		if contents["File"] != "<Invoice/>" || filenames["File"] != "invoice.xml" {
			t.Errorf("unexpected file part %q %q", contents["File"], filenames["File"])
		}
		if contents["Attachment"] != "pdf-bytes" || filenames["Attachment"] != "ek.pdf" {
			t.Errorf("unexpected data part %q %q", contents["Attachment"], filenames["Attachment"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Message":"queued"}`))
	}, Config{Token: "tok"})

	parts := []Part{
		{Name: "Type", Value: "xml"},
		{Name: "File", File: path},
		{Name: "Attachment", Filename: "ek.pdf", ContentType: "application/pdf", Data: []byte("pdf-bytes")},
	}
	// A caller Content-Type must not replace the boundary-bearing one.
	headers := map[string]string{"Content-Type": "application/json"}
	resp, err := g.PostMultipart(context.Background(), "/einvoice/Send/Xml", parts, headers, Query{}.Add("autoSaveCompany", true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := resp.Lookup("message"); v != "queued" {
		t.Errorf("expected capitalized fallback lookup, got %#v", resp.JSON)
	}
}

func TestGateway_PostMultipartWithoutParts(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "einvoice", &buf)

	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data; boundary=") {
			t.Errorf("expected multipart content type, got %q", ct)
		}
		mr, err := r.MultipartReader()
		if err != nil {
			t.Errorf("multipart reader: %v", err)
			return
		}
		if _, err := mr.NextPart(); err != io.EOF {
			t.Errorf("expected an empty form, got err=%v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}, Config{}, WithLogger(log))

	resp, err := g.PostMultipart(context.Background(), "/upload", nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsEmpty() {
		t.Errorf("expected empty response, got %s", resp.Variant)
	}
	if !strings.Contains(buf.String(), `"operation":"post_multipart"`) {
		t.Errorf("call should be logged as post_multipart:\n%s", buf.String())
	}
}

func TestGateway_PostMultipartMissingFile(t *testing.T) {
	called := false
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, Config{})

	_, err := g.PostMultipart(context.Background(), "/upload", []Part{{Name: "File", File: "/does/not/exist.xml"}}, nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var gerr *Error
	if !errors.As(err, &gerr) || gerr.Code != ErrCodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
	if called {
		t.Error("request must not be sent when a file cannot be opened")
	}
}

func TestGateway_DownloadHTML(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "text/html" {
			t.Errorf("expected Accept text/html, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "" {
			t.Errorf("HTML download must not send a content type, got %q", got)
		}
		if got := r.URL.Query().Get("standardXslt"); got != "1" {
			t.Errorf("expected query, got %q", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Add("X-Part", "a")
		w.Header().Add("X-Part", "b")
		_, _ = w.Write([]byte("<html>fatura</html>"))
	}, Config{Token: "tok"})

	doc, err := g.DownloadHTML(context.Background(), "/einvoice/v1/outgoing/documents/u-1/html", Query{}.Add("standardXslt", true), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Content != "<html>fatura</html>" {
		t.Errorf("unexpected content %q", doc.Content)
	}
	if doc.Headers["content-type"] != "text/html; charset=utf-8" {
		t.Errorf("headers should be lower-cased, got %v", doc.Headers)
	}
	if doc.Headers["x-part"] != "a, b" {
		t.Errorf("repeated values should be joined, got %q", doc.Headers["x-part"])
	}
}

func TestGateway_DownloadBinary(t *testing.T) {
	pdf := []byte("%PDF-1.7 binary\x00")
	b64 := base64.StdEncoding.EncodeToString(pdf)

	tests := []struct {
		name        string
		contentType string
		body        []byte
	}{
		{"raw", "application/pdf", pdf},
		{"envelope", "application/json", []byte(`{"content":"` + b64 + `"}`)},
		{"quoted string", "application/json", []byte(`"` + b64 + `"`)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Accept"); got != "*/*" {
					t.Errorf("expected Accept */*, got %q", got)
				}
				w.Header().Set("Content-Type", tc.contentType)
				_, _ = w.Write(tc.body)
			}, Config{})

			got, err := g.DownloadBinary(context.Background(), "/vouchers/1/pdf", nil, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, pdf) {
				t.Errorf("DownloadBinary() = %q, want %q", got, pdf)
			}
		})
	}
}

func TestGateway_DownloadBinaryError(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"Message":"Belge bulunamadı"}`))
	}, Config{})

	_, err := g.DownloadBinary(context.Background(), "/vouchers/1/pdf", nil, nil)
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != "HTTP 404: Belge bulunamadı" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestGateway_LogsAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "einvoice", &buf)

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())
	metrics, err := observability.NewGatewayMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}

	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}, Config{Name: "nilvera"}, WithLogger(log), WithMetrics(metrics))

	ctx := context.Background()
	_, _ = g.Get(ctx, "/ok", nil, nil)
	_, _ = g.Get(ctx, "/missing", nil, nil)

	out := buf.String()
	for _, want := range []string{"gateway call completed", "gateway call failed", `"provider":"nilvera"`, `"request_id":`, `"code":"not_found"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if sum, ok := md.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[md.Name] += dp.Value
				}
			}
		}
	}
	if totals["gateway.request.total"] != 2 {
		t.Errorf("expected 2 requests, got %d", totals["gateway.request.total"])
	}
	if totals["gateway.error.total"] != 1 {
		t.Errorf("expected 1 error, got %d", totals["gateway.error.total"])
	}
}

func TestGateway_SpanAndLogCorrelation(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "einvoice", &buf)
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, Config{Name: "nes"}, WithLogger(log))

	if _, err := g.Delete(context.Background(), "/einvoice/draft/1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != "gateway.delete" {
		t.Errorf("unexpected span name %q", spans[0].Name)
	}
	traceID := spans[0].SpanContext.TraceID().String()
	if !strings.Contains(buf.String(), `"trace_id":"`+traceID+`"`) {
		t.Errorf("log line should carry trace id %s:\n%s", traceID, buf.String())
	}
}
