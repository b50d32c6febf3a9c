package ollama

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestServer answers /api/chat with content and records the request
func newTestServer(t *testing.T, content string, got *map[string]any) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.WriteHeader(http.StatusOK)
		case "/api/chat":
			if got != nil {
				if err := json.NewDecoder(r.Body).Decode(got); err != nil {
					t.Errorf("Failed to decode request: %v", err)
				}
			}
			w.Header().Set("Content-Type", "application/x-ndjson")
			resp := map[string]any{
				"model":   "test",
				"message": map[string]string{"role": "assistant", "content": content},
				"done":    true,
			}
			_ = json.NewEncoder(w).Encode(resp)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestNewClient(t *testing.T) {
	if _, err := NewClient("http://localhost:11434/api/chat"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if _, err := NewClient("ftp://example.com"); err == nil {
		t.Error("Expected error for unsupported scheme")
	}
	if _, err := NewClient(""); err != nil {
		t.Errorf("Expected default URL to be accepted: %v", err)
	}
}

func TestPing(t *testing.T) {
	srv := newTestServer(t, "", nil)
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}

	srv.Close()
	if err := c.Ping(context.Background()); err == nil {
		t.Error("Expected Ping to fail against a closed server")
	}
}

func TestDetectExpressions(t *testing.T) {
	var req map[string]any
	srv := newTestServer(t, `{"faces":[{"box":{"x":0.2,"y":0.1,"w":0.4,"h":0.5},"expressions":{"happy":0.1,"neutral":0.2,"surprised":0.75}}]}`, &req)
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	img := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))
	report, err := c.DetectExpressions(context.Background(), "llava", "describe", img)
	if err != nil {
		t.Fatalf("DetectExpressions failed: %v", err)
	}
	if len(report.Faces) != 1 || report.Faces[0].Expressions["surprised"] != 0.75 {
		t.Errorf("Unexpected report: %+v", report)
	}

	if req["model"] != "llava" {
		t.Errorf("Expected model llava, got %v", req["model"])
	}
	if req["stream"] != false {
		t.Errorf("Expected non-streaming request, got %v", req["stream"])
	}
}

func TestDetectExpressionsNonJSON(t *testing.T) {
	srv := newTestServer(t, "I see a person smiling.", nil)
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	report, err := c.DetectExpressions(context.Background(), "llava", "describe", "")
	if err != nil {
		t.Fatalf("DetectExpressions failed: %v", err)
	}
	if len(report.Faces) != 0 {
		t.Errorf("Expected empty report, got %+v", report)
	}
}

func TestSimpleQuery(t *testing.T) {
	srv := newTestServer(t, "A cat on a sofa.", nil)
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	got, err := c.SimpleQuery(context.Background(), "llava", "what is this?", "")
	if err != nil {
		t.Fatalf("SimpleQuery failed: %v", err)
	}
	if got != "A cat on a sofa." {
		t.Errorf("SimpleQuery() = %q", got)
	}

	if _, err := c.SimpleQuery(context.Background(), "llava", "what?", "not base64!"); err == nil {
		t.Error("Expected error for invalid base64 image")
	}
}
