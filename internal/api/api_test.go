package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/harulab/AibouCheck/internal/engine"
	"github.com/harulab/AibouCheck/internal/models"
	"github.com/harulab/AibouCheck/internal/store"
)

func newTestServer(opts ...Option) (*Server, *store.InMemoryStore) {
	st := store.NewInMemoryStore()
	return NewServer(engine.New(), st, opts...), st
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %q, want ok status", rec.Body.String())
	}
}

func TestReplyPreview(t *testing.T) {
	s, _ := newTestServer()
	body := `{"tone":"cool_girl","answers":{"play_time":"300分","condition":"頭痛がする","sleep":"まあまあ","mood":"イライラする"}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/reply", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp replyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !strings.Contains(resp.Reply, "📊") {
		t.Errorf("reply = %q, want composed reply", resp.Reply)
	}
}

func TestReplyPreviewBadBody(t *testing.T) {
	s, _ := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/reply", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCheckHistory(t *testing.T) {
	s, st := newTestServer()
	if err := st.AddCheckRecord(models.CheckRecord{ID: "r1", UserID: "u1", Reply: "ok"}); err != nil {
		t.Fatalf("AddCheckRecord error: %v", err)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/users/u1/checks", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var records []models.CheckRecord
	if err := json.NewDecoder(rec.Body).Decode(&records); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(records) != 1 || records[0].ID != "r1" {
		t.Errorf("records = %+v, want the stored record", records)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/users/nobody/checks", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for unknown user", rec.Code)
	}
	if !strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "[") {
		t.Errorf("body = %q, want empty JSON array", rec.Body.String())
	}
}

func TestTwilioWebhook(t *testing.T) {
	var got models.Response
	s, _ := newTestServer(WithResponseInjector(func(resp models.Response) { got = resp }))

	form := url.Values{"From": {"+81 90-1234-5678"}, "Body": {"体調チェック"}}
	req := httptest.NewRequest(http.MethodPost, "/webhook/twilio", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got.From != "+81 90-1234-5678" || got.Body != "体調チェック" {
		t.Errorf("injected response = %+v", got)
	}
}

func TestTwilioWebhookMissingFields(t *testing.T) {
	s, _ := newTestServer(WithResponseInjector(func(models.Response) {}))
	form := url.Values{"From": {"+819012345678"}}
	req := httptest.NewRequest(http.MethodPost, "/webhook/twilio", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// Without an injector the webhook route is not mounted at all.
func TestTwilioWebhookNotMountedWithoutInjector(t *testing.T) {
	s, _ := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/webhook/twilio", strings.NewReader(""))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
