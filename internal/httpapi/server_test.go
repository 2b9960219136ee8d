package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chatd/pkg/types"
)

type mockService struct {
	ready    bool
	genErr   error
	resp     types.GenerateResponse
	lastSID  string
	resetSID string
}

func (m *mockService) Generate(ctx context.Context, sessionID string, req types.GenerateRequest) (types.GenerateResponse, error) {
	m.lastSID = sessionID
	if m.genErr != nil {
		return types.GenerateResponse{}, m.genErr
	}
	return m.resp, nil
}

func (m *mockService) Reset(sessionID string) { m.resetSID = sessionID }

func (m *mockService) Ready() bool { return m.ready }

type mockHTTPError struct {
	msg  string
	code int
}

func (e mockHTTPError) Error() string   { return e.msg }
func (e mockHTTPError) StatusCode() int { return e.code }

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateOK(t *testing.T) {
	svc := &mockService{ready: true, resp: types.GenerateResponse{
		Response: "hi there",
		Conversation: []types.Turn{
			{Role: types.RoleUser, Content: "hi"},
			{Role: types.RoleAssistant, Content: "hi there"},
		},
		GenerationTime: 1.23,
	}}
	r := NewMux(svc)
	w := postJSON(r, "/generate", `{"prompt":"hi"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body types.GenerateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Response != "hi there" || len(body.Conversation) != 2 || body.GenerationTime != 1.23 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if svc.lastSID == "" {
		t.Fatalf("handler did not pass a session id")
	}
}

func TestGenerateIssuesSessionCookie(t *testing.T) {
	svc := &mockService{ready: true}
	r := NewMux(svc)
	w := postJSON(r, "/generate", `{"prompt":"hi"}`)
	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == sessionCookieName && c.Value != "" {
			found = true
			if !c.HttpOnly {
				t.Fatalf("session cookie should be HttpOnly")
			}
		}
	}
	if !found {
		t.Fatalf("no session cookie issued: %+v", cookies)
	}
}

func TestGenerateReusesExistingSession(t *testing.T) {
	svc := &mockService{ready: true}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate", bytes.NewBufferString(`{"prompt":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sid-123"})
	r.ServeHTTP(w, req)
	if svc.lastSID != "sid-123" {
		t.Fatalf("session id = %q", svc.lastSID)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			t.Fatalf("cookie should not be reissued for an existing session")
		}
	}
}

func TestGenerateBadJSON(t *testing.T) {
	r := NewMux(&mockService{ready: true})
	w := postJSON(r, "/generate", "not-json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestGenerateMissingPrompt(t *testing.T) {
	r := NewMux(&mockService{ready: true})
	w := postJSON(r, "/generate", `{"prompt":"   "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestGenerateWrongContentType(t *testing.T) {
	r := NewMux(&mockService{ready: true})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate", bytes.NewBufferString(`{"prompt":"hi"}`))
	req.Header.Set("Content-Type", "text/plain")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestGenerateHTTPErrorMapping(t *testing.T) {
	svc := &mockService{ready: false, genErr: mockHTTPError{msg: "Model is still initializing. Please try again in a moment.", code: http.StatusServiceUnavailable}}
	r := NewMux(svc)
	w := postJSON(r, "/generate", `{"prompt":"hi"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(body.Error, "still initializing") || body.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGenerateGenericErrorMaps500(t *testing.T) {
	svc := &mockService{ready: true, genErr: context.DeadlineExceeded}
	r := NewMux(svc)
	w := postJSON(r, "/generate", `{"prompt":"hi"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestResetHandler(t *testing.T) {
	svc := &mockService{}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reset", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sid-9"})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.ResetResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Message != "Conversation reset successfully." {
		t.Fatalf("message=%q", body.Message)
	}
	if svc.resetSID != "sid-9" {
		t.Fatalf("reset session id = %q", svc.resetSID)
	}
}

func TestModelStatusHandler(t *testing.T) {
	for _, ready := range []bool{false, true} {
		r := NewMux(&mockService{ready: ready})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/model-status", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d", w.Code)
		}
		var body types.StatusResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("json: %v", err)
		}
		if body.Initialized != ready {
			t.Fatalf("initialized=%v want %v", body.Initialized, ready)
		}
	}
}

func TestHealthz(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz(t *testing.T) {
	r := NewMux(&mockService{ready: true})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyzNotReady(t *testing.T) {
	r := NewMux(&mockService{ready: false})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "loading") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestIndexServesUI(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "chat-messages") {
		t.Fatalf("index.html not served: %q", w.Body.String()[:min(120, w.Body.Len())])
	}
}
