package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamdem/biogate/internal/fallback"
	"github.com/kamdem/biogate/internal/fuse"
	"github.com/kamdem/biogate/internal/identity"
	"github.com/kamdem/biogate/internal/recommend"
	"github.com/kamdem/biogate/internal/transaction"
	"github.com/kamdem/biogate/internal/verify"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"loic normal.jpg", "loic.dat.wav", "roxane.wav"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("sample"), 0o644); err != nil {
			t.Fatalf("failed to write sample: %v", err)
		}
	}

	reg := identity.NewRegistry([]string{"loic", "christine", "irene"}, nil)
	face := verify.NewFallbackVerifier(verify.Face,
		fallback.NewTable(map[string]string{"loic normal.jpg": "loic"}, reg), verify.OSResources{})
	voice := verify.NewFallbackVerifier(verify.Voice,
		fallback.NewTable(map[string]string{"loic.dat.wav": "loic"}, reg), verify.OSResources{})

	o := transaction.New(face, voice, recommend.NewRandom(recommend.StaticCategories{"Books"}))
	return NewServer(o, "127.0.0.1", 0), dir
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestVerify_Accepted(t *testing.T) {
	s, dir := testServer(t)

	body := `{"face_path":` + jsonString(filepath.Join(dir, "loic normal.jpg")) +
		`,"voice_path":` + jsonString(filepath.Join(dir, "loic.dat.wav")) + `}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report transaction.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to parse report: %v", err)
	}
	if !report.Outcome.Accepted || report.Outcome.Identity != identity.Identity("loic") {
		t.Errorf("expected accepted loic, got %+v", report.Outcome)
	}
	if report.Recommendation == nil {
		t.Error("expected a recommendation")
	}
}

func TestVerify_RejectedIsStill200(t *testing.T) {
	s, dir := testServer(t)

	body := `{"face_path":` + jsonString(filepath.Join(dir, "loic normal.jpg")) +
		`,"voice_path":` + jsonString(filepath.Join(dir, "roxane.wav")) + `}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var report transaction.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to parse report: %v", err)
	}
	if report.Outcome.Accepted {
		t.Error("expected rejection")
	}
	if report.Outcome.Reason != fuse.ReasonVoiceFailed {
		t.Errorf("expected VOICE_FAILED, got %s", report.Outcome.Reason)
	}
}

func TestVerify_BadRequest(t *testing.T) {
	s, _ := testServer(t)

	for _, body := range []string{`not json`, `{}`, `{"face_path":"x"}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/verify", strings.NewReader(body))
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
