package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielrosehill/voicenote/internal/audio"
	"github.com/danielrosehill/voicenote/internal/config"
	"github.com/danielrosehill/voicenote/internal/quality"
	"github.com/danielrosehill/voicenote/internal/service"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "settings.json")
	settings := config.Settings{
		DefaultSavePath: filepath.Join(dir, "notes"),
		QualityPreset:   string(quality.DefaultPreset),
	}
	if err := settings.Save(settingsPath); err != nil {
		t.Fatalf("seeding settings: %v", err)
	}
	return New(service.New(settingsPath), "0").Handler()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestStatusEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodGet, "/api/status", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /api/status = %d, want 200", rr.Code)
	}

	var status service.Status
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatalf("decoding status: %v", err)
	}
	if status.State != audio.StateIdle {
		t.Errorf("state = %s, want %s", status.State, audio.StateIdle)
	}
	if status.QualityPreset != string(quality.DefaultPreset) {
		t.Errorf("quality_preset = %s, want %s", status.QualityPreset, quality.DefaultPreset)
	}
}

func TestStatusRejectsPost(t *testing.T) {
	h := newTestHandler(t)
	if rr := doRequest(t, h, http.MethodPost, "/api/status", ""); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /api/status = %d, want 405", rr.Code)
	}
}

func TestSaveWithoutRecordingConflicts(t *testing.T) {
	h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodPost, "/api/save", "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("POST /api/save from idle = %d, want 409", rr.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected an error message in the 409 body")
	}
}

func TestQualityListAndSwitch(t *testing.T) {
	h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodGet, "/api/quality", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /api/quality = %d, want 200", rr.Code)
	}
	var listing struct {
		Active   string            `json:"active"`
		Profiles []quality.Profile `json:"profiles"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decoding quality listing: %v", err)
	}
	if len(listing.Profiles) != 3 {
		t.Errorf("got %d profiles, want 3", len(listing.Profiles))
	}
	if listing.Active != string(quality.DefaultPreset) {
		t.Errorf("active = %s, want %s", listing.Active, quality.DefaultPreset)
	}

	rr = doRequest(t, h, http.MethodPost, "/api/quality", `{"preset":"maximum"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("POST /api/quality maximum = %d, want 200", rr.Code)
	}
	var status service.Status
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatalf("decoding status: %v", err)
	}
	if status.QualityPreset != string(quality.PresetMaximum) {
		t.Errorf("quality_preset = %s, want maximum", status.QualityPreset)
	}
}

func TestQualityRejectsUnknownPreset(t *testing.T) {
	h := newTestHandler(t)
	if rr := doRequest(t, h, http.MethodPost, "/api/quality", `{"preset":"cinema"}`); rr.Code != http.StatusBadRequest {
		t.Errorf("POST /api/quality cinema = %d, want 400", rr.Code)
	}
	if rr := doRequest(t, h, http.MethodPost, "/api/quality", `{broken`); rr.Code != http.StatusBadRequest {
		t.Errorf("POST /api/quality malformed = %d, want 400", rr.Code)
	}
}

func TestTransitionsRequirePost(t *testing.T) {
	h := newTestHandler(t)
	for _, path := range []string{"/api/start", "/api/pause", "/api/resume", "/api/stop", "/api/clear", "/api/save"} {
		if rr := doRequest(t, h, http.MethodGet, path, ""); rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("GET %s = %d, want 405", path, rr.Code)
		}
	}
}

func TestPauseWhileIdleIsNoOp(t *testing.T) {
	h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodPost, "/api/pause", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("POST /api/pause from idle = %d, want 200", rr.Code)
	}
	var status service.Status
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatalf("decoding status: %v", err)
	}
	if status.State != audio.StateIdle {
		t.Errorf("state after pause-while-idle = %s, want %s", status.State, audio.StateIdle)
	}
}

func TestSetDeviceRejectsBadIndex(t *testing.T) {
	h := newTestHandler(t)
	if rr := doRequest(t, h, http.MethodPost, "/api/device", `{"index":-5}`); rr.Code != http.StatusBadRequest {
		t.Errorf("POST /api/device index -5 = %d, want 400", rr.Code)
	}
}
