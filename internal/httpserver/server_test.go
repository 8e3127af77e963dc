// ABOUTME: Tests for the studio HTTP API
// ABOUTME: Exercises profile CRUD, generation, and export over httptest
package httpserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/VoiceForge-Studio/voiceforge-go/internal/config"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/eventlog"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/metrics"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/playback"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/profile"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/studio"
	"github.com/VoiceForge-Studio/voiceforge-go/internal/tts"
	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/output"
	"github.com/VoiceForge-Studio/voiceforge-go/pkg/audio/spectrum"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSynth struct {
	payload string
	err     error
}

func (s *stubSynth) Synthesize(ctx context.Context, script string, p *profile.Profile) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.payload, nil
}

func newTestServer(t *testing.T) (*Server, *stubSynth) {
	t.Helper()

	store, err := profile.NewStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	raw := make([]byte, 2400*2)
	synth := &stubSynth{payload: base64.StdEncoding.EncodeToString(raw)}

	cfg := config.Default()
	reg := prometheus.NewRegistry()
	controller := playback.New(output.NewNull(), spectrum.NewTap(cfg.Bars))
	st := studio.New(cfg, synth, store, controller, eventlog.New(io.Discard), metrics.New(reg))
	t.Cleanup(st.Close)

	return New(st, reg), synth
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func createProfile(t *testing.T, srv *Server, name string) profile.Profile {
	t.Helper()

	w := doJSON(t, srv, http.MethodPost, "/api/v1/profiles", gin.H{
		"name":        name,
		"description": "a test voice",
		"vibe":        "Friendly",
		"settings":    profile.DefaultSettings(),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", w.Code, w.Body.String())
	}

	var p profile.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("bad create response: %v", err)
	}
	return p
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz returned %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestProfileCRUD(t *testing.T) {
	srv, _ := newTestServer(t)

	p := createProfile(t, srv, "Narrator")
	if p.ID == "" {
		t.Fatal("created profile has no ID")
	}

	w := doJSON(t, srv, http.MethodGet, "/api/v1/profiles/"+p.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get returned %d", w.Code)
	}

	p.Name = "Deep Narrator"
	w = doJSON(t, srv, http.MethodPut, "/api/v1/profiles/"+p.ID, p)
	if w.Code != http.StatusOK {
		t.Fatalf("update returned %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, srv, http.MethodGet, "/api/v1/profiles", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list returned %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Deep Narrator") {
		t.Errorf("list missing updated profile: %s", w.Body.String())
	}

	w = doJSON(t, srv, http.MethodDelete, "/api/v1/profiles/"+p.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete returned %d", w.Code)
	}

	w = doJSON(t, srv, http.MethodGet, "/api/v1/profiles/"+p.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete returned %d, want 404", w.Code)
	}
}

func TestProfileValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/profiles", gin.H{"name": ""})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty name returned %d, want 400", w.Code)
	}
}

func TestGenerateAndExport(t *testing.T) {
	srv, _ := newTestServer(t)

	p := createProfile(t, srv, "Narrator")
	w := doJSON(t, srv, http.MethodPost, "/api/v1/profiles/"+p.ID+"/activate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("activate returned %d", w.Code)
	}

	w = doJSON(t, srv, http.MethodPost, "/api/v1/generate", gin.H{"script": "Hello world."})
	if w.Code != http.StatusOK {
		t.Fatalf("generate returned %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"frames":2400`) {
		t.Errorf("unexpected generate response: %s", w.Body.String())
	}

	w = doJSON(t, srv, http.MethodGet, "/api/v1/export/wav", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export returned %d: %s", w.Code, w.Body.String())
	}
	if got := w.Body.Len(); got != 44+2400*2 {
		t.Errorf("export size = %d, want %d", got, 44+2400*2)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Narrator_") || !strings.Contains(cd, ".wav") {
		t.Errorf("content disposition = %q", cd)
	}
}

func TestGenerateSafetyBlocked(t *testing.T) {
	srv, synth := newTestServer(t)

	p := createProfile(t, srv, "Narrator")
	doJSON(t, srv, http.MethodPost, "/api/v1/profiles/"+p.ID+"/activate", nil)

	synth.err = tts.ErrSafetyBlocked
	w := doJSON(t, srv, http.MethodPost, "/api/v1/generate", gin.H{"script": "blocked script"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("safety-blocked generate returned %d, want 422", w.Code)
	}
}

func TestGenerateWithoutProfile(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/generate", gin.H{"script": "Hello."})
	if w.Code != http.StatusBadGateway {
		t.Errorf("generate returned %d, want 502", w.Code)
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	srv, _ := newTestServer(t)

	p := createProfile(t, srv, "Narrator")
	doJSON(t, srv, http.MethodPost, "/api/v1/profiles/"+p.ID+"/activate", nil)
	doJSON(t, srv, http.MethodPost, "/api/v1/generate", gin.H{"script": "Hello."})

	w := doJSON(t, srv, http.MethodGet, "/api/v1/export/mp3", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("mp3 export returned %d, want 422", w.Code)
	}

	w = doJSON(t, srv, http.MethodGet, "/api/v1/export/aiff", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown format returned %d, want 400", w.Code)
	}
}

func TestExportWithoutAudio(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/v1/export/wav", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("export returned %d, want 409", w.Code)
	}
}

func TestPlaybackEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	p := createProfile(t, srv, "Narrator")
	doJSON(t, srv, http.MethodPost, "/api/v1/profiles/"+p.ID+"/activate", nil)
	doJSON(t, srv, http.MethodPost, "/api/v1/generate", gin.H{"script": "Hello."})

	w := doJSON(t, srv, http.MethodPost, "/api/v1/playback/stop", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stop returned %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "loaded") {
		t.Errorf("stop while loaded: %s", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics returned %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "voiceforge_") {
		t.Errorf("metrics body missing studio counters")
	}
}
