package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/voice-bridge/internal/assets"
	"github.com/nguyentantai21042004/voice-bridge/internal/auth"
	"github.com/nguyentantai21042004/voice-bridge/internal/history"
	"github.com/nguyentantai21042004/voice-bridge/internal/logger"
	"github.com/nguyentantai21042004/voice-bridge/internal/pipeline"
	"github.com/nguyentantai21042004/voice-bridge/internal/progress"
)

// stubOrchestrator mimics a completed or aborted run against the real
// history store and asset registry.
type stubOrchestrator struct {
	history  history.Store
	registry assets.Registry
	assetDir string
	fail     *pipeline.StageError
}

func (s *stubOrchestrator) Translate(ctx context.Context, req pipeline.TranslateRequest) (*pipeline.TranslateResult, error) {
	if s.fail != nil {
		return nil, s.fail
	}

	path := filepath.Join(s.assetDir, "out.mp3")
	if err := os.WriteFile(path, []byte("tts-bytes"), 0644); err != nil {
		return nil, err
	}
	assetID, err := s.registry.Put(path, "translated_audio.mp3", "audio/mpeg")
	if err != nil {
		return nil, err
	}
	if err := s.history.Append(ctx, req.Username, history.NewTranslation(req.SourceURL, "bonjour le monde")); err != nil {
		return nil, err
	}

	return &pipeline.TranslateResult{
		RunID:            "run-1",
		DetectedLanguage: "en",
		TranslatedText:   "bonjour le monde",
		AssetID:          assetID,
	}, nil
}

func (s *stubOrchestrator) Summarize(ctx context.Context, req pipeline.SummarizeRequest) (*pipeline.SummarizeResult, error) {
	if s.fail != nil {
		return nil, s.fail
	}

	path := filepath.Join(s.assetDir, "out.pdf")
	if err := os.WriteFile(path, []byte("pdf-bytes"), 0644); err != nil {
		return nil, err
	}
	assetID, err := s.registry.Put(path, "summary.pdf", "application/pdf")
	if err != nil {
		return nil, err
	}
	if err := s.history.Append(ctx, req.Username, history.NewSummary(req.SourceURL, "a summary")); err != nil {
		return nil, err
	}

	return &pipeline.SummarizeResult{RunID: "run-2", Summary: "a summary", AssetID: assetID}, nil
}

func (s *stubOrchestrator) SummarizeFile(ctx context.Context, req pipeline.SummarizeFileRequest) (*pipeline.SummarizeFileResult, error) {
	return nil, errors.New("not used in server tests")
}

type testEnv struct {
	ts   *httptest.Server
	orch *stubOrchestrator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	log := logger.New("error")

	authStore, err := auth.New(filepath.Join(root, "users.json"))
	if err != nil {
		t.Fatal(err)
	}
	sessions, err := auth.NewSessions("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	historyStore, err := history.New(filepath.Join(root, "history"))
	if err != nil {
		t.Fatal(err)
	}
	registry := assets.New(time.Minute, log)

	orch := &stubOrchestrator{
		history:  historyStore,
		registry: registry,
		assetDir: root,
	}

	handler := New(authStore, sessions, historyStore, orch, registry, progress.NewHub(), log)
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, orch: orch}
}

func (e *testEnv) post(t *testing.T, path string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req, err := http.NewRequest(http.MethodPost, e.ts.URL+path, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func (e *testEnv) get(t *testing.T, path string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, e.ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func (e *testEnv) loginAs(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	res := e.post(t, "/api/signup", signupRequest{Username: username, DisplayName: username, Password: password}, nil)
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("signup status = %d", res.StatusCode)
	}

	res = e.post(t, "/api/login", loginRequest{Username: username, Password: password}, nil)
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", res.StatusCode)
	}

	for _, c := range res.Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func decodeBody(t *testing.T, res *http.Response, v interface{}) {
	t.Helper()
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

func TestSignupDuplicate(t *testing.T) {
	e := newTestEnv(t)

	res := e.post(t, "/api/signup", signupRequest{Username: "alice", DisplayName: "Alice", Password: "pw"}, nil)
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("first signup status = %d", res.StatusCode)
	}

	res = e.post(t, "/api/signup", signupRequest{Username: "alice", DisplayName: "Other", Password: "pw2"}, nil)
	res.Body.Close()
	if res.StatusCode != http.StatusConflict {
		t.Errorf("duplicate signup status = %d, want 409", res.StatusCode)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	e := newTestEnv(t)
	e.loginAs(t, "alice", "pw")

	res := e.post(t, "/api/login", loginRequest{Username: "alice", Password: "wrong"}, nil)
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("login status = %d, want 401", res.StatusCode)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	e := newTestEnv(t)

	res := e.post(t, "/api/translate", translateRequest{VideoURL: "u", TargetLanguage: "fr"}, nil)
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("translate without session status = %d, want 401", res.StatusCode)
	}

	res = e.get(t, "/api/history", nil)
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("history without session status = %d, want 401", res.StatusCode)
	}
}

func TestTranslateFlow(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.loginAs(t, "alice", "pw")

	res := e.post(t, "/api/translate", translateRequest{
		VideoURL:       "https://example.com/v1",
		TargetLanguage: "fr",
	}, cookie)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("translate status = %d", res.StatusCode)
	}
	var tr translateResponse
	decodeBody(t, res, &tr)

	if tr.TranslatedText != "bonjour le monde" || tr.DetectedLanguage != "en" {
		t.Errorf("translate response = %+v", tr)
	}

	// The asset downloads exactly once.
	res = e.get(t, tr.DownloadURL, cookie)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("download status = %d", res.StatusCode)
	}
	if string(body) != "tts-bytes" {
		t.Errorf("download body = %q", body)
	}
	if got := res.Header.Get("Content-Disposition"); got != `attachment; filename="translated_audio.mp3"` {
		t.Errorf("Content-Disposition = %q", got)
	}

	res = e.get(t, tr.DownloadURL, cookie)
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("second download status = %d, want 404", res.StatusCode)
	}

	// History shows the run.
	res = e.get(t, "/api/history", cookie)
	var hist historyResponse
	decodeBody(t, res, &hist)
	if len(hist.Records) != 1 || hist.Records[0].TranslatedText != "bonjour le monde" {
		t.Errorf("history = %+v", hist.Records)
	}
}

func TestTranslateStageFailure(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.loginAs(t, "alice", "pw")
	e.orch.fail = &pipeline.StageError{
		Stage: "transcribe",
		Kind:  pipeline.KindTranscriptionAmbiguous,
		Err:   fmt.Errorf("no speech"),
	}

	res := e.post(t, "/api/translate", translateRequest{
		VideoURL:       "https://example.com/v1",
		TargetLanguage: "fr",
	}, cookie)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("translate status = %d, want 422", res.StatusCode)
	}
	var errRes errorResponse
	decodeBody(t, res, &errRes)
	if errRes.Kind != string(pipeline.KindTranscriptionAmbiguous) {
		t.Errorf("error kind = %q", errRes.Kind)
	}
	if errRes.Error == "" {
		t.Error("diagnostic message is empty")
	}

	// Aborted runs leave history untouched.
	res = e.get(t, "/api/history", cookie)
	var hist historyResponse
	decodeBody(t, res, &hist)
	if len(hist.Records) != 0 {
		t.Errorf("history = %+v after aborted run", hist.Records)
	}
}

func TestSummarizeFlow(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.loginAs(t, "bob", "pw")

	res := e.post(t, "/api/summarize", summarizeRequest{
		VideoURL:      "https://example.com/v2",
		SentenceCount: 2,
	}, cookie)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("summarize status = %d", res.StatusCode)
	}
	var sr summarizeResponse
	decodeBody(t, res, &sr)
	if sr.Summary != "a summary" {
		t.Errorf("summary = %q", sr.Summary)
	}

	res = e.get(t, "/api/history", cookie)
	var hist historyResponse
	decodeBody(t, res, &hist)
	if len(hist.Records) != 1 || hist.Records[0].Summary != "a summary" {
		t.Errorf("history = %+v", hist.Records)
	}
}
