package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"cvoptimizer/internal/config"
	"cvoptimizer/internal/errors"
	"cvoptimizer/internal/render"
	"cvoptimizer/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type fakeOptimizer struct {
	mu     sync.Mutex
	result string
	err    error
	gotCV  string
	gotJob string
	calls  int
}

func (f *fakeOptimizer) Optimize(_ context.Context, cvText, jobText string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotCV, f.gotJob = cvText, jobText
	return f.result, f.err
}

func (f *fakeOptimizer) Stats() map[string]any {
	return map[string]any{"provider": "fake", "healthy": true}
}

type fakeFetcher struct {
	text   string
	err    error
	gotURL string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.gotURL = url
	return f.text, f.err
}

type testEnv struct {
	server    *Server
	handler   http.Handler
	store     *storage.MemoryStore
	optimizer *fakeOptimizer
	fetcher   *fakeFetcher
	tempDir   string
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()

	cfg := config.Default()
	cfg.Uploads.TempDir = t.TempDir()
	for _, m := range mutate {
		m(cfg)
	}

	env := &testEnv{
		store:     storage.NewMemoryStore(),
		optimizer: &fakeOptimizer{result: "=== SVENSKA CV ===\nAnna\n=== ENGLISH CV ===\nAnna"},
		fetcher:   &fakeFetcher{},
		tempDir:   cfg.Uploads.TempDir,
	}
	logger := errors.NewLoggerWithWriter(io.Discard, slog.LevelError)
	env.server = NewServer(cfg, "test", Deps{
		Store:     env.store,
		Optimizer: env.optimizer,
		Fetcher:   env.fetcher,
		Registry:  render.NewRegistry(),
	}, logger)
	t.Cleanup(env.server.cleanupRateLimiter)
	env.handler = env.server.Handler()
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func (e *testEnv) postText(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "text/plain")
	return e.do(req)
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) seed(t *testing.T, cv, job string) {
	t.Helper()
	ctx := context.Background()
	if cv != "" {
		_, err := e.store.Save(ctx, storage.KindMasterCV, cv)
		require.NoError(t, err)
	}
	if job != "" {
		_, err := e.store.Save(ctx, storage.KindJobPosting, job)
		require.NoError(t, err)
	}
}

func (e *testEnv) storedJob(t *testing.T) string {
	t.Helper()
	text, err := e.store.Get(context.Background(), storage.KindJobPosting)
	require.NoError(t, err)
	return text
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func assertDetail(t *testing.T, rec *httptest.ResponseRecorder, status int, detail string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	assert.Equal(t, detail, decode(t, rec)["detail"])
}

func multipartUpload(t *testing.T, filename, contentType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/cv/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestRootAndHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"CV Optimizer API is running!"}`, rec.Body.String())

	rec = env.get("/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)

	body := decode(t, env.get("/stats"))
	assert.Equal(t, "test", body["version"])
	assert.Equal(t, map[string]any{"enabled": false}, body["rate_limiting"])
	assert.Equal(t, "fake", body["optimizer"].(map[string]any)["provider"])
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	assertDetail(t, env.get("/api/cv/saknas"), http.StatusNotFound, "Not Found")
	assert.Equal(t, http.StatusMethodNotAllowed, env.get("/api/cv/optimize").Code)
}

func TestRequestID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/health")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	assert.Equal(t, "abc-123", env.do(req).Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/cv/optimize", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "content-type")
		rec := env.do(req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "content-type", rec.Header().Get("Access-Control-Allow-Headers"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("preflight from other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/cv/optimize", nil)
		req.Header.Set("Origin", "http://evil.example")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := env.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("simple request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := env.do(req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestUpload(t *testing.T) {
	var doc bytes.Buffer
	require.NoError(t, render.DOCX(&doc, "Anna Andersson\nERFARENHET:\n- Go och PostgreSQL"))

	t.Run("docx", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(multipartUpload(t, "cv.docx", docxContentType, doc.Bytes()))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		want := "Anna Andersson\nERFARENHET:\nGo och PostgreSQL"
		body := decode(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "cv.docx", body["filename"])
		assert.Equal(t, want, body["text"])
		assert.EqualValues(t, len([]rune(want)), body["length"])
		assert.Equal(t, "memory://master_cv", body["saved_to"])

		stored, err := env.store.Get(context.Background(), storage.KindMasterCV)
		require.NoError(t, err)
		assert.Equal(t, want, stored)

		leftovers, err := filepath.Glob(filepath.Join(env.tempDir, uploadTempPrefix+"*"))
		require.NoError(t, err)
		assert.Empty(t, leftovers)
	})

	t.Run("missing content type is accepted", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(multipartUpload(t, "cv.docx", "", doc.Bytes()))
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("no file", func(t *testing.T) {
		env := newTestEnv(t)
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("other", "x"))
		require.NoError(t, mw.Close())
		req := httptest.NewRequest(http.MethodPost, "/api/cv/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		assertDetail(t, env.do(req), http.StatusBadRequest, "Ingen fil vald")
	})

	t.Run("unsupported content type", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(multipartUpload(t, "cv.txt", "text/plain", []byte("Anna")))
		assertDetail(t, rec, http.StatusBadRequest, "Filtypen text/plain stöds inte. Använd PDF eller DOCX.")
	})

	t.Run("unreadable pdf", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(multipartUpload(t, "cv.pdf", "application/pdf", []byte("inte en pdf")))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.True(t, strings.HasPrefix(decode(t, rec)["detail"].(string), "Kunde inte läsa PDF: "))

		leftovers, err := filepath.Glob(filepath.Join(env.tempDir, uploadTempPrefix+"*"))
		require.NoError(t, err)
		assert.Empty(t, leftovers)
	})
}

func TestSubmitJobPosting(t *testing.T) {
	t.Run("neither text nor url", func(t *testing.T) {
		env := newTestEnv(t)
		assertDetail(t, env.postJSON("/api/cv/job-posting", `{}`), http.StatusBadRequest, "Antingen text eller url måste anges")
		assert.Empty(t, env.storedJob(t))
	})

	t.Run("both text and url", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.postJSON("/api/cv/job-posting", `{"text":"a","url":"https://example.com"}`)
		assertDetail(t, rec, http.StatusBadRequest, "Ange endast text ELLER url, inte båda")
		assert.Empty(t, env.fetcher.gotURL)
		assert.Empty(t, env.storedJob(t))
	})

	t.Run("rejected request keeps the stored posting", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, "", "Tidigare annons")
		rec := env.postJSON("/api/cv/job-posting", `{"text":"ny","url":"https://example.com"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Tidigare annons", env.storedJob(t))
	})

	t.Run("text", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.postJSON("/api/cv/job-posting", `{"text":"Vi söker en Go-utvecklare"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"text":"Vi söker en Go-utvecklare","length":25,"saved_to":"memory://job_posting"}`, rec.Body.String())
	})

	t.Run("url", func(t *testing.T) {
		env := newTestEnv(t)
		env.fetcher.text = "Backendutvecklare\nGo"
		rec := env.postJSON("/api/cv/job-posting", `{"url":"https://example.com/jobb/1"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://example.com/jobb/1", env.fetcher.gotURL)

		stored, err := env.store.Get(context.Background(), storage.KindJobPosting)
		require.NoError(t, err)
		assert.Equal(t, "Backendutvecklare\nGo", stored)
	})

	t.Run("url fetch failure", func(t *testing.T) {
		env := newTestEnv(t)
		env.fetcher.err = errors.NewNetworkError(errors.ErrCodeScrapeFailed,
			"Kunde inte hämta jobbannons från URL", fmt.Errorf("status 503"))
		rec := env.postJSON("/api/cv/job-posting", `{"url":"https://example.com/jobb/1"}`)
		assertDetail(t, rec, http.StatusInternalServerError, "Kunde inte hämta jobbannons från URL: status 503")
	})

	t.Run("invalid json", func(t *testing.T) {
		env := newTestEnv(t)
		assert.Equal(t, http.StatusBadRequest, env.postJSON("/api/cv/job-posting", `{"text":`).Code)
	})
}

func TestRawEndpoints(t *testing.T) {
	env := newTestEnv(t)

	assertDetail(t, env.postText("/api/cv/job-posting-raw", "  \n "), http.StatusBadRequest, "Jobbannonsen är tom")
	assertDetail(t, env.postText("/api/cv/job-posting-raw", "Vi använder cookies"), http.StatusBadRequest,
		"Jobbannonsen ser ut att vara cookie-text. Klistra in annonsen som text.")
	assertDetail(t, env.postText("/api/cv/master-cv-raw", ""), http.StatusBadRequest, "CV-texten är tom")

	rec := env.postText("/api/cv/job-posting-raw", "  Söker Go-utvecklare \n")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"length":19,"saved_to":"memory://job_posting"}`, rec.Body.String())

	rec = env.postText("/api/cv/master-cv-raw", "Åsa Öberg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"length":9,"saved_to":"memory://master_cv"}`, rec.Body.String())
}

func TestGetStored(t *testing.T) {
	env := newTestEnv(t)

	assertDetail(t, env.get("/api/cv/master-cv"), http.StatusNotFound, "Inget master CV hittades")
	assertDetail(t, env.get("/api/cv/job-posting"), http.StatusNotFound, "Ingen jobbannons hittades")

	env.seed(t, "Åsa Öberg", "Go")

	rec := env.get("/api/cv/master-cv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"Åsa Öberg","length":9}`, rec.Body.String())

	rec = env.get("/api/cv/job-posting")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"Go","length":2}`, rec.Body.String())
}

func TestKeywords(t *testing.T) {
	t.Run("missing inputs", func(t *testing.T) {
		env := newTestEnv(t)
		assertDetail(t, env.postJSON("/api/cv/keywords", `{"job_text":"python"}`), http.StatusBadRequest, "Saknar jobbannons eller CV")
	})

	t.Run("request texts", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.postJSON("/api/cv/keywords", `{
			"job_text": "Python Python Java backend backend backend",
			"cv_text": "Java backend experience",
			"top_n": 3
		}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"job_keywords": ["backend", "python", "java"],
			"cv_keywords": ["java", "backend", "experience"],
			"matched": ["backend", "java"],
			"missing": ["python"]
		}`, rec.Body.String())
	})

	t.Run("stored fallback", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, "Kubernetes Docker", "Kubernetes Terraform")
		rec := env.postJSON("/api/cv/keywords", `{}`)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, []any{"kubernetes"}, body["matched"])
		assert.Equal(t, []any{"terraform"}, body["missing"])
	})
}

func TestOptimize(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		env := newTestEnv(t)
		env.optimizer.result = "=== SVENSKA CV ===\nÅsa"
		rec := env.postJSON("/api/cv/optimize", `{"job_text":" Go-utvecklare ","cv_text":"Åsa Öberg"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"optimized_cv":"=== SVENSKA CV ===\nÅsa","length":22}`, rec.Body.String())
		assert.Equal(t, "Go-utvecklare", env.optimizer.gotJob)
		assert.Equal(t, "Åsa Öberg", env.optimizer.gotCV)
	})

	t.Run("placeholder fields fall back to storage", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, "Lagrat CV", "Lagrad annons")
		rec := env.postJSON("/api/cv/optimize", `{"job_text":"string","cv_text":"  "}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Lagrad annons", env.optimizer.gotJob)
		assert.Equal(t, "Lagrat CV", env.optimizer.gotCV)
	})

	t.Run("missing inputs", func(t *testing.T) {
		env := newTestEnv(t)
		assertDetail(t, env.postJSON("/api/cv/optimize", `{"cv_text":"Anna"}`), http.StatusBadRequest, "Saknar jobbannons eller CV")
		assert.Zero(t, env.optimizer.calls)
	})

	t.Run("cookie job text", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.postJSON("/api/cv/optimize-pdf", `{"job_text":"Vi använder kakor","cv_text":"Anna"}`)
		assertDetail(t, rec, http.StatusBadRequest, "Jobbannonsen ser ut att vara cookie-text. Klistra in annonsen som text.")
		assert.Zero(t, env.optimizer.calls)
	})

	t.Run("llm failure", func(t *testing.T) {
		env := newTestEnv(t)
		env.optimizer.err = errors.NewAIError(errors.ErrCodeAIServiceFailed, "Kunde inte optimera CV", fmt.Errorf("connection refused"))
		rec := env.postJSON("/api/cv/optimize", `{"job_text":"Go","cv_text":"Anna"}`)
		assertDetail(t, rec, http.StatusInternalServerError, "Kunde inte optimera CV: connection refused")
	})

	t.Run("docx", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.postJSON("/api/cv/optimize-docx", `{"job_text":"Go","cv_text":"Anna"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, docxContentType, rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="optimized_cv.docx"`, rec.Header().Get("Content-Disposition"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
	})

	t.Run("pdf", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.postJSON("/api/cv/optimize-pdf", `{"job_text":"Go","cv_text":"Anna"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="optimized_cv.pdf"`, rec.Header().Get("Content-Disposition"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
	})
}

func TestAuthentication(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Server.APIKeys = []string{"hemlig-nyckel-123"}
	})

	assert.Equal(t, http.StatusOK, env.get("/health").Code)

	rec := env.get("/api/cv/master-cv")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_API_KEY", decode(t, rec)["error"])

	req := httptest.NewRequest(http.MethodGet, "/api/cv/master-cv", nil)
	req.Header.Set("X-API-Key", "fel")
	assert.Equal(t, http.StatusUnauthorized, env.do(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/cv/master-cv", nil)
	req.Header.Set("X-API-Key", "hemlig-nyckel-123")
	assert.Equal(t, http.StatusNotFound, env.do(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/cv/master-cv", nil)
	req.Header.Set("Authorization", "Bearer hemlig-nyckel-123")
	assert.Equal(t, http.StatusNotFound, env.do(req).Code)
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Server.RateLimit.Enabled = true
		cfg.Server.RateLimit.RequestsPerMin = 1
		cfg.Server.RateLimit.BurstCapacity = 1
		cfg.Server.RateLimit.ByIP = true
	})

	assert.Equal(t, http.StatusNotFound, env.get("/api/cv/master-cv").Code)

	rec := env.get("/api/cv/master-cv")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, errors.ErrCodeRateLimitExceeded, decode(t, rec)["error"])

	// Unprotected routes are not limited
	assert.Equal(t, http.StatusOK, env.get("/health").Code)

	stats := decode(t, env.get("/stats"))["rate_limiting"].(map[string]any)
	assert.Equal(t, true, stats["enabled"])
	assert.EqualValues(t, 1, stats["active_limiters"])
}

func TestRequestSizeLimit(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Server.MaxRequestSize = 16
	})

	rec := env.postText("/api/cv/master-cv-raw", strings.Repeat("a", 64))
	assertDetail(t, rec, http.StatusBadRequest, "Förfrågan är för stor (max 16 byte)")
}

func TestSweepUploads(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	stale := filepath.Join(dir, uploadTempPrefix+"old.pdf")
	fresh := filepath.Join(dir, uploadTempPrefix+"new.docx")
	other := filepath.Join(dir, "annat.pdf")
	for _, path := range []string{stale, fresh, other} {
		require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	}
	require.NoError(t, os.Chtimes(stale, now.Add(-2*time.Hour), now.Add(-2*time.Hour)))
	require.NoError(t, os.Chtimes(other, now.Add(-2*time.Hour), now.Add(-2*time.Hour)))

	removed, err := sweepUploads(dir, time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.FileExists(t, other)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	assert.Equal(t, "10.0.0.1", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "nonsense, 192.0.2.7, 10.0.0.2")
	assert.Equal(t, "192.0.2.7", getClientIP(req))
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("kort"))
	assert.Equal(t, "abcdefgh****", maskAPIKey("abcdefghijk"))
}
