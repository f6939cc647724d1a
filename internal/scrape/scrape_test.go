package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cvoptimizer/internal/config"
	"cvoptimizer/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<html>
<head><title>Backendutvecklare</title><style>body { color: red; }</style></head>
<body>
  <script>var tracking = "nope";</script>
  <h1>  Backendutvecklare Go  </h1>
  <p>Vi söker dig som kan Go.  Du gillar PostgreSQL.</p>
  <noscript>Aktivera JavaScript</noscript>
  <ul>
    <li>Kubernetes</li>
    <li>   </li>
  </ul>
</body>
</html>`

func testConfig() config.ScrapeConfig {
	return config.ScrapeConfig{
		Timeout:   5 * time.Second,
		UserAgent: "cvoptimizer-test",
		Browser:   config.BrowserConfig{Timeout: time.Second},
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \n\t\n  ", ""},
		{"trims lines", "  a  \n b ", "a\nb"},
		{"splits double spaces", "one  two   three", "one\ntwo\nthree"},
		{"keeps single spaces", "en mening här", "en mening här"},
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestHTMLToText(t *testing.T) {
	text, err := HTMLToText(postingHTML)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"Backendutvecklare",
		"Backendutvecklare Go",
		"Vi söker dig som kan Go.",
		"Du gillar PostgreSQL.",
		"Kubernetes",
	}, "\n"), text)
	assert.NotContains(t, text, "tracking")
	assert.NotContains(t, text, "color")
	assert.NotContains(t, text, "JavaScript")
}

func TestFetch(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer srv.Close()

	text, err := New(testConfig()).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "Vi söker dig som kan Go.")
	assert.Equal(t, "cvoptimizer-test", gotAgent)
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	tests := []struct {
		name string
		url  string
	}{
		{"non-2xx status", srv.URL},
		{"invalid url", "not a url"},
		{"missing scheme", "example.com/job"},
		{"unreachable host", "http://127.0.0.1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(testConfig()).Fetch(context.Background(), tt.url)
			require.Error(t, err)

			appErr, ok := errors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrorTypeNetwork, appErr.Type)
			assert.True(t, strings.HasPrefix(appErr.Detail(), ErrorPrefix), appErr.Detail())
		})
	}
}

func TestFetchBrowserFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="app"></div><script>render()</script></body></html>`))
	}))
	defer srv.Close()

	t.Run("disabled returns empty text", func(t *testing.T) {
		f := New(testConfig())
		f.render = func(context.Context, string) (string, error) {
			t.Fatal("browser must not be used when disabled")
			return "", nil
		}

		text, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("enabled renders the page", func(t *testing.T) {
		cfg := testConfig()
		cfg.Browser.Enabled = true
		f := New(cfg)

		var rendered string
		f.render = func(_ context.Context, pageURL string) (string, error) {
			rendered = pageURL
			return `<html><body><div id="app">Renderad annons</div></body></html>`, nil
		}

		text, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "Renderad annons", text)
		assert.Equal(t, srv.URL, rendered)
	})
}
