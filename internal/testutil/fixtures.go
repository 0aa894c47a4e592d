// Package testutil provides test helper utilities for byetax tests.
package testutil

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/byetax/byetax/internal/config"
	"github.com/byetax/byetax/internal/demo"
	"github.com/byetax/byetax/internal/session"
)

// PDFHeader is the smallest content the upload path accepts as a PDF.
const PDFHeader = "%PDF-1.4\n"

// Backend starts the demo backend on an httptest server and returns it with
// its base URL. The server is closed when the test finishes.
func Backend(t *testing.T) (*demo.Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := demo.NewServer(nil)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return s, ts.URL
}

// TempFiles creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
func TempFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// WritePDF writes a minimal PDF named name into a temp dir and returns its path.
func WritePDF(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(TempFiles(t, map[string]string{name: PDFHeader}), name)
}

// Store opens a session store in a temp dir.
func Store(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.NewStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("opening session store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// Config returns a config pointed at apiURL with fast UI timings, exports
// going to a temp dir, and desktop notifications off.
func Config(t *testing.T, apiURL string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.API.BaseURL = apiURL
	cfg.UI.ToastMs = 1
	cfg.UI.ToastFadeMs = 1
	cfg.UI.ShareCloseDelayMs = 1
	cfg.Export.Dir = t.TempDir()
	cfg.Export.Notify = false
	return cfg
}

// Home points BYETAX_HOME at a fresh temp dir whose config talks to apiURL,
// and returns the dir.
func Home(t *testing.T, apiURL string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvAPIURL, apiURL)
	t.Setenv(config.EnvShareURL, "")
	if err := config.WriteConfig(home, Config(t, apiURL)); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return home
}
