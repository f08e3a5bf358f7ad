package cedict

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDictionaryExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cedict_ts.u8")
	content := "# CC-CEDICT\n你好 你好 [ni3 hao3] /hello/\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	// An existing file must short-circuit; no network is touched.
	if err := EnsureDictionary(context.Background(), path); err != nil {
		t.Fatalf("EnsureDictionary with existing file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != content {
		t.Errorf("existing dictionary was modified: %q", data)
	}
}

func TestDownloadAndExtract(t *testing.T) {
	const body = "你好 你好 [ni3 hao3] /hello/\n人 人 [ren2] /person/\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gz := gzip.NewWriter(w)
		if _, err := gz.Write([]byte(body)); err != nil {
			t.Errorf("write gzip body: %v", err)
		}
		gz.Close()
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "cedict_ts.u8")
	if err := downloadAndExtract(context.Background(), srv.URL, dest); err != nil {
		t.Fatalf("downloadAndExtract: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read extracted dictionary: %v", err)
	}
	if string(data) != body {
		t.Errorf("extracted dictionary = %q; want %q", data, body)
	}
}

func TestDownloadAndExtractBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "cedict_ts.u8")
	if err := downloadAndExtract(context.Background(), srv.URL, dest); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("destination must not exist after a failed download")
	}
}
