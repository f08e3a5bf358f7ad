package cedict

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// DownloadURL is the MDBG release of CC-CEDICT, gzipped UTF-8 text.
const DownloadURL = "https://www.mdbg.net/chinese/export/cedict/cedict_1_0_ts_utf-8_mdbg.txt.gz"

// EnsureDictionary checks if the dictionary exists at path.
// If not, it downloads the current MDBG release and decompresses it there.
func EnsureDictionary(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	logrus.WithField("path", path).Info("dictionary not found, downloading CC-CEDICT")
	return downloadAndExtract(ctx, DownloadURL, path)
}

func downloadAndExtract(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "hanzideck-cli")

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %s", resp.Status)
	}

	gzReader, err := gzip.NewReader(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzReader.Close()

	// Write to a temp file first so a partial download never shadows a
	// valid dictionary on the next run.
	tmp, err := os.CreateTemp("", "cedict-*.txt")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, gzReader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write dictionary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), destPath); err != nil {
		// Rename can fail across filesystems; fall back to a copy.
		data, readErr := os.ReadFile(tmp.Name())
		if readErr != nil {
			return err
		}
		return os.WriteFile(destPath, data, 0o644)
	}
	return nil
}
