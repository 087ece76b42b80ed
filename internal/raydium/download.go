package raydium

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// DefaultURL is the Raydium mainnet liquidity list.
const DefaultURL = "https://api.raydium.io/v2/sdk/liquidity/mainnet.json"

// Downloader fetches the liquidity list to a local file.
type Downloader struct {
	client *http.Client
	url    string
	log    *zap.Logger
}

// NewDownloader creates a downloader for url. A nil client uses a client
// with a 5 minute timeout; the list is several hundred megabytes.
func NewDownloader(client *http.Client, url string, log *zap.Logger) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	if url == "" {
		url = DefaultURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Downloader{client: client, url: url, log: log}
}

// Download writes the list to path. An existing file is kept unless update
// is set. Reports whether a download took place.
func (d *Downloader) Download(ctx context.Context, path string, update bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !update {
		d.log.Warn("file already exists, skipping download", zap.String("path", path))
		return false, nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	d.log.Info("downloading pool list", zap.String("url", d.url), zap.String("path", path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", d.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("get %s: unexpected status %s", d.url, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.download")
	if err != nil {
		return false, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	start := time.Now()
	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return false, fmt.Errorf("download body: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("close %s: %w", tmpName, err)
	}
	if resp.ContentLength > 0 && n != resp.ContentLength {
		return false, fmt.Errorf("download body: got %d of %d bytes", n, resp.ContentLength)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return false, fmt.Errorf("replace %s: %w", path, err)
	}

	d.log.Info("download completed",
		zap.Int64("bytes", n),
		zap.Duration("elapsed", time.Since(start)))
	return true, nil
}
