// pkg/download/download.go - fetching release archives from the release host.

package download

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/itsjustregi/nero/pkg/retry"
)

// ArchiveName returns the packaged installer file name for a version.
func ArchiveName(version string) string {
	return fmt.Sprintf("InvokeAI-installer-v%s.zip", version)
}

// ArchiveURL returns the release asset URL for a version.
func ArchiveURL(owner, repo, version string) string {
	return fmt.Sprintf("https://github.com/%s/%s/releases/download/v%s/%s",
		owner, repo, version, ArchiveName(version))
}

// CheckDirWritable reports whether files can be created in dir.
func CheckDirWritable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	probe, err := os.CreateTemp(dir, ".nero-write-probe-*")
	if err != nil {
		return fmt.Errorf("no write permission for directory %s: %w", dir, err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}

// Fetch downloads url to dest, retrying transient failures. The warn callback
// receives retry notices and may be nil.
func Fetch(url, dest string, timeout time.Duration, warn func(format string, v ...interface{})) error {
	if url == "" {
		return fmt.Errorf("invalid parameters: url cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create directory structure: %w", err)
	}

	configRetry := retry.RetryConfig{MaxRetries: 3, InitialInterval: time.Second, Multiplier: 2.0, Warn: warn}
	return retry.Retry(configRetry, func() error {
		out, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("failed to open destination file: %v", err)
		}
		defer out.Close()

		client := &http.Client{Timeout: timeout}
		resp, err := client.Get(url)
		if err != nil {
			return fmt.Errorf("failed to perform HTTP request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected HTTP status code: %d", resp.StatusCode)
		}

		if _, err = io.Copy(out, resp.Body); err != nil {
			return fmt.Errorf("failed to write downloaded data: %v", err)
		}
		return nil
	})
}

// FileSHA256 returns the SHA256 sum of a file.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
