/*
Copyright 2021 Couchbase Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package gotoolchain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/cenkalti/backoff/v4"
)

// maxDownloadAttempts bounds the retry loop around the archive download.
const maxDownloadAttempts = 4

// Fetch downloads the toolchain archive at url, logs its sha256 sum and
// unpacks it so that destDir becomes the toolchain's GOROOT. The archive is
// downloaded and unpacked in a temporary directory next to destDir and only
// moved into place once it unpacked cleanly, so an interrupted run never
// leaves a half-written toolchain behind. The sum of the downloaded archive
// is returned.
func Fetch(ctx context.Context, url, destDir string) (string, error) {
	if strings.HasSuffix(url, ".zip") {
		return "", fmt.Errorf("refusing to unpack %q: windows toolchains are installed out of band", url)
	}
	if !strings.HasSuffix(url, ".tar.gz") {
		return "", fmt.Errorf("unsupported archive type for %q, expected a .tar.gz", url)
	}

	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return "", err
	}

	tmpdir, err := os.MkdirTemp(parent, "tmp-toolchain-")
	if err != nil {
		return "", err
	}
	// Empty on success: the unpacked 'go' directory will have been moved to
	// destDir by then.
	defer os.RemoveAll(tmpdir)

	f, err := os.Create(filepath.Join(tmpdir, filepath.Base(url)))
	if err != nil {
		return "", err
	}
	defer f.Close()

	log.Printf("Downloading toolchain archive: %q", url)
	if err := download(ctx, url, f); err != nil {
		return "", err
	}

	sum, err := sha256SumFile(f.Name())
	if err != nil {
		return "", err
	}
	log.Printf("Downloaded %q (sha256 %s)", filepath.Base(url), sum)

	// seek back to the start of the file so it can be read again
	if _, err := f.Seek(0, 0); err != nil {
		return "", err
	}
	if err := untarGz(tmpdir, f); err != nil {
		return "", fmt.Errorf("failed to unpack %q: %w", url, err)
	}

	unpacked := filepath.Join(tmpdir, "go")
	if _, err := os.Stat(unpacked); err != nil {
		return "", fmt.Errorf("archive %q did not contain a 'go' directory: %w", url, err)
	}

	if err := os.RemoveAll(destDir); err != nil {
		return "", err
	}
	if err := os.Rename(unpacked, destDir); err != nil {
		return "", fmt.Errorf("failed to move toolchain into place: %w", err)
	}

	log.Printf("Installed toolchain into %q", destDir)
	return sum, nil
}

// download writes the body at url to f, retrying transient failures with
// exponential backoff. Client errors are not retried, a 404 for a toolchain
// archive will not heal by asking again.
func download(ctx context.Context, url string, f *os.File) error {
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(fmt.Errorf("got status code %d fetching %q", resp.StatusCode, url))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("got status code %d fetching %q", resp.StatusCode, url)
		}

		// a retried attempt may have written a partial body already
		if _, err := f.Seek(0, 0); err != nil {
			return backoff.Permanent(err)
		}
		if err := f.Truncate(0); err != nil {
			return backoff.Permanent(err)
		}

		if _, err := io.Copy(f, resp.Body); err != nil {
			return err
		}

		// flush data to disk
		return f.Sync()
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxDownloadAttempts)
	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}

func sha256SumFile(filename string) (string, error) {
	hasher := sha256.New()
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
