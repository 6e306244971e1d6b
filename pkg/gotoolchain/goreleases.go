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
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mjl-/goreleases"
)

// Latest returns the archive file of the newest stable Go release for the
// given platform, as published on the Go download listing.
func Latest(goos, goarch string) (goreleases.File, error) {
	rels, err := goreleases.ListSupported()
	if err != nil {
		return goreleases.File{}, fmt.Errorf("failed to list published go releases: %v", err)
	}
	if len(rels) == 0 {
		return goreleases.File{}, fmt.Errorf("release listing contained no supported releases")
	}

	// the listing is ordered newest first
	return goreleases.FindFile(rels[0], goos, goarch, "archive")
}

// InstallLatest downloads the newest stable release for the given platform
// and moves it into place so that destDir becomes its GOROOT, returning the
// version that was installed without its 'go' prefix. It is used when a job
// asks for 'latest' rather than pinning a version.
func InstallLatest(goos, goarch, destDir string) (string, error) {
	file, err := Latest(goos, goarch)
	if err != nil {
		return "", err
	}
	log.Printf("Latest stable toolchain for %s/%s: %q", goos, goarch, file.Version)

	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return "", err
	}

	tmpdir, err := os.MkdirTemp(parent, "tmp-"+file.Version)
	if err != nil {
		return "", err
	}
	// Empty on success: the go directory will have been moved to destDir.
	defer os.RemoveAll(tmpdir)

	if err := goreleases.Fetch(file, tmpdir, nil); err != nil {
		return "", fmt.Errorf("failed to fetch %q: %v", file.Filename, err)
	}

	if err := os.RemoveAll(destDir); err != nil {
		return "", err
	}
	if err := os.Rename(filepath.Join(tmpdir, "go"), destDir); err != nil {
		return "", fmt.Errorf("failed to move toolchain into place: %v", err)
	}

	return strings.TrimPrefix(file.Version, "go"), nil
}
