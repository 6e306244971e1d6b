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

// Package gotoolchain locates, downloads and installs the Go toolchains the
// build jobs compile with.
package gotoolchain

import (
	"fmt"
	"strings"

	"github.com/blang/semver"

	"github.com/couchbase/tools-ci/pkg/jobs"
)

const (
	linuxSuffix    = "linux-amd64.tar.gz"
	armLinuxSuffix = "linux-arm64.tar.gz"
	macosSuffix    = "darwin-amd64.tar.gz"
	windowsSuffix  = "windows-amd64.zip"
)

// minVersion is the oldest release the build images still carry the shared
// tooling for. Jobs pinning anything older fail before wasting a node.
var minVersion = semver.MustParse("1.21.0")

// DownloadURL returns the URL of the Go toolchain archive for the given
// version and job type, e.g.
// 'https://dl.google.com/go/go1.22.4.linux-amd64.tar.gz'.
func DownloadURL(cfg jobs.Config, version, jobType string) (string, error) {
	if err := ValidateVersion(version); err != nil {
		return "", err
	}

	suffix := linuxSuffix
	switch jobs.FamilyForType(jobType) {
	case jobs.FamilyWindows:
		// With LegacyWindowsSuffix set the linux suffix is kept, matching
		// the URLs in historical windows job logs.
		if !cfg.LegacyWindowsSuffix {
			suffix = windowsSuffix
		}
	case jobs.FamilyMacOS:
		suffix = macosSuffix
	case jobs.FamilyLinuxARM:
		suffix = armLinuxSuffix
	}

	return fmt.Sprintf("%s/go%s.%s", cfg.GoDownloadBaseURL, version, suffix), nil
}

// ValidateVersion checks that a version is plausible before it is spliced
// into a download URL: non-empty, no 'go' prefix, parseable as a version
// number and not older than the minimum supported release.
func ValidateVersion(version string) error {
	if version == "" {
		return fmt.Errorf("toolchain version must not be empty")
	}
	if strings.HasPrefix(version, "go") {
		return fmt.Errorf("toolchain version %q must not carry the 'go' prefix", version)
	}

	// ParseTolerant rather than Parse: go releases omit the patch number
	// for '.0' releases, e.g. 'go1.22'.
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("toolchain version %q is not a valid version number: %v", version, err)
	}

	if v.LT(minVersion) {
		return fmt.Errorf("toolchain version %q is older than the minimum supported release %s", version, minVersion)
	}

	return nil
}
