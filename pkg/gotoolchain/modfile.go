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
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// VersionFromModFile reads the Go version a checkout wants to build with from
// its go.mod file. The toolchain directive wins when present since it names
// an exact release; otherwise the go directive is used. The result carries no
// 'go' prefix, matching what ValidateVersion accepts.
func VersionFromModFile(repoPath string) (string, error) {
	path := filepath.Join(repoPath, "go.mod")

	contents, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read module file %q: %s", path, err.Error())
	}

	f, err := modfile.Parse(path, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse module file %q: %s", path, err.Error())
	}

	if f.Toolchain != nil {
		return strings.TrimPrefix(f.Toolchain.Name, "go"), nil
	}
	if f.Go != nil && f.Go.Version != "" {
		return f.Go.Version, nil
	}

	return "", fmt.Errorf("module file %q declares no go version", path)
}
