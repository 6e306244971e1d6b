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

package jobs

import (
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// OSFamily is one of the OS families the pipelines recognise in a job type.
type OSFamily string

const (
	// FamilyWindows covers the 'windows' job type.
	FamilyWindows OSFamily = "windows"

	// FamilyMacOS covers the 'macos' job type.
	FamilyMacOS OSFamily = "macos"

	// FamilyLinuxARM covers any job type starting with 'aarch64-linux',
	// e.g. 'aarch64-linux' itself or 'aarch64-linux-al2'.
	FamilyLinuxARM OSFamily = "aarch64-linux"

	// FamilyLinux is the default family. Any job type not matched by the
	// cases above lands here; that fallthrough is intentional so that new
	// or oddly named linux variants keep building without a config change.
	FamilyLinux OSFamily = "linux"
)

// armLinuxPrefix is the job type prefix matched onto FamilyLinuxARM.
const armLinuxPrefix = "aarch64-linux"

// FamilyForType maps a raw job type onto the OS family used for node label
// and toolchain selection. Unrecognised types map onto FamilyLinux.
func FamilyForType(jobType string) OSFamily {
	switch {
	case jobType == "windows":
		return FamilyWindows
	case jobType == "macos":
		return FamilyMacOS
	case strings.HasPrefix(jobType, armLinuxPrefix):
		return FamilyLinuxARM
	default:
		return FamilyLinux
	}
}

// KnownOSTypes returns the job types jobs are generated for, i.e. the types
// with an explicit family rather than the catch-all default.
func KnownOSTypes() []string {
	return sets.NewString("linux", "windows", "macos", armLinuxPrefix).List()
}

// NodeLabel returns the node-selector expression for a job type, an AND of
// the family's capability label and the branch-specific label. The branch is
// omitted when empty.
func (c Config) NodeLabel(jobType, branch string) string {
	var label string
	switch FamilyForType(jobType) {
	case FamilyWindows:
		label = c.WindowsNodeLabel
	case FamilyMacOS:
		label = c.MacOSNodeLabel
	case FamilyLinuxARM:
		label = c.ARMLinuxNodeLabel
	default:
		label = c.LinuxNodeLabel
	}

	if branch == "" {
		return label
	}
	return label + " && " + branch
}

// Silent reports whether review feedback should be suppressed for the given
// job type. macOS runs are silent by default: their results are too flaky to
// gate a change on.
func (c Config) Silent(jobType string) bool {
	for _, t := range c.SilentOSTypes {
		if t == jobType {
			return true
		}
	}
	return false
}
