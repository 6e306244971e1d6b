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
	"os"

	"sigs.k8s.io/yaml"
)

const (
	// DefaultWindowsNodeLabel is the capability label of the Windows build
	// nodes.
	DefaultWindowsNodeLabel = "win64"

	// DefaultMacOSNodeLabel is the capability label of the macOS build
	// nodes.
	DefaultMacOSNodeLabel = "macos"

	// DefaultLinuxNodeLabel is the capability label of the x86-64 Linux
	// build nodes, and the label any unrecognised job type falls back to.
	DefaultLinuxNodeLabel = "linux64"

	// DefaultARMLinuxNodeLabel is the label expression for the ARM Linux
	// build nodes, which are Graviton instances running Amazon Linux 2.
	DefaultARMLinuxNodeLabel = "aarch64 && amzn2"

	// DefaultGoDownloadBaseURL is the base URL Go toolchain archives are
	// fetched from.
	DefaultGoDownloadBaseURL = "https://dl.google.com/go"
)

// Config carries the per-site values the resolvers are parameterised on. It
// is constructed once at process start, either from DefaultConfig or from a
// YAML file, and passed by value; nothing mutates it afterwards.
type Config struct {
	// WindowsNodeLabel is the node label for the 'windows' job type.
	WindowsNodeLabel string `json:"windowsNodeLabel"`

	// MacOSNodeLabel is the node label for the 'macos' job type.
	MacOSNodeLabel string `json:"macosNodeLabel"`

	// LinuxNodeLabel is the node label used for the 'linux' job type and
	// for any job type without an explicit family.
	LinuxNodeLabel string `json:"linuxNodeLabel"`

	// ARMLinuxNodeLabel is the node label for 'aarch64-linux*' job types.
	ARMLinuxNodeLabel string `json:"armLinuxNodeLabel"`

	// SilentOSTypes lists the job types whose runs must not post review
	// comments or votes.
	SilentOSTypes []string `json:"silentOSTypes"`

	// GoDownloadBaseURL is the base URL Go toolchain archives are fetched
	// from.
	GoDownloadBaseURL string `json:"goDownloadBaseURL"`

	// LegacyWindowsSuffix reproduces the historical behaviour of the
	// Windows toolchain URL, which fell through to the Linux archive
	// suffix. Kept so output can be compared against old job logs; see
	// DESIGN.md.
	LegacyWindowsSuffix bool `json:"legacyWindowsSuffix"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		WindowsNodeLabel:  DefaultWindowsNodeLabel,
		MacOSNodeLabel:    DefaultMacOSNodeLabel,
		LinuxNodeLabel:    DefaultLinuxNodeLabel,
		ARMLinuxNodeLabel: DefaultARMLinuxNodeLabel,
		SilentOSTypes:     []string{"macos"},
		GoDownloadBaseURL: DefaultGoDownloadBaseURL,
	}
}

// LoadConfig reads a YAML config file. Unknown fields are rejected so typos
// in site overrides fail loudly instead of silently using defaults.
func LoadConfig(filename string) (Config, error) {
	f, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(f, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
